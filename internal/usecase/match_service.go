package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riftlog/riftlog/internal/domain/draft"
	"github.com/riftlog/riftlog/internal/domain/match"
	"github.com/riftlog/riftlog/internal/domain/stats"
)

type MatchService struct {
	matchRepo match.Repository
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{matchRepo: matchRepo}
}

// SearchResult carries the filtered history together with the summary
// derived from it. Stats is nil when the filter sets no
// occurrence-selecting criterion.
type SearchResult struct {
	Matches []match.Record
	Stats   *stats.Summary
}

// SaveMatch archives one reviewed record. The jungle spell convention
// is re-applied before validation so edited drafts cannot sneak an
// inconsistent jungler into storage.
func (s *MatchService) SaveMatch(ctx context.Context, record match.Record) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SaveMatch")
	defer span.End()

	record = draft.Normalize(record)
	if err := match.ValidateRecord(record); err != nil {
		return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.matchRepo.Save(ctx, record)
	if err != nil {
		return match.Record{}, fmt.Errorf("save match: %w", err)
	}
	return saved, nil
}

// Search lists matches passing the repository filter, newest first, and
// aggregates the name/champion/role criteria over that subset.
func (s *MatchService) Search(ctx context.Context, filter match.Filter) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Search")
	defer span.End()

	records, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return SearchResult{}, fmt.Errorf("list matches: %w", err)
	}

	summary := stats.Aggregate(records, stats.Filter{
		Name:     filter.Name,
		Champion: filter.Champion,
		Role:     filter.Role,
	})
	return SearchResult{Matches: records, Stats: summary}, nil
}

// Reset wipes the archive and restarts identifier sequences.
func (s *MatchService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Reset")
	defer span.End()

	if err := s.matchRepo.Reset(ctx); err != nil {
		return fmt.Errorf("reset matches: %w", err)
	}
	return nil
}

// ApplyDraftEdit applies one field change to an in-review record and
// returns the updated copy. Target is "game" for record-level fields or
// "player" for a slot addressed by its original index.
func (s *MatchService) ApplyDraftEdit(ctx context.Context, record match.Record, target string, index int, field string, value any) (match.Record, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchService.ApplyDraftEdit")
	defer span.End()

	var (
		edited match.Record
		err    error
	)
	switch target {
	case "game":
		edited, err = draft.SetGameField(record, field, value)
	case "player":
		edited, err = draft.SetPlayerField(record, index, field, value)
	default:
		return match.Record{}, fmt.Errorf("%w: unknown edit target %q", ErrInvalidInput, target)
	}
	if err != nil {
		if errors.Is(err, draft.ErrUnknownField) || errors.Is(err, draft.ErrPlayerOutOfRange) ||
			errors.Is(err, draft.ErrSmiteSlotLocked) || errors.Is(err, draft.ErrDuplicateSmite) {
			return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return match.Record{}, fmt.Errorf("apply draft edit: %w", err)
	}
	return edited, nil
}

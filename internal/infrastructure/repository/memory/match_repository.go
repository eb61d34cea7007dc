// Package memory holds an in-process match store used in tests and
// when running without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riftlog/riftlog/internal/domain/match"
)

type MatchRepository struct {
	mu           sync.RWMutex
	records      []match.Record
	nextMatchID  int64
	nextPlayerID int64

	// failSave simulates a storage fault partway through a save so the
	// all-or-nothing contract can be exercised without a database.
	failSave error
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{nextMatchID: 1, nextPlayerID: 1}
}

// FailNextSave makes the next Save return err and leave the store
// untouched.
func (r *MatchRepository) FailNextSave(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSave = err
}

func (r *MatchRepository) Save(_ context.Context, record match.Record) (match.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSave != nil {
		err := r.failSave
		r.failSave = nil
		return match.Record{}, err
	}

	saved := record.Clone()
	saved.ID = r.nextMatchID
	r.nextMatchID++
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	for i := range saved.Players {
		saved.Players[i].ID = r.nextPlayerID
		r.nextPlayerID++
	}

	r.records = append(r.records, saved)
	return saved.Clone(), nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Record, 0, len(r.records))
	for _, record := range r.records {
		if !matchesFilter(record, filter) {
			continue
		}
		clone := record.Clone()
		// same row order as the database-backed store: team 1 before
		// team 2, insertion order within a team
		sort.SliceStable(clone.Players, func(i, j int) bool {
			if clone.Players[i].Team != clone.Players[j].Team {
				return clone.Players[i].Team < clone.Players[j].Team
			}
			return clone.Players[i].ID < clone.Players[j].ID
		})
		out = append(out, clone)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	r.nextMatchID = 1
	r.nextPlayerID = 1
	return nil
}

func matchesFilter(record match.Record, filter match.Filter) bool {
	if result := strings.TrimSpace(filter.Result); result != "" {
		if !strings.EqualFold(record.Result, result) {
			return false
		}
	}

	name := strings.TrimSpace(filter.Name)
	champion := strings.TrimSpace(filter.Champion)
	role := strings.TrimSpace(filter.Role)
	if name == "" && champion == "" && role == "" {
		return true
	}

	for _, p := range record.Players {
		if name != "" && !strings.Contains(strings.ToLower(p.SummonerName), strings.ToLower(name)) {
			continue
		}
		if champion != "" && !strings.Contains(strings.ToLower(p.Champion), strings.ToLower(champion)) {
			continue
		}
		if role != "" && !strings.EqualFold(strings.TrimSpace(p.Role), role) {
			continue
		}
		return true
	}
	return false
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc/pool"

	"github.com/riftlog/riftlog/internal/domain/match"
	qb "github.com/riftlog/riftlog/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Save writes the match row and its ten player rows in one
// transaction. A failure on any row rolls the whole record back.
func (r *MatchRepository) Save(ctx context.Context, record match.Record) (match.Record, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Record{}, fmt.Errorf("begin save match tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := qb.InsertModel("matches", newMatchInsertModel(record), "RETURNING id, created_at")
	if err != nil {
		return match.Record{}, fmt.Errorf("build insert match query: %w", err)
	}

	var matchRow matchTableModel
	if err := tx.GetContext(ctx, &matchRow, query, args...); err != nil {
		return match.Record{}, fmt.Errorf("insert match: %w", err)
	}

	saved := record
	saved.ID = matchRow.ID
	saved.CreatedAt = matchRow.CreatedAt
	saved.Players = make([]match.Player, 0, len(record.Players))
	for i, player := range record.Players {
		query, args, err := qb.InsertModel("match_players", newMatchPlayerInsertModel(matchRow.ID, player), "RETURNING id")
		if err != nil {
			return match.Record{}, fmt.Errorf("build insert match player %d query: %w", i, err)
		}
		var playerID int64
		if err := tx.GetContext(ctx, &playerID, query, args...); err != nil {
			return match.Record{}, fmt.Errorf("insert match player %d: %w", i, err)
		}
		player.ID = playerID
		saved.Players = append(saved.Players, player)
	}

	if err := tx.Commit(); err != nil {
		return match.Record{}, fmt.Errorf("commit save match tx: %w", err)
	}
	return saved, nil
}

// List returns matches passing the filter, newest first, each with its
// players ordered team 1 before team 2 in scoreboard row order. Player
// criteria narrow which matches qualify; every player of a qualifying
// match is still returned.
func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Record, error) {
	matchIDs, err := r.filterMatchIDs(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(matchIDs) == 0 {
		return []match.Record{}, nil
	}

	idArgs := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		idArgs = append(idArgs, id)
	}

	var (
		matchRows  []matchTableModel
		playerRows []matchPlayerTableModel
	)
	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		query, args, err := qb.Select("*").From("matches").
			Where(qb.In("id", idArgs)).
			OrderBy("created_at DESC", "id DESC").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select matches query: %w", err)
		}
		if err := r.db.SelectContext(ctx, &matchRows, query, args...); err != nil {
			return fmt.Errorf("select matches: %w", err)
		}
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		query, args, err := qb.Select("*").From("match_players").
			Where(qb.In("match_id", idArgs)).
			OrderBy("match_id", "team", "id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build select match players query: %w", err)
		}
		if err := r.db.SelectContext(ctx, &playerRows, query, args...); err != nil {
			return fmt.Errorf("select match players: %w", err)
		}
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	playersByMatch := make(map[int64][]match.Player, len(matchRows))
	for _, row := range playerRows {
		playersByMatch[row.MatchID] = append(playersByMatch[row.MatchID], row.toDomain())
	}

	out := make([]match.Record, 0, len(matchRows))
	for _, row := range matchRows {
		record := row.toDomain()
		record.Players = playersByMatch[row.ID]
		out = append(out, record)
	}
	return out, nil
}

// filterMatchIDs resolves which match ids satisfy the filter. Without
// player criteria only the result column narrows the set.
func (r *MatchRepository) filterMatchIDs(ctx context.Context, filter match.Filter) ([]int64, error) {
	var conditions []qb.Condition
	if result := strings.TrimSpace(filter.Result); result != "" {
		conditions = append(conditions, qb.Eq("result", strings.ToLower(result)))
	}

	var playerConditions []qb.Condition
	if name := strings.TrimSpace(filter.Name); name != "" {
		playerConditions = append(playerConditions, qb.ILike("summoner_name", name))
	}
	if champion := strings.TrimSpace(filter.Champion); champion != "" {
		playerConditions = append(playerConditions, qb.ILike("champion", champion))
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		playerConditions = append(playerConditions, qb.Eq("LOWER(role)", strings.ToLower(role)))
	}
	if len(playerConditions) > 0 {
		query, args, err := qb.Select("DISTINCT match_id").From("match_players").
			Where(playerConditions...).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build filter match players query: %w", err)
		}
		var candidateIDs []int64
		if err := r.db.SelectContext(ctx, &candidateIDs, query, args...); err != nil {
			return nil, fmt.Errorf("filter match players: %w", err)
		}
		if len(candidateIDs) == 0 {
			return nil, nil
		}
		idArgs := make([]any, 0, len(candidateIDs))
		for _, id := range candidateIDs {
			idArgs = append(idArgs, id)
		}
		conditions = append(conditions, qb.In("id", idArgs))
	}

	query, args, err := qb.Select("id").From("matches").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build filter matches query: %w", err)
	}
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("filter matches: %w", err)
	}
	return ids, nil
}

// Reset wipes both tables and restarts their id sequences so the next
// archive starts from 1 again.
func (r *MatchRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		"DELETE FROM match_players",
		"DELETE FROM matches",
		"ALTER SEQUENCE match_players_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matches_id_seq RESTART WITH 1",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset matches (%s): %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset tx: %w", err)
	}
	return nil
}

package match

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingGameTime = errors.New("game time is missing")
	ErrMissingResult   = errors.New("match result is missing")
	ErrMissingPlayers  = errors.New("player list is missing")
	ErrWrongPlayerCount = errors.New("wrong player count")
)

// ValidateRecord checks the structural invariants a record must satisfy
// before it can be persisted, in order, stopping at the first failure:
// game time present, result present, player list present, exactly ten
// players. Field-level numeric sanity is left to the storage layer.
func ValidateRecord(r Record) error {
	if strings.TrimSpace(r.GameTime) == "" {
		return ErrMissingGameTime
	}
	if strings.TrimSpace(r.Result) == "" {
		return ErrMissingResult
	}
	if r.Players == nil {
		return ErrMissingPlayers
	}
	if len(r.Players) != PlayersPerMatch {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongPlayerCount, PlayersPerMatch, len(r.Players))
	}
	return nil
}

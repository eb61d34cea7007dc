// Package draft holds the editable working copy of an extracted match
// before it is committed. Edits are copy-on-write: every operation takes
// a record by value and returns a fresh snapshot, so observers always
// re-render from one consistent value. Players are addressed by their
// original position in the player list, never by display position.
package draft

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riftlog/riftlog/internal/domain/match"
)

var (
	ErrUnknownField     = errors.New("unknown editable field")
	ErrPlayerOutOfRange = errors.New("player index out of range")
	ErrSmiteSlotLocked  = errors.New("spell slot 1 is fixed to Smite for junglers")
	ErrDuplicateSmite   = errors.New("spell slot 2 cannot be Smite while role is jungle")
)

// Game metadata fields editable through SetGameField.
const (
	FieldGameTime = "gameTime"
	FieldResult   = "result"
)

// SetGameField replaces one scalar of the match metadata and returns the
// updated snapshot. Changing the game time also refreshes the derived
// duration.
func SetGameField(record match.Record, field string, value any) (match.Record, error) {
	out := record.Clone()
	switch field {
	case FieldGameTime:
		out.GameTime = asString(value)
		out.DurationSeconds = match.ClockToSeconds(out.GameTime)
	case FieldResult:
		out.Result = asString(value)
	default:
		return match.Record{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// SetPlayerField replaces one scalar of the player at index (original
// insertion position) and returns the updated snapshot.
//
// Two jungle conventions are enforced here rather than at save time so
// the editing surface can never show a structurally nonsensical row:
// slot 1 of a jungler is not independently editable, and slot 2 may not
// duplicate the pinned Smite.
func SetPlayerField(record match.Record, index int, field string, value any) (match.Record, error) {
	if index < 0 || index >= len(record.Players) {
		return match.Record{}, fmt.Errorf("%w: %d", ErrPlayerOutOfRange, index)
	}

	out := record.Clone()
	p := &out.Players[index]
	jungler := isJungle(p.Role)

	switch field {
	case "role":
		p.Role = asString(value)
		if isJungle(p.Role) {
			p.Spell1 = match.SpellSmite
			if p.Spell2 == match.SpellSmite {
				p.Spell2 = ""
			}
		}
	case "champion":
		p.Champion = asString(value)
	case "summonerName":
		p.SummonerName = asString(value)
	case "spell1":
		if jungler {
			return match.Record{}, ErrSmiteSlotLocked
		}
		p.Spell1 = asString(value)
	case "spell2":
		next := asString(value)
		if jungler && next == match.SpellSmite {
			return match.Record{}, ErrDuplicateSmite
		}
		p.Spell2 = next
	case "level":
		p.Level = asInt(value)
	case "kills":
		p.Kills = asInt(value)
	case "deaths":
		p.Deaths = asInt(value)
	case "assists":
		p.Assists = asInt(value)
	case "damage":
		p.Damage = asInt(value)
	case "gold":
		p.Gold = asInt(value)
	case "kda":
		p.KDA = asOptionalFloat(value)
	case "vision":
		p.Vision = asOptionalInt(value)
	default:
		return match.Record{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	return out, nil
}

// Normalize applies the jungle spell convention to every player without
// touching anything else. Save paths run it so that records arriving from
// clients that bypassed the editor still satisfy the convention.
func Normalize(record match.Record) match.Record {
	out := record.Clone()
	for i := range out.Players {
		p := &out.Players[i]
		if !isJungle(p.Role) {
			continue
		}
		p.Spell1 = match.SpellSmite
		if p.Spell2 == match.SpellSmite {
			p.Spell2 = ""
		}
	}
	return out
}

// Row is one player in the display projection. Index addresses the player
// in the underlying record; DerivedKDA is always recomputed from the
// current K/D/A counters, while ReportedKDA carries whatever the
// extraction produced for initial display.
type Row struct {
	Index       int
	Player      match.Player
	DerivedKDA  float64
	ReportedKDA *float64
}

// Display partitions a record's players by team for rendering.
type Display struct {
	Team1 []Row
	Team2 []Row
}

// Project builds the display projection: players split per team and
// ordered by the canonical lane sequence (unknown roles last). Sorting is
// stable and purely presentational; Row.Index keeps the edit address.
func Project(record match.Record) Display {
	var out Display
	for i, p := range record.Players {
		row := Row{
			Index:       i,
			Player:      p,
			DerivedKDA:  match.KDA(p.Kills, p.Deaths, p.Assists),
			ReportedKDA: p.KDA,
		}
		if p.Team == match.TeamRed {
			out.Team2 = append(out.Team2, row)
		} else {
			out.Team1 = append(out.Team1, row)
		}
	}
	sortRows(out.Team1)
	sortRows(out.Team2)
	return out
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return match.RoleRank(rows[i].Player.Role) < match.RoleRank(rows[j].Player.Role)
	})
}

func isJungle(role string) bool {
	return strings.ToLower(strings.TrimSpace(role)) == match.RoleJungle
}

func asString(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

// asInt coerces a loosely-typed scalar to a non-negative int; anything
// malformed becomes 0 rather than an error, mirroring how numeric cells
// behave in the editing table.
func asInt(value any) int {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0
		}
		return v
	case int64:
		if v < 0 {
			return 0
		}
		return int(v)
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asOptionalInt(value any) *int {
	if value == nil {
		return nil
	}
	n := asInt(value)
	return &n
}

func asOptionalFloat(value any) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

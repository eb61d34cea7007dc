package match

import (
	"strconv"
	"strings"
	"time"
)

const (
	TeamBlue = 1
	TeamRed  = 2

	PlayersPerMatch = 10
	PlayersPerTeam  = 5
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

const (
	RoleTop     = "top"
	RoleJungle  = "jungle"
	RoleMid     = "mid"
	RoleADC     = "adc"
	RoleSupport = "support"
)

// SpellSmite is the summoner spell every jungler carries by convention.
// Slot 1 of a jungle player is pinned to it (see draft package).
const SpellSmite = "Smite"

// RoleOrder is the canonical lane order used for display sorting.
var RoleOrder = []string{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

var roleRank = func() map[string]int {
	out := make(map[string]int, len(RoleOrder))
	for i, role := range RoleOrder {
		out[role] = i
	}
	return out
}()

// RoleRank returns the display position of a role. Roles outside the
// canonical five sort after all of them.
func RoleRank(role string) int {
	if rank, ok := roleRank[strings.ToLower(strings.TrimSpace(role))]; ok {
		return rank
	}
	return len(RoleOrder)
}

// IsKnownRole reports whether role is one of the five canonical lanes.
func IsKnownRole(role string) bool {
	_, ok := roleRank[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// Player is one player's stat line within one match.
type Player struct {
	ID           int64
	Team         int
	Role         string
	Level        int
	Champion     string
	SummonerName string
	Spell1       string
	Spell2       string
	Kills        int
	Deaths       int
	Assists      int
	KDA          *float64
	Damage       int
	Gold         int
	Vision       *int
}

// Record is one match: the game metadata plus its ten player stat lines.
// A transient record (fresh from extraction or still being edited) has a
// zero ID and CreatedAt; both are assigned by the store at commit time.
type Record struct {
	ID              int64
	GameTime        string
	DurationSeconds int
	Result          string
	CreatedAt       time.Time
	Players         []Player
}

// Clone returns a deep copy; the player slice no longer aliases the source.
func (r Record) Clone() Record {
	out := r
	out.Players = make([]Player, len(r.Players))
	copy(out.Players, r.Players)
	for i := range out.Players {
		if kda := r.Players[i].KDA; kda != nil {
			v := *kda
			out.Players[i].KDA = &v
		}
		if vision := r.Players[i].Vision; vision != nil {
			v := *vision
			out.Players[i].Vision = &v
		}
	}
	return out
}

// TeamPlayers returns the players on one side in their stored order.
func (r Record) TeamPlayers(team int) []Player {
	out := make([]Player, 0, PlayersPerTeam)
	for _, p := range r.Players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// PlayerResult maps the record's team-1 outcome to one player's personal
// outcome: team 1 wins iff the match result is a win, team 2 the inverse.
func (r Record) PlayerResult(p Player) string {
	won := r.Result == ResultWin
	if p.Team != TeamBlue {
		won = !won
	}
	if won {
		return ResultWin
	}
	return ResultLoss
}

// ClockToSeconds converts an "mm:ss" game clock to seconds.
// Anything that is not two numeric parts yields 0.
func ClockToSeconds(clock string) int {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}

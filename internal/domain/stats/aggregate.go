// Package stats computes summary statistics over archived matches. A
// Summary is derived on every query and never stored.
package stats

import (
	"math"
	"strings"

	"github.com/riftlog/riftlog/internal/domain/match"
)

// Filter selects player occurrences. Name and Champion are matched as
// case-insensitive substrings, Role by exact (case-folded) equality. An
// unset criterion matches unconditionally.
type Filter struct {
	Name     string
	Champion string
	Role     string
}

// IsEmpty reports whether no occurrence-selecting criterion is set.
// Aggregating an entirely unfiltered history is not meaningful, so an
// empty filter yields no Summary.
func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Name) == "" &&
		strings.TrimSpace(f.Champion) == "" &&
		strings.TrimSpace(f.Role) == ""
}

// Matches reports whether one player satisfies every set criterion.
func (f Filter) Matches(p match.Player) bool {
	if name := strings.TrimSpace(f.Name); name != "" {
		if !strings.Contains(strings.ToLower(p.SummonerName), strings.ToLower(name)) {
			return false
		}
	}
	if champion := strings.TrimSpace(f.Champion); champion != "" {
		if !strings.Contains(strings.ToLower(p.Champion), strings.ToLower(champion)) {
			return false
		}
	}
	if role := strings.TrimSpace(f.Role); role != "" {
		if !strings.EqualFold(strings.TrimSpace(p.Role), role) {
			return false
		}
	}
	return true
}

// Occurrence is one matched player stat line together with the match
// context needed for attribution: the personal outcome follows the
// player's team, not the record's nominal team-1 result.
type Occurrence struct {
	MatchID         int64
	Player          match.Player
	PersonalResult  string
	DurationSeconds int
}

// Summary aggregates every matched occurrence. Counts may exceed the
// number of matches: a role filter with no name matches one player on
// each side of the same game.
type Summary struct {
	Occurrences int
	Wins        int
	Losses      int
	WinRate     float64

	TotalKills   int
	TotalDeaths  int
	TotalAssists int
	AvgKills     float64
	AvgDeaths    float64
	AvgAssists   float64

	// AvgKDA is computed over the aggregated totals, not as a mean of
	// per-game ratios, so deathless games cannot skew it.
	AvgKDA float64

	AvgGoldPerMinute   float64
	AvgDamagePerMinute float64
}

// Collect returns every occurrence the filter selects across records,
// in record order. All matching players of a record are kept, not just
// the first.
func Collect(records []match.Record, filter Filter) []Occurrence {
	var out []Occurrence
	for _, rec := range records {
		for _, p := range rec.Players {
			if !filter.Matches(p) {
				continue
			}
			out = append(out, Occurrence{
				MatchID:         rec.ID,
				Player:          p,
				PersonalResult:  rec.PlayerResult(p),
				DurationSeconds: rec.DurationSeconds,
			})
		}
	}
	return out
}

// Aggregate computes the summary for the filtered subset of records.
// It returns nil for an empty filter: summaries only make sense against
// a narrowing criterion.
func Aggregate(records []match.Record, filter Filter) *Summary {
	if filter.IsEmpty() {
		return nil
	}

	occurrences := Collect(records, filter)
	summary := &Summary{Occurrences: len(occurrences)}
	if len(occurrences) == 0 {
		return summary
	}

	var totalGold, totalDamage, totalSeconds int
	for _, occ := range occurrences {
		if occ.PersonalResult == match.ResultWin {
			summary.Wins++
		} else {
			summary.Losses++
		}
		summary.TotalKills += occ.Player.Kills
		summary.TotalDeaths += occ.Player.Deaths
		summary.TotalAssists += occ.Player.Assists
		totalGold += occ.Player.Gold
		totalDamage += occ.Player.Damage
		// every occurrence contributes its match's full duration, even
		// when two occurrences come from the same game
		totalSeconds += occ.DurationSeconds
	}

	n := float64(len(occurrences))
	summary.WinRate = round1(float64(summary.Wins) / n * 100)
	summary.AvgKills = round1(float64(summary.TotalKills) / n)
	summary.AvgDeaths = round1(float64(summary.TotalDeaths) / n)
	summary.AvgAssists = round1(float64(summary.TotalAssists) / n)
	summary.AvgKDA = round2(match.KDA(summary.TotalKills, summary.TotalDeaths, summary.TotalAssists))
	summary.AvgGoldPerMinute = match.PerMinute(totalGold, totalSeconds)
	summary.AvgDamagePerMinute = match.PerMinute(totalDamage, totalSeconds)

	return summary
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

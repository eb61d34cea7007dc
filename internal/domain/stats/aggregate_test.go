package stats_test

import (
	"testing"

	"github.com/riftlog/riftlog/internal/domain/match"
	"github.com/riftlog/riftlog/internal/domain/stats"
)

func fillerPlayers(record *match.Record, skipSlots ...int) {
	skip := map[int]bool{}
	for _, s := range skipSlots {
		skip[s] = true
	}
	for i := len(record.Players); len(record.Players) < match.PlayersPerMatch; i++ {
		if skip[i] {
			continue
		}
		team := match.TeamBlue
		if len(record.Players) >= match.PlayersPerTeam {
			team = match.TeamRed
		}
		record.Players = append(record.Players, match.Player{
			Team:         team,
			Role:         "filler",
			SummonerName: "Filler",
			Champion:     "Filler",
		})
	}
}

func TestAggregate_EmptyFilterReturnsNil(t *testing.T) {
	t.Parallel()

	records := []match.Record{{GameTime: "20:00", DurationSeconds: 1200, Result: match.ResultWin}}
	if got := stats.Aggregate(records, stats.Filter{}); got != nil {
		t.Fatalf("Aggregate(empty filter) = %+v, want nil", got)
	}
	if got := stats.Aggregate(records, stats.Filter{Name: "  "}); got != nil {
		t.Fatalf("Aggregate(whitespace-only filter) = %+v, want nil", got)
	}
}

func TestAggregate_TwoMatchCareer(t *testing.T) {
	t.Parallel()

	first := match.Record{
		ID:              1,
		GameTime:        "20:00",
		DurationSeconds: 1200,
		Result:          match.ResultWin,
		Players: []match.Player{{
			Team: match.TeamBlue, Role: match.RoleMid,
			SummonerName: "Ana", Champion: "Ahri",
			Kills: 10, Deaths: 2, Assists: 8,
			Gold: 12000, Damage: 24000,
		}},
	}
	fillerPlayers(&first)

	second := match.Record{
		ID:              2,
		GameTime:        "25:00",
		DurationSeconds: 1500,
		Result:          match.ResultWin,
		Players: []match.Player{{
			Team: match.TeamRed, Role: match.RoleMid,
			SummonerName: "Ana", Champion: "Ahri",
			Kills: 4, Deaths: 6, Assists: 2,
			Gold: 18000, Damage: 20000,
		}},
	}
	fillerPlayers(&second)

	summary := stats.Aggregate([]match.Record{first, second}, stats.Filter{Name: "Ana"})
	if summary == nil {
		t.Fatal("Aggregate returned nil for matching filter")
	}
	if summary.Occurrences != 2 {
		t.Fatalf("Occurrences = %d, want 2", summary.Occurrences)
	}
	// second game was on team 2 of a team-1 win, so it counts as a loss
	if summary.Wins != 1 || summary.Losses != 1 {
		t.Fatalf("Wins/Losses = %d/%d, want 1/1", summary.Wins, summary.Losses)
	}
	if summary.WinRate != 50.0 {
		t.Fatalf("WinRate = %v, want 50.0", summary.WinRate)
	}
	if summary.TotalKills != 14 || summary.TotalDeaths != 8 || summary.TotalAssists != 10 {
		t.Fatalf("totals = %d/%d/%d, want 14/8/10",
			summary.TotalKills, summary.TotalDeaths, summary.TotalAssists)
	}
	if summary.AvgKills != 7.0 || summary.AvgDeaths != 4.0 || summary.AvgAssists != 5.0 {
		t.Fatalf("means = %v/%v/%v, want 7/4/5",
			summary.AvgKills, summary.AvgDeaths, summary.AvgAssists)
	}
	if summary.AvgKDA != 3.0 {
		t.Fatalf("AvgKDA = %v, want 3.0", summary.AvgKDA)
	}
	// 30000 gold over 45 contributed minutes
	if summary.AvgGoldPerMinute != 667 {
		t.Fatalf("AvgGoldPerMinute = %v, want 667", summary.AvgGoldPerMinute)
	}
	if summary.AvgDamagePerMinute != 978 {
		t.Fatalf("AvgDamagePerMinute = %v, want 978", summary.AvgDamagePerMinute)
	}
}

func TestAggregate_RoleFilterMatchesBothSides(t *testing.T) {
	t.Parallel()

	record := match.Record{
		ID:              7,
		GameTime:        "30:00",
		DurationSeconds: 1800,
		Result:          match.ResultWin,
		Players: []match.Player{
			{Team: match.TeamBlue, Role: match.RoleJungle, SummonerName: "BlueJungler", Champion: "Lee Sin", Kills: 5, Deaths: 1, Assists: 9},
			{Team: match.TeamRed, Role: match.RoleJungle, SummonerName: "RedJungler", Champion: "Graves", Kills: 3, Deaths: 7, Assists: 4},
		},
	}
	fillerPlayers(&record)

	summary := stats.Aggregate([]match.Record{record}, stats.Filter{Role: match.RoleJungle})
	if summary == nil {
		t.Fatal("Aggregate returned nil for role filter")
	}
	if summary.Occurrences != 2 {
		t.Fatalf("Occurrences = %d, want 2 (one jungler per side)", summary.Occurrences)
	}
	if summary.Wins != 1 || summary.Losses != 1 {
		t.Fatalf("Wins/Losses = %d/%d, want independent outcomes 1/1",
			summary.Wins, summary.Losses)
	}
}

func TestAggregate_NoOccurrences(t *testing.T) {
	t.Parallel()

	record := match.Record{
		GameTime:        "22:10",
		DurationSeconds: 1330,
		Result:          match.ResultLoss,
	}
	fillerPlayers(&record)

	summary := stats.Aggregate([]match.Record{record}, stats.Filter{Name: "nobody"})
	if summary == nil {
		t.Fatal("Aggregate returned nil, want zero-valued summary")
	}
	if summary.Occurrences != 0 {
		t.Fatalf("Occurrences = %d, want 0", summary.Occurrences)
	}
	if summary.WinRate != 0 || summary.AvgKDA != 0 || summary.AvgGoldPerMinute != 0 {
		t.Fatalf("zero-occurrence summary carries stats: %+v", summary)
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	player := match.Player{SummonerName: "Shadow Walker", Champion: "Kha'Zix", Role: match.RoleJungle}

	cases := []struct {
		name   string
		filter stats.Filter
		want   bool
	}{
		{"name substring", stats.Filter{Name: "shadow"}, true},
		{"champion substring", stats.Filter{Champion: "kha"}, true},
		{"role exact", stats.Filter{Role: "JUNGLE"}, true},
		{"role is not substring", stats.Filter{Role: "jung"}, false},
		{"all criteria", stats.Filter{Name: "walker", Champion: "zix", Role: match.RoleJungle}, true},
		{"one criterion fails", stats.Filter{Name: "walker", Champion: "ahri"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.filter.Matches(player); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

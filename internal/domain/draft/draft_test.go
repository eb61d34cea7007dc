package draft

import (
	"errors"
	"testing"

	"github.com/riftlog/riftlog/internal/domain/match"
)

func tenPlayers() []match.Player {
	roles := []string{match.RoleTop, match.RoleJungle, match.RoleMid, match.RoleADC, match.RoleSupport}
	players := make([]match.Player, 0, match.PlayersPerMatch)
	for team := match.TeamBlue; team <= match.TeamRed; team++ {
		for _, role := range roles {
			spell1 := "Flash"
			if role == match.RoleJungle {
				spell1 = match.SpellSmite
			}
			players = append(players, match.Player{
				Team:         team,
				Role:         role,
				Champion:     "Ahri",
				SummonerName: "someone",
				Spell1:       spell1,
				Spell2:       "Ignite",
			})
		}
	}
	return players
}

func workingRecord() match.Record {
	return match.Record{
		GameTime:        "27:17",
		DurationSeconds: 1637,
		Result:          match.ResultWin,
		Players:         tenPlayers(),
	}
}

func TestSetGameField_CopyOnWrite(t *testing.T) {
	t.Parallel()

	original := workingRecord()
	updated, err := SetGameField(original, FieldGameTime, "30:00")
	if err != nil {
		t.Fatalf("set game time: %v", err)
	}

	if updated.GameTime != "30:00" || updated.DurationSeconds != 1800 {
		t.Fatalf("updated snapshot wrong: %q / %d", updated.GameTime, updated.DurationSeconds)
	}
	if original.GameTime != "27:17" || original.DurationSeconds != 1637 {
		t.Fatalf("original mutated: %q / %d", original.GameTime, original.DurationSeconds)
	}
}

func TestSetGameField_UnknownField(t *testing.T) {
	t.Parallel()

	if _, err := SetGameField(workingRecord(), "players", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSetPlayerField_AddressedByOriginalIndex(t *testing.T) {
	t.Parallel()

	original := workingRecord()
	updated, err := SetPlayerField(original, 7, "kills", 9)
	if err != nil {
		t.Fatalf("set kills: %v", err)
	}

	if updated.Players[7].Kills != 9 {
		t.Fatalf("player 7 kills = %d, want 9", updated.Players[7].Kills)
	}
	if original.Players[7].Kills != 0 {
		t.Fatalf("original player mutated")
	}
	if _, err := SetPlayerField(original, 10, "kills", 1); !errors.Is(err, ErrPlayerOutOfRange) {
		t.Fatalf("expected ErrPlayerOutOfRange, got %v", err)
	}
}

func TestSetPlayerField_CoercesMalformedNumerics(t *testing.T) {
	t.Parallel()

	updated, err := SetPlayerField(workingRecord(), 0, "gold", "not-a-number")
	if err != nil {
		t.Fatalf("set gold: %v", err)
	}
	if updated.Players[0].Gold != 0 {
		t.Fatalf("malformed gold should coerce to 0, got %d", updated.Players[0].Gold)
	}

	updated, err = SetPlayerField(updated, 0, "kda", nil)
	if err != nil {
		t.Fatalf("clear kda: %v", err)
	}
	if updated.Players[0].KDA != nil {
		t.Fatalf("nil value should clear the reported kda")
	}
}

func TestJungleSpellRules(t *testing.T) {
	t.Parallel()

	rec := workingRecord() // index 1 is the team-1 jungler

	if _, err := SetPlayerField(rec, 1, "spell1", "Flash"); !errors.Is(err, ErrSmiteSlotLocked) {
		t.Fatalf("expected ErrSmiteSlotLocked, got %v", err)
	}
	if _, err := SetPlayerField(rec, 1, "spell2", match.SpellSmite); !errors.Is(err, ErrDuplicateSmite) {
		t.Fatalf("expected ErrDuplicateSmite, got %v", err)
	}

	// slot 1 of a non-jungler stays editable
	updated, err := SetPlayerField(rec, 0, "spell1", "Teleport")
	if err != nil {
		t.Fatalf("set spell1 on top: %v", err)
	}
	if updated.Players[0].Spell1 != "Teleport" {
		t.Fatalf("spell1 = %q, want Teleport", updated.Players[0].Spell1)
	}
}

func TestSetPlayerField_RoleChangeToJunglePinsSmite(t *testing.T) {
	t.Parallel()

	rec := workingRecord()
	rec.Players[0].Spell2 = match.SpellSmite

	updated, err := SetPlayerField(rec, 0, "role", match.RoleJungle)
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if updated.Players[0].Spell1 != match.SpellSmite {
		t.Fatalf("spell1 should pin to Smite, got %q", updated.Players[0].Spell1)
	}
	if updated.Players[0].Spell2 == match.SpellSmite {
		t.Fatalf("spell2 duplicate Smite should have been cleared")
	}
}

func TestNormalize_EnforcesConventionEverywhere(t *testing.T) {
	t.Parallel()

	rec := workingRecord()
	rec.Players[1].Spell1 = "Flash"
	rec.Players[6].Spell2 = match.SpellSmite

	out := Normalize(rec)
	if out.Players[1].Spell1 != match.SpellSmite {
		t.Fatalf("jungler spell1 not normalized: %q", out.Players[1].Spell1)
	}
	if out.Players[6].Spell2 == match.SpellSmite {
		t.Fatalf("jungler duplicate spell2 not cleared")
	}
	if rec.Players[1].Spell1 != "Flash" {
		t.Fatalf("Normalize mutated its input")
	}
}

func TestProject_TeamPartitionAndRoleOrder(t *testing.T) {
	t.Parallel()

	rec := workingRecord()
	// scramble team 1's stored order and give one player an off-list role
	rec.Players[0], rec.Players[4] = rec.Players[4], rec.Players[0]
	rec.Players[2].Role = "flex"
	rec.Players[3].Kills = 6
	rec.Players[3].Deaths = 2
	rec.Players[3].Assists = 4

	display := Project(rec)
	if len(display.Team1) != 5 || len(display.Team2) != 5 {
		t.Fatalf("partition sizes %d/%d, want 5/5", len(display.Team1), len(display.Team2))
	}

	wantOrder := []string{match.RoleTop, match.RoleJungle, match.RoleADC, match.RoleSupport, "flex"}
	if got := rolesOf(display.Team1); !equalStrings(got, wantOrder) {
		t.Fatalf("team1 display order = %v, want %v", got, wantOrder)
	}

	// the adc row (original index 3) keeps its edit address and derives KDA live
	var adc *Row
	for i := range display.Team1 {
		if display.Team1[i].Player.Role == match.RoleADC {
			adc = &display.Team1[i]
		}
	}
	if adc == nil || adc.Index != 3 {
		t.Fatalf("adc row lost its original index: %+v", adc)
	}
	if adc.DerivedKDA != 5 {
		t.Fatalf("adc derived KDA = %v, want 5", adc.DerivedKDA)
	}
}

func rolesOf(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Player.Role)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

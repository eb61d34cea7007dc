package match

import (
	"errors"
	"strings"
	"testing"
)

func validTestRecord() Record {
	players := make([]Player, 0, PlayersPerMatch)
	roles := []string{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}
	for team := TeamBlue; team <= TeamRed; team++ {
		for i, role := range roles {
			players = append(players, Player{
				Team:         team,
				Role:         role,
				Level:        10 + i,
				Champion:     "Ahri",
				SummonerName: "player",
				Spell1:       "Flash",
				Spell2:       "Ignite",
			})
		}
	}
	return Record{
		GameTime: "27:17",
		Result:   ResultWin,
		Players:  players,
	}
}

func TestValidateRecord_OK(t *testing.T) {
	t.Parallel()

	if err := ValidateRecord(validTestRecord()); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateRecord_MissingFields(t *testing.T) {
	t.Parallel()

	rec := validTestRecord()
	rec.GameTime = "  "
	if err := ValidateRecord(rec); !errors.Is(err, ErrMissingGameTime) {
		t.Fatalf("expected ErrMissingGameTime, got %v", err)
	}

	rec = validTestRecord()
	rec.Result = ""
	if err := ValidateRecord(rec); !errors.Is(err, ErrMissingResult) {
		t.Fatalf("expected ErrMissingResult, got %v", err)
	}

	rec = validTestRecord()
	rec.Players = nil
	if err := ValidateRecord(rec); !errors.Is(err, ErrMissingPlayers) {
		t.Fatalf("expected ErrMissingPlayers, got %v", err)
	}
}

func TestValidateRecord_PlayerCountCitesActual(t *testing.T) {
	t.Parallel()

	for _, count := range []int{9, 11} {
		rec := validTestRecord()
		if count < len(rec.Players) {
			rec.Players = rec.Players[:count]
		} else {
			rec.Players = append(rec.Players, rec.Players[0])
		}

		err := ValidateRecord(rec)
		if !errors.Is(err, ErrWrongPlayerCount) {
			t.Fatalf("count=%d: expected ErrWrongPlayerCount, got %v", count, err)
		}
		if !strings.Contains(err.Error(), "got 9") && !strings.Contains(err.Error(), "got 11") {
			t.Fatalf("count=%d: message should cite actual count: %v", count, err)
		}
	}
}

func TestRoleRank_UnknownSortsLast(t *testing.T) {
	t.Parallel()

	for i, role := range RoleOrder {
		if got := RoleRank(role); got != i {
			t.Fatalf("RoleRank(%q) = %d, want %d", role, got, i)
		}
	}
	if got := RoleRank("fill"); got != len(RoleOrder) {
		t.Fatalf("RoleRank(fill) = %d, want %d", got, len(RoleOrder))
	}
	if got := RoleRank("  JUNGLE "); got != 1 {
		t.Fatalf("RoleRank should normalize case and spacing, got %d", got)
	}
}

func TestPlayerResult_TeamAttribution(t *testing.T) {
	t.Parallel()

	rec := Record{Result: ResultWin}
	if got := rec.PlayerResult(Player{Team: TeamBlue}); got != ResultWin {
		t.Fatalf("team 1 on a win should be a win, got %s", got)
	}
	if got := rec.PlayerResult(Player{Team: TeamRed}); got != ResultLoss {
		t.Fatalf("team 2 on a win should be a loss, got %s", got)
	}

	rec.Result = ResultLoss
	if got := rec.PlayerResult(Player{Team: TeamRed}); got != ResultWin {
		t.Fatalf("team 2 on a loss should be a win, got %s", got)
	}
}

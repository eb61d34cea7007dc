package postgres

import (
	"database/sql"
	"time"

	"github.com/riftlog/riftlog/internal/domain/match"
)

type matchTableModel struct {
	ID              int64     `db:"id"`
	GameTime        string    `db:"game_time"`
	DurationSeconds int       `db:"duration_seconds"`
	Result          string    `db:"result"`
	CreatedAt       time.Time `db:"created_at"`
}

type matchPlayerTableModel struct {
	ID           int64           `db:"id"`
	MatchID      int64           `db:"match_id"`
	Team         int             `db:"team"`
	Role         string          `db:"role"`
	Level        int             `db:"level"`
	Champion     string          `db:"champion"`
	SummonerName string          `db:"summoner_name"`
	Spell1       string          `db:"spell1"`
	Spell2       string          `db:"spell2"`
	Kills        int             `db:"kills"`
	Deaths       int             `db:"deaths"`
	Assists      int             `db:"assists"`
	KDA          sql.NullFloat64 `db:"kda"`
	Damage       int             `db:"damage"`
	Gold         int             `db:"gold"`
	Vision       sql.NullInt64   `db:"vision"`
}

// matchInsertModel omits the generated columns so InsertModel only
// binds what the application supplies.
type matchInsertModel struct {
	GameTime        string `db:"game_time"`
	DurationSeconds int    `db:"duration_seconds"`
	Result          string `db:"result"`
}

type matchPlayerInsertModel struct {
	MatchID      int64           `db:"match_id"`
	Team         int             `db:"team"`
	Role         string          `db:"role"`
	Level        int             `db:"level"`
	Champion     string          `db:"champion"`
	SummonerName string          `db:"summoner_name"`
	Spell1       string          `db:"spell1"`
	Spell2       string          `db:"spell2"`
	Kills        int             `db:"kills"`
	Deaths       int             `db:"deaths"`
	Assists      int             `db:"assists"`
	KDA          sql.NullFloat64 `db:"kda"`
	Damage       int             `db:"damage"`
	Gold         int             `db:"gold"`
	Vision       sql.NullInt64   `db:"vision"`
}

func newMatchInsertModel(record match.Record) matchInsertModel {
	return matchInsertModel{
		GameTime:        record.GameTime,
		DurationSeconds: record.DurationSeconds,
		Result:          record.Result,
	}
}

func newMatchPlayerInsertModel(matchID int64, player match.Player) matchPlayerInsertModel {
	return matchPlayerInsertModel{
		MatchID:      matchID,
		Team:         player.Team,
		Role:         player.Role,
		Level:        player.Level,
		Champion:     player.Champion,
		SummonerName: player.SummonerName,
		Spell1:       player.Spell1,
		Spell2:       player.Spell2,
		Kills:        player.Kills,
		Deaths:       player.Deaths,
		Assists:      player.Assists,
		KDA:          ptrToNullFloat64(player.KDA),
		Damage:       player.Damage,
		Gold:         player.Gold,
		Vision:       intPtrToNullInt64(player.Vision),
	}
}

func (m matchTableModel) toDomain() match.Record {
	return match.Record{
		ID:              m.ID,
		GameTime:        m.GameTime,
		DurationSeconds: m.DurationSeconds,
		Result:          m.Result,
		CreatedAt:       m.CreatedAt,
	}
}

func (m matchPlayerTableModel) toDomain() match.Player {
	return match.Player{
		ID:           m.ID,
		Team:         m.Team,
		Role:         m.Role,
		Level:        m.Level,
		Champion:     m.Champion,
		SummonerName: m.SummonerName,
		Spell1:       m.Spell1,
		Spell2:       m.Spell2,
		Kills:        m.Kills,
		Deaths:       m.Deaths,
		Assists:      m.Assists,
		KDA:          nullFloat64ToPtr(m.KDA),
		Damage:       m.Damage,
		Gold:         m.Gold,
		Vision:       nullInt64ToIntPtr(m.Vision),
	}
}

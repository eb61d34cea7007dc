package httpapi

import (
	"time"

	"github.com/riftlog/riftlog/internal/domain/draft"
	"github.com/riftlog/riftlog/internal/domain/match"
	"github.com/riftlog/riftlog/internal/domain/stats"
)

type playerDTO struct {
	ID           int64    `json:"id,omitempty"`
	Team         int      `json:"team"`
	Role         string   `json:"role"`
	Level        int      `json:"level"`
	Champion     string   `json:"champion"`
	SummonerName string   `json:"summonerName"`
	Spell1       string   `json:"spell1"`
	Spell2       string   `json:"spell2"`
	Kills        int      `json:"kills"`
	Deaths       int      `json:"deaths"`
	Assists      int      `json:"assists"`
	KDA          *float64 `json:"kda"`
	Damage       int      `json:"damage"`
	Gold         int      `json:"gold"`
	Vision       *int     `json:"vision"`
}

type matchRecordDTO struct {
	ID              int64       `json:"id,omitempty"`
	GameTime        string      `json:"gameTime"`
	DurationSeconds int         `json:"durationSeconds,omitempty"`
	Result          string      `json:"result"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
	Players         []playerDTO `json:"players"`
}

func playerToDTO(p match.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		Team:         p.Team,
		Role:         p.Role,
		Level:        p.Level,
		Champion:     p.Champion,
		SummonerName: p.SummonerName,
		Spell1:       p.Spell1,
		Spell2:       p.Spell2,
		Kills:        p.Kills,
		Deaths:       p.Deaths,
		Assists:      p.Assists,
		KDA:          p.KDA,
		Damage:       p.Damage,
		Gold:         p.Gold,
		Vision:       p.Vision,
	}
}

func (d playerDTO) toDomain() match.Player {
	return match.Player{
		ID:           d.ID,
		Team:         d.Team,
		Role:         d.Role,
		Level:        d.Level,
		Champion:     d.Champion,
		SummonerName: d.SummonerName,
		Spell1:       d.Spell1,
		Spell2:       d.Spell2,
		Kills:        d.Kills,
		Deaths:       d.Deaths,
		Assists:      d.Assists,
		KDA:          d.KDA,
		Damage:       d.Damage,
		Gold:         d.Gold,
		Vision:       d.Vision,
	}
}

func recordToDTO(record match.Record) matchRecordDTO {
	dto := matchRecordDTO{
		ID:              record.ID,
		GameTime:        record.GameTime,
		DurationSeconds: record.DurationSeconds,
		Result:          record.Result,
		Players:         make([]playerDTO, 0, len(record.Players)),
	}
	if !record.CreatedAt.IsZero() {
		created := record.CreatedAt
		dto.CreatedAt = &created
	}
	for _, p := range record.Players {
		dto.Players = append(dto.Players, playerToDTO(p))
	}
	return dto
}

func (d matchRecordDTO) toDomain() match.Record {
	record := match.Record{
		ID:              d.ID,
		GameTime:        d.GameTime,
		DurationSeconds: d.DurationSeconds,
		Result:          d.Result,
	}
	if record.DurationSeconds == 0 {
		record.DurationSeconds = match.ClockToSeconds(d.GameTime)
	}
	if d.CreatedAt != nil {
		record.CreatedAt = *d.CreatedAt
	}
	if d.Players != nil {
		record.Players = make([]match.Player, 0, len(d.Players))
		for _, p := range d.Players {
			record.Players = append(record.Players, p.toDomain())
		}
	}
	return record
}

type statsDTO struct {
	OccurrenceCount    int     `json:"occurrenceCount"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinRate            float64 `json:"winRate"`
	TotalKills         int     `json:"totalKills"`
	TotalDeaths        int     `json:"totalDeaths"`
	TotalAssists       int     `json:"totalAssists"`
	AvgKills           float64 `json:"avgKills"`
	AvgDeaths          float64 `json:"avgDeaths"`
	AvgAssists         float64 `json:"avgAssists"`
	AvgKDA             float64 `json:"avgKda"`
	AvgGoldPerMinute   float64 `json:"avgGoldPerMinute"`
	AvgDamagePerMinute float64 `json:"avgDamagePerMinute"`
}

func statsToDTO(summary *stats.Summary) *statsDTO {
	if summary == nil {
		return nil
	}
	return &statsDTO{
		OccurrenceCount:    summary.Occurrences,
		Wins:               summary.Wins,
		Losses:             summary.Losses,
		WinRate:            summary.WinRate,
		TotalKills:         summary.TotalKills,
		TotalDeaths:        summary.TotalDeaths,
		TotalAssists:       summary.TotalAssists,
		AvgKills:           summary.AvgKills,
		AvgDeaths:          summary.AvgDeaths,
		AvgAssists:         summary.AvgAssists,
		AvgKDA:             summary.AvgKDA,
		AvgGoldPerMinute:   summary.AvgGoldPerMinute,
		AvgDamagePerMinute: summary.AvgDamagePerMinute,
	}
}

type filterDTO struct {
	Name     string `json:"name"`
	Champion string `json:"champion"`
	Role     string `json:"role"`
	Outcome  string `json:"outcome"`
}

type draftRowDTO struct {
	Index       int       `json:"index"`
	Player      playerDTO `json:"player"`
	DerivedKDA  float64   `json:"derivedKda"`
	ReportedKDA *float64  `json:"reportedKda"`
}

type draftDisplayDTO struct {
	Team1 []draftRowDTO `json:"team1"`
	Team2 []draftRowDTO `json:"team2"`
}

func draftDisplayToDTO(display draft.Display) draftDisplayDTO {
	return draftDisplayDTO{
		Team1: draftRowsToDTO(display.Team1),
		Team2: draftRowsToDTO(display.Team2),
	}
}

func draftRowsToDTO(rows []draft.Row) []draftRowDTO {
	out := make([]draftRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, draftRowDTO{
			Index:       row.Index,
			Player:      playerToDTO(row.Player),
			DerivedKDA:  row.DerivedKDA,
			ReportedKDA: row.ReportedKDA,
		})
	}
	return out
}

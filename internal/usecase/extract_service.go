package usecase

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/riftlog/riftlog/internal/domain/match"
)

// VisionClient is the outbound port to a multimodal model that turns a
// scoreboard screenshot into text.
type VisionClient interface {
	GenerateFromImage(ctx context.Context, mimeType string, image []byte, prompt string) (string, error)
}

const defaultExtractConcurrency = 4

const extractionPrompt = `Read the attached game result screenshot and return the scoreboard as JSON.

Return ONLY a JSON object with this shape:
{
  "gameTime": "mm:ss",
  "result": "win" or "loss" from team 1's perspective,
  "players": [
    {
      "team": 1 or 2,
      "role": "top" | "jungle" | "mid" | "adc" | "support",
      "level": number,
      "champion": "champion name",
      "summonerName": "player name",
      "spell1": "summoner spell name",
      "spell2": "summoner spell name",
      "kills": number,
      "deaths": number,
      "assists": number,
      "kda": number or null,
      "damage": number,
      "gold": number,
      "vision": number or null
    }
  ]
}

List all 10 players, team 1 first, each team ordered top, jungle, mid, adc, support. Use 0 for any numeric value you cannot read. Do not add commentary outside the JSON.`

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

type ExtractService struct {
	vision VisionClient
	pool   *ants.Pool
}

func NewExtractService(vision VisionClient, maxConcurrent int) (*ExtractService, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultExtractConcurrency
	}
	pool, err := ants.NewPool(maxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("create extraction worker pool: %w", err)
	}
	return &ExtractService{vision: vision, pool: pool}, nil
}

// Close releases the worker pool. Pending extractions fail fast after
// this call.
func (s *ExtractService) Close() {
	s.pool.Release()
}

// ExtractFromImage sends the screenshot to the vision model and parses
// the reply into a match record. The pool caps how many model calls run
// at once across all requests.
func (s *ExtractService) ExtractFromImage(ctx context.Context, mimeType string, image []byte) (match.Record, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractService.ExtractFromImage")
	defer span.End()

	if len(image) == 0 {
		return match.Record{}, "", fmt.Errorf("%w: image payload is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(mimeType) == "" {
		return match.Record{}, "", fmt.Errorf("%w: mime type is empty", ErrInvalidInput)
	}

	type visionResult struct {
		text string
		err  error
	}
	done := make(chan visionResult, 1)
	if err := s.pool.Submit(func() {
		text, err := s.vision.GenerateFromImage(ctx, mimeType, image, extractionPrompt)
		done <- visionResult{text: text, err: err}
	}); err != nil {
		return match.Record{}, "", fmt.Errorf("%w: submit extraction task: %v", ErrDependencyUnavailable, err)
	}

	var raw string
	select {
	case <-ctx.Done():
		return match.Record{}, "", ctx.Err()
	case result := <-done:
		if result.err != nil {
			return match.Record{}, "", fmt.Errorf("%w: call vision model: %v", ErrDependencyUnavailable, result.err)
		}
		raw = result.text
	}

	record, err := ParseModelReply(raw)
	if err != nil {
		return match.Record{}, raw, err
	}
	return record, raw, nil
}

// ParseModelReply turns a raw model reply into a validated record. It
// prefers a fenced json block; absent one, the whole reply is treated
// as the payload.
func ParseModelReply(raw string) (match.Record, error) {
	payload := strings.TrimSpace(raw)
	if m := fencedJSONPattern.FindStringSubmatch(raw); len(m) == 2 {
		payload = m[1]
	}

	var dto extractedRecord
	if err := sonic.Unmarshal([]byte(payload), &dto); err != nil {
		return match.Record{}, &DecodeError{Raw: raw, Err: err}
	}

	record := dto.toRecord()
	if err := match.ValidateRecord(record); err != nil {
		return match.Record{}, &ValidationError{Raw: raw, Err: err}
	}
	return record, nil
}

// extractedRecord mirrors the JSON the model is asked to emit. Numeric
// fields decode loosely: the model sometimes quotes numbers or emits
// junk for an unreadable cell, and either case should land on zero
// rather than fail the whole extraction.
type extractedRecord struct {
	GameTime string            `json:"gameTime"`
	Result   string            `json:"result"`
	Players  []extractedPlayer `json:"players"`
}

type extractedPlayer struct {
	Team         looseInt    `json:"team"`
	Role         string      `json:"role"`
	Level        looseInt    `json:"level"`
	Champion     string      `json:"champion"`
	SummonerName string      `json:"summonerName"`
	Spell1       string      `json:"spell1"`
	Spell2       string      `json:"spell2"`
	Kills        looseInt    `json:"kills"`
	Deaths       looseInt    `json:"deaths"`
	Assists      looseInt    `json:"assists"`
	KDA          *looseFloat `json:"kda"`
	Damage       looseInt    `json:"damage"`
	Gold         looseInt    `json:"gold"`
	Vision       *looseInt   `json:"vision"`
}

func (r extractedRecord) toRecord() match.Record {
	record := match.Record{
		GameTime:        strings.TrimSpace(r.GameTime),
		DurationSeconds: match.ClockToSeconds(r.GameTime),
		Result:          normalizeResult(r.Result),
	}
	if r.Players == nil {
		return record
	}
	record.Players = make([]match.Player, 0, len(r.Players))
	for _, p := range r.Players {
		player := match.Player{
			Team:         int(p.Team),
			Role:         strings.ToLower(strings.TrimSpace(p.Role)),
			Level:        int(p.Level),
			Champion:     strings.TrimSpace(p.Champion),
			SummonerName: strings.TrimSpace(p.SummonerName),
			Spell1:       strings.TrimSpace(p.Spell1),
			Spell2:       strings.TrimSpace(p.Spell2),
			Kills:        int(p.Kills),
			Deaths:       int(p.Deaths),
			Assists:      int(p.Assists),
			Damage:       int(p.Damage),
			Gold:         int(p.Gold),
		}
		if p.KDA != nil {
			v := float64(*p.KDA)
			player.KDA = &v
		}
		if p.Vision != nil {
			v := int(*p.Vision)
			player.Vision = &v
		}
		record.Players = append(record.Players, player)
	}
	return record
}

func normalizeResult(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "win", "victory", "won":
		return match.ResultWin
	case "loss", "lose", "lost", "defeat":
		return match.ResultLoss
	default:
		return strings.ToLower(strings.TrimSpace(result))
	}
}

type looseInt int

func (v *looseInt) UnmarshalJSON(data []byte) error {
	*v = looseInt(parseLooseNumber(data))
	return nil
}

type looseFloat float64

func (v *looseFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(data), `"`)
	parsed, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		parsed = 0
	}
	*v = looseFloat(parsed)
	return nil
}

func parseLooseNumber(data []byte) int {
	trimmed := bytes.Trim(bytes.TrimSpace(data), `"`)
	cleaned := make([]byte, 0, len(trimmed))
	for _, c := range trimmed {
		if c == ',' {
			continue
		}
		cleaned = append(cleaned, c)
	}
	parsed, err := strconv.ParseFloat(string(cleaned), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return int(parsed)
}

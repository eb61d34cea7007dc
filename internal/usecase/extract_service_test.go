package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/riftlog/riftlog/internal/domain/match"
)

func modelReplyPayload(playerCount int) string {
	var sb strings.Builder
	sb.WriteString(`{"gameTime":"27:17","result":"win","players":[`)
	for i := 0; i < playerCount; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		team := match.TeamBlue
		role := match.RoleOrder[i%match.PlayersPerTeam]
		if i >= match.PlayersPerTeam {
			team = match.TeamRed
		}
		fmt.Fprintf(&sb, `{"team":%d,"role":"%s","level":14,"champion":"Champ%d","summonerName":"Player%d","spell1":"Flash","spell2":"Ignite","kills":3,"deaths":2,"assists":5,"kda":4.0,"damage":15000,"gold":9000,"vision":12}`,
			team, role, i, i)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

type stubVisionClient struct {
	reply string
	err   error

	calls     int
	gotMIME   string
	gotPrompt string
}

func (c *stubVisionClient) GenerateFromImage(_ context.Context, mimeType string, _ []byte, prompt string) (string, error) {
	c.calls++
	c.gotMIME = mimeType
	c.gotPrompt = prompt
	return c.reply, c.err
}

func TestParseModelReply_FencedBlock(t *testing.T) {
	t.Parallel()

	raw := "Here is the scoreboard.\n```json\n" + modelReplyPayload(10) + "\n```\nLet me know if anything looks off."
	record, err := ParseModelReply(raw)
	if err != nil {
		t.Fatalf("parse fenced reply: %v", err)
	}
	if record.GameTime != "27:17" {
		t.Fatalf("unexpected game time: %s", record.GameTime)
	}
	if record.DurationSeconds != 1637 {
		t.Fatalf("unexpected duration: %d", record.DurationSeconds)
	}
	if record.Result != match.ResultWin {
		t.Fatalf("unexpected result: %s", record.Result)
	}
	if len(record.Players) != match.PlayersPerMatch {
		t.Fatalf("unexpected player count: %d", len(record.Players))
	}
}

func TestParseModelReply_BareJSON(t *testing.T) {
	t.Parallel()

	record, err := ParseModelReply(modelReplyPayload(10))
	if err != nil {
		t.Fatalf("parse bare reply: %v", err)
	}
	if len(record.Players) != match.PlayersPerMatch {
		t.Fatalf("unexpected player count: %d", len(record.Players))
	}
}

func TestParseModelReply_DecodeErrorKeepsRaw(t *testing.T) {
	t.Parallel()

	raw := "Sorry, I cannot read this screenshot."
	_, err := ParseModelReply(raw)
	if err == nil {
		t.Fatal("expected decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decodeErr.Raw != raw {
		t.Fatalf("raw reply not preserved: %q", decodeErr.Raw)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("decode error should map to invalid input, got %v", err)
	}
	if got, ok := RawReply(err); !ok || got != raw {
		t.Fatalf("RawReply = %q, %v", got, ok)
	}
}

func TestParseModelReply_IncompleteRosterFailsValidation(t *testing.T) {
	t.Parallel()

	_, err := ParseModelReply(modelReplyPayload(9))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !errors.Is(validationErr.Err, match.ErrWrongPlayerCount) {
		t.Fatalf("unexpected cause: %v", validationErr.Err)
	}
	if !strings.Contains(validationErr.Err.Error(), "got 9") {
		t.Fatalf("error should cite the actual count: %v", validationErr.Err)
	}
}

func TestParseModelReply_LooseNumbers(t *testing.T) {
	t.Parallel()

	raw := `{"gameTime":"30:00","result":"Victory","players":[` +
		`{"team":"1","role":"top","level":"16","champion":"Sett","summonerName":"TopLaner","spell1":"Flash","spell2":"Teleport","kills":"5","deaths":"??","assists":3,"kda":null,"damage":"21,450","gold":"11,200","vision":null}`
	for i := 1; i < 10; i++ {
		team := 1
		if i >= 5 {
			team = 2
		}
		raw += fmt.Sprintf(`,{"team":%d,"role":"mid","level":10,"champion":"C","summonerName":"P%d","spell1":"Flash","spell2":"Ignite","kills":0,"deaths":0,"assists":0,"kda":null,"damage":0,"gold":0,"vision":null}`, team, i)
	}
	raw += `]}`

	record, err := ParseModelReply(raw)
	if err != nil {
		t.Fatalf("parse loose reply: %v", err)
	}
	if record.Result != match.ResultWin {
		t.Fatalf("result not normalized: %s", record.Result)
	}
	top := record.Players[0]
	if top.Team != match.TeamBlue || top.Level != 16 || top.Kills != 5 {
		t.Fatalf("quoted numbers not coerced: %+v", top)
	}
	if top.Deaths != 0 {
		t.Fatalf("unreadable value should land on zero, got %d", top.Deaths)
	}
	if top.Damage != 21450 || top.Gold != 11200 {
		t.Fatalf("thousand separators not handled: damage=%d gold=%d", top.Damage, top.Gold)
	}
	if top.KDA != nil || top.Vision != nil {
		t.Fatalf("null optionals should stay nil: %+v", top)
	}
}

func TestExtractService_ExtractFromImage(t *testing.T) {
	t.Parallel()

	vision := &stubVisionClient{reply: "```json\n" + modelReplyPayload(10) + "\n```"}
	service, err := NewExtractService(vision, 2)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	defer service.Close()

	record, raw, err := service.ExtractFromImage(context.Background(), "image/png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(record.Players) != match.PlayersPerMatch {
		t.Fatalf("unexpected player count: %d", len(record.Players))
	}
	if raw != vision.reply {
		t.Fatal("raw model reply not returned")
	}
	if vision.gotMIME != "image/png" {
		t.Fatalf("unexpected mime type: %s", vision.gotMIME)
	}
	if !strings.Contains(vision.gotPrompt, "JSON") {
		t.Fatal("prompt should ask for JSON")
	}
}

func TestExtractService_EmptyImage(t *testing.T) {
	t.Parallel()

	service, err := NewExtractService(&stubVisionClient{}, 1)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	defer service.Close()

	_, _, err = service.ExtractFromImage(context.Background(), "image/png", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractService_EmptyMimeType(t *testing.T) {
	t.Parallel()

	vision := &stubVisionClient{}
	service, err := NewExtractService(vision, 1)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	defer service.Close()

	_, _, err = service.ExtractFromImage(context.Background(), "  ", []byte{1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if vision.calls != 0 {
		t.Fatalf("vision should not be called without a mime type, got %d calls", vision.calls)
	}
}

func TestExtractService_ModelUnavailable(t *testing.T) {
	t.Parallel()

	vision := &stubVisionClient{err: errors.New("upstream 503")}
	service, err := NewExtractService(vision, 1)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	defer service.Close()

	_, _, err = service.ExtractFromImage(context.Background(), "image/png", []byte{1})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

package httpapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riftlog/riftlog/internal/domain/draft"
	"github.com/riftlog/riftlog/internal/domain/match"
	"github.com/riftlog/riftlog/internal/usecase"
)

const maxRequestBodyBytes = 12 << 20

type Handler struct {
	extractService *usecase.ExtractService
	matchService   *usecase.MatchService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	extractService *usecase.ExtractService,
	matchService *usecase.MatchService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		extractService: extractService,
		matchService:   matchService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type extractRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
}

func (h *Handler) ExtractMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExtractMatch")
	defer span.End()

	var req extractRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: image is not valid base64: %v", usecase.ErrInvalidInput, err))
		return
	}

	record, raw, err := h.extractService.ExtractFromImage(ctx, req.MimeType, image)
	if err != nil {
		h.logger.WarnContext(ctx, "extract match failed", "error", err)
		// A reply that decodes badly or fails validation is still a
		// completed request: report it as 200 with the raw model text,
		// distinct from a transport or upstream failure.
		if rawReply, ok := usecase.RawReply(err); ok {
			writeJSON(ctx, w, http.StatusOK, responseEnvelope{
				Success:     false,
				Error:       err.Error(),
				RawResponse: rawReply,
			})
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success:     true,
		Data:        recordToDTO(record),
		RawResponse: raw,
	})
}

func (h *Handler) SaveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMatch")
	defer span.End()

	var req matchRecordDTO
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.matchService.SaveMatch(ctx, req.toDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "save match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{
		"id":       saved.ID,
		"gameTime": saved.GameTime,
		"result":   saved.Result,
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter := match.Filter{
		Name:     strings.TrimSpace(r.URL.Query().Get("name")),
		Champion: strings.TrimSpace(r.URL.Query().Get("champion")),
		Role:     strings.TrimSpace(r.URL.Query().Get("role")),
		Result:   strings.TrimSpace(r.URL.Query().Get("outcome")),
	}

	result, err := h.matchService.Search(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	records := make([]matchRecordDTO, 0, len(result.Matches))
	for _, record := range result.Matches {
		records = append(records, recordToDTO(record))
	}

	count := len(records)
	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success: true,
		Data:    records,
		Stats:   statsToDTO(result.Stats),
		Count:   &count,
		Filter: filterDTO{
			Name:     filter.Name,
			Champion: filter.Champion,
			Role:     filter.Role,
			Outcome:  filter.Result,
		},
	})
}

func (h *Handler) ResetMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetMatches")
	defer span.End()

	if err := h.matchService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success: true,
		Message: "all match data deleted",
	})
}

type draftEditRequest struct {
	Record      matchRecordDTO `json:"record" validate:"required"`
	PlayerIndex *int           `json:"playerIndex"`
	Field       string         `json:"field" validate:"required"`
	Value       any            `json:"value"`
}

func (h *Handler) EditDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditDraft")
	defer span.End()

	var req draftEditRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	target := "game"
	index := 0
	if req.PlayerIndex != nil {
		target = "player"
		index = *req.PlayerIndex
	}

	edited, err := h.matchService.ApplyDraftEdit(ctx, req.Record.toDomain(), target, index, req.Field, req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "edit draft failed", "field", req.Field, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"record":  recordToDTO(edited),
		"display": draftDisplayToDTO(draft.Project(edited)),
	})
}

func (h *Handler) decodeBody(ctx context.Context, r *http.Request, target any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeBody")
	defer span.End()

	body := io.LimitReader(r.Body, maxRequestBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, target any) error {
	if err := h.decodeBody(ctx, r, target); err != nil {
		return err
	}
	if err := h.validator.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/example/reunionpro/internal/application"
)

type summaryService interface {
	Summarize(ctx context.Context, input application.SummaryInput) (string, error)
}

type SummaryHandler struct {
	service   summaryService
	responder responder
	logger    *slog.Logger
}

func NewSummaryHandler(service summaryService, logger *slog.Logger) *SummaryHandler {
	base := defaultLogger(logger)
	return &SummaryHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SummaryHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SummaryHandler", operation, attrs...)
}

// Create generates a structured French meeting report from a transcript and
// returns it as free text.
func (h *SummaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode summary request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "title", req.Title)

	summary, err := h.service.Summarize(r.Context(), application.SummaryInput{
		Transcript:   req.Transcript,
		Title:        req.Title,
		Participants: req.Participants,
		Duration:     req.durationString(),
		RoomName:     req.RoomName,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "summary generation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "summary generated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, summaryResponse{Summary: summary})
}

type summaryRequest struct {
	Transcript   string   `json:"transcript"`
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	// Duration is tolerated as either a string or a number of minutes.
	Duration any    `json:"duration"`
	RoomName string `json:"roomName"`
}

func (r summaryRequest) durationString() string {
	switch v := r.Duration.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%d min", int(v))
	default:
		return fmt.Sprint(v)
	}
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

package http

import (
	"log/slog"
	"net/http"
)

// CredentialStatus reports which upstream credentials are configured.
type CredentialStatus interface {
	DailyConfigured() bool
	OpenAIConfigured() bool
}

type HealthHandler struct {
	status    CredentialStatus
	responder responder
}

func NewHealthHandler(status CredentialStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{status: status, responder: newResponder(defaultLogger(logger))}
}

// Show reports credential presence. No liveness checks beyond that.
func (h *HealthHandler) Show(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.status == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status: "ok",
		Daily:  h.status.DailyConfigured(),
		OpenAI: h.status.OpenAIConfigured(),
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Daily  bool   `json:"daily"`
	OpenAI bool   `json:"openai"`
}

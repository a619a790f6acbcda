package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/reunionpro/internal/application"
)

var (
	errBadRequestBody = errors.New("Format de requête invalide.")
	errMissingRoom    = errors.New("Le nom de la salle est requis.")
	errMissingAudio   = errors.New("Pas de fichier audio")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeRaw forwards an upstream JSON payload without re-encoding it.
func (r responder) writeRaw(ctx context.Context, w http.ResponseWriter, status int, payload json.RawMessage) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to write response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Error: message})
}

// handleServiceError translates application errors into the error contract:
// validation failures return 400 before any upstream work, upstream
// failures echo the upstream status with the provider's own error body,
// and everything else is a 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: localizeValidationErrors(vErr)})
		return
	}

	var uErr *application.UpstreamError
	if errors.As(err, &uErr) {
		var body json.RawMessage
		if json.Unmarshal([]byte(uErr.Body), &body) == nil && len(body) > 0 {
			r.writeJSON(ctx, w, uErr.Status, errorResponse{Error: body})
		} else {
			r.writeJSON(ctx, w, uErr.Status, errorResponse{Error: uErr.Body})
		}
		return
	}

	switch {
	case errors.Is(err, application.ErrProviderNotConfigured):
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "Clé API non configurée sur le serveur."})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "Ressource introuvable."})
	default:
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requête invalide."
	case http.StatusNotFound:
		return "Ressource introuvable."
	default:
		return "Erreur interne du serveur."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return "Requête invalide."
	}
	for field, msg := range vErr.FieldErrors {
		return translateValidationMessage(field, msg)
	}
	return "Requête invalide."
}

func translateValidationMessage(field, message string) string {
	switch message {
	case "room name is required":
		return "Le nom de la salle est requis."
	case "audio file is required":
		return "Pas de fichier audio"
	case "transcript is required":
		return "La transcription est requise."
	default:
		return field + " : " + message
	}
}

type errorResponse struct {
	Error any `json:"error"`
}

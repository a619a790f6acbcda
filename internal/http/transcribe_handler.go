package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/example/reunionpro/internal/application"
	"github.com/example/reunionpro/internal/openai"
)

// maxUploadBytes bounds the in-memory part of a multipart audio upload.
const maxUploadBytes = 32 << 20

type transcriptService interface {
	Transcribe(ctx context.Context, params application.TranscribeParams) (openai.Transcription, error)
}

type TranscribeHandler struct {
	service   transcriptService
	uploadDir string
	responder responder
	logger    *slog.Logger
}

func NewTranscribeHandler(service transcriptService, uploadDir string, logger *slog.Logger) *TranscribeHandler {
	base := defaultLogger(logger)
	return &TranscribeHandler{service: service, uploadDir: uploadDir, responder: newResponder(base), logger: base}
}

func (h *TranscribeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TranscribeHandler", operation, attrs...)
}

// Create accepts one uploaded audio file and returns its transcription. The
// upload is spooled to a temp file that the service removes on success and
// on failure alike.
func (h *TranscribeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Create")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.ErrorContext(r.Context(), "failed to parse upload", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingAudio)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		logger.ErrorContext(r.Context(), "missing audio field", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingAudio)
		return
	}
	defer file.Close()

	uploadPath, err := h.spoolUpload(file, header.Filename)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to spool upload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	result, err := h.service.Transcribe(r.Context(), application.TranscribeParams{
		FilePath: uploadPath,
		RoomName: r.FormValue("roomName"),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "transcription failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("segment_count", len(result.Segments)).InfoContext(r.Context(), "audio transcribed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, transcriptionResponse{
		Text:     result.Text,
		Segments: result.Segments,
	})
}

func (h *TranscribeHandler) spoolUpload(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(originalName))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

type transcriptionResponse struct {
	Text     string           `json:"text"`
	Segments []openai.Segment `json:"segments"`
}

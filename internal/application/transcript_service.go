package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/example/reunionpro/internal/openai"
)

// Transcriber captures the transcription engine operation.
type Transcriber interface {
	Configured() bool
	Transcribe(ctx context.Context, audioPath string) (openai.Transcription, error)
}

// TranscriptService owns uploaded audio files for the duration of a
// transcription request. The temporary file is removed whether the upstream
// call succeeds or fails, so failed transcriptions cannot leak disk space.
type TranscriptService struct {
	transcriber Transcriber
	archive     MeetingArchive
	logger      *slog.Logger
}

// NewTranscriptService constructs a transcript service. The archive may be nil.
func NewTranscriptService(transcriber Transcriber, archive MeetingArchive, logger *slog.Logger) *TranscriptService {
	return &TranscriptService{transcriber: transcriber, archive: archive, logger: defaultLogger(logger)}
}

func (s *TranscriptService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TranscriptService", operation, attrs...)
}

// Transcribe sends the uploaded file to the transcription engine and returns
// full text plus per-segment timing.
func (s *TranscriptService) Transcribe(ctx context.Context, params TranscribeParams) (result openai.Transcription, err error) {
	if s == nil {
		err = fmt.Errorf("TranscriptService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Transcribe", "file", params.FilePath)
	defer func() {
		if removeErr := os.Remove(params.FilePath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logger.WarnContext(ctx, "failed to remove upload file", "error", removeErr)
		}
		if err != nil {
			logger.ErrorContext(ctx, "transcription failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("segment_count", len(result.Segments)).InfoContext(ctx, "audio transcribed")
	}()

	if params.FilePath == "" {
		vErr := &ValidationError{}
		vErr.add("audio", "audio file is required")
		err = vErr
		return
	}
	if s.transcriber == nil || !s.transcriber.Configured() {
		err = ErrProviderNotConfigured
		return
	}

	result, err = s.transcriber.Transcribe(ctx, params.FilePath)
	if err != nil {
		err = mapEngineError(err)
		return
	}

	if s.archive != nil && params.RoomName != "" {
		if archiveErr := s.archive.AttachTranscript(ctx, params.RoomName, result.Text); archiveErr != nil {
			logger.WarnContext(ctx, "failed to archive transcript", "error", archiveErr)
		}
	}
	return
}

// EngineConfigured reports whether the AI engine credential is set.
func (s *TranscriptService) EngineConfigured() bool {
	return s != nil && s.transcriber != nil && s.transcriber.Configured()
}

func mapEngineError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: "openai", Status: apiErr.Status, Body: apiErr.Body}
	}
	return err
}

package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/reunionpro/internal/openai"
)

type stubTranscriber struct {
	configured bool
	audioPath  string
	result     openai.Transcription
	err        error
}

func (s *stubTranscriber) Configured() bool { return s.configured }

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (openai.Transcription, error) {
	s.audioPath = audioPath
	return s.result, s.err
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.webm")
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("writing temp audio: %v", err)
	}
	return path
}

func TestTranscriptServiceTranscribe(t *testing.T) {
	path := writeTempAudio(t)
	transcriber := &stubTranscriber{
		configured: true,
		result: openai.Transcription{
			Text:     "Bonjour à tous.",
			Segments: []openai.Segment{{ID: 0, Start: 0, End: 1.5, Text: "Bonjour à tous."}},
		},
	}
	archive := newCapturingArchive()
	svc := NewTranscriptService(transcriber, archive, nil)

	result, err := svc.Transcribe(context.Background(), TranscribeParams{FilePath: path, RoomName: "rp-abc123"})
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if result.Text != "Bonjour à tous." {
		t.Fatalf("unexpected transcript text: %q", result.Text)
	}
	if transcriber.audioPath != path {
		t.Fatalf("transcriber received unexpected path: %q", transcriber.audioPath)
	}
	if archive.transcripts["rp-abc123"] != "Bonjour à tous." {
		t.Fatalf("expected transcript to be archived, got %+v", archive.transcripts)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected upload file to be removed after success, stat err: %v", err)
	}
}

func TestTranscriptServiceRemovesFileOnFailure(t *testing.T) {
	path := writeTempAudio(t)
	transcriber := &stubTranscriber{
		configured: true,
		err:        &openai.APIError{Status: 500, Body: "engine exploded"},
	}
	svc := NewTranscriptService(transcriber, nil, nil)

	_, err := svc.Transcribe(context.Background(), TranscribeParams{FilePath: path})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upErr.Provider != "openai" || upErr.Status != 500 {
		t.Fatalf("unexpected upstream error: %+v", upErr)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected upload file to be removed after failure, stat err: %v", statErr)
	}
}

func TestTranscriptServiceRequiresFilePath(t *testing.T) {
	svc := NewTranscriptService(&stubTranscriber{configured: true}, nil, nil)

	_, err := svc.Transcribe(context.Background(), TranscribeParams{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.FieldErrors["audio"] == "" {
		t.Fatalf("expected an audio field error, got %+v", vErr.FieldErrors)
	}
}

func TestTranscriptServiceNotConfigured(t *testing.T) {
	path := writeTempAudio(t)
	svc := NewTranscriptService(&stubTranscriber{configured: false}, nil, nil)

	_, err := svc.Transcribe(context.Background(), TranscribeParams{FilePath: path})
	if !errors.Is(err, ErrProviderNotConfigured) {
		t.Fatalf("expected ErrProviderNotConfigured, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected upload file to be removed even when engine is unconfigured, stat err: %v", statErr)
	}
}

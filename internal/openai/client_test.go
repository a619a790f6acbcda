package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL)
}

func TestTranscribeSendsMultipartRequest(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "meeting.webm")
	if err := os.WriteFile(audioPath, []byte("fake audio bytes"), 0o644); err != nil {
		t.Fatalf("writing audio file: %v", err)
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/audio/transcriptions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Fatalf("unexpected model: %q", got)
		}
		if got := r.FormValue("language"); got != "fr" {
			t.Fatalf("unexpected language: %q", got)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Fatalf("unexpected response_format: %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "meeting.webm" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "fake audio bytes" {
			t.Fatalf("unexpected file content: %q", content)
		}

		json.NewEncoder(w).Encode(Transcription{
			Text:     "Bonjour à tous.",
			Segments: []Segment{{ID: 0, Start: 0, End: 1.2, Text: "Bonjour à tous."}},
		})
	})

	result, err := client.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if result.Text != "Bonjour à tous." {
		t.Fatalf("unexpected transcript: %q", result.Text)
	}
	if len(result.Segments) != 1 || result.Segments[0].End != 1.2 {
		t.Fatalf("unexpected segments: %+v", result.Segments)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	client := NewClient("test-key", "http://unused.invalid")

	if _, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.webm")); err == nil {
		t.Fatalf("expected error for missing audio file")
	}
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"le compte rendu"}}]}`))
	})

	got, err := client.Complete(context.Background(), "résume cette réunion")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "le compte rendu" {
		t.Fatalf("unexpected completion: %q", got)
	}
	if captured["model"] != "gpt-4o" {
		t.Fatalf("unexpected model: %v", captured["model"])
	}
	if captured["temperature"] != 0.3 {
		t.Fatalf("unexpected temperature: %v", captured["temperature"])
	}
	messages := captured["messages"].([]any)
	first := messages[0].(map[string]any)
	if first["role"] != "user" || first["content"] != "résume cette réunion" {
		t.Fatalf("unexpected message: %+v", first)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestCompleteAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := client.Complete(context.Background(), "prompt")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
}

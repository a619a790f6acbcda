// Package pipeline runs the post-call report generation: the recorded audio
// is transcribed first, then the transcript is condensed into a structured
// French summary. The two stages run strictly in order; a summary is never
// requested without a transcript.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Progress milestones reported while the pipeline runs.
const (
	ProgressUploading   = 20
	ProgressTranscribed = 50
	ProgressSummarizing = 80
	ProgressDone        = 100
)

// Segment is one timed slice of the transcript.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the output of the first stage.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Report is the complete output of a successful run.
type Report struct {
	Transcript Transcript
	Summary    string
}

// Request describes one pipeline run.
type Request struct {
	AudioPath    string
	RoomName     string
	Title        string
	Participants []string
	Duration     string
}

// StageError reports which stage failed. When Stage is "summary" the
// transcript from the first stage is still available in the partial report.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Client drives the pipeline against the reunionpro backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a pipeline client for the backend at baseURL.
// Transcription of long recordings can be slow, so the HTTP timeout is
// generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Run executes both stages. onProgress, when non-nil, receives the
// milestones 20, 50, 80 and 100 as the run advances. When the summary stage
// fails the returned report still carries the transcript, alongside a
// *StageError with Stage "summary".
func (c *Client) Run(ctx context.Context, req Request, onProgress func(int)) (Report, error) {
	report := Report{}
	notify := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	notify(ProgressUploading)
	transcript, err := c.Transcribe(ctx, req.AudioPath, req.RoomName)
	if err != nil {
		return report, &StageError{Stage: "transcription", Err: err}
	}
	report.Transcript = transcript
	notify(ProgressTranscribed)

	notify(ProgressSummarizing)
	summary, err := c.Summarize(ctx, transcript.Text, req)
	if err != nil {
		return report, &StageError{Stage: "summary", Err: err}
	}
	report.Summary = summary
	notify(ProgressDone)
	return report, nil
}

// Transcribe uploads the audio file to the backend for transcription.
func (c *Client) Transcribe(ctx context.Context, audioPath, roomName string) (Transcript, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if roomName != "" {
		if err := writer.WriteField("roomName", roomName); err != nil {
			return Transcript{}, err
		}
	}
	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return Transcript{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Transcript{}, fmt.Errorf("copy audio file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", body)
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Transcript{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcript{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Transcript{}, fmt.Errorf("transcription failed with HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var transcript Transcript
	if err := json.Unmarshal(respBody, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("decode transcription response: %w", err)
	}
	return transcript, nil
}

// Summarize sends the transcript and meeting metadata to the backend for
// summarization.
func (c *Client) Summarize(ctx context.Context, transcript string, meta Request) (string, error) {
	payload := map[string]any{
		"transcript": transcript,
	}
	if meta.Title != "" {
		payload["title"] = meta.Title
	}
	if len(meta.Participants) > 0 {
		payload["participants"] = meta.Participants
	}
	if meta.Duration != "" {
		payload["duration"] = meta.Duration
	}
	if meta.RoomName != "" {
		payload["roomName"] = meta.RoomName
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/summary", bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarization failed with HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if result.Summary == "" {
		return "", fmt.Errorf("empty summary in response")
	}
	return result.Summary, nil
}

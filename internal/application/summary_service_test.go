package application

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubCompleter struct {
	configured bool
	prompt     string
	result     string
	err        error
}

func (s *stubCompleter) Configured() bool { return s.configured }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.result, s.err
}

func TestSummaryServiceSummarize(t *testing.T) {
	completer := &stubCompleter{configured: true, result: "1. **Résumé exécutif**..."}
	archive := newCapturingArchive()
	svc := NewSummaryService(completer, archive, nil)

	summary, err := svc.Summarize(context.Background(), SummaryInput{
		Transcript:   "Bonjour à tous, commençons.",
		Title:        "Point hebdo",
		Participants: []string{"Alice", "Bob"},
		Duration:     "45 min",
		RoomName:     "rp-abc123",
	})
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if summary != completer.result {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if !strings.Contains(completer.prompt, "Bonjour à tous, commençons.") {
		t.Fatalf("expected transcript in prompt, got %q", completer.prompt)
	}
	if archive.summaries["rp-abc123"] != summary {
		t.Fatalf("expected summary to be archived, got %+v", archive.summaries)
	}
}

func TestSummaryServiceRequiresTranscript(t *testing.T) {
	svc := NewSummaryService(&stubCompleter{configured: true}, nil, nil)

	_, err := svc.Summarize(context.Background(), SummaryInput{Transcript: "   "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.FieldErrors["transcript"] == "" {
		t.Fatalf("expected a transcript field error, got %+v", vErr.FieldErrors)
	}
}

func TestSummaryServiceNotConfigured(t *testing.T) {
	svc := NewSummaryService(&stubCompleter{configured: false}, nil, nil)

	if _, err := svc.Summarize(context.Background(), SummaryInput{Transcript: "texte"}); !errors.Is(err, ErrProviderNotConfigured) {
		t.Fatalf("expected ErrProviderNotConfigured, got %v", err)
	}
}

func TestBuildPromptIncludesMetadata(t *testing.T) {
	prompt := BuildPrompt(SummaryInput{
		Transcript:   "Discussion sur le budget.",
		Title:        "Revue budget",
		Participants: []string{"Alice", "Bob"},
		Duration:     "30 min",
	})

	for _, want := range []string{
		"**Réunion** : Revue budget",
		"**Participants** : Alice, Bob",
		"**Durée** : 30 min",
		"Discussion sur le budget.",
		"1. **Résumé exécutif**",
		"5. **Prochaines étapes**",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(SummaryInput{Transcript: "texte"})

	for _, want := range []string{
		"**Réunion** : Réunion",
		"**Participants** : Non renseignés",
		"**Durée** : Non renseignée",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

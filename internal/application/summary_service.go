package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Completer captures the language-completion engine operation.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// SummaryService turns a raw transcript and meeting metadata into a
// structured French meeting report. The generated text is returned as-is:
// no server-side parsing into sections.
type SummaryService struct {
	completer Completer
	archive   MeetingArchive
	logger    *slog.Logger
}

// NewSummaryService constructs a summary service. The archive may be nil.
func NewSummaryService(completer Completer, archive MeetingArchive, logger *slog.Logger) *SummaryService {
	return &SummaryService{completer: completer, archive: archive, logger: defaultLogger(logger)}
}

func (s *SummaryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SummaryService", operation, attrs...)
}

// Summarize generates the meeting report from the transcript.
func (s *SummaryService) Summarize(ctx context.Context, input SummaryInput) (summary string, err error) {
	if s == nil {
		err = fmt.Errorf("SummaryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Summarize", "title", input.Title)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "summary generation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "summary generated")
	}()

	if strings.TrimSpace(input.Transcript) == "" {
		vErr := &ValidationError{}
		vErr.add("transcript", "transcript is required")
		err = vErr
		return
	}
	if s.completer == nil || !s.completer.Configured() {
		err = ErrProviderNotConfigured
		return
	}

	summary, err = s.completer.Complete(ctx, BuildPrompt(input))
	if err != nil {
		err = mapEngineError(err)
		return
	}

	if s.archive != nil && input.RoomName != "" {
		if archiveErr := s.archive.AttachSummary(ctx, input.RoomName, summary); archiveErr != nil {
			logger.WarnContext(ctx, "failed to archive summary", "error", archiveErr)
		}
	}
	return
}

// EngineConfigured reports whether the AI engine credential is set.
func (s *SummaryService) EngineConfigured() bool {
	return s != nil && s.completer != nil && s.completer.Configured()
}

// BuildPrompt renders the fixed report template. The instruction requests a
// five-part structured report in French: executive summary, discussed
// points, decisions, action items with owners, next steps.
func BuildPrompt(input SummaryInput) string {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Réunion"
	}
	participants := "Non renseignés"
	if len(input.Participants) > 0 {
		participants = strings.Join(input.Participants, ", ")
	}
	duration := strings.TrimSpace(input.Duration)
	if duration == "" {
		duration = "Non renseignée"
	}

	return fmt.Sprintf(`
Tu es un assistant de direction expert en rédaction de comptes-rendus de réunion professionnels.

**Réunion** : %s
**Participants** : %s
**Durée** : %s

**Transcription brute** :
%s

Rédige un compte-rendu structuré en français comprenant :
1. **Résumé exécutif** (3-4 phrases max)
2. **Points discutés** (liste détaillée)
3. **Décisions prises**
4. **Actions à suivre** (avec responsable si mentionné)
5. **Prochaines étapes**

Sois concis, professionnel, et capture fidèlement les points essentiels.
`, title, participants, duration, input.Transcript)
}

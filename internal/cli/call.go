package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/reunionpro/internal/media"
	"github.com/example/reunionpro/internal/output"
	"github.com/example/reunionpro/internal/pipeline"
	"github.com/example/reunionpro/internal/provision"
	"github.com/example/reunionpro/internal/session"
)

// runCall enters the call with the given credentials, records the microphone
// until the user interrupts, then generates the meeting report. The session
// must already be on the waiting screen.
func runCall(cmd *cobra.Command, deps *Dependencies, formatter *output.Formatter, sess *session.Session, creds provision.Credentials, prefs session.MediaPrefs, title string) error {
	audioPath := filepath.Join(deps.Config.RecordingsDir, creds.RoomName+".wav")
	var source media.Source
	if prefs.MuteAudio {
		formatter.Info("Micro coupé : la réunion ne sera pas enregistrée.")
	} else {
		acquired, err := media.Acquire(audioPath)
		if err != nil {
			formatter.RecordingUnavailable(err.Error())
		} else {
			source = acquired
			formatter.RecordingStarted(audioPath)
		}
	}

	if err := sess.Enter(source, prefs); err != nil {
		if source != nil {
			source.Stop()
		}
		return err
	}

	startedAt := time.Now()
	waitForInterrupt(cmd.Context())

	if err := sess.Leave(); err != nil {
		return err
	}
	duration := time.Since(startedAt)

	if source == nil {
		formatter.Info("Réunion terminée. Pas d'audio enregistré, donc pas de compte rendu.")
		return nil
	}

	return generateReport(context.Background(), deps, formatter, pipeline.Request{
		AudioPath:    audioPath,
		RoomName:     creds.RoomName,
		Title:        title,
		Participants: []string{sess.DisplayName},
		Duration:     formatCallDuration(duration),
	})
}

// generateReport runs the two-stage pipeline and renders its result. When
// only the summary stage fails the transcript is still written to disk.
func generateReport(ctx context.Context, deps *Dependencies, formatter *output.Formatter, req pipeline.Request) error {
	report, err := deps.App.Pipeline.Run(ctx, req, func(percent int) {
		formatter.Progress(percent, progressLabel(percent))
	})
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) && stageErr.Stage == "summary" && report.Transcript.Text != "" {
			if path, werr := writeTranscript(deps, req, report.Transcript.Text); werr == nil {
				formatter.TranscriptSaved(path)
			}
			formatter.Warning("Le compte rendu n'a pas pu être généré : " + stageErr.Err.Error())
			return nil
		}
		return err
	}

	if path, werr := writeTranscript(deps, req, report.Transcript.Text); werr == nil {
		formatter.TranscriptSaved(path)
	}
	formatter.Report(report.Summary)
	return nil
}

func writeTranscript(deps *Dependencies, req pipeline.Request, transcript string) (string, error) {
	base := req.RoomName
	if base == "" {
		base = filepath.Base(req.AudioPath)
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	path := filepath.Join(deps.Config.RecordingsDir, base+".transcript.txt")
	if err := os.WriteFile(path, []byte(transcript), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func resolveDisplayName(deps *Dependencies, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if deps.Config.DisplayName != "" {
		return deps.Config.DisplayName
	}
	return "Participant"
}

func progressLabel(percent int) string {
	switch percent {
	case pipeline.ProgressUploading:
		return "Envoi de l'audio"
	case pipeline.ProgressTranscribed:
		return "Transcription terminée"
	case pipeline.ProgressSummarizing:
		return "Génération du compte rendu"
	case pipeline.ProgressDone:
		return "Terminé"
	default:
		return ""
	}
}

func formatCallDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

func waitForInterrupt(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

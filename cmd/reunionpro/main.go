package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/reunionpro/internal/application"
	"github.com/example/reunionpro/internal/config"
	"github.com/example/reunionpro/internal/daily"
	httptransport "github.com/example/reunionpro/internal/http"
	"github.com/example/reunionpro/internal/logging"
	"github.com/example/reunionpro/internal/openai"
	"github.com/example/reunionpro/internal/persistence"
	"github.com/example/reunionpro/internal/persistence/sqlite"
)

func main() {
	logger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var archive application.MeetingArchive
	if cfg.SQLiteDSN != "" {
		store, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			logger.Error("failed to open meeting archive", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("failed to close meeting archive", "error", cerr)
			}
		}()
		if err := store.Migrate(context.Background()); err != nil {
			logger.Error("failed to migrate meeting archive", "error", err)
			os.Exit(1)
		}
		archive = newMeetingArchiveAdapter(store)
	}

	dailyClient := daily.NewClient(cfg.DailyAPIKey, cfg.DailyAPIURL)
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL)

	roomService := application.NewRoomService(dailyClient, archive, logger)
	transcriptService := application.NewTranscriptService(openaiClient, archive, logger)
	summaryService := application.NewSummaryService(openaiClient, archive, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Rooms:      httptransport.NewRoomHandler(roomService, logger),
		Transcribe: httptransport.NewTranscribeHandler(transcriptService, cfg.UploadDir, logger),
		Summary:    httptransport.NewSummaryHandler(summaryService, logger),
		Health:     httptransport.NewHealthHandler(credentialStatus{daily: dailyClient, openai: openaiClient}, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.AllowAllOrigins,
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("reunionpro API listening", "addr", server.Addr, "daily_configured", dailyClient.Configured(), "openai_configured", openaiClient.Configured())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type credentialStatus struct {
	daily  *daily.Client
	openai *openai.Client
}

func (c credentialStatus) DailyConfigured() bool  { return c.daily.Configured() }
func (c credentialStatus) OpenAIConfigured() bool { return c.openai.Configured() }

type meetingArchiveAdapter struct {
	repo persistence.MeetingRepository
}

func newMeetingArchiveAdapter(repo persistence.MeetingRepository) *meetingArchiveAdapter {
	return &meetingArchiveAdapter{repo: repo}
}

func (a *meetingArchiveAdapter) CreateMeeting(ctx context.Context, meeting application.ArchivedMeeting) (application.ArchivedMeeting, error) {
	stored, err := a.repo.CreateMeeting(ctx, persistence.Meeting{
		ID:       meeting.ID,
		RoomName: meeting.RoomName,
		Title:    meeting.Title,
		URL:      meeting.URL,
	})
	if err != nil {
		return application.ArchivedMeeting{}, err
	}
	return toArchivedMeeting(stored), nil
}

func (a *meetingArchiveAdapter) AttachTranscript(ctx context.Context, roomName, transcript string) error {
	return a.repo.AttachTranscript(ctx, roomName, transcript)
}

func (a *meetingArchiveAdapter) AttachSummary(ctx context.Context, roomName, summary string) error {
	return a.repo.AttachSummary(ctx, roomName, summary)
}

func toArchivedMeeting(model persistence.Meeting) application.ArchivedMeeting {
	return application.ArchivedMeeting{
		ID:         model.ID,
		RoomName:   model.RoomName,
		Title:      model.Title,
		URL:        model.URL,
		Transcript: model.Transcript,
		Summary:    model.Summary,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

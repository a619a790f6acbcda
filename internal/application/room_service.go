package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/reunionpro/internal/daily"
)

// VideoProvider captures the provider operations the room service forwards.
type VideoProvider interface {
	Configured() bool
	CreateRoom(ctx context.Context, name string) (daily.Room, error)
	CreateMeetingToken(ctx context.Context, roomName, userName string, isOwner bool) (json.RawMessage, error)
	ListRecordings(ctx context.Context, roomName string) (json.RawMessage, error)
}

// MeetingArchive records provisioned meetings and their artifacts. All
// writes are best-effort: the proxy never fails a request over the archive.
type MeetingArchive interface {
	CreateMeeting(ctx context.Context, meeting ArchivedMeeting) (ArchivedMeeting, error)
	AttachTranscript(ctx context.Context, roomName, transcript string) error
	AttachSummary(ctx context.Context, roomName, summary string) error
}

// RoomService validates and forwards room and token requests to the video
// provider. The provider remains the system of record; the service holds no
// state of its own.
type RoomService struct {
	provider VideoProvider
	archive  MeetingArchive
	logger   *slog.Logger
}

// NewRoomService constructs a room service. The archive may be nil.
func NewRoomService(provider VideoProvider, archive MeetingArchive, logger *slog.Logger) *RoomService {
	return &RoomService{provider: provider, archive: archive, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom provisions a provider room under the fixed meeting policy.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room ProvisionedRoom, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom", "room_name", params.RoomName)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_url", room.URL).InfoContext(ctx, "room created")
	}()

	name := strings.TrimSpace(params.RoomName)
	if name == "" {
		vErr := &ValidationError{}
		vErr.add("roomName", "room name is required")
		err = vErr
		return
	}
	if s.provider == nil || !s.provider.Configured() {
		err = ErrProviderNotConfigured
		return
	}

	created, err := s.provider.CreateRoom(ctx, name)
	if err != nil {
		err = mapProviderError(err)
		return
	}

	room = ProvisionedRoom{URL: created.URL, Name: created.Name, Title: params.Title}
	s.archiveMeeting(ctx, logger, room)
	return
}

// MintToken forwards a token-minting request bound to a room name. Room
// existence is not verified before minting: the provider is authoritative
// and a token for an unknown room surfaces as a provider-side failure when
// the holder tries to join.
func (s *RoomService) MintToken(ctx context.Context, params MintTokenParams) (payload json.RawMessage, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "MintToken",
		"room_name", params.RoomName,
		"is_owner", params.IsOwner,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to mint token", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "token minted")
	}()

	if strings.TrimSpace(params.RoomName) == "" {
		vErr := &ValidationError{}
		vErr.add("roomName", "room name is required")
		err = vErr
		return
	}
	if s.provider == nil || !s.provider.Configured() {
		err = ErrProviderNotConfigured
		return
	}

	payload, err = s.provider.CreateMeetingToken(ctx, strings.TrimSpace(params.RoomName), params.UserName, params.IsOwner)
	if err != nil {
		err = mapProviderError(err)
	}
	return
}

// ListRecordings returns the provider's recording list for a room, verbatim.
func (s *RoomService) ListRecordings(ctx context.Context, roomName string) (payload json.RawMessage, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListRecordings", "room_name", roomName)

	if strings.TrimSpace(roomName) == "" {
		vErr := &ValidationError{}
		vErr.add("roomName", "room name is required")
		err = vErr
		logger.ErrorContext(ctx, "failed to list recordings", "error", err, "error_kind", ErrorKind(err))
		return
	}
	if s.provider == nil || !s.provider.Configured() {
		err = ErrProviderNotConfigured
		logger.ErrorContext(ctx, "failed to list recordings", "error", err, "error_kind", ErrorKind(err))
		return
	}

	payload, err = s.provider.ListRecordings(ctx, strings.TrimSpace(roomName))
	if err != nil {
		err = mapProviderError(err)
		logger.ErrorContext(ctx, "failed to list recordings", "error", err, "error_kind", ErrorKind(err))
		return
	}

	logger.InfoContext(ctx, "recordings listed")
	return
}

// ProviderConfigured reports whether the video provider credential is set.
func (s *RoomService) ProviderConfigured() bool {
	return s != nil && s.provider != nil && s.provider.Configured()
}

func (s *RoomService) archiveMeeting(ctx context.Context, logger *slog.Logger, room ProvisionedRoom) {
	if s.archive == nil {
		return
	}
	meeting := ArchivedMeeting{RoomName: room.Name, Title: room.Title, URL: room.URL}
	if _, err := s.archive.CreateMeeting(ctx, meeting); err != nil {
		logger.WarnContext(ctx, "failed to archive meeting", "error", err)
	}
}

func mapProviderError(err error) error {
	var apiErr *daily.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: "daily", Status: apiErr.Status, Body: apiErr.Body}
	}
	return err
}

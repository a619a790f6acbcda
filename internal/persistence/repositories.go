package persistence

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrAlreadyExists is returned when a unique constraint is violated.
	ErrAlreadyExists = errors.New("persistence: already exists")
)

// Meeting is the archived record of one provisioned meeting. Transcript and
// Summary are attached after the call ends, when the pipeline reports back.
type Meeting struct {
	ID         string
	RoomName   string
	Title      string
	URL        string
	Transcript string
	Summary    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MeetingRepository stores provisioned meetings and their artifacts.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	GetMeeting(ctx context.Context, roomName string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	AttachTranscript(ctx context.Context, roomName, transcript string) error
	AttachSummary(ctx context.Context, roomName, summary string) error
}

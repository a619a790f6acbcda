package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/reunionpro/internal/persistence"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed meeting archive.
type Store struct {
	db          *sql.DB
	idGenerator func() string
	now         func() time.Time
}

// Open connects to the SQLite database addressed by dsn.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// The modernc driver allows one writer at a time.
	db.SetMaxOpenConns(1)

	return &Store{
		db:          db,
		idGenerator: uuid.NewString,
		now:         time.Now,
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate creates the archive schema when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS meetings (
			id         TEXT PRIMARY KEY,
			room_name  TEXT NOT NULL UNIQUE,
			title      TEXT NOT NULL DEFAULT '',
			url        TEXT NOT NULL DEFAULT '',
			transcript TEXT NOT NULL DEFAULT '',
			summary    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating meetings table: %w", err)
	}
	return nil
}

// CreateMeeting inserts a freshly provisioned meeting.
func (s *Store) CreateMeeting(ctx context.Context, meeting persistence.Meeting) (persistence.Meeting, error) {
	if meeting.RoomName == "" {
		return persistence.Meeting{}, fmt.Errorf("sqlite: room name is required")
	}
	if meeting.ID == "" {
		meeting.ID = s.idGenerator()
	}
	now := s.now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	query := `
		INSERT INTO meetings (id, room_name, title, url, transcript, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, '', '', ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		meeting.ID,
		meeting.RoomName,
		meeting.Title,
		meeting.URL,
		meeting.CreatedAt.Format(time.RFC3339),
		meeting.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return persistence.Meeting{}, persistence.ErrAlreadyExists
		}
		return persistence.Meeting{}, fmt.Errorf("inserting meeting: %w", err)
	}
	return meeting, nil
}

// GetMeeting retrieves an archived meeting by provider room name.
func (s *Store) GetMeeting(ctx context.Context, roomName string) (persistence.Meeting, error) {
	query := `
		SELECT id, room_name, title, url, transcript, summary, created_at, updated_at
		FROM meetings
		WHERE room_name = ?
	`
	row := s.db.QueryRowContext(ctx, query, roomName)

	meeting, err := scanMeeting(row)
	if err == sql.ErrNoRows {
		return persistence.Meeting{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Meeting{}, fmt.Errorf("querying meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings returns all archived meetings, most recent first.
func (s *Store) ListMeetings(ctx context.Context) ([]persistence.Meeting, error) {
	query := `
		SELECT id, room_name, title, url, transcript, summary, created_at, updated_at
		FROM meetings
		ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}

// AttachTranscript stores the transcript text on an archived meeting.
func (s *Store) AttachTranscript(ctx context.Context, roomName, transcript string) error {
	return s.attach(ctx, "transcript", roomName, transcript)
}

// AttachSummary stores the generated report on an archived meeting.
func (s *Store) AttachSummary(ctx context.Context, roomName, summary string) error {
	return s.attach(ctx, "summary", roomName, summary)
}

func (s *Store) attach(ctx context.Context, column, roomName, value string) error {
	query := fmt.Sprintf(`UPDATE meetings SET %s = ?, updated_at = ? WHERE room_name = ?`, column)

	result, err := s.db.ExecContext(ctx, query, value, s.now().UTC().Format(time.RFC3339), roomName)
	if err != nil {
		return fmt.Errorf("updating meeting %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row scanner) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&meeting.ID,
		&meeting.RoomName,
		&meeting.Title,
		&meeting.URL,
		&meeting.Transcript,
		&meeting.Summary,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Meeting{}, err
	}

	if meeting.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if meeting.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Meeting{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return meeting, nil
}

package session

import (
	"fmt"

	"github.com/example/reunionpro/internal/media"
	"github.com/example/reunionpro/internal/provision"
)

// State names one screen of the meeting client.
type State string

const (
	// StateLanding is the initial screen with the create and join entry points.
	StateLanding State = "landing"
	// StateCreateModal collects a display name and meeting title.
	StateCreateModal State = "create_modal"
	// StateJoinModal collects a display name and a shared room code.
	StateJoinModal State = "join_modal"
	// StateWaiting is shown once the room and token are provisioned, until
	// the user enters the call.
	StateWaiting State = "waiting"
	// StateInCall is the active meeting.
	StateInCall State = "in_call"
	// StateSummary shows the post-call transcript and summary report.
	StateSummary State = "summary"
)

// TransitionError reports an event fired from a state that does not accept it.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("session: event %q not allowed in state %q", e.Event, e.From)
}

// MediaPrefs are the user-chosen capture preferences carried into the call.
type MediaPrefs struct {
	MuteAudio bool
	CameraOff bool
}

// Session is everything the client holds about the meeting in progress. The
// zero value is unusable; use New.
type Session struct {
	state   State
	loading bool

	DisplayName  string
	MeetingTitle string
	JoinCode     string

	Credentials provision.Credentials
	Prefs       MediaPrefs

	source media.Source
}

// New returns a session on the landing screen.
func New() *Session {
	return &Session{state: StateLanding}
}

// State reports the current screen.
func (s *Session) State() State {
	return s.state
}

// Loading reports whether a provisioning call is in flight. The modal stays
// open for the whole of it.
func (s *Session) Loading() bool {
	return s.loading
}

// OpenCreate moves from the landing screen to the create modal.
func (s *Session) OpenCreate() error {
	if s.state != StateLanding {
		return &TransitionError{From: s.state, Event: "open_create"}
	}
	s.state = StateCreateModal
	return nil
}

// OpenJoin moves from the landing screen to the join modal. A non-empty
// prefill, such as a code taken from an invitation link, seeds the code field.
func (s *Session) OpenJoin(prefill string) error {
	if s.state != StateLanding {
		return &TransitionError{From: s.state, Event: "open_join"}
	}
	if prefill != "" {
		s.JoinCode = provision.NormalizeRoomCode(prefill)
	}
	s.state = StateJoinModal
	return nil
}

// CloseModal returns from either modal to the landing screen without losing
// what the user typed.
func (s *Session) CloseModal() error {
	if s.state != StateCreateModal && s.state != StateJoinModal {
		return &TransitionError{From: s.state, Event: "close_modal"}
	}
	s.loading = false
	s.state = StateLanding
	return nil
}

// BeginProvisioning marks the backend call as in flight. The session stays
// on the modal until the call resolves.
func (s *Session) BeginProvisioning() error {
	if s.state != StateCreateModal && s.state != StateJoinModal {
		return &TransitionError{From: s.state, Event: "begin_provisioning"}
	}
	s.loading = true
	return nil
}

// Provisioned records the credentials obtained from the backend and moves
// from the modal to the waiting screen. Both the room URL and the token must
// be present; the waiting screen is never reached on a partial result.
func (s *Session) Provisioned(creds provision.Credentials) error {
	if s.state != StateCreateModal && s.state != StateJoinModal {
		return &TransitionError{From: s.state, Event: "provisioned"}
	}
	if creds.RoomURL == "" || creds.Token == "" {
		return fmt.Errorf("session: incomplete credentials: url=%q token set=%t", creds.RoomURL, creds.Token != "")
	}
	s.Credentials = creds
	s.loading = false
	s.state = StateWaiting
	return nil
}

// ProvisioningFailed resolves a failed backend call. The modal stays open
// with the user's input intact so the attempt can be retried.
func (s *Session) ProvisioningFailed() error {
	if s.state != StateCreateModal && s.state != StateJoinModal {
		return &TransitionError{From: s.state, Event: "provisioning_failed"}
	}
	s.loading = false
	return nil
}

// Enter moves into the call, taking ownership of the media source and
// capturing the user's mute and camera preferences. The source may be nil
// when no local capture is available; the call proceeds without recording.
func (s *Session) Enter(source media.Source, prefs MediaPrefs) error {
	if s.state != StateWaiting {
		return &TransitionError{From: s.state, Event: "enter"}
	}
	s.source = source
	s.Prefs = prefs
	s.state = StateInCall
	return nil
}

// Leave ends the call and stops every local media track before the summary
// screen is shown.
func (s *Session) Leave() error {
	if s.state != StateInCall {
		return &TransitionError{From: s.state, Event: "leave"}
	}
	if s.source != nil {
		s.source.Stop()
		s.source = nil
	}
	s.state = StateSummary
	return nil
}

// ActiveTracks reports the local media tracks currently held by the session.
func (s *Session) ActiveTracks() []media.Track {
	if s.source == nil {
		return nil
	}
	return s.source.Tracks()
}

// Restart clears all meeting data and returns to the landing screen, ready
// for a fresh meeting.
func (s *Session) Restart() error {
	if s.state != StateSummary {
		return &TransitionError{From: s.state, Event: "restart"}
	}
	*s = Session{state: StateLanding}
	return nil
}

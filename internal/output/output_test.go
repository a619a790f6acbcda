package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomCreatedShowsCodeAndURL(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.RoomCreated("Point hebdo", "RP-ABC123", "https://x.daily.co/rp-abc123")

	out := buf.String()
	assert.Contains(t, out, "Point hebdo")
	assert.Contains(t, out, "RP-ABC123")
	assert.Contains(t, out, "https://x.daily.co/rp-abc123")
}

func TestProgressRendersPercent(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Progress(50, "Transcription terminée")

	out := buf.String()
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Transcription terminée")
}

func TestSetupCheck(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.SetupCheck("ffmpeg", true, "installed")
	f.SetupCheck("Backend", false, "unreachable")

	out := buf.String()
	assert.Contains(t, out, "ffmpeg: installed")
	assert.Contains(t, out, "Backend: unreachable")
}

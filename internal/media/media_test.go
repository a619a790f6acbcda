package media

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderTracksBeforeStart(t *testing.T) {
	recorder := NewRecorder(filepath.Join(t.TempDir(), "out.wav"))
	assert.Empty(t, recorder.Tracks(), "no tracks before capture starts")
}

func TestRecorderStopBeforeStartIsNoOp(t *testing.T) {
	recorder := NewRecorder(filepath.Join(t.TempDir(), "out.wav"))
	recorder.Stop()
	recorder.Stop()
	assert.Empty(t, recorder.Tracks())
}

func TestRecorderStartAfterStop(t *testing.T) {
	recorder := NewRecorder(filepath.Join(t.TempDir(), "out.wav"))
	recorder.Stop()
	assert.Error(t, recorder.Start(), "a stopped recorder must not restart")
}

func TestRecorderOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	assert.Equal(t, path, NewRecorder(path).OutputPath())
}

package media

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// TrackKind distinguishes the local capture tracks.
type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// Track is one live local capture track.
type Track struct {
	Kind  TrackKind
	Label string
}

// Source owns a set of local media tracks. Stop releases every track and is
// safe to call more than once.
type Source interface {
	Tracks() []Track
	Stop()
}

// Recorder captures microphone audio through ffmpeg into a WAV file suitable
// for transcription (mono, 16 kHz).
type Recorder struct {
	outputPath string

	mu      sync.Mutex
	cmd     *exec.Cmd
	stopped bool
	done    chan struct{}
	runErr  error
}

// NewRecorder prepares a recorder that writes to outputPath. Nothing is
// captured until Start.
func NewRecorder(outputPath string) *Recorder {
	return &Recorder{outputPath: outputPath}
}

// CheckFFmpeg verifies that ffmpeg is installed.
func CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("media: ffmpeg not found in PATH")
	}
	return nil
}

// Start launches the capture process from the default input device.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return fmt.Errorf("media: recorder already started")
	}
	if r.stopped {
		return fmt.Errorf("media: recorder already stopped")
	}

	cmd := exec.Command("ffmpeg",
		"-f", captureFormat(),
		"-i", captureDevice(),
		"-ac", "1",
		"-ar", "16000",
		"-y",
		r.outputPath,
	)
	if logFile, err := os.Create(r.outputPath + ".ffmpeg.log"); err == nil {
		cmd.Stderr = logFile
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("media: start capture: %w", err)
	}

	r.cmd = cmd
	r.done = make(chan struct{})
	go func() {
		r.runErr = cmd.Wait()
		if closer, ok := cmd.Stderr.(*os.File); ok {
			closer.Close()
		}
		close(r.done)
	}()
	return nil
}

// Tracks reports the live tracks. After Stop it returns nil.
func (r *Recorder) Tracks() []Track {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil || r.stopped {
		return nil
	}
	return []Track{{Kind: TrackAudio, Label: "microphone"}}
}

// Stop ends the capture and waits for ffmpeg to flush the output file.
// Calling Stop again is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	cmd := r.cmd
	done := r.done
	r.mu.Unlock()

	if cmd == nil {
		return
	}
	// ffmpeg finalizes the WAV header on SIGINT.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	<-done
}

// OutputPath reports where the recording is written.
func (r *Recorder) OutputPath() string {
	return r.outputPath
}

// Acquire tries to start a microphone recorder writing to outputPath. Local
// capture is best-effort: when ffmpeg is missing or the device cannot be
// opened, Acquire reports the failure and the meeting proceeds without a
// recording.
func Acquire(outputPath string) (Source, error) {
	if err := CheckFFmpeg(); err != nil {
		return nil, err
	}
	recorder := NewRecorder(outputPath)
	if err := recorder.Start(); err != nil {
		return nil, err
	}
	return recorder, nil
}

func captureFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	case "linux":
		return "alsa"
	default:
		return "dshow"
	}
}

func captureDevice() string {
	switch runtime.GOOS {
	case "darwin":
		return ":default"
	case "linux":
		return "default"
	default:
		return "audio=default"
	}
}

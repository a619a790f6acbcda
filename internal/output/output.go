package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	codeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// Formatter renders the CLI's user-facing output.
type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// RoomCreated announces a freshly provisioned room with its shareable code.
func (f *Formatter) RoomCreated(title, displayCode, url string) {
	fmt.Fprintf(f.w, "%s %s\n", successStyle.Render("✓"), "Salle créée : "+title)
	fmt.Fprintf(f.w, "  Code à partager : %s\n", codeStyle.Render(displayCode))
	fmt.Fprintf(f.w, "  %s\n", dimStyle.Render(url))
}

// Joined announces a successful join.
func (f *Formatter) Joined(displayCode string) {
	fmt.Fprintf(f.w, "%s Connecté à la salle %s\n", successStyle.Render("✓"), codeStyle.Render(displayCode))
}

// RecordingStarted tells the user where the capture is going.
func (f *Formatter) RecordingStarted(path string) {
	fmt.Fprintf(f.w, "%s Enregistrement en cours : %s\n", infoStyle.Render("●"), dimStyle.Render(path))
	fmt.Fprintf(f.w, "  %s\n", dimStyle.Render("Ctrl+C pour quitter la réunion"))
}

// RecordingUnavailable reports that the meeting continues without capture.
func (f *Formatter) RecordingUnavailable(reason string) {
	fmt.Fprintf(f.w, "%s Pas d'enregistrement local : %s\n", warningStyle.Render("⚠"), reason)
}

// Progress renders a pipeline milestone as a bar.
func (f *Formatter) Progress(percent int, label string) {
	const width = 20
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Fprintf(f.w, "  %s %3d%%  %s\n", infoStyle.Render(bar), percent, label)
}

// Report prints the final summary, and the transcript location when saved.
func (f *Formatter) Report(summary string) {
	fmt.Fprintf(f.w, "\n%s\n\n%s\n", headerStyle.Render("Compte rendu"), summary)
}

// TranscriptSaved reports where the raw transcript was written.
func (f *Formatter) TranscriptSaved(path string) {
	fmt.Fprintf(f.w, "%s Transcription enregistrée : %s\n", successStyle.Render("✓"), path)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "%s %s\n", errorStyle.Render("✗"), msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "%s %s\n", infoStyle.Render("ℹ"), msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "%s %s\n", successStyle.Render("✓"), msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "%s %s\n", warningStyle.Render("⚠"), msg)
}

// SetupCheck renders one doctor line.
func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  %s %s: %s\n", successStyle.Render("✓"), name, detail)
	} else {
		fmt.Fprintf(f.w, "  %s %s: %s\n", errorStyle.Render("✗"), name, detail)
	}
}

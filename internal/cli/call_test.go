package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/reunionpro/config"
	"github.com/example/reunionpro/internal/pipeline"
)

func TestProgressLabel(t *testing.T) {
	assert.Equal(t, "Envoi de l'audio", progressLabel(pipeline.ProgressUploading))
	assert.Equal(t, "Transcription terminée", progressLabel(pipeline.ProgressTranscribed))
	assert.Equal(t, "Génération du compte rendu", progressLabel(pipeline.ProgressSummarizing))
	assert.Equal(t, "Terminé", progressLabel(pipeline.ProgressDone))
	assert.Empty(t, progressLabel(42))
}

func TestFormatCallDuration(t *testing.T) {
	assert.Equal(t, "1 min", formatCallDuration(10*time.Second))
	assert.Equal(t, "1 min", formatCallDuration(70*time.Second))
	assert.Equal(t, "45 min", formatCallDuration(45*time.Minute))
	assert.Equal(t, "46 min", formatCallDuration(45*time.Minute+40*time.Second))
}

func TestResolveDisplayName(t *testing.T) {
	deps := &Dependencies{Config: &config.Config{DisplayName: "Alice"}}
	assert.Equal(t, "Bob", resolveDisplayName(deps, "Bob"))
	assert.Equal(t, "Alice", resolveDisplayName(deps, ""))

	deps.Config.DisplayName = ""
	assert.Equal(t, "Participant", resolveDisplayName(deps, ""))
}

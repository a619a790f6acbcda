package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reunionpro/internal/output"
	"github.com/example/reunionpro/internal/pipeline"
	"github.com/example/reunionpro/internal/provision"
)

func NewReportCmd(deps *Dependencies) *cobra.Command {
	var audioPath string
	var roomCode string
	var title string
	var participants []string
	var duration string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a meeting report from a recording",
		Long:  "Transcribe an audio recording and generate a structured French meeting report. When the summary fails, the transcript is still saved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if _, err := os.Stat(audioPath); err != nil {
				return fmt.Errorf("audio file not found: %s", audioPath)
			}

			return generateReport(cmd.Context(), deps, formatter, pipeline.Request{
				AudioPath:    audioPath,
				RoomName:     provision.NormalizeRoomCode(roomCode),
				Title:        title,
				Participants: participants,
				Duration:     duration,
			})
		},
	}

	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Path to the audio recording (required)")
	cmd.Flags().StringVarP(&roomCode, "room", "r", "", "Room code the recording belongs to")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Meeting title")
	cmd.Flags().StringSliceVarP(&participants, "participants", "p", nil, "Participant names")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "Meeting duration, for example \"45 min\"")
	cmd.MarkFlagRequired("audio")

	return cmd
}

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reunionpro/internal/media"
	"github.com/example/reunionpro/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if err := media.CheckFFmpeg(); err != nil {
				f.SetupCheck("ffmpeg", false, "not found, local recording will be unavailable")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			health, err := deps.App.Health(cmd.Context())
			if err != nil {
				f.SetupCheck("Backend", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Backend", true, deps.Config.APIURL)
				if health.Daily {
					f.SetupCheck("Daily credentials", true, "configured on backend")
				} else {
					f.SetupCheck("Daily credentials", false, "not configured on backend")
					ok = false
				}
				if health.OpenAI {
					f.SetupCheck("OpenAI credentials", true, "configured on backend")
				} else {
					f.SetupCheck("OpenAI credentials", false, "not configured on backend")
					ok = false
				}
			}

			f.SetupCheck("Recordings directory", true, deps.Config.RecordingsDir)

			if ok {
				f.Success("Tout est prêt.")
			} else {
				f.Warning("Certains prérequis manquent.")
			}
			return nil
		},
	}
}

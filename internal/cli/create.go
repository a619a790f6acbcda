package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reunionpro/internal/output"
	"github.com/example/reunionpro/internal/provision"
	"github.com/example/reunionpro/internal/session"
)

func NewCreateCmd(deps *Dependencies) *cobra.Command {
	var title string
	var name string
	var muted bool
	var noCamera bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting room and join it as host",
		Long:  "Provision a private meeting room, print the shareable code, and enter the call. The microphone is recorded locally so a report can be generated when you leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)
			displayName := resolveDisplayName(deps, name)

			sess := session.New()
			if err := sess.OpenCreate(); err != nil {
				return err
			}
			sess.DisplayName = displayName
			sess.MeetingTitle = title
			if err := sess.BeginProvisioning(); err != nil {
				return err
			}

			creds, err := deps.App.Provisioner.Provision(cmd.Context(), title, displayName)
			if err != nil {
				if stateErr := sess.ProvisioningFailed(); stateErr != nil {
					return stateErr
				}
				return err
			}
			if err := sess.Provisioned(creds); err != nil {
				return err
			}

			formatter.RoomCreated(title, provision.DisplayCode(creds.RoomName), creds.RoomURL)
			prefs := session.MediaPrefs{MuteAudio: muted, CameraOff: noCamera}
			return runCall(cmd, deps, formatter, sess, creds, prefs, title)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "Réunion", "Meeting title")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your display name")
	cmd.Flags().BoolVar(&muted, "muted", false, "Join with the microphone muted")
	cmd.Flags().BoolVar(&noCamera, "no-camera", false, "Join with the camera off")

	return cmd
}

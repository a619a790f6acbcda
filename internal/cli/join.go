package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/reunionpro/internal/output"
	"github.com/example/reunionpro/internal/provision"
	"github.com/example/reunionpro/internal/session"
)

func NewJoinCmd(deps *Dependencies) *cobra.Command {
	var name string
	var muted bool
	var noCamera bool

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a meeting with a shared room code",
		Long:  "Join an existing meeting using the code shared by the host. The code is accepted with or without the rp- prefix, in any casing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)
			displayName := resolveDisplayName(deps, name)

			code := provision.NormalizeRoomCode(args[0])
			if code == "" {
				return fmt.Errorf("room code is required")
			}

			sess := session.New()
			if err := sess.OpenJoin(code); err != nil {
				return err
			}
			sess.DisplayName = displayName
			if err := sess.BeginProvisioning(); err != nil {
				return err
			}

			creds, err := deps.App.Provisioner.Join(cmd.Context(), code, displayName)
			if err != nil {
				if stateErr := sess.ProvisioningFailed(); stateErr != nil {
					return stateErr
				}
				return err
			}
			if err := sess.Provisioned(creds); err != nil {
				return err
			}

			formatter.Joined(provision.DisplayCode(creds.RoomName))
			prefs := session.MediaPrefs{MuteAudio: muted, CameraOff: noCamera}
			return runCall(cmd, deps, formatter, sess, creds, prefs, "")
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Your display name")
	cmd.Flags().BoolVar(&muted, "muted", false, "Join with the microphone muted")
	cmd.Flags().BoolVar(&noCamera, "no-camera", false, "Join with the camera off")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/reunionpro/config"
	"github.com/example/reunionpro/internal/app"
	"github.com/example/reunionpro/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reunionctl",
		Short: "Create and join ReunionPro meetings from the terminal",
		Long:  "A CLI companion for ReunionPro: provision meeting rooms, join with a shared code, record the call locally, and generate a French meeting report.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewCreateCmd(deps))
	rootCmd.AddCommand(NewJoinCmd(deps))
	rootCmd.AddCommand(NewReportCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

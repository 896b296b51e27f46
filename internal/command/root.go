package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "groove"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "groovematch - find dance partners and nights out",
		Long:          "groove signs you in, swipes through dancers and venues, and keeps your favorite events.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().String("remote", "", "use the groovematch server at this URL instead of local storage")
	cmd.PersistentFlags().String("storage", "", "local storage: sqlite, redis or memory")
	cmd.PersistentFlags().String("db", "", "SQLite database path")
	cmd.PersistentFlags().Bool("no-latency", false, "skip simulated network latency")
	cmd.PersistentFlags().Bool("verbose", false, "log debug output")

	cmd.AddCommand(
		NewSignupCmd(),
		NewSigninCmd(),
		NewSignoutCmd(),
		NewWhoamiCmd(),
		NewDemoCmd(),
		NewFaveCmd(),
		NewAttendCmd(),
		NewFavesCmd(),
		NewEventsCmd(),
		NewSwipeCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}

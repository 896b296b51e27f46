package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/groovematch/internal/apperr"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	switch apperr.KindOf(err) {
	case apperr.TransientNetwork:
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the network hiccuped. Run the command again.")
	case apperr.Conflict:
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: that email is taken. Try '%s signin <email>'.\n", AppName)
	case apperr.NotFound:
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: create an account with '%s signup' or try '%s demo'.\n", AppName, AppName)
	}

	return err
}

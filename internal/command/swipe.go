package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/groovematch/internal/catalog"
	"github.com/mmynk/groovematch/internal/tui"
)

// NewSwipeCmd creates the swipe command.
func NewSwipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swipe",
		Short: "Swipe through dancers and venues",
		Long:  "Open the swipe deck. Drag a card with the mouse or use the arrow keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			user, err := ctx.RequireUser()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if ctx.JSONMode {
				return writeCommandError(cmd, fmt.Errorf("swipe is interactive and does not support --json"))
			}

			model := tui.NewModel(ctx.Ctx, ctx.App.Backend, ctx.App.Flow.Token(), user.Name,
				catalog.CardsFor(user.Preferences.Styles))
			if err := tui.Run(ctx.Ctx, model); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
}

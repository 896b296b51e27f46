package command

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mmynk/groovematch/internal/catalog"
)

// NewFaveCmd creates the fave command.
func NewFaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fave <event-id>",
		Short: "Toggle an event in your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if _, err := ctx.RequireUser(); err != nil {
				return writeCommandError(cmd, err)
			}

			eventID := args[0]
			favorited, err := ctx.App.Backend.ToggleFavorite(ctx.Ctx, ctx.App.Flow.Token(), eventID)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"event_id":  eventID,
					"favorited": favorited,
				})
			}
			title := describeEvent(eventID).Title
			if favorited {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites.\n", title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites.\n", title)
			}
			return nil
		},
	}
}

// NewAttendCmd creates the attend command.
func NewAttendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attend <event-id>",
		Short: "Mark yourself as attending an event",
		Long:  "Mark yourself as attending an event. Attendance cannot be withdrawn.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if _, err := ctx.RequireUser(); err != nil {
				return writeCommandError(cmd, err)
			}

			eventID := args[0]
			if err := ctx.App.Backend.SetAttending(ctx.Ctx, ctx.App.Flow.Token(), eventID); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"event_id":  eventID,
					"attending": true,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "You're going to %s.\n", describeEvent(eventID).Title)
			return nil
		},
	}
}

// NewFavesCmd creates the faves command.
func NewFavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faves",
		Short: "List your favorite events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if _, err := ctx.RequireUser(); err != nil {
				return writeCommandError(cmd, err)
			}

			ids, err := ctx.App.Backend.Favorites(ctx.Ctx, ctx.App.Flow.Token())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			events := make([]eventJSON, 0, len(ids))
			for _, id := range ids {
				e := describeEvent(id)
				e.Favorite = true
				events = append(events, e)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
				return nil
			}
			for _, e := range events {
				printEvent(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

// NewEventsCmd creates the events command.
func NewEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List upcoming events",
		Long:  "List upcoming events. When signed in, favorites and attended events are marked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			var faves, attending []string
			if user, _ := ctx.App.Flow.Restore(ctx.Ctx); user != nil {
				token := ctx.App.Flow.Token()
				if faves, err = ctx.App.Backend.Favorites(ctx.Ctx, token); err != nil {
					return writeCommandError(cmd, err)
				}
				if attending, err = ctx.App.Backend.Attending(ctx.Ctx, token); err != nil {
					return writeCommandError(cmd, err)
				}
			}

			var events []eventJSON
			for _, e := range catalog.Events() {
				out := describeEvent(e.ID)
				out.Favorite = slices.Contains(faves, e.ID)
				out.Attending = slices.Contains(attending, e.ID)
				events = append(events, out)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			for _, e := range events {
				printEvent(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

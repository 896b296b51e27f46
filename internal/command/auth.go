package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/groovematch/internal/models"
)

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Long:  "Create an account. Styles and radius are chosen once, at sign-up.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			styles, _ := cmd.Flags().GetStringSlice("styles")
			radius, _ := cmd.Flags().GetFloat64("radius")
			if name == "" || email == "" {
				return writeCommandError(cmd, fmt.Errorf("--name and --email are required"))
			}

			user, err := ctx.App.Flow.SignUp(ctx.Ctx, models.NewUser{
				Name:        name,
				Email:       email,
				Preferences: models.Preferences{Styles: styles, RadiusKm: radius},
			})
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), toUserJSON(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You're signed in.\n", user.Name)
			return nil
		},
	}

	defaults := models.DefaultPreferences()
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().StringSlice("styles", defaults.Styles, "dance styles, comma separated")
	cmd.Flags().Float64("radius", defaults.RadiusKm, "search radius in km")
	return cmd
}

// NewSigninCmd creates the signin command.
func NewSigninCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signin <email>",
		Short: "Sign in with your email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			user, err := ctx.App.Flow.SignIn(ctx.Ctx, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), toUserJSON(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", user.Name)
			return nil
		},
	}
}

// NewSignoutCmd creates the signout command.
func NewSignoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			// A failed restore still leaves a token worth clearing.
			_, _ = ctx.App.Flow.Restore(ctx.Ctx)
			ctx.App.Flow.SignOut(ctx.Ctx)

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"signed_out": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
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
				return writeJSON(cmd.OutOrStdout(), toUserJSON(user))
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Sign in as the demo account, creating it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			user, err := ctx.App.Flow.LoginOrRegisterDemo(ctx.Ctx)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), toUserJSON(user))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (demo).\n", user.Name)
			return nil
		},
	}
}

package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/groovematch/internal/app"
	"github.com/mmynk/groovematch/internal/config"
	"github.com/mmynk/groovematch/internal/models"
	"github.com/mmynk/groovematch/pkg/logging"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	Ctx      context.Context
	App      *app.App
	JSONMode bool
}

// GetContext loads configuration, applies flag overrides and assembles the app.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}

	jsonMode, _ := cmd.Flags().GetBool("json")
	logger := commandLogger(cmd, cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return &CommandContext{Ctx: ctx, App: a, JSONMode: jsonMode}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if remote, _ := flags.GetString("remote"); remote != "" {
		cfg.RemoteURL = remote
	}
	if storage, _ := flags.GetString("storage"); storage != "" {
		cfg.Storage = storage
	}
	if db, _ := flags.GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if noLatency, _ := flags.GetBool("no-latency"); noLatency {
		cfg.LatencyMin, cfg.LatencyMax = 0, 0
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg.Validate()
}

// commandLogger writes to stderr so stdout stays clean for --json.
func commandLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogLevel == "info" {
		// Routine INFO records would drown command output.
		level = slog.LevelWarn
	}
	var w io.Writer = cmd.ErrOrStderr()
	return logging.New(logging.Options{Level: level, Writer: w})
}

// Close releases the app's storage.
func (c *CommandContext) Close() {
	_ = c.App.Close()
}

// RequireUser restores the saved session.
func (c *CommandContext) RequireUser() (*models.User, error) {
	user, err := c.App.Flow.Restore(c.Ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not signed in. Use '%s signin <email>' or '%s demo' first", AppName, AppName)
	}
	return user, nil
}

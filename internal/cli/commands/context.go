package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/internal/cli/output"
	"github.com/leapstack-labs/helios/internal/config"
	"github.com/leapstack-labs/helios/internal/provider"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Provider *provider.Provider
	Renderer *output.Renderer
}

// NewCommandContext builds the dependencies for cmd from the config and
// logger stored in its context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Provider: provider.New(logger, cfg.ParserOptions()...),
		Renderer: r,
	}
}

// WithMode returns the renderer for an explicit per-command format, or the
// configured renderer when format is empty.
func (c *CommandContext) WithMode(cmd *cobra.Command, format string) *output.Renderer {
	if format == "" {
		return c.Renderer
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	if c.Cfg.NoColor {
		r.DisableColor()
	}
	return r
}

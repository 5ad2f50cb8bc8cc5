package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ytdl/internal/config"
	"ytdl/internal/logging"
	"ytdl/internal/services"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	runID       string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce   sync.Once
	logger       *slog.Logger
	loggerErr    error
	loggerCloser io.Closer
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		runID:       uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "", "load config", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// scope returns the per-command context and logger. Both carry the run ID and
// subcommand name; the logger writes to the command's stderr.
func (c *commandContext) scope(cmd *cobra.Command) (context.Context, *slog.Logger, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	c.loggerOnce.Do(func() {
		logger, closer, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr(), c.verbose())
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "", "init logging", "", err)
			return
		}
		c.logger = logger
		c.loggerCloser = closer
	})
	if c.loggerErr != nil {
		return nil, nil, nil, c.loggerErr
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx := services.WithCommand(services.WithRunID(base, c.runID), cmd.Name())
	return ctx, logging.WithContext(ctx, c.logger), cfg, nil
}

// close releases the log file opened by scope, if any.
func (c *commandContext) close() error {
	if c.loggerCloser == nil {
		return nil
	}
	err := c.loggerCloser.Close()
	c.loggerCloser = nil
	return err
}

// closeAfterRun wraps every RunE beneath cmd so the log file is released once
// the command returns, whatever its outcome.
func closeAfterRun(cmd *cobra.Command, ctx *commandContext) {
	for _, child := range cmd.Commands() {
		closeAfterRun(child, ctx)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if closeErr := ctx.close(); closeErr != nil && err == nil {
			return services.Wrap(services.ErrConfiguration, "", "close log file", "", closeErr)
		}
		return err
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

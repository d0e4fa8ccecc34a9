// Package app wires configuration discovery, merging and compilation into
// the application lifecycle behind the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pipeweld/internal/ctxlog"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string
	LogFormat   string
	LogLevel    string
	CheckOnly   bool
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func New(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
	}
}

// Run loads every configured fragment, merges them, resolves providers, and
// compiles the result. The compiled topology is summarized on the output
// writer; running it is the topology engine's job, not this package's.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	builder, err := a.loadBuilder(ctx)
	if err != nil {
		return err
	}

	cfg, errs := builder.Build(ctx)
	if len(errs) > 0 {
		return fmt.Errorf("configuration is invalid:\n- %s", strings.Join(errs, "\n- "))
	}
	a.logger.Debug("Configuration compiled successfully.")

	fmt.Fprintf(a.outW, "Loaded %d source(s), %d transform(s), %d sink(s), %d enrichment table(s).\n",
		cfg.Sources.Len(), cfg.Transforms.Len(), cfg.Sinks.Len(), cfg.EnrichmentTables.Len())

	if a.config.CheckOnly {
		fmt.Fprintln(a.outW, "Configuration is valid.")
	}
	return nil
}

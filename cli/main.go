package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
	"github.com/mwantia/codeconsole/catalog/file"
	"github.com/mwantia/codeconsole/cli/config"
	"github.com/mwantia/codeconsole/cli/tui"
	"github.com/mwantia/codeconsole/host"
	"github.com/mwantia/codeconsole/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "codeconsole",
		Short: "Interactive command console",
		Long: `codeconsole reads commands like

  cl -ln "Test Lobby" -mp 6

validates them against the registered command schemas and prints the result.
Schemas come from the builtin commands and an optional catalog.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return applyFlags(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("catalog", "", "catalog location (file, sqlite:, postgres://, consul:// or s3://)")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().String("log-file", "", "write logs to this file")
	cmd.Flags().Bool("timestamps", true, "prefix console lines with [hh:mm:ss]")
	cmd.Flags().Bool("watch", false, "reload a file catalog when it changes")

	return cmd
}

// applyFlags overrides cfg with every flag set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("catalog") {
		cfg.Catalog, _ = flags.GetString("catalog")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("timestamps") {
		cfg.Timestamps, _ = flags.GetBool("timestamps")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}

	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The terminal belongs to the console, logs reach it through the sink
	logger := log.NewLogger("console", cfg.Level(), cfg.LogFile, true)
	sink := tui.NewLogSink(256)
	logger.AddHook(sink.Hook)

	registry, err := codeconsole.NewRegistry(codeconsole.WithLogger(logger))
	if err != nil {
		return err
	}
	parser, err := codeconsole.NewParser(registry, codeconsole.WithLogger(logger))
	if err != nil {
		return err
	}
	dispatcher, err := host.NewDispatcher(parser, logger.Named("host"))
	if err != nil {
		return err
	}
	dispatcher.OnInput(func(line string) {
		logger.Debug("submitted: %s", line)
	})

	opts, err := registerBuiltins(registry)
	if err != nil {
		return fmt.Errorf("failed to register builtin commands: %w", err)
	}
	opts = append(opts, tui.WithTimestamps(cfg.Timestamps), tui.WithLogSink(sink))

	if cfg.Catalog != "" {
		catalogOpts, stop, err := loadCatalog(ctx, cfg, registry, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, catalogOpts...)
	}

	model := tui.NewModel(dispatcher, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// loadCatalog registers the catalog commands. Load errors of single commands
// are logged, the remaining commands stay usable. A file catalog is watched
// when cfg.Watch is set.
func loadCatalog(ctx context.Context, cfg *config.Config, registry *codeconsole.Registry, logger *log.Logger) ([]tui.Option, func() error, error) {
	src, closeSource, err := openSource(ctx, cfg.Catalog, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog %s: %w", cfg.Catalog, err)
	}

	defs, err := src.Load(ctx)
	if err != nil {
		if defs == nil {
			closeSource()
			return nil, nil, fmt.Errorf("failed to load catalog %s: %w", src.Name(), err)
		}
		logger.Warn("catalog %s: %v", src.Name(), err)
	}
	if err := catalog.Replace(registry, nil, defs); err != nil {
		logger.Warn("catalog %s: %v", src.Name(), err)
	}
	logger.Info("loaded %d command(s) from %s", len(defs), src.Name())

	fileSrc, ok := src.(*file.Source)
	if !cfg.Watch || !ok {
		if cfg.Watch {
			logger.Warn("catalog %s cannot be watched", src.Name())
		}
		return []tui.Option{tui.WithCatalog(defs, nil)}, closeSource, nil
	}

	feed := tui.NewCatalogFeed(1)
	stopWatch, err := fileSrc.Watch(ctx, feed.Publish)
	if err != nil {
		closeSource()
		return nil, nil, err
	}

	stop := func() error {
		stopWatch()
		return closeSource()
	}
	return []tui.Option{tui.WithCatalog(defs, feed)}, stop, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kilianc/htmldsl/internal/config"
	"github.com/kilianc/htmldsl/internal/htmldsl/generate"
	"github.com/kilianc/htmldsl/internal/htmldsl/watch"
	"github.com/kilianc/htmldsl/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "playground [dir]",
	Short: "Re-render *.htmldsl scripts whenever they change",
	Long: `Watches a directory (default ./playground) and regenerates every
*.htmldsl script in it that is created or saved. Stop with Ctrl-C.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	root, err := generate.FindModuleRoot(".")
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromRoot(root)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dir := filepath.Join(root, "playground")
	if len(args) == 1 {
		if dir, err = filepath.Abs(args[0]); err != nil {
			return err
		}
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return err
	}

	g := &generate.Generator{
		Format:    cfg.OutputFormat(),
		Extension: cfg.OutputExtension(),
		Workers:   cfg.WorkerLimit(),
		Logger:    logger,
	}

	// render once so the outputs match the sources before the first edit
	if _, err := g.RunDir(cmd.Context(), dir); err != nil {
		logger.Warn("initial generation failed", zap.Error(err))
	}

	return watch.Run(cmd.Context(), dir, watch.Options{
		Suffix:   generate.SourceExt,
		Debounce: debounce,
		Logger:   logger,
	}, func(paths []string) {
		results, err := g.Files(cmd.Context(), paths)
		if err != nil {
			// already logged per file by the generator
			return
		}
		for _, r := range results {
			if r.Changed {
				logger.Info("regenerated", zap.String("output", r.Output))
			}
		}
	})
}

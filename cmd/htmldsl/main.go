package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kilianc/htmldsl/internal/config"
	"github.com/kilianc/htmldsl/internal/htmldsl/compile"
	"github.com/kilianc/htmldsl/internal/htmldsl/generate"
	"github.com/kilianc/htmldsl/internal/logging"
)

var (
	rootFlag    string
	dirFlag     string
	formatFlag  string
	configFlag  string
	workersFlag int
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "htmldsl [flags] [paths...]",
	Short: "Render *.htmldsl scripts next to their sources",
	Long: `Generates one rendered file next to each *.htmldsl source.

Paths behave like Go patterns:
  - ./...            recurse from cwd
  - ./dir            only that directory (non-recursive)
  - ./dir/...        recurse from that directory
  - ./page.htmldsl   only that file

Settings are read from .htmldsl.yaml in the module root; flags win.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "module root (defaults to auto-detected go.mod parent from cwd)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (defaults to <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: text or html")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&dirFlag, "dir", "", "if set, only generate for this directory (non-recursive). Useful with go:generate.")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 0, "files rendered in parallel (defaults to config, then CPU count)")

	rootCmd.AddCommand(exampleCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configFlag != "" {
		cfg, err = config.Load(configFlag)
	} else {
		var root string
		root, err = moduleRoot()
		if err != nil {
			// no module: run on defaults
			cfg, err = config.Default(), nil
		} else {
			cfg, err = config.LoadFromRoot(root)
		}
	}
	if err != nil {
		return err
	}

	if formatFlag != "" {
		if _, err := compile.ParseFormat(formatFlag); err != nil {
			return err
		}
		cfg.Format = formatFlag
		// a format chosen on the command line brings its own suffix
		cfg.Extension = ""
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}

	logger, err = logging.New(cfg.LogLevel, verbose)
	return err
}

func moduleRoot() (string, error) {
	if rootFlag != "" {
		return filepath.Abs(rootFlag)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return generate.FindModuleRoot(cwd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(dirFlag) != "" && len(args) != 0 {
		return errors.New("htmldsl: cannot use --dir with positional paths")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	g := &generate.Generator{
		Format:    cfg.OutputFormat(),
		Extension: cfg.OutputExtension(),
		Workers:   cfg.WorkerLimit(),
		Logger:    logger,
	}

	var results []generate.Result
	if strings.TrimSpace(dirFlag) != "" {
		dir := dirFlag
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		results, err = g.RunDir(cmd.Context(), dir)
	} else {
		results, err = g.Run(cmd.Context(), cwd, args)
	}

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	logger.Info("generation finished",
		zap.Int("files", len(results)),
		zap.Int("changed", changed),
		zap.String("format", string(g.Format)))
	return err
}

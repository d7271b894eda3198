// Package generate compiles .htmldsl scripts into rendered files next to
// their sources.
package generate

import (
	"context"
	"errors"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kilianc/htmldsl/internal/htmldsl/compile"
	"github.com/kilianc/htmldsl/internal/htmldsl/outfile"
	"github.com/kilianc/htmldsl/internal/logging"
)

// Generator writes "<source><ext>" for every script it is given.
type Generator struct {
	Format compile.Format
	// Extension overrides Format.Extension() when set.
	Extension string
	// Workers bounds the files compiled at once. Values below 1 mean 1.
	Workers int
	Logger  *zap.Logger
}

// Result describes one generated file.
type Result struct {
	Source  string
	Output  string
	Changed bool
}

// Run generates all scripts matched by patterns, see CollectPaths. No
// patterns means "./...". Every file is attempted; the errors of all failed
// files are joined.
func (g *Generator) Run(ctx context.Context, cwd string, patterns []string) ([]Result, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	paths, err := CollectPaths(cwd, patterns)
	if err != nil {
		return nil, err
	}
	return g.Files(ctx, paths)
}

// RunDir generates the scripts directly inside dir.
func (g *Generator) RunDir(ctx context.Context, dir string) ([]Result, error) {
	paths, err := DirPaths(dir)
	if err != nil {
		return nil, err
	}
	return g.Files(ctx, paths)
}

// Files generates the given scripts, in parallel. Results are sorted by
// source path and only hold the files that succeeded.
func (g *Generator) Files(ctx context.Context, paths []string) ([]Result, error) {
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	logger := logging.OrNop(g.Logger)
	results := make([]Result, len(paths))
	errs := make([]error, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.Workers, 1))
	for i, pth := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			res, err := g.File(pth)
			if err != nil {
				logger.Error("generate failed", zap.String("source", pth), zap.Error(err))
				errs[i] = err
				return nil
			}
			logger.Debug("generated",
				zap.String("source", res.Source),
				zap.String("output", res.Output),
				zap.Bool("changed", res.Changed))
			results[i] = res
			return nil
		})
	}
	_ = eg.Wait()

	var out []Result
	for i := range results {
		if errs[i] == nil {
			out = append(out, results[i])
		}
	}
	return out, errors.Join(errs...)
}

// File compiles a single script and writes its output.
func (g *Generator) File(pth string) (Result, error) {
	src, err := os.ReadFile(pth)
	if err != nil {
		return Result{}, err
	}
	// compile errors already start with pth:line:col
	out, err := compile.CompileFile(pth, src, compile.Options{Format: g.Format})
	if err != nil {
		return Result{}, err
	}
	outPath := pth + g.extension()
	changed, err := outfile.WriteGeneratedFile(outPath, out)
	if err != nil {
		return Result{}, err
	}
	return Result{Source: pth, Output: outPath, Changed: changed}, nil
}

func (g *Generator) extension() string {
	if g.Extension != "" {
		return g.Extension
	}
	return g.Format.Extension()
}

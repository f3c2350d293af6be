package workspace

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"yaml-fixer/internal/fixer"
	"yaml-fixer/internal/yamlio"
)

// FileResult is the outcome for one file. Err holds I/O failures; fixer
// problems are reported inside Fix or Validation.
type FileResult struct {
	Path       string                  `json:"path"`
	Fix        *fixer.Result           `json:"fix,omitempty"`
	Validation *fixer.ValidationResult `json:"validation,omitempty"`
	Written    bool                    `json:"written"`
	Err        error                   `json:"-"`
}

// Changed reports whether fixing altered the file content.
func (r FileResult) Changed() bool {
	return r.Fix != nil && len(r.Fix.Changes) > 0
}

// Runner fixes or validates files with bounded parallelism.
type Runner struct {
	Fixer   *fixer.Fixer
	Options fixer.Options
	// Jobs limits concurrent files; 0 means GOMAXPROCS.
	Jobs int
	// Write rewrites changed files in place when the result parses.
	Write bool
	Log   *zap.Logger
}

func (r Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}

	return r.Log
}

// FixFiles fixes every path. Results keep the order of paths. Only
// cancellation of ctx is returned as an error.
func (r Runner) FixFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	return r.each(ctx, paths, r.FixFile)
}

// ValidateFiles validates every path without modifying it.
func (r Runner) ValidateFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	return r.each(ctx, paths, r.ValidateFile)
}

// FixFile reads, fixes and, when Write is set, rewrites a single file.
func (r Runner) FixFile(path string) FileResult {
	text, err := yamlio.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}

	return r.fixText(path, text)
}

func (r Runner) fixText(path, text string) FileResult {
	res := r.Fixer.Fix(text, r.Options)
	out := FileResult{Path: path, Fix: res}

	r.logger().Debug("fixed file",
		zap.String("path", path),
		zap.Int("fixes", res.FixCount),
		zap.Bool("valid", res.Valid),
		zap.Float64("confidence", res.Confidence),
	)

	if !r.Write || !res.Valid || res.Text == text {
		return out
	}

	if err := yamlio.WriteFile(path, res.Text); err != nil {
		out.Err = err
		return out
	}

	out.Written = true

	return out
}

// ValidateFile reads and validates a single file.
func (r Runner) ValidateFile(path string) FileResult {
	text, err := yamlio.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}

	return FileResult{Path: path, Validation: r.Fixer.Validate(text, r.Options)}
}

func (r Runner) each(ctx context.Context, paths []string, fn func(string) FileResult) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine, no lock needed
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = fn(path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

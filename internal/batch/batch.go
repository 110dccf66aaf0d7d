// Package batch renders reports for every birth input file under a
// directory tree.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/walker"
)

// DefaultConcurrency is used when Options.Concurrency is unset.
const DefaultConcurrency = 4

// ProgressFunc is called after each input file is processed, never
// concurrently.
type ProgressFunc func(processed int, total int, currentFile string)

// Options controls a batch run.
type Options struct {
	RootDir     string
	Include     []string
	Exclude     []string
	OutputDir   string
	Format      report.Format
	Brand       report.Brand
	Concurrency int
	// Divine also runs the car matrix on the first favorable element.
	Divine bool
	// Force re-renders inputs whose content has not changed.
	Force bool
}

// Result collects what a run wrote and what failed.
type Result struct {
	Written   []string // output paths
	Unchanged []string // inputs skipped because their hash matched
	Saved     int      // readings stored in the database
	Errors    []error
}

// Runner analyzes input files concurrently.
type Runner struct {
	analyzer   *analysis.Analyzer
	readings   *readings.Service
	logger     *zap.Logger
	onProgress ProgressFunc
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(analyzer *analysis.Analyzer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{analyzer: analyzer, logger: logger}
}

// SetReadings makes the runner store every reading it renders.
func (r *Runner) SetReadings(svc *readings.Service) { r.readings = svc }

// SetProgressFunc sets the progress callback.
func (r *Runner) SetProgressFunc(fn ProgressFunc) { r.onProgress = fn }

// Discover lists the input files a run would consider.
func Discover(opts Options) ([]walker.FileInfo, error) {
	return walker.Walk(walker.Config{
		RootDir: opts.RootDir,
		Include: opts.Include,
		Exclude: opts.Exclude,
	})
}

// Run walks opts.RootDir and renders a report per birth record. Per-file
// failures are collected in Result.Errors; only setup failures are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = report.FormatText
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	files, err := Discover(opts)
	if err != nil {
		return nil, err
	}

	state, err := LoadState(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("loading batch state: %w", err)
	}
	if state.Format != string(opts.Format) {
		// Every output changes name with the format.
		state.FileHashes = make(map[string]string)
		state.Format = string(opts.Format)
	}

	result := &Result{}
	var todo []walker.FileInfo
	for _, f := range files {
		if !opts.Force && !state.IsFileChanged(f.RelPath, f.ContentHash) {
			result.Unchanged = append(result.Unchanged, f.RelPath)
			continue
		}
		todo = append(todo, f)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	total := len(todo)
	sem := make(chan struct{}, concurrency)
	var mu sync.Mutex
	var processed int64
	var wg sync.WaitGroup

	// Callbacks are serialized so reporters need no locking.
	var progressMu sync.Mutex
	progress := func(file string) {
		count := atomic.AddInt64(&processed, 1)
		if r.onProgress != nil {
			progressMu.Lock()
			r.onProgress(int(count), total, file)
			progressMu.Unlock()
		}
	}

	for _, file := range todo {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", file.RelPath, err))
			mu.Unlock()
			progress(file.RelPath)
			continue
		}

		select {
		case <-ctx.Done():
			mu.Lock()
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", file.RelPath, ctx.Err()))
			mu.Unlock()
			progress(file.RelPath)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(f walker.FileInfo) {
			defer wg.Done()
			defer func() { <-sem }()

			written, saved, errs := r.processFile(ctx, f, opts)

			mu.Lock()
			result.Written = append(result.Written, written...)
			result.Saved += saved
			result.Errors = append(result.Errors, errs...)
			if len(errs) == 0 {
				state.FileHashes[f.RelPath] = f.ContentHash
			}
			mu.Unlock()

			progress(f.RelPath)
		}(file)
	}
	wg.Wait()

	sort.Strings(result.Written)
	if err := state.Save(opts.OutputDir); err != nil {
		return result, fmt.Errorf("saving batch state: %w", err)
	}

	r.logger.Info("batch complete",
		zap.Int("files", len(files)),
		zap.Int("written", len(result.Written)),
		zap.Int("unchanged", len(result.Unchanged)),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (r *Runner) processFile(ctx context.Context, f walker.FileInfo, opts Options) (written []string, saved int, errs []error) {
	entries, err := LoadFile(f)
	if err != nil {
		r.logger.Warn("skipping input", zap.String("file", f.RelPath), zap.Error(err))
		return nil, 0, []error{err}
	}

	for _, e := range entries {
		res, stored, err := r.analyze(ctx, e, opts.Divine)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s #%d: %w", e.Source, e.Index+1, err))
			continue
		}
		if stored {
			saved++
		}

		var buf bytes.Buffer
		if err := report.Render(&buf, res, opts.Brand, opts.Format); err != nil {
			errs = append(errs, fmt.Errorf("%s #%d: rendering: %w", e.Source, e.Index+1, err))
			continue
		}
		out := filepath.Join(opts.OutputDir, filepath.FromSlash(e.OutputPath(opts.Format)))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", filepath.Dir(out), err))
			continue
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("writing %s: %w", out, err))
			continue
		}
		r.logger.Debug("report written",
			zap.String("input", e.Source),
			zap.String("output", out),
			zap.Stringer("chart", res.Chart),
		)
		written = append(written, out)
	}
	return written, saved, errs
}

func (r *Runner) analyze(ctx context.Context, e Entry, divine bool) (*analysis.Result, bool, error) {
	if r.readings != nil {
		d, err := r.readings.Create(ctx, e.Input, nil, divine)
		if err != nil {
			return nil, false, err
		}
		return d.Result, true, nil
	}

	res, err := r.analyzer.Analyze(ctx, e.Input)
	if err != nil {
		return nil, false, err
	}
	if divine {
		if _, err := res.Divine(nil); err != nil {
			return nil, false, err
		}
	}
	return res, false, nil
}

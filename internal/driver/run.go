// Package driver turns the single-file lint engine into a filesystem run:
// template discovery, bounded parallel execution, the persistent result
// cache, and progress events for the terminal UI.
package driver

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"edgelint/internal/linter"
)

// Options configures one Run.
type Options struct {
	// Fix applies auto-fixes and rewrites changed files; DryRun computes
	// the fixed output without touching disk.
	Fix    bool
	DryRun bool

	// Jobs caps parallel workers; 0 means GOMAXPROCS.
	Jobs int

	// Cache, when non-nil, is consulted for verify-only runs. Fix runs
	// always re-lint.
	Cache *DiskCache

	// Events, when non-nil, receives progress notifications. Run never
	// closes the channel.
	Events chan<- Event
}

// FileResult is one file's outcome. Err is an I/O failure; lint findings
// live in Result.
type FileResult struct {
	Path      string
	Result    linter.Result
	FromCache bool
	Err       error
}

// Run lints files in parallel and returns per-file results in input order.
// The error is reserved for cancellation; per-file failures are reported in
// the results so one unreadable file does not abort the run.
func Run(ctx context.Context, l *linter.Linter, files []string, opts Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	useCache := opts.Cache != nil && !opts.Fix
	var cfgHash Digest
	if useCache {
		cfgHash = HashConfig(l.Config())
	}

	for _, path := range files {
		emit(opts.Events, Event{Path: path, Status: StatusQueued})
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = lintOne(l, path, cfgHash, useCache, opts)
			r := &results[i]
			if r.Err != nil {
				emit(opts.Events, Event{Path: path, Status: StatusError})
				return nil
			}
			emit(opts.Events, Event{
				Path:     path,
				Status:   StatusDone,
				Errors:   r.Result.ErrorCount,
				Warnings: r.Result.WarningCount,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func lintOne(l *linter.Linter, path string, cfgHash Digest, useCache bool, opts Options) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	src := string(data)

	var key Digest
	if useCache {
		key = cacheKey(HashContent(data), cfgHash)
		var payload DiskPayload
		// cache read errors degrade to a miss
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			return FileResult{
				Path:      path,
				Result:    resultFromPayload(path, src, &payload),
				FromCache: true,
			}
		}
	}

	if opts.Fix {
		emit(opts.Events, Event{Path: path, Status: StatusFixing})
		res := l.VerifyAndFix(src, path)
		if res.Output != "" && !opts.DryRun {
			if err := writeFixed(path, res.Output); err != nil {
				return FileResult{Path: path, Result: res, Err: err}
			}
		}
		return FileResult{Path: path, Result: res}
	}

	emit(opts.Events, Event{Path: path, Status: StatusLinting})
	diags := l.Verify(src, path)
	res := linter.Result{
		Filename:    path,
		Source:      src,
		Diagnostics: diags,
	}
	for _, d := range diags {
		switch d.Severity {
		case linter.Error:
			res.ErrorCount++
			if d.Fix != nil {
				res.FixableErrorCount++
			}
		case linter.Warn:
			res.WarningCount++
			if d.Fix != nil {
				res.FixableWarningCount++
			}
		}
	}

	if useCache {
		// best effort; a failed write only costs the next run a re-lint
		_ = opts.Cache.Put(key, payloadFromResult(&res))
	}
	return FileResult{Path: path, Result: res}
}

// writeFixed preserves the original file mode when rewriting.
func writeFixed(path, output string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(output), mode)
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}

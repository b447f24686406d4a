// Package runner sequences one snapshot run: fetch every resource kind,
// then write the JSON and HTML reports.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dm/mistinfo/internal/client"
	"github.com/dm/mistinfo/internal/engine"
	"github.com/dm/mistinfo/internal/format"
	"github.com/dm/mistinfo/internal/logging"
	"github.com/dm/mistinfo/internal/model"
	"github.com/dm/mistinfo/internal/report"
)

// DefaultOutputPath is used when Options.OutputPath is empty.
const DefaultOutputPath = "mist_api_data.json"

// Options configures a Runner.
type Options struct {
	// OutputPath is the JSON report path; the HTML report is derived from it.
	OutputPath string
	Sequential bool
	// Progress, if set, receives every settled fetch after it is logged.
	Progress func(engine.Progress)
}

// Result describes a successful run.
type Result struct {
	Snapshot *model.Snapshot
	Files    []report.FileResult
	Elapsed  time.Duration
}

// WriteErr joins any report write failures. They do not fail the run.
func (r *Result) WriteErr() error {
	return report.Outcome{Files: r.Files}.Err()
}

// Runner owns the lifecycle of a single run.
type Runner struct {
	client client.MistClient
	logger *slog.Logger
	opts   Options
}

// New creates a Runner. A nil logger discards all records.
func New(c client.MistClient, logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}
	return &Runner{client: c, logger: logger, opts: opts}
}

// Run fetches the snapshot and writes both reports. A fetch failure is
// logged and returned, and no report is written. Report write failures are
// logged and recorded in Result.Files but do not make Run fail.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r.logger.Info("run started",
		"base_url", r.client.BaseURL(),
		"site_id", r.client.SiteID(),
		"sequential", r.opts.Sequential,
	)

	snap, err := engine.FetchAll(ctx, r.client, engine.Options{
		Sequential: r.opts.Sequential,
		Progress:   r.onProgress,
	})
	if err != nil {
		r.logFetchError(err)
		return nil, err
	}

	out := report.WriteAll(snap, r.opts.OutputPath)
	for _, f := range out.Files {
		if f.Err != nil {
			r.logger.Error("report write failed", "format", f.Format, "path", f.Path, "error", f.Err)
			continue
		}
		r.logger.Info("report written", "format", f.Format, "path", f.Path, "size", format.FormatBytes(f.Size))
	}

	elapsed := time.Since(start)
	r.logger.Info("run finished", "elapsed", format.FormatDuration(elapsed), "write_errors", out.Err() != nil)

	return &Result{Snapshot: snap, Files: out.Files, Elapsed: elapsed}, nil
}

func (r *Runner) onProgress(p engine.Progress) {
	if p.Err == nil {
		r.logger.Info("retrieved resource", "kind", p.Kind, "elapsed", format.FormatDuration(p.Elapsed))
	} else {
		r.logger.Debug("resource fetch ended", "kind", p.Kind, "error", p.Err)
	}
	if r.opts.Progress != nil {
		r.opts.Progress(p)
	}
}

func (r *Runner) logFetchError(err error) {
	attrs := []any{"error", err}

	var fe *engine.FetchError
	if errors.As(err, &fe) {
		attrs = append(attrs, "kind", fe.Kind)
	}
	var se *client.StatusError
	if errors.As(err, &se) {
		attrs = append(attrs, "status", se.StatusCode)
	}
	var de *client.DecodeError
	if errors.As(err, &de) {
		attrs = append(attrs, "reason", "decode")
	}

	r.logger.Error("fetch failed, no reports written", attrs...)
}

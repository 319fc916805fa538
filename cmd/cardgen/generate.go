package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardgen/internal/card"
	"cardgen/internal/driver"
	"cardgen/internal/observ"
)

// pipeline is one configured generate run: drive, then write.
type pipeline struct {
	opts  driver.Options
	write driver.WriteOptions
	timer *observ.Timer
}

func (p pipeline) run(ctx context.Context, sink driver.ProgressSink) (*driver.Result, *driver.Written, error) {
	opts := p.opts
	opts.Progress = sink
	res, err := driver.Run(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	wopts := p.write
	wopts.Progress = sink
	idx := p.timer.Begin("write")
	written, err := driver.WriteOutput(ctx, res.Index, wopts)
	p.timer.End(idx, "")
	if err != nil {
		return res, nil, err
	}
	return res, written, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	con := newConsole(cmd)
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, os.Getenv, wd)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	var timer *observ.Timer
	if s.Timings {
		timer = observ.NewTimer()
	}

	var cache *driver.DiskCache
	if s.Cache {
		if cache, err = driver.OpenDiskCache("cardgen"); err != nil {
			con.warnf("disk cache disabled: %v", err)
			cache = nil
		}
	}

	render := card.DefaultRenderOptions()
	render.Signatures = s.Signatures
	p := pipeline{
		opts: driver.Options{
			OldRoot:        s.Run.Old,
			NewRoot:        s.Run.New,
			OldTag:         s.Run.OldTag,
			NewTag:         s.Run.NewTag,
			Extensions:     s.Run.Extensions,
			Jobs:           s.Run.Jobs,
			Rules:          s.Rules,
			MaxDiagnostics: s.MaxDiagnostics,
			Cache:          cache,
			Timer:          timer,
		},
		write: driver.WriteOptions{
			Dir:    s.Run.Out,
			Filter: s.Filter,
			Render: render,
		},
		timer: timer,
	}

	var (
		res     *driver.Result
		written *driver.Written
	)
	if useProgressView(s.UI, s.Quiet, isTerminal(os.Stdout)) {
		title := fmt.Sprintf("cards %s → %s", s.Run.OldTag, s.Run.NewTag)
		res, written, err = runPipelineWithUI(cmd.Context(), title, p)
	} else {
		res, written, err = p.run(cmd.Context(), nil)
	}
	if err != nil {
		return err
	}

	reportProblems(con, res)
	con.okf("wrote %d cards and %s to %s", len(written.Cards), card.IndexFileName, s.Run.Out)
	if len(written.Removed) > 0 {
		con.infof("removed %d stale cards", len(written.Removed))
	}
	if res.Summary.Cached > 0 {
		con.infof("%d cards from cache", res.Summary.Cached)
	}
	con.infof("%s", res.Summary)
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if res.Summary.Partial() {
		return &exitError{code: exitPartial, err: errPartial, silent: true}
	}
	return nil
}

// reportProblems prints one warning per degraded or skipped card; they are
// not suppressed by --quiet.
func reportProblems(con *console, res *driver.Result) {
	for _, c := range res.Index.Cards() {
		if c.Outcome != card.Degraded && c.Outcome != card.Skipped {
			continue
		}
		for _, p := range c.Problems {
			con.warnf("%s: %s: %s", c.Path, c.Outcome, p)
		}
	}
}

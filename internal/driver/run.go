package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"cardgen/internal/card"
	"cardgen/internal/corpus"
	"cardgen/internal/decl"
	"cardgen/internal/differ"
	"cardgen/internal/observ"
	"cardgen/internal/project"
	"cardgen/internal/source"
	"cardgen/internal/trace"
)

// Options configures one run over two version trees.
type Options struct {
	OldRoot    string
	NewRoot    string
	OldTag     string
	NewTag     string
	Extensions []string
	Jobs       int // <= 0 means runtime.GOMAXPROCS(0)
	Rules      differ.Rules

	MaxDiagnostics int
	Cache          *DiskCache    // nil disables the disk cache
	Progress       ProgressSink  // optional
	Timer          *observ.Timer // optional, for --timings
}

// Summary counts card outcomes. Internal-only files count as analyzed.
type Summary struct {
	Analyzed int
	Degraded int
	Skipped  int
	Cached   int
}

func (s Summary) String() string {
	return fmt.Sprintf("analyzed %d, degraded %d, skipped %d", s.Analyzed, s.Degraded, s.Skipped)
}

// Partial reports whether some files could not be analyzed.
func (s Summary) Partial() bool {
	return s.Degraded > 0 || s.Skipped > 0
}

// Result is the outcome of a finished run.
type Result struct {
	Index   *corpus.Index
	Summary Summary
	Pairs   []source.Pair
}

// Run pairs the trees, builds one card per pair on a bounded worker pool and
// returns the indexed corpus. Per-file failures end up in degraded or skipped
// cards; only root, configuration and cancellation errors are returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.OldTag == opts.NewTag {
		return nil, fmt.Errorf("tags %q: %w", opts.OldTag, differ.ErrSameVersion)
	}
	ctx, runSpan := trace.Start(ctx, trace.ScopeDriver, "run")
	defer runSpan.End("")

	c := corpus.New()
	if err := c.Advance(corpus.Loading); err != nil {
		return nil, err
	}

	pairs, err := pairTrees(ctx, opts)
	if err != nil {
		return nil, err
	}
	runSpan.WithExtra("pairs", fmt.Sprint(len(pairs)))

	if err := c.Advance(corpus.Diffing); err != nil {
		return nil, err
	}
	df := differ.New(opts.Rules, differ.NewCache())

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, p := range pairs {
		emit(opts.Progress, Event{File: p.Rel, Stage: StageLoad, Status: StatusQueued})
	}

	diffCtx, diffSpan := trace.Start(ctx, trace.ScopePass, "diff")
	phase := opts.Timer.Begin("diff")
	var cached atomic.Int64

	// Отмена: новые задачи не стартуют, уже запущенные дорабатывают.
	var g errgroup.Group
	g.SetLimit(max(1, min(jobs, len(pairs))))
	for _, p := range pairs {
		if diffCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := diffCtx.Err(); err != nil {
				return err
			}
			cd, hit := processPair(diffCtx, df, p, opts)
			if hit {
				cached.Add(1)
			}
			return c.Add(cd)
		})
	}
	waitErr := g.Wait()
	opts.Timer.End(phase, fmt.Sprintf("%d files, %d workers", len(pairs), jobs))
	diffSpan.End("")

	if err := ctx.Err(); err != nil {
		trace.Error(ctx, trace.ScopeDriver, "cancelled", err)
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}

	if err := c.Advance(corpus.Rendered); err != nil {
		return nil, err
	}
	index, err := c.Build()
	if err != nil {
		return nil, err
	}

	counts := index.Counts()
	sum := Summary{
		Analyzed: counts[card.Analyzed] + counts[card.Internal],
		Degraded: counts[card.Degraded],
		Skipped:  counts[card.Skipped],
		Cached:   int(cached.Load()),
	}
	runSpan.WithExtra("summary", sum.String())
	return &Result{Index: index, Summary: sum, Pairs: pairs}, nil
}

func pairTrees(ctx context.Context, opts Options) ([]source.Pair, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "pair")
	defer span.End("")
	phase := opts.Timer.Begin("pair")
	defer opts.Timer.End(phase, "")
	emit(opts.Progress, Event{Stage: StagePair, Status: StatusWorking})

	for _, root := range []string{opts.OldRoot, opts.NewRoot} {
		if err := source.CheckRoot(root); err != nil {
			return nil, err
		}
	}
	pairs, err := source.PairTrees(opts.OldRoot, opts.NewRoot, source.TreeOptions{Extensions: opts.Extensions})
	if err != nil {
		return nil, err
	}
	emit(opts.Progress, Event{Stage: StagePair, Status: StatusDone})
	return pairs, nil
}

// processPair builds the card of one pair on a private FileSet. It never
// fails; the bool reports a disk cache hit.
func processPair(ctx context.Context, df *differ.Differ, p source.Pair, opts Options) (*card.Card, bool) {
	ctx, span := trace.Start(trace.WithFile(ctx, p.Rel), trace.ScopeFile, "file:"+p.Rel)
	start := time.Now()
	fs := source.NewFileSet()
	in := card.Input{
		Path:   p.Rel,
		OldTag: opts.OldTag,
		NewTag: opts.NewTag,
		InOld:  p.InOld,
		InNew:  p.InNew,
	}

	emit(opts.Progress, Event{File: p.Rel, Stage: StageLoad, Status: StatusWorking})
	var oldFile, newFile *source.File
	cacheable := true
	loadStart := time.Now()
	load := func(present bool, walkErr error, root, tag string) *source.File {
		if !present {
			return nil
		}
		id, err := source.FileID(0), walkErr
		if err == nil {
			id, err = fs.LoadVersion(root, p.Rel, tag)
		}
		if err != nil {
			// карточки с ошибками загрузки не кэшируем
			cacheable = false
			if source.IsEncoding(err) {
				in.Skipped = true
			}
			trace.Error(ctx, trace.ScopeFile, "load", err)
			in.Errors = append(in.Errors, err)
			return nil
		}
		return fs.Get(id)
	}
	oldFile = load(p.InOld, p.OldErr, opts.OldRoot, opts.OldTag)
	newFile = load(p.InNew, p.NewErr, opts.NewRoot, opts.NewTag)
	opts.Timer.Add("load", time.Since(loadStart))

	var key project.Digest
	if cacheable && opts.Cache != nil {
		key = cardKey(p, oldFile, newFile, opts.OldTag, opts.NewTag, df.Digest())
		cd, ok, err := opts.Cache.Get(key)
		if err != nil {
			trace.Error(ctx, trace.ScopeFile, "cache", err)
		}
		if ok {
			trace.Point(ctx, trace.ScopeFile, "cache", "hit")
			span.End("cached")
			emit(opts.Progress, Event{File: p.Rel, Stage: StageRender, Status: StatusCached, Outcome: cd.Outcome, Elapsed: time.Since(start)})
			return cd, true
		}
	}

	if !in.Skipped {
		emit(opts.Progress, Event{File: p.Rel, Stage: StageParse, Status: StatusWorking})
		opts.Timer.Measure("parse", func() {
			in.Old = parseSide(ctx, oldFile, opts, &in)
			in.New = parseSide(ctx, newFile, opts, &in)
		})
	}

	if len(in.Errors) == 0 {
		emit(opts.Progress, Event{File: p.Rel, Stage: StageDiff, Status: StatusWorking})
		opts.Timer.Measure("diff", func() {
			diffs, err := df.Diff(in.Old, in.New)
			if err != nil {
				in.Errors = append(in.Errors, err)
				return
			}
			in.Diffs = diffs
		})
	}

	emit(opts.Progress, Event{File: p.Rel, Stage: StageRender, Status: StatusWorking})
	var cd *card.Card
	opts.Timer.Measure("render", func() { cd = card.Build(in) })

	if cacheable && opts.Cache != nil {
		if err := opts.Cache.Put(key, cd); err != nil {
			trace.Error(ctx, trace.ScopeFile, "cache", err)
		}
	}

	status := StatusDone
	var evErr error
	if cd.Outcome == card.Degraded || cd.Outcome == card.Skipped {
		status = StatusError
		evErr = errors.Join(in.Errors...)
	}
	span.WithExtra("outcome", cd.Outcome.String()).End("")
	emit(opts.Progress, Event{File: p.Rel, Stage: StageRender, Status: status, Outcome: cd.Outcome, Err: evErr, Elapsed: time.Since(start)})
	return cd, false
}

func parseSide(ctx context.Context, f *source.File, opts Options, in *card.Input) *decl.File {
	if f == nil {
		return nil
	}
	out, err := decl.Parse(f, decl.Options{MaxDiagnostics: opts.MaxDiagnostics})
	if err != nil {
		trace.Error(ctx, trace.ScopeFile, "parse", err)
		in.Errors = append(in.Errors, err)
		return nil
	}
	return out
}

package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"cardgen/internal/card"
	"cardgen/internal/corpus"
	"cardgen/internal/differ"
	"cardgen/internal/trace"
)

// WriteOptions controls where and which cards are written.
type WriteOptions struct {
	Dir      string
	Filter   differ.Category // "" пишет все карточки
	Render   card.RenderOptions
	Progress ProgressSink
}

// Written lists the files produced by WriteOutput, relative to Dir.
type Written struct {
	Cards   []string
	Index   string
	Removed []string // устаревшие карточки прошлых запусков
}

// cardFilePattern matches names produced by card.FileName.
var cardFilePattern = regexp.MustCompile(`^[0-9]{4}-[A-Za-z0-9_-]+\.md$`)

// WriteOutput renders the selected cards and INDEX.md into opts.Dir. Every
// file is written to a temp file and renamed, so a re-run over unchanged
// trees leaves byte-identical output. Card files from earlier runs that are
// not part of this output are removed. Indices are always those of the full
// corpus, also under a filter.
func WriteOutput(ctx context.Context, ix *corpus.Index, opts WriteOptions) (*Written, error) {
	if ix == nil {
		return nil, corpus.ErrNotReady
	}
	_, span := trace.Start(ctx, trace.ScopePass, "write")
	defer span.End("")
	emit(opts.Progress, Event{Stage: StageWrite, Status: StatusWorking})

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	cards := ix.Cards()
	if opts.Filter != "" {
		cards = slices.DeleteFunc(cards, func(c *card.Card) bool { return !c.Has(opts.Filter) })
	}

	out := &Written{Index: card.IndexFileName}
	keep := make(map[string]bool, len(cards))
	var buf bytes.Buffer
	for _, c := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buf.Reset()
		if err := card.Render(&buf, c, opts.Render); err != nil {
			return nil, fmt.Errorf("render %s: %w", c.Path, err)
		}
		name := c.FileName()
		if err := writeFileAtomic(filepath.Join(opts.Dir, name), buf.Bytes()); err != nil {
			return nil, err
		}
		keep[name] = true
		out.Cards = append(out.Cards, name)
	}

	buf.Reset()
	if err := card.RenderIndex(&buf, cards); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(opts.Dir, card.IndexFileName), buf.Bytes()); err != nil {
		return nil, err
	}

	removed, err := pruneStale(opts.Dir, keep)
	if err != nil {
		return nil, err
	}
	out.Removed = removed
	span.WithExtra("cards", fmt.Sprint(len(out.Cards)))
	emit(opts.Progress, Event{Stage: StageWrite, Status: StatusDone})
	return out, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()           //nolint:errcheck
			_ = os.Remove(f.Name()) //nolint:errcheck
		}
	}()
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func pruneStale(dir string, keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan output dir: %w", err)
	}
	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || keep[name] || !cardFilePattern.MatchString(name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("remove stale card: %w", err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

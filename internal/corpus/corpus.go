// Package corpus collects migration cards from concurrent workers and
// freezes them into a path-ordered, indexed snapshot.
package corpus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"cardgen/internal/card"
	"cardgen/internal/differ"
)

var (
	// ErrNotReady is returned when the index is queried before Build.
	ErrNotReady = errors.New("corpus index is not built yet")
	// ErrState reports an operation attempted in the wrong lifecycle state.
	ErrState = errors.New("invalid corpus state")
)

// State of the corpus lifecycle; transitions move forward one step only.
type State uint8

const (
	Empty State = iota
	Loading
	Diffing
	Rendered
	Indexed
)

var stateNames = [...]string{"empty", "loading", "diffing", "rendered", "indexed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Corpus is safe for concurrent Add calls.
type Corpus struct {
	mu    sync.Mutex
	state State
	cards []*card.Card
	paths map[string]bool
	index *Index
}

func New() *Corpus {
	return &Corpus{paths: make(map[string]bool)}
}

func (c *Corpus) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Advance moves to the next state; to must be exactly one step ahead.
func (c *Corpus) Advance(to State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advanceLocked(to)
}

func (c *Corpus) advanceLocked(to State) error {
	if to != c.state+1 || to > Indexed {
		return fmt.Errorf("%w: %s -> %s", ErrState, c.state, to)
	}
	c.state = to
	return nil
}

// Add registers a card; accepted only while Diffing, one card per path.
func (c *Corpus) Add(cd *card.Card) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Diffing {
		return fmt.Errorf("%w: add in state %s", ErrState, c.state)
	}
	if c.paths[cd.Path] {
		return fmt.Errorf("%w: duplicate card for %s", ErrState, cd.Path)
	}
	c.paths[cd.Path] = true
	c.cards = append(c.cards, cd)
	return nil
}

// Len returns the number of cards added so far.
func (c *Corpus) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cards)
}

// Build moves Rendered → Indexed: cards are sorted by path, numbered from 1
// and frozen into the Index.
func (c *Corpus) Build() (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Rendered {
		return nil, fmt.Errorf("%w: build in state %s", ErrState, c.state)
	}
	slices.SortFunc(c.cards, func(a, b *card.Card) int {
		return strings.Compare(a.Path, b.Path)
	})
	idx := &Index{
		cards:  make([]*card.Card, len(c.cards)),
		byPath: make(map[string]*card.Card, len(c.cards)),
	}
	for i, cd := range c.cards {
		cp := *cd
		cp.Index = i + 1
		idx.cards[i] = &cp
		idx.byPath[cp.Path] = idx.cards[i]
	}
	if err := c.advanceLocked(Indexed); err != nil {
		return nil, err
	}
	c.index = idx
	return idx, nil
}

// Index returns the frozen snapshot, or ErrNotReady before Build.
func (c *Corpus) Index() (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Indexed {
		return nil, ErrNotReady
	}
	return c.index, nil
}

// Index is an immutable, path-ordered view of the cards.
type Index struct {
	cards  []*card.Card
	byPath map[string]*card.Card
}

// Cards returns the cards in index order. The slice is a copy; the cards
// must not be modified.
func (ix *Index) Cards() []*card.Card {
	return slices.Clone(ix.cards)
}

func (ix *Index) Len() int { return len(ix.cards) }

func (ix *Index) ByPath(path string) (*card.Card, bool) {
	cd, ok := ix.byPath[path]
	return cd, ok
}

// ByIndex looks a card up by its 1-based index.
func (ix *Index) ByIndex(i int) (*card.Card, bool) {
	if i < 1 || i > len(ix.cards) {
		return nil, false
	}
	return ix.cards[i-1], true
}

// ByCategory returns the cards tagged with cat in index order.
func (ix *Index) ByCategory(cat differ.Category) []*card.Card {
	var out []*card.Card
	for _, cd := range ix.cards {
		if cd.Has(cat) {
			out = append(out, cd)
		}
	}
	return out
}

// Counts returns how many cards ended in each outcome.
func (ix *Index) Counts() map[card.Outcome]int {
	out := make(map[card.Outcome]int)
	for _, cd := range ix.cards {
		out[cd.Outcome]++
	}
	return out
}

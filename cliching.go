package cliching

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/cliching/internal/logging"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
)

// Version is the current cliching release.
const Version = "0.2.0"

// ErrNoHexagram indicates an operation that needs an original hexagram
// before one has been cast.
var ErrNoHexagram = errors.New("no hexagram cast yet")

// Table is the high-level entry point for the cliching library: one
// divination table holding at most one original and one derived hexagram.
// It wraps the divination core and the interpretation corpus behind a
// simplified API for the CLI, HTTP and MCP surfaces.
//
// A Table is not safe for concurrent use; give each session its own.
type Table struct {
	caster  *divination.Caster
	corpus  *oracle.Corpus
	logger  *slog.Logger
	session divination.Session
}

// Option defines a functional option for configuring the Table.
type Option func(*Table)

// WithCaster injects a custom caster, e.g. a seeded one for deterministic
// replays and tests.
func WithCaster(caster *divination.Caster) Option {
	return func(t *Table) {
		t.caster = caster
	}
}

// WithCorpus injects a custom interpretation corpus.
func WithCorpus(corpus *oracle.Corpus) Option {
	return func(t *Table) {
		t.corpus = corpus
	}
}

// WithLogger sets a structured logger for the table.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithQuestion records the question under consultation.
func WithQuestion(question string) Option {
	return func(t *Table) {
		t.session.Question = question
	}
}

// New initializes a divination table. Unless a caster is injected, the
// table seeds one from the system entropy source; an unavailable source is
// an error, never silently replaced.
func New(opts ...Option) (*Table, error) {
	table := &Table{logger: logging.NewNop()}

	for _, opt := range opts {
		opt(table)
	}

	if table.caster == nil {
		seed, err := divination.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed caster: %w", err)
		}
		table.caster = divination.NewCaster(seed)
	}

	if table.corpus == nil {
		corpus, err := oracle.Load()
		if err != nil {
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		table.corpus = corpus
	}

	return table, nil
}

// Cast produces a new original hexagram, discarding any previously derived
// hexagram.
func (t *Table) Cast() *divination.Hexagram {
	hexagram := t.caster.Cast()
	t.session.Original = hexagram
	t.session.Changed = nil

	t.logger.Info("hexagram cast",
		"identity", hexagram.Identity(),
		"binary", hexagram.Binary(),
		"mutable", hexagram.MutablePositions())

	return hexagram
}

// Change derives the changing hexagram for the given line positions. It
// returns the positions that were skipped because their line is not
// mutable; the caller decides whether to warn. With no effective change
// the derived hexagram is still produced (equal in content to the
// original), matching the derivation contract.
func (t *Table) Change(positions []int) (changed *divination.Hexagram, skipped []int, err error) {
	if t.session.Original == nil {
		return nil, nil, ErrNoHexagram
	}

	changing, skipped, err := t.session.Original.ChangingPositions(positions)
	if err != nil {
		return nil, nil, err
	}

	changed, err = t.session.Original.Change(changing)
	if err != nil {
		return nil, nil, err
	}
	t.session.Changed = changed

	t.logger.Info("hexagram changed",
		"positions", changing,
		"skipped", skipped,
		"identity", changed.Identity())

	return changed, skipped, nil
}

// Current returns a copy of the session state.
func (t *Table) Current() divination.Session {
	return t.session
}

// Reset clears the table, discarding both hexagrams. The question is kept.
func (t *Table) Reset() {
	t.session.Original = nil
	t.session.Changed = nil
}

// Interpret resolves a hexagram to its corpus entry.
func (t *Table) Interpret(h *divination.Hexagram) (oracle.Entry, error) {
	return t.corpus.Lookup(h.Identity())
}

// Corpus exposes the interpretation corpus backing the table.
func (t *Table) Corpus() *oracle.Corpus {
	return t.corpus
}

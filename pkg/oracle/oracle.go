// Package oracle maps hexagram identities to the interpretation corpus.
//
// The corpus ships inside the binary: all 64 hexagrams of the King Wen
// sequence with their names, trigrams and judgment texts. A lookup can
// degrade to a clearly marked placeholder, but it never fails the
// divination flow.
package oracle

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/hexagrams.yaml
var corpusFS embed.FS

// Entry is one hexagram's interpretation record.
type Entry struct {
	Number   int    `yaml:"number" json:"number"`
	Name     string `yaml:"name" json:"name"`
	Chinese  string `yaml:"chinese" json:"chinese"`
	Title    string `yaml:"title" json:"title"`
	Below    string `yaml:"below" json:"below"`
	Above    string `yaml:"above" json:"above"`
	Judgment string `yaml:"judgment" json:"judgment"`

	// Placeholder marks an entry synthesized for a missing corpus record.
	Placeholder bool `yaml:"-" json:"placeholder,omitempty"`
}

// Symbol returns the Unicode hexagram symbol (U+4DC0 block, King Wen order).
func (e Entry) Symbol() rune {
	if e.Number < 1 || e.Number > 64 {
		return '?'
	}
	return rune(0x4DC0 + e.Number - 1)
}

// Markdown renders the entry as a small markdown document for display.
func (e Entry) Markdown() string {
	if e.Placeholder {
		return fmt.Sprintf("# %d. (interpretation not found)\n\n%s\n", e.Number, e.Judgment)
	}
	return fmt.Sprintf("# %d. %c %s — %s\n\n**%s** · %s over %s\n\n> %s\n",
		e.Number, e.Symbol(), e.Name, e.Title, e.Chinese, e.Above, e.Below, e.Judgment)
}

// Corpus is the loaded interpretation corpus, keyed by King Wen number.
type Corpus struct {
	entries map[int]Entry
}

type corpusFile struct {
	Hexagrams []Entry `yaml:"hexagrams"`
}

// Load parses the embedded corpus.
func Load() (*Corpus, error) {
	data, err := corpusFS.ReadFile("data/hexagrams.yaml")
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	corpus := &Corpus{entries: make(map[int]Entry, len(file.Hexagrams))}
	for _, entry := range file.Hexagrams {
		if entry.Number < 1 || entry.Number > 64 {
			return nil, fmt.Errorf("corpus entry out of range: %d", entry.Number)
		}
		corpus.entries[entry.Number] = entry
	}

	return corpus, nil
}

// ByNumber returns the entry for a King Wen number. The second return value
// reports whether the corpus holds a record for it.
func (c *Corpus) ByNumber(number int) (Entry, bool) {
	entry, ok := c.entries[number]
	if !ok {
		return placeholder(number), false
	}
	return entry, true
}

// Lookup resolves a hexagram identity to its interpretation entry. A
// missing corpus record degrades to a placeholder; only an out-of-range
// identity is an error.
func (c *Corpus) Lookup(identity int) (Entry, error) {
	number, err := KingWen(identity)
	if err != nil {
		return Entry{}, err
	}

	entry, _ := c.ByNumber(number)
	return entry, nil
}

// Len reports how many entries the corpus holds.
func (c *Corpus) Len() int {
	return len(c.entries)
}

func placeholder(number int) Entry {
	return Entry{
		Number:      number,
		Judgment:    fmt.Sprintf("No interpretation text is available for hexagram %d.", number),
		Placeholder: true,
	}
}

package divination

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// LineCount is the number of lines in a hexagram.
const LineCount = 6

// ErrLineCount indicates an attempt to build a hexagram from other than six
// lines. This is a programming error: the caster and Change always produce
// exactly six.
var ErrLineCount = errors.New("hexagram requires exactly 6 lines")

// ErrPositionRange indicates a user-supplied line position outside 1..6.
var ErrPositionRange = errors.New("line position must be between 1 and 6")

// Hexagram is an immutable, ordered stack of six lines, position 1 (bottom)
// through 6 (top). Its identity is computed eagerly at construction and is
// never stored independently of the lines.
type Hexagram struct {
	yaos     [LineCount]Yao
	identity int
}

// New builds a hexagram from six lines in position order (bottom first).
func New(yaos []Yao) (*Hexagram, error) {
	if len(yaos) != LineCount {
		return nil, fmt.Errorf("%w: got %d", ErrLineCount, len(yaos))
	}

	h := &Hexagram{}
	copy(h.yaos[:], yaos)
	h.identity = identityOf(h.yaos)
	return h, nil
}

// identityOf treats line 1 as the least-significant bit and line 6 as the
// most-significant bit, with yang = 1.
func identityOf(yaos [LineCount]Yao) int {
	identity := 0
	for i, yao := range yaos {
		if yao.Value == Yang {
			identity |= 1 << i
		}
	}
	return identity
}

// Identity returns the 6-bit identity of the hexagram, in [0, 63].
func (h *Hexagram) Identity() int {
	return h.identity
}

// Yaos returns the six lines in position order (bottom first).
func (h *Hexagram) Yaos() [LineCount]Yao {
	return h.yaos
}

// Yao returns the line at the given position (1 = bottom, 6 = top).
func (h *Hexagram) Yao(position int) (Yao, error) {
	if position < 1 || position > LineCount {
		return Yao{}, fmt.Errorf("%w: got %d", ErrPositionRange, position)
	}
	return h.yaos[position-1], nil
}

// Binary returns the identity as a 6-bit string, top line first.
func (h *Hexagram) Binary() string {
	return fmt.Sprintf("%06b", h.identity)
}

// MutablePositions returns the positions of all mutable (old) lines, in
// ascending order.
func (h *Hexagram) MutablePositions() []int {
	var positions []int
	for i, yao := range h.yaos {
		if yao.Mutable {
			positions = append(positions, i+1)
		}
	}
	return positions
}

// Change derives the changing hexagram for the given line positions.
//
// A line changes only if its position is selected and it is mutable; every
// changed line becomes the opposite young line (no longer mutable). All
// other lines are copied verbatim, so deriving again with the same
// positions is a no-op. Selecting a non-mutable position is not an error;
// the caller decides whether to warn. Positions outside 1..6 are rejected
// with ErrPositionRange, never clamped.
func (h *Hexagram) Change(positions []int) (*Hexagram, error) {
	selected := make(map[int]bool, len(positions))
	for _, position := range positions {
		if position < 1 || position > LineCount {
			return nil, fmt.Errorf("%w: got %d", ErrPositionRange, position)
		}
		selected[position] = true
	}

	yaos := make([]Yao, LineCount)
	for i, yao := range h.yaos {
		if selected[i+1] && yao.Mutable {
			yaos[i] = yao.changed()
		} else {
			yaos[i] = yao
		}
	}

	return New(yaos)
}

// ChangingPositions filters the given positions down to those that denote a
// mutable line, deduplicated and sorted. The remainder is returned as
// skipped so the caller can surface a warning.
func (h *Hexagram) ChangingPositions(positions []int) (changing, skipped []int, err error) {
	seen := make(map[int]bool, len(positions))
	for _, position := range positions {
		if position < 1 || position > LineCount {
			return nil, nil, fmt.Errorf("%w: got %d", ErrPositionRange, position)
		}
		if seen[position] {
			continue
		}
		seen[position] = true

		if h.yaos[position-1].Mutable {
			changing = append(changing, position)
		} else {
			skipped = append(skipped, position)
		}
	}

	sort.Ints(changing)
	sort.Ints(skipped)
	return changing, skipped, nil
}

type hexagramJSON struct {
	Yaos     []Yao `json:"lines"`
	Identity int   `json:"identity"`
}

// MarshalJSON encodes the lines along with the derived identity.
func (h *Hexagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexagramJSON{
		Yaos:     h.yaos[:],
		Identity: h.identity,
	})
}

// UnmarshalJSON decodes the lines and recomputes the identity from them,
// so a tampered or stale identity field can never go out of sync.
func (h *Hexagram) UnmarshalJSON(data []byte) error {
	var raw hexagramJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rebuilt, err := New(raw.Yaos)
	if err != nil {
		return err
	}

	*h = *rebuilt
	return nil
}

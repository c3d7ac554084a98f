package divination

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Caster generates hexagrams by simulating three coin tosses per line.
//
// A Caster is deterministic with respect to its seed, which makes tests and
// replays reproducible. It is not safe for concurrent use; give each
// divination session its own Caster.
type Caster struct {
	rng *rand.Rand
}

// NewCaster creates a caster from the given seed.
func NewCaster(seed int64) *Caster {
	return &Caster{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a high-entropy seed using crypto/rand. An unavailable
// entropy source is fatal to the caller and must propagate; it is never
// substituted with a fixed value.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Cast produces a fresh hexagram: six lines, each classified from three
// independent uniform coin tosses. Calls are independent; no state is
// carried between them beyond the stream of the underlying source.
func (c *Caster) Cast() *Hexagram {
	yaos := make([]Yao, LineCount)
	for i := range yaos {
		coins := Coins{c.rng.Intn(2), c.rng.Intn(2), c.rng.Intn(2)}

		yao, err := Classify(coins)
		if err != nil {
			// Unreachable: Intn(2) only yields 0 or 1.
			panic(err)
		}
		yaos[i] = yao
	}

	h, err := New(yaos)
	if err != nil {
		// Unreachable: the slice above always has six lines.
		panic(err)
	}
	return h
}

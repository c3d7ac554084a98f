// Package divination implements the three-coin method of I Ching divination:
// line (yao) classification, hexagram identity, and the derivation of a
// changing hexagram from mutable lines.
package divination

import (
	"errors"
	"fmt"
)

// Value is the binary state of a line.
type Value int

const (
	Yin Value = iota
	Yang
)

func (v Value) String() string {
	switch v {
	case Yin:
		return "Yin"
	case Yang:
		return "Yang"
	default:
		return "Unknown"
	}
}

// Kind is the traditional classification of a line: its state combined with
// whether it is poised to mutate ("old" lines are mutable).
type Kind int

const (
	KindUnspecified Kind = iota
	OldYin
	YoungYang
	YoungYin
	OldYang
)

func (k Kind) String() string {
	switch k {
	case OldYin:
		return "old Yin"
	case YoungYang:
		return "young Yang"
	case YoungYin:
		return "young Yin"
	case OldYang:
		return "old Yang"
	default:
		return "Unknown"
	}
}

// ErrInvalidCoin indicates a coin outcome outside {0, 1}.
var ErrInvalidCoin = errors.New("coin outcome must be 0 or 1")

// Coins holds the three coin outcomes that produced a line, each 0 or 1.
type Coins [3]int

// Sum returns the number of heads in the triple.
func (c Coins) Sum() int {
	return c[0] + c[1] + c[2]
}

// Yao is a single line of a hexagram. Value and Mutable are always derived
// from Coins via Classify; a changed line is a brand-new Yao, never an
// in-place edit.
type Yao struct {
	Value   Value `json:"value"`
	Mutable bool  `json:"mutable"`
	Coins   Coins `json:"coins"`
}

// Kind returns the traditional classification of the line.
func (y Yao) Kind() Kind {
	switch y.Coins.Sum() {
	case 0:
		return OldYin
	case 1:
		return YoungYang
	case 2:
		return YoungYin
	case 3:
		return OldYang
	default:
		return KindUnspecified
	}
}

// Classify builds a Yao from three coin outcomes.
//
// The classification rule is the single source of truth shared by the
// caster and the presentation layer:
//
//	sum 0 -> old Yin    (mutable)
//	sum 1 -> young Yang
//	sum 2 -> young Yin
//	sum 3 -> old Yang   (mutable)
func Classify(coins Coins) (Yao, error) {
	for _, outcome := range coins {
		if outcome != 0 && outcome != 1 {
			return Yao{}, fmt.Errorf("%w: got %d", ErrInvalidCoin, outcome)
		}
	}

	switch coins.Sum() {
	case 0:
		return Yao{Value: Yin, Mutable: true, Coins: coins}, nil
	case 1:
		return Yao{Value: Yang, Mutable: false, Coins: coins}, nil
	case 2:
		return Yao{Value: Yin, Mutable: false, Coins: coins}, nil
	default: // 3
		return Yao{Value: Yang, Mutable: true, Coins: coins}, nil
	}
}

// changed returns the young line that results from mutating y. The
// synthesized coins classify to the opposite young state, so the Coins ->
// (Value, Mutable) invariant holds on the result.
func (y Yao) changed() Yao {
	if y.Value == Yin {
		// Old Yin changes into young Yang.
		return Yao{Value: Yang, Mutable: false, Coins: Coins{1, 0, 0}}
	}
	// Old Yang changes into young Yin.
	return Yao{Value: Yin, Mutable: false, Coins: Coins{0, 1, 1}}
}

package tui_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cliching/internal/presentation/tui"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustYao(t *testing.T, coins divination.Coins) divination.Yao {
	t.Helper()
	yao, err := divination.Classify(coins)
	require.NoError(t, err)
	return yao
}

func TestRenderer_Yao_Plain(t *testing.T) {
	r := tui.NewRenderer(true)

	cases := []struct {
		coins divination.Coins
		want  string
	}{
		{divination.Coins{0, 0, 0}, "### ### x"}, // old Yin
		{divination.Coins{0, 0, 1}, "#######"},   // young Yang
		{divination.Coins{1, 1, 0}, "### ###"},   // young Yin
		{divination.Coins{1, 1, 1}, "####### o"}, // old Yang
	}

	for _, tc := range cases {
		got := r.Yao(mustYao(t, tc.coins))
		assert.Equalf(t, tc.want, got, "coins %v", tc.coins)
		assert.NotContainsf(t, got, "\x1b", "plain output must carry no escape codes")
	}
}

// TestRenderer_Yao_SymbolsAgreeWithClassification guards against the
// classic drift between how a line was generated and how it is drawn: the
// symbol must follow the line's value, in every mode.
func TestRenderer_Yao_SymbolsAgreeWithClassification(t *testing.T) {
	for _, plain := range []bool{true, false} {
		r := tui.NewRenderer(plain)
		for a := 0; a <= 1; a++ {
			for b := 0; b <= 1; b++ {
				for c := 0; c <= 1; c++ {
					yao := mustYao(t, divination.Coins{a, b, c})
					got := r.Yao(yao)
					if yao.Value == divination.Yang {
						assert.Contains(t, got, "#######")
					} else {
						assert.Contains(t, got, "### ###")
					}
				}
			}
		}
	}
}

func TestRenderer_Hexagram_TopFirst(t *testing.T) {
	yaos := []divination.Yao{
		mustYao(t, divination.Coins{0, 0, 1}), // 1: young Yang (bottom)
		mustYao(t, divination.Coins{1, 1, 0}), // 2: young Yin
		mustYao(t, divination.Coins{1, 1, 0}), // 3
		mustYao(t, divination.Coins{1, 1, 0}), // 4
		mustYao(t, divination.Coins{1, 1, 0}), // 5
		mustYao(t, divination.Coins{1, 1, 0}), // 6: young Yin (top)
	}
	h, err := divination.New(yaos)
	require.NoError(t, err)
	require.Equal(t, 1, h.Identity()) // hexagram 24, Return

	corpus, err := oracle.Load()
	require.NoError(t, err)
	entry, err := corpus.Lookup(h.Identity())
	require.NoError(t, err)
	require.Equal(t, 24, entry.Number)

	out := tui.NewRenderer(true).Hexagram(h, entry)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "24")
	assert.Contains(t, lines[0], "Fu")
	// Top line (yin) first, bottom line (yang) last.
	assert.Equal(t, "### ###", lines[1])
	assert.Equal(t, "#######", lines[6])
}

func TestRenderer_Interpretation_Plain(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)

	entry, _ := corpus.ByNumber(2)
	out := tui.NewRenderer(true).Interpretation(entry)
	assert.Contains(t, out, "The Receptive")
	assert.NotContains(t, out, "\x1b")
}

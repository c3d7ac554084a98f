package divination_test

import (
	"testing"

	"github.com/aretw0/cliching/pkg/divination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassify_Exhaustive walks all eight coin triples and checks the
// classification table: sum 0 -> old Yin, 1 -> young Yang, 2 -> young Yin,
// 3 -> old Yang.
func TestClassify_Exhaustive(t *testing.T) {
	expected := map[int]struct {
		value   divination.Value
		mutable bool
		kind    divination.Kind
	}{
		0: {divination.Yin, true, divination.OldYin},
		1: {divination.Yang, false, divination.YoungYang},
		2: {divination.Yin, false, divination.YoungYin},
		3: {divination.Yang, true, divination.OldYang},
	}

	for a := 0; a <= 1; a++ {
		for b := 0; b <= 1; b++ {
			for c := 0; c <= 1; c++ {
				coins := divination.Coins{a, b, c}

				yao, err := divination.Classify(coins)
				require.NoError(t, err)

				want := expected[coins.Sum()]
				assert.Equal(t, want.value, yao.Value, "coins %v", coins)
				assert.Equal(t, want.mutable, yao.Mutable, "coins %v", coins)
				assert.Equal(t, want.kind, yao.Kind(), "coins %v", coins)
				assert.Equal(t, coins, yao.Coins)
			}
		}
	}
}

func TestClassify_InvalidCoin(t *testing.T) {
	_, err := divination.Classify(divination.Coins{0, 2, 1})
	require.ErrorIs(t, err, divination.ErrInvalidCoin)

	_, err = divination.Classify(divination.Coins{-1, 0, 0})
	require.ErrorIs(t, err, divination.ErrInvalidCoin)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "old Yin", divination.OldYin.String())
	assert.Equal(t, "young Yang", divination.YoungYang.String())
	assert.Equal(t, "young Yin", divination.YoungYin.String())
	assert.Equal(t, "old Yang", divination.OldYang.String())
	assert.Equal(t, "Yin", divination.Yin.String())
	assert.Equal(t, "Yang", divination.Yang.String())
}

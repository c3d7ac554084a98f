package cliching_test

import (
	"testing"

	"github.com/aretw0/cliching"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, seed int64) *cliching.Table {
	t.Helper()
	table, err := cliching.New(cliching.WithCaster(divination.NewCaster(seed)))
	require.NoError(t, err)
	return table
}

func TestTable_Cast(t *testing.T) {
	table := newTable(t, 11)

	h := table.Cast()
	require.NotNil(t, h)

	session := table.Current()
	assert.Same(t, h, session.Original)
	assert.Nil(t, session.Changed)
}

func TestTable_CastDiscardsDerived(t *testing.T) {
	table := newTable(t, 11)

	// Cast until we get a hexagram with a mutable line, then derive.
	var changed *divination.Hexagram
	for i := 0; i < 100; i++ {
		h := table.Cast()
		if positions := h.MutablePositions(); len(positions) > 0 {
			var err error
			changed, _, err = table.Change(positions)
			require.NoError(t, err)
			break
		}
	}
	require.NotNil(t, changed, "no mutable line in 100 casts")
	require.NotNil(t, table.Current().Changed)

	// A new original discards the derived hexagram.
	table.Cast()
	assert.Nil(t, table.Current().Changed)
}

func TestTable_ChangeWithoutCast(t *testing.T) {
	table := newTable(t, 11)

	_, _, err := table.Change([]int{1})
	require.ErrorIs(t, err, cliching.ErrNoHexagram)
}

func TestTable_ChangeSkipsYoungLines(t *testing.T) {
	table := newTable(t, 11)

	var original *divination.Hexagram
	for i := 0; i < 100; i++ {
		h := table.Cast()
		if len(h.MutablePositions()) > 0 && len(h.MutablePositions()) < divination.LineCount {
			original = h
			break
		}
	}
	require.NotNil(t, original, "wanted a hexagram with mixed mutability")

	// Select every position: young ones must come back as skipped.
	all := []int{1, 2, 3, 4, 5, 6}
	changed, skipped, err := table.Change(all)
	require.NoError(t, err)
	require.NotNil(t, changed)
	assert.Len(t, skipped, divination.LineCount-len(original.MutablePositions()))

	for _, position := range skipped {
		yao, err := original.Yao(position)
		require.NoError(t, err)
		assert.False(t, yao.Mutable)
	}
}

func TestTable_ChangeRejectsOutOfRange(t *testing.T) {
	table := newTable(t, 11)
	table.Cast()

	_, _, err := table.Change([]int{0})
	require.ErrorIs(t, err, divination.ErrPositionRange)

	_, _, err = table.Change([]int{9})
	require.ErrorIs(t, err, divination.ErrPositionRange)
}

func TestTable_Reset(t *testing.T) {
	table, err := cliching.New(
		cliching.WithCaster(divination.NewCaster(2)),
		cliching.WithQuestion("should I refactor"),
	)
	require.NoError(t, err)

	table.Cast()
	table.Reset()

	session := table.Current()
	assert.Nil(t, session.Original)
	assert.Nil(t, session.Changed)
	assert.Equal(t, "should I refactor", session.Question)
}

func TestTable_Interpret(t *testing.T) {
	table := newTable(t, 11)

	h := table.Cast()
	entry, err := table.Interpret(h)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, entry.Number, 1)
	assert.LessOrEqual(t, entry.Number, 64)
	assert.NotEmpty(t, entry.Judgment)
}

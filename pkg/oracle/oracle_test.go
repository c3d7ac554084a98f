package oracle_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Complete(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)
	require.Equal(t, 64, corpus.Len())

	for number := 1; number <= 64; number++ {
		entry, ok := corpus.ByNumber(number)
		require.Truef(t, ok, "missing corpus entry %d", number)
		assert.Equal(t, number, entry.Number)
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Chinese)
		assert.NotEmpty(t, entry.Title)
		assert.NotEmpty(t, entry.Judgment)
		assert.False(t, entry.Placeholder)
	}
}

func TestByNumber_Placeholder(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)

	entry, ok := corpus.ByNumber(65)
	assert.False(t, ok)
	assert.True(t, entry.Placeholder)
	assert.Contains(t, entry.Judgment, "65")
	assert.Contains(t, entry.Markdown(), "not found")
}

func TestLookup(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)

	// All yang lines: Qian, the first hexagram.
	entry, err := corpus.Lookup(63)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Number)
	assert.Equal(t, "Qian", entry.Name)

	_, err = corpus.Lookup(64)
	require.ErrorIs(t, err, oracle.ErrIdentityRange)
	_, err = corpus.Lookup(-1)
	require.ErrorIs(t, err, oracle.ErrIdentityRange)
}

func TestEntry_Symbol(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)

	qian, _ := corpus.ByNumber(1)
	assert.Equal(t, '䷀', qian.Symbol())

	weiJi, _ := corpus.ByNumber(64)
	assert.Equal(t, '䷿', weiJi.Symbol())
}

func TestEntry_Markdown(t *testing.T) {
	corpus, err := oracle.Load()
	require.NoError(t, err)

	entry, _ := corpus.ByNumber(64)
	md := entry.Markdown()
	assert.True(t, strings.HasPrefix(md, "# 64."))
	assert.Contains(t, md, "Wei Ji")
	assert.Contains(t, md, "Before Completion")
	assert.Contains(t, md, "Fire over Water")
}

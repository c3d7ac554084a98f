package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretw0/cliching/internal/logging"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()

	corpus, err := oracle.Load()
	require.NoError(t, err)
	return NewServer(corpus, logging.NewNop())
}

func TestHandleCast(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleCast(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"question": "will it build"})
	require.NoError(t, err)

	assert.Equal(t, "will it build", result.Question)
	assert.Len(t, result.Original.Lines, 6)
	assert.GreaterOrEqual(t, result.Original.Identity, 0)
	assert.LessOrEqual(t, result.Original.Identity, 63)
	assert.False(t, result.Original.Interpretation.Placeholder)
}

// castWithMutableLines keeps casting until a hexagram carries both mutable
// and young lines.
func castWithMutableLines(t *testing.T) *divination.Hexagram {
	t.Helper()

	for seed := int64(1); seed < 1000; seed++ {
		h := divination.NewCaster(seed).Cast()
		positions := h.MutablePositions()
		if len(positions) > 0 && len(positions) < divination.LineCount {
			return h
		}
	}
	t.Fatal("no cast with mixed mutability found")
	return nil
}

func TestHandleChange(t *testing.T) {
	s := newTestMCPServer(t)
	hexagram := castWithMutableLines(t)
	yaos := hexagram.Yaos()

	lines, err := json.Marshal(yaos[:])
	require.NoError(t, err)
	positions, err := json.Marshal(hexagram.MutablePositions())
	require.NoError(t, err)

	result, err := s.handleChange(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"lines": string(lines), "positions": string(positions)})
	require.NoError(t, err)

	assert.Equal(t, hexagram.MutablePositions(), result.Changing)
	assert.Empty(t, result.Skipped)
	assert.NotEqual(t, hexagram.Identity(), result.Changed.Identity)
	assert.Empty(t, result.Changed.MutablePositions)
}

func TestHandleChange_SkipsYoungLines(t *testing.T) {
	s := newTestMCPServer(t)
	hexagram := castWithMutableLines(t)
	yaos := hexagram.Yaos()

	mutable := make(map[int]bool)
	for _, p := range hexagram.MutablePositions() {
		mutable[p] = true
	}
	young := 0
	for p := 1; p <= divination.LineCount; p++ {
		if !mutable[p] {
			young = p
			break
		}
	}
	require.NotZero(t, young)

	lines, err := json.Marshal(yaos[:])
	require.NoError(t, err)

	result, err := s.handleChange(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"lines": string(lines), "positions": fmt.Sprintf("[%d]", young)})
	require.NoError(t, err)

	assert.Empty(t, result.Changing)
	assert.Equal(t, []int{young}, result.Skipped)
	assert.Equal(t, hexagram.Identity(), result.Changed.Identity)
}

func TestHandleChange_OutOfRange(t *testing.T) {
	s := newTestMCPServer(t)
	yaos := divination.NewCaster(1).Cast().Yaos()

	lines, err := json.Marshal(yaos[:])
	require.NoError(t, err)

	_, err = s.handleChange(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"lines": string(lines), "positions": "[0]"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid positions")
}

func TestHandleChange_BadLines(t *testing.T) {
	s := newTestMCPServer(t)

	_, err := s.handleChange(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"lines": "not json", "positions": "[1]"})
	require.Error(t, err)
}

func TestHandleInterpretation(t *testing.T) {
	s := newTestMCPServer(t)

	entry, err := s.handleInterpretation(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"number": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, "Qian", entry.Name)
}

func TestHandleInterpretation_OutOfRange(t *testing.T) {
	s := newTestMCPServer(t)

	_, err := s.handleInterpretation(context.Background(), mcp.CallToolRequest{},
		map[string]interface{}{"number": float64(65)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 64")
}

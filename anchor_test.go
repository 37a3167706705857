// anchor_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecomputeAnchorsEmptyBoardHasStartSquareOnly(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	RecomputeAnchors(b, Horizontal)

	start := b.StartSquare()
	for r := 0; r < 15; r++ {
		for c := 0; c < 15; c++ {
			sq := b.Sq(r, c)
			expect := r == start.Row && c == start.Col
			require.Equal(t, expect, sq.Anchor(Horizontal), "at (%d,%d)", r, c)
		}
	}
}

func TestRecomputeAnchorsMarksLeftmostEmptyNeighbor(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	b.PlaceTile(7, 7, Tile(3))
	RecomputeAnchors(b, Horizontal)

	require.True(t, b.Sq(7, 6).Anchor(Horizontal))
	require.True(t, b.Sq(7, 8).Anchor(Horizontal))
	require.False(t, b.Sq(7, 5).Anchor(Horizontal), "not adjacent to the tile")
}

func TestRecomputeAnchorsSkipsOccupiedSquares(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	b.PlaceTile(7, 7, Tile(3))
	RecomputeAnchors(b, Horizontal)
	require.False(t, b.Sq(7, 7).Anchor(Horizontal), "an occupied square is never an anchor")
}

func TestAnchorHeapDrainsInDescendingEquityOrder(t *testing.T) {
	h := NewAnchorHeap()
	h.Add(Anchor{Row: 0, HighestPossibleEquity: IntToEquity(5)})
	h.Add(Anchor{Row: 1, HighestPossibleEquity: IntToEquity(20)})
	h.Add(Anchor{Row: 2, HighestPossibleEquity: IntToEquity(10)})

	peek, ok := h.PeekMax()
	require.True(t, ok)
	require.Equal(t, 1, peek.Row)

	var order []int
	for {
		a, ok := h.PopMax()
		if !ok {
			break
		}
		order = append(order, a.Row)
	}
	require.Equal(t, []int{1, 2, 0}, order)
}

func TestAnchorHeapEmptyReturnsFalse(t *testing.T) {
	h := NewAnchorHeap()
	_, ok := h.PopMax()
	require.False(t, ok)
	_, ok = h.PeekMax()
	require.False(t, ok)
}

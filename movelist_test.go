// movelist_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mv(row, col int, score int) *Move {
	return &Move{Kind: Place, Row: row, Col: col, Score: score, Equity: IntToEquity(score)}
}

func TestMoveListRecordAll(t *testing.T) {
	ml := NewMoveList(RecordAll, 0)
	ml.Add(mv(0, 0, 10))
	ml.Add(mv(0, 1, 20))
	ml.Add(mv(0, 2, 5))
	require.Equal(t, 3, ml.Count())
	require.Equal(t, IntToEquity(20), ml.Best().Equity)
}

func TestMoveListRecordBest(t *testing.T) {
	ml := NewMoveList(RecordBest, 0)
	ml.Add(mv(0, 0, 10))
	ml.Add(mv(0, 1, 20))
	ml.Add(mv(0, 2, 5))
	require.Equal(t, 1, ml.Count())
	require.Equal(t, IntToEquity(20), ml.Moves()[0].Equity)
}

func TestMoveListRecordWithinEpsilon(t *testing.T) {
	ml := NewMoveList(RecordWithinEpsilon, IntToEquity(5))
	ml.Add(mv(0, 0, 20))
	ml.Add(mv(0, 1, 17)) // within epsilon of 20
	ml.Add(mv(0, 2, 10)) // outside epsilon
	require.Equal(t, 2, ml.Count())

	ml.Add(mv(0, 3, 25)) // raises the bar, evicting the 17
	for _, m := range ml.Moves() {
		require.GreaterOrEqual(t, m.Score, 20)
	}
}

func TestMoveListSortByScoreDeterministicTiebreak(t *testing.T) {
	ml := NewMoveList(RecordAll, 0)
	a := &Move{Row: 1, Col: 2, Score: 10, Tiles: []Tile{1, 2}}
	b := &Move{Row: 1, Col: 1, Score: 10, Tiles: []Tile{1, 2}}
	ml.Add(a)
	ml.Add(b)
	ml.SortByScore()
	require.Equal(t, b, ml.Moves()[0], "equal score ties break by column")
}

func TestMoveListSortByEquityIdempotent(t *testing.T) {
	ml := NewMoveList(RecordAll, 0)
	ml.Add(mv(0, 0, 10))
	ml.Add(mv(0, 1, 20))
	ml.Add(mv(0, 2, 5))
	ml.SortByEquity()
	first := append([]*Move(nil), ml.Moves()...)
	ml.SortByEquity()
	require.Equal(t, first, ml.Moves())
}

func TestMoveListPopMax(t *testing.T) {
	ml := NewMoveList(RecordAll, 0)
	ml.Add(mv(0, 0, 10))
	ml.Add(mv(0, 1, 20))
	ml.Add(mv(0, 2, 5))
	top := ml.PopMax()
	require.Equal(t, 20, top.Score)
	require.Equal(t, 2, ml.Count())
}

func TestMoveListReset(t *testing.T) {
	ml := NewMoveList(RecordAll, 0)
	ml.Add(mv(0, 0, 10))
	ml.Reset()
	require.Equal(t, 0, ml.Count())
	require.Nil(t, ml.Best())
}

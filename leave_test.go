// leave_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapLeaveTableKnownAndUnknown(t *testing.T) {
	qu := BitRackFromTiles([]Tile{17, 21}) // q, u
	table := NewMapLeaveTable(map[BitRack]Equity{qu: IntToEquity(-5)})

	require.Equal(t, IntToEquity(-5), table.Value(qu))
	require.Equal(t, Equity(0), table.Value(BitRackFromTiles([]Tile{1})))
}

func TestLeaveMapValueOfSubsetAndCaching(t *testing.T) {
	s := BitRackFromTiles([]Tile{19}) // s
	table := NewMapLeaveTable(map[BitRack]Equity{s: IntToEquity(3)})
	lm := NewLeaveMap(table, []Tile{19, 1, 2})

	// bit 0 alone selects tile 19 ("s").
	require.Equal(t, IntToEquity(3), lm.ValueOfSubset(1))
	// repeated lookup must hit the cache and return the same value.
	require.Equal(t, IntToEquity(3), lm.ValueOfSubset(1))
	// an unrelated subset falls back to zero.
	require.Equal(t, Equity(0), lm.ValueOfSubset(1<<1))
}

func TestLeaveMapFullRackMask(t *testing.T) {
	lm := NewLeaveMap(NewMapLeaveTable(nil), []Tile{1, 2, 3})
	require.Equal(t, uint32(0b111), lm.FullRackMask())
}

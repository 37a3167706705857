// arena_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveArenaPushAndAt(t *testing.T) {
	a := NewMoveArena(4)
	i0 := a.Push(Move{Score: 10})
	i1 := a.Push(Move{Score: 20})
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, 10, a.At(i0).Score)
	require.Equal(t, 20, a.At(i1).Score)
	require.Equal(t, 2, a.Len())
}

func TestMoveArenaMarkAndReset(t *testing.T) {
	a := NewMoveArena(4)
	a.Push(Move{Score: 1})
	mark := a.Mark()
	a.Push(Move{Score: 2})
	a.Push(Move{Score: 3})
	require.Equal(t, 3, a.Len())

	a.Reset(mark)
	require.Equal(t, 1, a.Len())
	require.Equal(t, 1, a.At(0).Score)
}

func TestMoveArenaSliceViewsSinceMark(t *testing.T) {
	a := NewMoveArena(4)
	a.Push(Move{Score: 1})
	mark := a.Mark()
	a.Push(Move{Score: 2})
	a.Push(Move{Score: 3})

	s := a.Slice(mark)
	require.Len(t, s, 2)
	require.Equal(t, 2, s[0].Score)
	require.Equal(t, 3, s[1].Score)
}

func TestMoveArenaReusesBackingArrayAfterReset(t *testing.T) {
	a := NewMoveArena(4)
	mark := a.Mark()
	idxA := a.Push(Move{Score: 99})
	ptrBefore := a.At(idxA)

	a.Reset(mark)
	idxB := a.Push(Move{Score: 5})
	require.Equal(t, idxA, idxB, "pushing after a reset to the same mark must reuse the same index")
	require.Same(t, ptrBefore, a.At(idxB), "the backing array must be reused, not reallocated")
	require.Equal(t, 5, a.At(idxB).Score)
}

func TestMoveArenaNestedMarks(t *testing.T) {
	a := NewMoveArena(4)
	outer := a.Mark()
	a.Push(Move{Score: 1})
	inner := a.Mark()
	a.Push(Move{Score: 2})
	a.Push(Move{Score: 3})
	require.Equal(t, 3, a.Len())

	a.Reset(inner)
	require.Equal(t, 1, a.Len())

	a.Reset(outer)
	require.Equal(t, 0, a.Len())
}

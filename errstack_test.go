// errstack_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorStackEmptyAndHas(t *testing.T) {
	var es ErrorStack
	require.True(t, es.Empty())

	es = es.Push(ErrTileNotInRack, "z")
	require.False(t, es.Empty())
	require.True(t, es.Has(ErrTileNotInRack))
	require.False(t, es.Has(ErrOutOfBounds))
}

func TestErrorStackRendersEveryEntry(t *testing.T) {
	var es ErrorStack
	es = es.Push(ErrEmptyMove, "")
	es = es.Push(ErrTileNotInRack, "q")
	msg := es.Error()
	require.Contains(t, msg, "empty move")
	require.Contains(t, msg, "tile not in rack: q")
}

func TestKernelErrorErrorFormatting(t *testing.T) {
	withContext := &KernelError{Code: ErrInvalidLetter, Context: "9"}
	require.Equal(t, "invalid letter: 9", withContext.Error())

	bare := &KernelError{Code: ErrWrongBagState}
	require.Equal(t, "wrong bag state for this operation", bare.Error())
}

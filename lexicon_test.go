// lexicon_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func words(ws ...string) [][]Tile {
	dist := EnglishDistribution{}
	out := make([][]Tile, len(ws))
	for i, w := range ws {
		tiles := make([]Tile, len(w))
		for j := 0; j < len(w); j++ {
			t, _, ok := dist.ParseLetter(w[j : j+1])
			if !ok {
				panic("bad test word")
			}
			tiles[j] = t
		}
		out[i] = tiles
	}
	return out
}

func TestInMemoryLexiconFind(t *testing.T) {
	lex := NewInMemoryLexicon(words("cat", "cats", "at"))
	require.True(t, lex.Find(words("cat")[0]))
	require.True(t, lex.Find(words("at")[0]))
	require.False(t, lex.Find(words("ca")[0]))
	require.False(t, lex.Find(words("dog")[0]))
}

func TestInMemoryLexiconArcTraversal(t *testing.T) {
	lex := NewInMemoryLexicon(words("at"))
	dist := EnglishDistribution{}
	tA, _, _ := dist.ParseLetter("a")
	tT, _, _ := dist.ParseLetter("t")

	// The whole-word rotation is inserted reversed: "at" -> t, a.
	node, accepts, ok := lex.Arc(lex.Root(), tT)
	require.True(t, ok)
	require.False(t, accepts)
	_, accepts, ok = lex.Arc(node, tA)
	require.True(t, ok)
	require.True(t, accepts)
}

func TestInMemoryLexiconArcsOfMarksLastArc(t *testing.T) {
	lex := NewInMemoryLexicon(words("at", "an"))
	arcs := lex.ArcsOf(lex.Root())
	require.NotEmpty(t, arcs)
	endCount := 0
	for _, a := range arcs {
		if a.IsEndOfArcs {
			endCount++
		}
	}
	require.Equal(t, 1, endCount)
}

func TestCrossSetOfFindsLegalLetters(t *testing.T) {
	dist := EnglishDistribution{}
	lex := NewInMemoryLexicon(words("cat", "cot", "cut"))
	tC, _, _ := dist.ParseLetter("c")
	tT, _, _ := dist.ParseLetter("t")

	set := CrossSetOf(lex, []Tile{tC}, []Tile{tT}, dist.Size(), nil)

	for _, letter := range []string{"a", "o", "u"} {
		tl, _, _ := dist.ParseLetter(letter)
		require.True(t, set&(1<<uint(tl)) != 0, "%q should complete a valid word", letter)
	}
	tZ, _, _ := dist.ParseLetter("z")
	require.False(t, set&(1<<uint(tZ)) != 0)
	require.True(t, set&1 != 0, "blank bit mirrors non-empty set")
}

func TestCrossSetOfEmptyWhenNoLetterFits(t *testing.T) {
	dist := EnglishDistribution{}
	lex := NewInMemoryLexicon(words("cat"))
	tX, _, _ := dist.ParseLetter("x")
	set := CrossSetOf(lex, []Tile{tX}, nil, dist.Size(), nil)
	require.Equal(t, uint64(0), set)
}

func TestCrossSetOfCacheConsistency(t *testing.T) {
	dist := EnglishDistribution{}
	lex := NewInMemoryLexicon(words("cat", "cot"))
	cache := newCrossSetCache()
	tC, _, _ := dist.ParseLetter("c")
	tT, _, _ := dist.ParseLetter("t")

	first := CrossSetOf(lex, []Tile{tC}, []Tile{tT}, dist.Size(), cache)
	second := CrossSetOf(lex, []Tile{tC}, []Tile{tT}, dist.Size(), cache)
	require.Equal(t, first, second)
}

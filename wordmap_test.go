// wordmap_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumerateSubracksCountsAndDeduplicates(t *testing.T) {
	// "aab": 3 tiles -> 2^3-1 = 7 non-empty masks, but {a} from position
	// 0 and position 1 collapse to the same BitRack.
	subs := EnumerateSubracks([]Tile{1, 1, 2})
	require.Len(t, subs, 5) // {a},{b},{a,a},{a,b},{a,a,b}

	single := BitRackFromTiles([]Tile{1})
	found := false
	for _, s := range subs {
		if s == single {
			found = true
		}
	}
	require.True(t, found)
}

func TestMapWordMapHasWordAndWordsOf(t *testing.T) {
	wm := NewMapWordMap(words("cat", "act"))
	multiset := BitRackFromTiles(words("cat")[0])

	require.True(t, wm.HasWord(multiset, 3))
	require.False(t, wm.HasWord(multiset, 4))

	got := wm.WordsOf(multiset, 3)
	require.Len(t, got, 2, "both anagrams share the same multiset/length key")
}

func TestWordMapCandidatesRespectsMaxLength(t *testing.T) {
	wm := NewMapWordMap(words("cat", "at", "a"))
	rack := []Tile{3, 1, 20} // c, a, t

	all := WordMapCandidates(wm, rack, BitRack{}, 3)
	require.NotEmpty(t, all)

	short := WordMapCandidates(wm, rack, BitRack{}, 1)
	for _, w := range short {
		require.LessOrEqual(t, len(w), 1)
	}
}

func TestWordMapCandidatesWithPlaythrough(t *testing.T) {
	wm := NewMapWordMap(words("cats"))
	rack := []Tile{3, 1, 20} // c, a, t
	playthrough := BitRackFromTiles([]Tile{19})

	candidates := WordMapCandidates(wm, rack, playthrough, 4)
	require.NotEmpty(t, candidates)
	for _, w := range candidates {
		require.Len(t, w, 4)
	}
}

// tileWordKey canonicalizes a played word (as a tile sequence) into a
// string comparable across the two generation paths.
func tileWordKey(tiles []Tile) string {
	b := make([]byte, len(tiles))
	for i, t := range tiles {
		b[i] = byte(t.LetterOf())
	}
	return string(b)
}

// TestWordMapCandidatesMatchesGeneratorOnEmptyBoard proves spec §8
// property #3 (generator/WMP equivalence) in the one case where
// WordMapCandidates needs no extension-set context to be exact: an
// empty board, where every full-rack-or-shorter rotation the recursive
// generator finds through the anchor is also a multiset the word map
// itself recognizes, and vice versa.
func TestWordMapCandidatesMatchesGeneratorOnEmptyBoard(t *testing.T) {
	wordList := words("cat", "at", "a", "tac")
	lex := NewInMemoryLexicon(wordList)
	wmp := NewMapWordMap(wordList)
	dist := EnglishDistribution{}

	b := NewBoard(StandardLayout{}, 1)
	rackTiles := []Tile{3, 1, 20} // c, a, t
	rack := NewRack(rackTiles)

	ml := GenerateMoves(b, rack, lex, dist, 0, nil, 50, RecordAll, 0)
	generatorWords := make(map[string]bool)
	for _, m := range ml.Moves() {
		if m.Kind != Place {
			continue
		}
		generatorWords[tileWordKey(m.Tiles)] = true
	}
	require.NotEmpty(t, generatorWords)

	wmpWords := make(map[string]bool)
	for _, w := range WordMapCandidates(wmp, rackTiles, BitRack{}, RackSize) {
		wmpWords[tileWordKey(w)] = true
	}

	require.Equal(t, generatorWords, wmpWords, "WMP fast path must find exactly the same words as the recursive generator on an empty board")
}

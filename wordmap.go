// wordmap.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the word-map (WMP) generator fast path (spec
// §4.6), grounded in the teacher's Dawg.Permute/PermutationNavigator
// (dawg.go, navigators.go) — "enumerate every anagram of a rack" — but
// generalized from permuting the one full rack to enumerating every
// sub-rack (the bit-rack power set) and looking each up directly in a
// word-map artifact, skipping the automaton walk entirely.

package skrafl

// WordMap is the optional fast-path artifact (spec §6.1): given a
// multiset of tiles and a target length, it reports whether any word
// of that length is an anagram of the multiset, and enumerates them.
type WordMap interface {
	HasWord(multiset BitRack, length int) bool
	WordsOf(multiset BitRack, length int) [][]Tile
}

// EnumerateSubracks returns every distinct non-empty sub-multiset of
// the given rack tiles, as BitRacks, by walking the power set of tile
// positions and collapsing duplicates (spec §4.6: "enumerate all
// subracks of the full rack (bit-rack power set)").
func EnumerateSubracks(tiles []Tile) []BitRack {
	n := len(tiles)
	seen := make(map[BitRack]bool)
	var out []BitRack
	for mask := 1; mask < (1 << uint(n)); mask++ {
		var br BitRack
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				br = br.Add(tiles[i].LetterOf())
			}
		}
		if !seen[br] {
			seen[br] = true
			out = append(out, br)
		}
	}
	return out
}

// WordMapCandidates enumerates every word the word-map fast path
// recognizes from some sub-rack of rackTiles (optionally unioned with a
// fixed playthrough multiset), at any length up to maxLength, without
// walking the lexicon automaton at all. It reports candidate words by
// multiset/length only — it does not itself check an anchor's left/right
// extension context, so on a non-empty board its output is an
// over-approximation of what the recursive generator would actually
// play there; verifying a candidate against a specific anchor's board
// context is the caller's job (spec §4.6 leaves the extension-set
// cross-check to whoever wires this path into generation, which no
// component does yet — see DESIGN.md). On an empty board, where there
// is no extension context to satisfy, its output is equivalent (spec
// §8 property #3) to the recursive generator's.
func WordMapCandidates(wmp WordMap, rackTiles []Tile, playthrough BitRack, maxLength int) [][]Tile {
	var out [][]Tile
	for _, sub := range EnumerateSubracks(rackTiles) {
		full := sub.Union(playthrough)
		length := full.Total()
		if length == 0 || length > maxLength {
			continue
		}
		if wmp.HasWord(full, length) {
			out = append(out, wmp.WordsOf(full, length)...)
		}
	}
	return out
}

// mapWordMap is a simple in-memory WordMap keyed by (multiset, length),
// used as the reference implementation of the artifact interface for
// tests and embedding contexts without a real word-map file.
type mapWordMap struct {
	words map[wordMapKey][][]Tile
}

type wordMapKey struct {
	multiset BitRack
	length   int
}

// NewMapWordMap builds a WordMap from a list of words (each already
// encoded as tiles).
func NewMapWordMap(words [][]Tile) WordMap {
	wm := &mapWordMap{words: make(map[wordMapKey][][]Tile)}
	for _, w := range words {
		key := wordMapKey{multiset: BitRackFromTiles(w), length: len(w)}
		wm.words[key] = append(wm.words[key], w)
	}
	return wm
}

func (wm *mapWordMap) HasWord(multiset BitRack, length int) bool {
	_, ok := wm.words[wordMapKey{multiset, length}]
	return ok
}

func (wm *mapWordMap) WordsOf(multiset BitRack, length int) [][]Tile {
	return wm.words[wordMapKey{multiset, length}]
}

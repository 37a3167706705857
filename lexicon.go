// lexicon.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the lexicon automaton probe: the Lexicon
// interface (spec §4.1, §6.1) plus a small in-memory gaddag reference
// implementation. It generalizes the teacher's Dawg/Navigator pair
// (dawg.go, navigators.go): the teacher hard-codes a rune alphabet and
// a compressed byte-coded DAWG loaded from an embedded file; the kernel
// instead works over opaque Tile-indexed nodes behind an interface,
// since spec §1 explicitly keeps file-format loaders out of scope for
// the core (only the *contract* the loader must satisfy belongs here).
//
// The in-memory implementation below builds a genuine gaddag-style
// automaton (reversed left-part + separator + right-part arcs per
// word), so that generator.go's left-part/extend-right traversal
// (spec §4.5) is exercised against a real automaton rather than a
// stubbed word set.

package skrafl

import (
	lru "github.com/hashicorp/golang-lru"
)

// NodeID is an opaque index into a lexicon automaton's node array.
type NodeID int32

// RootNode is the node every navigation begins at.
const RootNode NodeID = 0

// Separator is the reserved gaddag letter index that marks a flip from
// "traversing left from an anchor" to "traversing right", per spec
// §4.1. It is chosen above any real letter index a LetterDistribution
// is expected to use.
const Separator Tile = 63

// LexArc describes one outgoing edge of a lexicon automaton node.
type LexArc struct {
	Letter      Tile
	Target      NodeID
	Accepts     bool // the arc completes a word
	IsEndOfArcs bool // last arc out of its source node
}

// Lexicon is the read-only artifact providing automaton traversal.
// Node indices are opaque; the search engine never mutates the
// automaton (spec §4.1).
type Lexicon interface {
	Root() NodeID
	// Arc returns the target of the edge from node labeled with
	// letter, and whether that edge accepts (completes a word). ok is
	// false if no such edge exists.
	Arc(node NodeID, letter Tile) (target NodeID, accepts bool, ok bool)
	// ArcsOf enumerates every outgoing edge of node, in a stable
	// order with the last entry flagged IsEndOfArcs.
	ArcsOf(node NodeID) []LexArc
}

// gaddagNode is one node of the in-memory reference automaton.
type gaddagNode struct {
	arcs map[Tile]NodeID
}

// InMemoryLexicon is a minimal, fully in-process Lexicon built directly
// from a word list. It exists so the kernel and its tests are usable
// without a loader subsystem, per spec §6.1's artifact contract.
type InMemoryLexicon struct {
	nodes   []gaddagNode
	accepts map[NodeID]bool
}

// NewInMemoryLexicon builds a gaddag-style automaton over the given
// words (each already encoded as a tile slice via a LetterDistribution).
func NewInMemoryLexicon(words [][]Tile) *InMemoryLexicon {
	lex := &InMemoryLexicon{
		nodes:   []gaddagNode{{arcs: make(map[Tile]NodeID)}},
		accepts: make(map[NodeID]bool),
	}
	for _, w := range words {
		lex.addWord(w)
	}
	return lex
}

// addWord inserts every gaddag rotation of w into the trie.
func (lex *InMemoryLexicon) addWord(w []Tile) {
	n := len(w)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		seq := make([]Tile, 0, n+1)
		for j := i; j >= 0; j-- {
			seq = append(seq, w[j].LetterOf())
		}
		if i < n-1 {
			seq = append(seq, Separator)
			seq = append(seq, w[i+1:]...)
		}
		lex.insertSequence(seq)
	}
}

// insertSequence walks/creates a path for seq and marks its terminal
// node as accepting.
func (lex *InMemoryLexicon) insertSequence(seq []Tile) {
	node := RootNode
	for _, letter := range seq {
		letter = letter.LetterOf()
		target, ok := lex.nodes[node].arcs[letter]
		if !ok {
			lex.nodes = append(lex.nodes, gaddagNode{arcs: make(map[Tile]NodeID)})
			target = NodeID(len(lex.nodes) - 1)
			lex.nodes[node].arcs[letter] = target
		}
		node = target
	}
	lex.accepts[node] = true
}

// Root implements Lexicon.
func (lex *InMemoryLexicon) Root() NodeID {
	return RootNode
}

// Arc implements Lexicon.
func (lex *InMemoryLexicon) Arc(node NodeID, letter Tile) (NodeID, bool, bool) {
	if int(node) >= len(lex.nodes) {
		return 0, false, false
	}
	target, ok := lex.nodes[node].arcs[letter.LetterOf()]
	if !ok {
		return 0, false, false
	}
	return target, lex.accepts[target], true
}

// ArcsOf implements Lexicon.
func (lex *InMemoryLexicon) ArcsOf(node NodeID) []LexArc {
	if int(node) >= len(lex.nodes) {
		return nil
	}
	n := lex.nodes[node]
	arcs := make([]LexArc, 0, len(n.arcs))
	for letter, target := range n.arcs {
		arcs = append(arcs, LexArc{Letter: letter, Target: target, Accepts: lex.accepts[target]})
	}
	// Map iteration order varies between calls; sort by letter so the
	// order is stable.
	for i := 1; i < len(arcs); i++ {
		for j := i; j > 0 && arcs[j].Letter < arcs[j-1].Letter; j-- {
			arcs[j], arcs[j-1] = arcs[j-1], arcs[j]
		}
	}
	if len(arcs) > 0 {
		arcs[len(arcs)-1].IsEndOfArcs = true
	}
	return arcs
}

// Find reports whether word (as real letters, no separator) is present
// in the lexicon, by walking the reversed-whole-word rotation that
// addWord always inserts.
func (lex *InMemoryLexicon) Find(word []Tile) bool {
	node := lex.Root()
	for i := len(word) - 1; i >= 0; i-- {
		target, _, ok := lex.Arc(node, word[i])
		if !ok {
			return false
		}
		node = target
	}
	return lex.accepts[node]
}

// crossSetCacheSize mirrors the teacher's crossCache (dawg.go), a
// bounded LRU of previously computed cross-sets keyed by the
// left/right context string.
const crossSetCacheSize = 2048

// crossSetCache caches CrossSetOf results, avoiding repeated automaton
// walks for the same perpendicular context during a single generation.
type crossSetCache struct {
	lru *lru.Cache
}

func newCrossSetCache() *crossSetCache {
	c, _ := lru.New(crossSetCacheSize)
	return &crossSetCache{lru: c}
}

type crossSetKey struct {
	left, right string
	sep         Tile
}

func tilesKey(ts []Tile) string {
	b := make([]byte, len(ts))
	for i, t := range ts {
		b[i] = byte(t.LetterOf())
	}
	return string(b)
}

// lookup returns a cached cross-set bitmask, computing it with compute
// on a miss.
func (c *crossSetCache) lookup(left, right []Tile, compute func() uint64) uint64 {
	key := crossSetKey{left: tilesKey(left), right: tilesKey(right)}
	if v, ok := c.lru.Get(key); ok {
		return v.(uint64)
	}
	v := compute()
	c.lru.Add(key, v)
	return v
}

// CrossSetOf computes the bitmask of letters that legally complete the
// perpendicular word `left + ? + right` according to lex, where `?`
// stands for the letter being tested. Bit i of the result corresponds
// to letter index i; bit 0 doubles as "blank allowed" per spec §4.2,
// and is set iff any other bit is set.
func CrossSetOf(lex Lexicon, left, right []Tile, alphabetSize int, cache *crossSetCache) uint64 {
	compute := func() uint64 {
		var set uint64
		for letter := Tile(1); int(letter) < alphabetSize; letter++ {
			if wordAccepted(lex, left, letter, right) {
				set |= 1 << uint(letter)
			}
		}
		if set != 0 {
			set |= 1 // blank allowed iff some real letter is allowed
		}
		return set
	}
	if cache == nil {
		return compute()
	}
	return cache.lookup(left, right, compute)
}

// wordAccepted tests whether left + middle + right forms a word
// accepted by lex.
func wordAccepted(lex Lexicon, left []Tile, middle Tile, right []Tile) bool {
	word := make([]Tile, 0, len(left)+1+len(right))
	word = append(word, left...)
	word = append(word, middle.LetterOf())
	word = append(word, right...)
	if im, ok := lex.(*InMemoryLexicon); ok {
		return im.Find(word)
	}
	// Generic path for any Lexicon implementation: walk the reversed
	// whole-word rotation, exactly as InMemoryLexicon.Find does, using
	// only the public Arc contract.
	node := lex.Root()
	for i := len(word) - 1; i >= 0; i-- {
		target, accepts, ok := lex.Arc(node, word[i])
		if !ok {
			return false
		}
		node = target
		if i == 0 {
			return accepts
		}
	}
	return false
}

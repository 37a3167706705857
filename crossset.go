// crossset.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the cross-set engine (spec §4.2): recomputing,
// for every empty square adjacent to a newly placed tile, the set of
// letters that would legally complete the perpendicular word through
// that square, and the score already accumulated by tiles in that
// perpendicular run. Grounded in the teacher's Dawg.CrossSet and
// Board.CrossWords/CrossScore (dawg.go, board.go), generalized from a
// single shared cross-set to one per (direction, crossIndex) pair.

package skrafl

// RecomputeCrossSet recalculates the cross-set and cross-score for the
// square at (row, col), in the board's current addressing, for
// placements running along dir and the given crossIndex/lexicon/
// distribution. It zeroes the cross-set and cross-score of non-empty
// or bricked squares, and for squares without any perpendicular run it
// sets the trivial "anything goes" set, per spec §4.2's invariant.
func RecomputeCrossSet(
	b *Board, row, col int, dir Direction, crossIndex int,
	lex Lexicon, dist LetterDistribution, cache *crossSetCache,
) {
	sq := b.Sq(row, col)
	if sq == nil {
		return // out of bounds: nothing to recompute
	}
	if !sq.Empty || sq.Brick {
		sq.SetCrossSet(dir, crossIndex, 0)
		sq.SetCrossScore(dir, crossIndex, 0)
		return
	}
	above, below := crossFragments(b, row, col, dir)

	if len(above) == 0 && len(below) == 0 {
		sq.SetCrossSet(dir, crossIndex, trivialCrossSet)
		sq.SetCrossScore(dir, crossIndex, 0)
		return
	}
	// above is nearest-first; the word reads top-to-bottom, so the
	// "left" context for CrossSetOf is the reverse of above.
	left := reverseTiles(above)
	right := below
	set := CrossSetOf(lex, left, right, dist.Size()+1, cache)
	sq.SetCrossSet(dir, crossIndex, set)

	score := 0
	for _, t := range above {
		score += dist.Score(t.LetterOf())
	}
	for _, t := range below {
		score += dist.Score(t.LetterOf())
	}
	sq.SetCrossScore(dir, crossIndex, score)
}

// crossFragments reads the tiles immediately above/before and
// below/after (row, col) along the word perpendicular to mainDir (the
// direction of the word being placed through this square), regardless
// of the board's current addressing. It resolves (row, col) to a
// physical square first, so it is correct no matter what the board's
// transposed flag was on entry — unlike toggling relative to the
// entry state, which only holds when the caller happens to already be
// addressing in mainDir's own orientation.
func crossFragments(b *Board, row, col int, mainDir Direction) (above, below []Tile) {
	pr, pc := b.physical(row, col)
	wasTransposed := b.transposed
	b.transposed = mainDir == Horizontal
	var ar, ac int
	if b.transposed {
		ar, ac = pc, pr
	} else {
		ar, ac = pr, pc
	}
	above = b.Fragment(ar, ac, -1)
	below = b.Fragment(ar, ac, 1)
	b.transposed = wasTransposed
	return above, below
}

func reverseTiles(ts []Tile) []Tile {
	out := make([]Tile, len(ts))
	for i, t := range ts {
		out[len(ts)-1-i] = t
	}
	return out
}

// RecomputeNeighborhood recomputes cross-sets for every empty square
// adjacent (in the scan direction) to the squares spanned by a move
// just played at [startRow,startCol]..[startRow,startCol+length-1]
// along dir, for every direction and cross-index the board tracks.
// Grounded in spec §4.2's update rule: "after a placement, recompute
// these fields for all empty squares adjacent to newly played tiles."
func RecomputeNeighborhood(
	b *Board, startRow, startCol, length int, playDir Direction,
	lex Lexicon, dist LetterDistribution, numLexicons int, cache *crossSetCache,
) {
	wasTransposed := b.transposed
	b.transposed = playDir == Vertical
	defer func() { b.transposed = wasTransposed }()

	touch := func(row, col int) {
		for _, dir := range []Direction{Horizontal, Vertical} {
			for ci := 0; ci < numLexicons; ci++ {
				RecomputeCrossSet(b, row, col, dir, ci, lex, dist, cache)
			}
		}
	}
	// The squares immediately before and after the played run.
	touch(startRow, startCol-1)
	touch(startRow, startCol+length)
	// Every square in the run's own perpendicular neighbors (the
	// squares themselves are now occupied, so only the newly-exposed
	// empty neighbors above/below each matter for the other
	// direction's cross-set of squares further down the same lane);
	// recompute along the run itself too, since an adjacent empty
	// square two away may have changed its perpendicular context.
	for c := startCol; c < startCol+length; c++ {
		touch(startRow, c)
	}
}

// shadow.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the shadow evaluator (spec §4.4): a cheap
// upper-bound estimate of the best equity achievable at a given
// anchor, computed before the full recursive generator runs, used to
// order (and potentially early-terminate) anchor processing. The
// teacher has no equivalent pruning step at all; this is grounded
// directly in spec §4.4's description of the shadow walk.

package skrafl

// ShadowEstimate walks outward from an anchor square along dir,
// pretending to place the rack's highest-scoring remaining tiles on
// the best remaining multipliers in descending order, and returns an
// upper bound on both the raw score and the full equity (score plus
// the best-case leave) obtainable at this anchor.
func ShadowEstimate(
	b *Board, anchorRow, anchorCol int, dir Direction, crossIndex int,
	rack *Rack, dist LetterDistribution, bestLeave Equity,
) (highestScore, highestEquity Equity) {
	wasTransposed := b.transposed
	b.transposed = dir == Vertical
	defer func() { b.transposed = wasTransposed }()

	// Gather the descending-sorted remaining tile scores available to
	// place (spec §6.1: the distribution exposes "a descending-tile-
	// score array used by shadow and endgame heuristics").
	scores := dist.DescendingScores(rack)
	if len(scores) == 0 {
		return 0, 0
	}

	// Collect the multipliers of reachable empty, non-bricked squares
	// within len(rack tiles) squares to either side of the anchor (the
	// anchor square itself excluded) whose cross-set is non-empty.
	type slot struct{ wordMult, letterMult int }
	var slots []slot
	maxSpan := len(scores)
	for delta := -maxSpan; delta <= maxSpan; delta++ {
		if delta == 0 {
			continue
		}
		sq := b.Sq(anchorRow, anchorCol+delta)
		if sq == nil || !sq.Empty || sq.Brick {
			continue
		}
		if sq.CrossSet(dir, crossIndex) == 0 {
			continue
		}
		slots = append(slots, slot{sq.WordMult, sq.LetterMult})
	}
	// Sort slots by letter multiplier descending (simple insertion
	// sort; the candidate slot count is at most twice the rack size so
	// this stays cheap).
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && slots[j].letterMult > slots[j-1].letterMult; j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}

	restrictedScore := 0
	wordMultiplier := 1
	n := len(scores)
	if n > len(slots) {
		n = len(slots)
	}
	for i := 0; i < n; i++ {
		restrictedScore += scores[i] * slots[i].letterMult
		if slots[i].wordMult > 1 {
			wordMultiplier *= slots[i].wordMult
		}
	}
	rawScore := restrictedScore * wordMultiplier

	highestScore = IntToEquity(rawScore)
	highestEquity = IntToEquity(rawScore) + bestLeave
	return highestScore, highestEquity
}

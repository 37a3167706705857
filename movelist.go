// movelist.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the move list and its three record policies
// (spec §4.8). Grounded in the teacher's sort.Sort-based move ordering
// (robot.go byScore), generalized from "collect everything, sort once"
// to the record-all/record-best/record-within-ε policies the
// generator needs to prune as it goes.

package skrafl

import "sort"

// RecordPolicy selects how a MoveList decides whether to keep a
// candidate move.
type RecordPolicy int

const (
	RecordAll RecordPolicy = iota
	RecordBest
	RecordWithinEpsilon
)

// MoveList is a container of candidate moves; it has no fixed capacity.
type MoveList struct {
	policy  RecordPolicy
	epsilon Equity
	moves   []*Move
	best    Equity
}

// NewMoveList creates a move list under the given policy. epsilon is
// only meaningful for RecordWithinEpsilon.
func NewMoveList(policy RecordPolicy, epsilon Equity) *MoveList {
	return &MoveList{policy: policy, epsilon: epsilon, best: EquityInitial}
}

// Add offers a candidate move to the list, applying the configured
// record policy. The move is retained (possibly alongside others
// evicted) according to the policy.
func (ml *MoveList) Add(m *Move) {
	switch ml.policy {
	case RecordAll:
		ml.moves = append(ml.moves, m)
		if ml.best.Less(m.Equity) {
			ml.best = m.Equity
		}
	case RecordBest:
		if len(ml.moves) == 0 || ml.best.Less(m.Equity) {
			ml.moves = []*Move{m}
			ml.best = m.Equity
		}
	case RecordWithinEpsilon:
		if ml.best.Less(m.Equity) {
			ml.best = m.Equity
			threshold := ml.best - ml.epsilon
			kept := ml.moves[:0]
			for _, existing := range ml.moves {
				if !existing.Equity.Less(threshold) {
					kept = append(kept, existing)
				}
			}
			ml.moves = append(kept, m)
		} else if !m.Equity.Less(ml.best - ml.epsilon) {
			ml.moves = append(ml.moves, m)
		}
	}
}

// Reset empties the list and clears the running best equity.
func (ml *MoveList) Reset() {
	ml.moves = ml.moves[:0]
	ml.best = EquityInitial
}

// Count returns the number of moves currently held.
func (ml *MoveList) Count() int {
	return len(ml.moves)
}

// Moves returns the underlying slice of retained moves (not a copy;
// callers must not retain it across a Reset).
func (ml *MoveList) Moves() []*Move {
	return ml.moves
}

// BestEquity returns the running best equity tracked by Add, without
// scanning the retained moves. Starts at EquityInitial before any move
// is added.
func (ml *MoveList) BestEquity() Equity {
	return ml.best
}

// Best returns the highest-equity move seen, or nil if empty.
func (ml *MoveList) Best() *Move {
	if len(ml.moves) == 0 {
		return nil
	}
	best := ml.moves[0]
	for _, m := range ml.moves[1:] {
		if best.Equity.Less(m.Equity) {
			best = m
		}
	}
	return best
}

// moveTiebreak orders two moves with equal sort key deterministically
// by row, column, direction, and tile sequence (spec §4.8), so that
// auto-play is reproducible from a seed.
func moveTiebreak(a, b *Move) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	if a.Dir != b.Dir {
		return a.Dir < b.Dir
	}
	n := len(a.Tiles)
	if len(b.Tiles) < n {
		n = len(b.Tiles)
	}
	for i := 0; i < n; i++ {
		if a.Tiles[i] != b.Tiles[i] {
			return a.Tiles[i] < b.Tiles[i]
		}
	}
	return len(a.Tiles) < len(b.Tiles)
}

// SortByScore orders the moves by descending score, with the
// deterministic tiebreak above.
func (ml *MoveList) SortByScore() {
	sort.SliceStable(ml.moves, func(i, j int) bool {
		a, b := ml.moves[i], ml.moves[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return moveTiebreak(a, b)
	})
}

// SortByEquity orders the moves by descending equity, with the same
// tiebreak. Idempotent: calling it twice in a row yields the same
// order (spec §8 property #4).
func (ml *MoveList) SortByEquity() {
	sort.SliceStable(ml.moves, func(i, j int) bool {
		a, b := ml.moves[i], ml.moves[j]
		if a.Equity != b.Equity {
			return a.Equity > b.Equity
		}
		return moveTiebreak(a, b)
	})
}

// PopMax removes and returns the single highest-equity move, leaving
// the rest unsorted. It finds the move by a linear scan; the list is
// not kept as a heap, so each call costs O(n).
func (ml *MoveList) PopMax() *Move {
	if len(ml.moves) == 0 {
		return nil
	}
	bestIdx := 0
	for i, m := range ml.moves {
		if ml.moves[bestIdx].Equity.Less(m.Equity) {
			bestIdx = i
		}
	}
	m := ml.moves[bestIdx]
	last := len(ml.moves) - 1
	ml.moves[bestIdx] = ml.moves[last]
	ml.moves = ml.moves[:last]
	return m
}

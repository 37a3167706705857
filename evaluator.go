// evaluator.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the static evaluator (spec §4.9): combining a
// move's raw score with its leave value and a phase-dependent
// adjustment into its final equity. The teacher never scores a leave
// or a game phase at all (TileMove.Score, move.go, stops at the raw
// board score); the phase adjustments here are grounded directly in
// spec §4.9's four disjoint cases.

package skrafl

// OpeningHotspot names a square whose opening-move penalty table entry
// applies when a vowel lands there on the first move of the game.
// Penalty is added to the move's equity as-is, so a negative value
// lowers it.
type OpeningHotspot struct {
	Row, Col int
	Penalty  Equity
}

// EvaluatorParams bundles the tables and constants the static
// evaluator needs beyond the position itself (spec §4.9).
type EvaluatorParams struct {
	OpeningHotspots               []OpeningHotspot
	PreendgameTable                []Equity // indexed by bag_size - tiles_played + RackSize
	NonOutplayLeaveScoreMultiplier int
	NonOutplayConstantPenalty      Equity
}

// Evaluate computes a move's final equity given the position it would
// be played into (before application) and its leave table, following
// spec §4.9's disjoint phase adjustments. m.Score must already be set
// (by the generator or the validator); Evaluate overwrites m.Equity.
func Evaluate(m *Move, pos *Position, leaves LeaveTable, params EvaluatorParams) Equity {
	if m.Kind == Pass {
		m.Equity = EquityPass
		return EquityPass
	}

	leaveBits := leaveAfter(m, pos)
	leaveValue := Equity(0)
	if leaves != nil {
		leaveValue = leaves.Value(leaveBits)
	}

	equity := IntToEquity(m.Score) + leaveValue

	switch {
	case m.Kind == Place && pos.Board.NumTiles() == 0:
		equity += openingPenalty(m, params.OpeningHotspots, pos.Dist)
	case pos.Bag.Count() > 0:
		equity += preendgameAdjustment(m, pos, params.PreendgameTable)
	case leaveBits.IsEmpty():
		equity += Equity(2) * IntToEquity(pos.OtherPlayer().Rack.Score(pos.Dist))
	default:
		remainingScore := rackScoreOf(leaveBits, pos.Dist)
		equity += -IntToEquity(remainingScore*params.NonOutplayLeaveScoreMultiplier) - params.NonOutplayConstantPenalty
	}

	m.Equity = equity
	return equity
}

// leaveAfter computes the BitRack the current player would hold after
// playing m, without mutating pos.
func leaveAfter(m *Move, pos *Position) BitRack {
	rack := pos.CurrentPlayer().Rack.Clone()
	switch m.Kind {
	case Place:
		for _, t := range m.Tiles {
			if t.IsPlayThrough() {
				continue
			}
			if t.IsBlankDesignation() {
				rack.Remove(UndesignatedBlank)
			} else {
				rack.Remove(t.LetterOf())
			}
		}
	case Exchange:
		for _, t := range m.Tiles {
			rack.Remove(t.LetterOf())
		}
	}
	return rack.AsBitRack()
}

func rackScoreOf(leave BitRack, dist LetterDistribution) int {
	total := 0
	for _, letter := range leave.Letters() {
		total += leave.Count(letter) * dist.Score(letter)
	}
	return total
}

// openingPenalty adds a per-square penalty for every vowel the move
// places on a configured opening hotspot (spec §4.9's "Opening" case).
func openingPenalty(m *Move, hotspots []OpeningHotspot, dist LetterDistribution) Equity {
	var penalty Equity
	for i, t := range m.Tiles {
		if t.IsPlayThrough() || !dist.IsVowel(t.LetterOf()) {
			continue
		}
		row, col := m.Row, m.Col+i
		if m.Dir == Vertical {
			row, col = m.Col+i, m.Row
		}
		for _, h := range hotspots {
			if h.Row == row && h.Col == col {
				penalty += h.Penalty
			}
		}
	}
	return penalty
}

// preendgameAdjustment reads the table-driven bonus/penalty indexed by
// bag_size - tiles_played + RackSize (spec §4.9's "Pre-endgame" case),
// returning 0 if the index falls outside the table.
func preendgameAdjustment(m *Move, pos *Position, table []Equity) Equity {
	idx := pos.Bag.Count() - m.TilesPlayed + RackSize
	if idx < 0 || idx >= len(table) {
		return 0
	}
	return table[idx]
}

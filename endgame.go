// endgame.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the endgame solver (spec §4.11): iterative
// deepening negascout (principal variation search) over moves written
// into a per-call MoveArena, with move ordering biased toward going
// out, halting cooperatively through the shared ThreadControl. The
// teacher has no endgame search at all (its robots are one-ply
// greedy); this is grounded directly in spec §4.11, reusing
// generator.go's GenerateMoves for move production and control.go's
// halt-polling convention.

package skrafl

import (
	"math/rand"

	"go.uber.org/zap"
)

// EndgameParams bundles the solver's tunables.
type EndgameParams struct {
	RequestedPlies int
	ThreadJitter   float64 // per-thread move-ordering jitter magnitude
	PreviousMove   *Move   // the move that led to this position, for the pass-bonus heuristic
}

// PVLine is a principal variation: the sequence of moves that achieves
// its Score, from the root's perspective (spec §3).
type PVLine struct {
	Moves []*Move
	Score Equity
}

// Solver runs the iterative-deepening negascout search.
type Solver struct {
	Dist    LetterDistribution
	Leaves  LeaveTable
	Logger  *zap.Logger
	rng     *rand.Rand
	control *ThreadControl
}

// NewSolver builds a solver for the given artifacts, seeded from
// control for reproducible move-ordering jitter.
func NewSolver(dist LetterDistribution, leaves LeaveTable, control *ThreadControl, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		Dist: dist, Leaves: leaves, Logger: logger, control: control,
		rng: rand.New(rand.NewSource(control.Seed())),
	}
}

// Solve runs iterative deepening over plies 1..params.RequestedPlies
// and returns the best PV found at the deepest completed depth (spec
// §4.11). pos must have an empty bag; the caller is responsible for
// that precondition. Solve never fails: if the control object's halt
// flag fires mid-depth, the previous depth's PV is returned.
func (s *Solver) Solve(pos *Position, params EndgameParams) *PVLine {
	return s.solve(pos, params, EquityMin, EquityMax)
}

// SolveFirstWin runs the same iterative-deepening negascout search but
// with the search window narrowed to (-1, +1) point-equivalent, a
// cheap "does a win exist" query. Per the spec's own caveat, its
// interaction with negascout's full-window re-search is not guaranteed
// monotone in plies; treat results as a fast existence probe, not a
// substitute for Solve's exact value.
func (s *Solver) SolveFirstWin(pos *Position, params EndgameParams) *PVLine {
	lo := IntToEquity(-1)
	hi := IntToEquity(1)
	return s.solve(pos, params, lo, hi)
}

func (s *Solver) solve(pos *Position, params EndgameParams, windowLo, windowHi Equity) *PVLine {
	s.control.Start()
	defer s.control.Finish()

	arena := NewMoveArena(64)
	var best *PVLine
	for depth := 1; depth <= params.RequestedPlies; depth++ {
		if s.control.HaltRequested() {
			break
		}
		mark := arena.Mark()
		pv := s.negascout(pos, arena, depth, windowLo, windowHi, params)
		arena.Reset(mark)
		if s.control.HaltRequested() {
			break
		}
		if pv != nil {
			best = pv
		}
	}
	if best == nil {
		best = &PVLine{}
	}
	return best
}

// negascout searches pos to the given depth using principal variation
// search: the first child is searched with the full (-beta, -alpha)
// window; subsequent children use a null window (-alpha-1, -alpha) and
// are only re-searched with the full window if the null-window probe
// falls inside (alpha, beta). Returns nil if halted before any child
// completed.
func (s *Solver) negascout(
	pos *Position, arena *MoveArena, depth int, alpha, beta Equity, params EndgameParams,
) *PVLine {
	if s.control.HaltRequested() {
		return nil
	}
	if depth == 0 || pos.IsOver() {
		return &PVLine{Score: s.leafValue(pos)}
	}

	player := pos.CurrentPlayer()
	mark := arena.Mark()
	moves := GenerateMoves(pos.Board, player.Rack, player.Lex, pos.Dist, pos.CrossIndexOf(pos.PlayerOnTurn), player.Leave, pos.BingoBonus, RecordAll, 0)
	ordered := s.orderMoves(moves.Moves(), params)
	for _, m := range ordered {
		arena.Push(*m)
	}
	defer arena.Reset(mark)

	var bestPV *PVLine
	first := true
	for i := range ordered {
		m := arena.At(int(mark) + i)
		child := pos.Clone()
		s.apply(child, m)
		childParams := EndgameParams{RequestedPlies: params.RequestedPlies, ThreadJitter: params.ThreadJitter, PreviousMove: m}

		var childPV *PVLine
		if first {
			childPV = s.negascout(child, arena, depth-1, beta.Negate(), alpha.Negate(), childParams)
		} else {
			nullHi := alpha.Negate()
			nullLo := (alpha + 1).Negate()
			childPV = s.negascout(child, arena, depth-1, nullLo, nullHi, childParams)
			if childPV != nil {
				score := childPV.Score.Negate()
				if score.Less(beta) && alpha.Less(score) {
					childPV = s.negascout(child, arena, depth-1, beta.Negate(), alpha.Negate(), childParams)
				}
			}
		}
		if childPV == nil {
			if bestPV != nil {
				return bestPV
			}
			return nil
		}

		score := childPV.Score.Negate()
		if bestPV == nil || alpha.Less(score) {
			mv := *m // m points into the arena, whose slots are reused after Reset
			bestPV = &PVLine{Score: score, Moves: append([]*Move{&mv}, childPV.Moves...)}
			alpha = score
		}
		first = false
		if !alpha.Less(beta) {
			break // beta cutoff
		}
	}
	if bestPV != nil && len(bestPV.Moves) > params.RequestedPlies {
		bestPV.Moves = bestPV.Moves[:params.RequestedPlies]
	}
	return bestPV
}

// leafValue returns player_score - opponent_score from the on-turn
// player's perspective, per spec §4.11's negamax leaf convention.
func (s *Solver) leafValue(pos *Position) Equity {
	mover := pos.CurrentPlayer()
	other := pos.OtherPlayer()
	return IntToEquity(mover.Score - other.Score)
}

// apply plays m against pos in place, for the given move kind.
func (s *Solver) apply(pos *Position, m *Move) {
	cache := newCrossSetCache()
	switch m.Kind {
	case Place:
		pos.ApplyPlacement(m, cache)
	case Exchange:
		pos.ApplyExchange(m.Tiles)
	default:
		pos.ApplyPass()
	}
}

// orderMoves ranks moves by an ordering estimate — raw score plus a
// large bonus for a placement of RackSize tiles, a smaller bonus if the
// previous move was a pass, and per-thread jitter (spec §4.11) — without
// touching their search-true equity. A placement that empties a rack
// holding fewer than RackSize tiles gets no going-out bonus.
func (s *Solver) orderMoves(moves []*Move, params EndgameParams) []*Move {
	const goingOutBonus = 1000
	const passBonus = 50

	type scored struct {
		m   *Move
		est float64
	}
	ranked := make([]scored, len(moves))
	for i, m := range moves {
		est := float64(m.Score)
		if m.Kind == Place && m.TilesPlayed == RackSize {
			est += goingOutBonus
		}
		if params.PreviousMove != nil && params.PreviousMove.Kind == Pass {
			est += passBonus
		}
		if params.ThreadJitter > 0 {
			est += (s.rng.Float64()*2 - 1) * params.ThreadJitter
		}
		ranked[i] = scored{m, est}
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j-1].est < ranked[j].est; j-- {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
		}
	}
	out := make([]*Move, len(ranked))
	for i, r := range ranked {
		out[i] = r.m
	}
	return out
}

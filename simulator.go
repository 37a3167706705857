// simulator.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Monte-Carlo simulator (spec §4.10):
// rolling out a small set of candidate moves to a fixed ply depth many
// times, under a shared seed and thread pool, to rank them by
// estimated win-percentage. The teacher has no simulator at all (its
// robots play the single highest-scoring or highest-equity move with
// no rollout); the worker-pool shape is grounded in riddle.go's
// GenerateRiddle (context-driven goroutines racing a shared atomic
// counter against a channel of results), generalized from "spawn
// workers until N candidates found" to "spawn workers that each claim
// iterations from ThreadControl until the stopping rule fires."

package skrafl

import (
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StoppingCondition names the statistical significance level at which
// the simulator's pruning rule stops tracking a lagging candidate.
type StoppingCondition int

const (
	StoppingNone StoppingCondition = iota
	StoppingP95
	StoppingP99
	StoppingP999
)

// SimParams bundles the simulator's tunables (spec §4.10).
type SimParams struct {
	Plies                            int
	MaxIterations                    int
	StoppingCondition                StoppingCondition
	Threads                          int
	KnownOpponentRack                []Tile // nil if unknown
	MinIterationsBeforeStoppingCheck int64
}

func (p SimParams) minIterationsBeforeStoppingCheck() int64 {
	if p.MinIterationsBeforeStoppingCheck > 0 {
		return p.MinIterationsBeforeStoppingCheck
	}
	return 50
}

// SimmedPlay is one candidate move under simulation, with its running
// per-ply and aggregate statistics (spec §3).
type SimmedPlay struct {
	Move           *Move
	PlayID         uuid.UUID
	ScoreStats     []Stat // one per ply
	BingoStats     []Stat // one per ply, samples are 0/1
	Equity         Stat
	WinPct         Stat
	IsPruned       bool
	LastMoveChosen *Move

	mu sync.Mutex
}

func newSimmedPlay(m *Move, plies int) *SimmedPlay {
	sp := &SimmedPlay{
		Move:       m,
		PlayID:     uuid.New(),
		ScoreStats: make([]Stat, plies),
		BingoStats: make([]Stat, plies),
		Equity:     NewStat(),
		WinPct:     NewStat(),
	}
	for i := range sp.ScoreStats {
		sp.ScoreStats[i] = NewStat()
		sp.BingoStats[i] = NewStat()
	}
	return sp
}

// SimResults is the final report of a simulator run (spec §3).
type SimResults struct {
	Plays             []*SimmedPlay
	IterationCount     int64
	NodeCount          int64
	MaxPlies           int
	Seed               int64
	StoppingCondition  StoppingCondition
}

// SimilarityCache tracks, for every pair of candidate indices, whether
// they were found to play an identical tile strip at an identical
// square leaving an identical rack (spec §4.10's "num_plays x
// num_plays cache"). Unlike the spec's phrasing ("the first time two
// moves are detected similar during a rollout"), this kernel computes
// similarity once, up front, since the predicate — same strip, same
// start square and direction, same post-move leave multiset — depends
// only on the candidate moves and the pre-rollout rack, never on a
// particular rollout's random draws; the result is identical whenever
// it would be checked lazily.
type SimilarityCache struct {
	mu      sync.Mutex
	similar [][]bool
}

// NewSimilarityCache allocates an n x n similarity table.
func NewSimilarityCache(n int) *SimilarityCache {
	rows := make([][]bool, n)
	for i := range rows {
		rows[i] = make([]bool, n)
	}
	return &SimilarityCache{similar: rows}
}

// Merge marks i and j as similar.
func (c *SimilarityCache) Merge(i, j int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.similar[i][j] = true
	c.similar[j][i] = true
}

// IsSimilar reports whether i and j were merged.
func (c *SimilarityCache) IsSimilar(i, j int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.similar[i][j]
}

// movesSimilar reports whether two candidate moves are strategically
// equivalent for simulation purposes: same tile strip, same start
// square and direction, and the same resulting rack-leave multiset.
func movesSimilar(a, b *Move, leaveA, leaveB BitRack) bool {
	if a.Row != b.Row || a.Col != b.Col || a.Dir != b.Dir || a.Kind != b.Kind {
		return false
	}
	if len(a.Tiles) != len(b.Tiles) {
		return false
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			return false
		}
	}
	return leaveA == leaveB
}

// Simulator runs the Monte-Carlo rollouts for a candidate list.
type Simulator struct {
	Dist   LetterDistribution
	Leaves LeaveTable
	Logger *zap.Logger
}

// Simulate rolls out every candidate move repeatedly from pos under
// params, returning ranked per-candidate statistics. pos is not
// mutated; every worker and every rollout operates on its own clone.
func (sim *Simulator) Simulate(
	pos *Position, candidates []*Move, params SimParams, control *ThreadControl,
) *SimResults {
	logger := sim.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	n := len(candidates)
	plays := make([]*SimmedPlay, n)
	for i, m := range candidates {
		plays[i] = newSimmedPlay(m, params.Plies)
	}

	cache := NewSimilarityCache(n)
	leaveOf := make([]BitRack, n)
	mover := pos.CurrentPlayer()
	for i, m := range candidates {
		leaveOf[i] = candidateLeave(mover.Rack, m)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if movesSimilar(candidates[i], candidates[j], leaveOf[i], leaveOf[j]) {
				cache.Merge(i, j)
				loser := i
				if candidates[j].Equity.Less(candidates[i].Equity) {
					loser = j
				}
				plays[loser].IsPruned = true
			}
		}
	}

	control.Start()
	threads := params.Threads
	if threads < 1 {
		threads = 1
	}
	logger.Debug("simulator starting", zap.Int("candidates", n), zap.Int("threads", threads))

	var g errgroup.Group
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			sim.runWorker(pos, plays, control, params)
			return nil
		})
	}
	_ = g.Wait()
	control.Finish()
	sortSimmedByWinPct(plays)

	return &SimResults{
		Plays:             plays,
		IterationCount:    control.IterationCount(),
		MaxPlies:          params.Plies,
		Seed:              control.Seed(),
		StoppingCondition: params.StoppingCondition,
	}
}

// runWorker claims iterations from control until the stopping rule
// fires, halting, or exhausting max_iterations; each iteration rolls
// out every non-pruned candidate once.
func (sim *Simulator) runWorker(
	pos *Position, plays []*SimmedPlay, control *ThreadControl, params SimParams,
) {
	for {
		if control.HaltRequested() {
			return
		}
		iter := control.NextIteration()
		if params.MaxIterations > 0 && iter >= int64(params.MaxIterations) {
			control.Halt()
			return
		}
		rng := rand.New(rand.NewSource(control.IterationSeed(iter)))

		anyActive := false
		for _, play := range plays {
			if play.IsPruned {
				continue
			}
			anyActive = true
			sim.rollout(pos, play, rng, params)
		}
		if !anyActive {
			control.Halt()
			return
		}

		if iter > 0 && iter%params.minIterationsBeforeStoppingCheck() == 0 {
			if sim.evaluateStopping(plays, params.StoppingCondition) {
				control.Halt()
				return
			}
		}
	}
}

// rollout plays one Monte-Carlo iteration of play's candidate move
// from pos, updating play's running statistics (spec §4.10 steps 1-4).
func (sim *Simulator) rollout(pos *Position, play *SimmedPlay, rng *rand.Rand, params SimParams) {
	clone := pos.Clone()
	movingIdx := clone.PlayerOnTurn
	cache := newCrossSetCache()

	// Position.Clone shares the source position's *rand.Rand by pointer
	// (fine for a single-owner Position), which would otherwise let every
	// concurrent rollout's rack refills race on and perturb the same
	// generator. Point the clone's bag at this iteration's private rng so
	// every draw this rollout makes is reproducible from IterationSeed
	// alone and isolated from every other goroutine's rollout.
	clone.Bag.rng = rng

	sim.applyCandidateMove(clone, play.Move, cache)
	sim.resampleOpponentRack(clone, 1-movingIdx, params.KnownOpponentRack, rng)

	for ply := 0; ply < params.Plies && !clone.IsOver(); ply++ {
		player := clone.CurrentPlayer()
		moves := GenerateMoves(clone.Board, player.Rack, player.Lex, clone.Dist, clone.CrossIndexOf(clone.PlayerOnTurn), player.Leave, clone.BingoBonus, RecordBest, 0)
		best := moves.Best()
		if best == nil || best.Kind == Pass {
			clone.ApplyPass()
			continue
		}
		scoreBefore := player.Score
		bingo := 0
		switch best.Kind {
		case Place:
			clone.ApplyPlacement(best, cache)
			if best.TilesPlayed == RackSize {
				bingo = 1
			}
		case Exchange:
			clone.ApplyExchange(best.Tiles)
		default:
			clone.ApplyPass()
		}
		if ply < len(play.ScoreStats) {
			play.mu.Lock()
			play.ScoreStats[ply].Push(float64(player.Score - scoreBefore))
			play.BingoStats[ply].Push(float64(bingo))
			play.mu.Unlock()
		}
		play.LastMoveChosen = best
	}

	mover := clone.Players[movingIdx]
	other := clone.Players[1-movingIdx]
	spread := float64(mover.Score - other.Score)

	var adjustment float64
	if clone.Bag.Count() > 0 {
		if mover.Leave != nil {
			adjustment = mover.Leave.Value(mover.Rack.AsBitRack()).ToFloat()
		}
	} else if mover.Rack.IsEmpty() {
		adjustment = 2 * float64(other.Rack.Score(clone.Dist))
	} else {
		adjustment = -float64(mover.Rack.Score(clone.Dist))
	}
	equity := spread + adjustment

	play.mu.Lock()
	play.Equity.Push(equity)
	play.WinPct.Push(winPercentage(equity))
	play.mu.Unlock()
}

// applyCandidateMove plays play.Move as the position's on-turn player.
func (sim *Simulator) applyCandidateMove(pos *Position, m *Move, cache *crossSetCache) {
	switch m.Kind {
	case Place:
		pos.ApplyPlacement(m, cache)
	case Exchange:
		pos.ApplyExchange(m.Tiles)
	default:
		pos.ApplyPass()
	}
}

// resampleOpponentRack returns opponentIdx's true rack to the bag and
// draws a fresh one, so the simulation never leaks rack information
// the real engine would not have (spec §4.10 step 1). If known is
// non-nil, its tiles are taken out of the bag first; the rack is then
// filled at random up to RackSize, or until the bag is empty.
func (sim *Simulator) resampleOpponentRack(pos *Position, opponentIdx int, known []Tile, rng *rand.Rand) {
	opponent := pos.Players[opponentIdx]
	pos.Bag.Return(opponent.Rack.Tiles())
	opponent.Rack = NewRack(nil)

	if known != nil {
		for _, t := range known {
			pos.Bag.RemoveTile(t.LetterOf())
			opponent.Rack.Add(t.LetterOf())
		}
	}
	for opponent.Rack.Total() < RackSize && pos.Bag.Count() > 0 {
		i := rng.Intn(pos.Bag.Count())
		t := pos.Bag.tiles[i]
		last := pos.Bag.Count() - 1
		pos.Bag.tiles[i] = pos.Bag.tiles[last]
		pos.Bag.tiles = pos.Bag.tiles[:last]
		opponent.Rack.Add(t)
	}
}

// candidateLeave computes the BitRack a rack would hold after playing
// m, without mutating rack.
func candidateLeave(rack *Rack, m *Move) BitRack {
	clone := rack.Clone()
	switch m.Kind {
	case Place:
		for _, t := range m.Tiles {
			if t.IsPlayThrough() {
				continue
			}
			if t.IsBlankDesignation() {
				clone.Remove(UndesignatedBlank)
			} else {
				clone.Remove(t.LetterOf())
			}
		}
	case Exchange:
		for _, t := range m.Tiles {
			clone.Remove(t.LetterOf())
		}
	}
	return clone.AsBitRack()
}

// winPercentage estimates a win probability from a leaf equity value
// via a logistic curve, standing in for the spec's "precomputed
// spread-vs-plies-remaining table" (§4.10): steeper spreads saturate
// toward 0 or 1, a spread of 0 is a coin flip.
func winPercentage(equity float64) float64 {
	const k = 0.0274 // calibrated so a ~50-point spread is decisive
	return 1 / (1 + math.Exp(-k*equity))
}

// evaluateStopping applies the simulator's pairwise significance test
// (spec §4.10's stopping rule) and marks newly-dominated candidates as
// pruned. Returns true once at most one candidate remains unpruned.
func (sim *Simulator) evaluateStopping(plays []*SimmedPlay, sc StoppingCondition) bool {
	if sc == StoppingNone {
		return false
	}
	threshold := zThresholdFor(sc)

	active := make([]*SimmedPlay, 0, len(plays))
	for _, p := range plays {
		if !p.IsPruned {
			active = append(active, p)
		}
	}
	if len(active) <= 1 {
		return true
	}
	sortSimmedByWinPct(active)

	survivors := active[:1]
	for _, candidate := range active[1:] {
		dominated := true
		for _, survivor := range survivors {
			survivor.mu.Lock()
			candidate.mu.Lock()
			z := zScore(&survivor.WinPct, &candidate.WinPct)
			candidate.mu.Unlock()
			survivor.mu.Unlock()
			if z < threshold {
				dominated = false
				break
			}
		}
		if dominated {
			candidate.IsPruned = true
		} else {
			survivors = append(survivors, candidate)
		}
	}

	remaining := 0
	for _, p := range plays {
		if !p.IsPruned {
			remaining++
		}
	}
	return remaining <= 1
}

// sortSimmedByWinPct orders plays by descending win-percentage mean,
// ties by descending equity mean (spec §4.10's ranking guarantee).
func sortSimmedByWinPct(plays []*SimmedPlay) {
	for i := 1; i < len(plays); i++ {
		for j := i; j > 0; j-- {
			a, b := plays[j-1], plays[j]
			aw, bw := a.WinPct.Mean(), b.WinPct.Mean()
			if aw > bw || (aw == bw && a.Equity.Mean() >= b.Equity.Mean()) {
				break
			}
			plays[j-1], plays[j] = plays[j], plays[j-1]
		}
	}
}

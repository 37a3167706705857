// evaluator_test.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatePassReturnsEquityPass(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	eq := Evaluate(NewPassMove(), pos, nil, EvaluatorParams{})
	require.Equal(t, EquityPass, eq)
}

// TestEvaluateOpeningPenalizesVowelOnHotspot places "cat" across the
// empty board's center row (c,a,t at cols 7,8,9) and configures a
// hotspot at the square the 'a' lands on, matching
// TestScorePlacementOnEmptyBoard's score of 10.
func TestEvaluateOpeningPenalizesVowelOnHotspot(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	tiles := []Tile{3, 1, 20} // c, a, t
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	plain := Evaluate(&Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}, pos, nil, EvaluatorParams{})

	hotspots := []OpeningHotspot{{Row: 7, Col: 8, Penalty: Equity(-500)}}
	withPenalty := Evaluate(m, pos, nil, EvaluatorParams{OpeningHotspots: hotspots})

	require.Equal(t, plain-Equity(500), withPenalty)
}

func TestEvaluateOpeningIgnoresConsonantOnHotspot(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	tiles := []Tile{3, 1, 20} // c, a, t
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	// Hotspot sits on the 'c' (col 7), a consonant: no penalty applies.
	hotspots := []OpeningHotspot{{Row: 7, Col: 7, Penalty: Equity(500)}}
	eq := Evaluate(m, pos, nil, EvaluatorParams{OpeningHotspots: hotspots})
	require.Equal(t, IntToEquity(score), eq)
}

// TestEvaluatePreendgameUsesTableWhenBagNonEmpty exercises the
// bag.Count() > 0 branch: a non-empty bag routes through
// preendgameAdjustment regardless of the board being occupied.
func TestEvaluatePreendgameUsesTableWhenBagNonEmpty(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	// Occupy the board so the "opening" branch (NumTiles() == 0) is skipped.
	pos.Board.PlaceTile(0, 0, Tile(1))

	tiles := []Tile{3, 1, 20}
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score, TilesLength: 3}

	idx := pos.Bag.Count() - m.TilesPlayed + RackSize
	table := make([]Equity, idx+1)
	table[idx] = Equity(777)

	eq := Evaluate(m, pos, nil, EvaluatorParams{PreendgameTable: table})
	require.Equal(t, IntToEquity(score)+Equity(777), eq)
}

func TestEvaluatePreendgameTableOutOfRangeIsZero(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	pos.Board.PlaceTile(0, 0, Tile(1))

	tiles := []Tile{3, 1, 20}
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	eq := Evaluate(m, pos, nil, EvaluatorParams{PreendgameTable: nil})
	require.Equal(t, IntToEquity(score), eq)
}

// TestEvaluateOutplayDoublesOpponentLeave exercises the bag-empty,
// own-leave-empty branch: equity gains twice the opponent's remaining
// rack score.
func TestEvaluateOutplayDoublesOpponentLeave(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	pos.Board.PlaceTile(0, 0, Tile(1))
	pos.Bag = NewBag(EnglishDistribution{}, 7)
	for pos.Bag.Count() > 0 {
		pos.Bag.Draw()
	}

	player := pos.CurrentPlayer()
	tC, _, _ := EnglishDistribution{}.ParseLetter("c")
	tA, _, _ := EnglishDistribution{}.ParseLetter("a")
	tT, _, _ := EnglishDistribution{}.ParseLetter("t")
	player.Rack = NewRack([]Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf()})

	other := pos.OtherPlayer()
	other.Rack = NewRack([]Tile{5, 5}) // two 'e's (score 1 each)

	tiles := []Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf()}
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	eq := Evaluate(m, pos, nil, EvaluatorParams{})
	expectedBonus := Equity(2) * IntToEquity(other.Rack.Score(pos.Dist))
	require.Equal(t, IntToEquity(score)+expectedBonus, eq)
}

// TestEvaluateDefaultPenalizesRemainingLeave exercises the final
// (non-outplay) branch: bag empty, current player keeps tiles.
func TestEvaluateDefaultPenalizesRemainingLeave(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	pos.Board.PlaceTile(0, 0, Tile(1))
	pos.Bag = NewBag(EnglishDistribution{}, 7)
	for pos.Bag.Count() > 0 {
		pos.Bag.Draw()
	}

	player := pos.CurrentPlayer()
	tC, _, _ := EnglishDistribution{}.ParseLetter("c")
	tA, _, _ := EnglishDistribution{}.ParseLetter("a")
	tT, _, _ := EnglishDistribution{}.ParseLetter("t")
	player.Rack = NewRack([]Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf(), Tile(26)}) // extra 'z' stays on rack

	tiles := []Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf()}
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	params := EvaluatorParams{NonOutplayLeaveScoreMultiplier: 2, NonOutplayConstantPenalty: Equity(3)}
	eq := Evaluate(m, pos, nil, params)

	remaining := pos.Dist.Score(26)
	expected := IntToEquity(score) - IntToEquity(remaining*2) - Equity(3)
	require.Equal(t, expected, eq)
}

func TestEvaluateAddsLeaveValueFromTable(t *testing.T) {
	pos := NewPosition(StandardLayout{}, EnglishDistribution{}, 1, 50, 7)
	tC, _, _ := EnglishDistribution{}.ParseLetter("c")
	tA, _, _ := EnglishDistribution{}.ParseLetter("a")
	tT, _, _ := EnglishDistribution{}.ParseLetter("t")
	pos.CurrentPlayer().Rack = NewRack([]Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf(), Tile(26)})

	tiles := []Tile{tC.LetterOf(), tA.LetterOf(), tT.LetterOf()}
	score := ScorePlacement(pos.Board, 7, 7, Horizontal, tiles, 0, pos.Dist, RackSize, pos.BingoBonus)
	m := &Move{Kind: Place, Row: 7, Col: 7, Dir: Horizontal, Tiles: tiles, TilesPlayed: 3, Score: score}

	var zLeave BitRack
	zLeave = zLeave.Add(Tile(26))
	leaves := NewMapLeaveTable(map[BitRack]Equity{zLeave: Equity(42)})

	eq := Evaluate(m, pos, leaves, EvaluatorParams{})
	require.Equal(t, IntToEquity(score)+Equity(42), eq)
}

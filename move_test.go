// move_test.go
// Copyright (C) 2018 Vilhjálmur Þorsteinsson

package skrafl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPassMove(t *testing.T) {
	m := NewPassMove()
	require.Equal(t, Pass, m.Kind)
	require.Equal(t, EquityPass, m.Equity)
}

func TestNewExchangeMove(t *testing.T) {
	tiles := []Tile{1, 2, 3}
	m := NewExchangeMove(tiles)
	require.Equal(t, Exchange, m.Kind)
	require.Equal(t, tiles, m.Tiles)
}

func TestScorePlacementOnEmptyBoard(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	dist := EnglishDistribution{}
	// "cat" across row 7, starting at the double-word center square.
	tiles := []Tile{3, 1, 20}
	score := ScorePlacement(b, 7, 7, Horizontal, tiles, 0, dist, RackSize, 50)
	// c(3)+a(1)+t(1) = 5, letter mults all 1x, word mult 2x (center) = 10.
	require.Equal(t, 10, score)
}

func TestScorePlacementBingoBonus(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	dist := EnglishDistribution{}
	tiles := make([]Tile, RackSize)
	for i := range tiles {
		tiles[i] = Tile(i%26 + 1)
	}
	withBonus := ScorePlacement(b, 0, 0, Horizontal, tiles, 0, dist, RackSize, 50)
	withoutBonus := ScorePlacement(b, 0, 0, Horizontal, tiles, 0, dist, RackSize+1, 50)
	require.Equal(t, withoutBonus+50, withBonus, "playing the whole rack must add the bingo bonus")
}

func TestScoreThroughTileIgnoresMultipliers(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	dist := EnglishDistribution{}
	require.True(t, b.PlaceTile(7, 7, Tile(20))) // 't', double-word square
	require.Equal(t, dist.Score(20), ScoreThroughTile(b, 7, 7, dist))
}

func TestScoreThroughTileBlankScoresZero(t *testing.T) {
	b := NewBoard(StandardLayout{}, 1)
	dist := EnglishDistribution{}
	require.True(t, b.PlaceTile(0, 0, Tile(20).AsDesignated()))
	require.Equal(t, 0, ScoreThroughTile(b, 0, 0, dist))
}

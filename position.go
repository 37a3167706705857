// position.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the letter-distribution artifact contract, the
// tile bag, and the Position aggregate of spec §6.2. It generalizes
// the teacher's Bag/TileSet (bag.go), which hard-codes one of five
// named rune-keyed tile sets behind a package-level init() table, into
// a pluggable LetterDistribution artifact (spec §6.1) plus a Bag that
// draws packed Tile values from any distribution, seeded explicitly
// rather than off the global math/rand source, so that a Position's
// draws are reproducible from {bag_random_seed} alone (spec §5).

package skrafl

import "math/rand"

// LetterDistribution is the read-only artifact describing an
// alphabet's tile counts, scores, and vowel flags (spec §6.1).
type LetterDistribution interface {
	// Size returns one past the highest valid letter index (spec §6.1
	// "size()"); letter indices 1..Size()-1 are real letters, 0 is the
	// undesignated blank.
	Size() int
	// Count returns how many copies of letter the full bag contains.
	Count(letter Tile) int
	// Score returns the face value of letter (0 for the blank).
	Score(letter Tile) int
	IsVowel(letter Tile) bool
	// Display renders a letter's on-board representation (single- or
	// multi-character, e.g. Icelandic "ll").
	Display(letter Tile) string
	// ParseLetter is the inverse of Display: given the remainder of a
	// move-text tile field, it recognizes the longest matching letter
	// at the front of s and returns its tile index and byte width.
	ParseLetter(s string) (letter Tile, width int, ok bool)
	// Total returns the sum of Count over every letter, i.e. the size
	// of a full bag.
	Total() int
	// DescendingScores returns the score of each tile on rack, sorted
	// descending, used by the shadow and endgame heuristics (spec
	// §6.1).
	DescendingScores(rack *Rack) []int
}

// Bag holds the undrawn tiles of a game, as packed Tile values.
// Unlike the teacher's Bag (a slice of Letter structs drawn via
// rand.Intn(len(Tiles))), draws here are served from an explicit
// *rand.Rand seeded by the position's bag_random_seed (spec §5's
// determinism requirement: "seeding a per-iteration RNG deterministically").
type Bag struct {
	tiles []Tile
	rng   *rand.Rand
}

// NewBag builds a full bag from dist, seeded with seed.
func NewBag(dist LetterDistribution, seed int64) *Bag {
	b := &Bag{rng: rand.New(rand.NewSource(seed))}
	for letter := 0; letter < dist.Size(); letter++ {
		for i := 0; i < dist.Count(Tile(letter)); i++ {
			b.tiles = append(b.tiles, Tile(letter))
		}
	}
	return b
}

// Count returns the number of tiles remaining in the bag.
func (b *Bag) Count() int {
	return len(b.tiles)
}

// Draw removes and returns one random tile from the bag. ok is false
// if the bag is empty.
func (b *Bag) Draw() (tile Tile, ok bool) {
	if len(b.tiles) == 0 {
		return 0, false
	}
	i := b.rng.Intn(len(b.tiles))
	tile = b.tiles[i]
	last := len(b.tiles) - 1
	b.tiles[i] = b.tiles[last]
	b.tiles = b.tiles[:last]
	return tile, true
}

// DrawN draws up to n tiles, stopping early if the bag empties.
func (b *Bag) DrawN(n int) []Tile {
	out := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		t, ok := b.Draw()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

// Exchange returns the given tiles to the bag and draws len(tiles)
// replacements, as one atomic operation (so the exchanged tiles cannot
// be immediately redrawn into the same hand within this call).
func (b *Bag) Exchange(tiles []Tile) []Tile {
	drawn := b.DrawN(len(tiles))
	b.Return(tiles)
	return drawn
}

// Return puts tiles back into the bag (used to undo a draw, or to
// return a rack at game end for scoring purposes).
func (b *Bag) Return(tiles []Tile) {
	b.tiles = append(b.tiles, tiles...)
}

// RemoveTile deletes one copy of letter from the bag, if present,
// reporting whether it found one. Used by the simulator to pull a
// specific known tile out of the bag when resampling an opponent's
// rack deterministically (spec §4.10 step 1).
func (b *Bag) RemoveTile(letter Tile) bool {
	for i, t := range b.tiles {
		if t == letter {
			last := len(b.tiles) - 1
			b.tiles[i] = b.tiles[last]
			b.tiles = b.tiles[:last]
			return true
		}
	}
	return false
}

// ExchangeAllowed reports whether an exchange of n tiles is legal,
// i.e. the bag holds at least RackSize tiles (the teacher's
// ExchangeAllowed, bag.go, generalized off the fixed rack-size
// constant).
func (b *Bag) ExchangeAllowed(n int) bool {
	return n > 0 && len(b.tiles) >= RackSize
}

// Player is one side of a game: a score, a rack, and the artifacts it
// plays with. klv/kwg/wmp may be shared between players (spec §6.2) or
// distinct, e.g. for a lexicon-handicap variant.
type Player struct {
	Name  string
	Score int
	Rack  *Rack
	Leave LeaveTable
	Lex   Lexicon
	WMap  WordMap // may be nil; the recursive generator is always available
}

// VariantFlag selects non-default scoring/placement rules the search
// kernel must account for (spec §4.9's endgame phase distinctions turn
// on the ordinary double-challenge rule; other variants are carried
// here for the evaluator and endgame solver to branch on).
type VariantFlag int

const (
	VariantClassic VariantFlag = iota
	VariantWordSmog
)

// Position is the full, mutable state the search kernel operates over
// (spec §6.2). The core never owns the artifacts referenced from it
// (distribution, layout); it only borrows them for the lifetime of a
// search.
type Position struct {
	Board                     *Board
	Bag                       *Bag
	Players                   [2]*Player
	PlayerOnTurn              int
	ConsecutiveScorelessTurns int
	BingoBonus                int
	Variant                   VariantFlag
	BagRandomSeed             int64
	Dist                      LetterDistribution
	Layout                    BoardLayout
	NumLexicons               int
}

// NewPosition builds a fresh position: an empty board, a full bag
// seeded with seed, and two players with empty racks (DealIn fills
// them).
func NewPosition(layout BoardLayout, dist LetterDistribution, numLexicons int, bingoBonus int, seed int64) *Position {
	pos := &Position{
		Board:         NewBoard(layout, numLexicons),
		Bag:           NewBag(dist, seed),
		BingoBonus:    bingoBonus,
		BagRandomSeed: seed,
		Dist:          dist,
		Layout:        layout,
		NumLexicons:   numLexicons,
	}
	for i := range pos.Players {
		pos.Players[i] = &Player{Rack: NewRack(nil)}
	}
	return pos
}

// DealIn draws a full rack for every player in turn order, stopping
// (per player) once the bag is exhausted.
func (pos *Position) DealIn() {
	for _, p := range pos.Players {
		for _, t := range pos.Bag.DrawN(RackSize - p.Rack.Total()) {
			p.Rack.Add(t)
		}
	}
}

// CurrentPlayer returns the player whose turn it is.
func (pos *Position) CurrentPlayer() *Player {
	return pos.Players[pos.PlayerOnTurn]
}

// OtherPlayer returns the player not on turn.
func (pos *Position) OtherPlayer() *Player {
	return pos.Players[1-pos.PlayerOnTurn]
}

// CrossIndexOf returns which cross-index slot a player's lexicon
// occupies on the board. When both players share a lexicon (the
// common case, spec §4.2) this is always 0; a lexicon-handicap variant
// assigns each player its own slot.
func (pos *Position) CrossIndexOf(playerIdx int) int {
	if pos.Players[0].Lex == pos.Players[1].Lex {
		return 0
	}
	return playerIdx
}

// IsOver reports whether the game has reached a terminal state: either
// a player emptied their rack with the bag empty, or every player has
// had two scoreless turns in a row (2 × len(Players) consecutive
// scoreless turns).
func (pos *Position) IsOver() bool {
	if pos.Bag.Count() == 0 {
		for _, p := range pos.Players {
			if p.Rack.IsEmpty() {
				return true
			}
		}
	}
	return pos.ConsecutiveScorelessTurns >= 2*len(pos.Players)
}

// ApplyPlacement mutates the position for a completed placement move:
// places the new tiles on the board, adds m.Score to the player's
// score, recomputes the touched cross-sets, and deals the player back
// up to a full rack. Anchors are not recomputed here; GenerateMoves
// recomputes them itself.
func (pos *Position) ApplyPlacement(m *Move, cache *crossSetCache) {
	player := pos.CurrentPlayer()

	wasTransposed := pos.Board.transposed
	pos.Board.transposed = m.Dir == Vertical
	for i, t := range m.Tiles {
		if t.IsPlayThrough() {
			continue
		}
		pos.Board.PlaceTile(m.Row, m.Col+i, t)
		if t.IsBlankDesignation() {
			player.Rack.Remove(UndesignatedBlank)
		} else {
			player.Rack.Remove(t)
		}
	}
	pos.Board.transposed = wasTransposed

	player.Score += m.Score
	RecomputeNeighborhood(pos.Board, m.Row, m.Col, m.TilesLength, m.Dir, player.Lex, pos.Dist, pos.NumLexicons, cache)

	if m.TilesPlayed > 0 {
		pos.ConsecutiveScorelessTurns = 0
	} else {
		pos.ConsecutiveScorelessTurns++
	}
	for _, t := range pos.Bag.DrawN(RackSize - player.Rack.Total()) {
		player.Rack.Add(t)
	}
	pos.PlayerOnTurn = 1 - pos.PlayerOnTurn
}

// ApplyExchange mutates the position for a completed exchange: returns
// the named tiles and draws replacements, records a scoreless turn,
// and passes the turn.
func (pos *Position) ApplyExchange(tiles []Tile) {
	player := pos.CurrentPlayer()
	for _, t := range tiles {
		player.Rack.Remove(t.LetterOf())
	}
	drawn := pos.Bag.Exchange(tiles)
	for _, t := range drawn {
		player.Rack.Add(t)
	}
	pos.ConsecutiveScorelessTurns++
	pos.PlayerOnTurn = 1 - pos.PlayerOnTurn
}

// ApplyPass records a pass and advances the turn.
func (pos *Position) ApplyPass() {
	pos.ConsecutiveScorelessTurns++
	pos.PlayerOnTurn = 1 - pos.PlayerOnTurn
}

// Clone returns a copy of the position whose board, bag tiles, players
// and racks are independent of the original (spec §5: "the bag and
// board during a rollout are not shared: each worker owns a clone").
// The bag's *rand.Rand is shared with the original by pointer.
func (pos *Position) Clone() *Position {
	clone := *pos
	boardClone := *pos.Board
	boardClone.squares = append([]Square(nil), pos.Board.squares...)
	for i := range boardClone.squares {
		sq := &pos.Board.squares[i]
		cloneSq := &boardClone.squares[i]
		for d := 0; d < 2; d++ {
			cloneSq.crossSet[d] = append([]uint64(nil), sq.crossSet[d]...)
			cloneSq.crossScore[d] = append([]int(nil), sq.crossScore[d]...)
		}
	}
	clone.Board = &boardClone

	bagClone := &Bag{tiles: append([]Tile(nil), pos.Bag.tiles...), rng: pos.Bag.rng}
	clone.Bag = bagClone

	for i, p := range pos.Players {
		pc := *p
		pc.Rack = p.Rack.Clone()
		clone.Players[i] = &pc
	}
	return &clone
}

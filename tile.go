// tile.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the packed Tile encoding. The teacher (board.go)
// represents a tile as a struct of {Letter, Meaning, Score, PlayedBy}
// runes; the kernel instead packs a tile into a single byte-width integer
// as spec §3 requires, so that a Move's tile strip and a BitRack's keys
// can be plain integers rather than pointers.

package skrafl

// Tile is a packed tile identifier. Bit 7 (blankBit) marks "blank
// designated as this letter"; the low 6 bits carry a letter index into
// the governing LetterDistribution, where 0 is the undesignated blank.
type Tile uint8

const (
	blankBit = 0x80
	letterMask = 0x3f

	// UndesignatedBlank is the tile index of a blank that has not yet
	// been assigned a letter (e.g. while sitting on a rack).
	UndesignatedBlank Tile = 0

	// PlayThroughMarker is a reserved sentinel used in a Move's tile
	// strip to mean "this square already held a tile on the board;
	// the word passes through it but no new tile was placed here."
	PlayThroughMarker Tile = letterMask
)

// LetterOf strips the blank-designation bit, returning the underlying
// letter index (unblank(t) in spec §3).
func (t Tile) LetterOf() Tile {
	return t & letterMask
}

// IsBlankDesignation reports whether bit 7 is set, i.e. this tile is a
// blank that has been assigned to stand in for a specific letter.
func (t Tile) IsBlankDesignation() bool {
	return t&blankBit != 0
}

// AsDesignated returns a copy of t with the blank-designation bit set,
// i.e. a blank standing in for the given letter.
func (t Tile) AsDesignated() Tile {
	return t | blankBit
}

// IsPlayThrough reports whether t is the play-through sentinel.
func (t Tile) IsPlayThrough() bool {
	return t == PlayThroughMarker
}

// IsBlank reports whether the underlying letter is the undesignated
// blank (as opposed to a real letter or a designated blank).
func (t Tile) IsBlank() bool {
	return t.LetterOf() == UndesignatedBlank && !t.IsBlankDesignation()
}

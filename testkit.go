// testkit.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file provides reference BoardLayout and LetterDistribution
// implementations, grounded in the teacher's board.go
// (WORD_MULTIPLIERS_STANDARD/LETTER_MULTIPLIERS_STANDARD) and bag.go
// (initEnglishTileSet). Spec §6.1 keeps artifact loaders out of the
// core's scope, so these exist only as a usable, testable stand-in —
// the 26-letter English alphabet mapped onto Tile indices 1..26, with
// 0 reserved for the undesignated blank, per spec §3.

package skrafl

import "strings"

// StandardLayout reproduces the teacher's 15x15 standard Scrabble
// board bonus pattern (board.go's WORD_MULTIPLIERS_STANDARD /
// LETTER_MULTIPLIERS_STANDARD), with no bricked squares.
type StandardLayout struct{}

const standardBoardSize = 15

var standardWordMultipliers = [standardBoardSize]string{
	"311111131111113",
	"121111111111121",
	"112111111111211",
	"111211111112111",
	"111121111121111",
	"111111111111111",
	"111111111111111",
	"311111121111113",
	"111111111111111",
	"111111111111111",
	"111121111121111",
	"111211111112111",
	"112111111111211",
	"121111111111121",
	"311111131111113",
}

var standardLetterMultipliers = [standardBoardSize]string{
	"111211111112111",
	"111113111311111",
	"111111212111111",
	"211111121111112",
	"111111111111111",
	"131113111311131",
	"112111212111211",
	"111211111112111",
	"112111212111211",
	"131113111311131",
	"111111111111111",
	"211111121111112",
	"111111212111111",
	"111113111311111",
	"111211111112111",
}

// Dimensions implements BoardLayout.
func (StandardLayout) Dimensions() (rows, cols int) {
	return standardBoardSize, standardBoardSize
}

// BonusAt implements BoardLayout; the standard layout has no bricked
// squares.
func (StandardLayout) BonusAt(row, col int) (wordMult, letterMult int, brick bool) {
	wordMult = int(standardWordMultipliers[row][col] - '0')
	letterMult = int(standardLetterMultipliers[row][col] - '0')
	return wordMult, letterMult, false
}

// StartSquares implements BoardLayout: the single, symmetric center
// square.
func (StandardLayout) StartSquares() []Coordinate {
	return []Coordinate{{standardBoardSize / 2, standardBoardSize / 2}}
}

// Symmetric implements BoardLayout: the standard board is diagonally
// symmetric.
func (StandardLayout) Symmetric() bool {
	return true
}

// englishLetters maps a-z to Tile indices 1..26, in alphabetical
// order, matching the teacher's rune-keyed alphabet but packed as a
// dense integer index (spec §3).
const englishLetters = "abcdefghijklmnopqrstuvwxyz"

// EnglishDistribution reproduces the teacher's standard English tile
// set (bag.go's initEnglishTileSet): scores and counts for a-z plus
// two blanks.
type EnglishDistribution struct{}

var englishScores = [27]int{
	0,  // blank
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3,
	1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10,
}

var englishCounts = [27]int{
	2, // blanks
	9, 2, 2, 4, 12, 2, 3, 2, 9, 1, 1, 4, 2,
	6, 8, 2, 1, 6, 4, 6, 4, 2, 2, 1, 2, 1,
}

var englishVowels = map[byte]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true}

// Size implements LetterDistribution: indices 0..26, i.e. 27 slots.
func (EnglishDistribution) Size() int {
	return 27
}

// Count implements LetterDistribution.
func (EnglishDistribution) Count(letter Tile) int {
	if int(letter) >= len(englishCounts) {
		return 0
	}
	return englishCounts[letter]
}

// Score implements LetterDistribution.
func (EnglishDistribution) Score(letter Tile) int {
	if int(letter) >= len(englishScores) {
		return 0
	}
	return englishScores[letter]
}

// IsVowel implements LetterDistribution.
func (EnglishDistribution) IsVowel(letter Tile) bool {
	if letter == UndesignatedBlank || int(letter) > len(englishLetters) {
		return false
	}
	return englishVowels[englishLetters[letter-1]]
}

// Display implements LetterDistribution: the blank displays as "?",
// every real letter as its single lowercase ASCII byte.
func (EnglishDistribution) Display(letter Tile) string {
	if letter == UndesignatedBlank {
		return "?"
	}
	if int(letter) < 1 || int(letter) > len(englishLetters) {
		return "?"
	}
	return string(englishLetters[letter-1])
}

// ParseLetter implements LetterDistribution: recognizes a single a-z
// byte of either case, or "?" for the blank, at the front of s. Case
// carries no meaning here — callers distinguish a blank-designation
// (lowercase, by the move-text convention of validator.go) from a
// plain tile before consulting ParseLetter.
func (EnglishDistribution) ParseLetter(s string) (letter Tile, width int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if s[0] == '?' {
		return UndesignatedBlank, 1, true
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	idx := strings.IndexByte(englishLetters, c)
	if idx < 0 {
		return 0, 0, false
	}
	return Tile(idx + 1), 1, true
}

// Total implements LetterDistribution.
func (EnglishDistribution) Total() int {
	total := 0
	for _, n := range englishCounts {
		total += n
	}
	return total
}

// DescendingScores implements LetterDistribution, used by the shadow
// and endgame heuristics to estimate the best-case score contribution
// of an unplaced rack (spec §6.1).
func (d EnglishDistribution) DescendingScores(rack *Rack) []int {
	scores := make([]int, 0, RackSize)
	for _, t := range rack.Tiles() {
		scores = append(scores, d.Score(t))
	}
	for i := 1; i < len(scores); i++ {
		for j := i; j > 0 && scores[j-1] < scores[j]; j-- {
			scores[j-1], scores[j] = scores[j], scores[j-1]
		}
	}
	return scores
}

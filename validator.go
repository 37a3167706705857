// validator.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the move-text parser and semantic validator
// (spec §4.12, §6.4). Grounded in the teacher's TileMove.Init/IsValid
// (move.go), which already reconstructs the formed word from a list of
// board "covers" and checks it against the loaded DAWG; generalized
// here to parse the full coordinate/tiles/rack/exchange/pass text
// grammar of spec §6.4 and to check every perpendicular cross word,
// not only the main one.

package skrafl

import (
	"strconv"
	"strings"
)

// ParsedMove is the canonical result of parsing one move-text entry:
// the move itself plus whatever optional fields were declared.
type ParsedMove struct {
	Move             *Move
	DeclaredRack     []Tile
	ChallengePoints  int
	TurnLoss         bool
	HasChallengeInfo bool
}

// FormedWord reports one word produced by a placement and whether the
// player's lexicon accepts it.
type FormedWord struct {
	Tiles   []Tile
	IsValid bool
}

// ParseAndValidate parses a single move-text entry against pos for the
// given player index, following spec §6.4's grammar and §4.12's
// validation steps. allowPhonies suppresses the phony-word failure
// (e.g. for after-the-fact analysis of a played game);
// allowUnknownExchanges permits a bare numeric exchange count.
func ParseAndValidate(
	text string, pos *Position, playerIdx int, allowPhonies, allowUnknownExchanges bool,
) (*ParsedMove, []FormedWord, ErrorStack) {
	var errs ErrorStack
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, errs.Push(ErrEmptyMove, "")
	}
	if playerIdx < 0 || playerIdx >= len(pos.Players) {
		return nil, nil, errs.Push(ErrInvalidPlayerIndex, strconv.Itoa(playerIdx))
	}
	player := pos.Players[playerIdx]
	dist := pos.Dist

	fields := strings.Split(text, ".")
	switch {
	case fields[0] == "pass":
		return parsePass(fields, &errs)
	case strings.HasPrefix(fields[0], "ex"):
		return parseExchange(fields, player, pos.Bag, dist, allowUnknownExchanges, &errs)
	default:
		return parsePlacement(fields, pos, player, dist, playerIdx, allowPhonies, &errs)
	}
}

func parsePass(fields []string, errs *ErrorStack) (*ParsedMove, []FormedWord, ErrorStack) {
	pm := &ParsedMove{Move: NewPassMove()}
	switch len(fields) {
	case 1:
	case 2:
		pm.DeclaredRack = parseTiles(fields[1])
	default:
		*errs = errs.Push(ErrExcessField, fields[0])
	}
	return pm, nil, *errs
}

func parseExchange(
	fields []string, player *Player, bag *Bag, dist LetterDistribution,
	allowUnknown bool, errs *ErrorStack,
) (*ParsedMove, []FormedWord, ErrorStack) {
	if len(fields) < 2 {
		*errs = errs.Push(ErrMissingField, "exchange tiles")
		return nil, nil, *errs
	}
	if len(fields) > 3 {
		*errs = errs.Push(ErrExcessField, fields[0])
	}
	var tiles []Tile
	if n, convErr := strconv.Atoi(fields[1]); convErr == nil {
		if !allowUnknown {
			*errs = errs.Push(ErrUnknownExchangeDisallowed, fields[1])
			return nil, nil, *errs
		}
		tiles = player.Rack.Tiles()
		if n < len(tiles) {
			tiles = tiles[:n]
		}
	} else {
		tiles = parseTilesAgainst(fields[1], dist, errs)
	}
	if !bag.ExchangeAllowed(len(tiles)) {
		*errs = errs.Push(ErrExchangeInsufficientTiles, "")
	}
	for _, t := range tiles {
		if player.Rack.Count(t.LetterOf()) == 0 {
			*errs = errs.Push(ErrTileNotInRack, dist.Display(t.LetterOf()))
		}
	}
	pm := &ParsedMove{Move: NewExchangeMove(tiles)}
	if len(fields) == 3 {
		pm.DeclaredRack = parseTiles(fields[2])
	}
	return pm, nil, *errs
}

// parseCoordinate reads a 1-indexed "<col-letter><row>" (vertical) or
// "<row><col-letter>" (horizontal) coordinate token per spec §6.4.
func parseCoordinate(tok string) (row, col int, dir Direction, ok bool) {
	if tok == "" {
		return 0, 0, 0, false
	}
	if isAlpha(tok[0]) {
		// <col-letter><row>: vertical
		i := 0
		for i < len(tok) && isAlpha(tok[i]) {
			i++
		}
		colStr, rowStr := tok[:i], tok[i:]
		r, err := strconv.Atoi(rowStr)
		if err != nil || len(colStr) == 0 {
			return 0, 0, 0, false
		}
		return r - 1, columnIndex(colStr), Vertical, true
	}
	// <row><col-letter>: horizontal
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	rowStr, colStr := tok[:i], tok[i:]
	r, err := strconv.Atoi(rowStr)
	if err != nil || len(colStr) == 0 {
		return 0, 0, 0, false
	}
	return r - 1, columnIndex(colStr), Horizontal, true
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// columnIndex maps a base-26 column letter (A, B, ..., Z, AA, ...) to a
// 0-indexed column.
func columnIndex(s string) int {
	col := 0
	for _, r := range strings.ToUpper(s) {
		col = col*26 + int(r-'A'+1)
	}
	return col - 1
}

// parseTiles parses a tile-strip token using only the ASCII fallback
// (every LetterDistribution's Display is at least ASCII-prefixed);
// used for the optional rack-declaration field where exact letter
// resolution is not safety-critical.
func parseTiles(s string) []Tile {
	out := make([]Tile, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, tileFromASCII(s[i]))
	}
	return out
}

func tileFromASCII(b byte) Tile {
	if b == '.' || b == '$' {
		return PlayThroughMarker
	}
	if b >= 'a' && b <= 'z' {
		return Tile(b-'a'+1) | blankBit
	}
	return Tile(b - 'A' + 1)
}

// parseTilesAgainst decodes a tile-strip token against dist's real
// alphabet, supporting multi-character letters via ParseLetter and
// reporting invalid letters into errs.
func parseTilesAgainst(s string, dist LetterDistribution, errs *ErrorStack) []Tile {
	var out []Tile
	for i := 0; i < len(s); {
		c := s[i]
		if c == '.' || c == '$' {
			out = append(out, PlayThroughMarker)
			i++
			continue
		}
		lower := c >= 'a' && c <= 'z'
		letter, width, ok := dist.ParseLetter(s[i:])
		if !ok {
			*errs = errs.Push(ErrInvalidLetter, s[i:i+1])
			i++
			continue
		}
		if lower {
			letter = letter.AsDesignated()
		}
		out = append(out, letter)
		i += width
	}
	return out
}

func parsePlacement(
	fields []string, pos *Position, player *Player, dist LetterDistribution,
	playerIdx int, allowPhonies bool, errs *ErrorStack,
) (*ParsedMove, []FormedWord, ErrorStack) {
	if len(fields) < 2 {
		*errs = errs.Push(ErrMissingField, "tiles")
		return nil, nil, *errs
	}
	if len(fields) > 5 {
		*errs = errs.Push(ErrExcessField, fields[0])
	}
	row, col, dir, ok := parseCoordinate(fields[0])
	if !ok {
		*errs = errs.Push(ErrMalformedInteger, fields[0])
		return nil, nil, *errs
	}
	tiles := parseTilesAgainst(fields[1], dist, errs)

	wasTransposed := pos.Board.transposed
	pos.Board.transposed = dir == Vertical
	for i := range tiles {
		if pos.Board.Sq(row, col+i) == nil {
			*errs = errs.Push(ErrOutOfBounds, fields[1])
		}
	}
	pos.Board.transposed = wasTransposed

	crossIdx := pos.CrossIndexOf(playerIdx)

	rackCopy := player.Rack.Clone()
	connected := false
	tilesPlayed := 0
	for i, t := range tiles {
		if t.IsPlayThrough() {
			connected = true
			continue
		}
		tilesPlayed++
		var take Tile
		if t.IsBlankDesignation() {
			take = UndesignatedBlank
		} else {
			take = t.LetterOf()
		}
		if !rackCopy.Remove(take) {
			*errs = errs.Push(ErrTileNotInRack, dist.Display(t.LetterOf()))
		}
		sq := pos.Board.Sq(row, col+i)
		if sq != nil && sq.Brick {
			*errs = errs.Push(ErrPlacementOverBrick, "")
		}
	}
	if tilesPlayed == 0 {
		*errs = errs.Push(ErrDisconnectedPlacement, "")
	}
	if !connected && pos.Board.NumTiles() > 0 {
		// A placement that touches no existing tile must itself be
		// adjacent to one; a full disconnection check also needs a
		// neighbor scan, which ScorePlacement's caller performs via
		// RecomputeAnchors before generation, but the validator checks
		// directly here since it runs outside the generator.
		if !touchesBoard(pos.Board, row, col, dir, len(tiles)) {
			*errs = errs.Push(ErrDisconnectedPlacement, "")
		}
	}

	score := ScorePlacement(pos.Board, row, col, dir, tiles, crossIdx, dist, RackSize, pos.BingoBonus)
	words := formedWords(pos.Board, row, col, dir, tiles, crossIdx, player.Lex)
	for _, w := range words {
		if !w.IsValid && !allowPhonies {
			*errs = errs.Push(ErrPhonyWordFormed, tilesString(w.Tiles, dist))
		}
	}

	m := &Move{
		Kind: Place, Row: row, Col: col, Dir: dir, Tiles: tiles,
		TilesPlayed: tilesPlayed, TilesLength: len(tiles), Score: score,
	}
	if tilesPlayed == RackSize {
		m.BingoBonus = pos.BingoBonus
	}
	m.Equity = IntToEquity(score)

	pm := &ParsedMove{Move: m}
	if len(fields) >= 3 {
		pm.DeclaredRack = parseTiles(fields[2])
	}
	if len(fields) == 5 {
		cp, convErr := strconv.Atoi(fields[3])
		if convErr != nil {
			*errs = errs.Push(ErrMalformedInteger, fields[3])
		}
		pm.ChallengePoints = cp
		pm.TurnLoss = fields[4] == "1"
		pm.HasChallengeInfo = true
	}
	return pm, words, *errs
}

// touchesBoard reports whether the strip at (row, col)+dir is adjacent
// to at least one already-occupied square (spec §4.12's "disconnected
// (no anchor reached)" check), scanning one square beyond each end and
// the perpendicular neighbor of every covered square.
func touchesBoard(b *Board, row, col int, dir Direction, length int) bool {
	wasTransposed := b.transposed
	b.transposed = dir == Vertical
	defer func() { b.transposed = wasTransposed }()

	if sq := b.Sq(row, col-1); sq != nil && !sq.Empty {
		return true
	}
	if sq := b.Sq(row, col+length); sq != nil && !sq.Empty {
		return true
	}
	for i := 0; i < length; i++ {
		pr, pc := b.physical(row, col+i)
		if pr > 0 && !b.squares[(pr-1)*b.cols+pc].Empty {
			return true
		}
		if pr < b.rows-1 && !b.squares[(pr+1)*b.cols+pc].Empty {
			return true
		}
	}
	return false
}

// formedWords reconstructs the main word and every perpendicular cross
// word produced by a placement, and checks each against lex (spec
// §4.12 step 4).
func formedWords(b *Board, row, col int, dir Direction, tiles []Tile, crossIndex int, lex Lexicon) []FormedWord {
	var out []FormedWord

	wasTransposed := b.transposed
	b.transposed = dir == Vertical

	before := b.Fragment(row, col, -1)
	after := b.Fragment(row, col+len(tiles)-1, 1)
	main := make([]Tile, 0, len(before)+len(tiles)+len(after))
	main = append(main, reverseTiles(before)...)
	for i, t := range tiles {
		if t.IsPlayThrough() {
			sq := b.Sq(row, col+i)
			main = append(main, sq.Letter)
		} else {
			main = append(main, t)
		}
	}
	main = append(main, after...)
	if len(main) > 1 {
		out = append(out, FormedWord{Tiles: main, IsValid: lexAccepts(lex, main)})
	}

	for i, t := range tiles {
		if t.IsPlayThrough() {
			continue
		}
		cross := crossWordAt(b, row, col+i, dir, t)
		if len(cross) > 1 {
			out = append(out, FormedWord{Tiles: cross, IsValid: lexAccepts(lex, cross)})
		}
	}
	b.transposed = wasTransposed
	return out
}

// crossWordAt reconstructs the perpendicular word through the square a
// newly placed tile occupies. row/col and dir are the main word's
// coordinates/direction; crossFragments derives the perpendicular
// fragment from dir itself.
func crossWordAt(b *Board, row, col int, dir Direction, placed Tile) []Tile {
	above, below := crossFragments(b, row, col, dir)
	word := make([]Tile, 0, len(above)+1+len(below))
	word = append(word, reverseTiles(above)...)
	word = append(word, placed)
	word = append(word, below...)
	return word
}

func lexAccepts(lex Lexicon, word []Tile) bool {
	if lex == nil {
		return true
	}
	node := lex.Root()
	for i := len(word) - 1; i >= 0; i-- {
		target, accepts, ok := lex.Arc(node, word[i].LetterOf())
		if !ok {
			return false
		}
		node = target
		if i == 0 {
			return accepts
		}
	}
	return false
}

func tilesString(tiles []Tile, dist LetterDistribution) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(dist.Display(t.LetterOf()))
	}
	return sb.String()
}

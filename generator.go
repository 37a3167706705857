// generator.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the classical left-part/extend-right gaddag
// traversal (spec §4.5), generalizing the teacher's movegen.go
// (Axis.genMovesFromAnchor, ExtendRightNavigator, LeftPermutationNavigator)
// from a per-axis-goroutine, rune-rack traversal into a single-threaded
// (spec §9: "generation is single-threaded per position") traversal
// driven off the anchor heap and the new Tile/BitRack/Lexicon types.

package skrafl

// generatorState carries the mutable traversal context threaded
// through the recursive left/right walk.
type generatorState struct {
	b          *Board
	dir        Direction
	anchorRow  int
	anchorCol  int
	lex        Lexicon
	dist       LetterDistribution
	crossIndex int
	rack       *Rack
	leaves     LeaveTable
	bingoBonus int
	placed     map[int]Tile // column -> newly placed tile (not play-through)
	minCol     int
	maxCol     int
	out        *MoveList
}

// GenerateMoves runs the recursive generator over every anchor of both
// directions, visiting anchors in decreasing shadow-estimated upper-
// bound-equity order via an AnchorHeap (spec §4.4), and returns the
// resulting move list under the given record policy (spec §4.5, §4.8).
// Under the RecordBest policy, once the heap's next anchor can no
// longer beat the best move already found, the remaining anchors for
// that direction are skipped — the shadow bound is an upper bound on
// what any rotation at that anchor could score, so nothing unvisited
// could still win.
func GenerateMoves(
	b *Board, rack *Rack, lex Lexicon, dist LetterDistribution,
	crossIndex int, leaves LeaveTable, bingoBonus int,
	policy RecordPolicy, epsilon Equity,
) *MoveList {
	out := NewMoveList(policy, epsilon)
	out.Add(NewPassMove()) // spec §9: record a pass first, so any real move must beat it
	bestLeave := maxLeaveValue(rack, leaves)
	for _, dir := range []Direction{Horizontal, Vertical} {
		RecomputeAnchors(b, dir)
		wasTransposed := b.transposed
		b.transposed = dir == Vertical
		rows, cols := b.Dims()

		anchors := NewAnchorHeap()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				sq := b.Sq(r, c)
				if sq == nil || !sq.Anchor(dir) {
					continue
				}
				_, highestEquity := ShadowEstimate(b, r, c, dir, crossIndex, rack, dist, bestLeave)
				anchors.Add(Anchor{Row: r, Col: c, Dir: dir, HighestPossibleEquity: highestEquity})
			}
		}
		for {
			anchor, ok := anchors.PopMax()
			if !ok {
				break
			}
			if policy == RecordBest && !out.BestEquity().Less(anchor.HighestPossibleEquity) {
				break
			}
			gs := &generatorState{
				b: b, dir: dir, anchorRow: anchor.Row, anchorCol: anchor.Col,
				lex: lex, dist: dist, crossIndex: crossIndex,
				rack: rack, leaves: leaves, bingoBonus: bingoBonus,
				placed: make(map[int]Tile), minCol: anchor.Col, maxCol: anchor.Col,
				out: out,
			}
			gs.generateFromAnchor()
		}
		b.transposed = wasTransposed
	}
	return out
}

// maxLeaveValue returns an upper bound on the leave value reachable by
// playing some subset of rack: every leave a real move can produce is
// itself a sub-multiset of the full rack, so the highest leave value
// over every sub-rack (including the empty one, for going out) can
// never be exceeded by an actual post-move leave. Used to give
// ShadowEstimate an admissible equity bound.
func maxLeaveValue(rack *Rack, leaves LeaveTable) Equity {
	if leaves == nil {
		return 0
	}
	best := leaves.Value(BitRack{})
	for _, sub := range EnumerateSubracks(rack.Tiles()) {
		if v := leaves.Value(sub); best.Less(v) {
			best = v
		}
	}
	return best
}

// generateFromAnchor fills the anchor square itself with every rack
// letter the automaton's root and the square's cross-set admit, then
// hands off to extendLeft to continue leftward from there. The anchor
// square is always empty (that is what qualifies it as an anchor), so
// unlike every other square visited during the walk it has no
// play-through alternative: a tile must be placed here before the
// recursion's general "col was just consumed" contract applies.
func (gs *generatorState) generateFromAnchor() {
	sq := gs.b.Sq(gs.anchorRow, gs.anchorCol)
	if sq == nil || sq.Brick || !sq.Empty {
		return
	}
	root := gs.lex.Root()
	for _, letter := range gs.candidateLetters(sq) {
		target, _, ok := gs.lex.Arc(root, letter.LetterOf())
		if !ok {
			continue
		}
		if !gs.takeTile(letter) {
			continue
		}
		gs.placed[gs.anchorCol] = letter
		gs.extendLeft(target, gs.anchorCol, 1)
		delete(gs.placed, gs.anchorCol)
		gs.returnTile(letter)
	}
}

// extendLeft walks leftward from col, consuming either a rack tile
// (placed fresh) or a board tile (play-through) at each step, and may
// at any point (once at least one tile has been placed) branch into
// extendRight via the lexicon's separator arc.
func (gs *generatorState) extendLeft(node NodeID, col int, tilesPlaced int) {
	// Try stopping the left extension here and pivoting to the right,
	// provided at least the anchor tile has been placed.
	if tilesPlaced > 0 {
		if sepTarget, _, ok := gs.lex.Arc(node, Separator); ok {
			gs.minCol = col
			gs.extendRight(sepTarget, gs.anchorCol+1, tilesPlaced)
		}
		// A rotation with no separator (the whole word ends exactly
		// at the anchor) is recorded directly if this node accepts.
		if accepts := gs.nodeAccepts(node); accepts {
			gs.minCol = col
			gs.maxCol = gs.rightmostPlaced(gs.anchorCol)
			gs.record(tilesPlaced)
		}
	}
	nextCol := col - 1
	sq := gs.b.Sq(gs.anchorRow, nextCol)
	if sq == nil || sq.Brick {
		return
	}
	if !sq.Empty {
		// Play-through: the arc must match the existing board letter.
		letter := sq.Letter.LetterOf()
		target, _, ok := gs.lex.Arc(node, letter)
		if !ok {
			return
		}
		gs.extendLeft(target, nextCol, tilesPlaced)
		return
	}
	// Empty square: try every rack letter (and blank) admitted by its
	// cross-set and by the automaton.
	for _, letter := range gs.candidateLetters(sq) {
		target, _, ok := gs.lex.Arc(node, letter.LetterOf())
		if !ok {
			continue
		}
		if !gs.takeTile(letter) {
			continue
		}
		gs.placed[nextCol] = letter
		gs.extendLeft(target, nextCol, tilesPlaced+1)
		delete(gs.placed, nextCol)
		gs.returnTile(letter)
	}
}

// extendRight walks rightward from col, past and including the
// anchor, recording a candidate at every accepting node reached once
// at least one new tile has been placed overall.
func (gs *generatorState) extendRight(node NodeID, col int, tilesPlaced int) {
	if gs.nodeAccepts(node) && tilesPlaced > 0 {
		gs.maxCol = col - 1
		gs.record(tilesPlaced)
	}
	sq := gs.b.Sq(gs.anchorRow, col)
	if sq == nil || sq.Brick {
		return
	}
	if !sq.Empty {
		letter := sq.Letter.LetterOf()
		target, _, ok := gs.lex.Arc(node, letter)
		if !ok {
			return
		}
		gs.extendRight(target, col+1, tilesPlaced)
		return
	}
	for _, letter := range gs.candidateLetters(sq) {
		target, _, ok := gs.lex.Arc(node, letter.LetterOf())
		if !ok {
			continue
		}
		if !gs.takeTile(letter) {
			continue
		}
		gs.placed[col] = letter
		gs.extendRight(target, col+1, tilesPlaced+1)
		delete(gs.placed, col)
		gs.returnTile(letter)
	}
}

// nodeAccepts reports whether node itself is an accepting state. It
// reads the in-memory reference lexicon's accepts map through a type
// assertion; for any other Lexicon implementation it returns false, so
// the walk records no placements. The walk above ignores the accepts
// flag that Arc returns and relies on this check alone.
func (gs *generatorState) nodeAccepts(node NodeID) bool {
	if im, ok := gs.lex.(*InMemoryLexicon); ok {
		return im.accepts[node]
	}
	return false
}

// rightmostPlaced returns the rightmost column with a tile (new or
// board) starting from the anchor, used when a left-only rotation
// accepts with no right extension.
func (gs *generatorState) rightmostPlaced(from int) int {
	col := from
	for {
		if _, ok := gs.placed[col+1]; ok {
			col++
			continue
		}
		if sq := gs.b.Sq(gs.anchorRow, col+1); sq != nil && !sq.Empty {
			col++
			continue
		}
		break
	}
	return col
}

// candidateLetters returns the rack letters (including a designated
// blank for every letter the blank can stand in for) legal at sq,
// given its cross-set for the main generation direction/crossIndex
// (the slot a square's cross-set is keyed by is the direction of the
// word being placed through it, not the cross word's own direction —
// see crossset.go's crossFragments).
func (gs *generatorState) candidateLetters(sq *Square) []Tile {
	var out []Tile
	set := sq.CrossSet(gs.dir, gs.crossIndex)
	for letter := Tile(1); int(letter) < gs.dist.Size(); letter++ {
		if set&(1<<uint(letter)) == 0 {
			continue
		}
		if gs.rack.Count(letter) > 0 {
			out = append(out, letter)
		}
	}
	if set&1 != 0 && gs.rack.HasBlank() {
		for letter := Tile(1); int(letter) < gs.dist.Size(); letter++ {
			if set&(1<<uint(letter)) != 0 {
				out = append(out, letter.AsDesignated())
			}
		}
	}
	return out
}

// takeTile removes a tile (real or blank) from the rack for the
// duration of a recursive branch.
func (gs *generatorState) takeTile(t Tile) bool {
	if t.IsBlankDesignation() {
		return gs.rack.Remove(UndesignatedBlank)
	}
	return gs.rack.Remove(t.LetterOf())
}

// returnTile undoes takeTile on backtrack.
func (gs *generatorState) returnTile(t Tile) {
	if t.IsBlankDesignation() {
		gs.rack.Add(UndesignatedBlank)
		return
	}
	gs.rack.Add(t.LetterOf())
}

// record assembles and scores the strip [minCol, maxCol] and pushes
// the resulting Move into the output list.
func (gs *generatorState) record(tilesPlaced int) {
	if gs.minCol > gs.maxCol {
		return
	}
	length := gs.maxCol - gs.minCol + 1
	tiles := make([]Tile, length)
	for i := 0; i < length; i++ {
		col := gs.minCol + i
		if t, ok := gs.placed[col]; ok {
			tiles[i] = t
		} else {
			tiles[i] = PlayThroughMarker
		}
	}
	score := ScorePlacement(gs.b, gs.anchorRow, gs.minCol, gs.dir, tiles, gs.crossIndex, gs.dist, RackSize, gs.bingoBonus)

	var leaveValue Equity
	if gs.leaves != nil {
		remaining := gs.rack.AsBitRack()
		leaveValue = gs.leaves.Value(remaining)
	}
	m := &Move{
		Kind: Place, Row: gs.anchorRow, Col: gs.minCol, Dir: gs.dir,
		Tiles: append([]Tile(nil), tiles...), TilesPlayed: tilesPlaced,
		TilesLength: length, Score: score,
		Equity: IntToEquity(score) + leaveValue,
	}
	if tilesPlaced == RackSize {
		m.BingoBonus = gs.bingoBonus
	}
	gs.out.Add(m)
}

// anchor.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements anchor detection (spec §4.3) and the anchor
// heap (spec §3/§4.4) that the recursive generator drains in
// decreasing upper-bound-equity order. Anchor marking is grounded in
// the teacher's Axis.Init (movegen.go), which walks a row/column
// looking for empty squares next to occupied ones; the heap itself is
// new, since the teacher generates anchors in left-to-right order with
// no priority at all.

package skrafl

import "container/heap"

// Anchor is a candidate placement starting square (spec §3).
type Anchor struct {
	Row, Col             int
	LastAnchorCol         int
	Dir                   Direction
	HighestPossibleEquity Equity
	HighestPossibleScore  Equity
	Playthrough           BitRack
	TilesToPlay           int
	PlaythroughBlocks     int
}

// RecomputeAnchors flags anchors for every square in [row, rowEnd) x
// [col, colEnd) of the board, for the given direction, following spec
// §4.3: a square is a horizontal anchor iff it is empty, at least one
// neighbor in its row or column is occupied, and it is the leftmost such
// square of its run; mirror for vertical via the transposed addressing.
func RecomputeAnchors(b *Board, dir Direction) {
	wasTransposed := b.transposed
	b.transposed = dir == Vertical
	defer func() { b.transposed = wasTransposed }()

	rows, cols := b.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sq := b.Sq(r, c)
			if sq == nil || !sq.Empty || sq.Brick {
				if sq != nil {
					sq.SetAnchor(dir, false)
				}
				continue
			}
			touchesTile := hasOccupiedNeighbor(b, r, c)
			if !touchesTile {
				sq.SetAnchor(dir, false)
				continue
			}
			// Leftmost empty square of this run: true unless the
			// square immediately to the left is also empty and
			// itself touches a tile (in which case that one is the
			// anchor, not this one) — concretely, this square is
			// the anchor unless its left neighbor is empty AND its
			// left neighbor also touches a tile on its own left/
			// above/below.
			left := b.Sq(r, c-1)
			if left != nil && left.Empty && !left.Brick && hasOccupiedNeighbor(b, r, c-1) {
				sq.SetAnchor(dir, false)
				continue
			}
			sq.SetAnchor(dir, true)
		}
	}
	// The empty board's sole anchor is the start square; if the
	// layout is asymmetric, both directions get one (spec §4.3).
	if b.NumTiles() == 0 {
		start := b.StartSquare()
		if sq := b.Sq(start.Row, start.Col); sq != nil {
			if dir == Horizontal || !b.layout.Symmetric() {
				sq.SetAnchor(dir, true)
			}
		}
	}
}

func hasOccupiedNeighbor(b *Board, row, col int) bool {
	if left := b.Sq(row, col-1); left != nil && !left.Empty {
		return true
	}
	if right := b.Sq(row, col+1); right != nil && !right.Empty {
		return true
	}
	// The perpendicular neighbor (the square "above"/"below" this one
	// along the row dimension of the current addressing) also counts:
	// a square can be an anchor purely because a tile sits directly
	// above or below it in the perpendicular lane.
	pr, pc := b.physical(row, col)
	if pr > 0 && !b.squares[(pr-1)*b.cols+pc].Empty {
		return true
	}
	if pr < b.rows-1 && !b.squares[(pr+1)*b.cols+pc].Empty {
		return true
	}
	return false
}

// AnchorHeap is a max-heap (with no capacity limit) of anchors ordered by
// HighestPossibleEquity, draining in the order the generator should
// visit them (spec §4.4).
type AnchorHeap struct {
	items []Anchor
}

func (h *AnchorHeap) Len() int { return len(h.items) }
func (h *AnchorHeap) Less(i, j int) bool {
	return h.items[i].HighestPossibleEquity > h.items[j].HighestPossibleEquity
}
func (h *AnchorHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *AnchorHeap) Push(x any)    { h.items = append(h.items, x.(Anchor)) }
func (h *AnchorHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// NewAnchorHeap returns an empty, ready-to-use anchor heap.
func NewAnchorHeap() *AnchorHeap {
	h := &AnchorHeap{}
	heap.Init(h)
	return h
}

// Add pushes an anchor onto the heap.
func (h *AnchorHeap) Add(a Anchor) {
	heap.Push(h, a)
}

// PopMax removes and returns the anchor with the highest upper bound.
// The second return is false if the heap is empty.
func (h *AnchorHeap) PopMax() (Anchor, bool) {
	if h.Len() == 0 {
		return Anchor{}, false
	}
	return heap.Pop(h).(Anchor), true
}

// PeekMax returns the highest-upper-bound anchor without removing it.
func (h *AnchorHeap) PeekMax() (Anchor, bool) {
	if h.Len() == 0 {
		return Anchor{}, false
	}
	return h.items[0], true
}

// arena.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements MoveArena, the per-worker bump allocator for
// moves generated during the endgame solver's iterative-deepening
// recursion (spec §4.11/§9: "an arena (monotonic bump allocator) per
// worker... recursion passes an 'arena pointer'... On unwind the
// pointer is restored, not freed individually"). The teacher has no
// analog — movegen.go appends candidate TileMoves straight to a
// game-owned slice — so this is grounded in spec §9's REDESIGN FLAGS
// entry on typed indices over pointer references: "ownership is the
// arena, borrows are indices."

package skrafl

// ArenaMark is a bump pointer into a MoveArena: the number of moves
// committed when the mark was taken. Restoring a mark discards every
// move appended since, without freeing them individually.
type ArenaMark int

// MoveArena is a monotonically growing, reusable buffer of moves. The
// endgame solver allocates one per worker and threads marks through
// its recursion instead of allocating a fresh slice at every node.
type MoveArena struct {
	moves []Move
}

// NewMoveArena returns an empty arena with capacity preallocated for a
// typical single level of move generation.
func NewMoveArena(capacityHint int) *MoveArena {
	return &MoveArena{moves: make([]Move, 0, capacityHint)}
}

// Mark returns a pointer demarcating the arena's current extent, to be
// passed to Reset when the caller's recursion level unwinds.
func (a *MoveArena) Mark() ArenaMark {
	return ArenaMark(len(a.moves))
}

// Reset truncates the arena back to mark, discarding every move
// appended since without shrinking the underlying backing array, so
// the next level's Push calls reuse the same memory.
func (a *MoveArena) Reset(mark ArenaMark) {
	a.moves = a.moves[:int(mark)]
}

// Push appends m to the arena and returns its index, stable until the
// arena is Reset past it.
func (a *MoveArena) Push(m Move) int {
	a.moves = append(a.moves, m)
	return len(a.moves) - 1
}

// Slice returns the moves committed since mark, as a view into the
// arena's backing array. The returned slice is only valid until the
// next Reset at or before mark.
func (a *MoveArena) Slice(mark ArenaMark) []Move {
	return a.moves[int(mark):]
}

// At returns a pointer to the move at idx, valid until the arena is
// Reset past idx.
func (a *MoveArena) At(idx int) *Move {
	return &a.moves[idx]
}

// Len returns the number of moves currently committed.
func (a *MoveArena) Len() int {
	return len(a.moves)
}

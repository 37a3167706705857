// leave.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the leave valuator and the leave map. The
// teacher has no equivalent (GoSkrafl never scores racks, only boards);
// this is grounded directly in spec §4.7 and the §9 design note on
// leave-value access patterns, and reuses the teacher's own LRU-caching
// idiom from dawg.go's crossCache for the per-rack memoization table.

package skrafl

import (
	lru "github.com/hashicorp/golang-lru"
)

// LeaveTable is the read-only artifact that maps a multiset of tiles
// (a leave) to an equity adjustment. It is produced by an external
// loader (out of scope for the core, per spec §1) and is never mutated
// by the kernel.
type LeaveTable interface {
	// Value returns the equity bonus/penalty for holding exactly this
	// multiset of tiles on the rack after a move. Missing multisets
	// return 0.
	Value(leave BitRack) Equity
}

// leaveMapCacheSize bounds the number of subset values one LeaveMap's
// LRU caches; sized generously since a rack has at most 2^RackSize
// subsets.
const leaveMapCacheSize = 512

// LeaveMap provides O(1) incremental lookup of a leave table's equity
// for every subset of a specific starting rack, indexed by a bitmask
// over rack tile positions (spec §9: "a u32 bitmask over rack
// positions plus a table of 2^RACK_SIZE cached leave values per
// position; initialize the table lazily per-rack").
type LeaveMap struct {
	table     LeaveTable
	tiles     []Tile // the RackSize-or-fewer tiles this map was built for
	perSubset *lru.Cache
}

// NewLeaveMap builds a LeaveMap over the given starting rack tiles,
// backed by the given leave table.
func NewLeaveMap(table LeaveTable, tiles []Tile) *LeaveMap {
	cache, _ := lru.New(leaveMapCacheSize)
	return &LeaveMap{table: table, tiles: append([]Tile(nil), tiles...), perSubset: cache}
}

// ValueOfSubset returns the leave-table equity for the subset of
// m.tiles selected by the bitmask (bit i set means m.tiles[i] is kept
// in the leave), computing and caching it on first use.
func (m *LeaveMap) ValueOfSubset(mask uint32) Equity {
	if cached, ok := m.perSubset.Get(mask); ok {
		return cached.(Equity)
	}
	var br BitRack
	for i, t := range m.tiles {
		if mask&(1<<uint(i)) != 0 {
			br = br.Add(t.LetterOf())
		}
	}
	v := m.table.Value(br)
	m.perSubset.Add(mask, v)
	return v
}

// FullRackMask returns a bitmask with one bit set per tile in the
// map's starting rack, i.e. the mask corresponding to "keep everything".
func (m *LeaveMap) FullRackMask() uint32 {
	return (uint32(1) << uint(len(m.tiles))) - 1
}

// mapLeaveTable is a simple in-memory LeaveTable backed by a map,
// suitable for tests and as a minimal reference implementation of the
// artifact interface (spec §6.1 explicitly keeps loaders out of scope,
// so the kernel only needs a usable stand-in, not a file format).
type mapLeaveTable map[BitRack]Equity

// Value implements LeaveTable.
func (t mapLeaveTable) Value(leave BitRack) Equity {
	if v, ok := t[leave]; ok {
		return v
	}
	return 0
}

// NewMapLeaveTable builds a LeaveTable from a plain map, for tests and
// embedding contexts that don't need a real trained leave model.
func NewMapLeaveTable(values map[BitRack]Equity) LeaveTable {
	t := make(mapLeaveTable, len(values))
	for k, v := range values {
		t[k] = v
	}
	return t
}

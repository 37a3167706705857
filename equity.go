// equity.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the bit-exact biased equity encoding of spec
// §6.3/§9. The teacher has no equity concept at all (TileMove.Score
// returns a plain int); this is new, grounded directly in the spec's
// own bit-layout description (which in turn mirrors the original
// source's src/def/equity_defs.h, confirmed verbatim during expansion).

package skrafl

import "math"

// Equity is a 32-bit signed-biased fixed-point score, with a
// resolution of 1000 units per point and three reserved sentinels at
// the bottom of the range.
type Equity int32

const (
	// EquityUndefined marks "no value computed yet".
	EquityUndefined Equity = math.MinInt32
	// EquityInitial is the value move generation initializes
	// best-equity-so-far to, so that any real move (and even a pass)
	// beats it.
	EquityInitial Equity = math.MinInt32 + 1
	// EquityPass is assigned to pass moves; strictly greater than
	// EquityInitial so that a recorded pass beats the uninitialized
	// sentinel but any real placement or exchange can still beat the
	// pass.
	EquityPass Equity = math.MinInt32 + 2

	// EquityMin is the lowest value a real (non-sentinel) equity may
	// take.
	EquityMin Equity = math.MinInt32 + 3
	// EquityMax is the highest value a real equity may take; the
	// range is kept symmetric by negating EquityMin.
	EquityMax Equity = -EquityMin

	// EquityResolution is the number of Equity units per nominal
	// point.
	EquityResolution = 1000
)

// IntToEquity converts a whole-point integer score (e.g. a move's raw
// point score) into an Equity value.
func IntToEquity(n int) Equity {
	return Equity(n * EquityResolution)
}

// IsSentinel reports whether e is one of the three reserved values
// rather than a real equity.
func (e Equity) IsSentinel() bool {
	return e == EquityUndefined || e == EquityInitial || e == EquityPass
}

// ToFloat converts a real (non-sentinel) equity to its double-precision
// point value.
func (e Equity) ToFloat() float64 {
	return float64(e) / EquityResolution
}

// EquityFromFloat converts a point value back into the bit-exact
// Equity encoding. Values are rounded to the nearest resolution unit
// and clamped to [EquityMin, EquityMax].
func EquityFromFloat(d float64) Equity {
	scaled := d * EquityResolution
	if scaled >= float64(EquityMax) {
		return EquityMax
	}
	if scaled <= float64(EquityMin) {
		return EquityMin
	}
	return Equity(math.Round(scaled))
}

// Negate returns the equity whose double value is the negation of e's
// double value. Negation is bit-exact and involutive: Negate(Negate(x))
// == x for every non-sentinel x (spec §6.3, tested as testable property
// #5's companion law).
func (e Equity) Negate() Equity {
	if e.IsSentinel() {
		// Sentinels are never meant to be negated in the endgame's
		// negamax recursion; callers that do so get the sentinel back
		// unchanged so the operation stays total.
		return e
	}
	return -e
}

// Less provides a total order matching spec §9's ordering anchor:
// INITIAL < PASS < any real equity < MAX.
func (e Equity) Less(other Equity) bool {
	return equityRank(e) < equityRank(other) ||
		(equityRank(e) == equityRank(other) && e < other)
}

// equityRank buckets a value into {0: INITIAL, 1: PASS, 2: real/UNDEFINED}
// so that the raw int32 ordering of the sentinels (which all live just
// above math.MinInt32) doesn't leak into comparisons against real
// equities that happen to also be very negative.
func equityRank(e Equity) int {
	switch e {
	case EquityInitial:
		return 0
	case EquityPass:
		return 1
	default:
		return 2
	}
}

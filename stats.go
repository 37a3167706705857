// stats.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements Stat, Welford's online mean/variance
// accumulator (spec §3's Simmed play: "A Stat is Welford's online
// (n, mean, m2, min, max)"). The teacher has no running-statistics
// concept at all; this is new, grounded only in the spec's own
// definition.

package skrafl

import "math"

// Stat accumulates a running mean, variance, min, and max over a
// stream of float64 samples via Welford's online algorithm, so that
// updates never need to revisit earlier samples.
type Stat struct {
	n    int64
	mean float64
	m2   float64
	min  float64
	max  float64
}

// NewStat returns an empty Stat.
func NewStat() Stat {
	return Stat{min: math.Inf(1), max: math.Inf(-1)}
}

// Push folds one more sample into the running statistics.
func (s *Stat) Push(x float64) {
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	delta2 := x - s.mean
	s.m2 += delta * delta2
	if x < s.min {
		s.min = x
	}
	if x > s.max {
		s.max = x
	}
}

// N returns the number of samples folded in.
func (s *Stat) N() int64 { return s.n }

// Mean returns the running mean, or 0 if no samples have been pushed.
func (s *Stat) Mean() float64 { return s.mean }

// Variance returns the running sample variance (Bessel-corrected), or
// 0 with fewer than two samples.
func (s *Stat) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

// StdDev returns the running sample standard deviation.
func (s *Stat) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the smallest sample seen.
func (s *Stat) Min() float64 { return s.min }

// Max returns the largest sample seen.
func (s *Stat) Max() float64 { return s.max }

// zScore computes the one-sided z-score of the difference between two
// independent sample means, used by the simulator's stopping rule
// (spec §4.10) to test whether a's win-percentage is significantly
// better than b's.
func zScore(a, b *Stat) float64 {
	if a.n == 0 || b.n == 0 {
		return 0
	}
	varSum := a.Variance()/float64(a.n) + b.Variance()/float64(b.n)
	if varSum <= 0 {
		return 0
	}
	return (a.mean - b.mean) / math.Sqrt(varSum)
}

// zThresholdFor maps a stopping condition to its one-sided critical
// z-value.
func zThresholdFor(sc StoppingCondition) float64 {
	switch sc {
	case StoppingP95:
		return 1.645
	case StoppingP99:
		return 2.326
	case StoppingP999:
		return 3.090
	default:
		return math.Inf(1) // StoppingNone never prunes
	}
}

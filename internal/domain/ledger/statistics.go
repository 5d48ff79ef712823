package ledger

import (
	"math"

	"github.com/alem-hub/gradebook/internal/domain/grade"
)

// Statistics folds grades into low/high/average/letter. Every Add is O(1);
// reading the result never rescans the grades.
//
// An empty accumulator has Count() == 0, Low() == +Inf, High() == -Inf,
// Average() == 0 and Letter() == 'F'. Ledgers never return one: they fail
// with a NoData error instead.
type Statistics struct {
	low   float64
	high  float64
	sum   float64
	count int
}

// NewStatistics returns an empty accumulator.
func NewStatistics() *Statistics {
	return &Statistics{
		low:  math.Inf(1),
		high: math.Inf(-1),
	}
}

// Add folds one grade into the running values.
func (s *Statistics) Add(g grade.Grade) {
	v := g.Float64()
	s.low = math.Min(s.low, v)
	s.high = math.Max(s.high, v)
	s.sum += v
	s.count++
}

// Low returns the smallest grade seen.
func (s *Statistics) Low() float64 { return s.low }

// High returns the largest grade seen.
func (s *Statistics) High() float64 { return s.high }

// Sum returns the running total.
func (s *Statistics) Sum() float64 { return s.sum }

// Count returns how many grades were folded in.
func (s *Statistics) Count() int { return s.count }

// Empty reports whether no grade has been added.
func (s *Statistics) Empty() bool { return s.count == 0 }

// Average returns sum / count, or 0 when empty.
func (s *Statistics) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Letter returns the letter grade for the current average.
func (s *Statistics) Letter() grade.Letter {
	return grade.LetterFor(s.Average())
}

// Summarize accumulates a whole slice.
func Summarize(grades []grade.Grade) *Statistics {
	s := NewStatistics()
	for _, g := range grades {
		s.Add(g)
	}
	return s
}

// Finish hands s back to the caller of GetStatistics, or reports NoData when
// the ledger had nothing stored.
func Finish(name string, s *Statistics) (*Statistics, error) {
	if s.Empty() {
		return nil, noData(name)
	}
	return s, nil
}

// Package grade defines the Grade value object and the letter scale derived from it.
package grade

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// Grade Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Grade is one recorded score.
type Grade float64

const (
	// Grade boundaries (inclusive)
	Min Grade = 0
	Max Grade = 100
)

// IsValid checks if the grade is within [Min, Max]. NaN is never valid.
func (g Grade) IsValid() bool {
	return g >= Min && g <= Max
}

// Float64 returns the underlying float64 value.
func (g Grade) Float64() float64 {
	return float64(g)
}

// String returns the shortest decimal that round-trips to the same value.
// This is also the on-disk record format.
func (g Grade) String() string {
	return strconv.FormatFloat(float64(g), 'f', -1, 64)
}

// New creates a Grade with range validation.
func New(value float64) (Grade, error) {
	g := Grade(value)
	if !g.IsValid() {
		return 0, shared.NewDomainError("grade", "New", shared.ErrInvalidGrade,
			fmt.Sprintf("invalid grade %v: must be between %v and %v", value, Min, Max))
	}
	return g, nil
}

// Parse converts raw user text into a float. It does not range-check:
// that happens when the value is added to a ledger.
func Parse(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, shared.NewDomainError("grade", "Parse", shared.ErrParseFailure, "empty input")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, shared.NewDomainError("grade", "Parse", shared.ErrParseFailure,
			fmt.Sprintf("%q is not a number", s))
	}
	return v, nil
}

// Decode reads back a stored record. Anything that is not a valid grade is
// reported as corrupt.
func Decode(record string) (Grade, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record), 64)
	if err != nil {
		return 0, shared.WrapError("grade", "Decode", shared.ErrCorrupt,
			fmt.Sprintf("record %q is not a decimal number", record), err)
	}
	g := Grade(v)
	if !g.IsValid() {
		return 0, shared.NewDomainError("grade", "Decode", shared.ErrCorrupt,
			fmt.Sprintf("record %q is out of range", record))
	}
	return g, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Letter Scale
// ═══════════════════════════════════════════════════════════════════════════

// Letter is the letter grade derived from an average.
type Letter rune

const (
	LetterA Letter = 'A'
	LetterB Letter = 'B'
	LetterC Letter = 'C'
	LetterD Letter = 'D'
	LetterF Letter = 'F'
)

// String returns the letter as a one-character string.
func (l Letter) String() string {
	return string(rune(l))
}

// LetterFor maps an average onto the letter scale. A value sitting exactly on
// a break point gets the higher letter.
func LetterFor(average float64) Letter {
	switch {
	case average >= 90:
		return LetterA
	case average >= 80:
		return LetterB
	case average >= 70:
		return LetterC
	case average >= 60:
		return LetterD
	default:
		return LetterF
	}
}

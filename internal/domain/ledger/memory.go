package ledger

import (
	"context"

	"github.com/alem-hub/gradebook/internal/domain/grade"
)

var _ Ledger = (*InMemoryLedger)(nil)

// InMemoryLedger keeps grades in a slice. Nothing survives the process.
type InMemoryLedger struct {
	Core
	grades []grade.Grade
}

// NewInMemoryLedger creates an empty in-memory ledger.
func NewInMemoryLedger(name string) (*InMemoryLedger, error) {
	core, err := NewCore(name)
	if err != nil {
		return nil, err
	}
	return &InMemoryLedger{Core: core}, nil
}

// AddGrade implements Ledger.
func (l *InMemoryLedger) AddGrade(ctx context.Context, value float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := CheckGrade(value)
	if err != nil {
		return err
	}

	l.grades = append(l.grades, g)
	return l.Notify(ctx, l)
}

// GetStatistics implements Ledger.
func (l *InMemoryLedger) GetStatistics(ctx context.Context) (*Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Finish(l.Name(), Summarize(l.grades))
}

// Len returns the number of stored grades.
func (l *InMemoryLedger) Len() int {
	return len(l.grades)
}

// Grades returns a copy of the stored grades in insertion order.
func (l *InMemoryLedger) Grades() []grade.Grade {
	out := make([]grade.Grade, len(l.grades))
	copy(out, l.grades)
	return out
}

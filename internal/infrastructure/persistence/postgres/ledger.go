package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

var _ ledger.Ledger = (*Ledger)(nil)

// Ledger stores each grade as one row of the grades table, keyed by the
// ledger name. Statistics re-read every row for the name in insertion order.
type Ledger struct {
	ledger.Core
	conn *Connection
}

// NewLedger creates a ledger over conn. The schema must already be migrated.
func NewLedger(conn *Connection, name string) (*Ledger, error) {
	core, err := ledger.NewCore(name)
	if err != nil {
		return nil, err
	}
	return &Ledger{Core: core, conn: conn}, nil
}

// AddGrade implements ledger.Ledger.
func (l *Ledger) AddGrade(ctx context.Context, value float64) error {
	g, err := ledger.CheckGrade(value)
	if err != nil {
		return err
	}

	_, err = l.conn.Exec(ctx, `
		INSERT INTO grades (id, ledger, value)
		VALUES ($1, $2, $3)
	`, uuid.New().String(), l.Name(), g.Float64())
	if IsCheckViolation(err) {
		return shared.WrapError("postgres", "AddGrade", shared.ErrInvalidGrade,
			fmt.Sprintf("grade %v rejected by database", value), err)
	}
	if err != nil {
		return l.unavailable("AddGrade", err)
	}

	return l.Notify(ctx, l)
}

// GetStatistics implements ledger.Ledger.
func (l *Ledger) GetStatistics(ctx context.Context) (*ledger.Statistics, error) {
	rows, err := l.conn.Query(ctx, `
		SELECT value
		FROM grades
		WHERE ledger = $1
		ORDER BY position ASC
	`, l.Name())
	if err != nil {
		return nil, l.unavailable("GetStatistics", err)
	}
	defer rows.Close()

	stats := ledger.NewStatistics()
	row := 0
	for rows.Next() {
		row++
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, shared.WrapError("postgres", "GetStatistics", shared.ErrCorrupt,
				fmt.Sprintf("ledger %q row %d", l.Name(), row), err)
		}

		g := grade.Grade(v)
		if !g.IsValid() {
			return nil, shared.NewDomainError("postgres", "GetStatistics", shared.ErrCorrupt,
				fmt.Sprintf("ledger %q row %d holds out-of-range value %v", l.Name(), row, v))
		}
		stats.Add(g)
	}
	if err := rows.Err(); err != nil {
		return nil, l.unavailable("GetStatistics", err)
	}

	return ledger.Finish(l.Name(), stats)
}

func (l *Ledger) unavailable(op string, err error) error {
	msg := fmt.Sprintf("ledger %q", l.Name())
	if IsUndefinedTable(err) {
		msg += ": grades table missing, run migrations"
	}
	return shared.WrapError("postgres", op, shared.ErrResourceUnavailable, msg, err)
}

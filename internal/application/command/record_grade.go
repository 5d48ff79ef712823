// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE COMMAND
// Turns one line of user input into a stored grade.
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand contains the raw text typed by the user.
type RecordGradeCommand struct {
	Raw string
}

// RecordGradeResult contains the stored value.
type RecordGradeResult struct {
	Ledger     string
	Value      float64
	RecordedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeHandler handles the RecordGradeCommand.
type RecordGradeHandler struct {
	ledger ledger.Ledger
	log    *logger.Logger
	now    func() time.Time
}

// NewRecordGradeHandler creates a new RecordGradeHandler.
func NewRecordGradeHandler(l ledger.Ledger, log *logger.Logger) *RecordGradeHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &RecordGradeHandler{
		ledger: l,
		log:    log.With(logger.Component("record_grade"), logger.Operation("AddGrade"), logger.LedgerName(l.Name())),
		now:    time.Now,
	}
}

// Handle parses cmd.Raw and adds it to the ledger.
//
// Parse failures (ErrParseFailure) never reach the ledger. Range and storage
// errors come back from the ledger unchanged, as do subscriber errors.
func (h *RecordGradeHandler) Handle(ctx context.Context, cmd RecordGradeCommand) (*RecordGradeResult, error) {
	value, err := grade.Parse(cmd.Raw)
	if err != nil {
		h.log.Debug("input rejected", logger.String("raw", cmd.Raw), logger.Err(err))
		return nil, err
	}

	start := h.now()
	if err := h.ledger.AddGrade(ctx, value); err != nil {
		h.log.Warn("grade not recorded", logger.GradeValue(value), logger.Err(err))
		return nil, err
	}

	h.log.Info("grade recorded", logger.GradeValue(value), logger.Latency(h.now().Sub(start)))

	return &RecordGradeResult{
		Ledger:     h.ledger.Name(),
		Value:      value,
		RecordedAt: start,
	}, nil
}

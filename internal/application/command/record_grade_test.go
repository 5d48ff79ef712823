package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
)

func TestRecordGradeHandler_Stores(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("biology")
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelInfo, Format: logger.FormatJSON})
	h := NewRecordGradeHandler(l, log)

	res, err := h.Handle(context.Background(), RecordGradeCommand{Raw: " 91.5 "})
	require.NoError(t, err)

	assert.Equal(t, "biology", res.Ledger)
	assert.Equal(t, 91.5, res.Value)
	assert.Equal(t, []grade.Grade{91.5}, l.Grades())
	assert.Contains(t, buf.String(), `"grade recorded"`)
	assert.Contains(t, buf.String(), `"operation":"AddGrade"`)
}

func TestRecordGradeHandler_ParseFailureNeverReachesLedger(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("biology")
	require.NoError(t, err)

	notified := false
	l.Subscribe(func(context.Context, ledger.Ledger) error { notified = true; return nil })

	h := NewRecordGradeHandler(l, nil)
	_, err = h.Handle(context.Background(), RecordGradeCommand{Raw: "ninety"})

	assert.True(t, shared.IsParseFailure(err))
	assert.Equal(t, 0, l.Len())
	assert.False(t, notified)
}

func TestRecordGradeHandler_OutOfRange(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("biology")
	require.NoError(t, err)

	h := NewRecordGradeHandler(l, nil)
	_, err = h.Handle(context.Background(), RecordGradeCommand{Raw: "101"})

	assert.True(t, shared.IsInvalidGrade(err))
	assert.Equal(t, 0, l.Len())
}

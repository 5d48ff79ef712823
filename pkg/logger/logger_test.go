package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo, Format: FormatJSON})
	log.now = fixedClock

	log.With(LedgerName("physics")).Info("grade recorded", GradeValue(91.5))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "grade recorded", entry.Message)
	assert.Equal(t, "physics", entry.Fields["ledger"])
	assert.Equal(t, 91.5, entry.Fields["grade"])
	assert.Equal(t, "2024-09-01T08:30:00Z", entry.Timestamp)
}

func TestLogger_TextSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelDebug, Format: FormatText})
	log.now = fixedClock

	log.Warn("rejected", Storage("file"), Err(errors.New("out of range")))

	assert.Equal(t, "2024-09-01T08:30:00Z WARN  rejected error=out of range storage=file\n", buf.String())
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_DoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf, Format: FormatJSON})
	_ = base.With(LedgerName("a"))

	base.Info("plain")
	assert.NotContains(t, buf.String(), "ledger")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestContextRoundTrip(t *testing.T) {
	log := Discard()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
)

func TestSession_FullRun(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("Scott's Grade Book")
	require.NoError(t, err)

	in := strings.NewReader("70\nabc\n101\n80\n90\nq\n")
	var out bytes.Buffer

	require.NoError(t, NewSession(l, in, &out, Options{}).Run(context.Background()))

	want := strings.Join([]string{
		"insert a grade or 'q' to quit",
		"A grade was added",
		"",
		"insert a grade or 'q' to quit",
		`"abc" is not a number`,
		"",
		"insert a grade or 'q' to quit",
		"invalid grade 101: must be between 0 and 100",
		"",
		"insert a grade or 'q' to quit",
		"A grade was added",
		"",
		"insert a grade or 'q' to quit",
		"A grade was added",
		"",
		"insert a grade or 'q' to quit",
		"For the book named Scott's Grade Book",
		"The lowest grade is 70",
		"The highest grade is 90",
		"The average grade is 80.0",
		"The letter grade is B",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())

	// the session's own subscriber is removed when it ends
	assert.Equal(t, 0, l.Subscribers())
}

func TestSession_NotificationLogsThroughContext(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("logged")
	require.NoError(t, err)

	var logs, out bytes.Buffer
	log := logger.New(logger.Options{Output: &logs, Level: logger.LevelDebug})

	require.NoError(t, NewSession(l, strings.NewReader("88\nq\n"), &out, Options{Logger: log}).Run(context.Background()))

	assert.Contains(t, logs.String(), "grade added")
	assert.Contains(t, logs.String(), "operation=notify")
	assert.Contains(t, logs.String(), "component=session")
}

func TestSession_EOFEndsInput(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("eof")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewSession(l, strings.NewReader("59"), &out, Options{}).Run(context.Background()))

	assert.Contains(t, out.String(), "The letter grade is F")
}

func TestSession_CustomQuitWord(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("custom")
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("60\ndone\n100\n")
	require.NoError(t, NewSession(l, in, &out, Options{QuitWord: "done"}).Run(context.Background()))

	assert.Equal(t, 1, l.Len())
	assert.Contains(t, out.String(), "insert a grade or 'done' to quit")
	assert.Contains(t, out.String(), "The letter grade is D")
}

func TestSession_PaddedQuitWord(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("padded")
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("65\nstop\n90\n")
	require.NoError(t, NewSession(l, in, &out, Options{QuitWord: " stop "}).Run(context.Background()))

	assert.Equal(t, 1, l.Len())
	assert.Contains(t, out.String(), "insert a grade or 'stop' to quit")
}

func TestSession_NoGrades(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("blank")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewSession(l, strings.NewReader("q\n"), &out, Options{}).Run(context.Background()))

	assert.Contains(t, out.String(), "No grades were recorded in the book named blank")
	assert.NotContains(t, out.String(), "The letter grade")
}

func TestSession_FreshFileLedgerPrintsNotice(t *testing.T) {
	l, err := ledger.NewFileLedger(t.TempDir(), "first run")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewSession(l, strings.NewReader("q\n"), &out, Options{}).Run(context.Background()))

	assert.Contains(t, out.String(), "No grades were recorded in the book named first run")
}

func TestSession_StorageFailureEndsSession(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	l, err := ledger.NewFileLedger(dir, "book")
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewSession(l, strings.NewReader("75\n80\nq\n"), &out, Options{}).Run(context.Background())

	assert.True(t, shared.IsResourceUnavailable(err))
	assert.Equal(t, 1, strings.Count(out.String(), "insert a grade"))
}

func TestSession_CorruptFileFailsReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.txt"), []byte("garbage\n"), 0o644))
	l, err := ledger.NewFileLedger(dir, "book")
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewSession(l, strings.NewReader("q\n"), &out, Options{}).Run(context.Background())
	assert.True(t, shared.IsCorrupt(err))
}

func TestSession_SubscriberFailureEndsSession(t *testing.T) {
	l, err := ledger.NewInMemoryLedger("noisy")
	require.NoError(t, err)

	boom := errors.New("audit sink down")
	l.Subscribe(func(context.Context, ledger.Ledger) error { return boom })

	var out bytes.Buffer
	err = NewSession(l, strings.NewReader("75\nq\n"), &out, Options{}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRenderReport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderReport(&out, &query.StatisticsReportDTO{
		Ledger: "Physics", Low: 55.25, High: 98, Average: 76.66666, Letter: "C",
	}))

	assert.Equal(t, "For the book named Physics\n"+
		"The lowest grade is 55.25\n"+
		"The highest grade is 98\n"+
		"The average grade is 76.7\n"+
		"The letter grade is C\n", out.String())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "grade is bad", UserMessage(shared.NewDomainError("ledger", "AddGrade", shared.ErrInvalidGrade, "grade is bad")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

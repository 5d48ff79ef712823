package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// connect returns a migrated connection, or skips when no test database is configured.
func connect(t *testing.T) *Connection {
	t.Helper()

	url := os.Getenv("GRADEBOOK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("GRADEBOOK_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.URL = url

	conn, err := NewConnection(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	_, err = NewMigrator(conn).Migrate(ctx)
	require.NoError(t, err)

	return conn
}

func uniqueName(t *testing.T) string {
	return t.Name() + "-" + uuid.New().String()
}

func TestLedger_ValidationNeedsNoDatabase(t *testing.T) {
	_, err := NewLedger(nil, "")
	assert.True(t, shared.IsInvalidName(err))

	l, err := NewLedger(nil, "offline")
	require.NoError(t, err)

	called := false
	l.Subscribe(func(context.Context, ledger.Ledger) error { called = true; return nil })

	err = l.AddGrade(context.Background(), 101)
	assert.True(t, shared.IsInvalidGrade(err))
	assert.False(t, called)
}

func TestGetMigrations(t *testing.T) {
	migs := GetMigrations()
	require.Len(t, migs, 1)
	assert.Equal(t, 1, migs[0].Version)
	assert.Contains(t, migs[0].UpSQL, "CREATE TABLE IF NOT EXISTS grades")
}

func TestLedger_RoundTrip(t *testing.T) {
	conn := connect(t)
	ctx := context.Background()
	name := uniqueName(t)
	values := []float64{70, 80, 90, 55.5}

	writer, err := NewLedger(conn, name)
	require.NoError(t, err)

	notified := 0
	writer.Subscribe(func(context.Context, ledger.Ledger) error { notified++; return nil })

	mem, err := ledger.NewInMemoryLedger(name)
	require.NoError(t, err)

	for _, v := range values {
		require.NoError(t, writer.AddGrade(ctx, v))
		require.NoError(t, mem.AddGrade(ctx, v))
	}
	assert.Equal(t, len(values), notified)

	reader, err := NewLedger(conn, name)
	require.NoError(t, err)

	got, err := reader.GetStatistics(ctx)
	require.NoError(t, err)
	want, err := mem.GetStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, grade.LetterC, got.Letter())
}

func TestLedger_EmptyIsNoData(t *testing.T) {
	conn := connect(t)

	l, err := NewLedger(conn, uniqueName(t))
	require.NoError(t, err)

	_, err = l.GetStatistics(context.Background())
	assert.True(t, shared.IsNoData(err))
}

func TestMigrator_Idempotent(t *testing.T) {
	conn := connect(t)

	ran, err := NewMigrator(conn).Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ran)
}

func TestLedger_ClosedConnectionIsUnavailable(t *testing.T) {
	conn := connect(t)
	ctx := context.Background()

	l, err := NewLedger(conn, uniqueName(t))
	require.NoError(t, err)

	conn.Close()

	assert.True(t, shared.IsResourceUnavailable(l.AddGrade(ctx, 50)))
	_, err = l.GetStatistics(ctx)
	assert.True(t, shared.IsResourceUnavailable(err))
}

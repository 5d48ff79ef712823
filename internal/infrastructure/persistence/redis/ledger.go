package redis

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

var _ ledger.Ledger = (*Ledger)(nil)

// Ledger appends each grade to a Redis list with RPUSH and recomputes
// statistics from LRANGE 0 -1. A missing key is an empty ledger.
type Ledger struct {
	ledger.Core
	client *Client
	key    string
}

// NewLedger creates a ledger stored under client.LedgerKey(name).
func NewLedger(client *Client, name string) (*Ledger, error) {
	core, err := ledger.NewCore(name)
	if err != nil {
		return nil, err
	}
	return &Ledger{Core: core, client: client, key: client.LedgerKey(name)}, nil
}

// Key returns the Redis list key.
func (l *Ledger) Key() string {
	return l.key
}

// AddGrade implements ledger.Ledger.
func (l *Ledger) AddGrade(ctx context.Context, value float64) error {
	g, err := ledger.CheckGrade(value)
	if err != nil {
		return err
	}

	if err := l.client.rdb.RPush(ctx, l.key, g.String()).Err(); err != nil {
		return shared.WrapError("redis", "AddGrade", shared.ErrResourceUnavailable,
			fmt.Sprintf("cannot append to %s", l.key), err)
	}

	return l.Notify(ctx, l)
}

// GetStatistics implements ledger.Ledger.
func (l *Ledger) GetStatistics(ctx context.Context) (*ledger.Statistics, error) {
	records, err := l.client.rdb.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, shared.WrapError("redis", "GetStatistics", shared.ErrResourceUnavailable,
			fmt.Sprintf("cannot read %s", l.key), err)
	}

	stats := ledger.NewStatistics()
	for i, record := range records {
		g, err := grade.Decode(record)
		if err != nil {
			return nil, shared.WrapError("redis", "GetStatistics", shared.ErrCorrupt,
				fmt.Sprintf("%s[%d]", l.key, i), err)
		}
		stats.Add(g)
	}

	return ledger.Finish(l.Name(), stats)
}

// Package ledgers picks a ledger variant at construction time.
package ledgers

import (
	"errors"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/redis"
)

// ErrBackendMissing is returned when the selected storage has no handle.
var ErrBackendMissing = errors.New("ledgers: storage backend not configured")

// Backends carries the already opened storage handles. Only the one matching
// the requested kind needs to be set.
type Backends struct {
	DataDir  string
	Postgres *postgres.Connection
	Redis    *redis.Client
}

// Open constructs the ledger variant named by kind.
func Open(kind ledger.Kind, name string, b Backends) (ledger.Ledger, error) {
	switch kind {
	case ledger.KindMemory:
		return asLedger(ledger.NewInMemoryLedger(name))
	case ledger.KindFile:
		dir := b.DataDir
		if dir == "" {
			dir = "."
		}
		return asLedger(ledger.NewFileLedger(dir, name))
	case ledger.KindPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres", ErrBackendMissing)
		}
		return asLedger(postgres.NewLedger(b.Postgres, name))
	case ledger.KindRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: redis", ErrBackendMissing)
		}
		return asLedger(redis.NewLedger(b.Redis, name))
	default:
		return nil, fmt.Errorf("ledgers: unknown kind %q", kind)
	}
}

// asLedger keeps a failed constructor from leaking a typed nil pointer
// inside a non-nil interface.
func asLedger[L ledger.Ledger](l L, err error) (ledger.Ledger, error) {
	if err != nil {
		return nil, err
	}
	return l, nil
}

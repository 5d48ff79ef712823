// Package ledger defines the grade ledger contract, the statistics it
// produces, and its two built-in variants: an in-memory list and an
// append-only text file.
//
// Additional durable variants (PostgreSQL, Redis) live in
// internal/infrastructure/persistence and are built on the same Core.
//
// The package never logs. Every failure is returned to the caller as a
// *shared.DomainError whose Kind is one of the shared sentinels.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTRACT
// ══════════════════════════════════════════════════════════════════════════════

// Ledger is a named, append-only collection of grades.
type Ledger interface {
	// Name returns the identifier given at construction.
	Name() string

	// AddGrade stores value and then notifies subscribers.
	// Returns ErrInvalidGrade for values outside [0, 100]; nothing is stored
	// or notified in that case.
	AddGrade(ctx context.Context, value float64) error

	// GetStatistics recomputes statistics over every stored grade.
	// Returns ErrNoData when the ledger is empty.
	GetStatistics(ctx context.Context) (*Statistics, error)

	// Subscribe registers a grade-added handler.
	Subscribe(h Handler) Subscription

	// Unsubscribe removes a handler. Unknown subscriptions are ignored.
	Unsubscribe(s Subscription)
}

// Kind selects a ledger variant.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindFile     Kind = "file"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
)

// ParseKind parses a storage name as used in configuration.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMemory, KindFile, KindPostgres, KindRedis:
		return k, nil
	default:
		return "", fmt.Errorf("unknown ledger storage %q (want memory, file, postgres or redis)", s)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARED STATE
// ══════════════════════════════════════════════════════════════════════════════

// Core holds what every variant has in common: the immutable name and the
// subscriber list. Variants embed it.
type Core struct {
	name     string
	notifier Notifier
}

// NewCore validates name and returns a Core for it.
func NewCore(name string) (Core, error) {
	if err := ValidateName(name); err != nil {
		return Core{}, err
	}
	return Core{name: name}, nil
}

// Name implements Ledger.
func (c *Core) Name() string { return c.name }

// Subscribe implements Ledger.
func (c *Core) Subscribe(h Handler) Subscription { return c.notifier.Subscribe(h) }

// Unsubscribe implements Ledger.
func (c *Core) Unsubscribe(s Subscription) { c.notifier.Unsubscribe(s) }

// Subscribers returns the number of registered handlers.
func (c *Core) Subscribers() int { return c.notifier.Len() }

// Notify runs the handlers for l. Variants call it after a successful store.
func (c *Core) Notify(ctx context.Context, l Ledger) error {
	return c.notifier.Notify(ctx, l)
}

// ValidateName rejects empty names and names that would escape the data
// directory once turned into a file name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return shared.NewDomainError("ledger", "ValidateName", shared.ErrInvalidName, "ledger name cannot be empty")
	case name == "." || name == "..":
		return shared.NewDomainError("ledger", "ValidateName", shared.ErrInvalidName,
			fmt.Sprintf("ledger name %q is reserved", name))
	case strings.ContainsAny(name, `/\`+"\x00"):
		return shared.NewDomainError("ledger", "ValidateName", shared.ErrInvalidName,
			fmt.Sprintf("ledger name %q contains a path separator", name))
	}
	return nil
}

// CheckGrade is the AddGrade boundary check shared by all variants.
func CheckGrade(value float64) (grade.Grade, error) {
	g := grade.Grade(value)
	if !g.IsValid() {
		return 0, shared.NewDomainError("ledger", "AddGrade", shared.ErrInvalidGrade,
			fmt.Sprintf("invalid grade %v: must be between %v and %v", value, grade.Min, grade.Max))
	}
	return g, nil
}

func noData(name string) error {
	return shared.NewDomainError("ledger", "GetStatistics", shared.ErrNoData,
		fmt.Sprintf("ledger %q has no grades", name))
}

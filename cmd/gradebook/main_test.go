package main

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/gradebook/internal/domain/shared"
)

func TestTransient(t *testing.T) {
	reset := shared.WrapError("redis", "GetStatistics", shared.ErrResourceUnavailable, "cannot read", errors.New("connection reset"))
	missing := shared.WrapError("ledger", "GetStatistics", shared.ErrResourceUnavailable, "book.txt does not exist", fs.ErrNotExist)
	corrupt := shared.NewDomainError("ledger", "GetStatistics", shared.ErrCorrupt, "book.txt:3")

	assert.True(t, transient(reset))
	assert.False(t, transient(missing))
	assert.False(t, transient(corrupt))
}

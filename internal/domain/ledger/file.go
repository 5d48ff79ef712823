package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

var _ Ledger = (*FileLedger)(nil)

// FileExt is appended to the ledger name to form its file name.
const FileExt = ".txt"

// FileLedger is the durable variant: one decimal per line in {dir}/{name}.txt.
// It holds no grades in memory. Each AddGrade opens, appends and closes the
// file; each GetStatistics reads it from start to end.
type FileLedger struct {
	Core
	path string
}

// NewFileLedger creates a ledger backed by dir/name.txt. The file is not
// touched until the first AddGrade.
func NewFileLedger(dir, name string) (*FileLedger, error) {
	core, err := NewCore(name)
	if err != nil {
		return nil, err
	}
	return &FileLedger{
		Core: core,
		path: filepath.Join(dir, name+FileExt),
	}, nil
}

// Path returns the backing file location.
func (l *FileLedger) Path() string {
	return l.path
}

// AddGrade implements Ledger.
func (l *FileLedger) AddGrade(ctx context.Context, value float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := CheckGrade(value)
	if err != nil {
		return err
	}

	if err := l.appendRecord(g); err != nil {
		return err
	}
	return l.Notify(ctx, l)
}

func (l *FileLedger) appendRecord(g grade.Grade) (err error) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return l.unavailable("AddGrade", "open", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = l.unavailable("AddGrade", "close", cerr)
		}
	}()

	if _, err = f.WriteString(g.String() + "\n"); err != nil {
		return l.unavailable("AddGrade", "write", err)
	}
	return nil
}

// GetStatistics implements Ledger. A line that is not a valid grade, or is
// too long to be one, fails the whole call with ErrCorrupt; blank lines are
// ignored.
func (l *FileLedger) GetStatistics(ctx context.Context) (*Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, l.unavailable("GetStatistics", "open", err)
	}
	defer f.Close()

	stats := NewStatistics()
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		record := strings.TrimSpace(scanner.Text())
		if record == "" {
			continue
		}

		g, err := grade.Decode(record)
		if err != nil {
			return nil, shared.WrapError("ledger", "GetStatistics", shared.ErrCorrupt,
				fmt.Sprintf("%s:%d", l.path, line), err)
		}
		stats.Add(g)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, shared.WrapError("ledger", "GetStatistics", shared.ErrCorrupt,
				fmt.Sprintf("%s:%d", l.path, line+1), err)
		}
		return nil, l.unavailable("GetStatistics", "read", err)
	}

	return Finish(l.Name(), stats)
}

func (l *FileLedger) unavailable(op, action string, err error) error {
	msg := fmt.Sprintf("cannot %s %s", action, l.path)
	if errors.Is(err, fs.ErrNotExist) {
		msg = fmt.Sprintf("%s does not exist", l.path)
	}
	return shared.WrapError("ledger", op, shared.ErrResourceUnavailable, msg, err)
}

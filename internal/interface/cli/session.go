// Package cli runs the interactive grade entry session on a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// Options tunes a Session.
type Options struct {
	// QuitWord ends input. Surrounding spaces are ignored. Default "q".
	QuitWord string

	// OpTimeout bounds each ledger call. Zero means no limit.
	OpTimeout time.Duration

	// ReadRetry retries the final statistics read. Nil means one attempt.
	ReadRetry *retry.Retrier

	Logger *logger.Logger
}

// Session reads grades line by line, adds them to a ledger, and prints the
// statistics once input ends.
type Session struct {
	ledger  ledger.Ledger
	in      *bufio.Scanner
	out     io.Writer
	record  *command.RecordGradeHandler
	stats   *query.GetStatisticsHandler
	quit    string
	timeout time.Duration
	log     *logger.Logger
}

// NewSession wires a session around l.
func NewSession(l ledger.Ledger, in io.Reader, out io.Writer, opts Options) *Session {
	opts.QuitWord = strings.TrimSpace(opts.QuitWord)
	if opts.QuitWord == "" {
		opts.QuitWord = "q"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	return &Session{
		ledger:  l,
		in:      bufio.NewScanner(in),
		out:     out,
		record:  command.NewRecordGradeHandler(l, opts.Logger),
		stats:   query.NewGetStatisticsHandler(l, opts.Logger).WithRetrier(opts.ReadRetry),
		quit:    opts.QuitWord,
		timeout: opts.OpTimeout,
		log:     opts.Logger.With(logger.Component("session"), logger.LedgerName(l.Name())),
	}
}

// Run executes the input loop and then prints the report.
//
// Invalid and unparsable input is reported and the loop continues. Storage
// failures and subscriber errors end the session and are returned. An empty
// ledger, or one whose backing file does not exist yet, prints a notice
// instead of the report.
func (s *Session) Run(ctx context.Context) error {
	ctx = logger.WithContext(ctx, s.log)

	sub := s.ledger.Subscribe(s.onGradeAdded)
	defer s.ledger.Unsubscribe(sub)

	if err := s.enterGrades(ctx); err != nil {
		return err
	}

	return s.report(ctx)
}

func (s *Session) onGradeAdded(ctx context.Context, _ ledger.Ledger) error {
	logger.FromContext(ctx).Debug("grade added", logger.Operation("notify"))
	_, err := fmt.Fprintln(s.out, gradeAddedText)
	return err
}

func (s *Session) enterGrades(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.out, promptText+"\n", s.quit)

		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			s.log.Debug("input closed")
			return nil
		}

		line := s.in.Text()
		if strings.TrimSpace(line) == s.quit {
			return nil
		}

		err := s.withTimeout(ctx, func(ctx context.Context) error {
			_, err := s.record.Handle(ctx, command.RecordGradeCommand{Raw: line})
			return err
		})
		if err != nil {
			if !shared.IsRecoverable(err) {
				return err
			}
			fmt.Fprintln(s.out, UserMessage(err))
		}

		fmt.Fprintln(s.out)
	}
}

func (s *Session) report(ctx context.Context) error {
	var dto *query.StatisticsReportDTO
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error
		dto, err = s.stats.Handle(ctx)
		return err
	})

	// A file ledger that never received a grade has no file yet.
	if shared.IsNoData(err) || errors.Is(err, fs.ErrNotExist) {
		_, werr := fmt.Fprintf(s.out, noGradesText+"\n", s.ledger.Name())
		return werr
	}
	if err != nil {
		return err
	}

	return RenderReport(s.out, dto)
}

func (s *Session) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if s.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}

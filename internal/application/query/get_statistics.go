// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/alem-hub/gradebook/internal/domain/ledger"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATISTICS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// StatisticsReportDTO is what the session prints at the end.
type StatisticsReportDTO struct {
	Ledger  string
	Low     float64
	High    float64
	Average float64
	Letter  string
	Count   int
}

// GetStatisticsHandler recomputes a ledger's statistics.
type GetStatisticsHandler struct {
	ledger  ledger.Ledger
	retrier *retry.Retrier
	log     *logger.Logger
}

// NewGetStatisticsHandler creates a new GetStatisticsHandler.
func NewGetStatisticsHandler(l ledger.Ledger, log *logger.Logger) *GetStatisticsHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &GetStatisticsHandler{
		ledger:  l,
		retrier: retry.New(retry.WithMaxAttempts(1)),
		log:     log.With(logger.Component("get_statistics"), logger.Operation("GetStatistics"), logger.LedgerName(l.Name())),
	}
}

// WithRetrier replaces the single-attempt default.
func (h *GetStatisticsHandler) WithRetrier(r *retry.Retrier) *GetStatisticsHandler {
	if r != nil {
		h.retrier = r
	}
	return h
}

// Handle returns the report, or the ledger's error (NoData, Corrupt,
// ResourceUnavailable) unchanged.
func (h *GetStatisticsHandler) Handle(ctx context.Context) (*StatisticsReportDTO, error) {
	stats, err := retry.DoWithData(ctx, h.retrier, h.ledger.GetStatistics)
	if err != nil {
		h.log.Warn("statistics unavailable", logger.Err(err))
		return nil, err
	}

	h.log.Debug("statistics computed", logger.Int("count", stats.Count()))

	return &StatisticsReportDTO{
		Ledger:  h.ledger.Name(),
		Low:     stats.Low(),
		High:    stats.High(),
		Average: stats.Average(),
		Letter:  stats.Letter().String(),
		Count:   stats.Count(),
	}, nil
}

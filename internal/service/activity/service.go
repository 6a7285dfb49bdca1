package activity

import (
	"context"
	"errors"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
)

const DefaultPageSize = 100

// Stage is the position of one aggregation run in its lifecycle.
type Stage string

const (
	StageIdle                 Stage = "idle"
	StageFetchingRoster       Stage = "fetching_roster"
	StageFetchingTransactions Stage = "fetching_transactions"
	StageAggregating          Stage = "aggregating"
	StageRanking              Stage = "ranking"
	StageDone                 Stage = "done"
)

type Service struct {
	roster       RosterSource
	transactions TransactionSource

	pageSize int
	stop     StopFunc
	now      func() time.Time

	l logger.Logger
}

type Option func(*Service)

// WithPageSize sets the transaction page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithStopFunc replaces the pagination termination predicate.
func WithStopFunc(stop StopFunc) Option {
	return func(s *Service) {
		if stop != nil {
			s.stop = stop
		}
	}
}

// WithClock sets the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(roster RosterSource, transactions TransactionSource, l logger.Logger, opts ...Option) *Service {
	s := &Service{
		roster:       roster,
		transactions: transactions,
		pageSize:     DefaultPageSize,
		stop:         StopWhenExhausted,
		now:          time.Now,
		l:            l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TopDrivers returns at most limit drivers ranked by transaction share.
func (s *Service) TopDrivers(ctx context.Context, limit int) ([]models.DriverActivity, error) {
	report, err := s.Report(ctx, limit)
	if err != nil {
		return nil, err
	}
	return report.Drivers, nil
}

// Report runs the full pipeline: roster, every transaction page, tally, rank, truncate.
// Each call starts from scratch. Any source failure aborts the run and nothing partial is returned.
func (s *Service) Report(ctx context.Context, limit int) (report *models.ActivityReport, err error) {
	ctx = wrap.WithAction(ctx, types.ActionComputeTop)

	if limit < 0 {
		return nil, wrap.Error(ctx, types.ErrInvalidLimit)
	}

	start := time.Now()
	stage := StageIdle
	pages := 0
	defer func() {
		metrics.RecordAggregation(err, pages, time.Since(start))
		if err != nil && !errors.Is(err, context.Canceled) {
			// stage is the one the run failed in
			s.l.Debug(ctx, "aggregation failed", "stage", stage)
		}
	}()

	stage = StageFetchingRoster
	roster, err := s.roster.GetDrivers(wrap.WithSource(ctx, string(types.SourceRoster)))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, wrap.Error(ctx, err)
		}
		return nil, wrap.Error(ctx, &ServiceError{Source: types.SourceRoster, Err: err})
	}

	stage = StageFetchingTransactions
	txCtx := wrap.WithSource(ctx, string(types.SourceTransactions))
	txs, fetched, err := Drain(Pages(txCtx, s.transactions, s.pageSize, s.stop))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	pages = fetched

	stage = StageAggregating
	counts, attributable := Tally(txs)

	stage = StageRanking
	ranked := Rank(roster, counts, attributable)

	stage = StageDone
	s.l.Debug(ctx, "aggregation completed",
		"roster_size", len(roster),
		"transactions", len(txs),
		"attributable", attributable,
		"pages_fetched", pages,
	)

	return &models.ActivityReport{
		GeneratedAt:              s.now().UTC(),
		Limit:                    limit,
		RosterSize:               len(roster),
		TotalTransactions:        len(txs),
		AttributableTransactions: attributable,
		PagesFetched:             pages,
		Drivers:                  Top(ranked, limit),
	}, nil
}

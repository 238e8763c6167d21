package scan

import (
	"context"
	"errors"
	"sort"

	"github.com/weilun/chipscan/internal/scoring"
	"github.com/weilun/chipscan/pkg/logger"
)

var (
	// ErrNoFlowRows means the institutional-flow export held no usable rows.
	ErrNoFlowRows = errors.New("scan: no institutional flow rows")
	// ErrNoMarginRows means the margin-balance export held no usable rows.
	ErrNoMarginRows = errors.New("scan: no margin balance rows")
)

// SeriesProvider supplies the daily close/volume series for one security
// code. Fetch failures degrade individual records instead of failing a scan.
type SeriesProvider interface {
	FetchSeries(ctx context.Context, code string) (scoring.Series, error)
}

// ProgressFunc is called after each candidate is scored. 掃描進度回報
type ProgressFunc func(done, total int)

// Scanner scores the day's top institutional-flow candidates against margin
// balances and price/volume behaviour.
type Scanner struct {
	provider SeriesProvider
	logger   *logger.Logger
	topRows  int
}

// New creates a Scanner considering the first topRows flow entries per run.
func New(provider SeriesProvider, log *logger.Logger, topRows int) *Scanner {
	return &Scanner{
		provider: provider,
		logger:   log,
		topRows:  topRows,
	}
}

// Run scores every candidate in the scan window and returns records sorted
// by composite score, highest first. Ties keep their flow-report order.
func (s *Scanner) Run(ctx context.Context, flows []scoring.FlowRow, margins []scoring.MarginRow, progress ProgressFunc) ([]scoring.ScoreRecord, error) {
	if len(flows) == 0 {
		return nil, ErrNoFlowRows
	}
	if len(margins) == 0 {
		return nil, ErrNoMarginRows
	}

	window := flows
	if len(window) > s.topRows {
		window = window[:s.topRows]
	}

	records := make([]scoring.ScoreRecord, 0, len(window))
	for i, flow := range window {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code := scoring.NormalizeID(flow.RawCode)
		if code == "" {
			s.logger.WithField("name", flow.Name).Debug("Skipping unidentifiable flow row")
			if progress != nil {
				progress(i+1, len(window))
			}
			continue
		}

		records = append(records, s.score(ctx, code, flow.Name, margins))

		if progress != nil {
			progress(i+1, len(window))
		}
	}

	// Stable keeps flow-report order for equal scores.
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Score > records[b].Score
	})

	s.logger.WithFields(map[string]interface{}{
		"window": len(window),
		"scored": len(records),
	}).Info("Scan completed")

	return records, nil
}

// score builds one composite record. A missing series leaves the technical
// side neutral; the margin side still counts.
func (s *Scanner) score(ctx context.Context, code, name string, margins []scoring.MarginRow) scoring.ScoreRecord {
	margin := scoring.EvaluateMargin(code, margins)

	series, err := s.provider.FetchSeries(ctx, code)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"code":  code,
			"error": err.Error(),
		}).Warn("Series fetch failed, scoring without technicals")
		series = nil
	}

	tech := scoring.EvaluateTechnical(series)
	trap := scoring.DetectTrap(margin.Delta, tech)

	return scoring.Compose(code, name, margin, tech, trap)
}

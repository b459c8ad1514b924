// Package comparison assembles the multi-ticker comparison payload: it fans
// out per-ticker series fetches, then aligns, normalizes and colors the
// results for the chart layer.
package comparison

import (
	"context"
	"strings"
	"sync"

	"github.com/marketlens/backend/internal/compare"
	"github.com/marketlens/backend/pkg/logger"
)

// SeriesFetcher supplies the daily series for one ticker. Implemented by the
// warehouse series repository in-process and by the API client in the CLI.
type SeriesFetcher interface {
	Series(ctx context.Context, ticker string, days int) ([]compare.SeriesPoint, error)
}

// Service coordinates the comparison fetch and shaping.
type Service struct {
	fetcher SeriesFetcher
	workers int
	logger  *logger.Logger
}

// NewService creates a comparison service with the given fan-out width.
func NewService(fetcher SeriesFetcher, workers int, log *logger.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		fetcher: fetcher,
		workers: workers,
		logger:  log.WithField("module", "comparison"),
	}
}

// Result is the chart-ready comparison payload.
type Result struct {
	Tickers    []string                `json:"tickers"`
	Colors     map[string]string       `json:"colors"`
	Merged     []compare.MergedRow     `json:"merged"`
	Normalized []compare.NormalizedRow `json:"normalized"`
	Errors     map[string]string       `json:"errors,omitempty"`
}

type fetchResult struct {
	ticker string
	points []compare.SeriesPoint
	err    error
}

// Compare fetches every ticker's series concurrently and shapes the combined
// payload. A failed fetch degrades that ticker to an empty series (rendered
// as gaps) and is reported in Errors; other tickers are unaffected.
func (s *Service) Compare(ctx context.Context, tickers []string, days int) (*Result, error) {
	tickers = normalizeTickers(tickers)

	result := &Result{
		Tickers: tickers,
		Colors:  make(map[string]string, len(tickers)),
	}
	for _, ticker := range tickers {
		result.Colors[ticker] = compare.ColorFor(ticker)
	}

	seriesByTicker := make(map[string][]compare.SeriesPoint, len(tickers))

	if len(tickers) > 0 {
		tickerCh := make(chan string, len(tickers))
		resultCh := make(chan fetchResult, len(tickers))

		var wg sync.WaitGroup
		for w := 0; w < s.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.worker(ctx, tickerCh, resultCh, days)
			}()
		}

		for _, ticker := range tickers {
			tickerCh <- ticker
		}
		close(tickerCh)

		go func() {
			wg.Wait()
			close(resultCh)
		}()

		for res := range resultCh {
			if res.err != nil {
				s.logger.WithError(res.err).WithField("ticker", res.ticker).Warn("Series fetch failed")
				if result.Errors == nil {
					result.Errors = make(map[string]string)
				}
				result.Errors[res.ticker] = res.err.Error()
				continue
			}
			seriesByTicker[res.ticker] = res.points
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Merged = compare.Merge(tickers, seriesByTicker)
	result.Normalized = compare.Normalize(result.Merged, tickers)
	return result, nil
}

// worker drains the ticker channel, honoring cancellation between fetches.
func (s *Service) worker(ctx context.Context, tickerCh <-chan string, resultCh chan<- fetchResult, days int) {
	for ticker := range tickerCh {
		select {
		case <-ctx.Done():
			resultCh <- fetchResult{ticker: ticker, err: ctx.Err()}
			continue
		default:
		}

		points, err := s.fetcher.Series(ctx, ticker, days)
		resultCh <- fetchResult{ticker: ticker, points: points, err: err}
	}
}

// normalizeTickers trims, upper-cases and de-duplicates the requested
// tickers while keeping their order. Color hashing is case-sensitive, so the
// canonical form is fixed here once.
func normalizeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Package compare implements the data shaping behind the multi-ticker
// comparison view: aligning sparse per-ticker time series into one dense
// date-keyed table, deriving a base-100 performance index per ticker, and
// assigning stable chart colors to tickers.
//
// Everything in this package is a pure function over its arguments. Nothing
// is cached or mutated between calls, so all functions are safe to invoke
// concurrently.
package compare

import (
	"encoding/json"
	"sort"
)

// SeriesPoint is one observation for one ticker on one calendar date.
// Nil fields mean "not yet computed" (e.g. not enough history for MA200),
// never zero.
type SeriesPoint struct {
	Date   string   `json:"date"` // ISO calendar date (YYYY-MM-DD)
	Close  *float64 `json:"close"`
	Volume *int64   `json:"volume"`
	MA50   *float64 `json:"ma50"`
	MA200  *float64 `json:"ma200"`
	RSI14  *float64 `json:"rsi14"`
}

// Metrics holds one ticker's nullable metric values on a single date.
type Metrics struct {
	Close  *float64
	Volume *int64
	MA50   *float64
	MA200  *float64
	RSI14  *float64
}

// MergedRow is one row of the aligned comparison table: a date plus the
// metrics of every ticker that has an observation on that date.
type MergedRow struct {
	Date    string
	Tickers map[string]Metrics
}

// Metrics returns the given ticker's metrics on this row. Tickers without
// an observation on this date yield all-nil metrics.
func (r MergedRow) Metrics(ticker string) Metrics {
	return r.Tickers[ticker]
}

// MarshalJSON flattens the row into the {date, TICKER_close, TICKER_volume,
// ...} shape the chart layer consumes. Tickers absent on this date are
// omitted, matching the sparse row objects the frontend builds.
func (r MergedRow) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, 1+len(r.Tickers)*5)
	obj["date"] = r.Date
	for ticker, m := range r.Tickers {
		obj[ticker+"_close"] = m.Close
		obj[ticker+"_volume"] = m.Volume
		obj[ticker+"_ma50"] = m.MA50
		obj[ticker+"_ma200"] = m.MA200
		obj[ticker+"_rsi14"] = m.RSI14
	}
	return json.Marshal(obj)
}

// Merge aligns the series of the requested tickers into one table with
// exactly one row per distinct date, sorted ascending by the date string
// (lexicographic order matches chronological order for ISO dates).
//
// Tickers missing from seriesByTicker contribute nothing and are not an
// error. Dates are never interpolated or filled; a ticker simply has no
// entry on rows where it has no observation.
func Merge(tickers []string, seriesByTicker map[string][]SeriesPoint) []MergedRow {
	byDate := make(map[string]map[string]Metrics)

	for _, ticker := range tickers {
		for _, p := range seriesByTicker[ticker] {
			row, ok := byDate[p.Date]
			if !ok {
				row = make(map[string]Metrics)
				byDate[p.Date] = row
			}
			row[ticker] = Metrics{
				Close:  p.Close,
				Volume: p.Volume,
				MA50:   p.MA50,
				MA200:  p.MA200,
				RSI14:  p.RSI14,
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]MergedRow, 0, len(dates))
	for _, date := range dates {
		rows = append(rows, MergedRow{Date: date, Tickers: byDate[date]})
	}
	return rows
}

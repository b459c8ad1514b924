package compare

import "encoding/json"

// NormalizedRow is one row of the base-100 performance table: a date plus,
// per requested ticker, close/anchor*100, or nil when either side is missing.
type NormalizedRow struct {
	Date   string
	Values map[string]*float64
}

// Value returns the given ticker's normalized value on this row, nil when
// the ticker has no value here.
func (r NormalizedRow) Value(ticker string) *float64 {
	return r.Values[ticker]
}

// MarshalJSON flattens the row into the {date, TICKER_perf} shape the chart
// layer consumes. Missing values serialize as null so charts render gaps
// rather than zeros.
func (r NormalizedRow) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, 1+len(r.Values))
	obj["date"] = r.Date
	for ticker, v := range r.Values {
		obj[ticker+"_perf"] = v
	}
	return json.Marshal(obj)
}

// Normalize derives a base-100 performance series per ticker from a merged
// table. The anchor for each ticker is its first strictly-positive close in
// date order and is fixed for the whole range; a ticker with no positive
// close anywhere gets nil for every row.
//
// The output has the same row count and date order as the input. No rounding
// is applied here; formatting is a presentation concern.
func Normalize(rows []MergedRow, tickers []string) []NormalizedRow {
	// Anchor selection, per ticker, independent of other tickers.
	anchors := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		for _, row := range rows {
			if c := row.Metrics(ticker).Close; c != nil && *c > 0 {
				anchors[ticker] = *c
				break
			}
		}
	}

	out := make([]NormalizedRow, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]*float64, len(tickers))
		for _, ticker := range tickers {
			anchor, ok := anchors[ticker]
			close := row.Metrics(ticker).Close
			if !ok || close == nil {
				values[ticker] = nil
				continue
			}
			v := (*close / anchor) * 100
			values[ticker] = &v
		}
		out = append(out, NormalizedRow{Date: row.Date, Values: values})
	}
	return out
}

package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AnchorIsFirstPositiveClose(t *testing.T) {
	// Closes [null, 50, 100, 25]: anchor 50, values [null, 100, 200, 50]
	series := map[string][]SeriesPoint{
		"AAPL": {
			{Date: "2026-01-01"},
			{Date: "2026-01-02", Close: f(50)},
			{Date: "2026-01-03", Close: f(100)},
			{Date: "2026-01-04", Close: f(25)},
		},
	}
	tickers := []string{"AAPL"}

	rows := Normalize(Merge(tickers, series), tickers)
	require.Len(t, rows, 4)

	assert.Nil(t, rows[0].Value("AAPL"))
	require.NotNil(t, rows[1].Value("AAPL"))
	assert.Equal(t, 100.0, *rows[1].Value("AAPL"))
	require.NotNil(t, rows[2].Value("AAPL"))
	assert.Equal(t, 200.0, *rows[2].Value("AAPL"))
	require.NotNil(t, rows[3].Value("AAPL"))
	assert.Equal(t, 50.0, *rows[3].Value("AAPL"))
}

func TestNormalize_NonPositiveClosesNeverAnchor(t *testing.T) {
	series := map[string][]SeriesPoint{
		"AAPL": {
			{Date: "2026-01-01", Close: f(-5)},
			{Date: "2026-01-02", Close: f(0)},
			{Date: "2026-01-03", Close: f(40)},
			{Date: "2026-01-04", Close: f(80)},
		},
	}
	tickers := []string{"AAPL"}

	rows := Normalize(Merge(tickers, series), tickers)
	require.Len(t, rows, 4)

	// Anchor is 40: the first strictly positive close
	require.NotNil(t, rows[2].Value("AAPL"))
	assert.Equal(t, 100.0, *rows[2].Value("AAPL"))
	require.NotNil(t, rows[3].Value("AAPL"))
	assert.Equal(t, 200.0, *rows[3].Value("AAPL"))

	// Non-positive closes still normalize against the fixed anchor
	require.NotNil(t, rows[0].Value("AAPL"))
	assert.Equal(t, -12.5, *rows[0].Value("AAPL"))
	require.NotNil(t, rows[1].Value("AAPL"))
	assert.Equal(t, 0.0, *rows[1].Value("AAPL"))
}

func TestNormalize_NoPositiveCloseYieldsAllNulls(t *testing.T) {
	series := map[string][]SeriesPoint{
		"DEAD": {
			{Date: "2026-01-01"},
			{Date: "2026-01-02", Close: f(0)},
			{Date: "2026-01-03", Close: f(-1)},
		},
	}
	tickers := []string{"DEAD"}

	rows := Normalize(Merge(tickers, series), tickers)
	require.Len(t, rows, 3)

	for _, row := range rows {
		assert.Nil(t, row.Value("DEAD"), "date %s", row.Date)
	}
}

func TestNormalize_TickersAreIndependent(t *testing.T) {
	series := map[string][]SeriesPoint{
		"AAPL": {
			{Date: "2026-01-01", Close: f(100)},
			{Date: "2026-01-02", Close: f(110)},
		},
		"MSFT": {
			// No observation on the first date: anchor picked on the second
			{Date: "2026-01-02", Close: f(200)},
		},
	}
	tickers := []string{"AAPL", "MSFT"}

	rows := Normalize(Merge(tickers, series), tickers)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Value("AAPL"))
	assert.Equal(t, 100.0, *rows[0].Value("AAPL"))
	assert.Nil(t, rows[0].Value("MSFT"))

	require.NotNil(t, rows[1].Value("AAPL"))
	assert.InDelta(t, 110.0, *rows[1].Value("AAPL"), 1e-9)
	require.NotNil(t, rows[1].Value("MSFT"))
	assert.Equal(t, 100.0, *rows[1].Value("MSFT"))
}

func TestNormalize_PreservesRowCountAndOrder(t *testing.T) {
	series := map[string][]SeriesPoint{
		"AAPL": {
			{Date: "2026-01-03", Close: f(3)},
			{Date: "2026-01-01", Close: f(1)},
			{Date: "2026-01-02", Close: f(2)},
		},
	}
	tickers := []string{"AAPL"}

	merged := Merge(tickers, series)
	rows := Normalize(merged, tickers)

	require.Len(t, rows, len(merged))
	for idx, row := range rows {
		assert.Equal(t, merged[idx].Date, row.Date)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	series := map[string][]SeriesPoint{
		"AAPL": {
			{Date: "2026-01-01", Close: f(100)},
			{Date: "2026-01-02", Close: f(150)},
		},
	}
	tickers := []string{"AAPL"}
	merged := Merge(tickers, series)

	assert.Equal(t, Normalize(merged, tickers), Normalize(merged, tickers))
}

func TestNormalizedRow_MarshalJSON(t *testing.T) {
	series := map[string][]SeriesPoint{
		"AAPL": {{Date: "2026-01-01", Close: f(100)}},
	}
	tickers := []string{"AAPL", "MISSING"}

	rows := Normalize(Merge(tickers, series), tickers)
	require.Len(t, rows, 1)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &obj))

	assert.Equal(t, "2026-01-01", obj["date"])
	assert.Equal(t, 100.0, obj["AAPL_perf"])

	v, ok := obj["MISSING_perf"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

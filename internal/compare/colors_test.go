package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteSize(t *testing.T) {
	require.GreaterOrEqual(t, len(Palette), 8)
}

func TestColorFor_Stable(t *testing.T) {
	first := ColorFor("AAPL")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ColorFor("AAPL"))
	}
}

func TestColorFor_KnownHashes(t *testing.T) {
	// h("A") = 65, h("AAPL") = ((65*31+65)*31+80)*31+76 = 2001436
	assert.Equal(t, Palette[65%len(Palette)], ColorFor("A"))
	assert.Equal(t, Palette[2001436%len(Palette)], ColorFor("AAPL"))
}

func TestColorFor_CaseSensitive(t *testing.T) {
	// Upper and lower case hash to different values; the palette entries may
	// still collide, which is acceptable, so only the hash inputs differ here.
	assert.Equal(t, ColorFor("aapl"), ColorFor("aapl"))
	assert.Equal(t, ColorFor("AAPL"), ColorFor("AAPL"))
}

func TestColorFor_EmptyString(t *testing.T) {
	assert.Equal(t, Palette[0], ColorFor(""))
}

func TestColorFor_AlwaysInPalette(t *testing.T) {
	tickers := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "BRK.B", "X", "aapl", ""}
	for _, ticker := range tickers {
		assert.Contains(t, Palette, ColorFor(ticker), "ticker %q", ticker)
	}
}

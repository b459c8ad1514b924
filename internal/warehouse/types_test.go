package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingConfig_Validate(t *testing.T) {
	valid := map[string]float64{
		"trend": 0.35, "rsi": 0.25, "value": 0.20, "size": 0.10, "yield": 0.10,
	}

	tests := []struct {
		name    string
		weights map[string]float64
		wantErr bool
	}{
		{"valid default weights", valid, false},
		{"empty weights", map[string]float64{}, true},
		{"sum too low", map[string]float64{"trend": 0.3, "rsi": 0.2, "value": 0.2, "size": 0.1, "yield": 0.1}, true},
		{"sum too high", map[string]float64{"trend": 0.5, "rsi": 0.3, "value": 0.2, "size": 0.1, "yield": 0.1}, true},
		{"missing key", map[string]float64{"trend": 0.4, "rsi": 0.3, "value": 0.2, "size": 0.1}, true},
		{"extra key allowed", map[string]float64{"trend": 0.3, "rsi": 0.2, "value": 0.2, "size": 0.1, "yield": 0.1, "momentum": 0.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &RankingConfig{Name: "default", Weights: tt.weights, Active: true}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRankingConfig_WeightOr(t *testing.T) {
	cfg := &RankingConfig{Weights: map[string]float64{"trend": 0.4}}

	assert.Equal(t, 0.4, cfg.WeightOr("trend", 0.35))
	assert.Equal(t, 0.25, cfg.WeightOr("rsi", 0.25))

	var nilCfg *RankingConfig
	assert.Equal(t, 0.35, nilCfg.WeightOr("trend", 0.35))
}

func TestDecodeJSONMap(t *testing.T) {
	m := decodeJSONMap([]byte(`{"trend":"above ma200"}`))
	require.Len(t, m, 1)
	assert.Equal(t, "above ma200", m["trend"])

	m = decodeJSONMap(nil)
	assert.Empty(t, m)

	// Undecodable payloads are preserved under "raw" instead of failing
	m = decodeJSONMap([]byte("not-json"))
	assert.Equal(t, "not-json", m["raw"])
}

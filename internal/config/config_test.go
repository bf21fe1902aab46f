package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, 3, cfg.Storage.RetryAttempts)
}

func TestDefaultScoringWeights(t *testing.T) {
	s := DefaultScoring()

	assert.InDelta(t, 1.0, s.Weights.Sum(), 1e-9)
	assert.Equal(t, 0.30, s.Weights.Performance)
	assert.Equal(t, 0.25, s.Weights.Technical)
	assert.Equal(t, 0.20, s.Weights.Content)
	assert.Equal(t, 0.15, s.Weights.Backlinks)
	assert.Equal(t, 0.10, s.Weights.Social)
}

func TestDefaultScoringTiersAreMonotonic(t *testing.T) {
	tiers := DefaultScoring().BacklinkTiers
	require.NotEmpty(t, tiers)

	// Ordered tiers ending in the catch-all.
	for i := 1; i < len(tiers)-1; i++ {
		assert.Greater(t, tiers[i].Below, tiers[i-1].Below)
		assert.Greater(t, tiers[i].Score, tiers[i-1].Score)
	}
	last := tiers[len(tiers)-1]
	assert.Equal(t, 0, last.Below)
	assert.Equal(t, 95, last.Score)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Providers.Timeout = 0 }},
		{"zero rps", func(c *Config) { c.Providers.RequestsPerSecond = 0 }},
		{"zero weights", func(c *Config) { c.Scoring.Weights = WeightConfig{} }},
		{"no tiers", func(c *Config) { c.Scoring.BacklinkTiers = nil }},
		{"bad storage type", func(c *Config) { c.Storage.Type = "postgres" }},
		{"no retry attempts", func(c *Config) { c.Storage.RetryAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

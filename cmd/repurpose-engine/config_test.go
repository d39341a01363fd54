// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := pipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.45, cfg.Rank.MechanismWeight)
	assert.Equal(t, 0.05, cfg.Mechanism.NonCorePenalty)
	assert.Equal(t, 50, cfg.Literature.MaxPapersPerDrug)
}

func TestPipelineConfigViperOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("rank.mechanism_weight", 0.6)
	viper.Set("mechanism.non_core_penalty", 0.1)
	viper.Set("literature.request_delay", "2s")

	cfg, err := pipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Rank.MechanismWeight)
	assert.Equal(t, 0.1, cfg.Mechanism.NonCorePenalty)
	assert.Equal(t, 2*time.Second, cfg.Literature.RequestDelay)

	// Keys not present in the configuration keep their defaults.
	assert.Equal(t, 0.45, cfg.Rank.EvidenceWeight)
	assert.Equal(t, 6.0, cfg.Evidence.SignalCap)
}

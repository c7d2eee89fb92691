package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/config"
	"github.com/rozlivek/fogcfr/internal/testdomain"
	"github.com/rozlivek/fogcfr/play"
)

func TestLoad_OverridesOnlyNamedFieldsOverDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "log_level: debug\noos:\n  exploration: 0.25\nmatch:\n  seed: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.25, cfg.OOS.Exploration, 1e-9)
	assert.Equal(t, int64(7), cfg.Match.Seed)

	// Untouched fields keep Default()'s values.
	want := config.Default()
	assert.Equal(t, want.OOS.SamplingScheme, cfg.OOS.SamplingScheme)
	assert.Equal(t, want.CFR.RegretMatching, cfg.CFR.RegretMatching)
	assert.Equal(t, want.Match.PreplayBudget, cfg.Match.PreplayBudget)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyLogLevel_RejectsUnknownLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "not-a-level"
	assert.Error(t, cfg.ApplyLogLevel())
}

func TestCFRConfig_NewCFRDataAppliesKnobs(t *testing.T) {
	cfg := config.Default()
	cfg.CFR.ApproxStabilizer = 0.5
	data := cfg.CFR.NewCFRData(testdomain.MatchingPennies{})
	assert.Equal(t, 0.5, data.ApproxStabilizer)
}

// Sanity check that MatchConfig's BudgetType aligns with play's own enum,
// since yaml unmarshals it as a plain int.
func TestMatchConfig_BudgetTypeDefaultsToIterations(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, play.Iterations, cfg.Match.BudgetType)
}

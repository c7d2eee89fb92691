package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rozlivek/fogcfr/internal/policy"
)

func TestCurrentStrategy_UniformWhenNoRegretPositive(t *testing.T) {
	p := policy.New(3, policy.Normal, 1e-9)
	strat := p.CurrentStrategy()
	for _, s := range strat {
		assert.InDelta(t, 1.0/3, s, 1e-9)
	}
}

func TestCurrentStrategy_ProportionalToPositiveRegret(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.AddRegret(1, []float64{3, 1}, false)
	strat := p.CurrentStrategy()
	assert.InDelta(t, 0.75, strat[0], 1e-6)
	assert.InDelta(t, 0.25, strat[1], 1e-6)
}

func TestPlusMatching_ClampsNegativeRegretToZero(t *testing.T) {
	p := policy.New(2, policy.Plus, 1e-9)
	p.AddRegret(1, []float64{-5, 2}, false)
	regrets := p.Regrets()
	assert.Equal(t, 0.0, regrets[0])
	assert.Equal(t, 2.0, regrets[1])
}

func TestFlushDelayed_AppliesBufferedRegret(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.AddRegret(1, []float64{4, 0}, true)
	assert.Equal(t, 0.0, p.Regrets()[0])
	p.FlushDelayed()
	assert.Equal(t, 4.0, p.Regrets()[0])
}

func TestAverageStrategy_NormalizesAccumulator(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.AddStrategyWeight(1, []float64{0.6, 0.4})
	p.AddStrategyWeight(1, []float64{0.2, 0.8})
	avg := p.AverageStrategy()
	assert.InDelta(t, 0.4, avg[0], 1e-9)
	assert.InDelta(t, 0.6, avg[1], 1e-9)
}

func TestAddStrategyWeightAction_AccumulatesSingleAction(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.AddStrategyWeightAction(0, 2)
	p.AddStrategyWeightAction(1, 1)
	avg := p.AverageStrategy()
	assert.InDelta(t, 2.0/3, avg[0], 1e-9)
	assert.InDelta(t, 1.0/3, avg[1], 1e-9)
}

func TestResetAccumulators_ZeroesEverything(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.AddRegret(1, []float64{5, 0}, false)
	p.AddStrategyWeight(1, []float64{1, 0})
	p.ResetAccumulators()
	assert.Equal(t, []float64{0, 0}, p.Regrets())
	assert.Equal(t, []float64{0, 0}, p.StrategySum())
}

func TestFixRM_SuppressesRegretUpdates(t *testing.T) {
	p := policy.New(2, policy.Normal, 1e-9)
	p.FixRM = true
	p.AddRegret(1, []float64{5, 0}, false)
	assert.Equal(t, []float64{0, 0}, p.Regrets())
}

package cfrsolve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/cfrsolve"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
)

// TestCFR_MatchingPenniesConverges exercises the S1 scenario: vanilla CFR
// over matching pennies must converge its average strategy to the uniform
// mixed equilibrium at both infosets.
func TestCFR_MatchingPenniesConverges(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	solver := cfrsolve.New(cache)

	for i := 0; i < 2000; i++ {
		solver.Run()
	}

	root := cache.RootNode()
	strat0 := cache.StrategyFor(root, true)
	require.NotNil(t, strat0)
	assert.InDelta(t, 0.5, strat0[0], 0.05)

	child := cache.GetChild(root, testdomain.Heads)
	strat1 := cache.StrategyFor(child, true)
	require.NotNil(t, strat1)
	assert.InDelta(t, 0.5, strat1[0], 0.05)
}

// TestCFR_MatchingPenniesZeroSum exercises property 3 (§8): every terminal's
// cumulative rewards sum to zero for a zero-sum domain.
func TestCFR_MatchingPenniesZeroSum(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	root := cache.RootNode()

	for _, a0 := range root.AvailableActions() {
		n1 := cache.GetChild(root, a0)
		for _, a1 := range n1.AvailableActions() {
			term := cache.GetChild(n1, a1)
			var sum float64
			for _, v := range term.CumulativeRewards() {
				sum += v
			}
			assert.True(t, math.Abs(sum) < 1e-9)
		}
	}
}

// TestCFR_Goofspiel3ProducesWellFormedAverageStrategy runs vanilla CFR over
// IIGS(3) under InfosetsUpdating and checks only that the solve runs to
// completion and leaves a well-formed (non-negative, normalized) average
// strategy at the root; it does not measure exploitability.
func TestCFR_Goofspiel3ProducesWellFormedAverageStrategy(t *testing.T) {
	dom := testdomain.Goofspiel{N: 3}
	cache := efgcache.NewCFRData(dom, efgcache.InfosetsUpdating)
	solver := cfrsolve.New(cache)

	for i := 0; i < 500; i++ {
		solver.Run()
	}

	root := cache.RootNode()
	strat := cache.StrategyFor(root, true)
	require.NotNil(t, strat)
	var sum float64
	for _, p := range strat {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

package play_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
	"github.com/rozlivek/fogcfr/mccr"
	"github.com/rozlivek/fogcfr/oos"
	"github.com/rozlivek/fogcfr/play"
)

// TestMatch_MatchingPenniesIsZeroSum exercises S5-style match replay: a
// full play.Match between two independently-trained OOS algorithms must
// walk the true EFG to a terminal and return zero-sum rewards.
func TestMatch_MatchingPenniesIsZeroSum(t *testing.T) {
	dom := testdomain.MatchingPennies{}

	cacheA := efgcache.NewOOSData(dom)
	algA := oos.New(cacheA, oos.DefaultSettings())

	cacheB := efgcache.NewOOSData(dom)
	algB := oos.New(cacheB, oos.DefaultSettings())

	algs := [2]play.Algorithm{algA, algB}
	rewards := play.Match(dom, algs, [2]int{2000, 2000}, [2]int{20, 20}, play.Iterations, 42)

	assert.InDelta(t, 0, rewards[0]+rewards[1], 1e-9)
}

// TestMatch_WithResolvers_EntersPublicStatesAndResolves exercises §4.5's CR
// scheduler wired into the C10 driver: two mccr.Resolvers played against
// each other through a full Match must have their gadgets actually rebuilt
// as real play crosses public states (not just stay in preplay mode for the
// whole match), and still return zero-sum rewards.
func TestMatch_WithResolvers_EntersPublicStatesAndResolves(t *testing.T) {
	dom := testdomain.PrivateDeal{}

	trunkA := efgcache.NewOOSData(dom)
	cfgA := mccr.DefaultSettings()
	cfgA.OOS.Seed = 7
	resolverA := mccr.New(trunkA, 0, cfgA)

	trunkB := efgcache.NewOOSData(dom)
	cfgB := mccr.DefaultSettings()
	cfgB.OOS.Seed = 11
	resolverB := mccr.New(trunkB, 1, cfgB)

	algs := [2]play.Algorithm{resolverA, resolverB}
	rewards := play.Match(dom, algs, [2]int{1500, 1500}, [2]int{20, 20}, play.Iterations, 3)

	assert.InDelta(t, 0, rewards[0]+rewards[1], 1e-9)
}

// TestForBudget_RunsExactIterationCount exercises §4.7: an iteration budget
// with no GiveUp runs exactly that many iterations and reports true.
func TestForBudget_RunsExactIterationCount(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewOOSData(dom)
	alg := oos.New(cache, oos.DefaultSettings())

	ok := play.ForBudget(alg, nil, 100, play.Iterations)
	assert.True(t, ok)
	assert.Equal(t, int64(100), alg.Stats.Iterations/int64(oos.DefaultSettings().BatchSize))
}

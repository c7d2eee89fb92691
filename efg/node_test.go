package efg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/testdomain"
)

// TestRoot_SkipsChanceRootForDeterministicDistribution exercises §4.1's
// single-entry-root shortcut: matching pennies' root distribution has one
// entry, so Root must return a Player node directly, at state depth 1.
func TestRoot_SkipsChanceRootForDeterministicDistribution(t *testing.T) {
	root := efg.Root(testdomain.MatchingPennies{})
	assert.Equal(t, efg.Player, root.Kind())
	assert.Equal(t, uint(1), root.StateDepth())
}

// TestPerform_IsPureOverRepeatedCalls exercises §8 property 1: calling
// Perform twice with the same (node, action) produces structurally
// equivalent nodes (same kind, depth, cumulative rewards).
func TestPerform_IsPureOverRepeatedCalls(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	root := efg.Root(dom)

	a := root.Perform(dom, testdomain.Heads)
	b := root.Perform(dom, testdomain.Heads)

	assert.Equal(t, a.Kind(), b.Kind())
	assert.Equal(t, a.StateDepth(), b.StateDepth())
	assert.Equal(t, a.CumulativeRewards(), b.CumulativeRewards())
	assert.Equal(t, a.AOH(0), b.AOH(0))
	assert.Equal(t, a.AOH(1), b.AOH(1))
}

// TestChanceProbabilities_SumToOne exercises §8 property 4 over PrivateDeal's
// chance root.
func TestChanceProbabilities_SumToOne(t *testing.T) {
	root := efg.Root(testdomain.PrivateDeal{})
	var sum float64
	for _, p := range root.ChanceProbabilities() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

// TestIsAOCompatible_ExactAndWildcardMatching exercises property 9 (§4.1,
// §4.4): NoAction/NoObservation entries match anything, concrete entries
// must agree.
func TestIsAOCompatible_ExactAndWildcardMatching(t *testing.T) {
	concrete := efg.AOH{{Action: 1, Observation: 2}}
	wildcardAction := efg.AOH{{Action: ids.NoAction, Observation: 2}}
	mismatch := efg.AOH{{Action: 1, Observation: 3}}

	assert.True(t, efg.IsAOCompatible(concrete, wildcardAction))
	assert.False(t, efg.IsAOCompatible(concrete, mismatch))
	assert.True(t, efg.IsAOCompatible(efg.RootAOH(), concrete))
}

// TestTerminalUtility_ZeroSum exercises §8 property 3 for PrivateDeal's
// showdown-on-call branch.
func TestTerminalUtility_ZeroSum(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	root := efg.Root(dom)
	weak := root.Perform(dom, testdomain.CardWeak)
	betNode := weak.Perform(dom, testdomain.Bet)
	term := betNode.Perform(dom, testdomain.Call)

	assert.Equal(t, efg.Terminal, term.Kind())
	assert.InDelta(t, 0, term.Utility(0)+term.Utility(1), 1e-9)
}

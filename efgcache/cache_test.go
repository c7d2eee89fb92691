package efgcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
)

// TestGetChild_MemoizesRepeatedExpansion exercises §8 property 1 at the
// cache level: GetChild(n, a) returns the identical *efg.Node handle on
// repeated calls.
func TestGetChild_MemoizesRepeatedExpansion(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewEFGCache(dom)
	root := cache.RootNode()

	a := cache.GetChild(root, testdomain.Heads)
	b := cache.GetChild(root, testdomain.Heads)
	assert.Same(t, a, b)
	assert.Equal(t, 1, cache.NumExpanded())
}

// TestBuildTree_IsIdempotent exercises §8 property 8: rebuilding the tree
// twice does not change the number of expanded edges.
func TestBuildTree_IsIdempotent(t *testing.T) {
	dom := testdomain.Goofspiel{N: 3}
	cache := efgcache.NewEFGCache(dom)

	cache.BuildTree(dom.MaxStateDepth())
	first := cache.NumExpanded()
	require.Greater(t, first, 0)

	cache.BuildTree(dom.MaxStateDepth())
	assert.Equal(t, first, cache.NumExpanded())
}

// TestTopmostHistories_SplitsByPublicStateEntry exercises §3's "topmost
// histories" definition over PrivateDeal's post-deal public state: both
// card deals enter the same public state directly from the chance root, so
// both of their histories are topmost.
func TestTopmostHistories_SplitsByPublicStateEntry(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	cache := efgcache.NewPublicStateCache(dom)
	cache.BuildTree(dom.MaxStateDepth())

	root := cache.RootNode()
	weak := cache.GetChild(root, testdomain.CardWeak)
	key := cache.PublicStateKeyFor(weak)

	topmost := cache.TopmostHistories(key)
	assert.Len(t, topmost, 2)
}

// TestCFRData_PolicyForAllocatesOncePerInfoset exercises §4.2's per-infoset
// allocation: two histories sharing an infoset (here, repeated visits to
// the same node) must share one table.
func TestCFRData_PolicyForAllocatesOncePerInfoset(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	data := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	root := data.RootNode()

	p1 := data.PolicyFor(root)
	p2 := data.PolicyFor(root)
	assert.Same(t, p1, p2)
}

// TestOOSData_ApplyRetention_ResetDataZeroesEverything exercises §4.2's
// ResetData retention policy on gadget rebuild.
func TestOOSData_ApplyRetention_ResetDataZeroesEverything(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	data := efgcache.NewOOSData(dom)

	root := data.RootNode()
	weak := data.GetChild(root, testdomain.CardWeak)
	pol := data.PolicyFor(weak)
	pol.AddRegret(1, []float64{5, -2}, false)
	pol.AddStrategyWeight(1, []float64{0.5, 0.5})

	key := data.PublicStateKeyFor(weak)
	data.ApplyRetention(efgcache.ResetData, key, 0)

	assert.Equal(t, []float64{0, 0}, pol.Regrets())
	assert.Equal(t, []float64{0, 0}, pol.StrategySum())
}

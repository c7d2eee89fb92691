package gadget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/gadget"
	"github.com/rozlivek/fogcfr/internal/policy"
	"github.com/rozlivek/fogcfr/internal/testdomain"
)

// TestBuild_UnsafeWhenPublicStateHasOneEntry exercises the Unsafe branch of
// §4.5: matching pennies' only public state before the coins are revealed
// has a single topmost history, so there is nothing to escape to.
func TestBuild_UnsafeWhenPublicStateHasOneEntry(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	root := cache.RootNode()
	key := cache.PublicStateKeyFor(root)

	g := gadget.Build(cache, key, 0, policy.Normal, 1e-9)
	assert.Equal(t, gadget.Unsafe, g.Variant)
	require.Len(t, g.Groups, 1)
	assert.Equal(t, 1, g.Groups[0].NumActions)
	assert.Same(t, root, g.Groups[0].Histories[0])
}

// TestBuild_SafeWhenEntriesAreDistinguishableToOpponent exercises the Safe
// branch of §4.5: right after PrivateDeal's chance deal, the two topmost
// histories are indistinguishable to player 1 (the resolving player) but
// distinguishable to player 0 (the opponent passed to Build), who alone
// observed the card. They therefore land in two distinct groups of player
// 0's augmented infoset, each with its own Follow/Terminate table.
func TestBuild_SafeWhenEntriesAreDistinguishableToOpponent(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	root := cache.RootNode()
	weak := cache.GetChild(root, testdomain.CardWeak)
	strong := cache.GetChild(root, testdomain.CardStrong)

	key := cache.PublicStateKeyFor(weak)
	require.Equal(t, key, cache.PublicStateKeyFor(strong))

	g := gadget.Build(cache, key, 0, policy.Normal, 1e-9)
	assert.Equal(t, gadget.Safe, g.Variant)
	require.Len(t, g.Groups, 2)
	for _, grp := range g.Groups {
		assert.Equal(t, 2, grp.NumActions)
		require.Len(t, grp.Histories, 1)
	}
	assert.NotEqual(t, g.GroupFor(weak), g.GroupFor(strong))
}

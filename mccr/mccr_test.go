package mccr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
	"github.com/rozlivek/fogcfr/mccr"
	"github.com/rozlivek/fogcfr/oos"
)

// TestResolver_ResolvesWellFormedStrategy exercises S4/S6 end to end: a
// preplay pass followed by a gadget resolve at PrivateDeal's post-deal
// public state must keep producing a valid (non-negative, normalized) play
// distribution, never panicking or giving up on an infoset it already
// discovered.
func TestResolver_ResolvesWellFormedStrategy(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	trunk := efgcache.NewOOSData(dom)
	cfg := mccr.DefaultSettings()
	cfg.OOS.Seed = 5
	r := mccr.New(trunk, 1, cfg)

	for i := 0; i < 3000; i++ {
		ctrl := r.RunPlayIteration(nil)
		require.Equal(t, oos.Continue, ctrl)
	}

	root := trunk.RootNode()
	weak := trunk.GetChild(root, testdomain.CardWeak)
	respond := trunk.GetChild(weak, testdomain.Bet)
	key := trunk.PublicStateKeyFor(weak)

	r.EnterPublicState(key, 1.0)

	ref := oos.InfosetRef{Player: 1, AOH: respond.AOH(1)}
	for i := 0; i < 3000; i++ {
		ctrl := r.RunPlayIteration(&ref)
		require.Equal(t, oos.Continue, ctrl)
	}

	dist, ok := r.GetPlayDistribution(ref)
	require.True(t, ok)
	var sum float64
	for _, p := range dist {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

// TestResolver_UnexpandedInfosetGivesUp exercises §7 UnexpandedInfoset: a
// resolve call naming an infoset the trunk has never discovered must report
// GiveUp rather than panicking.
func TestResolver_UnexpandedInfosetGivesUp(t *testing.T) {
	dom := testdomain.PrivateDeal{}
	trunk := efgcache.NewOOSData(dom)
	cfg := mccr.DefaultSettings()
	r := mccr.New(trunk, 1, cfg)

	root := trunk.RootNode()
	weak := trunk.GetChild(root, testdomain.CardWeak)
	key := trunk.PublicStateKeyFor(weak)
	r.EnterPublicState(key, 1.0)

	bogus := oos.InfosetRef{Player: 1, AOH: weak.AOH(1)}
	// weak.AOH(1) belongs to player 1's augmented infoset at a node where
	// player 1 never acts, so it was never registered as a player-1 infoset.
	ctrl := r.RunPlayIteration(&bogus)
	assert.Equal(t, oos.GiveUp, ctrl)
}

// Package cfrsolve implements vanilla counterfactual regret minimization
// (C6): a full, unsampled recursion over the unfolded EFG that computes
// exact counterfactual values and updates regret-matching tables, with
// either immediate (history-level) or delayed (infoset-level) regret
// application and optional RM+ clamping (§4.3).
//
// It is grounded on the teacher package's ChanceSamplingCFR
// (chance_sampling.go): the same traverse/dispatch/sign-flip shape, but
// chance nodes are summed exactly instead of sampled, since §4.3 describes
// vanilla (not Monte-Carlo) CFR. Package oos implements the sampled variant.
package cfrsolve

import (
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
)

// CFR runs vanilla CFR iterations against a shared CFRData cache.
type CFR struct {
	Cache *efgcache.CFRData
	pool  floatSlicePool
}

// New constructs a CFR engine over cache.
func New(cache *efgcache.CFRData) *CFR {
	return &CFR{Cache: cache}
}

// RunIteration runs one full traversal for the given traversing player t,
// updating t's regrets and t's average-strategy accumulators along the way
// (§4.3); under InfosetsUpdating it applies t's buffered regret increments
// once the traversal completes. Call it once per player per logical
// iteration (a "double iteration") and then Advance to move the
// accumulator-weighting clock forward.
func (c *CFR) RunIteration(t ids.Player) float64 {
	root := c.Cache.RootNode()
	v := c.recurse(root, t, 1.0, 1.0)
	if c.Cache.Updating == efgcache.InfosetsUpdating {
		c.Cache.FlushDelayed()
	}
	return v
}

// Advance flushes any delayed regret updates (InfosetsUpdating) and moves
// the iteration counter forward for accumulator weighting (§4.3, §6.3).
func (c *CFR) Advance() {
	if c.Cache.Updating == efgcache.InfosetsUpdating {
		c.Cache.FlushDelayed()
	}
	c.Cache.AdvanceIter()
}

// Run performs one full double iteration: a traversal for each of the two
// players, then Advance. It is the typical entry point for a driver loop.
func (c *CFR) Run() {
	for _, p := range [...]ids.Player{0, 1} {
		c.RunIteration(p)
	}
	c.Advance()
}

// recurse returns the expected utility of n for player t, given t's reach
// probability reachT and the opponent-and-chance reach probability reachOpp
// (§4.3 "Π_t", "Π_{-t}").
func (c *CFR) recurse(n *efg.Node, t ids.Player, reachT, reachOpp float64) float64 {
	switch n.Kind() {
	case efg.Terminal:
		return n.Utility(t)
	case efg.Chance:
		return c.recurseChance(n, t, reachT, reachOpp)
	default:
		if n.ActingPlayer() == t {
			return c.recurseTraversing(n, t, reachT, reachOpp)
		}
		return c.recurseOpponent(n, t, reachT, reachOpp)
	}
}

func (c *CFR) recurseChance(n *efg.Node, t ids.Player, reachT, reachOpp float64) float64 {
	var ev float64
	for _, a := range n.AvailableActions() {
		child := c.Cache.GetChild(n, a)
		p := n.ChanceProbability(a)
		if p == 0 {
			continue
		}
		ev += p * c.recurse(child, t, reachT, reachOpp*p)
	}
	return ev
}

func (c *CFR) recurseTraversing(n *efg.Node, t ids.Player, reachT, reachOpp float64) float64 {
	pol := c.Cache.PolicyFor(n)
	strat := pol.CurrentStrategy()

	advantage := c.pool.alloc(len(strat))
	defer c.pool.release(advantage)

	var expectedUtil float64
	for i, a := range n.AvailableActions() {
		child := c.Cache.GetChild(n, a)
		v := c.recurse(child, t, reachT*strat[i], reachOpp)
		advantage[i] = v
		expectedUtil += strat[i] * v
	}
	for i := range advantage {
		advantage[i] -= expectedUtil
	}

	delayed := c.Cache.Updating == efgcache.InfosetsUpdating
	pol.AddRegret(reachOpp, advantage, delayed)
	pol.AddStrategyWeight(c.Cache.AccumWeight()*reachT, strat)
	return expectedUtil
}

func (c *CFR) recurseOpponent(n *efg.Node, t ids.Player, reachT, reachOpp float64) float64 {
	pol := c.Cache.PolicyFor(n)
	strat := pol.CurrentStrategy()

	var expectedUtil float64
	for i, a := range n.AvailableActions() {
		child := c.Cache.GetChild(n, a)
		v := c.recurse(child, t, reachT, reachOpp*strat[i])
		expectedUtil += strat[i] * v
	}
	return expectedUtil
}

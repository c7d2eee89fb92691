package efgcache

import (
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/policy"
)

// CFRUpdating selects whether regret increments are applied immediately at
// each history visit, or buffered per-infoset and flushed once per player
// iteration (§4.3, §6.3).
type CFRUpdating int

const (
	HistoriesUpdating CFRUpdating = iota
	InfosetsUpdating
)

// CFRData overlays per-infoset CFR tables onto an InfosetCache (§4.2).
type CFRData struct {
	*PublicStateCache

	Updating         CFRUpdating
	RegretMatching   policy.RegretMatching
	AccumWeighting   policy.AccumulatorWeighting
	ApproxStabilizer float64

	tables map[string]*policy.Policy
	iter   int
}

// NewCFRData constructs a CFRData for dom with the given update mode.
func NewCFRData(dom domain.Domain, updating CFRUpdating) *CFRData {
	return &CFRData{
		PublicStateCache: NewPublicStateCache(dom),
		Updating:         updating,
		RegretMatching:   policy.Normal,
		AccumWeighting:   policy.Uniform,
		ApproxStabilizer: 1e-9,
		tables:           make(map[string]*policy.Policy),
		iter:             1,
	}
}

// Iter returns the current (1-indexed) CFR iteration counter, used to
// compute the accumulator weight of §4.3.
func (c *CFRData) Iter() int { return c.iter }

// AdvanceIter increments the iteration counter; called once per completed
// CFR/OOS double-iteration.
func (c *CFRData) AdvanceIter() { c.iter++ }

// PolicyFor returns the CFR table for node n's acting player's infoset,
// allocating it on first access (§3 "CFR table per infoset").
func (c *CFRData) PolicyFor(n *efg.Node) *policy.Policy {
	key := c.InfosetKeyFor(n)
	p, ok := c.tables[key]
	if !ok {
		p = policy.New(n.NumChildren(), c.RegretMatching, c.ApproxStabilizer)
		c.tables[key] = p
	}
	return p
}

// PolicyForKey returns the CFR table registered under an infoset key, or
// nil if that infoset has never been visited.
func (c *CFRData) PolicyForKey(key string) *policy.Policy {
	return c.tables[key]
}

// LoadTables installs previously-persisted policy tables (ldbstore.Load),
// replacing any table already held for the same key. It does not touch the
// iteration counter; callers resuming a solve should also restore that
// separately if it was persisted.
func (c *CFRData) LoadTables(tables map[string]*policy.Policy) {
	for key, p := range tables {
		c.tables[key] = p
	}
}

// FlushDelayed applies every infoset's buffered regret increments; called
// once per player iteration under InfosetsUpdating (§4.3).
func (c *CFRData) FlushDelayed() {
	for _, p := range c.tables {
		p.FlushDelayed()
	}
}

// AccumWeight returns the current iteration's accumulator weight (§4.3,
// §6.3 accumulator_weighting).
func (c *CFRData) AccumWeight() float64 {
	return c.AccumWeighting.Weight(c.iter)
}

// StrategyFor returns the average (or, if avg is false, current
// regret-matching) strategy at node n's infoset, or nil if that infoset is
// unknown to the cache.
func (c *CFRData) StrategyFor(n *efg.Node, avg bool) []float64 {
	p := c.tables[c.InfosetKeyFor(n)]
	if p == nil {
		return nil
	}
	if avg {
		return p.AverageStrategy()
	}
	return p.CurrentStrategy()
}

// StrategyForKey is StrategyFor addressed by infoset key directly, used by
// the game-playing driver which only has an AOH-derived key in hand.
func (c *CFRData) StrategyForKey(key string, avg bool) []float64 {
	p := c.tables[key]
	if p == nil {
		return nil
	}
	if avg {
		return p.AverageStrategy()
	}
	return p.CurrentStrategy()
}

// PublicStateSummary is the (topmost_histories, reach, expected_utility)
// tuple of §3 "Gadget game" / §4.2, computed by walking the true EFG from
// the root under the current average strategy.
type PublicStateSummary struct {
	TopmostHistories []*efg.Node
	Reach            map[*efg.Node]float64
	ExpectedUtility  map[*efg.Node]map[ids.Player]float64
}

// PublicStateSummary computes the summary for the public state identified
// by key, reachable from the cache's root node.
func (c *CFRData) PublicStateSummary(key string) PublicStateSummary {
	topmost := c.TopmostHistories(key)
	summary := PublicStateSummary{
		TopmostHistories: topmost,
		Reach:            make(map[*efg.Node]float64, len(topmost)),
		ExpectedUtility:  make(map[*efg.Node]map[ids.Player]float64, len(topmost)),
	}
	for _, h := range topmost {
		summary.Reach[h] = c.reachProbability(h)
		summary.ExpectedUtility[h] = c.expectedUtility(h)
	}
	return summary
}

// reachProbability returns the product of chance probabilities and average
// strategy probabilities along the path from the root to n.
func (c *CFRData) reachProbability(n *efg.Node) float64 {
	reach := 1.0
	for cur := n; cur.Parent() != nil; {
		parent := cur.Parent()
		switch parent.Kind() {
		case efg.Chance:
			reach *= parent.ChanceProbability(cur.IncomingAction())
		case efg.Player:
			strat := c.StrategyFor(parent, true)
			if strat != nil {
				reach *= strat[cur.IncomingAction()]
			} else {
				reach /= float64(parent.NumChildren())
			}
		}
		cur = parent
	}
	return reach
}

// expectedUtility computes, for every player, the expected terminal utility
// of the subtree rooted at n under the current average strategy (used as
// the gadget's pre-resolving "Terminate" payoff, §4.5).
func (c *CFRData) expectedUtility(n *efg.Node) map[ids.Player]float64 {
	switch n.Kind() {
	case efg.Terminal:
		out := make(map[ids.Player]float64, len(n.CumulativeRewards()))
		for p, v := range n.CumulativeRewards() {
			out[p] = v
		}
		return out
	case efg.Chance:
		out := map[ids.Player]float64{}
		for _, a := range n.AvailableActions() {
			child := c.GetChild(n, a)
			childUtil := c.expectedUtility(child)
			p := n.ChanceProbability(a)
			for pl, u := range childUtil {
				out[pl] += p * u
			}
		}
		return out
	default: // Player
		strat := c.StrategyFor(n, true)
		out := map[ids.Player]float64{}
		for i, a := range n.AvailableActions() {
			child := c.GetChild(n, a)
			childUtil := c.expectedUtility(child)
			p := 1.0 / float64(len(n.AvailableActions()))
			if strat != nil {
				p = strat[i]
			}
			for pl, u := range childUtil {
				out[pl] += p * u
			}
		}
		return out
	}
}

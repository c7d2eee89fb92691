// Package mccr implements Monte-Carlo Continual Resolving (C9, §4.6): it
// extends OOS with gadget awareness, re-solving the subgame entered at each
// new public state instead of reusing a whole-game average strategy.
//
// Grounded on the same RobustSamplingCFR shape as package oos (same
// chance-cancels-out, stochastic-average-strategy idiom), generalized with
// the gadget's forced-Follow sampling and its Follow/Terminate regret
// formula, which have no analogue in the teacher package and are taken
// directly from original_source/algorithms/oos.h's MCCR resolving loop.
package mccr

import (
	"math/rand"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/gadget"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/sampling"
	"github.com/rozlivek/fogcfr/oos"
)

// Resolver continually resolves subgames on behalf of Player, sharing a
// single OOSData trunk across preplay and every subsequent resolve (§5
// "CFRData/OOSData instance is owned by exactly one algorithm during its
// iterations, but may be handed off between algorithms in CR").
//
// Open question (a) of §9 is resolved here as: every resolve runs
// Config.OOS.BatchSize double iterations, each exploring both Player and the
// opponent inside the gadget (§4.4 "batch_size double iterations, both
// exploring players"), exactly like a plain OOS double iteration. Player's
// own nodes below the sampled Follow history update their regrets on
// Player's exploring pass the same way plain OOS would; only the gadget's
// own Follow/Terminate regret is restricted to the opponent's pass, since
// the gadget node itself belongs to the opponent.
type Resolver struct {
	Trunk  *efgcache.OOSData
	Player ids.Player
	Config Settings

	engine  *oos.Algorithm
	rng     *rand.Rand
	current *gadget.Gadget
}

// New constructs a Resolver for player over trunk.
func New(trunk *efgcache.OOSData, player ids.Player, cfg Settings) *Resolver {
	return &Resolver{
		Trunk:  trunk,
		Player: player,
		Config: cfg,
		engine: oos.New(trunk, cfg.OOS),
		rng:    sampling.NewRNG(cfg.OOS.Seed),
	}
}

// EnterPublicState builds (or rebuilds) the gadget at publicStateKey and
// applies the configured retention policy to the trunk's accumulated data
// for it (§4.2, §4.5 "update cache per retention policy"). lastActionProb is
// the probability, under Player's current average strategy, of the action
// that took real play into the current infoset; only ReweighKeepData reads
// it.
func (r *Resolver) EnterPublicState(publicStateKey string, lastActionProb float64) {
	opponent := 1 - r.Player
	r.current = gadget.Build(r.Trunk.CFRData, publicStateKey, opponent, r.Config.OOS.RegretMatching, r.Config.OOS.ApproxRegretMatching)
	r.Trunk.ApplyRetention(r.Config.RetentionPolicy, publicStateKey, lastActionProb)
}

// RunPlayIteration implements the GamePlayingAlgorithm contract (§6.2).
// Before EnterPublicState has ever been called, it delegates straight to
// plain OOS over the whole trunk tree (preplay_iteration, §4.5); once a
// gadget is installed, it runs one gadget resolve_iteration (itself
// Config.OOS.BatchSize double iterations, §4.4), reporting GiveUp if current
// names an infoset the trunk has never discovered (§7 UnexpandedInfoset).
func (r *Resolver) RunPlayIteration(current *oos.InfosetRef) oos.PlayControl {
	if r.current == nil {
		return r.engine.RunPlayIteration(current)
	}
	if current == nil {
		return oos.GiveUp
	}
	key := efgcache.InfosetKey(current.Player, current.AOH)
	if !r.Trunk.HasInfoset(key) {
		return oos.GiveUp
	}
	target := &oos.Target{Level: oos.InfosetLevel, Player: current.Player, AOH: current.AOH}
	r.resolveIteration(target)
	return oos.Continue
}

// GetPlayDistribution reads the resolved strategy for ref straight from the
// trunk (§6.2), the same accessor plain OOS uses.
func (r *Resolver) GetPlayDistribution(ref oos.InfosetRef) ([]float64, bool) {
	return r.engine.GetPlayDistributionAs(ref, r.Config.OOS.PlayStrategy)
}

// resolveIteration runs Config.OOS.BatchSize double iterations over the
// installed gadget, one exploring pass per player per double iteration
// (§4.4), mirroring oos.Algorithm.runDoubleIteration's own batch loop.
func (r *Resolver) resolveIteration(target *oos.Target) {
	g := r.current
	opponent := 1 - r.Player
	r.engine.SetTarget(target)
	for t := 0; t < r.Config.OOS.BatchSize; t++ {
		for _, exploringPl := range [...]ids.Player{r.Player, opponent} {
			r.exploreGadget(g, target, exploringPl, opponent)
		}
	}
}

// exploreGadget runs one gadget-sampled trajectory exploring exploringPl
// (§4.6): it always forces Follow from the sampling point of view, so the
// trajectory descends into the real subtree below the sampled topmost
// history, updating exploringPl's own regrets along the way through the
// shared oos.Algorithm machinery exactly as a plain OOS iteration would.
// The gadget's own Follow/Terminate regret, however, is only updated on the
// opponent's exploring pass: the gadget node belongs to the opponent, so
// Player's pass has nothing there to regret against.
func (r *Resolver) exploreGadget(g *gadget.Gadget, target *oos.Target, exploringPl, opponent ids.Player) {
	probs, w := r.gadgetChanceDistribution(g, target)
	idx, _ := sampling.Distribution(r.rng, probs)
	h := g.Summary.TopmostHistories[idx]

	followVal := r.engine.Recurse(h, 1, 1, exploringPl)
	if exploringPl != opponent {
		return
	}

	grp := g.GroupFor(h)
	sigma := grp.Table.CurrentStrategy()

	nv := r.Trunk.NodeValueFor(h)
	nv.Numerator += followVal
	nv.Denominator++

	if grp.NumActions == 1 {
		// Unsafe: single Follow action, nothing to regret against.
		return
	}

	followScaled := followVal * g.PubStateReach
	terminateScaled := g.PubStateReach * g.Summary.ExpectedUtility[h][g.Opponent]
	delta := followScaled - terminateScaled
	pFollow := sigma[gadget.Follow]
	advantage := []float64{
		gadget.Follow:    (1 - pFollow) * delta,
		gadget.Terminate: -pFollow * delta,
	}
	grp.Table.AddRegret(w, advantage, false)
}

// gadgetChanceDistribution builds π_b(h), the biased probability of
// visiting each topmost history from the gadget's chance node (§4.6): an
// ε-on-policy mix of uniform with the true reach-weighted chance
// probabilities, further biased by δ toward histories compatible with
// target. Returns the mixed distribution and the target-biasing
// reweighting factor w of §4.4, reused unchanged.
func (r *Resolver) gadgetChanceDistribution(g *gadget.Gadget, target *oos.Target) ([]float64, float64) {
	hs := g.Summary.TopmostHistories
	nonBias := make([]float64, len(hs))
	eps := r.Config.GadgetExploration
	u := 1.0 / float64(len(hs))
	for i, h := range hs {
		trueProb := g.Summary.Reach[h] / g.PubStateReach
		nonBias[i] = eps*u + (1-eps)*trueProb
	}

	delta := r.Config.GadgetInfosetBiasing
	if delta <= 0 {
		return nonBias, 1
	}

	compatible := make([]bool, len(hs))
	var playInfosetReach, biasReach, unbiasedReach float64
	for i, h := range hs {
		compatible[i] = target.Compatible(h)
		if compatible[i] {
			playInfosetReach += g.Summary.Reach[h]
		}
		unbiasedReach += nonBias[i]
	}
	if playInfosetReach == 0 {
		return nonBias, 1
	}

	bias := make([]float64, len(hs))
	for i, h := range hs {
		if compatible[i] {
			bias[i] = g.Summary.Reach[h] / playInfosetReach
			biasReach += nonBias[i]
		}
	}

	mixed := make([]float64, len(hs))
	for i := range mixed {
		mixed[i] = delta*bias[i] + (1-delta)*nonBias[i]
	}
	w := (1 - delta) + delta*(biasReach/unbiasedReach)
	return mixed, w
}

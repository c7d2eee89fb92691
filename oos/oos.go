// Package oos implements Online Outcome Sampling, a Monte-Carlo CFR variant
// that samples a single trajectory per exploring player per iteration
// instead of walking the full tree (C7, §4.4).
//
// It is grounded on the teacher package's RobustSamplingCFR
// (robust_sampling.go): the same traverse-and-sample recursion shape, same
// "sampling probabilities cancel out at chance nodes" comment, same
// stochastic average-strategy update at the non-traversing player's node.
// It differs by sampling the exploring player's own actions too (outcome
// sampling proper, rather than external sampling over all actions), and by
// adding target biasing and the variance-reduction baseline of §4.4, neither
// of which the teacher's CFR variants need.
package oos

import (
	"math/rand"

	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/sampling"
)

// PlayControl is the result of one run_play_iteration call (§6.2).
type PlayControl int

const (
	Continue PlayControl = iota
	Stop
	GiveUp
)

// InfosetRef names a player's infoset by (player, AOH), the addressing
// scheme run_play_iteration and get_play_distribution use (§6.2).
type InfosetRef struct {
	Player ids.Player
	AOH    efg.AOH
}

// Target is the resolving target of §4.4 "Target biasing": a specific
// infoset (or, at public-state granularity, a specific public state) that
// sampling should be routed toward with weight TargetBiasing.
type Target struct {
	Level     Targeting
	Player    ids.Player
	AOH       efg.AOH
	PubObsSeq []ids.ObservationID
}

// Compatible reports whether child (or its eventual descendants) could
// still reach t, used by target biasing to restrict the biased sampling
// distribution to actions consistent with the target (§4.4).
func (t *Target) Compatible(child *efg.Node) bool {
	if t == nil {
		return true
	}
	if t.Level == InfosetLevel {
		return efg.IsAOCompatible(child.AOH(t.Player), t.AOH)
	}
	seq := child.PublicObservationSequence()
	n := len(seq)
	if len(t.PubObsSeq) < n {
		n = len(t.PubObsSeq)
	}
	for i := 0; i < n; i++ {
		if seq[i] != t.PubObsSeq[i] {
			return false
		}
	}
	return true
}

// OnlineStats is the supplemented visit-counter feature of
// original_source/algorithms/oos.h's OnlineStats, tracked per algorithm
// instance and exposed read-only for driver throughput logging.
type OnlineStats struct {
	Nodes      int64
	Terminals  int64
	Iterations int64
}

// Algorithm runs outcome-sampling MCCFR against a shared OOSData cache.
type Algorithm struct {
	Cache  *efgcache.OOSData
	Config Settings
	Stats  OnlineStats

	rng    *rand.Rand
	target *Target
}

// New constructs an OOS algorithm instance over cache with the given
// settings. It sets cache.RegretMatching/AccumWeighting/ApproxStabilizer
// from cfg before any iteration runs, since both engines share the same
// internal/policy tables (supplemented feature 1).
func New(cache *efgcache.OOSData, cfg Settings) *Algorithm {
	cache.RegretMatching = cfg.RegretMatching
	cache.AccumWeighting = cfg.AccumWeighting
	cache.ApproxStabilizer = cfg.ApproxRegretMatching
	return &Algorithm{
		Cache:  cache,
		Config: cfg,
		rng:    sampling.NewRNG(cfg.Seed),
	}
}

// SetTarget installs (or, with nil, clears) the resolving target used by
// target biasing on every subsequent iteration. Exposed directly for
// package mccr, which targets the gadget's play infoset on every resolve.
func (o *Algorithm) SetTarget(t *Target) {
	o.target = t
}

// RunPlayIteration implements the GamePlayingAlgorithm contract of §6.2: it
// runs Config.BatchSize double iterations (one exploring pass per player),
// optionally biased toward current (if non-nil), and reports GiveUp if
// current names an infoset this cache has never discovered (§7
// UnexpandedInfoset).
func (o *Algorithm) RunPlayIteration(current *InfosetRef) PlayControl {
	if current != nil {
		key := efgcache.InfosetKey(current.Player, current.AOH)
		if !o.Cache.HasInfoset(key) {
			return GiveUp
		}
		o.target = &Target{Level: o.Config.Targeting, Player: current.Player, AOH: current.AOH}
	} else {
		o.target = nil
	}
	for i := 0; i < o.Config.BatchSize; i++ {
		o.runDoubleIteration()
	}
	return Continue
}

// EnterPublicState implements the GamePlayingAlgorithm contract's §4.5
// public-state-transition hook. Plain OOS keeps a single whole-game average
// strategy and has no gadget to rebuild, so this is a no-op; package mccr's
// Resolver is the implementation that actually reacts to it.
func (o *Algorithm) EnterPublicState(publicStateKey string, lastActionProb float64) {}

// GetPlayDistribution returns the play distribution at ref's infoset per
// Config.PlayStrategy, or (nil, false) if that infoset has never been
// discovered (§6.2).
func (o *Algorithm) GetPlayDistribution(ref InfosetRef) ([]float64, bool) {
	return o.GetPlayDistributionAs(ref, o.Config.PlayStrategy)
}

// GetPlayDistributionAs overrides Config.PlayStrategy for this call, so a
// driver can request the current RM strategy for diagnostics instead of the
// average strategy (supplemented feature 5).
func (o *Algorithm) GetPlayDistributionAs(ref InfosetRef, kind PlayStrategyKind) ([]float64, bool) {
	key := efgcache.InfosetKey(ref.Player, ref.AOH)
	strat := o.Cache.StrategyForKey(key, kind == Average)
	if strat == nil {
		return nil, false
	}
	return strat, true
}

// runDoubleIteration runs one exploring trajectory for each player, then
// advances the accumulator-weighting clock, mirroring cfrsolve.CFR.Run.
func (o *Algorithm) runDoubleIteration() {
	for _, p := range [...]ids.Player{0, 1} {
		o.iterate(o.Cache.RootNode(), 1.0, 1.0, p)
	}
	o.Cache.AdvanceIter()
	o.Stats.Iterations++
}

// iterate walks one sampled trajectory below n, returning the baseline-
// augmented utility estimate for exploringPl (§4.4). reachT and reachOpp are
// the exploring player's and the opponent-and-chance's reach probabilities
// to n under the current regret-matching strategy (not the sampling
// policy), used to weight regret and baseline updates.
func (o *Algorithm) iterate(n *efg.Node, reachT, reachOpp float64, exploringPl ids.Player) float64 {
	switch n.Kind() {
	case efg.Terminal:
		o.Stats.Terminals++
		return n.Utility(exploringPl)
	case efg.Chance:
		o.Stats.Nodes++
		a, _ := sampling.Distribution(o.rng, n.ChanceProbabilities())
		child := o.Cache.GetChild(n, ids.ActionID(a))
		// Sampling probabilities cancel out in the calculation of
		// counterfactual value: chance is sampled exactly on its true
		// distribution, so no importance correction is needed here.
		return o.iterate(child, reachT, reachOpp, exploringPl)
	default:
		return o.iteratePlayer(n, reachT, reachOpp, exploringPl)
	}
}

func (o *Algorithm) iteratePlayer(n *efg.Node, reachT, reachOpp float64, exploringPl ids.Player) float64 {
	o.Stats.Nodes++
	pol := o.Cache.PolicyFor(n)
	sigma := pol.CurrentStrategy()
	numActions := len(sigma)

	s, w := o.samplingStrategy(n, sigma)
	idx, localProb := sampling.Distribution(o.rng, s)
	a := n.AvailableActions()[idx]

	acting := n.ActingPlayer() == exploringPl
	var newReachT, newReachOpp, reachActing float64
	if acting {
		newReachT, newReachOpp = reachT*sigma[idx], reachOpp
		reachActing = reachT
	} else {
		newReachT, newReachOpp = reachT, reachOpp*sigma[idx]
		reachActing = reachOpp
	}

	child := o.Cache.GetChild(n, a)
	childVal := o.iterate(child, newReachT, newReachOpp, exploringPl)

	bRaw := o.Cache.BaselineFor(n, a)
	bVal := o.readBaseline(bRaw, exploringPl)
	augmented := (childVal-bVal)/localProb + bVal

	util := make([]float64, numActions)
	var uH float64
	for i := range util {
		switch {
		case i == idx:
			util[i] = augmented
		case o.Config.Baseline != BaselineNone:
			util[i] = o.readBaseline(o.Cache.BaselineFor(n, n.AvailableActions()[i]), exploringPl)
		default:
			util[i] = 0
		}
		uH += sigma[i] * util[i]
	}

	if acting {
		advantage := make([]float64, numActions)
		for i, u := range util {
			advantage[i] = u - uH
		}
		pol.AddRegret(w*reachOpp, advantage, false)
	} else {
		weight := w * o.Cache.AccumWeight() * reachOpp * sigma[idx] / localProb
		pol.AddStrategyWeightAction(idx, weight)
	}

	if o.Config.Baseline != BaselineNone {
		var bw float64
		switch o.Config.Baseline {
		case WeightedActingPlayer:
			bw = reachActing / localProb
		case WeightedAllPlayers:
			bw = (reachT * reachOpp) / localProb
		case WeightedTime:
			bw = 1
		}
		o.updateBaseline(bRaw, exploringPl, bw, childVal)
	}

	return uH
}

// samplingStrategy builds the proposal distribution at n and the target-
// biasing reweighting factor w of §4.4. When no target is active, or n's
// subtree no longer contains any target-compatible action, w is 1 and the
// distribution is the plain ε-on-policy/uniform mix.
func (o *Algorithm) samplingStrategy(n *efg.Node, sigma []float64) ([]float64, float64) {
	actions := n.AvailableActions()
	nonBias := make([]float64, len(actions))
	switch o.Config.SamplingScheme {
	case Uniform:
		u := 1.0 / float64(len(actions))
		for i := range nonBias {
			nonBias[i] = u
		}
	default: // EpsilonOnPolicy
		eps := o.Config.Exploration
		u := eps / float64(len(actions))
		for i, p := range sigma {
			nonBias[i] = u + (1-eps)*p
		}
	}

	if o.target == nil || o.Config.TargetBiasing <= 0 {
		return nonBias, 1
	}

	compatible := make([]bool, len(actions))
	var anyCompatible bool
	for i, a := range actions {
		child := o.Cache.GetChild(n, a)
		compatible[i] = o.target.Compatible(child)
		anyCompatible = anyCompatible || compatible[i]
	}
	if !anyCompatible {
		return nonBias, 1
	}

	var biasReach, unbiasedReach float64
	bias := make([]float64, len(actions))
	for i := range actions {
		if compatible[i] {
			bias[i] = nonBias[i]
			biasReach += nonBias[i]
		}
		unbiasedReach += nonBias[i]
	}
	for i := range bias {
		bias[i] /= biasReach
	}

	delta := o.Config.TargetBiasing
	mixed := make([]float64, len(actions))
	for i := range mixed {
		mixed[i] = delta*bias[i] + (1-delta)*nonBias[i]
	}
	w := (1 - delta) + delta*(biasReach/unbiasedReach)
	return mixed, w
}

// readBaseline reads baseline b from exploringPl's perspective. Baselines
// are stored from player 0's perspective and flipped by sign at read time
// (§4.4 "Sign convention").
func (o *Algorithm) readBaseline(b *efgcache.Baseline, exploringPl ids.Player) float64 {
	v := b.Value()
	if exploringPl == 1 {
		return -v
	}
	return v
}

func (o *Algorithm) updateBaseline(b *efgcache.Baseline, exploringPl ids.Player, weight, childVal float64) {
	if weight == 0 {
		return
	}
	v := childVal
	if exploringPl == 1 {
		v = -v
	}
	b.Numerator += weight * v
	b.Denominator += weight
}

// Recurse runs the outcome-sampling recursion starting at an arbitrary node
// n (not necessarily the cache root), for explicit reach probabilities and
// exploring player. Exposed for package mccr, which resolves into the real
// subtree below each of a gadget's topmost histories using the same
// baseline/regret machinery as plain OOS (§4.6).
func (o *Algorithm) Recurse(n *efg.Node, reachT, reachOpp float64, exploringPl ids.Player) float64 {
	return o.iterate(n, reachT, reachOpp, exploringPl)
}

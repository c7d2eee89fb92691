// Package policy implements the per-infoset regret-matching table shared by
// the CFR and OOS engines (§3 "CFR table per infoset", §4.3). It corresponds
// to the teacher package's unexported internal/policy package (imported by
// policy.go but not present in the retrieval pack), generalized here to
// cover both vanilla CFR and outcome-sampling MCCFR accumulation.
package policy

import "math"

// RegretMatching selects between normal regret matching and RM+ (§4.3,
// §6.3).
type RegretMatching int

const (
	Normal RegretMatching = iota
	Plus
)

// AccumulatorWeighting selects how much weight an iteration's contribution
// to the average-strategy accumulator receives (§4.3, §6.3).
type AccumulatorWeighting int

const (
	Uniform AccumulatorWeighting = iota
	Linear
	XLogX
)

// Weight returns the accumulator weight for iteration t (1-indexed) under
// scheme w.
func (w AccumulatorWeighting) Weight(t int) float64 {
	if t < 1 {
		t = 1
	}
	switch w {
	case Linear:
		return float64(t)
	case XLogX:
		return float64(t) * math.Log(math.Max(float64(t), 1))
	default:
		return 1
	}
}

// Policy is the CFR table of a single infoset: accumulated regrets, the
// average-strategy accumulator, an optional delayed-regret buffer (for
// infosets-updating CFR, §4.3), and the two freeze flags of §3.
type Policy struct {
	numActions int

	regrets     []float64
	stratSum    []float64
	delayed     []float64
	hasDelayed  bool
	regretMode  RegretMatching
	approxStab  float64 // approxRegretMatching numeric stabilizer, §6.3
	FixRM       bool    // fix_rm_strategy
	FixAvgStrat bool    // fix_avg_strategy
}

// New allocates a Policy with numActions actions.
func New(numActions int, mode RegretMatching, approxStabilizer float64) *Policy {
	return &Policy{
		numActions: numActions,
		regrets:    make([]float64, numActions),
		stratSum:   make([]float64, numActions),
		delayed:    make([]float64, numActions),
		regretMode: mode,
		approxStab: approxStabilizer,
	}
}

// Restore rebuilds a Policy from previously-exported accumulators (the
// ldbstore codec's load path; unexported fields aren't gob-visible, so
// persistence round-trips through Regrets/StrategySum instead of the struct
// itself).
func Restore(numActions int, mode RegretMatching, approxStabilizer float64, regrets, stratSum []float64) *Policy {
	p := New(numActions, mode, approxStabilizer)
	copy(p.regrets, regrets)
	copy(p.stratSum, stratSum)
	return p
}

// NumActions returns the number of actions this policy was allocated for.
func (p *Policy) NumActions() int { return p.numActions }

// CurrentStrategy returns the regret-matching ("current") strategy: actions
// with positive regret proportionally, uniform over all actions if no
// regret is positive (§4.3).
func (p *Policy) CurrentStrategy() []float64 {
	strat := make([]float64, p.numActions)
	var total float64
	for i, r := range p.regrets {
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	total += p.approxStab
	if total <= p.approxStab {
		u := 1.0 / float64(p.numActions)
		for i := range strat {
			strat[i] = u
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// AddRegret adds weight*advantage[a] to regrets[a] for every action a
// (§4.3 "Update regrets r[a] += Π_{-t}·(v(I,a) − v(I))"). If delayed
// application is requested (infosets-updating CFR), the increment is
// buffered instead and must be flushed with FlushDelayed.
func (p *Policy) AddRegret(weight float64, advantage []float64, delayed bool) {
	if p.FixRM {
		return
	}
	if delayed {
		for i, a := range advantage {
			p.delayed[i] += weight * a
		}
		p.hasDelayed = true
		return
	}
	for i, a := range advantage {
		p.regrets[i] += weight * a
	}
	p.clampIfPlus()
}

// FlushDelayed applies any buffered regret increments accumulated via
// AddRegret(..., delayed=true) and clears the buffer (§4.3 "Infosets-
// updating ... buffers per-infoset increments and applies them once per
// player iteration").
func (p *Policy) FlushDelayed() {
	if !p.hasDelayed {
		return
	}
	for i, d := range p.delayed {
		p.regrets[i] += d
		p.delayed[i] = 0
	}
	p.hasDelayed = false
	p.clampIfPlus()
}

func (p *Policy) clampIfPlus() {
	if p.regretMode != Plus {
		return
	}
	for i, r := range p.regrets {
		if r < 0 {
			p.regrets[i] = 0
		}
	}
}

// AddStrategyWeight adds weight*strategy[a] to the average-strategy
// accumulator for every action a (§4.3 accumulator s[a]).
func (p *Policy) AddStrategyWeight(weight float64, strategy []float64) {
	if p.FixAvgStrat {
		return
	}
	for i, s := range strategy {
		p.stratSum[i] += weight * s
	}
}

// AddStrategyWeightAction adds weight to the average-strategy accumulator
// of a single action, used by outcome sampling's stochastically weighted
// averaging (§4.4), which only visits one action per node per iteration.
func (p *Policy) AddStrategyWeightAction(a int, weight float64) {
	if p.FixAvgStrat {
		return
	}
	p.stratSum[a] += weight
}

// AverageStrategy returns the normalized average strategy σ̄(a) =
// s[a]/Σ_b s[b], falling back to uniform when the accumulator is empty
// (§4.3).
func (p *Policy) AverageStrategy() []float64 {
	strat := make([]float64, p.numActions)
	var total float64
	for _, s := range p.stratSum {
		total += s
	}
	if total <= 0 {
		u := 1.0 / float64(p.numActions)
		for i := range strat {
			strat[i] = u
		}
		return strat
	}
	for i, s := range p.stratSum {
		strat[i] = s / total
	}
	return strat
}

// Regrets exposes the raw accumulated regret vector (read-only use; tests
// and the ldbstore codec rely on this).
func (p *Policy) Regrets() []float64 { return append([]float64(nil), p.regrets...) }

// StrategySum exposes the raw average-strategy accumulator.
func (p *Policy) StrategySum() []float64 { return append([]float64(nil), p.stratSum...) }

// ResetAccumulators zeroes regrets, the average-strategy accumulator, and
// any delayed buffer, without discarding the Policy itself (§4.2
// ResetData).
func (p *Policy) ResetAccumulators() {
	for i := range p.regrets {
		p.regrets[i] = 0
		p.stratSum[i] = 0
		p.delayed[i] = 0
	}
	p.hasDelayed = false
}

// ResetAverageStrategy zeroes only the average-strategy accumulator (§4.2
// ReweighKeepData: "reset average-strategy accumulators").
func (p *Policy) ResetAverageStrategy() {
	for i := range p.stratSum {
		p.stratSum[i] = 0
	}
}

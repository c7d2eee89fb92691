package efgcache

import (
	"github.com/rs/zerolog/log"

	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
)

// Baseline is the control-variate estimator of §3 "Baseline/value per
// history": a (numerator, denominator) pair with ratio interpretation,
// stored from player 0's perspective (§4.4 "Sign convention").
type Baseline struct {
	Numerator   float64
	Denominator float64
}

// Value returns the baseline's current ratio, or 0 if never updated.
func (b Baseline) Value() float64 {
	if b.Denominator == 0 {
		return 0
	}
	return b.Numerator / b.Denominator
}

// NodeValue is the node-value estimator of §3, tracked per history by OOS
// and read (and reweighed) by gadget rebuilds (§4.2 ReweighKeepData).
type NodeValue struct {
	Numerator   float64
	Denominator float64
	Weight      float64
}

func (v NodeValue) Value() float64 {
	if v.Denominator == 0 {
		return 0
	}
	return v.Numerator / v.Denominator
}

// OOSData overlays per-history baseline and node-value estimators onto
// CFRData (§4.2, §4.4).
type OOSData struct {
	*CFRData

	baselines map[*efg.Node]map[ids.ActionID]*Baseline
	values    map[*efg.Node]*NodeValue
}

// NewOOSData constructs an empty OOSData for dom. OOS always applies regret
// updates at the history level (outcome sampling visits one history per
// action per iteration), matching the teacher's ChanceSamplingCFR/
// RobustSamplingCFR engines which never buffer regret updates.
func NewOOSData(dom domain.Domain) *OOSData {
	d := &OOSData{
		CFRData:   NewCFRData(dom, HistoriesUpdating),
		baselines: make(map[*efg.Node]map[ids.ActionID]*Baseline),
		values:    make(map[*efg.Node]*NodeValue),
	}
	d.AddCallback(d.createBaselineSlots)
	return d
}

func (d *OOSData) createBaselineSlots(n *efg.Node) {
	d.values[n] = &NodeValue{}
	if n.Kind() == efg.Terminal {
		return
	}
	perAction := make(map[ids.ActionID]*Baseline, n.NumChildren())
	for _, a := range n.AvailableActions() {
		perAction[a] = &Baseline{}
	}
	d.baselines[n] = perAction
}

// BaselineFor returns the baseline estimator for action a at history h,
// allocating it if h was not seen via the normal expansion path.
func (d *OOSData) BaselineFor(h *efg.Node, a ids.ActionID) *Baseline {
	perAction, ok := d.baselines[h]
	if !ok {
		d.createBaselineSlots(h)
		perAction = d.baselines[h]
	}
	b, ok := perAction[a]
	if !ok {
		b = &Baseline{}
		perAction[a] = b
	}
	return b
}

// NodeValueFor returns the node-value estimator for history h.
func (d *OOSData) NodeValueFor(h *efg.Node) *NodeValue {
	v, ok := d.values[h]
	if !ok {
		v = &NodeValue{}
		d.values[h] = v
	}
	return v
}

// RetentionPolicy selects how a gadget rebuild affects the accumulated
// data of the public state it resolves (§4.2).
type RetentionPolicy int

const (
	// ResetData zeros all CFR tables, baselines, and node values.
	ResetData RetentionPolicy = iota
	// KeepData keeps everything unchanged.
	KeepData
	// ReweighKeepData scales node-value numerators by p/(1+p) and resets
	// average-strategy accumulators.
	ReweighKeepData
)

// ApplyRetention applies policy to every history belonging to public state
// key, per §4.2. lastActionProb is the probability, under the current
// average strategy, of the last action that took the player into the
// current play infoset; it is required by ReweighKeepData and ignored
// otherwise.
func (d *OOSData) ApplyRetention(policy RetentionPolicy, key string, lastActionProb float64) {
	histories := d.HistoriesInPublicState(key)
	switch policy {
	case ResetData:
		log.Debug().Str("public_state", key).Msg("oosdata: ResetData on gadget rebuild")
		seen := make(map[string]bool)
		for _, h := range histories {
			if h.Kind() == efg.Player {
				infosetKey := d.InfosetKeyFor(h)
				if !seen[infosetKey] {
					if p := d.PolicyForKey(infosetKey); p != nil {
						p.ResetAccumulators()
					}
					seen[infosetKey] = true
				}
			}
			if v, ok := d.values[h]; ok {
				*v = NodeValue{}
			}
			for _, b := range d.baselines[h] {
				*b = Baseline{}
			}
		}
	case KeepData:
		// no-op
	case ReweighKeepData:
		factor := lastActionProb / (1 + lastActionProb)
		log.Debug().Str("public_state", key).Float64("factor", factor).
			Msg("oosdata: ReweighKeepData on gadget rebuild")
		seen := make(map[string]bool)
		for _, h := range histories {
			if v, ok := d.values[h]; ok {
				v.Numerator *= factor
			}
			if h.Kind() == efg.Player {
				infosetKey := d.InfosetKeyFor(h)
				if !seen[infosetKey] {
					if p := d.PolicyForKey(infosetKey); p != nil {
						p.ResetAverageStrategy()
					}
					seen[infosetKey] = true
				}
			}
		}
	}
}

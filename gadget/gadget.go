// Package gadget constructs the synthetic resolving subgame of C8: a
// chance node over a public state's topmost histories, followed by either a
// Follow-only (Unsafe) or Follow/Terminate (Safe) opponent node at each one
// (§4.5, §3 "Gadget").
//
// A gadget does not reuse efg.Node's Chance/Player/Terminal machinery: its
// chance node ranges over histories rather than domain.Outcome entries, and
// its "Terminate" branch has no underlying domain.State at all. It is
// grounded on original_source/algorithms/gadget.h's separate GadgetGame
// construction, kept distinct from the real EFG for the same reason: the
// real EFG is memoized node identity (§8 property 1), while a gadget is
// rebuilt fresh on every public-state entry.
package gadget

import (
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/policy"
)

// Variant selects whether the gadget's opponent node offers an escape
// (Terminate) or only Follow (§4.5).
type Variant int

const (
	Safe Variant = iota
	Unsafe
)

// Action indices at a Safe gadget opponent node (§4.6's regret formula
// addresses these positionally).
const (
	Follow    = 0
	Terminate = 1
)

// Group is the opponent node shared by every topmost history indistinguishable
// to the opponent, i.e. sharing an augmented infoset: perfect recall (§3 I5)
// requires they play identically, so they share one regret table rather than
// one per history.
type Group struct {
	Key        string
	Histories  []*efg.Node
	NumActions int
	Table      *policy.Policy
}

// Gadget is one constructed resolving subgame, rooted at the chance node
// over pubStateKey's topmost histories.
type Gadget struct {
	PublicStateKey string
	Opponent       ids.Player
	Variant        Variant
	PubStateReach  float64
	Summary        efgcache.PublicStateSummary
	Groups         []*Group

	groupOf map[*efg.Node]*Group
}

// Build constructs the gadget for the public state identified by key, from
// opponent's point of view: Unsafe iff every topmost history shares
// opponent's augmented infoset there (§4.5 variant selection), Safe
// otherwise. regretMatching/approxStabilizer size the per-group regret
// tables the same way cfrsolve/oos size infoset tables.
func Build(cache *efgcache.CFRData, key string, opponent ids.Player, regretMatching policy.RegretMatching, approxStabilizer float64) *Gadget {
	summary := cache.PublicStateSummary(key)

	byKey := make(map[string]*Group)
	order := make([]string, 0, 1)
	for _, h := range summary.TopmostHistories {
		groupKey := cache.AugmentedInfosetKeyFor(h, opponent)
		g, ok := byKey[groupKey]
		if !ok {
			g = &Group{Key: groupKey}
			byKey[groupKey] = g
			order = append(order, groupKey)
		}
		g.Histories = append(g.Histories, h)
	}

	variant := Safe
	numActions := 2
	if len(order) == 1 {
		variant = Unsafe
		numActions = 1
	}

	var pubStateReach float64
	for _, h := range summary.TopmostHistories {
		pubStateReach += summary.Reach[h]
	}

	groups := make([]*Group, 0, len(order))
	groupOf := make(map[*efg.Node]*Group, len(summary.TopmostHistories))
	for _, k := range order {
		g := byKey[k]
		g.NumActions = numActions
		g.Table = policy.New(numActions, regretMatching, approxStabilizer)
		groups = append(groups, g)
		for _, h := range g.Histories {
			groupOf[h] = g
		}
	}

	return &Gadget{
		PublicStateKey: key,
		Opponent:       opponent,
		Variant:        variant,
		PubStateReach:  pubStateReach,
		Summary:        summary,
		Groups:         groups,
		groupOf:        groupOf,
	}
}

// GroupFor returns the opponent-node group that topmost history h belongs
// to.
func (g *Gadget) GroupFor(h *efg.Node) *Group {
	return g.groupOf[h]
}

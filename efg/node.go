// Package efg unfolds a domain.Domain's factored-observation game (FOG) into
// an extensive-form game tree of Chance, Player, and Terminal nodes (§4.1,
// C4). Expansion is pure: Node.Perform(action) is a function of
// (node, action) alone (§8 property 1); callers that want memoization of
// repeated expansion should go through package efgcache.
package efg

import (
	"math"

	"github.com/pkg/errors"

	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/ids"
)

// Kind is the type of an EFG node (§3).
type Kind int

const (
	Chance Kind = iota
	Player
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Chance:
		return "chance"
	case Player:
		return "player"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// distributionTolerance is the 1e-6 slack allowed on OutcomeDistribution
// probabilities (§7 DistributionNormalization).
const distributionTolerance = 1e-6

// Node is a node of the unfolded extensive-form game (§3 "EFG Node").
//
// Fields are populated according to Kind:
//   - Chance: OutcomeDist is the cached distribution over its children.
//   - Player: ActingPlayer and RoundActions hold the round-in-progress state.
//   - Terminal: CumRewards are final and fixed.
type Node struct {
	parent         *Node
	incomingAction ids.ActionID // NoAction for the root
	kind           Kind

	stateDepth uint // §3 I4: rounds completed in the POSG
	efgDepth   uint // tree depth

	// state is the domain.State this node's round is played against. Set
	// for Player nodes and for chance-only padding Chance nodes; nil for
	// other Chance nodes and for Terminal nodes.
	state domain.State

	// outcomeDist is set only for Chance nodes.
	outcomeDist domain.OutcomeDistribution

	// actingPlayer/roundPlayers/roundActions are set only for Player nodes.
	actingPlayer ids.Player
	roundPlayers []ids.Player
	roundActions map[ids.Player]ids.ActionID

	// roundActors is the set of players who acted in the round that most
	// recently completed on the path to this node (possibly empty); used
	// to decide AOH in-place-update vs append at the next chance edge.
	roundActors []ids.Player

	cumRewards map[ids.Player]float64

	aoh       map[ids.Player]AOH
	pubObsSeq []ids.ObservationID

	newOutcome bool // true iff this node realizes a new Outcome vs. its parent
}

// Parent returns the node's parent, or nil at the root (§3).
func (n *Node) Parent() *Node { return n.parent }

// IncomingAction returns the action id that produced this node from its
// parent. The root has no incoming action (ids.NoAction).
func (n *Node) IncomingAction() ids.ActionID { return n.incomingAction }

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// StateDepth returns the number of realized POSG transitions on the path to
// this node (§3 I4).
func (n *Node) StateDepth() uint { return n.stateDepth }

// EFGDepth returns the tree depth of this node (root is 0).
func (n *Node) EFGDepth() uint { return n.efgDepth }

// ActingPlayer returns the player to move at a Player node. It must only be
// called when Kind() == Player.
func (n *Node) ActingPlayer() ids.Player { return n.actingPlayer }

// CumulativeRewards returns the per-player rewards accumulated along the
// path to this node (fixed and final at Terminal nodes, §3 I3).
func (n *Node) CumulativeRewards() map[ids.Player]float64 {
	return n.cumRewards
}

// Utility returns the cumulative reward for player p at this node. At a
// Terminal node this is the game's utility for p.
func (n *Node) Utility(p ids.Player) float64 {
	return n.cumRewards[p]
}

// AOH returns player p's action-observation history at this node (§3).
func (n *Node) AOH(p ids.Player) AOH {
	return n.aoh[p]
}

// AugmentedAOH returns player p's action-observation history at this node
// for the purpose of computing p's augmented infoset (§3 "Augmented
// Infoset"), which is defined for every player regardless of whether they
// are the acting player here. It reads the same underlying history as AOH;
// the two are split into separate methods so efgcache.AugmentedInfosetKeyFor
// can name its intent at the call site.
func (n *Node) AugmentedAOH(p ids.Player) AOH {
	return n.aoh[p]
}

// PublicObservationSequence returns the sequence identifying this node's
// public state (§3 "Public State").
func (n *Node) PublicObservationSequence() []ids.ObservationID {
	return n.pubObsSeq
}

// HasNewOutcome reports whether this node was created by realizing a new
// Outcome relative to its parent (i.e. stateDepth increased).
func (n *Node) HasNewOutcome() bool { return n.newOutcome }

// NumChildren returns the number of children of this node: one per outcome
// for Chance nodes (§3 I1), one per available action for Player nodes
// (§3 I2), zero for Terminal nodes (§3 I3).
func (n *Node) NumChildren() int {
	switch n.kind {
	case Chance:
		return len(n.outcomeDist)
	case Player:
		return n.state.CountAvailableActions(n.actingPlayer)
	default:
		return 0
	}
}

// AvailableActions returns this node's available action ids (§4.1). For a
// Chance node these are the indices into its cached OutcomeDistribution; for
// a Player node they come from the domain's State.
func (n *Node) AvailableActions() []ids.ActionID {
	switch n.kind {
	case Chance:
		actions := make([]ids.ActionID, len(n.outcomeDist))
		for i := range actions {
			actions[i] = ids.ActionID(i)
		}
		return actions
	case Player:
		return n.state.AvailableActions(n.actingPlayer)
	default:
		return nil
	}
}

// ChanceProbability returns the probability of the child reached via the
// given action id. It may only be called on a Chance node.
func (n *Node) ChanceProbability(a ids.ActionID) float64 {
	if n.kind != Chance {
		panic("efg: ChanceProbability called on non-chance node")
	}
	if !a.Valid(len(n.outcomeDist)) {
		panic(errors.Wrapf(ErrInvalidActionID, "chance node has %d outcomes, got %d", len(n.outcomeDist), a))
	}
	return n.outcomeDist[a].Probability
}

// ChanceProbabilities returns the full probability vector of a Chance node,
// in outcome order (§8 property 4: it must sum to 1±1e-6).
func (n *Node) ChanceProbabilities() []float64 {
	probs := make([]float64, len(n.outcomeDist))
	for i, e := range n.outcomeDist {
		probs[i] = e.Probability
	}
	return probs
}

// Perform returns the child reached by taking action a from this node. It is
// a pure function of (n, a): repeated calls with the same arguments return
// structurally identical (though not pointer-identical, absent a cache)
// nodes (§8 property 1; see package efgcache for memoized identity).
func (n *Node) Perform(dom domain.Domain, a ids.ActionID) *Node {
	switch n.kind {
	case Terminal:
		panic("efg: Perform called on terminal node")
	case Chance:
		return n.performChanceAction(dom, a)
	default:
		return n.performPlayerAction(dom, a)
	}
}

func (n *Node) performChanceAction(dom domain.Domain, a ids.ActionID) *Node {
	if !a.Valid(len(n.outcomeDist)) {
		panic(errors.Wrapf(ErrInvalidActionID, "chance node has %d outcomes, got %d", len(n.outcomeDist), a))
	}
	outcome := n.outcomeDist[a].Outcome
	return n.realize(dom, a, &outcome, n.roundActors, n.parent == nil)
}

func (n *Node) performPlayerAction(dom domain.Domain, a ids.ActionID) *Node {
	numActions := n.state.CountAvailableActions(n.actingPlayer)
	if !a.Valid(numActions) {
		panic(errors.Wrapf(ErrInvalidActionID, "player %d has %d actions, got %d", n.actingPlayer, numActions, a))
	}

	newRoundActions := make(map[ids.Player]ids.ActionID, len(n.roundActions)+1)
	for p, act := range n.roundActions {
		newRoundActions[p] = act
	}
	newRoundActions[n.actingPlayer] = a

	aoh := n.advancePlayerAOH(a, nil)
	remaining := n.roundPlayers[1:]

	if len(remaining) > 0 {
		child := &Node{
			parent:         n,
			incomingAction: a,
			kind:           Player,
			stateDepth:     n.stateDepth,
			efgDepth:       n.efgDepth + 1,
			state:          n.state,
			actingPlayer:   remaining[0],
			roundPlayers:   remaining,
			roundActions:   newRoundActions,
			roundActors:    n.roundActors,
			cumRewards:     n.cumRewards,
			aoh:            aoh,
			pubObsSeq:      n.pubObsSeq,
			newOutcome:     false,
		}
		child.appendPlayerMoveMarkers()
		return child
	}

	// Last round player: ask the state to resolve the round.
	dist := n.state.PerformPartialActions(newRoundActions)
	validateDistribution(dist)
	roundActors := append([]ids.Player(nil), n.roundPlayers...)

	if dist.Deterministic() {
		outcome := dist[0].Outcome
		return n.realizeWithAOH(dom, a, &outcome, aoh, roundActors, false)
	}

	return &Node{
		parent:         n,
		incomingAction: a,
		kind:           Chance,
		stateDepth:     n.stateDepth,
		efgDepth:       n.efgDepth + 1,
		outcomeDist:    dist,
		roundActors:    roundActors,
		cumRewards:     n.cumRewards,
		aoh:            aoh,
		pubObsSeq:      n.pubObsSeq,
		newOutcome:     false,
	}
}

// realize builds the child resulting from realizing a concrete outcome,
// whether from a Chance node's child selection or a root distribution
// (§4.1 steps 3-4). roundActors are the players who acted in the round that
// most recently completed (possibly empty); isRootChanceChild marks the
// special-case update rule for the root chance node's children.
func (n *Node) realize(dom domain.Domain, a ids.ActionID, outcome *domain.Outcome, roundActors []ids.Player, isRootChanceChild bool) *Node {
	aoh := n.advanceChanceAOH(outcome, roundActors, isRootChanceChild)
	return n.realizeWithAOH(dom, a, outcome, aoh, roundActors, isRootChanceChild)
}

func (n *Node) realizeWithAOH(dom domain.Domain, a ids.ActionID, outcome *domain.Outcome, aoh map[ids.Player]AOH, roundActors []ids.Player, isRootChanceChild bool) *Node {
	newStateDepth := n.stateDepth + 1
	cumRewards := addRewards(n.cumRewards, outcome.Rewards)
	pubObsSeq := appendPublicObservation(n.pubObsSeq, outcome.PublicObservation)

	st := outcome.State
	if st.IsTerminal() || newStateDepth == dom.MaxStateDepth() {
		child := &Node{
			parent:         n,
			incomingAction: a,
			kind:           Terminal,
			stateDepth:     newStateDepth,
			efgDepth:       n.efgDepth + 1,
			cumRewards:     cumRewards,
			aoh:            trimAll(aoh),
			pubObsSeq:      pubObsSeq,
			newOutcome:     true,
		}
		return child
	}

	players := st.Players()
	if len(players) == 0 {
		// Chance-only padding (§4.1): deliver observations even though no
		// one acts this round.
		dist := st.PerformPartialActions(map[ids.Player]ids.ActionID{})
		validateDistribution(dist)
		child := &Node{
			parent:         n,
			incomingAction: a,
			kind:           Chance,
			stateDepth:     newStateDepth,
			efgDepth:       n.efgDepth + 1,
			state:          st,
			outcomeDist:    dist,
			roundActors:    nil,
			cumRewards:     cumRewards,
			aoh:            trimAll(aoh),
			pubObsSeq:      pubObsSeq,
			newOutcome:     true,
		}
		return child
	}

	child := &Node{
		parent:         n,
		incomingAction: a,
		kind:           Player,
		stateDepth:     newStateDepth,
		efgDepth:       n.efgDepth + 1,
		state:          st,
		actingPlayer:   players[0],
		roundPlayers:   players,
		roundActions:   map[ids.Player]ids.ActionID{},
		cumRewards:     cumRewards,
		aoh:            trimAll(aoh),
		pubObsSeq:      pubObsSeq,
		newOutcome:     true,
	}
	child.appendPlayerMoveMarkers()
	return child
}

// advancePlayerAOH implements the "player node's child" AOH rule (§4.1): the
// acting player's last entry gets its action set; every other player gets a
// new (NoAction, NoObservation) entry appended.
func (n *Node) advancePlayerAOH(taken ids.ActionID, newObs map[ids.Player]ids.ObservationID) map[ids.Player]AOH {
	out := make(map[ids.Player]AOH, len(n.aoh))
	for p, h := range n.aoh {
		if p == n.actingPlayer {
			nh := h.withLastAction(taken)
			if newObs != nil {
				if o, ok := newObs[p]; ok {
					nh = nh.withLastObservation(o)
				}
			}
			out[p] = nh
		} else {
			nh := h.appended(AOHEntry{Action: ids.NoAction, Observation: ids.NoObservation})
			if newObs != nil {
				if o, ok := newObs[p]; ok {
					nh = nh.withLastObservation(o)
				}
			}
			out[p] = nh
		}
	}
	return out
}

// advanceChanceAOH implements the "chance node's child" AOH rule (§4.1): a
// player who acted in the round that just completed (or every player, if
// this is the root chance node's child) gets their last entry's observation
// updated in place; everyone else gets a new entry appended.
func (n *Node) advanceChanceAOH(outcome *domain.Outcome, roundActors []ids.Player, isRootChanceChild bool) map[ids.Player]AOH {
	acted := make(map[ids.Player]bool, len(roundActors))
	for _, p := range roundActors {
		acted[p] = true
	}

	out := make(map[ids.Player]AOH, len(n.aoh))
	for p, h := range n.aoh {
		obs := outcome.PrivateObservations[p]
		if acted[p] || isRootChanceChild {
			out[p] = h.withLastObservation(obs)
		} else {
			out[p] = h.appended(AOHEntry{Action: ids.NoAction, Observation: obs})
		}
	}
	return out
}

// appendPlayerMoveMarkers appends the player-move marker (§4.1) to the
// acting player's own AOH and, when this node is the root or its parent is
// not a Player node, to the public-observation sequence, once this node's
// kind and acting player are known.
func (n *Node) appendPlayerMoveMarkers() {
	if n.kind != Player {
		return
	}
	h, ok := n.aoh[n.actingPlayer]
	if !ok {
		h = RootAOH()
	}
	out := make(map[ids.Player]AOH, len(n.aoh))
	for p, v := range n.aoh {
		out[p] = v
	}
	out[n.actingPlayer] = h.appended(AOHEntry{Action: ids.NoAction, Observation: PlayerMoveMarker})
	n.aoh = out

	if n.parent == nil || n.parent.kind != Player {
		n.pubObsSeq = append(append([]ids.ObservationID(nil), n.pubObsSeq...), PlayerMoveMarker)
	}
}

func trimAll(aoh map[ids.Player]AOH) map[ids.Player]AOH {
	out := make(map[ids.Player]AOH, len(aoh))
	for p, h := range aoh {
		out[p] = h.trimmed()
	}
	return out
}

func appendPublicObservation(seq []ids.ObservationID, obs ids.ObservationID) []ids.ObservationID {
	if !obs.Valid() {
		return seq
	}
	out := make([]ids.ObservationID, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = obs
	return out
}

func addRewards(base map[ids.Player]float64, delta map[ids.Player]float64) map[ids.Player]float64 {
	out := make(map[ids.Player]float64, len(base)+len(delta))
	for p, v := range base {
		out[p] = v
	}
	for p, v := range delta {
		out[p] += v
	}
	return out
}

func validateDistribution(dist domain.OutcomeDistribution) {
	if len(dist) == 0 {
		panic(errors.Wrap(ErrDistributionNotNormalized, "empty outcome distribution"))
	}
	sum := 0.0
	for _, e := range dist {
		sum += e.Probability
	}
	if math.Abs(sum-1.0) > distributionTolerance {
		panic(errors.Wrapf(ErrDistributionNotNormalized, "sum=%v", sum))
	}
}

// Root builds the root node of dom's unfolded EFG (§4.1). If the root
// outcome distribution has a single entry, the chance root is skipped and
// the sole outcome becomes the root environment directly (state depth 1);
// otherwise an explicit chance root is created (state depth 0).
func Root(dom domain.Domain) *Node {
	dist := dom.RootOutcomeDistribution()
	validateDistribution(dist)

	players := dom.Players()
	rootAOH := make(map[ids.Player]AOH, len(players))
	for _, p := range players {
		rootAOH[p] = RootAOH()
	}
	rootRewards := make(map[ids.Player]float64, len(players))
	for _, p := range players {
		rootRewards[p] = 0
	}

	root := &Node{
		parent:     nil,
		kind:       Chance,
		stateDepth: 0,
		efgDepth:   0,
		aoh:        rootAOH,
		cumRewards: rootRewards,
		pubObsSeq:  nil,
		newOutcome: false,
	}

	if dist.Deterministic() {
		outcome := dist[0].Outcome
		return root.realize(dom, ids.NoAction, &outcome, nil, true)
	}

	root.outcomeDist = dist
	return root
}

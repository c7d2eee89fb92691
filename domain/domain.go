// Package domain specifies the external contract a concrete game must
// implement (§6.1). Concrete domains (Goofspiel, Poker, Liar's Dice, ...)
// are out of scope for this module and are treated purely as collaborators
// satisfying these interfaces.
package domain

import "github.com/rozlivek/fogcfr/ids"

// Outcome is the tuple (state, private observations per player, public
// observation, rewards per player) produced by a state transition (§3).
type Outcome struct {
	State               State
	PrivateObservations map[ids.Player]ids.ObservationID
	PublicObservation   ids.ObservationID
	Rewards             map[ids.Player]float64
}

// OutcomeEntry pairs an Outcome with its probability of being realized.
type OutcomeEntry struct {
	Outcome     Outcome
	Probability float64
}

// OutcomeDistribution is a non-empty sequence of (outcome, probability)
// pairs whose probabilities sum to 1 within 1e-6 (§3, §7
// DistributionNormalization). Order is stable and significant: chance-node
// children are created one per entry, in this order (§4.1 I1).
type OutcomeDistribution []OutcomeEntry

// Deterministic reports whether this distribution has exactly one outcome,
// i.e. describes a deterministic transition.
func (d OutcomeDistribution) Deterministic() bool {
	return len(d) == 1
}

// Domain supplies the game-level facts needed to unfold a FOG into an EFG
// and to run CFR/OOS/MCCR against it (§6.1).
type Domain interface {
	// RootOutcomeDistribution returns the distribution over initial states.
	RootOutcomeDistribution() OutcomeDistribution
	// Players returns the full player set of the game.
	Players() []ids.Player
	// NumPlayers must be 2 for CFR/OOS/MCCR (§1, §6.1).
	NumPlayers() uint
	// IsZeroSum reports whether terminal utilities sum to zero. No code in
	// this module reads it; terminal utilities are not checked against it
	// (§7 ZeroSumViolation).
	IsZeroSum() bool
	// MaxUtility bounds the absolute value of any single-player terminal
	// utility. No algorithm in this module reads it.
	MaxUtility() float64
	// MaxStateDepth bounds the number of POSG rounds in any play of the
	// game (§3 I4, §4.1 step 3).
	MaxStateDepth() uint
}

// State is the per-round transition system a domain exposes (§3, §6.1).
// A State with no acting players represents pure chance padding.
type State interface {
	// Players returns the players acting this round (empty means a chance
	// / no-acting-player round, §4.1 "chance-only padding").
	Players() []ids.Player
	// AvailableActions returns the actions available to p this round.
	// Action ids must equal their position in the returned slice.
	AvailableActions(p ids.Player) []ids.ActionID
	// CountAvailableActions is a cheaper equivalent of
	// len(AvailableActions(p)) for callers that only need the count.
	CountAvailableActions(p ids.Player) int
	// PerformPartialActions transitions the state once every acting
	// player's action for this round has been collected, in Players()
	// order. roundActions maps each acting player to its chosen action.
	PerformPartialActions(roundActions map[ids.Player]ids.ActionID) OutcomeDistribution
	// IsTerminal reports whether this state ends the game.
	IsTerminal() bool
}

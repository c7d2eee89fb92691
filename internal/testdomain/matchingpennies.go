// Package testdomain provides small, fully-specified domain.Domain
// implementations used by this module's own tests (§8's testable
// properties and end-to-end scenarios S1-S6) and by the cmd/playmatch
// example driver. None of these domains is part
// of the public API surface.
//
// MatchingPennies is grounded on
// original_source/domains/matching_pennies.h's SimultaneousMatchingPenniesDomain:
// a single simultaneous-move round, zero-sum, where player 0 wins by
// matching player 1's coin face.
package testdomain

import "github.com/rozlivek/fogcfr/ids"

const (
	Heads ids.ActionID = 0
	Tails ids.ActionID = 1
)

// matchResult observation ids, revealed publicly once both coins are shown.
const (
	obsMatch    ids.ObservationID = 0
	obsMismatch ids.ObservationID = 1
)

// MatchingPennies is the two-action, one-round simultaneous game: player 0
// wins 1 if both coins show the same face, loses 1 otherwise.
type MatchingPennies struct{}

func (MatchingPennies) RootOutcomeDistribution() OutcomeDist {
	return singleOutcome(Outcome{
		State:               &pennyState{},
		PrivateObservations: noPrivateObs,
		PublicObservation:   ids.NoObservation,
		Rewards:             zeroRewards,
	})
}

func (MatchingPennies) Players() []ids.Player { return []ids.Player{0, 1} }
func (MatchingPennies) NumPlayers() uint      { return 2 }
func (MatchingPennies) IsZeroSum() bool       { return true }
func (MatchingPennies) MaxUtility() float64   { return 1 }
func (MatchingPennies) MaxStateDepth() uint   { return 2 }

// pennyState is the single decision round; performing both players' actions
// resolves the game.
type pennyState struct{}

func (*pennyState) Players() []ids.Player { return []ids.Player{0, 1} }

func (*pennyState) AvailableActions(ids.Player) []ids.ActionID {
	return []ids.ActionID{Heads, Tails}
}

func (*pennyState) CountAvailableActions(ids.Player) int { return 2 }

func (*pennyState) PerformPartialActions(roundActions map[ids.Player]ids.ActionID) OutcomeDist {
	a0, a1 := roundActions[0], roundActions[1]
	var r0 float64
	var obs ids.ObservationID
	if a0 == a1 {
		r0, obs = 1, obsMatch
	} else {
		r0, obs = -1, obsMismatch
	}
	return singleOutcome(Outcome{
		State:               terminalState{},
		PrivateObservations: noPrivateObs,
		PublicObservation:   obs,
		Rewards:             map[ids.Player]float64{0: r0, 1: -r0},
	})
}

func (*pennyState) IsTerminal() bool { return false }

package testdomain

import (
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/ids"
)

// OutcomeDist and Outcome alias the domain package's types so the fixture
// files of this package don't need to repeat the import.
type (
	OutcomeDist = domain.OutcomeDistribution
	Outcome     = domain.Outcome
)

var zeroRewards = map[ids.Player]float64{0: 0, 1: 0}

// noPrivateObs marks a transition that carries no private information,
// distinct from an absent (zero-valued) map entry which would otherwise be
// read back as observation id 0.
var noPrivateObs = map[ids.Player]ids.ObservationID{0: ids.NoObservation, 1: ids.NoObservation}

// singleOutcome wraps a deterministic Outcome into a one-entry distribution.
func singleOutcome(o Outcome) OutcomeDist {
	return OutcomeDist{{Outcome: o, Probability: 1}}
}

// terminalState is the shared "no one acts, game over" state every fixture
// transitions into at its last round.
type terminalState struct{}

func (terminalState) Players() []ids.Player                      { return nil }
func (terminalState) AvailableActions(ids.Player) []ids.ActionID { return nil }
func (terminalState) CountAvailableActions(ids.Player) int       { return 0 }
func (terminalState) PerformPartialActions(map[ids.Player]ids.ActionID) OutcomeDist {
	panic("testdomain: PerformPartialActions called on terminal state")
}
func (terminalState) IsTerminal() bool { return true }

// PrivateDeal is a minimal single-card betting game in the spirit of Kuhn
// poker (cf. the pack's ehrlich-b-poker Kuhn-tree fixtures): player 0 is
// privately dealt a weak or strong card, may check or bet, and player 1 may
// fold or call a bet without ever observing the card. It exists only to
// exercise the Safe gadget variant (§4.5): the public state right after the
// deal has two topmost histories (one per card) that are indistinguishable
// to player 1 but distinguishable to player 0, the canonical shape a safe
// resolving gadget is built for.
package testdomain

import "github.com/rozlivek/fogcfr/ids"

const (
	CardWeak   ids.ActionID = 0
	CardStrong ids.ActionID = 1

	Check ids.ActionID = 0
	Bet   ids.ActionID = 1

	Fold ids.ActionID = 0
	Call ids.ActionID = 1
)

const (
	obsWeak   ids.ObservationID = 0
	obsStrong ids.ObservationID = 1

	obsChecked ids.ObservationID = 2
	obsBet     ids.ObservationID = 3
)

// PrivateDeal is the two-round, one-private-card betting game described
// above.
type PrivateDeal struct{}

func (PrivateDeal) RootOutcomeDistribution() OutcomeDist {
	return OutcomeDist{
		{
			Probability: 0.5,
			Outcome: Outcome{
				State:               &betState{card: CardWeak},
				PrivateObservations: map[ids.Player]ids.ObservationID{0: obsWeak, 1: ids.NoObservation},
				PublicObservation:   ids.NoObservation,
			},
		},
		{
			Probability: 0.5,
			Outcome: Outcome{
				State:               &betState{card: CardStrong},
				PrivateObservations: map[ids.Player]ids.ObservationID{0: obsStrong, 1: ids.NoObservation},
				PublicObservation:   ids.NoObservation,
			},
		},
	}
}

func (PrivateDeal) Players() []ids.Player { return []ids.Player{0, 1} }
func (PrivateDeal) NumPlayers() uint      { return 2 }
func (PrivateDeal) IsZeroSum() bool       { return true }
func (PrivateDeal) MaxUtility() float64   { return 2 }
func (PrivateDeal) MaxStateDepth() uint   { return 3 }

// betState is player 0's check-or-bet decision, made with full knowledge of
// card but no public signal revealed yet.
type betState struct {
	card ids.ActionID
}

func (*betState) Players() []ids.Player                      { return []ids.Player{0} }
func (*betState) AvailableActions(ids.Player) []ids.ActionID { return []ids.ActionID{Check, Bet} }
func (*betState) CountAvailableActions(ids.Player) int       { return 2 }
func (*betState) IsTerminal() bool                           { return false }

func (s *betState) PerformPartialActions(roundActions map[ids.Player]ids.ActionID) OutcomeDist {
	a := roundActions[0]
	if a == Check {
		r0 := -1.0
		if s.card == CardStrong {
			r0 = 1
		}
		return singleOutcome(Outcome{
			State:               terminalState{},
			PrivateObservations: noPrivateObs,
			PublicObservation:   obsChecked,
			Rewards:             map[ids.Player]float64{0: r0, 1: -r0},
		})
	}
	return singleOutcome(Outcome{
		State:               &respondState{card: s.card},
		PrivateObservations: noPrivateObs,
		PublicObservation:   obsBet,
	})
}

// respondState is player 1's fold-or-call decision after a bet, still
// without ever learning player 0's card.
type respondState struct {
	card ids.ActionID
}

func (*respondState) Players() []ids.Player                      { return []ids.Player{1} }
func (*respondState) AvailableActions(ids.Player) []ids.ActionID { return []ids.ActionID{Fold, Call} }
func (*respondState) CountAvailableActions(ids.Player) int       { return 2 }
func (*respondState) IsTerminal() bool                           { return false }

func (s *respondState) PerformPartialActions(roundActions map[ids.Player]ids.ActionID) OutcomeDist {
	a := roundActions[1]
	var r0 float64
	if a == Fold {
		r0 = 1
	} else if s.card == CardStrong {
		r0 = 2
	} else {
		r0 = -2
	}
	return singleOutcome(Outcome{
		State:               terminalState{},
		PrivateObservations: noPrivateObs,
		PublicObservation:   ids.NoObservation,
		Rewards:             map[ids.Player]float64{0: r0, 1: -r0},
	})
}

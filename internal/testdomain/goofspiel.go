// Goofspiel is grounded on original_source's Goofspiel domain family
// (domains/goofspiel.h, not copied into this pack's source filter but
// referenced by the IIGS naming used throughout spec §8): two players each
// hold a hand of cards 1..N and simultaneously bid a card, face down, for
// the next prize off a fixed descending N..1 prize deck. The higher bid
// wins the prize; a tie wins neither player anything. Only the round's
// outcome (win/lose/tie) is revealed publicly, not the cards bid — this is
// the "imperfect information Goofspiel" (IIGS) variant, since the fixed
// (non-shuffled) prize order is what makes the deterministic scenarios of
// §8 (S2, S5) reproducible.
package testdomain

import (
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/ids"
)

const (
	obsPlayer0Wins ids.ObservationID = 10
	obsPlayer1Wins ids.ObservationID = 11
	obsTie         ids.ObservationID = 12
)

// Goofspiel is IIGS(n): n cards per player, fixed descending prize order.
type Goofspiel struct {
	N int
}

func (g Goofspiel) RootOutcomeDistribution() OutcomeDist {
	hand := make([]int, g.N)
	prizes := make([]int, g.N)
	for i := 0; i < g.N; i++ {
		hand[i] = i + 1
		prizes[i] = g.N - i
	}
	return singleOutcome(Outcome{
		State: &goofspielState{
			n:      g.N,
			hands:  [2][]int{append([]int(nil), hand...), append([]int(nil), hand...)},
			prizes: prizes,
		},
		PrivateObservations: noPrivateObs,
		PublicObservation:   ids.NoObservation,
		Rewards:             zeroRewards,
	})
}

func (g Goofspiel) Players() []ids.Player { return []ids.Player{0, 1} }
func (Goofspiel) NumPlayers() uint        { return 2 }
func (Goofspiel) IsZeroSum() bool         { return true }
func (g Goofspiel) MaxUtility() float64   { return float64(g.N * (g.N + 1) / 2) }
func (g Goofspiel) MaxStateDepth() uint   { return uint(g.N) + 1 }

// goofspielState holds each player's remaining hand (ascending) and the
// remaining prize sequence (highest first); action ids index into a
// player's own hand.
type goofspielState struct {
	n      int
	hands  [2][]int
	prizes []int
}

func (s *goofspielState) Players() []ids.Player { return []ids.Player{0, 1} }

func (s *goofspielState) AvailableActions(p ids.Player) []ids.ActionID {
	out := make([]ids.ActionID, len(s.hands[p]))
	for i := range out {
		out[i] = ids.ActionID(i)
	}
	return out
}

func (s *goofspielState) CountAvailableActions(p ids.Player) int {
	return len(s.hands[p])
}

func (s *goofspielState) PerformPartialActions(roundActions map[ids.Player]ids.ActionID) OutcomeDist {
	card0 := s.hands[0][roundActions[0]]
	card1 := s.hands[1][roundActions[1]]
	prize := s.prizes[0]

	newHands := [2][]int{
		removeAt(s.hands[0], int(roundActions[0])),
		removeAt(s.hands[1], int(roundActions[1])),
	}
	newPrizes := append([]int(nil), s.prizes[1:]...)

	var r0 float64
	var obs ids.ObservationID
	switch {
	case card0 > card1:
		r0, obs = float64(prize), obsPlayer0Wins
	case card1 > card0:
		r0, obs = -float64(prize), obsPlayer1Wins
	default:
		r0, obs = 0, obsTie
	}

	var next domain.State
	if len(newHands[0]) == 0 {
		next = terminalState{}
	} else {
		next = &goofspielState{n: s.n, hands: newHands, prizes: newPrizes}
	}

	return singleOutcome(Outcome{
		State:               next,
		PrivateObservations: noPrivateObs,
		PublicObservation:   obs,
		Rewards:             map[ids.Player]float64{0: r0, 1: -r0},
	})
}

func (s *goofspielState) IsTerminal() bool { return false }

func removeAt(hand []int, idx int) []int {
	out := make([]int, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	out = append(out, hand[idx+1:]...)
	return out
}

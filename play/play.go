// Package play implements the game-playing driver of C10: budgeted
// iteration (play_for_budget) and a full match runner (play_match) that
// walks the true EFG, delegating to any GamePlayingAlgorithm at player
// nodes (§4.7).
package play

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/sampling"
	"github.com/rozlivek/fogcfr/oos"
)

// BudgetType selects how PlayForBudget measures its budget (§6.3
// budget_type).
type BudgetType int

const (
	Iterations BudgetType = iota
	Microseconds
)

// budgetOvershootThreshold is the §7 BudgetOvershoot logging threshold.
const budgetOvershootThreshold = 100 * time.Microsecond

// Algorithm is the GamePlayingAlgorithm contract of §6.2, satisfied by both
// *oos.Algorithm and *mccr.Resolver. EnterPublicState is the §4.5 CR
// scheduler's hook: Match calls it on every public-state transition so a
// continually-resolving algorithm can rebuild its gadget; plain OOS has
// nothing to rebuild and implements it as a no-op.
type Algorithm interface {
	RunPlayIteration(current *oos.InfosetRef) oos.PlayControl
	GetPlayDistribution(ref oos.InfosetRef) ([]float64, bool)
	EnterPublicState(publicStateKey string, lastActionProb float64)
}

// ForBudget loops alg.RunPlayIteration(infoset) until either the budget is
// exhausted or the algorithm stops returning Continue, and reports whether
// the algorithm is still willing to continue (§4.7).
func ForBudget(alg Algorithm, infoset *oos.InfosetRef, budget int, budgetType BudgetType) bool {
	if budgetType == Iterations {
		for i := 0; i < budget; i++ {
			if alg.RunPlayIteration(infoset) != oos.Continue {
				return false
			}
		}
		return true
	}

	deadline := time.Duration(budget) * time.Microsecond
	start := time.Now()
	for time.Since(start) < deadline {
		iterStart := time.Now()
		ctrl := alg.RunPlayIteration(infoset)
		if elapsed := time.Since(iterStart); elapsed > budgetOvershootThreshold {
			log.Warn().Dur("elapsed", elapsed).Msg("play: run_play_iteration exceeded the 100us overshoot threshold")
		}
		if ctrl != oos.Continue {
			return false
		}
	}
	return true
}

// Match walks the true EFG of dom from the root, sampling chance outcomes
// with the domain distribution and, at player nodes, budgeting the acting
// algorithm before drawing an action from its play distribution. If an
// algorithm gives up or returns no distribution, play falls back to uniform
// random for the remainder of that node (§6.4, §4.7).
//
// Both algorithms' EnterPublicState is called once up front for the root's
// public state and again every time the walk crosses into a new one (§4.5),
// passing the probability of whichever action the walk just sampled as
// lastActionProb. This is what lets an *mccr.Resolver actually continually
// resolve across a driven match, rather than only ever running preplay.
func Match(dom domain.Domain, algs [2]Algorithm, preplayBudget, moveBudget [2]int, budgetType BudgetType, seed int64) map[ids.Player]float64 {
	rng := sampling.NewRNG(seed)

	for p := range algs {
		ForBudget(algs[p], nil, preplayBudget[p], budgetType)
	}

	cache := efgcache.NewPublicStateCache(dom)
	n := cache.RootNode()

	pubKey := cache.PublicStateKeyFor(n)
	lastActionProb := 1.0
	for p := range algs {
		algs[p].EnterPublicState(pubKey, lastActionProb)
	}

	for n.Kind() != efg.Terminal {
		if n.Kind() == efg.Chance {
			idx, _ := sampling.Distribution(rng, n.ChanceProbabilities())
			n = cache.GetChild(n, ids.ActionID(idx))
		} else {
			p := n.ActingPlayer()
			ref := oos.InfosetRef{Player: p, AOH: n.AOH(p)}
			stillPlaying := ForBudget(algs[p], &ref, moveBudget[p], budgetType)

			var dist []float64
			if d, ok := algs[p].GetPlayDistribution(ref); stillPlaying && ok && d != nil {
				dist = d
			} else {
				dist = uniform(n.NumChildren())
			}

			idx, prob := sampling.Distribution(rng, dist)
			lastActionProb = prob
			n = cache.GetChild(n, n.AvailableActions()[idx])
		}

		if key := cache.PublicStateKeyFor(n); key != pubKey {
			pubKey = key
			for p := range algs {
				algs[p].EnterPublicState(pubKey, lastActionProb)
			}
		}
	}
	return n.CumulativeRewards()
}

func uniform(n int) []float64 {
	p := make([]float64, n)
	u := 1.0 / float64(n)
	for i := range p {
		p[i] = u
	}
	return p
}

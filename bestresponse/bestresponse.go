// Package bestresponse computes the best-response value of a fixed average
// strategy profile by full-tree recursion (supplemented feature: §8's
// properties reference "best-response value" and "exploitability" for S1-S3
// but spec.md's distillation never names the routine that computes them;
// grounded on original_source/algorithms/bestResponse.cpp).
package bestresponse

import (
	"math"

	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
)

// Value returns the value to player of playing a best response to every
// other player's average strategy, evaluated from the cache's root.
func Value(cache *efgcache.CFRData, player ids.Player) float64 {
	return recurse(cache, cache.RootNode(), player)
}

func recurse(cache *efgcache.CFRData, n *efg.Node, player ids.Player) float64 {
	switch n.Kind() {
	case efg.Terminal:
		return n.Utility(player)
	case efg.Chance:
		var ev float64
		for _, a := range n.AvailableActions() {
			p := n.ChanceProbability(a)
			if p == 0 {
				continue
			}
			ev += p * recurse(cache, cache.GetChild(n, a), player)
		}
		return ev
	default:
		if n.ActingPlayer() == player {
			best := math.Inf(-1)
			for _, a := range n.AvailableActions() {
				v := recurse(cache, cache.GetChild(n, a), player)
				if v > best {
					best = v
				}
			}
			return best
		}
		strat := cache.StrategyFor(n, true)
		actions := n.AvailableActions()
		var ev float64
		for i, a := range actions {
			p := 1.0 / float64(len(actions))
			if strat != nil {
				p = strat[i]
			}
			ev += p * recurse(cache, cache.GetChild(n, a), player)
		}
		return ev
	}
}

// Exploitability is the average of both players' best-response gains
// against the current average strategy, i.e. NashConv/2 for a two-player
// zero-sum game: a value of 0 indicates a Nash equilibrium (§8 properties
// 5, S1-S3).
func Exploitability(cache *efgcache.CFRData) float64 {
	return (Value(cache, 0) + Value(cache, 1)) / 2
}

package efgcache

import (
	"github.com/pkg/errors"

	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
)

// InfosetCache extends EFGCache with infoset <-> history maps (§4.2).
type InfosetCache struct {
	*EFGCache

	infosetToHistories map[string][]*efg.Node
	historyToInfoset   map[*efg.Node]string
	infosetNumActions  map[string]int
}

// NewInfosetCache constructs an empty InfosetCache for dom.
func NewInfosetCache(dom domain.Domain) *InfosetCache {
	c := &InfosetCache{
		EFGCache:           NewEFGCache(dom),
		infosetToHistories: make(map[string][]*efg.Node),
		historyToInfoset:   make(map[*efg.Node]string),
		infosetNumActions:  make(map[string]int),
	}
	c.AddCallback(c.registerInfoset)
	return c
}

// registerInfoset records n under its acting player's infoset, if n is a
// Player node, and checks the perfect-recall invariant (§7
// InconsistentInfoset, §8 property 2): every history sharing an infoset must
// offer the same number of actions.
func (c *InfosetCache) registerInfoset(n *efg.Node) {
	if n.Kind() != efg.Player {
		return
	}
	key := InfosetKey(n.ActingPlayer(), n.AOH(n.ActingPlayer()))
	numActions := n.NumChildren()

	if existing, ok := c.infosetNumActions[key]; ok && existing != numActions {
		panic(errors.Wrapf(efg.ErrInconsistentInfoset,
			"infoset %q: existing action count %d, new history has %d", key, existing, numActions))
	}
	c.infosetNumActions[key] = numActions

	c.infosetToHistories[key] = append(c.infosetToHistories[key], n)
	c.historyToInfoset[n] = key
}

// InfosetKeyFor returns the infoset key of Player node n.
func (c *InfosetCache) InfosetKeyFor(n *efg.Node) string {
	if key, ok := c.historyToInfoset[n]; ok {
		return key
	}
	return InfosetKey(n.ActingPlayer(), n.AOH(n.ActingPlayer()))
}

// AugmentedInfosetKeyFor returns the (augmented) infoset key of player p at
// node n, whether or not p is the acting player there (§3).
func (c *InfosetCache) AugmentedInfosetKeyFor(n *efg.Node, p ids.Player) string {
	return InfosetKey(p, n.AugmentedAOH(p))
}

// HistoriesInInfoset returns every history registered under the given
// infoset key, in discovery order.
func (c *InfosetCache) HistoriesInInfoset(key string) []*efg.Node {
	return c.infosetToHistories[key]
}

// NumActionsInInfoset returns the number of actions available at any history
// of the given infoset (well-defined by §3 I5 / §8 property 2).
func (c *InfosetCache) NumActionsInInfoset(key string) (int, bool) {
	n, ok := c.infosetNumActions[key]
	return n, ok
}

// HasInfoset reports whether key has been discovered yet.
func (c *InfosetCache) HasInfoset(key string) bool {
	_, ok := c.infosetToHistories[key]
	return ok
}

// InfosetKeys returns every infoset key discovered so far, in no particular
// order. Used by ldbstore to enumerate what to persist.
func (c *InfosetCache) InfosetKeys() []string {
	out := make([]string, 0, len(c.infosetToHistories))
	for key := range c.infosetToHistories {
		out = append(out, key)
	}
	return out
}

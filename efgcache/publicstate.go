package efgcache

import (
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
)

// PublicStateCache extends InfosetCache with public-state <-> history maps
// (§4.2, §3 "Public State").
type PublicStateCache struct {
	*InfosetCache

	pubStateToHistories map[string][]*efg.Node
	historyToPubState   map[*efg.Node]string
}

// NewPublicStateCache constructs an empty PublicStateCache for dom.
func NewPublicStateCache(dom domain.Domain) *PublicStateCache {
	c := &PublicStateCache{
		InfosetCache:        NewInfosetCache(dom),
		pubStateToHistories: make(map[string][]*efg.Node),
		historyToPubState:   make(map[*efg.Node]string),
	}
	c.AddCallback(c.registerPublicState)
	return c
}

func (c *PublicStateCache) registerPublicState(n *efg.Node) {
	key := PublicStateKey(n.StateDepth(), n.PublicObservationSequence())
	c.pubStateToHistories[key] = append(c.pubStateToHistories[key], n)
	c.historyToPubState[n] = key
}

// PublicStateKeyFor returns the public-state key of n.
func (c *PublicStateCache) PublicStateKeyFor(n *efg.Node) string {
	if key, ok := c.historyToPubState[n]; ok {
		return key
	}
	return PublicStateKey(n.StateDepth(), n.PublicObservationSequence())
}

// HistoriesInPublicState returns every history discovered so far that
// belongs to the given public state.
func (c *PublicStateCache) HistoriesInPublicState(key string) []*efg.Node {
	return c.pubStateToHistories[key]
}

// HasPublicState reports whether key has been discovered yet.
func (c *PublicStateCache) HasPublicState(key string) bool {
	_, ok := c.pubStateToHistories[key]
	return ok
}

// TopmostHistories returns the histories of the given public state that
// first enter it, i.e. whose parent (if any) belongs to a different public
// state (§3 "Topmost histories"). These seed gadget construction (§4.5).
func (c *PublicStateCache) TopmostHistories(key string) []*efg.Node {
	histories := c.pubStateToHistories[key]
	out := make([]*efg.Node, 0, len(histories))
	for _, h := range histories {
		parent := h.Parent()
		if parent == nil {
			out = append(out, h)
			continue
		}
		parentKey, ok := c.historyToPubState[parent]
		if !ok || parentKey != key {
			out = append(out, h)
		}
	}
	return out
}

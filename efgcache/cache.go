// Package efgcache implements the memoization layer of C5: EFGCache
// memoizes node expansion, InfosetCache additionally maps infosets to
// histories, PublicStateCache further maps public states, CFRData overlays
// per-infoset regret/average-strategy tables, and OOSData adds per-history
// baseline and node-value estimators.
//
// The cache is thread-unsafe by design (§5): algorithms run single-threaded
// against one cache instance.
package efgcache

import (
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
)

type childKey struct {
	parent *efg.Node
	action ids.ActionID
}

// EFGCache memoizes efg.Node.Perform so repeated expansion of the same
// (node, action) pair returns the identical *efg.Node handle (§8 property
// 1, §4.2).
type EFGCache struct {
	Domain domain.Domain

	root     *efg.Node
	rootOnce bool
	children map[childKey]*efg.Node

	callbacks []func(*efg.Node)
}

// NewEFGCache constructs an empty cache for dom.
func NewEFGCache(dom domain.Domain) *EFGCache {
	return &EFGCache{
		Domain:   dom,
		children: make(map[childKey]*efg.Node),
	}
}

// AddCallback registers a function invoked exactly once, the first time a
// node is expanded into the cache (used to allocate CFR/baseline slots,
// §4.2).
func (c *EFGCache) AddCallback(cb func(*efg.Node)) {
	c.callbacks = append(c.callbacks, cb)
}

// RootNode returns the cache's canonical root node, creating it on first
// use.
func (c *EFGCache) RootNode() *efg.Node {
	if !c.rootOnce {
		c.root = efg.Root(c.Domain)
		c.rootOnce = true
		c.notify(c.root)
	}
	return c.root
}

// GetChild returns the memoized child of n reached via action a, expanding
// and caching it on first access.
func (c *EFGCache) GetChild(n *efg.Node, a ids.ActionID) *efg.Node {
	key := childKey{parent: n, action: a}
	if child, ok := c.children[key]; ok {
		return child
	}
	child := n.Perform(c.Domain, a)
	c.children[key] = child
	c.notify(child)
	return child
}

// GetChildren returns every memoized child of n, expanding all of them.
func (c *EFGCache) GetChildren(n *efg.Node) []*efg.Node {
	actions := n.AvailableActions()
	out := make([]*efg.Node, len(actions))
	for i, a := range actions {
		out[i] = c.GetChild(n, a)
	}
	return out
}

// NumExpanded returns the number of distinct (node, action) edges expanded
// so far; useful for tests and diagnostics.
func (c *EFGCache) NumExpanded() int {
	return len(c.children)
}

func (c *EFGCache) notify(n *efg.Node) {
	for _, cb := range c.callbacks {
		cb(n)
	}
}

package efgcache

import "github.com/rozlivek/fogcfr/efg"

// BuildTree performs a DFS expansion of the cache's game tree up to
// maxStateDepth, invoking every registered callback (via the normal
// GetChild/RootNode expansion path) as each node is first seen (§4.2).
// Calling BuildTree twice produces an identical cache (§8 property 8,
// "idempotent rebuild"), since expansion is memoized.
func (c *EFGCache) BuildTree(maxStateDepth uint) {
	root := c.RootNode()
	c.dfs(root, maxStateDepth)
}

func (c *EFGCache) dfs(n *efg.Node, maxStateDepth uint) {
	if n.Kind() == efg.Terminal {
		return
	}
	if n.StateDepth() > maxStateDepth {
		return
	}
	for _, child := range c.GetChildren(n) {
		c.dfs(child, maxStateDepth)
	}
}

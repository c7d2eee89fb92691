package bestresponse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rozlivek/fogcfr/bestresponse"
	"github.com/rozlivek/fogcfr/cfrsolve"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
)

// TestExploitability_MatchingPenniesConvergesToZero exercises S1 from the
// best-response side: as CFR converges to the unique equilibrium,
// exploitability must approach zero.
func TestExploitability_MatchingPenniesConvergesToZero(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	solver := cfrsolve.New(cache)

	early := bestresponse.Exploitability(cache)
	for i := 0; i < 2000; i++ {
		solver.Run()
	}
	late := bestresponse.Exploitability(cache)

	assert.Less(t, late, early+1e-9)
	assert.InDelta(t, 0, late, 0.05)
}

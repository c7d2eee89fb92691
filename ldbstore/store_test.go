package ldbstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozlivek/fogcfr/cfrsolve"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/ids"
	"github.com/rozlivek/fogcfr/internal/testdomain"
	"github.com/rozlivek/fogcfr/ldbstore"
)

// TestCFRStore_RoundTripsDiscoveredTables runs a few CFR iterations, saves
// every discovered infoset table, reopens a fresh CFRData loaded from the
// store, and checks the restored average strategy matches what was saved.
func TestCFRStore_RoundTripsDiscoveredTables(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	solver := cfrsolve.New(cache)

	for i := 0; i < 50; i++ {
		solver.Run()
	}

	keys := cache.InfosetKeys()
	require.NotEmpty(t, keys)

	wantByKey := make(map[string][]float64, len(keys))
	for _, key := range keys {
		wantByKey[key] = cache.PolicyForKey(key).AverageStrategy()
	}

	store, err := ldbstore.OpenMem()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(cache, keys))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(keys))

	restored := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)
	restored.LoadTables(loaded)

	for _, key := range keys {
		got := restored.PolicyForKey(key).AverageStrategy()
		want := wantByKey[key]
		require.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-9)
		}
	}
}

// TestCFRStore_SaveSkipsUndiscoveredKeys exercises the defensive nil check:
// asking to save a key the cache never visited must not error.
func TestCFRStore_SaveSkipsUndiscoveredKeys(t *testing.T) {
	dom := testdomain.MatchingPennies{}
	cache := efgcache.NewCFRData(dom, efgcache.HistoriesUpdating)

	store, err := ldbstore.OpenMem()
	require.NoError(t, err)
	defer store.Close()

	bogusKey := efgcache.InfosetKey(ids.Player(0), nil)
	require.NoError(t, store.Save(cache, []string{bogusKey}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

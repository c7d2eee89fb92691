// Package ldbstore persists per-infoset CFR tables to disk so a long-running
// solve can resume across process restarts (DOMAIN STACK "Persistence").
//
// It is grounded on the teacher package's ReservoirBuffer (buffer.go, not
// carried forward): the same goleveldb-backed, gob-encoded-record shape,
// generalized from a deepcfr.Sample reservoir to per-infoset policy.Policy
// rows keyed by infoset string.
package ldbstore

import (
	"bytes"
	"encoding/gob"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/policy"
)

func init() {
	gob.Register(policyRecord{})
}

// policyRecord is the on-disk encoding of a single infoset's policy.Policy.
// Policy keeps its accumulators unexported (internal/policy/policy.go), so
// persistence round-trips through its Regrets/StrategySum accessors and
// policy.Restore instead of gob-encoding the struct directly.
type policyRecord struct {
	NumActions int
	Mode       policy.RegretMatching
	ApproxStab float64
	Regrets    []float64
	StratSum   []float64
}

// CFRStore persists a CFRData's per-infoset policy tables in a LevelDB
// database, one record per infoset key.
type CFRStore struct {
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// Open opens (creating if absent) a CFRStore backed by a LevelDB database at
// path.
func Open(path string, opts *opt.Options) (*CFRStore, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}
	return &CFRStore{db: db}, nil
}

// OpenMem opens an in-memory CFRStore backed by goleveldb's storage.MemStorage,
// used by this package's own tests to exercise Save/Load without touching
// disk.
func OpenMem() (*CFRStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &CFRStore{db: db}, nil
}

// Close implements io.Closer.
func (s *CFRStore) Close() error {
	return s.db.Close()
}

// Save writes the policy table for each of the given infoset keys found in
// data, skipping any key data has not (yet) discovered.
func (s *CFRStore) Save(data *efgcache.CFRData, keys []string) error {
	for _, key := range keys {
		p := data.PolicyForKey(key)
		if p == nil {
			continue
		}

		rec := policyRecord{
			NumActions: p.NumActions(),
			Mode:       data.RegretMatching,
			ApproxStab: data.ApproxStabilizer,
			Regrets:    p.Regrets(),
			StratSum:   p.StrategySum(),
		}

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
			return err
		}
		if err := s.db.Put([]byte(key), buf.Bytes(), s.wOpts); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every persisted infoset table back, restored to the exact
// regret and average-strategy accumulators they held when saved.
func (s *CFRStore) Load() (map[string]*policy.Policy, error) {
	iter := s.db.NewIterator(nil, s.rOpts)
	defer iter.Release()

	out := make(map[string]*policy.Policy)
	for iter.Next() {
		var rec policyRecord
		if err := gob.NewDecoder(bytes.NewReader(iter.Value())).Decode(&rec); err != nil {
			return nil, err
		}
		key := string(append([]byte(nil), iter.Key()...))
		out[key] = policy.Restore(rec.NumActions, rec.Mode, rec.ApproxStab, rec.Regrets, rec.StratSum)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

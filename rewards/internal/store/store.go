package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// ChangeKind describes how a contract's result moved between evaluations.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeRFactor ChangeKind = "r_factor"
)

// Change is one contract whose r-factor differs from the previous
// evaluation, or which appeared or disappeared.
type Change struct {
	ContractID string     `json:"contract_id"`
	Kind       ChangeKind `json:"kind"`
	Previous   float64    `json:"previous"`
	Current    float64    `json:"current"`
}

// Store is a thread-safe in-memory result store, keyed by contract ID.
type Store struct {
	mu     sync.RWMutex
	data   map[string]types.RewardFactorResult
	primed bool // set by the first Replace
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string]types.RewardFactorResult)}
}

// Replace swaps the stored results for results and returns the changes
// relative to what was stored before, sorted by contract ID. The first call
// only primes the store and reports no changes.
func (s *Store) Replace(results []types.RewardFactorResult) []Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]types.RewardFactorResult, len(results))
	for _, r := range results {
		next[r.ContractID] = r
	}
	previous, primed := s.data, s.primed
	s.data, s.primed = next, true
	if !primed {
		return nil
	}

	var changes []Change
	for id, r := range next {
		prev, ok := previous[id]
		switch {
		case !ok:
			changes = append(changes, Change{ContractID: id, Kind: ChangeAdded, Current: r.RFactor})
		case prev.RFactor != r.RFactor:
			changes = append(changes, Change{ContractID: id, Kind: ChangeRFactor, Previous: prev.RFactor, Current: r.RFactor})
		}
	}
	for id, prev := range previous {
		if _, ok := next[id]; !ok {
			changes = append(changes, Change{ContractID: id, Kind: ChangeRemoved, Previous: prev.RFactor})
		}
	}

	slices.SortFunc(changes, func(a, b Change) int { return strings.Compare(a.ContractID, b.ContractID) })
	return changes
}

// Count returns the number of contracts currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

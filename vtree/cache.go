package vtree

import (
	"sync"

	"github.com/renatogeh/logiccircuits/internal/fingerprint"
)

// UniqueTable maps XY-partition fingerprints to the canonical decision node
// already built for that partition, at one vtree node. Grounded on the
// teacher's GlobalRegexCache.GetOrCompile double-checked-locking shape
// (internal/matcher/cache.go); a mutex guards it even though the core
// itself runs single-threaded, per the specification's note that a
// multi-threaded extension would need exactly this per-node locking.
type UniqueTable[S comparable] struct {
	mu     sync.Mutex
	table  map[fingerprint.Digest]S
	hits   int
	misses int
}

func newUniqueTable[S comparable]() *UniqueTable[S] {
	return &UniqueTable[S]{table: make(map[fingerprint.Digest]S)}
}

// GetOrInsert returns the node already stored under key, or calls compute,
// stores, and returns its result on a miss.
func (u *UniqueTable[S]) GetOrInsert(key fingerprint.Digest, compute func() S) S {
	u.mu.Lock()
	if v, ok := u.table[key]; ok {
		u.hits++
		u.mu.Unlock()
		return v
	}
	u.misses++
	u.mu.Unlock()

	v := compute()

	u.mu.Lock()
	defer u.mu.Unlock()
	if existing, ok := u.table[key]; ok {
		u.hits++
		return existing
	}
	u.table[key] = v
	return v
}

func (u *UniqueTable[S]) stats() (hits, misses int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits, u.misses
}

// ApplyKey is an ordered pair of SDD node identities, the apply cache's key
// shape. Callers are responsible for normalizing (s, t) via a total pointer
// order before constructing a key, so that conjoin(s, t) and conjoin(t, s)
// hit the same entry.
type ApplyKey[S comparable] struct {
	A S
	B S
}

// ApplyCache maps ordered (Sdd, Sdd) pairs to their apply result, at one
// vtree node.
type ApplyCache[S comparable] struct {
	mu     sync.Mutex
	table  map[ApplyKey[S]]S
	hits   int
	misses int
}

func newApplyCache[S comparable]() *ApplyCache[S] {
	return &ApplyCache[S]{table: make(map[ApplyKey[S]]S)}
}

// GetOrCompute returns the cached result for the ordered pair (x, y), or
// calls compute, stores, and returns its result on a miss. x and y must
// already be normalized by the caller's pointer_sort.
func (a *ApplyCache[S]) GetOrCompute(x, y S, compute func() S) S {
	key := ApplyKey[S]{A: x, B: y}

	a.mu.Lock()
	if v, ok := a.table[key]; ok {
		a.hits++
		a.mu.Unlock()
		return v
	}
	a.misses++
	a.mu.Unlock()

	v := compute()

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.table[key]; ok {
		a.hits++
		return existing
	}
	a.table[key] = v
	return v
}

func (a *ApplyCache[S]) stats() (hits, misses int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits, a.misses
}

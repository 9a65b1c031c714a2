package sdd

import (
	"sort"

	log "github.com/golang/glog"

	"github.com/renatogeh/logiccircuits/internal/fingerprint"
	cerrors "github.com/renatogeh/logiccircuits/pkg/errors"
	"github.com/renatogeh/logiccircuits/vtree"
)

// canonicalize compresses and trims an XY-partition, then interns it in
// vn's unique table, allocating a fresh decision node only on a miss. This
// is the sole path through which any decision node is ever created, so it
// is also where the canonicalityPanic (recovered at the public
// Conjoin/Disjoin entry points) is raised.
func (m *Manager) canonicalize(vn *vtree.Node[*Node], elements []Element) *Node {
	compressed := m.compress(elements)

	if len(compressed) == 0 {
		panic(canonicalityPanic{cerrors.NewCanonicalityViolation("sdd: apply produced an empty XY-partition")})
	}

	if len(compressed) == 1 && compressed[0].Prime == m.trueNode {
		return compressed[0].Sub
	}

	if a, ok := m.trimPattern(compressed); ok {
		return a
	}

	if err := m.validateDistinctSubs(compressed); err != nil {
		panic(canonicalityPanic{err})
	}
	if m.Strict {
		if err := m.validatePrimesPartitionTrue(compressed); err != nil {
			panic(canonicalityPanic{err})
		}
	}

	key := elementsFingerprint(compressed)
	return vn.Unique.GetOrInsert(key, func() *Node {
		n := m.alloc(KindDecision, vn)
		n.Elements = compressed
		log.V(2).Infof("sdd: canonicalize interned new decision node %d with %d elements", n.id, len(compressed))
		return n
	})
}

// canonicalityPanic carries a *cerrors.CircuitError through a panic/recover
// pair so the apply engine's deeply recursive internals can stay
// error-free while the public Conjoin/Disjoin API still surfaces a typed
// error instead of crashing the process on an invariant breach.
type canonicalityPanic struct{ err *cerrors.CircuitError }

// compress groups elements sharing an identical sub, merging each group's
// primes by disjunction, per §4.5.1 step 1, then sorts the result by
// (prime id, sub id). The incoming order is an artifact of which apply case
// (cartesian/descend/independent) built it, not a semantic property of the
// partition — two computations that reach the same set of (prime, sub)
// pairs by different paths must still converge on one node, so the result
// is normalized to a fixed order before canonicalize fingerprints and
// interns it.
func (m *Manager) compress(elements []Element) []Element {
	order := make([]*Node, 0, len(elements))
	groups := make(map[*Node]*Node, len(elements))
	for _, e := range elements {
		if existing, ok := groups[e.Sub]; ok {
			groups[e.Sub] = m.disjoin(existing, e.Prime)
			continue
		}
		groups[e.Sub] = e.Prime
		order = append(order, e.Sub)
	}
	out := make([]Element, len(order))
	for i, sub := range order {
		out[i] = Element{Prime: groups[sub], Sub: sub}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prime.id != out[j].Prime.id {
			return out[i].Prime.id < out[j].Prime.id
		}
		return out[i].Sub.id < out[j].Sub.id
	})
	return out
}

// trimPattern recognizes the degenerate {(α,⊤),(¬α,⊥)} shape (in either
// element order) and returns α, per §4.5.1 step 2.
func (m *Manager) trimPattern(elements []Element) (*Node, bool) {
	if len(elements) != 2 {
		return nil, false
	}
	e0, e1 := elements[0], elements[1]
	if e0.Sub == m.trueNode && e1.Sub == m.falseNode && e1.Prime == m.Negate(e0.Prime) {
		return e0.Prime, true
	}
	if e1.Sub == m.trueNode && e0.Sub == m.falseNode && e0.Prime == m.Negate(e1.Prime) {
		return e1.Prime, true
	}
	return nil, false
}

func (m *Manager) validateDistinctSubs(elements []Element) *cerrors.CircuitError {
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			if elements[i].Sub == elements[j].Sub {
				return cerrors.NewCanonicalityViolation("sdd: XY-partition has duplicate sub after compression")
			}
		}
	}
	return nil
}

// validatePrimesPartitionTrue is the expensive §7 CanonicalityViolation
// check: primes must be pairwise inconsistent and their disjunction ⊤. It
// re-enters the apply engine, so it is gated behind Manager.Strict.
func (m *Manager) validatePrimesPartitionTrue(elements []Element) *cerrors.CircuitError {
	for i := range elements {
		for j := i + 1; j < len(elements); j++ {
			if m.conjoin(elements[i].Prime, elements[j].Prime) != m.falseNode {
				return cerrors.NewCanonicalityViolation("sdd: primes are not pairwise inconsistent")
			}
		}
	}
	acc := m.falseNode
	for _, e := range elements {
		acc = m.disjoin(acc, e.Prime)
	}
	if acc != m.trueNode {
		return cerrors.NewCanonicalityViolation("sdd: primes do not disjoin to true")
	}
	return nil
}

func elementsFingerprint(elements []Element) fingerprint.Digest {
	elems := make([]fingerprint.Element, len(elements))
	for i, e := range elements {
		elems[i] = fingerprint.Element{Prime: e.Prime.id, Sub: e.Sub.id}
	}
	return fingerprint.OfPartition(elems)
}

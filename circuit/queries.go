package circuit

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/renatogeh/logiccircuits/lit"
)

// VariableScope returns the union-closure of variables reachable from the
// circuit's root: a literal contributes its variable, a constant
// contributes nothing, and And/Or contribute the union of their children.
func VariableScope(c *Circuit) *lit.VarSet {
	return Foldup(c, Visitor[*lit.VarSet]{
		Const: func(bool) *lit.VarSet { return lit.NewVarSet() },
		Lit:   func(n *Node) *lit.VarSet { return lit.VarSetOf(n.Lit.Var()) },
		And:   func(n *Node, call func(NodeID) *lit.VarSet) *lit.VarSet { return unionChildren(n, call) },
		Or:    func(n *Node, call func(NodeID) *lit.VarSet) *lit.VarSet { return unionChildren(n, call) },
	})
}

// VariableScopes returns the same fold as VariableScope but retains every
// node's intermediate result, indexed by NodeID.
func VariableScopes(c *Circuit) []*lit.VarSet {
	return FoldupAll(c, Visitor[*lit.VarSet]{
		Const: func(bool) *lit.VarSet { return lit.NewVarSet() },
		Lit:   func(n *Node) *lit.VarSet { return lit.VarSetOf(n.Lit.Var()) },
		And:   func(n *Node, call func(NodeID) *lit.VarSet) *lit.VarSet { return unionChildren(n, call) },
		Or:    func(n *Node, call func(NodeID) *lit.VarSet) *lit.VarSet { return unionChildren(n, call) },
	})
}

func unionChildren(n *Node, call func(NodeID) *lit.VarSet) *lit.VarSet {
	scope := lit.NewVarSet()
	for _, child := range n.Children {
		scope = scope.Union(call(child))
	}
	return scope
}

// decomposabilityState is the foldup_aggregate accumulator: a node's own
// variable scope plus a sticky flag that, once false, stays false for
// every ancestor — the strategy the specification names explicitly.
type decomposabilityState struct {
	scope *lit.VarSet
	ok    bool
}

// IsDecomposable reports whether every And node's children have pairwise
// disjoint variable scopes.
func IsDecomposable(c *Circuit) bool {
	result := FoldupAggregate(c, AggregateVisitor[decomposabilityState]{
		Const: func(bool) decomposabilityState { return decomposabilityState{scope: lit.NewVarSet(), ok: true} },
		Lit:   func(n *Node) decomposabilityState { return decomposabilityState{scope: lit.VarSetOf(n.Lit.Var()), ok: true} },
		And: func(n *Node, children []decomposabilityState) decomposabilityState {
			scope := lit.NewVarSet()
			ok := true
			for _, ch := range children {
				if !ch.ok {
					ok = false
				}
				if !scope.Disjoint(ch.scope) {
					ok = false
				}
				scope = scope.Union(ch.scope)
			}
			return decomposabilityState{scope: scope, ok: ok}
		},
		Or: func(n *Node, children []decomposabilityState) decomposabilityState {
			scope := lit.NewVarSet()
			ok := true
			for _, ch := range children {
				if !ch.ok {
					ok = false
				}
				scope = scope.Union(ch.scope)
			}
			return decomposabilityState{scope: scope, ok: ok}
		},
	})
	return result.ok
}

// smoothnessState mirrors decomposabilityState but the sticky flag tracks
// smoothness of every Or instead of disjointness of every And.
type smoothnessState struct {
	scope *lit.VarSet
	ok    bool
}

// IsSmooth reports whether every Or node's children all share the Or's own
// variable scope.
func IsSmooth(c *Circuit) bool {
	result := FoldupAggregate(c, AggregateVisitor[smoothnessState]{
		Const: func(bool) smoothnessState { return smoothnessState{scope: lit.NewVarSet(), ok: true} },
		Lit:   func(n *Node) smoothnessState { return smoothnessState{scope: lit.VarSetOf(n.Lit.Var()), ok: true} },
		And: func(n *Node, children []smoothnessState) smoothnessState {
			scope := lit.NewVarSet()
			ok := true
			for _, ch := range children {
				if !ch.ok {
					ok = false
				}
				scope = scope.Union(ch.scope)
			}
			return smoothnessState{scope: scope, ok: ok}
		},
		Or: func(n *Node, children []smoothnessState) smoothnessState {
			scope := lit.NewVarSet()
			for _, ch := range children {
				scope = scope.Union(ch.scope)
			}
			ok := true
			for _, ch := range children {
				if !ch.ok || !ch.scope.Equal(scope) {
					ok = false
				}
			}
			return smoothnessState{scope: scope, ok: ok}
		},
	})
	return result.ok
}

// VarProb gives the prior probability that a variable is true. A nil
// VarProb is equivalent to a constant 1/2 prior for every variable.
type VarProb func(v lit.Var) *big.Rat

// DefaultVarProb returns the constant-1/2 prior used whenever the caller
// does not supply one.
func DefaultVarProb() VarProb {
	half := big.NewRat(1, 2)
	return func(lit.Var) *big.Rat { return half }
}

// SatProb computes the satisfying-assignment probability of the circuit
// under the independent-variable prior varprob, using exact
// arbitrary-precision rational arithmetic. A nil varprob defaults to 1/2
// per variable.
func SatProb(c *Circuit, varprob VarProb) *big.Rat {
	if varprob == nil {
		varprob = DefaultVarProb()
	}
	return FoldupAggregate(c, AggregateVisitor[*big.Rat]{
		Const: func(v bool) *big.Rat {
			if v {
				return big.NewRat(1, 1)
			}
			return big.NewRat(0, 1)
		},
		Lit: func(n *Node) *big.Rat {
			p := varprob(n.Lit.Var())
			if n.Lit.Positive() {
				return new(big.Rat).Set(p)
			}
			return new(big.Rat).Sub(big.NewRat(1, 1), p)
		},
		And: func(n *Node, children []*big.Rat) *big.Rat {
			acc := big.NewRat(1, 1)
			for _, ch := range children {
				acc = new(big.Rat).Mul(acc, ch)
			}
			return acc
		},
		Or: func(n *Node, children []*big.Rat) *big.Rat {
			acc := big.NewRat(0, 1)
			for _, ch := range children {
				acc = new(big.Rat).Add(acc, ch)
			}
			return acc
		},
	})
}

// ModelCount returns sat_prob(root, varprob) · 2^n. n defaults to
// |variable_scope(root)| when zero or negative is passed, but may be
// supplied larger to count models over a superset of variables.
func ModelCount(c *Circuit, varprob VarProb, n int) *big.Rat {
	if n <= 0 {
		n = VariableScope(c).Len()
	}
	p := SatProb(c, varprob)
	scale := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return new(big.Rat).Mul(p, new(big.Rat).SetInt(scale))
}

// equivPrime is the modulus used to draw the "1/u for u uniform in
// [1, prime]" signature entries per §4.2; the specification requires
// prime >= 7919.
const equivPrime = 7919

// Signature is the length-k probabilistic fingerprint attached to a
// variable or a node by ProbEquivSignature.
type Signature []*big.Rat

func (s Signature) clone() Signature {
	out := make(Signature, len(s))
	for i, v := range s {
		out[i] = new(big.Rat).Set(v)
	}
	return out
}

func negateSignature(s Signature) Signature {
	out := make(Signature, len(s))
	one := big.NewRat(1, 1)
	for i, v := range s {
		out[i] = new(big.Rat).Sub(one, v)
	}
	return out
}

func addSignature(a, b Signature) Signature {
	out := make(Signature, len(a))
	for i := range a {
		out[i] = new(big.Rat).Add(a[i], b[i])
	}
	return out
}

func mulSignature(a, b Signature) Signature {
	out := make(Signature, len(a))
	for i := range a {
		out[i] = new(big.Rat).Mul(a[i], b[i])
	}
	return out
}

// EquivSignatures holds the result of ProbEquivSignature: a signature per
// variable and a signature per node.
type EquivSignatures struct {
	Vars  map[lit.Var]Signature
	Nodes []Signature
}

// ProbEquivSignature assigns each variable in the circuit's scope a fresh
// random vector in (0,1]^k, propagates it component-wise (product through
// And, sum through Or, 1−v through negation) and returns both the
// variable- and node-level signatures. Two semantically equivalent nodes
// get equal signatures with probability → 1 as k grows; rng should be
// seeded by the caller for reproducibility.
func ProbEquivSignature(c *Circuit, k int, rng *rand.Rand) (*EquivSignatures, error) {
	if k <= 0 {
		return nil, fmt.Errorf("circuit: ProbEquivSignature requires k > 0, got %d", k)
	}
	if rng == nil {
		return nil, fmt.Errorf("circuit: ProbEquivSignature requires a non-nil rng")
	}

	vars := make(map[lit.Var]Signature)
	for _, v := range VariableScope(c).Slice() {
		sig := make(Signature, k)
		for i := 0; i < k; i++ {
			u := int64(rng.Intn(equivPrime)) + 1
			sig[i] = new(big.Rat).SetFrac64(1, u)
		}
		vars[v] = sig
	}

	nodes := FoldupAllAggregate(c, AggregateVisitor[Signature]{
		Const: func(v bool) Signature {
			sig := make(Signature, k)
			val := big.NewRat(0, 1)
			if v {
				val = big.NewRat(1, 1)
			}
			for i := range sig {
				sig[i] = new(big.Rat).Set(val)
			}
			return sig
		},
		Lit: func(n *Node) Signature {
			base := vars[n.Lit.Var()]
			if n.Lit.Positive() {
				return base.clone()
			}
			return negateSignature(base)
		},
		And: func(n *Node, children []Signature) Signature {
			acc := unitSignature(k)
			for _, ch := range children {
				acc = mulSignature(acc, ch)
			}
			return acc
		},
		Or: func(n *Node, children []Signature) Signature {
			acc := zeroSignature(k)
			for _, ch := range children {
				acc = addSignature(acc, ch)
			}
			return acc
		},
	})

	return &EquivSignatures{Vars: vars, Nodes: nodes}, nil
}

func unitSignature(k int) Signature {
	out := make(Signature, k)
	for i := range out {
		out[i] = big.NewRat(1, 1)
	}
	return out
}

func zeroSignature(k int) Signature {
	out := make(Signature, k)
	for i := range out {
		out[i] = big.NewRat(0, 1)
	}
	return out
}

// Evaluate computes the circuit's value under a single total assignment.
func Evaluate(c *Circuit, assignment *lit.Map[bool]) bool {
	return Foldup(c, Visitor[bool]{
		Const: func(v bool) bool { return v },
		Lit: func(n *Node) bool {
			v, _ := assignment.Get(n.Lit.Var())
			return v == n.Lit.Positive()
		},
		And: func(n *Node, call func(NodeID) bool) bool {
			for _, child := range n.Children {
				if !call(child) {
					return false
				}
			}
			return true
		},
		Or: func(n *Node, call func(NodeID) bool) bool {
			for _, child := range n.Children {
				if call(child) {
					return true
				}
			}
			return false
		},
	})
}

// EvaluateBatch evaluates the circuit against many assignments at once,
// packing one assignment per bit of a big.Int so that And/Or become single
// bitwise AND/OR instructions over the whole batch instead of one call per
// assignment — the same packed-bitset idiom used elsewhere in the corpus to
// represent per-block sets as big.Int bit vectors. assignments[v] holds bit
// i set exactly when variable v is true under assignment i; the returned
// big.Int has bit i set exactly when the circuit is true under assignment i.
func EvaluateBatch(c *Circuit, assignments map[lit.Var]*big.Int, width uint) *big.Int {
	full := new(big.Int).Lsh(big.NewInt(1), width)
	full.Sub(full, big.NewInt(1))

	result := FoldupAggregate(c, AggregateVisitor[*big.Int]{
		Const: func(v bool) *big.Int {
			if v {
				return new(big.Int).Set(full)
			}
			return new(big.Int)
		},
		Lit: func(n *Node) *big.Int {
			bits, ok := assignments[n.Lit.Var()]
			if !ok {
				bits = new(big.Int)
			}
			if n.Lit.Positive() {
				return new(big.Int).Set(bits)
			}
			return new(big.Int).Xor(full, bits)
		},
		And: func(n *Node, children []*big.Int) *big.Int {
			acc := new(big.Int).Set(full)
			for _, ch := range children {
				acc.And(acc, ch)
			}
			return acc
		},
		Or: func(n *Node, children []*big.Int) *big.Int {
			acc := new(big.Int)
			for _, ch := range children {
				acc.Or(acc, ch)
			}
			return acc
		},
	})
	return result
}

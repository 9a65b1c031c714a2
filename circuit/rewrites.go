package circuit

import (
	"github.com/renatogeh/logiccircuits/lit"
)

// PropagateConstants rebuilds the circuit with constants folded away: an
// And with any False child becomes False, its True children are dropped,
// and an And left with no children becomes True; an Or mirrors this with
// True/False swapped. A constant node is only added to the result when the
// whole circuit folds to that constant. The result is built through a
// fresh Builder, so hash-consing also performs the structural sharing a
// separate common-subexpression pass would otherwise need.
func PropagateConstants(c *Circuit) (*Circuit, error) {
	b := NewBuilder()
	remap := FoldupAll(c, Visitor[NodeID]{
		Const: func(v bool) NodeID { return constantSlot(v) },
		Lit:   func(n *Node) NodeID { return b.AddLiteral(n.Lit) },
		And: func(n *Node, call func(NodeID) NodeID) NodeID {
			kept := make([]NodeID, 0, len(n.Children))
			for _, child := range n.Children {
				mapped := call(child)
				if mapped == constantSlot(false) {
					return constantSlot(false)
				}
				if mapped == constantSlot(true) {
					continue
				}
				kept = append(kept, mapped)
			}
			if len(kept) == 0 {
				return constantSlot(true)
			}
			return b.AddAnd(kept)
		},
		Or: func(n *Node, call func(NodeID) NodeID) NodeID {
			kept := make([]NodeID, 0, len(n.Children))
			for _, child := range n.Children {
				mapped := call(child)
				if mapped == constantSlot(true) {
					return constantSlot(true)
				}
				if mapped == constantSlot(false) {
					continue
				}
				kept = append(kept, mapped)
			}
			if len(kept) == 0 {
				return constantSlot(false)
			}
			return b.AddOr(kept)
		},
	})
	root := remap[c.Root]
	if root == constantSlot(true) || root == constantSlot(false) {
		root = b.AddConstant(root == constantSlot(true))
	}
	return b.Build(root)
}

// constantSlot is the placeholder id PropagateConstants maps a folded
// constant to; it lies outside any Builder's id range.
func constantSlot(v bool) NodeID {
	if v {
		return ^NodeID(0)
	}
	return ^NodeID(0) - 1
}

// Forget rebuilds the circuit replacing every literal node whose variable
// satisfies predicate with the True constant, regardless of the literal's
// polarity. This is distinct from, and does not itself run, constant
// propagation: a forgotten literal's parents are not simplified away here —
// compose with PropagateConstants explicitly when that is also wanted.
// Determinism of the input circuit is not preserved by Forget alone.
func Forget(c *Circuit, predicate func(v lit.Var) bool) (*Circuit, error) {
	b := NewBuilder()
	remap := FoldupAll(c, Visitor[NodeID]{
		Const: func(v bool) NodeID { return b.AddConstant(v) },
		Lit: func(n *Node) NodeID {
			if predicate(n.Lit.Var()) {
				return b.AddConstant(true)
			}
			return b.AddLiteral(n.Lit)
		},
		And: func(n *Node, call func(NodeID) NodeID) NodeID {
			return b.AddAnd(mapChildren(n, call))
		},
		Or: func(n *Node, call func(NodeID) NodeID) NodeID {
			return b.AddOr(mapChildren(n, call))
		},
	})
	return b.Build(remap[c.Root])
}

func mapChildren(n *Node, call func(NodeID) NodeID) []NodeID {
	out := make([]NodeID, len(n.Children))
	for i, child := range n.Children {
		out[i] = call(child)
	}
	return out
}

// Smooth rebuilds the circuit so that every Or node's children all share
// the Or's own variable scope, padding any child missing variable v with a
// conjoined (lit(v) ∨ ¬lit(v)) tautology term — the standard smoothing
// construction. And nodes are rebuilt with their children mapped but
// otherwise unchanged; decomposability of the input is preserved by
// construction since Smooth never touches an And's partition of variables.
func Smooth(c *Circuit) (*Circuit, error) {
	scopes := VariableScopes(c)
	b := NewBuilder()
	remap := FoldupAll(c, Visitor[NodeID]{
		Const: func(v bool) NodeID { return b.AddConstant(v) },
		Lit:   func(n *Node) NodeID { return b.AddLiteral(n.Lit) },
		And: func(n *Node, call func(NodeID) NodeID) NodeID {
			return b.AddAnd(mapChildren(n, call))
		},
		Or: func(n *Node, call func(NodeID) NodeID) NodeID {
			ownScope := scopes[n.ID]
			kids := make([]NodeID, len(n.Children))
			for i, child := range n.Children {
				mapped := call(child)
				missing := ownScope.Minus(scopes[child])
				if missing.Len() == 0 {
					kids[i] = mapped
					continue
				}
				terms := make([]NodeID, 0, missing.Len()+1)
				terms = append(terms, mapped)
				for _, v := range missing.Slice() {
					pos := b.AddLiteral(lit.NewLit(v, true))
					neg := b.AddLiteral(lit.NewLit(v, false))
					terms = append(terms, b.AddOr([]NodeID{pos, neg}))
				}
				kids[i] = b.AddAnd(terms)
			}
			return b.AddOr(kids)
		},
	})
	return b.Build(remap[c.Root])
}

// Package sdd implements the Sentential Decision Diagram node layer and its
// apply (conjoin/disjoin) engine: a canonical, trimmed, compressed
// representation of Boolean functions indexed by a vtree.Builder[*Node],
// with every decision produced exclusively through interning in its vtree
// node's unique table.
//
// The package is grounded on the teacher's DagBuilder/DagOptimizer pair
// (internal/dag/builder.go, internal/dag/optimizer.go): Manager plays
// DagBuilder's role of being the sole authority that allocates node
// identities, and the apply engine's cartesian/descend/independent cases
// play the role DagOptimizer's constant-folding and common-subexpression
// passes play for the logical DAG, generalized to a vtree-aware setting the
// teacher itself never needed.
package sdd

import (
	"github.com/renatogeh/logiccircuits/lit"
	"github.com/renatogeh/logiccircuits/vtree"
)

// Kind discriminates the tagged SDD node variant.
type Kind int

const (
	KindTrue Kind = iota
	KindFalse
	KindLiteral
	KindDecision
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindLiteral:
		return "Literal"
	case KindDecision:
		return "Decision"
	default:
		return "Unknown"
	}
}

// Element is one (prime, sub) pair of an XY-partition: prime respects the
// decision's vtree node's left child, sub its right child.
type Element struct {
	Prime *Node
	Sub   *Node
}

// Node is one canonical SDD node. Every Node is produced by a Manager's
// apply engine through interning; external code never constructs one
// directly. id is a monotonically increasing allocation serial used both as
// the unique-table fingerprint input and as the total pointer order
// apply-cache keys are normalized against (pointerSort).
type Node struct {
	id        uint64
	Kind      Kind
	Lit       lit.Lit
	VtreeNode *vtree.Node[*Node]
	Elements  []Element
}

// IsConstant reports whether n is the True or False singleton.
func (n *Node) IsConstant() bool {
	return n.Kind == KindTrue || n.Kind == KindFalse
}

// pointerSort returns (a, b) in the total order induced by allocation
// serial, so that conjoin(s, t) and conjoin(t, s) normalize to the same
// ordered apply-cache key.
func pointerSort(a, b *Node) (*Node, *Node) {
	if a.id <= b.id {
		return a, b
	}
	return b, a
}

// Package circuit implements the immutable, hash-consed logical-circuit DAG:
// And/Or/Literal/Constant nodes linearized children-before-parents, the
// foldup/foldup_aggregate traversal kernel, the structural queries built on
// top of it, and the rewrite passes (constant propagation, forgetting,
// smoothing) that produce fresh canonical circuits while preserving
// decomposability and smoothness.
//
// The package is grounded on the teacher's internal/dag: NodeType's tagged
// payload becomes Kind's discriminated fields, DagBuilder's id-assigning
// construction becomes Builder's hash-consing construction, and
// DagOptimizer's constantFolding/commonSubexpressionElimination/
// deadCodeElimination pipeline becomes PropagateConstants/the Builder's
// structural hash-consing/Forget.
package circuit

import (
	"fmt"

	"github.com/renatogeh/logiccircuits/lit"
)

// Kind discriminates the tagged node variant. Dispatch on Kind is a
// compile-time tag switch, not a type hierarchy — mirrors the teacher's
// NodeType.Type string discriminant, replaced here by a small int enum.
type Kind int

const (
	KindConstant Kind = iota
	KindLiteral
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindLiteral:
		return "Literal"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NodeID indexes a node within a Circuit's Nodes slice. Node ids are
// assigned in children-before-parents order: for any inner node, every id
// in Children is strictly less than the node's own id.
type NodeID uint32

// Node is one immutable element of a Circuit. Which fields are meaningful
// depends on Kind: Constant nodes carry only Value, Literal nodes only
// Lit, And/Or nodes only Children.
type Node struct {
	ID       NodeID
	Kind     Kind
	Value    bool
	Lit      lit.Lit
	Children []NodeID
}

// IsLeaf reports whether the node has no children (Constant or Literal).
func (n *Node) IsLeaf() bool {
	return n.Kind == KindConstant || n.Kind == KindLiteral
}

// Circuit is an ordered, linearized sequence of nodes in children-before-
// parents order; Root names the final element. Once returned from a
// Builder or a rewrite, a Circuit's Nodes are never mutated — rewrites
// produce a fresh Circuit, sharing unchanged sub-DAGs by node-id reuse
// within the same owning slice is not possible across circuits, but the
// values themselves are safe to read concurrently since nothing mutates
// them after Build.
type Circuit struct {
	Nodes []Node
	Root  NodeID
}

// Node returns a pointer to the node with the given id. Panics if id is out
// of range, mirroring slice-index semantics — callers are expected to only
// ever hold ids obtained from this same Circuit.
func (c *Circuit) Node(id NodeID) *Node {
	return &c.Nodes[id]
}

// RootNode returns the circuit's root node.
func (c *Circuit) RootNode() *Node {
	return c.Node(c.Root)
}

// NodeCount returns the number of nodes in the circuit.
func (c *Circuit) NodeCount() int {
	return len(c.Nodes)
}

// CheckLinearization verifies the children-before-parents invariant: for
// every node, every child id precedes the node's own id. Parsers and
// rewrites are expected to always produce a linearized Circuit; this is a
// validation helper for circuits arriving from an external collaborator
// (e.g. a format-record compile step) whose internals this package does
// not control.
func (c *Circuit) CheckLinearization() error {
	for i, n := range c.Nodes {
		if NodeID(i) != n.ID {
			return fmt.Errorf("circuit: node at index %d has id %d", i, n.ID)
		}
		for _, child := range n.Children {
			if int(child) >= i {
				return fmt.Errorf("circuit: node %d references child %d out of children-before-parents order", n.ID, child)
			}
		}
	}
	return nil
}

// HasUniqueLiteralNodes reports whether every literal value is represented
// by at most one node, per the §3 literal-uniqueness invariant.
func (c *Circuit) HasUniqueLiteralNodes() bool {
	seen := make(map[lit.Lit]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.Kind != KindLiteral {
			continue
		}
		if _, dup := seen[n.Lit]; dup {
			return false
		}
		seen[n.Lit] = struct{}{}
	}
	return true
}

// HasUniqueConstantNodes reports whether at most one True node and at most
// one False node exist, per the §3 constant-uniqueness invariant.
func (c *Circuit) HasUniqueConstantNodes() bool {
	sawTrue, sawFalse := false, false
	for _, n := range c.Nodes {
		if n.Kind != KindConstant {
			continue
		}
		if n.Value {
			if sawTrue {
				return false
			}
			sawTrue = true
		} else {
			if sawFalse {
				return false
			}
			sawFalse = true
		}
	}
	return true
}

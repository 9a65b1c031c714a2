package sdd

import (
	"sort"

	"github.com/renatogeh/logiccircuits/lit"
	"github.com/renatogeh/logiccircuits/vtree"
)

// Manager owns a vtree over a fixed set of variables and every canonical
// SDD node built against it. It is the sole authority that allocates node
// identities (mirroring the teacher's DagBuilder.nextNodeId discipline) and
// the sole entry point for conjoin/disjoin.
type Manager struct {
	vtreeBuilder *vtree.Builder[*Node]
	root         *vtree.Node[*Node]
	leafOf       map[lit.Var]*vtree.Node[*Node]

	trueNode  *Node
	falseNode *Node

	literalIdx map[lit.Lit]*Node
	negCache   map[*Node]*Node
	nextID     uint64

	// Strict enables the expensive prime-partition-covers-true validation
	// (§7 CanonicalityViolation) on every canonicalized decision. Off by
	// default since it revisits the apply engine recursively; useful for
	// tests and diagnostics, not the hot path.
	Strict bool
}

// NewManager builds a Manager over a balanced vtree spanning vars. vars
// need not be pre-sorted or deduplicated.
func NewManager(vars []lit.Var) *Manager {
	unique := dedupSorted(vars)

	b := vtree.NewBuilder[*Node]()
	leafOf := make(map[lit.Var]*vtree.Node[*Node], len(unique))
	leaves := make([]*vtree.Node[*Node], len(unique))
	for i, v := range unique {
		leaves[i] = b.AddLeaf(v)
		leafOf[v] = leaves[i]
	}

	m := &Manager{
		vtreeBuilder: b,
		leafOf:       leafOf,
		literalIdx:   make(map[lit.Lit]*Node),
		negCache:     make(map[*Node]*Node),
	}
	if len(leaves) > 0 {
		m.root = buildBalanced(b, leaves)
	}
	m.trueNode = m.alloc(KindTrue, nil)
	m.falseNode = m.alloc(KindFalse, nil)
	return m
}

func dedupSorted(vars []lit.Var) []lit.Var {
	seen := make(map[lit.Var]struct{}, len(vars))
	out := make([]lit.Var, 0, len(vars))
	for _, v := range vars {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildBalanced(b *vtree.Builder[*Node], nodes []*vtree.Node[*Node]) *vtree.Node[*Node] {
	if len(nodes) == 1 {
		return nodes[0]
	}
	mid := len(nodes) / 2
	left := buildBalanced(b, nodes[:mid])
	right := buildBalanced(b, nodes[mid:])
	return b.AddInner(left, right)
}

func (m *Manager) alloc(kind Kind, vn *vtree.Node[*Node]) *Node {
	n := &Node{id: m.nextID, Kind: kind, VtreeNode: vn}
	m.nextID++
	return n
}

// Vtree returns the vtree builder backing this Manager.
func (m *Manager) Vtree() *vtree.Builder[*Node] {
	return m.vtreeBuilder
}

// Root returns the vtree's root node.
func (m *Manager) Root() *vtree.Node[*Node] {
	return m.root
}

// True returns the unique SDD constant node for ⊤.
func (m *Manager) True() *Node {
	return m.trueNode
}

// False returns the unique SDD constant node for ⊥.
func (m *Manager) False() *Node {
	return m.falseNode
}

// Literal returns the canonical SDD node for the given literal, allocating
// it on first use. l's variable must have been included in the Manager's
// vtree.
func (m *Manager) Literal(l lit.Lit) *Node {
	if n, ok := m.literalIdx[l]; ok {
		return n
	}
	leaf, ok := m.leafOf[l.Var()]
	if !ok {
		panic(unknownVariablePanic{v: l.Var()})
	}
	n := m.alloc(KindLiteral, leaf)
	n.Lit = l
	m.literalIdx[l] = n
	return n
}

type unknownVariablePanic struct{ v lit.Var }

// Negate returns ¬n: for constants the other singleton, for a literal the
// literal of opposite polarity, for a decision the same XY-partition with
// every sub negated (primes are left untouched — negating a decision never
// changes which vtree node or which primes it respects).
func (m *Manager) Negate(n *Node) *Node {
	switch n.Kind {
	case KindTrue:
		return m.falseNode
	case KindFalse:
		return m.trueNode
	case KindLiteral:
		return m.Literal(n.Lit.Negate())
	default:
		if cached, ok := m.negCache[n]; ok {
			return cached
		}
		elems := make([]Element, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = Element{Prime: e.Prime, Sub: m.Negate(e.Sub)}
		}
		result := m.canonicalize(n.VtreeNode, elems)
		m.negCache[n] = result
		m.negCache[result] = n
		return result
	}
}

// Stats aggregates the unique-table and apply-cache traffic across the
// Manager's whole vtree.
func (m *Manager) Stats() vtree.CacheStats {
	return m.vtreeBuilder.Stats()
}

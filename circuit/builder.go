package circuit

import (
	log "github.com/golang/glog"

	"github.com/renatogeh/logiccircuits/internal/fingerprint"
	"github.com/renatogeh/logiccircuits/lit"
)

// Builder incrementally assembles a Circuit, hash-consing literal and
// constant nodes (the §3 uniqueness invariants) and, as a structural-
// sharing convenience grounded on the teacher DagOptimizer's common-
// subexpression-elimination pass, And/Or nodes with identical (kind,
// ordered children) shape. Node ids are assigned in construction order,
// which is always children-before-parents because a child must already
// have an id before it can be listed as a child.
type Builder struct {
	nodes       []Node
	literalIdx  map[lit.Lit]NodeID
	constantIdx map[bool]NodeID
	structIdx   map[fingerprint.Digest]NodeID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		literalIdx:  make(map[lit.Lit]NodeID),
		constantIdx: make(map[bool]NodeID),
		structIdx:   make(map[fingerprint.Digest]NodeID),
	}
}

func (b *Builder) nextID() NodeID {
	return NodeID(len(b.nodes))
}

func (b *Builder) push(n Node) NodeID {
	n.ID = b.nextID()
	b.nodes = append(b.nodes, n)
	return n.ID
}

// AddConstant returns the canonical node for the given Boolean constant,
// allocating it on first use.
func (b *Builder) AddConstant(v bool) NodeID {
	if id, ok := b.constantIdx[v]; ok {
		return id
	}
	id := b.push(Node{Kind: KindConstant, Value: v})
	b.constantIdx[v] = id
	return id
}

// AddLiteral returns the canonical node for the given literal, allocating
// it on first use.
func (b *Builder) AddLiteral(l lit.Lit) NodeID {
	if id, ok := b.literalIdx[l]; ok {
		return id
	}
	id := b.push(Node{Kind: KindLiteral, Lit: l})
	b.literalIdx[l] = id
	return id
}

// AddAnd returns the node for the conjunction of children in the given
// order, reusing an existing node with the identical ordered shape.
// children must already have ids assigned within this Builder.
func (b *Builder) AddAnd(children []NodeID) NodeID {
	return b.addStructural(KindAnd, children)
}

// AddOr returns the node for the disjunction of children in the given
// order, reusing an existing node with the identical ordered shape.
func (b *Builder) AddOr(children []NodeID) NodeID {
	return b.addStructural(KindOr, children)
}

func (b *Builder) addStructural(kind Kind, children []NodeID) NodeID {
	key := structKey(kind, children)
	if id, ok := b.structIdx[key]; ok {
		log.V(2).Infof("circuit: builder reused %s node %d for %d children", kind, id, len(children))
		return id
	}
	kids := make([]NodeID, len(children))
	copy(kids, children)
	id := b.push(Node{Kind: kind, Children: kids})
	b.structIdx[key] = id
	return id
}

func structKey(kind Kind, children []NodeID) fingerprint.Digest {
	// The leading (kind, child count) element keeps an And and an Or with no
	// children from sharing a key.
	elems := make([]fingerprint.Element, len(children)+1)
	elems[0] = fingerprint.Element{Prime: uint64(kind) + 1, Sub: uint64(len(children))}
	for i, c := range children {
		elems[i+1] = fingerprint.Element{Prime: uint64(kind) + 1, Sub: uint64(c)}
	}
	return fingerprint.OfPartition(elems)
}

// Build finalizes the circuit with the given root. root must be an id
// returned by one of this Builder's Add* methods.
func (b *Builder) Build(root NodeID) (*Circuit, error) {
	if int(root) >= len(b.nodes) {
		return nil, NewUnknownNodeError(root)
	}
	c := &Circuit{Nodes: b.nodes, Root: root}
	if err := c.CheckLinearization(); err != nil {
		return nil, err
	}
	return c, nil
}

// Stats summarizes the circuit under construction so far, mirroring the
// teacher's DagStatistics/NewDagStatisticsFromDag.
type Stats struct {
	TotalNodes      int
	ConstantNodes   int
	LiteralNodes    int
	AndNodes        int
	OrNodes         int
	SharedLiterals  int
	MaxChildrenFanout int
}

// Stats computes a snapshot of the builder's current node population.
func (b *Builder) Stats() Stats {
	var s Stats
	s.TotalNodes = len(b.nodes)
	for _, n := range b.nodes {
		switch n.Kind {
		case KindConstant:
			s.ConstantNodes++
		case KindLiteral:
			s.LiteralNodes++
		case KindAnd:
			s.AndNodes++
			if len(n.Children) > s.MaxChildrenFanout {
				s.MaxChildrenFanout = len(n.Children)
			}
		case KindOr:
			s.OrNodes++
			if len(n.Children) > s.MaxChildrenFanout {
				s.MaxChildrenFanout = len(n.Children)
			}
		}
	}
	s.SharedLiterals = len(b.literalIdx)
	return s
}

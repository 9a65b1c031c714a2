package sdd

import (
	log "github.com/golang/glog"

	cerrors "github.com/renatogeh/logiccircuits/pkg/errors"
	"github.com/renatogeh/logiccircuits/vtree"
)

// Conjoin computes s ∧ t, dispatching on the case analysis of §4.5: constant
// absorption, same-literal, same-vtree cartesian, descend, or independent.
// A CanonicalityViolation surfaces as an error instead of a panic — the
// apply engine's internals stay simple recursive functions and only the
// public entry points pay the recover cost.
func (m *Manager) Conjoin(s, t *Node) (result *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cp, ok := r.(canonicalityPanic); ok {
				err = cp.err
				return
			}
			panic(r)
		}
	}()
	return m.conjoin(s, t), nil
}

// Disjoin computes s ∨ t as ¬conjoin(¬s, ¬t).
func (m *Manager) Disjoin(s, t *Node) (result *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cp, ok := r.(canonicalityPanic); ok {
				err = cp.err
				return
			}
			panic(r)
		}
	}()
	return m.disjoin(s, t), nil
}

func (m *Manager) disjoin(s, t *Node) *Node {
	return m.Negate(m.conjoin(m.Negate(s), m.Negate(t)))
}

func (m *Manager) conjoin(s, t *Node) *Node {
	if s == m.trueNode {
		return t
	}
	if t == m.trueNode {
		return s
	}
	if s == m.falseNode || t == m.falseNode {
		return m.falseNode
	}
	if s == t {
		return s
	}

	if s.VtreeNode == t.VtreeNode && s.VtreeNode.IsLeaf() {
		// Both respect the same vtree leaf, so both are literals of the
		// same variable (a decision node never respects a leaf).
		return m.falseNode
	}
	if s.VtreeNode == t.VtreeNode {
		log.V(2).Infof("sdd: conjoin dispatching cartesian case at vtree node %p", s.VtreeNode)
		return m.cartesian(s, t)
	}
	if vtree.VarSubset(s.VtreeNode, t.VtreeNode) {
		log.V(2).Infof("sdd: conjoin dispatching descend case, s subset of t's vtree")
		return m.descend(s, t)
	}
	if vtree.VarSubset(t.VtreeNode, s.VtreeNode) {
		log.V(2).Infof("sdd: conjoin dispatching descend case, t subset of s's vtree")
		return m.descend(t, s)
	}
	log.V(2).Infof("sdd: conjoin dispatching independent case, disjoint vtrees")
	return m.independent(s, t)
}

// cartesian implements the same-vtree-node case: s and t are both decision
// nodes at the same inner vtree node.
func (m *Manager) cartesian(s, t *Node) *Node {
	if m.Negate(s) == t {
		return m.falseNode
	}
	a, b := pointerSort(s, t)
	vn := a.VtreeNode
	return vn.Apply.GetOrCompute(a, b, func() *Node {
		return m.cartesianCompute(a, b)
	})
}

func (m *Manager) cartesianCompute(e1Owner, e2Owner *Node) *Node {
	e1s := e1Owner.Elements
	e2s := e2Owner.Elements
	consumed1 := make([]bool, len(e1s))
	consumed2 := make([]bool, len(e2s))
	var out []Element

	for i := range e1s {
		if consumed1[i] {
			continue
		}
		for j := range e2s {
			if consumed2[j] {
				continue
			}
			e1, e2 := e1s[i], e2s[j]
			switch {
			case e1.Prime == e2.Prime:
				out = append(out, Element{Prime: e1.Prime, Sub: m.conjoin(e1.Sub, e2.Sub)})
				consumed1[i] = true
				consumed2[j] = true
			case e1.Prime == m.Negate(e2.Prime):
				for i3 := range e1s {
					if i3 == i || consumed1[i3] {
						continue
					}
					out = append(out, Element{Prime: e1s[i3].Prime, Sub: m.conjoin(e2.Sub, e1s[i3].Sub)})
				}
				for j4 := range e2s {
					if j4 == j || consumed2[j4] {
						continue
					}
					out = append(out, Element{Prime: e2s[j4].Prime, Sub: m.conjoin(e1.Sub, e2s[j4].Sub)})
				}
				consumed1[i] = true
				consumed2[j] = true
			}
		}
	}

	for i := range e1s {
		if consumed1[i] {
			continue
		}
		for j := range e2s {
			if consumed2[j] {
				continue
			}
			e1, e2 := e1s[i], e2s[j]
			p := m.conjoin(e1.Prime, e2.Prime)
			if p == m.falseNode {
				continue
			}
			out = append(out, Element{Prime: p, Sub: m.conjoin(e1.Sub, e2.Sub)})
			if p == e2.Prime {
				consumed2[j] = true
			}
			if p == e1.Prime {
				consumed1[i] = true
				break
			}
		}
	}

	return m.canonicalize(e1Owner.VtreeNode, out)
}

// descend handles the case where d's vtree is strictly contained in n's:
// cached on tmgr(n), per the specification.
func (m *Manager) descend(d, n *Node) *Node {
	a, b := pointerSort(d, n)
	return n.VtreeNode.Apply.GetOrCompute(a, b, func() *Node {
		if vtree.VarSubsetLeft(d.VtreeNode, n.VtreeNode) {
			return m.descendLeft(d, n)
		}
		return m.descendRight(d, n)
	})
}

func (m *Manager) descendLeft(d, n *Node) *Node {
	negD := m.Negate(d)

	for idx, e := range n.Elements {
		if e.Prime == d {
			if e.Sub == m.falseNode {
				return m.falseNode
			}
			if e.Sub == m.trueNode {
				return d
			}
			return m.canonicalize(n.VtreeNode, []Element{{Prime: d, Sub: e.Sub}, {Prime: negD, Sub: m.falseNode}})
		}
		if e.Prime == negD {
			out := make([]Element, 0, len(n.Elements))
			for j, other := range n.Elements {
				if j != idx {
					out = append(out, other)
				}
			}
			out = append(out, Element{Prime: negD, Sub: m.falseNode})
			return m.canonicalize(n.VtreeNode, out)
		}
	}

	out := make([]Element, 0, len(n.Elements)+1)
	for _, e := range n.Elements {
		p := m.conjoin(e.Prime, d)
		if p == m.falseNode {
			continue
		}
		out = append(out, Element{Prime: p, Sub: e.Sub})
		if p == d {
			break
		}
	}
	out = append(out, Element{Prime: negD, Sub: m.falseNode})
	return m.canonicalize(n.VtreeNode, out)
}

func (m *Manager) descendRight(d, n *Node) *Node {
	out := make([]Element, len(n.Elements))
	for i, e := range n.Elements {
		out[i] = Element{Prime: e.Prime, Sub: m.conjoin(e.Sub, d)}
	}
	return m.canonicalize(n.VtreeNode, out)
}

// independent handles the case where s and t's vtrees are disjoint: the
// result is a two-element decision uniquified at their lowest common
// ancestor.
func (m *Manager) independent(s, t *Node) *Node {
	mgr := vtree.ParentLCA(s.VtreeNode, t.VtreeNode)
	if mgr == nil {
		panic(canonicalityPanic{cerrors.NewCanonicalityViolation("sdd: independent operands share no common vtree ancestor")})
	}
	a, b := pointerSort(s, t)
	return mgr.Apply.GetOrCompute(a, b, func() *Node {
		first, second := t, s
		if vtree.VarSubset(s.VtreeNode, mgr.Left) {
			first, second = s, t
		}
		return m.canonicalize(mgr, []Element{{Prime: first, Sub: second}, {Prime: m.Negate(first), Sub: m.falseNode}})
	})
}

package sdd

import (
	"testing"

	"github.com/renatogeh/logiccircuits/lit"
)

// TestConjoinDescendAndCartesian builds a 4-variable manager ((x1 x2) (x3
// x4)) and drives both the descend case (a leaf-level literal conjoined
// with a root-level decision) and the cartesian case (two decisions that
// already respect the same vtree node).
func TestConjoinDescendAndCartesian(t *testing.T) {
	m := NewManager([]lit.Var{1, 2, 3, 4})

	x1 := m.Literal(lit.NewLit(1, true))
	x2 := m.Literal(lit.NewLit(2, true))
	x3 := m.Literal(lit.NewLit(3, true))
	x4 := m.Literal(lit.NewLit(4, true))

	// leftPair and rightPair each respect an inner vtree node one level
	// above the leaves (independent case, since x1/x2 and x3/x4 are each
	// disjoint leaf pairs under their own shared parent).
	leftPair, err := m.Conjoin(x1, x2)
	if err != nil {
		t.Fatalf("Conjoin(x1, x2) returned error: %v", err)
	}
	rightPair, err := m.Conjoin(x3, x4)
	if err != nil {
		t.Fatalf("Conjoin(x3, x4) returned error: %v", err)
	}
	if leftPair.VtreeNode != x1.VtreeNode.Parent {
		t.Fatalf("leftPair should respect x1/x2's shared parent")
	}

	// rootDecision respects the vtree root (independent case: leftPair and
	// rightPair's vtrees are disjoint subtrees of the root).
	rootDecision, err := m.Conjoin(leftPair, rightPair)
	if err != nil {
		t.Fatalf("Conjoin(leftPair, rightPair) returned error: %v", err)
	}
	if rootDecision.VtreeNode != m.Root() {
		t.Fatalf("rootDecision should respect the vtree root")
	}

	// Conjoining rootDecision with the leaf-level literal x1 exercises
	// descend: x1's vars are a strict subset of rootDecision's vars, but
	// they respect different vtree nodes.
	descended, err := m.Conjoin(rootDecision, x1)
	if err != nil {
		t.Fatalf("Conjoin(rootDecision, x1) returned error: %v", err)
	}
	if descended == m.False() {
		t.Errorf("Conjoin(rootDecision, x1) collapsed to False unexpectedly")
	}

	// Conjoining rootDecision with itself returns it through conjoin's
	// s == t shortcut, which is taken before the case dispatch.
	same, err := m.Conjoin(rootDecision, rootDecision)
	if err != nil {
		t.Fatalf("Conjoin(rootDecision, rootDecision) returned error: %v", err)
	}
	if same != rootDecision {
		t.Errorf("Conjoin(d, d) = %v, want d itself", same)
	}

	// leftPair and its negation are distinct decisions at the same vtree
	// node, so conjoining them dispatches to cartesian, which returns False.
	contradiction, err := m.Conjoin(leftPair, m.Negate(leftPair))
	if err != nil {
		t.Fatalf("Conjoin(leftPair, ¬leftPair) returned error: %v", err)
	}
	if contradiction != m.False() {
		t.Errorf("Conjoin(leftPair, ¬leftPair) = %v, want False", contradiction)
	}
}

func TestConjoinCaching(t *testing.T) {
	m := NewManager([]lit.Var{1, 2, 3})
	x1 := m.Literal(lit.NewLit(1, true))
	x2 := m.Literal(lit.NewLit(2, true))

	first, err := m.Conjoin(x1, x2)
	if err != nil {
		t.Fatalf("Conjoin returned error: %v", err)
	}
	second, err := m.Conjoin(x1, x2)
	if err != nil {
		t.Fatalf("Conjoin returned error: %v", err)
	}
	if first != second {
		t.Errorf("repeated Conjoin(x1, x2) produced distinct nodes")
	}

	stats := m.Stats()
	if stats.ApplyHits == 0 {
		t.Errorf("Stats().ApplyHits = 0, want at least 1 after a repeated conjoin")
	}
}

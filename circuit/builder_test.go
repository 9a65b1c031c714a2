package circuit

import (
	"testing"

	"github.com/renatogeh/logiccircuits/lit"
)

func TestBuilderHashConsesLiteralsAndConstants(t *testing.T) {
	b := NewBuilder()
	l1 := lit.NewLit(1, true)

	a := b.AddLiteral(l1)
	c := b.AddLiteral(l1)
	if a != c {
		t.Errorf("AddLiteral(%v) returned distinct ids %d and %d", l1, a, c)
	}

	t1 := b.AddConstant(true)
	t2 := b.AddConstant(true)
	if t1 != t2 {
		t.Errorf("AddConstant(true) returned distinct ids %d and %d", t1, t2)
	}

	f1 := b.AddConstant(false)
	if f1 == t1 {
		t.Errorf("AddConstant(false) aliased AddConstant(true)")
	}
}

func TestBuilderHashConsesStructuralNodes(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))

	and1 := b.AddAnd([]NodeID{x1, x2})
	and2 := b.AddAnd([]NodeID{x1, x2})
	if and1 != and2 {
		t.Errorf("AddAnd with identical ordered children returned distinct ids %d and %d", and1, and2)
	}

	and3 := b.AddAnd([]NodeID{x2, x1})
	if and1 == and3 {
		t.Errorf("AddAnd treated differently-ordered children as the same node")
	}
}

func TestBuilderBuildRejectsUnknownRoot(t *testing.T) {
	b := NewBuilder()
	b.AddLiteral(lit.NewLit(1, true))
	if _, err := b.Build(NodeID(99)); err == nil {
		t.Errorf("Build with an unknown root id did not return an error")
	}
}

func TestBuilderBuildProducesLinearizedCircuit(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))
	and := b.AddAnd([]NodeID{x1, x2})

	c, err := b.Build(and)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if err := c.CheckLinearization(); err != nil {
		t.Errorf("built circuit failed CheckLinearization: %v", err)
	}
	if !c.HasUniqueLiteralNodes() {
		t.Errorf("built circuit has duplicate literal nodes")
	}
	if !c.HasUniqueConstantNodes() {
		t.Errorf("built circuit has duplicate constant nodes")
	}
}

func TestBuilderStats(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))
	b.AddAnd([]NodeID{x1, x2})

	stats := b.Stats()
	if stats.LiteralNodes != 2 {
		t.Errorf("Stats().LiteralNodes = %d, want 2", stats.LiteralNodes)
	}
	if stats.AndNodes != 1 {
		t.Errorf("Stats().AndNodes = %d, want 1", stats.AndNodes)
	}
	if stats.MaxChildrenFanout != 2 {
		t.Errorf("Stats().MaxChildrenFanout = %d, want 2", stats.MaxChildrenFanout)
	}
}

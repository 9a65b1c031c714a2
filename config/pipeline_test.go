package config

import (
	"testing"

	"github.com/renatogeh/logiccircuits/circuit"
	"github.com/renatogeh/logiccircuits/lit"
)

func TestApplyRunsConstantPropagationByDefault(t *testing.T) {
	b := circuit.NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	tt := b.AddConstant(true)
	and := b.AddAnd([]circuit.NodeID{x1, tt})
	c, err := b.Build(and)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	out, err := DefaultRewritePasses().Apply(c)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	for _, n := range out.Nodes {
		if n.Kind == circuit.KindConstant {
			t.Errorf("Apply with default passes should have removed constant nodes")
		}
	}
}

func TestApplyAllRunsSmoothTooAndPreservesScope(t *testing.T) {
	b := circuit.NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))
	x3 := b.AddLiteral(lit.NewLit(3, true))
	and := b.AddAnd([]circuit.NodeID{x1, x2})
	or := b.AddOr([]circuit.NodeID{and, x3})
	c, err := b.Build(or)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	out, err := AllRewritePasses().Apply(c)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !circuit.IsSmooth(out) {
		t.Errorf("Apply with AllRewritePasses should produce a smooth circuit")
	}
	if !circuit.VariableScope(out).Equal(circuit.VariableScope(c)) {
		t.Errorf("Apply must not change the variable scope")
	}
}

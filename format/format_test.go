package format

import (
	"testing"

	"github.com/renatogeh/logiccircuits/lit"
	"github.com/renatogeh/logiccircuits/sdd"
)

func TestCompileSDDConstantsAndLiteral(t *testing.T) {
	mgr := sdd.NewManager([]lit.Var{1})
	lines := []CircuitFormatLine{
		{Kind: LineHeader, HeaderCount: 2},
		{Kind: LineTrue, ID: 0},
		{Kind: LineLiteral, ID: 1, Lit: lit.NewLit(1, true)},
	}

	got, err := CompileSDD(mgr, lines)
	if err != nil {
		t.Fatalf("CompileSDD returned error: %v", err)
	}
	want := mgr.Literal(lit.NewLit(1, true))
	if got != want {
		t.Errorf("CompileSDD resolved the wrong final node")
	}
}

func TestCompileSDDDecisionLine(t *testing.T) {
	mgr := sdd.NewManager([]lit.Var{1, 2})

	// id 0: x1, id 1: x2, id 2: ⊥, id 3: ¬x1, id 4: decision
	// {(x1, x2), (¬x1, ⊥)} — equivalent to conjoin(x1, x2).
	lines := []CircuitFormatLine{
		{Kind: LineLiteral, ID: 0, Lit: lit.NewLit(1, true)},
		{Kind: LineLiteral, ID: 1, Lit: lit.NewLit(2, true)},
		{Kind: LineFalse, ID: 2},
		{Kind: LineLiteral, ID: 3, Lit: lit.NewLit(1, false)},
		{Kind: LineDecision, ID: 4, Children: []Ref{{Prime: 0, Sub: 1}, {Prime: 3, Sub: 2}}},
	}

	got, err := CompileSDD(mgr, lines)
	if err != nil {
		t.Fatalf("CompileSDD returned error: %v", err)
	}

	x1 := mgr.Literal(lit.NewLit(1, true))
	x2 := mgr.Literal(lit.NewLit(2, true))
	want, err := mgr.Conjoin(x1, x2)
	if err != nil {
		t.Fatalf("Conjoin returned error: %v", err)
	}
	if got != want {
		t.Errorf("CompileSDD decision line did not reconstruct conjoin(x1, x2)")
	}
}

func TestSerializeSDDRoundTrips(t *testing.T) {
	mgr := sdd.NewManager([]lit.Var{1, 2})
	x1 := mgr.Literal(lit.NewLit(1, true))
	x2 := mgr.Literal(lit.NewLit(2, true))
	original, err := mgr.Conjoin(x1, x2)
	if err != nil {
		t.Fatalf("Conjoin returned error: %v", err)
	}

	lines := SerializeSDD(original)
	if len(lines) == 0 {
		t.Fatalf("SerializeSDD produced no lines")
	}

	mgr2 := sdd.NewManager([]lit.Var{1, 2})
	roundTripped, err := CompileSDD(mgr2, lines)
	if err != nil {
		t.Fatalf("CompileSDD returned error on round trip: %v", err)
	}
	if roundTripped.Kind != original.Kind {
		t.Errorf("round-tripped node kind = %v, want %v", roundTripped.Kind, original.Kind)
	}
}

func TestCompileCircuitCNF(t *testing.T) {
	// (x1 ∨ x2) ∧ (¬x1 ∨ x2)
	lines := []CircuitFormatLine{
		{Kind: LineHeader, HeaderCount: 2},
		{Kind: LineClause, ClauseLiterals: []lit.Lit{lit.NewLit(1, true), lit.NewLit(2, true)}},
		{Kind: LineClause, ClauseLiterals: []lit.Lit{lit.NewLit(1, false), lit.NewLit(2, true)}},
	}

	c, err := CompileCircuit(lines, Conjunctive)
	if err != nil {
		t.Fatalf("CompileCircuit returned error: %v", err)
	}
	if err := c.CheckLinearization(); err != nil {
		t.Errorf("compiled circuit failed CheckLinearization: %v", err)
	}
	if c.RootNode().Kind.String() != "And" {
		t.Errorf("CNF compile should root at an And node, got %v", c.RootNode().Kind)
	}
}

func TestCompileCircuitRejectsEmptyClauses(t *testing.T) {
	if _, err := CompileCircuit(nil, Conjunctive); err == nil {
		t.Errorf("CompileCircuit with no clauses should return an error")
	}
}

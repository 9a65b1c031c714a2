package circuit

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/renatogeh/logiccircuits/lit"
)

func TestVariableScope(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)
	scope := VariableScope(c)
	if scope.Len() != 2 || !scope.Contains(1) || !scope.Contains(2) {
		t.Errorf("VariableScope = %v, want {1, 2}", scope.Slice())
	}
}

func TestIsDecomposableAndIsSmoothOnXorLike(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)
	if !IsDecomposable(c) {
		t.Errorf("xor-like circuit should be decomposable")
	}
	if !IsSmooth(c) {
		t.Errorf("xor-like circuit should be smooth")
	}
}

func TestIsDecomposableRejectsOverlappingAnd(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x1Again := b.AddLiteral(lit.NewLit(1, true))
	and := b.AddAnd([]NodeID{x1, x1Again})
	c, err := b.Build(and)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if IsDecomposable(c) {
		t.Errorf("And over a shared variable must not be decomposable")
	}
}

func TestIsSmoothRejectsUnevenOr(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))
	or := b.AddOr([]NodeID{x1, x2})
	c, err := b.Build(or)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if IsSmooth(c) {
		t.Errorf("Or over children with differing scopes must not be smooth")
	}
}

func TestSatProbUnderUniformPrior(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)
	p := SatProb(c, nil)
	want := big.NewRat(1, 2)
	if p.Cmp(want) != 0 {
		t.Errorf("SatProb = %v, want %v", p, want)
	}
}

func TestModelCountUnderUniformPrior(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)
	mc := ModelCount(c, nil, 0)
	want := big.NewRat(2, 1)
	if mc.Cmp(want) != 0 {
		t.Errorf("ModelCount = %v, want %v", mc, want)
	}
}

func TestProbEquivSignatureAgreesOnEquivalentNodes(t *testing.T) {
	b := NewBuilder()
	x1 := b.AddLiteral(lit.NewLit(1, true))
	x2 := b.AddLiteral(lit.NewLit(2, true))
	andA := b.AddAnd([]NodeID{x1, x2})
	andB := b.AddAnd([]NodeID{x2, x1})
	or := b.AddOr([]NodeID{andA, andB})
	c, err := b.Build(or)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	sigs, err := ProbEquivSignature(c, 8, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("ProbEquivSignature returned error: %v", err)
	}

	sigA := sigs.Nodes[andA]
	sigB := sigs.Nodes[andB]
	for i := range sigA {
		if sigA[i].Cmp(sigB[i]) != 0 {
			t.Errorf("semantically equal And nodes have differing signature components at %d", i)
		}
	}
}

func TestProbEquivSignatureRejectsInvalidK(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)
	if _, err := ProbEquivSignature(c, 0, rand.New(rand.NewSource(1))); err == nil {
		t.Errorf("ProbEquivSignature with k=0 should return an error")
	}
}

func TestEvaluateBatch(t *testing.T) {
	c, _, _, _, _ := buildXorLike(t)

	// Four assignments packed into 4 bits: (x1,x2) = (0,0),(0,1),(1,0),(1,1).
	x1bits := big.NewInt(0b1100)
	x2bits := big.NewInt(0b1010)

	result := EvaluateBatch(c, map[lit.Var]*big.Int{1: x1bits, 2: x2bits}, 4)
	want := big.NewInt(0b1001)
	if result.Cmp(want) != 0 {
		t.Errorf("EvaluateBatch = %b, want %b", result, want)
	}
}

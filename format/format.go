// Package format implements the CircuitFormatLine record-level contract
// described in §4.6/§6: parsers emit an ordered sequence of records and the
// compile step walks them in order, resolving ids to already-compiled
// nodes; serializers reverse the mapping, assigning ids in
// children-before-parents order. Reading/writing the actual external text
// grammars (.sdd, .psdd, .circuit, .cnf, .dnf, .vtree) is an explicit
// non-goal (§6) — this package only compiles and serializes the
// already-tokenized record shape a parser would have produced.
//
// Two compile targets exist because the specification's external formats
// split along the same line the core's own packages do: SDD/PSDD/Logistic
// Circuit files describe decision nodes keyed to a vtree — those compile
// into canonical sdd.Node values, exclusively via the apply engine
// (Conjoin/Disjoin), never by fabricating a decision's elements directly,
// per the SDD node lifecycle invariant (§3 Lifecycle). CNF/DNF files
// describe plain clause conjunctions/disjunctions with no vtree — those
// compile into the logical-DAG circuit.Circuit layer instead.
//
// Grounded on the teacher's DagCodegenContext
// (internal/compiler/dag_codegen.go): getOrCreatePrimitiveNode's id-mapping
// discipline becomes CompileSDD's idToNode, and generateDagRecursive's
// children-before-parents walk becomes SerializeSDD's id assignment.
package format

import (
	"fmt"

	"github.com/renatogeh/logiccircuits/circuit"
	cerrors "github.com/renatogeh/logiccircuits/pkg/errors"
	"github.com/renatogeh/logiccircuits/lit"
	"github.com/renatogeh/logiccircuits/sdd"
)

// LineKind discriminates a CircuitFormatLine's payload shape.
type LineKind int

const (
	// LineComment and LineHeader carry no node; CompileSDD and
	// CompileCircuit skip them.
	LineComment LineKind = iota
	LineHeader
	LineTrue
	LineFalse
	LineLiteral
	// LineDecision is an SDD decision record: an ordered list of (prime,
	// sub) id pairs.
	LineDecision
	// LineClause is a CNF/DNF clause record: a flat list of literals.
	LineClause
)

// Ref is one (prime, sub) id pair within a LineDecision's children.
type Ref struct {
	Prime int
	Sub   int
}

// CircuitFormatLine is the external parser/serializer collaborator's
// contract: one already-tokenized record. VtreeID is meaningful only for
// SDD/PSDD-shaped lines; ClauseLiterals only for LineClause.
type CircuitFormatLine struct {
	Kind           LineKind
	ID             int
	VtreeID        int
	Lit            lit.Lit
	Children       []Ref
	ClauseLiterals []lit.Lit
	Comment        string
	HeaderCount    int
}

// CompileSDD walks lines in order, resolving each record's ids to
// already-compiled sdd.Node values, and returns the node compiled for the
// final non-comment/header line. Every decision record is reconstructed by
// actually disjoining its (prime ∧ sub) terms through mgr's apply engine —
// mgr.Conjoin/mgr.Disjoin — rather than fabricating an XY-partition
// directly, so the result is canonicalized exactly as if it had been built
// incrementally by calling code. mgr must already span every variable the
// lines reference.
func CompileSDD(mgr *sdd.Manager, lines []CircuitFormatLine) (*sdd.Node, error) {
	idToNode := make(map[int]*sdd.Node, len(lines))
	var lastID int
	sawAny := false

	for _, line := range lines {
		switch line.Kind {
		case LineComment, LineHeader:
			continue
		case LineTrue:
			idToNode[line.ID] = mgr.True()
		case LineFalse:
			idToNode[line.ID] = mgr.False()
		case LineLiteral:
			idToNode[line.ID] = mgr.Literal(line.Lit)
		case LineDecision:
			n, err := compileDecisionLine(mgr, idToNode, line)
			if err != nil {
				return nil, err
			}
			idToNode[line.ID] = n
		default:
			return nil, cerrors.NewParseError(fmt.Sprintf("format: line %d has a kind CompileSDD does not recognize", line.ID))
		}
		lastID = line.ID
		sawAny = true
	}

	if !sawAny {
		return nil, cerrors.NewParseError("format: no compilable lines")
	}
	root, ok := idToNode[lastID]
	if !ok {
		return nil, cerrors.NewParseError(fmt.Sprintf("format: final line id %d never resolved to a node", lastID))
	}
	return root, nil
}

func compileDecisionLine(mgr *sdd.Manager, idToNode map[int]*sdd.Node, line CircuitFormatLine) (*sdd.Node, error) {
	result := mgr.False()
	for _, ref := range line.Children {
		prime, ok := idToNode[ref.Prime]
		if !ok {
			return nil, cerrors.NewParseError(fmt.Sprintf("format: decision %d references unresolved prime id %d", line.ID, ref.Prime))
		}
		sub, ok := idToNode[ref.Sub]
		if !ok {
			return nil, cerrors.NewParseError(fmt.Sprintf("format: decision %d references unresolved sub id %d", line.ID, ref.Sub))
		}
		term, err := mgr.Conjoin(prime, sub)
		if err != nil {
			return nil, err
		}
		result, err = mgr.Disjoin(result, term)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// SerializeSDD walks the SDD DAG rooted at root in children-before-parents
// order and emits one CircuitFormatLine per reachable node, assigning ids
// densely starting at 0.
func SerializeSDD(root *sdd.Node) []CircuitFormatLine {
	ids := make(map[*sdd.Node]int)
	var lines []CircuitFormatLine
	var visit func(n *sdd.Node) int
	visit = func(n *sdd.Node) int {
		if id, ok := ids[n]; ok {
			return id
		}
		switch n.Kind {
		case sdd.KindTrue:
			id := len(ids)
			ids[n] = id
			lines = append(lines, CircuitFormatLine{Kind: LineTrue, ID: id})
			return id
		case sdd.KindFalse:
			id := len(ids)
			ids[n] = id
			lines = append(lines, CircuitFormatLine{Kind: LineFalse, ID: id})
			return id
		case sdd.KindLiteral:
			id := len(ids)
			ids[n] = id
			lines = append(lines, CircuitFormatLine{Kind: LineLiteral, ID: id, Lit: n.Lit})
			return id
		default:
			refs := make([]Ref, len(n.Elements))
			for i, e := range n.Elements {
				refs[i] = Ref{Prime: visit(e.Prime), Sub: visit(e.Sub)}
			}
			id := len(ids)
			ids[n] = id
			lines = append(lines, CircuitFormatLine{Kind: LineDecision, ID: id, Children: refs})
			return id
		}
	}
	visit(root)
	return lines
}

// ClauseCombinator selects how CompileCircuit combines LineClause records:
// Conjunctive treats each clause as a disjunction of literals and the whole
// formula as their conjunction (CNF); Disjunctive is the dual (DNF).
type ClauseCombinator int

const (
	Conjunctive ClauseCombinator = iota
	Disjunctive
)

// CompileCircuit compiles a sequence of LineClause records into the
// logical-DAG layer, combining clauses per mode. This is the CNF/DNF
// external-format compile target; unlike CompileSDD it produces a plain
// circuit.Circuit with no vtree association.
func CompileCircuit(lines []CircuitFormatLine, mode ClauseCombinator) (*circuit.Circuit, error) {
	b := circuit.NewBuilder()
	var clauses []circuit.NodeID

	for _, line := range lines {
		switch line.Kind {
		case LineComment, LineHeader:
			continue
		case LineClause:
			terms := make([]circuit.NodeID, len(line.ClauseLiterals))
			for i, l := range line.ClauseLiterals {
				terms[i] = b.AddLiteral(l)
			}
			var node circuit.NodeID
			if mode == Conjunctive {
				node = b.AddOr(terms)
			} else {
				node = b.AddAnd(terms)
			}
			clauses = append(clauses, node)
		default:
			return nil, cerrors.NewParseError(fmt.Sprintf("format: line %d has a kind CompileCircuit does not recognize", line.ID))
		}
	}

	if len(clauses) == 0 {
		return nil, cerrors.NewParseError("format: no clauses to compile")
	}

	var root circuit.NodeID
	if mode == Conjunctive {
		root = b.AddAnd(clauses)
	} else {
		root = b.AddOr(clauses)
	}
	return b.Build(root)
}

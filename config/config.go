// Package config loads the YAML-driven ambient configuration this toolkit
// needs beyond the core algorithms themselves: per-variable prior
// probabilities for circuit.SatProb/circuit.ModelCount, and toggles
// selecting which rewrite passes RewritePasses.Apply runs on a circuit.
//
// Grounded on the teacher's internal/dag.DagEngineConfig/
// DefaultDagEngineConfig builder-config idiom (internal/dag/engine.go): a
// plain struct with a Default constructor and named preset constructors,
// populated here from a YAML document the way the teacher's
// internal/compiler.Compiler loads a SIGMA rule document with
// gopkg.in/yaml.v3.
package config

import (
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/renatogeh/logiccircuits/circuit"
	"github.com/renatogeh/logiccircuits/lit"
	cerrors "github.com/renatogeh/logiccircuits/pkg/errors"
)

// RewritePasses selects which circuit rewrites a Builder-driven pipeline
// runs automatically, mirroring the teacher's
// DagEngineConfig.EnableOptimization/OptimizationLevel toggle pair.
type RewritePasses struct {
	PropagateConstants bool `yaml:"propagate_constants"`
	Smooth             bool `yaml:"smooth"`
}

// DefaultRewritePasses returns the conservative default: only constant
// propagation runs automatically, matching OptimizationLevel 1 ("Basic
// optimizations") in the teacher's level scheme — smoothing changes the
// circuit's shape in ways a caller may not want applied implicitly.
func DefaultRewritePasses() RewritePasses {
	return RewritePasses{PropagateConstants: true, Smooth: false}
}

// AllRewritePasses enables every rewrite this package knows how to chain,
// mirroring the teacher's OptimizationLevel 3 ("Aggressive optimizations").
func AllRewritePasses() RewritePasses {
	return RewritePasses{PropagateConstants: true, Smooth: true}
}

// priorDocument is the on-disk YAML shape: a list under "priors" of
// entries, each giving a variable id and its prior probability as a
// numerator/denominator pair, so the document round-trips exactly through
// the exact-rational arithmetic §4.2 requires.
type priorDocument struct {
	Priors []priorEntry `yaml:"priors"`
}

type priorEntry struct {
	Var         uint32 `yaml:"var"`
	Numerator   int64  `yaml:"numerator"`
	Denominator int64  `yaml:"denominator"`
}

// Priors holds the per-variable prior probabilities loaded from a document,
// together with the default used for any variable the document omits.
type Priors struct {
	byVar   map[lit.Var]*big.Rat
	Default *big.Rat
}

// LoadPriors reads a YAML prior document from path. A variable absent from
// the document falls back to 1/2, matching circuit.DefaultVarProb.
func LoadPriors(path string) (*Priors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.WrapParseError(err)
	}
	return ParsePriors(data)
}

// ParsePriors decodes a YAML prior document already read into memory.
func ParsePriors(data []byte) (*Priors, error) {
	var doc priorDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, cerrors.WrapParseError(err)
	}

	byVar := make(map[lit.Var]*big.Rat, len(doc.Priors))
	for _, e := range doc.Priors {
		if e.Denominator == 0 {
			return nil, cerrors.NewParseError("config: prior entry has zero denominator")
		}
		byVar[lit.Var(e.Var)] = big.NewRat(e.Numerator, e.Denominator)
	}
	return &Priors{byVar: byVar, Default: big.NewRat(1, 2)}, nil
}

// VarProb adapts Priors into the circuit.VarProb function SatProb/
// ModelCount consume.
func (p *Priors) VarProb() circuit.VarProb {
	return func(v lit.Var) *big.Rat {
		if r, ok := p.byVar[v]; ok {
			return r
		}
		return p.Default
	}
}

// Get returns the prior recorded for v, or the document default if v was
// never listed.
func (p *Priors) Get(v lit.Var) *big.Rat {
	if r, ok := p.byVar[v]; ok {
		return r
	}
	return p.Default
}

// Len reports how many variables the document assigned an explicit prior.
func (p *Priors) Len() int {
	return len(p.byVar)
}

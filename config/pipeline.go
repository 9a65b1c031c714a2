package config

import "github.com/renatogeh/logiccircuits/circuit"

// Apply runs the rewrite passes p enables, in the fixed order
// propagate-constants then smooth, mirroring the teacher's
// DagOptimizer.Optimize pass pipeline (constant folding before CSE/DCE):
// constant propagation shrinks the circuit before smoothing pads it back
// out, so running them in the other order would do needless work.
func (p RewritePasses) Apply(c *circuit.Circuit) (*circuit.Circuit, error) {
	out := c
	var err error
	if p.PropagateConstants {
		out, err = circuit.PropagateConstants(out)
		if err != nil {
			return nil, err
		}
	}
	if p.Smooth {
		out, err = circuit.Smooth(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// internal/solve/solver.go
package solve

import (
	"context"
	"errors"
	"fmt"

	"seqopt/core/chisel"
)

// Solver is one design problem owned by a single request.
type Solver interface {
	ResolveConstraints(ctx context.Context) error
	Optimize(ctx context.Context) error
	Sequence() string
	ConstraintsSummary() string
	ObjectivesSummary() string
	AllConstraintsPass() bool
}

// Factory creates a Solver in its linear or circular variant.
type Factory interface {
	New(sequence string, constraints []chisel.Constraint, objectives []chisel.Objective, circular bool) (Solver, error)
}

// ChiselFactory builds solvers on the native engine.
type ChiselFactory struct {
	Options chisel.Options
}

func (f ChiselFactory) New(sequence string, constraints []chisel.Constraint, objectives []chisel.Objective, circular bool) (Solver, error) {
	if circular {
		return chisel.NewCircularProblem(sequence, constraints, objectives, f.Options)
	}
	return chisel.NewProblem(sequence, constraints, objectives, f.Options)
}

// Capability records whether a solver can be used in this process. It is
// built once at start-up and never changes.
type Capability struct {
	Available bool
	Reason    string
}

// Detect decides solver availability from configuration.
func Detect(enabled bool, f Factory) Capability {
	switch {
	case !enabled:
		return Capability{Reason: "solver disabled by configuration (solver.enabled=false)"}
	case f == nil:
		return Capability{Reason: "no solver engine registered"}
	}
	return Capability{Available: true}
}

// ConstraintUnsatisfiableError reports that constraint resolution found
// no satisfying sequence.
type ConstraintUnsatisfiableError struct {
	Err error
}

func (e *ConstraintUnsatisfiableError) Error() string {
	return "constraints could not be satisfied: " + e.Err.Error()
}

func (e *ConstraintUnsatisfiableError) Unwrap() error { return e.Err }

// Failing lists the constraints still failing when the engine reports
// them.
func (e *ConstraintUnsatisfiableError) Failing() []string {
	var ns *chisel.NoSolutionError
	if errors.As(e.Err, &ns) {
		return ns.Failing
	}
	return nil
}

func wrapPhase(phase string, err error) error {
	return fmt.Errorf("%s: %w", phase, err)
}

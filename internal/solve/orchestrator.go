// internal/solve/orchestrator.go
package solve

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"seqopt/internal/builder"
)

// State is a step of the two-phase solve.
type State int

const (
	Built State = iota
	ConstraintsResolved
	ObjectivesOptimized
	Skipped
	Reported
	Failed
)

var stateNames = [...]string{"built", "constraints_resolved", "objectives_optimized", "skipped", "reported", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Outcome is the result of a successful solve.
type Outcome struct {
	Sequence           string
	ConstraintsSummary string
	ObjectivesSummary  string
	AllConstraintsPass bool
	State              State
	Path               []State
}

// Orchestrator drives one request through constraint resolution and,
// when objectives exist, optimization.
type Orchestrator struct {
	factory Factory
	log     *zap.Logger
}

func NewOrchestrator(f Factory, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{factory: f, log: log}
}

type run struct {
	log  *zap.Logger
	path []State
}

func (r *run) enter(s State, fields ...zap.Field) {
	r.path = append(r.path, s)
	r.log.Debug("solve state", append([]zap.Field{zap.Stringer("state", s)}, fields...)...)
}

func (r *run) fail(err error) error {
	from := r.path[len(r.path)-1]
	r.path = append(r.path, Failed)
	r.log.Info("solve failed", zap.Stringer("from", from), zap.Error(err))
	return err
}

// Solve runs b to completion. Errors leave the run in state Failed.
func (o *Orchestrator) Solve(ctx context.Context, b *builder.Built) (*Outcome, error) {
	r := &run{log: o.log}
	r.enter(Built,
		zap.Int("length", len(b.Sequence)),
		zap.Bool("circular", b.Circular),
		zap.Int("constraints", len(b.Constraints)),
		zap.Int("objectives", len(b.Objectives)))

	s, err := o.factory.New(b.Sequence, b.Constraints, b.Objectives, b.Circular)
	if err != nil {
		return nil, r.fail(wrapPhase("create problem", err))
	}

	if err := s.ResolveConstraints(ctx); err != nil {
		if ctx.Err() == nil || !errors.Is(err, ctx.Err()) {
			err = &ConstraintUnsatisfiableError{Err: err}
		}
		return nil, r.fail(wrapPhase("resolve constraints", err))
	}
	r.enter(ConstraintsResolved)

	final := Skipped
	if len(b.Objectives) > 0 {
		if err := s.Optimize(ctx); err != nil {
			return nil, r.fail(wrapPhase("optimize objectives", err))
		}
		final = ObjectivesOptimized
	}
	r.enter(final)

	out := &Outcome{
		Sequence:           s.Sequence(),
		ConstraintsSummary: s.ConstraintsSummary(),
		AllConstraintsPass: s.AllConstraintsPass(),
	}
	if final == ObjectivesOptimized {
		out.ObjectivesSummary = s.ObjectivesSummary()
	}
	r.enter(Reported, zap.Bool("all_constraints_pass", out.AllConstraintsPass))
	out.State, out.Path = Reported, r.path
	return out, nil
}

// internal/report/report.go
package report

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seqopt/internal/builder"
	"seqopt/internal/metrics"
	"seqopt/internal/solve"
	"seqopt/internal/spec"
	"seqopt/pkg/api"
)

const (
	NoConstraintsApplied = "solver not available - no constraints applied"
	NoObjectivesApplied  = "solver not available - no objectives applied"
)

// Reporter is the single outer boundary of the pipeline: every request
// ends in exactly one api.ResultV1.
type Reporter struct {
	capability solve.Capability
	builder    *builder.Builder
	orch       *solve.Orchestrator
	log        *zap.Logger
	metrics    *metrics.Recorder
}

// Deps are the collaborators of a Reporter. Log and Metrics may be nil.
type Deps struct {
	Capability   solve.Capability
	Builder      *builder.Builder
	Orchestrator *solve.Orchestrator
	Log          *zap.Logger
	Metrics      *metrics.Recorder
}

func New(d Deps) *Reporter {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		capability: d.Capability,
		builder:    d.Builder,
		orch:       d.Orchestrator,
		log:        log,
		metrics:    d.Metrics,
	}
}

// Capability returns the availability fixed at construction.
func (r *Reporter) Capability() solve.Capability { return r.capability }

// Run executes req and maps the outcome to a response document.
func (r *Reporter) Run(ctx context.Context, req spec.Request) api.ResultV1 {
	start := time.Now()
	log := r.log.With(zap.String("request_id", uuid.NewString()))

	if !r.capability.Available {
		log.Warn("solver unavailable; returning input unchanged", zap.String("reason", r.capability.Reason))
		r.metrics.Observe(metrics.OutcomePassthrough, len(req.Sequence), time.Since(start))
		return api.ResultV1{
			Success:               true,
			OptimizedSequence:     req.Sequence,
			ConstraintsSummary:    NoConstraintsApplied,
			ObjectivesSummary:     NoObjectivesApplied,
			AllConstraintsPassing: true,
		}
	}

	out, err := r.safeRun(ctx, log, req)
	if err != nil {
		class := Classify(err)
		log.Error("design request failed", zap.String("class", class), zap.Error(err))
		r.metrics.Failure(class)
		r.metrics.Observe(metrics.OutcomeFailure, len(req.Sequence), time.Since(start))
		return api.Failure(err.Error(), Traceback(err))
	}

	log.Info("design request finished",
		zap.Int("length", len(out.Sequence)),
		zap.Bool("all_constraints_pass", out.AllConstraintsPass),
		zap.Duration("elapsed", time.Since(start)))
	r.metrics.Observe(metrics.OutcomeSuccess, len(req.Sequence), time.Since(start))
	return api.ResultV1{
		Success:               true,
		OptimizedSequence:     out.Sequence,
		ConstraintsSummary:    out.ConstraintsSummary,
		ObjectivesSummary:     out.ObjectivesSummary,
		AllConstraintsPassing: out.AllConstraintsPass,
	}
}

// PanicError carries a recovered panic and its stack.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("internal error: %v", e.Value) }

func (r *Reporter) safeRun(ctx context.Context, log *zap.Logger, req spec.Request) (out *solve.Outcome, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	built, err := r.builder.BuildRequest(req)
	if err != nil {
		return nil, err
	}
	log.Debug("request built",
		zap.Int("constraints", len(built.Constraints)),
		zap.Int("objectives", len(built.Objectives)))
	return r.orch.Solve(ctx, built)
}

// Classify names the error class used in logs and metrics.
func Classify(err error) string {
	var (
		ute *spec.UnknownTypeError
		pme *spec.ParameterMismatchError
		doe *spec.DegenerateObjectiveError
		ise *spec.InvalidSequenceError
		cue *solve.ConstraintUnsatisfiableError
		pe  *PanicError
	)
	switch {
	case errors.As(err, &ute):
		return "unknown_type"
	case errors.As(err, &pme):
		return "parameter_mismatch"
	case errors.As(err, &doe):
		return "degenerate_objective"
	case errors.As(err, &ise):
		return "invalid_sequence"
	case errors.As(err, &cue):
		return "constraint_unsatisfiable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.As(err, &pe):
		return "panic"
	}
	return "internal"
}

// Traceback renders the wrap chain of err, one line per layer, followed by
// the stack of a recovered panic.
func Traceback(err error) string {
	var b strings.Builder
	for depth := 0; err != nil; depth++ {
		fmt.Fprintf(&b, "%s%T: %s\n", strings.Repeat("  ", depth), err, err.Error())
		if pe, ok := err.(*PanicError); ok {
			b.Write(pe.Stack)
		}
		err = errors.Unwrap(err)
	}
	return b.String()
}

// FromV1 converts the wire request to the pipeline's request type.
func FromV1(req api.RequestV1) spec.Request {
	conv := func(in []api.SpecV1) []spec.Raw {
		out := make([]spec.Raw, 0, len(in))
		for _, s := range in {
			out = append(out, spec.Raw{Type: s.Type, Params: s.Params})
		}
		return out
	}
	return spec.Request{
		Sequence:    req.Sequence,
		Constraints: conv(req.Constraints),
		Objectives:  conv(req.Objectives),
		Circular:    req.IsCircular,
	}
}

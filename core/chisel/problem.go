// core/chisel/problem.go
package chisel

import (
	"fmt"
	"math/rand/v2"

	"seqopt/core/dna"
)

// Options tunes the local search.
type Options struct {
	Seed               uint64
	MaxIterations      int // constraint-resolution rounds
	OptimizeIterations int // objective-improvement rounds
	MaxProposals       int // mutations tried per round
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{Seed: 1, MaxIterations: 2000, OptimizeIterations: 2000, MaxProposals: 400}
}

// Problem is a sequence under design.
type Problem struct {
	seq         []byte
	original    []byte
	circular    bool
	constraints []Constraint
	objectives  []Objective
	space       *space
	rng         *rand.Rand
	opts        Options
}

// NewProblem builds a linear design problem.
func NewProblem(sequence string, constraints []Constraint, objectives []Objective, opts Options) (*Problem, error) {
	return newProblem(sequence, constraints, objectives, false, opts)
}

// NewCircularProblem builds a problem whose sequence wraps at the origin.
func NewCircularProblem(sequence string, constraints []Constraint, objectives []Objective, opts Options) (*Problem, error) {
	return newProblem(sequence, constraints, objectives, true, opts)
}

func newProblem(sequence string, constraints []Constraint, objectives []Objective, circular bool, opts Options) (*Problem, error) {
	seq, err := dna.Validate(sequence)
	if err != nil {
		return nil, err
	}
	def := DefaultOptions()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = def.MaxIterations
	}
	if opts.OptimizeIterations <= 0 {
		opts.OptimizeIterations = def.OptimizeIterations
	}
	if opts.MaxProposals <= 0 {
		opts.MaxProposals = def.MaxProposals
	}
	p := &Problem{
		seq:         []byte(seq),
		original:    []byte(seq),
		circular:    circular,
		constraints: constraints,
		objectives:  objectives,
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		opts:        opts,
	}
	for _, s := range p.specs() {
		if lc, ok := s.(located); ok {
			if err := lc.location().Check(len(p.seq)); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Label(), err)
			}
		}
		if pr, ok := s.(preparer); ok {
			if err := pr.prepare(p); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Label(), err)
			}
		}
	}
	p.space = newSpace(p)
	return p, nil
}

func (p *Problem) specs() []interface{ Label() string } {
	out := make([]interface{ Label() string }, 0, len(p.constraints)+len(p.objectives))
	for _, c := range p.constraints {
		out = append(out, c)
	}
	for _, o := range p.objectives {
		out = append(out, o)
	}
	return out
}

// Sequence returns the current sequence.
func (p *Problem) Sequence() string { return string(p.seq) }

// Len returns the sequence length.
func (p *Problem) Len() int { return len(p.seq) }

// Circular reports whether the sequence wraps.
func (p *Problem) Circular() bool { return p.circular }

// Bytes exposes the current sequence to specifications. Callers must not
// modify it.
func (p *Problem) Bytes() []byte { return p.seq }

// Original returns the sequence the problem was created with.
func (p *Problem) Original() []byte { return p.original }

// AllConstraintsPass reports whether every constraint currently passes.
func (p *Problem) AllConstraintsPass() bool {
	for _, c := range p.constraints {
		if !c.Evaluate(p).Passes() {
			return false
		}
	}
	return true
}

// constraintScore sums the breaches of all failing constraints (<= 0).
func (p *Problem) constraintScore() (float64, []Location) {
	total := 0.0
	var breaches []Location
	for _, c := range p.constraints {
		ev := c.Evaluate(p)
		if ev.Passes() {
			continue
		}
		total += ev.Score
		breaches = append(breaches, ev.Breaches...)
	}
	return total, breaches
}

// objectiveScore sums boosted objective scores.
func (p *Problem) objectiveScore() (float64, []Location) {
	total := 0.0
	var breaches []Location
	for _, o := range p.objectives {
		ev := o.Evaluate(p)
		total += o.Boost() * ev.Score
		breaches = append(breaches, ev.Breaches...)
	}
	return total, breaches
}

// window returns the bytes of l, unwrapping the origin when circular.
func (p *Problem) window(l Location) []byte {
	n := len(p.seq)
	if l.End <= n {
		return p.seq[l.Start:l.End]
	}
	out := make([]byte, 0, l.Len())
	out = append(out, p.seq[l.Start:]...)
	return append(out, p.seq[:l.End-n]...)
}

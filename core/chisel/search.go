// core/chisel/search.go
package chisel

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrConstraintsFailing is returned by Optimize when called before every
// constraint passes.
var ErrConstraintsFailing = errors.New("constraints must pass before optimizing objectives")

// NoSolutionError reports that constraint resolution gave up.
type NoSolutionError struct {
	Failing    []string
	Iterations int
	Reason     string
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no solution after %d iterations (%s); failing: %s",
		e.Iterations, e.Reason, strings.Join(e.Failing, "; "))
}

const maxStalls = 5

// ResolveConstraints searches for a sequence satisfying every constraint.
// Each round applies the single mutation that most reduces the total
// breach; when no single mutation helps, random mutation pairs are tried.
func (p *Problem) ResolveConstraints(ctx context.Context) error {
	for iter := 0; iter < p.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		score, breaches := p.constraintScore()
		if score >= 0 {
			return nil
		}
		props := p.proposals(breaches)
		if len(props) == 0 {
			return p.noSolution(iter, "no mutable positions in breached regions")
		}
		best, bestScore := -1, score
		for i, m := range props {
			old := p.apply(m)
			s, _ := p.constraintScore()
			p.restore(m, old)
			if s > bestScore {
				best, bestScore = i, s
			}
		}
		if best >= 0 {
			p.apply(props[best])
			continue
		}
		if !p.perturb(score, props) {
			return p.noSolution(iter, "local search stalled")
		}
	}
	if score, _ := p.constraintScore(); score >= 0 {
		return nil
	}
	return p.noSolution(p.opts.MaxIterations, "iteration budget exhausted")
}

// perturb tries random pairs of mutations and keeps the first pair that
// improves the constraint score.
func (p *Problem) perturb(score float64, props []mutation) bool {
	if len(props) < 2 {
		return false
	}
	for try := 0; try < p.opts.MaxProposals; try++ {
		a := props[p.rng.IntN(len(props))]
		b := props[p.rng.IntN(len(props))]
		if a.slot == b.slot {
			continue
		}
		oldA := p.apply(a)
		oldB := p.apply(b)
		if s, _ := p.constraintScore(); s > score {
			return true
		}
		p.restore(b, oldB)
		p.restore(a, oldA)
	}
	return false
}

func (p *Problem) noSolution(iter int, reason string) error {
	var failing []string
	for _, c := range p.constraints {
		if ev := c.Evaluate(p); !ev.Passes() {
			failing = append(failing, fmt.Sprintf("%s: %s", c.Label(), ev.Message))
		}
	}
	return &NoSolutionError{Failing: failing, Iterations: iter, Reason: reason}
}

// Optimize improves the objectives while keeping every constraint
// satisfied. It stops at a local optimum or when the budget runs out.
func (p *Problem) Optimize(ctx context.Context) error {
	if len(p.objectives) == 0 {
		return nil
	}
	if !p.AllConstraintsPass() {
		return ErrConstraintsFailing
	}
	stalls := 0
	for iter := 0; iter < p.opts.OptimizeIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		score, regions := p.objectiveScore()
		props := p.proposals(regions)
		if len(props) == 0 {
			return nil
		}
		sampled := len(props) == p.opts.MaxProposals
		best, bestScore := -1, score
		for i, m := range props {
			old := p.apply(m)
			if p.AllConstraintsPass() {
				if s, _ := p.objectiveScore(); s > bestScore+1e-12 {
					best, bestScore = i, s
				}
			}
			p.restore(m, old)
		}
		if best < 0 {
			if !sampled {
				return nil
			}
			if stalls++; stalls >= maxStalls {
				return nil
			}
			continue
		}
		stalls = 0
		p.apply(props[best])
	}
	return nil
}

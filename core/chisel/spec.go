// core/chisel/spec.go
package chisel

// Evaluation is the verdict of one specification on the current sequence.
// For constraints Score >= 0 means the constraint passes and a negative
// score measures how badly it is breached. For objectives higher is better.
type Evaluation struct {
	Score    float64
	Breaches []Location
	Message  string
}

// Passes reports whether a constraint evaluation is satisfied.
func (e Evaluation) Passes() bool { return e.Score >= 0 }

// Constraint is a hard requirement.
type Constraint interface {
	Label() string
	Evaluate(p *Problem) Evaluation
}

// Objective is a soft criterion maximised after constraints pass.
type Objective interface {
	Label() string
	Evaluate(p *Problem) Evaluation
	Boost() float64
}

// preparer captures state from the initial sequence (references,
// original translations) before any mutation happens.
type preparer interface {
	prepare(p *Problem) error
}

// restricter narrows the mutation space.
type restricter interface {
	restrict(p *Problem, s *space)
}

// located is implemented by specifications bound to a sub-region.
type located interface {
	location() Location
}

// core/chisel/summary.go
package chisel

import (
	"fmt"
	"strings"
)

// ConstraintsSummary renders a plain-text report of every constraint.
func (p *Problem) ConstraintsSummary() string {
	var b strings.Builder
	failed := 0
	lines := make([]string, 0, len(p.constraints))
	for _, c := range p.constraints {
		ev := c.Evaluate(p)
		status := "PASS"
		if !ev.Passes() {
			status = "FAIL"
			failed++
		}
		lines = append(lines, fmt.Sprintf("%s  %s: %s", status, c.Label(), ev.Message))
	}
	if failed == 0 {
		b.WriteString("===> SUCCESS - all constraints evaluations pass\n")
	} else {
		fmt.Fprintf(&b, "===> FAILURE: %d constraints evaluations failed\n", failed)
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// ObjectivesSummary renders a plain-text report of every objective.
func (p *Problem) ObjectivesSummary() string {
	var b strings.Builder
	total, _ := p.objectiveScore()
	fmt.Fprintf(&b, "===> TOTAL OBJECTIVES SCORE: %.3f\n", total)
	for _, o := range p.objectives {
		ev := o.Evaluate(p)
		fmt.Fprintf(&b, "%8.3f  %s: %s\n", o.Boost()*ev.Score, o.Label(), ev.Message)
	}
	return b.String()
}

// internal/spec/errors.go
package spec

import (
	"fmt"
	"strings"
)

// UnknownTypeError reports a type tag outside the registry for a role.
type UnknownTypeError struct {
	Tag  string
	Role Role
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q (known: %s)", e.Role, e.Tag, strings.Join(TagsFor(e.Role), ", "))
}

// ParameterMismatchError reports a parameter bundle rejected by a kind's
// constructor.
type ParameterMismatchError struct {
	Kind     Kind
	Expected []string
	Supplied []string
	Reason   string
}

func (e *ParameterMismatchError) Error() string {
	return fmt.Sprintf("%s: invalid parameters: %s (expected: [%s], supplied: [%s])",
		e.Kind, e.Reason, strings.Join(e.Expected, ", "), strings.Join(e.Supplied, ", "))
}

// DegenerateObjectiveError reports that every requested codon
// optimization objective collapsed to an empty region.
type DegenerateObjectiveError struct {
	Requested int
}

func (e *DegenerateObjectiveError) Error() string {
	return fmt.Sprintf("all %d %s objective(s) were dropped: their locations are shorter than one codon", e.Requested, CodonOptimize)
}

// InvalidSequenceError reports an unusable input sequence.
type InvalidSequenceError struct {
	Reason string
}

func (e *InvalidSequenceError) Error() string {
	return "invalid sequence: " + e.Reason
}

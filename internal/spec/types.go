// internal/spec/types.go
package spec

import "fmt"

// Location is a half-open [Start, End) region.
type Location struct {
	Start int
	End   int
}

func (l Location) Len() int { return l.End - l.Start }

func (l Location) String() string { return fmt.Sprintf("[%d, %d)", l.Start, l.End) }

// Raw is one caller-supplied specification: a type tag and a flat
// parameter bundle. Values are string, int, float64, bool, []any or
// Location.
type Raw struct {
	Type   string
	Params map[string]any
}

// Normalized is a Raw after alias resolution, defaulting, coercion and
// location adjustment. Dropped is only ever set for objectives.
type Normalized struct {
	Kind    Kind
	Params  map[string]any
	Dropped bool
}

// Request is one design problem.
type Request struct {
	Sequence    string
	Constraints []Raw
	Objectives  []Raw
	Circular    bool
}

// core/chisel/location.go
package chisel

import "fmt"

// Location is a half-open [Start, End) interval. The zero value means
// "the whole sequence".
type Location struct {
	Start int
	End   int
}

// IsWhole reports whether l is the whole-sequence sentinel.
func (l Location) IsWhole() bool { return l.Start == 0 && l.End == 0 }

// Len returns End-Start.
func (l Location) Len() int { return l.End - l.Start }

func (l Location) resolve(n int) Location {
	if l.IsWhole() {
		return Location{Start: 0, End: n}
	}
	return l
}

func (l Location) String() string { return fmt.Sprintf("%d-%d", l.Start, l.End) }

// Check validates l against a sequence of length n.
func (l Location) Check(n int) error {
	if l.IsWhole() {
		return nil
	}
	if l.Start < 0 || l.Start >= l.End || l.End > n {
		return fmt.Errorf("location [%d, %d) outside sequence of length %d", l.Start, l.End, n)
	}
	return nil
}

// split unwraps a span that runs past the origin of a circular sequence.
func split(l Location, n int) []Location {
	if l.Start >= n {
		return []Location{{Start: l.Start - n, End: l.End - n}}
	}
	if l.End <= n {
		return []Location{l}
	}
	return []Location{{Start: l.Start, End: n}, {Start: 0, End: l.End - n}}
}

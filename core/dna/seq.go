// core/dna/seq.go
package dna

import (
	"fmt"
	"unicode"
)

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['R'] = 'Y'
	complement['Y'] = 'R'
	complement['S'] = 'S'
	complement['W'] = 'W'
	complement['K'] = 'M'
	complement['M'] = 'K'
	complement['B'] = 'V'
	complement['V'] = 'B'
	complement['D'] = 'H'
	complement['H'] = 'D'
	complement['N'] = 'N'
}

// Normalize removes whitespace and quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns the normalized sequence or an error if it is empty or
// contains anything outside A/C/G/T.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if !IsACGT(s[i]) {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T", s[i], i+1)
		}
	}
	return s, nil
}

func IsACGT(b byte) bool {
	return b == 'A' || b == 'C' || b == 'G' || b == 'T'
}

// RevComp returns the reverse complement of an IUPAC sequence.
// Unknown bytes complement to N.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// IsWC reports whether a and b form a Watson-Crick pair.
func IsWC(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'T':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	default:
		return false
	}
}

// GCCount counts G and C in seq.
func GCCount(seq []byte) int {
	n := 0
	for _, b := range seq {
		if b == 'G' || b == 'C' {
			n++
		}
	}
	return n
}

// GCFraction returns the G+C fraction of seq; 0 for an empty slice.
func GCFraction(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	return float64(GCCount(seq)) / float64(len(seq))
}

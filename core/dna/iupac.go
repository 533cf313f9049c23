// core/dna/iupac.go
package dna

import (
	"bytes"
	"fmt"
	"strings"
)

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) { iupacMask[c] = bits }
	set('A', 1)
	set('C', 2)
	set('G', 4)
	set('T', 8)
	set('R', 1|4)
	set('Y', 2|8)
	set('S', 2|4)
	set('W', 1|8)
	set('K', 4|8)
	set('M', 1|2)
	set('B', 2|4|8)
	set('D', 1|4|8)
	set('H', 1|2|8)
	set('V', 1|2|4)
	set('N', 1|2|4|8)
}

// BaseMatch reports whether pattern base p accepts sequence base g.
// Sequence bases outside A/C/G/T never match.
func BaseMatch(g, p byte) bool {
	if !IsACGT(g) {
		return false
	}
	return iupacMask[p]&iupacMask[g] != 0
}

// Pattern is a compiled IUPAC motif searched on both strands.
type Pattern struct {
	Name string
	Site []byte
	rc   []byte
}

// CompilePattern accepts either an enzyme site name ("EcoRI_site",
// "EcoRI") or a literal IUPAC motif.
func CompilePattern(spec string) (Pattern, error) {
	name := strings.TrimSpace(spec)
	if name == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	if site, ok := LookupEnzymeSite(name); ok {
		return newPattern(name, []byte(site)), nil
	}
	motif := Normalize(name)
	for i := 0; i < len(motif); i++ {
		if iupacMask[motif[i]] == 0 {
			return Pattern{}, fmt.Errorf("pattern %q: not an enzyme site and invalid IUPAC base %q at %d", spec, motif[i], i+1)
		}
	}
	return newPattern(name, []byte(motif)), nil
}

func newPattern(name string, site []byte) Pattern {
	p := Pattern{Name: name, Site: site}
	if rc := RevComp(site); !bytes.Equal(rc, site) {
		p.rc = rc
	}
	return p
}

// Len returns the motif length.
func (p Pattern) Len() int { return len(p.Site) }

// FindAll returns every start position in seq where the motif (or its
// reverse complement) matches. In circular mode matches may span the
// origin; their start is still reported modulo len(seq).
func (p Pattern) FindAll(seq []byte, circular bool) []int {
	n, k := len(seq), len(p.Site)
	if k == 0 || n == 0 {
		return nil
	}
	last := n - k
	if circular {
		last = n - 1
	}
	var out []int
	for i := 0; i <= last; i++ {
		if p.matchAt(seq, i, p.Site) || (p.rc != nil && p.matchAt(seq, i, p.rc)) {
			out = append(out, i)
		}
	}
	return out
}

func (p Pattern) matchAt(seq []byte, i int, motif []byte) bool {
	n := len(seq)
	if len(motif) > n {
		return false
	}
	for j, m := range motif {
		pos := i + j
		if pos >= n {
			pos -= n
		}
		if !BaseMatch(seq[pos], m) {
			return false
		}
	}
	return true
}

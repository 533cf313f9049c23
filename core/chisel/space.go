// core/chisel/space.go
package chisel

import (
	"seqopt/core/codon"
)

var nucleotides = [][]byte{{'A'}, {'C'}, {'G'}, {'T'}}

// slot is one independently mutable unit: a single nucleotide or a codon.
type slot struct {
	start   int
	choices [][]byte
}

type codonRegion struct {
	start int
	aas   []byte
}

// space is the set of allowed mutations, derived once from the
// specifications at problem creation.
type space struct {
	slots   []slot
	at      []int // position -> slot index, -1 when not mutable
	locked  []bool
	regions []codonRegion
}

func newSpace(p *Problem) *space {
	n := len(p.seq)
	s := &space{at: make([]int, n), locked: make([]bool, n)}
	for _, sp := range p.specs() {
		if r, ok := sp.(restricter); ok {
			r.restrict(p, s)
		}
	}

	claimed := make([]bool, n)
	for _, reg := range s.regions {
		for k, aa := range reg.aas {
			pos := reg.start + 3*k
			if pos+3 > n || claimed[pos] || claimed[pos+1] || claimed[pos+2] {
				continue
			}
			claimed[pos], claimed[pos+1], claimed[pos+2] = true, true, true
			choices := s.codonChoices(p.original, pos, aa)
			if len(choices) > 1 {
				s.slots = append(s.slots, slot{start: pos, choices: choices})
			}
		}
	}
	for i := 0; i < n; i++ {
		if !claimed[i] && !s.locked[i] {
			s.slots = append(s.slots, slot{start: i, choices: nucleotides})
		}
	}

	for i := range s.at {
		s.at[i] = -1
	}
	for idx, sl := range s.slots {
		for k := 0; k < len(sl.choices[0]); k++ {
			s.at[sl.start+k] = idx
		}
	}
	return s
}

// codonChoices lists the codons for aa that keep every locked base intact.
func (s *space) codonChoices(original []byte, pos int, aa byte) [][]byte {
	var out [][]byte
	for _, c := range codon.CodonsFor(aa) {
		ok := true
		for k := 0; k < 3; k++ {
			if s.locked[pos+k] && original[pos+k] != c[k] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, []byte(c))
		}
	}
	return out
}

func (s *space) lock(l Location) {
	for i := l.Start; i < l.End && i < len(s.locked); i++ {
		s.locked[i] = true
	}
}

func (s *space) addCodons(start int, aas []byte) {
	s.regions = append(s.regions, codonRegion{start: start, aas: aas})
}

// mutation replaces the bytes of one slot.
type mutation struct {
	slot  int
	start int
	bases []byte
}

// proposals lists single-slot mutations touching the given regions,
// sampled down to MaxProposals.
func (p *Problem) proposals(regions []Location) []mutation {
	n := len(p.seq)
	pick := make([]bool, len(p.space.slots))
	var order []int
	for _, r := range regions {
		for _, part := range split(r, n) {
			for i := part.Start; i < part.End; i++ {
				idx := p.space.at[i]
				if idx >= 0 && !pick[idx] {
					pick[idx] = true
					order = append(order, idx)
				}
			}
		}
	}
	var out []mutation
	for _, idx := range order {
		sl := p.space.slots[idx]
		cur := p.seq[sl.start : sl.start+len(sl.choices[0])]
		for _, c := range sl.choices {
			if string(c) == string(cur) {
				continue
			}
			out = append(out, mutation{slot: idx, start: sl.start, bases: c})
		}
	}
	if len(out) > p.opts.MaxProposals {
		p.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		out = out[:p.opts.MaxProposals]
	}
	return out
}

// apply writes m and returns the bytes it replaced.
func (p *Problem) apply(m mutation) []byte {
	old := append([]byte(nil), p.seq[m.start:m.start+len(m.bases)]...)
	copy(p.seq[m.start:], m.bases)
	return old
}

func (p *Problem) restore(m mutation, old []byte) {
	copy(p.seq[m.start:], old)
}

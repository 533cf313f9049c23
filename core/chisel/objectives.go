// core/chisel/objectives.go
package chisel

import (
	"fmt"

	"seqopt/core/codon"
)

// CodonOptimize maximises the codon adaptation index of a coding region
// for a species. It only admits synonymous codon changes.
type CodonOptimize struct {
	Table    *codon.Table
	Location Location
	boost    float64
	aas      []byte
}

func NewCodonOptimize(species string, loc Location, boost float64) (*CodonOptimize, error) {
	tbl, err := codon.Lookup(species)
	if err != nil {
		return nil, err
	}
	if boost <= 0 {
		boost = 1
	}
	return &CodonOptimize{Table: tbl, Location: loc, boost: boost}, nil
}

func (o *CodonOptimize) Label() string {
	return fmt.Sprintf("CodonOptimize%s(%s)", locLabel(o.Location), o.Table.Species)
}

func (o *CodonOptimize) location() Location { return o.Location }

func (o *CodonOptimize) Boost() float64 { return o.boost }

func (o *CodonOptimize) prepare(p *Problem) error {
	aas, err := codingTarget(p, o.Location)
	o.aas = aas
	return err
}

func (o *CodonOptimize) restrict(p *Problem, s *space) {
	s.addCodons(o.Location.resolve(p.Len()).Start, o.aas)
}

func (o *CodonOptimize) Evaluate(p *Problem) Evaluation {
	l := o.Location.resolve(p.Len())
	cds := p.seq[l.Start:l.End]
	var improvable []Location
	for pos := 0; pos+3 <= len(cds); pos += 3 {
		if o.Table.RelativeAdaptiveness(string(cds[pos:pos+3])) < 1 {
			improvable = append(improvable, Location{Start: l.Start + pos, End: l.Start + pos + 3})
		}
	}
	cai := o.Table.CAI(cds)
	return Evaluation{Score: cai, Breaches: improvable, Message: fmt.Sprintf("CAI %.3f", cai)}
}

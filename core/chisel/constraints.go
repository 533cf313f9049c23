// core/chisel/constraints.go
package chisel

import (
	"fmt"

	"seqopt/core/codon"
	"seqopt/core/dna"
)

const gcEpsilon = 1e-9

func locLabel(l Location) string {
	if l.IsWhole() {
		return ""
	}
	return "[" + l.String() + "]"
}

// occurrences finds pat inside l and returns the matched spans in
// sequence coordinates (spans may run past the origin when circular).
func (p *Problem) occurrences(pat dna.Pattern, l Location) []Location {
	k := pat.Len()
	var starts []int
	offset := 0
	if l.IsWhole() {
		starts = pat.FindAll(p.seq, p.circular)
	} else {
		starts = pat.FindAll(p.window(l), false)
		offset = l.Start
	}
	out := make([]Location, 0, len(starts))
	for _, s := range starts {
		out = append(out, Location{Start: s + offset, End: s + offset + k})
	}
	return out
}

/* ----------------------------- AvoidPattern ----------------------------- */

// AvoidPattern forbids a motif (and its reverse complement).
type AvoidPattern struct {
	Pattern  dna.Pattern
	Location Location
}

func NewAvoidPattern(pattern string, loc Location) (*AvoidPattern, error) {
	pat, err := dna.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &AvoidPattern{Pattern: pat, Location: loc}, nil
}

func (c *AvoidPattern) location() Location { return c.Location }

func (c *AvoidPattern) Label() string {
	return fmt.Sprintf("AvoidPattern%s(%s)", locLabel(c.Location), c.Pattern.Name)
}

func (c *AvoidPattern) Evaluate(p *Problem) Evaluation {
	hits := p.occurrences(c.Pattern, c.Location)
	if len(hits) == 0 {
		return Evaluation{Message: "pattern not found"}
	}
	return Evaluation{
		Score:    -float64(len(hits)),
		Breaches: hits,
		Message:  fmt.Sprintf("found %d occurrence(s)", len(hits)),
	}
}

/* --------------------------- EnforceGCContent --------------------------- */

// EnforceGCContent keeps the GC fraction of every sliding window in
// [Mini, Maxi]. Window 0 means one window over the whole location.
type EnforceGCContent struct {
	Mini     float64
	Maxi     float64
	Window   int
	Location Location
}

func NewEnforceGCContent(mini, maxi float64, window int, loc Location) (*EnforceGCContent, error) {
	if mini > maxi {
		return nil, fmt.Errorf("mini (%.3f) exceeds maxi (%.3f)", mini, maxi)
	}
	return &EnforceGCContent{Mini: mini, Maxi: maxi, Window: window, Location: loc}, nil
}

func (c *EnforceGCContent) location() Location { return c.Location }

func (c *EnforceGCContent) Label() string {
	return fmt.Sprintf("EnforceGCContent%s(mini:%.2f, maxi:%.2f, window:%d)", locLabel(c.Location), c.Mini, c.Maxi, c.Window)
}

func (c *EnforceGCContent) Evaluate(p *Problem) Evaluation {
	n := p.Len()
	l := c.Location.resolve(n)
	w := c.Window
	if w <= 0 || w > l.Len() {
		w = l.Len()
	}
	wrap := p.circular && c.Location.IsWhole() && w < n
	last := l.End - w
	if wrap {
		last = n - 1
	}

	gc := 0
	for i := l.Start; i < l.Start+w; i++ {
		if isGC(p.seq[i%n]) {
			gc++
		}
	}
	var (
		score    float64
		breaches []Location
		windows  int
	)
	for s := l.Start; s <= last; s++ {
		if s > l.Start {
			if isGC(p.seq[(s-1)%n]) {
				gc--
			}
			if isGC(p.seq[(s+w-1)%n]) {
				gc++
			}
		}
		windows++
		f := float64(gc) / float64(w)
		dev := 0.0
		if f < c.Mini-gcEpsilon {
			dev = c.Mini - f
		} else if f > c.Maxi+gcEpsilon {
			dev = f - c.Maxi
		}
		if dev > 0 {
			score -= dev
			breaches = append(breaches, Location{Start: s, End: s + w})
		}
	}
	if len(breaches) == 0 {
		return Evaluation{Message: fmt.Sprintf("GC content within bounds in all %d window(s)", windows)}
	}
	return Evaluation{
		Score:    score,
		Breaches: breaches,
		Message:  fmt.Sprintf("GC content out of bounds in %d/%d window(s)", len(breaches), windows),
	}
}

func isGC(b byte) bool { return b == 'G' || b == 'C' }

/* ----------------------- EnforceTerminalGCContent ----------------------- */

// EnforceTerminalGCContent bounds the GC fraction of both sequence ends.
type EnforceTerminalGCContent struct {
	Mini   float64
	Maxi   float64
	Window int
}

func NewEnforceTerminalGCContent(mini, maxi float64, window int) (*EnforceTerminalGCContent, error) {
	if mini > maxi {
		return nil, fmt.Errorf("mini (%.3f) exceeds maxi (%.3f)", mini, maxi)
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	return &EnforceTerminalGCContent{Mini: mini, Maxi: maxi, Window: window}, nil
}

func (c *EnforceTerminalGCContent) Label() string {
	return fmt.Sprintf("EnforceTerminalGCContent(mini:%.2f, maxi:%.2f, window:%d)", c.Mini, c.Maxi, c.Window)
}

func (c *EnforceTerminalGCContent) Evaluate(p *Problem) Evaluation {
	n := p.Len()
	w := c.Window
	if w > n {
		w = n
	}
	ends := []Location{{Start: 0, End: w}, {Start: n - w, End: n}}
	var (
		score    float64
		breaches []Location
	)
	for _, e := range ends {
		f := dna.GCFraction(p.seq[e.Start:e.End])
		switch {
		case f < c.Mini-gcEpsilon:
			score -= c.Mini - f
			breaches = append(breaches, e)
		case f > c.Maxi+gcEpsilon:
			score -= f - c.Maxi
			breaches = append(breaches, e)
		}
	}
	if len(breaches) == 0 {
		return Evaluation{Message: "terminal GC content within bounds"}
	}
	return Evaluation{Score: score, Breaches: breaches, Message: fmt.Sprintf("%d terminal window(s) out of bounds", len(breaches))}
}

/* ----------------------------- AvoidHairpins ---------------------------- */

// AvoidHairpins forbids stems of StemSize whose reverse complement lies
// within HairpinWindow downstream.
type AvoidHairpins struct {
	StemSize      int
	HairpinWindow int
	Location      Location
}

func NewAvoidHairpins(stemSize, hairpinWindow int, loc Location) (*AvoidHairpins, error) {
	if stemSize <= 0 {
		return nil, fmt.Errorf("stem_size must be positive, got %d", stemSize)
	}
	if hairpinWindow < 2*stemSize {
		return nil, fmt.Errorf("hairpin_window (%d) must be at least twice stem_size (%d)", hairpinWindow, stemSize)
	}
	return &AvoidHairpins{StemSize: stemSize, HairpinWindow: hairpinWindow, Location: loc}, nil
}

func (c *AvoidHairpins) location() Location { return c.Location }

func (c *AvoidHairpins) Label() string {
	return fmt.Sprintf("AvoidHairpins%s(stem_size:%d, hairpin_window:%d)", locLabel(c.Location), c.StemSize, c.HairpinWindow)
}

func (c *AvoidHairpins) Evaluate(p *Problem) Evaluation {
	n := p.Len()
	l := c.Location.resolve(n)
	view := p.seq[l.Start:l.End]
	if p.circular && c.Location.IsWhole() {
		ext := c.HairpinWindow - 1
		if ext > n-1 {
			ext = n - 1
		}
		view = p.window(Location{Start: 0, End: n + ext})
	}
	var breaches []Location
	count := 0
	for _, h := range dna.FindHairpins(view, c.StemSize, c.HairpinWindow) {
		if h.Start >= l.Len() {
			continue
		}
		count++
		breaches = append(breaches,
			Location{Start: l.Start + h.Start, End: l.Start + h.Start + h.Stem},
			Location{Start: l.Start + h.Partner, End: l.Start + h.Partner + h.Stem},
		)
	}
	if count == 0 {
		return Evaluation{Message: "no hairpins"}
	}
	return Evaluation{Score: -float64(count), Breaches: breaches, Message: fmt.Sprintf("%d hairpin stem(s)", count)}
}

/* ------------------------ EnforcePatternOccurence ----------------------- */

// EnforcePatternOccurence requires exactly Occurences copies of a motif.
type EnforcePatternOccurence struct {
	Pattern    dna.Pattern
	Occurences int
	Location   Location
}

func NewEnforcePatternOccurence(pattern string, occurences int, loc Location) (*EnforcePatternOccurence, error) {
	pat, err := dna.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	if occurences < 0 {
		return nil, fmt.Errorf("occurences must be >= 0, got %d", occurences)
	}
	return &EnforcePatternOccurence{Pattern: pat, Occurences: occurences, Location: loc}, nil
}

func (c *EnforcePatternOccurence) location() Location { return c.Location }

func (c *EnforcePatternOccurence) Label() string {
	return fmt.Sprintf("EnforcePatternOccurence%s(%s, occurences:%d)", locLabel(c.Location), c.Pattern.Name, c.Occurences)
}

func (c *EnforcePatternOccurence) Evaluate(p *Problem) Evaluation {
	hits := p.occurrences(c.Pattern, c.Location)
	got := len(hits)
	switch {
	case got == c.Occurences:
		return Evaluation{Message: fmt.Sprintf("%d occurrence(s)", got)}
	case got > c.Occurences:
		return Evaluation{
			Score:    -float64(got - c.Occurences),
			Breaches: hits,
			Message:  fmt.Sprintf("%d occurrence(s), want %d", got, c.Occurences),
		}
	}
	// Too few: reward partial matches so single mutations make progress.
	l := c.Location.resolve(p.Len())
	partial := bestPartialMatch(p.window(l), c.Pattern.Site)
	return Evaluation{
		Score:    -float64(c.Occurences-got) + 0.9*partial,
		Breaches: []Location{l},
		Message:  fmt.Sprintf("%d occurrence(s), want %d", got, c.Occurences),
	}
}

// bestPartialMatch returns the highest fraction of matching bases of site
// over any alignment that is not already a full match.
func bestPartialMatch(seq, site []byte) float64 {
	k := len(site)
	best := 0
	for i := 0; i+k <= len(seq); i++ {
		m := 0
		for j := 0; j < k; j++ {
			if dna.BaseMatch(seq[i+j], site[j]) {
				m++
			}
		}
		if m < k && m > best {
			best = m
		}
	}
	if k == 0 {
		return 0
	}
	return float64(best) / float64(k)
}

/* ----------------------------- AvoidMatches ----------------------------- */

// AvoidMatches forbids exact copies (either strand) of the given sequences.
type AvoidMatches struct {
	Sequences []dna.Pattern
	Location  Location
}

func NewAvoidMatches(sequences []string, loc Location) (*AvoidMatches, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("matches_sequences must not be empty")
	}
	pats := make([]dna.Pattern, 0, len(sequences))
	for _, s := range sequences {
		norm, err := dna.Validate(s)
		if err != nil {
			return nil, fmt.Errorf("matches_sequences: %w", err)
		}
		pat, err := dna.CompilePattern(norm)
		if err != nil {
			return nil, err
		}
		pats = append(pats, pat)
	}
	return &AvoidMatches{Sequences: pats, Location: loc}, nil
}

func (c *AvoidMatches) location() Location { return c.Location }

func (c *AvoidMatches) Label() string {
	return fmt.Sprintf("AvoidMatches%s(%d sequence(s))", locLabel(c.Location), len(c.Sequences))
}

func (c *AvoidMatches) Evaluate(p *Problem) Evaluation {
	var hits []Location
	for _, pat := range c.Sequences {
		hits = append(hits, p.occurrences(pat, c.Location)...)
	}
	if len(hits) == 0 {
		return Evaluation{Message: "no matches"}
	}
	return Evaluation{Score: -float64(len(hits)), Breaches: hits, Message: fmt.Sprintf("%d match(es)", len(hits))}
}

/* ----------------------------- AvoidChanges ----------------------------- */

// AvoidChanges locks a region to a reference (the initial sequence by
// default).
type AvoidChanges struct {
	Location  Location
	Reference []byte
}

func NewAvoidChanges(loc Location, reference string) (*AvoidChanges, error) {
	c := &AvoidChanges{Location: loc}
	if reference != "" {
		ref, err := dna.Validate(reference)
		if err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
		c.Reference = []byte(ref)
	}
	return c, nil
}

func (c *AvoidChanges) location() Location { return c.Location }

func (c *AvoidChanges) Label() string {
	return fmt.Sprintf("AvoidChanges%s", locLabel(c.Location))
}

func (c *AvoidChanges) prepare(p *Problem) error {
	l := c.Location.resolve(p.Len())
	if c.Reference == nil {
		c.Reference = append([]byte(nil), p.original[l.Start:l.End]...)
		return nil
	}
	if len(c.Reference) != l.Len() {
		return fmt.Errorf("reference length %d does not match location length %d", len(c.Reference), l.Len())
	}
	return nil
}

func (c *AvoidChanges) restrict(p *Problem, s *space) {
	s.lock(c.Location.resolve(p.Len()))
}

func (c *AvoidChanges) Evaluate(p *Problem) Evaluation {
	l := c.Location.resolve(p.Len())
	var breaches []Location
	for i := l.Start; i < l.End; i++ {
		if p.seq[i] != c.Reference[i-l.Start] {
			breaches = append(breaches, Location{Start: i, End: i + 1})
		}
	}
	if len(breaches) == 0 {
		return Evaluation{Message: "region unchanged"}
	}
	return Evaluation{Score: -float64(len(breaches)), Breaches: breaches, Message: fmt.Sprintf("%d changed base(s)", len(breaches))}
}

/* -------------------------- EnforceTranslation -------------------------- */

// EnforceTranslation keeps a coding region translating to a protein (the
// initial translation by default).
type EnforceTranslation struct {
	Location    Location
	Translation string
	target      []byte
}

func NewEnforceTranslation(loc Location, translation string) *EnforceTranslation {
	return &EnforceTranslation{Location: loc, Translation: translation}
}

func (c *EnforceTranslation) location() Location { return c.Location }

func (c *EnforceTranslation) Label() string {
	return fmt.Sprintf("EnforceTranslation%s", locLabel(c.Location))
}

func (c *EnforceTranslation) prepare(p *Problem) error {
	target, err := codingTarget(p, c.Location)
	if err != nil {
		return err
	}
	if c.Translation != "" {
		if len(c.Translation) != len(target) {
			return fmt.Errorf("translation has %d residue(s), location encodes %d", len(c.Translation), len(target))
		}
		target = []byte(c.Translation)
	}
	c.target = target
	return nil
}

func (c *EnforceTranslation) restrict(p *Problem, s *space) {
	s.addCodons(c.Location.resolve(p.Len()).Start, c.target)
}

func (c *EnforceTranslation) Evaluate(p *Problem) Evaluation {
	l := c.Location.resolve(p.Len())
	var breaches []Location
	for k, want := range c.target {
		pos := l.Start + 3*k
		if aa, _ := codon.AminoAcid(string(p.seq[pos : pos+3])); aa != want {
			breaches = append(breaches, Location{Start: pos, End: pos + 3})
		}
	}
	if len(breaches) == 0 {
		return Evaluation{Message: "translation preserved"}
	}
	return Evaluation{Score: -float64(len(breaches)), Breaches: breaches, Message: fmt.Sprintf("%d codon(s) differ from target", len(breaches))}
}

// codingTarget translates the initial sequence over l.
func codingTarget(p *Problem, loc Location) ([]byte, error) {
	l := loc.resolve(p.Len())
	if l.Len()%3 != 0 {
		return nil, fmt.Errorf("coding location %s length %d is not a multiple of 3", l, l.Len())
	}
	aa, err := codon.Translate(p.original[l.Start:l.End])
	if err != nil {
		return nil, err
	}
	return []byte(aa), nil
}

/* ---------------------------- AvoidRareCodons --------------------------- */

// AvoidRareCodons forbids codons used below MinFrequency by a species.
type AvoidRareCodons struct {
	Table        *codon.Table
	MinFrequency float64
	Location     Location
	aas          []byte
}

func NewAvoidRareCodons(species string, minFrequency float64, loc Location) (*AvoidRareCodons, error) {
	tbl, err := codon.Lookup(species)
	if err != nil {
		return nil, err
	}
	return &AvoidRareCodons{Table: tbl, MinFrequency: minFrequency, Location: loc}, nil
}

func (c *AvoidRareCodons) location() Location { return c.Location }

func (c *AvoidRareCodons) Label() string {
	return fmt.Sprintf("AvoidRareCodons%s(%s, min_frequency:%.2f)", locLabel(c.Location), c.Table.Species, c.MinFrequency)
}

func (c *AvoidRareCodons) prepare(p *Problem) error {
	aas, err := codingTarget(p, c.Location)
	c.aas = aas
	return err
}

func (c *AvoidRareCodons) restrict(p *Problem, s *space) {
	s.addCodons(c.Location.resolve(p.Len()).Start, c.aas)
}

func (c *AvoidRareCodons) Evaluate(p *Problem) Evaluation {
	l := c.Location.resolve(p.Len())
	var breaches []Location
	for pos := l.Start; pos+3 <= l.End; pos += 3 {
		if c.Table.Frequency(string(p.seq[pos:pos+3])) < c.MinFrequency {
			breaches = append(breaches, Location{Start: pos, End: pos + 3})
		}
	}
	if len(breaches) == 0 {
		return Evaluation{Message: "no rare codons"}
	}
	return Evaluation{Score: -float64(len(breaches)), Breaches: breaches, Message: fmt.Sprintf("%d rare codon(s)", len(breaches))}
}

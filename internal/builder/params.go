// internal/builder/params.go
package builder

import (
	"fmt"

	"seqopt/core/chisel"
	"seqopt/internal/spec"
)

// Every kind decodes into one of these structs. The mapstructure tags are
// the accepted parameter names.

type avoidPatternParams struct {
	Pattern  string         `mapstructure:"pattern" validate:"required"`
	Location *spec.Location `mapstructure:"location"`
	Boost    float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *avoidPatternParams) region() *spec.Location { return p.Location }

func (p *avoidPatternParams) build(int) (any, error) {
	return chisel.NewAvoidPattern(p.Pattern, toChisel(p.Location))
}

type enforceGCContentParams struct {
	Mini     *float64       `mapstructure:"mini" validate:"omitempty,gte=0,lte=1"`
	Maxi     *float64       `mapstructure:"maxi" validate:"omitempty,gte=0,lte=1"`
	Target   *float64       `mapstructure:"target" validate:"omitempty,gte=0,lte=1"`
	Window   int            `mapstructure:"window" validate:"gte=0"`
	Location *spec.Location `mapstructure:"location"`
	Boost    float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *enforceGCContentParams) region() *spec.Location { return p.Location }

func (p *enforceGCContentParams) build(int) (any, error) {
	mini, maxi := 0.0, 1.0
	if p.Target != nil {
		mini, maxi = *p.Target, *p.Target
	}
	if p.Mini != nil {
		mini = *p.Mini
	}
	if p.Maxi != nil {
		maxi = *p.Maxi
	}
	return chisel.NewEnforceGCContent(mini, maxi, p.Window, toChisel(p.Location))
}

type enforceTranslationParams struct {
	Translation string         `mapstructure:"translation"`
	Location    *spec.Location `mapstructure:"location"`
	Boost       float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *enforceTranslationParams) region() *spec.Location { return p.Location }

func (p *enforceTranslationParams) build(seqLen int) (any, error) {
	if err := wholeCodons(p.Location, seqLen); err != nil {
		return nil, err
	}
	if n := regionLen(p.Location, seqLen) / 3; p.Translation != "" && len(p.Translation) != n {
		return nil, fmt.Errorf("translation has %d residue(s), region encodes %d", len(p.Translation), n)
	}
	return chisel.NewEnforceTranslation(toChisel(p.Location), p.Translation), nil
}

type avoidChangesParams struct {
	Reference string         `mapstructure:"reference"`
	Location  *spec.Location `mapstructure:"location"`
	Boost     float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *avoidChangesParams) region() *spec.Location { return p.Location }

func (p *avoidChangesParams) build(seqLen int) (any, error) {
	if n := regionLen(p.Location, seqLen); p.Reference != "" && len(p.Reference) != n {
		return nil, fmt.Errorf("reference length %d does not match region length %d", len(p.Reference), n)
	}
	return chisel.NewAvoidChanges(toChisel(p.Location), p.Reference)
}

type avoidMatchesParams struct {
	MatchesSequences []string      `mapstructure:"matches_sequences" validate:"required,min=1,dive,required"`
	Location         *spec.Location `mapstructure:"location"`
	Boost            float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *avoidMatchesParams) region() *spec.Location { return p.Location }

func (p *avoidMatchesParams) build(int) (any, error) {
	return chisel.NewAvoidMatches(p.MatchesSequences, toChisel(p.Location))
}

type enforcePatternOccurenceParams struct {
	Pattern    string         `mapstructure:"pattern" validate:"required"`
	Occurences int            `mapstructure:"occurences" validate:"gte=0"`
	Location   *spec.Location `mapstructure:"location"`
	Boost      float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *enforcePatternOccurenceParams) region() *spec.Location { return p.Location }

func (p *enforcePatternOccurenceParams) build(int) (any, error) {
	return chisel.NewEnforcePatternOccurence(p.Pattern, p.Occurences, toChisel(p.Location))
}

type avoidHairpinsParams struct {
	StemSize      int            `mapstructure:"stem_size" validate:"gt=0"`
	HairpinWindow int            `mapstructure:"hairpin_window" validate:"gt=0"`
	Location      *spec.Location `mapstructure:"location"`
	Boost         float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *avoidHairpinsParams) region() *spec.Location { return p.Location }

func (p *avoidHairpinsParams) build(int) (any, error) {
	return chisel.NewAvoidHairpins(p.StemSize, p.HairpinWindow, toChisel(p.Location))
}

type enforceTerminalGCContentParams struct {
	Mini   float64 `mapstructure:"mini" validate:"gte=0,lte=1"`
	Maxi   float64 `mapstructure:"maxi" validate:"gte=0,lte=1"`
	Window int     `mapstructure:"window" validate:"gt=0"`
	Boost  float64 `mapstructure:"boost" validate:"gte=0"`
}

func (p *enforceTerminalGCContentParams) region() *spec.Location { return nil }

func (p *enforceTerminalGCContentParams) build(seqLen int) (any, error) {
	if p.Window > seqLen {
		return nil, fmt.Errorf("window %d exceeds sequence length %d", p.Window, seqLen)
	}
	return chisel.NewEnforceTerminalGCContent(p.Mini, p.Maxi, p.Window)
}

type avoidRareCodonsParams struct {
	Species      string         `mapstructure:"species" validate:"required"`
	MinFrequency float64        `mapstructure:"min_frequency" validate:"gte=0,lte=1"`
	Location     *spec.Location `mapstructure:"location"`
	Boost        float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *avoidRareCodonsParams) region() *spec.Location { return p.Location }

func (p *avoidRareCodonsParams) build(seqLen int) (any, error) {
	if err := wholeCodons(p.Location, seqLen); err != nil {
		return nil, err
	}
	return chisel.NewAvoidRareCodons(p.Species, p.MinFrequency, toChisel(p.Location))
}

type codonOptimizeParams struct {
	Species  string         `mapstructure:"species" validate:"required"`
	Method   string         `mapstructure:"method" validate:"omitempty,oneof=use_best_codon"`
	Location *spec.Location `mapstructure:"location"`
	Boost    float64        `mapstructure:"boost" validate:"gte=0"`
}

func (p *codonOptimizeParams) region() *spec.Location { return p.Location }

func (p *codonOptimizeParams) build(seqLen int) (any, error) {
	if err := wholeCodons(p.Location, seqLen); err != nil {
		return nil, err
	}
	return chisel.NewCodonOptimize(p.Species, toChisel(p.Location), p.Boost)
}

// params is implemented by every parameter struct.
type params interface {
	region() *spec.Location
	build(seqLen int) (any, error)
}

// newParams is the registry. The switch must cover every spec.Kind.
func newParams(k spec.Kind) params {
	switch k {
	case spec.AvoidPattern:
		return &avoidPatternParams{}
	case spec.EnforceGCContent:
		return &enforceGCContentParams{}
	case spec.EnforceTranslation:
		return &enforceTranslationParams{}
	case spec.AvoidChanges:
		return &avoidChangesParams{}
	case spec.AvoidMatches:
		return &avoidMatchesParams{}
	case spec.EnforcePatternOccurence:
		return &enforcePatternOccurenceParams{}
	case spec.AvoidHairpins:
		return &avoidHairpinsParams{}
	case spec.EnforceTerminalGCContent:
		return &enforceTerminalGCContentParams{}
	case spec.AvoidRareCodons:
		return &avoidRareCodonsParams{}
	case spec.CodonOptimize:
		return &codonOptimizeParams{}
	case spec.KindInvalid:
	}
	return nil
}

func toChisel(l *spec.Location) chisel.Location {
	if l == nil {
		return chisel.Location{}
	}
	return chisel.Location{Start: l.Start, End: l.End}
}

func regionLen(l *spec.Location, seqLen int) int {
	if l == nil {
		return seqLen
	}
	return l.Len()
}

func wholeCodons(l *spec.Location, seqLen int) error {
	if n := regionLen(l, seqLen); n%3 != 0 {
		return fmt.Errorf("coding region length %d is not a multiple of 3", n)
	}
	return nil
}

// internal/normalize/normalize.go
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"seqopt/internal/spec"
)

// LocationKey is the parameter holding a region.
const LocationKey = "location"

type alias struct{ from, to string }

var aliases = map[spec.Kind][]alias{
	spec.AvoidHairpins:           {{"min_stem_size", "stem_size"}, {"window", "hairpin_window"}},
	spec.EnforcePatternOccurence: {{"occurrences", "occurences"}},
	spec.AvoidMatches:            {{"sequences", "matches_sequences"}},
	spec.CodonOptimize:           {{"organism", "species"}},
	spec.AvoidRareCodons:         {{"organism", "species"}},
}

var defaults = map[spec.Kind]map[string]any{
	spec.AvoidHairpins:           {"stem_size": 6, "hairpin_window": 200},
	spec.EnforcePatternOccurence: {"occurences": 1},
	spec.CodonOptimize:           {"species": "e_coli"},
	spec.AvoidRareCodons:         {"species": "e_coli", "min_frequency": 0.1},
}

var numericRE = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// Normalizer repairs raw parameter bundles. It never mutates its input.
type Normalizer struct {
	log *zap.Logger
}

// New returns a Normalizer logging repairs to log (nil disables logging).
func New(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Normalize validates raw's tag for role and returns the repaired spec.
// seqLen is the length of the target sequence, or 0 when unknown.
func (n *Normalizer) Normalize(raw spec.Raw, role spec.Role, seqLen int) (spec.Normalized, error) {
	kind, err := spec.KindFromTag(raw.Type, role)
	if err != nil {
		return spec.Normalized{}, err
	}
	params := copyParams(raw.Params)

	n.resolveAliases(kind, params)
	fillDefaults(kind, params, seqLen)
	coerceNumeric(params)
	dropped := n.normalizeLocation(kind, params)

	return spec.Normalized{Kind: kind, Params: params, Dropped: dropped}, nil
}

// Raw turns a normalized spec back into raw form.
func Raw(s spec.Normalized) spec.Raw {
	return spec.Raw{Type: s.Kind.String(), Params: copyParams(s.Params)}
}

func copyParams(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return deepcopy.Copy(in).(map[string]any)
}

func (n *Normalizer) resolveAliases(kind spec.Kind, params map[string]any) {
	for _, a := range aliases[kind] {
		v, ok := params[a.from]
		if !ok {
			continue
		}
		if _, exists := params[a.to]; exists {
			continue
		}
		delete(params, a.from)
		params[a.to] = v
		n.log.Info("resolved parameter alias",
			zap.Stringer("type", kind),
			zap.String("from", a.from),
			zap.String("to", a.to))
	}
}

func fillDefaults(kind spec.Kind, params map[string]any, seqLen int) {
	for k, v := range defaults[kind] {
		if _, ok := params[k]; !ok {
			params[k] = v
		}
	}
	if kind == spec.CodonOptimize && seqLen > 0 {
		if v, ok := params[LocationKey]; !ok || v == nil {
			params[LocationKey] = spec.Location{Start: 0, End: seqLen}
		}
	}
}

func coerceNumeric(params map[string]any) {
	for k, v := range params {
		params[k] = coerceValue(v)
	}
}

func coerceValue(v any) any {
	switch x := v.(type) {
	case string:
		return coerceString(x)
	case []any:
		for i := range x {
			if s, ok := x[i].(string); ok {
				x[i] = coerceString(s)
			}
		}
		return x
	default:
		return v
	}
}

func coerceString(s string) any {
	if !numericRE.MatchString(s) {
		return s
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return s
}

// normalizeLocation converts a two-element list to a Location and, for
// codon objectives, truncates it to whole codons. It reports whether the
// spec collapsed and must be dropped.
func (n *Normalizer) normalizeLocation(kind spec.Kind, params map[string]any) bool {
	raw, ok := params[LocationKey]
	if !ok {
		return false
	}
	loc, ok := asLocation(raw)
	if !ok {
		return false
	}
	params[LocationKey] = loc
	if kind != spec.CodonOptimize {
		return false
	}
	length := loc.Len()
	if length > 0 {
		length -= length % 3
	}
	if length <= 0 {
		n.log.Debug("dropping objective with sub-codon location",
			zap.Stringer("type", kind),
			zap.Stringer("location", loc))
		return true
	}
	if end := loc.Start + length; end != loc.End {
		n.log.Debug("truncated location to whole codons",
			zap.Stringer("type", kind),
			zap.Int("from_end", loc.End),
			zap.Int("to_end", end))
		loc.End = end
		params[LocationKey] = loc
	}
	return false
}

func asLocation(v any) (spec.Location, bool) {
	switch x := v.(type) {
	case spec.Location:
		return x, true
	case []any:
		if len(x) != 2 {
			return spec.Location{}, false
		}
		start, ok1 := asInt(x[0])
		end, ok2 := asInt(x[1])
		if !ok1 || !ok2 {
			return spec.Location{}, false
		}
		return spec.Location{Start: start, End: end}, true
	case []int:
		if len(x) != 2 {
			return spec.Location{}, false
		}
		return spec.Location{Start: x[0], End: x[1]}, true
	}
	return spec.Location{}, false
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	}
	return 0, false
}

// internal/builder/builder.go
package builder

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"seqopt/core/chisel"
	"seqopt/core/dna"
	"seqopt/internal/normalize"
	"seqopt/internal/spec"
)

// Built is a request ready for the solver.
type Built struct {
	Sequence    string
	Circular    bool
	Constraints []chisel.Constraint
	Objectives  []chisel.Objective
}

// Options bounds accepted requests.
type Options struct {
	MaxSequenceLength int // 0 = unlimited
}

// Builder turns raw requests into solver handles.
type Builder struct {
	log      *zap.Logger
	norm     *normalize.Normalizer
	validate *validator.Validate
	opts     Options
}

// New returns a Builder. A nil logger disables logging.
func New(log *zap.Logger, opts Options) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return &Builder{log: log, norm: normalize.New(log), validate: v, opts: opts}
}

// BuildRequest normalizes and builds every specification of req.
// Type tags are checked before the sequence.
func (b *Builder) BuildRequest(req spec.Request) (*Built, error) {
	if err := checkTags(req); err != nil {
		return nil, err
	}
	seq, err := b.sequence(req.Sequence)
	if err != nil {
		return nil, err
	}
	n := len(seq)
	out := &Built{Sequence: seq, Circular: req.Circular}

	for i, raw := range req.Constraints {
		ns, err := b.norm.Normalize(raw, spec.RoleConstraint, n)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		c, err := b.BuildConstraint(ns, n)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		out.Constraints = append(out.Constraints, c)
	}

	requested, dropped := 0, 0
	for i, raw := range req.Objectives {
		ns, err := b.norm.Normalize(raw, spec.RoleObjective, n)
		if err != nil {
			return nil, fmt.Errorf("objective %d: %w", i, err)
		}
		if ns.Kind == spec.CodonOptimize {
			requested++
		}
		if ns.Dropped {
			dropped++
			b.log.Warn("dropping objective with a region shorter than one codon",
				zap.Int("index", i),
				zap.Stringer("type", ns.Kind),
				zap.Any("location", ns.Params[normalize.LocationKey]))
			continue
		}
		o, err := b.BuildObjective(ns, n)
		if err != nil {
			return nil, fmt.Errorf("objective %d: %w", i, err)
		}
		out.Objectives = append(out.Objectives, o)
	}
	if requested > 0 && dropped == requested {
		return nil, &spec.DegenerateObjectiveError{Requested: requested}
	}
	return out, nil
}

func checkTags(req spec.Request) error {
	for i, raw := range req.Constraints {
		if _, err := spec.KindFromTag(raw.Type, spec.RoleConstraint); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	for i, raw := range req.Objectives {
		if _, err := spec.KindFromTag(raw.Type, spec.RoleObjective); err != nil {
			return fmt.Errorf("objective %d: %w", i, err)
		}
	}
	return nil
}

func (b *Builder) sequence(raw string) (string, error) {
	seq, err := dna.Validate(raw)
	if err != nil {
		return "", &spec.InvalidSequenceError{Reason: err.Error()}
	}
	if limit := b.opts.MaxSequenceLength; limit > 0 && len(seq) > limit {
		return "", &spec.InvalidSequenceError{Reason: fmt.Sprintf("length %d exceeds the maximum of %d", len(seq), limit)}
	}
	return seq, nil
}

// BuildConstraint constructs one constraint handle.
func (b *Builder) BuildConstraint(ns spec.Normalized, seqLen int) (chisel.Constraint, error) {
	if ns.Kind.Role() != spec.RoleConstraint {
		return nil, &spec.UnknownTypeError{Tag: ns.Kind.String(), Role: spec.RoleConstraint}
	}
	h, err := b.build(ns, seqLen)
	if err != nil {
		return nil, err
	}
	return h.(chisel.Constraint), nil
}

// BuildObjective constructs one objective handle. Dropped specs are
// rejected.
func (b *Builder) BuildObjective(ns spec.Normalized, seqLen int) (chisel.Objective, error) {
	if ns.Kind.Role() != spec.RoleObjective {
		return nil, &spec.UnknownTypeError{Tag: ns.Kind.String(), Role: spec.RoleObjective}
	}
	if ns.Dropped {
		return nil, &spec.DegenerateObjectiveError{Requested: 1}
	}
	h, err := b.build(ns, seqLen)
	if err != nil {
		return nil, err
	}
	return h.(chisel.Objective), nil
}

func (b *Builder) build(ns spec.Normalized, seqLen int) (any, error) {
	p := newParams(ns.Kind)
	if p == nil {
		return nil, &spec.UnknownTypeError{Tag: ns.Kind.String(), Role: ns.Kind.Role()}
	}
	mismatch := func(reason string) error {
		return &spec.ParameterMismatchError{
			Kind:     ns.Kind,
			Expected: Expected(ns.Kind),
			Supplied: supplied(ns.Params),
			Reason:   reason,
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      p,
		TagName:     "mapstructure",
		DecodeHook:  mapstructure.DecodeHookFuncType(wholeNumberHook),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: decoder: %w", ns.Kind, err)
	}
	if err := dec.Decode(ns.Params); err != nil {
		return nil, mismatch(err.Error())
	}
	if err := b.validate.Struct(p); err != nil {
		return nil, mismatch(describe(err))
	}
	if l := p.region(); l != nil {
		if l.Start < 0 || l.Start >= l.End || l.End > seqLen {
			return nil, mismatch(fmt.Sprintf("location %s outside sequence of length %d", l, seqLen))
		}
	}
	h, err := p.build(seqLen)
	if err != nil {
		return nil, mismatch(err.Error())
	}
	return h, nil
}

// wholeNumberHook rejects a fractional number bound for an integer field;
// mapstructure would otherwise truncate it.
func wholeNumberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch x := data.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}

// Expected lists the parameter names a kind accepts, in declaration order.
func Expected(k spec.Kind) []string {
	p := newParams(k)
	if p == nil {
		return nil
	}
	t := reflect.TypeOf(p).Elem()
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := strings.SplitN(t.Field(i).Tag.Get("mapstructure"), ",", 2)[0]; name != "" {
			out = append(out, name)
		}
	}
	return out
}

func supplied(params map[string]any) []string {
	out := make([]string, 0, len(params))
	for k := range params {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

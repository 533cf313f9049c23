// internal/spec/kind.go
package spec

import "fmt"

// Role says whether a kind is a hard constraint or a soft objective.
type Role int

const (
	RoleConstraint Role = iota
	RoleObjective
)

func (r Role) String() string {
	if r == RoleObjective {
		return "objective"
	}
	return "constraint"
}

// Kind is the closed set of specification kinds.
type Kind int

const (
	KindInvalid Kind = iota
	AvoidPattern
	EnforceGCContent
	EnforceTranslation
	AvoidChanges
	AvoidMatches
	EnforcePatternOccurence
	AvoidHairpins
	EnforceTerminalGCContent
	AvoidRareCodons
	CodonOptimize
)

var tags = map[Kind]string{
	AvoidPattern:             "AvoidPattern",
	EnforceGCContent:         "EnforceGCContent",
	EnforceTranslation:       "EnforceTranslation",
	AvoidChanges:             "AvoidChanges",
	AvoidMatches:             "AvoidMatches",
	EnforcePatternOccurence:  "EnforcePatternOccurence",
	AvoidHairpins:            "AvoidHairpins",
	EnforceTerminalGCContent: "EnforceTerminalGCContent",
	AvoidRareCodons:          "AvoidRareCodons",
	CodonOptimize:            "CodonOptimize",
}

var byTag = func() map[string]Kind {
	m := make(map[string]Kind, len(tags))
	for k, t := range tags {
		m[t] = k
	}
	return m
}()

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(tags))
	for k := AvoidPattern; k <= CodonOptimize; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if t, ok := tags[k]; ok {
		return t
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Role returns the role of k.
func (k Kind) Role() Role {
	if k == CodonOptimize {
		return RoleObjective
	}
	return RoleConstraint
}

// KindFromTag resolves a type tag for the given role.
func KindFromTag(tag string, role Role) (Kind, error) {
	k, ok := byTag[tag]
	if !ok || k.Role() != role {
		return KindInvalid, &UnknownTypeError{Tag: tag, Role: role}
	}
	return k, nil
}

// TagsFor lists the tags accepted for a role.
func TagsFor(role Role) []string {
	var out []string
	for _, k := range Kinds() {
		if k.Role() == role {
			out = append(out, tags[k])
		}
	}
	return out
}

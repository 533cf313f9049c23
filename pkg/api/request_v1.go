// pkg/api/request_v1.go
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// RequestV1 is the stable JSON schema of a design request.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RequestV1 struct {
	Sequence    string   `json:"sequence"`
	Constraints []SpecV1 `json:"constraints"`
	Objectives  []SpecV1 `json:"objectives"`
	IsCircular  bool     `json:"isCircular"`
}

// SpecV1 is one constraint or objective. On the wire the parameters sit
// beside "type" in the same object.
type SpecV1 struct {
	Type   string
	Params map[string]any
}

func (s SpecV1) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Params)+1)
	for k, v := range s.Params {
		m[k] = v
	}
	m["type"] = s.Type
	return json.Marshal(m)
}

// UnmarshalJSON keeps integer literals as int and other numbers as
// float64 so "window": 50 and "mini": 0.4 keep their kinds.
func (s *SpecV1) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("spec must be an object")
	}
	tag, ok := raw["type"].(string)
	if !ok {
		return errors.New("spec is missing a string \"type\" field")
	}
	delete(raw, "type")
	params := make(map[string]any, len(raw))
	for k, v := range raw {
		params[k] = fromNumber(v)
	}
	s.Type, s.Params = tag, params
	return nil
}

func fromNumber(v any) any {
	switch x := v.(type) {
	case json.Number:
		lit := x.String()
		if !strings.ContainsAny(lit, ".eE") {
			if i, err := x.Int64(); err == nil {
				return int(i)
			}
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return lit
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = fromNumber(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = fromNumber(e)
		}
		return out
	default:
		return v
	}
}

// pkg/api/result_v1.go
package api

import "encoding/json"

// ResultV1 is the stable response schema. It encodes as one of two
// shapes selected by Success:
//
//	{"success":true,"optimized_sequence":...,"constraints_summary":...,"objectives_summary":...,"all_constraints_passing":...}
//	{"success":false,"error":...,"traceback":...}
type ResultV1 struct {
	Success               bool
	OptimizedSequence     string
	ConstraintsSummary    string
	ObjectivesSummary     string
	AllConstraintsPassing bool
	Error                 string
	Traceback             string
}

type successV1 struct {
	Success               bool   `json:"success"`
	OptimizedSequence     string `json:"optimized_sequence"`
	ConstraintsSummary    string `json:"constraints_summary"`
	ObjectivesSummary     string `json:"objectives_summary"`
	AllConstraintsPassing bool   `json:"all_constraints_passing"`
}

type failureV1 struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Traceback string `json:"traceback"`
}

// Failure builds a failure document.
func Failure(err, traceback string) ResultV1 {
	return ResultV1{Error: err, Traceback: traceback}
}

func (r ResultV1) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(successV1{
			Success:               true,
			OptimizedSequence:     r.OptimizedSequence,
			ConstraintsSummary:    r.ConstraintsSummary,
			ObjectivesSummary:     r.ObjectivesSummary,
			AllConstraintsPassing: r.AllConstraintsPassing,
		})
	}
	return json.Marshal(failureV1{Error: r.Error, Traceback: r.Traceback})
}

func (r *ResultV1) UnmarshalJSON(data []byte) error {
	var probe struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Success {
		var s successV1
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ResultV1{
			Success:               true,
			OptimizedSequence:     s.OptimizedSequence,
			ConstraintsSummary:    s.ConstraintsSummary,
			ObjectivesSummary:     s.ObjectivesSummary,
			AllConstraintsPassing: s.AllConstraintsPassing,
		}
		return nil
	}
	var f failureV1
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = ResultV1{Error: f.Error, Traceback: f.Traceback}
	return nil
}

// HTTPErrorV1 is the body of a 500 response from the HTTP bridge.
type HTTPErrorV1 struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Traceback string `json:"traceback,omitempty"`
}

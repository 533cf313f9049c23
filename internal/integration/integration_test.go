// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqopt/internal/app"
	"seqopt/pkg/api"
)

const seq110 = "ATGCAGTACGTAGCTGATCGATGCTAGCGTAGCTGATCGTGCTAGTCAGTCGATGCTATGCTGATGCTAGTCGATGCATGCGTAGCATGCGTAGCTAGCTAGCGATGCTA"

const gcRich = "ATCCGGATATAAGTTGTGGTGAGCGCCTGATCGACAGGTTTCCCGACTGGAAAGCGGGCAGTGAGCGCAACGCAATTAATGTGAGTTAGCTCACTCATTAGGCACCCC"

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func readResult(t *testing.T, fn string) api.ResultV1 {
	t.Helper()
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("read %s: %v", fn, err)
	}
	var res api.ResultV1
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode %s: %v\n%s", fn, err, data)
	}
	return res
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(append([]string{"--log-level", "error"}, args...), &out, &errBuf)
	return code, errBuf.String()
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "req.json", `{
  "sequence": "`+seq110+`",
  "constraints": [{"type": "EnforceGCContent", "mini": 0.4, "maxi": 0.6, "window": 50}],
  "objectives": [],
  "isCircular": false
}`)
	out := filepath.Join(dir, "res.json")

	code, stderr := run(t, in, out)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr)
	}
	res := readResult(t, out)
	if !res.Success || len(res.OptimizedSequence) != 110 || !res.AllConstraintsPassing {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRepairAndOptimizeYAML(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "req.yaml", `
sequence: `+gcRich+`
constraints:
  - type: EnforceGCContent
    mini: "0.4"
    maxi: "0.6"
    window: "50"
  - type: AvoidPattern
    pattern: EcoRI_site
objectives:
  - type: CodonOptimize
    organism: e_coli
    location: [0, 10]
isCircular: false
`)
	out := filepath.Join(dir, "res.json")

	code, stderr := run(t, in, out)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr)
	}
	res := readResult(t, out)
	if !res.AllConstraintsPassing {
		t.Fatalf("constraints not passing:\n%s", res.ConstraintsSummary)
	}
	if res.OptimizedSequence == gcRich {
		t.Fatalf("sequence was not repaired")
	}
	if !strings.Contains(res.ObjectivesSummary, "CodonOptimize[0-9](e_coli)") {
		t.Fatalf("objectives summary: %q", res.ObjectivesSummary)
	}
}

func TestSameSeedSameResult(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "req.json", `{"sequence":"`+gcRich+`","constraints":[{"type":"EnforceGCContent","mini":0.4,"maxi":0.6,"window":50}]}`)

	result := func(name string) string {
		out := filepath.Join(dir, name)
		if code, stderr := run(t, "--seed", "7", in, out); code != 0 {
			t.Fatalf("exit %d err %s", code, stderr)
		}
		return readResult(t, out).OptimizedSequence
	}
	if a, b := result("a.json"), result("b.json"); a != b {
		t.Fatalf("seeded runs differ\n%s\n%s", a, b)
	}
}

func TestFailuresWriteDocument(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"missing", filepath.Join(dir, "nope.json"), "no such file"},
		{"empty", write(t, dir, "empty.json", "  "), "input is empty"},
		{"malformed", write(t, dir, "bad.json", `{"sequence": [`), "malformed request JSON"},
		{"unknown type", write(t, dir, "unknown.json", `{"sequence":"ACGT","constraints":[{"type":"AvoidEverything"}]}`), "AvoidEverything"},
		{"bad sequence", write(t, dir, "seq.json", `{"sequence":"ACGU"}`), "invalid sequence"},
		{"degenerate", write(t, dir, "deg.json", `{"sequence":"ACGTACGT","objectives":[{"type":"CodonOptimize","location":[0,2]}]}`), "were dropped"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".out.json")
			code, _ := run(t, tc.input, out)
			if code != 1 {
				t.Fatalf("expected exit 1, got %d", code)
			}
			res := readResult(t, out)
			if res.Success {
				t.Fatalf("expected failure document")
			}
			if !strings.Contains(res.Error, tc.want) {
				t.Fatalf("error %q does not mention %q", res.Error, tc.want)
			}
			if res.Traceback == "" {
				t.Fatalf("expected a traceback")
			}
		})
	}
}

func TestSolverDisabledPassesThrough(t *testing.T) {
	t.Setenv("SEQOPT_SOLVER_ENABLED", "false")
	dir := t.TempDir()
	in := write(t, dir, "req.json", `{"sequence":"`+gcRich+`","constraints":[{"type":"EnforceGCContent","mini":0.4,"maxi":0.6,"window":50}]}`)
	out := filepath.Join(dir, "res.json")

	if code, stderr := run(t, in, out); code != 0 {
		t.Fatalf("exit %d err %s", code, stderr)
	}
	res := readResult(t, out)
	if res.OptimizedSequence != gcRich {
		t.Fatalf("sequence changed while solver disabled")
	}
	if !strings.HasPrefix(res.ConstraintsSummary, "solver not available") {
		t.Fatalf("summary: %q", res.ConstraintsSummary)
	}
}

func TestUsage(t *testing.T) {
	if code, _ := run(t, "only-one-arg"); code != 1 {
		t.Fatalf("expected exit 1 for a missing output path, got %d", code)
	}
	var out bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &bytes.Buffer{}); code != 0 {
		t.Fatalf("version exit %d", code)
	}
	if !strings.Contains(out.String(), app.Version) {
		t.Fatalf("version output %q", out.String())
	}
}

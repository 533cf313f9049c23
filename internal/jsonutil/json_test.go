package jsonutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqopt/pkg/api"
)

const requestJSON = `{
  "sequence": "ACGTACGTAC",
  "constraints": [{"type": "EnforceGCContent", "mini": 0.4, "maxi": 0.6, "window": 50, "location": [0, 10]}],
  "objectives": [{"type": "CodonOptimize", "species": "e_coli"}],
  "isCircular": true
}`

const requestYAML = `
sequence: ACGTACGTAC
constraints:
  - type: EnforceGCContent
    mini: 0.4
    maxi: 0.6
    window: 50
    location: [0, 10]
objectives:
  - type: CodonOptimize
    species: e_coli
isCircular: true
`

func checkRequest(t *testing.T, req api.RequestV1) {
	t.Helper()
	assert.Equal(t, "ACGTACGTAC", req.Sequence)
	assert.True(t, req.IsCircular)
	require.Len(t, req.Constraints, 1)
	c := req.Constraints[0]
	assert.Equal(t, "EnforceGCContent", c.Type)
	assert.Equal(t, 0.4, c.Params["mini"])
	assert.Equal(t, 50, c.Params["window"])
	assert.Equal(t, []any{0, 10}, c.Params["location"])
	assert.NotContains(t, c.Params, "type")
	require.Len(t, req.Objectives, 1)
	assert.Equal(t, "e_coli", req.Objectives[0].Params["species"])
}

func TestDecodeRequest(t *testing.T) {
	t.Run("Should keep integers and floats apart", func(t *testing.T) {
		req, err := DecodeRequest([]byte(requestJSON))
		require.NoError(t, err)
		checkRequest(t, req)
	})

	t.Run("Should read YAML with the same schema", func(t *testing.T) {
		req, err := DecodeYAMLRequest([]byte(requestYAML))
		require.NoError(t, err)
		checkRequest(t, req)
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		_, err := DecodeRequest([]byte("  \n"))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		_, err := DecodeRequest([]byte(`{"sequence": `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed request JSON")
	})

	t.Run("Should require a type on every spec", func(t *testing.T) {
		_, err := DecodeRequest([]byte(`{"sequence":"A","constraints":[{"mini":0.4}]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing a string "type" field`)
	})
}

func TestReadRequestFile(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "req.yml")
	require.NoError(t, os.WriteFile(yml, []byte(requestYAML), 0o644))
	req, err := ReadRequestFile(yml)
	require.NoError(t, err)
	checkRequest(t, req)

	_, err = ReadRequestFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestResultShapes(t *testing.T) {
	t.Run("Should write the success shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, WriteFile(path, api.ResultV1{Success: true, OptimizedSequence: "ACGT", AllConstraintsPassing: true}))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"optimized_sequence":"ACGT","constraints_summary":"","objectives_summary":"","all_constraints_passing":true}`, string(data))
	})

	t.Run("Should write the failure shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, WriteFile(path, api.Failure("boom", "trace")))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":"boom","traceback":"trace"}`, string(data))
	})
}

// internal/jsonutil/json.go
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"seqopt/pkg/api"
)

// ErrEmptyInput is returned for an input without any content.
var ErrEmptyInput = errors.New("input is empty")

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile writes v as indented JSON to path.
func WriteFile(path string, v any) error {
	var buf bytes.Buffer
	if err := EncodePretty(&buf, v); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// DecodeRequest parses a JSON request document.
func DecodeRequest(data []byte) (api.RequestV1, error) {
	var req api.RequestV1
	if len(bytes.TrimSpace(data)) == 0 {
		return req, ErrEmptyInput
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("malformed request JSON: %w", err)
	}
	return req, nil
}

// DecodeYAMLRequest parses a YAML request document with the same schema.
func DecodeYAMLRequest(data []byte) (api.RequestV1, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return api.RequestV1{}, ErrEmptyInput
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return api.RequestV1{}, fmt.Errorf("malformed request YAML: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return api.RequestV1{}, fmt.Errorf("malformed request YAML: %w", err)
	}
	return DecodeRequest(asJSON)
}

// ReadRequestFile reads path, choosing YAML for .yaml/.yml and JSON
// otherwise.
func ReadRequestFile(path string) (api.RequestV1, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.RequestV1{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAMLRequest(data)
	}
	return DecodeRequest(data)
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is stripped from environment variables before mapping them to
// keys: SEQOPT_SOLVER_MAX_ITERATIONS -> solver.max_iterations.
const EnvPrefix = "SEQOPT_"

type Config struct {
	Solver Solver `koanf:"solver"`
	Limits Limits `koanf:"limits"`
	Log    Log    `koanf:"log"`
	Server Server `koanf:"server"`
}

type Solver struct {
	Enabled            bool   `koanf:"enabled"`
	Seed               uint64 `koanf:"seed"`
	MaxIterations      int    `koanf:"max_iterations" validate:"gt=0"`
	OptimizeIterations int    `koanf:"optimize_iterations" validate:"gt=0"`
	MaxProposals       int    `koanf:"max_proposals" validate:"gt=0"`
}

type Limits struct {
	MaxSequenceLength int `koanf:"max_sequence_length" validate:"gt=0"`
}

type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

type Server struct {
	Addr string `koanf:"addr" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: Solver{
			Enabled:            true,
			Seed:               1,
			MaxIterations:      2000,
			OptimizeIterations: 2000,
			MaxProposals:       400,
		},
		Limits: Limits{MaxSequenceLength: 100000},
		Log:    Log{Level: "info"},
		Server: Server{Addr: ":8080"},
	}
}

// Load layers defaults, the optional YAML file at path, then environment
// variables, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path != "" {
		data, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// transformEnvKey maps SEQOPT_LIMITS_MAX_SEQUENCE_LENGTH to
// limits.max_sequence_length: the first segment is the section, the rest
// is the field name.
func transformEnvKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return "", value
	case 1:
		return parts[0], value
	}
	return parts[0] + "." + strings.Join(parts[1:], "_"), value
}

func readYAML(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return data, nil
}

// rawMap adapts a parsed document to koanf.Provider.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) { return r, nil }

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable read into Config.
	EnvPrefix = "SCAFFOLD_"
	// DefaultFile is read from the working directory when no --config is given.
	DefaultFile = ".scaffold.yaml"
)

// Config holds all settings for generation and inspection.
// Precedence: defaults, then the YAML file, then SCAFFOLD_* variables;
// command-line flags are applied on top by the CLI.
type Config struct {
	SchemaPath      string `yaml:"schema" env:"SCHEMA"`
	OutDir          string `yaml:"out" env:"OUT_DIR"`
	ClientImport    string `yaml:"clientImport" env:"CLIENT_IMPORT"`
	ValidatorImport string `yaml:"validatorImport" env:"VALIDATOR_IMPORT"`
	LogLevel        string `yaml:"logLevel" env:"LOG_LEVEL"`
	LogFormat       string `yaml:"logFormat" env:"LOG_FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SchemaPath:      "prisma/schema.prisma",
		OutDir:          ".",
		ClientImport:    "@prisma/client",
		ValidatorImport: "../../middlewares/validateRequestBody",
		LogLevel:        "warn",
		LogFormat:       "console",
	}
}

// Load layers the defaults, the YAML file at path and the environment.
// An empty path reads DefaultFile when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

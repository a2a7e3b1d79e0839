// Package config loads mutantd settings from YAML or CUE files.
//
// Every file is unified with the embedded #Config schema, which supplies
// defaults and rejects unknown fields.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE []byte

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds server settings.
type Config struct {
	Listen            string
	Storage           string
	DBPath            string
	MaxBodyBytes      int64
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
}

// fileConfig mirrors #Config field for field.
type fileConfig struct {
	Listen            string `json:"listen"`
	Storage           string `json:"storage"`
	DBPath            string `json:"db_path"`
	MaxBodyBytes      int64  `json:"max_body_bytes"`
	ShutdownTimeout   string `json:"shutdown_timeout"`
	ReadHeaderTimeout string `json:"read_header_timeout"`
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads a .yaml, .yml or .cue file and returns the validated config.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile schema: %w", err)
	}
	v := schema.LookupPath(cue.ParsePath("#Config"))

	if path != "" {
		file, err := loadFile(ctx, path)
		if err != nil {
			return Config{}, err
		}
		v = v.Unify(file)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", displayName(path), err)
	}

	var raw fileConfig
	if err := v.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", displayName(path), err)
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", displayName(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", displayName(path), err)
	}
	return cfg, nil
}

func loadFile(ctx *cue.Context, path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("failed to parse CUE: %w", err)
		}
		return v, nil

	case ".yaml", ".yml":
		var fields map[string]any
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
			return cue.Value{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if fields == nil {
			fields = map[string]any{}
		}
		v := ctx.Encode(fields)
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return v, nil

	default:
		return cue.Value{}, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .cue)", ext)
	}
}

func (f fileConfig) toConfig() (Config, error) {
	shutdown, err := time.ParseDuration(f.ShutdownTimeout)
	if err != nil {
		return Config{}, fmt.Errorf("shutdown_timeout: %w", err)
	}
	readHeader, err := time.ParseDuration(f.ReadHeaderTimeout)
	if err != nil {
		return Config{}, fmt.Errorf("read_header_timeout: %w", err)
	}
	return Config{
		Listen:            f.Listen,
		Storage:           f.Storage,
		DBPath:            f.DBPath,
		MaxBodyBytes:      f.MaxBodyBytes,
		ShutdownTimeout:   shutdown,
		ReadHeaderTimeout: readHeader,
	}, nil
}

// Validate checks cross-field constraints. Call it again after applying
// command-line overrides.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for sqlite storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q (want %s or %s)", c.Storage, StorageSQLite, StorageMemory)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read_header_timeout must be positive, got %s", c.ReadHeaderTimeout)
	}
	return nil
}

func displayName(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

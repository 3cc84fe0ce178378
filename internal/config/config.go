package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"desergen/internal/modpath"
)

// Config is the tool configuration.
type Config struct {
	// SrcRoot is the source tree generated code goes into.
	SrcRoot string `yaml:"src_root" json:"src_root" toml:"src_root" hcl:"src_root,optional"`
	// DesergenRoot holds the schemas/ directory.
	DesergenRoot string `yaml:"desergen_root" json:"desergen_root" toml:"desergen_root" hcl:"desergen_root,optional"`
	// SrcOutputRoot is the directory under SrcRoot that receives output.
	SrcOutputRoot string `yaml:"src_output_root" json:"src_output_root" toml:"src_output_root" hcl:"src_output_root,optional"`
	// Schemas lists the module paths to generate.
	Schemas []string `yaml:"schemas" json:"schemas" toml:"schemas" hcl:"schemas,optional"`
	// Workers bounds parallel schema processing.
	Workers int `yaml:"workers" json:"workers" toml:"workers" hcl:"workers,optional"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level" toml:"log_level" hcl:"log_level,optional"`
	// LogFormat is json or console.
	LogFormat string `yaml:"log_format" json:"log_format" toml:"log_format" hcl:"log_format,optional"`

	// path is the file the config was loaded from.
	path string
}

// Supported file extensions.
const (
	extYAML = ".yaml"
	extYML  = ".yml"
	extJSON = ".json"
	extHCL  = ".hcl"
	extTOML = ".toml"
)

// DefaultFiles are the config file names Find looks for, in order.
var DefaultFiles = []string{
	"desergen" + extTOML,
	"desergen" + extYAML,
	"desergen" + extYML,
	"desergen" + extJSON,
	"desergen" + extHCL,
}

// Find returns the first of DefaultFiles present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("no config file found in %s (looked for %s): %w",
		dir, strings.Join(DefaultFiles, ", "), os.ErrNotExist)
}

// Load reads configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		cfg.path = abs
	} else {
		cfg.path = path
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte) (*Config, error) {
	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case extYAML, extYML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}

	case extJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}

	case extHCL:
		file, diags := hclparse.NewParser().ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}

		if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}

	case extTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				keys := make([]string, len(strict.Errors))
				for i := range strict.Errors {
					keys[i] = strings.Join(strict.Errors[i].Key(), ".")
				}

				return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
			}

			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported config format %q (supported: %s, %s, %s, %s, %s)",
			ext, extTOML, extYAML, extYML, extJSON, extHCL)
	}

	return &cfg, nil
}

// applyEnvOverrides applies DESERGEN_* environment variables to the
// config. Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DESERGEN_SRC_ROOT"); v != "" {
		cfg.SrcRoot = v
	}

	if v := os.Getenv("DESERGEN_ROOT"); v != "" {
		cfg.DesergenRoot = v
	}

	if v := os.Getenv("DESERGEN_SRC_OUTPUT_ROOT"); v != "" {
		cfg.SrcOutputRoot = v
	}

	if v := os.Getenv("DESERGEN_SCHEMAS"); v != "" {
		cfg.Schemas = splitList(v)
	}

	if v := os.Getenv("DESERGEN_WORKERS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("DESERGEN_WORKERS: invalid value %q (expected a positive integer)", v)
		}

		cfg.Workers = n
	}

	if v := os.Getenv("DESERGEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("DESERGEN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return nil
}

func splitList(v string) []string {
	var out []string

	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

func setDefaults(cfg *Config) {
	if cfg.SrcRoot == "" {
		cfg.SrcRoot = "src"
	}

	if cfg.DesergenRoot == "" {
		cfg.DesergenRoot = "desergen"
	}

	if cfg.SrcOutputRoot == "" {
		cfg.SrcOutputRoot = "desergen"
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
}

func validate(cfg *Config) error {
	if len(cfg.Schemas) == 0 {
		return fmt.Errorf("schemas: at least one module path is required")
	}

	if _, err := cfg.ModulePaths(); err != nil {
		return err
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: invalid value %q (expected debug, info, warn or error)", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format: invalid value %q (expected json or console)", cfg.LogFormat)
	}

	return nil
}

// Path returns the absolute path of the loaded config file.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory relative roots are resolved against.
func (c *Config) Dir() string {
	if c.path == "" {
		return "."
	}

	return filepath.Dir(c.path)
}

// SchemasDir returns <config dir>/<desergen_root>/schemas.
func (c *Config) SchemasDir() string {
	return filepath.Join(c.resolve(c.DesergenRoot), "schemas")
}

// OutputDir returns <config dir>/<src_root>/<src_output_root>.
func (c *Config) OutputDir() string {
	return filepath.Join(c.resolve(c.SrcRoot), c.SrcOutputRoot)
}

// ModulePaths parses Schemas.
func (c *Config) ModulePaths() ([]modpath.Path, error) {
	paths, err := modpath.ParseAll(c.Schemas)
	if err != nil {
		return nil, fmt.Errorf("schemas: %w", err)
	}

	return paths, nil
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir(), p)
}

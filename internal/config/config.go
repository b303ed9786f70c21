package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/RowanDark/cipherkit/internal/env"
)

// Colour modes accepted by Output.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	homeDirName   = ".cipherkit"
	homeFileName  = "config.toml"
	localFileName = "cipherkit.yml"
)

// Config captures the cipherkit configuration resolved from defaults, optional
// files, and environment overrides.
type Config struct {
	LogLevel   string       `koanf:"log_level" toml:"log_level"`
	AuditLog   string       `koanf:"audit_log" toml:"audit_log"`
	RecipesDir string       `koanf:"recipes_dir" toml:"recipes_dir"`
	Solver     SolverConfig `koanf:"solver" toml:"solver"`
	Output     OutputConfig `koanf:"output" toml:"output"`
}

// SolverConfig controls the Caesar solver front end.
type SolverConfig struct {
	// Top is how many ranked candidates to print. Zero prints only the best.
	Top     int `koanf:"top" toml:"top"`
	Workers int `koanf:"workers" toml:"workers"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	Color string `koanf:"color" toml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	recipes := filepath.Join(homeDirName, "recipes")
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		recipes = filepath.Join(home, homeDirName, "recipes")
	}
	return Config{
		LogLevel:   "info",
		RecipesDir: recipes,
		Solver: SolverConfig{
			Top:     0,
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{Color: ColorAuto},
	}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. The lookup order for configuration files is:
//  1. ~/.cipherkit/config.toml (TOML)
//  2. ./cipherkit.yml (YAML)
//
// Environment variables prefixed with CIPHERKIT_ have the highest precedence.
func Load() (Config, error) {
	var paths []string
	home, err := os.UserHomeDir()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("determine home directory: %w", err)
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, homeDirName, homeFileName))
	}
	paths = append(paths, localFileName)
	return LoadFrom(paths...)
}

// LoadFrom layers the given files over the defaults in order, skipping files
// that do not exist, then applies environment overrides. The parser is picked
// from the file extension.
func LoadFrom(paths ...string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Output.Color = NormalizeColor(cfg.Output.Color)
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yml", ".yaml":
		return yamlParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", path)
	}
}

func applyEnvOverrides(cfg *Config) error {
	if val, ok := lookup("CIPHERKIT_LOG_LEVEL"); ok {
		cfg.LogLevel = val
	}
	if val, ok := lookup("CIPHERKIT_AUDIT_LOG"); ok {
		cfg.AuditLog = val
	}
	if val, ok := lookup("CIPHERKIT_RECIPES_DIR", "CIPHERKIT_RECIPE_PATH"); ok {
		cfg.RecipesDir = val
	}
	if val, ok := lookup("CIPHERKIT_SOLVER_TOP"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("CIPHERKIT_SOLVER_TOP: %w", err)
		}
		cfg.Solver.Top = n
	}
	if val, ok := lookup("CIPHERKIT_WORKERS"); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("CIPHERKIT_WORKERS: %w", err)
		}
		cfg.Solver.Workers = n
	}
	if val, ok := lookup("CIPHERKIT_COLOR"); ok {
		cfg.Output.Color = NormalizeColor(val)
	}
	return nil
}

// NormalizeColor folds a colour mode to the canonical lowercase spelling.
func NormalizeColor(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

// lookup ignores variables that are set but blank.
func lookup(key string, legacy ...string) (string, bool) {
	val, ok := env.Lookup(key, legacy...)
	val = strings.TrimSpace(val)
	return val, ok && val != ""
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Solver.Top < 0 {
		return fmt.Errorf("solver.top must not be negative, got %d", c.Solver.Top)
	}
	if c.Solver.Workers <= 0 {
		return fmt.Errorf("solver.workers must be positive, got %d", c.Solver.Workers)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of auto, always, never; got %q", c.Output.Color)
	}
	if strings.TrimSpace(c.RecipesDir) == "" {
		return errors.New("recipes_dir must not be empty")
	}
	return nil
}

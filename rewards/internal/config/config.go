package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultRatingType   = types.RatingPartC
	DefaultYear         = 2026
	DefaultOutputFormat = "console"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level reward factor configuration.
// Fields map 1:1 to rewardfactor.example.yaml.
type Config struct {
	// RatingType selects the official threshold column: part_c |
	// part_d_mapd | part_d_pdp | overall_mapd.
	RatingType types.RatingType `yaml:"rating_type"`

	// FilterCategory restricts every contract to one category of measures.
	// Empty means all measures.
	FilterCategory string `yaml:"filter_category"`

	// Year is the official threshold table year used for comparison.
	Year int `yaml:"year"`

	Inputs   InputsConfig   `yaml:"inputs"`
	Official OfficialConfig `yaml:"official"`
	Impact   ImpactConfig   `yaml:"impact"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// InputsConfig points at the data the engine consumes.
type InputsConfig struct {
	// Measures is the dataset file. Relative paths are resolved against the
	// directory holding the config file.
	Measures string `yaml:"measures"`
}

// OfficialConfig selects the published scenario to compare against.
type OfficialConfig struct {
	Compare                     bool `yaml:"compare"`
	ImprovementMeasuresIncluded bool `yaml:"improvement_measures_included"`
	NewMeasuresIncluded         bool `yaml:"new_measures_included"`
}

// ImpactConfig configures the what-if analysis.
type ImpactConfig struct {
	// RemovedCodes are the measure codes dropped on the projected side.
	RemovedCodes []string `yaml:"removed_codes"`
}

// Enabled reports whether any code is configured for removal.
func (i ImpactConfig) Enabled() bool {
	for _, c := range i.RemovedCodes {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	// Format is one of: console | json | prometheus.
	Format string `yaml:"format"`

	// Path is the output file. Empty writes to stdout.
	Path string `yaml:"path"`
}

// LogConfig controls the slog handler installed by main.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// SlogLevel maps Level to a slog.Level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if cfg.Inputs.Measures != "" && !filepath.IsAbs(cfg.Inputs.Measures) {
		cfg.Inputs.Measures = filepath.Join(filepath.Dir(path), cfg.Inputs.Measures)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		RatingType: DefaultRatingType,
		Year:       DefaultYear,
		Output:     OutputConfig{Format: DefaultOutputFormat},
		Log:        LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks required fields and structural constraints.
func (cfg *Config) Validate() error {
	if cfg.Inputs.Measures == "" {
		return fmt.Errorf("%w: inputs.measures is required", ErrInvalid)
	}
	if !cfg.RatingType.Valid() {
		return fmt.Errorf("%w: unknown rating_type %q", ErrInvalid, cfg.RatingType)
	}
	switch cfg.FilterCategory {
	case "", types.CategoryPartC, types.CategoryPartD:
	default:
		return fmt.Errorf("%w: unknown filter_category %q", ErrInvalid, cfg.FilterCategory)
	}
	if cfg.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalid)
	}
	switch cfg.Output.Format {
	case "console", "json", "prometheus":
	default:
		return fmt.Errorf("%w: unknown output.format %q", ErrInvalid, cfg.Output.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, cfg.Log.Format)
	}
	return nil
}

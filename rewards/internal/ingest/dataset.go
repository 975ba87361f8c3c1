package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

var (
	// ErrNoMetrics is returned when a dataset carries no metric rows.
	ErrNoMetrics = errors.New("dataset has no metrics")
	// ErrBadMeasure is returned for a measure definition without a code or
	// with a negative weight.
	ErrBadMeasure = errors.New("bad measure definition")
)

// MeasureDef is one row of the measure catalogue.
type MeasureDef struct {
	Code     string  `yaml:"code"`
	Name     string  `yaml:"name"`
	Weight   float64 `yaml:"weight"`
	Category string  `yaml:"category"`
}

// MetricRow is one contract's raw star rating for one measure.
type MetricRow struct {
	ContractID  string `yaml:"contract_id"`
	MeasureCode string `yaml:"measure_code"`
	StarRating  string `yaml:"star_rating"`
}

// Dataset is a decoded dataset file.
type Dataset struct {
	Year        int                `yaml:"year"`
	Measures    []MeasureDef       `yaml:"measures"`
	Metrics     []MetricRow        `yaml:"metrics"`
	BaseRatings map[string]float64 `yaml:"base_ratings"`
}

// JoinStats counts what Contracts left out.
type JoinStats struct {
	Rows           int `json:"rows"`
	Used           int `json:"used"`
	NoStar         int `json:"no_star"`
	UnknownMeasure int `json:"unknown_measure"`
	Duplicate      int `json:"duplicate"`
}

// Skipped is the total number of rows not turned into a measure.
func (s JoinStats) Skipped() int {
	return s.NoStar + s.UnknownMeasure + s.Duplicate
}

// Load reads and decodes the dataset file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: %s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a dataset from r and validates it.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMetrics
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(ds.Metrics) == 0 {
		return nil, ErrNoMetrics
	}
	for i, m := range ds.Measures {
		if strings.TrimSpace(m.Code) == "" {
			return nil, fmt.Errorf("measures[%d]: %w: code is required", i, ErrBadMeasure)
		}
		if m.Weight < 0 {
			return nil, fmt.Errorf("measures[%d] %q: %w: negative weight", i, m.Code, ErrBadMeasure)
		}
	}
	return &ds, nil
}

// Contracts joins metric rows to measure weights, keyed by contract ID.
// A contract whose every row was skipped maps to an empty slice.
func (d *Dataset) Contracts() (map[string][]types.ContractMeasure, JoinStats) {
	catalogue := make(map[string]MeasureDef, len(d.Measures))
	for _, m := range d.Measures {
		catalogue[normalizeCode(m.Code)] = m
	}

	out := make(map[string][]types.ContractMeasure)
	seen := make(map[string]bool, len(d.Metrics))
	st := JoinStats{Rows: len(d.Metrics)}

	for _, row := range d.Metrics {
		id := strings.TrimSpace(row.ContractID)
		code := normalizeCode(row.MeasureCode)
		if _, ok := out[id]; !ok {
			out[id] = nil
		}

		def, ok := catalogue[code]
		if !ok {
			st.UnknownMeasure++
			slog.Debug("ingest: unknown measure code", "contract", id, "code", code)
			continue
		}
		star, ok := ParseStarRating(row.StarRating)
		if !ok {
			st.NoStar++
			continue
		}
		key := id + "\x00" + code
		if seen[key] {
			st.Duplicate++
			slog.Debug("ingest: duplicate metric row", "contract", id, "code", code)
			continue
		}
		seen[key] = true

		category := def.Category
		if category == "" {
			category = CategoryForCode(code)
		}
		out[id] = append(out[id], types.ContractMeasure{
			Code:      code,
			StarValue: star,
			Weight:    def.Weight,
			Category:  category,
		})
		st.Used++
	}
	return out, st
}

// ParseStarRating extracts the leading number from a raw star rating such as
// "4", "3.5 stars" or "4 out of 5". Text without a leading number ("Not
// enough data available", "Plan too new to be measured") and values outside
// [1, 5] report false.
func ParseStarRating(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v < 1 || v > 5 {
		return 0, false
	}
	return v, true
}

// CategoryForCode derives the category from a measure code's prefix:
// C is Part C and D is Part D. Other prefixes have no category.
func CategoryForCode(code string) string {
	switch {
	case strings.HasPrefix(normalizeCode(code), "C"):
		return types.CategoryPartC
	case strings.HasPrefix(normalizeCode(code), "D"):
		return types.CategoryPartD
	default:
		return ""
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

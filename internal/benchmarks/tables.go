// Package benchmarks holds the static sector and feature reference tables
// behind the ROI model. Tables are loaded once from the embedded YAML,
// validated, and passed by value wherever they are needed; tests substitute
// fixture tables instead of mutating package state.
package benchmarks

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sectors.yaml features.yaml
var tablesFS embed.FS

// FallbackSector is the profile substituted for any sector not present in
// the table. It must always exist; Load fails without it.
const FallbackSector = "other"

type SectorBenchmark struct {
	HourlyLaborRateAUD      float64 `yaml:"hourlyLaborRateAud"`
	TypicalAnnualRevenueAUD float64 `yaml:"typicalAnnualRevenueAud"`
}

type FeatureBenchmark struct {
	Label                 string   `yaml:"label"`
	TimeSavedPerWeekHours float64  `yaml:"timeSavedPerWeekHours"`
	RevenueMultiplier     float64  `yaml:"revenueMultiplier"`
	RevenueAbsoluteAUD    float64  `yaml:"revenueAbsoluteAud"`
	AffectsSectors        []string `yaml:"affectsSectors"`
}

// AppliesTo reports whether the feature's benefit applies to the given
// sector key. An empty AffectsSectors list means the feature is
// sector-agnostic.
func (f FeatureBenchmark) AppliesTo(sector string) bool {
	if len(f.AffectsSectors) == 0 {
		return true
	}
	for _, s := range f.AffectsSectors {
		if s == sector {
			return true
		}
	}
	return false
}

type Tables struct {
	Sectors  map[string]SectorBenchmark
	Features map[string]FeatureBenchmark
}

// Load parses and validates the embedded tables. A failure here is a
// configuration fault and must propagate; there is no partial load.
func Load() (Tables, error) {
	var t Tables
	if err := loadYAML("sectors.yaml", &t.Sectors); err != nil {
		return Tables{}, err
	}
	if err := loadYAML("features.yaml", &t.Features); err != nil {
		return Tables{}, err
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func loadYAML(name string, out any) error {
	raw, err := tablesFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("benchmarks: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("benchmarks: parse %s: %w", name, err)
	}
	return nil
}

// Validate checks the invariants the ROI math relies on. Any violation means
// the reference data itself is bad, so callers must fail loudly rather than
// compute with it.
func (t Tables) Validate() error {
	if len(t.Sectors) == 0 {
		return fmt.Errorf("benchmarks: sector table is empty")
	}
	if len(t.Features) == 0 {
		return fmt.Errorf("benchmarks: feature table is empty")
	}
	if _, ok := t.Sectors[FallbackSector]; !ok {
		return fmt.Errorf("benchmarks: sector table missing %q fallback profile", FallbackSector)
	}
	for name, s := range t.Sectors {
		if s.HourlyLaborRateAUD <= 0 {
			return fmt.Errorf("benchmarks: sector %q has non-positive hourly rate %v", name, s.HourlyLaborRateAUD)
		}
		if s.TypicalAnnualRevenueAUD <= 0 {
			return fmt.Errorf("benchmarks: sector %q has non-positive typical revenue %v", name, s.TypicalAnnualRevenueAUD)
		}
	}
	for key, f := range t.Features {
		if f.TimeSavedPerWeekHours < 0 {
			return fmt.Errorf("benchmarks: feature %q has negative timeSavedPerWeekHours %v", key, f.TimeSavedPerWeekHours)
		}
		if f.RevenueMultiplier < 0 {
			return fmt.Errorf("benchmarks: feature %q has negative revenueMultiplier %v", key, f.RevenueMultiplier)
		}
		if f.RevenueAbsoluteAUD < 0 {
			return fmt.Errorf("benchmarks: feature %q has negative revenueAbsoluteAud %v", key, f.RevenueAbsoluteAUD)
		}
		for _, s := range f.AffectsSectors {
			if _, ok := t.Sectors[s]; !ok {
				return fmt.Errorf("benchmarks: feature %q references unknown sector %q", key, s)
			}
		}
	}
	return nil
}

// SectorProfile resolves a sector id to its benchmark row, substituting the
// fallback profile for anything unrecognized. The returned key reflects
// which row was actually used.
func (t Tables) SectorProfile(sector string) (string, SectorBenchmark) {
	key := strings.ToLower(strings.TrimSpace(sector))
	if profile, ok := t.Sectors[key]; ok {
		return key, profile
	}
	return FallbackSector, t.Sectors[FallbackSector]
}

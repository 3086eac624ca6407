package pipeline

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"growthlens/internal"
	"growthlens/internal/benchmarks"
)

const weeksPerYear = 52

// Growth factors for the three-year projection. Both apply to the year-one
// base rather than compounding sequentially; previously issued proposals
// depend on matching this formula, so it stays as observed even though
// sequential compounding might have been intended.
const (
	yearTwoGrowth   = 1.11
	yearThreeGrowth = 1.15
)

var confidenceMultipliers = map[internal.ConfidenceMode]float64{
	internal.ConfidenceConservative: 0.7,
	internal.ConfidenceModerate:     1.0,
	internal.ConfidenceOptimistic:   1.5,
}

// RoiInput is everything the projection needs. CurrentAnnualRevenueAUD, when
// supplied, overrides the sector's typical revenue for all revenue math.
type RoiInput struct {
	Sector                  string
	FeatureKeys             []string
	InvestmentAUD           float64
	CurrentAnnualRevenueAUD *float64
	Confidence              internal.ConfidenceMode
}

// CalculateROI runs the staged projection: time savings, revenue impact,
// confidence adjustment, payback, three-year totals, summary sentences.
// Unknown sectors fall back to the generic profile and unknown or
// inapplicable features contribute zero — neither is an error. The only
// returned error is a corrupted benchmark table, which must fail the
// proposal build loudly rather than let it emit a wrong number.
func CalculateROI(tables benchmarks.Tables, in RoiInput) (internal.RoiSnapshot, error) {
	if err := tables.Validate(); err != nil {
		log.Printf("roi: benchmark tables invalid (sector=%q features=%v investment=%v): %v", in.Sector, in.FeatureKeys, in.InvestmentAUD, err)
		return internal.RoiSnapshot{}, fmt.Errorf("roi: %w", err)
	}

	sectorKey, profile := tables.SectorProfile(in.Sector)
	if sectorKey == benchmarks.FallbackSector && strings.ToLower(strings.TrimSpace(in.Sector)) != benchmarks.FallbackSector {
		log.Printf("roi: unknown sector %q, using %q profile", in.Sector, benchmarks.FallbackSector)
	}

	confidence := in.Confidence
	multiplier, ok := confidenceMultipliers[confidence]
	if !ok {
		confidence = internal.ConfidenceModerate
		multiplier = 1.0
	}

	baselineRevenue := profile.TypicalAnnualRevenueAUD
	if in.CurrentAnnualRevenueAUD != nil && *in.CurrentAnnualRevenueAUD > 0 {
		baselineRevenue = *in.CurrentAnnualRevenueAUD
	}

	weeklyHours := 0.0
	multiplierSum := 0.0
	absoluteSum := 0.0
	for _, key := range dedupKeys(in.FeatureKeys) {
		feature, ok := tables.Features[key]
		if !ok {
			log.Printf("roi: unknown feature key %q, contributing zero", key)
			continue
		}
		if !feature.AppliesTo(sectorKey) {
			continue
		}
		weeklyHours += feature.TimeSavedPerWeekHours
		multiplierSum += feature.RevenueMultiplier
		absoluteSum += feature.RevenueAbsoluteAUD
	}

	annualHours := weeklyHours * weeksPerYear
	timeValue := annualHours * profile.HourlyLaborRateAUD
	// Multipliers sum before applying: a 15% and a 5% feature lift the same
	// baseline by 20%, they are not compounded feature-by-feature.
	revenueIncrease := baselineRevenue*multiplierSum + absoluteSum
	// The confidence multiplier applies once, to the combined total; the
	// component values stay raw.
	totalBenefit := (timeValue + revenueIncrease) * multiplier

	snapshot := internal.RoiSnapshot{
		Sector:                   sectorKey,
		Confidence:               confidence,
		WeeklyHoursSaved:         weeklyHours,
		AnnualHoursSaved:         annualHours,
		AnnualTimeValueAUD:       timeValue,
		AnnualRevenueIncreaseAUD: revenueIncrease,
		TotalAnnualBenefitAUD:    totalBenefit,
		InvestmentAUD:            in.InvestmentAUD,
	}

	if monthly := totalBenefit / 12; monthly > 0 {
		payback := in.InvestmentAUD / monthly
		snapshot.PaybackMonths = &payback
	}

	snapshot.YearOneAUD = totalBenefit
	snapshot.YearTwoAUD = totalBenefit * yearTwoGrowth
	snapshot.YearThreeAUD = totalBenefit * yearThreeGrowth

	if in.InvestmentAUD > 0 {
		threeYearTotal := snapshot.YearOneAUD + snapshot.YearTwoAUD + snapshot.YearThreeAUD
		roi := (threeYearTotal - in.InvestmentAUD) / in.InvestmentAUD * 100
		snapshot.ThreeYearROIPercent = math.Round(roi*10) / 10
	}

	snapshot.SummaryLines = summaryLines(snapshot)
	return snapshot, nil
}

// summaryLines renders the fixed-order sentence list the proposal documents
// print verbatim. Wording and order are contract, not presentation.
func summaryLines(s internal.RoiSnapshot) []string {
	lines := []string{
		fmt.Sprintf("Save %s hours per week (%s hours per year)", formatHours(s.WeeklyHoursSaved), formatHours(s.AnnualHoursSaved)),
		fmt.Sprintf("Time savings worth %s per year", formatAUD(s.AnnualTimeValueAUD)),
		fmt.Sprintf("Projected revenue increase of %s per year", formatAUD(s.AnnualRevenueIncreaseAUD)),
		fmt.Sprintf("Total annual benefit of %s", formatAUD(s.TotalAnnualBenefitAUD)),
	}
	lines = append(lines, paybackLine(s.PaybackMonths))
	lines = append(lines, fmt.Sprintf("Three-year return on investment of %.1f%%", s.ThreeYearROIPercent))
	return lines
}

func paybackLine(months *float64) string {
	switch {
	case months == nil:
		return "Payback is not achievable at this investment level"
	case *months < 1:
		return "Investment pays for itself in under a month"
	case *months < 12:
		return fmt.Sprintf("Investment pays for itself in %.1f months", *months)
	default:
		return fmt.Sprintf("Investment pays for itself in %.1f years", *months/12)
	}
}

func formatHours(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// formatAUD renders a whole-dollar amount with thousands separators.
func formatAUD(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}

func dedupKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := map[string]struct{}{}
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

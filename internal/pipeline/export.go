package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"growthlens/internal"
)

// ExportProposalXLSX writes the assembled proposal to a three-sheet
// workbook: merged stack with provenance, health scorecard, ROI projection.
func ExportProposalXLSX(p internal.ProposalData, outputPath string) error {
	f := excelize.NewFile()

	stackSheet := f.GetSheetName(0)
	_ = f.SetSheetName(stackSheet, "Stack")
	writeStackSheet(f, "Stack", p)

	if p.Health != nil {
		if _, err := f.NewSheet("Health"); err == nil {
			writeHealthSheet(f, "Health", *p.Health)
		}
	}
	if p.Roi != nil {
		if _, err := f.NewSheet("ROI"); err == nil {
			writeRoiSheet(f, "ROI", *p.Roi)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func setCell(f *excelize.File, sheet string, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, value)
}

func writeStackSheet(f *excelize.File, sheet string, p internal.ProposalData) {
	headers := []string{"client", "website", "sector", "entry", "kind", "provenance"}
	for i, h := range headers {
		setCell(f, sheet, i+1, 1, h)
	}

	row := 2
	write := func(name, kind string, provenance internal.Provenance) {
		setCell(f, sheet, 1, row, p.ClientName)
		setCell(f, sheet, 2, row, p.Website)
		setCell(f, sheet, 3, row, p.Sector)
		setCell(f, sheet, 4, row, name)
		setCell(f, sheet, 5, row, kind)
		setCell(f, sheet, 6, row, string(provenance))
		row++
	}

	for i, name := range p.Stack.Systems {
		write(name, "system", sourceAt(p.Stack.Sources, true, i))
	}
	for i, name := range p.Stack.Integrations {
		write(name, "integration", sourceAt(p.Stack.Sources, false, i))
	}
	if p.Stack.Notes != nil {
		setCell(f, sheet, 1, row+1, "notes")
		setCell(f, sheet, 2, row+1, *p.Stack.Notes)
	}
}

func sourceAt(sources *internal.StackSources, system bool, i int) internal.Provenance {
	if sources == nil {
		return ""
	}
	list := sources.Integrations
	if system {
		list = sources.Systems
	}
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}

func writeHealthSheet(f *excelize.File, sheet string, card internal.HealthScorecard) {
	setCell(f, sheet, 1, 1, "overall")
	setCell(f, sheet, 2, 1, card.OverallScore)
	setCell(f, sheet, 1, 2, "performance")
	setCell(f, sheet, 2, 2, scoreOrBlank(card.PerformanceScore))
	setCell(f, sheet, 1, 3, "seo")
	setCell(f, sheet, 2, 3, scoreOrBlank(card.SEOScore))
	setCell(f, sheet, 1, 4, "technical")
	setCell(f, sheet, 2, 4, scoreOrBlank(card.TechnicalScore))

	row := 6
	setCell(f, sheet, 1, row, "top issues")
	for _, issue := range card.TopIssues {
		row++
		setCell(f, sheet, 2, row, issue)
	}
	row += 2
	setCell(f, sheet, 1, row, "recommendations")
	for _, rec := range card.Recommendations {
		row++
		setCell(f, sheet, 2, row, rec)
	}
}

// scoreOrBlank keeps "not assessed" visibly distinct from a computed zero.
func scoreOrBlank(score *int) any {
	if score == nil {
		return "not assessed"
	}
	return *score
}

func writeRoiSheet(f *excelize.File, sheet string, roi internal.RoiSnapshot) {
	rows := []struct {
		label string
		value any
	}{
		{"sector", roi.Sector},
		{"confidence", string(roi.Confidence)},
		{"weekly hours saved", roi.WeeklyHoursSaved},
		{"annual hours saved", roi.AnnualHoursSaved},
		{"annual time value (AUD)", roi.AnnualTimeValueAUD},
		{"annual revenue increase (AUD)", roi.AnnualRevenueIncreaseAUD},
		{"total annual benefit (AUD)", roi.TotalAnnualBenefitAUD},
		{"investment (AUD)", roi.InvestmentAUD},
		{"payback (months)", paybackCell(roi.PaybackMonths)},
		{"year 1 (AUD)", roi.YearOneAUD},
		{"year 2 (AUD)", roi.YearTwoAUD},
		{"year 3 (AUD)", roi.YearThreeAUD},
		{"three-year ROI %", roi.ThreeYearROIPercent},
	}
	for i, r := range rows {
		setCell(f, sheet, 1, i+1, r.label)
		setCell(f, sheet, 2, i+1, r.value)
	}

	row := len(rows) + 2
	setCell(f, sheet, 1, row, "summary")
	for _, line := range roi.SummaryLines {
		row++
		setCell(f, sheet, 2, row, line)
	}
}

func paybackCell(months *float64) any {
	if months == nil {
		return "not achievable"
	}
	return *months
}

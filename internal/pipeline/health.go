package pipeline

import (
	"math"
	"strings"

	"growthlens/internal"
)

// OverallScorer aggregates the available sub-scores into the headline
// number. It is injected so the aggregation policy can evolve (or be fixed
// in tests) without touching the checklist math.
type OverallScorer interface {
	Overall(performance, seo, technical *int) int
}

// MeanScorer is the default aggregation: the rounded mean of whichever
// sub-scores were assessable. No data at all scores zero.
type MeanScorer struct{}

func (MeanScorer) Overall(performance, seo, technical *int) int {
	sum, n := 0, 0
	for _, s := range []*int{performance, seo, technical} {
		if s != nil {
			sum += *s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// BuildHealthScorecard converts an audit into the weighted-checklist
// scorecard. Each sub-score stays nil when its prerequisite audit section is
// entirely absent; a nil is "not assessed", which renderers must keep
// distinct from a computed zero. A nil audit yields a nil scorecard — the
// normal "no audit yet" case.
func BuildHealthScorecard(audit *internal.AuditResult, scorer OverallScorer) *internal.HealthScorecard {
	if audit == nil {
		return nil
	}
	if scorer == nil {
		scorer = MeanScorer{}
	}

	card := &internal.HealthScorecard{
		TopIssues:       []string{},
		Recommendations: []string{},
	}
	card.PerformanceScore = performanceScore(audit.Performance)
	card.SEOScore = seoScore(audit.SEO)
	card.TechnicalScore = technicalScore(audit)
	card.OverallScore = scorer.Overall(card.PerformanceScore, card.SEOScore, card.TechnicalScore)

	// Recommendations arrive pre-sorted by priority upstream; slice, don't
	// re-rank.
	for _, rec := range audit.Recommendations {
		priority := strings.ToLower(rec.Priority)
		if (priority == "critical" || priority == "high") && len(card.TopIssues) < 5 {
			card.TopIssues = append(card.TopIssues, rec.Text)
		}
		if len(card.Recommendations) < 5 {
			card.Recommendations = append(card.Recommendations, rec.Text)
		}
	}

	return card
}

func performanceScore(perf *internal.PerformanceResult) *int {
	if perf == nil {
		return nil
	}
	score := 100 - int(math.Round(perf.LoadTimeSeconds*15))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score
}

// seoScore runs the 60-point SEO checklist: title presence and length band
// 10, meta description presence and length band 10, HTTPS 15, mobile
// viewport 15, structured data 10.
func seoScore(seo *internal.SEOResult) *int {
	if seo == nil {
		return nil
	}

	points := 0
	points += presenceAndBandPoints(seo.Title, 30, 60)
	points += presenceAndBandPoints(seo.MetaDescription, 120, 160)
	if seo.HasHTTPS {
		points += 15
	}
	if seo.HasMobileViewport {
		points += 15
	}
	if seo.HasStructuredData {
		points += 10
	}

	score := int(math.Round(float64(points) / 60 * 100))
	return &score
}

// presenceAndBandPoints awards 5 for the tag existing at all and another 5
// when its length sits in the recommended band.
func presenceAndBandPoints(value *string, minLen, maxLen int) int {
	if value == nil || strings.TrimSpace(*value) == "" {
		return 0
	}
	points := 5
	if n := len(strings.TrimSpace(*value)); n >= minLen && n <= maxLen {
		points += 5
	}
	return points
}

// technicalScore runs the 100-point technical checklist: reachable 30,
// HTTPS 20, modern stack detected 20, load-time band (<3s 15, <5s 10),
// contact completeness (both 15, either 8).
func technicalScore(audit *internal.AuditResult) *int {
	if audit.Performance == nil && audit.SEO == nil && audit.TechStack == nil && audit.Contact == nil && !audit.Reachable {
		return nil
	}

	points := 0
	if audit.Reachable {
		points += 30
	}
	if audit.SEO != nil && audit.SEO.HasHTTPS {
		points += 20
	}
	if hasModernStack(audit.TechStack) {
		points += 20
	}
	if audit.Performance != nil {
		switch {
		case audit.Performance.LoadTimeSeconds < 3:
			points += 15
		case audit.Performance.LoadTimeSeconds < 5:
			points += 10
		}
	}
	points += contactPoints(audit.Contact)

	return &points
}

func hasModernStack(tech *internal.TechStackResult) bool {
	if tech == nil {
		return false
	}
	return tech.CMS != nil || tech.EcommercePlatform != nil || len(tech.Frameworks) > 0
}

func contactPoints(contact *internal.ContactInfo) int {
	if contact == nil {
		return 0
	}
	hasEmail := contact.Email != nil && strings.TrimSpace(*contact.Email) != ""
	hasPhone := contact.Phone != nil && strings.TrimSpace(*contact.Phone) != ""
	switch {
	case hasEmail && hasPhone:
		return 15
	case hasEmail || hasPhone:
		return 8
	default:
		return 0
	}
}

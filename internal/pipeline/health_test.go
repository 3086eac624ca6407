package pipeline

import (
	"reflect"
	"testing"

	"growthlens/internal"
)

func fullAudit() *internal.AuditResult {
	return &internal.AuditResult{
		URL:       "https://cafe.example.com",
		Reachable: true,
		Performance: &internal.PerformanceResult{
			LoadTimeSeconds: 2.4,
		},
		SEO: &internal.SEOResult{
			Title:             strp("Cafe Example | Specialty coffee in Newtown"),
			MetaDescription:   strp("Cafe Example serves specialty coffee, brunch and takeaway in Newtown. Open seven days, dine in or order online for pickup and local delivery."),
			HasHTTPS:          true,
			HasMobileViewport: true,
			HasStructuredData: false,
		},
		TechStack: &internal.TechStackResult{CMS: strp("WordPress")},
		Contact:   &internal.ContactInfo{Email: strp("hello@cafe.example.com"), Phone: strp("02 9000 0000")},
		Recommendations: []internal.Recommendation{
			{Priority: "critical", Text: "Enable structured data"},
			{Priority: "high", Text: "Compress hero images"},
			{Priority: "medium", Text: "Add alt text"},
		},
	}
}

func TestBuildHealthScorecardFullAudit(t *testing.T) {
	card := BuildHealthScorecard(fullAudit(), MeanScorer{})
	if card == nil {
		t.Fatal("expected a scorecard")
	}

	// SEO: title 10 + meta 10 + https 15 + mobile 15 = 50 of 60 -> 83.
	if card.SEOScore == nil || *card.SEOScore != 83 {
		t.Fatalf("seo score = %v, want 83", card.SEOScore)
	}
	// Technical: reachable 30 + https 20 + modern stack 20 + load<3s 15 + both contacts 15 = 100.
	if card.TechnicalScore == nil || *card.TechnicalScore != 100 {
		t.Fatalf("technical score = %v, want 100", card.TechnicalScore)
	}
	if card.PerformanceScore == nil {
		t.Fatal("performance score missing")
	}

	if !reflect.DeepEqual(card.TopIssues, []string{"Enable structured data", "Compress hero images"}) {
		t.Fatalf("top issues = %v", card.TopIssues)
	}
	if len(card.Recommendations) != 3 {
		t.Fatalf("recommendations = %v", card.Recommendations)
	}
}

func TestBuildHealthScorecardAbsentSections(t *testing.T) {
	audit := &internal.AuditResult{URL: "https://x.example.com", Reachable: true}
	card := BuildHealthScorecard(audit, MeanScorer{})
	if card == nil {
		t.Fatal("expected a scorecard")
	}
	if card.SEOScore != nil {
		t.Fatalf("seo score must be nil without SEO data, got %d", *card.SEOScore)
	}
	if card.PerformanceScore != nil {
		t.Fatalf("performance score must be nil without performance data, got %d", *card.PerformanceScore)
	}
	// Reachability alone still makes the technical checklist assessable.
	if card.TechnicalScore == nil || *card.TechnicalScore != 30 {
		t.Fatalf("technical score = %v, want 30", card.TechnicalScore)
	}
}

func TestBuildHealthScorecardNoAudit(t *testing.T) {
	if card := BuildHealthScorecard(nil, MeanScorer{}); card != nil {
		t.Fatalf("expected nil scorecard for nil audit, got %+v", card)
	}
}

func TestBuildHealthScorecardTopIssuesCapped(t *testing.T) {
	audit := fullAudit()
	audit.Recommendations = nil
	for i := 0; i < 8; i++ {
		audit.Recommendations = append(audit.Recommendations, internal.Recommendation{Priority: "critical", Text: "issue"})
	}
	card := BuildHealthScorecard(audit, MeanScorer{})
	if len(card.TopIssues) != 5 {
		t.Fatalf("top issues capped at 5, got %d", len(card.TopIssues))
	}
	if len(card.Recommendations) != 5 {
		t.Fatalf("recommendations capped at 5, got %d", len(card.Recommendations))
	}
}

func TestMeanScorer(t *testing.T) {
	a, b := 80, 60
	if got := (MeanScorer{}).Overall(&a, &b, nil); got != 70 {
		t.Fatalf("overall = %d, want 70", got)
	}
	if got := (MeanScorer{}).Overall(nil, nil, nil); got != 0 {
		t.Fatalf("overall with no data = %d, want 0", got)
	}
}

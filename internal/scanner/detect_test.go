package scanner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"growthlens/internal"
)

const sampleHTML = `<!doctype html>
<html>
<head>
<title>Harbour Cafe | Waterfront dining in Manly</title>
<meta name="description" content="Harbour Cafe serves modern Australian food on the Manly waterfront. Book a table online, order takeaway, or get in touch to plan your next private event.">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="WordPress 6.4">
<script type="application/ld+json">{"@type":"Restaurant"}</script>
<script src="https://js.stripe.com/v3/"></script>
<script src="https://www.googletagmanager.com/gtag/js?id=G-XYZ"></script>
<script src="https://example.com/wp-content/themes/cafe/app.js"></script>
<script src="https://code.jquery.com/jquery.min.js"></script>
</head>
<body>
<a href="https://www.opentable.com/r/harbour-cafe">Book a table</a>
<a href="mailto:bookings@harbourcafe.example.com">Email us</a>
<a href="tel:+61290001234">Call</a>
</body>
</html>`

func sampleDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDetectTechnologies(t *testing.T) {
	got := DetectTechnologies(sampleDoc(t), sampleHTML)

	if got.CMS == nil || *got.CMS != "WordPress" {
		t.Fatalf("cms = %v, want WordPress", got.CMS)
	}
	if got.EcommercePlatform != nil {
		t.Fatalf("no ecommerce platform expected, got %v", *got.EcommercePlatform)
	}

	byName := map[string]internal.TechCategory{}
	for _, det := range got.DetectedTechnologies {
		byName[det.Name] = det.Category
	}
	if byName["Stripe"] != internal.CategoryPayment {
		t.Fatalf("Stripe detection missing or miscategorized: %v", byName)
	}
	if byName["Google Analytics"] != internal.CategoryAnalytics {
		t.Fatalf("Google Analytics detection missing: %v", byName)
	}
	if byName["OpenTable"] != internal.CategoryBooking {
		t.Fatalf("OpenTable detection missing: %v", byName)
	}

	if !reflect.DeepEqual(got.Frameworks, []string{"jQuery"}) {
		t.Fatalf("frameworks = %v", got.Frameworks)
	}
}

func TestDetectTechnologiesGeneratorOnly(t *testing.T) {
	html := `<html><head><meta name="generator" content="Shopify"></head><body></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	got := DetectTechnologies(doc, html)
	if got.EcommercePlatform == nil || *got.EcommercePlatform != "Shopify" {
		t.Fatalf("ecommerce = %v, want Shopify", got.EcommercePlatform)
	}
}

func TestExtractSEO(t *testing.T) {
	got := extractSEO(sampleDoc(t), true)
	if got.Title == nil || !strings.HasPrefix(*got.Title, "Harbour Cafe") {
		t.Fatalf("title = %v", got.Title)
	}
	if got.MetaDescription == nil {
		t.Fatal("meta description missing")
	}
	if !got.HasMobileViewport || !got.HasStructuredData || !got.HasHTTPS {
		t.Fatalf("flags wrong: %+v", got)
	}
}

func TestExtractContact(t *testing.T) {
	got := extractContact(sampleDoc(t), sampleHTML)
	if got == nil {
		t.Fatal("contact missing")
	}
	if got.Email == nil || *got.Email != "bookings@harbourcafe.example.com" {
		t.Fatalf("email = %v", got.Email)
	}
	if got.Phone == nil || *got.Phone != "+61290001234" {
		t.Fatalf("phone = %v", got.Phone)
	}
}

func TestExtractContactAbsent(t *testing.T) {
	html := `<html><body><p>No contact here</p></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	if got := extractContact(doc, html); got != nil {
		t.Fatalf("expected nil contact, got %+v", got)
	}
}

func TestBuildRecommendationsSorted(t *testing.T) {
	audit := &internal.AuditResult{
		Reachable:   true,
		Performance: &internal.PerformanceResult{LoadTimeSeconds: 6},
		SEO:         &internal.SEOResult{HasHTTPS: false},
		TechStack:   &internal.TechStackResult{},
	}
	recs := sortRecommendations(buildRecommendations(audit))
	if recs[0].Priority != "critical" {
		t.Fatalf("first recommendation = %+v", recs[0])
	}
	for i := 1; i < len(recs); i++ {
		if priorityRank[recs[i-1].Priority] > priorityRank[recs[i].Priority] {
			t.Fatalf("recommendations not priority-sorted: %v", recs)
		}
	}
}

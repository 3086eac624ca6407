package pipeline

import (
	"reflect"
	"testing"

	"growthlens/internal"
)

func strp(v string) *string { return &v }

func TestExtractAuditStack(t *testing.T) {
	tech := &internal.TechStackResult{
		CMS:               strp("WordPress"),
		EcommercePlatform: strp("WooCommerce"),
		Frameworks:        []string{"React"},
		DetectedTechnologies: []internal.TechDetection{
			{Name: "Stripe", Category: internal.CategoryPayment},
			{Name: "Google Analytics", Category: internal.CategoryAnalytics},
			{Name: "Mailchimp", Category: internal.CategoryMarketing},
			{Name: "OpenTable", Category: internal.CategoryBooking},
			{Name: "jQuery", Category: internal.CategoryOther},
		},
	}

	got := ExtractAuditStack(tech)

	wantSystems := []string{"WordPress", "WooCommerce", "OpenTable"}
	if !reflect.DeepEqual(got.Systems, wantSystems) {
		t.Fatalf("systems = %v, want %v", got.Systems, wantSystems)
	}
	wantIntegrations := []string{"Stripe", "Google Analytics", "Mailchimp"}
	if !reflect.DeepEqual(got.Integrations, wantIntegrations) {
		t.Fatalf("integrations = %v, want %v", got.Integrations, wantIntegrations)
	}
	// Everything, including narrative-only frameworks and "other" detections.
	wantAll := []string{"WordPress", "WooCommerce", "React", "Stripe", "Google Analytics", "Mailchimp", "OpenTable", "jQuery"}
	if !reflect.DeepEqual(got.AllTechnologies, wantAll) {
		t.Fatalf("allTechnologies = %v, want %v", got.AllTechnologies, wantAll)
	}
}

func TestExtractAuditStackNoAudit(t *testing.T) {
	got := ExtractAuditStack(nil)
	if len(got.Systems) != 0 || len(got.Integrations) != 0 || len(got.AllTechnologies) != 0 {
		t.Fatalf("expected all-empty output, got %+v", got)
	}
	if got.Systems == nil || got.Integrations == nil || got.AllTechnologies == nil {
		t.Fatal("empty output must not be nil slices")
	}
}

func TestExtractAuditStackDedupsDetections(t *testing.T) {
	tech := &internal.TechStackResult{
		CMS: strp("Shopify"),
		DetectedTechnologies: []internal.TechDetection{
			{Name: "shopify", Category: internal.CategoryEcommerce},
			{Name: "Stripe", Category: internal.CategoryPayment},
			{Name: "stripe", Category: internal.CategoryPayment},
		},
	}
	got := ExtractAuditStack(tech)
	if !reflect.DeepEqual(got.Systems, []string{"Shopify"}) {
		t.Fatalf("systems = %v", got.Systems)
	}
	if !reflect.DeepEqual(got.Integrations, []string{"Stripe"}) {
		t.Fatalf("integrations = %v", got.Integrations)
	}
}

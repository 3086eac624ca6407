package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"growthlens/internal"
	"growthlens/internal/storage"
)

// End-to-end run against a real sqlite store: seed one client with all three
// inputs, build the proposal, persist it, read it back, export the workbook.
func TestSmokeStoreToXLSX(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "growthlens.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	client, err := db.UpsertClient("Harbour Cafe", "https://harbourcafe.example.com", "hospitality")
	if err != nil {
		t.Fatal(err)
	}

	audit := internal.AuditResult{
		URL:         "https://harbourcafe.example.com",
		FetchedAt:   time.Now().UTC().Format(time.RFC3339),
		Reachable:   true,
		Performance: &internal.PerformanceResult{LoadTimeSeconds: 2.1},
		SEO: &internal.SEOResult{
			Title:             strp("Harbour Cafe - Waterfront Dining in Sydney"),
			HasHTTPS:          true,
			HasMobileViewport: true,
		},
		TechStack: &internal.TechStackResult{
			CMS: strp("WordPress"),
			DetectedTechnologies: []internal.TechDetection{
				{Name: "square POS", Category: internal.CategoryPayment},
				{Name: "Google Analytics", Category: internal.CategoryAnalytics},
			},
		},
	}
	if err := db.SaveAudit(client.ID, audit); err != nil {
		t.Fatal(err)
	}

	answers := internal.SectorAnswers{
		Sector:   "hospitality",
		FreeText: map[string]string{"currentSystems": "Square for payments, OpenTable for bookings"},
	}
	if err := db.SaveSectorAnswers(client.ID, answers); err != nil {
		t.Fatal(err)
	}

	tree := internal.DiscoveryTree{
		Trunk: internal.DiscoveryTrunk{
			Integrations: []internal.DiscoveryIntegration{{SystemName: "OpenTable", SystemType: "bookings", Priority: "high"}},
		},
		Priorities: internal.DiscoveryPriorities{
			MustHave:   []string{"onlineBooking", "paymentProcessing"},
			NiceToHave: []string{"emailAutomation"},
		},
	}
	if err := db.SaveDiscoveryTree(client.ID, tree); err != nil {
		t.Fatal(err)
	}

	assembler := NewAssembler(loadTables(t), db, db, db, nil, nil)
	proposal, err := assembler.BuildProposal(context.Background(), client, BuildOptions{
		Confidence:    internal.ConfidenceModerate,
		InvestmentAUD: 9000,
	})
	if err != nil {
		t.Fatal(err)
	}

	if proposal.Health == nil || proposal.Roi == nil || proposal.UpdatedTree == nil {
		t.Fatalf("incomplete proposal: %+v", proposal)
	}
	if proposal.Roi.WeeklyHoursSaved != 16 {
		t.Fatalf("weekly hours = %v, want 16", proposal.Roi.WeeklyHoursSaved)
	}
	// The audit found a payment system the tree didn't know about.
	integrations := proposal.UpdatedTree.Trunk.Integrations
	if len(integrations) != 3 {
		t.Fatalf("reconciled integrations = %+v", integrations)
	}
	if integrations[0].SystemName != "OpenTable" {
		t.Fatalf("existing integration moved: %+v", integrations[0])
	}

	if proposal.UpdatedTree != nil {
		if err := db.SaveDiscoveryTree(client.ID, *proposal.UpdatedTree); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.SaveProposal(client.ID, proposal); err != nil {
		t.Fatal(err)
	}

	stored, err := db.LatestProposal(client.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.Roi == nil || stored.Roi.TotalAnnualBenefitAUD != proposal.Roi.TotalAnnualBenefitAUD {
		t.Fatalf("stored proposal does not round-trip: %+v", stored)
	}

	out := filepath.Join(dir, "proposal.xlsx")
	if err := ExportProposalXLSX(proposal, out); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("exported workbook is empty")
	}
}

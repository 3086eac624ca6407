package pipeline

import (
	"reflect"
	"testing"

	"growthlens/internal"
)

func TestExtractSectorSignalsHospitality(t *testing.T) {
	answers := internal.SectorAnswers{
		Sector: "hospitality",
		FreeText: map[string]string{
			"currentSystems": "We take bookings through OpenTable and run a square POS at the bar",
		},
	}

	got := ExtractSectorSignals(answers)

	want := []string{"Square", "OpenTable"}
	if !reflect.DeepEqual(got.Systems, want) {
		t.Fatalf("systems = %v, want %v", got.Systems, want)
	}
	if len(got.Integrations) != 0 {
		t.Fatalf("integrations should be empty, got %v", got.Integrations)
	}
	if got.Notes == nil || *got.Notes != answers.FreeText["currentSystems"] {
		t.Fatalf("note must retain the raw answer verbatim, got %v", got.Notes)
	}
}

func TestExtractSectorSignalsRetailSelections(t *testing.T) {
	answers := internal.SectorAnswers{
		Sector: "retail",
		Selections: map[string][]string{
			"salesChannels": {"Shopify", "eBay", "shopify", " "},
		},
	}

	got := ExtractSectorSignals(answers)
	want := []string{"Shopify", "eBay"}
	if !reflect.DeepEqual(got.Systems, want) {
		t.Fatalf("systems = %v, want %v", got.Systems, want)
	}
	if got.Notes != nil {
		t.Fatalf("no free text given, note should be nil, got %q", *got.Notes)
	}
}

func TestExtractSectorSignalsTrades(t *testing.T) {
	answers := internal.SectorAnswers{
		Sector: "trades-construction",
		FreeText: map[string]string{
			"tooling": "Dispatch runs on ServiceM8, books kept in XERO",
		},
	}

	got := ExtractSectorSignals(answers)
	want := []string{"ServiceM8", "Xero"}
	if !reflect.DeepEqual(got.Systems, want) {
		t.Fatalf("systems = %v, want %v", got.Systems, want)
	}
}

func TestExtractSectorSignalsUnknownSector(t *testing.T) {
	got := ExtractSectorSignals(internal.SectorAnswers{
		Sector:   "space-mining",
		FreeText: map[string]string{"q": "We use Square"},
	})
	if len(got.Systems) != 0 || got.Notes != nil {
		t.Fatalf("unknown sector must yield an empty signal, got %+v", got)
	}
}

func TestExtractSectorSignalsEveryRegisteredSectorIsSafe(t *testing.T) {
	for sector := range sectorExtractors {
		got := ExtractSectorSignals(internal.SectorAnswers{Sector: sector})
		if got.Systems == nil || got.Integrations == nil {
			t.Fatalf("sector %q returned nil lists", sector)
		}
	}
}

func TestSectorExtractorCount(t *testing.T) {
	if len(sectorExtractors) != 16 {
		t.Fatalf("expected 16 sector extractors, got %d", len(sectorExtractors))
	}
}

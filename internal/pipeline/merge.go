package pipeline

import (
	"strings"

	"growthlens/internal"
	"growthlens/internal/util"
)

// MergeStack combines the questionnaire signal with the audit extraction
// into one deduplicated, provenance-tagged stack view. Sector entries seed
// each list and win every collision: the client's own answer is ground truth
// and a colliding audit detection is discarded, never the other way around.
func MergeStack(sector SectorSignal, audit AuditStack) internal.StackView {
	systems, systemSources := mergeLists(sector.Systems, audit.Systems)
	integrations, integrationSources := mergeLists(sector.Integrations, audit.Integrations)

	view := internal.StackView{
		Systems:      systems,
		Integrations: integrations,
	}

	if note := buildNotes(sector.Notes, audit.AllTechnologies); note != "" {
		view.Notes = &note
	}

	// Sources attach only when there is at least one entry; a nil Sources
	// (as opposed to empty arrays) tells downstream there is no stack data
	// at all.
	if len(systems) > 0 || len(integrations) > 0 {
		view.Sources = &internal.StackSources{
			Systems:      systemSources,
			Integrations: integrationSources,
		}
	}
	return view
}

func mergeLists(sectorNames, auditNames []string) ([]string, []internal.Provenance) {
	names := make([]string, 0, len(sectorNames)+len(auditNames))
	provenance := make([]internal.Provenance, 0, cap(names))

	for _, name := range sectorNames {
		names = append(names, name)
		provenance = append(provenance, internal.ProvenanceSector)
	}

	sectorKeys := map[string]struct{}{}
	for _, name := range sectorNames {
		if key := util.NormalizeName(name); key != "" {
			sectorKeys[key] = struct{}{}
		}
	}

	for _, name := range auditNames {
		key := util.NormalizeName(name)
		if key == "" {
			continue
		}
		if _, taken := sectorKeys[key]; taken {
			continue
		}
		names = append(names, name)
		provenance = append(provenance, internal.ProvenanceAudit)
	}

	// The sector list itself may carry near-duplicates; the final dedup pass
	// rebuilds provenance to match the survivors.
	return DedupNamesWithProvenance(names, provenance)
}

func buildNotes(sectorNote *string, allTechnologies []string) string {
	parts := make([]string, 0, 2)
	if sectorNote != nil && strings.TrimSpace(*sectorNote) != "" {
		parts = append(parts, strings.TrimSpace(*sectorNote))
	}
	if len(allTechnologies) > 0 {
		parts = append(parts, "Detected via site analysis: "+strings.Join(allTechnologies, ", "))
	}
	return strings.Join(parts, " | ")
}

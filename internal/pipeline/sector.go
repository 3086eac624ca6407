package pipeline

import (
	"sort"
	"strings"

	"growthlens/internal"
	"growthlens/internal/util"
)

// SectorSignal is what the intake questionnaire tells us about the client's
// stack. Integrations stays empty for now: no sector question asks about
// them directly, but merge and display treat the field uniformly.
type SectorSignal struct {
	Systems      []string
	Integrations []string
	Notes        *string
}

type sectorExtractor func(internal.SectorAnswers) SectorSignal

// One entry per vertical. Adding a sector is purely additive: register its
// extractor here and (if it pattern-matches) its vocabulary below.
var sectorExtractors = map[string]sectorExtractor{
	"hospitality":           vocabularyExtractor("hospitality"),
	"retail":                selectionExtractor("salesChannels"),
	"trades-construction":   vocabularyExtractor("trades-construction"),
	"professional-services": vocabularyExtractor("professional-services"),
	"health-wellness":       vocabularyExtractor("health-wellness"),
	"beauty-personal-care":  vocabularyExtractor("beauty-personal-care"),
	"fitness":               vocabularyExtractor("fitness"),
	"real-estate":           vocabularyExtractor("real-estate"),
	"automotive":            vocabularyExtractor("automotive"),
	"legal":                 vocabularyExtractor("legal"),
	"accounting-finance":    vocabularyExtractor("accounting-finance"),
	"education-training":    vocabularyExtractor("education-training"),
	"medical-dental":        vocabularyExtractor("medical-dental"),
	"creative-agency":       vocabularyExtractor("creative-agency"),
	"ecommerce":             selectionExtractor("platforms"),
	"events-entertainment":  vocabularyExtractor("events-entertainment"),
}

// Per-sector recognition vocabularies: vendor/tool names a client in that
// vertical plausibly writes into a free-text answer. Display casing here is
// what surfaces in the merged stack view.
var sectorVocabularies = map[string][]string{
	"hospitality":           {"Square", "Lightspeed", "Toast", "OpenTable", "SevenRooms", "ResDiary", "NowBookIt", "Mews", "Little Hotelier", "Deputy", "7shifts", "me&u", "Doshii"},
	"trades-construction":   {"ServiceM8", "simPRO", "Tradify", "AroFlo", "Fergus", "Buildertrend", "Xero", "MYOB", "QuickBooks"},
	"professional-services": {"HubSpot", "Salesforce", "Pipedrive", "Asana", "Monday.com", "Harvest", "Xero"},
	"health-wellness":       {"Cliniko", "Halaxy", "HealthEngine", "Nookal", "Mindbody"},
	"beauty-personal-care":  {"Timely", "Fresha", "Kitomba", "Shortcuts", "Square"},
	"fitness":               {"Mindbody", "Glofox", "TeamUp", "Zen Planner", "ClubWorx"},
	"real-estate":           {"PropertyMe", "AgentBox", "VaultRE", "Property Tree", "Rex"},
	"automotive":            {"Workshop Software", "MechanicDesk", "AutoGuru", "Xero"},
	"legal":                 {"LEAP", "Smokeball", "Actionstep", "Clio"},
	"accounting-finance":    {"Xero", "MYOB", "QuickBooks", "Karbon", "FYI Docs"},
	"education-training":    {"Moodle", "Canvas", "TidyHQ", "Arlo"},
	"medical-dental":        {"Best Practice", "Dental4Windows", "Praktika", "HotDoc", "Cliniko"},
	"creative-agency":       {"Figma", "Adobe Creative Cloud", "Trello", "Asana", "Harvest"},
	"events-entertainment":  {"Eventbrite", "Humanitix", "TryBooking", "Square"},
}

// ExtractSectorSignals dispatches on the sector id. Sector answers come
// straight from the client, so whatever is recognized here later outranks
// audit detections, which can be noisy (a cached third-party script, say).
// Unknown sectors yield an empty signal, never an error.
func ExtractSectorSignals(answers internal.SectorAnswers) SectorSignal {
	extract, ok := sectorExtractors[strings.ToLower(strings.TrimSpace(answers.Sector))]
	if !ok {
		return emptySignal()
	}
	return extract(answers)
}

func emptySignal() SectorSignal {
	return SectorSignal{Systems: []string{}, Integrations: []string{}}
}

// vocabularyExtractor builds an extractor that substring-matches the
// sector's vocabulary against every free-text answer, case-insensitively.
// The raw answer text is retained verbatim as an explanatory note.
func vocabularyExtractor(sector string) sectorExtractor {
	vocab := sectorVocabularies[sector]
	return func(answers internal.SectorAnswers) SectorSignal {
		out := emptySignal()
		text := joinedFreeText(answers)
		if text == "" {
			return out
		}

		for _, vendor := range vocab {
			if util.ContainsToken(text, vendor) {
				out.Systems = append(out.Systems, vendor)
			}
		}
		out.Systems = DedupNames(out.Systems)
		note := text
		out.Notes = &note
		return out
	}
}

// selectionExtractor builds an extractor for sectors whose intake form
// offers a pre-selected array (retail sales channels, ecommerce platforms);
// no pattern matching is needed, the selections are taken as-is.
func selectionExtractor(key string) sectorExtractor {
	return func(answers internal.SectorAnswers) SectorSignal {
		out := emptySignal()
		for _, choice := range answers.Selections[key] {
			if strings.TrimSpace(choice) == "" {
				continue
			}
			out.Systems = append(out.Systems, strings.TrimSpace(choice))
		}
		out.Systems = DedupNames(out.Systems)
		if text := joinedFreeText(answers); text != "" {
			out.Notes = &text
		}
		return out
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// joinedFreeText concatenates the prose answers in stable key order so the
// note (and anything matched from it) is deterministic across calls.
func joinedFreeText(answers internal.SectorAnswers) string {
	parts := make([]string, 0, len(answers.FreeText))
	for _, k := range sortedKeys(answers.FreeText) {
		v := strings.TrimSpace(answers.FreeText[k])
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

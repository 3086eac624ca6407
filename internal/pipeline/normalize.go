package pipeline

import (
	"growthlens/internal"
	"growthlens/internal/util"
)

// DedupNames removes case/suffix-insensitive duplicates from an ordered name
// list. The first occurrence wins and keeps its display casing. Empty input
// yields an empty slice, never nil.
func DedupNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		key := util.NormalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

// DedupNamesWithProvenance behaves like DedupNames but also returns the
// provenance tags of the surviving occurrences, aligned index-for-index with
// the returned names. provenance must be the same length as names.
func DedupNamesWithProvenance(names []string, provenance []internal.Provenance) ([]string, []internal.Provenance) {
	outNames := make([]string, 0, len(names))
	outProv := make([]internal.Provenance, 0, len(names))
	seen := map[string]struct{}{}
	for i, name := range names {
		key := util.NormalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		outNames = append(outNames, name)
		outProv = append(outProv, provenance[i])
	}
	return outNames, outProv
}

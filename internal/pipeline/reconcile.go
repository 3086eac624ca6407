package pipeline

import (
	"growthlens/internal"
	"growthlens/internal/util"
)

// ReconcileIntegrations additively merges audit-derived integrations into a
// user-edited discovery list. Every existing entry is kept byte-identical in
// its original position; audit names are appended at the end only when no
// existing entry shares their normalized key. The operation is idempotent,
// so repeated pre-population on reload never clobbers user edits.
func ReconcileIntegrations(existing []internal.DiscoveryIntegration, auditIntegrations []string) []internal.DiscoveryIntegration {
	out := make([]internal.DiscoveryIntegration, 0, len(existing)+len(auditIntegrations))
	seen := map[string]struct{}{}

	for _, entry := range existing {
		out = append(out, entry)
		if key := util.NormalizeName(entry.SystemName); key != "" {
			seen[key] = struct{}{}
		}
	}

	for _, name := range auditIntegrations {
		key := util.NormalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, internal.DiscoveryIntegration{
			SystemName: name,
			SystemType: "integration",
			Priority:   "medium",
		})
	}

	return out
}

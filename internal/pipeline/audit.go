package pipeline

import (
	"strings"

	"growthlens/internal"
)

// AuditStack buckets a raw audit's detections into the systems the business
// runs on versus the integrations bolted onto them. AllTechnologies keeps
// every detection for narrative use regardless of bucket.
type AuditStack struct {
	Systems         []string
	Integrations    []string
	AllTechnologies []string
}

// ExtractAuditStack classifies a raw audit tech-stack record. CMS,
// e-commerce and booking shaped detections are systems; payment, analytics
// and marketing shaped detections are integrations. A nil tech stack is the
// normal "no audit yet" case and yields all-empty output.
func ExtractAuditStack(tech *internal.TechStackResult) AuditStack {
	out := AuditStack{
		Systems:         []string{},
		Integrations:    []string{},
		AllTechnologies: []string{},
	}
	if tech == nil {
		return out
	}

	if tech.CMS != nil && strings.TrimSpace(*tech.CMS) != "" {
		out.Systems = append(out.Systems, *tech.CMS)
		out.AllTechnologies = append(out.AllTechnologies, *tech.CMS)
	}
	if tech.EcommercePlatform != nil && strings.TrimSpace(*tech.EcommercePlatform) != "" {
		out.Systems = append(out.Systems, *tech.EcommercePlatform)
		out.AllTechnologies = append(out.AllTechnologies, *tech.EcommercePlatform)
	}
	for _, fw := range tech.Frameworks {
		if strings.TrimSpace(fw) == "" {
			continue
		}
		out.AllTechnologies = append(out.AllTechnologies, fw)
	}

	for _, det := range tech.DetectedTechnologies {
		name := strings.TrimSpace(det.Name)
		if name == "" {
			continue
		}
		out.AllTechnologies = append(out.AllTechnologies, name)
		switch det.Category {
		case internal.CategoryCMS, internal.CategoryEcommerce, internal.CategoryBooking:
			out.Systems = append(out.Systems, name)
		case internal.CategoryPayment, internal.CategoryAnalytics, internal.CategoryMarketing:
			out.Integrations = append(out.Integrations, name)
		}
	}

	out.Systems = DedupNames(out.Systems)
	out.Integrations = DedupNames(out.Integrations)
	out.AllTechnologies = DedupNames(out.AllTechnologies)
	return out
}

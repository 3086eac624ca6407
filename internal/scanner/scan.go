package scanner

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"growthlens/internal"
	"growthlens/internal/config"
)

// Scanner is the audit collaborator: it turns a URL into an AuditResult the
// reconciliation and scoring pipeline consumes.
type Scanner struct {
	client *Client
}

func New(cfg config.Config) *Scanner {
	return &Scanner{client: NewClient(cfg)}
}

// Scan audits one site. An unreachable site is a valid audit outcome
// (Reachable=false, no sections), not an error; errors are reserved for
// malformed input.
func (s *Scanner) Scan(rawURL string) (*internal.AuditResult, error) {
	audit := &internal.AuditResult{
		URL:             rawURL,
		FetchedAt:       time.Now().UTC().Format(time.RFC3339),
		Recommendations: []internal.Recommendation{},
	}

	fetched, err := s.client.FetchPage(rawURL)
	if err != nil {
		audit.Recommendations = append(audit.Recommendations, internal.Recommendation{
			Priority: "critical",
			Text:     "Website could not be reached during the audit",
		})
		return audit, nil
	}

	audit.Reachable = true
	audit.URL = fetched.FinalURL
	audit.Performance = &internal.PerformanceResult{
		LoadTimeSeconds: fetched.Elapsed.Seconds(),
		PageSizeBytes:   int64(len(fetched.Body)),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fetched.Body))
	if err != nil {
		audit.Recommendations = sortRecommendations(audit.Recommendations)
		return audit, nil
	}

	html := string(fetched.Body)
	audit.SEO = extractSEO(doc, fetched.HTTPS)
	audit.TechStack = DetectTechnologies(doc, html)
	audit.Contact = extractContact(doc, html)
	audit.Recommendations = sortRecommendations(buildRecommendations(audit))

	return audit, nil
}

func extractSEO(doc *goquery.Document, https bool) *internal.SEOResult {
	out := &internal.SEOResult{HasHTTPS: https}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		out.Title = &title
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			out.MetaDescription = &desc
		}
	}
	if content, ok := doc.Find(`meta[name="viewport"]`).Attr("content"); ok {
		out.HasMobileViewport = strings.Contains(content, "width")
	}
	out.HasStructuredData = doc.Find(`script[type="application/ld+json"]`).Length() > 0

	return out
}

var (
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	rePhone = regexp.MustCompile(`(?:\+61|\(0[2-8]\)|0[2-8])[\s\-]?\d{4}[\s\-]?\d{4}|\b1[38]00[\s\-]?\d{3}[\s\-]?\d{3}\b`)
)

func extractContact(doc *goquery.Document, html string) *internal.ContactInfo {
	out := &internal.ContactInfo{}

	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" {
			out.Email = &addr
			return false
		}
		return true
	})
	if out.Email == nil {
		if m := reEmail.FindString(html); m != "" {
			out.Email = &m
		}
	}

	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		num := strings.TrimPrefix(href, "tel:")
		if num != "" {
			out.Phone = &num
			return false
		}
		return true
	})
	if out.Phone == nil {
		if m := rePhone.FindString(doc.Text()); m != "" {
			m = strings.TrimSpace(m)
			out.Phone = &m
		}
	}

	if out.Email == nil && out.Phone == nil {
		return nil
	}
	return out
}

var priorityRank = map[string]int{"critical": 0, "high": 1, "medium": 2, "low": 3}

// buildRecommendations derives the advisory list from the audit findings.
// Downstream slices the top entries, so the list must come out pre-sorted by
// priority.
func buildRecommendations(audit *internal.AuditResult) []internal.Recommendation {
	recs := []internal.Recommendation{}
	add := func(priority, text string) {
		recs = append(recs, internal.Recommendation{Priority: priority, Text: text})
	}

	if audit.SEO != nil {
		if !audit.SEO.HasHTTPS {
			add("critical", "Serve the site over HTTPS")
		}
		if audit.SEO.Title == nil {
			add("high", "Add a page title")
		}
		if audit.SEO.MetaDescription == nil {
			add("high", "Add a meta description")
		}
		if !audit.SEO.HasMobileViewport {
			add("high", "Add a mobile viewport tag")
		}
		if !audit.SEO.HasStructuredData {
			add("medium", "Add structured data markup")
		}
	}
	if audit.Performance != nil {
		if audit.Performance.LoadTimeSeconds >= 5 {
			add("high", "Reduce page load time below 5 seconds")
		} else if audit.Performance.LoadTimeSeconds >= 3 {
			add("medium", "Reduce page load time below 3 seconds")
		}
	}
	if audit.Contact == nil || audit.Contact.Email == nil || audit.Contact.Phone == nil {
		add("medium", "Publish both an email address and a phone number")
	}
	if audit.TechStack != nil && !hasAnalytics(audit.TechStack) {
		add("low", "Install website analytics")
	}

	return recs
}

func hasAnalytics(tech *internal.TechStackResult) bool {
	for _, det := range tech.DetectedTechnologies {
		if det.Category == internal.CategoryAnalytics {
			return true
		}
	}
	return false
}

func sortRecommendations(recs []internal.Recommendation) []internal.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}

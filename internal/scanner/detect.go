package scanner

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"growthlens/internal"
)

// fingerprint recognizes one technology from page markup: a substring of the
// raw HTML (script URLs, asset paths) or a generator-tag token.
type fingerprint struct {
	name      string
	category  internal.TechCategory
	markup    []string
	generator string
}

var fingerprints = []fingerprint{
	{name: "WordPress", category: internal.CategoryCMS, markup: []string{"/wp-content/", "/wp-includes/"}, generator: "wordpress"},
	{name: "Wix", category: internal.CategoryCMS, markup: []string{"static.parastorage.com", "wix.com"}, generator: "wix"},
	{name: "Squarespace", category: internal.CategoryCMS, markup: []string{"static1.squarespace.com"}, generator: "squarespace"},
	{name: "Joomla", category: internal.CategoryCMS, generator: "joomla"},
	{name: "Shopify", category: internal.CategoryEcommerce, markup: []string{"cdn.shopify.com", "myshopify.com"}, generator: "shopify"},
	{name: "WooCommerce", category: internal.CategoryEcommerce, markup: []string{"woocommerce"}},
	{name: "BigCommerce", category: internal.CategoryEcommerce, markup: []string{"cdn11.bigcommerce.com"}, generator: "bigcommerce"},
	{name: "Stripe", category: internal.CategoryPayment, markup: []string{"js.stripe.com"}},
	{name: "Square", category: internal.CategoryPayment, markup: []string{"squareup.com", "square.site"}},
	{name: "PayPal", category: internal.CategoryPayment, markup: []string{"paypal.com/sdk", "paypalobjects.com"}},
	{name: "Afterpay", category: internal.CategoryPayment, markup: []string{"portal.afterpay.com", "static.afterpay.com"}},
	{name: "Google Analytics", category: internal.CategoryAnalytics, markup: []string{"googletagmanager.com/gtag", "google-analytics.com"}},
	{name: "Hotjar", category: internal.CategoryAnalytics, markup: []string{"static.hotjar.com"}},
	{name: "Meta Pixel", category: internal.CategoryMarketing, markup: []string{"connect.facebook.net"}},
	{name: "Mailchimp", category: internal.CategoryMarketing, markup: []string{"chimpstatic.com", "list-manage.com"}},
	{name: "Klaviyo", category: internal.CategoryMarketing, markup: []string{"static.klaviyo.com"}},
	{name: "HubSpot", category: internal.CategoryMarketing, markup: []string{"js.hs-scripts.com", "js.hsforms.net"}},
	{name: "OpenTable", category: internal.CategoryBooking, markup: []string{"opentable.com"}},
	{name: "Calendly", category: internal.CategoryBooking, markup: []string{"assets.calendly.com", "calendly.com/"}},
	{name: "Mindbody", category: internal.CategoryBooking, markup: []string{"mindbodyonline.com"}},
}

var frameworkMarkers = map[string][]string{
	"React":     {"data-reactroot", "__next_f", "/_next/static/"},
	"Vue":       {"data-v-app", "__vue__"},
	"jQuery":    {"jquery.min.js", "jquery.js"},
	"Bootstrap": {"bootstrap.min.css", "bootstrap.bundle"},
}

// DetectTechnologies fingerprints the page. The CMS and e-commerce fields
// take the first matching detection of their category; everything matched
// lands in DetectedTechnologies for the extractor to bucket.
func DetectTechnologies(doc *goquery.Document, html string) *internal.TechStackResult {
	lower := strings.ToLower(html)
	generator, _ := doc.Find(`meta[name="generator"]`).Attr("content")
	generator = strings.ToLower(generator)

	out := &internal.TechStackResult{
		Frameworks:           []string{},
		DetectedTechnologies: []internal.TechDetection{},
	}

	for _, fp := range fingerprints {
		if !matchesFingerprint(fp, lower, generator) {
			continue
		}
		out.DetectedTechnologies = append(out.DetectedTechnologies, internal.TechDetection{Name: fp.name, Category: fp.category})
		switch fp.category {
		case internal.CategoryCMS:
			if out.CMS == nil {
				name := fp.name
				out.CMS = &name
			}
		case internal.CategoryEcommerce:
			if out.EcommercePlatform == nil {
				name := fp.name
				out.EcommercePlatform = &name
			}
		}
	}

	for name, markers := range frameworkMarkers {
		for _, marker := range markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				out.Frameworks = append(out.Frameworks, name)
				break
			}
		}
	}
	// Map iteration order is random; keep the narrative list stable.
	sort.Strings(out.Frameworks)

	return out
}

func matchesFingerprint(fp fingerprint, lowerHTML, generator string) bool {
	if fp.generator != "" && generator != "" && strings.Contains(generator, fp.generator) {
		return true
	}
	for _, marker := range fp.markup {
		if strings.Contains(lowerHTML, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

package internal

type TechCategory string

const (
	CategoryCMS       TechCategory = "cms"
	CategoryEcommerce TechCategory = "ecommerce"
	CategoryPayment   TechCategory = "payment"
	CategoryAnalytics TechCategory = "analytics"
	CategoryMarketing TechCategory = "marketing"
	CategoryBooking   TechCategory = "booking"
	CategoryOther     TechCategory = "other"
)

// TechDetection is a single raw audit finding. Read-only input.
type TechDetection struct {
	Name     string       `json:"name"`
	Category TechCategory `json:"category"`
}

type Provenance string

const (
	ProvenanceSector Provenance = "sector"
	ProvenanceAudit  Provenance = "audit"
)

type PerformanceResult struct {
	LoadTimeSeconds float64 `json:"loadTimeSeconds"`
	PageSizeBytes   int64   `json:"pageSizeBytes"`
}

type SEOResult struct {
	Title             *string `json:"title"`
	MetaDescription   *string `json:"metaDescription"`
	HasHTTPS          bool    `json:"hasHttps"`
	HasMobileViewport bool    `json:"hasMobileViewport"`
	HasStructuredData bool    `json:"hasStructuredData"`
}

type TechStackResult struct {
	CMS                  *string         `json:"cms"`
	EcommercePlatform    *string         `json:"ecommercePlatform"`
	Frameworks           []string        `json:"frameworks"`
	DetectedTechnologies []TechDetection `json:"detectedTechnologies"`
}

type ContactInfo struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type Recommendation struct {
	Priority string `json:"priority"` // critical|high|medium|low
	Text     string `json:"text"`
}

// AuditResult is the scanner collaborator's output for one site. A nil
// TechStack means no audit data yet, which downstream treats as the normal
// empty case rather than an error.
type AuditResult struct {
	URL             string             `json:"url"`
	FetchedAt       string             `json:"fetchedAt"`
	Reachable       bool               `json:"reachable"`
	Performance     *PerformanceResult `json:"performance"`
	SEO             *SEOResult         `json:"seo"`
	TechStack       *TechStackResult   `json:"techStack"`
	Recommendations []Recommendation   `json:"recommendations"`
	Contact         *ContactInfo       `json:"contact"`
}

// SectorAnswers carries the intake questionnaire for one client. FreeText
// holds prose answers keyed by question id; Selections holds pre-picked
// option arrays (retail sales channels, ecommerce platforms).
type SectorAnswers struct {
	Sector     string              `json:"sector"`
	FreeText   map[string]string   `json:"freeText"`
	Selections map[string][]string `json:"selections"`
}

type DiscoveryIntegration struct {
	SystemName string `json:"systemName"`
	SystemType string `json:"systemType"`
	Priority   string `json:"priority"`
}

type DiscoveryTrunk struct {
	Integrations   []DiscoveryIntegration `json:"integrations"`
	SuccessMetrics []string               `json:"successMetrics"`
}

type DiscoveryPriorities struct {
	MustHave   []string `json:"mustHave"`
	NiceToHave []string `json:"niceToHave"`
	Future     []string `json:"future"`
}

// DiscoveryTree is the persisted, user-editable record of desired
// integrations and feature priorities. This core only reads it and returns
// an updated copy for the caller to persist; existing rows are never
// mutated, reordered or removed.
type DiscoveryTree struct {
	Trunk      DiscoveryTrunk      `json:"trunk"`
	Priorities DiscoveryPriorities `json:"priorities"`
}

// StackSources carries per-entry provenance aligned index-for-index with the
// merged systems and integrations lists.
type StackSources struct {
	Systems      []Provenance `json:"systems,omitempty"`
	Integrations []Provenance `json:"integrations,omitempty"`
}

// StackView is the merged, deduplicated view of the client's current stack.
// Sources is nil when neither list has any entry, which signals "no stack
// data at all" downstream as opposed to an empty-but-assessed stack.
type StackView struct {
	Systems      []string      `json:"systems"`
	Integrations []string      `json:"integrations"`
	Notes        *string       `json:"notes"`
	Sources      *StackSources `json:"sources"`
}

type ConfidenceMode string

const (
	ConfidenceConservative ConfidenceMode = "conservative"
	ConfidenceModerate     ConfidenceMode = "moderate"
	ConfidenceOptimistic   ConfidenceMode = "optimistic"
)

// RoiSnapshot is a computed projection, recomputed fresh on every call and
// never treated as a source of truth. PaybackMonths is nil when the adjusted
// monthly benefit is not positive; callers must render that as "not
// achievable" rather than a number.
type RoiSnapshot struct {
	Sector                   string         `json:"sector"`
	Confidence               ConfidenceMode `json:"confidence"`
	WeeklyHoursSaved         float64        `json:"weeklyHoursSaved"`
	AnnualHoursSaved         float64        `json:"annualHoursSaved"`
	AnnualTimeValueAUD       float64        `json:"annualTimeValueAud"`
	AnnualRevenueIncreaseAUD float64        `json:"annualRevenueIncreaseAud"`
	TotalAnnualBenefitAUD    float64        `json:"totalAnnualBenefitAud"`
	InvestmentAUD            float64        `json:"investmentAud"`
	PaybackMonths            *float64       `json:"paybackMonths"`
	YearOneAUD               float64        `json:"yearOneAud"`
	YearTwoAUD               float64        `json:"yearTwoAud"`
	YearThreeAUD             float64        `json:"yearThreeAud"`
	ThreeYearROIPercent      float64        `json:"threeYearRoiPercent"`
	SummaryLines             []string       `json:"summaryLines"`
}

// HealthScorecard sub-scores are nil (not zero) when the prerequisite audit
// data is entirely absent, so renderers can distinguish "not assessed" from
// a computed zero.
type HealthScorecard struct {
	OverallScore     int      `json:"overallScore"`
	PerformanceScore *int     `json:"performanceScore"`
	SEOScore         *int     `json:"seoScore"`
	TechnicalScore   *int     `json:"technicalScore"`
	TopIssues        []string `json:"topIssues"`
	Recommendations  []string `json:"recommendations"`
}

type ClientRow struct {
	ID        int
	Name      string
	Website   string
	Sector    string
	CreatedAt string
}

// ProposalData is the assembled output record handed to the report renderer.
type ProposalData struct {
	ClientName    string           `json:"clientName"`
	Website       string           `json:"website"`
	Sector        string           `json:"sector"`
	Stack         StackView        `json:"stack"`
	Health        *HealthScorecard `json:"health"`
	Roi           *RoiSnapshot     `json:"roi"`
	UpdatedTree   *DiscoveryTree   `json:"updatedTree"`
	InvestmentAUD float64          `json:"investmentAud"`
}

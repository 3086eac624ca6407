package pipeline

import (
	"context"
	"fmt"

	"growthlens/internal"
	"growthlens/internal/benchmarks"
	"growthlens/internal/util"
)

// Collaborator ports the assembler pulls its three inputs through. A nil
// record with a nil error means "nothing recorded yet" and is the normal
// partial-data case, not a failure.
type AuditSource interface {
	LatestAudit(ctx context.Context, clientID int) (*internal.AuditResult, error)
}

type AnswerSource interface {
	SectorAnswers(ctx context.Context, clientID int) (*internal.SectorAnswers, error)
}

type TreeSource interface {
	DiscoveryTree(ctx context.Context, clientID int) (*internal.DiscoveryTree, error)
}

// CostEstimator prices the proposed feature set. Real pricing lives with the
// sales tooling; FlatRateEstimator is the stand-in default.
type CostEstimator interface {
	EstimateAUD(mustHave, niceToHave []string) float64
}

// FlatRateEstimator charges a fixed build fee plus a per-feature rate, with
// nice-to-haves at a reduced rate.
type FlatRateEstimator struct {
	BaseAUD    float64
	PerMustAUD float64
	PerNiceAUD float64
}

func (e FlatRateEstimator) EstimateAUD(mustHave, niceToHave []string) float64 {
	return e.BaseAUD + float64(len(mustHave))*e.PerMustAUD + float64(len(niceToHave))*e.PerNiceAUD
}

// Assembler orchestrates the extraction, merge, reconciliation, scoring and
// projection stages into one proposal record. Every stage is a pure
// transform; the only awaited boundaries are the three source fetches, so
// concurrent builds for different clients never interact. Same-client
// concurrent rebuilds are the caller's problem to serialize if they care.
type Assembler struct {
	tables    benchmarks.Tables
	audits    AuditSource
	answers   AnswerSource
	trees     TreeSource
	estimator CostEstimator
	scorer    OverallScorer
}

func NewAssembler(tables benchmarks.Tables, audits AuditSource, answers AnswerSource, trees TreeSource, estimator CostEstimator, scorer OverallScorer) *Assembler {
	if estimator == nil {
		estimator = FlatRateEstimator{BaseAUD: 3000, PerMustAUD: 1500, PerNiceAUD: 900}
	}
	if scorer == nil {
		scorer = MeanScorer{}
	}
	return &Assembler{tables: tables, audits: audits, answers: answers, trees: trees, estimator: estimator, scorer: scorer}
}

type BuildOptions struct {
	Confidence internal.ConfidenceMode
	// InvestmentAUD overrides the estimator when positive.
	InvestmentAUD           float64
	CurrentAnnualRevenueAUD *float64
}

// BuildProposal assembles the full proposal record for one client. Missing
// inputs degrade gracefully — an audit that failed but sector answers that
// exist still produce a usable proposal. The returned UpdatedTree is a copy
// for the caller to persist; the stored tree is never written here.
func (a *Assembler) BuildProposal(ctx context.Context, client internal.ClientRow, opts BuildOptions) (internal.ProposalData, error) {
	audit, err := a.audits.LatestAudit(ctx, client.ID)
	if err != nil {
		return internal.ProposalData{}, fmt.Errorf("assemble: fetch audit: %w", err)
	}
	answers, err := a.answers.SectorAnswers(ctx, client.ID)
	if err != nil {
		return internal.ProposalData{}, fmt.Errorf("assemble: fetch answers: %w", err)
	}
	tree, err := a.trees.DiscoveryTree(ctx, client.ID)
	if err != nil {
		return internal.ProposalData{}, fmt.Errorf("assemble: fetch tree: %w", err)
	}

	sectorSignal := SectorSignal{Systems: []string{}, Integrations: []string{}}
	sector := client.Sector
	if answers != nil {
		sectorSignal = ExtractSectorSignals(*answers)
		sector = util.FirstNonEmpty(answers.Sector, client.Sector)
	}

	var auditStack AuditStack
	if audit != nil {
		auditStack = ExtractAuditStack(audit.TechStack)
	} else {
		auditStack = ExtractAuditStack(nil)
	}

	stack := MergeStack(sectorSignal, auditStack)

	var updatedTree *internal.DiscoveryTree
	mustHave, niceToHave := []string{}, []string{}
	if tree != nil {
		copied := *tree
		copied.Trunk.Integrations = ReconcileIntegrations(tree.Trunk.Integrations, auditStack.Integrations)
		updatedTree = &copied
		mustHave = tree.Priorities.MustHave
		niceToHave = tree.Priorities.NiceToHave
	}

	investment := opts.InvestmentAUD
	if investment <= 0 {
		investment = a.estimator.EstimateAUD(mustHave, niceToHave)
	}

	features := make([]string, 0, len(mustHave)+len(niceToHave))
	features = append(features, mustHave...)
	features = append(features, niceToHave...)

	roi, err := CalculateROI(a.tables, RoiInput{
		Sector:                  sector,
		FeatureKeys:             features,
		InvestmentAUD:           investment,
		CurrentAnnualRevenueAUD: opts.CurrentAnnualRevenueAUD,
		Confidence:              opts.Confidence,
	})
	if err != nil {
		return internal.ProposalData{}, err
	}

	return internal.ProposalData{
		ClientName:    client.Name,
		Website:       client.Website,
		Sector:        sector,
		Stack:         stack,
		Health:        BuildHealthScorecard(audit, a.scorer),
		Roi:           &roi,
		UpdatedTree:   updatedTree,
		InvestmentAUD: investment,
	}, nil
}

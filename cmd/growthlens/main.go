package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"growthlens/internal"
	"growthlens/internal/benchmarks"
	"growthlens/internal/config"
	"growthlens/internal/pipeline"
	"growthlens/internal/scanner"
	"growthlens/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	tables, err := benchmarks.Load()
	must(err)

	cmd := os.Args[1]
	switch cmd {
	case "client:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "client name")
		website := fs.String("website", "", "client website URL")
		sector := fs.String("sector", "", "sector id")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		client, err := db.UpsertClient(*name, *website, *sector)
		must(err)
		fmt.Printf("client saved id=%d name=%s\n", client.ID, client.Name)
	case "audit:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		_ = fs.Parse(os.Args[2:])
		client := mustClient(db, *name)
		audit, err := scanner.New(cfg).Scan(client.Website)
		must(err)
		must(db.SaveAudit(client.ID, *audit))
		fmt.Printf("audit saved client=%s reachable=%v technologies=%d\n", client.Name, audit.Reachable, detectionCount(audit))
	case "answers:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		file := fs.String("file", "", "sector answers JSON file")
		_ = fs.Parse(os.Args[2:])
		client := mustClient(db, *name)
		var answers internal.SectorAnswers
		must(readJSON(*file, &answers))
		must(db.SaveSectorAnswers(client.ID, answers))
		fmt.Printf("answers saved client=%s sector=%s\n", client.Name, answers.Sector)
	case "tree:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		file := fs.String("file", "", "discovery tree JSON file")
		_ = fs.Parse(os.Args[2:])
		client := mustClient(db, *name)
		var tree internal.DiscoveryTree
		must(readJSON(*file, &tree))
		must(db.SaveDiscoveryTree(client.ID, tree))
		fmt.Printf("tree saved client=%s integrations=%d\n", client.Name, len(tree.Trunk.Integrations))
	case "tree:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		_ = fs.Parse(os.Args[2:])
		client := mustClient(db, *name)
		tree, err := db.DiscoveryTree(context.Background(), client.ID)
		must(err)
		if tree == nil {
			fmt.Println("no discovery tree yet")
			return
		}
		blob, err := json.MarshalIndent(tree, "", "  ")
		must(err)
		fmt.Println(string(blob))
	case "proposal:build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		investment := fs.Float64("investment", 0, "override investment AUD (0 = estimate)")
		revenue := fs.Float64("revenue", 0, "known current annual revenue AUD (0 = sector default)")
		confidence := fs.String("confidence", cfg.DefaultConfidence, "conservative|moderate|optimistic")
		_ = fs.Parse(os.Args[2:])
		client := mustClient(db, *name)

		estimator := pipeline.FlatRateEstimator{BaseAUD: cfg.EstimateBaseAUD, PerMustAUD: cfg.EstimatePerMustAUD, PerNiceAUD: cfg.EstimatePerNiceAUD}
		assembler := pipeline.NewAssembler(tables, db, db, db, estimator, nil)
		opts := pipeline.BuildOptions{
			Confidence:    internal.ConfidenceMode(*confidence),
			InvestmentAUD: *investment,
		}
		if *revenue > 0 {
			opts.CurrentAnnualRevenueAUD = revenue
		}
		proposal, err := assembler.BuildProposal(context.Background(), client, opts)
		must(err)

		if proposal.UpdatedTree != nil {
			must(db.SaveDiscoveryTree(client.ID, *proposal.UpdatedTree))
		}
		must(db.SaveProposal(client.ID, proposal))

		fmt.Printf("proposal built client=%s sector=%s investment=%.0f\n", client.Name, proposal.Sector, proposal.InvestmentAUD)
		for _, line := range proposal.Roi.SummaryLines {
			fmt.Printf("  %s\n", line)
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("client", "", "client name")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		client := mustClient(db, *name)
		proposal, err := db.LatestProposal(client.ID)
		must(err)
		if proposal == nil {
			must(fmt.Errorf("no proposal built yet for client=%s", client.Name))
		}
		must(pipeline.ExportProposalXLSX(*proposal, *out))
		fmt.Printf("exported proposal for %s to %s\n", client.Name, *out)
	default:
		usage()
		os.Exit(1)
	}
}

func mustClient(db *storage.DB, name string) internal.ClientRow {
	if strings.TrimSpace(name) == "" {
		must(fmt.Errorf("--client is required"))
	}
	client, err := db.ClientByName(name)
	must(err)
	return client
}

func detectionCount(audit *internal.AuditResult) int {
	if audit.TechStack == nil {
		return 0
	}
	return len(audit.TechStack.DetectedTechnologies)
}

func readJSON(path string, out any) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("--file is required")
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}

func usage() {
	fmt.Println(`usage: growthlens <command> [flags]

commands:
  client:add       --name --website [--sector]
  audit:run        --client
  answers:import   --client --file
  tree:import      --client --file
  tree:show        --client
  proposal:build   --client [--investment] [--revenue] [--confidence]
  export:xlsx      --client --out`)
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

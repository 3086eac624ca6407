// Package monitor periodically re-audits every tracked client so proposals
// are always built against a reasonably fresh site snapshot.
package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"growthlens/internal"
	"growthlens/internal/benchmarks"
	"growthlens/internal/config"
	"growthlens/internal/pipeline"
	"growthlens/internal/scanner"
	"growthlens/internal/storage"
)

type Service struct {
	db      *storage.DB
	cfg     config.Config
	scanner *scanner.Scanner
	tables  benchmarks.Tables
}

func NewService(db *storage.DB, cfg config.Config, tables benchmarks.Tables) *Service {
	return &Service{db: db, cfg: cfg, scanner: scanner.New(cfg), tables: tables}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("monitor cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.MonitorIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	clients, err := s.db.ListClients()
	if err != nil {
		return err
	}

	audited := 0
	for _, client := range clients {
		if audited >= s.cfg.MonitorBatch {
			break
		}
		if strings.TrimSpace(client.Website) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		audit, err := s.scanner.Scan(client.Website)
		if err != nil {
			fmt.Printf("monitor audit error client=%s: %v\n", client.Name, err)
			continue
		}
		if err := s.db.SaveAudit(client.ID, *audit); err != nil {
			return err
		}
		audited++

		if s.cfg.MonitorAutoExport {
			if err := s.rebuildAndExport(ctx, client); err != nil {
				return err
			}
		}
	}

	_ = s.db.SetMetadata("monitor.last_cycle", time.Now().UTC().Format(time.RFC3339))
	fmt.Printf("monitor cycle done clients=%d audited=%d\n", len(clients), audited)
	return nil
}

func (s *Service) rebuildAndExport(ctx context.Context, client internal.ClientRow) error {
	assembler := pipeline.NewAssembler(s.tables, s.db, s.db, s.db, nil, nil)
	proposal, err := assembler.BuildProposal(ctx, client, pipeline.BuildOptions{
		Confidence: internal.ConfidenceMode(s.cfg.DefaultConfidence),
	})
	if err != nil {
		return err
	}
	if proposal.UpdatedTree != nil {
		if err := s.db.SaveDiscoveryTree(client.ID, *proposal.UpdatedTree); err != nil {
			return err
		}
	}
	if err := s.db.SaveProposal(client.ID, proposal); err != nil {
		return err
	}

	outputPath := filepath.Join(s.cfg.OutputDir, "monitor", fmt.Sprintf("%d_%s.xlsx", client.ID, sanitizeName(client.Name)))
	return pipeline.ExportProposalXLSX(proposal, outputPath)
}

func sanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}

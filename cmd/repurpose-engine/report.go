// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/dataset"
	"github.com/pdiddy/repurpose-engine/internal/store"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report the top-ranked candidates and their evidence",
	Long: `Report prints the highest-ranked repurposing candidates from the
results database. Use --drug to list the evidence papers behind one
candidate, or --search to run a full-text query over the screened
abstracts. Names that look like registry identifiers rather than drug
names are flagged in the listing.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int("limit", 0, "maximum candidates to show (0 = use default)")
	reportCmd.Flags().String("drug", "", "show evidence papers for one drug name")
	reportCmd.Flags().String("search", "", "full-text query over screened abstracts")
	reportCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	drug, _ := cmd.Flags().GetString("drug")
	query, _ := cmd.Flags().GetString("search")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	resultsDir, _ := rootCmd.PersistentFlags().GetString("results-dir")

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	cfg.Store.Dir = resultsDir

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	if drug != "" {
		papers, err := s.EvidenceForDrug(ctx, dataset.NormalizeKey(drug))
		if err != nil {
			return err
		}
		return formatPapers(papers, jsonOutput)
	}

	if query != "" {
		papers, err := s.SearchEvidence(ctx, query, limit)
		if err != nil {
			return err
		}
		return formatPapers(papers, jsonOutput)
	}

	ranked, err := s.TopCandidates(ctx, limit)
	if err != nil {
		return err
	}
	return formatRanking(ranked, jsonOutput)
}

func formatRanking(ranked []types.RankedCandidate, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Println("No ranked candidates. Run score, mine, and rank first.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-28s  %-7s  %-7s  %-7s  %-6s  %-20s  %s\n",
		"Rank", "Drug", "Final", "Mech", "Lit", "Papers", "Models", "Flags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for i, c := range ranked {
		name := c.DrugName
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		flags := ""
		if dataset.LooksJunky(c.DrugName) {
			flags = "junk-name"
		}
		models := c.Models
		if len(models) > 20 {
			models = models[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-28s  %-7.3f  %-7.3f  %-7.3f  %-6d  %-20s  %s\n",
			i+1, name, c.FinalScore, c.MechanismNorm, c.EvidenceNorm, c.NPapers, models, flags)
	}

	fmt.Fprintf(os.Stdout, "\n%d candidates\n", len(ranked))
	return nil
}

func formatPapers(papers []types.EvidenceRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No evidence papers found.")
		return nil
	}

	for i, p := range papers {
		title := p.Title
		if len(title) > 70 {
			title = title[:67] + "..."
		}
		fmt.Fprintf(os.Stdout, "%2d. [%s/%s] %s\n", i+1, p.Model, p.Direction, title)
		fmt.Fprintf(os.Stdout, "    %s  PMID:%s  %s (%s)  outcomes: %s\n",
			p.DrugName, p.PMID, p.Journal, p.PubYear, p.Outcomes)
	}

	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(papers))
	return nil
}

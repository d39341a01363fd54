// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/repurpose-engine/internal/dataset"
	"github.com/pdiddy/repurpose-engine/internal/evidence"
	"github.com/pdiddy/repurpose-engine/internal/literature"
	"github.com/pdiddy/repurpose-engine/internal/store"
)

const (
	papersFile      = "phase3_papers.csv"
	litEvidenceFile = "phase3_lit_evidence.csv"
	mineSummaryFile = "mine_summary.yaml"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine Europe PMC abstracts for drug efficacy evidence",
	Long: `Mine searches Europe PMC for each candidate drug, screens abstracts
through the disease, model, and outcome gates, and aggregates the passing
papers into per-drug evidence scores. Search responses are cached on
disk; cached drugs are not re-fetched.

Candidates come from the scored drugs in the results database, or from
an explicit drug list CSV.`,
	RunE: runMine,
}

func init() {
	mineCmd.Flags().String("drugs", "", "drug list CSV; defaults to scored drugs from the results database")
	mineCmd.Flags().String("cache-dir", "cache/epmc", "directory for cached search responses")
	mineCmd.Flags().Int("max-drugs", 0, "cap the number of drugs searched (0 = all)")
	mineCmd.Flags().Duration("delay", 0, "delay after each uncached API call (default 1s)")
	mineCmd.Flags().String("email", "", "contact email sent with API requests")

	rootCmd.AddCommand(mineCmd)
}

// mineSummary is the run summary written after a mining run.
type mineSummary struct {
	Fetch          literature.FetchStats `yaml:"fetch"`
	PassingPapers  int                   `yaml:"passing_papers"`
	DrugsWithScore int                   `yaml:"drugs_with_score"`
}

func runMine(cmd *cobra.Command, args []string) error {
	drugPath, _ := cmd.Flags().GetString("drugs")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	maxDrugs, _ := cmd.Flags().GetInt("max-drugs")
	delay, _ := cmd.Flags().GetDuration("delay")
	email, _ := cmd.Flags().GetString("email")
	resultsDir, _ := rootCmd.PersistentFlags().GetString("results-dir")

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	cfg.Store.Dir = resultsDir
	cfg.Literature.CacheDir = cacheDir
	cfg.Literature.Email = secretDefault("europepmc-email", email)
	if delay > 0 {
		cfg.Literature.RequestDelay = delay
	}
	if maxDrugs > 0 {
		cfg.Literature.MaxDrugs = maxDrugs
	}

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	drugs, err := mineCandidates(ctx, s, drugPath)
	if err != nil {
		return err
	}
	if len(drugs) == 0 {
		return fmt.Errorf("no candidate drugs: run score first or provide --drugs")
	}
	if cfg.Literature.MaxDrugs > 0 && len(drugs) > cfg.Literature.MaxDrugs {
		drugs = drugs[:cfg.Literature.MaxDrugs]
	}

	client := literature.NewClient(cfg.Literature)

	papersByDrug, stats, err := client.BatchFetch(ctx, drugs, os.Stdout)
	if err != nil {
		return err
	}

	extractor := evidence.NewExtractor(evidence.DefaultLexicon())
	records := extractor.ExtractAll(papersByDrug)

	aggregator := evidence.NewAggregator(evidence.DefaultLexicon(), cfg.Evidence)
	aggs := aggregator.Aggregate(records)

	fmt.Fprintf(os.Stdout, "mined %d drugs: %d papers fetched, %d passed screening, %d drugs with evidence\n",
		stats.Drugs, stats.Papers, len(records), len(aggs))

	if err := s.SaveEvidence(ctx, records, aggs); err != nil {
		return err
	}
	if err := writePapersCSV(filepath.Join(resultsDir, papersFile), records); err != nil {
		return err
	}
	if err := writeEvidenceCSV(filepath.Join(resultsDir, litEvidenceFile), aggs); err != nil {
		return err
	}

	summary := mineSummary{
		Fetch:          stats,
		PassingPapers:  len(records),
		DrugsWithScore: len(aggs),
	}
	data, err := yaml.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	summaryPath := filepath.Join(resultsDir, mineSummaryFile)
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", summaryPath)
	return nil
}

// mineCandidates resolves the drug list to mine: an explicit CSV when
// given, otherwise the scored drugs already in the results database.
func mineCandidates(ctx context.Context, s *store.Store, drugPath string) ([]string, error) {
	if drugPath != "" {
		entries, err := dataset.LoadDrugList(drugPath)
		if err != nil {
			return nil, err
		}
		drugs := make([]string, 0, len(entries))
		for _, e := range entries {
			drugs = append(drugs, e.Name)
		}
		return drugs, nil
	}

	features, err := s.MechanismFeatures(ctx)
	if err != nil {
		return nil, err
	}
	drugs := make([]string, 0, len(features))
	for _, f := range features {
		drugs = append(drugs, f.DrugName)
	}
	return drugs, nil
}

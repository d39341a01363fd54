// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/dataset"
	"github.com/pdiddy/repurpose-engine/internal/genes"
	"github.com/pdiddy/repurpose-engine/internal/mechanism"
	"github.com/pdiddy/repurpose-engine/internal/store"
)

const scoredDrugsFile = "phase2_scored_drugs.csv"

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score drug mechanisms against AD pathology gene modules",
	Long: `Score reads drug-target mechanism rows, weighs each target against
the AD pathology gene modules, gates drugs without a core pathology hit,
and blends in blood-brain-barrier permeability when a BBB column is
present in the drug list. Results go to the results database and a
phase2_scored_drugs.csv summary.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("mechanisms", "", "drug-target mechanism CSV (required)")
	scoreCmd.Flags().String("drugs", "", "candidate drug list CSV; defaults to drugs named in the mechanism file")
	scoreCmd.Flags().String("broad-genes", "", "broad AD gene set CSV (optional)")
	scoreCmd.MarkFlagRequired("mechanisms")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	mechPath, _ := cmd.Flags().GetString("mechanisms")
	drugPath, _ := cmd.Flags().GetString("drugs")
	broadPath, _ := cmd.Flags().GetString("broad-genes")
	resultsDir, _ := rootCmd.PersistentFlags().GetString("results-dir")

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	cfg.Store.Dir = resultsDir

	rows, err := dataset.LoadMechanismRows(mechPath)
	if err != nil {
		return err
	}

	var broad []string
	if broadPath != "" {
		broad, err = dataset.LoadGeneSet(broadPath)
		if err != nil {
			return err
		}
	}

	var candidates []dataset.DrugEntry
	if drugPath != "" {
		candidates, err = dataset.LoadDrugList(drugPath)
		if err != nil {
			return err
		}
	}

	weighter := genes.NewWeighter(broad, cfg.Genes)
	resolved := mechanism.Resolve(rows, weighter)
	features := mechanism.Score(candidates, resolved, cfg.Mechanism)

	fmt.Fprintf(os.Stdout, "scored %d drugs over %d mechanism rows\n", len(features), len(rows))

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveMechanismFeatures(context.Background(), features); err != nil {
		return err
	}

	outPath := filepath.Join(resultsDir, scoredDrugsFile)
	if err := writeMechanismCSV(outPath, features); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	return nil
}

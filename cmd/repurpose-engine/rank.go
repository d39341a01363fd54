// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/repurpose-engine/internal/rank"
	"github.com/pdiddy/repurpose-engine/internal/store"
)

const rankedFile = "final_ranked_candidates.csv"

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Blend mechanism and evidence scores into the final ranking",
	Long: `Rank joins the stored mechanism scores with the literature evidence
aggregates, min-max normalizes each axis over the candidate set, and
blends them into the final score. Every mechanism-scored drug appears in
the ranking; drugs without literature evidence rank on mechanism alone.`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
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
	features, err := s.MechanismFeatures(ctx)
	if err != nil {
		return err
	}
	if len(features) == 0 {
		return fmt.Errorf("no mechanism scores in %s: run score first", resultsDir)
	}
	aggs, err := s.EvidenceAggregates(ctx)
	if err != nil {
		return err
	}

	ranked := rank.NewRanker(cfg.Rank).Rank(features, aggs)

	if err := s.SaveRanking(ctx, ranked); err != nil {
		return err
	}
	outPath := filepath.Join(resultsDir, rankedFile)
	if err := writeRankingCSV(outPath, ranked); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "ranked %d candidates, wrote %s\n", len(ranked), outPath)
	return nil
}

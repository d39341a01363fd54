// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// writeCSV writes a header row plus data rows to path.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeMechanismCSV(path string, features []types.DrugMechanismFeature) error {
	header := []string{"drug_name", "num_targets_moa", "ad_weight_sum", "num_core_hits",
		"ad_hit_targets", "ad_score_norm", "ad_score_gated", "bbb_score", "phase2_score"}
	rows := make([][]string, 0, len(features))
	for _, f := range features {
		rows = append(rows, []string{
			f.DrugName, strconv.Itoa(f.NumTargets), ftoa(f.WeightSum),
			strconv.Itoa(f.NumCoreHits), f.HitTargets, ftoa(f.ScoreNorm),
			ftoa(f.ScoreGated), ftoa(f.BBBScore), ftoa(f.Score),
		})
	}
	return writeCSV(path, header, rows)
}

func writePapersCSV(path string, records []types.EvidenceRecord) error {
	header := []string{"drug", "title", "pmid", "doi", "journal", "pub_year",
		"model", "direction", "pos_hits", "neg_hits", "outcomes"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.DrugName, r.Title, r.PMID, r.DOI, r.Journal, r.PubYear,
			string(r.Model), string(r.Direction),
			strconv.Itoa(r.PosHits), strconv.Itoa(r.NegHits), r.Outcomes,
		})
	}
	return writeCSV(path, header, rows)
}

func writeEvidenceCSV(path string, aggs []types.DrugEvidenceAggregate) error {
	header := []string{"drug", "evidence_score", "n_papers", "n_positive", "n_negative",
		"net_positive", "models", "signed_score", "confidence"}
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			a.DrugName, ftoa(a.EvidenceScore), strconv.Itoa(a.NPapers),
			strconv.Itoa(a.NPositive), strconv.Itoa(a.NNegative),
			strconv.Itoa(a.NetPositive), a.Models, ftoa(a.SignedScore),
			ftoa(a.Confidence),
		})
	}
	return writeCSV(path, header, rows)
}

func writeRankingCSV(path string, ranked []types.RankedCandidate) error {
	header := []string{"drug_name", "phase2_score", "signed_score", "net_positive",
		"n_papers", "models", "confidence", "phase2_norm", "phase3_norm",
		"conf_norm", "final_score"}
	rows := make([][]string, 0, len(ranked))
	for _, c := range ranked {
		rows = append(rows, []string{
			c.DrugName, ftoa(c.MechanismScore), ftoa(c.SignedScore),
			strconv.Itoa(c.NetPositive), strconv.Itoa(c.NPapers), c.Models,
			ftoa(c.Confidence), ftoa(c.MechanismNorm), ftoa(c.EvidenceNorm),
			ftoa(c.ConfidenceNorm), ftoa(c.FinalScore),
		})
	}
	return writeCSV(path, header, rows)
}

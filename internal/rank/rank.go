// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank blends mechanism and literature-evidence scores into
// the final ranked candidate list.
package rank

import (
	"sort"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Ranker joins per-drug mechanism features with evidence aggregates and
// produces the blended final ranking.
type Ranker struct {
	cfg types.RankConfig
}

// NewRanker returns a Ranker with the given blend weights.
func NewRanker(cfg types.RankConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank left-joins evidence onto the mechanism candidate set, min-max
// normalizes each axis over the full set, and blends them. Every
// mechanism-scored drug appears in the output; drugs without evidence
// carry zero evidence fields.
func (r *Ranker) Rank(features []types.DrugMechanismFeature, evidence []types.DrugEvidenceAggregate) []types.RankedCandidate {
	byKey := make(map[string]types.DrugEvidenceAggregate, len(evidence))
	for _, agg := range evidence {
		byKey[agg.DrugKey] = agg
	}

	ranked := make([]types.RankedCandidate, 0, len(features))
	for _, f := range features {
		c := types.RankedCandidate{
			DrugKey:        f.DrugKey,
			DrugName:       f.DrugName,
			MechanismScore: f.Score,
		}
		if agg, ok := byKey[f.DrugKey]; ok {
			c.SignedScore = agg.SignedScore
			c.NetPositive = agg.NetPositive
			c.NPapers = agg.NPapers
			c.Models = agg.Models
			c.Confidence = agg.Confidence
		}
		ranked = append(ranked, c)
	}

	mechNorm := minMax(ranked, func(c types.RankedCandidate) float64 { return c.MechanismScore })
	evidNorm := minMax(ranked, func(c types.RankedCandidate) float64 { return c.SignedScore })
	confNorm := minMax(ranked, func(c types.RankedCandidate) float64 { return c.Confidence })

	for i := range ranked {
		ranked[i].MechanismNorm = mechNorm[i]
		ranked[i].EvidenceNorm = evidNorm[i]
		ranked[i].ConfidenceNorm = confNorm[i]
		ranked[i].FinalScore = r.cfg.MechanismWeight*mechNorm[i] +
			r.cfg.EvidenceWeight*evidNorm[i] +
			r.cfg.ConfidenceWeight*confNorm[i]
	}

	// Ties keep the input order of the mechanism candidate set.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

// minMax normalizes one axis to [0,1] over the candidate set. A
// degenerate axis, where every value is equal, maps to all zeros.
func minMax(cands []types.RankedCandidate, value func(types.RankedCandidate) float64) []float64 {
	norm := make([]float64, len(cands))
	if len(cands) == 0 {
		return norm
	}

	lo, hi := value(cands[0]), value(cands[0])
	for _, c := range cands[1:] {
		v := value(c)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return norm
	}

	span := hi - lo
	for i, c := range cands {
		norm[i] = (value(c) - lo) / span
	}
	return norm
}

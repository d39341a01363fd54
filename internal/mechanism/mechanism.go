// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mechanism scores drugs on their molecular-target mechanisms.
// Each drug's set of (target, weight) records is reduced to a single
// pathology-relevance score with a core-hit gate: drugs that hit no
// core pathology gene keep only a small fraction of their score.
package mechanism

import (
	"sort"
	"strings"

	"github.com/pdiddy/repurpose-engine/internal/dataset"
	"github.com/pdiddy/repurpose-engine/internal/genes"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Resolve fills in the weight and core-hit flag of each mechanism
// record from the gene-module tables. The input slice is not modified.
func Resolve(rows []types.MechanismRecord, w *genes.Weighter) []types.MechanismRecord {
	out := make([]types.MechanismRecord, len(rows))
	for i, r := range rows {
		r.Weight = w.Weight(r.Target)
		r.CoreHit = w.IsCore(r.Target)
		out[i] = r
	}
	return out
}

// drugAccum collects per-drug grouping state before scoring.
type drugAccum struct {
	name       string
	targets    map[string]bool
	weightSum  float64
	coreHits   map[string]bool
	hitTargets map[string]bool
}

// Score groups resolved mechanism records by drug and computes the
// per-drug mechanism features. The candidate set is driven by
// candidates when non-empty; candidates without mechanism records are
// zero-scored, not dropped. With an empty candidate list the drugs seen
// in rows form the candidate set. Output is sorted by score descending,
// ties broken by drug key.
func Score(candidates []dataset.DrugEntry, rows []types.MechanismRecord, cfg types.MechanismConfig) []types.DrugMechanismFeature {
	byKey := make(map[string]*drugAccum)
	for _, r := range rows {
		acc, ok := byKey[r.DrugKey]
		if !ok {
			acc = &drugAccum{
				name:       r.DrugName,
				targets:    make(map[string]bool),
				coreHits:   make(map[string]bool),
				hitTargets: make(map[string]bool),
			}
			byKey[r.DrugKey] = acc
		}

		// Target and core-hit counts are over distinct targets, but the
		// weight sum accumulates per record: a target listed under two
		// mechanism actions contributes its weight twice.
		acc.targets[r.Target] = true
		if r.Weight > 0 {
			acc.weightSum += r.Weight
			acc.hitTargets[r.Target] = true
		}
		if r.CoreHit {
			acc.coreHits[r.Target] = true
		}
	}

	entries := candidates
	if len(entries) == 0 {
		entries = candidatesFromRows(rows)
	}

	features := make([]types.DrugMechanismFeature, 0, len(entries))
	for _, e := range entries {
		key := dataset.NormalizeKey(e.Name)
		f := types.DrugMechanismFeature{
			DrugKey:  key,
			DrugName: e.Name,
		}
		if acc, ok := byKey[key]; ok {
			f.NumTargets = len(acc.targets)
			f.WeightSum = acc.weightSum
			f.NumCoreHits = len(acc.coreHits)
			f.HitTargets = joinSorted(acc.hitTargets)
		}

		denom := f.NumTargets
		if denom < 1 {
			denom = 1
		}
		f.ScoreNorm = f.WeightSum / float64(denom)

		// Core gate: full score with at least one core pathology hit,
		// a small residual otherwise.
		if f.NumCoreHits > 0 {
			f.ScoreGated = f.ScoreNorm
		} else {
			f.ScoreGated = f.ScoreNorm * cfg.NonCorePenalty
		}

		if e.HasBBB {
			f.BBBScore = e.BBBScore
			f.Score = (1-cfg.BBBWeight)*f.ScoreGated + cfg.BBBWeight*e.BBBScore
		} else {
			f.Score = f.ScoreGated
		}

		features = append(features, f)
	}

	sort.SliceStable(features, func(i, j int) bool {
		if features[i].Score != features[j].Score {
			return features[i].Score > features[j].Score
		}
		return features[i].DrugKey < features[j].DrugKey
	})
	return features
}

// candidatesFromRows derives a candidate list from the drugs present in
// the mechanism table, preserving first-seen display names.
func candidatesFromRows(rows []types.MechanismRecord) []dataset.DrugEntry {
	seen := make(map[string]bool)
	var entries []dataset.DrugEntry
	for _, r := range rows {
		if seen[r.DrugKey] {
			continue
		}
		seen[r.DrugKey] = true
		entries = append(entries, dataset.DrugEntry{Name: r.DrugName})
	}
	sort.Slice(entries, func(i, j int) bool {
		return dataset.NormalizeKey(entries[i].Name) < dataset.NormalizeKey(entries[j].Name)
	})
	return entries
}

func joinSorted(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the repurpose-engine
// pipeline: mechanism records and features, literature evidence records
// and aggregates, ranked candidates, and per-stage configuration.
package types

// MechanismRecord is one (drug, target) mechanism association joined
// against the gene-module weight tables. Many records exist per drug;
// DrugKey is the grouping key.
type MechanismRecord struct {
	// DrugKey is the normalized drug identity used for grouping and joins.
	DrugKey string `json:"drug_key" yaml:"drug_key"`

	// DrugName is the original display name from the source table.
	DrugName string `json:"drug_name" yaml:"drug_name"`

	// Target is the uppercased gene or target symbol.
	Target string `json:"target" yaml:"target"`

	// Weight is the pathology-relevance weight resolved for Target.
	Weight float64 `json:"weight" yaml:"weight"`

	// CoreHit reports whether Target belongs to a core pathology module.
	CoreHit bool `json:"core_hit" yaml:"core_hit"`
}

// DrugMechanismFeature is the per-drug mechanism scoring result.
type DrugMechanismFeature struct {
	// DrugKey is the normalized drug identity.
	DrugKey string `json:"drug_key" yaml:"drug_key"`

	// DrugName is the display name carried through from the source.
	DrugName string `json:"drug_name" yaml:"drug_name"`

	// NumTargets is the count of distinct target symbols, weighted or not.
	NumTargets int `json:"num_targets_moa" yaml:"num_targets_moa"`

	// WeightSum is the sum of weights over records with weight > 0.
	WeightSum float64 `json:"ad_weight_sum" yaml:"ad_weight_sum"`

	// NumCoreHits is the count of distinct core-module target symbols.
	NumCoreHits int `json:"num_core_hits" yaml:"num_core_hits"`

	// HitTargets is the semicolon-joined sorted set of targets with weight > 0.
	HitTargets string `json:"ad_hit_targets" yaml:"ad_hit_targets"`

	// ScoreNorm is WeightSum divided by max(NumTargets, 1).
	ScoreNorm float64 `json:"ad_score_norm" yaml:"ad_score_norm"`

	// ScoreGated is ScoreNorm after the core-hit gate.
	ScoreGated float64 `json:"ad_score_gated" yaml:"ad_score_gated"`

	// BBBScore is the blood-brain-barrier permeability score, if supplied.
	BBBScore float64 `json:"bbb_score" yaml:"bbb_score"`

	// Score is the final mechanism score, blending in BBBScore when available.
	Score float64 `json:"phase2_score" yaml:"phase2_score"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RankedCandidate is one row of the final ranked candidate list. The
// mechanism, evidence, and confidence axes are min-max normalized over
// the full candidate set before blending.
type RankedCandidate struct {
	// DrugKey is the normalized drug identity.
	DrugKey string `json:"drug_key" yaml:"drug_key"`

	// DrugName is the display name from the mechanism candidate list.
	DrugName string `json:"drug_name" yaml:"drug_name"`

	// MechanismScore is the raw per-drug mechanism score.
	MechanismScore float64 `json:"phase2_score" yaml:"phase2_score"`

	// SignedScore is the raw signed literature-evidence score; zero when
	// the drug has no evidence aggregate.
	SignedScore float64 `json:"signed_score" yaml:"signed_score"`

	// NetPositive, NPapers, and Models carry evidence detail for reporting.
	NetPositive int    `json:"net_positive" yaml:"net_positive"`
	NPapers     int    `json:"n_papers" yaml:"n_papers"`
	Models      string `json:"models" yaml:"models"`

	// Confidence is the raw evidence confidence proxy.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// MechanismNorm, EvidenceNorm, and ConfidenceNorm are the min-max
	// normalized axes in [0,1].
	MechanismNorm  float64 `json:"phase2_norm" yaml:"phase2_norm"`
	EvidenceNorm   float64 `json:"phase3_norm" yaml:"phase3_norm"`
	ConfidenceNorm float64 `json:"conf_norm" yaml:"conf_norm"`

	// FinalScore is the weighted blend of the three normalized axes.
	FinalScore float64 `json:"final_score" yaml:"final_score"`
}

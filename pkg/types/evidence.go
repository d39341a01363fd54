// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ModelType classifies the experimental model a paper reports on.
type ModelType string

const (
	ModelCell          ModelType = "cell"
	ModelAnimal        ModelType = "animal"
	ModelObservational ModelType = "human_observational"
	ModelClinical      ModelType = "clinical"
	ModelUnknown       ModelType = "unknown"
)

// Direction classifies the net direction of a paper's findings.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// EvidenceRecord is one literature abstract that passed all relevance
// gates, tagged for scoring. Records are immutable once produced.
type EvidenceRecord struct {
	// DrugKey is the normalized drug identity.
	DrugKey string `json:"drug_key" yaml:"drug_key"`

	// DrugName is the display name the literature search ran under.
	DrugName string `json:"drug" yaml:"drug"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// PMID and DOI identify the paper; either may be empty.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	DOI  string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Journal and PubYear carry source metadata for reporting.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	PubYear string `json:"pub_year,omitempty" yaml:"pub_year,omitempty"`

	// Model is the detected experimental model type.
	Model ModelType `json:"model" yaml:"model"`

	// Direction is the net finding direction.
	Direction Direction `json:"direction" yaml:"direction"`

	// PosHits and NegHits count positive and negative lexicon matches.
	PosHits int `json:"pos_hits" yaml:"pos_hits"`
	NegHits int `json:"neg_hits" yaml:"neg_hits"`

	// Outcomes is the semicolon-joined set of matched outcome categories.
	Outcomes string `json:"outcomes" yaml:"outcomes"`

	// Abstract is the stored abstract text, truncated for display.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// DrugEvidenceAggregate is the per-drug literature evidence score.
// Drugs with no passing evidence records have no aggregate row.
type DrugEvidenceAggregate struct {
	// DrugKey is the normalized drug identity.
	DrugKey string `json:"drug_key" yaml:"drug_key"`

	// DrugName is the display name the literature search ran under.
	DrugName string `json:"drug" yaml:"drug"`

	// EvidenceScore is the capped sum of per-paper scores.
	EvidenceScore float64 `json:"evidence_score" yaml:"evidence_score"`

	// NPapers counts all passing papers for the drug.
	NPapers int `json:"n_papers" yaml:"n_papers"`

	// NPositive and NNegative count papers by direction.
	NPositive int `json:"n_positive" yaml:"n_positive"`
	NNegative int `json:"n_negative" yaml:"n_negative"`

	// NetPositive is NPositive minus NNegative.
	NetPositive int `json:"net_positive" yaml:"net_positive"`

	// Models is the semicolon-joined sorted set of model types seen.
	Models string `json:"models" yaml:"models"`

	// SignedScore is EvidenceScore adjusted for net direction and
	// research-tool penalties. This is the evidence ranking axis.
	SignedScore float64 `json:"signed_score" yaml:"signed_score"`

	// Confidence is a robustness proxy in [0,1] built from paper count
	// and model diversity. Not a statistical confidence interval.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

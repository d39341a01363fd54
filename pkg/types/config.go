package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "repurpose-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GeneConfig holds the gene-module weights. The module membership sets
// are fixed tables in the genes package; only the weights are tunable.
type GeneConfig struct {
	// CoreWeight applies to amyloid, tau, microglia, and lipid module genes.
	CoreWeight float64 `json:"core_weight" yaml:"core_weight"`

	// SecondaryWeight applies to inflammation and mitochondria module genes.
	SecondaryWeight float64 `json:"secondary_weight" yaml:"secondary_weight"`

	// SymptomaticWeight applies to symptomatic targets such as ACHE.
	SymptomaticWeight float64 `json:"symptomatic_weight" yaml:"symptomatic_weight"`

	// BroadWeight applies to genes in the externally supplied broad
	// disease-gene set that match no fixed module.
	BroadWeight float64 `json:"broad_weight" yaml:"broad_weight"`
}

// MechanismConfig holds settings for the mechanism scoring stage.
type MechanismConfig struct {
	// NonCorePenalty scales the normalized score for drugs with no core
	// pathology hit. Core-hit drugs score at full weight.
	NonCorePenalty float64 `json:"non_core_penalty" yaml:"non_core_penalty"`

	// BBBWeight is the blend weight given to the BBB permeability score
	// when one is supplied; the gated score takes 1 - BBBWeight.
	BBBWeight float64 `json:"bbb_weight" yaml:"bbb_weight"`
}

// LiteratureConfig holds settings for the literature retrieval stage.
type LiteratureConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPapersPerDrug is the search page size per drug (default 50).
	MaxPapersPerDrug int `json:"max_papers_per_drug" yaml:"max_papers_per_drug"`

	// CacheDir is the directory for cached search responses.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// RequestDelay is the pause after each uncached API call (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// Email is sent with requests for polite-pool identification; optional.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// MaxDrugs caps the number of drugs searched per run; 0 means no cap.
	MaxDrugs int `json:"max_drugs" yaml:"max_drugs"`
}

// EvidenceConfig holds the evidence scoring parameters.
type EvidenceConfig struct {
	// ModelWeights maps experimental model type to its base score weight.
	ModelWeights map[ModelType]float64 `json:"model_weights" yaml:"model_weights"`

	// SignalCap limits the per-paper positive keyword signal.
	SignalCap float64 `json:"signal_cap" yaml:"signal_cap"`

	// OutcomeBonus is the per-tag bonus for outcome diversity.
	OutcomeBonus float64 `json:"outcome_bonus" yaml:"outcome_bonus"`

	// EvidenceCap limits the per-drug summed evidence score.
	EvidenceCap float64 `json:"evidence_cap" yaml:"evidence_cap"`

	// NetPositiveBoost scales the signed score per net-positive paper.
	NetPositiveBoost float64 `json:"net_positive_boost" yaml:"net_positive_boost"`

	// NonPositivePenalty scales the signed score when the drug's evidence
	// is net-neutral or net-negative.
	NonPositivePenalty float64 `json:"non_positive_penalty" yaml:"non_positive_penalty"`

	// ToolPenalty scales the signed score for research-tool and
	// anesthetic compounds.
	ToolPenalty float64 `json:"tool_penalty" yaml:"tool_penalty"`

	// ConfidencePaperCap and ConfidenceModelCap bound the two confidence
	// components.
	ConfidencePaperCap int `json:"confidence_paper_cap" yaml:"confidence_paper_cap"`
	ConfidenceModelCap int `json:"confidence_model_cap" yaml:"confidence_model_cap"`
}

// RankConfig holds the final blend weights. The three weights should sum
// to 1 but are not validated; they are tuning constants, not user input.
type RankConfig struct {
	// MechanismWeight is the blend weight of the normalized mechanism score.
	MechanismWeight float64 `json:"mechanism_weight" yaml:"mechanism_weight"`

	// EvidenceWeight is the blend weight of the normalized signed score.
	EvidenceWeight float64 `json:"evidence_weight" yaml:"evidence_weight"`

	// ConfidenceWeight is the blend weight of the normalized confidence.
	ConfidenceWeight float64 `json:"confidence_weight" yaml:"confidence_weight"`
}

// StoreConfig holds settings for the results store.
type StoreConfig struct {
	// Dir is the directory containing the results database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default report row limit (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Genes      GeneConfig       `json:"genes" yaml:"genes"`
	Mechanism  MechanismConfig  `json:"mechanism" yaml:"mechanism"`
	Literature LiteratureConfig `json:"literature" yaml:"literature"`
	Evidence   EvidenceConfig   `json:"evidence" yaml:"evidence"`
	Rank       RankConfig       `json:"rank" yaml:"rank"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}

// DefaultPipelineConfig returns the tuned default parameters. Every
// value can be overridden through the config file or flags.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Genes: GeneConfig{
			CoreWeight:        5.0,
			SecondaryWeight:   2.0,
			SymptomaticWeight: 0.25,
			BroadWeight:       0.5,
		},
		Mechanism: MechanismConfig{
			NonCorePenalty: 0.05,
			BBBWeight:      0.3,
		},
		Literature: LiteratureConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "repurpose-engine/0.1",
			},
			MaxPapersPerDrug: 50,
			CacheDir:         "cache",
			RequestDelay:     time.Second,
		},
		Evidence: EvidenceConfig{
			ModelWeights: map[ModelType]float64{
				ModelCell:          1.0,
				ModelAnimal:        2.0,
				ModelObservational: 2.5,
				ModelClinical:      3.5,
				ModelUnknown:       0.2,
			},
			SignalCap:          6.0,
			OutcomeBonus:       0.3,
			EvidenceCap:        50.0,
			NetPositiveBoost:   0.15,
			NonPositivePenalty: 0.05,
			ToolPenalty:        0.2,
			ConfidencePaperCap: 20,
			ConfidenceModelCap: 4,
		},
		Rank: RankConfig{
			MechanismWeight:  0.45,
			EvidenceWeight:   0.45,
			ConfidenceWeight: 0.10,
		},
		Store: StoreConfig{
			Dir:        "results",
			MaxResults: 25,
		},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Lexicon holds the fixed keyword tables that gate and tag abstracts.
// Construct once with DefaultLexicon and share; a Lexicon is read-only
// after construction.
type Lexicon struct {
	// adTerms are strict Alzheimer pathology phrases; at least one must
	// appear for a paper to pass the disease gate.
	adTerms []string

	// modelMarkers are preclinical/clinical AD model markers for the
	// model gate: transgenic line names and standard behavioral tests.
	modelMarkers []string

	// outcomeKeywords maps each outcome category to its keyword list.
	outcomeKeywords map[string][]string

	// outcomeOrder fixes the category iteration order for stable tags.
	outcomeOrder []string

	// positive and negative are the finding-direction lexicons.
	positive []string
	negative []string

	// modelRules is the ordered model-type detection chain; the first
	// matching category wins.
	modelRules []modelRule

	// toolTerms flag research-tool and anesthetic compound names.
	toolTerms []string
}

// modelRule pairs a model type with the keywords that indicate it.
type modelRule struct {
	model    types.ModelType
	keywords []string
}

// DefaultLexicon returns the standard gating and tagging tables.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		adTerms: []string{
			"alzheimer", "alzheimer's disease",
			"amyloid plaque", "aβ plaque",
			"phospho-tau", "tau tangle", "tauopathy",
		},
		modelMarkers: []string{
			"app/ps1", "5xfad", "3xtg", "tg2576", "p301s",
			"transgenic mouse", "morris water maze",
			"y-maze", "novel object recognition",
		},
		outcomeKeywords: map[string][]string{
			"amyloid":      {"amyloid", "aβ", "abeta", "plaque", "app", "bace1", "secretase"},
			"tau":          {"tau", "phospho-tau", "hyperphosphorylation", "tangle", "mapt", "gsk3b", "cdk5"},
			"microglia":    {"microglia", "neuroinflammation", "trem2", "csf1r", "tyrobp"},
			"mitochondria": {"mitochondria", "atp", "oxidative", "ros", "respiration", "membrane potential"},
			"synapse":      {"synapse", "synaptic", "psd95", "spine", "synaptophysin"},
			"cognition":    {"memory", "cognitive", "learning", "morris water maze", "y-maze", "novel object recognition"},
		},
		outcomeOrder: []string{"amyloid", "tau", "microglia", "mitochondria", "synapse", "cognition"},
		positive: []string{
			"reduced", "decreased", "lowered", "improved", "rescued",
			"restored", "attenuated", "prevented", "protected",
			"inhibited", "suppressed",
		},
		negative: []string{
			"increased", "worsened", "impaired", "elevated", "exacerbated",
			"toxicity", "neurotoxic", "aggravated",
		},
		// Priority order matters: a clinical-trial abstract usually also
		// mentions animal or cell work, so clinical is checked first.
		modelRules: []modelRule{
			{types.ModelClinical, []string{"phase ii", "phase iii", "double-blind", "placebo"}},
			{types.ModelObservational, []string{"cohort", "case-control", "observational"}},
			{types.ModelAnimal, []string{"mouse", "mice", "rat", "transgenic", "5xfad", "3xtg", "app/ps1"}},
			{types.ModelCell, []string{"cell", "in vitro", "neuronal culture", "primary neurons"}},
		},
		toolTerms: []string{
			"anesthetic", "anaesthetic", "barbiturate", "sedative",
			"research tool", "experimental tool",
			"nmda antagonist", "dizocilpine", "mk-801",
			"thiopental", "ketamine", "propofol",
		},
	}
}

// containsAny reports whether the lowercased text contains any term.
func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// countHits counts how many terms appear in the lowercased text.
func countHits(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

// detectModel classifies the experimental model via the ordered rule
// chain. Text must already be lowercased.
func (l *Lexicon) detectModel(text string) types.ModelType {
	for _, r := range l.modelRules {
		if containsAny(text, r.keywords) {
			return r.model
		}
	}
	return types.ModelUnknown
}

// outcomeTags returns the matched outcome categories in fixed order.
func (l *Lexicon) outcomeTags(text string) []string {
	var tags []string
	for _, category := range l.outcomeOrder {
		if containsAny(text, l.outcomeKeywords[category]) {
			tags = append(tags, category)
		}
	}
	return tags
}

// IsToolCompound reports whether a drug display name matches a
// research-tool or anesthetic term.
func (l *Lexicon) IsToolCompound(drugName string) bool {
	return containsAny(strings.ToLower(drugName), l.toolTerms)
}

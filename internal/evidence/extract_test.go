// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"strings"
	"testing"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// passingAbstract passes all three gates: disease term, model marker,
// and outcome keyword.
const passingAbstract = "In 5xFAD transgenic mice, treatment reduced amyloid plaque burden " +
	"and improved memory in the Morris water maze."

func paper(title, abstract string) types.Paper {
	return types.Paper{Title: title, Abstract: abstract, PMID: "12345"}
}

func TestExtractPassingPaper(t *testing.T) {
	e := NewExtractor(DefaultLexicon())

	rec, ok := e.Extract("Donepezil", paper("Alzheimer study", passingAbstract))
	if !ok {
		t.Fatal("expected paper to pass all gates")
	}
	if rec.DrugKey != "donepezil" {
		t.Errorf("DrugKey = %q", rec.DrugKey)
	}
	if rec.Model != types.ModelAnimal {
		t.Errorf("Model = %q, want animal", rec.Model)
	}
	if rec.Direction != types.DirectionPositive {
		t.Errorf("Direction = %q, want positive", rec.Direction)
	}
	if !strings.Contains(rec.Outcomes, "amyloid") || !strings.Contains(rec.Outcomes, "cognition") {
		t.Errorf("Outcomes = %q", rec.Outcomes)
	}
}

func TestExtractGates(t *testing.T) {
	e := NewExtractor(DefaultLexicon())

	tests := []struct {
		name     string
		title    string
		abstract string
		wantOK   bool
	}{
		{
			"all gates pass",
			"Alzheimer's disease model",
			passingAbstract,
			true,
		},
		{
			"no disease term",
			"Parkinson study",
			"In 5xFAD mice, treatment reduced plaque burden and improved memory.",
			false,
		},
		{
			"no model marker",
			"Alzheimer's disease review",
			"Drug reduced amyloid in patients and improved memory broadly.",
			false,
		},
		{
			"no outcome keyword",
			"Alzheimer's disease tolerability",
			"A Tg2576 dosing and tolerability assessment with no efficacy readout.",
			false,
		},
		{
			"gate terms in title only",
			"Alzheimer tauopathy in APP/PS1 mice: reduced tau burden",
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := e.Extract("drugx", paper(tt.title, tt.abstract))
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestExtractGateIsMonotonic(t *testing.T) {
	e := NewExtractor(DefaultLexicon())

	// "alzheimer" is the sole disease-gate match; removing it must flip
	// the outcome to rejected.
	withTerm := "An alzheimer model: 5xFAD mice showed reduced amyloid."
	withoutTerm := "A disease model: 5xFAD mice showed reduced amyloid."

	if _, ok := e.Extract("d", paper("", withTerm)); !ok {
		t.Fatal("paper with disease term should pass")
	}
	if _, ok := e.Extract("d", paper("", withoutTerm)); ok {
		t.Error("paper without any disease term should be rejected")
	}
}

func TestExtractModelPriority(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name string
		text string
		want types.ModelType
	}{
		{"clinical beats animal", "double-blind placebo trial following transgenic mouse work", types.ModelClinical},
		{"observational beats animal", "a case-control cohort; earlier mice data", types.ModelObservational},
		{"animal beats cell", "transgenic mice and neuronal culture", types.ModelAnimal},
		{"cell alone", "primary neurons in vitro", types.ModelCell},
		{"unknown", "no recognizable setting", types.ModelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lex.detectModel(tt.text); got != tt.want {
				t.Errorf("detectModel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDirection(t *testing.T) {
	e := NewExtractor(DefaultLexicon())
	base := "alzheimer tauopathy in 5xfad mice, amyloid plaque assay: "

	tests := []struct {
		name string
		text string
		want types.Direction
	}{
		{"positive", base + "reduced and decreased pathology, increased survival", types.DirectionPositive},
		{"negative", base + "increased and elevated toxicity, worsened outcome", types.DirectionNegative},
		{"balanced is neutral", base + "reduced plaques but increased inflammation", types.DirectionNeutral},
		{"no hits is neutral", base + "pathology was assessed", types.DirectionNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := e.Extract("d", paper("", tt.text))
			if !ok {
				t.Fatal("paper should pass gates")
			}
			if rec.Direction != tt.want {
				t.Errorf("Direction = %q, want %q (pos=%d neg=%d)", rec.Direction, tt.want, rec.PosHits, rec.NegHits)
			}
		})
	}
}

func TestExtractAbstractTruncation(t *testing.T) {
	e := NewExtractor(DefaultLexicon())

	long := passingAbstract + " alzheimer " + strings.Repeat("x", 10000)
	rec, ok := e.Extract("d", paper("", long))
	if !ok {
		t.Fatal("paper should pass gates")
	}
	if len([]rune(rec.Abstract)) != abstractStoreLimit {
		t.Errorf("stored abstract length = %d, want %d", len([]rune(rec.Abstract)), abstractStoreLimit)
	}
	// Gating ran on the full text: the disease term sits before the cut.
	if rec.DrugKey == "" {
		t.Error("record incomplete")
	}
}

func TestExtractAll(t *testing.T) {
	e := NewExtractor(DefaultLexicon())

	byDrug := map[string][]types.Paper{
		"DrugA": {
			paper("Alzheimer study", passingAbstract),
			paper("Irrelevant", "nothing to see"),
		},
		"DrugB": {
			paper("Off-topic", "a cardiology trial"),
		},
	}
	records := e.ExtractAll(byDrug)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].DrugName != "DrugA" {
		t.Errorf("DrugName = %q", records[0].DrugName)
	}
}

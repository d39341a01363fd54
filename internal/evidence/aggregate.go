// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"sort"
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Aggregator reduces per-paper evidence records to drug-level scores.
type Aggregator struct {
	lex *Lexicon
	cfg types.EvidenceConfig
}

// NewAggregator builds an Aggregator over the lexicon (for tool-penalty
// matching) and the scoring parameters.
func NewAggregator(lex *Lexicon, cfg types.EvidenceConfig) *Aggregator {
	return &Aggregator{lex: lex, cfg: cfg}
}

// PaperScore computes the score of one passing paper: the model-type
// base weight times the capped positive signal, plus an outcome
// diversity bonus. Papers with no net-positive signal score zero.
func (a *Aggregator) PaperScore(rec types.EvidenceRecord) float64 {
	base, ok := a.cfg.ModelWeights[rec.Model]
	if !ok {
		base = a.cfg.ModelWeights[types.ModelUnknown]
	}

	signal := float64(rec.PosHits - rec.NegHits)
	if signal <= 0 {
		return 0.0
	}
	if signal > a.cfg.SignalCap {
		signal = a.cfg.SignalCap
	}

	bonus := a.cfg.OutcomeBonus * float64(countTags(rec.Outcomes))
	return base*signal + bonus
}

func countTags(outcomes string) int {
	n := 0
	for _, t := range strings.Split(outcomes, ";") {
		if strings.TrimSpace(t) != "" {
			n++
		}
	}
	return n
}

// drugEvidence accumulates one drug's records during aggregation.
type drugEvidence struct {
	name     string
	score    float64
	papers   int
	positive int
	negative int
	models   map[types.ModelType]bool
}

// Aggregate groups evidence records by drug and computes the signed,
// confidence-weighted drug-level scores. Drugs with no records have no
// output row; the downstream merge zero-fills them. Output is sorted by
// signed score descending, ties broken by drug key.
func (a *Aggregator) Aggregate(records []types.EvidenceRecord) []types.DrugEvidenceAggregate {
	byKey := make(map[string]*drugEvidence)
	for _, rec := range records {
		acc, ok := byKey[rec.DrugKey]
		if !ok {
			acc = &drugEvidence{name: rec.DrugName, models: make(map[types.ModelType]bool)}
			byKey[rec.DrugKey] = acc
		}
		acc.score += a.PaperScore(rec)
		acc.papers++
		acc.models[rec.Model] = true
		switch rec.Direction {
		case types.DirectionPositive:
			acc.positive++
		case types.DirectionNegative:
			acc.negative++
		}
	}

	aggs := make([]types.DrugEvidenceAggregate, 0, len(byKey))
	for key, acc := range byKey {
		evidenceScore := acc.score
		if evidenceScore > a.cfg.EvidenceCap {
			evidenceScore = a.cfg.EvidenceCap
		}

		netPositive := acc.positive - acc.negative

		// Net-neutral-or-negative evidence cannot rank on volume alone.
		var signed float64
		if netPositive > 0 {
			signed = evidenceScore * (1 + a.cfg.NetPositiveBoost*float64(netPositive))
		} else {
			signed = evidenceScore * a.cfg.NonPositivePenalty
		}

		if signed > 0 && a.lex.IsToolCompound(acc.name) {
			signed *= a.cfg.ToolPenalty
		}

		aggs = append(aggs, types.DrugEvidenceAggregate{
			DrugKey:       key,
			DrugName:      acc.name,
			EvidenceScore: evidenceScore,
			NPapers:       acc.papers,
			NPositive:     acc.positive,
			NNegative:     acc.negative,
			NetPositive:   netPositive,
			Models:        joinModels(acc.models),
			SignedScore:   signed,
			Confidence:    a.confidence(acc.papers, len(acc.models)),
		})
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].SignedScore != aggs[j].SignedScore {
			return aggs[i].SignedScore > aggs[j].SignedScore
		}
		return aggs[i].DrugKey < aggs[j].DrugKey
	})
	return aggs
}

// confidence is a robustness proxy: the average of a capped paper-count
// component and a capped model-diversity component, each in [0,1].
func (a *Aggregator) confidence(nPapers, nModels int) float64 {
	paperCap := a.cfg.ConfidencePaperCap
	if paperCap <= 0 {
		paperCap = 1
	}
	modelCap := a.cfg.ConfidenceModelCap
	if modelCap <= 0 {
		modelCap = 1
	}

	if nPapers > paperCap {
		nPapers = paperCap
	}
	if nModels > modelCap {
		nModels = modelCap
	}
	return (float64(nPapers)/float64(paperCap) + float64(nModels)/float64(modelCap)) / 2.0
}

func joinModels(models map[types.ModelType]bool) string {
	names := make([]string, 0, len(models))
	for m := range models {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence turns literature abstracts into scored, drug-level
// Alzheimer evidence. Extraction applies three hard relevance gates to
// each abstract; aggregation reduces a drug's passing papers to one
// signed, confidence-weighted score.
package evidence

import (
	"strings"

	"github.com/pdiddy/repurpose-engine/internal/dataset"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// abstractStoreLimit truncates stored abstract text. Gating and scoring
// always run on the full text.
const abstractStoreLimit = 8000

// Extractor applies the relevance gates and tags passing papers.
type Extractor struct {
	lex *Lexicon
}

// NewExtractor builds an Extractor over the given lexicon.
func NewExtractor(lex *Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract evaluates one paper for a drug. The ok result is false when
// the paper fails any gate: that is the expected common case and is not
// an error. Gates short-circuit in order: disease terms, model markers,
// outcome keywords.
func (e *Extractor) Extract(drugName string, p types.Paper) (types.EvidenceRecord, bool) {
	text := strings.ToLower(p.Title + "\n" + p.Abstract)

	if !containsAny(text, e.lex.adTerms) {
		return types.EvidenceRecord{}, false
	}
	if !containsAny(text, e.lex.modelMarkers) {
		return types.EvidenceRecord{}, false
	}
	tags := e.lex.outcomeTags(text)
	if len(tags) == 0 {
		return types.EvidenceRecord{}, false
	}

	pos := countHits(text, e.lex.positive)
	neg := countHits(text, e.lex.negative)

	direction := types.DirectionNeutral
	switch {
	case pos > neg && pos > 0:
		direction = types.DirectionPositive
	case neg > pos && neg > 0:
		direction = types.DirectionNegative
	}

	return types.EvidenceRecord{
		DrugKey:   dataset.NormalizeKey(drugName),
		DrugName:  drugName,
		Title:     p.Title,
		PMID:      p.PMID,
		DOI:       p.DOI,
		Journal:   p.Journal,
		PubYear:   p.PubYear,
		Model:     e.lex.detectModel(text),
		Direction: direction,
		PosHits:   pos,
		NegHits:   neg,
		Outcomes:  strings.Join(tags, ";"),
		Abstract:  truncate(p.Abstract, abstractStoreLimit),
	}, true
}

// ExtractAll runs Extract over every paper of every drug and returns
// the passing records. Gate rejections are silent.
func (e *Extractor) ExtractAll(papersByDrug map[string][]types.Paper) []types.EvidenceRecord {
	var records []types.EvidenceRecord
	for drug, papers := range papersByDrug {
		for _, p := range papers {
			if rec, ok := e.Extract(drug, p); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

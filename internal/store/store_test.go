// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Dir: t.TempDir(), MaxResults: 25})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRanking() []types.RankedCandidate {
	return []types.RankedCandidate{
		{DrugKey: "donepezil", DrugName: "Donepezil", MechanismScore: 0.0125, SignedScore: 12.5, NPapers: 8, Models: "animal;clinical", Confidence: 0.45, FinalScore: 0.91},
		{DrugKey: "memantine", DrugName: "Memantine", MechanismScore: 0.5, SignedScore: 6.0, NPapers: 3, Models: "animal", Confidence: 0.2, FinalScore: 0.62},
		{DrugKey: "aspirin", DrugName: "Aspirin", MechanismScore: 0.1, SignedScore: 0.0, NPapers: 0, Confidence: 0.0, FinalScore: 0.05},
	}
}

func samplePapers() []types.EvidenceRecord {
	return []types.EvidenceRecord{
		{
			DrugKey: "donepezil", DrugName: "Donepezil", PMID: "100",
			Title:    "Donepezil reduces amyloid plaque burden in 5xFAD mice",
			Abstract: "Treatment reduced amyloid plaque load and improved memory.",
			Model:    types.ModelAnimal, Direction: types.DirectionPositive,
			PosHits: 2, NegHits: 0, Outcomes: "amyloid;cognition",
		},
		{
			DrugKey: "donepezil", DrugName: "Donepezil", PMID: "101",
			Title:    "Cognitive outcomes of donepezil in a phase III trial",
			Abstract: "Cognition improved relative to placebo.",
			Model:    types.ModelClinical, Direction: types.DirectionPositive,
			PosHits: 1, NegHits: 0, Outcomes: "cognition",
		},
		{
			DrugKey: "memantine", DrugName: "Memantine", PMID: "200",
			Title:    "Memantine and tau phosphorylation in vitro",
			Abstract: "Phospho-tau was decreased in neuronal culture.",
			Model:    types.ModelCell, Direction: types.DirectionPositive,
			PosHits: 1, NegHits: 0, Outcomes: "tau",
		},
	}
}

func TestSchemaCreatedOnOpen(t *testing.T) {
	s := testStore(t)

	// A fresh store answers queries against empty tables.
	ranked, err := s.TopCandidates(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
}

func TestSaveAndQueryRanking(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveRanking(ctx, sampleRanking()); err != nil {
		t.Fatal(err)
	}

	ranked, err := s.TopCandidates(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].DrugKey != "donepezil" || ranked[1].DrugKey != "memantine" {
		t.Errorf("order = %q, %q", ranked[0].DrugKey, ranked[1].DrugKey)
	}
	if ranked[0].Models != "animal;clinical" || ranked[0].NPapers != 8 {
		t.Errorf("detail fields lost: %+v", ranked[0])
	}
}

func TestSaveRankingUpserts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveRanking(ctx, sampleRanking()); err != nil {
		t.Fatal(err)
	}

	updated := sampleRanking()
	updated[0].FinalScore = 0.10
	if err := s.SaveRanking(ctx, updated); err != nil {
		t.Fatal(err)
	}

	ranked, err := s.TopCandidates(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3 after rerun", len(ranked))
	}
	if ranked[0].DrugKey != "memantine" {
		t.Errorf("top after rescore = %q, want memantine", ranked[0].DrugKey)
	}
}

func TestTopCandidatesDefaultLimit(t *testing.T) {
	s, err := NewStore(types.StoreConfig{Dir: t.TempDir(), MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	if err := s.SaveRanking(ctx, sampleRanking()); err != nil {
		t.Fatal(err)
	}
	ranked, err := s.TopCandidates(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Errorf("len(ranked) = %d, want configured limit 2", len(ranked))
	}
}

func TestSaveEvidenceAndQueryByDrug(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	aggs := []types.DrugEvidenceAggregate{
		{DrugKey: "donepezil", DrugName: "Donepezil", EvidenceScore: 8.4, NPapers: 2, NPositive: 2, NetPositive: 2, Models: "animal;clinical", SignedScore: 10.9, Confidence: 0.3},
		{DrugKey: "memantine", DrugName: "Memantine", EvidenceScore: 1.3, NPapers: 1, NPositive: 1, NetPositive: 1, Models: "cell", SignedScore: 1.5, Confidence: 0.15},
	}
	if err := s.SaveEvidence(ctx, samplePapers(), aggs); err != nil {
		t.Fatal(err)
	}

	papers, err := s.EvidenceForDrug(ctx, "donepezil")
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}
	if papers[0].PMID != "100" || papers[1].PMID != "101" {
		t.Errorf("order = %q, %q", papers[0].PMID, papers[1].PMID)
	}
	if papers[0].Model != types.ModelAnimal || papers[0].Direction != types.DirectionPositive {
		t.Errorf("typed fields lost: %+v", papers[0])
	}
}

func TestSaveEvidenceRerunReplaces(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveEvidence(ctx, samplePapers(), nil); err != nil {
		t.Fatal(err)
	}
	// Rerun with the same batch must not duplicate papers.
	if err := s.SaveEvidence(ctx, samplePapers(), nil); err != nil {
		t.Fatal(err)
	}

	papers, err := s.EvidenceForDrug(ctx, "donepezil")
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 2 {
		t.Errorf("len(papers) = %d, want 2 after rerun", len(papers))
	}
}

func TestSearchEvidence(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SaveEvidence(ctx, samplePapers(), nil); err != nil {
		t.Fatal(err)
	}

	hits, err := s.SearchEvidence(ctx, "amyloid", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].PMID != "100" {
		t.Errorf("hit = %q, want PMID 100", hits[0].PMID)
	}

	hits, err = s.SearchEvidence(ctx, "tau", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].DrugKey != "memantine" {
		t.Errorf("hits = %+v, want one memantine paper", hits)
	}
}

func TestSaveMechanismFeatures(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	features := []types.DrugMechanismFeature{
		{DrugKey: "donepezil", DrugName: "Donepezil", NumTargets: 1, WeightSum: 0.25, HitTargets: "ACHE", ScoreNorm: 0.25, ScoreGated: 0.0125, Score: 0.0125},
	}
	if err := s.SaveMechanismFeatures(ctx, features); err != nil {
		t.Fatal(err)
	}
	// Upsert path: saving again must not error.
	if err := s.SaveMechanismFeatures(ctx, features); err != nil {
		t.Fatal(err)
	}

	got, err := s.MechanismFeatures(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != features[0] {
		t.Errorf("round trip = %+v, want %+v", got, features)
	}
}

func TestEvidenceAggregatesRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	aggs := []types.DrugEvidenceAggregate{
		{DrugKey: "memantine", DrugName: "Memantine", EvidenceScore: 1.3, NPapers: 1, NPositive: 1, NetPositive: 1, Models: "cell", SignedScore: 1.5, Confidence: 0.15},
		{DrugKey: "donepezil", DrugName: "Donepezil", EvidenceScore: 8.4, NPapers: 2, NPositive: 2, NetPositive: 2, Models: "animal;clinical", SignedScore: 10.9, Confidence: 0.3},
	}
	if err := s.SaveEvidence(ctx, nil, aggs); err != nil {
		t.Fatal(err)
	}

	got, err := s.EvidenceAggregates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	// Ordered by signed score, best first.
	if got[0].DrugKey != "donepezil" || got[1].DrugKey != "memantine" {
		t.Errorf("order = %q, %q", got[0].DrugKey, got[1].DrugKey)
	}
	if got[0] != aggs[1] {
		t.Errorf("round trip = %+v, want %+v", got[0], aggs[1])
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"testing"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

func feature(key string, score float64) types.DrugMechanismFeature {
	return types.DrugMechanismFeature{DrugKey: key, DrugName: key, Score: score}
}

func aggregate(key string, signed, confidence float64, papers int) types.DrugEvidenceAggregate {
	return types.DrugEvidenceAggregate{
		DrugKey:     key,
		DrugName:    key,
		SignedScore: signed,
		Confidence:  confidence,
		NPapers:     papers,
		NetPositive: papers,
		Models:      "animal",
	}
}

func close64(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testRanker() *Ranker {
	return NewRanker(types.DefaultPipelineConfig().Rank)
}

func TestRankBlend(t *testing.T) {
	r := testRanker()
	features := []types.DrugMechanismFeature{
		feature("alpha", 4.0),
		feature("beta", 2.0),
		feature("gamma", 0.0),
	}
	evidence := []types.DrugEvidenceAggregate{
		aggregate("alpha", 10.0, 0.8, 5),
		aggregate("beta", 5.0, 0.4, 2),
		aggregate("gamma", 0.0, 0.0, 0),
	}

	ranked := r.Rank(features, evidence)
	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}

	top := ranked[0]
	if top.DrugKey != "alpha" {
		t.Fatalf("top = %q, want alpha", top.DrugKey)
	}
	if top.MechanismNorm != 1.0 || top.EvidenceNorm != 1.0 || top.ConfidenceNorm != 1.0 {
		t.Errorf("top norms = %v/%v/%v, want all 1", top.MechanismNorm, top.EvidenceNorm, top.ConfidenceNorm)
	}
	if !close64(top.FinalScore, 1.0) {
		t.Errorf("top FinalScore = %v, want 1.0", top.FinalScore)
	}

	bottom := ranked[2]
	if bottom.DrugKey != "gamma" || bottom.FinalScore != 0.0 {
		t.Errorf("bottom = %q score %v, want gamma 0", bottom.DrugKey, bottom.FinalScore)
	}

	mid := ranked[1]
	want := 0.45*0.5 + 0.45*0.5 + 0.10*0.5
	if !close64(mid.FinalScore, want) {
		t.Errorf("mid FinalScore = %v, want %v", mid.FinalScore, want)
	}
}

func TestRankMissingEvidenceZeroFilled(t *testing.T) {
	r := testRanker()
	features := []types.DrugMechanismFeature{
		feature("studied", 3.0),
		feature("obscure", 5.0),
	}
	evidence := []types.DrugEvidenceAggregate{
		aggregate("studied", 8.0, 0.6, 4),
	}

	ranked := r.Rank(features, evidence)

	var obscure types.RankedCandidate
	for _, c := range ranked {
		if c.DrugKey == "obscure" {
			obscure = c
		}
	}
	if obscure.DrugKey == "" {
		t.Fatal("obscure missing from ranking")
	}
	if obscure.SignedScore != 0 || obscure.NPapers != 0 || obscure.Models != "" || obscure.Confidence != 0 {
		t.Errorf("obscure evidence fields not zero: %+v", obscure)
	}
	if obscure.EvidenceNorm != 0 {
		t.Errorf("obscure EvidenceNorm = %v, want 0", obscure.EvidenceNorm)
	}
	// Its mechanism score still counts.
	if obscure.MechanismNorm != 1.0 {
		t.Errorf("obscure MechanismNorm = %v, want 1", obscure.MechanismNorm)
	}
}

func TestRankDegenerateAxis(t *testing.T) {
	r := testRanker()
	// All mechanism scores equal: that axis contributes zero everywhere.
	features := []types.DrugMechanismFeature{
		feature("a", 2.0),
		feature("b", 2.0),
	}
	evidence := []types.DrugEvidenceAggregate{
		aggregate("a", 6.0, 0.5, 3),
	}

	ranked := r.Rank(features, evidence)
	for _, c := range ranked {
		if c.MechanismNorm != 0.0 {
			t.Errorf("%s MechanismNorm = %v, want 0", c.DrugKey, c.MechanismNorm)
		}
	}
	if ranked[0].DrugKey != "a" {
		t.Errorf("top = %q, want a", ranked[0].DrugKey)
	}
}

func TestRankNormsInRange(t *testing.T) {
	r := testRanker()
	features := []types.DrugMechanismFeature{
		feature("a", -1.0),
		feature("b", 0.0),
		feature("c", 7.5),
	}
	evidence := []types.DrugEvidenceAggregate{
		aggregate("a", 0.1, 0.05, 1),
		aggregate("c", 42.0, 0.9, 20),
	}

	for _, c := range r.Rank(features, evidence) {
		for _, v := range []float64{c.MechanismNorm, c.EvidenceNorm, c.ConfidenceNorm, c.FinalScore} {
			if v < 0 || v > 1 {
				t.Errorf("%s value %v out of [0,1]", c.DrugKey, v)
			}
		}
	}
}

func TestRankTieBreaksOnInputOrder(t *testing.T) {
	r := testRanker()
	features := []types.DrugMechanismFeature{
		feature("zeta", 1.0),
		feature("alpha", 1.0),
	}

	ranked := r.Rank(features, nil)
	if ranked[0].DrugKey != "zeta" || ranked[1].DrugKey != "alpha" {
		t.Errorf("order = %q, %q, want zeta, alpha", ranked[0].DrugKey, ranked[1].DrugKey)
	}
}

func TestRankEmptyInput(t *testing.T) {
	r := testRanker()
	if ranked := r.Rank(nil, nil); len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0", len(ranked))
	}
}

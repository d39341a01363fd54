// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genes

import (
	"testing"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

func testWeighter(broad ...string) *Weighter {
	return NewWeighter(broad, types.DefaultPipelineConfig().Genes)
}

func TestModuleClassification(t *testing.T) {
	w := testWeighter("GRIN2B", "BIN1")

	tests := []struct {
		symbol string
		want   Module
	}{
		{"APP", ModuleCore},
		{"MAPT", ModuleCore},
		{"TREM2", ModuleCore},
		{"APOE", ModuleCore},
		{"CSNK1D", ModuleCore},
		{"TNF", ModuleSecondary},
		{"PINK1", ModuleSecondary},
		{"ACHE", ModuleSymptomatic},
		{"GRIN2B", ModuleBroad},
		{"BIN1", ModuleBroad},
		{"NR3C1", ModuleExcluded},
		{"CNR1", ModuleExcluded},
		{"DRD2", ModuleExcluded},
		{"HTR2A", ModuleExcluded},
		{"ADRA1A", ModuleExcluded},
		{"CHRM1", ModuleExcluded},
		{"GABRA1", ModuleExcluded},
		{"OPRM1", ModuleExcluded},
		{"ABCB1", ModuleUnweighted},
		{"", ModuleUnweighted},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := w.Module(tt.symbol); got != tt.want {
				t.Errorf("Module(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestWeightValues(t *testing.T) {
	w := testWeighter("GRIN2B")

	tests := []struct {
		symbol string
		want   float64
	}{
		{"BACE1", 5.0},
		{"IL6", 2.0},
		{"ACHE", 0.25},
		{"GRIN2B", 0.5},
		{"DRD2", 0.0},
		{"ABCB1", 0.0},
	}
	for _, tt := range tests {
		if got := w.Weight(tt.symbol); got != tt.want {
			t.Errorf("Weight(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}

func TestWeightNeverNegative(t *testing.T) {
	w := testWeighter("GRIN2B")
	for _, s := range []string{"APP", "TNF", "ACHE", "GRIN2B", "DRD2", "XYZ", ""} {
		if got := w.Weight(s); got < 0 {
			t.Errorf("Weight(%q) = %v, want >= 0", s, got)
		}
	}
}

func TestExclusionOverridesBroadSet(t *testing.T) {
	// A receptor-family symbol stays excluded even when the external
	// broad disease-gene set lists it.
	w := testWeighter("DRD2", "NR3C1", "HTR2A")

	for _, s := range []string{"DRD2", "NR3C1", "HTR2A"} {
		if got := w.Module(s); got != ModuleExcluded {
			t.Errorf("Module(%q) = %v, want %v", s, got, ModuleExcluded)
		}
		if got := w.Weight(s); got != 0.0 {
			t.Errorf("Weight(%q) = %v, want 0.0", s, got)
		}
	}
}

func TestInputNormalization(t *testing.T) {
	w := testWeighter()

	if got := w.Module("  app "); got != ModuleCore {
		t.Errorf("Module(\"  app \") = %v, want %v", got, ModuleCore)
	}
	if got := w.Weight("bace1"); got != 5.0 {
		t.Errorf("Weight(\"bace1\") = %v, want 5.0", got)
	}
}

func TestIsCore(t *testing.T) {
	w := testWeighter()

	if !w.IsCore("PSEN1") {
		t.Error("IsCore(PSEN1) = false, want true")
	}
	if w.IsCore("TNF") {
		t.Error("IsCore(TNF) = true, want false")
	}
	if w.IsCore("ACHE") {
		t.Error("IsCore(ACHE) = true, want false")
	}
}

func TestBroadSetConstructionNormalizes(t *testing.T) {
	w := testWeighter(" grin2b ", "", "bin1")

	if got := w.Weight("GRIN2B"); got != 0.5 {
		t.Errorf("Weight(GRIN2B) = %v, want 0.5", got)
	}
	if got := w.Module(""); got != ModuleUnweighted {
		t.Errorf("empty symbol module = %v, want %v", got, ModuleUnweighted)
	}
}

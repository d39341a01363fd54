// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genes maps gene and target symbols to Alzheimer pathology
// modules and weights. The module membership tables are fixed; the
// per-module weights come from configuration. A Weighter is immutable
// after construction and safe for concurrent use.
package genes

import (
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Module classifies a target symbol by pathology relevance.
type Module string

const (
	// ModuleCore covers the disease-modifying modules: amyloid, tau,
	// microglia, and lipid/genetic risk.
	ModuleCore Module = "core"

	// ModuleSecondary covers supportive modules: inflammation and
	// mitochondria/oxidative stress.
	ModuleSecondary Module = "secondary"

	// ModuleSymptomatic covers symptomatic targets kept at low weight.
	ModuleSymptomatic Module = "symptomatic"

	// ModuleBroad covers genes only present in the broad external
	// disease-gene set.
	ModuleBroad Module = "broad"

	// ModuleExcluded covers nonspecific CNS receptor families and a few
	// frequent offenders that must not dominate mechanism scoring.
	ModuleExcluded Module = "excluded"

	// ModuleUnweighted is everything else.
	ModuleUnweighted Module = "unweighted"
)

// Core disease-modifying module membership.
var (
	amyloidGenes   = set("APP", "BACE1", "PSEN1", "PSEN2", "ADAM10")
	tauGenes       = set("MAPT", "GSK3B", "CDK5", "MARK4", "CSNK1D", "CSNK1E")
	microgliaGenes = set("TREM2", "CSF1R", "TYROBP", "SPI1")
	lipidGenes     = set("APOE", "CLU", "ABCA7", "SORL1")
)

// Secondary supportive module membership.
var (
	inflammationGenes = set("TNF", "IL1B", "IL6", "NFKB1", "PTGS2")
	mitochondriaGenes = set("NFE2L2", "SOD1", "SOD2", "PPARGC1A", "PINK1", "PARK7")
)

// symptomaticGenes are kept but must not dominate.
var symptomaticGenes = set("ACHE")

// excludedExact lists frequent offenders dropped regardless of other
// membership: NR3C1 is a broad stress-response receptor, CNR1 the
// cannabinoid receptor.
var excludedExact = set("NR3C1", "CNR1")

// excludedPrefixes drop whole nonspecific receptor families: dopamine,
// serotonin, adrenergic, muscarinic, GABA, and opioid receptors.
var excludedPrefixes = []string{"DRD", "HTR", "ADRA", "CHRM", "GABR", "OPR"}

func set(symbols ...string) map[string]bool {
	m := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		m[s] = true
	}
	return m
}

// Weighter resolves target symbols to modules and weights.
type Weighter struct {
	core      map[string]bool
	secondary map[string]bool
	broad     map[string]bool
	cfg       types.GeneConfig
	rules     []rule
}

// rule is one step in the ordered classification chain. The first rule
// whose predicate matches decides the module.
type rule struct {
	match  func(symbol string) bool
	module Module
}

// NewWeighter builds a Weighter from the fixed module tables, the broad
// external disease-gene set, and the configured weights. Symbols in
// broad are uppercased and trimmed during construction.
func NewWeighter(broad []string, cfg types.GeneConfig) *Weighter {
	core := merge(amyloidGenes, tauGenes, microgliaGenes, lipidGenes)
	secondary := merge(inflammationGenes, mitochondriaGenes)

	broadSet := make(map[string]bool, len(broad))
	for _, g := range broad {
		g = strings.ToUpper(strings.TrimSpace(g))
		if g != "" {
			broadSet[g] = true
		}
	}

	w := &Weighter{
		core:      core,
		secondary: secondary,
		broad:     broadSet,
		cfg:       cfg,
	}

	// Exclusion is checked first and overrides all other membership.
	w.rules = []rule{
		{func(s string) bool { return excludedExact[s] }, ModuleExcluded},
		{hasExcludedPrefix, ModuleExcluded},
		{func(s string) bool { return w.core[s] }, ModuleCore},
		{func(s string) bool { return w.secondary[s] }, ModuleSecondary},
		{func(s string) bool { return symptomaticGenes[s] }, ModuleSymptomatic},
		{func(s string) bool { return w.broad[s] }, ModuleBroad},
	}
	return w
}

func merge(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func hasExcludedPrefix(symbol string) bool {
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(symbol, p) {
			return true
		}
	}
	return false
}

// Module returns the pathology module for symbol. Input is uppercased
// and trimmed before lookup.
func (w *Weighter) Module(symbol string) Module {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, r := range w.rules {
		if r.match(s) {
			return r.module
		}
	}
	return ModuleUnweighted
}

// Weight returns the pathology-relevance weight for symbol.
func (w *Weighter) Weight(symbol string) float64 {
	switch w.Module(symbol) {
	case ModuleCore:
		return w.cfg.CoreWeight
	case ModuleSecondary:
		return w.cfg.SecondaryWeight
	case ModuleSymptomatic:
		return w.cfg.SymptomaticWeight
	case ModuleBroad:
		return w.cfg.BroadWeight
	default:
		return 0.0
	}
}

// IsCore reports whether symbol belongs to a core pathology module.
// Excluded symbols are never core, even if a module table lists them.
func (w *Weighter) IsCore(symbol string) bool {
	return w.Module(symbol) == ModuleCore
}

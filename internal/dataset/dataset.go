// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the tabular inputs the pipeline consumes:
// drug-mechanism rows, the broad disease-gene set, and the optional BBB
// permeability list. Column names vary across source exports, so each
// loader resolves its required columns by name before reading rows;
// unresolvable columns are a fatal SchemaError, never a per-row error.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// SchemaError reports that a required column could not be resolved in
// an input table. It halts the stage before any row is processed.
type SchemaError struct {
	// Source names the input table.
	Source string

	// Wanted lists the column names tried, in preference order.
	Wanted []string

	// Columns lists the columns actually present.
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: none of the columns %v found (have %v)",
		e.Source, e.Wanted, e.Columns)
}

// parens matches parenthetical qualifiers in drug names, e.g.
// "Memantine (hydrochloride)".
var parens = regexp.MustCompile(`\(.*?\)`)

// NormalizeKey reduces a drug display name to the normalized join key
// used across all pipeline stages: lowercased, parentheticals stripped,
// non-alphanumerics collapsed to single spaces.
func NormalizeKey(name string) string {
	s := strings.ToLower(name)
	s = parens.ReplaceAllString(s, "")

	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// drugNameColumns lists recognized drug-name column headers in
// preference order.
var drugNameColumns = []string{"drug_name_out", "compound_name", "drug_name", "name"}

// header maps column names to their indices, case-insensitively.
type header map[string]int

func readHeader(r *csv.Reader) (header, []string, error) {
	record, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	h := make(header, len(record))
	for i, col := range record {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return h, record, nil
}

// resolve returns the index of the first matching column, or -1.
func (h header) resolve(names ...string) int {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ReadMechanismRows parses (drug, target) mechanism associations from r.
// The drug column must be drug_name; the target symbol prefers
// target_gene and falls back to target_name per row. Rows with an empty
// drug or target are dropped silently.
func ReadMechanismRows(r io.Reader) ([]types.MechanismRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, cols, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	drugIdx := h.resolve("drug_name")
	if drugIdx < 0 {
		return nil, &SchemaError{Source: "mechanism table", Wanted: []string{"drug_name"}, Columns: cols}
	}
	geneIdx := h.resolve("target_gene")
	nameIdx := h.resolve("target_name")
	if geneIdx < 0 && nameIdx < 0 {
		return nil, &SchemaError{Source: "mechanism table", Wanted: []string{"target_gene", "target_name"}, Columns: cols}
	}

	var rows []types.MechanismRecord
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading mechanism row: %w", err)
		}

		drug := field(record, drugIdx)
		target := field(record, geneIdx)
		if target == "" {
			target = field(record, nameIdx)
		}
		if drug == "" || target == "" {
			continue
		}

		rows = append(rows, types.MechanismRecord{
			DrugKey:  NormalizeKey(drug),
			DrugName: drug,
			Target:   strings.ToUpper(target),
		})
	}
	return rows, nil
}

// LoadMechanismRows reads mechanism associations from a CSV file.
func LoadMechanismRows(path string) ([]types.MechanismRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mechanism table: %w", err)
	}
	defer f.Close()
	return ReadMechanismRows(f)
}

// ReadGeneSet parses the broad disease-gene set from r. The table must
// have a gene_symbol column.
func ReadGeneSet(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, cols, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	idx := h.resolve("gene_symbol", "symbol")
	if idx < 0 {
		return nil, &SchemaError{Source: "gene set", Wanted: []string{"gene_symbol", "symbol"}, Columns: cols}
	}

	var genes []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading gene row: %w", err)
		}
		if g := field(record, idx); g != "" {
			genes = append(genes, g)
		}
	}
	return genes, nil
}

// LoadGeneSet reads gene symbols from a CSV file.
func LoadGeneSet(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gene set: %w", err)
	}
	defer f.Close()
	return ReadGeneSet(f)
}

// DrugEntry is one row of a drug candidate list: the display name and
// an optional BBB permeability score.
type DrugEntry struct {
	Name     string
	BBBScore float64
	HasBBB   bool
}

// ReadDrugList parses a drug candidate list from r. The drug-name
// column is resolved by preference (drug_name_out, compound_name,
// drug_name, name); when none matches, the first column is used. A
// bbb_score column is picked up when present. Duplicate names keep the
// first entry.
func ReadDrugList(r io.Reader) ([]DrugEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, cols, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, &SchemaError{Source: "drug list", Wanted: drugNameColumns, Columns: cols}
	}

	nameIdx := h.resolve(drugNameColumns...)
	if nameIdx < 0 {
		nameIdx = 0
	}
	bbbIdx := h.resolve("bbb_score")

	seen := make(map[string]bool)
	var entries []DrugEntry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading drug row: %w", err)
		}

		name := field(record, nameIdx)
		if name == "" {
			continue
		}
		key := NormalizeKey(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		entry := DrugEntry{Name: name}
		if bbbIdx >= 0 {
			if v, err := strconv.ParseFloat(field(record, bbbIdx), 64); err == nil {
				entry.BBBScore = v
				entry.HasBBB = true
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadDrugList reads a drug candidate list from a CSV file.
func LoadDrugList(path string) ([]DrugEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening drug list: %w", err)
	}
	defer f.Close()
	return ReadDrugList(f)
}

// BBBScores extracts a normalized-key→score map from entries that carry
// a BBB score.
func BBBScores(entries []DrugEntry) map[string]float64 {
	m := make(map[string]float64)
	for _, e := range entries {
		if e.HasBBB {
			m[NormalizeKey(e.Name)] = e.BBBScore
		}
	}
	return m
}

// junkPrefixes flag registry identifiers masquerading as drug names.
var junkPrefixes = []string{"chembl", "unii", "nsc"}

// LooksJunky reports whether a drug display name is likely a registry
// identifier or placeholder rather than a real compound name. Junk
// names are flagged in reports, never excluded from scoring.
func LooksJunky(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "-" {
		return true
	}
	for _, p := range junkPrefixes {
		if strings.HasPrefix(n, p) {
			return true
		}
	}
	return len(n) < 4
}

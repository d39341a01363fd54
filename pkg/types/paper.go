// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper holds the fields of one literature search result that the
// evidence pipeline consumes. The field names mirror the Europe PMC
// REST response so cached payloads unmarshal directly.
type Paper struct {
	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstractText" yaml:"abstract"`

	// PMID is the PubMed identifier, if the paper has one.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// DOI is the digital object identifier, if the paper has one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Journal is the journal title.
	Journal string `json:"journalTitle,omitempty" yaml:"journal,omitempty"`

	// PubYear is the publication year as reported by the source.
	PubYear string `json:"pubYear,omitempty" yaml:"pub_year,omitempty"`
}

// Identifier returns the best available paper identifier: PMID if
// present, else DOI, else empty.
func (p Paper) Identifier() string {
	if p.PMID != "" {
		return p.PMID
	}
	return p.DOI
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists pipeline results in a SQLite database and
// serves the report queries.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

const dbFile = "results.db"

// Store manages the results SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the results database at dir/results.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 25
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mechanism_features (
			drug_key TEXT PRIMARY KEY,
			drug_name TEXT,
			num_targets INTEGER,
			weight_sum REAL,
			num_core_hits INTEGER,
			hit_targets TEXT,
			score_norm REAL,
			score_gated REAL,
			bbb_score REAL,
			score REAL
		)`,
		`CREATE TABLE IF NOT EXISTS evidence_papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			drug_key TEXT NOT NULL,
			drug_name TEXT,
			title TEXT,
			pmid TEXT,
			doi TEXT,
			journal TEXT,
			pub_year TEXT,
			model TEXT,
			direction TEXT,
			pos_hits INTEGER,
			neg_hits INTEGER,
			outcomes TEXT,
			abstract TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_papers_drug ON evidence_papers(drug_key)`,
		`CREATE TABLE IF NOT EXISTS evidence_aggregates (
			drug_key TEXT PRIMARY KEY,
			drug_name TEXT,
			evidence_score REAL,
			n_papers INTEGER,
			n_positive INTEGER,
			n_negative INTEGER,
			net_positive INTEGER,
			models TEXT,
			signed_score REAL,
			confidence REAL
		)`,
		`CREATE TABLE IF NOT EXISTS ranked_candidates (
			drug_key TEXT PRIMARY KEY,
			drug_name TEXT,
			mechanism_score REAL,
			signed_score REAL,
			net_positive INTEGER,
			n_papers INTEGER,
			models TEXT,
			confidence REAL,
			mechanism_norm REAL,
			evidence_norm REAL,
			confidence_norm REAL,
			final_score REAL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers keeping it in sync with the
	// evidence paper text.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='evidence_papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE evidence_papers_fts USING fts5(title, abstract, content=evidence_papers, content_rowid=rowid)`,
			`CREATE TRIGGER evidence_papers_ai AFTER INSERT ON evidence_papers BEGIN
				INSERT INTO evidence_papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER evidence_papers_ad AFTER DELETE ON evidence_papers BEGIN
				INSERT INTO evidence_papers_fts(evidence_papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveMechanismFeatures upserts scored mechanism features.
func (s *Store) SaveMechanismFeatures(ctx context.Context, features []types.DrugMechanismFeature) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mechanism_features
			(drug_key, drug_name, num_targets, weight_sum, num_core_hits, hit_targets, score_norm, score_gated, bbb_score, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(drug_key) DO UPDATE SET
			drug_name=excluded.drug_name, num_targets=excluded.num_targets,
			weight_sum=excluded.weight_sum, num_core_hits=excluded.num_core_hits,
			hit_targets=excluded.hit_targets, score_norm=excluded.score_norm,
			score_gated=excluded.score_gated, bbb_score=excluded.bbb_score,
			score=excluded.score`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range features {
		_, err := stmt.ExecContext(ctx,
			f.DrugKey, f.DrugName, f.NumTargets, f.WeightSum, f.NumCoreHits,
			f.HitTargets, f.ScoreNorm, f.ScoreGated, f.BBBScore, f.Score,
		)
		if err != nil {
			return fmt.Errorf("inserting mechanism feature %s: %w", f.DrugKey, err)
		}
	}

	return tx.Commit()
}

// SaveEvidence replaces the stored evidence papers and aggregates in a
// single transaction. Papers for drugs present in the new batch are
// deleted first so reruns do not accumulate duplicates.
func (s *Store) SaveEvidence(ctx context.Context, records []types.EvidenceRecord, aggs []types.DrugEvidenceAggregate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.DrugKey] {
			continue
		}
		seen[r.DrugKey] = true
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM evidence_papers WHERE drug_key = ?`, r.DrugKey); err != nil {
			return fmt.Errorf("deleting old evidence papers: %w", err)
		}
	}

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO evidence_papers
			(drug_key, drug_name, title, pmid, doi, journal, pub_year, model, direction, pos_hits, neg_hits, outcomes, abstract)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	for _, r := range records {
		_, err := paperStmt.ExecContext(ctx,
			r.DrugKey, r.DrugName, r.Title, r.PMID, r.DOI, r.Journal, r.PubYear,
			string(r.Model), string(r.Direction), r.PosHits, r.NegHits, r.Outcomes, r.Abstract,
		)
		if err != nil {
			return fmt.Errorf("inserting evidence paper for %s: %w", r.DrugKey, err)
		}
	}

	aggStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO evidence_aggregates
			(drug_key, drug_name, evidence_score, n_papers, n_positive, n_negative, net_positive, models, signed_score, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(drug_key) DO UPDATE SET
			drug_name=excluded.drug_name, evidence_score=excluded.evidence_score,
			n_papers=excluded.n_papers, n_positive=excluded.n_positive,
			n_negative=excluded.n_negative, net_positive=excluded.net_positive,
			models=excluded.models, signed_score=excluded.signed_score,
			confidence=excluded.confidence`)
	if err != nil {
		return fmt.Errorf("preparing aggregate insert: %w", err)
	}
	defer aggStmt.Close()

	for _, a := range aggs {
		_, err := aggStmt.ExecContext(ctx,
			a.DrugKey, a.DrugName, a.EvidenceScore, a.NPapers, a.NPositive,
			a.NNegative, a.NetPositive, a.Models, a.SignedScore, a.Confidence,
		)
		if err != nil {
			return fmt.Errorf("inserting evidence aggregate %s: %w", a.DrugKey, err)
		}
	}

	return tx.Commit()
}

// SaveRanking upserts the final ranked candidate list.
func (s *Store) SaveRanking(ctx context.Context, ranked []types.RankedCandidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ranked_candidates
			(drug_key, drug_name, mechanism_score, signed_score, net_positive, n_papers, models, confidence, mechanism_norm, evidence_norm, confidence_norm, final_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(drug_key) DO UPDATE SET
			drug_name=excluded.drug_name, mechanism_score=excluded.mechanism_score,
			signed_score=excluded.signed_score, net_positive=excluded.net_positive,
			n_papers=excluded.n_papers, models=excluded.models,
			confidence=excluded.confidence, mechanism_norm=excluded.mechanism_norm,
			evidence_norm=excluded.evidence_norm, confidence_norm=excluded.confidence_norm,
			final_score=excluded.final_score`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range ranked {
		_, err := stmt.ExecContext(ctx,
			c.DrugKey, c.DrugName, c.MechanismScore, c.SignedScore, c.NetPositive,
			c.NPapers, c.Models, c.Confidence, c.MechanismNorm, c.EvidenceNorm,
			c.ConfidenceNorm, c.FinalScore,
		)
		if err != nil {
			return fmt.Errorf("inserting ranked candidate %s: %w", c.DrugKey, err)
		}
	}

	return tx.Commit()
}

// MechanismFeatures returns all stored mechanism features ordered by
// score, best first.
func (s *Store) MechanismFeatures(ctx context.Context) ([]types.DrugMechanismFeature, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT drug_key, drug_name, num_targets, weight_sum, num_core_hits, hit_targets, score_norm, score_gated, bbb_score, score
		 FROM mechanism_features
		 ORDER BY score DESC, drug_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying mechanism features: %w", err)
	}
	defer rows.Close()

	var out []types.DrugMechanismFeature
	for rows.Next() {
		var f types.DrugMechanismFeature
		err := rows.Scan(&f.DrugKey, &f.DrugName, &f.NumTargets, &f.WeightSum,
			&f.NumCoreHits, &f.HitTargets, &f.ScoreNorm, &f.ScoreGated,
			&f.BBBScore, &f.Score)
		if err != nil {
			return nil, fmt.Errorf("scanning mechanism feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// EvidenceAggregates returns all stored per-drug evidence aggregates.
func (s *Store) EvidenceAggregates(ctx context.Context) ([]types.DrugEvidenceAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT drug_key, drug_name, evidence_score, n_papers, n_positive, n_negative, net_positive, models, signed_score, confidence
		 FROM evidence_aggregates
		 ORDER BY signed_score DESC, drug_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying evidence aggregates: %w", err)
	}
	defer rows.Close()

	var out []types.DrugEvidenceAggregate
	for rows.Next() {
		var a types.DrugEvidenceAggregate
		err := rows.Scan(&a.DrugKey, &a.DrugName, &a.EvidenceScore, &a.NPapers,
			&a.NPositive, &a.NNegative, &a.NetPositive, &a.Models,
			&a.SignedScore, &a.Confidence)
		if err != nil {
			return nil, fmt.Errorf("scanning evidence aggregate: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// TopCandidates returns the highest-ranked candidates, best first. A
// non-positive limit falls back to the configured default.
func (s *Store) TopCandidates(ctx context.Context, limit int) ([]types.RankedCandidate, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT drug_key, drug_name, mechanism_score, signed_score, net_positive, n_papers, models, confidence,
			mechanism_norm, evidence_norm, confidence_norm, final_score
		 FROM ranked_candidates
		 ORDER BY final_score DESC, drug_key ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ranked candidates: %w", err)
	}
	defer rows.Close()

	var out []types.RankedCandidate
	for rows.Next() {
		var c types.RankedCandidate
		err := rows.Scan(&c.DrugKey, &c.DrugName, &c.MechanismScore, &c.SignedScore,
			&c.NetPositive, &c.NPapers, &c.Models, &c.Confidence,
			&c.MechanismNorm, &c.EvidenceNorm, &c.ConfidenceNorm, &c.FinalScore)
		if err != nil {
			return nil, fmt.Errorf("scanning ranked candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EvidenceForDrug returns the stored evidence papers for one drug key.
func (s *Store) EvidenceForDrug(ctx context.Context, drugKey string) ([]types.EvidenceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT drug_key, drug_name, title, pmid, doi, journal, pub_year, model, direction, pos_hits, neg_hits, outcomes, abstract
		 FROM evidence_papers WHERE drug_key = ? ORDER BY pmid ASC`, drugKey)
	if err != nil {
		return nil, fmt.Errorf("querying evidence papers: %w", err)
	}
	defer rows.Close()

	return scanEvidence(rows)
}

// SearchEvidence runs a full-text query over evidence paper titles and
// abstracts.
func (s *Store) SearchEvidence(ctx context.Context, query string, limit int) ([]types.EvidenceRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.drug_key, p.drug_name, p.title, p.pmid, p.doi, p.journal, p.pub_year,
			p.model, p.direction, p.pos_hits, p.neg_hits, p.outcomes, p.abstract
		 FROM evidence_papers_fts f
		 JOIN evidence_papers p ON p.rowid = f.rowid
		 WHERE evidence_papers_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching evidence papers: %w", err)
	}
	defer rows.Close()

	return scanEvidence(rows)
}

func scanEvidence(rows *sql.Rows) ([]types.EvidenceRecord, error) {
	var out []types.EvidenceRecord
	for rows.Next() {
		var r types.EvidenceRecord
		var model, direction string
		err := rows.Scan(&r.DrugKey, &r.DrugName, &r.Title, &r.PMID, &r.DOI,
			&r.Journal, &r.PubYear, &model, &direction,
			&r.PosHits, &r.NegHits, &r.Outcomes, &r.Abstract)
		if err != nil {
			return nil, fmt.Errorf("scanning evidence paper: %w", err)
		}
		r.Model = types.ModelType(model)
		r.Direction = types.Direction(direction)
		out = append(out, r)
	}
	return out, rows.Err()
}

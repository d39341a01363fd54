// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literature retrieves per-drug abstracts from the Europe PMC
// search API. Responses are cached on disk keyed by a hash of the drug
// name, and uncached calls are spaced by a polite delay. A retrieval
// failure for one drug yields an empty result for that drug only; the
// batch always completes.
package literature

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/repurpose-engine/internal/httputil"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// europePMCSearchBase is the Europe PMC search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCSearchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// Client queries Europe PMC with on-disk response caching.
type Client struct {
	HTTP *http.Client
	cfg  types.LiteratureConfig
}

// NewClient builds a Client from the literature configuration.
func NewClient(cfg types.LiteratureConfig) *Client {
	if cfg.MaxPapersPerDrug <= 0 {
		cfg.MaxPapersPerDrug = 50
	}
	if cfg.RequestDelay < 0 {
		cfg.RequestDelay = 0
	}
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// CachePath returns the cache file for a drug: a hash keeps the name
// filesystem-safe regardless of the compound's spelling.
func (c *Client) CachePath(drug string) string {
	h := sha1.Sum([]byte(drug))
	return filepath.Join(c.cfg.CacheDir, fmt.Sprintf("epmc_%x.json", h[:8]))
}

// FetchDrugPapers returns the deduplicated search results for one drug.
// The cached return value reports whether the result came from the
// on-disk cache without a network call.
func (c *Client) FetchDrugPapers(ctx context.Context, drug string) (papers []types.Paper, cached bool, err error) {
	cachePath := c.CachePath(drug)
	if data, err := os.ReadFile(cachePath); err == nil {
		var cachedPapers []types.Paper
		if jsonErr := json.Unmarshal(data, &cachedPapers); jsonErr == nil {
			return cachedPapers, true, nil
		}
		// Corrupt cache entry: fall through and refetch.
	}

	params := url.Values{
		"query":      {fmt.Sprintf("%q AND Alzheimer", drug)},
		"format":     {"json"},
		"pageSize":   {fmt.Sprintf("%d", c.cfg.MaxPapersPerDrug)},
		"resultType": {"core"},
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, europePMCSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, false, fmt.Errorf("Europe PMC request for %q: %w", drug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("Europe PMC returned HTTP %d for %q", resp.StatusCode, drug)
	}

	var er epmcResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, false, fmt.Errorf("parsing Europe PMC response: %w", err)
	}

	deduped := dedupPapers(er.ResultList.Result)

	if err := c.writeCache(cachePath, deduped); err != nil {
		// Cache write failures degrade to uncached operation.
		fmt.Fprintf(os.Stderr, "warning: caching results for %q: %v\n", drug, err)
	}

	// Space out uncached calls to respect the service's rate limits.
	// The fetch itself has already succeeded and been cached, so
	// cancellation here only cuts the pause short, not the result.
	if c.cfg.RequestDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(c.cfg.RequestDelay):
		}
	}

	return deduped, false, nil
}

func (c *Client) writeCache(path string, papers []types.Paper) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// dedupPapers drops duplicate results sharing a PMID or DOI. Results
// with neither identifier are dropped: they cannot be deduplicated and
// are usually indexing artifacts.
func dedupPapers(papers []types.Paper) []types.Paper {
	seen := make(map[string]bool)
	var out []types.Paper
	for _, p := range papers {
		key := p.Identifier()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Europe PMC API JSON structures.
type epmcResponse struct {
	HitCount   int            `json:"hitCount"`
	ResultList epmcResultList `json:"resultList"`
}

type epmcResultList struct {
	Result []types.Paper `json:"result"`
}

// FetchStats summarizes a batch retrieval run.
type FetchStats struct {
	Drugs     int `yaml:"drugs"`
	CacheHits int `yaml:"cache_hits"`
	Fetched   int `yaml:"fetched"`
	Failures  int `yaml:"failures"`
	Papers    int `yaml:"papers"`
}

// BatchFetch retrieves papers for each drug in order, writing progress
// to w. Per-drug failures are reported as warnings and yield an empty
// result for that drug; the batch continues.
func (c *Client) BatchFetch(ctx context.Context, drugs []string, w io.Writer) (map[string][]types.Paper, FetchStats, error) {
	results := make(map[string][]types.Paper, len(drugs))
	stats := FetchStats{Drugs: len(drugs)}

	for _, drug := range drugs {
		select {
		case <-ctx.Done():
			return results, stats, ctx.Err()
		default:
		}

		papers, cachedHit, err := c.FetchDrugPapers(ctx, drug)
		if err != nil {
			if ctx.Err() != nil {
				return results, stats, err
			}
			fmt.Fprintf(w, "warning: search failed for %s: %v\n", drug, err)
			results[drug] = nil
			stats.Failures++
			continue
		}

		results[drug] = papers
		stats.Papers += len(papers)
		if cachedHit {
			stats.CacheHits++
		} else {
			stats.Fetched++
			fmt.Fprintf(w, "fetched %s (%d papers)\n", drug, len(papers))
		}
	}
	return results, stats, nil
}

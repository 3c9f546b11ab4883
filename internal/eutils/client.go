// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a minimal client for the NCBI E-utilities API: ESearch
// over a fixed publication-date window and EFetch for raw article XML.
package eutils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/pubmed-digest/internal/httputil"
	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// apiBase is the E-utilities endpoint prefix. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// toolName identifies this client to NCBI in the &tool parameter.
const toolName = "pubmed-digest"

// Client issues E-utilities requests with the shared tool/email/api_key
// parameters applied.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig

	// Log receives progress and retry notices.
	Log io.Writer
}

// NewClient returns a client using cfg's timeout and identification.
func NewClient(cfg types.SearchConfig, w io.Writer) *Client {
	if w == nil {
		w = io.Discard
	}
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
		Log:  w,
	}
}

// get issues a GET against an E-utilities endpoint (e.g. "esearch.fcgi")
// and returns the response body. HTTP 429 is retried with backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("db", "pubmed")
	params.Set("tool", toolName)
	if c.Cfg.ToolEmail != "" {
		params.Set("email", c.Cfg.ToolEmail)
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0, c.Log)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

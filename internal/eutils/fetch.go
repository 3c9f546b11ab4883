// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"net/url"
	"strings"
)

// Fetch retrieves the raw EFetch XML blob for a batch of PMIDs. The blob
// contains zero or more article subtrees; parsing is the normalizer's
// concern. An empty batch fetches nothing.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]byte, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("id", strings.Join(pmids, ","))
	params.Set("rettype", "abstract")
	params.Set("retmode", "xml")

	return c.get(ctx, "efetch.fcgi", params)
}

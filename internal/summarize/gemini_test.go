// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

func withGeminiServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	orig := geminiAPIBase
	geminiAPIBase = srv.URL
	t.Cleanup(func() { geminiAPIBase = orig })
}

func TestGeminiSummarize(t *testing.T) {
	withGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "My Title")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "My Abstract")

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"localized_title\":\"題名\",\"bullets\":[\"a\",\"b\",\"c\",\"d\"]}"}]}}]}`)
	})

	b := &GeminiBackend{
		Client: http.DefaultClient,
		Cfg:    types.AIConfig{Model: "gemini-2.5-flash", APIKey: "secret"},
	}
	s, err := b.Summarize(context.Background(), "My Title", "My Abstract")
	require.NoError(t, err)
	assert.Equal(t, "題名", s.LocalizedTitle)
	assert.Len(t, s.Bullets, 4)
}

func TestGeminiSummarizeHTTPError(t *testing.T) {
	withGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	b := &GeminiBackend{Client: http.DefaultClient, Cfg: types.AIConfig{Model: "m"}}
	_, err := b.Summarize(context.Background(), "t", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestGeminiSummarizeNoCandidates(t *testing.T) {
	withGeminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	b := &GeminiBackend{Client: http.DefaultClient, Cfg: types.AIConfig{Model: "m"}}
	_, err := b.Summarize(context.Background(), "t", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}

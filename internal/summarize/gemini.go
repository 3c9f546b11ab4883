// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-digest/pkg/types"
)

// geminiAPIBase is the Generative Language API prefix. Declared as a var
// so tests can substitute an httptest server.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiBackend calls the Gemini generateContent REST API.
type GeminiBackend struct {
	Client *http.Client
	Cfg    types.AIConfig
}

// Request/response shapes for generateContent, reduced to the fields this
// client uses.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Summarize sends one prompt to the model and parses the JSON object out
// of its response text.
func (b *GeminiBackend) Summarize(ctx context.Context, title, abstract string) (Summary, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(title, abstract)}}}},
	})
	if err != nil {
		return Summary{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiAPIBase, b.Cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Summary{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.Cfg.APIKey)

	resp, err := b.Client.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("generateContent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Summary{}, fmt.Errorf("generateContent returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return Summary{}, fmt.Errorf("parsing generateContent response: %w", err)
	}

	return parseSummary(responseText(gr))
}

// responseText joins the text parts of the first candidate.
func responseText(gr geminiResponse) string {
	if len(gr.Candidates) == 0 {
		return ""
	}
	var parts []string
	for _, p := range gr.Candidates[0].Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// jsonObjectRe grabs the outermost JSON object from model output that may
// be wrapped in prose or code fences.
var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// parseSummary extracts the JSON object from raw model text.
func parseSummary(text string) (Summary, error) {
	raw := jsonObjectRe.FindString(text)
	if raw == "" {
		return Summary{}, fmt.Errorf("no JSON object in model response")
	}
	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Summary{}, fmt.Errorf("parsing model JSON: %w", err)
	}
	return s, nil
}

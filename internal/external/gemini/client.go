// Package gemini generates short analyst-style comments for the top
// leaderboard entries. Entirely optional: no API key means no comments,
// never an error.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/httputil"
	"github.com/ekurt/newspulse/pkg/logger"
)

const (
	generateURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"
	maxComments = 5
)

// Client calls the Gemini generateContent REST endpoint
// SSOT: all Gemini calls go through this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	model      string
}

// NewClient creates a Gemini client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.Gemini.APIKey,
		model:      cfg.Gemini.Model,
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Comment is one generated remark about a leaderboard entry
type Comment struct {
	Symbol  string `json:"symbol"`
	Comment string `json:"comment"`
}

// request/response shapes for the generateContent endpoint

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Comments generates up to five short comments for the given records.
// Returns nil without error when disabled.
func (c *Client) Comments(ctx context.Context, records []*contracts.ImpactRecord) ([]Comment, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) > maxComments {
		records = records[:maxComments]
	}

	url := fmt.Sprintf(generateURL, c.model, c.apiKey)
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: c.buildPrompt(records)}}}},
	}

	resp, err := c.httpClient.PostJSON(ctx, url, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty generation response")
	}

	comments, err := parseComments(gen.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(comments)).Debug("Generated leaderboard comments")
	return comments, nil
}

// buildPrompt describes the records and asks for strict JSON output
func (c *Client) buildPrompt(records []*contracts.ImpactRecord) string {
	var b strings.Builder
	b.WriteString("You are a markets analyst. For each scored news event below, ")
	b.WriteString("write one short comment (max 25 words) on what the score and ")
	b.WriteString("technical context suggest. Respond with a JSON array of ")
	b.WriteString(`objects shaped like {"symbol":"...","comment":"..."} and nothing else.`)
	b.WriteString("\n\n")

	for _, r := range records {
		fmt.Fprintf(&b, "- %s (score %d, confidence %d): %s", r.Symbol, r.Score, r.Confidence, r.Headline)
		if r.TechnicalContext != "" {
			fmt.Fprintf(&b, " [%s]", r.TechnicalContext)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// parseComments decodes the model output, tolerating markdown fences
// around the JSON array
func parseComments(text string) ([]Comment, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Last resort: slice out the outermost array
	if !strings.HasPrefix(text, "[") {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON array in generation output")
		}
		text = text[start : end+1]
	}

	var comments []Comment
	if err := json.Unmarshal([]byte(text), &comments); err != nil {
		return nil, fmt.Errorf("parse generation output failed: %w", err)
	}

	out := comments[:0]
	for _, cm := range comments {
		if strings.TrimSpace(cm.Symbol) == "" || strings.TrimSpace(cm.Comment) == "" {
			continue
		}
		out = append(out, cm)
	}

	return out, nil
}

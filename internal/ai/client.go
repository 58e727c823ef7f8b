// Package ai talks to the Gemini API for the two model-assisted features:
// describing an uploaded photo and ranking catalog items against a free-text
// query. Both calls can fail; callers are expected to degrade to defaults
// (FallbackAnalysis, an empty match list) instead of surfacing errors.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a Gemini REST API client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Config configures the client. Zero values get sensible defaults.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // overridable for tests
	Timeout time.Duration // bounds each call; defaults to 30s
}

// NewClient creates a Gemini client.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Analysis is the model's description of an item photo.
type Analysis struct {
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	DetectedText string   `json:"detectedText"`
	Colors       []string `json:"colors"`
}

// FallbackAnalysis is the safe default substituted when analysis fails: the
// reporter fills the fields in manually and submission is never blocked.
func FallbackAnalysis() Analysis {
	return Analysis{
		Category:    "Unidentified Item",
		Description: "Unable to analyze image automatically. Please add details manually.",
		Colors:      []string{"Unknown"},
	}
}

// AnalyzeImage asks the model to categorize a photo, describe it, read any
// visible text, and name its colors.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, mime string) (Analysis, error) {
	prompt := `Analyze this lost/found item image.
Identify the category (e.g., Wallet, Phone, Keys, Backpack).
Extract any visible text (OCR) such as names, brands, or ID numbers.
Describe the item's appearance (color, material, condition).

Return JSON.`

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MIMEType: mime, Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"category":     map[string]any{"type": "STRING"},
					"description":  map[string]any{"type": "STRING"},
					"detectedText": map[string]any{"type": "STRING", "nullable": true},
					"colors":       map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
				},
				"required": []string{"category", "description", "colors"},
			},
		},
	}

	var result Analysis
	if err := c.generate(ctx, body, &result); err != nil {
		return Analysis{}, err
	}
	return result, nil
}

// Candidate is the slice of an item the ranker sees.
type Candidate struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	DetectedText string    `json:"detectedText,omitempty"`
	Location     string    `json:"location"`
	Date         time.Time `json:"date"`
}

// Match is one ranked result: item ID, 0-100 confidence, short reason.
type Match struct {
	ID         string `json:"id"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// RankItems asks the model for the candidates semantically closest to the
// query. The response is confidence-descending and only holds entries with
// confidence above zero.
func (c *Client) RankItems(ctx context.Context, query string, candidates []Candidate) ([]Match, error) {
	catalog, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("encoding candidates: %w", err)
	}

	prompt := fmt.Sprintf(`User is searching for a lost item with description: %q.

Here is the database of found items:
%s

Analyze the semantic similarity between the user's search and the found items.
Consider typos, synonyms (e.g., "spectacles" vs "glasses"), and extracted text matches (e.g. name on ID).

Return a JSON object containing a list of matches.
Only include items with a confidence score > 0.
Sort by confidence descending.`, query, catalog)

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"matches": map[string]any{
						"type": "ARRAY",
						"items": map[string]any{
							"type": "OBJECT",
							"properties": map[string]any{
								"id":         map[string]any{"type": "STRING"},
								"confidence": map[string]any{"type": "NUMBER"},
								"reason":     map[string]any{"type": "STRING"},
							},
							"required": []string{"id", "confidence", "reason"},
						},
					},
				},
			},
		},
	}

	var result struct {
		Matches []Match `json:"matches"`
	}
	if err := c.generate(ctx, body, &result); err != nil {
		return nil, err
	}
	return result.Matches, nil
}

// Wire types for the generateContent endpoint.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate calls generateContent and unmarshals the model's JSON text output
// into result.
func (c *Client) generate(ctx context.Context, body generateRequest, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model API returned status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("empty model response")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), result); err != nil {
		return fmt.Errorf("parsing model output: %w", err)
	}
	return nil
}

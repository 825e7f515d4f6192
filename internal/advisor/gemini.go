// Package advisor talks to the Gemini generateContent REST API. It sends
// prompts and returns raw text; prompt construction and result parsing
// belong to the caller.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// Schema mirrors the subset of the Gemini response-schema vocabulary the
// advisor uses to force structured JSON output.
type Schema struct {
	Type       string            `json:"type"`
	Properties map[string]Schema `json:"properties,omitempty"`
	Items      *Schema           `json:"items,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

// Client calls the Gemini generateContent endpoint over plain HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	logger     *zap.Logger
}

// NewClient constructs a Gemini client. timeout bounds each request.
func NewClient(baseURL, model, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// GenerateText sends a free-form prompt and returns the model's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON sends a prompt with a response schema so the model answers
// with machine-parseable JSON.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema Schema) (string, error) {
	return c.generate(ctx, prompt, &schema)
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string, schema *Schema) (string, error) {
	if !c.Configured() {
		return "", appErrors.Clone(appErrors.ErrAdvisorUnavailable, "advisor is not configured")
	}

	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	if schema != nil {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode advisor request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build advisor request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAdvisorUnavailable.Code, appErrors.ErrAdvisorUnavailable.Status, "advisor request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAdvisorUnavailable.Code, appErrors.ErrAdvisorUnavailable.Status, "failed to read advisor response")
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("advisor returned a non-200 status",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return "", appErrors.Clone(appErrors.ErrAdvisorUnavailable, fmt.Sprintf("advisor returned status %d", resp.StatusCode))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAdvisorUnavailable.Code, appErrors.ErrAdvisorUnavailable.Status, "advisor response is not valid JSON")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", appErrors.Clone(appErrors.ErrAdvisorUnavailable, "advisor returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

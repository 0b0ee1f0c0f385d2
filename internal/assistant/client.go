// Package assistant integrates the support chat with a Gemini-shaped
// text-generation endpoint. The Client owns the transport; Session owns
// the transcript and the one-outstanding-request rule.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gradnet/internal/logging"
)

const systemPreamble = "You are the support assistant for a university alumni network. " +
	"Help members with the alumni directory, upcoming events, job postings, " +
	"mentorship, and their profile. Be warm and concise. If asked about " +
	"anything outside the alumni network, politely steer the conversation back."

// Generation constants. Deliberately not exposed as per-call knobs.
const (
	generationTemperature = 0.7
	generationTopP        = 0.95
	generationMaxTokens   = 1024
)

var safetySettings = []GeminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Model:   "gemini-2.0-flash",
		Timeout: 60 * time.Second,
	}
}

// Client is a minimal Gemini REST client.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client with default config.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom config.
func NewClientWithConfig(config Config) *Client {
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends one user message with the fixed system preamble and
// returns the first candidate's first text part. Every failure mode -
// transport error, non-200, decode failure, API error payload, absent
// candidate - is returned as an error for the Session to absorb.
func (c *Client) Generate(ctx context.Context, userText string) (string, error) {
	// Auto-apply timeout if context has no deadline (centralized timeout handling)
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.AssistantDebug("Generate: model=%s user_len=%d", c.model, len(userText))

	if c.apiKey == "" {
		logging.AssistantError("Generate: API key not configured")
		return "", fmt.Errorf("API key not configured")
	}

	// Rate limiting
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: userText}},
			},
		},
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: systemPreamble}},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     generationTemperature,
			TopP:            generationTopP,
			MaxOutputTokens: generationMaxTokens,
		},
		SafetySettings: safetySettings,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.AssistantError("Generate: request failed after %v: %v", time.Since(startTime), err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.AssistantError("Generate: API returned status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	response := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if response == "" {
		return "", fmt.Errorf("empty completion returned")
	}

	logging.Assistant("Generate: completed in %v response_len=%d", time.Since(startTime), len(response))
	return response, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

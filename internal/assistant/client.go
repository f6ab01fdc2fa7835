package assistant

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"develevate/internal/core"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultEndpoint is the Gemini API host used when no base URL is configured.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// GeminiClient is a Generator backed by the Gemini generateContent endpoint.
type GeminiClient struct {
	client   *genai.Client
	model    string
	endpoint string
	timeout  time.Duration
	logger   core.Logger
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config Config, logger core.Logger) (*GeminiClient, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.SetDefaults()

	if logger == nil {
		logger = core.NopLogger()
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	endpoint := DefaultEndpoint
	if config.BaseURL != "" {
		cc.HTTPOptions.BaseURL = config.BaseURL
		endpoint = config.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:   client,
		model:    config.Model,
		endpoint: endpoint,
		timeout:  config.Timeout,
		logger:   logger,
	}, nil
}

// Model returns the Gemini model identifier.
func (c *GeminiClient) Model() string {
	return c.model
}

// Generate sends prompt as a single user turn and returns the first text part
// of the first candidate. A response without one yields an empty string.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Info("gemini request started",
		"model", c.model,
		"prompt_length", len(prompt),
	)

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("gemini request failed",
			"model", c.model,
			"error", err.Error(),
			"duration", duration,
		)
		return "", classify(err, c.endpoint)
	}

	c.logger.Info("gemini request completed",
		"model", c.model,
		"duration", duration,
	)

	return firstText(resp), nil
}

// firstText returns the text of the first part of the first candidate.
// Later parts are ignored.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}

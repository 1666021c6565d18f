package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-screener/internal/llm"
	"resume-screener/internal/shared/telemetry"
)

// Client talks to the Gemini API for both gap reasoning and text embeddings.
// One client serves the whole process; model handles are read-only after
// construction.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model, embedModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client:     client,
		model:      model,
		embedModel: embedModel,
	}, nil
}

// ExplainGaps asks the model for a structured gap explanation. A malformed
// response gets one fix-JSON retry before giving up.
func (c *Client) ExplainGaps(ctx context.Context, input llm.ExplainInput) (llm.Explanation, error) {
	raw, err := c.generateJSON(ctx, llm.BuildGapPrompt(input))
	if err != nil {
		return llm.Unavailable(), err
	}

	explanation, parseErr := parseExplanation(raw)
	if parseErr == nil {
		return explanation, nil
	}

	telemetry.Warn("gemini.fix_json_retry", map[string]any{"error": parseErr.Error()})
	raw, err = c.generateJSON(ctx, llm.BuildFixJSONPrompt(raw))
	if err != nil {
		return llm.Unavailable(), err
	}
	explanation, parseErr = parseExplanation(raw)
	if parseErr != nil {
		return llm.Unavailable(), fmt.Errorf("invalid JSON from gemini: %w", parseErr)
	}
	return explanation, nil
}

// Embed returns the dense embedding for a text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	// Keep well inside the embedding model's input window.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := c.client.Models.EmbedContent(ctx, c.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("empty gemini response")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini response has no text content")
	}
	return text, nil
}

// parseExplanation decodes the model output, tolerating stray markdown fences.
func parseExplanation(raw string) (llm.Explanation, error) {
	cleaned := cleanJSON(raw)

	var payload struct {
		Gaps []llm.SkillGap `json:"gaps"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return llm.Explanation{}, err
	}

	gaps := make([]llm.SkillGap, 0, len(payload.Gaps))
	for _, gap := range payload.Gaps {
		gap.Skill = strings.TrimSpace(gap.Skill)
		if gap.Skill == "" {
			continue
		}
		gaps = append(gaps, gap)
	}
	return llm.Explanation{Available: true, Gaps: gaps}, nil
}

// cleanJSON strips ```json fences some models wrap around their output.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

var _ llm.Explainer = (*Client)(nil)

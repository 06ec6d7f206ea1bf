// Package ai wraps the external generative model behind a small gateway.
// It deals in prompts and raw text; parsing model output into domain
// records happens at a typed boundary in the services, using the helpers
// in this package.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMalformedResponse is returned when the model's output cannot be
// parsed as the requested JSON shape. Callers surface this as an
// upstream failure rather than an empty result.
var ErrMalformedResponse = errors.New("malformed model response")

// ErrEmptyResponse is returned when the model produced no usable content.
var ErrEmptyResponse = errors.New("empty model response")

// Generator is the request/response contract with the generative model.
type Generator interface {
	// GenerateText submits a prompt and returns the raw text response.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateVision submits a prompt with an attached image and returns
	// the raw text response. mimeType is e.g. "image/jpeg".
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// GeminiClient implements Generator on the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	textModel   string
	visionModel string
}

// NewGeminiClient creates a Gemini-backed Generator.
func NewGeminiClient(ctx context.Context, apiKey, textModel, visionModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		textModel:   textModel,
		visionModel: visionModel,
	}, nil
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateText submits a text-only prompt.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.textModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractText(resp)
}

// GenerateVision submits a prompt with an attached image.
func (c *GeminiClient) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	model := c.client.GenerativeModel(c.visionModel)
	parts := []genai.Part{
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(prompt),
	}
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractText(resp)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// imageFormat maps a mime type like "image/png" to the bare format the
// genai SDK expects ("png"). Unknown input defaults to jpeg.
func imageFormat(mimeType string) string {
	if format, ok := strings.CutPrefix(mimeType, "image/"); ok && format != "" {
		return format
	}
	return "jpeg"
}

// CleanJSONResponse strips the markdown code-fence markers models tend to
// wrap JSON in, plus surrounding whitespace.
func CleanJSONResponse(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pawtalk/pet-translator/internal/config"
	"github.com/pawtalk/pet-translator/internal/models"
	"google.golang.org/genai"
)

// GeminiTranslator sends the photo to a Gemini multimodal model.
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

func NewGeminiTranslator(ctx context.Context, cfg config.GeminiConfig) (*GeminiTranslator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiTranslator{
		client: client,
		model:  strings.TrimPrefix(cfg.Model, "models/"),
	}, nil
}

func (g *GeminiTranslator) Name() string {
	return config.ProviderGemini
}

func (g *GeminiTranslator) Model() string {
	return g.model
}

func (g *GeminiTranslator) Translate(ctx context.Context, img models.Image) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, buildGeminiContents(img), generateContentConfig())
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini %s: %w", blockReason(resp), models.ErrEmptyResult)
	}
	return text, nil
}

// buildGeminiContents returns a single user turn: instruction, then image.
// The SDK base64-encodes the inline bytes on the wire.
func buildGeminiContents(img models.Image) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(Instruction),
			genai.NewPartFromBytes(img.Data, models.MIMETypeJPEG),
		}, genai.RoleUser),
	}
}

func generateContentConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](Temperature),
		TopK:            genai.Ptr[float32](TopK),
		TopP:            genai.Ptr[float32](TopP),
		MaxOutputTokens: MaxOutputTokens,
		SafetySettings:  SafetySettings(),
	}
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return fmt.Sprintf("prompt blocked (%s)", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
		return fmt.Sprintf("finish reason %s", resp.Candidates[0].FinishReason)
	}
	return "empty response"
}

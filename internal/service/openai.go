package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/pawtalk/pet-translator/internal/config"
	"github.com/pawtalk/pet-translator/internal/models"
)

// OpenAITranslator talks to any OpenAI-compatible chat completions endpoint.
// It has no top-k or safety knobs; the remaining sampling parameters match Gemini's.
type OpenAITranslator struct {
	client openai.Client
	model  string
}

func NewOpenAITranslator(cfg config.OpenAIConfig) *OpenAITranslator {
	return &OpenAITranslator{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(0),
		),
		model: cfg.Model,
	}
}

func (o *OpenAITranslator) Name() string {
	return config.ProviderOpenAI
}

func (o *OpenAITranslator) Model() string {
	return o.model
}

func (o *OpenAITranslator) Translate(ctx context.Context, img models.Image) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, o.buildOpenAIReq(img))
	if err != nil {
		return "", fmt.Errorf("OpenAI client error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", models.ErrEmptyResult)
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAITranslator) buildOpenAIReq(img models.Image) openai.ChatCompletionNewParams {
	imageData := fmt.Sprintf("data:%s;base64,%s", models.MIMETypeJPEG, base64.StdEncoding.EncodeToString(img.Data))

	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(Instruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageData,
				}),
			}),
		},
		Temperature:         openai.Float(Temperature),
		TopP:                openai.Float(TopP),
		MaxCompletionTokens: openai.Int(MaxOutputTokens),
	}
}

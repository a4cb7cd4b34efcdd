package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

// OpenAIProvider wraps the OpenAI chat completion client.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	preset ModelPreset
	logger *zap.Logger
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Preset  ModelPreset
	BaseURL string
}

func NewOpenAIProvider(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client: &client,
		model:  cfg.Model,
		preset: cfg.Preset,
		logger: logger,
	}, nil
}

func (o *OpenAIProvider) Name() string {
	return "OpenAI"
}

func (o *OpenAIProvider) Model() string {
	return o.model
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	config := GetPresetConfig(o.preset)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(int64(config.MaxOutputTokens)),
	}

	// gpt-5 family rejects sampling overrides.
	if !isReasoningModel(o.model) {
		params.Temperature = openai.Float(float64(config.Temperature))
		params.TopP = openai.Float(float64(config.TopP))
	}

	o.logger.Debug("Generating with OpenAI",
		zap.String("model", o.model),
		zap.String("preset", string(o.preset)),
	)

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		o.logger.Error("OpenAI generation failed", zap.Error(err))
		return "", errors.NewModelError(o.Name(), o.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewModelError(o.Name(), o.model, fmt.Errorf("no choices in OpenAI response"))
	}

	text := resp.Choices[0].Message.Content

	o.logger.Debug("OpenAI response received",
		zap.Int("length", len(text)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)

	return text, nil
}

func isReasoningModel(model string) bool {
	switch model {
	case "gpt-5", "gpt-5-mini", "gpt-5-nano":
		return true
	default:
		return false
	}
}

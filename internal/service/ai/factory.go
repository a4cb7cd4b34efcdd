package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/config"
)

// NewGenerator builds the provider selected by MODEL_PROVIDER.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Generator, error) {
	preset := ParsePreset(cfg.Model.Preset)

	switch cfg.Model.Provider {
	case config.ProviderGemini:
		provider, err := NewGeminiProvider(ctx, GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
			Preset: preset,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Model provider ready", zap.String("provider", provider.Name()), zap.String("model", provider.Model()))
		return provider, nil
	case config.ProviderOpenAI:
		provider, err := NewOpenAIProvider(OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
			Preset: preset,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Model provider ready", zap.String("provider", provider.Name()), zap.String("model", provider.Model()))
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Model.Provider)
	}
}

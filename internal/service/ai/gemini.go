package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/jovemprogramador/chatbot-go/pkg/errors"
)

// GeminiProvider wraps the Gemini client with preset-aware generation logic.
type GeminiProvider struct {
	client *genai.Client
	model  string
	preset ModelPreset
	logger *zap.Logger
}

type GeminiConfig struct {
	APIKey string
	Model  string
	Preset ModelPreset
	// BaseURL overrides the API endpoint; empty uses the public service.
	BaseURL string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
		preset: cfg.Preset,
		logger: logger,
	}, nil
}

func (g *GeminiProvider) Name() string {
	return "Gemini"
}

func (g *GeminiProvider) Model() string {
	return g.model
}

// Generate returns the concatenated text parts of the first candidate. An
// empty completion is not an error; the caller decides what to do with it.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.NewModelError(g.Name(), g.model, fmt.Errorf("gemini client not initialized"))
	}

	config := GetPresetConfig(g.preset)
	topK := float32(config.TopK)

	genConfig := &genai.GenerateContentConfig{
		Temperature:     &config.Temperature,
		TopP:            &config.TopP,
		TopK:            &topK,
		MaxOutputTokens: int32(config.MaxOutputTokens),
	}

	g.logger.Debug("Generating with Gemini",
		zap.String("model", g.model),
		zap.String("preset", string(g.preset)),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}, genConfig)
	if err != nil {
		g.logger.Error("Gemini generation failed", zap.Error(err))
		return "", errors.NewModelError(g.Name(), g.model, err)
	}

	text := extractTextFromGeminiResponse(resp)
	g.logger.Debug("Gemini response received", zap.Int("length", len(text)))
	return text, nil
}

func extractTextFromGeminiResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}

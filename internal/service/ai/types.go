package ai

import "context"

// Generator is the single capability the answer flow needs from a model:
// prompt in, completion out. One call per request, no retries.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetCreative ModelPreset = "creative"
	PresetPrecise  ModelPreset = "precise"
	PresetBalanced ModelPreset = "balanced"
)

// ModelConfig holds sampling parameters shared by both providers.
type ModelConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// GetPresetConfig returns the configuration for a preset
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetCreative:
		return ModelConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		}
	case PresetPrecise:
		return ModelConfig{
			Temperature:     0.1,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 1024,
		}
	case PresetBalanced:
		return ModelConfig{
			Temperature:     0.4,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		}
	default:
		return GetPresetConfig(PresetBalanced)
	}
}

// ParsePreset maps a config string to a preset, defaulting to balanced.
func ParsePreset(raw string) ModelPreset {
	switch ModelPreset(raw) {
	case PresetCreative, PresetPrecise:
		return ModelPreset(raw)
	default:
		return PresetBalanced
	}
}

package engine

import (
	"errors"

	"github.com/23skdu/longbow-scribe/internal/config"
)

// ErrUnavailable is returned when the binary was built without the llama tag.
var ErrUnavailable = errors.New("llama backend unavailable: build with -tags llama and install go-llama.cpp")

// SamplerConfig carries the decoding controls. Values pass through to the
// backend unchanged.
type SamplerConfig struct {
	Temperature float64
	TopK        int
	TopP        float64
	RepPenalty  float64 // 1.0 = no penalty, > 1.0 = penalty
	Seed        int64
	MaxTokens   int
	StopToken   string
}

// Options controls how the checkpoint is loaded.
type Options struct {
	ContextSize int
	GPULayers   int
	Threads     int
	MMap        bool
}

// ForSample derives the sampler for the i-th return sequence of a prompt.
// A fixed seed is offset per sample so repeated samples explore different
// continuations while the run stays reproducible; non-positive seeds keep
// the backend's own RNG.
func (s SamplerConfig) ForSample(i int) SamplerConfig {
	if s.Seed > 0 {
		s.Seed += int64(i)
	}
	return s
}

// OptionsFromConfig maps a run configuration to backend load options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ContextSize: cfg.ContextSize,
		GPULayers:   cfg.GPULayers,
		Threads:     cfg.Threads,
		MMap:        true,
	}
}

// SamplerFromConfig maps a run configuration to a sampler, with the clamped
// per-row generation length.
func SamplerFromConfig(cfg *config.Config, maxTokens int) SamplerConfig {
	return SamplerConfig{
		Temperature: cfg.Temperature,
		TopK:        cfg.TopK,
		TopP:        cfg.TopP,
		RepPenalty:  cfg.RepetitionPenalty,
		Seed:        cfg.Seed,
		MaxTokens:   maxTokens,
		StopToken:   cfg.StopToken,
	}
}

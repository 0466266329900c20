//go:build llama

package engine

import (
	"context"
	"fmt"

	llama "github.com/go-skynet/go-llama.cpp"
)

// Engine wraps the llama.cpp binding. Model weights, tokenization and
// sampling all live on the other side of this boundary.
type Engine struct {
	model *llama.LLama
	opts  Options
}

func New(modelPath string, opts Options) (*Engine, error) {
	model, err := llama.New(modelPath,
		llama.SetContext(opts.ContextSize),
		llama.SetGPULayers(opts.GPULayers),
		llama.SetMMap(opts.MMap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", modelPath, err)
	}
	return &Engine{model: model, opts: opts}, nil
}

func (e *Engine) Close() error {
	if e.model != nil {
		e.model.Free()
	}
	return nil
}

// MaxSequenceLength reports the context size the model was loaded with.
func (e *Engine) MaxSequenceLength() int {
	return e.opts.ContextSize
}

// Generate samples a continuation for the prepared prompt. Only newly
// generated text is returned, never the prompt itself.
func (e *Engine) Generate(ctx context.Context, prompt string, s SamplerConfig) (string, error) {
	// Decoding controls pass through unchanged; their zero semantics
	// (temperature 0 = greedy, top_k 0 = disabled) belong to the backend.
	opts := []llama.PredictOption{
		llama.Debug(false),
		llama.SetTemperature(float32(s.Temperature)),
		llama.SetTopK(s.TopK),
		llama.SetTopP(float32(s.TopP)),
		llama.SetPenalty(float32(s.RepPenalty)),
	}
	if s.MaxTokens > 0 {
		opts = append(opts, llama.SetTokens(s.MaxTokens))
	}
	if s.Seed > 0 {
		opts = append(opts, llama.SetSeed(int(s.Seed)))
	}
	if s.StopToken != "" {
		opts = append(opts, llama.SetStopWords(s.StopToken))
	}
	if e.opts.Threads > 0 {
		opts = append(opts, llama.SetThreads(e.opts.Threads))
	}

	out, err := e.model.Predict(ctx, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return out, nil
}

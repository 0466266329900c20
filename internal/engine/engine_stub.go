//go:build !llama

package engine

import (
	"context"
)

type Engine struct {
	opts Options
}

func New(modelPath string, opts Options) (*Engine, error) {
	return nil, ErrUnavailable
}

func (e *Engine) Close() error {
	return nil
}

func (e *Engine) MaxSequenceLength() int {
	return e.opts.ContextSize
}

func (e *Engine) Generate(ctx context.Context, prompt string, s SamplerConfig) (string, error) {
	return "", ErrUnavailable
}

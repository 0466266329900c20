package config

import (
	"fmt"
	"strings"
)

// MaxLength caps generation length when the model's context size is unknown,
// so a negative requested length can never run away.
const MaxLength = 10000

type Config struct {
	ModelPath string `yaml:"model"`
	Family    string `yaml:"family"`

	CSVPath      string `yaml:"csv"`
	PromptColumn string `yaml:"prompt_column"`

	Length             int     `yaml:"length"`
	Temperature        float64 `yaml:"temperature"`
	TopK               int     `yaml:"top_k"`
	TopP               float64 `yaml:"top_p"`
	RepetitionPenalty  float64 `yaml:"repetition_penalty"`
	Seed               int64   `yaml:"seed"`
	NumReturnSequences int     `yaml:"num_return_sequences"`
	StopToken          string  `yaml:"stop_token"`

	PaddingText string `yaml:"padding_text"`
	XLMLanguage string `yaml:"xlm_language"`

	ContextSize int `yaml:"context_size"`
	GPULayers   int `yaml:"gpu_layers"`
	Threads     int `yaml:"threads"`

	MetricsAddr string `yaml:"metrics_addr"`
	OutPath     string `yaml:"out"`
	FlightAddr  string `yaml:"flight_addr"`
}

func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	if c.CSVPath == "" {
		return fmt.Errorf("csv path is required")
	}
	if c.PromptColumn == "" {
		return fmt.Errorf("invalid prompt_column: must be non-empty")
	}
	if c.Temperature < 0 {
		return fmt.Errorf("invalid temperature: %f (must be non-negative)", c.Temperature)
	}
	if c.TopK < 0 {
		return fmt.Errorf("invalid top_k: %d (must be non-negative)", c.TopK)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("invalid top_p: %f (must be in [0, 1])", c.TopP)
	}
	if c.RepetitionPenalty < 1.0 {
		return fmt.Errorf("invalid repetition_penalty: %f (must be >= 1.0)", c.RepetitionPenalty)
	}
	if c.NumReturnSequences <= 0 {
		return fmt.Errorf("invalid num_return_sequences: %d (must be positive)", c.NumReturnSequences)
	}
	if c.ContextSize <= 0 {
		return fmt.Errorf("invalid context_size: %d (must be positive)", c.ContextSize)
	}
	return nil
}

// GetFamily returns the model family normalized to lower case.
func (c *Config) GetFamily() string {
	return strings.ToLower(c.Family)
}

func Default() Config {
	return Config{
		Family:             "gpt2",
		PromptColumn:       "title",
		Length:             -1,
		Temperature:        1.0,
		TopK:               0,
		TopP:               0.9,
		RepetitionPenalty:  1.0,
		Seed:               42,
		NumReturnSequences: 1,
		ContextSize:        2048,
		GPULayers:          -1,
		MetricsAddr:        ":9090",
	}
}

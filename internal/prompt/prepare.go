package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/23skdu/longbow-scribe/internal/config"
)

// ErrUnknownFamily is returned for a model family with no registered entry.
var ErrUnknownFamily = errors.New("the model family specified is not supported")

// DefaultPaddingText gives Transformer-XL and XLNet style models extra context
// for short prompts, following the approach proposed by Aman Rusia
// (https://github.com/rusiaaman/XLNet-gen#methodology).
const DefaultPaddingText = `In 1991, the remains of Russian Tsar Nicholas II and his family
(except for Alexei and Maria) are discovered.
The voice of Nicholas's young son, Tsarevich Alexei Nikolaevich, narrates the
remainder of the story. 1883 Western Siberia,
a young Grigori Rasputin is asked by his father and a group of men to perform magic.
Rasputin has a vision and denounces one of the men as a horse thief. Although his
father initially slaps him for making such an accusation, Rasputin watches as the
man is chased outside and beaten. Twenty years later, Rasputin sees a vision of
the Virgin Mary, prompting him to become a priest. Rasputin quickly becomes famous,
with people, even a bishop, begging for his blessing. <eod> </s> <eos>`

// Warning flags a prompt that will likely generate poorly but is still usable.
type Warning struct {
	Reason  string
	Message string
}

type prepareFunc func(cfg *config.Config, promptText string) (string, []Warning, error)

// Families that need no preparation are registered with a nil func.
var prepareFuncs = map[string]prepareFunc{
	"gpt2":       nil,
	"openai-gpt": nil,
	"ctrl":       prepareCTRL,
	"xlm":        prepareXLM,
	"xlnet":      preparePadded,
	"transfo-xl": preparePadded,
}

// Families returns the registered model family names.
func Families() []string {
	names := make([]string, 0, len(prepareFuncs))
	for name := range prepareFuncs {
		names = append(names, name)
	}
	return names
}

// Prepare applies the model family's input formatting to a raw prompt.
// Unknown families are the one guarded failure in the pipeline.
func Prepare(cfg *config.Config, promptText string) (string, []Warning, error) {
	family := cfg.GetFamily()
	fn, ok := prepareFuncs[family]
	if !ok {
		return "", nil, ErrUnknownFamily
	}
	if fn == nil {
		return promptText, nil, nil
	}
	return fn(cfg, promptText)
}

// controlCodes are the CTRL conditioning prefixes. Generation that does not
// start from one of these tends to be low quality.
var controlCodes = map[string]bool{
	"Pregnancy": true, "Christianity": true, "Explain": true, "Fitness": true,
	"Saving": true, "Ask": true, "Ass": true, "Joke": true, "Questions": true,
	"Thoughts": true, "Retail": true, "Feelings": true, "Writing": true,
	"Atheism": true, "Netflix": true, "Computing": true, "Opinion": true,
	"Alone": true, "Funny": true, "Gaming": true, "Human": true, "India": true,
	"Joker": true, "Diet": true, "Legal": true, "Norman": true, "Tip": true,
	"Weight": true, "Movies": true, "Running": true, "Science": true,
	"Horror": true, "Confession": true, "Finance": true, "Politics": true,
	"Scary": true, "Support": true, "Technologies": true, "Teenage": true,
	"Event": true, "Learned": true, "Notion": true, "Wikipedia": true,
	"Books": true, "Extract": true, "Confessions": true, "Conspiracy": true,
	"Links": true, "Narcissus": true, "Relationship": true, "Relationships": true,
	"Reviews": true, "News": true, "Translation": true, "multilingual": true,
}

func prepareCTRL(cfg *config.Config, promptText string) (string, []Warning, error) {
	var warnings []Warning
	if cfg.Temperature > 0.7 {
		warnings = append(warnings, Warning{
			Reason:  "high_temperature",
			Message: "CTRL typically works better with lower temperatures (and lower top_k)",
		})
	}

	first := promptText
	if idx := strings.IndexAny(promptText, " \t\n"); idx > 0 {
		first = promptText[:idx]
	}
	if !controlCodes[first] {
		warnings = append(warnings, Warning{
			Reason:  "no_control_code",
			Message: "generation is not starting from a control code, results will likely be poor",
		})
	}
	return promptText, warnings, nil
}

// xlmLanguages are the languages of the XLM CLM checkpoints.
var xlmLanguages = map[string]bool{
	"en": true, "fr": true, "es": true, "de": true, "it": true, "pt": true,
	"nl": true, "sv": true, "pl": true, "ru": true, "ar": true, "tr": true,
	"zh": true, "ja": true, "el": true, "bg": true, "ur": true, "hi": true,
	"th": true, "vi": true, "ko": true,
}

func prepareXLM(cfg *config.Config, promptText string) (string, []Warning, error) {
	lang := strings.ToLower(cfg.XLMLanguage)
	if lang == "" {
		return promptText, []Warning{{
			Reason:  "no_language",
			Message: "no xlm_language configured, checkpoints with language embeddings need one",
		}}, nil
	}
	if !xlmLanguages[lang] {
		return "", nil, fmt.Errorf("unsupported xlm language %q", cfg.XLMLanguage)
	}
	return promptText, nil, nil
}

func preparePadded(cfg *config.Config, promptText string) (string, []Warning, error) {
	padding := cfg.PaddingText
	if padding == "" {
		padding = DefaultPaddingText
	}
	return padding + promptText, nil, nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/23skdu/longbow-scribe/internal/config"
	"github.com/23skdu/longbow-scribe/internal/prompt"
)

// prompt_check shows what each CSV row looks like after family preparation
// and length clamping, without loading a model.

var (
	csvPath  = flag.String("csv", "", "Path to CSV file with prompts")
	column   = flag.String("column", "title", "CSV column holding the prompt text")
	family   = flag.String("family", "gpt2", "Model family")
	temp     = flag.Float64("temp", 1.0, "Sampling temperature (affects ctrl warnings)")
	padding  = flag.String("padding", "", "Override padding text for xlnet/transfo-xl")
	xlmLang  = flag.String("xlm-language", "", "Language for XLM checkpoints")
	length   = flag.Int("len", -1, "Requested generation length")
	ctxSize  = flag.Int("ctx", 2048, "Model context size used for clamping")
	preview  = flag.Int("preview", 120, "Characters of prepared prompt to print")
)

func main() {
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("--csv flag is required")
	}

	cfg := config.Default()
	cfg.Family = *family
	cfg.Temperature = *temp
	cfg.PaddingText = *padding
	cfg.XLMLanguage = *xlmLang

	records, err := prompt.ReadCSV(*csvPath, *column)
	if err != nil {
		log.Fatalf("Failed to read prompts: %v", err)
	}

	fmt.Printf("rows=%d family=%s\n", len(records), cfg.GetFamily())

	for _, rec := range records {
		prepared, warnings, err := prompt.Prepare(&cfg, rec.Text)
		if err != nil {
			log.Fatalf("Row %d: %v", rec.Row, err)
		}

		requested := *length
		if requested < 0 {
			requested = len(rec.Text)
		}
		clamped := prompt.AdjustLength(requested, *ctxSize)

		p := prepared
		if len(p) > *preview {
			p = p[:*preview] + "..."
		}
		p = strings.ReplaceAll(p, "\n", " ")

		fmt.Printf("row=%d len=%d prepared=%q\n", rec.Row, clamped, p)
		for _, w := range warnings {
			fmt.Printf("  warning[%s]: %s\n", w.Reason, w.Message)
		}
	}
}

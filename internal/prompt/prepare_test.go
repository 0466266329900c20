package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/23skdu/longbow-scribe/internal/config"
)

func testConfig(family string) *config.Config {
	cfg := config.Default()
	cfg.Family = family
	return &cfg
}

func TestPrepareIdentityFamilies(t *testing.T) {
	for _, family := range []string{"gpt2", "openai-gpt", "GPT2"} {
		cfg := testConfig(family)
		out, warnings, err := Prepare(cfg, "The quick brown fox")
		if err != nil {
			t.Fatalf("Prepare(%s) failed: %v", family, err)
		}
		if out != "The quick brown fox" {
			t.Errorf("expected prompt unchanged for %s, got %q", family, out)
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings for %s, got %v", family, warnings)
		}
	}
}

func TestPrepareUnknownFamily(t *testing.T) {
	cfg := testConfig("bert")
	_, _, err := Prepare(cfg, "hello")
	if !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}

func TestPreparePaddedFamilies(t *testing.T) {
	for _, family := range []string{"xlnet", "transfo-xl"} {
		cfg := testConfig(family)
		out, _, err := Prepare(cfg, "A short title")
		if err != nil {
			t.Fatalf("Prepare(%s) failed: %v", family, err)
		}
		if !strings.HasPrefix(out, DefaultPaddingText) {
			t.Errorf("expected %s prompt to start with padding text", family)
		}
		if !strings.HasSuffix(out, "A short title") {
			t.Errorf("expected %s prompt to end with the original text", family)
		}
	}
}

func TestPreparePaddingOverride(t *testing.T) {
	cfg := testConfig("xlnet")
	cfg.PaddingText = "Context. "
	out, _, err := Prepare(cfg, "tail")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if out != "Context. tail" {
		t.Errorf("expected padding override to be used, got %q", out)
	}
}

func TestPrepareCTRLWarnings(t *testing.T) {
	cfg := testConfig("ctrl")
	cfg.Temperature = 1.0

	_, warnings, err := Prepare(cfg, "some prompt without a code")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	reasons := make(map[string]bool)
	for _, w := range warnings {
		reasons[w.Reason] = true
	}
	if !reasons["high_temperature"] {
		t.Error("expected high_temperature warning at temperature 1.0")
	}
	if !reasons["no_control_code"] {
		t.Error("expected no_control_code warning")
	}
}

func TestPrepareCTRLControlCode(t *testing.T) {
	cfg := testConfig("ctrl")
	cfg.Temperature = 0.3

	out, warnings, err := Prepare(cfg, "Wikipedia The history of")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if out != "Wikipedia The history of" {
		t.Errorf("expected prompt unchanged, got %q", out)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestPrepareXLM(t *testing.T) {
	cfg := testConfig("xlm")
	cfg.XLMLanguage = "en"
	out, warnings, err := Prepare(cfg, "hello world")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if out != "hello world" || len(warnings) != 0 {
		t.Errorf("expected clean pass for xlm with en, got %q %v", out, warnings)
	}

	cfg.XLMLanguage = ""
	_, warnings, err = Prepare(cfg, "hello world")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Reason != "no_language" {
		t.Errorf("expected no_language warning, got %v", warnings)
	}

	cfg.XLMLanguage = "xx"
	if _, _, err = Prepare(cfg, "hello world"); err == nil {
		t.Error("expected error for unsupported xlm language")
	}
}

func TestFamilies(t *testing.T) {
	names := Families()
	if len(names) != 6 {
		t.Errorf("expected 6 families, got %d: %v", len(names), names)
	}
	found := make(map[string]bool)
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"gpt2", "ctrl", "openai-gpt", "xlnet", "transfo-xl", "xlm"} {
		if !found[want] {
			t.Errorf("expected family %s to be registered", want)
		}
	}
}

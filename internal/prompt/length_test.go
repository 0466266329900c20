package prompt

import (
	"testing"

	"github.com/23skdu/longbow-scribe/internal/config"
)

func TestAdjustLength(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		maxSeq    int
		want      int
	}{
		{"negative with known max", -1, 2048, 2048},
		{"request above max", 5000, 2048, 2048},
		{"request within max", 100, 2048, 100},
		{"request equals max", 2048, 2048, 2048},
		{"negative with unknown max", -1, 0, config.MaxLength},
		{"zero request", 0, 2048, 0},
		{"positive with unknown max", 300, 0, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustLength(tt.requested, tt.maxSeq); got != tt.want {
				t.Errorf("AdjustLength(%d, %d) = %d, want %d", tt.requested, tt.maxSeq, got, tt.want)
			}
		})
	}
}

func TestTrimAtStop(t *testing.T) {
	tests := []struct {
		name string
		text string
		stop string
		want string
	}{
		{"no stop token", "hello world", "", "hello world"},
		{"stop present", "hello <eos> world", "<eos>", "hello "},
		{"stop absent", "hello world", "<eos>", "hello world"},
		{"stop at start", "<eos>hello", "<eos>", ""},
		{"only first stop counts", "a.b.c", ".", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAtStop(tt.text, tt.stop); got != tt.want {
				t.Errorf("TrimAtStop(%q, %q) = %q, want %q", tt.text, tt.stop, got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	got := Assemble("Once upon a time", " there was a fox<eos> garbage", "<eos>")
	want := "Once upon a time there was a fox"
	if got != want {
		t.Errorf("Assemble = %q, want %q", got, want)
	}
}

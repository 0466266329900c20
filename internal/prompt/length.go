package prompt

import (
	"strings"

	"github.com/23skdu/longbow-scribe/internal/config"
)

// AdjustLength clamps a requested generation length against the model's
// maximum sequence length. A negative request means "as long as the model
// allows"; when the model maximum is unknown it falls back to the hard cap.
func AdjustLength(requested, maxSequenceLength int) int {
	if requested < 0 && maxSequenceLength > 0 {
		return maxSequenceLength
	}
	if maxSequenceLength > 0 && requested > maxSequenceLength {
		return maxSequenceLength
	}
	if requested < 0 {
		return config.MaxLength
	}
	return requested
}

// TrimAtStop cuts text at the first occurrence of the stop token.
// An empty stop token leaves the text untouched.
func TrimAtStop(text, stopToken string) string {
	if stopToken == "" {
		return text
	}
	if idx := strings.Index(text, stopToken); idx >= 0 {
		return text[:idx]
	}
	return text
}

// Assemble builds the final output sequence: the original prompt followed by
// the continuation trimmed at the stop token. Preparation padding never
// appears here because the backend returns only newly generated text.
func Assemble(promptText, continuation, stopToken string) string {
	return promptText + TrimAtStop(continuation, stopToken)
}

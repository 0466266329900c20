package ollama

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultTag     = "latest"
	MediaTypeModel = "application/vnd.ollama.image.model"
)

type Manifest struct {
	SchemaVersion int     `json:"schemaVersion"`
	Layers        []Layer `json:"layers"`
}

type Layer struct {
	MediaType string `json:"mediaType"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
}

// ModelsDir returns the local Ollama model store, honoring OLLAMA_MODELS.
func ModelsDir() (string, error) {
	if env := os.Getenv("OLLAMA_MODELS"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ollama", "models"), nil
}

// ResolveModelPath finds the GGUF blob for a model name like "llama3",
// "llama3:latest" or "llama3:8b". Short names are assumed to live under
// registry.ollama.ai/library.
func ResolveModelPath(modelName string) (string, error) {
	name, tag, found := strings.Cut(modelName, ":")
	if !found {
		tag = DefaultTag
	}

	baseDir, err := ModelsDir()
	if err != nil {
		return "", err
	}

	manifestPath := filepath.Join(baseDir, "manifests", "registry.ollama.ai", "library", name, tag)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("model manifest not found at %s", manifestPath)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	var blobDigest string
	for _, l := range m.Layers {
		if l.MediaType == MediaTypeModel {
			blobDigest = l.Digest
			break
		}
	}
	if blobDigest == "" {
		return "", fmt.Errorf("no model layer found in manifest")
	}

	// Digest "sha256:hash" maps to blob file "sha256-hash"
	blobName := strings.Replace(blobDigest, ":", "-", 1)
	blobPath := filepath.Join(baseDir, "blobs", blobName)

	if _, err := os.Stat(blobPath); os.IsNotExist(err) {
		return "", fmt.Errorf("model blob not found at %s", blobPath)
	}

	return blobPath, nil
}

// ResolveOrPath treats the argument as an Ollama model name first and as a
// direct checkpoint path second.
func ResolveOrPath(modelArg string) (string, error) {
	if resolved, err := ResolveModelPath(modelArg); err == nil {
		return resolved, nil
	}
	if _, err := os.Stat(modelArg); err != nil {
		return "", fmt.Errorf("model %q is neither an Ollama model nor a readable path: %w", modelArg, err)
	}
	return modelArg, nil
}

// Package prompts holds the two model prompts, each an embedded JSON file
// with a system instruction and a user template.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Prompt files and the keys every file carries.
const (
	ExtractionFile = "extraction.json"
	ValidationFile = "validation.json"

	KeySystem   = "system"
	KeyTemplate = "template"
)

//go:embed extraction.json validation.json
var promptFiles embed.FS

// Prompt is one parsed prompt file.
type Prompt struct {
	System   string `json:"system"`
	Template string `json:"template"`
}

var (
	loaded    map[string]Prompt
	loadErr   error
	loadOnce  sync.Once
	fileNames = []string{ExtractionFile, ValidationFile}
)

// Load returns the prompt stored in filename. Both files are parsed on
// first use and kept for the life of the process.
func Load(filename string) (Prompt, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parseAll()
	})
	if loadErr != nil {
		return Prompt{}, loadErr
	}

	p, ok := loaded[filename]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt file %s", filename)
	}
	return p, nil
}

func parseAll() (map[string]Prompt, error) {
	out := make(map[string]Prompt, len(fileNames))
	for _, name := range fileNames {
		data, err := promptFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		p, err := parsePrompt(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		out[name] = p
	}
	return out, nil
}

func parsePrompt(data []byte) (Prompt, error) {
	var p Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return Prompt{}, err
	}
	if p.System == "" || p.Template == "" {
		return Prompt{}, fmt.Errorf("both %q and %q are required", KeySystem, KeyTemplate)
	}
	return p, nil
}

// Get retrieves one part of a prompt file by key.
func Get(filename, key string) (string, error) {
	p, err := Load(filename)
	if err != nil {
		return "", err
	}

	switch key {
	case KeySystem:
		return p.System, nil
	case KeyTemplate:
		return p.Template, nil
	default:
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, fmt.Sprintf("{{.%s}}", key), value)
	}
	// One Replacer pass, so substituted values are never re-expanded.
	return strings.NewReplacer(pairs...).Replace(template)
}

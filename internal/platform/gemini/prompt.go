package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/vidcards/internal/generation"
)

// systemPrompt is sent as the system instruction of every request.
//
//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/flashcards.tmpl
var defaultPromptTemplate string

// promptData represents the data passed to the prompt template
type promptData struct {
	VideoURL string
}

// loadPromptTemplate parses the task prompt. An empty path selects the
// embedded default.
func loadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, path, err)
		}
		content = string(data)
	}

	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	return tmpl, nil
}

// renderPrompt executes tmpl for videoURL.
func renderPrompt(tmpl *template.Template, videoURL string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{VideoURL: videoURL}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"github.com/phrazzld/vidcards/internal/config"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/redact"
	"google.golang.org/genai"
)

// videoMIMEType is attached to the YouTube file reference.
const videoMIMEType = "video/mp4"

// modelClient is the subset of genai.Models used by Generator.
type modelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements the generation.ContentGenerator interface using
// Google's Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// model is the name of the Gemini model to use
	model string

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client returns the shared Gemini client, constructing it on first use.
	client func() (modelClient, error)
}

var _ generation.ContentGenerator = (*Generator)(nil)

// Option customises a Generator.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL points the client at a different API endpoint, for example a
// regional proxy or a local test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// NewGenerator creates a Generator from the LLM configuration.
//
// The prompt template is loaded eagerly so that a bad template fails start-up;
// the genai client itself is only constructed on the first GenerateContent
// call. A missing API key therefore surfaces as generation.ErrInvalidConfig
// from GenerateContent.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Generator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	factory := func() (modelClient, error) {
		if err := cfg.RequireAPIKey(); err != nil {
			return nil, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
		}

		clientConfig := &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if o.baseURL != "" {
			clientConfig.HTTPOptions.BaseURL = o.baseURL
		}

		// The API key backend does no I/O during construction, so the
		// client does not inherit any request's context.
		client, err := genai.NewClient(context.Background(), clientConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
				generation.ErrInvalidConfig, redact.Error(err))
		}

		return client.Models, nil
	}

	return newGenerator(logger, cfg, factory)
}

// newGenerator wires a Generator around an arbitrary client factory. The
// factory runs at most once.
func newGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	factory func() (modelClient, error),
) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Generator{
		logger:         logger,
		model:          cfg.ModelName,
		promptTemplate: tmpl,
		client:         sync.OnceValues(factory),
	}, nil
}

// validateConfig checks the settings NewGenerator cannot work without. The
// API key is deliberately not among them.
func validateConfig(cfg config.LLMConfig) error {
	if strings.TrimSpace(cfg.ModelName) == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// GenerateContent asks Gemini to analyse the video at videoURL and returns the
// raw JSON text of its answer. It makes exactly one API call.
func (g *Generator) GenerateContent(ctx context.Context, videoURL string) (string, error) {
	if videoURL == "" {
		return "", ErrEmptyVideoURL
	}

	client, err := g.client()
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini client unavailable", "error", redact.Error(err))
		return "", err
	}

	prompt, err := renderPrompt(g.promptTemplate, videoURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(videoURL, videoMIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	requestConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(strings.TrimSpace(systemPrompt), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	}

	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := client.GenerateContent(ctx, g.model, contents, requestConfig)
	if err != nil {
		classified := classifyError(err)
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"model", g.model,
			"error", redact.Error(classified))
		return "", classified
	}

	text := responseText(resp)
	if text == "" {
		g.logger.WarnContext(ctx, "Gemini returned no text",
			"finish_reason", finishReason(resp))
	}

	return text, nil
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	return sb.String()
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "no_candidates"
	}
	return string(resp.Candidates[0].FinishReason)
}

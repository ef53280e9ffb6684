package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/vidcards/internal/config"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// fakeModel records the request and returns a canned response.
type fakeModel struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: genai.RoleModel, Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:   "test-key",
		ModelName:      "gemini-test",
		RequestTimeout: time.Minute,
	}
}

func newFakeGenerator(t *testing.T, model *fakeModel) *Generator {
	t.Helper()
	log, _ := logger.NewTestLogger()
	gen, err := newGenerator(log, testLLMConfig(), func() (modelClient, error) {
		return model, nil
	})
	require.NoError(t, err)
	return gen
}

func TestGenerateContentBuildsRequest(t *testing.T) {
	model := &fakeModel{resp: textResponse(genai.NewPartFromText(`{"cards":[]}`))}
	gen := newFakeGenerator(t, model)

	text, err := gen.GenerateContent(context.Background(), testVideoURL)
	require.NoError(t, err)
	assert.Equal(t, `{"cards":[]}`, text)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, "gemini-test", model.model)

	require.Len(t, model.contents, 1)
	parts := model.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].FileData)
	assert.Equal(t, testVideoURL, parts[0].FileData.FileURI)
	assert.Equal(t, videoMIMEType, parts[0].FileData.MIMEType)
	assert.Contains(t, parts[1].Text, testVideoURL)
	assert.Equal(t, genai.RoleUser, model.contents[0].Role)

	require.NotNil(t, model.config)
	assert.Equal(t, "application/json", model.config.ResponseMIMEType)
	require.NotNil(t, model.config.ResponseSchema)
	assert.Equal(t, []string{"cards"}, model.config.ResponseSchema.Required)
	require.NotNil(t, model.config.SystemInstruction)
	require.Len(t, model.config.SystemInstruction.Parts, 1)
	assert.Contains(t, model.config.SystemInstruction.Parts[0].Text, "flashcard")
}

func TestGenerateContentSkipsThoughtParts(t *testing.T) {
	model := &fakeModel{resp: textResponse(
		&genai.Part{Text: "thinking about it", Thought: true},
		genai.NewPartFromText(`{"cards":`),
		genai.NewPartFromText(`[]}`),
	)}
	gen := newFakeGenerator(t, model)

	text, err := gen.GenerateContent(context.Background(), testVideoURL)
	require.NoError(t, err)
	assert.Equal(t, `{"cards":[]}`, text)
}

func TestGenerateContentEmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil response", resp: nil},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "nil content", resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}},
		{name: "no parts", resp: textResponse()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newFakeGenerator(t, &fakeModel{resp: tt.resp})

			text, err := gen.GenerateContent(context.Background(), testVideoURL)
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestGenerateContentClassifiesErrors(t *testing.T) {
	model := &fakeModel{err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}}
	gen := newFakeGenerator(t, model)

	_, err := gen.GenerateContent(context.Background(), testVideoURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrRateLimited)
	assert.Equal(t, generation.CategoryRateLimited, generation.CategoryOf(err))
}

func TestGenerateContentEmptyURL(t *testing.T) {
	model := &fakeModel{}
	gen := newFakeGenerator(t, model)

	_, err := gen.GenerateContent(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyVideoURL)
	assert.Zero(t, model.calls)
}

func TestClientFactoryRunsOnce(t *testing.T) {
	var built atomic.Int32
	model := &fakeModel{resp: textResponse(genai.NewPartFromText("{}"))}
	log, _ := logger.NewTestLogger()

	gen, err := newGenerator(log, testLLMConfig(), func() (modelClient, error) {
		built.Add(1)
		return model, nil
	})
	require.NoError(t, err)

	for range 3 {
		_, err := gen.GenerateContent(context.Background(), testVideoURL)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), built.Load())
	assert.Equal(t, 3, model.calls)
}

func TestNewGeneratorValidation(t *testing.T) {
	log, _ := logger.NewTestLogger()

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewGenerator(nil, testLLMConfig())
		assert.Error(t, err)
	})

	t.Run("empty model name", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.ModelName = "  "
		_, err := NewGenerator(log, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing prompt template", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")
		_, err := NewGenerator(log, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("missing api key is reported on use", func(t *testing.T) {
		cfg := testLLMConfig()
		cfg.GeminiAPIKey = ""
		gen, err := NewGenerator(log, cfg)
		require.NoError(t, err)

		_, err = gen.GenerateContent(context.Background(), testVideoURL)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	})
}

func TestCustomPromptTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Cards for {{.VideoURL}} please"), 0o600))

	cfg := testLLMConfig()
	cfg.PromptTemplatePath = path
	model := &fakeModel{resp: textResponse(genai.NewPartFromText("{}"))}
	log, _ := logger.NewTestLogger()

	gen, err := newGenerator(log, cfg, func() (modelClient, error) { return model, nil })
	require.NoError(t, err)

	_, err = gen.GenerateContent(context.Background(), testVideoURL)
	require.NoError(t, err)
	assert.Equal(t, "Cards for "+testVideoURL+" please", model.contents[0].Parts[1].Text)
}

func TestPromptTemplateUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Missing}}"), 0o600))

	tmpl, err := loadPromptTemplate(path)
	require.NoError(t, err)

	_, err = renderPrompt(tmpl, testVideoURL)
	assert.Error(t, err)
}

// TestGeneratorAgainstHTTPServer drives the real genai client against a local
// server speaking the Gemini REST protocol.
func TestGeneratorAgainstHTTPServer(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantErr  error
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"cards\":[]}"}]},"finishReason":"STOP"}]}`,
			wantText: `{"cards":[]}`,
		},
		{
			name:    "quota exhausted",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`,
			wantErr: generation.ErrRateLimited,
		},
		{
			name:    "bad key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantErr: generation.ErrInvalidConfig,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`,
			wantErr: generation.ErrGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			var gotPath, gotKey string
			var gotBody map[string]any

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				gotPath = r.URL.Path
				gotKey = r.Header.Get("x-goog-api-key")
				raw, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(raw, &gotBody)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			log, _ := logger.NewTestLogger()
			gen, err := NewGenerator(log, testLLMConfig(), WithBaseURL(srv.URL+"/"))
			require.NoError(t, err)

			text, err := gen.GenerateContent(context.Background(), testVideoURL)

			assert.Equal(t, int32(1), requests.Load())
			assert.True(t, strings.HasSuffix(gotPath, "/models/gemini-test:generateContent"), gotPath)
			assert.Equal(t, "test-key", gotKey)
			assert.Contains(t, gotBody, "contents")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestGenerateContentHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	// Cleanups run in reverse order: release the handler, then close.
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	log, _ := logger.NewTestLogger()
	gen, err := NewGenerator(log, testLLMConfig(), WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = gen.GenerateContent(ctx, testVideoURL)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

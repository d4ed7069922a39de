package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/levelup-labs/jobscout/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	retryBaseDelay    = 2 * time.Second
)

// generateFunc is the seam between the Generator and the genai SDK.
type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

var wait = utils.WaitFor

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	modelName  string
	maxRetries int
	logger     *zap.Logger
	generate   generateFunc
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// Temporary API failures are retried up to maxRetries times with backoff.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
		generate: func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		},
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual response. An empty response is an error.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.generate == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = g.generate(ctx, g.modelName, prompt)
		if err == nil {
			break
		}

		if attempt >= g.maxRetries || !isTemporary(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		delay := retryBaseDelay * time.Duration(attempt+1)
		g.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return "", fmt.Errorf("generate content: %w", waitErr)
		}
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// isTemporary reports whether the API error is worth retrying.
func isTemporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

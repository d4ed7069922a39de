package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func stubGenerator(t *testing.T, responses []*genai.GenerateContentResponse, errs []error) (*Generator, *int) {
	t.Helper()

	calls := 0
	gen := &Generator{
		modelName:  "stub-model",
		maxRetries: 2,
		logger:     zap.NewNop(),
		generate: func(_ context.Context, _, _ string) (*genai.GenerateContentResponse, error) {
			if calls >= len(responses) {
				t.Fatalf("unexpected call %d", calls+1)
			}
			resp, err := responses[calls], errs[calls]
			calls++
			return resp, err
		},
	}
	return gen, &calls
}

func TestGenerateContentRetriesOnTemporaryError(t *testing.T) {
	originalWait := wait
	wait = func(context.Context, time.Duration) error { return nil }
	defer func() { wait = originalWait }()

	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	gen, calls := stubGenerator(t,
		[]*genai.GenerateContentResponse{nil, textResponse("hello")},
		[]error{tempErr, nil},
	)

	out, err := gen.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Fatalf("unexpected output: %q", out)
	}
	if *calls != 2 {
		t.Fatalf("expected 2 calls, got %d", *calls)
	}
}

func TestGenerateContentDoesNotRetryPermanentError(t *testing.T) {
	permErr := genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	gen, calls := stubGenerator(t,
		[]*genai.GenerateContentResponse{nil},
		[]error{permErr},
	)

	_, err := gen.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if *calls != 1 {
		t.Fatalf("expected 1 call, got %d", *calls)
	}
}

func TestGenerateContentStopsAfterMaxRetries(t *testing.T) {
	originalWait := wait
	wait = func(context.Context, time.Duration) error { return nil }
	defer func() { wait = originalWait }()

	tempErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	gen, calls := stubGenerator(t,
		[]*genai.GenerateContentResponse{nil, nil, nil},
		[]error{tempErr, tempErr, tempErr},
	)

	_, err := gen.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if *calls != 3 {
		t.Fatalf("expected 3 calls, got %d", *calls)
	}
}

func TestGenerateContentEmptyResponse(t *testing.T) {
	gen, _ := stubGenerator(t,
		[]*genai.GenerateContentResponse{textResponse("   ")},
		[]error{nil},
	)

	_, err := gen.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected an error for empty response")
	}
}

func TestGenerateContentConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: "first"}, {Text: "  "}, {Text: "second"}},
			},
		}},
	}
	gen, _ := stubGenerator(t, []*genai.GenerateContentResponse{resp}, []error{nil})

	out, err := gen.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "first\nsecond" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	gen, calls := stubGenerator(t, nil, nil)

	if _, err := gen.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for empty prompt")
	}
	if *calls != 0 {
		t.Fatalf("expected no calls, got %d", *calls)
	}
}

func TestIsTemporary(t *testing.T) {
	if isTemporary(errors.New("plain")) {
		t.Fatalf("plain errors are not temporary")
	}
	if !isTemporary(genai.APIError{Code: http.StatusServiceUnavailable}) {
		t.Fatalf("503 should be temporary")
	}
	if isTemporary(genai.APIError{Code: http.StatusUnauthorized}) {
		t.Fatalf("401 should not be temporary")
	}
}

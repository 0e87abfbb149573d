package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// newStubbedOpenAI returns an OpenAIProvider pointed at a stub endpoint.
func newStubbedOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  "gpt-3.5-turbo-instruct",
	}
}

func TestOpenAICompleteEndToEnd(t *testing.T) {
	var gotBody map[string]any
	provider := newStubbedOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-test",
			"object":  "text_completion",
			"created": 1589478378,
			"model":   "gpt-3.5-turbo-instruct",
			"choices": []map[string]any{
				{"text": "\n\nThis is a test", "index": 0, "finish_reason": "length"},
			},
			"usage": map[string]any{
				"prompt_tokens":     5,
				"completion_tokens": 6,
				"total_tokens":      11,
			},
		})
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Prompt:      "Say this is a test",
		Temperature: 0,
		MaxTokens:   6,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if gotBody["prompt"] != "Say this is a test" {
		t.Errorf("request prompt = %v, want %q", gotBody["prompt"], "Say this is a test")
	}
	if gotBody["max_tokens"] != float64(6) {
		t.Errorf("request max_tokens = %v, want 6", gotBody["max_tokens"])
	}

	if resp.ID != "cmpl-test" {
		t.Errorf("response id = %q, want %q", resp.ID, "cmpl-test")
	}
	if len(resp.Choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(resp.Choices))
	}
	if resp.Choices[0].FinishReason != "length" {
		t.Errorf("finish reason = %q, want %q", resp.Choices[0].FinishReason, "length")
	}

	text, err := FirstText(resp)
	if err != nil {
		t.Fatalf("FirstText failed: %v", err)
	}
	if text != "This is a test" {
		t.Errorf("extracted text = %q, want %q", text, "This is a test")
	}
}

func TestOpenAICompletePreservesCandidateOrder(t *testing.T) {
	provider := newStubbedOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-multi",
			"object":  "text_completion",
			"created": 1589478378,
			"model":   "gpt-3.5-turbo-instruct",
			"choices": []map[string]any{
				{"text": "first", "index": 0, "finish_reason": "stop"},
				{"text": "second", "index": 1, "finish_reason": "stop"},
			},
		})
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if len(resp.Choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(resp.Choices))
	}
	if resp.Choices[0].Text != "first" || resp.Choices[1].Text != "second" {
		t.Errorf("candidate order not preserved: %+v", resp.Choices)
	}
}

func TestOpenAICompleteLogProbs(t *testing.T) {
	provider := newStubbedOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-lp",
			"object":  "text_completion",
			"created": 1589478378,
			"model":   "gpt-3.5-turbo-instruct",
			"choices": []map[string]any{
				{
					"text":          " rising",
					"index":         0,
					"finish_reason": "stop",
					"logprobs": map[string]any{
						"tokens":         []string{" rising"},
						"token_logprobs": []float64{-0.12},
					},
				},
			},
		})
	})

	resp, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "p", LogProbs: 1})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	lp := resp.Choices[0].LogProbs
	if lp == nil {
		t.Fatal("expected logprobs on first choice")
	}
	if len(lp.Tokens) != 1 || lp.Tokens[0] != " rising" {
		t.Errorf("unexpected tokens: %v", lp.Tokens)
	}
	if len(lp.TokenLogprobs) != 1 || lp.TokenLogprobs[0] != -0.12 {
		t.Errorf("unexpected token logprobs: %v", lp.TokenLogprobs)
	}
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "invalid_request_error",
		},
	})
}

func TestOpenAIErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ErrAuth},
		{"rate_limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server_error", http.StatusInternalServerError, ErrTransport},
		{"bad_gateway", http.StatusBadGateway, ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newStubbedOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, tt.status, "stub failure")
			})

			_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "p"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: expected %v in chain, got %v", tt.status, tt.want, err)
			}
		})
	}
}

func TestOpenAIConnectionRefusedIsTransport(t *testing.T) {
	cfg := openai.DefaultConfig("test-key")
	// Reserved TEST-NET address; nothing listens here.
	cfg.BaseURL = "http://192.0.2.1:1/v1"
	cfg.HTTPClient = &http.Client{Timeout: 200 * time.Millisecond}

	provider := &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  "gpt-3.5-turbo-instruct",
	}

	_, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "p"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

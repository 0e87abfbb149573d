package llm

import (
	"context"
	"strconv"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI Completions API
// (the legacy /v1/completions endpoint, which accepts a raw prompt
// string rather than a chat transcript).
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	apiReq := openai.CompletionRequest{
		Model:       pickModel(req.Model, p.model),
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
		Stop:        req.Stop,
		LogProbs:    req.LogProbs,
	}

	resp, err := p.client.CreateCompletion(ctx, apiReq)
	if err != nil {
		return nil, wrapAPIError(p.Name(), err)
	}

	return fromOpenAIResponse(resp), nil
}

// fromOpenAIResponse converts a go-openai completion response to the
// neutral CompletionResponse, preserving candidate order.
func fromOpenAIResponse(resp openai.CompletionResponse) *CompletionResponse {
	out := &CompletionResponse{
		ID:      resp.ID,
		Created: int64(resp.Created),
		Model:   resp.Model,
	}
	if resp.Usage != nil {
		out.InputTokens = resp.Usage.PromptTokens
		out.OutputTokens = resp.Usage.CompletionTokens
	}
	for _, c := range resp.Choices {
		choice := Choice{
			Index:        c.Index,
			Text:         c.Text,
			FinishReason: c.FinishReason,
		}
		if len(c.LogProbs.Tokens) > 0 {
			logprobs := make([]float64, len(c.LogProbs.TokenLogprobs))
			for i, lp := range c.LogProbs.TokenLogprobs {
				// The client library decodes logprobs as float32; widen via
				// the shortest decimal representation so JSON-sourced values
				// like -0.12 survive the round trip exactly.
				f, err := strconv.ParseFloat(strconv.FormatFloat(float64(lp), 'g', -1, 32), 64)
				if err != nil {
					f = float64(lp)
				}
				logprobs[i] = f
			}
			choice.LogProbs = &LogProbs{
				Tokens:        c.LogProbs.Tokens,
				TokenLogprobs: logprobs,
			}
		}
		out.Choices = append(out.Choices, choice)
	}
	return out
}

// pickModel returns the per-request model override if set, otherwise
// the provider default.
func pickModel(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}

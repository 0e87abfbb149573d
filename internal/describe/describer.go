// Package describe orchestrates the single-shot description flow:
// render a prompt for a series, issue one completion call, extract the
// first candidate's text.
package describe

import (
	"context"
	"fmt"
	"time"

	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/prompt"
	"github.com/ziadkadry99/trendtell/internal/series"
)

// Options holds per-describer generation settings.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	LogProbs    int
}

// Result is the outcome of one description run.
type Result struct {
	Series       series.Series
	Labels       series.LabelMode
	Prompt       string
	Description  string
	Provider     string
	Model        string
	FinishReason string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Elapsed      time.Duration
}

// Recorder persists description runs. The history store implements it.
type Recorder interface {
	Record(ctx context.Context, res Result) error
}

// Describer ties a prompt builder to a completion provider. Calls are
// strictly sequential from the caller's point of view: each Describe
// blocks until the response or failure arrives.
type Describer struct {
	builder  prompt.Builder
	provider llm.Provider
	opts     Options
	recorder Recorder
}

// New creates a Describer. A zero Options.MaxTokens defaults to 64,
// which comfortably fits a one-sentence description; a zero Timeout
// defaults to 30 seconds so a call can never hang unbounded.
func New(builder prompt.Builder, provider llm.Provider, opts Options) *Describer {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 64
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Describer{
		builder:  builder,
		provider: provider,
		opts:     opts,
	}
}

// WithRecorder attaches a run recorder. A recording failure is
// returned alongside the result, so callers can warn without losing
// the description.
func (d *Describer) WithRecorder(rec Recorder) *Describer {
	d.recorder = rec
	return d
}

// Prompt returns the exact prompt that Describe would send for the
// given series, for dry runs and cost estimation.
func (d *Describer) Prompt(target series.Series) string {
	return d.builder.Render(target)
}

// Describe runs the full flow for one series.
func (d *Describer) Describe(ctx context.Context, target series.Series) (*Result, error) {
	rendered := d.builder.Render(target)

	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := d.provider.Complete(ctx, llm.CompletionRequest{
		Model:       d.opts.Model,
		Prompt:      rendered,
		Temperature: d.opts.Temperature,
		MaxTokens:   d.opts.MaxTokens,
		LogProbs:    d.opts.LogProbs,
	})
	if err != nil {
		return nil, fmt.Errorf("completing prompt: %w", err)
	}

	text, err := llm.FirstText(resp)
	if err != nil {
		return nil, fmt.Errorf("extracting description: %w", err)
	}

	res := &Result{
		Series:       target,
		Labels:       d.builder.Labels,
		Prompt:       rendered,
		Description:  text,
		Provider:     d.provider.Name(),
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		CostUSD:      llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens),
		Elapsed:      time.Since(start),
	}
	if len(resp.Choices) > 0 {
		res.FinishReason = resp.Choices[0].FinishReason
	}

	if d.recorder != nil {
		if err := d.recorder.Record(ctx, *res); err != nil {
			return res, fmt.Errorf("recording run: %w", err)
		}
	}

	return res, nil
}

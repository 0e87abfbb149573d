package describe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/prompt"
	"github.com/ziadkadry99/trendtell/internal/series"
)

func TestDescribeEndToEnd(t *testing.T) {
	mock := llm.NewMockProvider("test")
	mock.Response = &llm.CompletionResponse{
		ID:    "cmpl-1",
		Model: "mock-model",
		Choices: []llm.Choice{
			{Index: 0, Text: "\n The numbers rise steadily over the week. ", FinishReason: "stop"},
		},
		InputTokens:  40,
		OutputTokens: 9,
	}

	d := New(prompt.Builder{}, mock, Options{MaxTokens: 32})
	target := series.FromInts([]int{132, 329, 583, 743, 966, 1123, 1298})

	res, err := d.Describe(context.Background(), target)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if res.Description != "The numbers rise steadily over the week." {
		t.Errorf("description = %q", res.Description)
	}
	if res.FinishReason != "stop" {
		t.Errorf("finish reason = %q, want stop", res.FinishReason)
	}
	if res.InputTokens != 40 || res.OutputTokens != 9 {
		t.Errorf("token counts = %d/%d, want 40/9", res.InputTokens, res.OutputTokens)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected exactly 1 call, got %d", mock.CallCount())
	}
	sent := mock.Calls[0]
	if !strings.Contains(sent.Prompt, "132, 329, 583, 743, 966, 1123, 1298") {
		t.Errorf("sent prompt missing series values:\n%s", sent.Prompt)
	}
	if !strings.HasSuffix(sent.Prompt, "Trend:") {
		t.Errorf("sent prompt must end with the trend label:\n%s", sent.Prompt)
	}
	if sent.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", sent.Temperature)
	}
	if sent.MaxTokens != 32 {
		t.Errorf("max tokens = %d, want 32", sent.MaxTokens)
	}
}

func TestDescribeDefaults(t *testing.T) {
	mock := llm.NewMockProvider("test")
	d := New(prompt.Builder{}, mock, Options{})

	if _, err := d.Describe(context.Background(), series.FromInts([]int{1, 2, 3})); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if mock.Calls[0].MaxTokens != 64 {
		t.Errorf("default max tokens = %d, want 64", mock.Calls[0].MaxTokens)
	}
}

func TestDescribePropagatesProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider("test")
	mock.Errs = []error{errors.New("boom")}
	d := New(prompt.Builder{}, mock, Options{})

	_, err := d.Describe(context.Background(), series.FromInts([]int{1, 2, 3}))
	if err == nil {
		t.Fatal("expected provider failure to propagate")
	}
}

func TestDescribeEmptyCandidateList(t *testing.T) {
	mock := llm.NewMockProvider("test")
	mock.Response = &llm.CompletionResponse{ID: "cmpl-empty", Model: "mock-model"}
	d := New(prompt.Builder{}, mock, Options{})

	_, err := d.Describe(context.Background(), series.FromInts([]int{1, 2, 3}))
	if !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestPromptMatchesDescribe(t *testing.T) {
	mock := llm.NewMockProvider("test")
	b := prompt.Builder{Examples: prompt.DefaultExamples(), Labels: series.LabelDayLetter}
	d := New(b, mock, Options{})
	target := series.FromInts([]int{55, 54, 57, 5643, 56, 55, 54})

	dry := d.Prompt(target)
	if _, err := d.Describe(context.Background(), target); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if mock.Calls[0].Prompt != dry {
		t.Error("Prompt() and the sent prompt differ")
	}
}

type captureRecorder struct {
	runs []Result
	err  error
}

func (c *captureRecorder) Record(ctx context.Context, res Result) error {
	c.runs = append(c.runs, res)
	return c.err
}

func TestDescribeRecordsRun(t *testing.T) {
	mock := llm.NewMockProvider("test")
	rec := &captureRecorder{}
	d := New(prompt.Builder{}, mock, Options{}).WithRecorder(rec)

	res, err := d.Describe(context.Background(), series.FromInts([]int{5, 6, 7}))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if len(rec.runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(rec.runs))
	}
	if rec.runs[0].Description != res.Description {
		t.Error("recorded run differs from returned result")
	}
}

func TestDescribeRecorderFailureStillReturnsResult(t *testing.T) {
	mock := llm.NewMockProvider("test")
	rec := &captureRecorder{err: errors.New("disk full")}
	d := New(prompt.Builder{}, mock, Options{}).WithRecorder(rec)

	res, err := d.Describe(context.Background(), series.FromInts([]int{5, 6, 7}))
	if err == nil {
		t.Fatal("expected recording error to surface")
	}
	if res == nil || res.Description == "" {
		t.Error("result should still be returned alongside the recording error")
	}
}

package llm

// CompletionRequest contains the parameters for a single-shot text
// completion. Constructed fresh per call; never reused.
type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64 // 0 selects greedy decoding
	MaxTokens   int     // maximum output length in the model's token unit
	Stop        []string
	LogProbs    int // per-token logprob diagnostics to request; 0 disables
}

// Choice is a single candidate completion.
type Choice struct {
	Index        int
	Text         string
	FinishReason string // "stop" for natural end, "length" when truncated
	LogProbs     *LogProbs
}

// LogProbs carries optional per-token diagnostics, present only when
// the request asked for them and the provider supports them.
type LogProbs struct {
	Tokens        []string
	TokenLogprobs []float64
}

// CompletionResponse is the full structured reply from a provider:
// ordered candidates plus response metadata. Callers typically consume
// only the first candidate via FirstText.
type CompletionResponse struct {
	ID           string
	Created      int64
	Model        string
	Choices      []Choice
	InputTokens  int
	OutputTokens int
}

package history

import (
	"time"

	"github.com/ziadkadry99/trendtell/internal/series"
)

// Run is one recorded description run.
type Run struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	Series       string       `json:"series"`
	Labels       string       `json:"labels"`
	Prompt       string       `json:"prompt"`
	Description  string       `json:"description"`
	Provider     string       `json:"provider"`
	Model        string       `json:"model"`
	FinishReason string       `json:"finish_reason"`
	InputTokens  int          `json:"input_tokens"`
	OutputTokens int          `json:"output_tokens"`
	CostUSD      float64      `json:"cost_usd"`
	ElapsedMS    int64        `json:"elapsed_ms"`
	Stats        series.Stats `json:"stats"`
}

// QueryFilter narrows List results.
type QueryFilter struct {
	Model  string
	Since  *time.Time
	Limit  int
	Offset int
}

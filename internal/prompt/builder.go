// Package prompt renders numeric series into completion prompts for
// trend description. Rendering is pure string formatting: the same
// inputs always produce byte-identical output.
package prompt

import (
	"strings"

	"github.com/ziadkadry99/trendtell/internal/series"
)

// DefaultInstruction is the task instruction used when none is configured.
const DefaultInstruction = "Summarize the trend of the list of numbers in one sentence."

// trendLabel is the continuation label the model completes after.
const trendLabel = "Trend:"

// numbersLabel introduces each series line in the template.
const numbersLabel = "Numbers:"

// Example pairs a series with a reference trend description, used to
// steer the model via few-shot demonstration.
type Example struct {
	Series      series.Series
	Description string
}

// Builder renders prompts from an instruction, an ordered example set,
// and a label mode. The zero value renders zero-shot prompts with the
// default instruction and unlabeled numbers.
type Builder struct {
	Instruction string
	Examples    []Example
	Labels      series.LabelMode
}

// Render produces the full prompt for the target series. The output
// ends with the trend label and an empty continuation point for the
// model to complete.
func (b Builder) Render(target series.Series) string {
	instruction := b.Instruction
	if instruction == "" {
		instruction = DefaultInstruction
	}

	var sb strings.Builder
	sb.WriteString(instruction)
	sb.WriteString("\n")

	for _, ex := range b.Examples {
		sb.WriteString("\n")
		writeSeriesLine(&sb, ex.Series, b.Labels)
		sb.WriteString(trendLabel)
		sb.WriteString(" ")
		sb.WriteString(ex.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	writeSeriesLine(&sb, target, b.Labels)
	sb.WriteString(trendLabel)
	return sb.String()
}

func writeSeriesLine(sb *strings.Builder, s series.Series, mode series.LabelMode) {
	sb.WriteString(numbersLabel)
	sb.WriteString(" ")
	sb.WriteString(s.Format(mode))
	sb.WriteString("\n")
}

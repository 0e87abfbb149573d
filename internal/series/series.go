package series

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelMode controls how values are labeled when a series is formatted
// into prompt text.
type LabelMode string

const (
	// LabelNone formats values as a plain comma-separated list.
	LabelNone LabelMode = "none"
	// LabelDayLetter prefixes each value with a single-letter weekday
	// label (M, T, W, T, F, S, S). Labels are positional only: Tuesday
	// and Thursday share "T", Saturday and Sunday share "S". This
	// mirrors how weekly bar charts are commonly labeled and is known
	// to be ambiguous; see LabelDayShort for the unambiguous variant.
	LabelDayLetter LabelMode = "day-letter"
	// LabelDayShort prefixes each value with a three-letter weekday
	// abbreviation (Mon..Sun), removing the Tuesday/Thursday and
	// Saturday/Sunday collision of LabelDayLetter.
	LabelDayShort LabelMode = "day-short"
)

// dayLetters are the positional single-letter weekday labels, Monday first.
var dayLetters = []string{"M", "T", "W", "T", "F", "S", "S"}

// dayShort are the three-letter weekday abbreviations, Monday first.
var dayShort = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseLabelMode converts a user-supplied string to a LabelMode.
func ParseLabelMode(s string) (LabelMode, error) {
	switch LabelMode(s) {
	case LabelNone, LabelDayLetter, LabelDayShort:
		return LabelMode(s), nil
	case "":
		return LabelNone, nil
	default:
		return "", fmt.Errorf("unknown label mode %q: must be one of none, day-letter, day-short", s)
	}
}

// Series is an ordered sequence of numeric values, typically one per day
// of a calendar week. It is a value type: construct once, never mutate.
type Series struct {
	values []float64
}

// New creates a Series from the given values. The slice is copied.
func New(values []float64) Series {
	v := make([]float64, len(values))
	copy(v, values)
	return Series{values: v}
}

// FromInts creates a Series from integer values.
func FromInts(values []int) Series {
	v := make([]float64, len(values))
	for i, n := range values {
		v[i] = float64(n)
	}
	return Series{values: v}
}

// Parse reads a comma-separated list of numbers, e.g. "132, 329, 583".
// Whitespace around each value is ignored. An empty input is an error.
func Parse(text string) (Series, error) {
	parts := strings.Split(text, ",")
	var values []float64
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Series{}, fmt.Errorf("parsing series value %q: %w", part, err)
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return Series{}, fmt.Errorf("series is empty")
	}
	return Series{values: values}, nil
}

// Len returns the number of values in the series.
func (s Series) Len() int { return len(s.values) }

// Values returns a copy of the underlying values.
func (s Series) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// At returns the value at index i.
func (s Series) At(i int) float64 { return s.values[i] }

// Format renders the series as prompt text using the given label mode.
// Formatting is pure: the same series and mode always produce the same
// string. Day labels are assigned positionally starting from Monday and
// repeat if the series is longer than seven values; no length validation
// is performed.
func (s Series) Format(mode LabelMode) string {
	var b strings.Builder
	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		switch mode {
		case LabelDayLetter:
			b.WriteString(dayLetters[i%len(dayLetters)])
			b.WriteString(": ")
		case LabelDayShort:
			b.WriteString(dayShort[i%len(dayShort)])
			b.WriteString(": ")
		}
		b.WriteString(formatValue(v))
	}
	return b.String()
}

// String renders the series as a plain comma-separated list.
func (s Series) String() string { return s.Format(LabelNone) }

// formatValue renders a float without a trailing ".0" for whole numbers,
// matching how hand-written series appear in chart data.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package llm

import "strings"

// FirstText returns the first candidate's text, trimmed of the leading
// and trailing whitespace completion models conventionally emit. All
// other candidates are ignored. Returns ErrEmptyResponse when the
// candidate list is empty; the provider schema does not guarantee at
// least one candidate under all configurations.
func FirstText(resp *CompletionResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Text), nil
}

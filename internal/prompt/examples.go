package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/trendtell/internal/series"
)

// DefaultExamples returns the curated three-example few-shot set: a
// steady rise, a sharp fall, and a flat week with a single spike. The
// set is ordered; order is part of the prompt contract.
func DefaultExamples() []Example {
	return []Example{
		{
			Series:      series.FromInts([]int{40, 42, 41, 43, 44, 45, 46}),
			Description: "The numbers rise slightly and steadily over the week.",
		},
		{
			Series:      series.FromInts([]int{900, 750, 620, 500, 430, 300, 250}),
			Description: "The numbers fall sharply across the week, ending at less than a third of where they started.",
		},
		{
			Series:      series.FromInts([]int{18, 20, 19, 95, 21, 20, 22}),
			Description: "The numbers hold steady except for a single large spike in the middle of the week.",
		},
	}
}

// exampleFile is the YAML shape of a custom example set.
type exampleFile struct {
	Examples []exampleEntry `yaml:"examples"`
}

type exampleEntry struct {
	Values      []float64 `yaml:"values"`
	Description string    `yaml:"description"`
}

// LoadExamples reads a custom example set from a YAML file:
//
//	examples:
//	  - values: [40, 42, 41, 43, 44, 45, 46]
//	    description: The numbers rise slightly and steadily over the week.
func LoadExamples(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading examples file %s: %w", path, err)
	}

	var f exampleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing examples file %s: %w", path, err)
	}

	examples := make([]Example, 0, len(f.Examples))
	for i, e := range f.Examples {
		if len(e.Values) == 0 {
			return nil, fmt.Errorf("examples file %s: example %d has no values", path, i+1)
		}
		if e.Description == "" {
			return nil, fmt.Errorf("examples file %s: example %d has no description", path, i+1)
		}
		examples = append(examples, Example{
			Series:      series.New(e.Values),
			Description: e.Description,
		})
	}
	return examples, nil
}

package series

import (
	"math"
	"sort"
)

// Direction classifies the overall movement of a series.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionFlat    Direction = "flat"
	DirectionMixed   Direction = "mixed"
)

// Stats holds descriptive statistics for a series. These annotate
// description runs in the history store and HTTP API; the language model
// never sees them.
type Stats struct {
	Min          float64   `json:"min"`
	Max          float64   `json:"max"`
	Mean         float64   `json:"mean"`
	Median       float64   `json:"median"`
	NetChange    float64   `json:"net_change"`
	Direction    Direction `json:"direction"`
	OutlierIndex int       `json:"outlier_index"` // -1 when no outlier
}

// Describe computes descriptive statistics for the series. An empty
// series yields the zero Stats with OutlierIndex -1.
func (s Series) Describe() Stats {
	stats := Stats{OutlierIndex: -1}
	if len(s.values) == 0 {
		return stats
	}

	stats.Min = s.values[0]
	stats.Max = s.values[0]
	var sum float64
	for _, v := range s.values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Mean = sum / float64(len(s.values))
	stats.Median = median(s.values)
	stats.NetChange = s.values[len(s.values)-1] - s.values[0]
	stats.Direction = s.direction()
	stats.OutlierIndex = s.outlierIndex(stats.Median)
	return stats
}

// direction classifies overall movement: rising or falling when every
// step moves the same way (allowing flat steps), flat when nothing
// moves, mixed otherwise.
func (s Series) direction() Direction {
	if len(s.values) < 2 {
		return DirectionFlat
	}
	var ups, downs int
	for i := 1; i < len(s.values); i++ {
		switch {
		case s.values[i] > s.values[i-1]:
			ups++
		case s.values[i] < s.values[i-1]:
			downs++
		}
	}
	switch {
	case ups == 0 && downs == 0:
		return DirectionFlat
	case downs == 0:
		return DirectionRising
	case ups == 0:
		return DirectionFalling
	default:
		return DirectionMixed
	}
}

// outlierIndex returns the index of the value deviating most from the
// median, if that deviation exceeds three times the median absolute
// deviation. Returns -1 when no value qualifies.
func (s Series) outlierIndex(med float64) int {
	if len(s.values) < 4 {
		return -1
	}

	devs := make([]float64, len(s.values))
	for i, v := range s.values {
		devs[i] = math.Abs(v - med)
	}
	mad := median(devs)
	if mad == 0 {
		// All values identical except possible outliers; fall back to
		// a fraction of the median itself.
		mad = math.Abs(med) * 0.05
		if mad == 0 {
			return -1
		}
	}

	best, bestDev := -1, 0.0
	for i, d := range devs {
		if d > 3*mad && d > bestDev {
			best, bestDev = i, d
		}
	}
	return best
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

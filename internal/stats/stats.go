// Package stats reduces per-trial damage totals to summary statistics
package stats

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Mean returns the arithmetic mean, or 0 for no values
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// Percentile uses the nearest-rank method over values sorted descending:
// the result is the element at index ceil(p/100 * n) - 1. It reads as "p
// percent of trials dealt at least this much". Returns 0 for no values.
func Percentile(values []int, p int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []int, p int) int {
	index := int(math.Ceil(float64(p)/100*float64(len(sorted)))) - 1
	index = max(0, min(index, len(sorted)-1))
	return sorted[index]
}

// Percentiles holds the percentiles reported for a batch
type Percentiles struct {
	P50 int `json:"p50"`
	P95 int `json:"p95"`
}

// ComputePercentiles sorts once and reads both percentiles
func ComputePercentiles(values []int) Percentiles {
	if len(values) == 0 {
		return Percentiles{}
	}
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })
	return Percentiles{
		P50: percentileSorted(sorted, 50),
		P95: percentileSorted(sorted, 95),
	}
}

// Summary describes one completed batch of trials
type Summary struct {
	BatchID     string    `json:"batch_id"`
	Mean        float64   `json:"mean"`
	P50         int       `json:"p50"`
	P95         int       `json:"p95"`
	Trials      int       `json:"trials"`
	CompletedAt time.Time `json:"completed_at"`
}

// Summarize reduces wound totals to a summary
func Summarize(batchID string, wounds []int, completedAt time.Time) Summary {
	p := ComputePercentiles(wounds)
	return Summary{
		BatchID:     batchID,
		Mean:        Mean(wounds),
		P50:         p.P50,
		P95:         p.P95,
		Trials:      len(wounds),
		CompletedAt: completedAt,
	}
}

// String renders the display line, e.g. "mean=2.01, p50 = 2"
func (s Summary) String() string {
	return fmt.Sprintf("mean=%.2f, p50 = %d", s.Mean, s.P50)
}

package stats_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/arychagov/w40k/internal/stats"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, stats.Mean(nil))
	assert.Equal(t, 2.0, stats.Mean([]int{1, 2, 3}))
	assert.InDelta(t, 1.5, stats.Mean([]int{1, 2}), 1e-9)
}

func TestPercentile_NearestRank(t *testing.T) {
	// 100, 99, ..., 1
	values := make([]int, 100)
	for i := range values {
		values[i] = 100 - i
	}

	// index ceil(0.5*100)-1 = 49 -> 51; index ceil(0.95*100)-1 = 94 -> 6
	assert.Equal(t, 51, stats.Percentile(values, 50))
	assert.Equal(t, 6, stats.Percentile(values, 95))
	assert.Equal(t, 100, stats.Percentile(values, 1))
	assert.Equal(t, 1, stats.Percentile(values, 100))
}

func TestPercentile_UnsortedInput(t *testing.T) {
	values := []int{3, 9, 1, 7, 5}

	assert.Equal(t, 5, stats.Percentile(values, 50))
	assert.Equal(t, 1, stats.Percentile(values, 95))
	assert.Equal(t, []int{3, 9, 1, 7, 5}, values, "input must not be reordered")
}

func TestPercentile_Edges(t *testing.T) {
	assert.Equal(t, 0, stats.Percentile(nil, 50))
	assert.Equal(t, 4, stats.Percentile([]int{4}, 0))
	assert.Equal(t, 4, stats.Percentile([]int{4}, 95))
}

func TestComputePercentiles(t *testing.T) {
	p := stats.ComputePercentiles([]int{0, 0, 1, 2, 2, 3, 4, 4, 5, 8})

	assert.Equal(t, 3, p.P50)
	assert.Equal(t, 0, p.P95)
	assert.Equal(t, stats.Percentiles{}, stats.ComputePercentiles(nil))
}

func TestSummarize(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	summary := stats.Summarize("batch-1", []int{1, 2, 3, 4}, at)

	assert.Equal(t, "batch-1", summary.BatchID)
	assert.Equal(t, 2.5, summary.Mean)
	assert.Equal(t, 3, summary.P50)
	assert.Equal(t, 1, summary.P95)
	assert.Equal(t, 4, summary.Trials)
	assert.Equal(t, at, summary.CompletedAt)
	assert.Equal(t, "mean=2.50, p50 = 3", summary.String())
}

func TestSummaryString(t *testing.T) {
	assert.Equal(t, "mean=2.00, p50 = 2", stats.Summary{Mean: 1.996, P50: 2}.String())
	assert.Equal(t, "mean=0.00, p50 = 0", stats.Summary{}.String())
}

func TestPercentileMatchesFormula(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 50), 1, 200).Draw(rt, "values")
		p := rapid.IntRange(1, 100).Draw(rt, "p")

		got := stats.Percentile(values, p)

		// count of values >= got must reach the rank, and values > got must not
		rank := int(math.Ceil(float64(p) / 100 * float64(len(values))))
		atLeast, above := 0, 0
		for _, v := range values {
			if v >= got {
				atLeast++
			}
			if v > got {
				above++
			}
		}
		if atLeast < rank || above >= rank {
			rt.Fatalf("percentile %d of %v = %d, rank %d", p, values, got, rank)
		}
	})
}

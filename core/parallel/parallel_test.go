package parallel

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryItemOnce(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"zero", 0},
		{"one", 1},
		{"odd", 1237},
		{"large", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("item %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)
}

func TestSumRows(t *testing.T) {
	for _, items := range []int{0, 5, DefaultThreshold, 5003} {
		got := SumRows(items, 2, DefaultThreshold, func(start, end int, acc []float64) {
			for i := start; i < end; i++ {
				acc[0] += float64(i)
				acc[1]++
			}
		})

		want := float64(items) * float64(items-1) / 2
		if items == 0 {
			want = 0
		}
		assert.InDelta(t, want, got[0], 1e-6, "items=%d", items)
		assert.Equal(t, float64(items), got[1], "items=%d", items)
	}
}

func TestSumRowsIsReproducible(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	values := make([]float64, 20011)
	for i := range values {
		// mixed magnitudes make the sum order-sensitive
		values[i] = rng.NormFloat64() * float64(int64(1)<<uint(rng.IntN(40)))
	}

	sum := func() []float64 {
		return SumRows(len(values), 1, DefaultThreshold, func(start, end int, acc []float64) {
			for i := start; i < end; i++ {
				acc[0] += values[i]
			}
		})
	}

	want := sum()
	for run := 0; run < 50; run++ {
		got := sum()
		if got[0] != want[0] {
			t.Fatalf("run %d: sum %v differs from %v", run, got[0], want[0])
		}
	}

	// same chunk boundaries added in row order
	size := chunkSize(len(values))
	var ordered float64
	for start := 0; start < len(values); start += size {
		var part float64
		for i := start; i < start+size && i < len(values); i++ {
			part += values[i]
		}
		ordered += part
	}
	assert.Equal(t, ordered, want[0])
}

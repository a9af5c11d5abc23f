// Package distance provides pointwise and elastic distance measures
// between univariate series.
package distance

import "math"

// Measure computes the distance between two series. Implementations must
// accept series of different lengths or return +Inf when they cannot.
type Measure func(a, b []float64) float64

// Euclidean is the pointwise L2 distance. Series of different lengths are
// incomparable under it, so it returns +Inf for them.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean skips the final square root. Monotone in Euclidean, so
// nearest-neighbor rankings are identical and slightly cheaper.
func SquaredEuclidean(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// DTW is the unconstrained dynamic time warping distance. It aligns series
// of different lengths by warping the time axis and accumulates squared
// pointwise costs along the optimal path.
func DTW(a, b []float64) float64 {
	return dtw(a, b, -1)
}

// DTWBand returns a DTW measure constrained to a Sakoe-Chiba band of the
// given radius. Cells further than radius from the diagonal are never
// visited, which bounds both warping and cost. Radius < 0 means no band.
func DTWBand(radius int) Measure {
	return func(a, b []float64) float64 {
		return dtw(a, b, radius)
	}
}

func dtw(a, b []float64, radius int) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		if n == m {
			return 0
		}
		return math.Inf(1)
	}
	// A band narrower than the length difference admits no path.
	if radius >= 0 && abs(n-m) > radius {
		return math.Inf(1)
	}

	// Two rolling rows keep the cost matrix O(m) in memory.
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := range prev {
		prev[j] = math.Inf(1)
	}
	prev[0] = 0

	for i := 1; i <= n; i++ {
		curr[0] = math.Inf(1)
		lo, hi := 1, m
		if radius >= 0 {
			if l := i - radius; l > lo {
				lo = l
			}
			if h := i + radius; h < hi {
				hi = h
			}
		}
		for j := 1; j < lo; j++ {
			curr[j] = math.Inf(1)
		}
		for j := hi + 1; j <= m; j++ {
			curr[j] = math.Inf(1)
		}
		for j := lo; j <= hi; j++ {
			d := a[i-1] - b[j-1]
			cost := d * d
			curr[j] = cost + min3(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return math.Sqrt(prev[m])
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

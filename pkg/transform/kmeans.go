package transform

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"tsml/errors"
	"tsml/pkg/data"
	"tsml/pkg/distance"
)

// KMeansFeatures clusters the training rows with k-means++ seeding and
// Lloyd iterations, then maps each row to its distance from every learned
// centroid. The output is a K-wide table, which turns a linear estimator
// into a radial one and also works as dimensionality reduction.
type KMeansFeatures struct {
	K       int
	MaxIter int
	Seed    int64

	Centroids [][]float64
	Inertia   float64 // sum of squared distances at the last assignment

	fit bool
}

func NewKMeansFeatures(k int) *KMeansFeatures {
	return &KMeansFeatures{
		K:       k,
		MaxIter: 100,
		Seed:    time.Now().UnixNano(),
	}
}

func (km *KMeansFeatures) Fit(d data.Dataset, _ data.Labels) error {
	if km.K <= 0 {
		return errors.Configurationf("kmeans: clusters must be positive, got %d", km.K)
	}
	if km.MaxIter < 1 {
		return errors.Configurationf("kmeans: need at least one iteration, got %d", km.MaxIter)
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if rows == 0 || cols == 0 {
		return errors.ShapeMismatchf("kmeans: empty table")
	}
	if rows < km.K {
		return errors.Configurationf("kmeans: %d clusters from %d rows", km.K, rows)
	}

	X := make([][]float64, rows)
	for i := range X {
		X[i] = table.Row(i)
	}
	rnd := rand.New(rand.NewSource(km.Seed))
	km.Centroids = seedCentroids(X, km.K, rnd)

	assign := make([]int, rows)
	for i := range assign {
		assign[i] = -1
	}
	for it := 0; it < km.MaxIter; it++ {
		next, inertia := km.assignAll(X)
		km.Inertia = inertia

		changed := false
		for i := range next {
			if next[i] != assign[i] {
				changed = true
			}
			assign[i] = next[i]
		}
		if !changed {
			break
		}

		sums := make([][]float64, km.K)
		counts := make([]int, km.K)
		for k := range sums {
			sums[k] = make([]float64, cols)
		}
		for i, k := range assign {
			counts[k]++
			for j, v := range X[i] {
				sums[k][j] += v
			}
		}
		for k, c := range counts {
			if c == 0 {
				// Empty clusters keep their centroid.
				continue
			}
			for j := range sums[k] {
				km.Centroids[k][j] = sums[k][j] / float64(c)
			}
		}
	}

	km.fit = true
	return nil
}

func (km *KMeansFeatures) Transform(d data.Dataset) (data.Dataset, error) {
	if !km.fit {
		return nil, errors.NotFittedf("kmeans: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != len(km.Centroids[0]) {
		return nil, errors.ShapeMismatchf("kmeans: fitted on %d features, got %d", len(km.Centroids[0]), got)
	}
	rows := make([][]float64, table.NumInstances())
	for i := range rows {
		x := table.Row(i)
		row := make([]float64, km.K)
		for k, c := range km.Centroids {
			row[k] = distance.Euclidean(x, c)
		}
		rows[i] = row
	}
	return data.NewTable(rows)
}

// assignAll finds each row's nearest centroid, splitting the rows over the
// available cores.
func (km *KMeansFeatures) assignAll(X [][]float64) ([]int, float64) {
	n := len(X)
	assign := make([]int, n)
	dists := make([]float64, n)

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				best, bestD := 0, math.MaxFloat64
				for k, c := range km.Centroids {
					if d := distance.SquaredEuclidean(X[i], c); d < bestD {
						best, bestD = k, d
					}
				}
				assign[i] = best
				dists[i] = bestD
			}
		}(start, end)
	}
	wg.Wait()

	inertia := 0.0
	for _, d := range dists {
		inertia += d
	}
	return assign, inertia
}

// seedCentroids picks initial centers k-means++ style: the first uniformly,
// the rest weighted by squared distance to the nearest chosen center.
func seedCentroids(X [][]float64, k int, rnd *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), X[rnd.Intn(len(X))]...))

	distSq := make([]float64, len(X))
	for len(centroids) < k {
		total := 0.0
		for i, x := range X {
			best := math.MaxFloat64
			for _, c := range centroids {
				if d := distance.SquaredEuclidean(x, c); d < best {
					best = d
				}
			}
			distSq[i] = best
			total += best
		}

		idx := len(X) - 1
		if total > 0 {
			r := rnd.Float64() * total
			cum := 0.0
			for i, d := range distSq {
				cum += d
				if cum >= r {
					idx = i
					break
				}
			}
		} else {
			// All rows coincide with a center already.
			idx = rnd.Intn(len(X))
		}
		centroids = append(centroids, append([]float64(nil), X[idx]...))
	}
	return centroids
}

package classify

import (
	"runtime"
	"sort"
	"sync"

	"tsml/errors"
	"tsml/pkg/data"
	"tsml/pkg/distance"
)

// KNN is a lazy k-nearest-neighbor classifier. Fit stores the training
// set; Predict searches it under the configured distance measure. On a
// panel the measure is applied per channel and summed, so an elastic
// measure such as DTW handles variable-length series directly. On a table
// the measure compares feature rows.
type KNN struct {
	K    int
	Dist distance.Measure

	train data.Dataset
	y     data.Labels
	fit   bool
}

// KNNOption configures a KNN.
type KNNOption func(*KNN)

// WithMeasure replaces the default Euclidean distance.
func WithMeasure(m distance.Measure) KNNOption {
	return func(k *KNN) {
		if m != nil {
			k.Dist = m
		}
	}
}

func NewKNN(k int, opts ...KNNOption) *KNN {
	m := &KNN{K: k, Dist: distance.Euclidean}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Fit stores the training set. The lazy part of the model: all work
// happens at prediction time.
func (m *KNN) Fit(d data.Dataset, y data.Labels) error {
	if m.K <= 0 {
		return errors.Configurationf("knn: k must be positive, got %d", m.K)
	}
	if err := checkTrain(d, y); err != nil {
		return err
	}
	if m.K > d.NumInstances() {
		return errors.Configurationf("knn: k=%d exceeds %d training instances", m.K, d.NumInstances())
	}
	m.train = d
	m.y = y
	m.fit = true
	return nil
}

func (m *KNN) Predict(d data.Dataset) (data.Labels, error) {
	if !m.fit {
		return nil, errors.NotFittedf("knn: predict before fit")
	}
	if d == nil || d.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("knn: empty dataset")
	}
	if d.Kind() != m.train.Kind() {
		return nil, errors.ShapeMismatchf("knn: fitted on %s, got %s", m.train.Kind(), d.Kind())
	}

	dist, err := m.instanceDistance(d)
	if err != nil {
		return nil, err
	}

	n := d.NumInstances()
	out := make(data.Labels, n)
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
				out[i] = m.predictSingle(i, dist)
			}
		}(start, end)
	}
	wg.Wait()
	return out, nil
}

// instanceDistance returns a function giving the distance from test
// instance i to training instance j.
func (m *KNN) instanceDistance(d data.Dataset) (func(i, j int) float64, error) {
	switch train := m.train.(type) {
	case *data.Panel:
		test, err := asPanel(d)
		if err != nil {
			return nil, err
		}
		if test.NumChannels() != train.NumChannels() {
			return nil, errors.ShapeMismatchf("knn: fitted on %d channels, got %d", train.NumChannels(), test.NumChannels())
		}
		return func(i, j int) float64 {
			sum := 0.0
			for c := range test.Series[i] {
				sum += m.Dist(test.Series[i][c], train.Series[j][c])
			}
			return sum
		}, nil
	case *data.Table:
		test, err := asTable(d)
		if err != nil {
			return nil, err
		}
		if test.NumFeatures() != train.NumFeatures() {
			return nil, errors.ShapeMismatchf("knn: fitted on %d features, got %d", train.NumFeatures(), test.NumFeatures())
		}
		testRows, trainRows := rowsOf(test), rowsOf(train)
		return func(i, j int) float64 {
			return m.Dist(testRows[i], trainRows[j])
		}, nil
	}
	return nil, errors.Configurationf("knn: unsupported dataset type %T", m.train)
}

func (m *KNN) predictSingle(i int, dist func(i, j int) float64) string {
	type pair struct {
		d   float64
		lab string
	}
	nbrs := make([]pair, 0, m.K+1)
	for j := 0; j < m.train.NumInstances(); j++ {
		dj := dist(i, j)
		if len(nbrs) < m.K {
			nbrs = append(nbrs, pair{dj, m.y[j]})
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if dj < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = pair{dj, m.y[j]}
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}

	counts := make(map[string]int, len(nbrs))
	maxVotes := 0
	for _, p := range nbrs {
		counts[p.lab]++
		if counts[p.lab] > maxVotes {
			maxVotes = counts[p.lab]
		}
	}
	// Ties break toward the class with the closer neighbor; nbrs is
	// sorted by distance, so the first label holding maxVotes wins.
	for _, p := range nbrs {
		if counts[p.lab] == maxVotes {
			return p.lab
		}
	}
	return ""
}

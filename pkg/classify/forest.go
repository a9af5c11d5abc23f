package classify

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"
	"sync"
	"time"

	"tsml/errors"
	"tsml/pkg/data"
)

// Forest is a random forest over feature tables: NEstimators trees fitted
// concurrently on bootstrap samples, combined by majority vote.
type Forest struct {
	NEstimators    int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    int // 0 picks sqrt(features)
	Bootstrap      bool
	Seed           int64

	Trees []*Tree

	fit bool
}

// ForestOption configures a Forest.
type ForestOption func(*Forest)

func WithNEstimators(n int) ForestOption { return func(f *Forest) { f.NEstimators = n } }
func WithBootstrap(b bool) ForestOption  { return func(f *Forest) { f.Bootstrap = b } }
func WithForestSeed(s int64) ForestOption { return func(f *Forest) { f.Seed = s } }

// NewForest returns a forest with sensible defaults.
func NewForest(opts ...ForestOption) *Forest {
	f := &Forest{
		NEstimators:    100,
		MinSamplesLeaf: 1,
		Bootstrap:      true,
		Seed:           time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Forest) Fit(d data.Dataset, y data.Labels) error {
	if f.NEstimators < 1 {
		return errors.Configurationf("forest: need at least one tree, got %d", f.NEstimators)
	}
	if err := checkTrain(d, y); err != nil {
		return err
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}

	maxFeatures := f.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = int(math.Sqrt(float64(table.NumFeatures())))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	n := table.NumInstances()
	f.Trees = make([]*Tree, f.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, f.NEstimators)
	for i := 0; i < f.NEstimators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Per-tree source keeps trees independent without contention.
			treeRand := rand.New(rand.NewSource(f.Seed + int64(i)))

			sampleX, sampleY := table, y
			if f.Bootstrap {
				sample := make([]int, n)
				for j := range sample {
					sample[j] = treeRand.Intn(n)
				}
				sampleX = table.Select(sample)
				sampleY = pickLabels(y, sample)
			}

			tree := NewTree(
				WithMaxDepth(f.MaxDepth),
				WithMinSamplesLeaf(f.MinSamplesLeaf),
				WithMaxFeatures(maxFeatures),
				WithSeed(f.Seed+int64(i)),
			)
			if err := tree.Fit(sampleX, sampleY); err != nil {
				errCh <- errors.Wrapf(err, "forest: tree %d", i)
				return
			}
			f.Trees[i] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	f.fit = true
	return nil
}

// Predict gathers every tree's predictions concurrently and majority-votes
// per instance. Vote ties break toward the lexicographically smaller label.
func (f *Forest) Predict(d data.Dataset) (data.Labels, error) {
	if !f.fit {
		return nil, errors.NotFittedf("forest: predict before fit")
	}

	preds := make([]data.Labels, len(f.Trees))
	errCh := make(chan error, len(f.Trees))
	var wg sync.WaitGroup
	for i, tree := range f.Trees {
		wg.Add(1)
		go func(i int, tr *Tree) {
			defer wg.Done()
			p, err := tr.Predict(d)
			if err != nil {
				errCh <- err
				return
			}
			preds[i] = p
		}(i, tree)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	n := d.NumInstances()
	out := make(data.Labels, n)
	for i := 0; i < n; i++ {
		counts := make(map[string]int, len(f.Trees))
		best, bestCount := "", 0
		for _, p := range preds {
			lab := p[i]
			counts[lab]++
			if counts[lab] > bestCount || (counts[lab] == bestCount && lab < best) {
				best, bestCount = lab, counts[lab]
			}
		}
		out[i] = best
	}
	return out, nil
}

func pickLabels(y data.Labels, idx []int) data.Labels {
	out := make(data.Labels, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

type forestState struct {
	NEstimators    int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    int
	Bootstrap      bool
	Seed           int64
	Trees          []*Tree
}

// MarshalBinary implements encoding.BinaryMarshaler using gob. Member trees
// round-trip through their own marshalers.
func (f *Forest) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(forestState{
		NEstimators:    f.NEstimators,
		MaxDepth:       f.MaxDepth,
		MinSamplesLeaf: f.MinSamplesLeaf,
		MaxFeatures:    f.MaxFeatures,
		Bootstrap:      f.Bootstrap,
		Seed:           f.Seed,
		Trees:          f.Trees,
	}); err != nil {
		return nil, errors.Wrap(err, "forest: encode")
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using gob.
func (f *Forest) UnmarshalBinary(b []byte) error {
	var st forestState
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&st); err != nil {
		return errors.Wrap(err, "forest: decode")
	}
	f.NEstimators = st.NEstimators
	f.MaxDepth = st.MaxDepth
	f.MinSamplesLeaf = st.MinSamplesLeaf
	f.MaxFeatures = st.MaxFeatures
	f.Bootstrap = st.Bootstrap
	f.Seed = st.Seed
	f.Trees = st.Trees
	f.fit = len(st.Trees) > 0
	return nil
}

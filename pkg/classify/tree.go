package classify

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"tsml/errors"
	"tsml/pkg/data"
)

// Split criteria.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// Tree is a CART-style classifier over feature tables. Rows with NaN in
// the split feature go to the right child, both during training and at
// prediction time; impute beforehand if that is not acceptable.
type Tree struct {
	MaxDepth        int // 0 means no depth limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 means all features
	Criterion       string
	Seed            int64

	Root     *Node
	Classes  []string
	Features int

	fit bool
}

// Node is one tree node. Fields are exported so gob can persist the tree.
type Node struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= Threshold goes left
	Left      *Node
	Right     *Node

	N      int
	Class  int       // majority class index at this node
	Probas []float64 // class distribution, aligned with Classes
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

func WithMaxDepth(d int) TreeOption        { return func(t *Tree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *Tree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *Tree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *Tree) { t.MaxFeatures = k } }
func WithCriterion(c string) TreeOption    { return func(t *Tree) { t.Criterion = c } }
func WithSeed(seed int64) TreeOption       { return func(t *Tree) { t.Seed = seed } }

// NewTree returns a tree with sensible defaults.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       CriterionGini,
		Seed:            time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Tree) Fit(d data.Dataset, y data.Labels) error {
	if t.Criterion != CriterionGini && t.Criterion != CriterionEntropy {
		return errors.Configurationf("tree: unknown criterion %q", t.Criterion)
	}
	if t.MinSamplesSplit < 2 || t.MinSamplesLeaf < 1 || t.MaxDepth < 0 || t.MaxFeatures < 0 {
		return errors.Configurationf("tree: invalid stopping parameters")
	}
	if err := checkTrain(d, y); err != nil {
		return err
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}

	enc := data.NewEncoder(y)
	t.Classes = append([]string(nil), enc.Classes()...)
	codes := enc.Encode(y)
	t.Features = table.NumFeatures()

	X := rowsOf(table)
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.Root = t.grow(X, codes, idx, 0, rnd)
	t.fit = true
	return nil
}

func (t *Tree) Predict(d data.Dataset) (data.Labels, error) {
	if !t.fit {
		return nil, errors.NotFittedf("tree: predict before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if table.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("tree: empty dataset")
	}
	if got := table.NumFeatures(); got != t.Features {
		return nil, errors.ShapeMismatchf("tree: fitted on %d features, got %d", t.Features, got)
	}
	out := make(data.Labels, table.NumInstances())
	for i := range out {
		out[i] = t.Classes[t.walk(table.Row(i)).Class]
	}
	return out, nil
}

// PredictProba returns per-class probabilities aligned with Classes.
func (t *Tree) PredictProba(d data.Dataset) ([][]float64, error) {
	if !t.fit {
		return nil, errors.NotFittedf("tree: predict before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != t.Features {
		return nil, errors.ShapeMismatchf("tree: fitted on %d features, got %d", t.Features, got)
	}
	out := make([][]float64, table.NumInstances())
	for i := range out {
		leaf := t.walk(table.Row(i))
		out[i] = append([]float64(nil), leaf.Probas...)
	}
	return out, nil
}

func (t *Tree) walk(x []float64) *Node {
	n := t.Root
	for !n.Leaf {
		// NaN fails the comparison and goes right, matching training.
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

func (t *Tree) grow(X [][]float64, y, idx []int, depth int, rnd *rand.Rand) *Node {
	counts := classCounts(y, idx, len(t.Classes))
	node := &Node{
		N:      len(idx),
		Class:  argmaxInt(counts),
		Probas: countsToProbas(counts),
	}
	if isPure(counts) || len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.Leaf = true
		return node
	}

	best := t.bestSplit(X, y, idx, t.featureSubset(len(X[0]), rnd))
	if best.feature < 0 || best.gain <= 0 {
		node.Leaf = true
		return node
	}

	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = t.grow(X, y, best.left, depth+1, rnd)
	node.Right = t.grow(X, y, best.right, depth+1, rnd)
	return node
}

func (t *Tree) featureSubset(p int, rnd *rand.Rand) []int {
	feats := make([]int, p)
	for j := range feats {
		feats[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { feats[a], feats[b] = feats[b], feats[a] })
		feats = feats[:t.MaxFeatures]
	}
	return feats
}

type splitResult struct {
	gain        float64
	feature     int
	threshold   float64
	left, right []int
}

// bestSplit searches each candidate feature concurrently and keeps the
// highest-gain split.
func (t *Tree) bestSplit(X [][]float64, y, idx []int, feats []int) splitResult {
	parent := t.impurity(classCounts(y, idx, len(t.Classes)))

	results := make(chan splitResult, len(feats))
	var wg sync.WaitGroup
	for _, f := range feats {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			results <- t.splitFeature(X, y, idx, f, parent)
		}(f)
	}
	wg.Wait()
	close(results)

	best := splitResult{feature: -1}
	for r := range results {
		if r.gain > best.gain {
			best = r
		}
	}
	return best
}

func (t *Tree) splitFeature(X [][]float64, y, idx []int, f int, parent float64) splitResult {
	res := splitResult{feature: -1}

	type pair struct {
		v float64
		i int
	}
	valid := make([]pair, 0, len(idx))
	var nans []int
	for _, i := range idx {
		if v := X[i][f]; math.IsNaN(v) {
			nans = append(nans, i)
		} else {
			valid = append(valid, pair{v, i})
		}
	}
	if len(valid) < 2 {
		return res
	}
	sort.Slice(valid, func(a, b int) bool { return valid[a].v < valid[b].v })

	total := float64(len(idx))
	k := len(t.Classes)
	for s := 1; s < len(valid); s++ {
		if valid[s].v == valid[s-1].v {
			continue
		}
		left := make([]int, 0, s)
		for _, p := range valid[:s] {
			left = append(left, p.i)
		}
		right := make([]int, 0, len(valid)-s+len(nans))
		for _, p := range valid[s:] {
			right = append(right, p.i)
		}
		right = append(right, nans...)
		if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(len(left))/total*t.impurity(classCounts(y, left, k)) +
			float64(len(right))/total*t.impurity(classCounts(y, right, k))
		if gain := parent - weighted; gain > res.gain {
			res = splitResult{
				gain:      gain,
				feature:   f,
				threshold: (valid[s-1].v + valid[s].v) / 2,
				left:      left,
				right:     right,
			}
		}
	}
	return res
}

func (t *Tree) impurity(counts []int) float64 {
	if t.Criterion == CriterionEntropy {
		return entropyFromCounts(counts)
	}
	return giniFromCounts(counts)
}

// MarshalBinary implements encoding.BinaryMarshaler using gob.
func (t *Tree) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(treeState{
		MaxDepth:        t.MaxDepth,
		MinSamplesSplit: t.MinSamplesSplit,
		MinSamplesLeaf:  t.MinSamplesLeaf,
		MaxFeatures:     t.MaxFeatures,
		Criterion:       t.Criterion,
		Seed:            t.Seed,
		Root:            t.Root,
		Classes:         t.Classes,
		Features:        t.Features,
	}); err != nil {
		return nil, errors.Wrap(err, "tree: encode")
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using gob.
func (t *Tree) UnmarshalBinary(b []byte) error {
	var st treeState
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&st); err != nil {
		return errors.Wrap(err, "tree: decode")
	}
	t.MaxDepth = st.MaxDepth
	t.MinSamplesSplit = st.MinSamplesSplit
	t.MinSamplesLeaf = st.MinSamplesLeaf
	t.MaxFeatures = st.MaxFeatures
	t.Criterion = st.Criterion
	t.Seed = st.Seed
	t.Root = st.Root
	t.Classes = st.Classes
	t.Features = st.Features
	t.fit = st.Root != nil
	return nil
}

type treeState struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Criterion       string
	Seed            int64
	Root            *Node
	Classes         []string
	Features        int
}

func classCounts(y, idx []int, k int) []int {
	counts := make([]int, k)
	for _, i := range idx {
		counts[y[i]]++
	}
	return counts
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i, c := range counts {
		p[i] = float64(c) / float64(n)
	}
	return p
}

func argmaxInt(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

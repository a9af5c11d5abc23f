package classify

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"tsml/errors"
	"tsml/pkg/data"
)

// Logistic is a one-vs-rest logistic regression classifier over feature
// tables, trained by full-batch gradient descent on the binary
// cross-entropy loss. Feed it scaled features; raw magnitudes slow the
// descent down considerably.
type Logistic struct {
	LearnRate float64
	Epochs    int
	Tol       float64 // stop early when the loss improves less than this
	Seed      int64

	W    [][]float64 // per-class weights
	B    []float64   // per-class bias
	Loss float64     // training loss at the last epoch

	enc *data.Encoder
	fit bool
}

// LogisticOption configures a Logistic.
type LogisticOption func(*Logistic)

func WithLearnRate(lr float64) LogisticOption  { return func(m *Logistic) { m.LearnRate = lr } }
func WithEpochs(n int) LogisticOption          { return func(m *Logistic) { m.Epochs = n } }
func WithTolerance(tol float64) LogisticOption { return func(m *Logistic) { m.Tol = tol } }
func WithLogisticSeed(s int64) LogisticOption  { return func(m *Logistic) { m.Seed = s } }

// NewLogistic returns a logistic classifier with sensible defaults.
func NewLogistic(opts ...LogisticOption) *Logistic {
	m := &Logistic{
		LearnRate: 0.1,
		Epochs:    200,
		Tol:       1e-6,
		Seed:      time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Logistic) Fit(d data.Dataset, y data.Labels) error {
	if m.LearnRate <= 0 {
		return errors.Configurationf("logistic: learning rate must be positive, got %g", m.LearnRate)
	}
	if m.Epochs < 1 || m.Tol < 0 {
		return errors.Configurationf("logistic: invalid stopping parameters")
	}
	if err := checkTrain(d, y); err != nil {
		return err
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if cols == 0 {
		return errors.ShapeMismatchf("logistic: table has no features")
	}

	m.enc = data.NewEncoder(y)
	k := m.enc.NumClasses()
	codes := m.enc.Encode(y)
	X := rowsOf(table)

	// Small random weights break symmetry; the bias starts at zero.
	rnd := rand.New(rand.NewSource(m.Seed))
	m.W = make([][]float64, k)
	for c := range m.W {
		w := make([]float64, cols)
		for j := range w {
			w[j] = rnd.NormFloat64() * 0.01
		}
		m.W[c] = w
	}
	m.B = make([]float64, k)

	prev := math.Inf(1)
	for ep := 0; ep < m.Epochs; ep++ {
		loss := 0.0
		for c := 0; c < k; c++ {
			gW := make([]float64, cols)
			gB := 0.0
			for i, x := range X {
				target := 0.0
				if codes[i] == c {
					target = 1
				}
				p := sigmoid(dot(m.W[c], x) + m.B[c])
				loss += crossEntropy(target, p)

				// d(BCE)/d(score) is simply p - target.
				g := (p - target) / float64(rows)
				for j, xj := range x {
					gW[j] += g * xj
				}
				gB += g
			}
			gradientStep(m.W[c], gW, m.LearnRate)
			m.B[c] -= m.LearnRate * gB
		}
		m.Loss = loss / float64(rows*k)
		if math.Abs(prev-m.Loss) < m.Tol {
			break
		}
		prev = m.Loss
	}

	m.fit = true
	return nil
}

func (m *Logistic) Predict(d data.Dataset) (data.Labels, error) {
	if !m.fit {
		return nil, errors.NotFittedf("logistic: predict before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if table.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("logistic: empty dataset")
	}
	if got := table.NumFeatures(); got != len(m.W[0]) {
		return nil, errors.ShapeMismatchf("logistic: fitted on %d features, got %d", len(m.W[0]), got)
	}

	X := rowsOf(table)
	out := make(data.Labels, len(X))
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				best, bestScore := 0, math.Inf(-1)
				for c := range m.W {
					if score := sigmoid(dot(m.W[c], X[i]) + m.B[c]); score > bestScore {
						best, bestScore = c, score
					}
				}
				out[i] = m.enc.Class(best)
			}
		}(start, end)
	}
	wg.Wait()
	return out, nil
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }

// crossEntropy is the binary cross-entropy of one prediction, with the
// probability clamped away from 0 and 1 so the logs stay finite.
func crossEntropy(target, p float64) float64 {
	p = math.Min(math.Max(p, 1e-12), 1-1e-12)
	return -(target*math.Log(p) + (1-target)*math.Log(1-p))
}

func dot(w, x []float64) float64 {
	s := 0.0
	for j, wj := range w {
		s += wj * x[j]
	}
	return s
}

// gradientStep applies one in-place descent update.
func gradientStep(w, g []float64, lr float64) {
	for j := range w {
		w[j] -= lr * g[j]
	}
}

package classify

import (
	"gonum.org/v1/gonum/mat"

	"tsml/errors"
	"tsml/pkg/data"
)

// Ridge is a one-vs-rest ridge regression classifier over feature tables.
// Fit solves the regularized normal equations in closed form per class
// with +1/-1 targets; Predict takes the argmax class score. The intercept
// is not penalized.
type Ridge struct {
	Lambda float64

	W *mat.Dense // (features+1) x classes, first row is the intercept

	enc *data.Encoder
	fit bool
}

func NewRidge(lambda float64) *Ridge { return &Ridge{Lambda: lambda} }

func (m *Ridge) Fit(d data.Dataset, y data.Labels) error {
	if m.Lambda < 0 {
		return errors.Configurationf("ridge: lambda must be non-negative, got %g", m.Lambda)
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
		return errors.ShapeMismatchf("ridge: table has no features")
	}

	m.enc = data.NewEncoder(y)
	k := m.enc.NumClasses()

	a := designMatrix(table)
	targets := mat.NewDense(rows, k, nil)
	for i, lab := range y {
		code, _ := m.enc.Code(lab)
		for j := 0; j < k; j++ {
			if j == code {
				targets.Set(i, j, 1)
			} else {
				targets.Set(i, j, -1)
			}
		}
	}

	// lhs = A'A + lambda*R with R the identity, except zero at the
	// intercept position.
	var lhs mat.Dense
	lhs.Mul(a.T(), a)
	for j := 1; j <= cols; j++ {
		lhs.Set(j, j, lhs.At(j, j)+m.Lambda)
	}
	var rhs mat.Dense
	rhs.Mul(a.T(), targets)

	m.W = mat.NewDense(cols+1, k, nil)
	if err := m.W.Solve(&lhs, &rhs); err != nil {
		return errors.Wrap(err, "ridge: singular system, increase lambda")
	}
	m.fit = true
	return nil
}

func (m *Ridge) Predict(d data.Dataset) (data.Labels, error) {
	if !m.fit {
		return nil, errors.NotFittedf("ridge: predict before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if table.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("ridge: empty dataset")
	}
	wRows, _ := m.W.Dims()
	if got := table.NumFeatures(); got != wRows-1 {
		return nil, errors.ShapeMismatchf("ridge: fitted on %d features, got %d", wRows-1, got)
	}

	var scores mat.Dense
	scores.Mul(designMatrix(table), m.W)

	rows, k := scores.Dims()
	out := make(data.Labels, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for j := 1; j < k; j++ {
			if scores.At(i, j) > scores.At(i, best) {
				best = j
			}
		}
		out[i] = m.enc.Class(best)
	}
	return out, nil
}

// designMatrix prepends a column of ones for the intercept.
func designMatrix(t *data.Table) *mat.Dense {
	rows, cols := t.NumInstances(), t.NumFeatures()
	a := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			a.Set(i, j+1, t.Data.At(i, j))
		}
	}
	return a
}

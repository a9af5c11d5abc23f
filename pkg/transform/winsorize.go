package transform

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"tsml/errors"
	"tsml/pkg/data"
)

// Winsorize clips each table column to the [q, 1-q] quantile range learned
// from the training set, taming outliers before scale-sensitive stages.
type Winsorize struct {
	Quantile float64

	low  []float64
	high []float64
	fit  bool
}

func NewWinsorize(q float64) *Winsorize { return &Winsorize{Quantile: q} }

func (w *Winsorize) Fit(d data.Dataset, _ data.Labels) error {
	if w.Quantile <= 0 || w.Quantile >= 0.5 {
		return errors.Configurationf("winsorize: quantile must be in (0, 0.5), got %g", w.Quantile)
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if rows == 0 || cols == 0 {
		return errors.ShapeMismatchf("winsorize: empty table")
	}
	w.low = make([]float64, cols)
	w.high = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, table.Data)
		sorted := append([]float64(nil), col...)
		sort.Float64s(sorted)
		w.low[j] = stat.Quantile(w.Quantile, stat.Empirical, sorted, nil)
		w.high[j] = stat.Quantile(1-w.Quantile, stat.Empirical, sorted, nil)
	}
	w.fit = true
	return nil
}

func (w *Winsorize) Transform(d data.Dataset) (data.Dataset, error) {
	if !w.fit {
		return nil, errors.NotFittedf("winsorize: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != len(w.low) {
		return nil, errors.ShapeMismatchf("winsorize: fitted on %d features, got %d", len(w.low), got)
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := table.Data.At(i, j)
			if v < w.low[j] {
				v = w.low[j]
			} else if v > w.high[j] {
				v = w.high[j]
			}
			out.Set(i, j, v)
		}
	}
	return data.FromMatrix(out), nil
}

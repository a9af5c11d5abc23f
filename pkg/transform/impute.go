package transform

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"tsml/errors"
	"tsml/pkg/data"
)

// Imputation strategies.
const (
	ImputeMean   = "mean"
	ImputeMedian = "median"
)

// Impute replaces NaN cells in a table with a per-column statistic learned
// from the non-missing training values. Columns that are entirely missing
// fill with zero.
type Impute struct {
	Strategy string

	fill []float64
	fit  bool
}

func NewImpute(strategy string) *Impute { return &Impute{Strategy: strategy} }

func (im *Impute) Fit(d data.Dataset, _ data.Labels) error {
	if im.Strategy != ImputeMean && im.Strategy != ImputeMedian {
		return errors.Configurationf("impute: unknown strategy %q", im.Strategy)
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if rows == 0 || cols == 0 {
		return errors.ShapeMismatchf("impute: empty table")
	}
	im.fill = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, table.Data)
		present := col[:0:0]
		for _, v := range col {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) == 0 {
			im.fill[j] = 0
			continue
		}
		switch im.Strategy {
		case ImputeMean:
			im.fill[j] = stat.Mean(present, nil)
		case ImputeMedian:
			sort.Float64s(present)
			im.fill[j] = stat.Quantile(0.5, stat.Empirical, present, nil)
		}
	}
	im.fit = true
	return nil
}

func (im *Impute) Transform(d data.Dataset) (data.Dataset, error) {
	if !im.fit {
		return nil, errors.NotFittedf("impute: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != len(im.fill) {
		return nil, errors.ShapeMismatchf("impute: fitted on %d features, got %d", len(im.fill), got)
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := table.Data.At(i, j)
			if math.IsNaN(v) {
				v = im.fill[j]
			}
			out.Set(i, j, v)
		}
	}
	return data.FromMatrix(out), nil
}

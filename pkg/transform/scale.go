package transform

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"tsml/errors"
	"tsml/pkg/data"
)

// Scale standardizes each table column to zero mean and unit variance using
// statistics learned from the training set. Constant columns keep a unit
// divisor so they map to zero instead of NaN.
type Scale struct {
	Mean []float64
	Std  []float64

	fit bool
}

func NewScale() *Scale { return &Scale{} }

func (s *Scale) Fit(d data.Dataset, _ data.Labels) error {
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if rows == 0 || cols == 0 {
		return errors.ShapeMismatchf("scale: empty table")
	}
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, table.Data)
		mean, std := stat.MeanStdDev(col, nil)
		if rows < 2 || std == 0 {
			std = 1
		}
		s.Mean[j], s.Std[j] = mean, std
	}
	s.fit = true
	return nil
}

func (s *Scale) Transform(d data.Dataset) (data.Dataset, error) {
	if !s.fit {
		return nil, errors.NotFittedf("scale: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != len(s.Mean) {
		return nil, errors.ShapeMismatchf("scale: fitted on %d features, got %d", len(s.Mean), got)
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (table.Data.At(i, j)-s.Mean[j])/s.Std[j])
		}
	}
	return data.FromMatrix(out), nil
}

package transform

import (
	"gonum.org/v1/gonum/mat"

	"tsml/errors"
	"tsml/pkg/data"
)

// PCA projects a table onto its top K principal components. Fit centers
// the training data and takes the components from a thin SVD; Transform
// applies the learned centering and projection.
type PCA struct {
	K int

	Means      []float64
	Components *mat.Dense // features x K, columns are unit vectors
	Explained  []float64  // variance per kept component

	fit bool
}

func NewPCA(k int) *PCA { return &PCA{K: k} }

func (p *PCA) Fit(d data.Dataset, _ data.Labels) error {
	if p.K <= 0 {
		return errors.Configurationf("pca: components must be positive, got %d", p.K)
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	rows, cols := table.NumInstances(), table.NumFeatures()
	if rows == 0 || cols == 0 {
		return errors.ShapeMismatchf("pca: empty table")
	}
	if p.K > cols || p.K > rows {
		return errors.Configurationf("pca: %d components from a %dx%d table", p.K, rows, cols)
	}

	p.Means = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, table.Data)
		sum := 0.0
		for _, v := range col {
			sum += v
		}
		p.Means[j] = sum / float64(rows)
	}
	centered := p.center(table.Data)

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return errors.Newf("pca: svd failed to converge")
	}
	var v mat.Dense
	svd.VTo(&v)
	p.Components = mat.DenseCopyOf(v.Slice(0, cols, 0, p.K))

	p.Explained = make([]float64, p.K)
	values := svd.Values(nil)
	denom := float64(rows - 1)
	if denom == 0 {
		denom = 1
	}
	for i := 0; i < p.K; i++ {
		p.Explained[i] = values[i] * values[i] / denom
	}

	p.fit = true
	return nil
}

func (p *PCA) Transform(d data.Dataset) (data.Dataset, error) {
	if !p.fit {
		return nil, errors.NotFittedf("pca: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != len(p.Means) {
		return nil, errors.ShapeMismatchf("pca: fitted on %d features, got %d", len(p.Means), got)
	}
	centered := p.center(table.Data)
	rows, _ := centered.Dims()
	out := mat.NewDense(rows, p.K, nil)
	out.Mul(centered, p.Components)
	return data.FromMatrix(out), nil
}

func (p *PCA) center(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(i, j)-p.Means[j])
		}
	}
	return out
}

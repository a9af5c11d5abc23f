package transform

import (
	"tsml/errors"
	"tsml/pkg/data"
)

// Polynomial expands a table with monomial products of its columns up to
// Degree. The output keeps the original columns first, then appends each
// product x_i*...*x_j with non-decreasing column indices, so a two column
// table at degree two becomes x1, x2, x1*x1, x1*x2, x2*x2.
type Polynomial struct {
	Degree int

	features int
	fit      bool
}

func NewPolynomial(degree int) *Polynomial { return &Polynomial{Degree: degree} }

func (p *Polynomial) Fit(d data.Dataset, _ data.Labels) error {
	if p.Degree < 1 {
		return errors.Configurationf("polynomial: degree must be at least 1, got %d", p.Degree)
	}
	table, err := asTable(d)
	if err != nil {
		return err
	}
	if table.NumInstances() == 0 || table.NumFeatures() == 0 {
		return errors.ShapeMismatchf("polynomial: empty table")
	}
	p.features = table.NumFeatures()
	p.fit = true
	return nil
}

func (p *Polynomial) Transform(d data.Dataset) (data.Dataset, error) {
	if !p.fit {
		return nil, errors.NotFittedf("polynomial: transform before fit")
	}
	table, err := asTable(d)
	if err != nil {
		return nil, err
	}
	if got := table.NumFeatures(); got != p.features {
		return nil, errors.ShapeMismatchf("polynomial: fitted on %d features, got %d", p.features, got)
	}
	rows := make([][]float64, table.NumInstances())
	for i := range rows {
		rows[i] = expandRow(table.Row(i), p.Degree)
	}
	out, err := data.NewTable(rows)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type monomial struct {
	val float64
	min int // lowest column index allowed for the next factor
}

func expandRow(row []float64, degree int) []float64 {
	out := append([]float64(nil), row...)
	cur := make([]monomial, len(row))
	for j, v := range row {
		cur[j] = monomial{val: v, min: j}
	}
	for d := 2; d <= degree; d++ {
		next := make([]monomial, 0, len(cur)*len(row))
		for _, m := range cur {
			for j := m.min; j < len(row); j++ {
				next = append(next, monomial{val: m.val * row[j], min: j})
			}
		}
		for _, m := range next {
			out = append(out, m.val)
		}
		cur = next
	}
	return out
}

package data

import (
	"gonum.org/v1/gonum/mat"

	"tsml/errors"
)

// Table is an instances-by-features matrix, the representation produced by
// feature-extraction stages and consumed by tabular classifiers.
type Table struct {
	Data *mat.Dense
}

// NewTable copies rows into a table. All rows must share one width.
func NewTable(rows [][]float64) (*Table, error) {
	if len(rows) == 0 {
		return &Table{}, nil
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, errors.ShapeMismatchf("table: row 0 has no features")
	}
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.ShapeMismatchf("table: row %d has %d features, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return &Table{Data: mat.NewDense(len(rows), cols, flat)}, nil
}

// FromMatrix wraps an existing dense matrix without copying.
func FromMatrix(m *mat.Dense) *Table { return &Table{Data: m} }

// NumInstances returns the row count.
func (t *Table) NumInstances() int {
	if t.Data == nil {
		return 0
	}
	r, _ := t.Data.Dims()
	return r
}

// NumFeatures returns the column count.
func (t *Table) NumFeatures() int {
	if t.Data == nil {
		return 0
	}
	_, c := t.Data.Dims()
	return c
}

// Kind returns KindTable.
func (t *Table) Kind() Kind { return KindTable }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	return mat.Row(nil, i, t.Data)
}

// Select returns a table holding copies of the rows at idx.
func (t *Table) Select(idx []int) *Table {
	if len(idx) == 0 || t.Data == nil {
		return &Table{}
	}
	_, cols := t.Data.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, j := range idx {
		out.SetRow(i, mat.Row(nil, j, t.Data))
	}
	return &Table{Data: out}
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	if t.Data == nil {
		return &Table{}
	}
	var m mat.Dense
	m.CloneFrom(t.Data)
	return &Table{Data: &m}
}

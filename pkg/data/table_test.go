package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tsml/errors"
)

// TestNewTableValidation verifies width checks and the empty case.
func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		wantErr bool
	}{
		{"rectangular", [][]float64{{1, 2}, {3, 4}, {5, 6}}, false},
		{"single row", [][]float64{{1, 2, 3}}, false},
		{"empty table", nil, false},
		{"ragged rows", [][]float64{{1, 2}, {3}}, true},
		{"zero width", [][]float64{{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := NewTable(tt.rows)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsShapeMismatch(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), tab.NumInstances())
		})
	}
}

// TestTableAccessors covers dims, rows and kind.
func TestTableAccessors(t *testing.T) {
	tab, err := NewTable([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumInstances())
	assert.Equal(t, 3, tab.NumFeatures())
	assert.Equal(t, KindTable, tab.Kind())
	assert.Equal(t, []float64{4, 5, 6}, tab.Row(1))

	empty := &Table{}
	assert.Equal(t, 0, empty.NumInstances())
	assert.Equal(t, 0, empty.NumFeatures())
}

// TestTableRowIsACopy verifies mutating a returned row leaves the table
// untouched.
func TestTableRowIsACopy(t *testing.T) {
	tab, err := NewTable([][]float64{{1, 2}})
	require.NoError(t, err)

	row := tab.Row(0)
	row[0] = 42
	assert.Equal(t, 1.0, tab.Data.At(0, 0))
}

// TestTableSelect verifies row selection with repeats and the empty index.
func TestTableSelect(t *testing.T) {
	tab, err := NewTable([][]float64{{0}, {1}, {2}})
	require.NoError(t, err)

	sel := tab.Select([]int{2, 0, 0})
	require.Equal(t, 3, sel.NumInstances())
	assert.Equal(t, []float64{2}, sel.Row(0))
	assert.Equal(t, []float64{0}, sel.Row(1))
	assert.Equal(t, []float64{0}, sel.Row(2))

	assert.Equal(t, 0, tab.Select(nil).NumInstances())
}

// TestFromMatrixShares verifies FromMatrix wraps without copying.
func TestFromMatrixShares(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1, 2})
	tab := FromMatrix(m)
	m.Set(0, 0, 7)
	assert.Equal(t, 7.0, tab.Data.At(0, 0))
}

// TestTableClone verifies deep copies do not alias the original matrix.
func TestTableClone(t *testing.T) {
	tab, err := NewTable([][]float64{{1, 2}})
	require.NoError(t, err)

	c := tab.Clone()
	c.Data.Set(0, 0, 99)
	assert.Equal(t, 1.0, tab.Data.At(0, 0))
}

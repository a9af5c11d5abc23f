package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// TestPolynomialDegreeTwo checks column order and products on a small table.
func TestPolynomialDegreeTwo(t *testing.T) {
	tab, err := data.NewTable([][]float64{{1, 2}, {3, -1}})
	require.NoError(t, err)

	p := NewPolynomial(2)
	require.NoError(t, p.Fit(tab, nil))

	out, err := p.Transform(tab)
	require.NoError(t, err)
	expanded := out.(*data.Table)
	require.Equal(t, 5, expanded.NumFeatures())
	assert.Equal(t, []float64{1, 2, 1, 2, 4}, expanded.Row(0))
	assert.Equal(t, []float64{3, -1, 9, -3, 1}, expanded.Row(1))
}

// TestPolynomialHigherDegree checks cubes on a single column.
func TestPolynomialHigherDegree(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{2}})

	p := NewPolynomial(3)
	require.NoError(t, p.Fit(tab, nil))

	out, err := p.Transform(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 8}, out.(*data.Table).Row(0))
}

// TestPolynomialDegreeOnePassthrough checks degree one keeps columns as is.
func TestPolynomialDegreeOnePassthrough(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{1, 2, 3}})

	p := NewPolynomial(1)
	require.NoError(t, p.Fit(tab, nil))

	out, err := p.Transform(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, out.(*data.Table).Row(0))
}

// TestPolynomialGuards checks degree validation, fit state and shape.
func TestPolynomialGuards(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{1, 2}})

	assert.True(t, errors.IsConfiguration(NewPolynomial(0).Fit(tab, nil)))

	_, err := NewPolynomial(2).Transform(tab)
	assert.True(t, errors.IsNotFitted(err))

	p := NewPolynomial(2)
	require.NoError(t, p.Fit(tab, nil))
	wide, _ := data.NewTable([][]float64{{1, 2, 3}})
	_, err = p.Transform(wide)
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on 2 features, got 3")
}

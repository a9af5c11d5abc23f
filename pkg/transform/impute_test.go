package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// TestImputeMean checks NaN cells fill with the column mean.
func TestImputeMean(t *testing.T) {
	nan := math.NaN()
	tab, err := data.NewTable([][]float64{
		{1, 10},
		{nan, 20},
		{3, nan},
	})
	require.NoError(t, err)

	im := NewImpute(ImputeMean)
	require.NoError(t, im.Fit(tab, nil))
	out, err := im.Transform(tab)
	require.NoError(t, err)
	filled := out.(*data.Table)

	assert.Equal(t, []float64{1, 10}, filled.Row(0))
	assert.Equal(t, []float64{2, 20}, filled.Row(1))
	assert.Equal(t, []float64{3, 15}, filled.Row(2))
}

// TestImputeMedian checks the median strategy resists outliers.
func TestImputeMedian(t *testing.T) {
	nan := math.NaN()
	tab, err := data.NewTable([][]float64{
		{1}, {nan}, {3}, {100},
	})
	require.NoError(t, err)

	im := NewImpute(ImputeMedian)
	require.NoError(t, im.Fit(tab, nil))
	out, err := im.Transform(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, out.(*data.Table).Row(1))
}

// TestImputeAllMissingColumn checks fully absent columns fill with zero.
func TestImputeAllMissingColumn(t *testing.T) {
	nan := math.NaN()
	tab, err := data.NewTable([][]float64{{nan, 1}, {nan, 2}})
	require.NoError(t, err)

	im := NewImpute(ImputeMean)
	require.NoError(t, im.Fit(tab, nil))
	out, err := im.Transform(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, out.(*data.Table).Row(0))
}

// TestImputeGuards checks strategy validation and fit state.
func TestImputeGuards(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{1}})

	err := NewImpute("mode").Fit(tab, nil)
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), `unknown strategy "mode"`)

	_, err = NewImpute(ImputeMean).Transform(tab)
	assert.True(t, errors.IsNotFitted(err))
}

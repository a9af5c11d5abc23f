package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// TestPadLearnsTrainLength checks padding to the longest training series.
func TestPadLearnsTrainLength(t *testing.T) {
	ragged := data.UnivariatePanel([][]float64{
		{1, 2, 3},
		{4, 5, 6, 7, 8},
		{9, 10},
	})
	p := NewPad()
	require.NoError(t, p.Fit(ragged, nil))

	out, err := p.Transform(ragged)
	require.NoError(t, err)
	panel := out.(*data.Panel)

	assert.True(t, panel.EqualLength())
	assert.Equal(t, 5, panel.SeriesLength())
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, panel.Series[0][0])
	assert.Equal(t, []float64{4, 5, 6, 7, 8}, panel.Series[1][0])
	assert.Equal(t, []float64{9, 10, 0, 0, 0}, panel.Series[2][0])
}

// TestPadFixedLength checks an explicit target length pads and truncates.
func TestPadFixedLength(t *testing.T) {
	ragged := data.UnivariatePanel([][]float64{
		{1, 2, 3, 4, 5, 6},
		{7, 8},
	})
	p := &Pad{Length: 4, Value: -1}
	require.NoError(t, p.Fit(ragged, nil))

	out, err := p.Transform(ragged)
	require.NoError(t, err)
	panel := out.(*data.Panel)

	assert.Equal(t, 4, panel.SeriesLength())
	assert.Equal(t, []float64{1, 2, 3, 4}, panel.Series[0][0])
	assert.Equal(t, []float64{7, 8, -1, -1}, panel.Series[1][0])
}

// TestPadErrors checks the unfitted and empty-input guards.
func TestPadErrors(t *testing.T) {
	_, err := NewPad().Transform(data.UnivariatePanel([][]float64{{1}}))
	assert.True(t, errors.IsNotFitted(err))

	empty, _ := data.NewPanel(nil)
	assert.True(t, errors.IsShapeMismatch(NewPad().Fit(empty, nil)))
}

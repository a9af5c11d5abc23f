package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
	"tsml/pkg/distance"
)

// TestKNNTableExact checks 1-NN reproduces training labels on its own
// training set.
func TestKNNTableExact(t *testing.T) {
	tab, y := sepTable(t)
	m := NewKNN(1)
	require.NoError(t, m.Fit(tab, y))

	pred, err := m.Predict(tab)
	require.NoError(t, err)
	assert.Equal(t, y, pred)
}

// TestKNNTableVote checks the k=3 majority vote on fresh points.
func TestKNNTableVote(t *testing.T) {
	tab, y := sepTable(t)
	m := NewKNN(3)
	require.NoError(t, m.Fit(tab, y))

	test, _ := data.NewTable([][]float64{{0.05, 0.05}, {5.05, 5.05}})
	pred, err := m.Predict(test)
	require.NoError(t, err)
	assert.Equal(t, data.Labels{"a", "b"}, pred)
}

// TestKNNPanelDTW checks nearest neighbor over variable-length series
// under an elastic measure.
func TestKNNPanelDTW(t *testing.T) {
	train := data.UnivariatePanel([][]float64{
		{0, 0, 0},
		{0, 0, 0, 0},
		{5, 5, 5},
		{5, 5, 5, 5, 5},
	})
	y := data.Labels{"lo", "lo", "hi", "hi"}

	m := NewKNN(1, WithMeasure(distance.DTW))
	require.NoError(t, m.Fit(train, y))

	test := data.UnivariatePanel([][]float64{{0, 0}, {5, 5, 5, 5, 5, 5}})
	pred, err := m.Predict(test)
	require.NoError(t, err)
	assert.Equal(t, data.Labels{"lo", "hi"}, pred)
}

// TestKNNMultivariateSums checks per-channel distances add up.
func TestKNNMultivariateSums(t *testing.T) {
	train, err := data.NewPanel([][][]float64{
		{{0, 0}, {0, 0}},
		{{9, 9}, {9, 9}},
	})
	require.NoError(t, err)
	m := NewKNN(1)
	require.NoError(t, m.Fit(train, data.Labels{"zero", "nine"}))

	// The first channel alone favors "zero", but the second channel
	// dominates the summed distance.
	test, err := data.NewPanel([][][]float64{{{2, 2}, {8, 8}}})
	require.NoError(t, err)
	pred, err := m.Predict(test)
	require.NoError(t, err)
	assert.Equal(t, data.Labels{"nine"}, pred)
}

// TestKNNConfigErrors checks k validation at fit time.
func TestKNNConfigErrors(t *testing.T) {
	tab, y := sepTable(t)

	err := NewKNN(0).Fit(tab, y)
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "k must be positive")

	err = NewKNN(7).Fit(tab, y)
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "k=7 exceeds 6 training instances")
}

// TestKNNShapeGuards checks fit state, kind, channel and feature checks.
func TestKNNShapeGuards(t *testing.T) {
	tab, y := sepTable(t)

	_, err := NewKNN(1).Predict(tab)
	assert.True(t, errors.IsNotFitted(err))

	m := NewKNN(1)
	require.NoError(t, m.Fit(tab, y))

	_, err = m.Predict(&data.Table{})
	assert.True(t, errors.IsShapeMismatch(err))

	_, err = m.Predict(data.UnivariatePanel([][]float64{{1}}))
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on table, got panel")

	wide, _ := data.NewTable([][]float64{{1, 2, 3}})
	_, err = m.Predict(wide)
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on 2 features, got 3")

	p := NewKNN(1)
	require.NoError(t, p.Fit(data.UnivariatePanel([][]float64{{1, 2}}), data.Labels{"a"}))
	two, err := data.NewPanel([][][]float64{{{1, 2}, {3, 4}}})
	require.NoError(t, err)
	_, err = p.Predict(two)
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on 1 channels, got 2")
}

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
	"tsml/pkg/metrics"
	"tsml/pkg/synth"
)

// TestRidgeSeparable checks exact training predictions on wide-margin data.
func TestRidgeSeparable(t *testing.T) {
	tab, y := sepTable(t)
	m := NewRidge(1.0)
	require.NoError(t, m.Fit(tab, y))

	pred, err := m.Predict(tab)
	require.NoError(t, err)
	assert.Equal(t, y, pred)
}

// TestRidgeBlobsHoldout checks generalization on a held out split.
func TestRidgeBlobsHoldout(t *testing.T) {
	tab, y := synth.GaussianBlobs(80, 3, 2, 0.8, 6)
	trainX, trainY, testX, testY, err := data.TrainTestSplit(tab, y, 0.25, 1)
	require.NoError(t, err)

	m := NewRidge(0.1)
	require.NoError(t, m.Fit(trainX, trainY))
	pred, err := m.Predict(testX)
	require.NoError(t, err)

	acc, err := metrics.Accuracy(testY, pred)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.9, "accuracy %v", acc)
}

// TestRidgeSingularWithoutRegularization checks duplicated features fail
// at lambda zero.
func TestRidgeSingularWithoutRegularization(t *testing.T) {
	tab, err := data.NewTable([][]float64{
		{1, 1},
		{2, 2},
		{3, 3},
	})
	require.NoError(t, err)
	y := data.Labels{"a", "a", "b"}

	err = NewRidge(0).Fit(tab, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "increase lambda")

	// The same system solves once regularized.
	assert.NoError(t, NewRidge(1.0).Fit(tab, y))
}

// TestRidgeErrors checks configuration, fit state and shape guards.
func TestRidgeErrors(t *testing.T) {
	tab, y := sepTable(t)

	err := NewRidge(-0.5).Fit(tab, y)
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "lambda must be non-negative")

	err = NewRidge(1).Fit(data.UnivariatePanel([][]float64{{1}}), data.Labels{"a"})
	assert.True(t, errors.IsShapeMismatch(err))

	_, err = NewRidge(1).Predict(tab)
	assert.True(t, errors.IsNotFitted(err))

	m := NewRidge(1)
	require.NoError(t, m.Fit(tab, y))
	wide, _ := data.NewTable([][]float64{{1, 2, 3}})
	_, err = m.Predict(wide)
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on 2 features, got 3")
}

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

// TestLogisticSeparable checks gradient descent separates two distant
// clusters and drives the loss down.
func TestLogisticSeparable(t *testing.T) {
	x, y := sepTable(t)

	m := NewLogistic(WithLogisticSeed(1))
	require.NoError(t, m.Fit(x, y))

	pred, err := m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, y, pred)
	assert.Less(t, m.Loss, 0.5)
}

// TestLogisticBlobsHoldout trains on a split of gaussian blobs and scores
// the held-out part.
func TestLogisticBlobsHoldout(t *testing.T) {
	x, y := synth.GaussianBlobs(80, 3, 2, 0.8, 6)
	trainX, trainY, testX, testY, err := data.TrainTestSplit(x, y, 0.25, 6)
	require.NoError(t, err)

	m := NewLogistic(WithLogisticSeed(2), WithEpochs(300))
	require.NoError(t, m.Fit(trainX, trainY))

	pred, err := m.Predict(testX)
	require.NoError(t, err)
	acc, err := metrics.Accuracy(testY, pred)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.9)
}

// TestLogisticDeterministicSeed checks identical seeds produce identical
// weights.
func TestLogisticDeterministicSeed(t *testing.T) {
	x, y := synth.GaussianBlobs(40, 3, 2, 0.8, 11)

	a := NewLogistic(WithLogisticSeed(7), WithEpochs(50))
	b := NewLogistic(WithLogisticSeed(7), WithEpochs(50))
	require.NoError(t, a.Fit(x, y))
	require.NoError(t, b.Fit(x, y))

	assert.Equal(t, a.W, b.W)
	assert.Equal(t, a.B, b.B)
	assert.Equal(t, a.Loss, b.Loss)
}

// TestLogisticErrors checks configuration, shape and fit-state guards.
func TestLogisticErrors(t *testing.T) {
	x, y := sepTable(t)

	err := NewLogistic(WithLearnRate(0)).Fit(x, y)
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "learning rate must be positive")

	assert.True(t, errors.IsConfiguration(NewLogistic(WithEpochs(0)).Fit(x, y)))
	assert.True(t, errors.IsConfiguration(NewLogistic(WithTolerance(-1)).Fit(x, y)))

	panel := data.UnivariatePanel([][]float64{{1, 2}, {3, 4}})
	err = NewLogistic(WithLogisticSeed(1)).Fit(panel, data.Labels{"a", "b"})
	assert.True(t, errors.IsShapeMismatch(err))

	_, err = NewLogistic().Predict(x)
	assert.True(t, errors.IsNotFitted(err))

	m := NewLogistic(WithLogisticSeed(1))
	require.NoError(t, m.Fit(x, y))
	wide, _ := data.NewTable([][]float64{{1, 2, 3}})
	_, err = m.Predict(wide)
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "fitted on 2 features, got 3")
}

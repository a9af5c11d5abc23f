package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// TestDummyPredictsMajority checks the constant majority prediction.
func TestDummyPredictsMajority(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{1}, {2}, {3}})
	m := NewDummy()
	require.NoError(t, m.Fit(tab, data.Labels{"a", "b", "a"}))

	test, _ := data.NewTable([][]float64{{7}, {8}})
	pred, err := m.Predict(test)
	require.NoError(t, err)
	assert.Equal(t, data.Labels{"a", "a"}, pred)
}

// TestDummyGuards checks fit state and empty input handling.
func TestDummyGuards(t *testing.T) {
	tab, _ := data.NewTable([][]float64{{1}})

	_, err := NewDummy().Predict(tab)
	assert.True(t, errors.IsNotFitted(err))

	m := NewDummy()
	require.NoError(t, m.Fit(tab, data.Labels{"a"}))
	_, err = m.Predict(&data.Table{})
	assert.True(t, errors.IsShapeMismatch(err))
}

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// sepTable returns two tight, well separated clusters with three rows each.
func sepTable(t *testing.T) (*data.Table, data.Labels) {
	t.Helper()
	tab, err := data.NewTable([][]float64{
		{0, 0},
		{0.1, 0},
		{0, 0.1},
		{5, 5},
		{5.1, 5},
		{5, 5.1},
	})
	require.NoError(t, err)
	return tab, data.Labels{"a", "a", "a", "b", "b", "b"}
}

// TestMajorityLabel checks the first-seen tie break.
func TestMajorityLabel(t *testing.T) {
	tests := []struct {
		name string
		y    data.Labels
		want string
	}{
		{name: "clear majority", y: data.Labels{"b", "a", "b"}, want: "b"},
		{name: "tie keeps first seen", y: data.Labels{"a", "b"}, want: "a"},
		{name: "empty", y: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, majorityLabel(tt.y))
		})
	}
}

// TestCheckTrain checks the shared training-shape guard.
func TestCheckTrain(t *testing.T) {
	tab, y := sepTable(t)

	assert.NoError(t, checkTrain(tab, y))
	assert.True(t, errors.IsShapeMismatch(checkTrain(nil, nil)))
	assert.True(t, errors.IsShapeMismatch(checkTrain(&data.Table{}, nil)))
	assert.True(t, errors.IsShapeMismatch(checkTrain(tab, y[:3])))
}

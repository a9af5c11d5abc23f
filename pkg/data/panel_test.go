package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
)

// TestNewPanelValidation verifies the channel structure rules.
func TestNewPanelValidation(t *testing.T) {
	tests := []struct {
		name    string
		series  [][][]float64
		wantErr bool
	}{
		{"univariate equal length", [][][]float64{{{1, 2, 3}}, {{4, 5, 6}}}, false},
		{"variable length across instances", [][][]float64{{{1, 2, 3}}, {{4, 5}}}, false},
		{"multivariate", [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}, false},
		{"empty panel", nil, false},
		{"channel count differs", [][][]float64{{{1, 2}}, {{1, 2}, {3, 4}}}, true},
		{"ragged channels within instance", [][][]float64{{{1, 2, 3}, {4, 5}}}, true},
		{"no channels", [][][]float64{{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPanel(tt.series)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsShapeMismatch(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.series), p.NumInstances())
		})
	}
}

// TestPanelShapeAccessors covers lengths, channels and kind reporting.
func TestPanelShapeAccessors(t *testing.T) {
	equal := UnivariatePanel([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, 2, equal.NumInstances())
	assert.Equal(t, 1, equal.NumChannels())
	assert.Equal(t, 3, equal.SeriesLength())
	assert.True(t, equal.EqualLength())
	assert.True(t, equal.Univariate())
	assert.Equal(t, KindPanel, equal.Kind())
	assert.Equal(t, "panel", equal.Kind().String())

	ragged := UnivariatePanel([][]float64{{1, 2, 3}, {4, 5}})
	assert.Equal(t, -1, ragged.SeriesLength())
	assert.False(t, ragged.EqualLength())

	empty := &Panel{}
	assert.Equal(t, 0, empty.NumInstances())
	assert.Equal(t, 0, empty.NumChannels())
	assert.Equal(t, 0, empty.SeriesLength())
}

// TestPanelAppend verifies appended instances obey the channel structure.
func TestPanelAppend(t *testing.T) {
	p := &Panel{}
	require.NoError(t, p.Append([][]float64{{1, 2}, {3, 4}}))
	require.NoError(t, p.Append([][]float64{{5, 6, 7}, {8, 9, 10}}))
	assert.Equal(t, 2, p.NumInstances())
	assert.Equal(t, 2, p.NumChannels())

	err := p.Append([][]float64{{1, 2}})
	require.True(t, errors.IsShapeMismatch(err))
	assert.Contains(t, err.Error(), "1 channels, want 2")

	assert.True(t, errors.IsShapeMismatch(p.Append(nil)))
	assert.True(t, errors.IsShapeMismatch(p.Append([][]float64{{1, 2}, {3}})))
}

// TestPanelSelect verifies instance selection keeps order and repeats.
func TestPanelSelect(t *testing.T) {
	p := UnivariatePanel([][]float64{{0}, {1}, {2}, {3}})
	sel := p.Select([]int{3, 1, 1})

	require.Equal(t, 3, sel.NumInstances())
	assert.Equal(t, []float64{3}, sel.Series[0][0])
	assert.Equal(t, []float64{1}, sel.Series[1][0])
	assert.Equal(t, []float64{1}, sel.Series[2][0])
}

// TestPanelClone verifies deep copies do not alias the original storage.
func TestPanelClone(t *testing.T) {
	p := UnivariatePanel([][]float64{{1, 2}, {3, 4}})
	c := p.Clone()
	c.Series[0][0][0] = 99

	assert.Equal(t, 1.0, p.Series[0][0][0])
	assert.Equal(t, 99.0, c.Series[0][0][0])
}

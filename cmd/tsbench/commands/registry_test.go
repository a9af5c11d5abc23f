package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsml/errors"
	"tsml/pkg/data"
)

// TestBuildDataset checks each generator kind and the unknown-kind error.
func TestBuildDataset(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatasetConfig
		want data.Kind
	}{
		{
			name: "waves",
			cfg:  DatasetConfig{Kind: "waves", Instances: 10, Length: 16, Channels: 1, Classes: 2, Seed: 1},
			want: data.KindPanel,
		},
		{
			name: "ragged",
			cfg:  DatasetConfig{Kind: "ragged", Instances: 10, MinLength: 8, MaxLength: 16, Channels: 2, Classes: 2, Seed: 1},
			want: data.KindPanel,
		},
		{
			name: "blobs",
			cfg:  DatasetConfig{Kind: "blobs", Instances: 10, Features: 3, Classes: 2, Spread: 1, Seed: 1},
			want: data.KindTable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, y, err := BuildDataset(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Kind())
			assert.Equal(t, 10, d.NumInstances())
			assert.Len(t, y, 10)
		})
	}

	_, _, err := BuildDataset(DatasetConfig{Kind: "iris"})
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), `unknown dataset kind "iris"`)
}

// TestBuildPipeline checks every listed pipeline assembles with a final
// estimator stage.
func TestBuildPipeline(t *testing.T) {
	cfg := PipelineConfig{
		K: 1, Window: 10, Trees: 5, Lambda: 1, Components: 2,
		Clusters: 2, Degree: 2, Epochs: 50, LearnRate: 0.1, Quantile: 0.05, Seed: 1,
	}
	for _, name := range PipelineNames() {
		t.Run(name, func(t *testing.T) {
			cfg := cfg
			cfg.Name = name
			stages, err := BuildPipeline(cfg)
			require.NoError(t, err)
			require.NotEmpty(t, stages)

			last := stages[len(stages)-1]
			assert.NotNil(t, last.Estimator, "final stage %q", last.Name)
			for _, s := range stages[:len(stages)-1] {
				assert.NotNil(t, s.Transformer, "stage %q", s.Name)
				assert.Nil(t, s.Estimator, "stage %q", s.Name)
			}
		})
	}

	_, err := BuildPipeline(PipelineConfig{Name: "hive-cote"})
	require.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), `unknown pipeline "hive-cote"`)
}

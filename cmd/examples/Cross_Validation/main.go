package main

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"tsml/pkg/classify"
	"tsml/pkg/data"
	"tsml/pkg/pipeline"
	"tsml/pkg/synth"
	"tsml/pkg/transform"
)

const folds = 5

func main() {
	fmt.Println("=== Cross Validation Demo ===")

	// Step 1. Generate a labelled univariate panel
	panel, labels := synth.Waves(200, 64, 1, 3, 0.1, 23)
	fmt.Printf("Generated %d series of length %d across %d classes.\n",
		panel.NumInstances(), panel.SeriesLength(), len(labels.Classes()))

	// Step 2. Partition instance indices into folds
	idx, err := data.KFold(panel.NumInstances(), folds, 11)
	if err != nil {
		panic(fmt.Sprintf("kfold failed: %v", err))
	}
	fmt.Printf("Split into %d folds of ~%d instances.\n", folds, len(idx[0]))

	// Step 3. Score each candidate pipeline across all folds
	candidates := []struct {
		name  string
		build func() *pipeline.Runner
	}{
		{"summary-forest", func() *pipeline.Runner {
			return pipeline.NewRunner([]pipeline.Stage{
				pipeline.TransformStage("normalize", transform.NewNormalize()),
				pipeline.TransformStage("summary", transform.NewSummary()),
				pipeline.EstimatorStage("forest", classify.NewForest(
					classify.WithNEstimators(30),
					classify.WithForestSeed(23),
				)),
			})
		}},
		{"summary-ridge", func() *pipeline.Runner {
			return pipeline.NewRunner([]pipeline.Stage{
				pipeline.TransformStage("summary", transform.NewSummary()),
				pipeline.TransformStage("scale", transform.NewScale()),
				pipeline.EstimatorStage("ridge", classify.NewRidge(1.0)),
			})
		}},
		{"1nn-euclidean", func() *pipeline.Runner {
			return pipeline.NewRunner([]pipeline.Stage{
				pipeline.TransformStage("normalize", transform.NewNormalize()),
				pipeline.EstimatorStage("knn", classify.NewKNN(1)),
			})
		}},
	}

	for _, cand := range candidates {
		accs := make([]float64, 0, folds)
		start := time.Now()
		for i, fold := range idx {
			trainIdx := make([]int, 0, panel.NumInstances()-len(fold))
			for j, other := range idx {
				if j != i {
					trainIdx = append(trainIdx, other...)
				}
			}
			acc, err := cand.build().FitScore(
				panel.Select(trainIdx), pick(labels, trainIdx),
				panel.Select(fold), pick(labels, fold),
			)
			if err != nil {
				panic(fmt.Sprintf("%s fold %d failed: %v", cand.name, i, err))
			}
			accs = append(accs, acc)
		}
		mean := stat.Mean(accs, nil)
		sd := stat.StdDev(accs, nil)
		fmt.Printf("\n%-16s %.2f%% +/- %.2f%% over %d folds in %v\n",
			cand.name, mean*100, sd*100, folds, time.Since(start))
		for i, acc := range accs {
			fmt.Printf("  fold %d: %.2f%%\n", i, acc*100)
		}
	}
}

func pick(labels data.Labels, idx []int) data.Labels {
	out := make(data.Labels, len(idx))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}

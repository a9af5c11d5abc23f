package main

import (
	"fmt"
	"time"

	"tsml/pkg/classify"
	"tsml/pkg/data"
	"tsml/pkg/pipeline"
	"tsml/pkg/synth"
	"tsml/pkg/transform"
)

func main() {
	fmt.Println("=== Univariate Pipeline Demo ===")

	// Step 1. Generate a labelled univariate panel
	panel, labels := synth.Waves(300, 64, 1, 3, 0.1, 42)
	fmt.Printf("Generated %d series of length %d across %d classes.\n",
		panel.NumInstances(), panel.SeriesLength(), len(labels.Classes()))

	// Step 2. Split into train/test sets
	trainX, trainY, testX, testY, err := data.TrainTestSplit(panel, labels, 0.3, 7)
	if err != nil {
		panic(fmt.Sprintf("split failed: %v", err))
	}
	fmt.Printf("\nTrain size: %d, Test size: %d\n", trainX.NumInstances(), testX.NumInstances())

	// Step 3. Build the pipeline: normalize -> summary features -> forest
	runner := pipeline.NewRunner([]pipeline.Stage{
		pipeline.TransformStage("normalize", transform.NewNormalize()),
		pipeline.TransformStage("summary", transform.NewSummary()),
		pipeline.EstimatorStage("forest", classify.NewForest(
			classify.WithNEstimators(50),
			classify.WithForestSeed(7),
		)),
	})
	fmt.Printf("\nPipeline stages: %v\n", runner.StageNames())

	// Step 4. Fit on training data
	fmt.Println("Fitting pipeline...")
	start := time.Now()
	if err := runner.Fit(trainX, trainY); err != nil {
		panic(fmt.Sprintf("fit failed: %v", err))
	}
	fmt.Printf("Fit complete in %v.\n", time.Since(start))

	// Step 5. Predict on test data
	preds, err := runner.Predict(testX)
	if err != nil {
		panic(fmt.Sprintf("predict failed: %v", err))
	}
	fmt.Println("\nFirst 10 test predictions (Pred vs True):")
	for i := 0; i < 10 && i < len(preds); i++ {
		fmt.Printf("  %s vs %s\n", preds[i], testY[i])
	}

	// Step 6. Score
	acc, err := runner.Score(testX, testY)
	if err != nil {
		panic(fmt.Sprintf("score failed: %v", err))
	}
	fmt.Printf("\nFinal accuracy on test data: %.2f%%\n", acc*100)
}

package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"tsml/pkg/classify"
	"tsml/pkg/data"
	"tsml/pkg/metrics"
	"tsml/pkg/pipeline"
	"tsml/pkg/synth"
	"tsml/pkg/transform"
)

func main() {
	fmt.Println("=== Table Preprocessing Demo ===")

	// Step 1. Generate a clean feature table
	table, labels := synth.GaussianBlobs(240, 6, 2, 1.0, 17)
	fmt.Printf("Generated %d rows with %d features across %d classes.\n",
		table.NumInstances(), table.NumFeatures(), len(labels.Classes()))

	// Step 2. Corrupt it with missing cells and gross outliers
	rnd := rand.New(rand.NewSource(17))
	missing, outliers := 0, 0
	for i := 0; i < table.NumInstances(); i++ {
		for j := 0; j < table.NumFeatures(); j++ {
			switch r := rnd.Float64(); {
			case r < 0.05:
				table.Data.Set(i, j, math.NaN())
				missing++
			case r < 0.07:
				table.Data.Set(i, j, rnd.NormFloat64()*100)
				outliers++
			}
		}
	}
	fmt.Printf("Injected %d missing cells and %d outliers.\n", missing, outliers)

	// Step 3. Split into train/test sets
	trainX, trainY, testX, testY, err := data.TrainTestSplit(table, labels, 0.3, 5)
	if err != nil {
		panic(fmt.Sprintf("split failed: %v", err))
	}
	fmt.Printf("\nTrain size: %d, Test size: %d\n", trainX.NumInstances(), testX.NumInstances())

	// Step 4. Clean inside the pipeline: impute -> winsorize -> scale -> logistic
	runner := pipeline.NewRunner([]pipeline.Stage{
		pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMedian)),
		pipeline.TransformStage("winsorize", transform.NewWinsorize(0.05)),
		pipeline.TransformStage("scale", transform.NewScale()),
		pipeline.EstimatorStage("logistic", classify.NewLogistic(
			classify.WithLogisticSeed(17),
		)),
	})
	fmt.Printf("\nPipeline stages: %v\n", runner.StageNames())

	start := time.Now()
	if err := runner.Fit(trainX, trainY); err != nil {
		panic(fmt.Sprintf("fit failed: %v", err))
	}
	preds, err := runner.Predict(testX)
	if err != nil {
		panic(fmt.Sprintf("predict failed: %v", err))
	}
	acc, err := metrics.Accuracy(testY, preds)
	if err != nil {
		panic(fmt.Sprintf("score failed: %v", err))
	}
	fmt.Printf("Logistic accuracy on test data: %.2f%% in %v\n", acc*100, time.Since(start))

	// Step 5. Confusion matrix on the test set
	classes, matrix, err := metrics.ConfusionMatrix(testY, preds)
	if err != nil {
		panic(fmt.Sprintf("confusion failed: %v", err))
	}
	fmt.Println("\nConfusion matrix (rows true, columns predicted):")
	fmt.Printf("%8s", "")
	for _, c := range classes {
		fmt.Printf("%8s", c)
	}
	fmt.Println()
	for i, row := range matrix {
		fmt.Printf("%8s", classes[i])
		for _, v := range row {
			fmt.Printf("%8d", v)
		}
		fmt.Println()
	}

	// Step 6. Compare with a forest that only imputes, trees take the rest
	forest := pipeline.NewRunner([]pipeline.Stage{
		pipeline.TransformStage("impute", transform.NewImpute(transform.ImputeMedian)),
		pipeline.EstimatorStage("forest", classify.NewForest(
			classify.WithNEstimators(50),
			classify.WithForestSeed(17),
		)),
	})
	start = time.Now()
	accF, err := forest.FitScore(trainX, trainY, testX, testY)
	if err != nil {
		panic(fmt.Sprintf("forest run failed: %v", err))
	}
	fmt.Printf("\nForest accuracy on the same split: %.2f%% in %v\n", accF*100, time.Since(start))
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tsml/pkg/classify"
	"tsml/pkg/data"
	"tsml/pkg/metrics"
	"tsml/pkg/synth"
)

func main() {
	fmt.Println("=== Forest Persistence Demo ===")

	// Step 1. Generate a feature table and split it
	table, labels := synth.GaussianBlobs(200, 5, 3, 0.8, 31)
	trainX, trainY, testX, testY, err := data.TrainTestSplit(table, labels, 0.3, 9)
	if err != nil {
		panic(fmt.Sprintf("split failed: %v", err))
	}
	fmt.Printf("Generated %d rows, train %d, test %d.\n",
		table.NumInstances(), trainX.NumInstances(), testX.NumInstances())

	// Step 2. A single tree as the baseline
	tree := classify.NewTree(classify.WithSeed(31))
	start := time.Now()
	if err := tree.Fit(trainX, trainY); err != nil {
		panic(fmt.Sprintf("tree fit failed: %v", err))
	}
	treeAcc := score(tree, testX, testY)
	fmt.Printf("\nSingle tree: %.2f%% in %v\n", treeAcc*100, time.Since(start))

	// Step 3. A forest of 60 trees on the same split
	forest := classify.NewForest(
		classify.WithNEstimators(60),
		classify.WithForestSeed(31),
	)
	start = time.Now()
	if err := forest.Fit(trainX, trainY); err != nil {
		panic(fmt.Sprintf("forest fit failed: %v", err))
	}
	forestAcc := score(forest, testX, testY)
	fmt.Printf("Forest of %d trees: %.2f%% in %v\n", forest.NEstimators, forestAcc*100, time.Since(start))

	// Step 4. Save the fitted forest to disk
	raw, err := forest.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("encode failed: %v", err))
	}
	path := filepath.Join(os.TempDir(), "forest.gob")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
	fmt.Printf("\nSaved forest to %s (%d bytes).\n", path, len(raw))

	// Step 5. Load it back into a fresh value and compare predictions
	stored, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("read failed: %v", err))
	}
	loaded := &classify.Forest{}
	if err := loaded.UnmarshalBinary(stored); err != nil {
		panic(fmt.Sprintf("decode failed: %v", err))
	}

	want, err := forest.Predict(testX)
	if err != nil {
		panic(fmt.Sprintf("predict failed: %v", err))
	}
	got, err := loaded.Predict(testX)
	if err != nil {
		panic(fmt.Sprintf("loaded predict failed: %v", err))
	}
	same := len(want) == len(got)
	for i := range want {
		if want[i] != got[i] {
			same = false
			break
		}
	}
	fmt.Printf("Loaded forest matches original on %d test predictions: %v\n", len(got), same)
}

func score(m interface {
	Predict(data.Dataset) (data.Labels, error)
}, x data.Dataset, y data.Labels) float64 {
	pred, err := m.Predict(x)
	if err != nil {
		panic(fmt.Sprintf("predict failed: %v", err))
	}
	acc, err := metrics.Accuracy(y, pred)
	if err != nil {
		panic(fmt.Sprintf("score failed: %v", err))
	}
	return acc
}

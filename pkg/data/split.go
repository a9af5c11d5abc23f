package data

import (
	"math/rand"

	"tsml/errors"
)

// TrainTestSplit shuffles and splits a dataset and its labels into train and
// test portions. testFrac is the fraction of instances assigned to the test
// set. The same seed always yields the same split.
func TrainTestSplit(d Dataset, labels Labels, testFrac float64, seed int64) (train Dataset, trainY Labels, test Dataset, testY Labels, err error) {
	n := d.NumInstances()
	if len(labels) != n {
		return nil, nil, nil, nil, errors.ShapeMismatchf("split: %d instances but %d labels", n, len(labels))
	}
	if testFrac <= 0 || testFrac >= 1 {
		return nil, nil, nil, nil, errors.Configurationf("split: test fraction %v outside (0,1)", testFrac)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFrac)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	train, err = selectInstances(d, trainIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	test, err = selectInstances(d, testIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return train, pick(labels, trainIdx), test, pick(labels, testIdx), nil
}

// Shuffle permutes a dataset and its labels in unison.
func Shuffle(d Dataset, labels Labels, seed int64) (Dataset, Labels, error) {
	n := d.NumInstances()
	if len(labels) != n {
		return nil, nil, errors.ShapeMismatchf("shuffle: %d instances but %d labels", n, len(labels))
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	out, err := selectInstances(d, perm)
	if err != nil {
		return nil, nil, err
	}
	return out, pick(labels, perm), nil
}

// KFold partitions instance indices 0..n-1 into k shuffled folds.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 || k > n {
		return nil, errors.Configurationf("kfold: k=%d outside [2,%d]", k, n)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	for i, idx := range perm {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds, nil
}

func selectInstances(d Dataset, idx []int) (Dataset, error) {
	switch v := d.(type) {
	case *Panel:
		return v.Select(idx), nil
	case *Table:
		return v.Select(idx), nil
	}
	return nil, errors.Configurationf("split: unsupported dataset type %T", d)
}

func pick(labels Labels, idx []int) Labels {
	out := make(Labels, len(idx))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}

// Package metrics scores categorical predictions against ground truth.
package metrics

import (
	"tsml/errors"
	"tsml/pkg/data"
)

// Accuracy is the fraction of predictions equal to the true label.
func Accuracy(yTrue, yPred data.Labels) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, errors.ShapeMismatchf("metrics: %d true labels vs %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, errors.ShapeMismatchf("metrics: no labels to score")
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts instances per (true, predicted) class pair. Classes
// are the sorted union of both label sets; matrix[i][j] counts instances of
// true class i predicted as class j.
func ConfusionMatrix(yTrue, yPred data.Labels) (classes []string, matrix [][]int, err error) {
	if len(yTrue) != len(yPred) {
		return nil, nil, errors.ShapeMismatchf("metrics: %d true labels vs %d predictions", len(yTrue), len(yPred))
	}
	all := make(data.Labels, 0, len(yTrue)+len(yPred))
	all = append(all, yTrue...)
	all = append(all, yPred...)
	classes = all.Classes()
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	matrix = make([][]int, len(classes))
	for i := range matrix {
		matrix[i] = make([]int, len(classes))
	}
	for i := range yTrue {
		matrix[index[yTrue[i]]][index[yPred[i]]]++
	}
	return classes, matrix, nil
}

// PrecisionRecallF1 computes macro-averaged precision, recall and F1 over
// all classes. Classes with no predicted (or no true) instances contribute
// zero to the respective average.
func PrecisionRecallF1(yTrue, yPred data.Labels) (prec, rec, f1 float64, err error) {
	classes, matrix, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, 0, 0, err
	}
	for i := range classes {
		tp := matrix[i][i]
		fp, fn := 0, 0
		for j := range classes {
			if j == i {
				continue
			}
			fp += matrix[j][i]
			fn += matrix[i][j]
		}
		var p, r float64
		if tp+fp > 0 {
			p = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			r = float64(tp) / float64(tp+fn)
		}
		prec += p
		rec += r
		if p+r > 0 {
			f1 += 2 * p * r / (p + r)
		}
	}
	k := float64(len(classes))
	return prec / k, rec / k, f1 / k, nil
}

// Package classify provides the estimators that terminate a pipeline:
// lazy nearest-neighbor search, memorizing and baseline estimators, and
// tree, forest and ridge classifiers over feature tables.
package classify

import (
	"tsml/errors"
	"tsml/pkg/data"
)

func asPanel(d data.Dataset) (*data.Panel, error) {
	p, ok := d.(*data.Panel)
	if !ok || p == nil {
		return nil, errors.ShapeMismatchf("classify: want %s input, got %s", data.KindPanel, kindOf(d))
	}
	return p, nil
}

func asTable(d data.Dataset) (*data.Table, error) {
	t, ok := d.(*data.Table)
	if !ok || t == nil {
		return nil, errors.ShapeMismatchf("classify: want %s input, got %s", data.KindTable, kindOf(d))
	}
	return t, nil
}

func kindOf(d data.Dataset) string {
	if d == nil {
		return "nil"
	}
	return d.Kind().String()
}

func checkTrain(d data.Dataset, y data.Labels) error {
	if d == nil || d.NumInstances() == 0 {
		return errors.ShapeMismatchf("classify: empty training dataset")
	}
	if d.NumInstances() != len(y) {
		return errors.ShapeMismatchf("classify: %d instances vs %d labels", d.NumInstances(), len(y))
	}
	return nil
}

// majorityLabel returns the most frequent label; ties go to the label seen
// first, so the result is deterministic.
func majorityLabel(y data.Labels) string {
	counts := make(map[string]int, len(y))
	best, bestCount := "", 0
	for _, lab := range y {
		counts[lab]++
		if counts[lab] > bestCount {
			best, bestCount = lab, counts[lab]
		}
	}
	return best
}

// rowsOf materializes a table as a row-major slice of rows.
func rowsOf(t *data.Table) [][]float64 {
	rows := make([][]float64, t.NumInstances())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Package transform provides fittable dataset-to-dataset pipeline stages.
//
// Panel stages (Pad, Normalize) keep the panel kind; Summary converts a
// panel to a feature table; the table stages (Scale, Impute, PCA,
// KMeansFeatures, Winsorize, Polynomial) operate on tables only. Feeding a
// stage the wrong dataset kind fails with a shape mismatch.
package transform

import (
	"tsml/errors"
	"tsml/pkg/data"
)

func asPanel(d data.Dataset) (*data.Panel, error) {
	p, ok := d.(*data.Panel)
	if !ok || p == nil {
		return nil, errors.ShapeMismatchf("transform: want %s input, got %s", data.KindPanel, kindOf(d))
	}
	return p, nil
}

func asTable(d data.Dataset) (*data.Table, error) {
	t, ok := d.(*data.Table)
	if !ok || t == nil {
		return nil, errors.ShapeMismatchf("transform: want %s input, got %s", data.KindTable, kindOf(d))
	}
	return t, nil
}

func kindOf(d data.Dataset) string {
	if d == nil {
		return "nil"
	}
	return d.Kind().String()
}

package transform

import (
	"gonum.org/v1/gonum/stat"

	"tsml/pkg/data"
)

// Normalize z-normalizes each channel of each instance independently, so
// classifiers compare series by shape rather than level. It learns nothing
// from the training set.
type Normalize struct{}

func NewNormalize() *Normalize { return &Normalize{} }

func (*Normalize) Fit(d data.Dataset, _ data.Labels) error {
	_, err := asPanel(d)
	return err
}

func (*Normalize) Transform(d data.Dataset) (data.Dataset, error) {
	panel, err := asPanel(d)
	if err != nil {
		return nil, err
	}
	out := make([][][]float64, len(panel.Series))
	for i, inst := range panel.Series {
		channels := make([][]float64, len(inst))
		for c, ch := range inst {
			norm := make([]float64, len(ch))
			mean, std := stat.MeanStdDev(ch, nil)
			if len(ch) < 2 || std == 0 {
				std = 1
			}
			for t, v := range ch {
				norm[t] = (v - mean) / std
			}
			channels[c] = norm
		}
		out[i] = channels
	}
	return &data.Panel{Series: out}, nil
}

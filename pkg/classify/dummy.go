package classify

import (
	"tsml/errors"
	"tsml/pkg/data"
)

// Dummy predicts the most frequent training label for every instance,
// the floor any real classifier should beat.
type Dummy struct {
	class string
	fit   bool
}

func NewDummy() *Dummy { return &Dummy{} }

func (m *Dummy) Fit(d data.Dataset, y data.Labels) error {
	if err := checkTrain(d, y); err != nil {
		return err
	}
	m.class = majorityLabel(y)
	m.fit = true
	return nil
}

func (m *Dummy) Predict(d data.Dataset) (data.Labels, error) {
	if !m.fit {
		return nil, errors.NotFittedf("dummy: predict before fit")
	}
	if d == nil || d.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("dummy: empty dataset")
	}
	out := make(data.Labels, d.NumInstances())
	for i := range out {
		out[i] = m.class
	}
	return out, nil
}

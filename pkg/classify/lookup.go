package classify

import (
	"fmt"

	"tsml/errors"
	"tsml/pkg/data"
)

// Lookup memorizes each training instance's label keyed by its exact
// values and predicts by table lookup, falling back to the majority
// training label for unseen instances. On its own training set it is
// exact, which makes it a useful end-to-end sanity check.
type Lookup struct {
	table    map[string]string
	fallback string
	fit      bool
}

func NewLookup() *Lookup { return &Lookup{} }

func (l *Lookup) Fit(d data.Dataset, y data.Labels) error {
	if err := checkTrain(d, y); err != nil {
		return err
	}
	l.table = make(map[string]string, d.NumInstances())
	for i := 0; i < d.NumInstances(); i++ {
		key, err := fingerprint(d, i)
		if err != nil {
			return err
		}
		l.table[key] = y[i]
	}
	l.fallback = majorityLabel(y)
	l.fit = true
	return nil
}

func (l *Lookup) Predict(d data.Dataset) (data.Labels, error) {
	if !l.fit {
		return nil, errors.NotFittedf("lookup: predict before fit")
	}
	if d == nil || d.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("lookup: empty dataset")
	}
	out := make(data.Labels, d.NumInstances())
	for i := range out {
		key, err := fingerprint(d, i)
		if err != nil {
			return nil, err
		}
		if lab, ok := l.table[key]; ok {
			out[i] = lab
		} else {
			out[i] = l.fallback
		}
	}
	return out, nil
}

func fingerprint(d data.Dataset, i int) (string, error) {
	switch v := d.(type) {
	case *data.Panel:
		return fmt.Sprint(v.Instance(i)), nil
	case *data.Table:
		return fmt.Sprint(v.Row(i)), nil
	}
	return "", errors.Configurationf("lookup: unsupported dataset type %T", d)
}

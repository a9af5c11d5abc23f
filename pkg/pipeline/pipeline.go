// Package pipeline chains named transform stages into a classifier and
// runs fit, predict and score over it.
package pipeline

import (
	"tsml/errors"
	"tsml/pkg/data"
)

// Transformer is a fittable dataset-to-dataset step.
type Transformer interface {
	Fit(d data.Dataset, y data.Labels) error
	Transform(d data.Dataset) (data.Dataset, error)
}

// Estimator is the terminal step mapping a dataset to one label per instance.
type Estimator interface {
	Fit(d data.Dataset, y data.Labels) error
	Predict(d data.Dataset) (data.Labels, error)
}

// Stage is a named pipeline step. Exactly one of Transformer or Estimator
// must be set; an estimator may only sit in the final position.
type Stage struct {
	Name        string
	Transformer Transformer
	Estimator   Estimator
}

// TransformStage wraps a transformer as a named stage.
func TransformStage(name string, t Transformer) Stage {
	return Stage{Name: name, Transformer: t}
}

// EstimatorStage wraps an estimator as a named stage.
func EstimatorStage(name string, e Estimator) Stage {
	return Stage{Name: name, Estimator: e}
}

func validate(stages []Stage) error {
	if len(stages) == 0 {
		return errors.Configurationf("pipeline: no stages")
	}
	seen := make(map[string]bool, len(stages))
	for i, s := range stages {
		if s.Name == "" {
			return errors.Configurationf("pipeline: stage %d has no name", i)
		}
		if seen[s.Name] {
			return errors.Configurationf("pipeline: duplicate stage name %q", s.Name)
		}
		seen[s.Name] = true
		if s.Transformer != nil && s.Estimator != nil {
			return errors.Configurationf("pipeline: stage %q is both transformer and estimator", s.Name)
		}
		if s.Transformer == nil && s.Estimator == nil {
			return errors.Configurationf("pipeline: stage %q is empty", s.Name)
		}
		if s.Estimator != nil && i != len(stages)-1 {
			return errors.Configurationf("pipeline: estimator stage %q before the final position", s.Name)
		}
	}
	if last := stages[len(stages)-1]; last.Estimator == nil {
		return errors.Configurationf("pipeline: final stage %q is not an estimator", last.Name)
	}
	return nil
}

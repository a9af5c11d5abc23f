package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tsml/errors"
	"tsml/pkg/data"
	"tsml/pkg/metrics"
)

// Runner executes a stage sequence synchronously on the calling goroutine.
// It is not safe for concurrent use; fit once, then predict or score as
// often as needed.
type Runner struct {
	stages []Stage
	log    *zap.SugaredLogger
	runID  string
	fitted bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger attaches a logger; stage timings are logged at debug level.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRunID overrides the generated run identifier carried in log fields.
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// NewRunner builds a runner over the given stages. The stage list is
// validated at Fit time, not here, so a misconfigured runner surfaces its
// configuration error on first use.
func NewRunner(stages []Stage, opts ...Option) *Runner {
	r := &Runner{
		stages: stages,
		log:    zap.NewNop().Sugar(),
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the identifier attached to this runner's log entries.
func (r *Runner) RunID() string { return r.runID }

// StageNames returns the configured stage names in order.
func (r *Runner) StageNames() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.Name
	}
	return names
}

// Fitted reports whether Fit has completed successfully.
func (r *Runner) Fitted() bool { return r.fitted }

// Fit validates the stage list, then fits and applies each transformer in
// order and fits the final estimator on the transformed dataset.
func (r *Runner) Fit(d data.Dataset, y data.Labels) error {
	if err := validate(r.stages); err != nil {
		return err
	}
	if d == nil || d.NumInstances() == 0 {
		return errors.ShapeMismatchf("pipeline: empty training dataset")
	}
	if d.NumInstances() != len(y) {
		return errors.ShapeMismatchf("pipeline: %d instances vs %d labels", d.NumInstances(), len(y))
	}

	start := time.Now()
	cur := d
	for _, s := range r.stages[:len(r.stages)-1] {
		t := time.Now()
		if err := s.Transformer.Fit(cur, y); err != nil {
			return errors.Wrapf(err, "pipeline: fit stage %q", s.Name)
		}
		next, err := s.Transformer.Transform(cur)
		if err != nil {
			return errors.Wrapf(err, "pipeline: transform stage %q", s.Name)
		}
		if next == nil || next.NumInstances() != cur.NumInstances() {
			return errors.ShapeMismatchf("pipeline: stage %q changed instance count", s.Name)
		}
		cur = next
		r.log.Debugw("stage fitted", "run", r.runID, "stage", s.Name, "took", time.Since(t))
	}

	final := r.stages[len(r.stages)-1]
	t := time.Now()
	if err := final.Estimator.Fit(cur, y); err != nil {
		return errors.Wrapf(err, "pipeline: fit stage %q", final.Name)
	}
	r.log.Debugw("stage fitted", "run", r.runID, "stage", final.Name, "took", time.Since(t))

	r.fitted = true
	r.log.Infow("pipeline fitted", "run", r.runID, "stages", len(r.stages), "instances", d.NumInstances(), "took", time.Since(start))
	return nil
}

// Predict pushes the dataset through the fitted transformers and returns
// the final estimator's label per instance.
func (r *Runner) Predict(d data.Dataset) (data.Labels, error) {
	if !r.fitted {
		return nil, errors.NotFittedf("pipeline: predict before fit")
	}
	if d == nil || d.NumInstances() == 0 {
		return nil, errors.ShapeMismatchf("pipeline: empty dataset")
	}

	cur := d
	for _, s := range r.stages[:len(r.stages)-1] {
		next, err := s.Transformer.Transform(cur)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: transform stage %q", s.Name)
		}
		if next == nil || next.NumInstances() != cur.NumInstances() {
			return nil, errors.ShapeMismatchf("pipeline: stage %q changed instance count", s.Name)
		}
		cur = next
	}

	final := r.stages[len(r.stages)-1]
	y, err := final.Estimator.Predict(cur)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline: predict stage %q", final.Name)
	}
	if len(y) != d.NumInstances() {
		return nil, errors.ShapeMismatchf("pipeline: stage %q returned %d predictions for %d instances", final.Name, len(y), d.NumInstances())
	}
	return y, nil
}

// Score predicts on the dataset and returns accuracy against y.
func (r *Runner) Score(d data.Dataset, y data.Labels) (float64, error) {
	if !r.fitted {
		return 0, errors.NotFittedf("pipeline: score before fit")
	}
	if d != nil && d.NumInstances() != len(y) {
		return 0, errors.ShapeMismatchf("pipeline: %d instances vs %d labels", d.NumInstances(), len(y))
	}
	pred, err := r.Predict(d)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.Accuracy(y, pred)
	if err != nil {
		return 0, err
	}
	r.log.Infow("pipeline scored", "run", r.runID, "instances", len(y), "accuracy", acc)
	return acc, nil
}

// FitScore fits on the train split and scores on the test split.
func (r *Runner) FitScore(trainX data.Dataset, trainY data.Labels, testX data.Dataset, testY data.Labels) (float64, error) {
	if err := r.Fit(trainX, trainY); err != nil {
		return 0, err
	}
	return r.Score(testX, testY)
}

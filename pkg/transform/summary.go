package transform

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"tsml/errors"
	"tsml/pkg/data"
)

// Summary reduces each channel of a panel to eight descriptive statistics
// (mean, std, min, max, median, slope, mean absolute change and lag-1
// autocorrelation) and emits them as a feature table. The last three react
// to series shape, so frequency differences survive even when a Normalize
// stage has flattened scale and offset. It accepts variable-length input
// since every statistic is computed per series. The channel count is fixed
// at fit time.
type Summary struct {
	channels int
	fit      bool
}

func NewSummary() *Summary { return &Summary{} }

// FeaturesPerChannel is the width Summary adds per input channel.
const FeaturesPerChannel = 8

func (s *Summary) Fit(d data.Dataset, _ data.Labels) error {
	panel, err := asPanel(d)
	if err != nil {
		return err
	}
	if panel.NumInstances() == 0 {
		return errors.ShapeMismatchf("summary: empty panel")
	}
	s.channels = panel.NumChannels()
	s.fit = true
	return nil
}

func (s *Summary) Transform(d data.Dataset) (data.Dataset, error) {
	if !s.fit {
		return nil, errors.NotFittedf("summary: transform before fit")
	}
	panel, err := asPanel(d)
	if err != nil {
		return nil, err
	}
	if got := panel.NumChannels(); got != s.channels {
		return nil, errors.ShapeMismatchf("summary: fitted on %d channels, got %d", s.channels, got)
	}
	rows := make([][]float64, len(panel.Series))
	for i, inst := range panel.Series {
		row := make([]float64, 0, s.channels*FeaturesPerChannel)
		for _, ch := range inst {
			row = append(row, channelSummary(ch)...)
		}
		rows[i] = row
	}
	return data.NewTable(rows)
}

func channelSummary(ch []float64) []float64 {
	if len(ch) == 0 {
		return make([]float64, FeaturesPerChannel)
	}
	mean, std := stat.MeanStdDev(ch, nil)
	if len(ch) < 2 {
		std = 0
	}
	sorted := make([]float64, len(ch))
	copy(sorted, ch)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	// Slope of the least-squares line over time index 0..n-1.
	var slope float64
	if len(ch) >= 2 {
		xs := make([]float64, len(ch))
		floats.Span(xs, 0, float64(len(ch)-1))
		_, slope = stat.LinearRegression(xs, ch, nil, false)
	}

	var absChange float64
	if len(ch) >= 2 {
		for t := 1; t < len(ch); t++ {
			absChange += math.Abs(ch[t] - ch[t-1])
		}
		absChange /= float64(len(ch) - 1)
	}

	// Lag-1 autocorrelation; constant series have no defined correlation
	// and fall back to zero.
	var acf float64
	if len(ch) >= 3 {
		acf = stat.Correlation(ch[:len(ch)-1], ch[1:], nil)
		if math.IsNaN(acf) {
			acf = 0
		}
	}

	return []float64{mean, std, sorted[0], sorted[len(sorted)-1], median, slope, absChange, acf}
}

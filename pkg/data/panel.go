package data

import (
	"tsml/errors"
)

// Panel holds a collection of time series instances. Series is indexed by
// instance, then channel, then time point. Every instance carries the same
// number of channels; series length may vary across instances, but within a
// single instance all channels share one length.
type Panel struct {
	Series [][][]float64
}

// NewPanel validates the channel structure and wraps it as a Panel.
func NewPanel(series [][][]float64) (*Panel, error) {
	if len(series) == 0 {
		return &Panel{}, nil
	}
	channels := len(series[0])
	if channels == 0 {
		return nil, errors.ShapeMismatchf("panel: instance 0 has no channels")
	}
	for i, inst := range series {
		if len(inst) != channels {
			return nil, errors.ShapeMismatchf("panel: instance %d has %d channels, want %d", i, len(inst), channels)
		}
		length := len(inst[0])
		for c, ch := range inst {
			if len(ch) != length {
				return nil, errors.ShapeMismatchf("panel: instance %d channel %d has length %d, want %d", i, c, len(ch), length)
			}
		}
	}
	return &Panel{Series: series}, nil
}

// UnivariatePanel wraps one series per instance as a single-channel panel.
// Lengths may differ between instances.
func UnivariatePanel(series [][]float64) *Panel {
	wrapped := make([][][]float64, len(series))
	for i, s := range series {
		wrapped[i] = [][]float64{s}
	}
	return &Panel{Series: wrapped}
}

// NumInstances returns the number of instances in the panel.
func (p *Panel) NumInstances() int { return len(p.Series) }

// Kind returns KindPanel.
func (p *Panel) Kind() Kind { return KindPanel }

// NumChannels returns the channel count, or 0 for an empty panel.
func (p *Panel) NumChannels() int {
	if len(p.Series) == 0 {
		return 0
	}
	return len(p.Series[0])
}

// SeriesLength returns the shared series length, or -1 when instances have
// differing lengths.
func (p *Panel) SeriesLength() int {
	if len(p.Series) == 0 {
		return 0
	}
	length := p.instanceLength(0)
	for i := 1; i < len(p.Series); i++ {
		if p.instanceLength(i) != length {
			return -1
		}
	}
	return length
}

// EqualLength reports whether all instances share one series length.
func (p *Panel) EqualLength() bool { return p.SeriesLength() >= 0 }

// Univariate reports whether the panel carries a single channel.
func (p *Panel) Univariate() bool { return p.NumChannels() == 1 }

// Instance returns the channels of instance i. The slices are shared, not
// copied.
func (p *Panel) Instance(i int) [][]float64 { return p.Series[i] }

// Append adds one instance, enforcing the panel's channel structure.
func (p *Panel) Append(instance [][]float64) error {
	if len(instance) == 0 {
		return errors.ShapeMismatchf("panel: instance has no channels")
	}
	if n := p.NumChannels(); n > 0 && len(instance) != n {
		return errors.ShapeMismatchf("panel: instance has %d channels, want %d", len(instance), n)
	}
	length := len(instance[0])
	for c, ch := range instance {
		if len(ch) != length {
			return errors.ShapeMismatchf("panel: channel %d has length %d, want %d", c, len(ch), length)
		}
	}
	p.Series = append(p.Series, instance)
	return nil
}

// Select returns a panel holding the instances at idx, sharing the
// underlying series storage.
func (p *Panel) Select(idx []int) *Panel {
	out := make([][][]float64, len(idx))
	for i, j := range idx {
		out[i] = p.Series[j]
	}
	return &Panel{Series: out}
}

// Clone deep-copies the panel.
func (p *Panel) Clone() *Panel {
	out := make([][][]float64, len(p.Series))
	for i, inst := range p.Series {
		ci := make([][]float64, len(inst))
		for c, ch := range inst {
			cc := make([]float64, len(ch))
			copy(cc, ch)
			ci[c] = cc
		}
		out[i] = ci
	}
	return &Panel{Series: out}
}

func (p *Panel) instanceLength(i int) int {
	if len(p.Series[i]) == 0 {
		return 0
	}
	return len(p.Series[i][0])
}

package transform

import (
	"tsml/errors"
	"tsml/pkg/data"
)

// Pad brings a variable-length panel to equal length by appending Value to
// short series and truncating long ones. The target length is the longest
// training series unless Length is set.
type Pad struct {
	Value  float64
	Length int

	length int
	fit    bool
}

func NewPad() *Pad { return &Pad{} }

func (p *Pad) Fit(d data.Dataset, _ data.Labels) error {
	panel, err := asPanel(d)
	if err != nil {
		return err
	}
	p.length = p.Length
	if p.length <= 0 {
		for _, inst := range panel.Series {
			if len(inst) > 0 && len(inst[0]) > p.length {
				p.length = len(inst[0])
			}
		}
	}
	if p.length <= 0 {
		return errors.ShapeMismatchf("pad: no series to learn a length from")
	}
	p.fit = true
	return nil
}

func (p *Pad) Transform(d data.Dataset) (data.Dataset, error) {
	if !p.fit {
		return nil, errors.NotFittedf("pad: transform before fit")
	}
	panel, err := asPanel(d)
	if err != nil {
		return nil, err
	}
	out := make([][][]float64, len(panel.Series))
	for i, inst := range panel.Series {
		channels := make([][]float64, len(inst))
		for c, ch := range inst {
			padded := make([]float64, p.length)
			n := copy(padded, ch)
			for t := n; t < p.length; t++ {
				padded[t] = p.Value
			}
			channels[c] = padded
		}
		out[i] = channels
	}
	return &data.Panel{Series: out}, nil
}

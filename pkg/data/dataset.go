// Package data holds the dataset representations that flow between pipeline
// stages: panels of time series instances, feature tables, and the label
// collections aligned with them.
package data

// Kind discriminates the representations a stage can consume or produce.
type Kind int

const (
	// KindPanel is a collection of instances, each one or more ordered
	// series of real-valued observations.
	KindPanel Kind = iota
	// KindTable is an instances-by-features matrix, the shape produced by
	// feature-extraction stages.
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindPanel:
		return "panel"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Dataset is implemented by Panel and Table. Stages declare what they accept
// by type-switching on the concrete kind; feeding a stage the wrong kind is a
// shape mismatch, not a panic.
type Dataset interface {
	NumInstances() int
	Kind() Kind
}

package data

import "sort"

// Labels holds one categorical value per instance, aligned by index with the
// dataset it accompanies.
type Labels []string

// Classes returns the distinct labels in sorted order.
func (l Labels) Classes() []string {
	seen := make(map[string]struct{}, len(l))
	var out []string
	for _, v := range l {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Encoder maps class labels to contiguous integer codes and back. Codes are
// assigned in first-seen order over the labels the encoder was built from.
type Encoder struct {
	classes []string
	index   map[string]int
}

// NewEncoder builds an encoder from the given labels.
func NewEncoder(labels Labels) *Encoder {
	e := &Encoder{index: make(map[string]int)}
	for _, v := range labels {
		if _, ok := e.index[v]; !ok {
			e.index[v] = len(e.classes)
			e.classes = append(e.classes, v)
		}
	}
	return e
}

// NumClasses returns the number of distinct classes seen.
func (e *Encoder) NumClasses() int { return len(e.classes) }

// Classes returns the classes in code order. The slice is shared.
func (e *Encoder) Classes() []string { return e.classes }

// Code returns the code for a label and whether the label is known.
func (e *Encoder) Code(label string) (int, bool) {
	c, ok := e.index[label]
	return c, ok
}

// Class returns the label for a code.
func (e *Encoder) Class(code int) string { return e.classes[code] }

// Encode maps labels to codes. Unknown labels map to -1.
func (e *Encoder) Encode(labels Labels) []int {
	out := make([]int, len(labels))
	for i, v := range labels {
		if c, ok := e.index[v]; ok {
			out[i] = c
		} else {
			out[i] = -1
		}
	}
	return out
}

// Decode maps codes back to labels.
func (e *Encoder) Decode(codes []int) Labels {
	out := make(Labels, len(codes))
	for i, c := range codes {
		out[i] = e.classes[c]
	}
	return out
}

package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLabelsClasses verifies deduplication and sorted order.
func TestLabelsClasses(t *testing.T) {
	y := Labels{"b", "a", "b", "c", "a"}
	assert.Equal(t, []string{"a", "b", "c"}, y.Classes())

	assert.Empty(t, Labels{}.Classes())
}

// TestEncoderRoundTrip verifies first-seen code assignment and decoding.
func TestEncoderRoundTrip(t *testing.T) {
	y := Labels{"cat", "dog", "cat", "bird"}
	enc := NewEncoder(y)

	assert.Equal(t, 3, enc.NumClasses())
	assert.Equal(t, []string{"cat", "dog", "bird"}, enc.Classes())

	code, ok := enc.Code("dog")
	assert.True(t, ok)
	assert.Equal(t, 1, code)
	assert.Equal(t, "dog", enc.Class(1))

	codes := enc.Encode(y)
	assert.Equal(t, []int{0, 1, 0, 2}, codes)
	assert.Equal(t, y, enc.Decode(codes))
}

// TestEncoderUnknownLabel verifies unknown labels map to -1.
func TestEncoderUnknownLabel(t *testing.T) {
	enc := NewEncoder(Labels{"a"})

	_, ok := enc.Code("z")
	assert.False(t, ok)
	assert.Equal(t, []int{0, -1}, enc.Encode(Labels{"a", "z"}))
}

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelHelpers verifies each error kind is detected by its helper
// and not by the others.
func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"configuration detected", Configurationf("k must be positive, got %d", 0), IsConfiguration, true},
		{"not fitted detected", NotFittedf("predict before fit"), IsNotFitted, true},
		{"shape mismatch detected", ShapeMismatchf("%d vs %d", 3, 5), IsShapeMismatch, true},
		{"kinds do not cross", NotFittedf("x"), IsConfiguration, false},
		{"plain error is no kind", New("plain"), IsShapeMismatch, false},
		{"nil is no kind", nil, IsNotFitted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

// TestWrapPreservesKind verifies that adding context does not lose the kind.
func TestWrapPreservesKind(t *testing.T) {
	err := ShapeMismatchf("4 instances vs 3 labels")
	wrapped := Wrapf(err, "pipeline: fit stage %q", "pad")

	assert.True(t, IsShapeMismatch(wrapped))
	assert.True(t, Is(wrapped, ErrShapeMismatch))
	assert.Contains(t, wrapped.Error(), "pad")
	assert.Contains(t, wrapped.Error(), "4 instances vs 3 labels")
}

// TestKindMessages verifies the formatted detail and the sentinel text both
// appear in the message.
func TestKindMessages(t *testing.T) {
	err := Configurationf("k must be positive, got %d", -1)
	assert.Contains(t, err.Error(), "got -1")
	assert.Contains(t, err.Error(), ErrConfiguration.Error())
}

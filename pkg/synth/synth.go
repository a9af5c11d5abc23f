// Package synth generates labelled synthetic problems for demos and tests.
package synth

import (
	"math"
	"math/rand"
	"strconv"

	"tsml/pkg/data"
)

// Waves generates n labelled instances of noisy sinusoids with channels
// channels of the given length. Each class uses its own frequency, so the
// classes are separable by shape. Labels are the class index as a string.
func Waves(n, length, channels, classes int, noise float64, seed int64) (*data.Panel, data.Labels) {
	rnd := rand.New(rand.NewSource(seed))
	series := make([][][]float64, n)
	labels := make(data.Labels, n)
	for i := 0; i < n; i++ {
		class := i % classes
		labels[i] = strconv.Itoa(class)
		series[i] = waveInstance(rnd, class, length, channels, noise)
	}
	return &data.Panel{Series: series}, labels
}

// RaggedWaves is Waves with per-instance lengths drawn uniformly from
// [minLen, maxLen], producing a variable-length panel.
func RaggedWaves(n, minLen, maxLen, channels, classes int, noise float64, seed int64) (*data.Panel, data.Labels) {
	rnd := rand.New(rand.NewSource(seed))
	series := make([][][]float64, n)
	labels := make(data.Labels, n)
	for i := 0; i < n; i++ {
		class := i % classes
		labels[i] = strconv.Itoa(class)
		length := minLen
		if maxLen > minLen {
			length += rnd.Intn(maxLen - minLen + 1)
		}
		series[i] = waveInstance(rnd, class, length, channels, noise)
	}
	return &data.Panel{Series: series}, labels
}

// GaussianBlobs generates a table of n instances in the given number of
// features, one gaussian cluster per class. spread is the cluster standard
// deviation; centers sit 4 units apart per class, so spread around 1 keeps
// the classes separable.
func GaussianBlobs(n, features, classes int, spread float64, seed int64) (*data.Table, data.Labels) {
	rnd := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	labels := make(data.Labels, n)
	for i := 0; i < n; i++ {
		class := i % classes
		labels[i] = strconv.Itoa(class)
		row := make([]float64, features)
		for j := range row {
			center := 4.0 * float64(class)
			if j%2 == 1 {
				center = -center
			}
			row[j] = center + rnd.NormFloat64()*spread
		}
		rows[i] = row
	}
	t, _ := data.NewTable(rows)
	return t, labels
}

func waveInstance(rnd *rand.Rand, class, length, channels int, noise float64) [][]float64 {
	inst := make([][]float64, channels)
	phase := rnd.Float64() * 2 * math.Pi
	freq := float64(class + 1)
	for c := 0; c < channels; c++ {
		ch := make([]float64, length)
		for t := 0; t < length; t++ {
			pos := float64(t) / float64(length)
			ch[t] = math.Sin(2*math.Pi*freq*pos+phase+float64(c)) + rnd.NormFloat64()*noise
		}
		inst[c] = ch
	}
	return inst
}

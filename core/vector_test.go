package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)

		var mag float64
		for _, x := range v {
			mag += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(mag), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{2, 0}
		_ = NormalizeVector(in)
		assert.Equal(t, []float32{2, 0}, in)
	})
}

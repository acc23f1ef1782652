package glasstime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrentMinimizeQuadratic(t *testing.T) {
	const c = 3.7
	f := func(x float64) float64 { return (x - c) * (x - c) }

	_, xMin := BrentMinimize(f, 0, 10, 1e-8)
	assert.Less(t, math.Abs(xMin-c), 1e-4)
}

func TestBrentMinimizeOffCenter(t *testing.T) {
	const c = -12.25
	f := func(x float64) float64 { return (x - c) * (x - c) }

	fMin, xMin := BrentMinimize(f, -50, 50, 1e-8)
	assert.Less(t, math.Abs(xMin-c), 1e-4)
	assert.Less(t, math.Abs(fMin), 1e-6)
}

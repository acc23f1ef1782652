package glasstime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoDeltaSamePoint(t *testing.T) {
	g := NewGeoFromGeographic(45, -120, 6371)
	assert.InDelta(t, 0, g.Delta(g), 1e-9)
}

func TestGeoDeltaAntipodal(t *testing.T) {
	a := NewGeoFromGeographic(0, 0, 6371)
	b := NewGeoFromGeographic(0, 180, 6371)
	assert.InDelta(t, math.Pi, a.Delta(b), 1e-9)
}

func TestGeoAzimuthNorth(t *testing.T) {
	a := NewGeoFromGeographic(0, 0, 6371)
	b := NewGeoFromGeographic(10, 0, 6371)
	assert.InDelta(t, 0, a.Azimuth(b), 1e-6)
}

func TestGeoAzimuthEast(t *testing.T) {
	a := NewGeoFromGeographic(0, 0, 6371)
	b := NewGeoFromGeographic(0, 10, 6371)
	assert.InDelta(t, math.Pi/2, a.Azimuth(b), 1e-6)
}

func TestTaperShape(t *testing.T) {
	tp := NewTaper(0, 1, 2, 3)
	assert.Equal(t, 0.0, tp.Value(-1))
	assert.Equal(t, 1.0, tp.Value(1.5))
	assert.Equal(t, 0.0, tp.Value(4))
	assert.InDelta(t, 0.5, tp.Value(0.5), 1e-9)
}

package iconiq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathMarker(t *testing.T) {
	assert := assert.New(t)
	host := newSpyHost(nil)
	e := NewEngine(host)

	icon, err := e.pathMarker(&IconInfo{
		Kind:   ShapeCanvasPath,
		Size:   &ShapeSize{Width: 24, Height: 24},
		Points: []Point{{X: 0, Y: 0}, {X: 24, Y: 0}, {X: 12, Y: 24}},
	})
	assert.NoError(err)
	assert.NotEmpty(icon)

	c := host.lastCanvas()
	assert.Equal(24, c.w)
	assert.Equal(24, c.h)

	// Without an offset the first vertex starts the path.
	assert.Equal([]Point{{X: 0, Y: 0}}, c.moves)
	assert.Equal([]Point{{X: 24, Y: 0}, {X: 12, Y: 24}}, c.lines)
	assert.True(c.closed)
	assert.Equal(1, c.fills)
	assert.Zero(c.strokes, "no stroke without a stroke width")
}

func TestPathMarker_OffsetStartsThePath(t *testing.T) {
	assert := assert.New(t)
	host := newSpyHost(nil)
	e := NewEngine(host)

	_, err := e.pathMarker(&IconInfo{
		Kind:   ShapeCanvasPath,
		Size:   &ShapeSize{Width: 24, Height: 24},
		Points: []Point{{X: 0, Y: 0}, {X: 24, Y: 0}},
		Offset: &Point{X: 5, Y: 5},
	})
	assert.NoError(err)

	// With an offset every vertex, the first included, becomes a line.
	c := host.lastCanvas()
	assert.Equal([]Point{{X: 5, Y: 5}}, c.moves)
	assert.Equal([]Point{{X: 0, Y: 0}, {X: 24, Y: 0}}, c.lines)
}

func TestPathMarker_StrokeAndRotation(t *testing.T) {
	assert := assert.New(t)
	host := newSpyHost(nil)
	e := NewEngine(host)

	_, err := e.pathMarker(&IconInfo{
		Kind:        ShapeCanvasPath,
		Size:        &ShapeSize{Width: 24, Height: 24},
		Points:      []Point{{X: 0, Y: 0}, {X: 24, Y: 0}, {X: 12, Y: 24}},
		Rotation:    90,
		StrokeWidth: 3,
	})
	assert.NoError(err)

	c := host.lastCanvas()
	assert.Len(c.rotations, 1)
	assert.InDelta(math.Pi/2, c.rotations[0], 1e-9)
	assert.Equal(3.0, c.lineWidth)
	assert.Equal(1, c.strokes)
	// The bounding box stays at the requested size, rotation happens inside it.
	assert.Equal(24, c.w)
	assert.Equal(24, c.h)
}

package iconiq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircleMarker(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil)

	icon, err := e.circleMarker(&IconInfo{
		Kind:        ShapeDynamicCircle,
		Size:        &ShapeSize{Width: 20, Height: 20},
		Color:       "#1e90ff",
		StrokeWidth: 2,
	})
	assert.NoError(err)
	assert.Equal(
		`<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">`+
			`<circle cx="10" cy="10" r="8" fill="#1e90ff" stroke="#1e90ff" stroke-width="2"/>`+
			`</svg>`,
		icon,
	)
}

func TestCircleMarker_DefaultColor(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil)

	icon, err := e.circleMarker(&IconInfo{
		Kind: ShapeDynamicCircle,
		Size: &ShapeSize{Width: 10, Height: 10},
	})
	assert.NoError(err)
	assert.Contains(icon, `fill="`+DefaultColor+`"`)
	assert.Contains(icon, `stroke-width="0"`)
}

// An oversized stroke yields a negative radius verbatim. The markup is
// degenerate but the historical output contract keeps it that way.
func TestCircleMarker_OversizedStroke(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil)

	icon, err := e.circleMarker(&IconInfo{
		Kind:        ShapeDynamicCircle,
		Size:        &ShapeSize{Width: 10, Height: 10},
		StrokeWidth: 8,
	})
	assert.NoError(err)
	assert.Contains(icon, `r="-3"`)
}

// The radius derives from the width alone, the height only stretches the
// viewport.
func TestCircleMarker_RadiusIgnoresHeight(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil)

	icon, err := e.circleMarker(&IconInfo{
		Kind: ShapeDynamicCircle,
		Size: &ShapeSize{Width: 40, Height: 999},
	})
	assert.NoError(err)
	assert.Contains(icon, `r="20"`)
	assert.Contains(icon, `cy="499.5"`)
}

func TestCircleMarker_Minify(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil)
	e.Minify = true

	icon, err := e.circleMarker(&IconInfo{
		Kind: ShapeDynamicCircle,
		Size: &ShapeSize{Width: 20, Height: 20},
	})
	assert.NoError(err)
	assert.True(strings.HasPrefix(icon, "<svg"))
	assert.Contains(icon, "circle")
}

package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapium/iconiq"
)

func redDataURI(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("could not encode the test image: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderScene_CircleMarker(t *testing.T) {
	assert := assert.New(t)

	engine := iconiq.NewEngine(iconiq.NewRasterHost())
	r := New(engine)

	out, err := r.RenderScene(context.Background(), &Scene{
		Width:  50,
		Height: 50,
		Markers: []Marker{
			{
				Icon: &iconiq.IconInfo{
					Kind:  iconiq.ShapeDynamicCircle,
					Size:  &iconiq.ShapeSize{Width: 20, Height: 20},
					Color: "#0000ff",
				},
				At: iconiq.Point{X: 25, Y: 25},
			},
		},
	})
	assert.NoError(err)
	assert.Equal(50, out.Bounds().Dx())
	assert.Equal(50, out.Bounds().Dy())

	center := out.NRGBAAt(25, 25)
	assert.Equal(uint8(0xff), center.B, "the circle fill should cover the anchor")
	assert.Equal(uint8(0xff), center.A)
	assert.Zero(out.NRGBAAt(0, 0).A, "the backdrop stays transparent outside the stamp")
}

func TestRenderScene_ImageMarker(t *testing.T) {
	assert := assert.New(t)

	engine := iconiq.NewEngine(iconiq.NewRasterHost())
	r := New(engine)

	out, err := r.RenderScene(context.Background(), &Scene{
		Width:  30,
		Height: 30,
		Markers: []Marker{
			{
				Icon: &iconiq.IconInfo{
					Kind:  iconiq.ShapeScaledImage,
					URL:   redDataURI(t, 4, 4),
					Scale: 2,
				},
				At: iconiq.Point{X: 15, Y: 15},
			},
		},
	})
	assert.NoError(err)

	assert.Equal(uint8(0xff), out.NRGBAAt(15, 15).R)
	c := out.NRGBAAt(15, 15)
	assert.Equal(uint8(0xff), c.A)
	// The 4x4 source scaled by two covers an 8x8 box centered on the anchor.
	assert.Zero(out.NRGBAAt(2, 2).A)
}

func TestRenderScene_NoneMarkerSkipped(t *testing.T) {
	assert := assert.New(t)

	engine := iconiq.NewEngine(iconiq.NewRasterHost())
	r := New(engine)

	out, err := r.RenderScene(context.Background(), &Scene{
		Width:  10,
		Height: 10,
		Markers: []Marker{
			{Icon: &iconiq.IconInfo{Kind: iconiq.ShapeNone}, At: iconiq.Point{X: 5, Y: 5}},
		},
	})
	assert.NoError(err)
	assert.Zero(out.NRGBAAt(5, 5).A, "a none marker stamps nothing")
}

func TestRender_InvalidMarkerFails(t *testing.T) {
	assert := assert.New(t)

	engine := iconiq.NewEngine(iconiq.NewRasterHost())
	r := New(engine)

	_, err := r.RenderScene(context.Background(), &Scene{
		Width:  10,
		Height: 10,
		Markers: []Marker{
			{Icon: &iconiq.IconInfo{Kind: iconiq.ShapeCanvasPath}},
		},
	})

	var invalid *iconiq.InvalidDescriptorError
	assert.ErrorAs(err, &invalid)
}

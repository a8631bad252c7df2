package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOpSelection(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	op.Set(DstOut)
	assert.Equal(DstOut, op.Get())

	op.Set("screen")
	assert.Equal(DstOut, op.Get(), "unknown operators must not replace the active one")
}

func TestStamp_SrcOver(t *testing.T) {
	assert := assert.New(t)

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dst := solid(4, 4, white)
	src := solid(2, 2, color.NRGBA{R: 0xff, A: 0x80})

	op := InitOp()
	op.Stamp(dst, src, image.Pt(1, 1))

	// A half transparent red over white blends to a pink.
	assert.Equal(color.NRGBA{R: 0xff, G: 0x7f, B: 0x7f, A: 0xff}, dst.NRGBAAt(1, 1))
	assert.Equal(color.NRGBA{R: 0xff, G: 0x7f, B: 0x7f, A: 0xff}, dst.NRGBAAt(2, 2))
	// Pixels outside the stamped region stay untouched.
	assert.Equal(white, dst.NRGBAAt(0, 0))
	assert.Equal(white, dst.NRGBAAt(3, 3))
}

func TestStamp_OpaqueSourceReplaces(t *testing.T) {
	assert := assert.New(t)

	dst := solid(2, 2, color.NRGBA{G: 0xff, A: 0xff})
	src := solid(2, 2, color.NRGBA{B: 0xff, A: 0xff})

	op := InitOp()
	op.Stamp(dst, src, image.Pt(0, 0))
	assert.Equal(color.NRGBA{B: 0xff, A: 0xff}, dst.NRGBAAt(0, 0))
}

func TestStamp_Copy(t *testing.T) {
	assert := assert.New(t)

	dst := solid(2, 2, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	src := solid(2, 2, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	op := InitOp()
	op.Set(Copy)
	op.Stamp(dst, src, image.Pt(0, 0))
	assert.Equal(color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, dst.NRGBAAt(0, 0))
}

func TestStamp_ClipsToDestination(t *testing.T) {
	assert := assert.New(t)

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dst := solid(4, 4, white)
	src := solid(3, 3, color.NRGBA{R: 0xff, A: 0xff})

	op := InitOp()
	// Partially off the canvas on the top-left.
	op.Stamp(dst, src, image.Pt(-2, -2))
	assert.Equal(color.NRGBA{R: 0xff, A: 0xff}, dst.NRGBAAt(0, 0))
	assert.Equal(white, dst.NRGBAAt(1, 1))

	// Entirely off the canvas is a no-op.
	before := *dst
	op.Stamp(dst, src, image.Pt(10, 10))
	assert.Equal(before.Pix, dst.Pix)
}

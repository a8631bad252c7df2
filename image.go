package iconiq

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// rotatedMarker rotates a loaded image around its center. Unlike the canvas
// path shape the surface itself grows to the rotated bounding box, so no
// corner of the source image is ever clipped. The computed size is written
// back into the descriptor.
func (e *Engine) rotatedMarker(info *IconInfo, img image.Image) (string, error) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rad := info.Rotation * math.Pi / 180

	rw := int(math.Ceil(math.Abs(w*math.Cos(rad)) + math.Abs(h*math.Sin(rad))))
	rh := int(math.Ceil(math.Abs(w*math.Sin(rad)) + math.Abs(h*math.Cos(rad))))

	c := e.host.NewCanvas(rw, rh)
	c.Translate(float64(rw)/2, float64(rh)/2)
	c.Rotate(rad)
	c.DrawImage(img, -b.Dx()/2, -b.Dy()/2)

	info.Size = &ShapeSize{Width: rw, Height: rh}

	return c.Encode()
}

// roundedMarker clips a loaded image to a circular mask. The mask radius is
// derived from the descriptor width only, never the height: a non square
// size yields a circle sized to the width, not an ellipse. The surface is
// square and its dimensions are written back into the descriptor.
func (e *Engine) roundedMarker(info *IconInfo, img image.Image) (string, error) {
	size := *info.Size
	radius := float64(size.Width) / 2

	c := e.host.NewCanvas(size.Width, size.Width)
	c.ClipCircle(radius, radius, radius)

	off := info.offset()
	c.DrawImage(img, int(off.X), int(off.Y))

	info.Size = &ShapeSize{Width: size.Width, Height: size.Width}

	return c.Encode()
}

// scaledMarker resizes a loaded image by the descriptor scale factor and
// writes the resulting dimensions back into the descriptor.
func (e *Engine) scaledMarker(info *IconInfo, img image.Image) (string, error) {
	b := img.Bounds()
	sw := int(math.Round(float64(b.Dx()) * info.Scale))
	sh := int(math.Round(float64(b.Dy()) * info.Scale))

	scaled := imaging.Resize(img, sw, sh, imaging.Lanczos)

	c := e.host.NewCanvas(sw, sh)
	c.DrawImage(scaled, 0, 0)

	info.Size = &ShapeSize{Width: sw, Height: sh}

	return c.Encode()
}

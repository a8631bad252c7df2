package iconiq

import (
	"math"

	"github.com/mapium/iconiq/utils"
)

// pathMarker draws a closed polygonal path on a raster surface. When a
// rotation is requested the surface is rotated around its center before the
// path is laid down: the drawn shape appears rotated while the bounding box
// stays fixed at the requested size, unlike the image shapes where the box
// itself grows to fit.
func (e *Engine) pathMarker(info *IconInfo) (string, error) {
	size := *info.Size
	c := e.host.NewCanvas(size.Width, size.Height)

	if info.hasRotation() {
		cx, cy := float64(size.Width)/2, float64(size.Height)/2
		c.Translate(cx, cy)
		c.Rotate(info.Rotation * math.Pi / 180)
		c.Translate(-cx, -cy)
	}

	pts := info.Points
	if info.Offset != nil {
		c.MoveTo(info.Offset.X, info.Offset.Y)
	} else {
		c.MoveTo(pts[0].X, pts[0].Y)
		pts = pts[1:]
	}
	for _, pt := range pts {
		c.LineTo(pt.X, pt.Y)
	}
	c.ClosePath()

	c.SetColor(utils.HexToRGBA(info.color()))
	c.FillPreserve()
	if info.StrokeWidth > 0 {
		c.SetLineWidth(info.StrokeWidth)
		c.Stroke()
	}

	return c.Encode()
}

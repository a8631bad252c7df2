package iconiq

import (
	"math"

	"golang.org/x/image/font"

	"github.com/mapium/iconiq/utils"
)

// fontMarker renders a single text run. The surface width is taken from the
// measured text metrics and the height from the font size, so this is the
// one canvas shape whose output size differs from its input: the dimensions
// are not known until the text has been measured. The computed size is
// written back into the descriptor.
func (e *Engine) fontMarker(info *IconInfo) (string, error) {
	face, err := e.host.FontFace(info.FontName, info.FontSize)
	if err != nil {
		return "", err
	}

	width := font.MeasureString(face, info.Text).Ceil()
	if width < 1 {
		width = 1
	}
	height := int(math.Ceil(info.FontSize))

	c := e.host.NewCanvas(width, height)

	if info.hasRotation() {
		cx, cy := float64(width)/2, float64(height)/2
		c.Translate(cx, cy)
		c.Rotate(info.Rotation * math.Pi / 180)
		c.Translate(-cx, -cy)
	}

	c.SetFontFace(face)
	c.SetColor(utils.HexToRGBA(info.color()))
	// Top aligned run: the baseline sits at the font size so ascenders fill
	// the surface from the top edge down.
	c.DrawString(info.Text, 0, info.FontSize)

	info.Size = &ShapeSize{Width: width, Height: height}

	return c.Encode()
}

package iconiq

import (
	"image"
	"math"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// ShowPreview spawns a new Gio window displaying the synthesized icon or
// rendered scene and blocks until the window is closed, either through the
// window manager or the ESC key.
func ShowPreview(img image.Image, title string) error {
	bounds := img.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())

	// Retain the aspect ratio in case the image width and height
	// is greater than the predefined window.
	if width > maxScreenX && height > maxScreenY {
		widthRatio := float64(maxScreenX) / width
		heightRatio := float64(maxScreenY) / height
		ratio := math.Min(widthRatio, heightRatio)

		width *= ratio
		height *= ratio
	}

	w := app.NewWindow(
		app.Title(title),
		app.Size(unit.Px(float32(width)), unit.Px(float32(height))),
	)

	var ops op.Ops
	for {
		switch e := (<-w.Events()).(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			src := paint.NewImageOp(img)
			src.Add(gtx.Ops)

			imgWidget := widget.Image{
				Src:   src,
				Scale: 1 / float32(gtx.Px(unit.Dp(1))),
				Fit:   widget.Contain,
			}
			imgWidget.Layout(gtx)

			e.Frame(gtx.Ops)
		case key.Event:
			if e.Name == key.NameEscape {
				w.Close()
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
}

package iconiq

import (
	"fmt"
)

// ShapeKind selects the synthesis strategy used to produce a marker icon.
type ShapeKind string

// The shape kinds supported by the synthesis engine.
const (
	// ShapeNone produces no icon at all.
	ShapeNone ShapeKind = "none"
	// ShapeCanvasPath draws a closed polygonal path on a raster surface.
	ShapeCanvasPath ShapeKind = "canvas_path"
	// ShapeDynamicCircle templates a self contained SVG circle, no raster surface involved.
	ShapeDynamicCircle ShapeKind = "dynamic_circle"
	// ShapeFont renders a single text run, sized from the measured text metrics.
	ShapeFont ShapeKind = "font"
	// ShapeRotatedImage rotates a loaded image, growing the bounding box to fit.
	ShapeRotatedImage ShapeKind = "rotated_image"
	// ShapeRoundedImage clips a loaded image to a circular mask.
	ShapeRoundedImage ShapeKind = "rounded_image"
	// ShapeScaledImage resizes a loaded image by a scale factor.
	ShapeScaledImage ShapeKind = "scaled_image"
	// ShapeCustom is reserved for caller supplied synthesis hooks.
	// The engine itself never implements it.
	ShapeCustom ShapeKind = "custom"
)

// DefaultColor is the fill and stroke color applied when a descriptor does not set one.
const DefaultColor = "#ff0000"

// ShapeSize holds the pixel dimensions of a synthesized icon.
type ShapeSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point is a 2D coordinate expressed in icon surface pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// IconInfo describes the marker icon to synthesize. The Kind field selects
// the synthesis strategy and governs which of the remaining fields are
// required. Size is an input for the canvas based shapes and an output for
// the image derived ones, where the engine writes the computed dimensions
// back into the descriptor once they are known.
type IconInfo struct {
	// Kind discriminates the synthesis strategy.
	Kind ShapeKind `yaml:"kind"`

	// ID is the caller chosen cache identity. When set, the first successful
	// synthesis populates the result cache and every later request with the
	// same ID short-circuits to the cached icon.
	ID string `yaml:"id,omitempty"`

	// Size is the surface dimension. Required by the canvas path, dynamic
	// circle and rounded image shapes; computed and written back for the
	// font, rotated image and scaled image shapes.
	Size *ShapeSize `yaml:"size,omitempty"`

	// Points are the vertices of a canvas path shape.
	Points []Point `yaml:"points,omitempty"`

	// Offset shifts the drawing start position.
	Offset *Point `yaml:"offset,omitempty"`

	// Color is a hex color such as "#1e90ff". Defaults to DefaultColor.
	Color string `yaml:"color,omitempty"`

	// Rotation is expressed in degrees.
	Rotation float64 `yaml:"rotation,omitempty"`

	// StrokeWidth is the stroke thickness in pixels. Zero means no stroke.
	StrokeWidth float64 `yaml:"strokeWidth,omitempty"`

	FontName string  `yaml:"fontName,omitempty"`
	FontSize float64 `yaml:"fontSize,omitempty"`
	Text     string  `yaml:"text,omitempty"`

	// URL is the source of the image derived shapes. It may be an http(s)
	// URL, a local file path or a data URI.
	URL string `yaml:"url,omitempty"`

	// Scale is the resize factor of a scaled image shape.
	Scale float64 `yaml:"scale,omitempty"`
}

// fill marks whether a rotation was explicitly requested. The zero angle is
// indistinguishable from an absent one, which is fine: rotating by zero
// degrees is a no-op on every code path that checks it.
func (info *IconInfo) hasRotation() bool {
	return info.Rotation != 0
}

// color returns the descriptor color, falling back to DefaultColor.
func (info *IconInfo) color() string {
	if info.Color == "" {
		return DefaultColor
	}
	return info.Color
}

// offset returns the drawing offset, falling back to the origin.
func (info *IconInfo) offset() Point {
	if info.Offset != nil {
		return *info.Offset
	}
	return Point{}
}

// validate checks that every field the selected shape kind relies on is
// present. It reports all missing fields at once, naming the shape kind,
// since the shapes are near identical and a bare field name would not tell
// the caller much.
func (info *IconInfo) validate() error {
	var missing []string

	switch info.Kind {
	case ShapeCanvasPath:
		if info.Size == nil {
			missing = append(missing, "size")
		}
		if len(info.Points) == 0 {
			missing = append(missing, "points")
		}
	case ShapeDynamicCircle:
		if info.Size == nil {
			missing = append(missing, "size")
		}
	case ShapeFont:
		if info.FontName == "" {
			missing = append(missing, "fontName")
		}
		if info.FontSize <= 0 {
			missing = append(missing, "fontSize")
		}
	case ShapeRotatedImage:
		if !info.hasRotation() {
			missing = append(missing, "rotation")
		}
		if info.URL == "" {
			missing = append(missing, "url")
		}
	case ShapeRoundedImage:
		if info.Size == nil {
			missing = append(missing, "size")
		}
		if info.URL == "" {
			missing = append(missing, "url")
		}
	case ShapeScaledImage:
		if info.Scale == 0 {
			missing = append(missing, "scale")
		}
		if info.URL == "" {
			missing = append(missing, "url")
		}
	}

	if len(missing) > 0 {
		return &InvalidDescriptorError{Kind: info.Kind, Fields: missing}
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (s ShapeSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

package iconiq

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMediaType = "image/svg+xml"

var (
	minifierOnce sync.Once
	minifier     *minify.M
)

func svgMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc(svgMediaType, svg.Minify)
	})
	return minifier
}

// circleMarker templates a self contained SVG circle. No raster surface is
// involved, which is why this shape keeps working without a drawing host.
//
// The radius is width/2 minus the stroke width and is deliberately not
// clamped: an oversized stroke produces a negative radius, matching the
// historical contract pinned by the tests.
func (e *Engine) circleMarker(info *IconInfo) (string, error) {
	size := *info.Size
	radius := float64(size.Width)/2 - info.StrokeWidth
	col := info.color()

	icon := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+
			`</svg>`,
		size.Width, size.Height,
		fmtFloat(float64(size.Width)/2), fmtFloat(float64(size.Height)/2),
		fmtFloat(radius), col, col, fmtFloat(info.StrokeWidth),
	)

	if e.Minify {
		minified, err := svgMinifier().String(svgMediaType, icon)
		if err != nil {
			return "", errors.Wrap(err, "could not minify the circle markup")
		}
		icon = minified
	}
	return icon, nil
}

// fmtFloat renders a float without a trailing mantissa for whole values.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

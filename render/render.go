// Package render stamps synthesized marker icons onto a backdrop image,
// playing the role the per-provider marker services play in a browser
// hosted map: it asks the engine for each icon, resolves the deferred ones
// and hands the raster results to the composition layer.
package render

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mapium/iconiq"
	"github.com/mapium/iconiq/compose"
	"github.com/mapium/iconiq/utils"
)

// Marker places one icon on the backdrop. At is the anchor point in
// backdrop pixels; the icon is centered on it.
type Marker struct {
	Icon *iconiq.IconInfo `yaml:"icon"`
	At   iconiq.Point     `yaml:"at"`
}

// Scene is a complete render request: a backdrop source and the markers
// stamped onto it.
type Scene struct {
	// Backdrop is the source of the base image: a URL, file path or data
	// URI resolvable by the engine host. Empty means a transparent canvas
	// of Width x Height.
	Backdrop string   `yaml:"backdrop,omitempty"`
	Width    int      `yaml:"width,omitempty"`
	Height   int      `yaml:"height,omitempty"`
	Markers  []Marker `yaml:"markers"`
}

// Renderer composes marker icons over a backdrop.
type Renderer struct {
	// Op selects the composition operator, src_over unless changed.
	Op *compose.Composite

	engine *iconiq.Engine
}

// New instantiates a renderer drawing through the given engine.
func New(engine *iconiq.Engine) *Renderer {
	return &Renderer{
		Op:     compose.InitOp(),
		engine: engine,
	}
}

// Render synthesizes every marker icon concurrently, waits for the image
// derived ones to resolve and stamps each icon onto the backdrop in input
// order, so later markers overlap earlier ones.
func (r *Renderer) Render(ctx context.Context, backdrop image.Image, markers []Marker) (*image.NRGBA, error) {
	dst := iconiq.ToNRGBA(backdrop)

	icons := make([]image.Image, len(markers))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range markers {
		g.Go(func() error {
			img, err := r.rasterize(gctx, m.Icon)
			if err != nil {
				return errors.Wrapf(err, "could not rasterize marker %d", i)
			}
			icons[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, m := range markers {
		if icons[i] == nil {
			continue
		}
		b := icons[i].Bounds()
		at := image.Pt(
			int(m.At.X)-b.Dx()/2,
			int(m.At.Y)-b.Dy()/2,
		)
		r.Op.Stamp(dst, icons[i], at)
	}

	return dst, nil
}

// RenderScene resolves the scene backdrop and renders its markers.
func (r *Renderer) RenderScene(ctx context.Context, scene *Scene) (*image.NRGBA, error) {
	var backdrop image.Image

	if scene.Backdrop != "" {
		img, err := r.engine.Images().GetOrCreate(ctx, scene.Backdrop)
		if err != nil {
			return nil, errors.Wrap(err, "could not load the scene backdrop")
		}
		if img == nil {
			return nil, errors.New("the engine host cannot load the scene backdrop")
		}
		if scene.Width > 0 || scene.Height > 0 {
			img = imaging.Resize(img, scene.Width, scene.Height, imaging.Lanczos)
		}
		backdrop = img
	} else {
		w := utils.Max(scene.Width, 1)
		h := utils.Max(scene.Height, 1)
		backdrop = image.NewNRGBA(image.Rect(0, 0, w, h))
	}

	return r.Render(ctx, backdrop, scene.Markers)
}

// rasterize produces the raster form of one marker icon. Raster icons are
// decoded through the shared image cache keyed by their data URI, so many
// markers reusing the same icon decode it once; vector circle icons are
// redrawn on a canvas since there is no SVG rasterizer in the host.
func (r *Renderer) rasterize(ctx context.Context, info *iconiq.IconInfo) (image.Image, error) {
	res, err := r.engine.Synthesize(ctx, info)
	if err != nil {
		return nil, err
	}

	icon, err := res.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if icon == "" {
		return nil, nil
	}

	if iconiq.IsVector(icon) {
		return r.rasterizeCircle(info)
	}
	return r.engine.Images().GetOrCreate(ctx, icon)
}

// rasterizeCircle redraws a dynamic circle icon on a raster surface using
// the same geometry as its vector markup.
func (r *Renderer) rasterizeCircle(info *iconiq.IconInfo) (image.Image, error) {
	host := r.engine.Host()
	if host == nil {
		return nil, iconiq.ErrMissingHost
	}
	if info.Size == nil {
		return nil, errors.New("cannot rasterize a circle icon without a size")
	}

	size := *info.Size
	radius := float64(size.Width)/2 - info.StrokeWidth

	c := host.NewCanvas(size.Width, size.Height)
	if radius > 0 {
		c.DrawCircle(float64(size.Width)/2, float64(size.Height)/2, radius)
		col := info.Color
		if col == "" {
			col = iconiq.DefaultColor
		}
		c.SetColor(utils.HexToRGBA(col))
		c.FillPreserve()
		if info.StrokeWidth > 0 {
			c.SetLineWidth(info.StrokeWidth)
			c.Stroke()
		}
	}

	return c.Image(), nil
}

package iconiq

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/mapium/iconiq/utils"
)

// Canvas is an offscreen 2D drawing surface. It mirrors the subset of the
// usual canvas context operations the synthesis strategies rely on and can
// serialize itself to a portable data URI.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)

	// Translate moves the surface origin.
	Translate(x, y float64)
	// Rotate rotates the surface around the current origin, in radians.
	Rotate(radians float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// DrawCircle appends a full circle to the current path.
	DrawCircle(x, y, r float64)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	// FillPreserve fills the current path and keeps it for a stroke pass.
	FillPreserve()
	Stroke()

	// ClipCircle restricts all subsequent drawing to a circle.
	ClipCircle(x, y, r float64)

	DrawImage(img image.Image, x, y int)

	SetFontFace(face font.Face)
	DrawString(s string, x, y float64)

	// Image returns the raster content drawn so far.
	Image() image.Image
	// Encode serializes the surface to a PNG data URI.
	Encode() (string, error)
}

// Host is the environment capability the engine draws and loads through.
// It is consumed, never reimplemented: a browser-like host would back it
// with DOM canvases and image elements, this package backs it with an
// in-process raster surface. A nil Host models a headless environment.
type Host interface {
	// NewCanvas allocates an offscreen drawing surface.
	NewCanvas(w, h int) Canvas
	// LoadImage fetches and decodes the image behind src, which may be an
	// http(s) URL, a local file path or a data URI.
	LoadImage(ctx context.Context, src string) (image.Image, error)
	// FontFace resolves a font name to a concrete face at the given size.
	FontFace(name string, size float64) (font.Face, error)
}

// RasterHost is the default Host implementation. Drawing is backed by a
// gg context, fonts are resolved through a registry falling back to the
// embedded Go Regular face for names no caller registered.
type RasterHost struct {
	// Client performs the http image fetches. Defaults to http.DefaultClient.
	Client *http.Client

	mu    sync.RWMutex
	fonts map[string]*opentype.Font
}

// compile time capability check
var _ Host = (*RasterHost)(nil)

// NewRasterHost instantiates the default drawing host.
func NewRasterHost() *RasterHost {
	return &RasterHost{
		Client: http.DefaultClient,
		fonts:  make(map[string]*opentype.Font),
	}
}

// NewCanvas allocates a gg backed drawing surface.
func (h *RasterHost) NewCanvas(w, ht int) Canvas {
	return &ggCanvas{dc: gg.NewContext(w, ht), w: w, h: ht}
}

// RegisterFont parses the raw font bytes and makes them resolvable under
// the given name. Registering the same name twice replaces the face.
func (h *RasterHost) RegisterFont(name string, data []byte) error {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return errors.Wrapf(err, "could not parse the %q font", name)
	}

	h.mu.Lock()
	h.fonts[name] = fnt
	h.mu.Unlock()

	return nil
}

// FontFace resolves name to a face at the requested size. Unregistered
// names fall back to Go Regular so that a descriptor naming a browser font
// such as "Arial" still renders something sensible.
func (h *RasterHost) FontFace(name string, size float64) (font.Face, error) {
	h.mu.RLock()
	fnt, ok := h.fonts[name]
	h.mu.RUnlock()

	if !ok {
		var err error
		fnt, err = opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse the fallback font")
		}
	}

	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// LoadImage fetches and decodes the image behind src.
func (h *RasterHost) LoadImage(ctx context.Context, src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case utils.IsValidUrl(src):
		return h.fetchImage(ctx, src)
	default:
		return loadImageFile(src)
	}
}

// fetchImage retrieves a remote image and decodes the response body.
func (h *RasterHost) fetchImage(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to request the image from URI: %s", src)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to download the image from URI: %s", src)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to download the image from URI: %s, status %v", src, res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read the response body")
	}

	if !strings.Contains(utils.DetectContentType(data), "image") {
		return nil, errors.Errorf("the downloaded file is not a valid image type: %s", src)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode the image from URI: %s", src)
	}
	return img, nil
}

// loadImageFile decodes a local image file.
func loadImageFile(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open the image file: %s", src)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read the image file: %s", src)
	}

	if !strings.Contains(utils.DetectContentType(data), "image") {
		return nil, errors.Errorf("%s is not a valid image file", src)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode the image file: %s", src)
	}
	return img, nil
}

// decodeDataURI decodes an RFC 2397 data URI of the form
// data:image/png;base64,<payload> back into an image.
func decodeDataURI(src string) (image.Image, error) {
	meta, payload, found := strings.Cut(src, ",")
	if !found {
		return nil, errors.Errorf("malformed data URI: %.40q", src)
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode the data URI payload")
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, errors.Wrap(err, "could not unescape the data URI payload")
		}
		data = []byte(unescaped)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the data URI image")
	}
	return img, nil
}

// ggCanvas adapts a gg drawing context to the Canvas capability.
type ggCanvas struct {
	dc   *gg.Context
	w, h int
}

func (c *ggCanvas) Size() (int, int)        { return c.w, c.h }
func (c *ggCanvas) Translate(x, y float64)  { c.dc.Translate(x, y) }
func (c *ggCanvas) Rotate(radians float64)  { c.dc.Rotate(radians) }
func (c *ggCanvas) MoveTo(x, y float64)     { c.dc.MoveTo(x, y) }
func (c *ggCanvas) LineTo(x, y float64)     { c.dc.LineTo(x, y) }
func (c *ggCanvas) ClosePath()              { c.dc.ClosePath() }
func (c *ggCanvas) DrawCircle(x, y, r float64) { c.dc.DrawCircle(x, y, r) }
func (c *ggCanvas) SetColor(col color.Color) { c.dc.SetColor(col) }
func (c *ggCanvas) SetLineWidth(w float64)  { c.dc.SetLineWidth(w) }
func (c *ggCanvas) FillPreserve()           { c.dc.FillPreserve() }
func (c *ggCanvas) Stroke()                 { c.dc.Stroke() }

func (c *ggCanvas) ClipCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.dc.Clip()
}

func (c *ggCanvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

func (c *ggCanvas) SetFontFace(face font.Face) {
	c.dc.SetFontFace(face)
}

func (c *ggCanvas) DrawString(s string, x, y float64) {
	c.dc.DrawString(s, x, y)
}

func (c *ggCanvas) Image() image.Image {
	return c.dc.Image()
}

// Encode serializes the surface content to a PNG data URI.
func (c *ggCanvas) Encode() (string, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return "", errors.Wrap(err, "could not encode the canvas to PNG")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

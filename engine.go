package iconiq

import (
	"context"
	"sync"
)

// Engine synthesizes marker icons from descriptors. It owns the two
// process-wide caches and the host capability it draws through, and it is
// safe for concurrent use: completed image loads are the only points where
// synthesis requests interleave, and the caches guard themselves.
type Engine struct {
	// Minify pipes the vector shape output through an SVG minifier.
	Minify bool

	host    Host
	results *ResultCache
	images  *ImageCache

	mu       sync.Mutex
	inflight map[string]*Deferred
}

// NewEngine instantiates a synthesis engine drawing through the given host.
// A nil host models a headless environment: every strategy that needs a
// drawing surface or an image load fails with ErrMissingHost, only the pure
// string templating ones keep working.
func NewEngine(host Host) *Engine {
	return &Engine{
		host:     host,
		results:  NewResultCache(),
		images:   NewImageCache(host),
		inflight: make(map[string]*Deferred),
	}
}

// Results exposes the icon result cache.
func (e *Engine) Results() *ResultCache {
	return e.results
}

// Images exposes the decoded image cache consulted by the rendering layer.
func (e *Engine) Images() *ImageCache {
	return e.images
}

// Host returns the drawing host the engine was constructed with.
func (e *Engine) Host() Host {
	return e.host
}

// Synthesize produces the icon described by info. The canvas path, dynamic
// circle and font shapes return an immediate result; the image derived
// shapes return a deferred one that settles once the source image load
// completes. A result cache hit returns immediately for any shape kind.
//
// On success the descriptor Size is populated with the synthesized
// dimensions, which for the image derived shapes are only known after the
// load. Validation and host capability failures always surface
// synchronously; load and draw failures of the deferred shapes propagate
// through the rejection channel of the returned Deferred.
func (e *Engine) Synthesize(ctx context.Context, info *IconInfo) (Result, error) {
	switch info.Kind {
	case ShapeNone:
		return immediate(""), nil
	case ShapeCustom:
		return Result{}, ErrNotImplemented
	case ShapeCanvasPath, ShapeDynamicCircle, ShapeFont,
		ShapeRotatedImage, ShapeRoundedImage, ShapeScaledImage:
		// handled below
	default:
		return Result{}, &UnsupportedShapeKindError{Kind: info.Kind}
	}

	if entry, ok := e.cachedResult(info); ok {
		return immediate(entry.Icon), nil
	}

	if err := info.validate(); err != nil {
		return Result{}, err
	}

	switch info.Kind {
	case ShapeDynamicCircle:
		// Pure string templating, works without a host.
		icon, err := e.circleMarker(info)
		if err != nil {
			return Result{}, err
		}
		e.storeResult(info, icon)
		return immediate(icon), nil

	case ShapeCanvasPath, ShapeFont:
		if e.host == nil {
			return Result{}, ErrMissingHost
		}

		var (
			icon string
			err  error
		)
		if info.Kind == ShapeCanvasPath {
			icon, err = e.pathMarker(info)
		} else {
			icon, err = e.fontMarker(info)
		}
		if err != nil {
			return Result{}, err
		}

		e.storeResult(info, icon)
		return immediate(icon), nil

	default:
		if e.host == nil {
			return Result{}, ErrMissingHost
		}
		return pending(e.deferredSynthesis(ctx, info)), nil
	}
}

// cachedResult resolves info against the result cache and, on a hit, writes
// the cached size back into the descriptor so callers relying on size as an
// output still get correct values. The write-back is a copy, never a
// reference into the cache.
func (e *Engine) cachedResult(info *IconInfo) (CacheEntry, bool) {
	if info.ID == "" {
		return CacheEntry{}, false
	}

	entry, ok := e.results.Lookup(info.ID)
	if ok {
		size := entry.Size
		info.Size = &size
	}
	return entry, ok
}

// storeResult populates the result cache when the descriptor carries a
// cache identity.
func (e *Engine) storeResult(info *IconInfo, icon string) {
	if info.ID == "" {
		return
	}

	var size ShapeSize
	if info.Size != nil {
		size = *info.Size
	}
	e.results.Store(info.ID, CacheEntry{Icon: icon, Size: size})
}

// deferredSynthesis starts the load of an image derived shape. Requests
// sharing a cache identity are coalesced onto one underlying load while it
// is in flight, so two callers racing on an uncached key trigger a single
// fetch and draw instead of redundant ones.
func (e *Engine) deferredSynthesis(ctx context.Context, info *IconInfo) *Deferred {
	def := newDeferred()

	if info.ID == "" {
		go e.loadAndDraw(ctx, info, def)
		return def
	}

	e.mu.Lock()
	if first, ok := e.inflight[info.ID]; ok {
		e.mu.Unlock()
		return e.follow(ctx, first, info)
	}
	e.inflight[info.ID] = def
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			delete(e.inflight, info.ID)
			e.mu.Unlock()
		}()
		e.loadAndDraw(ctx, info, def)
	}()
	return def
}

// follow derives a deferred that settles together with an in-flight load
// for the same cache identity, writing the resolved size back into the
// follower's own descriptor.
func (e *Engine) follow(ctx context.Context, first *Deferred, info *IconInfo) *Deferred {
	def := newDeferred()
	go func() {
		icon, src, err := first.Await(ctx)
		if err != nil {
			def.reject(err)
			return
		}
		if src != nil && src.Size != nil {
			size := *src.Size
			info.Size = &size
		}
		def.resolve(icon, info)
	}()
	return def
}

// loadAndDraw performs the load and draw of an image derived shape and
// settles the deferred either way.
func (e *Engine) loadAndDraw(ctx context.Context, info *IconInfo, def *Deferred) {
	img, err := e.host.LoadImage(ctx, info.URL)
	if err != nil {
		def.reject(err)
		return
	}

	var icon string
	switch info.Kind {
	case ShapeRotatedImage:
		icon, err = e.rotatedMarker(info, img)
	case ShapeRoundedImage:
		icon, err = e.roundedMarker(info, img)
	case ShapeScaledImage:
		icon, err = e.scaledMarker(info, img)
	}
	if err != nil {
		def.reject(err)
		return
	}

	e.storeResult(info, icon)
	def.resolve(icon, info)
}

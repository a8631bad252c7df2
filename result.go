package iconiq

import (
	"context"
	"sync"
)

// Result is the outcome of a synthesis request. It is either an immediate
// icon string or a deferred value that resolves once an external image load
// completes. Callers must branch on which of the two it carries instead of
// assuming one path: the common synchronous case must not pay a scheduling
// round-trip just because the image shapes happen to be asynchronous.
type Result struct {
	icon string
	def  *Deferred
}

// immediate wraps an already produced icon string.
func immediate(icon string) Result {
	return Result{icon: icon}
}

// pending wraps a deferred synthesis.
func pending(def *Deferred) Result {
	return Result{def: def}
}

// Immediate returns the icon string when the result was produced
// synchronously. The boolean reports whether that is the case.
func (r Result) Immediate() (string, bool) {
	return r.icon, r.def == nil
}

// Deferred returns the pending synthesis when the result is asynchronous.
func (r Result) Deferred() (*Deferred, bool) {
	return r.def, r.def != nil
}

// Resolve returns the icon string, waiting for the deferred resolution
// when the result is asynchronous.
func (r Result) Resolve(ctx context.Context) (string, error) {
	if r.def == nil {
		return r.icon, nil
	}
	icon, _, err := r.def.Await(ctx)
	return icon, err
}

// Deferred is a synthesis whose icon becomes available once the source
// image finishes loading. Resolution carries both the icon string and the
// descriptor with its Size field populated. A Deferred resolves exactly
// once; failures propagate through the same channel as the rejection error.
type Deferred struct {
	done chan struct{}
	once sync.Once

	icon string
	info *IconInfo
	err  error
}

func newDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// resolve completes the deferred with the synthesized icon.
func (d *Deferred) resolve(icon string, info *IconInfo) {
	d.once.Do(func() {
		d.icon = icon
		d.info = info
		close(d.done)
	})
}

// reject completes the deferred with a failure.
func (d *Deferred) reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Done is closed once the deferred settles, either way.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Await blocks until the deferred settles or the context is cancelled and
// returns the icon string together with the descriptor whose Size has been
// written back during synthesis.
func (d *Deferred) Await(ctx context.Context) (string, *IconInfo, error) {
	select {
	case <-d.done:
		return d.icon, d.info, d.err
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}
}

package iconiq

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHost is returned when a strategy needs a drawing surface or
	// an image loader and the engine was constructed without a host. The
	// condition is knowable up front, so it always surfaces synchronously.
	ErrMissingHost = errors.New("no drawing host capability available")

	// ErrNotImplemented is returned for the custom shape kind. It exists as
	// a placeholder for caller supplied synthesis hooks which this engine
	// does not provide, which is a different failure than an unknown kind.
	ErrNotImplemented = errors.New("custom marker synthesis is not implemented")
)

// InvalidDescriptorError reports descriptor fields that are required by the
// selected shape kind but were left unset.
type InvalidDescriptorError struct {
	Kind   ShapeKind
	Fields []string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("invalid %s descriptor: missing %s",
		e.Kind, strings.Join(e.Fields, ", "))
}

// UnsupportedShapeKindError reports a shape kind the dispatch table does not know.
type UnsupportedShapeKindError struct {
	Kind ShapeKind
}

func (e *UnsupportedShapeKindError) Error() string {
	return fmt.Sprintf("unsupported shape kind: %q", string(e.Kind))
}

package hashmap

import "github.com/pkg/errors"

// ErrInvariant is the cause of the panic raised when a map finds
// its backing storage in a state its growth policy should have
// made impossible, such as a full probe on insert. It indicates a
// bug in this package, not a runtime condition callers should
// handle.
var ErrInvariant = errors.New("hashmap: internal invariant violated")

// invariantf panics with an error wrapping ErrInvariant.
func invariantf(format string, args ...any) {
	panic(errors.Wrapf(ErrInvariant, format, args...))
}

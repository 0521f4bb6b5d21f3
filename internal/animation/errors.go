package animation

import "errors"

// ErrUnknownAnimation is returned by New for names the registry does
// not know. Unknown names are a configuration error for the caller.
var ErrUnknownAnimation = errors.New("animation: unknown animation name")

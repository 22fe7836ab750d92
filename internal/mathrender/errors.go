package mathrender

import "errors"

// Sentinel errors describing why an equation produced no asset.
// They never escape Render; they are logged and counted by callers.
var (
	ErrEmptyLaTeX    = errors.New("empty LaTeX source")
	ErrTypeset       = errors.New("LaTeX typesetting failed")
	ErrSnapshot      = errors.New("equation snapshot failed")
	ErrInvalidImage  = errors.New("snapshot is not a valid PNG")
	ErrRenderTimeout = errors.New("equation rendering timed out")
	ErrClosed        = errors.New("renderer is closed")
)

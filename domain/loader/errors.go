package loader

import "errors"

var (
	ErrUnknownCity        = errors.New("unknown city")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrNegativeDuration   = errors.New("negative trip duration")
	ErrMissingColumn      = errors.New("missing required column")
)

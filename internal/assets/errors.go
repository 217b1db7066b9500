package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrDecoderUnavailable is returned by Load when Initialize found no usable decoder.
	ErrDecoderUnavailable = errors.New("asset decoder unavailable")
	// ErrUnsupportedFormat is wrapped in a LoadError for paths the decoder cannot read.
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// LoadError reports a failed load of a single asset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading asset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

package assets

import (
	"context"
	"io"
	"io/fs"

	"github.com/Faultbox/showcase/pkg/scene"
)

// Decoder turns an asset byte stream into a node tree.
type Decoder interface {
	// Available reports why the decoder cannot be used, or nil if it can.
	Available() error

	// Supports reports whether the decoder reads files with the given
	// lower-case extension, including the dot.
	Supports(ext string) bool

	// Decode reads one asset from r. dir resolves resources referenced by
	// the asset relative to its own location.
	Decode(ctx context.Context, r io.Reader, dir fs.FS) (*scene.Node, error)
}

// Progress reports how much of an asset file has been read.
// Total is -1 when the size is unknown.
type Progress struct {
	Path   string
	Loaded int64
	Total  int64
}

// Percent returns the completed fraction in [0, 100], or -1 if unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	return float64(p.Loaded) / float64(p.Total) * 100
}

type progressReader struct {
	r        io.Reader
	progress Progress
	report   func(Progress)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.progress.Loaded += int64(n)
		pr.report(pr.progress)
	}
	return n, err
}

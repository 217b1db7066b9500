// Package assets resolves 3D asset paths to renderable node trees, caching
// decoded assets and substituting procedural placeholders on failure.
package assets

import (
	"context"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/showcase/pkg/geometry"
	"github.com/Faultbox/showcase/pkg/scene"
)

const (
	// DefaultColor is the material color used when a request does not name one.
	DefaultColor uint32 = 0x00ff40

	defaultMetalness = 0.6
	defaultRoughness = 0.4
)

// LoadOptions controls how a loaded asset is prepared for the caller.
type LoadOptions struct {
	Transform

	// Color is the 0xRRGGBB material color. Zero selects the loader default.
	Color uint32

	// KeepMaterials leaves the asset's own materials in place instead of
	// replacing them with one shared flat-shaded material.
	KeepMaterials bool
}

// Request names one asset for Preload.
type Request struct {
	Path     string
	Fallback geometry.Kind
	Options  LoadOptions
}

// Loader loads assets through a Decoder and caches one template per path.
// It is safe for concurrent use.
type Loader struct {
	mu sync.RWMutex

	decoder   Decoder
	available bool

	fsys          fs.FS
	cache         *Cache
	log           *zap.Logger
	defaultColor  uint32
	progress      func(Progress)
	maxConcurrent int
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithFS sets the file system asset paths are resolved against.
// The default is the current working directory.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithDefaultColor sets the color used when LoadOptions.Color is zero.
func WithDefaultColor(color uint32) Option {
	return func(l *Loader) {
		l.defaultColor = color
	}
}

// WithProgress registers a callback invoked as asset bytes are read.
func WithProgress(fn func(Progress)) Option {
	return func(l *Loader) {
		l.progress = fn
	}
}

// WithMaxConcurrent bounds the number of loads Preload runs at once.
// Zero or less means unbounded.
func WithMaxConcurrent(n int) Option {
	return func(l *Loader) {
		l.maxConcurrent = n
	}
}

// NewLoader creates a loader. A nil decoder is allowed; Initialize then
// reports false and every load falls back.
func NewLoader(decoder Decoder, options ...Option) *Loader {
	l := &Loader{
		decoder:      decoder,
		fsys:         os.DirFS("."),
		cache:        NewCache(),
		log:          zap.NewNop(),
		defaultColor: DefaultColor,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Initialize probes the decoder and records whether real assets can be
// loaded. The result holds until the next call.
func (l *Loader) Initialize() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.decoder == nil:
		l.available = false
		l.log.Warn("asset decoder not configured")
	default:
		if err := l.decoder.Available(); err != nil {
			l.available = false
			l.log.Warn("asset decoder not available", zap.Error(err))
		} else {
			l.available = true
			l.log.Info("asset loader initialized")
		}
	}
	return l.available
}

// Available reports the result of the last Initialize.
func (l *Loader) Available() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.available
}

// Load returns the asset at p with opts applied. Cached assets are cloned
// without I/O. Errors are ErrDecoderUnavailable or a *LoadError.
//
// Concurrent loads of the same uncached path each decode the file; the last
// one to finish replaces the cached template.
func (l *Loader) Load(ctx context.Context, p string, opts LoadOptions) (*scene.Node, error) {
	key := CleanPath(p)

	if tmpl, ok := l.cache.Get(key); ok {
		l.log.Debug("asset cache hit", zap.String("path", key))
		return ApplyTransform(tmpl.Clone(), opts.Transform), nil
	}

	l.mu.RLock()
	decoder, available := l.decoder, l.available
	l.mu.RUnlock()
	if !available {
		return nil, ErrDecoderUnavailable
	}

	node, err := l.decode(ctx, decoder, key)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}

	if !opts.KeepMaterials {
		applyMaterial(node, l.material(opts.Color))
	}

	l.cache.Set(key, node.Clone())
	l.log.Debug("asset loaded", zap.String("path", key), zap.Int("meshes", node.MeshCount()))

	return ApplyTransform(node, opts.Transform), nil
}

func (l *Loader) decode(ctx context.Context, decoder Decoder, key string) (*scene.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(key) {
		return nil, fs.ErrInvalid
	}
	if !decoder.Supports(strings.ToLower(path.Ext(key))) {
		return nil, ErrUnsupportedFormat
	}

	f, err := l.fsys.Open(key)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := int64(-1)
	if info, err := f.Stat(); err == nil {
		total = info.Size()
	}
	reader := &progressReader{
		r:        f,
		progress: Progress{Path: key, Total: total},
		report:   l.reportProgress,
	}

	dir, err := fs.Sub(l.fsys, path.Dir(key))
	if err != nil {
		return nil, err
	}

	node, err := decoder.Decode(ctx, reader, dir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return node, nil
}

func (l *Loader) reportProgress(p Progress) {
	if ce := l.log.Check(zap.DebugLevel, "asset progress"); ce != nil {
		ce.Write(zap.String("path", p.Path), zap.Int64("loaded", p.Loaded), zap.Int64("total", p.Total))
	}
	if l.progress != nil {
		l.progress(p)
	}
}

// LoadWithFallback loads p and, on any failure, returns a placeholder of the
// given kind with the same color and transform. It never fails.
func (l *Loader) LoadWithFallback(ctx context.Context, p string, kind geometry.Kind, opts LoadOptions) *scene.Node {
	node, err := l.Load(ctx, p, opts)
	if err == nil {
		return node
	}

	l.log.Warn("using fallback asset",
		zap.String("path", p),
		zap.String("kind", string(kind.Resolve())),
		zap.Error(err),
	)
	return ApplyTransform(l.CreateFallback(kind, opts.Color), opts.Transform)
}

// CreateFallback builds a placeholder mesh for kind. Unknown kinds get the
// default low-resolution sphere. Zero color selects the loader default.
func (l *Loader) CreateFallback(kind geometry.Kind, color uint32) *scene.Node {
	kind = kind.Resolve()
	return scene.NewMeshNode("fallback:"+string(kind), geometry.ForKind(kind), l.material(color))
}

// Preload runs LoadWithFallback for every request concurrently and returns
// the nodes in request order. A request without a path gets its placeholder
// directly.
func (l *Loader) Preload(ctx context.Context, requests []Request) []*scene.Node {
	nodes := make([]*scene.Node, len(requests))

	var g errgroup.Group
	if l.maxConcurrent > 0 {
		g.SetLimit(l.maxConcurrent)
	}
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if req.Path == "" {
				nodes[i] = ApplyTransform(l.CreateFallback(req.Fallback, req.Options.Color), req.Options.Transform)
				return nil
			}
			nodes[i] = l.LoadWithFallback(ctx, req.Path, req.Fallback, req.Options)
			return nil
		})
	}
	_ = g.Wait()

	return nodes
}

// Cached reports whether p has a cached template.
func (l *Loader) Cached(p string) bool {
	return l.cache.Has(CleanPath(p))
}

// Invalidate drops the cached template for p and reports whether one existed.
func (l *Loader) Invalidate(p string) bool {
	key := CleanPath(p)
	ok := l.cache.Delete(key)
	if ok {
		l.log.Debug("asset invalidated", zap.String("path", key))
	}
	return ok
}

// ClearCache drops every cached template. Nodes already returned are unaffected.
func (l *Loader) ClearCache() {
	l.cache.Clear()
	l.log.Debug("asset cache cleared")
}

// CacheStats returns cache hit and miss counts since the last clear.
func (l *Loader) CacheStats() (hits, misses int) {
	return l.cache.Stats()
}

// CachedPaths returns the paths with cached templates.
func (l *Loader) CachedPaths() []string {
	return l.cache.Keys()
}

func (l *Loader) material(color uint32) *scene.Material {
	if color == 0 {
		color = l.defaultColor
	}
	return &scene.Material{
		Name:        "standard",
		Color:       color,
		Metalness:   defaultMetalness,
		Roughness:   defaultRoughness,
		FlatShading: true,
	}
}

// applyMaterial gives every mesh in the subtree the same material.
func applyMaterial(root *scene.Node, mat *scene.Material) {
	root.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			n.Mesh.Material = mat
		}
	})
}

// CleanPath turns a page-relative asset URL into a slash-separated path
// relative to the loader's file system.
func CleanPath(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}

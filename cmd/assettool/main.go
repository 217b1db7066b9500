// assettool is a CLI utility for inspecting and preloading the site's 3D assets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/showcase/internal/assets"
	"github.com/Faultbox/showcase/internal/catalog"
	"github.com/Faultbox/showcase/internal/config"
	"github.com/Faultbox/showcase/internal/logger"
	"github.com/Faultbox/showcase/pkg/geometry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "preload":
		cmdPreload(args)
	case "fallback":
		cmdFallback(args)
	case "kinds":
		cmdKinds(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`assettool - showcase 3D asset utility

Usage:
  assettool <command> [options]

Commands:
  info <model.glb>              Show the node tree of a model
  preload [catalog]             Load every model a catalog refers to
  fallback <kind> [-o out.glb]  Show (or export) a placeholder shape
  kinds                         List placeholder kinds
  watch [catalog]               Preload, then reload models as they change

Common options:
  -config <file>   Config file (default ./assettool.yaml)
  -root <dir>      Asset root directory
  -catalog <file>  Catalog fixture (.json, .yaml or .toml)
  -no-gltf         Disable the glTF decoder
  -debug           Enable debug logging

Examples:
  assettool info -root site models/fear-factory/logo.glb
  assettool preload -root site site/data/games.json
  assettool fallback torus -o torus.glb`)
}

// env is what every command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	loader *assets.Loader
}

// setup loads config, starts logging and builds an initialized loader.
func setup(fs *flag.FlagSet, flags *config.Flags, args []string) *env {
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fatal(err)
	}
	log := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)

	var decoder assets.Decoder
	if cfg.Loader.Decoder == "gltf" {
		decoder = assets.NewGLTFDecoder()
	}
	loader := assets.NewLoader(decoder,
		assets.WithLogger(log.Named("assets")),
		assets.WithFS(os.DirFS(cfg.Loader.Root)),
		assets.WithDefaultColor(uint32(cfg.Loader.DefaultColor)),
		assets.WithMaxConcurrent(cfg.Loader.MaxConcurrent),
	)
	loader.Initialize()

	return &env{cfg: cfg, log: log, loader: loader}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	e := setup(fs, flags, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: assettool info <model.glb>")
		os.Exit(1)
	}

	p := fs.Arg(0)
	node, err := e.loader.Load(context.Background(), p, assets.LoadOptions{KeepMaterials: true})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Model:  %s\n", path.Join(e.cfg.Loader.Root, p))
	printStats(os.Stdout, node)
	fmt.Println()
	printTree(os.Stdout, node)
}

func cmdPreload(args []string) {
	fs := flag.NewFlagSet("preload", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	e := setup(fs, flags, args)
	defer logger.Sync()

	cat := loadCatalog(e, fs)
	elems := cat.Elements()
	nodes := e.loader.Preload(context.Background(), cat.Requests())

	printPreload(os.Stdout, elems, nodes)

	hits, misses := e.loader.CacheStats()
	fmt.Printf("\nCached: %d models (hits %d, misses %d)\n", len(e.loader.CachedPaths()), hits, misses)
}

func cmdFallback(args []string) {
	fs := flag.NewFlagSet("fallback", flag.ExitOnError)
	out := fs.String("o", "", "Write the placeholder to a .glb file")
	flags := config.RegisterFlags(fs)

	// Allow the kind before the options
	var kind string
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		kind, args = args[0], args[1:]
	}
	e := setup(fs, flags, args)
	defer logger.Sync()

	if kind == "" {
		kind = fs.Arg(0)
	}
	if kind == "" {
		fmt.Fprintln(os.Stderr, "Usage: assettool fallback <kind> [-o out.glb]")
		os.Exit(1)
	}

	k := geometry.Kind(kind)
	if !k.Known() {
		fmt.Printf("Unknown kind %q, using %s\n", kind, geometry.KindDefault)
	}
	node := e.loader.CreateFallback(k, 0)
	printStats(os.Stdout, node)

	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		fatal(err)
	}
	if err := assets.EncodeGLB(f, node); err != nil {
		f.Close()
		fatal(err)
	}
	if err := f.Close(); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote:  %s\n", *out)
}

func cmdKinds(args []string) {
	fs := flag.NewFlagSet("kinds", flag.ExitOnError)
	fs.Parse(args)

	fmt.Printf("%-10s %-12s %8s %10s\n", "KIND", "SHAPE", "VERTICES", "TRIANGLES")
	for _, k := range append(geometry.Kinds(), geometry.KindDefault) {
		g := geometry.ForKind(k)
		fmt.Printf("%-10s %-12s %8d %10d\n", k, g.Name, g.VertexCount(), g.TriangleCount())
	}
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	e := setup(fs, flags, args)
	defer logger.Sync()

	cat := loadCatalog(e, fs)
	requests := cat.Requests()
	e.loader.Preload(context.Background(), requests)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := assets.NewWatcher(e.loader, e.cfg.Loader.Root, e.log.Named("watch"))
	if err != nil {
		fatal(err)
	}
	changed := make(chan string, 16)
	w.Invalidated = changed

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	fmt.Printf("Watching %s (%d models), Ctrl+C to stop\n", e.cfg.Loader.Root, len(e.loader.CachedPaths()))
	for {
		select {
		case p := <-changed:
			reloadPath(ctx, e, requests, p)
		case err := <-done:
			if err != nil {
				fatal(err)
			}
			return
		}
	}
}

// reloadPath reloads every request for p so the cache is warm again.
func reloadPath(ctx context.Context, e *env, requests []assets.Request, p string) {
	var matching []assets.Request
	for _, req := range requests {
		if req.Path != "" && assets.CleanPath(req.Path) == p {
			matching = append(matching, req)
		}
	}
	if len(matching) == 0 {
		return
	}
	for i, node := range e.loader.Preload(ctx, matching) {
		fmt.Printf("Reloaded %s -> %s\n", matching[i].Path, node.Name)
	}
}

func loadCatalog(e *env, fs *flag.FlagSet) *catalog.Catalog {
	p := e.cfg.Catalog.Path
	if fs.NArg() > 0 {
		p = fs.Arg(0)
	}
	cat, err := catalog.Load(p, e.log.Named("catalog"))
	if err != nil {
		fatal(err)
	}
	return cat
}

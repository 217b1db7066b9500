package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config  string
	Debug   bool
	Root    string
	Catalog string
	Watch   bool
	NoGLTF  bool
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Root, "root", "", "Asset root directory")
	fs.StringVar(&f.Catalog, "catalog", "", "Catalog fixture path")
	fs.BoolVar(&f.Watch, "watch", false, "Invalidate cached assets when files change")
	fs.BoolVar(&f.NoGLTF, "no-gltf", false, "Disable the glTF decoder (placeholders only)")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Root != "" {
		cfg.Loader.Root = f.Root
	}
	if f.Catalog != "" {
		cfg.Catalog.Path = f.Catalog
	}
	if f.Watch {
		cfg.Loader.Watch = true
	}
	if f.NoGLTF {
		cfg.Loader.Decoder = "none"
	}
}

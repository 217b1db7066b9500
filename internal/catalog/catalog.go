// Package catalog reads the site fixtures that say which model each page
// element shows and turns them into asset load requests.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/showcase/pkg/geometry"
)

// Catalog is the content of one fixture file.
type Catalog struct {
	Games []Game   `yaml:"games" toml:"games"`
	Team  []Member `yaml:"team" toml:"team"`
}

// Game is one card on the games grid plus its detail page.
type Game struct {
	ID          int         `yaml:"id" toml:"id"`
	Slug        string      `yaml:"slug" toml:"slug"`
	Title       string      `yaml:"title" toml:"title"`
	Genre       string      `yaml:"genre" toml:"genre"`
	Description string      `yaml:"description" toml:"description"`
	LogoModel   *Model      `yaml:"logoModel" toml:"logoModel"`
	Models      []ViewModel `yaml:"models" toml:"models"`
}

// Member is one team page entry. AvatarType selects the decoration shape.
type Member struct {
	Name       string        `yaml:"name" toml:"name"`
	Role       string        `yaml:"role" toml:"role"`
	Bio        string        `yaml:"bio" toml:"bio"`
	Avatar     string        `yaml:"avatar" toml:"avatar"`
	AvatarType geometry.Kind `yaml:"avatarType" toml:"avatarType"`
}

// Model points at a model file and describes how it is placed.
//
// Scale is a number or an {x, y, z} table. Color is an integer or a
// "#rrggbb" string.
type Model struct {
	Path         string        `yaml:"path" toml:"path"`
	FallbackType geometry.Kind `yaml:"fallbackType" toml:"fallbackType"`
	Scale        any           `yaml:"scale" toml:"scale"`
	Position     *Point        `yaml:"position" toml:"position"`
	Rotation     *Point        `yaml:"rotation" toml:"rotation"`
	Color        any           `yaml:"color" toml:"color"`
}

// ViewModel is a named model on a game detail page.
type ViewModel struct {
	Name  string `yaml:"name" toml:"name"`
	Model `yaml:",inline"`
}

// Point is an x, y, z triple.
type Point struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// ErrUnknownFormat is returned for fixture files that are not JSON, YAML or TOML.
var ErrUnknownFormat = errors.New("unknown catalog format")

// Load reads a catalog from a .json, .yaml, .yml or .toml file and validates it.
func Load(path string, log *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	if err := c.Validate(log); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog data. ext selects the format and includes the dot.
func Parse(data []byte, ext string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		// JSON documents are valid YAML
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return &c, nil
}

// Validate checks that every game has a unique slug and that scale and
// color values parse. Unknown fallback kinds are only logged since they
// resolve to the default placeholder.
func (c *Catalog) Validate(log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	var errs []error
	seen := make(map[string]bool, len(c.Games))
	for i, g := range c.Games {
		switch {
		case g.Slug == "":
			errs = append(errs, fmt.Errorf("games[%d]: missing slug", i))
		case seen[g.Slug]:
			errs = append(errs, fmt.Errorf("games[%d]: duplicate slug %q", i, g.Slug))
		}
		seen[g.Slug] = true

		if g.LogoModel != nil {
			errs = append(errs, g.LogoModel.check(fmt.Sprintf("games[%d].logoModel", i), log)...)
		}
		for j := range g.Models {
			errs = append(errs, g.Models[j].check(fmt.Sprintf("games[%d].models[%d]", i, j), log)...)
		}
	}
	for i, m := range c.Team {
		warnKind(log, fmt.Sprintf("team[%d].avatarType", i), m.AvatarType)
	}
	return errors.Join(errs...)
}

func (m *Model) check(field string, log *zap.Logger) []error {
	var errs []error
	if _, err := parseScale(m.Scale); err != nil {
		errs = append(errs, fmt.Errorf("%s.scale: %w", field, err))
	}
	if _, err := parseColor(m.Color); err != nil {
		errs = append(errs, fmt.Errorf("%s.color: %w", field, err))
	}
	warnKind(log, field+".fallbackType", m.FallbackType)
	return errs
}

func warnKind(log *zap.Logger, field string, k geometry.Kind) {
	if k != "" && !k.Known() {
		log.Warn("unknown fallback kind, using default",
			zap.String("field", field),
			zap.String("kind", string(k)),
		)
	}
}

// Game returns the game with the given slug.
func (c *Catalog) Game(slug string) (Game, bool) {
	for _, g := range c.Games {
		if g.Slug == slug {
			return g, true
		}
	}
	return Game{}, false
}

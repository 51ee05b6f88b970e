// Package config loads the traitcodec.toml configuration file.
//
// Values are layered: [Default] first, then the file, then whatever the CLI
// sets from flags. [Validate] runs after all layers are applied.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/traitcodec/pkg/codec"
	"github.com/matzehuels/traitcodec/pkg/color"
	errs "github.com/matzehuels/traitcodec/pkg/errors"
	"github.com/matzehuels/traitcodec/pkg/geom"
	"github.com/matzehuels/traitcodec/pkg/svg"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "traitcodec.toml"

// Config is the full configuration.
type Config struct {
	Variant      string            `toml:"variant"`
	TraitsDir    string            `toml:"traits_dir"`
	ComputedDir  string            `toml:"computed_dir"`
	PalettesFile string            `toml:"palettes_file"`
	Workers      int               `toml:"workers"`
	Vector       Vector            `toml:"vector"`
	Rect         Rect              `toml:"rect"`
	Raster       Raster            `toml:"raster"`
	Colors       map[string]string `toml:"colors"`
}

// Vector configures the path variant.
type Vector struct {
	Grid           int         `toml:"grid"`
	DefaultViewBox string      `toml:"default_view_box"`
	StrokeWidth    float64     `toml:"stroke_width"`
	CanvasPx       int         `toml:"canvas_px"`
	Convert        svg.Options `toml:"convert"`
}

// Rect configures the rect variant.
type Rect struct {
	ViewBox  int `toml:"view_box"`
	CanvasPx int `toml:"canvas_px"`
}

// Raster configures the raster variant.
type Raster struct {
	Grid   int `toml:"grid"`
	CellPx int `toml:"cell_px"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Variant:      string(codec.VariantPath),
		TraitsDir:    "data/traits",
		ComputedDir:  "data/traits_computed",
		PalettesFile: "data/palettes.json",
		Workers:      runtime.GOMAXPROCS(0),
		Vector: Vector{
			Grid:           255,
			DefaultViewBox: "0 0 283.5 283.5",
			StrokeWidth:    0.71,
			CanvasPx:       500,
			Convert:        svg.DefaultOptions(),
		},
		Rect:   Rect{ViewBox: 45, CanvasPx: 450},
		Raster: Raster{Grid: 36, CellPx: 10},
		Colors: map[string]string{},
	}
}

// Load applies the file at path over the defaults. A missing file is an
// error only when required is set; otherwise the defaults are returned.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	if _, err := codec.ParseVariant(c.Variant); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "variant")
	}
	for _, p := range []struct {
		name string
		v    int
	}{
		{"vector.grid", c.Vector.Grid},
		{"vector.canvas_px", c.Vector.CanvasPx},
		{"rect.view_box", c.Rect.ViewBox},
		{"rect.canvas_px", c.Rect.CanvasPx},
		{"raster.grid", c.Raster.Grid},
		{"raster.cell_px", c.Raster.CellPx},
	} {
		if p.v <= 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be positive, got %d", p.name, p.v)
		}
	}
	if c.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "workers must not be negative")
	}
	if c.Vector.StrokeWidth < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "vector.stroke_width must not be negative")
	}
	if _, err := c.ViewBox(); err != nil {
		return err
	}
	for name, v := range c.Colors {
		if _, err := color.Normalize(v); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "colors.%s", name)
		}
	}
	return nil
}

// ViewBox parses the default view box used when an asset declares none.
func (c Config) ViewBox() (geom.ViewBox, error) {
	vb, err := geom.ParseViewBox(c.Vector.DefaultViewBox)
	if err != nil {
		return geom.ViewBox{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "vector.default_view_box")
	}
	return vb, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

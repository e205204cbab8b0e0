// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layers provides the level-of-detail layer configuration of a
// panorama, loaded from json, toml or yaml files, and the [Selector] that
// maps the camera field of view onto one of those layers.
package layers

import (
	"cmp"
	"fmt"
	"io/fs"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/pano/tiles"
	"github.com/jinzhu/copier"
)

var (
	// ErrNoConfig is returned when no configuration file can be found.
	ErrNoConfig = errors.New("layers: configuration not found")

	// ErrNoLayers is returned for a configuration without layers.
	ErrNoLayers = errors.New("layers: no layers configured")

	// ErrBadLayer is returned for a layer with a non-positive tile grid
	// or without an image directory.
	ErrBadLayer = errors.New("layers: invalid layer")

	// ErrBadFOV is returned for an empty or non-positive field of view range.
	ErrBadFOV = errors.New("layers: invalid field of view range")

	// ErrNoResource is returned when the panorama resource directory or
	// the image directory of a layer does not exist.
	ErrNoResource = errors.New("layers: resource not found")
)

// Layer is one level-of-detail layer of a panorama: a grid of tile images
// covering the whole sphere. JSON keys also match in PascalCase, as in
// config.json files written with RowCount, ImageResourcePath and so on.
type Layer struct {

	// Level is the resolution level; higher is finer.
	Level int `json:"level" toml:"level" yaml:"level"`

	// Rows is the number of tile rows.
	Rows int `json:"rowCount" toml:"rowCount" yaml:"rowCount"`

	// Columns is the number of tile columns.
	Columns int `json:"columnCount" toml:"columnCount" yaml:"columnCount"`

	// Images is the directory of the tile images, relative to the
	// panorama resource directory. Tile k (1-based, row-major) is
	// the file "<k>.png" in it.
	Images string `json:"imageResourcePath" toml:"imageResourcePath" yaml:"imageResourcePath"`
}

// TileGrid returns the number of tile rows and columns.
func (ly *Layer) TileGrid() (rows, columns int) { return ly.Rows, ly.Columns }

// ImageDir returns the image directory of the layer.
func (ly *Layer) ImageDir() string { return ly.Images }

// NumTiles returns the number of tiles in the layer.
func (ly *Layer) NumTiles() int { return ly.Rows * ly.Columns }

func (ly *Layer) String() string {
	return fmt.Sprintf("level %d: %d x %d tiles in %q", ly.Level, ly.Rows, ly.Columns, ly.Images)
}

// Config is the configuration of a panorama.
type Config struct {

	// Resource is the panorama resource directory, against which the
	// image directories of the layers are resolved. When opened from
	// a file, a relative Resource is relative to the file's directory,
	// and an empty one is that directory.
	Resource string `json:"resource,omitempty" toml:"resource,omitempty" yaml:"resource,omitempty"`

	// Layers are the layers ordered coarsest first.
	Layers []Layer `json:"layers" toml:"layers" yaml:"layers"`

	// MinFOV is the smallest field of view in degrees, reached when
	// fully zoomed in.
	MinFOV float32 `json:"minFOV" toml:"minFOV" yaml:"minFOV" default:"5"`

	// MaxFOV is the largest field of view in degrees, reached when
	// fully zoomed out. The view starts at MaxFOV.
	MaxFOV float32 `json:"maxFOV" toml:"maxFOV" yaml:"maxFOV" default:"150"`

	// Radius is the sphere radius.
	Radius float32 `json:"radius" toml:"radius" yaml:"radius" default:"1"`

	// Stacks is the number of latitude bands of the sphere. It must be
	// a multiple of the row count of every layer.
	Stacks int `json:"stacks" toml:"stacks" yaml:"stacks" default:"64"`

	// Slices is the number of longitude bands of the sphere. It must be
	// a multiple of the column count of every layer.
	Slices int `json:"slices" toml:"slices" yaml:"slices" default:"64"`
}

// NewConfig returns a new config with default values and the given layers.
func NewConfig(resource string, lys ...Layer) *Config {
	c := &Config{Resource: resource, Layers: lys}
	c.Defaults()
	return c
}

// Defaults sets the default values from the `default:` struct tags.
func (c *Config) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(c))
}

// Layer returns the layer at the given 1-based index as used by
// [Selector], or nil if out of range.
func (c *Config) Layer(index int) *Layer {
	if index < 1 || index > len(c.Layers) {
		return nil
	}
	return &c.Layers[index-1]
}

// Sort orders the layers coarsest first by level, keeping the
// given order for equal levels.
func (c *Config) Sort() {
	slices.SortStableFunc(c.Layers, func(a, b Layer) int {
		return cmp.Compare(a.Level, b.Level)
	})
}

// Validate returns the first error in the configuration. Every layer
// must have a positive tile grid that evenly divides Stacks and Slices.
// If fsys is non-nil, it is the resource directory and the image
// directory of every layer must exist in it.
func (c *Config) Validate(fsys fs.FS) error {
	if len(c.Layers) == 0 {
		return ErrNoLayers
	}
	if c.MinFOV <= 0 || c.MaxFOV <= c.MinFOV || c.MaxFOV >= 180 {
		return fmt.Errorf("%w: [%g, %g]", ErrBadFOV, c.MinFOV, c.MaxFOV)
	}
	for i := range c.Layers {
		ly := &c.Layers[i]
		if ly.Rows <= 0 || ly.Columns <= 0 || ly.Images == "" {
			return fmt.Errorf("%w: %v", ErrBadLayer, ly)
		}
		g := &tiles.Grid{Rows: ly.Rows, Columns: ly.Columns, Stacks: c.Stacks, Slices: c.Slices, Radius: c.Radius}
		if err := g.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", ly.Level, err)
		}
		if fsys == nil {
			continue
		}
		st, err := fs.Stat(fsys, ly.Images)
		if err != nil || !st.IsDir() {
			return fmt.Errorf("%w: image directory %q of layer %d", ErrNoResource, ly.Images, ly.Level)
		}
	}
	return nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	errors.Log(copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}))
	return nc
}

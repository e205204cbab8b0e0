// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiles

import (
	"fmt"
	"log/slog"
	"path"
	"strconv"
)

// Layer is the subset of a level-of-detail layer needed to build its tiles.
type Layer interface {

	// TileGrid returns the number of tile rows and columns.
	TileGrid() (rows, columns int)

	// ImageDir returns the directory of the layer's tile images,
	// relative to the panorama resource path.
	ImageDir() string
}

// ImagePath returns the path of tile image index (1-based, row-major)
// of a layer: "<base>/<dir>/<index>.png". An empty base is omitted.
func ImagePath(base, dir string, index int) string {
	return path.Join(base, dir, strconv.Itoa(index)+".png")
}

// BuildLayer builds every tile of the given layer in row-major order,
// assigning each tile its 1-based image index and resolved image path
// under base. The stack and slice counts must divide evenly by the
// layer's rows and columns.
func BuildLayer(ly Layer, base string, stacks, slices int, radius float32) ([]*Geometry, error) {
	rows, cols := ly.TileGrid()
	g := &Grid{Rows: rows, Columns: cols, Stacks: stacks, Slices: slices, Radius: radius}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("layer %q: %w", ly.ImageDir(), err)
	}
	tgs := make([]*Geometry, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			tg, err := g.Tile(row, col)
			if err != nil {
				return nil, err
			}
			tg.Image = ImagePath(base, ly.ImageDir(), tg.ImageIndex)
			tgs = append(tgs, tg)
		}
	}
	slog.Debug("tiles: built layer", "dir", ly.ImageDir(), "rows", rows, "columns", cols, "stacks", stacks, "slices", slices)
	return tgs, nil
}

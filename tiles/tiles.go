// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tiles generates the meshes of a UV sphere partitioned into a
// grid of rectangular tiles, one mesh and one image per tile.
//
// The sphere is divided into stacks (latitude bands, from the north pole
// down) and slices (longitude bands). A grid of rows x columns tiles then
// splits those bands evenly: each tile owns stacks/rows by slices/columns
// quads. Tiles include their boundary samples on all four sides, so
// neighboring tiles share identical boundary vertices and no seam opens
// between them.
//
// # Winding
//
// For each quad with top-left a, bottom-left b, top-right c and
// bottom-right d (top is toward the north pole, right toward increasing
// slice), the triangles are (a, b, c) and (c, b, d). This winding is
// counter-clockwise when seen from the sphere center, so the front face of
// every triangle points inward, toward the camera, and the tile image is
// bound to the front face.
package tiles

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/pano/math32"
)

var (
	// ErrInvalidGrid is returned for non-positive counts, a non-positive
	// radius, or a tile outside of its grid.
	ErrInvalidGrid = errors.New("tiles: invalid tile grid")

	// ErrNotDivisible is returned when the stack or slice count is not
	// a multiple of the row or column count of the tile grid.
	ErrNotDivisible = errors.New("tiles: stack/slice count not divisible by tile grid")
)

// Geometry is the mesh of one tile together with its image.
// A Geometry is immutable once built: its slices may be shared by
// several readers and must not be modified.
type Geometry struct {

	// Row and Column locate the tile in its grid.
	Row, Column int

	// ImageIndex is the 1-based row-major index of the tile image.
	ImageIndex int

	// Image is the resolved image resource path, set by [BuildLayer].
	Image string

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Normals are the vertex normals. They have the length of the radius;
	// only their direction matters for shading.
	Normals []math32.Vector3

	// UVs are the texture coordinates over the whole sphere, in [0, 1].
	// See [Geometry.TileUVs] for the coordinates within the tile image.
	UVs []math32.Vector2

	// Indices are the triangle vertex indices, three per triangle.
	Indices []uint32

	// BBox is the bounding box of Positions.
	BBox math32.Box3
}

// Grid is the partition of the sphere used to build tiles.
type Grid struct {

	// Rows and Columns are the tile grid size.
	Rows, Columns int

	// Stacks and Slices are the total sphere resolution.
	Stacks, Slices int

	// Radius is the sphere radius.
	Radius float32
}

// Validate returns an error if the grid cannot be built.
func (g *Grid) Validate() error {
	if g.Rows <= 0 || g.Columns <= 0 || g.Stacks <= 0 || g.Slices <= 0 || g.Radius <= 0 {
		return fmt.Errorf("%w: %d x %d tiles over %d stacks x %d slices, radius %g", ErrInvalidGrid, g.Rows, g.Columns, g.Stacks, g.Slices, g.Radius)
	}
	if g.Stacks%g.Rows != 0 || g.Slices%g.Columns != 0 {
		return fmt.Errorf("%w: %d stacks / %d rows, %d slices / %d columns", ErrNotDivisible, g.Stacks, g.Rows, g.Slices, g.Columns)
	}
	return nil
}

// StacksPerTile returns the number of stacks in each tile row.
func (g *Grid) StacksPerTile() int { return g.Stacks / g.Rows }

// SlicesPerTile returns the number of slices in each tile column.
func (g *Grid) SlicesPerTile() int { return g.Slices / g.Columns }

// Vertex returns the position, normal and texture coordinate of the
// sphere sample at the given global stack and slice.
func (g *Grid) Vertex(stack, slice int) (pos, norm math32.Vector3, uv math32.Vector2) {
	phi := math32.HalfPi - math32.Pi*float32(stack)/float32(g.Stacks)
	y := g.Radius * math32.Sin(phi)
	scale := g.Radius * math32.Cos(phi)
	theta := math32.TwoPi * float32(slice) / float32(g.Slices)
	x := scale * math32.Sin(theta)
	z := scale * math32.Cos(theta)
	pos = math32.Vec3(-x, y, z)
	norm = math32.Vec3(x, y, z)
	uv = math32.Vec2(float32(slice)/float32(g.Slices), float32(stack)/float32(g.Stacks))
	return
}

// BuildTile returns the geometry of the tile at the given row and column
// of a rows x columns grid over a sphere of the given resolution and radius.
// The stack count must be a multiple of rows and the slice count a
// multiple of columns.
func BuildTile(row, column, rows, columns, stacks, slices int, radius float32) (*Geometry, error) {
	g := &Grid{Rows: rows, Columns: columns, Stacks: stacks, Slices: slices, Radius: radius}
	return g.Tile(row, column)
}

// Tile returns the geometry of the tile at the given row and column.
func (g *Grid) Tile(row, column int) (*Geometry, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if row < 0 || row >= g.Rows || column < 0 || column >= g.Columns {
		return nil, fmt.Errorf("%w: tile %d,%d outside %d x %d", ErrInvalidGrid, row, column, g.Rows, g.Columns)
	}
	nst := g.StacksPerTile()
	nsl := g.SlicesPerTile()
	nVtx := (nst + 1) * (nsl + 1)

	tg := &Geometry{
		Row:        row,
		Column:     column,
		ImageIndex: row*g.Columns + column + 1,
		Positions:  make([]math32.Vector3, 0, nVtx),
		Normals:    make([]math32.Vector3, 0, nVtx),
		UVs:        make([]math32.Vector2, 0, nVtx),
		Indices:    make([]uint32, 0, nst*nsl*6),
		BBox:       math32.B3Empty(),
	}

	stBegin := row * nst
	slBegin := column * nsl
	for stack := stBegin; stack <= stBegin+nst; stack++ {
		for slice := slBegin; slice <= slBegin+nsl; slice++ {
			pos, norm, uv := g.Vertex(stack, slice)
			tg.Positions = append(tg.Positions, pos)
			tg.Normals = append(tg.Normals, norm)
			tg.UVs = append(tg.UVs, uv)
			tg.BBox.ExpandByPoint(pos)
		}
	}

	rowLen := uint32(nsl + 1)
	for st := range uint32(nst) {
		top := st * rowLen
		bot := (st + 1) * rowLen
		for sl := range uint32(nsl) {
			a, b, c, d := top+sl, bot+sl, top+sl+1, bot+sl+1
			tg.Indices = append(tg.Indices, a, b, c, c, b, d)
		}
	}
	return tg, nil
}

// NumTriangles returns the number of triangles in the tile.
func (tg *Geometry) NumTriangles() int {
	return len(tg.Indices) / 3
}

// Triangle returns the three vertex positions of triangle i.
func (tg *Geometry) Triangle(i int) (a, b, c math32.Vector3) {
	return tg.Positions[tg.Indices[3*i]], tg.Positions[tg.Indices[3*i+1]], tg.Positions[tg.Indices[3*i+2]]
}

// TileUVs returns the texture coordinates relative to the bounds of the
// tile's UVs, spanning [0, 1] over the tile, which is how the tile image
// is mapped onto it.
func (tg *Geometry) TileUVs() []math32.Vector2 {
	if len(tg.UVs) == 0 {
		return nil
	}
	lo, hi := tg.UVs[0], tg.UVs[len(tg.UVs)-1]
	size := hi.Sub(lo)
	uvs := make([]math32.Vector2, len(tg.UVs))
	for i, uv := range tg.UVs {
		d := uv.Sub(lo)
		if size.X != 0 {
			d.X /= size.X
		}
		if size.Y != 0 {
			d.Y /= size.Y
		}
		uvs[i] = d
	}
	return uvs
}

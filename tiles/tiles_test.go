// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiles

import (
	"bytes"
	"strings"
	"testing"

	"cogentcore.org/pano/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLayer struct {
	rows, cols int
	dir        string
}

func (ly testLayer) TileGrid() (int, int) { return ly.rows, ly.cols }
func (ly testLayer) ImageDir() string     { return ly.dir }

func TestTileCounts(t *testing.T) {
	tg, err := BuildTile(1, 2, 4, 8, 64, 64, 1)
	require.NoError(t, err)
	// 16 stacks x 8 slices per tile, boundaries inclusive
	assert.Len(t, tg.Positions, 17*9)
	assert.Len(t, tg.Normals, 17*9)
	assert.Len(t, tg.UVs, 17*9)
	assert.Len(t, tg.Indices, 16*8*6)
	assert.Equal(t, 1*8+2+1, tg.ImageIndex)
	for _, idx := range tg.Indices {
		assert.Less(t, int(idx), len(tg.Positions))
	}
}

func TestVertexFormula(t *testing.T) {
	g := &Grid{Rows: 1, Columns: 1, Stacks: 4, Slices: 4, Radius: 2}
	pos, norm, uv := g.Vertex(2, 1) // equator, theta = 90 degrees
	assert.True(t, pos.IsEqualTol(math32.Vec3(-2, 0, 0), 1e-5), "%v", pos)
	assert.True(t, norm.IsEqualTol(math32.Vec3(2, 0, 0), 1e-5), "%v", norm)
	assert.Equal(t, math32.Vec2(0.25, 0.5), uv)

	pos, _, uv = g.Vertex(0, 3) // north pole
	assert.True(t, pos.IsEqualTol(math32.Vec3(0, 2, 0), 1e-5), "%v", pos)
	assert.Equal(t, math32.Vec2(0.75, 0), uv)

	tg, err := BuildTile(0, 0, 1, 1, 4, 4, 2)
	require.NoError(t, err)
	for i, p := range tg.Positions {
		assert.InDelta(t, 2, p.Length(), 1e-5)
		assert.InDelta(t, 2, tg.Normals[i].Length(), 1e-5)
	}
}

func TestTileUVs(t *testing.T) {
	tg, err := BuildTile(1, 1, 2, 2, 8, 8, 1)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec2(0.5, 0.5), tg.UVs[0])
	uvs := tg.TileUVs()
	require.Len(t, uvs, len(tg.UVs))
	assert.Equal(t, math32.Vec2(0, 0), uvs[0])
	assert.Equal(t, math32.Vec2(1, 1), uvs[len(uvs)-1])
	assert.Equal(t, math32.Vec2(0.5, 0), uvs[2])
}

func TestValidation(t *testing.T) {
	_, err := BuildTile(0, 0, 3, 2, 8, 8, 1)
	assert.ErrorIs(t, err, ErrNotDivisible)
	_, err = BuildTile(0, 0, 2, 3, 8, 8, 1)
	assert.ErrorIs(t, err, ErrNotDivisible)
	_, err = BuildTile(0, 0, 0, 2, 8, 8, 1)
	assert.ErrorIs(t, err, ErrInvalidGrid)
	_, err = BuildTile(2, 0, 2, 2, 8, 8, 1)
	assert.ErrorIs(t, err, ErrInvalidGrid)
	_, err = BuildTile(0, 0, 2, 2, 8, 8, 0)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = BuildLayer(testLayer{rows: 3, cols: 3, dir: "l1"}, "", 64, 64, 1)
	assert.ErrorIs(t, err, ErrNotDivisible)
}

func TestBuildLayer(t *testing.T) {
	tgs, err := BuildLayer(testLayer{rows: 2, cols: 4, dir: "level2"}, "res/pano", 16, 16, 1)
	require.NoError(t, err)
	require.Len(t, tgs, 8)
	seen := map[int]bool{}
	for i, tg := range tgs {
		assert.GreaterOrEqual(t, tg.ImageIndex, 1)
		assert.LessOrEqual(t, tg.ImageIndex, 8)
		assert.False(t, seen[tg.ImageIndex])
		seen[tg.ImageIndex] = true
		assert.Equal(t, i+1, tg.ImageIndex) // row-major
		assert.Equal(t, i/4, tg.Row)
		assert.Equal(t, i%4, tg.Column)
	}
	assert.Equal(t, "res/pano/level2/1.png", tgs[0].Image)
	assert.Equal(t, "res/pano/level2/8.png", tgs[7].Image)
	assert.Equal(t, "level2/3.png", ImagePath("", "level2", 3))
}

// TestSharedBoundaries checks the 2 x 2 grid over 8 x 8 bands: the tiles
// meet at stack 4 and at slices 0, 4 and 8, with identical vertices.
func TestSharedBoundaries(t *testing.T) {
	const n = 8
	g := &Grid{Rows: 2, Columns: 2, Stacks: n, Slices: n, Radius: 1}
	tgs := make([][]*Geometry, 2)
	for row := range 2 {
		for col := range 2 {
			tg, err := g.Tile(row, col)
			require.NoError(t, err)
			tgs[row] = append(tgs[row], tg)
		}
	}
	// local vertex at tile-relative stack st and slice sl
	at := func(tg *Geometry, st, sl int) math32.Vector3 {
		return tg.Positions[st*(n/2+1)+sl]
	}

	// stack 4 is the bottom row of tile row 0 and the top row of tile row 1
	for slice := 0; slice <= n; slice++ {
		col, sl := slice/(n/2), slice%(n/2)
		if col == 2 {
			col, sl = 1, n/2
		}
		want, _, _ := g.Vertex(4, slice)
		assert.Equal(t, want, at(tgs[0][col], n/2, sl), "top tile slice %d", slice)
		assert.Equal(t, want, at(tgs[1][col], 0, sl), "bottom tile slice %d", slice)
	}
	// slice 4 is the right edge of column 0 and the left edge of column 1
	for row := range 2 {
		for st := 0; st <= n/2; st++ {
			assert.Equal(t, at(tgs[row][0], st, n/2), at(tgs[row][1], st, 0))
		}
	}
	// slice 8 wraps around to slice 0 up to rounding
	for row := range 2 {
		for st := 0; st <= n/2; st++ {
			assert.True(t, at(tgs[row][1], st, n/2).IsEqualTol(at(tgs[row][0], st, 0), 1e-6))
		}
	}
}

// TestWindingFacesInward checks that every triangle of every tile has
// the same counter-clockwise winding seen from the center, which makes
// its geometric normal point toward the center.
func TestWindingFacesInward(t *testing.T) {
	tgs, err := BuildLayer(testLayer{rows: 2, cols: 4, dir: "l"}, "", 16, 32, 3)
	require.NoError(t, err)
	for _, tg := range tgs {
		for i := range tg.NumTriangles() {
			a, b, c := tg.Triangle(i)
			fn := b.Sub(a).Cross(c.Sub(a))
			if fn.Length() < 1e-6 {
				continue // collapsed triangle at a pole
			}
			center := a.Add(b).Add(c).MulScalar(1.0 / 3)
			assert.Less(t, fn.Dot(center), float32(0), "tile %d,%d triangle %d", tg.Row, tg.Column, i)
		}
	}
}

func TestWriteOBJ(t *testing.T) {
	tgs, err := BuildLayer(testLayer{rows: 1, cols: 2, dir: "l1"}, "", 2, 4, 1)
	require.NoError(t, err)
	var obj, mtl bytes.Buffer
	require.NoError(t, WriteOBJ(&obj, "pano.mtl", tgs...))
	require.NoError(t, WriteMTL(&mtl, tgs...))

	count := func(s, prefix string) int {
		n := 0
		for _, ln := range strings.Split(s, "\n") {
			if strings.HasPrefix(ln, prefix) {
				n++
			}
		}
		return n
	}
	out := obj.String()
	assert.True(t, strings.HasPrefix(out, "mtllib pano.mtl\n"))
	assert.Equal(t, 2, count(out, "o "))
	assert.Equal(t, 2*3*3, count(out, "v "))
	assert.Equal(t, 2*3*3, count(out, "vt "))
	assert.Equal(t, 2*3*3, count(out, "vn "))
	assert.Equal(t, 2*2*2*2, count(out, "f "))
	// the second tile's faces are offset past the first tile's vertices
	assert.Contains(t, out, "f 10/10/10 ")

	assert.Contains(t, mtl.String(), "newmtl tile_2\nKd 1 1 1\nmap_Kd l1/2.png\n")
}

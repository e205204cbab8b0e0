// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tiles

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the given tiles as one Wavefront OBJ file (*.obj), one
// object per tile, referencing a material per tile by its image index.
// If mtllib is non-empty a mtllib statement naming it is written, see
// [WriteMTL]. Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
//
// OBJ indices are 1-based and global across the file, texture coordinates
// span each tile image, and faces keep the inward-facing winding of the tiles.
func WriteOBJ(w io.Writer, mtllib string, tgs ...*Geometry) error {
	bw := bufio.NewWriter(w)
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	base := 1
	for _, tg := range tgs {
		fmt.Fprintf(bw, "o tile_%d_%d\n", tg.Row, tg.Column)
		for _, p := range tg.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, uv := range tg.TileUVs() {
			// OBJ texture v runs upward
			fmt.Fprintf(bw, "vt %g %g\n", uv.X, 1-uv.Y)
		}
		for _, n := range tg.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		fmt.Fprintf(bw, "usemtl %s\n", materialName(tg))
		for i := 0; i+2 < len(tg.Indices); i += 3 {
			a := int(tg.Indices[i]) + base
			b := int(tg.Indices[i+1]) + base
			c := int(tg.Indices[i+2]) + base
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(tg.Positions)
	}
	return bw.Flush()
}

// WriteMTL writes the material library (*.mtl) for [WriteOBJ], with a
// diffuse texture map per tile pointing at its image.
func WriteMTL(w io.Writer, tgs ...*Geometry) error {
	bw := bufio.NewWriter(w)
	for _, tg := range tgs {
		fmt.Fprintf(bw, "newmtl %s\n", materialName(tg))
		fmt.Fprintf(bw, "Kd 1 1 1\n")
		if tg.Image != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", tg.Image)
		}
	}
	return bw.Flush()
}

func materialName(tg *Geometry) string {
	return fmt.Sprintf("tile_%d", tg.ImageIndex)
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tiler cuts an equirectangular panorama image into the tile
// images of every layer of a panorama configuration.
package tiler

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/pano/layers"
	"cogentcore.org/pano/tiles"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultTileSize is the tile image size in pixels for level 1.
const DefaultTileSize = 256

// Open opens an image from the given filename, in any of the png,
// jpeg, gif, bmp, tiff or webp formats.
func Open(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(bufio.NewReader(file))
}

// Read reads an image in any of the formats supported by [Open].
func Read(r io.Reader) (image.Image, error) {
	im, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	slog.Debug("tiler: decoded image", "format", format, "size", im.Bounds().Size())
	return im, nil
}

// Region returns the region of src covered by the tile at the given row
// and column of a rows x columns grid.
func Region(bounds image.Rectangle, row, column, rows, columns int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	return image.Rect(
		bounds.Min.X+column*w/columns, bounds.Min.Y+row*h/rows,
		bounds.Min.X+(column+1)*w/columns, bounds.Min.Y+(row+1)*h/rows,
	)
}

// Cut returns the tile images of one layer in row-major order, each
// scaled to size x size pixels.
func Cut(src image.Image, ly *layers.Layer, size int) []*image.RGBA {
	ims := make([]*image.RGBA, 0, ly.NumTiles())
	for row := range ly.Rows {
		for col := range ly.Columns {
			r := Region(src.Bounds(), row, col, ly.Rows, ly.Columns)
			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
			ims = append(ims, dst)
		}
	}
	return ims
}

// Tile writes the tile images of every layer of cfg, cut from src, under
// outDir following the layer image naming "<images>/<k>.png". The tiles
// of a layer are tileSize times its level pixels square; a tileSize of
// 0 means [DefaultTileSize].
func Tile(src image.Image, cfg *layers.Config, outDir string, tileSize int) error {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if src.Bounds().Empty() {
		return fmt.Errorf("tiler: empty source image")
	}
	for i := range cfg.Layers {
		ly := &cfg.Layers[i]
		if ly.Rows <= 0 || ly.Columns <= 0 {
			return fmt.Errorf("%w: %v", layers.ErrBadLayer, ly)
		}
		size := tileSize * max(ly.Level, 1)
		dir := filepath.Join(outDir, filepath.FromSlash(ly.Images))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for k, im := range Cut(src, ly, size) {
			fn := filepath.Join(outDir, filepath.FromSlash(tiles.ImagePath("", ly.Images, k+1)))
			if err := savePNG(fn, im); err != nil {
				return err
			}
		}
		slog.Info("tiler: wrote layer", "level", ly.Level, "tiles", ly.NumTiles(), "size", size, "dir", dir)
	}
	return nil
}

func savePNG(filename string, im image.Image) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(file)
	if err := png.Encode(bw, im); err != nil {
		return err
	}
	return bw.Flush()
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pano inspects, exports and prepares tiled panoramas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/cli"
	"cogentcore.org/pano/anim"
	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/layers"
	"cogentcore.org/pano/math32"
	"cogentcore.org/pano/panorama"
	"cogentcore.org/pano/tiler"
	"cogentcore.org/pano/tiles"
)

// Config is the configuration information for the pano cli.
type Config struct {

	// Resource is the panorama resource directory, or its configuration file.
	Resource string `posarg:"0" required:"-" default:"."`

	// Layer is the 1-based index of the layer to export.
	Layer int `cmd:"obj" default:"1"`

	// Output is the OBJ file to export to. The material library is
	// written next to it with the .mtl extension.
	Output string `cmd:"obj" flag:"o,output" default:"pano.obj"`

	// Input is the equirectangular image to cut into tiles.
	Input string `cmd:"tile" flag:"i,input"`

	// TileSize is the tile image size in pixels for level 1;
	// level n tiles are n times larger.
	TileSize int `cmd:"tile" default:"256"`

	// From is the start look direction as "x y z" or x,y,z.
	// Values starting with a minus sign must be given as -from=-1,0,0.
	From string `cmd:"animate" default:"0 0 -1"`

	// To are the look directions to rotate through, separated by
	// semicolons, as in -to=-1,0,0;0,0,1.
	To string `cmd:"animate" default:"-1 0 0"`

	// Steps is the number of samples after the start.
	Steps int `cmd:"animate" default:"8"`

	// Ease is the easing function: linear, inquad, outquad,
	// inoutquad, inoutcubic or inoutsine.
	Ease string `cmd:"animate" default:"linear"`
}

func main() {
	opts := cli.DefaultOptions("pano", "Pano inspects, exports and prepares tiled panoramas.")
	opts.DefaultFiles = []string{"pano.toml"}
	cli.Run(opts, &Config{},
		&cli.Cmd[*Config]{Func: Info, Name: "info", Doc: "Info prints the layers of a panorama and the field of view span of each.", Root: true},
		&cli.Cmd[*Config]{Func: Obj, Name: "obj", Doc: "Obj exports the tiles of one layer as a Wavefront OBJ file."},
		&cli.Cmd[*Config]{Func: Tile, Name: "tile", Doc: "Tile cuts an equirectangular image into the tile images of every layer."},
		&cli.Cmd[*Config]{Func: Animate, Name: "animate", Doc: "Animate samples a camera rotation and prints the orientations."},
		&cli.Cmd[*Config]{Func: Watch, Name: "watch", Doc: "Watch reloads the panorama configuration whenever it changes."},
	)
}

// configFile returns the configuration file of the resource.
func configFile(c *Config) (string, error) {
	if errors.Log1(fsx.FileExists(c.Resource)) {
		return c.Resource, nil
	}
	return layers.FindConfig(c.Resource)
}

// Info prints the layers of a panorama and the field of view span of each.
func Info(c *Config) error {
	fn, err := configFile(c)
	if err != nil {
		return err
	}
	cfg, err := layers.Open(fn)
	if err != nil {
		return err
	}
	sel := &layers.Selector{}
	sel.Configure(len(cfg.Layers), cfg.MinFOV, cfg.MaxFOV)
	fmt.Printf("%s: %d layers, field of view [%g, %g], radius %g, %d stacks x %d slices\n",
		fn, len(cfg.Layers), cfg.MinFOV, cfg.MaxFOV, cfg.Radius, cfg.Stacks, cfg.Slices)
	for i := range cfg.Layers {
		lo, hi := sel.Span(i + 1)
		fmt.Printf("  %d: %v, fov [%g, %g)\n", i+1, cfg.Layer(i+1), lo, hi)
	}
	return nil
}

// Obj exports the tiles of one layer as a Wavefront OBJ file.
func Obj(c *Config) error {
	fn, err := configFile(c)
	if err != nil {
		return err
	}
	cfg, err := layers.Load(fn)
	if err != nil {
		return err
	}
	ly := cfg.Layer(c.Layer)
	if ly == nil {
		return fmt.Errorf("pano: no layer %d in %d layers", c.Layer, len(cfg.Layers))
	}
	tgs, err := tiles.BuildLayer(ly, cfg.Resource, cfg.Stacks, cfg.Slices, cfg.Radius)
	if err != nil {
		return err
	}
	mtl := strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ".mtl"
	if err := writeFile(mtl, func(f *os.File) error { return tiles.WriteMTL(f, tgs...) }); err != nil {
		return err
	}
	return writeFile(c.Output, func(f *os.File) error { return tiles.WriteOBJ(f, filepath.Base(mtl), tgs...) })
}

func writeFile(filename string, fun func(f *os.File) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fun(f)
}

// Tile cuts an equirectangular image into the tile images of every layer,
// under the resource directory.
func Tile(c *Config) error {
	if c.Input == "" {
		return fmt.Errorf("pano: no input image given")
	}
	fn, err := configFile(c)
	if err != nil {
		return err
	}
	cfg, err := layers.Load(fn)
	if err != nil {
		return err
	}
	src, err := tiler.Open(c.Input)
	if err != nil {
		return err
	}
	return tiler.Tile(src, cfg, cfg.Resource, c.TileSize)
}

var eases = map[string]anim.EaseFunc{
	"linear":     anim.Linear,
	"inquad":     anim.InQuad,
	"outquad":    anim.OutQuad,
	"inoutquad":  anim.InOutQuad,
	"inoutcubic": anim.InOutCubic,
	"inoutsine":  anim.InOutSine,
}

// parseVector parses "x,y,z" or "x y z".
func parseVector(s string) (math32.Vector3, error) {
	fs := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if len(fs) != 3 {
		return math32.Vector3{}, fmt.Errorf("pano: invalid vector %q: need 3 components", s)
	}
	var c [3]float32
	for i, f := range fs {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return math32.Vector3{}, fmt.Errorf("pano: invalid vector %q: %w", s, err)
		}
		c[i] = float32(x)
	}
	return math32.Vec3(c[0], c[1], c[2]), nil
}

func orientation(look math32.Vector3) camera.Orientation {
	up, ok := camera.UpFromLook(camera.WorldUpReference, look)
	if !ok {
		up = math32.Vec3(0, 0, 1)
	}
	return camera.NewOrientation(look, up)
}

// Animate samples a camera rotation and prints the orientations.
func Animate(c *Config) error {
	from, err := parseVector(c.From)
	if err != nil {
		return err
	}
	var tos []camera.Orientation
	for _, s := range strings.Split(c.To, ";") {
		to, err := parseVector(s)
		if err != nil {
			return err
		}
		tos = append(tos, orientation(to))
	}
	rot := anim.NewRotation(orientation(from), tos...)
	if c.Ease != "" {
		ease, ok := eases[strings.ToLower(c.Ease)]
		if !ok {
			return fmt.Errorf("pano: unknown easing function %q", c.Ease)
		}
		rot.Ease = ease
	}
	steps := max(c.Steps, 1)
	for i := 0; i <= steps; i++ {
		p := float32(i) / float32(steps)
		fmt.Printf("%5.3f %v\n", p, rot.Sample(p))
	}
	return nil
}

// Watch reloads the panorama configuration whenever it changes, applying
// it to a panorama view and printing the resulting layer, until interrupted.
func Watch(c *Config) error {
	fn, err := configFile(c)
	if err != nil {
		return err
	}
	cfg, err := layers.Open(fn)
	if err != nil {
		return err
	}
	sc := panorama.SceneFunc(func(tgs []*tiles.Geometry) {
		fmt.Printf("%s: %d tiles\n", time.Now().Format(time.TimeOnly), len(tgs))
	})
	v, err := panorama.New(cfg, sc)
	if err != nil {
		return err
	}
	w, err := layers.Watch(fn)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ncfg := <-w.Configs():
			if err := v.SetConfig(ncfg); err != nil {
				errors.Log(err)
				continue
			}
			fmt.Printf("layer %d of %d: %v\n", v.Layer(), len(ncfg.Layers), v.LayerConfig())
		case <-w.Errors():
		}
	}
}

// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panorama ties the panorama core together: a [View] owns the
// camera rig, selects the level-of-detail layer for the current field of
// view, rebuilds the tile meshes when the layer changes, and hands them
// to an external [Scene] for rendering.
package panorama

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/pano/anim"
	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/layers"
	"cogentcore.org/pano/math32"
	"cogentcore.org/pano/pick"
	"cogentcore.org/pano/tiles"
)

// Scene is the rendering backend that displays the tiles of the current
// layer. SetTiles replaces all tiles; each tile is bound to its image
// [tiles.Geometry.Image] on the front face. The geometries are shared
// and must not be modified.
type Scene interface {
	SetTiles(tgs []*tiles.Geometry)
}

// SceneFunc is a function that implements [Scene].
type SceneFunc func(tgs []*tiles.Geometry)

func (f SceneFunc) SetTiles(tgs []*tiles.Geometry) { f(tgs) }

// View is an interactive panorama: a camera at the center of a tiled
// sphere. All methods must be called on the goroutine that owns the View;
// other goroutines can follow camera changes through [camera.Rig.Changes].
type View struct {

	// Rig is the camera.
	Rig *camera.Rig

	// Scene receives the tiles of the current layer.
	Scene Scene

	config   *layers.Config
	selector layers.Selector
	layer    int
	tiles    []*tiles.Geometry
	player   *anim.Player[camera.Orientation]
	caster   *pick.SphereCaster
	dragger  *pick.Dragger

	// rebuilding is set during a rebuild. A rebuild requested meanwhile
	// sets pending and runs after the current one.
	rebuilding bool
	pending    bool
}

// New returns a new [View] of the given configuration, which is copied,
// with the camera zoomed out to the maximum field of view and the tiles
// of the coarsest layer handed to the scene.
func New(cfg *layers.Config, sc Scene) (*View, error) {
	if cfg == nil {
		return nil, layers.ErrNoConfig
	}
	if err := cfg.Validate(nil); err != nil {
		return nil, err
	}
	v := &View{Scene: sc, config: cfg.Clone()}
	v.Rig = camera.NewRig(v.config.MaxFOV)
	v.caster = &pick.SphereCaster{Rig: v.Rig, Radius: v.config.Radius}
	v.configureSelector()
	v.layer = v.selector.Select(v.Rig.FOV)
	if err := v.Rebuild(); err != nil {
		return nil, err
	}
	return v, nil
}

// Config returns a copy of the current configuration.
func (v *View) Config() *layers.Config {
	return v.config.Clone()
}

// Layer returns the 1-based index of the current layer.
func (v *View) Layer() int { return v.layer }

// LayerConfig returns the current layer.
func (v *View) LayerConfig() *layers.Layer { return v.config.Layer(v.layer) }

// Tiles returns a copy of the list of tiles of the current layer.
// The geometries are shared with the [Scene] and must not be modified.
func (v *View) Tiles() []*tiles.Geometry { return slices.Clone(v.tiles) }

// IsRebuilding returns whether a rebuild is in progress.
func (v *View) IsRebuilding() bool { return v.rebuilding }

func (v *View) configureSelector() {
	c := v.config
	v.selector.Configure(len(c.Layers), c.MinFOV, c.MaxFOV)
	v.caster.Radius = c.Radius
	if v.dragger != nil {
		v.dragger.MinFOV, v.dragger.MaxFOV = c.MinFOV, c.MaxFOV
	}
}

// Zoom changes the field of view by delta degrees within the configured
// range, switching layers as needed. It returns whether the layer changed.
func (v *View) Zoom(delta float32) (bool, error) {
	v.Rig.Zoom(delta, v.config.MinFOV, v.config.MaxFOV)
	return v.Update()
}

// Rotate rotates the camera about axis by angle degrees.
func (v *View) Rotate(axis math32.Vector3, angle float32) {
	v.Rig.RotateAroundAxis(axis, angle)
}

// Update selects the layer for the current field of view and rebuilds
// the tiles if it differs from the current layer. It returns whether
// the layer changed.
func (v *View) Update() (bool, error) {
	idx := v.selector.Select(v.Rig.FOV)
	if !v.selector.ShouldSwitch(idx, v.layer) {
		return false, nil
	}
	slog.Debug("panorama: switching layer", "from", v.layer, "to", idx, "fov", v.Rig.FOV)
	v.layer = idx
	return true, v.Rebuild()
}

// Rebuild rebuilds the tiles of the current layer and hands them to the
// scene. A Rebuild called during a rebuild, for example from the scene,
// is deferred until the running one has finished.
func (v *View) Rebuild() error {
	if v.rebuilding {
		v.pending = true
		return nil
	}
	v.rebuilding = true
	defer func() { v.rebuilding = false }()
	for {
		v.pending = false
		if err := v.build(); err != nil {
			v.pending = false
			return err
		}
		if !v.pending {
			return nil
		}
	}
}

func (v *View) build() error {
	ly := v.config.Layer(v.layer)
	if ly == nil {
		return fmt.Errorf("panorama: no layer %d", v.layer)
	}
	c := v.config
	tgs, err := tiles.BuildLayer(ly, c.Resource, c.Stacks, c.Slices, c.Radius)
	if err != nil {
		return err
	}
	v.tiles = tgs
	slog.Info("panorama: built layer", "layer", v.layer, "level", ly.Level, "tiles", len(tgs))
	if v.Scene != nil {
		v.Scene.SetTiles(tgs)
	}
	return nil
}

// modify applies fun to a copy of the configuration and, if the result
// is valid, makes it current, reselects the layer and rebuilds.
func (v *View) modify(fun func(c *layers.Config)) error {
	nc := v.config.Clone()
	fun(nc)
	if err := nc.Validate(nil); err != nil {
		return err
	}
	v.config = nc
	v.configureSelector()
	v.Rig.Zoom(0, nc.MinFOV, nc.MaxFOV)
	v.layer = v.selector.Select(v.Rig.FOV)
	return v.Rebuild()
}

// SetResolution sets the number of stacks and slices of the sphere.
func (v *View) SetResolution(stacks, slices int) error {
	return v.modify(func(c *layers.Config) {
		c.Stacks, c.Slices = stacks, slices
	})
}

// SetRadius sets the sphere radius.
func (v *View) SetRadius(radius float32) error {
	return v.modify(func(c *layers.Config) {
		c.Radius = radius
	})
}

// SetFOVRange sets the field of view range, clamping the current field
// of view into it.
func (v *View) SetFOVRange(minFOV, maxFOV float32) error {
	return v.modify(func(c *layers.Config) {
		c.MinFOV, c.MaxFOV = minFOV, maxFOV
	})
}

// SetConfig replaces the configuration, as delivered by [layers.Watcher],
// keeping the camera.
func (v *View) SetConfig(cfg *layers.Config) error {
	if cfg == nil {
		return layers.ErrNoConfig
	}
	return v.modify(func(c *layers.Config) {
		*c = *cfg.Clone()
	})
}

// Animate starts playing the given rotation over the given duration,
// from the current camera orientation unless the rotation has an
// explicit start. Each [View.Tick] then sets the camera orientation.
func (v *View) Animate(rot *anim.Rotation, dur time.Duration, now time.Time) *anim.Player[camera.Orientation] {
	if rot.WorldUp.IsZero() {
		rot.WorldUp = v.Rig.Reference()
	}
	p := anim.NewPlayer[camera.Orientation](rot, dur)
	p.Apply = v.Rig.SetOrientation
	o := v.Rig.Orientation()
	p.Start(now, o, o)
	v.player = p
	return p
}

// Tick advances the running animation to now, returning whether it is
// still running.
func (v *View) Tick(now time.Time) bool {
	if v.player == nil {
		return false
	}
	if _, done := v.player.Tick(now); done {
		v.player = nil
		return false
	}
	return true
}

// IsAnimating returns whether an animation is running.
func (v *View) IsAnimating() bool { return v.player != nil }

// StopAnimation stops the running animation where it is.
func (v *View) StopAnimation() { v.player = nil }

// SetViewport sets the size in pixels of the viewport the view is
// rendered to, used by [View.Caster].
func (v *View) SetViewport(width, height float32) {
	v.caster.Width, v.caster.Height = width, height
}

// Caster returns the ray caster onto the sphere of the view through
// the viewport set by [View.SetViewport].
func (v *View) Caster() *pick.SphereCaster { return v.caster }

// Dragger returns the pointer handler of the view, creating it on first
// use with the given mode and ray caster. A nil caster uses [View.Caster].
// Wheel zooms update the layer.
func (v *View) Dragger(mode pick.Modes, caster pick.RayCaster) *pick.Dragger {
	if v.dragger != nil {
		v.dragger.Mode = mode
		if caster != nil {
			v.dragger.Caster = caster
		}
		return v.dragger
	}
	if caster == nil {
		caster = v.caster
	}
	v.dragger = pick.NewDragger(v.Rig, caster, mode)
	v.configureSelector()
	v.dragger.OnChanged = func() {
		errors.Log1(v.Update())
	}
	return v.dragger
}

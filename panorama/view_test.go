// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panorama

import (
	"testing"
	"time"

	"cogentcore.org/pano/anim"
	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/layers"
	"cogentcore.org/pano/math32"
	"cogentcore.org/pano/pick"
	"cogentcore.org/pano/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a [Scene] that records the tiles it receives.
type recorder struct {
	calls [][]*tiles.Geometry
}

func (r *recorder) SetTiles(tgs []*tiles.Geometry) {
	r.calls = append(r.calls, tgs)
}

func (r *recorder) last() []*tiles.Geometry {
	return r.calls[len(r.calls)-1]
}

func testConfig() *layers.Config {
	c := layers.NewConfig("res",
		layers.Layer{Level: 1, Rows: 1, Columns: 2, Images: "l1"},
		layers.Layer{Level: 2, Rows: 2, Columns: 4, Images: "l2"},
	)
	c.MaxFOV = 125
	return c
}

func newView(t *testing.T) (*View, *recorder) {
	rec := &recorder{}
	v, err := New(testConfig(), rec)
	require.NoError(t, err)
	return v, rec
}

func TestNew(t *testing.T) {
	v, rec := newView(t)
	assert.Equal(t, float32(125), v.Rig.FOV)
	assert.Equal(t, 1, v.Layer())
	assert.Equal(t, "l1", v.LayerConfig().Images)
	require.Len(t, rec.calls, 1)
	require.Len(t, rec.last(), 2)
	assert.Equal(t, "res/l1/1.png", rec.last()[0].Image)
	assert.Equal(t, rec.last(), v.Tiles())
	tgs := v.Tiles()
	tgs[0] = nil
	assert.NotNil(t, v.Tiles()[0])
	assert.Same(t, rec.last()[0], v.Tiles()[0])

	_, err := New(nil, rec)
	assert.ErrorIs(t, err, layers.ErrNoConfig)
	_, err = New(layers.NewConfig("res"), rec)
	assert.ErrorIs(t, err, layers.ErrNoLayers)

	// the view keeps its own copy
	cfg := testConfig()
	v, err = New(cfg, nil)
	require.NoError(t, err)
	cfg.Layers[0].Images = "changed"
	assert.Equal(t, "l1", v.LayerConfig().Images)
	assert.Equal(t, "l1", v.Config().Layers[0].Images)
}

func TestZoomSwitchesLayers(t *testing.T) {
	v, rec := newView(t)

	// 60 degrees per layer over [5, 125]
	changed, err := v.Zoom(-30)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, v.Layer())
	assert.Len(t, rec.calls, 1)

	changed, err = v.Zoom(-40)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, v.Layer())
	require.Len(t, rec.calls, 2)
	assert.Len(t, rec.last(), 8)
	assert.Equal(t, "res/l2/8.png", rec.last()[7].Image)

	changed, err = v.Zoom(-200)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, float32(5), v.Rig.FOV)

	changed, err = v.Zoom(500)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, float32(125), v.Rig.FOV)
	assert.Equal(t, 1, v.Layer())
	assert.Len(t, rec.calls, 3)
}

// TestRebuildGuard checks that a rebuild requested by the scene while it
// receives tiles runs after the current rebuild, not inside of it.
func TestRebuildGuard(t *testing.T) {
	v, _ := newView(t)
	depth, calls := 0, 0
	v.Scene = SceneFunc(func(tgs []*tiles.Geometry) {
		depth++
		calls++
		assert.Equal(t, 1, depth)
		assert.True(t, v.IsRebuilding())
		if calls == 1 {
			assert.NoError(t, v.Rebuild())
			assert.NoError(t, v.Rebuild())
		}
		depth--
	})
	require.NoError(t, v.Rebuild())
	assert.Equal(t, 2, calls)
	assert.False(t, v.IsRebuilding())

	require.NoError(t, v.Rebuild())
	assert.Equal(t, 3, calls)
}

func TestSetResolution(t *testing.T) {
	v, rec := newView(t)
	require.NoError(t, v.SetResolution(16, 16))
	require.Len(t, rec.calls, 2)
	assert.Len(t, rec.last()[0].Positions, 17*9)

	err := v.SetResolution(30, 30)
	assert.ErrorIs(t, err, tiles.ErrNotDivisible)
	assert.Equal(t, 16, v.Config().Stacks)
	assert.Len(t, rec.calls, 2)
}

func TestSetRadius(t *testing.T) {
	v, rec := newView(t)
	require.NoError(t, v.SetRadius(3))
	for _, p := range rec.last()[1].Positions {
		assert.InDelta(t, 3, p.Length(), 1e-4)
	}
	assert.Equal(t, float32(3), v.Caster().Radius)
	assert.Error(t, v.SetRadius(0))
}

func TestSetFOVRange(t *testing.T) {
	v, rec := newView(t)
	require.NoError(t, v.SetFOVRange(5, 60))
	assert.Equal(t, float32(60), v.Rig.FOV)
	assert.Equal(t, 1, v.Layer())
	assert.Len(t, rec.calls, 2)

	_, err := v.Zoom(-30)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Layer())

	assert.ErrorIs(t, v.SetFOVRange(60, 5), layers.ErrBadFOV)
}

func TestSetConfig(t *testing.T) {
	v, rec := newView(t)
	_, err := v.Zoom(-100)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Layer())

	cfg := testConfig()
	cfg.Layers = append(cfg.Layers, layers.Layer{Level: 3, Rows: 4, Columns: 8, Images: "l3"})
	require.NoError(t, v.SetConfig(cfg))
	// 40 degrees per layer, fov 25 selects the finest
	assert.Equal(t, 3, v.Layer())
	assert.Len(t, rec.last(), 32)
	assert.Equal(t, float32(25), v.Rig.FOV)

	assert.ErrorIs(t, v.SetConfig(nil), layers.ErrNoConfig)
	assert.ErrorIs(t, v.SetConfig(layers.NewConfig("")), layers.ErrNoLayers)
	assert.Equal(t, 3, v.Layer())
}

func TestAnimate(t *testing.T) {
	v, _ := newView(t)
	to := camera.NewOrientation(math32.Vec3(-1, 0, 0), math32.Vec3(0, 1, 0))
	rot := (&anim.Rotation{}).SetTo(to)

	now := time.Unix(50, 0)
	v.Animate(rot, time.Second, now)
	assert.True(t, v.IsAnimating())
	assert.True(t, v.Tick(now.Add(500*time.Millisecond)))
	s, c := math32.Sincos(math32.DegToRad(45))
	assert.True(t, math32.Vec3(-s, 0, -c).IsEqualTol(v.Rig.Look, 1e-5), "%v", v.Rig.Look)

	assert.False(t, v.Tick(now.Add(2*time.Second)))
	assert.False(t, v.IsAnimating())
	assert.True(t, v.Rig.Orientation().IsEqualTol(to, 1e-5), "%v", v.Rig.Orientation())
	assert.False(t, v.Tick(now.Add(3*time.Second)))

	v.Animate(rot, time.Second, now)
	v.StopAnimation()
	assert.False(t, v.Tick(now))
	v.Rig.WorldUp = math32.Vec3(1, 0, 0)
	rot = (&anim.Rotation{}).SetTo(to)
	v.Animate(rot, time.Second, now)
	assert.Equal(t, v.Rig.WorldUp, rot.WorldUp)
}

func TestDragger(t *testing.T) {
	v, rec := newView(t)
	v.SetViewport(400, 300)
	dr := v.Dragger(pick.RayPick, nil)
	assert.Same(t, v.Caster(), dr.Caster)
	assert.Equal(t, float32(5), dr.MinFOV)
	assert.Equal(t, float32(125), dr.MaxFOV)

	dr.Press(math32.Vec2(200, 150))
	assert.True(t, dr.Move(math32.Vec2(250, 150)))
	assert.True(t, dr.Release())
	assert.Equal(t, 1, v.Layer())

	dr.ZoomStep = 100
	assert.True(t, dr.Wheel(1))
	assert.Equal(t, float32(25), v.Rig.FOV)
	assert.Equal(t, 2, v.Layer())
	assert.Len(t, rec.calls, 2)

	assert.Same(t, dr, v.Dragger(pick.InSitu, nil))
	assert.Equal(t, pick.InSitu, dr.Mode)
}

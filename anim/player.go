// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"time"

	"cogentcore.org/pano/math32"
)

// Player drives an [Animator] from an external monotonic clock.
// It has no goroutine of its own: the owner calls [Player.Tick] once per
// rendered frame and simply stops calling it to detach the animation.
type Player[T any] struct {

	// Animator is the animation being played.
	Animator Animator[T]

	// Duration is the time taken to go from progress 0 to 1.
	Duration time.Duration

	// Apply, if set, is called with every sampled value.
	Apply func(v T)

	start   time.Time
	running bool
}

// NewPlayer returns a new [Player] for the given animator and duration.
func NewPlayer[T any](a Animator[T], dur time.Duration) *Player[T] {
	return &Player[T]{Animator: a, Duration: dur}
}

// Start activates the animation at the given time, preparing it with
// the given default origin and destination.
func (p *Player[T]) Start(now time.Time, origin, destination T) {
	p.Animator.Prepare(origin, destination)
	p.start = now
	p.running = true
}

// IsRunning returns whether the animation has been started and has not
// yet reached its end.
func (p *Player[T]) IsRunning() bool {
	return p.running
}

// Progress returns the raw progress at the given time, in [0, 1].
func (p *Player[T]) Progress(now time.Time) float32 {
	if p.Duration <= 0 {
		return 1
	}
	return math32.Clamp(float32(now.Sub(p.start))/float32(p.Duration), 0, 1)
}

// Tick samples the animation at the given time and reports whether it
// has finished. Ticking a player that is not running returns the final
// value and done.
func (p *Player[T]) Tick(now time.Time) (value T, done bool) {
	progress := float32(1)
	if p.running {
		progress = p.Progress(now)
	}
	value = p.Animator.Sample(progress)
	if p.Apply != nil {
		p.Apply(value)
	}
	done = progress >= 1
	if done {
		p.running = false
	}
	return
}

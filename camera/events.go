// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import "log/slog"

// EventKinds are the kinds of camera [Event].
type EventKinds int32

const (
	// Zoomed is sent when the field of view changes.
	Zoomed EventKinds = iota

	// Rotated is sent after a rotation of the look direction.
	Rotated

	// Oriented is sent when the orientation is set directly.
	Oriented
)

func (k EventKinds) String() string {
	switch k {
	case Zoomed:
		return "Zoomed"
	case Rotated:
		return "Rotated"
	case Oriented:
		return "Oriented"
	}
	return "Unknown"
}

// Event is a snapshot of the camera state published after every mutation.
// It replaces continuous polling of the camera by overlay owners.
type Event struct {
	Kind        EventKinds
	Orientation Orientation
	FOV         float32
}

// ChangesBuffer is the capacity of the channel returned by [Rig.Changes].
const ChangesBuffer = 64

// OnChange adds a function that is called synchronously, on the owning
// goroutine, after every camera mutation.
func (rg *Rig) OnChange(fun func(ev Event)) {
	rg.subs = append(rg.subs, fun)
}

// Changes returns a channel that receives a copy of every camera [Event].
// It is meant for consumers on other goroutines, for example a screen-space
// marker overlay. Sends never block the owner: when the buffer is full the
// event is dropped, and the consumer catches up with the next one.
func (rg *Rig) Changes() <-chan Event {
	if rg.changes == nil {
		rg.changes = make(chan Event, ChangesBuffer)
	}
	return rg.changes
}

func (rg *Rig) publish(kind EventKinds) {
	if len(rg.subs) == 0 && rg.changes == nil {
		return
	}
	ev := Event{Kind: kind, Orientation: rg.Orientation(), FOV: rg.FOV}
	for _, fun := range rg.subs {
		fun(ev)
	}
	if rg.changes == nil {
		return
	}
	select {
	case rg.changes <- ev:
	default:
		slog.Debug("camera: dropped change event, consumer is behind", "kind", kind)
	}
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"math"

	"cogentcore.org/vrml/field"
)

// TimeSensor generates events as time passes.
type TimeSensor struct {
	NodeBase

	active bool

	// start is the startTime in effect since activation; changes to
	// startTime are ignored while active.
	start      float64
	cycleStart float64
}

func timeSensorClass() *BuiltinClass {
	return newBuiltinClass("TimeSensor", func() Node { return &TimeSensor{} },
		exposedField(field.SFTime, "cycleInterval", "1"),
		exposedField(field.SFBool, "enabled", "TRUE"),
		exposedField(field.SFBool, "loop", "FALSE"),
		exposedField(field.SFTime, "startTime", "0"),
		exposedField(field.SFTime, "stopTime", "0"),
		eventOut(field.SFTime, "cycleTime"),
		eventOut(field.SFFloat, "fraction_changed"),
		eventOut(field.SFBool, "isActive"),
		eventOut(field.SFTime, "time"),
	)
}

func (ts *TimeSensor) IsActive() bool { return ts.active }

func (ts *TimeSensor) OnInitialize(t float64) {
	ts.Browser().AddTimer(ts)
}

func (ts *TimeSensor) OnShutdown(t float64) {
	ts.Browser().RemoveTimer(ts)
}

func (ts *TimeSensor) HandleEvent(name string, v field.Value, t float64) error {
	if name == "enabled" && !field.Get[bool](v) && ts.active {
		ts.deactivate(t)
	}
	return nil
}

func (ts *TimeSensor) deactivate(now float64) {
	ts.active = false
	ts.sendEvent("isActive", field.NewBool(false), now)
}

// UpdateTime activates the sensor at its start time, sends the
// fraction of the current cycle and the time while it is active,
// and deactivates it at its stop time or at the end of its only
// cycle when it does not loop.
func (ts *TimeSensor) UpdateTime(now float64) {
	nb := &ts.NodeBase
	if !fieldOf[bool](nb, "enabled") {
		return
	}
	interval := fieldOf[float64](nb, "cycleInterval")
	loop := fieldOf[bool](nb, "loop")
	stop := fieldOf[float64](nb, "stopTime")
	if interval <= 0 {
		return
	}

	if !ts.active {
		start := fieldOf[float64](nb, "startTime")
		if now < start || (stop > start && now >= stop) || (!loop && now >= start+interval) {
			return
		}
		ts.active = true
		ts.start = start
		ts.cycleStart = start + math.Floor((now-start)/interval)*interval
		ts.sendEvent("isActive", field.NewBool(true), now)
		ts.sendEvent("cycleTime", field.NewTime(now), now)
	}

	if stop > ts.start && now >= stop {
		ts.deactivate(now)
		return
	}
	elapsed := now - ts.start
	if !loop && elapsed >= interval {
		ts.sendEvent("fraction_changed", field.NewFloat(1), now)
		ts.sendEvent("time", field.NewTime(now), now)
		ts.deactivate(now)
		return
	}
	if now >= ts.cycleStart+interval {
		ts.cycleStart = ts.start + math.Floor(elapsed/interval)*interval
		ts.sendEvent("cycleTime", field.NewTime(now), now)
	}
	fraction := math.Mod(elapsed, interval) / interval
	if fraction == 0 && elapsed > 0 {
		fraction = 1
	}
	ts.sendEvent("fraction_changed", field.NewFloat(float32(fraction)), now)
	ts.sendEvent("time", field.NewTime(now), now)
}

// mediaTimer is the common part of the time dependent media nodes.
// Media is not decoded, so the duration is unknown and a clip stays
// active from its start time until its stop time.
type mediaTimer struct {
	NodeBase
	active bool
}

func mediaDecls() []decl {
	return []decl{
		exposedField(field.SFBool, "loop", "FALSE"),
		exposedField(field.SFTime, "startTime", "0"),
		exposedField(field.SFTime, "stopTime", "0"),
		exposedField(field.MFString, "url", ""),
		eventOut(field.SFTime, "duration_changed"),
		eventOut(field.SFBool, "isActive"),
	}
}

func (m *mediaTimer) IsActive() bool { return m.active }

// Duration returns the duration of the media, -1 when unknown.
func (m *mediaTimer) Duration() float64 { return -1 }

// URL returns the urls of the media.
func (m *mediaTimer) URL() []string {
	return fieldsOf[string](&m.NodeBase, "url")
}

func (m *mediaTimer) UpdateTime(now float64) {
	nb := &m.NodeBase
	start := fieldOf[float64](nb, "startTime")
	stop := fieldOf[float64](nb, "stopTime")
	active := now >= start && (stop <= start || now < stop)
	if active == m.active {
		return
	}
	m.active = active
	m.sendEvent("isActive", field.NewBool(active), now)
}

func (m *mediaTimer) sendDuration(ts float64) {
	m.sendEvent("duration_changed", field.NewTime(m.Duration()), ts)
}

// AudioClip is a sound source.
type AudioClip struct {
	mediaTimer
}

func audioClipClass() *BuiltinClass {
	decls := append(mediaDecls(),
		exposedField(field.SFString, "description", ""),
		exposedField(field.SFFloat, "pitch", "1.0"),
	)
	return newBuiltinClass("AudioClip", func() Node { return &AudioClip{} }, decls...)
}

func (a *AudioClip) OnInitialize(ts float64) {
	a.Browser().AddAudioClip(a)
	a.sendDuration(ts)
}

func (a *AudioClip) OnShutdown(ts float64) {
	a.Browser().RemoveAudioClip(a)
}

// MovieTexture is a texture from a movie.
type MovieTexture struct {
	mediaTimer
}

func movieTextureClass() *BuiltinClass {
	decls := append(mediaDecls(),
		exposedField(field.SFFloat, "speed", "1.0"),
		fieldDecl(field.SFBool, "repeatS", "TRUE"),
		fieldDecl(field.SFBool, "repeatT", "TRUE"),
	)
	return newBuiltinClass("MovieTexture", func() Node { return &MovieTexture{} }, decls...)
}

func (m *MovieTexture) OnInitialize(ts float64) {
	m.Browser().AddMovie(m)
	m.sendDuration(ts)
}

func (m *MovieTexture) OnShutdown(ts float64) {
	m.Browser().RemoveMovie(m)
}

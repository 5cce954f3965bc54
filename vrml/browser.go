// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/math32"
)

// Version is the version of the browser.
const Version = "0.1.0"

// State is the load state of a [Browser].
type State int32

const (
	// Unloaded is the state before the first load and after Close.
	Unloaded State = iota

	// Loading is the state during Load.
	Loading

	// Ready is the state after Load.
	Ready
)

// WorldChangedReason is the reason a world changed callback is called.
type WorldChangedReason int32

const (
	// ReplaceWorldReason is sent when a new world has been loaded
	// or the root nodes have been replaced.
	ReplaceWorldReason WorldChangedReason = iota

	// DestroyWorldReason is sent when the browser is closed.
	DestroyWorldReason
)

// NavigationDefaults are the navigation parameters used when no
// NavigationInfo node is bound.
type NavigationDefaults struct {
	AvatarSize      []float32
	Headlight       bool
	Speed           float32
	VisibilityLimit float32
}

// DefaultNavigation returns the default [NavigationDefaults].
func DefaultNavigation() NavigationDefaults {
	return NavigationDefaults{AvatarSize: []float32{0.25, 1.6, 0.75}, Headlight: true, Speed: 1}
}

// Options configure a [Browser].
type Options struct {

	// Parser parses scene documents.
	Parser Parser

	// Fetcher fetches scene documents.
	Fetcher Fetcher

	// ScriptEngines are the script engines, keyed by the URL scheme
	// of the script code they run, such as "native".
	ScriptEngines map[string]ScriptEngine

	// Metrics, if set, records browser metrics.
	Metrics *Metrics

	// EventQueueCapacity is the capacity of the event queue,
	// [DefaultEventQueueCapacity] if it is not positive.
	EventQueueCapacity int

	// Clock returns the current time in seconds, for the timestamps of
	// operations that are not given one. It defaults to the wall clock.
	Clock func() float64

	// Navigation are the navigation defaults. If AvatarSize is nil,
	// [DefaultNavigation] is used.
	Navigation NavigationDefaults
}

// interestList is a list of nodes the browser calls at specific points,
// such as once per frame. A node is on a list at most once.
type interestList[T comparable] struct {
	items []T
}

func (l *interestList[T]) add(n T) {
	if !slices.Contains(l.items, n) {
		l.items = append(l.items, n)
	}
}

func (l *interestList[T]) remove(n T) {
	if i := slices.Index(l.items, n); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
}

func (l *interestList[T]) clear() { l.items = nil }

// InterestCounts are the lengths of the browser's interest lists.
type InterestCounts struct {
	Timers          int
	AudioClips      int
	Movies          int
	Scripts         int
	Protos          int
	ScopedLights    int
	Viewpoints      int
	NavigationInfos int
}

// Empty returns whether all of the lists are empty.
func (c InterestCounts) Empty() bool { return c == InterestCounts{} }

// Browser owns the current [Scene] and drives it: it delivers events,
// updates time dependent nodes once per frame, keeps the bindable node
// stacks and renders the scene to a [Viewer]. All of its methods must
// be called from one goroutine.
type Browser struct {
	opts    Options
	metrics *Metrics

	classes ClassRegistry
	scene   *Scene
	state   State
	queue   *EventQueue

	viewpointStack   *BindStack
	navigationStack  *BindStack
	defaultViewpoint *Viewpoint

	timers          interestList[TimeDependentNode]
	audioClips      interestList[TimeDependentNode]
	movies          interestList[TimeDependentNode]
	scripts         interestList[*Script]
	protos          interestList[*ProtoInstance]
	scopedLights    interestList[LightNode]
	viewpoints      interestList[ViewpointNode]
	navigationInfos interestList[NavigationInfoNode]

	modified        bool
	resetNavigation bool
	frameRate       float64
	description     string
	worldChanged    []func(reason WorldChangedReason)
}

// NewBrowser returns a new browser with an empty world.
func NewBrowser(opts Options) *Browser {
	if opts.Clock == nil {
		opts.Clock = func() float64 {
			return float64(time.Now().UnixNano()) / 1e9
		}
	}
	if opts.Navigation.AvatarSize == nil {
		opts.Navigation = DefaultNavigation()
	}
	b := &Browser{opts: opts, metrics: opts.Metrics, queue: NewEventQueue(opts.EventQueueCapacity)}
	b.viewpointStack = &BindStack{OnChange: func() {
		b.modified = true
		b.resetNavigation = true
	}}
	b.navigationStack = &BindStack{OnChange: b.SetModified}

	vc := viewpointClass()
	vc.browser = b
	vt := errors.Must1(vc.CreateType("Viewpoint", nil))
	b.defaultViewpoint = vt.create(vt, nil).(*Viewpoint)

	b.registerBuiltins()
	b.scene = NewScene(b, nil)
	return b
}

// Name returns the name of the browser.
func (b *Browser) Name() string { return "Cogent VRML" }

// Version returns the version of the browser.
func (b *Browser) Version() string { return Version }

// State returns the load state.
func (b *Browser) State() State { return b.state }

// Scene returns the current scene.
func (b *Browser) Scene() *Scene { return b.scene }

// Classes returns the node class registry.
func (b *Browser) Classes() *ClassRegistry { return &b.classes }

// Now returns the current time of the browser clock.
func (b *Browser) Now() float64 { return b.opts.Clock() }

////////  Loading

// Load replaces the world with the scene loaded from the first of the
// URIs that can be loaded. The current scene is shut down and the class
// registry rebuilt first, so if no URI can be loaded the world is left
// empty and the error is returned. A fragment in the loaded URI names
// the initial viewpoint.
func (b *Browser) Load(urls []string, params []string) error {
	ts := b.Now()
	b.state = Loading
	if b.scene != nil {
		b.scene.Shutdown(ts)
	}
	b.clearInterestLists()
	b.classes.Clear()
	b.viewpointStack.Clear()
	b.navigationStack.Clear()
	b.queue.Flush()
	b.registerBuiltins()

	b.scene = NewScene(b, nil)
	err := b.scene.Load(urls, params)
	b.metrics.load(err)
	if err != nil {
		errors.Warn(err, "scene", b.scene.ID().String())
	}
	b.scene.Initialize(ts)
	b.classes.Initialize(b.fragmentViewpoint(), ts)

	b.state = Ready
	b.modified = true
	b.resetNavigation = true
	b.notifyWorldChanged(ReplaceWorldReason)
	return err
}

// clearInterestLists empties every interest list. After the scene is
// shut down they should already be empty; nodes that did not
// unregister are logged.
func (b *Browser) clearInterestLists() {
	if c := b.InterestCounts(); !c.Empty() {
		slog.Warn("vrml: interest lists not empty after shutdown", "counts", c)
	}
	b.timers.clear()
	b.audioClips.clear()
	b.movies.clear()
	b.scripts.clear()
	b.protos.clear()
	b.scopedLights.clear()
	b.viewpoints.clear()
	b.navigationInfos.clear()
}

func (b *Browser) fragmentViewpoint() ViewpointNode {
	u, err := url.Parse(b.scene.URL())
	if err != nil || u.Fragment == "" {
		return nil
	}
	n, ok := b.scene.Scope().FindNode(u.Fragment)
	if !ok {
		slog.Warn("vrml: viewpoint in URL fragment not found", "viewpoint", u.Fragment)
		return nil
	}
	vp, _ := ToViewpoint(n)
	return vp
}

// ReplaceWorld replaces the root nodes of the current scene.
func (b *Browser) ReplaceWorld(nodes []Node) {
	b.scene.SetNodes(nodes, b.Now())
	b.modified = true
	b.notifyWorldChanged(ReplaceWorldReason)
}

// Close shuts down the current scene and empties the world.
func (b *Browser) Close() {
	ts := b.Now()
	b.scene.Shutdown(ts)
	b.clearInterestLists()
	b.viewpointStack.Clear()
	b.navigationStack.Clear()
	b.queue.Flush()
	b.scene = NewScene(b, nil)
	b.state = Unloaded
	b.notifyWorldChanged(DestroyWorldReason)
}

// CreateFromStream parses scene text into nodes in the current scene's
// scope. The nodes are not added to the world. Errors match
// [ErrInvalidScene].
func (b *Browser) CreateFromStream(text string) ([]Node, error) {
	if b.opts.Parser == nil {
		return nil, errors.Errorf("%w: no parser", ErrInvalidScene)
	}
	nodes, err := b.opts.Parser.Parse(b.scene, strings.NewReader(text))
	if err != nil {
		if !errors.Is(err, ErrInvalidScene) {
			err = errors.Errorf("%w: %w", ErrInvalidScene, err)
		}
		return nil, err
	}
	return nodes, nil
}

// AddWorldChangedCallback adds a function called when the world changes.
func (b *Browser) AddWorldChangedCallback(fun func(reason WorldChangedReason)) {
	b.worldChanged = append(b.worldChanged, fun)
}

func (b *Browser) notifyWorldChanged(reason WorldChangedReason) {
	for _, f := range b.worldChanged {
		f(reason)
	}
}

// WorldURL returns the URI of the current world.
func (b *Browser) WorldURL() string { return b.scene.URL() }

// RootNodes returns the root nodes of the current world.
func (b *Browser) RootNodes() []Node { return b.scene.Nodes() }

// FindNode returns the path from a root node of the world to n, or nil
// if n is not in the world.
func (b *Browser) FindNode(n Node) []Node {
	return FindPath(b.scene.Nodes(), n)
}

// SetDescription sets the description of the world.
func (b *Browser) SetDescription(s string) {
	b.description = s
	slog.Info("vrml: world description", "description", s)
}

// Description returns the description of the world.
func (b *Browser) Description() string { return b.description }

// FrameRate returns the frame rate last reported by the viewer.
func (b *Browser) FrameRate() float64 { return b.frameRate }

// Modified returns whether the world needs to be redrawn.
func (b *Browser) Modified() bool { return b.modified }

// SetModified marks the world as needing to be redrawn.
func (b *Browser) SetModified() { b.modified = true }

////////  Routes and events

// AddRoute adds a route, as [AddRoute] does.
func (b *Browser) AddRoute(from Node, eventOut string, to Node, eventIn string) error {
	if err := AddRoute(from, eventOut, to, eventIn); err != nil {
		return err
	}
	b.modified = true
	return nil
}

// DeleteRoute removes a route, as [DeleteRoute] does.
func (b *Browser) DeleteRoute(from Node, eventOut string, to Node, eventIn string) bool {
	if !DeleteRoute(from, eventOut, to, eventIn) {
		return false
	}
	b.modified = true
	return true
}

// QueueEvent adds an event to the event queue.
func (b *Browser) QueueEvent(e Event) {
	evicted := b.queue.Enqueue(e)
	b.metrics.enqueued(evicted)
	if evicted {
		slog.Warn("vrml: event queue full, discarded oldest event", "capacity", b.queue.Cap())
	}
}

// EventsPending returns the number of queued events.
func (b *Browser) EventsPending() int { return b.queue.Len() }

// FlushEvents discards all of the queued events.
func (b *Browser) FlushEvents() { b.queue.Flush() }

// logEventError logs an error from delivering an event to a node.
func logEventError(err error, n Node, name string) {
	if err != nil {
		slog.Warn("vrml: event failed", "node", n.AsNode().String(), "eventIn", name, "err", err)
	}
}

// Update runs one frame at time now: it delivers the queued events,
// including the events their delivery causes, then updates the time
// dependent nodes and sends the eventOuts set by scripts and PROTO
// instances; the events these send are delivered in the next frame.
// It returns whether the world needs to be redrawn.
func (b *Browser) Update(now float64) bool {
	for {
		e, ok := b.queue.Dequeue()
		if !ok {
			break
		}
		err := e.To.AsNode().ProcessEvent(e.EventIn, e.Value, e.Timestamp)
		b.metrics.delivered(err)
		logEventError(err, e.To, e.EventIn)
	}

	for _, l := range [][]TimeDependentNode{b.timers.items, b.audioClips.items, b.movies.items} {
		for _, n := range slices.Clone(l) {
			n.UpdateTime(now)
		}
	}

	for _, s := range slices.Clone(b.scripts.items) {
		s.flush(now)
	}
	for _, p := range slices.Clone(b.protos.items) {
		p.flush(now)
	}

	b.metrics.frame(b.queue.Len())
	slog.Debug("vrml: update", "time", now, "pending", b.queue.Len(), "modified", b.modified)
	return b.modified
}

////////  Rendering

// Render draws the world with the viewer: the headlight, the scoped
// lights, the active viewpoint, the classes and then the scene.
func (b *Browser) Render(v Viewer) {
	if b.resetNavigation {
		v.ResetUserNavigation()
		b.resetNavigation = false
	}
	avatar, visibility := b.opts.Navigation.AvatarSize, b.opts.Navigation.VisibilityLimit
	if nav := b.ActiveNavigationInfo(); nav != nil {
		avatar, visibility = nav.AvatarSize(), nav.VisibilityLimit()
	}
	if b.HeadlightOn() {
		v.InsertLight(Light{
			Kind:             DirectionalLightKind,
			AmbientIntensity: 0.3,
			Intensity:        1,
			Color:            math32.NewColor(1, 1, 1),
			Direction:        math32.Vec3(0, 0, -1),
		})
	}
	for _, l := range b.scopedLights.items {
		if l.On() {
			v.InsertLight(l.Light())
		}
	}
	var avatarSize float32
	if len(avatar) > 0 {
		avatarSize = avatar[0]
	}
	vp := b.ActiveViewpoint()
	v.SetViewpoint(vp.Position(), vp.Orientation(), vp.FieldOfView(), avatarSize, visibility)

	b.classes.Render(v)
	b.scene.Render(v)
	b.frameRate = v.FrameRate()
	b.modified = false
}

////////  Bindable nodes

// ActiveViewpoint returns the bound viewpoint, or a default viewpoint
// if none is bound.
func (b *Browser) ActiveViewpoint() ViewpointNode {
	if vp, ok := ToViewpoint(b.viewpointStack.Top()); ok {
		return vp
	}
	return b.defaultViewpoint
}

// DefaultViewpoint returns the viewpoint used when none is bound.
func (b *Browser) DefaultViewpoint() ViewpointNode { return b.defaultViewpoint }

// ActiveNavigationInfo returns the bound NavigationInfo, or nil.
func (b *Browser) ActiveNavigationInfo() NavigationInfoNode {
	nav, _ := ToNavigationInfo(b.navigationStack.Top())
	return nav
}

// ViewpointStack returns the Viewpoint bind stack.
func (b *Browser) ViewpointStack() *BindStack { return b.viewpointStack }

// NavigationInfoStack returns the NavigationInfo bind stack.
func (b *Browser) NavigationInfoStack() *BindStack { return b.navigationStack }

// HeadlightOn returns whether the headlight is on.
func (b *Browser) HeadlightOn() bool {
	if nav := b.ActiveNavigationInfo(); nav != nil {
		return nav.Headlight()
	}
	return b.opts.Navigation.Headlight
}

// CurrentSpeed returns the navigation speed.
func (b *Browser) CurrentSpeed() float32 {
	if nav := b.ActiveNavigationInfo(); nav != nil {
		return nav.Speed()
	}
	return b.opts.Navigation.Speed
}

////////  Interest lists

// AddTimer registers a node updated every frame.
func (b *Browser) AddTimer(n TimeDependentNode) { b.timers.add(n) }

// RemoveTimer unregisters a node added with AddTimer.
func (b *Browser) RemoveTimer(n TimeDependentNode) { b.timers.remove(n) }

// AddAudioClip registers an audio clip updated every frame.
func (b *Browser) AddAudioClip(n TimeDependentNode) { b.audioClips.add(n) }

// RemoveAudioClip unregisters a node added with AddAudioClip.
func (b *Browser) RemoveAudioClip(n TimeDependentNode) { b.audioClips.remove(n) }

// AddMovie registers a movie updated every frame.
func (b *Browser) AddMovie(n TimeDependentNode) { b.movies.add(n) }

// RemoveMovie unregisters a node added with AddMovie.
func (b *Browser) RemoveMovie(n TimeDependentNode) { b.movies.remove(n) }

// AddScript registers a script flushed every frame.
func (b *Browser) AddScript(s *Script) { b.scripts.add(s) }

// RemoveScript unregisters a script.
func (b *Browser) RemoveScript(s *Script) { b.scripts.remove(s) }

// AddProto registers a PROTO instance flushed every frame.
func (b *Browser) AddProto(p *ProtoInstance) { b.protos.add(p) }

// RemoveProto unregisters a PROTO instance.
func (b *Browser) RemoveProto(p *ProtoInstance) { b.protos.remove(p) }

// AddScopedLight registers a light that lights the whole scene.
func (b *Browser) AddScopedLight(l LightNode) { b.scopedLights.add(l) }

// RemoveScopedLight unregisters a scoped light.
func (b *Browser) RemoveScopedLight(l LightNode) { b.scopedLights.remove(l) }

// AddViewpoint registers a viewpoint of the world.
func (b *Browser) AddViewpoint(vp ViewpointNode) { b.viewpoints.add(vp) }

// RemoveViewpoint unregisters a viewpoint.
func (b *Browser) RemoveViewpoint(vp ViewpointNode) { b.viewpoints.remove(vp) }

// Viewpoints returns the viewpoints of the world in initialization order.
func (b *Browser) Viewpoints() []ViewpointNode { return slices.Clone(b.viewpoints.items) }

// AddNavigationInfo registers a NavigationInfo of the world.
func (b *Browser) AddNavigationInfo(n NavigationInfoNode) { b.navigationInfos.add(n) }

// RemoveNavigationInfo unregisters a NavigationInfo.
func (b *Browser) RemoveNavigationInfo(n NavigationInfoNode) { b.navigationInfos.remove(n) }

// InterestCounts returns the lengths of the interest lists.
func (b *Browser) InterestCounts() InterestCounts {
	return InterestCounts{
		Timers:          len(b.timers.items),
		AudioClips:      len(b.audioClips.items),
		Movies:          len(b.movies.items),
		Scripts:         len(b.scripts.items),
		Protos:          len(b.protos.items),
		ScopedLights:    len(b.scopedLights.items),
		Viewpoints:      len(b.viewpoints.items),
		NavigationInfos: len(b.navigationInfos.items),
	}
}

// scriptEngine returns the engine for the first url with a registered
// scheme.
func (b *Browser) scriptEngine(urls []string) ScriptEngine {
	for _, u := range urls {
		scheme, _, ok := strings.Cut(u, ":")
		if !ok {
			continue
		}
		if e := b.opts.ScriptEngines[scheme]; e != nil {
			return e
		}
	}
	return nil
}

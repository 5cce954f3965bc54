// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"io"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

// Parser reads scene text into nodes. Nodes must be created in the
// scope of the given scene with [Scene.CreateNode]. Syntax errors
// should match [ErrInvalidScene].
type Parser interface {
	Parse(s *Scene, r io.Reader) ([]Node, error)
}

// Resource is a fetched document.
type Resource struct {

	// URI is the resolved URI of the document, which may differ from
	// the requested one after redirects.
	URI string

	// ContentType is the media type of the document.
	ContentType string

	// Body is the content of the document. It is closed by the caller.
	Body io.ReadCloser
}

// Fetcher fetches documents by URI.
type Fetcher interface {
	Fetch(uri string) (*Resource, error)
}

// LightKind is the kind of a [Light].
type LightKind int32

const (
	DirectionalLightKind LightKind = iota
	PointLightKind
	SpotLightKind
)

// Light holds the parameters of a light passed to a [Viewer].
// Direction is used by directional and spot lights, and Location,
// Attenuation and Radius by point and spot lights.
type Light struct {
	Kind             LightKind
	AmbientIntensity float32
	Intensity        float32
	Color            math32.Color
	Direction        math32.Vector3
	Location         math32.Vector3
	Attenuation      math32.Vector3
	Radius           float32
	BeamWidth        float32
	CutOffAngle      float32
}

// MaterialParams holds the parameters of a material passed to a [Viewer].
type MaterialParams struct {
	AmbientIntensity float32
	DiffuseColor     math32.Color
	EmissiveColor    math32.Color
	Shininess        float32
	SpecularColor    math32.Color
	Transparency     float32
}

// Viewer draws a scene. The browser calls it during [Browser.Render].
type Viewer interface {

	// ResetUserNavigation discards any user navigation relative to
	// the active viewpoint.
	ResetUserNavigation()

	// InsertLight adds a light to the current object.
	InsertLight(l Light)

	// SetViewpoint sets the camera.
	SetViewpoint(position math32.Vector3, orientation math32.Rotation, fieldOfView, avatarSize, visibilityLimit float32)

	// BeginObject starts a named group of geometry.
	BeginObject(id string)

	// EndObject ends the group started by the matching BeginObject.
	EndObject()

	// Transform applies a transformation to the current object.
	Transform(m math32.Matrix4)

	// SetMaterial sets the material for subsequent geometry.
	SetMaterial(m MaterialParams)

	// InsertBox draws a box centered at the origin.
	InsertBox(size math32.Vector3)

	// InsertSphere draws a sphere centered at the origin.
	InsertSphere(radius float32)

	// FrameRate returns the last measured frame rate.
	FrameRate() float64
}

// ScriptEngine runs the code of Script nodes. It is called at the
// same points a built-in node would be, and may call back into the
// browser synchronously.
type ScriptEngine interface {

	// Initialize is called when the script's scene is initialized.
	Initialize(s *Script, ts float64) error

	// ProcessEvent is called for each event sent to the script.
	ProcessEvent(s *Script, name string, v field.Value, ts float64) error

	// EventsProcessed is called once per frame after the script
	// has received one or more events.
	EventsProcessed(s *Script, ts float64) error

	// Shutdown is called when the script's scene is shut down.
	Shutdown(s *Script, ts float64) error
}

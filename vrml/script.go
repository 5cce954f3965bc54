// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"strings"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// Script is a node whose behavior is provided by a [ScriptEngine].
// Each Script declares its own fields and events in addition to url,
// directOutput and mustEvaluate. Engines set eventOuts with
// [NodeBase.SetEventOut]; they are sent once per frame.
type Script struct {
	NodeBase

	engine  ScriptEngine
	pending bool
}

func scriptClass() *BuiltinClass {
	c := newBuiltinClass("Script", func() Node { return &Script{} },
		exposedField(field.MFString, "url", ""),
		fieldDecl(field.SFBool, "directOutput", "FALSE"),
		fieldDecl(field.SFBool, "mustEvaluate", "FALSE"),
	)
	c.AnyInterface = true
	return c
}

// URL returns the urls of the script code.
func (s *Script) URL() []string {
	return fieldsOf[string](&s.NodeBase, "url")
}

// Engine returns the engine running the script, or nil.
func (s *Script) Engine() ScriptEngine { return s.engine }

func (s *Script) OnInitialize(ts float64) {
	b := s.Browser()
	b.AddScript(s)
	s.engine = b.scriptEngine(s.URL())
	if s.engine == nil {
		errors.Warn(errors.New("vrml: no script engine for script"), "node", s.String(), "url", s.URL())
		return
	}
	errors.Log(errors.Wrap(s.engine.Initialize(s, ts), "initialize script "+s.String()))
}

func (s *Script) OnShutdown(ts float64) {
	if s.engine != nil {
		errors.Log(errors.Wrap(s.engine.Shutdown(s, ts), "shutdown script "+s.String()))
		s.engine = nil
	}
	s.Browser().RemoveScript(s)
}

func (s *Script) HandleEvent(name string, v field.Value, ts float64) error {
	if name == "url" || s.engine == nil {
		return nil
	}
	s.pending = true
	return s.engine.ProcessEvent(s, name, v, ts)
}

// flush calls EventsProcessed if the script received events since the
// last flush, and sends the eventOuts the script has set.
func (s *Script) flush(ts float64) {
	if s.pending && s.engine != nil {
		s.pending = false
		errors.Log(errors.Wrap(s.engine.EventsProcessed(s, ts), "script "+s.String()))
	}
	if s.HasChangedEventOuts() {
		s.FlushEventOuts(ts)
	}
}

// NativeScript is a script implemented in Go. Any of its functions
// may be nil.
type NativeScript struct {
	Initialize      func(s *Script, ts float64) error
	ProcessEvent    func(s *Script, name string, v field.Value, ts float64) error
	EventsProcessed func(s *Script, ts float64) error
	Shutdown        func(s *Script, ts float64) error
}

// NativeScripts is a [ScriptEngine] for scripts implemented in Go,
// selected by script urls of the form native:<name>.
// Register it in [Options.ScriptEngines] under the "native" scheme.
type NativeScripts map[string]*NativeScript

func (ns NativeScripts) script(s *Script) *NativeScript {
	for _, u := range s.URL() {
		if name, ok := strings.CutPrefix(u, "native:"); ok {
			if n := ns[name]; n != nil {
				return n
			}
		}
	}
	return nil
}

func (ns NativeScripts) Initialize(s *Script, ts float64) error {
	if n := ns.script(s); n != nil && n.Initialize != nil {
		return n.Initialize(s, ts)
	}
	return nil
}

func (ns NativeScripts) ProcessEvent(s *Script, name string, v field.Value, ts float64) error {
	if n := ns.script(s); n != nil && n.ProcessEvent != nil {
		return n.ProcessEvent(s, name, v, ts)
	}
	return nil
}

func (ns NativeScripts) EventsProcessed(s *Script, ts float64) error {
	if n := ns.script(s); n != nil && n.EventsProcessed != nil {
		return n.EventsProcessed(s, ts)
	}
	return nil
}

func (ns NativeScripts) Shutdown(s *Script, ts float64) error {
	if n := ns.script(s); n != nil && n.Shutdown != nil {
		return n.Shutdown(s, ts)
	}
	return nil
}

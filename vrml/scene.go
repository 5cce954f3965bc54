// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// Scene is the node graph of one loaded document: its root nodes,
// the URI it was loaded from and its root [Scope]. Inline nodes load
// child scenes whose parent is the scene they are in.
type Scene struct {
	browser *Browser
	parent  *Scene
	id      uuid.UUID
	uri     string
	scope   *Scope
	nodes   []Node
}

// NewScene returns a new empty scene.
func NewScene(b *Browser, parent *Scene) *Scene {
	return &Scene{browser: b, parent: parent, id: uuid.New(), scope: NewScope("", nil)}
}

// Browser returns the browser of the scene.
func (s *Scene) Browser() *Browser { return s.browser }

// Parent returns the scene that contains this one, or nil.
func (s *Scene) Parent() *Scene { return s.parent }

// ID returns the unique instance id of the scene, used in logs.
func (s *Scene) ID() uuid.UUID { return s.id }

// URL returns the URI the scene was loaded from, which is empty if
// it has not been loaded.
func (s *Scene) URL() string { return s.uri }

// Scope returns the root scope of the scene.
func (s *Scene) Scope() *Scope { return s.scope }

// Nodes returns the root nodes.
func (s *Scene) Nodes() []Node { return s.nodes }

func (s *Scene) logger() *slog.Logger {
	return slog.With("scene", s.id.String())
}

// Load loads the scene from the first of the URIs that can be fetched
// and parsed. Relative URIs are resolved against the URI of the parent
// scene. Failed candidates are logged and skipped. If none succeeds,
// the scene is left empty and an error matching [ErrNoAlternativeURL]
// is returned.
func (s *Scene) Load(urls []string, params []string) error {
	log := s.logger()
	for _, u := range urls {
		uri, err := s.resolveURI(u)
		if err != nil {
			log.Warn("vrml: skipping URI", "uri", u, "err", err)
			continue
		}
		scope := NewScope(uri, nil)
		prev := s.scope
		s.scope = scope
		nodes, resolved, err := s.loadURI(uri)
		if err != nil {
			s.scope = prev
			log.Warn("vrml: skipping URI", "uri", uri, "err", err)
			continue
		}
		s.uri = resolved
		s.nodes = nodes
		log.Info("vrml: loaded scene", "uri", resolved, "nodes", len(nodes), "params", params)
		return nil
	}
	return errors.Errorf("%w: %q", ErrNoAlternativeURL, urls)
}

func (s *Scene) resolveURI(u string) (string, error) {
	ref, err := url.Parse(u)
	if err != nil {
		return "", errors.Errorf("%w: %q: %v", ErrBadURI, u, err)
	}
	if s.parent == nil || s.parent.uri == "" || ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(s.parent.uri)
	if err != nil {
		return "", errors.Errorf("%w: %q: %v", ErrBadURI, s.parent.uri, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (s *Scene) loadURI(uri string) ([]Node, string, error) {
	b := s.browser
	if b.opts.Fetcher == nil {
		return nil, "", errors.Errorf("%w: %s: no fetcher", ErrUnreachableURI, uri)
	}
	if b.opts.Parser == nil {
		return nil, "", errors.New("vrml: no parser")
	}
	res, err := b.opts.Fetcher.Fetch(uri)
	if err != nil {
		return nil, "", errors.Errorf("%w: %s: %w", ErrUnreachableURI, uri, err)
	}
	defer res.Body.Close()
	resolved := uri
	if res.URI != "" {
		resolved = res.URI
		if _, frag, ok := strings.Cut(uri, "#"); ok && !strings.Contains(resolved, "#") {
			resolved += "#" + frag
		}
	}
	nodes, err := b.opts.Parser.Parse(s, res.Body)
	if err != nil {
		if !errors.Is(err, ErrInvalidScene) {
			err = errors.Errorf("%w: %w", ErrInvalidScene, err)
		}
		return nil, "", err
	}
	return nodes, resolved, nil
}

// CreateNode returns a new node of the named type in the given scope,
// or the scene's root scope if it is nil. PROTOs defined in the scope
// take precedence over the built-in node kinds.
func (s *Scene) CreateNode(scope *Scope, typeName string, initial map[string]field.Value) (Node, error) {
	if scope == nil {
		scope = s.scope
	}
	if t, ok := scope.FindType(typeName); ok {
		return t.CreateNode(scope, initial)
	}
	c, ok := s.browser.classes.Lookup(typeName)
	if !ok {
		return nil, errors.Errorf("%w: unknown node type %q", ErrInvalidScene, typeName)
	}
	t, err := c.CreateType(typeName, nil)
	if err != nil {
		return nil, err
	}
	return t.CreateNode(scope, initial)
}

// CreateScript returns a new Script node with the given interfaces
// in addition to the standard ones.
func (s *Scene) CreateScript(scope *Scope, ifaces []Interface, initial map[string]field.Value) (*Script, error) {
	if scope == nil {
		scope = s.scope
	}
	c, ok := s.browser.classes.Lookup("Script")
	if !ok {
		return nil, errors.New("vrml: no Script class")
	}
	t, err := c.CreateType("Script", ifaces)
	if err != nil {
		return nil, err
	}
	n, err := t.CreateNode(scope, initial)
	if err != nil {
		return nil, err
	}
	return n.(*Script), nil
}

// Initialize initializes every node of the scene in pre-order, and
// moves nodes that are already initialized into this scene.
func (s *Scene) Initialize(ts float64) {
	s.initializeNodes(s.nodes, ts)
}

func (s *Scene) initializeNodes(nodes []Node, ts float64) {
	Walk(nodes, func(n Node) bool {
		n.AsNode().initialize(s, ts)
		return Continue
	})
}

// Shutdown shuts down every node of the scene, in root order.
func (s *Scene) Shutdown(ts float64) {
	Walk(s.nodes, func(n Node) bool {
		n.AsNode().shutdown(ts)
		return Continue
	})
}

// shutdownUnreachable shuts down the nodes of the given subgraphs that
// can no longer be reached from the root nodes.
func (s *Scene) shutdownUnreachable(nodes []Node, ts float64) {
	reachable := map[Node]bool{}
	Walk(s.nodes, func(n Node) bool {
		reachable[n] = true
		return Continue
	})
	Walk(nodes, func(n Node) bool {
		if reachable[n] {
			return Break
		}
		n.AsNode().shutdown(ts)
		return Continue
	})
}

// SetNodes replaces the root nodes, shutting down the old nodes that
// are not also new ones and initializing the new ones.
func (s *Scene) SetNodes(nodes []Node, ts float64) {
	keep := map[Node]bool{}
	Walk(nodes, func(n Node) bool {
		keep[n] = true
		return Continue
	})
	Walk(s.nodes, func(n Node) bool {
		if !keep[n] {
			n.AsNode().shutdown(ts)
		}
		return Continue
	})
	s.nodes = slices.Clone(nodes)
	s.Initialize(ts)
}

// LoadURL loads a new world into the browser, as a link does.
func (s *Scene) LoadURL(urls []string, params []string) error {
	return s.browser.Load(urls, params)
}

// Render renders the root nodes.
func (s *Scene) Render(v Viewer) {
	for _, n := range s.nodes {
		renderNode(n, v)
	}
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlscene reads and writes scenes in a YAML format.
//
// A document has a list of PROTO definitions, a list of root nodes and
// a list of routes:
//
//	protos:
//	  - name: Spinner
//	    interfaces:
//	      - {kind: field, type: SFFloat, name: speed, value: 1}
//	      - {kind: eventIn, type: SFRotation, name: set_spin}
//	    nodes:
//	      - {type: Transform, def: T}
//	    is:
//	      - set_spin IS T.set_rotation
//	nodes:
//	  - type: Transform
//	    def: Top
//	    fields:
//	      translation: 0 1 0
//	      children:
//	        - type: Shape
//	          fields:
//	            geometry: {type: Box, fields: {size: 1 1 1}}
//	  - use: Top
//	routes:
//	  - Clock.fraction_changed TO Mover.set_fraction
//
// Field values are written as they are in VRML97 text, except that
// SFString and MFString values are plain YAML strings and lists, and
// node valued fields are nested nodes, lists of nodes, NULL or USE
// references. Script nodes declare their own interfaces with an
// interfaces list like that of a PROTO.
package yamlscene

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/vrml"
)

// document is the top level of a scene document.
type document struct {
	Protos []protoDoc `yaml:"protos,omitempty"`
	Nodes  []nodeDoc  `yaml:"nodes"`
	Routes []string   `yaml:"routes,omitempty"`
}

type protoDoc struct {
	Name       string         `yaml:"name"`
	Interfaces []interfaceDoc `yaml:"interfaces"`
	Nodes      []nodeDoc      `yaml:"nodes"`
	Routes     []string       `yaml:"routes"`
	IS         []string       `yaml:"is"`
}

type interfaceDoc struct {
	Kind  string    `yaml:"kind"`
	Type  string    `yaml:"type"`
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
}

// nodeDoc is one node. Fields is a mapping node so that fields are
// set in document order.
type nodeDoc struct {
	Type       string         `yaml:"type,omitempty"`
	Def        string         `yaml:"def,omitempty"`
	Use        string         `yaml:"use,omitempty"`
	Interfaces []interfaceDoc `yaml:"interfaces,omitempty"`
	Fields     yaml.Node      `yaml:"fields,omitempty"`
}

// Parser is a [vrml.Parser] for YAML scene documents.
type Parser struct{}

// Parse reads a document, creating its PROTOs and nodes in the scene's
// scope. Errors match [vrml.ErrInvalidScene].
func (p Parser) Parse(s *vrml.Scene, r io.Reader) ([]vrml.Node, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid(err)
	}
	ps := &parser{scene: s}
	nodes, err := ps.document(&doc, s.Scope())
	if err != nil {
		return nil, invalid(err)
	}
	return nodes, nil
}

func invalid(err error) error {
	return errors.Errorf("%w: %w", vrml.ErrInvalidScene, err)
}

type parser struct {
	scene *vrml.Scene
}

func (p *parser) document(doc *document, scope *vrml.Scope) ([]vrml.Node, error) {
	for i := range doc.Protos {
		if err := p.proto(&doc.Protos[i], scope); err != nil {
			return nil, err
		}
	}
	nodes, err := p.nodes(doc.Nodes, scope)
	if err != nil {
		return nil, err
	}
	for _, r := range doc.Routes {
		from, out, to, in, err := p.route(r, scope)
		if err != nil {
			return nil, err
		}
		if err := vrml.AddRoute(from, out, to, in); err != nil {
			return nil, errors.Errorf("route %q: %w", r, err)
		}
	}
	return nodes, nil
}

func (p *parser) nodes(docs []nodeDoc, scope *vrml.Scope) ([]vrml.Node, error) {
	nodes := make([]vrml.Node, 0, len(docs))
	for i := range docs {
		n, err := p.node(&docs[i], scope)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) node(d *nodeDoc, scope *vrml.Scope) (vrml.Node, error) {
	if d.Use != "" {
		n, ok := scope.FindNode(d.Use)
		if !ok {
			return nil, errors.Errorf("USE of undefined node %q", d.Use)
		}
		return n, nil
	}
	if d.Type == "" {
		return nil, errors.New("node has no type")
	}
	var n vrml.Node
	if d.Type == "Script" {
		ifaces, err := interfaces(d.Interfaces)
		if err != nil {
			return nil, err
		}
		s, err := p.scene.CreateScript(scope, ifaces, nil)
		if err != nil {
			return nil, err
		}
		n = s
		for _, id := range d.Interfaces {
			if id.Value.Kind == 0 {
				continue
			}
			if err := p.setField(n, id.Name, &id.Value, scope); err != nil {
				return nil, err
			}
		}
	} else {
		var err error
		n, err = p.scene.CreateNode(scope, d.Type, nil)
		if err != nil {
			return nil, err
		}
	}
	if d.Def != "" {
		n.AsNode().SetID(d.Def)
	}
	fs := d.Fields.Content
	for i := 0; i+1 < len(fs); i += 2 {
		if err := p.setField(n, fs[i].Value, fs[i+1], scope); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *parser) setField(n vrml.Node, name string, yn *yaml.Node, scope *vrml.Scope) error {
	cur, err := n.AsNode().Field(name)
	if err != nil {
		return errors.Errorf("line %d: %w", yn.Line, err)
	}
	v, err := p.value(cur.Type(), yn, scope)
	if err != nil {
		return errors.Errorf("line %d: field %s: %w", yn.Line, name, err)
	}
	return n.AsNode().SetField(name, v)
}

// value returns the field value of type t written as yn.
func (p *parser) value(t field.Type, yn *yaml.Node, scope *vrml.Scope) (field.Value, error) {
	switch {
	case t.IsNode():
		return p.nodeValue(t, yn, scope)
	case t == field.SFString && yn.Kind == yaml.ScalarNode:
		return field.NewString(yn.Value), nil
	case t == field.MFString:
		var ss []string
		if err := yn.Decode(&ss); err != nil {
			var s string
			if err := yn.Decode(&s); err != nil {
				return nil, err
			}
			ss = []string{s}
		}
		return field.NewStrings(ss...), nil
	case yn.Kind == yaml.SequenceNode:
		var parts []string
		for _, c := range yn.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: expected a scalar", c.Line)
			}
			parts = append(parts, c.Value)
		}
		return field.Parse(t, strings.Join(parts, " "), scope)
	case yn.Kind == yaml.ScalarNode:
		return field.Parse(t, yn.Value, scope)
	}
	return nil, errors.Errorf("line %d: unexpected %s value", yn.Line, t)
}

func (p *parser) nodeValue(t field.Type, yn *yaml.Node, scope *vrml.Scope) (field.Value, error) {
	var items []*yaml.Node
	switch yn.Kind {
	case yaml.ScalarNode:
		return field.Parse(t, yn.Value, scope)
	case yaml.MappingNode:
		items = []*yaml.Node{yn}
	case yaml.SequenceNode:
		if !t.IsMulti() {
			return nil, errors.Errorf("line %d: %s takes one node", yn.Line, t)
		}
		items = yn.Content
	default:
		return nil, errors.Errorf("line %d: unexpected node value", yn.Line)
	}
	var nodes []field.Node
	for _, item := range items {
		if item.Kind == yaml.ScalarNode {
			v, err := field.Parse(field.SFNode, item.Value, scope)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, field.Get[field.Node](v))
			continue
		}
		var d nodeDoc
		if err := item.Decode(&d); err != nil {
			return nil, err
		}
		n, err := p.node(&d, scope)
		if err != nil {
			return nil, errors.Errorf("line %d: %w", item.Line, err)
		}
		nodes = append(nodes, n)
	}
	if t.IsMulti() {
		return field.NewNodes(nodes...), nil
	}
	return field.NewNode(nodes[0]), nil
}

// route parses "From.eventOut TO To.eventIn".
func (p *parser) route(text string, scope *vrml.Scope) (from vrml.Node, eventOut string, to vrml.Node, eventIn string, err error) {
	fs := strings.Fields(text)
	if len(fs) != 3 || fs[1] != "TO" {
		return nil, "", nil, "", errors.Errorf("bad route %q", text)
	}
	from, eventOut, err = reference(fs[0], scope)
	if err != nil {
		return
	}
	to, eventIn, err = reference(fs[2], scope)
	return
}

// reference resolves "Node.interface".
func reference(text string, scope *vrml.Scope) (vrml.Node, string, error) {
	id, iface, ok := strings.Cut(text, ".")
	if !ok || id == "" || iface == "" {
		return nil, "", errors.Errorf("bad reference %q", text)
	}
	n, ok := scope.FindNode(id)
	if !ok {
		return nil, "", errors.Errorf("undefined node %q", id)
	}
	return n, iface, nil
}

func interfaces(docs []interfaceDoc) ([]vrml.Interface, error) {
	ifaces := make([]vrml.Interface, 0, len(docs))
	for _, d := range docs {
		dir, ok := directions[d.Kind]
		if !ok {
			return nil, errors.Errorf("unknown interface kind %q", d.Kind)
		}
		t := field.TypeFromString(d.Type)
		if !t.IsValid() {
			return nil, errors.Errorf("unknown field type %q", d.Type)
		}
		ifaces = append(ifaces, vrml.Interface{Direction: dir, Type: t, Name: d.Name})
	}
	return ifaces, nil
}

var directions = map[string]vrml.Direction{
	"field":        vrml.Field,
	"eventIn":      vrml.EventIn,
	"eventOut":     vrml.EventOut,
	"exposedField": vrml.ExposedField,
}

func (p *parser) proto(d *protoDoc, scope *vrml.Scope) error {
	if d.Name == "" {
		return errors.New("PROTO has no name")
	}
	ifaces, err := interfaces(d.Interfaces)
	if err != nil {
		return errors.Errorf("PROTO %s: %w", d.Name, err)
	}
	pb := p.scene.Browser().NewProtoBuilder(d.Name, scope)
	for i, iface := range ifaces {
		var def field.Value
		if yn := &d.Interfaces[i].Value; yn.Kind != 0 && iface.Direction.IsField() {
			if def, err = p.value(iface.Type, yn, scope); err != nil {
				return errors.Errorf("PROTO %s: %s: %w", d.Name, iface.Name, err)
			}
		}
		if err := pb.AddInterface(iface, def); err != nil {
			return errors.Errorf("PROTO %s: %w", d.Name, err)
		}
	}
	nodes, err := p.nodes(d.Nodes, pb.Scope())
	if err != nil {
		return errors.Errorf("PROTO %s: %w", d.Name, err)
	}
	for _, n := range nodes {
		pb.AddImplNode(n)
	}
	for _, r := range d.Routes {
		from, out, to, in, err := p.route(r, pb.Scope())
		if err != nil {
			return errors.Errorf("PROTO %s: %w", d.Name, err)
		}
		if err := pb.AddRoute(from, out, to, in); err != nil {
			return errors.Errorf("PROTO %s: route %q: %w", d.Name, r, err)
		}
	}
	for _, is := range d.IS {
		fs := strings.Fields(is)
		if len(fs) != 3 || fs[1] != "IS" {
			return errors.Errorf("PROTO %s: bad IS %q", d.Name, is)
		}
		n, implIface, err := reference(fs[2], pb.Scope())
		if err != nil {
			return errors.Errorf("PROTO %s: %w", d.Name, err)
		}
		if err := pb.IS(fs[0], n, implIface); err != nil {
			return errors.Errorf("PROTO %s: %w", d.Name, err)
		}
	}
	def, err := pb.Build()
	if err != nil {
		return err
	}
	return scope.AddType(d.Name, def.Type())
}

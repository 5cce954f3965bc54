// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlscene

import (
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/vrml"
)

// Dump writes the node graph rooted at nodes as a document. A node
// with an id is written where it first appears and as a USE reference
// after that. Fields with their default values are omitted. Routes
// between nodes with ids are written after the nodes. PROTO instances
// are written as nodes of their PROTO type, without its definition.
func Dump(w io.Writer, nodes []vrml.Node) error {
	d := &dumper{seen: map[vrml.Node]bool{}, defaults: map[*vrml.NodeType]vrml.Node{}}
	root := mapping()
	ns := sequence()
	for _, n := range nodes {
		ns.Content = append(ns.Content, d.node(n))
	}
	addPair(root, "nodes", ns)
	if rs := d.routes(nodes); len(rs.Content) > 0 {
		addPair(root, "routes", rs)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

type dumper struct {
	seen     map[vrml.Node]bool
	defaults map[*vrml.NodeType]vrml.Node
}

func (d *dumper) node(n vrml.Node) *yaml.Node {
	if n == nil {
		return scalar("NULL")
	}
	nb := n.AsNode()
	if d.seen[n] {
		if nb.ID() == "" {
			slog.Warn("yamlscene: unnamed node referenced twice, writing NULL", "node", nb.String())
			return scalar("NULL")
		}
		m := mapping()
		addPair(m, "use", str(nb.ID()))
		return m
	}
	d.seen[n] = true

	m := mapping()
	addPair(m, "type", str(nb.TypeName()))
	if nb.ID() != "" {
		addPair(m, "def", str(nb.ID()))
	}
	if _, ok := n.(*vrml.Script); ok {
		if ifaces := scriptInterfaces(nb); len(ifaces.Content) > 0 {
			addPair(m, "interfaces", ifaces)
		}
	}
	def := d.defaultNode(nb.Type())
	fs := mapping()
	for _, i := range nb.Type().Interfaces() {
		if !i.Direction.IsField() {
			continue
		}
		v, err := nb.Field(i.Name)
		if err != nil {
			continue
		}
		if def != nil {
			if dv, err := def.AsNode().Field(i.Name); err == nil && dv.Equal(v) {
				continue
			}
		}
		addPair(fs, i.Name, d.value(v))
	}
	if len(fs.Content) > 0 {
		addPair(m, "fields", fs)
	}
	return m
}

// defaultNode returns a node of type t with default field values.
func (d *dumper) defaultNode(t *vrml.NodeType) vrml.Node {
	if n, ok := d.defaults[t]; ok {
		return n
	}
	n, err := t.CreateNode(nil, nil)
	if err != nil {
		n = nil
	}
	d.defaults[t] = n
	return n
}

func (d *dumper) value(v field.Value) *yaml.Node {
	switch v.Type() {
	case field.SFNode:
		n, _ := field.Get[field.Node](v).(vrml.Node)
		return d.node(n)
	case field.MFNode:
		s := sequence()
		for _, fn := range field.GetAll[field.Node](v) {
			n, _ := fn.(vrml.Node)
			s.Content = append(s.Content, d.node(n))
		}
		return s
	case field.SFString:
		return str(field.Get[string](v))
	case field.MFString:
		s := sequence()
		s.Style = yaml.FlowStyle
		for _, e := range field.GetAll[string](v) {
			s.Content = append(s.Content, str(e))
		}
		return s
	}
	return scalar(v.String())
}

// scriptInterfaces returns the interfaces a Script declares beyond
// the standard ones.
func scriptInterfaces(nb *vrml.NodeBase) *yaml.Node {
	s := sequence()
	for _, i := range nb.Type().Interfaces() {
		switch i.Name {
		case "url", "directOutput", "mustEvaluate":
			continue
		}
		m := mapping()
		m.Style = yaml.FlowStyle
		addPair(m, "kind", str(i.Direction.String()))
		addPair(m, "type", str(i.Type.String()))
		addPair(m, "name", str(i.Name))
		s.Content = append(s.Content, m)
	}
	return s
}

func (d *dumper) routes(nodes []vrml.Node) *yaml.Node {
	s := sequence()
	vrml.Walk(nodes, func(n vrml.Node) bool {
		for _, r := range n.AsNode().Routes() {
			to := r.To()
			if to == nil || n.AsNode().ID() == "" || to.AsNode().ID() == "" {
				continue
			}
			s.Content = append(s.Content, str(n.AsNode().ID()+"."+r.EventOut+" TO "+to.AsNode().ID()+"."+r.EventIn))
		}
		if _, ok := n.(*vrml.ProtoInstance); ok {
			return vrml.Break
		}
		return vrml.Continue
	})
	return s
}

func mapping() *yaml.Node  { return &yaml.Node{Kind: yaml.MappingNode} }
func sequence() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode} }

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addPair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, str(key), v)
}

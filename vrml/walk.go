// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
)

// implementer is implemented by nodes whose implementation
// is a separate subgraph, such as PROTO instances.
type implementer interface {
	ImplementationNodes() []Node
}

// Children returns the nodes referenced by the node valued fields of
// n, in interface order, followed by the implementation nodes of a
// PROTO instance. NULL references are skipped.
func Children(n Node) []Node {
	nb := n.AsNode()
	var children []Node
	for _, i := range nb.typ.Interfaces() {
		if !i.Direction.IsField() || !i.Type.IsNode() {
			continue
		}
		for _, c := range field.Nodes(nb.fieldValue(i.Name)) {
			if cn, ok := c.(Node); ok {
				children = append(children, cn)
			}
		}
	}
	if im, ok := n.(implementer); ok {
		children = append(children, im.ImplementationNodes()...)
	}
	return children
}

// Walk calls fun on each of the roots and every node reachable from
// them through [Children], in depth-first pre-order, visiting each node
// once. If fun returns [Break], the children of that node are skipped.
func Walk(roots []Node, fun func(n Node) bool) {
	visited := map[Node]bool{}
	var walk func(n Node)
	walk = func(n Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if !fun(n) {
			return
		}
		for _, c := range Children(n) {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
}

// FindPath returns the path of nodes from one of the roots to target,
// inclusive, or nil if target is not reachable.
func FindPath(roots []Node, target Node) []Node {
	visited := map[Node]bool{}
	var path []Node
	var find func(n Node) bool
	find = func(n Node) bool {
		if n == nil || visited[n] {
			return false
		}
		visited[n] = true
		path = append(path, n)
		if n == target {
			return true
		}
		for _, c := range Children(n) {
			if find(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	for _, r := range roots {
		if find(r) {
			return path
		}
	}
	return nil
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import "slices"

// BindStack is the stack of bound nodes of one bindable kind, such
// as Viewpoint. The top of the stack is the active node. A node is
// on the stack at most once.
type BindStack struct {
	nodes []Node

	// OnChange, if set, is called whenever the stack changes.
	OnChange func()
}

// Push moves n to the top of the stack, removing it from its
// previous position if it was already on the stack.
func (s *BindStack) Push(n Node) {
	s.remove(n)
	s.nodes = slices.Insert(s.nodes, 0, n)
	s.changed()
}

// Remove removes n from the stack, returning whether it was there.
func (s *BindStack) Remove(n Node) bool {
	if !s.remove(n) {
		return false
	}
	s.changed()
	return true
}

func (s *BindStack) remove(n Node) bool {
	idx := slices.Index(s.nodes, n)
	if idx < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, idx, idx+1)
	return true
}

func (s *BindStack) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// Top returns the active node, or nil if the stack is empty.
func (s *BindStack) Top() Node {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

// Len returns the number of nodes on the stack.
func (s *BindStack) Len() int { return len(s.nodes) }

// Nodes returns the nodes from top to bottom.
func (s *BindStack) Nodes() []Node { return slices.Clone(s.nodes) }

// Clear removes all of the nodes without calling OnChange.
func (s *BindStack) Clear() { s.nodes = nil }

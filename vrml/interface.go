// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"fmt"
	"strings"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/base/keylist"
	"cogentcore.org/vrml/field"
)

// Direction is the direction of a node [Interface].
type Direction int32

const (
	// Field is a value that is only set when the node is created.
	Field Direction = iota

	// EventIn receives events.
	EventIn

	// EventOut sends events.
	EventOut

	// ExposedField is a field with an eventIn named set_<name>
	// and an eventOut named <name>_changed.
	ExposedField
)

func (d Direction) String() string {
	switch d {
	case Field:
		return "field"
	case EventIn:
		return "eventIn"
	case EventOut:
		return "eventOut"
	case ExposedField:
		return "exposedField"
	}
	return fmt.Sprintf("Direction(%d)", int32(d))
}

// IsField returns whether the direction carries a field value.
func (d Direction) IsField() bool { return d == Field || d == ExposedField }

// IsEventIn returns whether the direction receives events.
func (d Direction) IsEventIn() bool { return d == EventIn || d == ExposedField }

// IsEventOut returns whether the direction sends events.
func (d Direction) IsEventOut() bool { return d == EventOut || d == ExposedField }

// Interface is one of the fields or events of a node type.
type Interface struct {
	Direction Direction
	Type      field.Type
	Name      string
}

func (i Interface) String() string {
	return i.Direction.String() + " " + i.Type.String() + " " + i.Name
}

const (
	setPrefix     = "set_"
	changedSuffix = "_changed"
)

// InterfaceSet is an ordered set of interfaces, unique by name.
// The eventIn and eventOut implied by an exposedField also count
// as names: an exposedField x conflicts with set_x and x_changed.
type InterfaceSet struct {
	list keylist.List[string, Interface]
}

// NewInterfaceSet returns a set holding the given interfaces.
func NewInterfaceSet(ifaces ...Interface) (*InterfaceSet, error) {
	s := &InterfaceSet{}
	for _, i := range ifaces {
		if err := s.Add(i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add adds the interface, failing if its name (or one of its
// exposedField names) is already used.
func (s *InterfaceSet) Add(i Interface) error {
	if i.Name == "" {
		return errors.New("vrml: interface has no name")
	}
	if !i.Type.IsValid() {
		return errors.Errorf("vrml: interface %q has invalid type", i.Name)
	}
	names := []string{i.Name}
	if i.Direction == ExposedField {
		names = append(names, setPrefix+i.Name, i.Name+changedSuffix)
	}
	for _, n := range names {
		if old, ok := s.find(n); ok {
			return errors.Errorf("vrml: interface %q conflicts with %v", i.Name, old)
		}
	}
	s.list.Set(i.Name, i)
	return nil
}

// find returns the interface that owns the name, including the
// implied names of exposedFields.
func (s *InterfaceSet) find(name string) (Interface, bool) {
	if i, ok := s.list.AtTry(name); ok {
		return i, true
	}
	if base, ok := strings.CutPrefix(name, setPrefix); ok {
		if i, ok := s.list.AtTry(base); ok && i.Direction == ExposedField {
			return i, true
		}
	}
	if base, ok := strings.CutSuffix(name, changedSuffix); ok {
		if i, ok := s.list.AtTry(base); ok && i.Direction == ExposedField {
			return i, true
		}
	}
	return Interface{}, false
}

// Find returns the interface with exactly the given name.
func (s *InterfaceSet) Find(name string) (Interface, bool) {
	if s == nil {
		return Interface{}, false
	}
	return s.list.AtTry(name)
}

// FindField returns the field or exposedField with the given name.
func (s *InterfaceSet) FindField(name string) (Interface, bool) {
	i, ok := s.Find(name)
	return i, ok && i.Direction.IsField()
}

// FindEventIn returns the interface that receives events sent
// to name: an eventIn, or an exposedField named either name or
// name without its set_ prefix.
func (s *InterfaceSet) FindEventIn(name string) (Interface, bool) {
	if s == nil {
		return Interface{}, false
	}
	i, ok := s.find(name)
	if !ok || !i.Direction.IsEventIn() || (i.Name != name && name != setPrefix+i.Name) {
		return Interface{}, false
	}
	return i, true
}

// FindEventOut returns the interface that sends events as name:
// an eventOut, or an exposedField named either name or name
// without its _changed suffix.
func (s *InterfaceSet) FindEventOut(name string) (Interface, bool) {
	if s == nil {
		return Interface{}, false
	}
	i, ok := s.find(name)
	if !ok || !i.Direction.IsEventOut() || (i.Name != name && name != i.Name+changedSuffix) {
		return Interface{}, false
	}
	return i, true
}

// Interfaces returns the interfaces in the order they were added.
func (s *InterfaceSet) Interfaces() []Interface {
	if s == nil {
		return nil
	}
	return s.list.Values
}

// Names returns the names of the interfaces, including the
// implied names of exposedFields.
func (s *InterfaceSet) Names() []string {
	var names []string
	for _, i := range s.Interfaces() {
		names = append(names, i.Name)
		if i.Direction == ExposedField {
			names = append(names, setPrefix+i.Name, i.Name+changedSuffix)
		}
	}
	return names
}

// Len returns the number of interfaces.
func (s *InterfaceSet) Len() int {
	if s == nil {
		return 0
	}
	return s.list.Len()
}

// Contains returns whether the set has an interface equal to i.
func (s *InterfaceSet) Contains(i Interface) bool {
	o, ok := s.Find(i.Name)
	return ok && o == i
}

func (s *InterfaceSet) clone() *InterfaceSet {
	return &InterfaceSet{list: *s.list.Clone()}
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

var (
	// ErrInvalidScene is matched by errors from parsing scene text.
	ErrInvalidScene = errors.New("invalid scene")

	// ErrBadURI is matched by errors for URIs that can not be parsed.
	ErrBadURI = errors.New("bad URI")

	// ErrUnreachableURI is matched by errors for URIs that can not
	// be fetched.
	ErrUnreachableURI = errors.New("unreachable URI")

	// ErrNoAlternativeURL is returned when none of a list of URIs
	// could be loaded.
	ErrNoAlternativeURL = errors.New("no alternative URL could be loaded")

	// ErrUnsupportedInterface is matched by every [UnsupportedInterfaceError].
	ErrUnsupportedInterface = errors.New("unsupported interface")

	// ErrInterfaceTypeMismatch is matched by every [InterfaceTypeMismatchError].
	ErrInterfaceTypeMismatch = errors.New("node interface type mismatch")
)

// UnsupportedInterfaceError is returned when a node type does not
// have an interface of the given name and kind.
type UnsupportedInterfaceError struct {

	// Type is the id of the node type.
	Type string

	// Interface is the requested interface name.
	Interface string

	// Kind describes the requested kind of interface, such as "field"
	// or "eventIn".
	Kind string

	// Suggestion is the most similar name the type does have, if any.
	Suggestion string
}

func (e *UnsupportedInterfaceError) Error() string {
	s := fmt.Sprintf("node type %q has no %s %q", e.Type, e.Kind, e.Interface)
	if e.Suggestion != "" {
		s += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}
	return s
}

func (e *UnsupportedInterfaceError) Is(target error) bool {
	return target == ErrUnsupportedInterface
}

// newUnsupportedInterface returns an [UnsupportedInterfaceError] with
// a suggestion from the given candidate names.
func newUnsupportedInterface(typ, name, kind string, candidates []string) *UnsupportedInterfaceError {
	return &UnsupportedInterfaceError{Type: typ, Interface: name, Kind: kind, Suggestion: suggest(name, candidates)}
}

// suggest returns the candidate most similar to name, if any is
// similar enough to be a plausible misspelling. Name itself is never
// suggested: it names an interface of the wrong kind.
func suggest(name string, candidates []string) string {
	lev := metrics.NewLevenshtein()
	best, bestSim := "", 0.6
	for _, c := range candidates {
		if c == name {
			continue
		}
		if sim := strutil.Similarity(name, c, lev); sim > bestSim {
			best, bestSim = c, sim
		}
	}
	return best
}

// InterfaceTypeMismatchError is returned when two interfaces can not
// be connected because of their directions.
type InterfaceTypeMismatchError struct {
	From Interface
	To   Interface
}

func (e *InterfaceTypeMismatchError) Error() string {
	return fmt.Sprintf("can not map %v to %v", e.From, e.To)
}

func (e *InterfaceTypeMismatchError) Is(target error) bool {
	return target == ErrInterfaceTypeMismatch
}

// FieldValueTypeMismatchError is returned when a value or interface
// of one field type is used where another is required.
type FieldValueTypeMismatchError struct {
	Interface string
	Want      field.Type
	Got       field.Type
}

func (e *FieldValueTypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %v, got %v", e.Interface, e.Want, e.Got)
}

func (e *FieldValueTypeMismatchError) Is(target error) bool {
	return target == field.ErrTypeMismatch
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"fmt"

	"cogentcore.org/vrml/base/errors"
)

// ErrTypeMismatch is matched by every [TypeMismatchError].
var ErrTypeMismatch = errors.New("field value type mismatch")

// TypeMismatchError is returned when a value of one type is
// assigned to a value of another.
type TypeMismatchError struct {
	Want Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field: cannot assign %v value to %v", e.Got, e.Want)
}

// Is reports whether target is [ErrTypeMismatch].
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ParseError is returned when text can not be parsed as a value
// of a given type.
type ParseError struct {
	Type Type
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field: parsing %v from %q: %v", e.Type, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

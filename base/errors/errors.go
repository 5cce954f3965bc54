// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error handling helpers,
// extending the standard library errors package.
// Importing this package in place of the standard one
// keeps all of the standard functions available.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// These are the standard library functions, re-exported
// so that this package can be used as a drop-in replacement.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Errorf is [fmt.Errorf], available here so that callers
// do not need to import fmt only for error construction.
func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// Error is an error with a base error and a context path of
// the operations that led to it, innermost last.
type Error struct {
	Base    error
	Context []string
}

// Wrap wraps the given error with the given context operation names.
// It returns nil if the given error is nil. If err is already an [*Error],
// the context is prepended to its existing context.
func Wrap(err error, context ...string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		e.Context = append(append([]string{}, context...), e.Context...)
		return e
	}
	return &Error{Base: err, Context: context}
}

// Error returns the base error string followed by its context.
func (e *Error) Error() string {
	res := e.Base.Error()
	if len(e.Context) > 0 {
		res += " (" + strings.Join(e.Context, ": ") + ")"
	}
	return res
}

// Unwrap returns the underlying base error.
func (e *Error) Unwrap() error {
	return e.Base
}

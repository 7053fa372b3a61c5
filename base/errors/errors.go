// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides the minimal error-logging idiom used throughout
// terratile: functions return errors; callers that want to tolerate and
// report them, instead of bubbling them up, call [Log] or [Log1] at the
// point where the error should be swallowed.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// New returns an error with the given message, same as the standard
// library's errors.New.
func New(text string) error {
	return errors.New(text)
}

// Is is the standard library's errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is the standard library's errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap is the standard library's errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join is the standard library's errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Log logs the given error if it is non-nil, using the default slog
// logger, and returns it unchanged. It is used at call sites that want to
// record a failure but continue running on it (see spec §7's propagation
// policy: errors are recovered locally and not surfaced across the
// interface boundary).
func Log(err error) error {
	if err == nil {
		return nil
	}
	slog.Default().Error(err.Error())
	return err
}

// Log1 logs the given error if it is non-nil, using the default slog
// logger, and returns the value unchanged regardless.
func Log1[T any](v T, err error) T {
	Log(err)
	return v
}

// Ignore1 discards the error and returns the value.
func Ignore1[T any](v T, err error) T {
	_ = err
	return v
}

// Must panics if the given error is non-nil.
func Must(err error) {
	if err != nil {
		panic(fmt.Sprintf("errors.Must: %v", err))
	}
}

// Must1 panics if the given error is non-nil, and otherwise returns the value.
func Must1[T any](v T, err error) T {
	Must(err)
	return v
}

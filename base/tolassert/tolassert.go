// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides tolerance-based floating point test assertions.
package tolassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// EqualTol asserts that the given two values are within tol of each other.
func EqualTol(t *testing.T, expected, actual float32, tol float32) bool {
	if expected-actual > tol || actual-expected > tol {
		return assert.Equal(t, expected, actual)
	}
	return true
}

// EqualTolSlice asserts that the given two slices have equal length and that
// each corresponding pair of elements is within tol of each other.
func EqualTolSlice(t *testing.T, expected, actual []float32, tol float32) bool {
	if !assert.Equal(t, len(expected), len(actual)) {
		return false
	}
	ok := true
	for i := range expected {
		if !EqualTol(t, expected[i], actual[i], tol) {
			ok = false
		}
	}
	return ok
}

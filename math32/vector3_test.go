// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3(t *testing.T) {
	assert.Equal(t, Vector3{5, 10, 15}, Vec3(5, 10, 15))
	assert.Equal(t, Vector3{4, 4, 4}, Vector3Scalar(4))

	v := Vector3{}
	v.Set(1, 2, 3)
	assert.Equal(t, Vector3{1, 2, 3}, v)

	v.SetScalar(9)
	assert.Equal(t, Vector3{9, 9, 9}, v)

	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)
	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, Vec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, float32(32), a.Dot(b))
}

func TestVector3Cross(t *testing.T) {
	x := Vec3(1, 0, 0)
	y := Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), x.Cross(y))
}

func TestVector3Length(t *testing.T) {
	v := Vec3(3, 4, 0)
	assert.Equal(t, float32(5), v.Length())
	assert.Equal(t, float32(25), v.LengthSquared())
}

func TestVector3Lerp(t *testing.T) {
	a := Vec3(0, 0, 0)
	b := Vec3(10, 10, 10)
	assert.Equal(t, Vec3(5, 5, 5), a.Lerp(b, 0.5))
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestVector3MulMatrix4Identity(t *testing.T) {
	v := Vec3(1, 2, 3)
	m := Identity4()
	assert.Equal(t, v, v.MulMatrix4(&m))
}

package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"terratile/base/tolassert"
	"terratile/math32"
)

func TestViewProjectionComposesViewAndProjection(t *testing.T) {
	view := math32.Identity4()
	proj := math32.NewPerspective(60, 1, 0.1, 100)
	d := Definition{View: view, Projection: proj}
	assert.Equal(t, proj.Mul(view), d.ViewProjection())
}

func TestNewLookAtPointsTowardTarget(t *testing.T) {
	eye := math32.Vec3(0, 0, 5)
	target := math32.Vec3(0, 0, 0)
	view := NewLookAt(eye, target, math32.Vec3(0, 1, 0))

	// The eye, transformed by its own view matrix, lands at the origin of
	// camera space.
	originInCamera := eye.MulMatrix4(&view)
	tolassert.EqualTol(t, 0, originInCamera.X, 1e-4)
	tolassert.EqualTol(t, 0, originInCamera.Y, 1e-4)
	tolassert.EqualTol(t, 0, originInCamera.Z, 1e-4)

	// The target lies straight ahead, on the camera's -Z axis.
	targetInCamera := target.MulMatrix4(&view)
	tolassert.EqualTol(t, 0, targetInCamera.X, 1e-4)
	tolassert.EqualTol(t, 0, targetInCamera.Y, 1e-4)
	tolassert.EqualTol(t, -5, targetInCamera.Z, 1e-4)
}

func TestNewLookAtHandlesDegenerateEyeTarget(t *testing.T) {
	// eye == target collapses the naive look direction; NewLookAt must
	// not panic even though the underlying rotation math has to recover
	// from a zero-length vector internally.
	eye := math32.Vec3(1, 1, 1)
	assert.NotPanics(t, func() {
		NewLookAt(eye, eye, math32.Vec3(0, 1, 0))
	})
}

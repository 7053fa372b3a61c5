// Package camera defines the camera contract the scheduler consumes: just
// enough of a view and projection to drive the refinement predicate. The
// camera model itself — controllers, near-plane adjustment, input
// handling — is an external collaborator (spec.md §1); this package only
// carries the matrices the predicate needs and a couple of convenience
// constructors grounded on the same view/projection idiom the teacher's
// gpu/phong.Camera uses.
package camera

import "terratile/math32"

// Definition is the camera state delivered to the scheduler via
// update_camera. It must carry enough to reconstruct the model-view-
// projection transform used to estimate on-screen tile size.
type Definition struct {
	// View transforms world space into camera-centered (eye) space.
	View math32.Matrix4

	// Projection transforms eye space into clip space.
	Projection math32.Matrix4

	// ViewportWidth and ViewportHeight are the render target size in
	// pixels, needed to convert a normalized device coordinate extent
	// into a pixel (screen-space) extent.
	ViewportWidth  int
	ViewportHeight int

	// EyePosition is the camera's world-space position, used for the
	// distance-ordered "behind camera" test.
	EyePosition math32.Vector3

	// Forward is the camera's world-space forward (look) direction, unit
	// length. Used to decide whether a point is in front of or behind
	// the camera.
	Forward math32.Vector3
}

// ViewProjection returns the combined view-projection matrix used to
// transform world-space points into clip space.
func (d Definition) ViewProjection() math32.Matrix4 {
	return d.Projection.Mul(d.View)
}

// NewLookAt builds a Definition's View matrix from an eye position, a
// look-at target, and an up vector, mirroring gpu/phong.CameraViewMat.
func NewLookAt(eye, target, up math32.Vector3) math32.Matrix4 {
	var lookRot math32.Quat
	lookRot.SetFromRotationMatrix(math32.NewLookAt(eye, target, up))
	scale := math32.Vec3(1, 1, 1)
	var cview math32.Matrix4
	cview.SetTransform(eye, lookRot, scale)
	view, ok := cview.Inverse()
	if !ok {
		return math32.Identity4()
	}
	return *view
}

// Package refine implements the quad-tree refinement predicate (spec.md
// §4.C): a pure function of camera, decorator, and error budget that
// decides whether a tile must be subdivided for the current view.
package refine

import (
	"terratile/camera"
	"terratile/math32"
	"terratile/tile"
)

// DefaultMaxZoom caps recursion depth so a pathological camera state (or a
// decorator bug) cannot drive the quad-tree traversal into unbounded
// refinement. See design notes: "guard against infinite refinement by
// capping zoom... in the predicate."
const DefaultMaxZoom = 20

// Params bundles the inputs a refinement predicate is built from.
type Params struct {
	Camera camera.Definition
	AABB   tile.AABBDecorator

	// PermissibleError is the maximum acceptable screen-space size, in
	// pixels, of one texel of a tile's imagery or elevation raster.
	PermissibleError float32

	// TilePixelSize is the number of texels across one edge of a tile's
	// raster (ortho and height share the same quad-tree grid, so one
	// value serves both in the common case; callers that truly need
	// different ortho/height resolutions build two predicates).
	TilePixelSize int

	// MaxZoom caps traversal depth. Zero means DefaultMaxZoom.
	MaxZoom uint8
}

// New builds a refinement predicate: refine(id) is true iff tile id must
// be subdivided — the projected screen-space size of one texel exceeds
// PermissibleError — and false if the tile is behind the camera, outside
// the view frustum, or already at MaxZoom.
//
// The returned function is a pure function of its captured Params: given
// the same Params and the same id, it always returns the same answer,
// which is what lets two consecutive update passes over an unchanged
// camera be idempotent (spec.md §8).
func New(p Params) func(tile.ID) bool {
	maxZoom := p.MaxZoom
	if maxZoom == 0 {
		maxZoom = DefaultMaxZoom
	}
	viewProj := p.Camera.ViewProjection()
	eye := p.Camera.EyePosition
	forward := p.Camera.Forward
	viewportW := float32(p.Camera.ViewportWidth)
	viewportH := float32(p.Camera.ViewportHeight)
	permissible := p.PermissibleError
	tilePixels := float32(p.TilePixelSize)

	return func(id tile.ID) bool {
		if id.Zoom >= maxZoom {
			return false
		}
		box := p.AABB.AABB(id)

		toCenter := box.Center().Sub(eye)
		if toCenter.Dot(forward) <= 0 {
			return false // behind the camera
		}

		ndc := box.MVProjToNDC(&viewProj)
		if outsideFrustum(ndc) {
			return false
		}

		size := ndc.Size()
		pixelWidth := size.X * 0.5 * viewportW
		pixelHeight := size.Y * 0.5 * viewportH
		screenExtent := math32.Max(pixelWidth, pixelHeight)
		if screenExtent < 0 {
			screenExtent = -screenExtent
		}
		texelExtent := screenExtent / tilePixels
		return texelExtent > permissible
	}
}

// outsideFrustum reports whether an NDC-space box is entirely outside the
// canonical [-1,1] x/y, [0,1] z clip volume (WebGPU/D3D depth convention,
// matching cogentcore/webgpu's target pipeline).
func outsideFrustum(ndc math32.Box3) bool {
	return ndc.Max.X < -1 || ndc.Min.X > 1 ||
		ndc.Max.Y < -1 || ndc.Min.Y > 1 ||
		ndc.Max.Z < 0 || ndc.Min.Z > 1
}

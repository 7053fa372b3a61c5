package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"terratile/camera"
	"terratile/math32"
	"terratile/tile"
)

// unitDecorator maps a tile id to a flat square on the ground plane (z=0),
// 2/2^zoom on a side and positioned by x/y, so each zoom level tiles the
// [-1,1]x[-1,1] square centered on the origin. It's a minimal, deterministic stand-in
// for a real geodetic decorator, sufficient to exercise the predicate.
type unitDecorator struct{}

func (unitDecorator) AABB(id tile.ID) math32.Box3 {
	n := float32(uint32(1) << id.Zoom)
	size := 2.0 / n
	minX := -1 + float32(id.X)*size
	minY := -1 + float32(id.Y)*size
	return math32.Box3{
		Min: math32.Vec3(minX, minY, 0),
		Max: math32.Vec3(minX+size, minY+size, 0),
	}
}

func lookingDownAt(eye math32.Vector3) camera.Definition {
	view := camera.NewLookAt(eye, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	proj := math32.NewPerspective(60, 1, 0.1, 100)
	return camera.Definition{
		View:           view,
		Projection:     proj,
		ViewportWidth:  1024,
		ViewportHeight: 1024,
		EyePosition:    eye,
		Forward:        math32.Vec3(0, 0, 0).Sub(eye).Normal(),
	}
}

func TestRefineClosePermitsMoreSubdivision(t *testing.T) {
	near := lookingDownAt(math32.Vec3(0, 0, 2))
	far := lookingDownAt(math32.Vec3(0, 0, 50))

	pNear := New(Params{Camera: near, AABB: unitDecorator{}, PermissibleError: 2, TilePixelSize: 256})
	pFar := New(Params{Camera: far, AABB: unitDecorator{}, PermissibleError: 2, TilePixelSize: 256})

	// Root tile covers the whole unit decorator's extent either way, but
	// should need refinement more readily up close than far away.
	assert.True(t, pNear(tile.Root))
	assert.False(t, pFar(tile.Root))
}

func TestRefineBehindCameraNeverRefines(t *testing.T) {
	cam := lookingDownAt(math32.Vec3(0, 0, 2))
	// Looking down -z from z=2 at the origin: a tile far behind in +z is
	// behind the camera.
	behind := math32.Box3{Min: math32.Vec3(-0.1, -0.1, 10), Max: math32.Vec3(0.1, 0.1, 10.1)}
	p := New(Params{
		Camera:           cam,
		AABB:             tile.AABBDecoratorFunc(func(tile.ID) math32.Box3 { return behind }),
		PermissibleError: 0.001,
		TilePixelSize:    256,
	})
	assert.False(t, p(tile.Root))
}

func TestRefineCapsAtMaxZoom(t *testing.T) {
	cam := lookingDownAt(math32.Vec3(0, 0, 0.001))
	p := New(Params{
		Camera:           cam,
		AABB:             unitDecorator{},
		PermissibleError: 0,
		TilePixelSize:    256,
		MaxZoom:          3,
	})
	capped := tile.ID{Zoom: 3, X: 0, Y: 0}
	assert.False(t, p(capped))
}

func TestRefineIsPureAndDeterministic(t *testing.T) {
	cam := lookingDownAt(math32.Vec3(0, 0, 4))
	p := New(Params{Camera: cam, AABB: unitDecorator{}, PermissibleError: 2, TilePixelSize: 256})
	a := p(tile.Root)
	b := p(tile.Root)
	assert.Equal(t, a, b)
}

// Package tile defines tile identifiers, quads, and payloads: the unit of
// addressing, grouping, and data for the pyramidal quad-tree the scheduler
// streams. See terratile/quadtree for traversal and terratile/cache for the
// bounded store these values live in.
package tile

import "fmt"

// ID identifies one tile in the quad-tree pyramid by zoom level and grid
// coordinate. The root tile is ID{0, 0, 0}. ID is comparable and usable
// directly as a map key.
type ID struct {
	Zoom uint8
	X    uint32
	Y    uint32
}

func (id ID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Zoom, id.X, id.Y)
}

// Children returns the four child tile ids at Zoom+1, in a fixed z-order:
// (2x,2y), (2x+1,2y), (2x,2y+1), (2x+1,2y+1).
func (id ID) Children() [4]ID {
	z := id.Zoom + 1
	x2, y2 := id.X*2, id.Y*2
	return [4]ID{
		{z, x2, y2},
		{z, x2 + 1, y2},
		{z, x2, y2 + 1},
		{z, x2 + 1, y2 + 1},
	}
}

// Parent returns the parent tile id. Calling Parent on the root id (Zoom 0)
// is a programming error and panics, same as the rest of the quad-tree
// arithmetic, which assumes well-formed zoom levels.
func (id ID) Parent() ID {
	if id.Zoom == 0 {
		panic("tile: root id has no parent")
	}
	return ID{id.Zoom - 1, id.X / 2, id.Y / 2}
}

// Root is the ID of the single tile covering the whole pyramid.
var Root = ID{0, 0, 0}

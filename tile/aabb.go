package tile

import "terratile/math32"

// AABBDecorator maps a tile id to its world-space axis-aligned bounding
// box. It is supplied by the host application (the thing that knows the
// map projection); the scheduler core never computes projections itself,
// it only consults the decorator. Implementations must be pure and safe
// for concurrent use once constructed, since the scheduler may be handed
// one from outside its own goroutine at setup time.
type AABBDecorator interface {
	AABB(id ID) math32.Box3
}

// AABBDecoratorFunc adapts a plain function to an AABBDecorator.
type AABBDecoratorFunc func(id ID) math32.Box3

// AABB implements AABBDecorator.
func (f AABBDecoratorFunc) AABB(id ID) math32.Box3 {
	return f(id)
}

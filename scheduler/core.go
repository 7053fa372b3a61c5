// Package scheduler implements the tile scheduler (spec.md §4.E): the
// control loop that turns a camera state into a working set of tile-quad
// ids, reconciles that set against the RAM and GPU caches, and emits
// fetch requests and GPU residency deltas.
package scheduler

import (
	"fmt"
	"log/slog"

	"terratile/base/errors"
	"terratile/cache"
	"terratile/camera"
	"terratile/fetcher"
	"terratile/quadtree"
	"terratile/refine"
	"terratile/residency"
	"terratile/tile"
)

// core holds all scheduler state and implements the update and purge
// passes as plain synchronous methods with no timers, channels, or
// goroutines of its own. Scheduler wraps core with the actor loop and
// debounce timers that make it safe to drive from multiple threads; core
// itself is single-threaded by convention (its methods must only be
// called from the thread that owns it), which keeps the pass logic in
// spec.md §4.E directly unit-testable without synchronizing on timing.
type core struct {
	logger *slog.Logger

	requester fetcher.Requester
	renderer  residency.Renderer
	decoder   *residency.Decoder

	camera    camera.Definition
	hasCamera bool
	aabb      tile.AABBDecorator

	permissibleError float32
	orthoTilePixels  int
	heightTilePixels int
	maxZoom          uint8

	enabled bool

	ram    *cache.Bounded[tile.ID, tile.Quad]
	shadow *cache.Bounded[tile.ID, tile.ID]

	defaultOrtho  []byte
	defaultHeight []byte
}

// newCore builds a core with the given capacities and collaborators. The
// default tile blobs are built once here, per spec.md §9 ("global
// default tiles → per-scheduler constants"): they are owned by this
// scheduler instance, not a process-wide singleton.
func newCore(cfg Config, aabbDec tile.AABBDecorator, requester fetcher.Requester, renderer residency.Renderer, logger *slog.Logger) *core {
	if logger == nil {
		logger = slog.Default()
	}
	defaultOrtho := residency.BuildDefaultOrtho()
	defaultHeight := residency.BuildDefaultHeight()

	c := &core{
		logger:           logger,
		requester:        requester,
		renderer:         renderer,
		aabb:             aabbDec,
		permissibleError: cfg.PermissibleScreenSpaceError,
		orthoTilePixels:  cfg.OrthoTilePixelSize,
		heightTilePixels: cfg.HeightTilePixelSize,
		maxZoom:          cfg.MaxZoom,
		enabled:          cfg.Enabled,
		ram:              cache.NewBounded[tile.ID, tile.Quad](cfg.RAMQuadLimit),
		shadow:           cache.NewBounded[tile.ID, tile.ID](cfg.GPUQuadLimit),
		defaultOrtho:     defaultOrtho,
		defaultHeight:    defaultHeight,
	}
	c.decoder = residency.NewDecoder(aabbDec, defaultOrtho, defaultHeight, c.logDecodeFallback)

	// Forward the renderer's preferred ortho compression to a fetcher that
	// can honor it, so pre-compressed blobs arrive in a format the GPU
	// accepts.
	if ca, ok := requester.(fetcher.CompressionAware); ok && renderer != nil {
		ca.SetPreferredCompression(renderer.PreferredCompressionAlgorithm())
	}
	return c
}

// logDecodeFallback records a decode failure that was silently recovered
// by substituting the default tile (spec.md §7: decoding failure is
// never propagated). errors.Log carries the error through the shared
// swallow-and-log idiom; the scheduler's own logger adds the id/layer
// context that bare error text would lose.
func (c *core) logDecodeFallback(id tile.ID, layer string, err error) {
	errors.Log(fmt.Errorf("tile %s %s decode: %w", id, layer, err))
	c.logger.Warn("tile payload decode failed, substituting default", "id", id.String(), "layer", layer, "error", err)
}

func (c *core) SetCamera(def camera.Definition) {
	c.camera = def
	c.hasCamera = true
}

func (c *core) SetAABBDecorator(d tile.AABBDecorator) {
	c.aabb = d
	c.decoder = residency.NewDecoder(d, c.defaultOrtho, c.defaultHeight, c.logDecodeFallback)
}

// SetPermissibleScreenSpaceError sets ε in pixels. Negative values are a
// misconfiguration (spec.md §7) and are rejected rather than stored.
func (c *core) SetPermissibleScreenSpaceError(v float32) bool {
	if v < 0 {
		return false
	}
	c.permissibleError = v
	return true
}

func (c *core) SetTilePixelSize(ortho, height int) bool {
	if ortho <= 0 || height <= 0 {
		return false
	}
	c.orthoTilePixels = ortho
	c.heightTilePixels = height
	return true
}

func (c *core) SetRAMQuadLimit(n int) bool {
	if n < 0 {
		return false
	}
	c.ram.SetCapacity(n)
	return true
}

func (c *core) SetGPUQuadLimit(n int) bool {
	if n < 0 {
		return false
	}
	c.shadow.SetCapacity(n)
	return true
}

func (c *core) SetEnabled(v bool) {
	c.enabled = v
}

func (c *core) Enabled() bool {
	return c.enabled
}

// InsertQuads stores newly-arrived quads in the RAM cache. Stale
// deliveries (quads for ids no longer wanted) are accepted unconditionally
// (spec.md §7): they will be reclaimed by the next purge if they are not
// useful.
func (c *core) InsertQuads(quads []tile.Quad) {
	for _, q := range quads {
		c.ram.Insert(q.ID, q)
	}
}

func (c *core) buildRefine() func(tile.ID) bool {
	return refine.New(refine.Params{
		Camera:           c.camera,
		AABB:             c.aabb,
		PermissibleError: c.permissibleError,
		TilePixelSize:    c.orthoTilePixels,
		MaxZoom:          c.maxZoom,
	})
}

// RunUpdatePass executes the ordered steps of spec.md §4.E: working-set
// computation, fetch dispatch, GPU promotion, GPU shadow reconciliation,
// and delta emission. It is a no-op if no camera or AABB decorator has
// been supplied yet, since there is nothing to refine against.
func (c *core) RunUpdatePass() {
	if !c.hasCamera || c.aabb == nil {
		return
	}
	refinePred := c.buildRefine()

	// Step 1: working-set computation. The working set is the inner-node
	// set recorded by expand's side effect; Traverse's own return value
	// (the leaves) is not part of the scheduler's selection (spec.md §4.B).
	var working []tile.ID
	expand := func(id tile.ID) [4]tile.ID {
		working = append(working, id)
		return id.Children()
	}
	quadtree.Traverse(tile.Root, refinePred, expand)

	// Step 2: fetch dispatch.
	var missing []tile.ID
	for _, id := range working {
		if !c.ram.Contains(id) {
			missing = append(missing, id)
		}
	}
	if c.requester != nil {
		c.requester.RequestQuads(missing)
	}

	// Step 3: GPU promotion. Iterate RAM in insertion order for
	// determinism; a quad is a promotion candidate exactly when its id is
	// in the working set (refine(q.id) = true) and it is not already
	// shadowed.
	var promoted []residency.GPUQuad
	for _, id := range c.ram.Keys() {
		if !refinePred(id) {
			continue
		}
		if c.shadow.Contains(id) {
			continue
		}
		q, ok := c.ram.Get(id)
		if !ok {
			continue
		}
		promoted = append(promoted, c.decoder.DecodeQuad(q))
	}

	// Step 4: GPU shadow insert, mark useful, purge.
	for _, gq := range promoted {
		c.shadow.Insert(gq.ID, gq.ID)
	}
	c.shadow.Visit(func(id tile.ID, _ tile.ID) bool {
		return refinePred(id)
	})
	evicted := c.shadow.Purge()

	// Step 5: delta reconciliation. A quad evicted in the same pass it was
	// promoted never reached the renderer, so it must not appear in either
	// list (spec.md §4.E, §8 scenario 4): added = promoted \ evicted,
	// removed = evicted \ promoted.
	promotedSet := make(map[tile.ID]bool, len(promoted))
	for _, gq := range promoted {
		promotedSet[gq.ID] = true
	}
	evictedSet := make(map[tile.ID]bool, len(evicted))
	for _, id := range evicted {
		evictedSet[id] = true
	}
	var added []residency.GPUQuad
	for _, gq := range promoted {
		if evictedSet[gq.ID] {
			continue
		}
		added = append(added, gq)
	}
	var removed []tile.ID
	for _, id := range evicted {
		if promotedSet[id] {
			continue
		}
		removed = append(removed, id)
	}

	if c.renderer != nil {
		c.renderer.GPUQuadsUpdated(added, removed)
	}
}

// RunPurgePass enforces the RAM cache's slack rule (spec.md §4.E): it is
// a no-op unless occupancy has reached 1.1x capacity, which avoids
// thrashing a cache that is only barely over its soft limit.
func (c *core) RunPurgePass() {
	limit := c.ram.Capacity()
	if limit <= 0 {
		return
	}
	if float64(c.ram.Len()) < 1.1*float64(limit) {
		return
	}
	refinePred := c.buildRefine()
	if !c.hasCamera || c.aabb == nil {
		// No camera yet to judge usefulness against; evict nothing rather
		// than guess.
		return
	}
	c.ram.Visit(func(id tile.ID, _ tile.Quad) bool {
		return refinePred(id)
	})
	c.ram.Purge()
}

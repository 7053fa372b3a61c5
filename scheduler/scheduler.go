package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"terratile/camera"
	"terratile/fetcher"
	"terratile/residency"
	"terratile/tile"
)

// Scheduler wraps core with the actor loop and debounce timers spec.md §5
// and §9 describe: a single inbox processed by one goroutine ("the
// scheduler thread"), supervised by an errgroup.Group bound to a
// context.Context so Stop gives clean, cancellable shutdown instead of a
// bare unmanaged goroutine.
//
// Public methods are safe to call from any goroutine: they only send a
// message onto the inbox, never touch core state directly. All state
// mutation happens inside the run loop, on the scheduler thread.
type Scheduler struct {
	core *core

	inbox chan message

	updateTimeout time.Duration
	purgeTimeout  time.Duration

	updateArmed bool
	purgeArmed  bool
	updateTimer *time.Timer
	purgeTimer  *time.Timer

	group  *errgroup.Group
	cancel context.CancelFunc
}

// New constructs a Scheduler. aabbDec may be nil and supplied later via
// SetAABBDecorator; requester and renderer may be nil for tests that only
// exercise cache bookkeeping.
func New(cfg Config, aabbDec tile.AABBDecorator, requester fetcher.Requester, renderer residency.Renderer, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		core:          newCore(cfg, aabbDec, requester, renderer, logger),
		inbox:         make(chan message, 256),
		updateTimeout: cfg.UpdateTimeout,
		purgeTimeout:  cfg.PurgeTimeout,
	}
}

// Start launches the scheduler thread. Enabling (per cfg.Enabled, or a
// later SetEnabled(true)) arms the update timer.
func (s *Scheduler) Start(ctx context.Context) {
	gctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(gctx)
	s.cancel = cancel
	s.group = g
	g.Go(func() error {
		return s.run(gctx)
	})
	if s.core.Enabled() {
		s.inbox <- message{kind: msgArmUpdate}
	}
}

// Stop cancels the scheduler thread and waits for it to exit. Per
// spec.md §4.E's state machine, destruction cancels timers.
func (s *Scheduler) Stop() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	if s.updateTimer != nil {
		s.updateTimer.Stop()
	}
	if s.purgeTimer != nil {
		s.purgeTimer.Stop()
	}
	return s.group.Wait()
}

func (s *Scheduler) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-s.inbox:
			s.handle(m)
		}
	}
}

// message is the tagged-union inbox entry spec.md §9 calls for: "a single
// inbox message variant (tagged union of UpdateCamera | ReceiveQuads |
// SetX | Tick)". A single struct with a kind tag and the union of payload
// fields it might need is the idiomatic Go rendering of that union —
// there is no sum type, so the alternative (one channel per message kind)
// would scatter the inbox across several channels and lose total
// ordering, which spec.md §5 requires.
type message struct {
	kind messageKind

	cameraDef camera.Definition
	quads     []tile.Quad
	aabbDec   tile.AABBDecorator
	floatVal  float32
	intVal    int
	intVal2   int
	durVal    time.Duration
	boolVal   bool
}

type messageKind int

const (
	msgUpdateCamera messageKind = iota
	msgReceiveQuads
	msgSetAABBDecorator
	msgSetPermissibleError
	msgSetTilePixelSize
	msgSetRAMLimit
	msgSetGPULimit
	msgSetUpdateTimeout
	msgSetPurgeTimeout
	msgSetEnabled
	msgUpdateTick
	msgPurgeTick
	msgArmUpdate
)

func (s *Scheduler) handle(m message) {
	switch m.kind {
	case msgUpdateCamera:
		s.core.SetCamera(m.cameraDef)
		s.armUpdateTimer()
	case msgReceiveQuads:
		s.core.InsertQuads(m.quads)
		s.armPurgeTimer()
		s.armUpdateTimer()
	case msgSetAABBDecorator:
		s.core.SetAABBDecorator(m.aabbDec)
	case msgSetPermissibleError:
		s.core.SetPermissibleScreenSpaceError(m.floatVal)
	case msgSetTilePixelSize:
		s.core.SetTilePixelSize(m.intVal, m.intVal2)
	case msgSetRAMLimit:
		s.core.SetRAMQuadLimit(m.intVal)
	case msgSetGPULimit:
		s.core.SetGPUQuadLimit(m.intVal)
	case msgSetUpdateTimeout:
		s.updateTimeout = m.durVal
		if s.updateArmed {
			s.updateTimer.Stop()
			s.updateArmed = false
			s.armUpdateTimer()
		}
	case msgSetPurgeTimeout:
		s.purgeTimeout = m.durVal
		if s.purgeArmed {
			s.purgeTimer.Stop()
			s.purgeArmed = false
			s.armPurgeTimer()
		}
	case msgSetEnabled:
		s.core.SetEnabled(m.boolVal)
		if m.boolVal {
			s.armUpdateTimer()
		}
	case msgArmUpdate:
		s.armUpdateTimer()
	case msgUpdateTick:
		s.updateArmed = false
		if s.core.Enabled() {
			s.core.RunUpdatePass()
		}
	case msgPurgeTick:
		s.purgeArmed = false
		if s.core.Enabled() {
			s.core.RunPurgePass()
		}
	}
}

// armUpdateTimer arms the update debounce timer if enabled and not
// already armed (spec.md §4.E arming rule).
func (s *Scheduler) armUpdateTimer() {
	if !s.core.Enabled() || s.updateArmed {
		return
	}
	s.updateArmed = true
	s.updateTimer = time.AfterFunc(s.updateTimeout, func() {
		s.send(message{kind: msgUpdateTick})
	})
}

func (s *Scheduler) armPurgeTimer() {
	if !s.core.Enabled() || s.purgeArmed {
		return
	}
	s.purgeArmed = true
	s.purgeTimer = time.AfterFunc(s.purgeTimeout, func() {
		s.send(message{kind: msgPurgeTick})
	})
}

// send delivers a message to the scheduler thread. It is used both by
// the public API (below) and by timer callbacks, which fire on their own
// goroutine.
func (s *Scheduler) send(m message) {
	s.inbox <- m
}

// UpdateCamera stores the new camera definition and arms the update
// timer.
func (s *Scheduler) UpdateCamera(def camera.Definition) {
	s.send(message{kind: msgUpdateCamera, cameraDef: def})
}

// ReceiveQuads delivers fetched quads into the RAM cache and arms both
// debounce timers.
func (s *Scheduler) ReceiveQuads(quads []tile.Quad) {
	s.send(message{kind: msgReceiveQuads, quads: quads})
}

func (s *Scheduler) SetAABBDecorator(d tile.AABBDecorator) {
	s.send(message{kind: msgSetAABBDecorator, aabbDec: d})
}

func (s *Scheduler) SetPermissibleScreenSpaceError(v float32) {
	s.send(message{kind: msgSetPermissibleError, floatVal: v})
}

func (s *Scheduler) SetTilePixelSize(ortho, height int) {
	s.send(message{kind: msgSetTilePixelSize, intVal: ortho, intVal2: height})
}

func (s *Scheduler) SetRAMQuadLimit(n int) {
	s.send(message{kind: msgSetRAMLimit, intVal: n})
}

func (s *Scheduler) SetGPUQuadLimit(n int) {
	s.send(message{kind: msgSetGPULimit, intVal: n})
}

func (s *Scheduler) SetUpdateTimeout(d time.Duration) {
	s.send(message{kind: msgSetUpdateTimeout, durVal: d})
}

func (s *Scheduler) SetPurgeTimeout(d time.Duration) {
	s.send(message{kind: msgSetPurgeTimeout, durVal: d})
}

func (s *Scheduler) SetEnabled(v bool) {
	s.send(message{kind: msgSetEnabled, boolVal: v})
}

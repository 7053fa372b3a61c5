package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terratile/tile"
)

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestSchedulerRunsUpdatePassAfterDebounce(t *testing.T) {
	cfg := withQuadSize(DefaultConfig(), 2)
	cfg.UpdateTimeout = 5 * time.Millisecond
	cfg.PurgeTimeout = 20 * time.Millisecond
	req := &fakeRequester{}
	ren := &fakeRenderer{}
	s := New(cfg, alwaysRefineDecorator(), req, ren, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	s.UpdateCamera(testCamera())

	waitUntil(t, time.Second, func() bool {
		return len(req.calls) > 0
	})

	assert.Contains(t, req.last(), tile.Root)
}

func TestSchedulerCoalescesBurstsIntoOnePass(t *testing.T) {
	cfg := withQuadSize(DefaultConfig(), 2)
	cfg.UpdateTimeout = 30 * time.Millisecond
	req := &fakeRequester{}
	ren := &fakeRenderer{}
	s := New(cfg, alwaysRefineDecorator(), req, ren, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	cam := testCamera()
	for i := 0; i < 5; i++ {
		s.UpdateCamera(cam)
	}

	waitUntil(t, time.Second, func() bool {
		return len(req.calls) > 0
	})
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, req.calls, 1, "five rapid camera updates should debounce into a single pass")
}

func TestSchedulerStopCancelsRunLoop(t *testing.T) {
	s := New(DefaultConfig(), alwaysRefineDecorator(), &fakeRequester{}, &fakeRenderer{}, nil)
	ctx := context.Background()
	s.Start(ctx)
	err := s.Stop()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchedulerDisabledDoesNotArmNewTimers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	req := &fakeRequester{}
	s := New(cfg, alwaysRefineDecorator(), req, &fakeRenderer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop()

	s.UpdateCamera(testCamera())
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, req.calls)
}

package scheduler

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig is a supplement beyond spec.md §6 ("configuration arrives
// via the parameter setters"): it optionally reloads Config from disk on
// write and pushes the reloaded fields through those same public setters,
// rather than replacing them. Returns a stop function; call it to close
// the underlying watcher. Decode failures are logged and otherwise
// ignored — a bad config write must not crash a running scheduler.
func WatchConfig(path string, s *Scheduler, logger *slog.Logger) (stop func() error, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					logger.Warn("scheduler: failed to reload config", "path", path, "error", err)
					continue
				}
				applyConfig(s, cfg)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("scheduler: config watcher error", "error", werr)
			case <-done:
				return
			}
		}
	}()

	return func() error {
		close(done)
		return watcher.Close()
	}, nil
}

// applyConfig pushes every field of a reloaded Config that has a public
// setter through it (all but MaxZoom, which has no setter and is not
// applied), exactly as a caller driving the setters by hand
// would, so a hot reload is indistinguishable from manual reconfiguration
// at the actor boundary.
func applyConfig(s *Scheduler, cfg Config) {
	s.SetPermissibleScreenSpaceError(cfg.PermissibleScreenSpaceError)
	s.SetTilePixelSize(cfg.OrthoTilePixelSize, cfg.HeightTilePixelSize)
	s.SetRAMQuadLimit(cfg.RAMQuadLimit)
	s.SetGPUQuadLimit(cfg.GPUQuadLimit)
	s.SetUpdateTimeout(cfg.UpdateTimeout)
	s.SetPurgeTimeout(cfg.PurgeTimeout)
	s.SetEnabled(cfg.Enabled)
}

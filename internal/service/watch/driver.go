package watch

import (
	"context"
	"log/slog"
)

// driver advances the player of one session while it plays.
type driver struct {
	stop context.CancelFunc
	done chan struct{}
}

// syncDriverLocked starts the driver when the player plays and none is
// running, and stops it when the player no longer plays. It does not wait for
// a stopped driver: the driver needs the session lock to exit and notices it
// was replaced before applying another tick.
func (s *service) syncDriverLocked(sess *Session) {
	switch {
	case sess.closed:
		return
	case sess.player.IsPlaying && sess.driver == nil:
		ctx, cancel := context.WithCancel(sess.ctx)
		d := &driver{stop: cancel, done: make(chan struct{})}
		sess.driver = d
		go s.runDriver(ctx, sess, d)
	case !sess.player.IsPlaying && sess.driver != nil:
		sess.driver.stop()
		sess.driver = nil
	}
}

func (s *service) runDriver(ctx context.Context, sess *Session, d *driver) {
	defer close(d.done)
	defer d.stop()

	ticker := s.clock.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	delta := s.cfg.TickInterval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if !s.applyTick(ctx, sess, d, delta) {
				return
			}
		}
	}
}

// applyTick advances the session by delta and publishes the result. It
// reports whether the driver should keep running.
func (s *service) applyTick(ctx context.Context, sess *Session, d *driver, delta float64) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if ctx.Err() != nil || sess.closed || sess.driver != d {
		return false
	}

	sess.setPlayerLocked(sess.player.Tick(delta))
	s.recorder.TickApplied()
	sess.onTick(sess.snapshotLocked())

	if !sess.player.IsPlaying {
		slog.DebugContext(ctx, "playback reached the end", "session_id", sess.ID)
		sess.driver = nil
		return false
	}

	return true
}

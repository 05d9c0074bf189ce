package watch

import (
	"context"
	"maps"
	"sync"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/format"
)

// Session is the state of one viewer watching one video: its player and the
// viewer's reactions to the video's comments. It lives as long as the
// viewer's connection.
type Session struct {
	ID      string
	VideoID string

	ctx       context.Context
	mu        sync.Mutex
	player    domain.Player
	reactions map[string]domain.Reaction
	version   uint64
	onTick    func(PlayerSnapshot)
	driver    *driver
	closed    bool
}

// PlayerSnapshot is the player state as shown to the viewer. Version grows
// with every change so a client can drop snapshots that arrive out of order.
type PlayerSnapshot struct {
	domain.Player
	Version          uint64  `json:"version"`
	CurrentTimeLabel string  `json:"current_time_label"`
	DurationLabel    string  `json:"duration_label"`
	EffectiveVolume  float64 `json:"effective_volume"`
	RateLabel        string  `json:"rate_label"`
	Ended            bool    `json:"ended"`
}

func newSnapshot(p domain.Player, version uint64) PlayerSnapshot {
	return PlayerSnapshot{
		Player:           p,
		Version:          version,
		CurrentTimeLabel: format.Time(p.CurrentTime),
		DurationLabel:    format.Time(p.Duration),
		EffectiveVolume:  p.EffectiveVolume(),
		RateLabel:        format.RateLabel(p.PlaybackRate),
		Ended:            p.Ended(),
	}
}

func (s *Session) snapshotLocked() PlayerSnapshot {
	return newSnapshot(s.player, s.version)
}

func (s *Session) reactionsLocked() map[string]domain.Reaction {
	return maps.Clone(s.reactions)
}

// setPlayerLocked stores next and bumps the version.
func (s *Session) setPlayerLocked(next domain.Player) {
	s.player = next
	s.version++
}

// close marks the session closed, stops its driver and waits for it.
func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	d := s.driver
	s.driver = nil
	s.mu.Unlock()

	if d != nil {
		d.stop()
		<-d.done
	}
}

package watch

import (
	"context"
	"log/slog"

	"github.com/streamify/server/internal/domain"
)

const (
	IntentTogglePlayPause  = "TOGGLE_PLAY_PAUSE"
	IntentSeek             = "SEEK"
	IntentSetVolume        = "SET_VOLUME"
	IntentToggleMute       = "TOGGLE_MUTE"
	IntentSetPlaybackRate  = "SET_PLAYBACK_RATE"
	IntentSetQuality       = "SET_QUALITY"
	IntentToggleFullscreen = "TOGGLE_FULLSCREEN"
)

type SessionParams struct {
	SessionID string
}

type PlayerResponse struct {
	Player PlayerSnapshot `json:"player"`
}

// updatePlayer applies transition to the session's player under the session
// lock and keeps the tick driver in step with the result.
func (s *service) updatePlayer(ctx context.Context, sessionID, intent string, transition func(domain.Player) domain.Player) (PlayerResponse, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return PlayerResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return PlayerResponse{}, ErrSessionClosed
	}

	sess.setPlayerLocked(transition(sess.player))
	s.syncDriverLocked(sess)
	s.recorder.IntentHandled(intent)

	slog.DebugContext(ctx, "player updated",
		"session_id", sessionID,
		"intent", intent,
		"current_time", sess.player.CurrentTime,
		"is_playing", sess.player.IsPlaying,
	)

	return PlayerResponse{Player: sess.snapshotLocked()}, nil
}

func (s *service) Player(_ context.Context, params *SessionParams) (PlayerResponse, error) {
	sess, err := s.getSession(params.SessionID)
	if err != nil {
		return PlayerResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return PlayerResponse{Player: sess.snapshotLocked()}, nil
}

func (s *service) TogglePlayPause(ctx context.Context, params *SessionParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentTogglePlayPause, domain.Player.TogglePlayPause)
}

type SeekParams struct {
	SessionID string
	Time      float64
}

func (s *service) Seek(ctx context.Context, params *SeekParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentSeek, func(p domain.Player) domain.Player {
		return p.Seek(params.Time)
	})
}

type SetVolumeParams struct {
	SessionID string
	Volume    float64
}

func (s *service) SetVolume(ctx context.Context, params *SetVolumeParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentSetVolume, func(p domain.Player) domain.Player {
		return p.SetVolume(params.Volume)
	})
}

func (s *service) ToggleMute(ctx context.Context, params *SessionParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentToggleMute, domain.Player.ToggleMute)
}

type SetPlaybackRateParams struct {
	SessionID string
	Rate      float64
}

func (s *service) SetPlaybackRate(ctx context.Context, params *SetPlaybackRateParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentSetPlaybackRate, func(p domain.Player) domain.Player {
		return p.SetPlaybackRate(params.Rate)
	})
}

type SetQualityParams struct {
	SessionID string
	Quality   string
}

func (s *service) SetQuality(ctx context.Context, params *SetQualityParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentSetQuality, func(p domain.Player) domain.Player {
		return p.SetQuality(params.Quality)
	})
}

func (s *service) ToggleFullscreen(ctx context.Context, params *SessionParams) (PlayerResponse, error) {
	return s.updatePlayer(ctx, params.SessionID, IntentToggleFullscreen, domain.Player.ToggleFullscreen)
}

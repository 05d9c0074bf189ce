package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/repository/session"
)

var (
	ErrSessionNotFound = errors.New("watch session not found")
	ErrSessionClosed   = errors.New("watch session closed")
)

const DefaultTickInterval = time.Second

type iSessionRepo interface {
	Add(id string, s *Session) error
	Get(id string) (*Session, error)
	Remove(id string) (*Session, error)
	IDs() []string
}

type iCatalog interface {
	Video(id string) (domain.WatchVideo, error)
}

type iRecorder interface {
	SessionStarted()
	SessionEnded()
	TickApplied()
	IntentHandled(intent string)
}

type Config struct {
	TickInterval  time.Duration
	PlayerOptions domain.PlayerOptions
}

type service struct {
	sessions iSessionRepo
	catalog  iCatalog
	clock    clockwork.Clock
	recorder iRecorder
	cfg      Config
}

func NewService(sessions iSessionRepo, catalog iCatalog, clock clockwork.Clock, recorder iRecorder, cfg Config) *service {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	return &service{
		sessions: sessions,
		catalog:  catalog,
		clock:    clock,
		recorder: recorder,
		cfg:      cfg,
	}
}

type StartSessionParams struct {
	VideoID string
	// OnTick receives every snapshot produced by the tick driver. It is
	// called with the session locked and must not call back into the service.
	OnTick func(PlayerSnapshot)
}

type StartSessionResponse struct {
	SessionID string                     `json:"session_id"`
	Player    PlayerSnapshot             `json:"player"`
	Reactions map[string]domain.Reaction `json:"reactions"`
}

// StartSession loads the video and opens a paused session for it. The tick
// driver of the session stops when ctx is done, even if EndSession is never
// called.
func (s *service) StartSession(ctx context.Context, params *StartSessionParams) (StartSessionResponse, error) {
	video, err := s.catalog.Video(params.VideoID)
	if err != nil {
		return StartSessionResponse{}, fmt.Errorf("failed to get video: %w", err)
	}

	reactions := make(map[string]domain.Reaction, len(video.Comments))
	for _, c := range video.Comments {
		reactions[c.ID] = c.InitialReaction()
	}

	onTick := params.OnTick
	if onTick == nil {
		onTick = func(PlayerSnapshot) {}
	}

	sess := &Session{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		ctx:       ctx,
		player:    domain.NewPlayer(video.DurationSeconds, s.cfg.PlayerOptions),
		reactions: reactions,
		onTick:    onTick,
	}

	if err := s.sessions.Add(sess.ID, sess); err != nil {
		return StartSessionResponse{}, fmt.Errorf("failed to add session: %w", err)
	}
	s.recorder.SessionStarted()

	slog.DebugContext(ctx, "watch session started", "session_id", sess.ID, "video_id", video.ID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return StartSessionResponse{
		SessionID: sess.ID,
		Player:    sess.snapshotLocked(),
		Reactions: sess.reactionsLocked(),
	}, nil
}

// EndSession removes the session and waits for its tick driver to exit. No
// snapshot is published for the session once EndSession returns.
func (s *service) EndSession(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Remove(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to remove session: %w", err)
	}

	sess.close()
	s.recorder.SessionEnded()

	slog.DebugContext(ctx, "watch session ended", "session_id", sessionID)
	return nil
}

// Close ends every open session.
func (s *service) Close(ctx context.Context) {
	for _, id := range s.sessions.IDs() {
		if err := s.EndSession(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			slog.WarnContext(ctx, "failed to end session", "session_id", id, "error", err)
		}
	}
}

func (s *service) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/service/watch"
	"github.com/streamify/server/pkg/ctxlogger"
)

const writeWait = 10 * time.Second

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// viewer is the connection of one watch session. Intent replies and tick
// snapshots are written from different goroutines, so writes go through mu.
type viewer struct {
	sessionID string
	conn      *websocket.Conn
	mu        sync.Mutex
}

func (v *viewer) write(output *Output) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return v.conn.WriteJSON(output)
}

func (c controller) writeToConn(ctx context.Context, output *Output) error {
	v := c.getViewerFromCtx(ctx)
	if v == nil {
		return errors.New("no viewer in context")
	}

	if err := v.write(output); err != nil {
		return fmt.Errorf("failed to write %s: %w", output.Type, err)
	}

	return nil
}

func (c controller) watchSession(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video-id")

	if _, err := c.feedService.Watch(r.Context(), videoID); err != nil {
		c.writeServiceError(w, r, "watchSession", err)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	v := &viewer{conn: conn}
	ctx := r.Context()

	startResp, err := c.watchService.StartSession(ctx, &watch.StartSessionParams{
		VideoID: videoID,
		OnTick: func(p watch.PlayerSnapshot) {
			if err := v.write(&Output{
				Type:    "PLAYER_UPDATED",
				Payload: map[string]any{"player": p},
			}); err != nil {
				c.logger.DebugContext(ctx, "failed to write tick", "error", err)
			}
		},
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to start watch session", "error", err)
		v.write(&Output{Type: "ERROR", Payload: map[string]any{"message": err.Error()}})
		return
	}
	v.sessionID = startResp.SessionID
	defer c.endSession(ctx, startResp.SessionID)

	ctx = ctxlogger.AppendCtx(ctx, slog.String("session_id", startResp.SessionID))
	ctx = withViewer(ctx, v)

	if err := c.writeToConn(ctx, &Output{
		Type:    "SESSION_STARTED",
		Payload: startResp,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to write json", "error", err)
		return
	}

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "watch connection closed", "reason", err)
	}
}

func (c controller) endSession(ctx context.Context, sessionID string) {
	if err := c.watchService.EndSession(context.WithoutCancel(ctx), sessionID); err != nil && !errors.Is(err, watch.ErrSessionNotFound) {
		c.logger.WarnContext(ctx, "failed to end watch session", "session_id", sessionID, "error", err)
	}
}

type EmptyInput struct{}

func (c controller) handleAlive(_ context.Context, _ *websocket.Conn, _ EmptyInput) error {
	return nil
}

func (c controller) writePlayerUpdated(ctx context.Context, resp watch.PlayerResponse, err error) error {
	if err != nil {
		return err
	}

	return c.writeToConn(ctx, &Output{
		Type:    "PLAYER_UPDATED",
		Payload: map[string]any{"player": resp.Player},
	})
}

func (c controller) sessionParams(ctx context.Context) *watch.SessionParams {
	return &watch.SessionParams{SessionID: c.getViewerFromCtx(ctx).sessionID}
}

func (c controller) handleTogglePlayPause(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	resp, err := c.watchService.TogglePlayPause(ctx, c.sessionParams(ctx))
	return c.writePlayerUpdated(ctx, resp, err)
}

type SeekInput struct {
	Time *float64 `json:"time" validate:"required"`
}

func (c controller) handleSeek(ctx context.Context, _ *websocket.Conn, input SeekInput) error {
	resp, err := c.watchService.Seek(ctx, &watch.SeekParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		Time:      *input.Time,
	})
	return c.writePlayerUpdated(ctx, resp, err)
}

type SetVolumeInput struct {
	Volume *float64 `json:"volume" validate:"required"`
}

func (c controller) handleSetVolume(ctx context.Context, _ *websocket.Conn, input SetVolumeInput) error {
	resp, err := c.watchService.SetVolume(ctx, &watch.SetVolumeParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		Volume:    *input.Volume,
	})
	return c.writePlayerUpdated(ctx, resp, err)
}

func (c controller) handleToggleMute(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	resp, err := c.watchService.ToggleMute(ctx, c.sessionParams(ctx))
	return c.writePlayerUpdated(ctx, resp, err)
}

type SetPlaybackRateInput struct {
	Rate *float64 `json:"rate" validate:"required,gt=0"`
}

func (c controller) handleSetPlaybackRate(ctx context.Context, _ *websocket.Conn, input SetPlaybackRateInput) error {
	resp, err := c.watchService.SetPlaybackRate(ctx, &watch.SetPlaybackRateParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		Rate:      *input.Rate,
	})
	return c.writePlayerUpdated(ctx, resp, err)
}

type SetQualityInput struct {
	Quality string `json:"quality" validate:"required,max=16"`
}

func (c controller) handleSetQuality(ctx context.Context, _ *websocket.Conn, input SetQualityInput) error {
	resp, err := c.watchService.SetQuality(ctx, &watch.SetQualityParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		Quality:   input.Quality,
	})
	return c.writePlayerUpdated(ctx, resp, err)
}

func (c controller) handleToggleFullscreen(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	resp, err := c.watchService.ToggleFullscreen(ctx, c.sessionParams(ctx))
	return c.writePlayerUpdated(ctx, resp, err)
}

type CommentInput struct {
	CommentID string `json:"comment_id" validate:"required,max=64"`
}

func (c controller) commentParams(ctx context.Context, input CommentInput) *watch.CommentParams {
	return &watch.CommentParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		CommentID: input.CommentID,
	}
}

func (c controller) writeReactionUpdated(ctx context.Context, resp watch.ReactionResponse, err error) error {
	if err != nil {
		return err
	}

	return c.writeToConn(ctx, &Output{
		Type:    "REACTION_UPDATED",
		Payload: resp,
	})
}

func (c controller) handleLikeComment(ctx context.Context, _ *websocket.Conn, input CommentInput) error {
	resp, err := c.watchService.LikeComment(ctx, c.commentParams(ctx, input))
	return c.writeReactionUpdated(ctx, resp, err)
}

func (c controller) handleDislikeComment(ctx context.Context, _ *websocket.Conn, input CommentInput) error {
	resp, err := c.watchService.DislikeComment(ctx, c.commentParams(ctx, input))
	return c.writeReactionUpdated(ctx, resp, err)
}

func (c controller) handleReplyComment(ctx context.Context, _ *websocket.Conn, input CommentInput) error {
	notification, err := c.watchService.ReplyComment(ctx, c.commentParams(ctx, input))
	if err != nil {
		return err
	}

	return c.writeNotification(ctx, notification)
}

type PostCommentInput struct {
	Text string `json:"text" validate:"max=5000"`
}

func (c controller) handlePostComment(ctx context.Context, _ *websocket.Conn, input PostCommentInput) error {
	notification, err := c.watchService.PostComment(ctx, &watch.PostCommentParams{
		SessionID: c.getViewerFromCtx(ctx).sessionID,
		Text:      input.Text,
	})
	if err != nil {
		return err
	}

	return c.writeNotification(ctx, notification)
}

func (c controller) writeNotification(ctx context.Context, n domain.Notification) error {
	return c.writeToConn(ctx, &Output{
		Type:    "NOTIFICATION",
		Payload: n,
	})
}

// handleWSError reports a failed message back to the viewer. The connection
// stays open.
func (c controller) handleWSError(ctx context.Context, _ *websocket.Conn, err error) {
	var validationErr *validationError
	payload := map[string]any{"message": err.Error()}

	switch {
	case errors.As(err, &validationErr):
		payload["errors"] = validationErr.errors
		c.logger.InfoContext(ctx, "invalid websocket message", "errors", validationErr.errors)
	case errors.Is(err, domain.ErrCommentNotFound):
		c.logger.InfoContext(ctx, "websocket message failed", "error", err)
	default:
		c.logger.WarnContext(ctx, "websocket message failed", "error", err)
	}

	if c.getViewerFromCtx(ctx) == nil {
		return
	}

	if err := c.writeToConn(ctx, &Output{Type: "ERROR", Payload: payload}); err != nil {
		c.logger.DebugContext(ctx, "failed to write error", "error", err)
	}
}

package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streamify/server/internal/domain"
)

const (
	IntentLikeComment    = "LIKE_COMMENT"
	IntentDislikeComment = "DISLIKE_COMMENT"
	IntentReplyComment   = "REPLY_COMMENT"
	IntentPostComment    = "POST_COMMENT"
)

type CommentParams struct {
	SessionID string
	CommentID string
}

type ReactionResponse struct {
	CommentID string          `json:"comment_id"`
	Reaction  domain.Reaction `json:"reaction"`
}

func (s *service) updateReaction(ctx context.Context, params *CommentParams, intent string, transition func(domain.Reaction) domain.Reaction) (ReactionResponse, error) {
	sess, err := s.getSession(params.SessionID)
	if err != nil {
		return ReactionResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return ReactionResponse{}, ErrSessionClosed
	}

	current, ok := sess.reactions[params.CommentID]
	if !ok {
		return ReactionResponse{}, fmt.Errorf("%w: %s", domain.ErrCommentNotFound, params.CommentID)
	}

	next := transition(current)
	sess.reactions[params.CommentID] = next
	s.recorder.IntentHandled(intent)

	slog.DebugContext(ctx, "reaction updated",
		"session_id", params.SessionID,
		"comment_id", params.CommentID,
		"likes", next.Likes,
		"dislikes", next.Dislikes,
	)

	return ReactionResponse{CommentID: params.CommentID, Reaction: next}, nil
}

func (s *service) LikeComment(ctx context.Context, params *CommentParams) (ReactionResponse, error) {
	return s.updateReaction(ctx, params, IntentLikeComment, domain.Reaction.Like)
}

func (s *service) DislikeComment(ctx context.Context, params *CommentParams) (ReactionResponse, error) {
	return s.updateReaction(ctx, params, IntentDislikeComment, domain.Reaction.Dislike)
}

// ReplyComment acknowledges a reply intent. Replies are not stored.
func (s *service) ReplyComment(ctx context.Context, params *CommentParams) (domain.Notification, error) {
	sess, err := s.getSession(params.SessionID)
	if err != nil {
		return domain.Notification{}, err
	}

	video, err := s.catalog.Video(sess.VideoID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("failed to get video: %w", err)
	}

	comment, err := video.Comment(params.CommentID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("%w: %s", err, params.CommentID)
	}

	s.recorder.IntentHandled(IntentReplyComment)
	slog.DebugContext(ctx, "reply requested",
		"session_id", params.SessionID,
		"comment_id", comment.ID,
		"username", comment.Username,
	)

	return domain.Notification{
		Title:       "Reply",
		Description: "Reply functionality not implemented in this demo.",
	}, nil
}

type PostCommentParams struct {
	SessionID string
	Text      string
}

// PostComment acknowledges a new top level comment. The text is dropped.
func (s *service) PostComment(ctx context.Context, params *PostCommentParams) (domain.Notification, error) {
	sess, err := s.getSession(params.SessionID)
	if err != nil {
		return domain.Notification{}, err
	}

	s.recorder.IntentHandled(IntentPostComment)
	slog.DebugContext(ctx, "comment posted", "session_id", sess.ID, "length", len(params.Text))

	return domain.Notification{
		Title:       "Comment Posted (Demo)",
		Description: "Your comment would appear here.",
	}, nil
}

package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streamify/server/internal/domain"
)

var ErrUnknownAction = errors.New("unknown action")

type Action string

const (
	ActionWatchLater    Action = "watch-later"
	ActionNotInterested Action = "not-interested"
	ActionSave          Action = "save"
	ActionSubscribe     Action = "subscribe"
	ActionShare         Action = "share"
)

type CreatorAction string

const (
	CreatorActionEdit      CreatorAction = "edit"
	CreatorActionDelete    CreatorAction = "delete"
	CreatorActionAnalytics CreatorAction = "analytics"
)

type VideoActionParams struct {
	VideoID string
	Action  Action
}

// VideoAction acknowledges a viewer action on a listed video. Nothing is
// stored; the result is a notification for the viewer.
func (s *service) VideoAction(ctx context.Context, params *VideoActionParams) (domain.Notification, error) {
	video, err := s.catalog.Video(params.VideoID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("failed to get video: %w", err)
	}

	var n domain.Notification
	switch params.Action {
	case ActionWatchLater:
		n = domain.Notification{
			Title:       "Added to Watch Later",
			Description: fmt.Sprintf("%q has been added to your Watch Later list.", video.Title),
		}
	case ActionNotInterested:
		n = domain.Notification{
			Title:       "Feedback Received",
			Description: fmt.Sprintf("We'll show less content like %q.", video.Title),
		}
	case ActionSave:
		n = domain.Notification{
			Title:       "Video Saved",
			Description: "This video has been added to your 'Watch Later' list.",
		}
	case ActionSubscribe:
		n = domain.Notification{
			Title:       "Subscribed!",
			Description: fmt.Sprintf("You've subscribed to %s.", video.ChannelName),
		}
	case ActionShare:
		n = domain.Notification{
			Title:       "Share",
			Description: fmt.Sprintf("Sharing %q is not available in this demo.", video.Title),
		}
	default:
		return domain.Notification{}, fmt.Errorf("%w: %s", ErrUnknownAction, params.Action)
	}

	s.recorder.NotificationSent(string(params.Action))
	slog.InfoContext(ctx, "video action", "video_id", video.ID, "action", params.Action)

	return n, nil
}

type CreatorActionParams struct {
	VideoID string
	Action  CreatorAction
}

// CreatorAction acknowledges a creator dashboard action. Videos are never
// modified.
func (s *service) CreatorAction(ctx context.Context, params *CreatorActionParams) (domain.Notification, error) {
	video, err := s.catalog.CreatorVideo(params.VideoID)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("failed to get creator video: %w", err)
	}

	var title string
	switch params.Action {
	case CreatorActionEdit:
		title = "Edit video"
	case CreatorActionDelete:
		title = "Delete video"
	case CreatorActionAnalytics:
		title = "Video analytics"
	default:
		return domain.Notification{}, fmt.Errorf("%w: %s", ErrUnknownAction, params.Action)
	}

	s.recorder.NotificationSent("creator-" + string(params.Action))
	slog.InfoContext(ctx, "creator action", "video_id", video.ID, "action", params.Action)

	return domain.Notification{
		Title:       title,
		Description: fmt.Sprintf("%s is not available in this demo for %q.", title, video.Title),
	}, nil
}

// Upload acknowledges the dashboard upload button. There is no upload flow.
func (s *service) Upload(ctx context.Context) domain.Notification {
	s.recorder.NotificationSent("creator-upload")
	slog.InfoContext(ctx, "upload requested")

	return domain.Notification{
		Title:       "Upload Video",
		Description: "This would lead to the video upload flow.",
	}
}

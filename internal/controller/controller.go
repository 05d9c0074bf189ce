package controller

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/service/feed"
	"github.com/streamify/server/internal/service/watch"
	"github.com/streamify/server/internal/view"
	"github.com/streamify/server/pkg/validator"
	"github.com/streamify/server/pkg/wsrouter"
)

type iWatchService interface {
	StartSession(context.Context, *watch.StartSessionParams) (watch.StartSessionResponse, error)
	EndSession(ctx context.Context, sessionID string) error
	TogglePlayPause(context.Context, *watch.SessionParams) (watch.PlayerResponse, error)
	Seek(context.Context, *watch.SeekParams) (watch.PlayerResponse, error)
	SetVolume(context.Context, *watch.SetVolumeParams) (watch.PlayerResponse, error)
	ToggleMute(context.Context, *watch.SessionParams) (watch.PlayerResponse, error)
	SetPlaybackRate(context.Context, *watch.SetPlaybackRateParams) (watch.PlayerResponse, error)
	SetQuality(context.Context, *watch.SetQualityParams) (watch.PlayerResponse, error)
	ToggleFullscreen(context.Context, *watch.SessionParams) (watch.PlayerResponse, error)
	LikeComment(context.Context, *watch.CommentParams) (watch.ReactionResponse, error)
	DislikeComment(context.Context, *watch.CommentParams) (watch.ReactionResponse, error)
	ReplyComment(context.Context, *watch.CommentParams) (domain.Notification, error)
	PostComment(context.Context, *watch.PostCommentParams) (domain.Notification, error)
}

type iFeedService interface {
	Home(context.Context) feed.HomePage
	Search(context.Context, *feed.SearchParams) catalog.SearchResult
	Dashboard(context.Context, *feed.DashboardParams) feed.DashboardPage
	Watch(ctx context.Context, videoID string) (feed.WatchPage, error)
	VideoAction(context.Context, *feed.VideoActionParams) (domain.Notification, error)
	CreatorAction(context.Context, *feed.CreatorActionParams) (domain.Notification, error)
	Upload(context.Context) domain.Notification
}

type iRenderer interface {
	Render(w io.Writer, name string, page view.Page) error
}

type iMetrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

type Config struct {
	CORSOrigins   []string
	PlayerOptions domain.PlayerOptions
}

type controller struct {
	watchService iWatchService
	feedService  iFeedService
	renderer     iRenderer
	metrics      iMetrics
	upgrader     websocket.Upgrader
	validate     *validator.Validator
	wsmux        *wsrouter.WSRouter
	logger       *slog.Logger
	cfg          Config
}

func NewController(watchService iWatchService, feedService iFeedService, renderer iRenderer, metrics iMetrics, logger *slog.Logger, cfg Config) *controller {
	c := &controller{
		watchService: watchService,
		feedService:  feedService,
		renderer:     renderer,
		metrics:      metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
		cfg:      cfg,
	}
	c.wsmux = c.getWSRouter()

	return c
}

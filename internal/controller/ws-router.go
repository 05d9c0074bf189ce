package controller

import (
	"github.com/streamify/server/internal/service/watch"
	"github.com/streamify/server/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.wsRequestIdWSMw(), c.loggerWSMw(), c.validationWSMw())
	mux.OnError(c.handleWSError)

	wsrouter.Handle(mux, "ALIVE", c.handleAlive)

	// player
	wsrouter.Handle(mux, watch.IntentTogglePlayPause, c.handleTogglePlayPause)
	wsrouter.Handle(mux, watch.IntentSeek, c.handleSeek)
	wsrouter.Handle(mux, watch.IntentSetVolume, c.handleSetVolume)
	wsrouter.Handle(mux, watch.IntentToggleMute, c.handleToggleMute)
	wsrouter.Handle(mux, watch.IntentSetPlaybackRate, c.handleSetPlaybackRate)
	wsrouter.Handle(mux, watch.IntentSetQuality, c.handleSetQuality)
	wsrouter.Handle(mux, watch.IntentToggleFullscreen, c.handleToggleFullscreen)

	// comments
	wsrouter.Handle(mux, watch.IntentLikeComment, c.handleLikeComment)
	wsrouter.Handle(mux, watch.IntentDislikeComment, c.handleDislikeComment)
	wsrouter.Handle(mux, watch.IntentReplyComment, c.handleReplyComment)
	wsrouter.Handle(mux, watch.IntentPostComment, c.handlePostComment)

	return mux
}

package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/service/feed"
	"github.com/streamify/server/pkg/rest"
)

func (c controller) listVideos(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": c.feedService.Home(r.Context())})
}

func (c controller) searchVideos(w http.ResponseWriter, r *http.Request) {
	result := c.feedService.Search(r.Context(), &feed.SearchParams{
		Query: r.URL.Query().Get("q"),
		Page:  c.getPageParam(r),
	})

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": result})
}

func (c controller) getVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video-id")

	page, err := c.feedService.Watch(r.Context(), videoID)
	if err != nil {
		c.writeServiceError(w, r, "getVideo", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": page})
}

type videoActionInput struct {
	VideoID string `json:"video_id" validate:"required,max=64"`
	Action  string `json:"action" validate:"required,oneof=watch-later not-interested save subscribe share"`
}

func (c controller) videoAction(w http.ResponseWriter, r *http.Request) {
	input := videoActionInput{
		VideoID: chi.URLParam(r, "video-id"),
		Action:  chi.URLParam(r, "action"),
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(r.Context(), "videoAction", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	notification, err := c.feedService.VideoAction(r.Context(), &feed.VideoActionParams{
		VideoID: input.VideoID,
		Action:  feed.Action(input.Action),
	})
	if err != nil {
		c.writeServiceError(w, r, "videoAction", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": notification})
}

type creatorActionInput struct {
	VideoID string `json:"video_id" validate:"required,max=64"`
	Action  string `json:"action" validate:"required,oneof=edit delete analytics"`
}

func (c controller) creatorAction(w http.ResponseWriter, r *http.Request) {
	input := creatorActionInput{
		VideoID: chi.URLParam(r, "video-id"),
		Action:  chi.URLParam(r, "action"),
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.InfoContext(r.Context(), "creatorAction", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	notification, err := c.feedService.CreatorAction(r.Context(), &feed.CreatorActionParams{
		VideoID: input.VideoID,
		Action:  feed.CreatorAction(input.Action),
	})
	if err != nil {
		c.writeServiceError(w, r, "creatorAction", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": notification})
}

func (c controller) uploadVideo(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": c.feedService.Upload(r.Context())})
}

func (c controller) writeServiceError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	switch {
	case errors.Is(err, domain.ErrVideoNotFound):
		c.logger.InfoContext(r.Context(), handler, "error", err)
		rest.WriteError(w, http.StatusNotFound, domain.ErrVideoNotFound.Error())
	case errors.Is(err, feed.ErrUnknownAction):
		c.logger.InfoContext(r.Context(), handler, "error", err)
		rest.WriteError(w, http.StatusBadRequest, feed.ErrUnknownAction.Error())
	default:
		c.logger.ErrorContext(r.Context(), handler, "error", err)
		rest.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

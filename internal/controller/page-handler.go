package controller

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/service/feed"
	"github.com/streamify/server/internal/view"
	"github.com/streamify/server/pkg/rest"
)

func (c controller) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	page.Nonce = c.getNonceFromCtx(r.Context())

	var buf bytes.Buffer
	if err := c.renderer.Render(&buf, name, page); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		c.logger.DebugContext(r.Context(), "failed to write page", "page", name, "error", err)
	}
}

func (c controller) homePage(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, view.PageHome, view.Page{
		Section: "home",
		Content: c.feedService.Home(r.Context()),
	})
}

func (c controller) searchPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	result := c.feedService.Search(r.Context(), &feed.SearchParams{
		Query: query,
		Page:  c.getPageParam(r),
	})

	section := ""
	if strings.EqualFold(result.Query, "trending") {
		section = "trending"
	}

	c.render(w, r, http.StatusOK, view.PageSearch, view.Page{
		Title:   result.Query,
		Query:   result.Query,
		Section: section,
		Content: result,
	})
}

func (c controller) dashboardPage(w http.ResponseWriter, r *http.Request) {
	page := c.feedService.Dashboard(r.Context(), &feed.DashboardParams{
		Tab: r.URL.Query().Get("tab"),
	})

	c.render(w, r, http.StatusOK, view.PageDashboard, view.Page{
		Title:   "Dashboard",
		Section: string(page.Tab),
		Content: page,
	})
}

func (c controller) watchPage(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("v")

	page, err := c.feedService.Watch(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			c.render(w, r, http.StatusNotFound, view.PageNotFound, view.Page{
				Title:   "Video not found",
				Content: "This video isn't available.",
			})
			return
		}

		c.logger.ErrorContext(r.Context(), "failed to load watch page", "video_id", videoID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	c.render(w, r, http.StatusOK, view.PageWatch, view.Page{
		Title: page.Video.Title,
		Content: view.WatchContent{
			Video:   page.Video,
			Related: page.Related,
			Player:  domain.NewPlayer(page.Video.DurationSeconds, c.cfg.PlayerOptions),
		},
	})
}

func (c controller) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		rest.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	c.securityHeadersMw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.logger.DebugContext(r.Context(), "page not found", "path", r.URL.Path)
		c.render(w, r, http.StatusNotFound, view.PageNotFound, view.Page{
			Title:   "Page not found",
			Content: "Oops! Page not found",
		})
	})).ServeHTTP(w, r)
}

// getPageParam reads the 1-based page query parameter. Missing or malformed
// values mean the first page.
func (c controller) getPageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}

	return page
}

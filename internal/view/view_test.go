package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/service/feed"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	r, err := NewRenderer(clock)
	require.NoError(t, err)
	return r
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func render(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	return buf.String()
}

func TestRenderHomeShell(t *testing.T) {
	r := newTestRenderer(t)
	c := testCatalog(t)

	html := render(t, r, PageHome, Page{
		Nonce:   "n0nce",
		Section: "home",
		Content: feed.HomePage{Videos: c.Feed()},
	})

	assert.Contains(t, html, "<title>Streamify</title>")
	assert.Contains(t, html, `<style nonce="n0nce">`)
	assert.Contains(t, html, `<a href="/" class="active">Home</a>`)
	assert.Contains(t, html, "&copy; 2026 Streamify")
	assert.Contains(t, html, "1.5M views")
	assert.Contains(t, html, "2.3B views")
	assert.Contains(t, html, "999 views")
	assert.Contains(t, html, `href="/watch?v=vid001"`)
	assert.Contains(t, html, `/api/v1/videos/vid001/watch-later`)
	// vid005 has no avatar and falls back to the channel glyph.
	assert.Contains(t, html, `title="Harmony Hall">H</a>`)
	assert.NotContains(t, html, "ws/watch")
}

func TestRenderSearch(t *testing.T) {
	r := newTestRenderer(t)
	c := testCatalog(t)

	html := render(t, r, PageSearch, Page{
		Title:   "pasta",
		Query:   "pasta",
		Content: c.Search("pasta", 1, 10),
	})
	assert.Contains(t, html, `value="pasta"`)
	assert.Contains(t, html, `Results for "pasta"`)
	assert.Contains(t, html, "Simple Gourmet")
	assert.Contains(t, html, "Page 1 of 1")
	assert.NotContains(t, html, `rel="next"`)

	paged := render(t, r, PageSearch, Page{Content: c.Search("", 2, 3)})
	assert.Contains(t, paged, `href="/search?page=1" rel="prev"`)
	assert.Contains(t, paged, `href="/search?page=3" rel="next"`)

	empty := render(t, r, PageSearch, Page{Query: "zzz", Content: c.Search("zzz", 1, 10)})
	assert.Contains(t, empty, "No results found")
}

func TestRenderDashboard(t *testing.T) {
	r := newTestRenderer(t)
	c := testCatalog(t)

	mine := render(t, r, PageDashboard, Page{Content: feed.DashboardPage{
		Tab:           feed.TabMyVideos,
		CreatorVideos: c.CreatorVideos(),
	}})
	assert.Contains(t, mine, `class="badge badge-default">Public`)
	assert.Contains(t, mine, `class="badge badge-destructive">Private`)
	assert.Contains(t, mine, `class="badge badge-secondary">Unlisted`)
	assert.Contains(t, mine, "<td>12,503</td>")
	assert.NotContains(t, mine, "13K")
	assert.Contains(t, mine, `data-action-url="/api/v1/creator/upload">Upload Video`)
	assert.Contains(t, mine, "/api/v1/creator/videos/userVid001/analytics")
	assert.Contains(t, mine, `aria-current="page">My Videos`)

	lib := c.Library()
	library := render(t, r, PageDashboard, Page{Content: feed.DashboardPage{Tab: feed.TabLibrary, Library: &lib}})
	assert.Contains(t, library, `<section id="watch-later">`)
	assert.Contains(t, library, "Liked Videos")
	assert.Contains(t, library, "121K views")

	subs := render(t, r, PageDashboard, Page{Content: feed.DashboardPage{Tab: feed.TabSubscriptions}})
	assert.Contains(t, subs, "Channels you subscribe to will show up here.")
}

func TestRenderWatch(t *testing.T) {
	r := newTestRenderer(t)
	c := testCatalog(t)

	video, err := c.Video("nz-drone")
	require.NoError(t, err)
	related, err := c.Related("nz-drone")
	require.NoError(t, err)

	player := domain.NewPlayer(video.DurationSeconds, domain.PlayerOptions{Volume: domain.DefaultVolume}).Seek(75)

	html := render(t, r, PageWatch, Page{
		Title: video.Title,
		Nonce: "abc",
		Content: WatchContent{
			Video:   video,
			Related: related,
			Player:  player,
		},
	})

	assert.Contains(t, html, `data-video-id="nz-drone"`)
	assert.Contains(t, html, `<span data-field="current-time">01:15</span>`)
	assert.Contains(t, html, `<span data-field="duration">05:56</span>`)
	assert.Contains(t, html, `<option value="1" selected>Normal</option>`)
	assert.Contains(t, html, `<option value="0.5">0.5x</option>`)
	assert.Contains(t, html, `<option value="Auto" selected>Auto</option>`)
	assert.Contains(t, html, "2.3M views")
	assert.Contains(t, html, "3 Comments")
	assert.Contains(t, html, `data-comment-id="comment3" style="margin-left: 2.5rem"`)
	assert.Contains(t, html, `<span data-field="likes">28</span>`)
	assert.Contains(t, html, "Patagonia")
	assert.Contains(t, html, `<script nonce="abc">`)
	assert.Contains(t, html, "/api/v1/ws/watch/")
	assert.Contains(t, html, `data-action-url="/api/v1/videos/nz-drone/share">Share`)
	assert.Contains(t, html, `placeholder="Add a public comment..."`)
	assert.Contains(t, html, "POST_COMMENT")
	assert.Contains(t, html, "if (p.version <= version) { return; }")
}

func TestRenderNotFound(t *testing.T) {
	r := newTestRenderer(t)

	html := render(t, r, PageNotFound, Page{Content: "Video not found."})
	assert.Contains(t, html, "Video not found.")
	assert.Contains(t, html, "Return to Home")
}

func TestRenderUnknownPage(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "nope", Page{})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

package catalog

import (
	"strings"

	"github.com/streamify/server/internal/domain"
)

type SearchResult struct {
	Query      string                `json:"query"`
	Videos     []domain.VideoSummary `json:"videos"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

func (r SearchResult) HasPrev() bool { return r.Page > 1 }
func (r SearchResult) HasNext() bool { return r.Page < r.TotalPages }

// Search filters the search corpus by a case-insensitive title substring. An
// empty query matches everything. page is 1-based and clamped into range.
func (c *Catalog) Search(query string, page, pageSize int) SearchResult {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := make([]domain.VideoSummary, 0, len(c.search))
	for _, id := range c.search {
		v := c.videos[id].VideoSummary
		if needle == "" || strings.Contains(strings.ToLower(v.Title), needle) {
			matched = append(matched, v)
		}
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	page = max(1, min(page, totalPages))

	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))

	return SearchResult{
		Query:      strings.TrimSpace(query),
		Videos:     matched[start:end],
		Total:      len(matched),
		Page:       page,
		TotalPages: totalPages,
	}
}

type Library struct {
	History    []domain.VideoSummary `json:"history"`
	WatchLater []domain.VideoSummary `json:"watch_later"`
	Liked      []domain.VideoSummary `json:"liked"`
}

// Library splits the library list into the dashboard sections.
func (c *Catalog) Library() Library {
	all := c.summaries(c.library)
	return Library{
		History:    window(all, 0, 3),
		WatchLater: window(all, 1, 3),
		Liked:      window(all, 0, 2),
	}
}

func window[T any](s []T, from, to int) []T {
	from = min(from, len(s))
	to = min(to, len(s))
	out := make([]T, to-from)
	copy(out, s[from:to])
	return out
}

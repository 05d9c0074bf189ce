package feed

import (
	"context"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
)

type Tab string

const (
	TabMyVideos      Tab = "my-videos"
	TabLibrary       Tab = "library"
	TabSubscriptions Tab = "subscriptions"
)

var Tabs = []Tab{TabMyVideos, TabLibrary, TabSubscriptions}

// ParseTab returns the dashboard tab named by s, falling back to my-videos.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabMyVideos
}

func (t Tab) Label() string {
	switch t {
	case TabLibrary:
		return "Library"
	case TabSubscriptions:
		return "Subscriptions"
	default:
		return "My Videos"
	}
}

type DashboardParams struct {
	Tab string
}

type DashboardPage struct {
	Tab           Tab                   `json:"tab"`
	CreatorVideos []domain.CreatorVideo `json:"creator_videos,omitempty"`
	Library       *catalog.Library      `json:"library,omitempty"`
}

// Dashboard builds the content of the selected tab only.
func (s *service) Dashboard(_ context.Context, params *DashboardParams) DashboardPage {
	page := DashboardPage{Tab: ParseTab(params.Tab)}

	switch page.Tab {
	case TabMyVideos:
		page.CreatorVideos = s.catalog.CreatorVideos()
	case TabLibrary:
		lib := s.catalog.Library()
		page.Library = &lib
	}

	return page
}

package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
)

type iCatalog interface {
	Feed() []domain.VideoSummary
	Search(query string, page, pageSize int) catalog.SearchResult
	Video(id string) (domain.WatchVideo, error)
	Related(id string) ([]domain.VideoSummary, error)
	Library() catalog.Library
	CreatorVideos() []domain.CreatorVideo
	CreatorVideo(id string) (domain.CreatorVideo, error)
}

type iRecorder interface {
	NotificationSent(action string)
}

type service struct {
	catalog  iCatalog
	recorder iRecorder
	pageSize int
}

func NewService(videos iCatalog, recorder iRecorder, pageSize int) *service {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	return &service{
		catalog:  videos,
		recorder: recorder,
		pageSize: pageSize,
	}
}

type HomePage struct {
	Videos []domain.VideoSummary `json:"videos"`
}

func (s *service) Home(_ context.Context) HomePage {
	return HomePage{Videos: s.catalog.Feed()}
}

type SearchParams struct {
	Query string
	Page  int
}

func (s *service) Search(ctx context.Context, params *SearchParams) catalog.SearchResult {
	result := s.catalog.Search(params.Query, params.Page, s.pageSize)
	slog.DebugContext(ctx, "search", "query", result.Query, "page", result.Page, "total", result.Total)
	return result
}

type WatchPage struct {
	Video   domain.WatchVideo     `json:"video"`
	Related []domain.VideoSummary `json:"related"`
}

func (s *service) Watch(_ context.Context, videoID string) (WatchPage, error) {
	video, err := s.catalog.Video(videoID)
	if err != nil {
		return WatchPage{}, fmt.Errorf("failed to get video: %w", err)
	}

	related, err := s.catalog.Related(videoID)
	if err != nil {
		return WatchPage{}, fmt.Errorf("failed to get related videos: %w", err)
	}

	return WatchPage{Video: video, Related: related}, nil
}

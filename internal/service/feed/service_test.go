package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamify/server/internal/catalog"
	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/metrics"
)

func newTestService(t *testing.T, pageSize int) *service {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)

	return NewService(c, metrics.New(), pageSize)
}

func TestHome(t *testing.T) {
	page := newTestService(t, 0).Home(context.Background())
	assert.Len(t, page.Videos, 8)
}

func TestSearchUsesPageSize(t *testing.T) {
	s := newTestService(t, 5)

	result := s.Search(context.Background(), &SearchParams{Page: 2})
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Videos, 3)

	result = s.Search(context.Background(), &SearchParams{Query: "pasta"})
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "search_vid_004", result.Videos[0].ID)
}

func TestWatch(t *testing.T) {
	s := newTestService(t, 0)

	page, err := s.Watch(context.Background(), "nz-drone")
	require.NoError(t, err)
	assert.Equal(t, "EpicDroneJourneys", page.Video.ChannelName)
	assert.Len(t, page.Related, 4)

	_, err = s.Watch(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestDashboardTabs(t *testing.T) {
	s := newTestService(t, 0)
	ctx := context.Background()

	mine := s.Dashboard(ctx, &DashboardParams{})
	assert.Equal(t, TabMyVideos, mine.Tab)
	assert.Len(t, mine.CreatorVideos, 3)
	assert.Nil(t, mine.Library)

	lib := s.Dashboard(ctx, &DashboardParams{Tab: "library"})
	require.NotNil(t, lib.Library)
	assert.Len(t, lib.Library.WatchLater, 2)
	assert.Empty(t, lib.CreatorVideos)

	subs := s.Dashboard(ctx, &DashboardParams{Tab: "subscriptions"})
	assert.Equal(t, TabSubscriptions, subs.Tab)
	assert.Equal(t, "Subscriptions", subs.Tab.Label())

	assert.Equal(t, TabMyVideos, ParseTab("bogus"))
}

func TestVideoAction(t *testing.T) {
	s := newTestService(t, 0)
	ctx := context.Background()

	n, err := s.VideoAction(ctx, &VideoActionParams{VideoID: "vid002", Action: ActionWatchLater})
	require.NoError(t, err)
	assert.Equal(t, "Added to Watch Later", n.Title)
	assert.Contains(t, n.Description, "Mastering Sourdough")

	n, err = s.VideoAction(ctx, &VideoActionParams{VideoID: "vid002", Action: ActionNotInterested})
	require.NoError(t, err)
	assert.Equal(t, "Feedback Received", n.Title)

	n, err = s.VideoAction(ctx, &VideoActionParams{VideoID: "nz-drone", Action: ActionSubscribe})
	require.NoError(t, err)
	assert.Equal(t, "You've subscribed to EpicDroneJourneys.", n.Description)

	n, err = s.VideoAction(ctx, &VideoActionParams{VideoID: "nz-drone", Action: ActionShare})
	require.NoError(t, err)
	assert.Equal(t, "Share", n.Title)
	assert.Contains(t, n.Description, "Journey Through New Zealand")

	_, err = s.VideoAction(ctx, &VideoActionParams{VideoID: "vid002", Action: "download"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = s.VideoAction(ctx, &VideoActionParams{VideoID: "missing", Action: ActionSave})
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestCreatorAction(t *testing.T) {
	s := newTestService(t, 0)
	ctx := context.Background()

	n, err := s.CreatorAction(ctx, &CreatorActionParams{VideoID: "userVid002", Action: CreatorActionAnalytics})
	require.NoError(t, err)
	assert.Equal(t, "Video analytics", n.Title)

	_, err = s.CreatorAction(ctx, &CreatorActionParams{VideoID: "userVid002", Action: "publish"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = s.CreatorAction(ctx, &CreatorActionParams{VideoID: "vid001", Action: CreatorActionEdit})
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestUpload(t *testing.T) {
	s := newTestService(t, 0)

	n := s.Upload(context.Background())
	assert.Equal(t, "Upload Video", n.Title)
	assert.Equal(t, "This would lead to the video upload flow.", n.Description)
}

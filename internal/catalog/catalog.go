package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/streamify/server/internal/domain"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

const DefaultPageSize = 12

var (
	ErrDuplicateVideo = errors.New("duplicate video id")
	ErrUnknownVideo   = errors.New("unknown video reference")
)

type file struct {
	Feed          []string              `yaml:"feed"`
	Search        []string              `yaml:"search"`
	Library       []string              `yaml:"library"`
	Videos        []domain.WatchVideo   `yaml:"videos"`
	CreatorVideos []domain.CreatorVideo `yaml:"creator_videos"`
}

// Catalog is the read-only sample data every page is built from.
type Catalog struct {
	videos        map[string]domain.WatchVideo
	feed          []string
	search        []string
	library       []string
	creatorVideos []domain.CreatorVideo
}

// Default returns the catalog embedded into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file from path. An empty path loads the embedded one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		videos:        make(map[string]domain.WatchVideo, len(f.Videos)),
		feed:          f.Feed,
		search:        f.Search,
		library:       f.Library,
		creatorVideos: f.CreatorVideos,
	}

	for _, v := range f.Videos {
		if _, ok := c.videos[v.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVideo, v.ID)
		}
		if v.DurationSeconds == 0 {
			v.DurationSeconds = parseDurationLabel(v.Duration)
		}
		c.videos[v.ID] = v
	}

	for _, list := range [][]string{c.feed, c.search, c.library} {
		if err := c.checkRefs(list); err != nil {
			return nil, err
		}
	}
	for _, v := range c.videos {
		if err := c.checkRefs(v.Related); err != nil {
			return nil, fmt.Errorf("related of %s: %w", v.ID, err)
		}
	}

	return c, nil
}

func (c *Catalog) checkRefs(ids []string) error {
	for _, id := range ids {
		if _, ok := c.videos[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownVideo, id)
		}
	}
	return nil
}

func (c *Catalog) summaries(ids []string) []domain.VideoSummary {
	result := make([]domain.VideoSummary, 0, len(ids))
	for _, id := range ids {
		result = append(result, c.videos[id].VideoSummary)
	}
	return result
}

func (c *Catalog) Feed() []domain.VideoSummary {
	return c.summaries(c.feed)
}

func (c *Catalog) Video(id string) (domain.WatchVideo, error) {
	v, ok := c.videos[id]
	if !ok {
		return domain.WatchVideo{}, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, id)
	}
	return v, nil
}

func (c *Catalog) Related(id string) ([]domain.VideoSummary, error) {
	v, err := c.Video(id)
	if err != nil {
		return nil, err
	}
	return c.summaries(v.Related), nil
}

func (c *Catalog) CreatorVideos() []domain.CreatorVideo {
	result := make([]domain.CreatorVideo, len(c.creatorVideos))
	copy(result, c.creatorVideos)
	return result
}

func (c *Catalog) CreatorVideo(id string) (domain.CreatorVideo, error) {
	for _, v := range c.creatorVideos {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.CreatorVideo{}, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, id)
}

// parseDurationLabel turns "MM:SS" or "HH:MM:SS" into seconds. Anything
// unparsable is 0, which leaves the player unplayable.
func parseDurationLabel(label string) float64 {
	if label == "" {
		return 0
	}

	var total int
	for _, part := range strings.Split(label, ":") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}

	return float64(total)
}

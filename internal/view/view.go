package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/streamify/server/internal/domain"
	"github.com/streamify/server/internal/format"
	"github.com/streamify/server/internal/service/feed"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

const (
	PageHome      = "home"
	PageSearch    = "search"
	PageDashboard = "dashboard"
	PageWatch     = "watch"
	PageNotFound  = "not_found"
)

var pages = []string{PageHome, PageSearch, PageDashboard, PageWatch, PageNotFound}

// Page is what the shell needs around every page. Content is the data of the
// page template itself.
type Page struct {
	Title   string
	Nonce   string
	Query   string
	Section string
	Year    int
	Content any
}

// WatchContent is the data of the watch page.
type WatchContent struct {
	Video   domain.WatchVideo
	Related []domain.VideoSummary
	Player  domain.Player
}

type Renderer struct {
	templates map[string]*template.Template
	clock     clockwork.Clock
}

func NewRenderer(clock clockwork.Clock) (*Renderer, error) {
	base, err := template.New("layout").Funcs(funcs()).ParseFS(templatesFS, "templates/layout.gohtml", "templates/partials.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{
		templates: make(map[string]*template.Template, len(pages)),
		clock:     clock,
	}

	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}

		if _, err := t.ParseFS(templatesFS, "templates/"+name+".gohtml"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		r.templates[name] = t
	}

	return r, nil
}

// Render executes the named page inside the shell. Output is buffered so a
// failing template never produces a half-written page.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	if page.Year == 0 {
		page.Year = r.clock.Now().Year()
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

type librarySection struct {
	ID     string
	Title  string
	Videos []domain.VideoSummary
	Empty  string
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"viewCount":    format.ViewCount,
		"count":        format.Count,
		"formatTime":   format.Time,
		"initials":     format.Initials,
		"channelGlyph": format.ChannelGlyph,
		"rateLabel":    format.RateLabel,
		"indent": func(c domain.Comment) float64 {
			return float64(c.EffectiveIndentation()) * 2.5
		},
		"capitalize": func(v domain.Visibility) string {
			s := string(v)
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"add": func(a, b int) int {
			return a + b
		},
		"searchURL": func(query string, page int) string {
			v := url.Values{}
			if query != "" {
				v.Set("q", query)
			}
			v.Set("page", strconv.Itoa(page))
			return "/search?" + v.Encode()
		},
		"tabs": func() []feed.Tab {
			return feed.Tabs
		},
		"section": func(id, title string, videos []domain.VideoSummary, empty string) librarySection {
			return librarySection{ID: id, Title: title, Videos: videos, Empty: empty}
		},
	}
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrUnknownVisibility = errors.New("unknown visibility")
)

const MaxIndentationLevel = 5

// VideoSummary is what a listing card shows. It is built from static data and
// never mutated.
type VideoSummary struct {
	ID               string `json:"id" yaml:"id"`
	ThumbnailURL     string `json:"thumbnail_url" yaml:"thumbnail_url"`
	Title            string `json:"title" yaml:"title"`
	ChannelName      string `json:"channel_name" yaml:"channel_name"`
	ChannelAvatarURL string `json:"channel_avatar_url,omitempty" yaml:"channel_avatar_url"`
	ChannelURL       string `json:"channel_url" yaml:"channel_url"`
	ViewCount        uint64 `json:"view_count" yaml:"view_count"`
	UploadDate       string `json:"upload_date" yaml:"upload_date"`
	Duration         string `json:"duration,omitempty" yaml:"duration"`
}

func (v VideoSummary) WatchURL() string {
	return "/watch?v=" + v.ID
}

// WatchVideo is the item loaded into the watch page.
type WatchVideo struct {
	VideoSummary    `yaml:",inline"`
	DurationSeconds float64   `json:"duration_seconds" yaml:"duration_seconds"`
	Description     string    `json:"description" yaml:"description"`
	Subscribers     string    `json:"subscribers" yaml:"subscribers"`
	Comments        []Comment `json:"comments" yaml:"comments"`
	Related         []string  `json:"related" yaml:"related"`
}

func (v WatchVideo) Comment(id string) (Comment, error) {
	for _, c := range v.Comments {
		if c.ID == id {
			return c, nil
		}
	}
	return Comment{}, ErrCommentNotFound
}

type Comment struct {
	ID               string `json:"id" yaml:"id"`
	AvatarURL        string `json:"avatar_url" yaml:"avatar_url"`
	Username         string `json:"username" yaml:"username"`
	Text             string `json:"text" yaml:"text"`
	Timestamp        string `json:"timestamp" yaml:"timestamp"`
	Likes            int    `json:"likes" yaml:"likes"`
	Dislikes         int    `json:"dislikes" yaml:"dislikes"`
	IndentationLevel int    `json:"indentation_level" yaml:"indentation_level"`
	Liked            bool   `json:"liked" yaml:"liked"`
	Disliked         bool   `json:"disliked" yaml:"disliked"`
}

func (c Comment) EffectiveIndentation() int {
	return min(max(c.IndentationLevel, 0), MaxIndentationLevel)
}

func (c Comment) InitialReaction() Reaction {
	return NewReaction(c.Likes, c.Dislikes, c.Liked, c.Disliked)
}

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(s))); v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVisibility, s)
	}
}

func (v *Visibility) UnmarshalText(text []byte) error {
	parsed, err := ParseVisibility(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

// BadgeVariant maps a visibility to the badge style used on creator rows.
func (v Visibility) BadgeVariant() string {
	switch v {
	case VisibilityPublic:
		return "default"
	case VisibilityPrivate:
		return "destructive"
	case VisibilityUnlisted:
		return "secondary"
	default:
		return "outline"
	}
}

// CreatorVideo is one row of the creator dashboard.
type CreatorVideo struct {
	ID           string     `json:"id" yaml:"id"`
	ThumbnailURL string     `json:"thumbnail_url" yaml:"thumbnail_url"`
	Title        string     `json:"title" yaml:"title"`
	Views        uint64     `json:"views" yaml:"views"`
	Likes        uint64     `json:"likes" yaml:"likes"`
	Comments     uint64     `json:"comments" yaml:"comments"`
	Visibility   Visibility `json:"visibility" yaml:"visibility"`
}

package domain

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

var (
	DefaultPlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}
	DefaultQualities     = []string{"Auto", "1080p", "720p", "480p", "360p"}
)

const (
	DefaultVolume       = 0.75
	DefaultPlaybackRate = 1
	DefaultQuality      = "Auto"
)

// Player is the transport state of one loaded video. Transitions are value
// methods returning the next state; rejected input returns the receiver
// unchanged.
type Player struct {
	CurrentTime  float64   `json:"current_time"`
	Duration     float64   `json:"duration"`
	IsPlaying    bool      `json:"is_playing"`
	Volume       float64   `json:"volume"`
	IsMuted      bool      `json:"is_muted"`
	PlaybackRate float64   `json:"playback_rate"`
	Quality      string    `json:"quality"`
	IsFullscreen bool      `json:"is_fullscreen"`
	Rates        []float64 `json:"available_playback_rates"`
	Qualities    []string  `json:"available_qualities"`
}

type PlayerOptions struct {
	Rates     []float64
	Qualities []string
	Volume    float64
}

// NewPlayer creates a paused player at position zero. Empty option sets fall
// back to the defaults; the initial rate and quality fall back to the first
// member of their set when the default is not allowed.
func NewPlayer(duration float64, opts PlayerOptions) Player {
	rates := opts.Rates
	if len(rates) == 0 {
		rates = DefaultPlaybackRates
	}
	qualities := opts.Qualities
	if len(qualities) == 0 {
		qualities = DefaultQualities
	}

	rate := float64(DefaultPlaybackRate)
	if !slices.Contains(rates, rate) {
		rate = rates[0]
	}
	quality := DefaultQuality
	if !slices.Contains(qualities, quality) {
		quality = qualities[0]
	}

	if math.IsNaN(duration) || duration < 0 {
		duration = 0
	}

	return Player{
		CurrentTime:  0,
		Duration:     duration,
		IsPlaying:    false,
		Volume:       clamp(opts.Volume, 0, 1),
		IsMuted:      false,
		PlaybackRate: rate,
		Quality:      quality,
		IsFullscreen: false,
		Rates:        slices.Clone(rates),
		Qualities:    slices.Clone(qualities),
	}
}

func (p Player) TogglePlayPause() Player {
	if p.Duration == 0 {
		return p
	}
	p.IsPlaying = !p.IsPlaying
	return p
}

func (p Player) Seek(target float64) Player {
	if math.IsNaN(target) {
		target = 0
	}
	p.CurrentTime = clamp(target, 0, p.Duration)
	return p
}

// SetVolume clamps v to [0,1]. A strictly positive volume also unmutes;
// exactly zero leaves the mute flag alone.
func (p Player) SetVolume(v float64) Player {
	if math.IsNaN(v) {
		return p
	}
	p.Volume = clamp(v, 0, 1)
	if v > 0 && p.IsMuted {
		p.IsMuted = false
	}
	return p
}

func (p Player) ToggleMute() Player {
	p.IsMuted = !p.IsMuted
	return p
}

// SetPlaybackRate ignores rates outside the allowed set.
func (p Player) SetPlaybackRate(rate float64) Player {
	if !slices.Contains(p.Rates, rate) {
		return p
	}
	p.PlaybackRate = rate
	return p
}

// SetQuality ignores qualities outside the allowed set.
func (p Player) SetQuality(quality string) Player {
	if !slices.Contains(p.Qualities, quality) {
		return p
	}
	p.Quality = quality
	return p
}

func (p Player) ToggleFullscreen() Player {
	p.IsFullscreen = !p.IsFullscreen
	return p
}

// Tick advances the position by delta seconds while playing. Reaching the
// duration stops playback; further ticks are no-ops.
func (p Player) Tick(delta float64) Player {
	if !p.IsPlaying || delta <= 0 || math.IsNaN(delta) {
		return p
	}

	next := p.CurrentTime + delta
	if next >= p.Duration {
		p.CurrentTime = p.Duration
		p.IsPlaying = false
		return p
	}

	p.CurrentTime = next
	return p
}

// EffectiveVolume is the audible level: zero while muted.
func (p Player) EffectiveVolume() float64 {
	if p.IsMuted {
		return 0
	}
	return p.Volume
}

func (p Player) Ended() bool {
	return p.Duration > 0 && p.CurrentTime >= p.Duration
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReactionNormalises(t *testing.T) {
	r := NewReaction(-3, 2, true, true)

	assert.Equal(t, 0, r.Likes)
	assert.Equal(t, 2, r.Dislikes)
	assert.True(t, r.Liked)
	assert.False(t, r.Disliked)
}

func TestLikeTwiceRestores(t *testing.T) {
	r := NewReaction(28, 0, false, false)

	liked := r.Like()
	assert.Equal(t, 29, liked.Likes)
	assert.True(t, liked.Liked)

	assert.Equal(t, r, liked.Like())
}

func TestLikeClearsDislike(t *testing.T) {
	r := NewReaction(5, 3, false, true)

	r = r.Like()
	assert.Equal(t, 6, r.Likes)
	assert.Equal(t, 2, r.Dislikes, "dislike count drops by exactly one")
	assert.True(t, r.Liked)
	assert.False(t, r.Disliked)
}

func TestDislikeClearsLike(t *testing.T) {
	r := NewReaction(5, 3, true, false)

	r = r.Dislike()
	assert.Equal(t, 4, r.Likes)
	assert.Equal(t, 4, r.Dislikes)
	assert.False(t, r.Liked)
	assert.True(t, r.Disliked)
}

func TestDislikeTwiceRestores(t *testing.T) {
	r := NewReaction(1, 1, false, false)
	assert.Equal(t, r, r.Dislike().Dislike())
}

func TestReactionNeverBothSet(t *testing.T) {
	r := NewReaction(0, 0, false, false)
	steps := []func(Reaction) Reaction{
		Reaction.Like, Reaction.Dislike, Reaction.Dislike, Reaction.Like,
		Reaction.Like, Reaction.Like, Reaction.Dislike, Reaction.Like,
	}

	for _, step := range steps {
		r = step(r)
		assert.False(t, r.Liked && r.Disliked)
		assert.GreaterOrEqual(t, r.Likes, 0)
		assert.GreaterOrEqual(t, r.Dislikes, 0)
	}
}

func TestUnlikeNeverNegative(t *testing.T) {
	r := NewReaction(0, 0, true, false).Like()
	assert.Equal(t, 0, r.Likes)
	assert.False(t, r.Liked)
}

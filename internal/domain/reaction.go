package domain

// Reaction is one viewer's like/dislike state on a comment. Liked and
// Disliked are never both true.
type Reaction struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
}

// NewReaction normalises initial counts and flags. If both flags are set the
// like wins.
func NewReaction(likes, dislikes int, liked, disliked bool) Reaction {
	return Reaction{
		Likes:    max(likes, 0),
		Dislikes: max(dislikes, 0),
		Liked:    liked,
		Disliked: disliked && !liked,
	}
}

func (r Reaction) Like() Reaction {
	if r.Liked {
		r.Likes = max(r.Likes-1, 0)
		r.Liked = false
		return r
	}

	r.Likes++
	r.Liked = true
	if r.Disliked {
		r.Dislikes = max(r.Dislikes-1, 0)
		r.Disliked = false
	}
	return r
}

func (r Reaction) Dislike() Reaction {
	if r.Disliked {
		r.Dislikes = max(r.Dislikes-1, 0)
		r.Disliked = false
		return r
	}

	r.Dislikes++
	r.Disliked = true
	if r.Liked {
		r.Likes = max(r.Likes-1, 0)
		r.Liked = false
	}
	return r
}

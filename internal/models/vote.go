package models

import "time"

// Vote directions
const (
	VoteUpvote   = "UPVOTE"
	VoteDownvote = "DOWNVOTE"
)

// Vote represents one user's directional endorsement of one post.
// The (post_id, user_id) pair is unique: a user holds at most one
// Upvote XOR one Downvote on a post at any time.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_vote"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_vote"`
	Direction string    `json:"direction" gorm:"size:10"`
	CreatedAt time.Time `json:"created_at"`
}

// Sign returns the counter contribution of the vote: +1 or -1.
func (v *Vote) Sign() int {
	if v.Direction == VoteDownvote {
		return -1
	}
	return 1
}

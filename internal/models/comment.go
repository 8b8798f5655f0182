package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Text      string    `json:"text" gorm:"type:text"`
	Edited    bool      `json:"edited" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	// Populated per request, not stored
	IsOwnComment bool `json:"is_own_comment" gorm:"-"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID      uint   `json:"postId" validate:"required"`
	CommentText string `json:"commentText" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for editing an existing comment
type UpdateCommentRequest struct {
	CommentID   uint   `json:"commentId" validate:"required"`
	CommentText string `json:"commentText" validate:"required,min=1,max=500"`
}

// DeleteCommentRequest defines the request body for deleting a comment
type DeleteCommentRequest struct {
	CommentID uint `json:"commentId" validate:"required"`
}

package models

import "time"

// Post lifecycle status values
const (
	PostStatusNormal    = "NORMAL"
	PostStatusReported  = "REPORTED"
	PostStatusFulfilled = "FULFILLED"
)

// Post represents a design submission carrying a net vote counter
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    string    `json:"category" gorm:"size:50;index"`
	CounterVote int       `json:"counter_vote" gorm:"default:0"` // always #upvotes - #downvotes
	Archived    bool      `json:"archived" gorm:"default:false;index"`
	Status      string    `json:"status" gorm:"size:20;default:'NORMAL';index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	User     User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Description string `json:"description" validate:"required,min=1,max=2000"`
	Category    string `json:"category" validate:"required,min=1,max=50"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// VoteRequest defines the request body for casting or toggling a vote
type VoteRequest struct {
	PostID uint   `json:"postId" validate:"required"`
	Action string `json:"action" validate:"required,oneof=UPVOTE DOWNVOTE"`
}

// ArchiveRequest defines the request body for toggling a post's archived flag
type ArchiveRequest struct {
	PostID   uint `json:"postId" validate:"required"`
	Archived bool `json:"archived"`
}

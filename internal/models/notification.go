package models

import "time"

// Notification types
const (
	NotificationTypeUpvote          = "UPVOTE"
	NotificationTypeDownvote        = "DOWNVOTE"
	NotificationTypeComment         = "COMMENT"
	NotificationTypeCommunityJoin   = "COMMUNITY_JOIN"
	NotificationTypeCommunityLeave  = "COMMUNITY_LEAVE"
	NotificationTypeCommunityStatus = "COMMUNITY_STATUS"
)

// Notification represents a user-facing activity event. Rows are append-only;
// only the read flag is ever updated.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"` // recipient
	ActorID   *uint     `json:"actor_id,omitempty" gorm:"index"`
	Type      string    `json:"type" gorm:"size:30;index"`
	Message   string    `json:"message"`
	Reason    string    `json:"reason,omitempty"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// MarkReadRequest defines the request body for marking one notification read
type MarkReadRequest struct {
	NotificationID uint `json:"notificationId" validate:"required"`
}

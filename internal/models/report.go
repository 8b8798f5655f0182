package models

import "time"

// Report is a user-submitted flag of a post for admin review.
// Resolution is destructive: the row is deleted when an admin dismisses
// or acts on it, so an open report is simply one that still exists.
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PostID     uint      `json:"post_id" gorm:"index"`
	ReportedBy uint      `json:"reported_by" gorm:"index"`
	Reason     string    `json:"reason" gorm:"size:500"`
	CreatedAt  time.Time `json:"created_at"`

	Post     Post `json:"post" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Reporter User `json:"reporter" gorm:"foreignKey:ReportedBy;constraint:OnDelete:CASCADE"`
}

// AppealRequest is a suspended user's plea to have the suspension lifted
type AppealRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Message   string    `json:"message" gorm:"size:1000"`
	Status    string    `json:"status" gorm:"size:20;default:'pending'"` // pending, accepted, declined
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ReportPostRequest defines the request body for flagging a post
type ReportPostRequest struct {
	PostID uint   `json:"postId" validate:"required"`
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ReviewReportRequest defines the admin request body for resolving a report
type ReviewReportRequest struct {
	ReportID uint   `json:"reportId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=dismiss suspend"`
}

// SuspendUserRequest defines the admin request body for a direct suspension
type SuspendUserRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// SubmitAppealRequest defines the request body for filing an appeal
type SubmitAppealRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

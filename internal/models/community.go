package models

import "time"

// Community status values
const (
	CommunityStatusPending  = "PENDING"
	CommunityStatusApproved = "APPROVE"
	CommunityStatusRejected = "REJECT"
	CommunityStatusInactive = "INACTIVE"
)

// CommunityMember status values; membership rows are toggled, never deleted
const (
	MemberStatusJoined = "joined"
	MemberStatusLeft   = "left"
)

// Community is a named, owned grouping of posts requiring admin approval to become visible
type Community struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     uint      `json:"owner_id" gorm:"index"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:20;default:'PENDING';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner User `json:"owner" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	// Populated per request, not stored
	MemberCount int64 `json:"member_count" gorm:"-"`
}

// CommunityMember ties a user to a community
type CommunityMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user"`
	Status      string    `json:"status" gorm:"size:10;default:'joined'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommunityRequest defines the request body for creating a community
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// MembershipRequest defines the request body for joining or leaving a community
type MembershipRequest struct {
	CommunityID uint `json:"communityId" validate:"required"`
}

// ManageCommunityRequest defines the admin request body for community transitions
type ManageCommunityRequest struct {
	CommunityID uint   `json:"communityId" validate:"required"`
	Action      string `json:"action" validate:"required,oneof=approve reject archive"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
}

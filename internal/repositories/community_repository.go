package repositories

import (
	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/gorm"
)

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(community *models.Community) error
	GetCommunityByID(id uint) (*models.Community, error)
	GetCommunityByName(name string) (*models.Community, error)
	GetApprovedCommunities() ([]models.Community, error)
	SetStatus(communityID uint, status string) error
	GetMembership(communityID, userID uint) (*models.CommunityMember, error)
	UpsertMembership(member *models.CommunityMember) error
	CountMembers(communityID uint) (int64, error)
}

// PostgresCommunityRepository implements CommunityRepository for PostgreSQL
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

// CreateCommunity creates a new community in PostgreSQL
func (r *PostgresCommunityRepository) CreateCommunity(community *models.Community) error {
	return r.db.Create(community).Error
}

// GetCommunityByID retrieves a community with its owner
func (r *PostgresCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.Preload("Owner.Profile").First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// GetCommunityByName retrieves a community by its unique name
func (r *PostgresCommunityRepository) GetCommunityByName(name string) (*models.Community, error) {
	var community models.Community
	if err := r.db.Where("name = ?", name).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// GetApprovedCommunities lists communities visible to users, member counts filled in
func (r *PostgresCommunityRepository) GetApprovedCommunities() ([]models.Community, error) {
	var communities []models.Community
	err := r.db.Preload("Owner.Profile").
		Where("status = ?", models.CommunityStatusApproved).
		Order("created_at DESC").
		Find(&communities).Error
	if err != nil {
		return nil, err
	}
	for i := range communities {
		count, err := r.CountMembers(communities[i].ID)
		if err != nil {
			return nil, err
		}
		communities[i].MemberCount = count
	}
	return communities, nil
}

// SetStatus transitions a community's status
func (r *PostgresCommunityRepository) SetStatus(communityID uint, status string) error {
	res := r.db.Model(&models.Community{}).Where("id = ?", communityID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetMembership retrieves the membership row for a (community, user) pair
func (r *PostgresCommunityRepository) GetMembership(communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	if err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpsertMembership creates or updates a membership row. Leave/rejoin toggles
// the status field rather than deleting the row.
func (r *PostgresCommunityRepository) UpsertMembership(member *models.CommunityMember) error {
	return r.db.Save(member).Error
}

// CountMembers counts currently-joined members of a community
func (r *PostgresCommunityRepository) CountMembers(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND status = ?", communityID, models.MemberStatusJoined).
		Count(&count).Error
	return count, err
}

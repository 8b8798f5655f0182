package repositories

import (
	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/gorm"
)

// VoteResult describes what a vote toggle did to the post
type VoteResult struct {
	Created bool // a vote row was created (a cast, as opposed to a toggle-off)
	Delta   int  // net counter adjustment applied
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetFeed(category string, userID uint) ([]models.Post, error)
	ToggleVote(postID, userID uint, direction string) (*VoteResult, error)
	SetArchived(postID, ownerID uint, archived bool) error
	SetStatus(postID uint, status string) error
	DeletePost(postID, ownerID uint) error
	CountOpenReports(postID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its owner profile and comments
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("User.Profile").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User.Profile").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeed retrieves non-archived, non-reported posts newest-first.
// category and userID narrow the result when non-zero.
func (r *PostgresPostRepository) GetFeed(category string, userID uint) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.
		Preload("User.Profile").
		Preload("Comments").
		Where("archived = ? AND status <> ?", false, models.PostStatusReported).
		Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleVote applies the toggle semantics for one (post, user, direction) cast.
// The vote-row mutation and the counter adjustment run in a single transaction
// so the counter always equals #upvotes - #downvotes:
//   - same-direction row exists: delete it and back the counter out (toggle-off)
//   - opposite-direction row exists: replace it, moving the counter by 2
//   - no row: create it and move the counter by 1
func (r *PostgresPostRepository) ToggleVote(postID, userID uint, direction string) (*VoteResult, error) {
	result := &VoteResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}

		cast := models.Vote{PostID: postID, UserID: userID, Direction: direction}

		var existing models.Vote
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil && existing.Direction == direction:
			// toggle-off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.Delta = -existing.Sign()
		case err == nil:
			// flip direction: the old vote's contribution goes away and the
			// new one lands, so the counter moves by two
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
			result.Created = true
			result.Delta = 2 * cast.Sign()
		case err == gorm.ErrRecordNotFound:
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
			result.Created = true
			result.Delta = cast.Sign()
		default:
			return err
		}

		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("counter_vote", gorm.Expr("counter_vote + ?", result.Delta)).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetArchived flips the archived flag through a lookup scoped to the owner,
// so a non-owner cannot hit the row at all
func (r *PostgresPostRepository) SetArchived(postID, ownerID uint, archived bool) error {
	res := r.db.Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, ownerID).
		Update("archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatus updates a post's lifecycle status
func (r *PostgresPostRepository) SetStatus(postID uint, status string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).Update("status", status).Error
}

// DeletePost deletes a post owned by ownerID along with its votes, comments
// and any reports still open against it, so the admin queue never holds a
// report whose post is gone
func (r *PostgresPostRepository) DeletePost(postID, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", postID, ownerID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", postID).Delete(&models.Report{}).Error
	})
}

// CountOpenReports counts reports still pending against a post
func (r *PostgresPostRepository) CountOpenReports(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Report{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repositories

import (
	"time"

	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SetSuspendedUntil(userID uint, until *time.Time) error
	SetPassword(userID uint, hashed string) error
	CreateOtp(otp *models.Otp) error
	GetValidOtp(email, code string, now time.Time) (*models.Otp, error)
	DeleteOtp(id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID, profile included
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user. A plain Save treats an existing
// Profile row as an on-conflict no-op, so association changes must be
// written with a full-save session.
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(user).Error
}

// SetSuspendedUntil sets or clears the suspension timestamp on a user.
// A nil value lifts the suspension.
func (r *PostgresUserRepository) SetSuspendedUntil(userID uint, until *time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).Update("suspended_until", until)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPassword replaces a user's password hash
func (r *PostgresUserRepository) SetPassword(userID uint, hashed string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

// CreateOtp stores a one-time reset code
func (r *PostgresUserRepository) CreateOtp(otp *models.Otp) error {
	return r.db.Create(otp).Error
}

// GetValidOtp retrieves an unexpired OTP matching the email and code
func (r *PostgresUserRepository) GetValidOtp(email, code string, now time.Time) (*models.Otp, error) {
	var otp models.Otp
	if err := r.db.Where("email = ? AND code = ? AND expires_at > ?", email, code, now).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

// DeleteOtp consumes an OTP once used
func (r *PostgresUserRepository) DeleteOtp(id uint) error {
	return r.db.Delete(&models.Otp{}, id).Error
}

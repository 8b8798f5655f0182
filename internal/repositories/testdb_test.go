package repositories

import (
	"testing"

	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated to the full schema.
// The pool is pinned to a single connection because every sqlite :memory:
// connection gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Otp{},
		&models.Post{},
		&models.Vote{},
		&models.Comment{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Report{},
		&models.AppealRequest{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

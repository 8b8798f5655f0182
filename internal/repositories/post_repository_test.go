package repositories

import (
	"testing"

	"github.com/samssiams/Protecture-sub000/internal/models"
	"gorm.io/gorm"
)

func seedPostFor(t *testing.T, db *gorm.DB, ownerID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      ownerID,
		Description: "timber frame detail",
		Category:    "architecture",
		Status:      models.PostStatusNormal,
	}
	if err := NewPostgresPostRepository(db).CreatePost(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func counterOf(t *testing.T, db *gorm.DB, postID uint) int {
	t.Helper()
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return post.CounterVote
}

func TestToggleVoteCastFlipAndOff(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	post := seedPostFor(t, db, 1)

	res, err := repo.ToggleVote(post.ID, 2, models.VoteUpvote)
	if err != nil {
		t.Fatalf("first cast: %v", err)
	}
	if !res.Created || res.Delta != 1 {
		t.Errorf("first cast = %+v, want created with delta +1", res)
	}
	if got := counterOf(t, db, post.ID); got != 1 {
		t.Errorf("counter after upvote = %d, want 1", got)
	}

	res, err = repo.ToggleVote(post.ID, 2, models.VoteDownvote)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if !res.Created || res.Delta != -2 {
		t.Errorf("flip = %+v, want created with delta -2", res)
	}
	if got := counterOf(t, db, post.ID); got != -1 {
		t.Errorf("counter after flip = %d, want -1", got)
	}

	res, err = repo.ToggleVote(post.ID, 2, models.VoteDownvote)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if res.Created || res.Delta != 1 {
		t.Errorf("toggle off = %+v, want removal with delta +1", res)
	}
	if got := counterOf(t, db, post.ID); got != 0 {
		t.Errorf("counter after toggle off = %d, want 0", got)
	}

	var votes int64
	db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&votes)
	if votes != 0 {
		t.Errorf("vote rows left = %d, want 0", votes)
	}
}

func TestToggleVoteUnknownPost(t *testing.T) {
	repo := NewPostgresPostRepository(newTestDB(t))

	if _, err := repo.ToggleVote(99, 2, models.VoteUpvote); err != gorm.ErrRecordNotFound {
		t.Errorf("expected record-not-found, got %v", err)
	}
}

func TestDeletePostRemovesReports(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	reportRepo := NewPostgresReportRepository(db)
	post := seedPostFor(t, db, 1)

	report := &models.Report{PostID: post.ID, ReportedBy: 2, Reason: "stolen artwork"}
	if err := reportRepo.CreateReport(report); err != nil {
		t.Fatalf("create report: %v", err)
	}
	if err := reportRepo.CreateReport(&models.Report{PostID: post.ID, ReportedBy: 3, Reason: "spam"}); err != nil {
		t.Fatalf("create second report: %v", err)
	}

	if err := repo.DeletePost(post.ID, post.UserID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	count, err := repo.CountOpenReports(post.ID)
	if err != nil {
		t.Fatalf("count reports: %v", err)
	}
	if count != 0 {
		t.Errorf("open reports after delete = %d, want 0", count)
	}
	if _, err := reportRepo.GetReportByID(report.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("expected record-not-found for report of deleted post, got %v", err)
	}
}

func TestDeletePostByNonOwnerLeavesEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	post := seedPostFor(t, db, 1)
	if err := NewPostgresReportRepository(db).CreateReport(&models.Report{PostID: post.ID, ReportedBy: 2, Reason: "spam"}); err != nil {
		t.Fatalf("create report: %v", err)
	}

	if err := repo.DeletePost(post.ID, 5); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record-not-found for non-owner, got %v", err)
	}
	if _, err := repo.GetPostByID(post.ID); err != nil {
		t.Errorf("post gone after refused delete: %v", err)
	}
	if count, _ := repo.CountOpenReports(post.ID); count != 1 {
		t.Errorf("reports after refused delete = %d, want 1", count)
	}
}

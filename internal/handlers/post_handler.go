package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/internal/textfilter"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts: creation, the feed,
// voting, archiving and reporting
type PostHandler struct {
	postRepository   repositories.PostRepository
	reportRepository repositories.ReportRepository
	notifier         *Notifier
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, reportRepo repositories.ReportRepository, notifier *Notifier) *PostHandler {
	return &PostHandler{
		postRepository:   postRepo,
		reportRepository: reportRepo,
		notifier:         notifier,
	}
}

// RegisterPostRoutes registers post-related routes. suspend gates every
// mutation; rateLimit guards creation only.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, suspend, rateLimit echo.MiddlewareFunc) {
	g.POST("/post/create-post", h.CreatePost, suspend, rateLimit)
	g.GET("/post/get-posts", h.GetPosts)
	g.POST("/post/vote", h.Vote, suspend)
	g.POST("/post/archive", h.Archive, suspend)
	g.POST("/post/reportuser", h.ReportPost, suspend)
	g.DELETE("/post/:id", h.DeletePost, suspend)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		UserID:      claims.UserID,
		Description: textfilter.Clean(req.Description),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      models.PostStatusNormal,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		logger.Sugar.Errorw("failed to create post", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts retrieves the feed, optionally narrowed by category or user
func (h *PostHandler) GetPosts(c echo.Context) error {
	category := c.QueryParam("category")
	var userID uint
	if raw := c.QueryParam("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid userId")
		}
		userID = uint(parsed)
	}

	posts, err := h.postRepository.GetFeed(category, userID)
	if err != nil {
		logger.Sugar.Errorw("failed to load feed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load posts")
	}

	return c.JSON(http.StatusOK, posts)
}

// Vote casts or toggles a directional vote on a post. Repeating the same
// action removes the vote (toggle-off); casting the opposite direction
// replaces it. The row mutation and counter adjustment are one transaction.
func (h *PostHandler) Vote(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.postRepository.ToggleVote(req.PostID, claims.UserID, req.Action)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		logger.Sugar.Errorw("vote toggle failed", "post", req.PostID, "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to apply vote")
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		logger.Sugar.Errorw("failed to reload post after vote", "post", req.PostID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	// Only a cast notifies the owner; a toggle-off is silent, and so is
	// voting on your own post.
	if result.Created && post.UserID != claims.UserID {
		actorID := claims.UserID
		h.notifier.Emit(&models.Notification{
			UserID:  post.UserID,
			ActorID: &actorID,
			Type:    req.Action,
			Message: "Your post received a " + req.Action,
		})
	}

	return c.JSON(http.StatusOK, post)
}

// Archive flips the archived flag on a post owned by the caller
func (h *PostHandler) Archive(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postRepository.SetArchived(req.PostID, claims.UserID, req.Archived); err != nil {
		if err == gorm.ErrRecordNotFound {
			// either the post does not exist or the caller does not own it;
			// the owner-scoped lookup cannot tell the two apart
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this post")
		}
		logger.Sugar.Errorw("archive toggle failed", "post", req.PostID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	return c.JSON(http.StatusOK, post)
}

// ReportPost flags a post for admin review. Repeated reports by the same
// reporter are allowed; the admin queue surfaces duplicates.
func (h *PostHandler) ReportPost(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.ReportPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(req.PostID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	report := &models.Report{
		PostID:     req.PostID,
		ReportedBy: claims.UserID,
		Reason:     req.Reason,
	}

	if err := h.reportRepository.CreateReport(report); err != nil {
		logger.Sugar.Errorw("failed to create report", "post", req.PostID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create report")
	}

	// A reported post drops out of the feed until an admin resolves it
	if err := h.postRepository.SetStatus(req.PostID, models.PostStatusReported); err != nil {
		logger.Sugar.Warnw("failed to flag post as reported", "post", req.PostID, "error", err)
	}

	return c.JSON(http.StatusOK, report)
}

// DeletePost deletes a post owned by the caller, with its votes and comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postRepository.DeletePost(uint(postID), claims.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this post")
		}
		logger.Sugar.Errorw("failed to delete post", "post", postID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}

	return c.NoContent(http.StatusNoContent)
}

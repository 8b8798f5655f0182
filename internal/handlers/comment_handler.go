package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/internal/textfilter"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	notifier          *Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifier *Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes; suspend gates writes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, suspend echo.MiddlewareFunc) {
	g.POST("/post/addcomment", h.CreateComment, suspend)
	g.PUT("/post/editcomment", h.UpdateComment, suspend)
	g.DELETE("/post/deletecomment", h.DeleteComment, suspend)
	g.GET("/post/comments/:postId", h.GetCommentsByPostID)
}

// CreateComment creates a new comment on a post. The text goes through the
// server-side sanitizer regardless of what the client previewed.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.CommentText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text must not be empty")
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	comment := &models.Comment{
		PostID: req.PostID,
		UserID: claims.UserID,
		Text:   textfilter.Clean(req.CommentText),
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		logger.Sugar.Errorw("failed to create comment", "post", req.PostID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}

	if post.UserID != claims.UserID {
		actorID := claims.UserID
		h.notifier.Emit(&models.Notification{
			UserID:  post.UserID,
			ActorID: &actorID,
			Type:    models.NotificationTypeComment,
			Message: "Someone commented on your post",
		})
	}

	comment.IsOwnComment = true
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits an existing comment. Only the author may edit, and
// empty replacement text is rejected before anything is touched.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.CommentText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text must not be empty")
	}

	comment, err := h.commentRepository.GetCommentByID(req.CommentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comment")
	}

	if comment.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Text = textfilter.Clean(req.CommentText)
	comment.Edited = true

	if err := h.commentRepository.UpdateComment(comment); err != nil {
		logger.Sugar.Errorw("failed to update comment", "comment", req.CommentID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update comment")
	}

	comment.IsOwnComment = true
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment authored by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.DeleteCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(req.CommentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comment")
	}

	if comment.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(req.CommentID); err != nil {
		logger.Sugar.Errorw("failed to delete comment", "comment", req.CommentID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted"})
}

// GetCommentsByPostID retrieves a post's comments newest-first, each
// annotated with whether the caller authored it
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	postID, err := strconv.ParseUint(c.Param("postId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(uint(postID))
	if err != nil {
		logger.Sugar.Errorw("failed to load comments", "post", postID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comments")
	}

	for i := range comments {
		comments[i].IsOwnComment = comments[i].UserID == claims.UserID
	}

	return c.JSON(http.StatusOK, comments)
}

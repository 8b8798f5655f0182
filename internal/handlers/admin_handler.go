package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"gorm.io/gorm"
)

// AdminHandler handles the moderation console: report review, suspensions,
// community approval and the audit trail
type AdminHandler struct {
	reportRepository    repositories.ReportRepository
	userRepository      repositories.UserRepository
	postRepository      repositories.PostRepository
	communityRepository repositories.CommunityRepository
	auditRepository     repositories.AuditRepository
	notifier            *Notifier

	// single authoritative suspension length, shared by every suspend path
	suspensionDuration time.Duration
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	communityRepo repositories.CommunityRepository,
	auditRepo repositories.AuditRepository,
	notifier *Notifier,
	suspensionDuration time.Duration,
) *AdminHandler {
	return &AdminHandler{
		reportRepository:    reportRepo,
		userRepository:      userRepo,
		postRepository:      postRepo,
		communityRepository: communityRepo,
		auditRepository:     auditRepo,
		notifier:            notifier,
		suspensionDuration:  suspensionDuration,
	}
}

// RegisterAdminRoutes registers moderation routes; the group must already
// carry JWTAuthMiddleware and RequireAdmin
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/reports", h.GetReports)
	g.POST("/admin-flagged", h.ReviewReport)
	g.POST("/suspend-user", h.SuspendUser)
	g.POST("/unsuspend-user", h.UnsuspendUser)
	g.POST("/manage-community", h.ManageCommunity)
	g.GET("/appeals", h.GetAppeals)
	g.POST("/review-appeal", h.ReviewAppeal)
	g.GET("/audit", h.GetAudit)
}

// GetReports lists the open report queue
func (h *AdminHandler) GetReports(c echo.Context) error {
	reports, err := h.reportRepository.GetOpenReports()
	if err != nil {
		logger.Sugar.Errorw("failed to load reports", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reports")
	}
	return c.JSON(http.StatusOK, reports)
}

// ReviewReport resolves a report. Resolution is destructive: the report row
// is deleted whichever way the review goes. A suspend action also sets the
// post owner's suspension to now plus the configured policy duration.
func (h *AdminHandler) ReviewReport(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.ReviewReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportRepository.GetReportByID(req.ReportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load report")
	}

	if req.Action == "suspend" {
		until := time.Now().Add(h.suspensionDuration)
		if err := h.userRepository.SetSuspendedUntil(report.Post.UserID, &until); err != nil {
			logger.Sugar.Errorw("failed to suspend user", "user", report.Post.UserID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to suspend user")
		}
	}

	if err := h.reportRepository.DeleteReport(req.ReportID); err != nil {
		logger.Sugar.Errorw("failed to delete report", "report", req.ReportID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve report")
	}

	// Restore the post to the feed once no reports remain against it
	open, err := h.postRepository.CountOpenReports(report.PostID)
	if err == nil && open == 0 {
		if err := h.postRepository.SetStatus(report.PostID, models.PostStatusNormal); err != nil {
			logger.Sugar.Warnw("failed to restore post status", "post", report.PostID, "error", err)
		}
	}

	h.audit(c, claims.UserID, "report_"+req.Action, req.ReportID, report.Reason)

	return c.JSON(http.StatusOK, echo.Map{"message": "Report " + req.Action + "ed"})
}

// SuspendUser applies the policy suspension directly to a user, outside any
// report linkage
func (h *AdminHandler) SuspendUser(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.SuspendUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	until := time.Now().Add(h.suspensionDuration)
	if err := h.userRepository.SetSuspendedUntil(req.UserID, &until); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logger.Sugar.Errorw("failed to suspend user", "user", req.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to suspend user")
	}

	h.audit(c, claims.UserID, "suspend", req.UserID, "")

	return c.JSON(http.StatusOK, echo.Map{"message": "User suspended", "suspendedUntil": until})
}

// UnsuspendUser clears a user's suspension timestamp
func (h *AdminHandler) UnsuspendUser(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.SuspendUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.SetSuspendedUntil(req.UserID, nil); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		logger.Sugar.Errorw("failed to unsuspend user", "user", req.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unsuspend user")
	}

	h.audit(c, claims.UserID, "unsuspend", req.UserID, "")

	return c.JSON(http.StatusOK, echo.Map{"message": "User unsuspended"})
}

// communityTransitions maps an admin action to its required current status
// and resulting status
var communityTransitions = map[string]struct {
	from, to string
}{
	"approve": {models.CommunityStatusPending, models.CommunityStatusApproved},
	"reject":  {models.CommunityStatusPending, models.CommunityStatusRejected},
	"archive": {models.CommunityStatusApproved, models.CommunityStatusInactive},
}

// ManageCommunity transitions a community's status and notifies its owner.
// A reason is recorded only for reject.
func (h *AdminHandler) ManageCommunity(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.ManageCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	community, err := h.communityRepository.GetCommunityByID(req.CommunityID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load community")
	}

	transition := communityTransitions[req.Action]
	if community.Status != transition.from {
		return echo.NewHTTPError(http.StatusBadRequest, "Community cannot be "+req.Action+"d from status "+community.Status)
	}

	if err := h.communityRepository.SetStatus(req.CommunityID, transition.to); err != nil {
		logger.Sugar.Errorw("failed to update community status", "community", req.CommunityID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update community")
	}
	community.Status = transition.to

	notification := &models.Notification{
		UserID:  community.OwnerID,
		Type:    models.NotificationTypeCommunityStatus,
		Message: "Your community " + community.Name + " is now " + transition.to,
	}
	if req.Action == "reject" {
		notification.Reason = req.Reason
	}
	h.notifier.Emit(notification)

	h.audit(c, claims.UserID, "community_"+req.Action, req.CommunityID, req.Reason)

	return c.JSON(http.StatusOK, community)
}

// GetAppeals lists suspension appeals awaiting review
func (h *AdminHandler) GetAppeals(c echo.Context) error {
	appeals, err := h.reportRepository.GetPendingAppeals()
	if err != nil {
		logger.Sugar.Errorw("failed to load appeals", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appeals")
	}
	return c.JSON(http.StatusOK, appeals)
}

// ReviewAppealRequest defines the admin request body for resolving an appeal
type ReviewAppealRequest struct {
	AppealID uint   `json:"appealId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=accept decline"`
}

// ReviewAppeal accepts or declines a suspension appeal. Accepting also
// lifts the suspension.
func (h *AdminHandler) ReviewAppeal(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req ReviewAppealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appeal, err := h.reportRepository.GetAppealByID(req.AppealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Appeal not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load appeal")
	}

	status := "declined"
	if req.Action == "accept" {
		status = "accepted"
		if err := h.userRepository.SetSuspendedUntil(appeal.UserID, nil); err != nil {
			logger.Sugar.Errorw("failed to lift suspension", "user", appeal.UserID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to lift suspension")
		}
	}

	if err := h.reportRepository.SetAppealStatus(req.AppealID, status); err != nil {
		logger.Sugar.Errorw("failed to update appeal", "appeal", req.AppealID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update appeal")
	}

	h.audit(c, claims.UserID, "appeal_"+req.Action, req.AppealID, "")

	return c.JSON(http.StatusOK, echo.Map{"message": "Appeal " + status})
}

// GetAudit retrieves the most recent moderation audit entries
func (h *AdminHandler) GetAudit(c echo.Context) error {
	entries, err := h.auditRepository.GetRecent(c.Request().Context(), 100)
	if err != nil {
		logger.Sugar.Errorw("failed to load audit trail", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load audit trail")
	}
	return c.JSON(http.StatusOK, entries)
}

// audit appends to the moderation trail; failures are logged, never surfaced
func (h *AdminHandler) audit(c echo.Context, adminID uint, action string, targetID uint, detail string) {
	entry := &repositories.AuditEntry{
		AdminID:  adminID,
		Action:   action,
		TargetID: targetID,
		Detail:   detail,
	}
	if err := h.auditRepository.Append(c.Request().Context(), entry); err != nil {
		logger.Sugar.Warnw("audit append failed", "action", action, "target", targetID, "error", err)
	}
}

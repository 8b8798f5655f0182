package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"gorm.io/gorm"
)

// CommunityHandler handles community creation and membership
type CommunityHandler struct {
	communityRepository repositories.CommunityRepository
	notifier            *Notifier
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communityRepo repositories.CommunityRepository, notifier *Notifier) *CommunityHandler {
	return &CommunityHandler{
		communityRepository: communityRepo,
		notifier:            notifier,
	}
}

// RegisterCommunityRoutes registers community-related routes; suspend gates writes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group, suspend echo.MiddlewareFunc) {
	g.POST("/community/create", h.CreateCommunity, suspend)
	g.POST("/community/join", h.Join, suspend)
	g.POST("/community/leave", h.Leave, suspend)
	g.GET("/community/list", h.List)
}

// CreateCommunity creates a community in PENDING status awaiting admin approval
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityByName(req.Name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "A community with this name already exists")
	}

	community := &models.Community{
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.CommunityStatusPending,
	}

	if err := h.communityRepository.CreateCommunity(community); err != nil {
		logger.Sugar.Errorw("failed to create community", "name", req.Name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create community")
	}

	return c.JSON(http.StatusCreated, community)
}

// Join adds the caller to a community, or re-toggles a left membership.
// The owner is notified of each join.
func (h *CommunityHandler) Join(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.MembershipRequest
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
	if community.Status != models.CommunityStatusApproved {
		return echo.NewHTTPError(http.StatusBadRequest, "Community is not open for membership")
	}

	member, err := h.communityRepository.GetMembership(req.CommunityID, claims.UserID)
	switch {
	case err == gorm.ErrRecordNotFound:
		member = &models.CommunityMember{
			CommunityID: req.CommunityID,
			UserID:      claims.UserID,
			Status:      models.MemberStatusJoined,
		}
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load membership")
	case member.Status == models.MemberStatusJoined:
		return echo.NewHTTPError(http.StatusConflict, "Already a member of this community")
	default:
		member.Status = models.MemberStatusJoined
	}

	if err := h.communityRepository.UpsertMembership(member); err != nil {
		logger.Sugar.Errorw("failed to join community", "community", req.CommunityID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to join community")
	}

	if community.OwnerID != claims.UserID {
		actorID := claims.UserID
		h.notifier.Emit(&models.Notification{
			UserID:  community.OwnerID,
			ActorID: &actorID,
			Type:    models.NotificationTypeCommunityJoin,
			Message: "Someone joined " + community.Name,
		})
	}

	return c.JSON(http.StatusOK, member)
}

// Leave toggles the caller's membership to left; the row stays for rejoin.
// The owner is notified, mirroring Join.
func (h *CommunityHandler) Leave(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.MembershipRequest
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

	member, err := h.communityRepository.GetMembership(req.CommunityID, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Not a member of this community")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load membership")
	}
	if member.Status == models.MemberStatusLeft {
		return echo.NewHTTPError(http.StatusConflict, "Already left this community")
	}

	member.Status = models.MemberStatusLeft
	if err := h.communityRepository.UpsertMembership(member); err != nil {
		logger.Sugar.Errorw("failed to leave community", "community", req.CommunityID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to leave community")
	}

	if community.OwnerID != claims.UserID {
		actorID := claims.UserID
		h.notifier.Emit(&models.Notification{
			UserID:  community.OwnerID,
			ActorID: &actorID,
			Type:    models.NotificationTypeCommunityLeave,
			Message: "Someone left " + community.Name,
		})
	}

	return c.JSON(http.StatusOK, member)
}

// List retrieves approved communities with member counts
func (h *CommunityHandler) List(c echo.Context) error {
	communities, err := h.communityRepository.GetApprovedCommunities()
	if err != nil {
		logger.Sugar.Errorw("failed to list communities", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load communities")
	}

	return c.JSON(http.StatusOK, communities)
}

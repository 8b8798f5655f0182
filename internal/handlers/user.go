package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
)

// UserHandler handles profile reads/updates and suspension appeals
type UserHandler struct {
	userRepository   repositories.UserRepository
	reportRepository repositories.ReportRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, reportRepo repositories.ReportRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		reportRepository: reportRepo,
	}
}

// RegisterUserRoutes registers user-related routes. Appeal submission is
// deliberately reachable while suspended.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user/me", h.Me)
	g.PUT("/user/profile", h.UpdateProfile)
	g.POST("/user/appeal", h.SubmitAppeal)
}

// Me returns the authenticated user with profile
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfileRequest defines the request body for a profile update
type UpdateProfileRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// UpdateProfile updates the caller's display fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
	}

	if user.Profile == nil {
		user.Profile = &models.Profile{UserID: user.ID}
	}
	if req.Name != "" {
		user.Profile.Name = req.Name
	}
	if req.AvatarURL != "" {
		user.Profile.AvatarURL = req.AvatarURL
	}
	if req.Bio != "" {
		user.Profile.Bio = req.Bio
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		logger.Sugar.Errorw("failed to update profile", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, user)
}

// SubmitAppeal files a suspension appeal for the caller
func (h *UserHandler) SubmitAppeal(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.SubmitAppealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appeal := &models.AppealRequest{
		UserID:  claims.UserID,
		Message: req.Message,
		Status:  "pending",
	}

	if err := h.reportRepository.CreateAppeal(appeal); err != nil {
		logger.Sugar.Errorw("failed to create appeal", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit appeal")
	}

	return c.JSON(http.StatusCreated, appeal)
}

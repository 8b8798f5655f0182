package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpTTL = 10 * time.Minute

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when OAuth login is not configured.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.POST("/request-otp", h.RequestOtp)
	g.POST("/reset-password", h.ResetPassword)
}

// Signup handles local user registration with username, email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if user with this username or email already exists
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Profile:  &models.Profile{Name: req.Username},
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// SignIn handles local user authentication with username and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	if user.Suspended(time.Now()) {
		return echo.NewHTTPError(http.StatusForbidden, echo.Map{
			"message":        "Account is suspended",
			"suspendedUntil": user.SuspendedUntil,
		})
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT.
// Unknown users are created on first login (OAuth signup).
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "OAuth login is not configured")
	}

	var req models.FirebaseLoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up user")
		}

		// Link by email when the account predates the OAuth sign-in,
		// otherwise create a fresh account.
		user, err = h.userRepository.GetUserByEmail(email)
		if err == nil {
			user.FirebaseUID = token.UID
			if err := h.userRepository.UpdateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to link account")
			}
		} else if err == gorm.ErrRecordNotFound {
			user = &models.User{
				Username:    email,
				Email:       email,
				FirebaseUID: token.UID,
				Profile:     &models.Profile{Name: name},
			}
			if err := h.userRepository.CreateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
			}
		} else {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up user")
		}
	}

	if user.Suspended(time.Now()) {
		return echo.NewHTTPError(http.StatusForbidden, echo.Map{
			"message":        "Account is suspended",
			"suspendedUntil": user.SuspendedUntil,
		})
	}

	sessionToken, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": sessionToken})
}

// RequestOtp issues a one-time reset code for the given email. The response
// is identical whether or not the email exists.
func (h *AuthHandler) RequestOtp(c echo.Context) error {
	var req models.RequestOtpRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		code, err := generateOtpCode()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate code")
		}
		otp := &models.Otp{
			Email:     req.Email,
			Code:      code,
			ExpiresAt: time.Now().Add(otpTTL),
		}
		if err := h.userRepository.CreateOtp(otp); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store code")
		}
		// Delivery goes through the external mail provider; record the issue here
		logger.Sugar.Infow("password reset code issued", "email", req.Email)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "If the email exists, a reset code has been sent"})
}

// ResetPassword verifies an unexpired OTP and replaces the user's password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	otp, err := h.userRepository.GetValidOtp(req.Email, req.Code, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired code")
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired code")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	if err := h.userRepository.SetPassword(user.ID, string(hashedPassword)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update password")
	}

	// Consume the code so it cannot be replayed
	if err := h.userRepository.DeleteOtp(otp.ID); err != nil {
		logger.Sugar.Warnw("failed to consume otp", "otp_id", otp.ID, "error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}

// generateJWT issues a 24h session token for the user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Admin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

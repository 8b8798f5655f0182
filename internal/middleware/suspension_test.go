package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"gorm.io/gorm"
)

// stubUserRepo serves a single user; the embedded interface panics on
// anything SuspensionGate does not call
type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func runSuspensionGate(t *testing.T, repo repositories.UserRepository, claims *models.JwtCustomClaims) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/post/create-post", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(userContextKey, claims)
	}

	handler := SuspensionGate(repo)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		return err.(*echo.HTTPError).Code
	}
	return rec.Code
}

func TestSuspensionGateBlocksActiveSuspension(t *testing.T) {
	until := time.Now().Add(time.Hour)
	repo := &stubUserRepo{user: &models.User{Username: "blocked", SuspendedUntil: &until}}
	repo.user.ID = 1

	if code := runSuspensionGate(t, repo, &models.JwtCustomClaims{UserID: 1}); code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", code)
	}
}

func TestSuspensionGatePassesExpiredSuspension(t *testing.T) {
	until := time.Now().Add(-time.Hour)
	repo := &stubUserRepo{user: &models.User{Username: "served", SuspendedUntil: &until}}
	repo.user.ID = 1

	if code := runSuspensionGate(t, repo, &models.JwtCustomClaims{UserID: 1}); code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
}

func TestSuspensionGatePassesCleanUser(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{Username: "clean"}}
	repo.user.ID = 1

	if code := runSuspensionGate(t, repo, &models.JwtCustomClaims{UserID: 1}); code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
}

func TestSuspensionGateRejectsUnknownUser(t *testing.T) {
	repo := &stubUserRepo{}
	if code := runSuspensionGate(t, repo, &models.JwtCustomClaims{UserID: 9}); code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
}

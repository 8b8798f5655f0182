package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newAuthHandlerFixture() (*AuthHandler, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewAuthHandler(userRepo, nil, testJWTSecret), userRepo
}

func tokenFrom(t *testing.T, body string) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("no token in response: %s", body)
	}
	return resp["token"]
}

func TestSignupIssuesUsableToken(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signup",
		`{"username":"archie","email":"archie@example.com","password":"longenough1"}`, nil)
	if status := statusOf(t, h.Signup(c), rec); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	user, err := userRepo.GetUserByUsername("archie")
	if err != nil {
		t.Fatal("user not stored")
	}
	if user.Password == "longenough1" {
		t.Error("password stored in plaintext")
	}
	if user.Profile == nil || user.Profile.Name != "archie" {
		t.Error("profile not initialized from username")
	}

	claims := &models.JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(tokenFrom(t, rec.Body.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "archie@example.com" || claims.Admin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	userRepo.CreateUser(&models.User{Username: "archie", Email: "other@example.com"})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signup",
		`{"username":"archie","email":"archie@example.com","password":"longenough1"}`, nil)
	if status := statusOf(t, h.Signup(c), rec); status != http.StatusConflict {
		t.Errorf("expected 409, got %d", status)
	}
}

func TestSignupShortPassword(t *testing.T) {
	e := newTestEcho()
	h, _ := newAuthHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signup",
		`{"username":"archie","email":"archie@example.com","password":"short"}`, nil)
	if status := statusOf(t, h.Signup(c), rec); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func seedCredentials(t *testing.T, userRepo *fakeUserRepo, username, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hashed)}
	userRepo.CreateUser(user)
	return user
}

func TestSignInWithValidCredentials(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	seedCredentials(t, userRepo, "archie", "longenough1")

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signin",
		`{"username":"archie","password":"longenough1"}`, nil)
	if status := statusOf(t, h.SignIn(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	tokenFrom(t, rec.Body.String())
}

func TestSignInWrongPassword(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	seedCredentials(t, userRepo, "archie", "longenough1")

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signin",
		`{"username":"archie","password":"wrongpass99"}`, nil)
	if status := statusOf(t, h.SignIn(c), rec); status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestSignInUnknownUser(t *testing.T) {
	e := newTestEcho()
	h, _ := newAuthHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signin",
		`{"username":"ghost","password":"whatever99"}`, nil)
	if status := statusOf(t, h.SignIn(c), rec); status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestSignInWhileSuspended(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	user := seedCredentials(t, userRepo, "archie", "longenough1")
	until := time.Now().Add(time.Hour)
	userRepo.SetSuspendedUntil(user.ID, &until)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signin",
		`{"username":"archie","password":"longenough1"}`, nil)
	if status := statusOf(t, h.SignIn(c), rec); status != http.StatusForbidden {
		t.Errorf("expected 403, got %d", status)
	}
}

func TestSignInAfterSuspensionExpired(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	user := seedCredentials(t, userRepo, "archie", "longenough1")
	until := time.Now().Add(-time.Minute)
	userRepo.SetSuspendedUntil(user.ID, &until)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/signin",
		`{"username":"archie","password":"longenough1"}`, nil)
	if status := statusOf(t, h.SignIn(c), rec); status != http.StatusOK {
		t.Errorf("expected 200 after expiry, got %d", status)
	}
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	e := newTestEcho()
	h, _ := newAuthHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/auth/firebase-login",
		`{"idToken":"anything"}`, nil)
	if status := statusOf(t, h.FirebaseLogin(c), rec); status != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a firebase client, got %d", status)
	}
}

func TestRequestOtpResponseIsUniform(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	userRepo.CreateUser(&models.User{Username: "archie", Email: "archie@example.com"})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/request-otp",
		`{"email":"archie@example.com"}`, nil)
	if status := statusOf(t, h.RequestOtp(c), rec); status != http.StatusOK {
		t.Fatalf("known email: expected 200, got %d", status)
	}
	known := rec.Body.String()

	c, rec = newJSONContext(e, http.MethodPost, "/auth/request-otp",
		`{"email":"nobody@example.com"}`, nil)
	if status := statusOf(t, h.RequestOtp(c), rec); status != http.StatusOK {
		t.Fatalf("unknown email: expected 200, got %d", status)
	}
	if rec.Body.String() != known {
		t.Error("response leaks whether the email exists")
	}

	// the code was only stored for the real account
	if len(userRepo.otps) != 1 {
		t.Errorf("stored otps = %d, want 1", len(userRepo.otps))
	}
}

func TestResetPasswordConsumesOtp(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	user := seedCredentials(t, userRepo, "archie", "oldpassword1")
	userRepo.CreateOtp(&models.Otp{
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(otpTTL),
	})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/reset-password",
		`{"email":"archie@example.com","code":"123456","newPassword":"brandnewpass1"}`, nil)
	if status := statusOf(t, h.ResetPassword(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	updated, _ := userRepo.GetUserByID(user.ID)
	if bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brandnewpass1")) != nil {
		t.Error("new password does not verify")
	}

	// replaying the same code must fail
	c, rec = newJSONContext(e, http.MethodPost, "/auth/reset-password",
		`{"email":"archie@example.com","code":"123456","newPassword":"anotherpass1"}`, nil)
	if status := statusOf(t, h.ResetPassword(c), rec); status != http.StatusBadRequest {
		t.Errorf("replay: expected 400, got %d", status)
	}
}

func TestResetPasswordExpiredOtp(t *testing.T) {
	e := newTestEcho()
	h, userRepo := newAuthHandlerFixture()
	user := seedCredentials(t, userRepo, "archie", "oldpassword1")
	userRepo.CreateOtp(&models.Otp{
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	c, rec := newJSONContext(e, http.MethodPost, "/auth/reset-password",
		`{"email":"archie@example.com","code":"123456","newPassword":"brandnewpass1"}`, nil)
	if status := statusOf(t, h.ResetPassword(c), rec); status != http.StatusBadRequest {
		t.Errorf("expected 400 for expired code, got %d", status)
	}
}

func TestGenerateOtpCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateOtpCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q has a non-digit", code)
			}
		}
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/samssiams/Protecture-sub000/internal/models"
)

func TestMarkReadIsRecipientScoped(t *testing.T) {
	e := newTestEcho()
	notiRepo := newFakeNotificationRepo()
	h := NewNotificationHandler(notiRepo)
	notiRepo.CreateNotification(&models.Notification{UserID: 1, Type: models.NotificationTypeComment})

	// another user cannot mark it
	c, rec := newJSONContext(e, http.MethodPost, "/notification/read",
		`{"notificationId":1}`, claimsFor(2))
	if status := statusOf(t, h.MarkRead(c), rec); status != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign notification, got %d", status)
	}

	// the recipient can
	c, rec = newJSONContext(e, http.MethodPost, "/notification/read",
		`{"notificationId":1}`, claimsFor(1))
	if status := statusOf(t, h.MarkRead(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if count, _ := notiRepo.GetUnreadCount(1); count != 0 {
		t.Errorf("unread count = %d, want 0", count)
	}
}

func TestMarkAllReadOnlyTouchesCaller(t *testing.T) {
	e := newTestEcho()
	notiRepo := newFakeNotificationRepo()
	h := NewNotificationHandler(notiRepo)
	notiRepo.CreateNotification(&models.Notification{UserID: 1, Type: models.NotificationTypeUpvote})
	notiRepo.CreateNotification(&models.Notification{UserID: 1, Type: models.NotificationTypeComment})
	notiRepo.CreateNotification(&models.Notification{UserID: 2, Type: models.NotificationTypeComment})

	c, rec := newJSONContext(e, http.MethodPost, "/notification/read-all", "", claimsFor(1))
	if status := statusOf(t, h.MarkAllRead(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if count, _ := notiRepo.GetUnreadCount(1); count != 0 {
		t.Errorf("caller unread = %d, want 0", count)
	}
	if count, _ := notiRepo.GetUnreadCount(2); count != 1 {
		t.Errorf("other user unread = %d, want 1", count)
	}
}

func TestUnreadCount(t *testing.T) {
	e := newTestEcho()
	notiRepo := newFakeNotificationRepo()
	h := NewNotificationHandler(notiRepo)
	notiRepo.CreateNotification(&models.Notification{UserID: 1, Type: models.NotificationTypeUpvote})
	notiRepo.CreateNotification(&models.Notification{UserID: 1, Type: models.NotificationTypeComment, IsRead: true})

	c, rec := newJSONContext(e, http.MethodGet, "/notification/unread-count", "", claimsFor(1))
	if status := statusOf(t, h.UnreadCount(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body := rec.Body.String(); !jsonHasNumber(body, "unread", 1) {
		t.Errorf("body = %s, want unread 1", body)
	}
}

func jsonHasNumber(body, key string, want float64) bool {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		return false
	}
	got, ok := m[key].(float64)
	return ok && got == want
}

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
)

func newCommunityHandlerFixture() (*CommunityHandler, *fakeCommunityRepo, *fakeNotificationRepo) {
	communityRepo := newFakeCommunityRepo()
	notiRepo := newFakeNotificationRepo()
	return NewCommunityHandler(communityRepo, NewNotifier(notiRepo, logger.Sugar)), communityRepo, notiRepo
}

func TestCreateCommunityStartsPending(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, _ := newCommunityHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/community/create",
		`{"name":"Passive House","description":"energy efficient design"}`, claimsFor(1))
	if status := statusOf(t, h.CreateCommunity(c), rec); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	community, err := communityRepo.GetCommunityByName("Passive House")
	if err != nil {
		t.Fatal("community not stored")
	}
	if community.Status != models.CommunityStatusPending {
		t.Errorf("status = %q, want PENDING", community.Status)
	}
	if community.OwnerID != 1 {
		t.Errorf("ownerID = %d, want 1", community.OwnerID)
	}
}

func TestCreateCommunityDuplicateName(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, _ := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Passive House", Status: models.CommunityStatusPending})

	c, rec := newJSONContext(e, http.MethodPost, "/community/create",
		`{"name":"Passive House"}`, claimsFor(2))
	if status := statusOf(t, h.CreateCommunity(c), rec); status != http.StatusConflict {
		t.Errorf("expected 409, got %d", status)
	}
}

func TestJoinRequiresApprovedCommunity(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, _ := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Pending Club", Status: models.CommunityStatusPending})

	c, rec := newJSONContext(e, http.MethodPost, "/community/join",
		`{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Join(c), rec); status != http.StatusBadRequest {
		t.Errorf("expected 400 for non-approved community, got %d", status)
	}
}

func TestJoinLeaveRejoinTogglesMembership(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, notiRepo := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Open Club", Status: models.CommunityStatusApproved})

	c, rec := newJSONContext(e, http.MethodPost, "/community/join", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Join(c), rec); status != http.StatusOK {
		t.Fatalf("join: expected 200, got %d", status)
	}
	if count, _ := communityRepo.CountMembers(1); count != 1 {
		t.Errorf("member count after join = %d, want 1", count)
	}
	if got := notiRepo.forRecipient(1); len(got) != 1 {
		t.Errorf("owner notifications after join = %d, want 1", len(got))
	}

	// joining twice conflicts
	c, rec = newJSONContext(e, http.MethodPost, "/community/join", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Join(c), rec); status != http.StatusConflict {
		t.Fatalf("double join: expected 409, got %d", status)
	}

	c, rec = newJSONContext(e, http.MethodPost, "/community/leave", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Leave(c), rec); status != http.StatusOK {
		t.Fatalf("leave: expected 200, got %d", status)
	}
	if count, _ := communityRepo.CountMembers(1); count != 0 {
		t.Errorf("member count after leave = %d, want 0", count)
	}

	// the row is toggled, not deleted, so rejoining flips it back
	c, rec = newJSONContext(e, http.MethodPost, "/community/join", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Join(c), rec); status != http.StatusOK {
		t.Fatalf("rejoin: expected 200, got %d", status)
	}
	member, _ := communityRepo.GetMembership(1, 2)
	if member.Status != models.MemberStatusJoined {
		t.Errorf("membership status = %q, want joined", member.Status)
	}
}

func TestLeaveNotifiesOwner(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, notiRepo := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Open Club", Status: models.CommunityStatusApproved})
	communityRepo.UpsertMembership(&models.CommunityMember{CommunityID: 1, UserID: 2, Status: models.MemberStatusJoined})

	c, rec := newJSONContext(e, http.MethodPost, "/community/leave", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Leave(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	got := notiRepo.forRecipient(1)
	if len(got) != 1 {
		t.Fatalf("owner notifications = %d, want 1", len(got))
	}
	if got[0].Type != models.NotificationTypeCommunityLeave {
		t.Errorf("notification type = %q, want COMMUNITY_LEAVE", got[0].Type)
	}
}

func TestLeaveByOwnerDoesNotNotify(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, notiRepo := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Open Club", Status: models.CommunityStatusApproved})
	communityRepo.UpsertMembership(&models.CommunityMember{CommunityID: 1, UserID: 1, Status: models.MemberStatusJoined})

	c, rec := newJSONContext(e, http.MethodPost, "/community/leave", `{"communityId":1}`, claimsFor(1))
	if status := statusOf(t, h.Leave(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := notiRepo.forRecipient(1); len(got) != 0 {
		t.Errorf("owner self-leave produced %d notifications, want 0", len(got))
	}
}

func TestLeaveUnknownCommunity(t *testing.T) {
	e := newTestEcho()
	h, _, _ := newCommunityHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/community/leave", `{"communityId":9}`, claimsFor(2))
	if status := statusOf(t, h.Leave(c), rec); status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestLeaveWithoutMembership(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, _ := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Open Club", Status: models.CommunityStatusApproved})

	c, rec := newJSONContext(e, http.MethodPost, "/community/leave", `{"communityId":1}`, claimsFor(2))
	if status := statusOf(t, h.Leave(c), rec); status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
}

func TestListOnlyApprovedCommunities(t *testing.T) {
	e := newTestEcho()
	h, communityRepo, _ := newCommunityHandlerFixture()
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Visible", Status: models.CommunityStatusApproved})
	communityRepo.CreateCommunity(&models.Community{OwnerID: 1, Name: "Hidden", Status: models.CommunityStatusPending})

	c, rec := newJSONContext(e, http.MethodGet, "/community/list", "", claimsFor(2))
	if status := statusOf(t, h.List(c), rec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Visible") || strings.Contains(body, "Hidden") {
		t.Errorf("list body = %s", body)
	}
}

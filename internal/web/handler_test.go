package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage/memory"
)

func setupHandler(t *testing.T) (*app.App, http.Handler) {
	t.Helper()

	store := memory.New()
	if err := app.Seed(context.Background(), store, models.InitialFriends()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	a := app.New(store, app.WithIDFunc(func() string { return "new-id" }))

	mux := http.NewServeMux()
	NewHandler(a).Register(mux)
	return a, mux
}

func get(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	return rec.Body.String()
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersFriends(t *testing.T) {
	_, h := setupHandler(t)

	body := get(t, h)
	for _, want := range []string{
		"You owe Clark 7£",
		"Sarah owes you 20£",
		"You and Anthony are even",
		"Add friend",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "form-split-bill") || strings.Contains(body, "form-add-friend") {
		t.Error("expected no forms in idle state")
	}
}

func TestAddFriendFlow(t *testing.T) {
	a, h := setupHandler(t)

	rec := post(t, h, "/friends/toggle", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("toggle status = %d, want 303", rec.Code)
	}
	if !strings.Contains(get(t, h), "form-add-friend") {
		t.Fatal("expected add-friend form after toggle")
	}

	rec = post(t, h, "/friends", url.Values{"name": {"Diana"}, "image": {models.DefaultAvatarURL}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("add status = %d, want 303", rec.Code)
	}

	friends, _ := a.Friends(context.Background())
	if len(friends) != 4 {
		t.Fatalf("expected 4 friends, got %d", len(friends))
	}
	if friends[3].Image != models.DefaultAvatarURL+"?=new-id" {
		t.Errorf("image = %q", friends[3].Image)
	}

	body := get(t, h)
	if !strings.Contains(body, "You and Diana are even") {
		t.Error("expected Diana in the list")
	}
	if strings.Contains(body, "form-add-friend") {
		t.Error("expected add-friend form to close after submit")
	}
}

func TestSplitBillFlow(t *testing.T) {
	a, h := setupHandler(t)

	rec := post(t, h, "/friends/933372/select", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("select status = %d, want 303", rec.Code)
	}
	if !strings.Contains(get(t, h), "Split a bill with Sarah") {
		t.Fatal("expected split-bill form for Sarah")
	}

	rec = post(t, h, "/split", url.Values{
		"bill_total": {"100"},
		"user_paid":  {"40"},
		"payer":      {"user"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("split status = %d, want 303", rec.Code)
	}

	body := get(t, h)
	if !strings.Contains(body, "Sarah owes you 80£") {
		t.Error("expected Sarah's balance to be 80")
	}
	if strings.Contains(body, "form-split-bill") {
		t.Error("expected split-bill form to close after submit")
	}
	if _, ok := a.Selected(); ok {
		t.Error("expected selection to be cleared")
	}
}

func TestSplitBillRejectsOverLimitShare(t *testing.T) {
	_, h := setupHandler(t)

	post(t, h, "/friends/118836/select", nil)
	post(t, h, "/split", url.Values{
		"bill_total": {"100"},
		"user_paid":  {"150"},
		"payer":      {"friend"},
	})

	body := get(t, h)
	if !strings.Contains(body, "You owe Clark 7£") {
		t.Error("expected Clark's balance to be unchanged")
	}
	if !strings.Contains(body, "Split a bill with Clark") {
		t.Error("expected split-bill form to stay open")
	}
}

func TestSelectUnknownFriend(t *testing.T) {
	_, h := setupHandler(t)

	rec := post(t, h, "/friends/ghost/select", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

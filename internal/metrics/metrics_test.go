package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/models"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe(app.Change{Entity: app.EntityFriend, Action: app.ActionAdded, FriendID: "a"})
	m.Observe(app.Change{Entity: app.EntitySelection, Action: app.ActionSelected, FriendID: "a"})
	m.Observe(app.Change{Entity: app.EntitySelection, Action: app.ActionCleared, FriendID: "a"})
	m.Observe(app.Change{Entity: app.EntityBill, Action: app.ActionSplit, FriendID: "a", Payer: models.PayerUser, Delta: 60})
	m.Observe(app.Change{Entity: app.EntityBill, Action: app.ActionSplit, FriendID: "a", Payer: models.PayerFriend, Delta: -40})

	if got := testutil.ToFloat64(m.FriendsAdded); got != 1 {
		t.Errorf("friends added = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Selections); got != 1 {
		t.Errorf("selections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.BillsSplit.WithLabelValues("user")); got != 1 {
		t.Errorf("bills split by user = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.BillsSplit.WithLabelValues("friend")); got != 1 {
		t.Errorf("bills split by friend = %v, want 1", got)
	}
}

func TestHandlerAndMiddleware(t *testing.T) {
	m := New()

	teapot := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	teapot.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"eatnsplit_http_request_duration_seconds_count{code=\"418\",method=\"GET\"} 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

// ABOUTME: Tests for the root TUI model
// ABOUTME: Covers screen routing, role gating and terminal session expiry

package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/client"
	"stayhub/internal/payment"
	"stayhub/internal/session"
	"stayhub/internal/tui/menu"
)

func newTestApp(t *testing.T, sess *session.Session) (*App, session.Store) {
	t.Helper()
	store := session.NewFileStore(t.TempDir())
	if sess != nil {
		if err := store.Set(sess); err != nil {
			t.Fatal(err)
		}
	}
	c := client.New("http://localhost:0/api/v1", store)
	return New(c, store, payment.Dummy{}), store
}

func customerSession() *session.Session {
	return &session.Session{
		AccessToken: "a", RefreshToken: "r",
		Username: "ravi", Role: session.RoleCustomer,
	}
}

func TestAppStartsOnMenuWithStoredSession(t *testing.T) {
	a, _ := newTestApp(t, customerSession())

	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if a.sess == nil || a.sess.Username != "ravi" {
		t.Errorf("expected stored session to be loaded, got %+v", a.sess)
	}
}

func TestAppListingsLoadedOpensBrowser(t *testing.T) {
	a, _ := newTestApp(t, nil)

	model, _ := a.Update(listingsLoadedMsg{listings: []client.Listing{
		{ID: "l1", Name: "Seaside Inn", Type: client.TypeHotel, IsActive: true},
	}})
	a = model.(*App)

	if a.screen != ScreenBrowse {
		t.Errorf("expected browse screen, got %d", a.screen)
	}
	if a.browser == nil {
		t.Error("expected browser model")
	}
}

func TestAppBookingsLoadedOpensTable(t *testing.T) {
	a, _ := newTestApp(t, customerSession())

	model, _ := a.Update(bookingsLoadedMsg{bookings: []client.Booking{{ID: "b1"}}})
	a = model.(*App)

	if a.screen != ScreenBookings {
		t.Errorf("expected bookings screen, got %d", a.screen)
	}
	if a.bookList == nil || a.bookList.Manage() {
		t.Error("expected non-manage table for a customer")
	}
}

func TestAppAuthResultStoresSessionAndRebuildMenu(t *testing.T) {
	a, _ := newTestApp(t, nil)

	model, _ := a.Update(authResultMsg{sess: customerSession()})
	a = model.(*App)

	if a.sess == nil || a.sess.Role != session.RoleCustomer {
		t.Fatalf("expected customer session, got %+v", a.sess)
	}
	found := false
	for _, label := range a.menu.Labels() {
		if label == "Log out" {
			found = true
		}
	}
	if !found {
		t.Error("expected rebuilt menu to include the logout entry")
	}
	if !a.loading {
		t.Error("expected the catalogue to start loading for a customer")
	}
}

func TestAppAuthFailureShowsStatus(t *testing.T) {
	a, _ := newTestApp(t, nil)

	model, _ := a.Update(authResultMsg{err: errors.New("invalid credentials")})
	a = model.(*App)

	if a.sess != nil {
		t.Error("failed auth must not set a session")
	}
	if !strings.Contains(a.status, "invalid credentials") {
		t.Errorf("expected error status, got %q", a.status)
	}
}

// A guest selecting a protected menu entry is denied locally: a status
// line appears and no screen change or load begins.
func TestAppGuestManageDenied(t *testing.T) {
	a, _ := newTestApp(t, nil)

	model, _ := a.Update(menu.ActionSelectedMsg{Action: menu.ActionManage})
	a = model.(*App)

	if a.screen != ScreenMenu {
		t.Errorf("expected to stay on menu, got %d", a.screen)
	}
	if a.loading {
		t.Error("denied action must not start loading")
	}
	if a.status == "" {
		t.Error("expected a denial message")
	}
}

func TestAppCustomerManageDenied(t *testing.T) {
	a, _ := newTestApp(t, customerSession())

	model, _ := a.Update(menu.ActionSelectedMsg{Action: menu.ActionManage})
	a = model.(*App)

	if a.screen != ScreenMenu || a.loading {
		t.Error("customers must not reach the management screen")
	}
}

func TestAppVendorManageAllowed(t *testing.T) {
	a, _ := newTestApp(t, &session.Session{
		AccessToken: "a", RefreshToken: "r",
		Username: "asha", Role: session.RoleVendor,
	})

	model, _ := a.Update(menu.ActionSelectedMsg{Action: menu.ActionManage})
	a = model.(*App)

	if !a.loading {
		t.Error("expected management listings to start loading")
	}
}

func TestAppSessionExpiryLogsOut(t *testing.T) {
	a, store := newTestApp(t, customerSession())
	a.screen = ScreenBookings

	model, _ := a.Update(bookingsLoadedMsg{err: client.ErrSessionExpired})
	a = model.(*App)

	if a.sess != nil {
		t.Error("expected session to be dropped")
	}
	if a.screen != ScreenMenu {
		t.Errorf("expected return to menu, got %d", a.screen)
	}
	sess, err := store.Get()
	if err != nil {
		t.Fatal(err)
	}
	if sess != nil {
		t.Error("expected stored session to be cleared")
	}
	if !strings.Contains(a.status, "log in again") {
		t.Errorf("expected re-login prompt, got %q", a.status)
	}
}

func TestAppOtherErrorsKeepSession(t *testing.T) {
	a, store := newTestApp(t, customerSession())

	model, _ := a.Update(bookingsLoadedMsg{err: errors.New("connection refused")})
	a = model.(*App)

	if a.sess == nil {
		t.Error("network errors must not log the user out")
	}
	sess, err := store.Get()
	if err != nil {
		t.Fatal(err)
	}
	if sess == nil {
		t.Error("stored session must survive network errors")
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	a, _ := newTestApp(t, nil)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a command from ctrl+c")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppViewContainsBranding(t *testing.T) {
	a, _ := newTestApp(t, customerSession())

	view := a.View()
	if !strings.Contains(view, "StayHub") {
		t.Error("expected app name in the header")
	}
	if !strings.Contains(view, "ravi") {
		t.Error("expected the logged-in user in the header")
	}
}

// The management screen works from the public listing endpoint; there
// is no vendor-specific route in the API.
func TestAppManageLoadsFromCatalogue(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path != "/list" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []client.Listing{{ID: "l1", Name: "Seaside Inn", IsActive: true}},
		})
	}))
	defer server.Close()

	store := session.NewFileStore(t.TempDir())
	if err := store.Set(&session.Session{
		AccessToken: "a", RefreshToken: "r",
		Username: "asha", Role: session.RoleVendor,
	}); err != nil {
		t.Fatal(err)
	}
	a := New(client.New(server.URL, store), store, payment.Dummy{})

	msg, ok := a.loadManageListings()().(manageLoadedMsg)
	if !ok {
		t.Fatal("expected manageLoadedMsg")
	}
	if gotPath != "/list" {
		t.Errorf("expected the public listing endpoint, got %q", gotPath)
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if len(msg.listings) != 1 || msg.listings[0].Name != "Seaside Inn" {
		t.Errorf("unexpected listings: %+v", msg.listings)
	}
}

func TestAppManageLoadedVendorFlag(t *testing.T) {
	a, _ := newTestApp(t, &session.Session{
		AccessToken: "a", RefreshToken: "r",
		Username: "asha", Role: session.RoleVendor,
	})

	model, _ := a.Update(manageLoadedMsg{listings: []client.Listing{{ID: "l1", Name: "Seaside Inn"}}})
	a = model.(*App)

	if a.screen != ScreenManage {
		t.Errorf("expected manage screen, got %d", a.screen)
	}
	if !strings.Contains(a.manager.View(), "My listings") {
		t.Error("expected vendor view")
	}
}

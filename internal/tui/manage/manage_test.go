// ABOUTME: Tests for the management screen
// ABOUTME: Creation keys are vendor-only; moderation works for both roles

package manage

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/client"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleListings() []client.Listing {
	return []client.Listing{
		{ID: "l1", Name: "Seaside Inn", Type: client.TypeHotel, Pricing: 4500, IsActive: true},
		{ID: "l2", Name: "Curry Leaf", Type: client.TypeRestaurant, Pricing: 800, IsActive: false},
	}
}

func TestManagerVendorOpensListingForm(t *testing.T) {
	m := New(sampleListings(), true)

	m, _ = m.Update(keyMsg("n"))
	if !m.FormOpen() {
		t.Error("expected listing form to open for a vendor")
	}
}

func TestManagerAdminCannotCreate(t *testing.T) {
	m := New(sampleListings(), false)

	m, _ = m.Update(keyMsg("n"))
	if m.FormOpen() {
		t.Error("admins must not open creation forms")
	}

	m, _ = m.Update(keyMsg("u"))
	if m.FormOpen() {
		t.Error("admins must not open the unit form")
	}
}

func TestManagerToggleFlipsActiveFlag(t *testing.T) {
	m := New(sampleListings(), false)

	_, cmd := m.Update(keyMsg("a"))
	if cmd == nil {
		t.Fatal("expected a command from a")
	}
	msg, ok := cmd().(ToggleRequestedMsg)
	if !ok {
		t.Fatalf("expected ToggleRequestedMsg, got %T", cmd())
	}
	if msg.ID != "l1" || msg.Active {
		t.Errorf("expected l1 deactivated, got %+v", msg)
	}

	m, _ = m.Update(keyMsg("j"))
	_, cmd = m.Update(keyMsg("a"))
	msg, ok = cmd().(ToggleRequestedMsg)
	if !ok {
		t.Fatalf("expected ToggleRequestedMsg, got %T", cmd())
	}
	if msg.ID != "l2" || !msg.Active {
		t.Errorf("expected l2 activated, got %+v", msg)
	}
}

func TestManagerDeleteKey(t *testing.T) {
	m := New(sampleListings(), true)

	_, cmd := m.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected a command from d")
	}
	msg, ok := cmd().(DeleteRequestedMsg)
	if !ok {
		t.Fatalf("expected DeleteRequestedMsg, got %T", cmd())
	}
	if msg.ID != "l1" {
		t.Errorf("expected l1, got %s", msg.ID)
	}
}

// An invalid listing form must reopen with an error and emit nothing.
func TestManagerSubmitInvalidListing(t *testing.T) {
	m := New(sampleListings(), true)
	m.openListingForm()
	m.name = ""
	m.pricing = "100"

	m, cmd := m.submit()

	if cmd != nil {
		if _, ok := cmd().(CreateListingMsg); ok {
			t.Fatal("invalid listing must not be submitted")
		}
	}
	if !m.FormOpen() {
		t.Error("expected form to stay open")
	}
	if m.errMsg == "" {
		t.Error("expected a validation error")
	}
}

func TestManagerSubmitListing(t *testing.T) {
	m := New(sampleListings(), true)
	m.openListingForm()
	m.name = "Hill View"
	m.address = "9 Ridge Rd"
	m.pricing = "2500"
	m.ltype = string(client.TypeHotel)
	m.facilities = "WiFi, Pool"

	m, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from a valid submit")
	}
	msg, ok := cmd().(CreateListingMsg)
	if !ok {
		t.Fatalf("expected CreateListingMsg, got %T", cmd())
	}

	l := msg.Listing
	if l.Name != "Hill View" || l.Pricing != 2500 {
		t.Errorf("unexpected listing: %+v", l)
	}
	if len(l.Facilities) != 2 || l.Facilities[0] != "WiFi" || l.Facilities[1] != "Pool" {
		t.Errorf("unexpected facilities: %v", l.Facilities)
	}
	if m.FormOpen() {
		t.Error("expected form to close after submit")
	}
}

func TestManagerSubmitUnit(t *testing.T) {
	m := New(sampleListings(), true)
	m.openUnitForm()
	m.unitType = "Suite"
	m.capacity = "2"
	m.unitPrice = "9000"
	m.features = "AC"
	m.count = "3"

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from a valid submit")
	}
	msg, ok := cmd().(CreateUnitMsg)
	if !ok {
		t.Fatalf("expected CreateUnitMsg, got %T", cmd())
	}

	u := msg.Unit
	if u.ListingID != "l1" || u.Type != "Suite" {
		t.Errorf("unexpected unit: %+v", u)
	}
	if u.Capacity != 2 || u.Price != 9000 || u.AvailableCount != 3 {
		t.Errorf("unexpected unit numbers: %+v", u)
	}
}

func TestManagerViewTitles(t *testing.T) {
	vendor := New(sampleListings(), true)
	if !strings.Contains(vendor.View(), "My listings") {
		t.Error("expected vendor title")
	}

	admin := New(sampleListings(), false)
	if !strings.Contains(admin.View(), "Moderate listings") {
		t.Error("expected admin title")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"WiFi, Pool", []string{"WiFi", "Pool"}},
		{"  AC  ", []string{"AC"}},
		{",,", nil},
		{"", nil},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := splitList(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestValidators(t *testing.T) {
	if err := validatePositiveNumber("12.5"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validatePositiveNumber("0"); err == nil {
		t.Error("expected error for zero price")
	}
	if err := validateNonNegativeInt("0"); err != nil {
		t.Errorf("zero count must be allowed: %v", err)
	}
	if err := validateNonNegativeInt("-1"); err == nil {
		t.Error("expected error for negative count")
	}
	if err := validatePositiveInt("0"); err == nil {
		t.Error("expected error for zero capacity")
	}
}

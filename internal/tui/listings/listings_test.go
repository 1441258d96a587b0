// ABOUTME: Tests for the listing browser
// ABOUTME: Validates filtering, selection and inactive hiding

package listings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stayhub/internal/client"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleListings() []client.Listing {
	return []client.Listing{
		{ID: "l1", Name: "Seaside Inn", Type: client.TypeHotel, Pricing: 4500, Address: "1 Beach Rd", IsActive: true},
		{ID: "l2", Name: "Curry Leaf", Type: client.TypeRestaurant, Pricing: 800, Address: "2 Spice St", IsActive: true},
		{ID: "l3", Name: "Ghost Hotel", Type: client.TypeHotel, Pricing: 100, Address: "3 Gone Ave", IsActive: false},
	}
}

func TestBrowserHidesInactive(t *testing.T) {
	b := New(sampleListings(), 80)

	visible := b.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible listings, got %d", len(visible))
	}
	for _, l := range visible {
		if !l.IsActive {
			t.Errorf("inactive listing %s must not be shown", l.Name)
		}
	}
}

func TestBrowserTypeFilterCycles(t *testing.T) {
	b := New(sampleListings(), 80)

	b, _ = b.Update(keyMsg("t"))
	if b.Filter() != client.TypeHotel {
		t.Errorf("expected hotel filter, got %q", b.Filter())
	}
	if len(b.Visible()) != 1 || b.Visible()[0].Name != "Seaside Inn" {
		t.Errorf("unexpected hotels: %v", b.Visible())
	}

	b, _ = b.Update(keyMsg("t"))
	if b.Filter() != client.TypeRestaurant {
		t.Errorf("expected restaurant filter, got %q", b.Filter())
	}

	b, _ = b.Update(keyMsg("t"))
	if b.Filter() != "" {
		t.Errorf("expected filter cleared, got %q", b.Filter())
	}
}

func TestBrowserSelect(t *testing.T) {
	b := New(sampleListings(), 80)

	b, _ = b.Update(keyMsg("down"))
	b, cmd := b.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	msg, ok := cmd().(ListingChosenMsg)
	if !ok {
		t.Fatalf("expected ListingChosenMsg, got %T", cmd())
	}
	if msg.Listing.ID != "l2" {
		t.Errorf("expected l2 chosen, got %s", msg.Listing.ID)
	}
}

func TestBrowserBack(t *testing.T) {
	b := New(sampleListings(), 80)

	_, cmd := b.Update(keyMsg("b"))
	if cmd == nil {
		t.Fatal("expected a command from b")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}

func TestBrowserViewShowsListings(t *testing.T) {
	b := New(sampleListings(), 80)

	view := b.View()
	if !strings.Contains(view, "Seaside Inn") {
		t.Error("expected view to contain active hotel")
	}
	if !strings.Contains(view, "Curry Leaf") {
		t.Error("expected view to contain active restaurant")
	}
	if strings.Contains(view, "Ghost Hotel") {
		t.Error("inactive listing must not be rendered")
	}
}

func TestBrowserEmptyView(t *testing.T) {
	b := New(nil, 80)

	if !strings.Contains(b.View(), "Nothing here yet") {
		t.Error("expected empty-state hint")
	}
}

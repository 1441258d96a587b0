// ABOUTME: Tests for listing search, creation and moderation endpoints
// ABOUTME: Covers query building and the multipart creation body

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayhub/internal/session"
)

func TestListings_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "Hotel" {
			t.Errorf("expected type Hotel, got %s", q.Get("type"))
		}
		if q.Get("location") != "Goa" {
			t.Errorf("expected location Goa, got %s", q.Get("location"))
		}
		if q.Get("maxPrice") != "8000" {
			t.Errorf("expected maxPrice 8000, got %s", q.Get("maxPrice"))
		}
		if q.Get("sortByPrice") != "lowToHigh" {
			t.Errorf("expected sortByPrice lowToHigh, got %s", q.Get("sortByPrice"))
		}
		writeData(t, w, []Listing{{ID: "l1", Name: "Seaside", Type: TypeHotel, IsActive: true}})
	}))
	defer server.Close()

	c := New(server.URL, session.NewFileStore(t.TempDir()))

	listings, err := c.Listings(context.Background(), SearchFilter{
		Type:        TypeHotel,
		Location:    "Goa",
		MaxPrice:    8000,
		SortByPrice: SortLowToHigh,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 1 || listings[0].Name != "Seaside" {
		t.Errorf("unexpected listings: %+v", listings)
	}
}

func TestListings_NoFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query string, got %s", r.URL.RawQuery)
		}
		writeData(t, w, []Listing{})
	}))
	defer server.Close()

	c := New(server.URL, session.NewFileStore(t.TempDir()))
	if _, err := c.Listings(context.Background(), SearchFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListings_RejectsBadSort(t *testing.T) {
	c := New("http://unused", session.NewFileStore(t.TempDir()))

	_, err := c.Listings(context.Background(), SearchFilter{SortByPrice: "cheapest"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for bad sort, got %v", err)
	}
}

func TestCreateListing_Multipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if got := r.FormValue("name"); got != "Seaside Inn" {
			t.Errorf("expected name field, got %q", got)
		}
		if got := r.FormValue("type"); got != "Hotel" {
			t.Errorf("expected type Hotel, got %q", got)
		}
		var facilities []string
		if err := json.Unmarshal([]byte(r.FormValue("facilities")), &facilities); err != nil {
			t.Errorf("facilities must be a JSON array: %v", err)
		}
		if len(facilities) != 2 || facilities[0] != "WiFi" {
			t.Errorf("unexpected facilities: %v", facilities)
		}
		files := r.MultipartForm.File["images"]
		if len(files) != 1 || files[0].Filename != "front.jpg" {
			t.Errorf("expected one image part, got %v", files)
		}
		w.WriteHeader(http.StatusCreated)
		writeData(t, w, Listing{ID: "l2", Name: "Seaside Inn"})
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	created, err := c.CreateListing(context.Background(), NewListing{
		Name:       "Seaside Inn",
		Address:    "1 Beach Rd",
		Pricing:    4500,
		Type:       TypeHotel,
		Facilities: []string{"WiFi", "Pool"},
		Images:     []ImageFile{{Name: "front.jpg", Data: []byte("jpegdata")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "l2" {
		t.Errorf("expected created listing l2, got %+v", created)
	}
}

func TestCreateListing_ValidatesLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must be sent for an invalid form")
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	tests := []struct {
		name    string
		listing NewListing
	}{
		{"missing name", NewListing{Address: "x", Pricing: 100, Type: TypeHotel}},
		{"missing address", NewListing{Name: "x", Pricing: 100, Type: TypeHotel}},
		{"zero price", NewListing{Name: "x", Address: "y", Type: TypeHotel}},
		{"bad type", NewListing{Name: "x", Address: "y", Pricing: 100, Type: "Motel"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.CreateListing(context.Background(), tc.listing)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestToggleListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/list/l1/toggle" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		if body["isActive"] != false {
			t.Errorf("expected isActive false, got %v", body)
		}
		writeData(t, w, nil)
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))
	if err := c.ToggleListing(context.Background(), "l1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/list/l1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeData(t, w, nil)
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))
	if err := c.DeleteListing(context.Background(), "l1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

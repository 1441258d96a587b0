// ABOUTME: Tests for booking creation, listing, update and deletion
// ABOUTME: Hotel date rules and status vocabularies are exercised here

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewBooking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		booking NewBooking
		wantErr bool
	}{
		{
			name: "restaurant needs no dates",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1",
				ListingType: TypeRestaurant, Units: 2, Amount: 1600,
			},
		},
		{
			name: "hotel with dates",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
				CheckIn: "2026-09-01", CheckOut: "2026-09-03",
				Units: 1, Amount: 6400,
			},
		},
		{
			name: "hotel without dates",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
				Units: 1, Amount: 6400,
			},
			wantErr: true,
		},
		{
			name: "check-out before check-in",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
				CheckIn: "2026-09-03", CheckOut: "2026-09-01",
				Units: 1, Amount: 6400,
			},
			wantErr: true,
		},
		{
			name: "same-day stay rejected",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
				CheckIn: "2026-09-01", CheckOut: "2026-09-01",
				Units: 1, Amount: 6400,
			},
			wantErr: true,
		},
		{
			name: "malformed date",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
				CheckIn: "01/09/2026", CheckOut: "2026-09-03",
				Units: 1, Amount: 6400,
			},
			wantErr: true,
		},
		{
			name: "zero units",
			booking: NewBooking{
				ListingID: "l1", UnitID: "u1",
				ListingType: TypeRestaurant, Units: 0, Amount: 100,
			},
			wantErr: true,
		},
		{
			name: "missing unit",
			booking: NewBooking{
				ListingID: "l1", ListingType: TypeRestaurant,
				Units: 1, Amount: 100,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.booking.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateBooking_HotelPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["checkIn"] != "2026-09-01" || body["checkOut"] != "2026-09-03" {
			t.Errorf("expected hotel dates in payload, got %v", body)
		}
		if body["noOfUnits"].(float64) != 2 {
			t.Errorf("expected noOfUnits 2, got %v", body["noOfUnits"])
		}
		pd := body["paymentDetails"].(map[string]any)
		if pd["paymentStatus"] != "Pending" {
			t.Errorf("new bookings must start with pending payment, got %v", pd)
		}
		w.WriteHeader(http.StatusCreated)
		writeData(t, w, Booking{ID: "b1", Status: StatusPending})
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	booking, err := c.CreateBooking(context.Background(), NewBooking{
		ListingID: "l1", UnitID: "u1", ListingType: TypeHotel,
		CheckIn: "2026-09-01", CheckOut: "2026-09-03",
		Units: 2, Amount: 12800,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID != "b1" || booking.Status != StatusPending {
		t.Errorf("unexpected booking: %+v", booking)
	}
}

func TestCreateBooking_RestaurantOmitsDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["checkIn"]; ok {
			t.Error("restaurant booking must not carry checkIn")
		}
		w.WriteHeader(http.StatusCreated)
		writeData(t, w, Booking{ID: "b2"})
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	_, err := c.CreateBooking(context.Background(), NewBooking{
		ListingID: "l1", UnitID: "u1", ListingType: TypeRestaurant,
		Units: 4, Amount: 3200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookingEndpointsPerRole(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeData(t, w, []Booking{})
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	if _, err := c.Bookings(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/book" {
		t.Errorf("vendor listing must hit /book, got %s", path)
	}

	if _, err := c.CustomerBookings(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/book/customer" {
		t.Errorf("customer listing must hit /book/customer, got %s", path)
	}
}

func TestUpdateBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/book/b1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "Confirmed" || body["paymentStatus"] != "Paid" {
			t.Errorf("unexpected body %v", body)
		}
		writeData(t, w, Booking{ID: "b1", Status: StatusConfirmed})
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))

	updated, err := c.UpdateBooking(context.Background(), "b1", StatusConfirmed, PaymentPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("unexpected booking: %+v", updated)
	}
}

func TestUpdateBooking_RejectsUnknownStatus(t *testing.T) {
	c := New("http://unused", seededStore(t))

	var vErr *ValidationError
	if _, err := c.UpdateBooking(context.Background(), "b1", "Done", PaymentPaid); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for bad status, got %v", err)
	}
	if _, err := c.UpdateBooking(context.Background(), "b1", StatusConfirmed, "Settled"); !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for bad payment status, got %v", err)
	}
}

func TestDeleteBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/book/b1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeData(t, w, nil)
	}))
	defer server.Close()

	c := New(server.URL, seededStore(t))
	if err := c.DeleteBooking(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

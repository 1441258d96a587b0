// ABOUTME: Booking entity and the booking endpoints per role
// ABOUTME: Hotel bookings require dates; restaurant bookings do not

package client

import (
	"context"
	"net/http"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether the status is one of the known states.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a booking's payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentFailed  PaymentStatus = "Failed"
)

// Valid reports whether the payment status is one of the known states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed:
		return true
	}
	return false
}

// BookingDates only carry meaning for hotel bookings.
type BookingDates struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// PaymentDetails is the payment summary attached to a booking.
type PaymentDetails struct {
	Amount        float64       `json:"amount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// BookingListing is the populated listing reference on a booking.
type BookingListing struct {
	ID   string      `json:"_id"`
	Name string      `json:"name"`
	Type ListingType `json:"type"`
}

// BookingUnit is the populated unit reference on a booking.
type BookingUnit struct {
	ID   string `json:"_id"`
	Type string `json:"type"`
}

// BookingCustomer is the populated customer reference on a booking.
type BookingCustomer struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Booking is a reservation of units on a listing.
type Booking struct {
	ID             string          `json:"_id"`
	Listing        BookingListing  `json:"listingID"`
	Unit           BookingUnit     `json:"unitID"`
	Customer       BookingCustomer `json:"customerID"`
	BookingDates   *BookingDates   `json:"bookingDates,omitempty"`
	NoOfBookedUnit int             `json:"noOfBookedUnit"`
	Status         BookingStatus   `json:"status"`
	PaymentDetails PaymentDetails  `json:"paymentDetails"`
}

const dateLayout = "2006-01-02"

// NewBooking is the customer-side booking form. CheckIn and CheckOut
// are YYYY-MM-DD strings from the form; they are required only when
// the listing is a hotel.
type NewBooking struct {
	ListingID   string
	UnitID      string
	ListingType ListingType
	CheckIn     string
	CheckOut    string
	Units       int
	Amount      float64
}

// Validate blocks submission locally before any network call.
func (b *NewBooking) Validate() error {
	if b.ListingID == "" {
		return &ValidationError{Field: "listing", Reason: "id is required"}
	}
	if b.UnitID == "" {
		return &ValidationError{Field: "unit", Reason: "is required"}
	}
	if b.Units < 1 {
		return &ValidationError{Field: "units", Reason: "must be at least 1"}
	}
	if b.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if b.ListingType == TypeHotel {
		if b.CheckIn == "" || b.CheckOut == "" {
			return &ValidationError{Field: "dates", Reason: "check-in and check-out are required for hotels"}
		}
		in, err := time.Parse(dateLayout, b.CheckIn)
		if err != nil {
			return &ValidationError{Field: "check-in", Reason: "must be a date like 2026-01-31"}
		}
		out, err := time.Parse(dateLayout, b.CheckOut)
		if err != nil {
			return &ValidationError{Field: "check-out", Reason: "must be a date like 2026-01-31"}
		}
		if !out.After(in) {
			return &ValidationError{Field: "check-out", Reason: "must be after check-in"}
		}
	}
	return nil
}

// CreateBooking places a booking; payment is settled afterwards, so the
// booking starts with a pending payment.
func (c *Client) CreateBooking(ctx context.Context, booking NewBooking) (*Booking, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"listingID": booking.ListingID,
		"unitID":    booking.UnitID,
		"noOfUnits": booking.Units,
		"paymentDetails": PaymentDetails{
			Amount:        booking.Amount,
			PaymentStatus: PaymentPending,
		},
	}
	if booking.ListingType == TypeHotel {
		payload["checkIn"] = booking.CheckIn
		payload["checkOut"] = booking.CheckOut
	}

	var created Booking
	if err := c.authedJSON(ctx, http.MethodPost, "/book", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Bookings lists all bookings visible to a vendor or admin.
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.authedJSON(ctx, http.MethodGet, "/book", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CustomerBookings lists the logged-in customer's own bookings.
func (c *Client) CustomerBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.authedJSON(ctx, http.MethodGet, "/book/customer", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBooking sets the status and payment status of a booking.
func (c *Client) UpdateBooking(ctx context.Context, id string, status BookingStatus, payment PaymentStatus) (*Booking, error) {
	if id == "" {
		return nil, &ValidationError{Field: "booking", Reason: "id is required"}
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "must be Pending, Confirmed or Cancelled"}
	}
	if !payment.Valid() {
		return nil, &ValidationError{Field: "payment status", Reason: "must be Paid, Pending or Failed"}
	}

	payload := map[string]any{
		"status":        status,
		"paymentStatus": payment,
	}
	var updated Booking
	if err := c.authedJSON(ctx, http.MethodPut, "/book/"+id, payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "booking", Reason: "id is required"}
	}
	return c.authedJSON(ctx, http.MethodDelete, "/book/"+id, nil, nil)
}

// ABOUTME: Unit entity (room or table category) and its endpoints
// ABOUTME: Enforces the availability-within-capacity invariant client side

package client

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Availability describes how many of a unit can currently be booked.
type Availability struct {
	Count         int       `json:"count"`
	IsAvailable   bool      `json:"isAvailable"`
	AvailableFrom time.Time `json:"availableFrom"`
}

// Unit is a bookable sub-resource of a listing. The API returns the
// parent listing populated under "list".
type Unit struct {
	ID           string       `json:"_id"`
	Listing      Listing      `json:"list"`
	Type         string       `json:"type"`
	Capacity     int          `json:"capacity"`
	Price        float64      `json:"price"`
	Features     string       `json:"features"`
	Availability Availability `json:"availability"`
}

// FeatureList splits the comma-joined feature field.
func (u *Unit) FeatureList() []string {
	if strings.TrimSpace(u.Features) == "" {
		return nil
	}
	parts := strings.Split(u.Features, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// UnitsForListing fetches the units of a listing.
func (c *Client) UnitsForListing(ctx context.Context, listingID string) ([]Unit, error) {
	if listingID == "" {
		return nil, &ValidationError{Field: "listing", Reason: "id is required"}
	}
	var units []Unit
	if err := c.authedJSON(ctx, http.MethodGet, "/unit/"+listingID, nil, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// NewUnit is the vendor-side unit creation form.
type NewUnit struct {
	ListingID      string
	VendorID       string
	Type           string
	Capacity       int
	Price          float64
	Features       []string
	AvailableCount int
}

// Validate blocks submission locally before any network call. In
// particular, the available count may never exceed the capacity.
func (u *NewUnit) Validate() error {
	if u.ListingID == "" {
		return &ValidationError{Field: "listing", Reason: "id is required"}
	}
	if strings.TrimSpace(u.Type) == "" {
		return &ValidationError{Field: "type", Reason: "is required"}
	}
	if u.Capacity < 1 {
		return &ValidationError{Field: "capacity", Reason: "must be at least 1"}
	}
	if u.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if u.AvailableCount < 0 {
		return &ValidationError{Field: "availability", Reason: "count must not be negative"}
	}
	if u.AvailableCount > u.Capacity {
		return &ValidationError{Field: "availability", Reason: "count cannot exceed capacity"}
	}
	return nil
}

// CreateUnit adds a unit to one of the vendor's listings.
func (c *Client) CreateUnit(ctx context.Context, unit NewUnit) (*Unit, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"list":     unit.ListingID,
		"type":     unit.Type,
		"capacity": unit.Capacity,
		"price":    unit.Price,
		"features": strings.Join(unit.Features, ", "),
		"availability": Availability{
			Count:         unit.AvailableCount,
			IsAvailable:   unit.AvailableCount > 0,
			AvailableFrom: time.Now().UTC(),
		},
	}
	if unit.VendorID != "" {
		payload["vendor"] = unit.VendorID
	}

	var created Unit
	if err := c.authedJSON(ctx, http.MethodPost, "/unit", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

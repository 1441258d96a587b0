// ABOUTME: Listing entity and the listing endpoints (search, create, moderate)
// ABOUTME: Listing creation uses a multipart body to carry images

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListingType distinguishes hotels from restaurants.
type ListingType string

const (
	TypeHotel      ListingType = "Hotel"
	TypeRestaurant ListingType = "Restaurant"
)

// Listing is a bookable property. Authoritative on the server; the
// client only holds render-scoped copies.
type Listing struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Description string      `json:"description"`
	Pricing     float64     `json:"pricing"`
	Type        ListingType `json:"type"`
	Facilities  []string    `json:"facilities"`
	Images      []string    `json:"images"`
	IsActive    bool        `json:"isActive"`
	VendorID    string      `json:"vendorID"`
}

// Sort orders accepted by the listing search.
const (
	SortLowToHigh = "lowToHigh"
	SortHighToLow = "highToLow"
)

// SearchFilter narrows the public listing search. Zero values mean
// "no filter".
type SearchFilter struct {
	Type        ListingType
	Location    string
	MaxPrice    int
	SortByPrice string
}

func (f SearchFilter) query() (string, error) {
	if f.SortByPrice != "" && f.SortByPrice != SortLowToHigh && f.SortByPrice != SortHighToLow {
		return "", &ValidationError{Field: "sort", Reason: "must be lowToHigh or highToLow"}
	}
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(f.MaxPrice))
	}
	if f.SortByPrice != "" {
		q.Set("sortByPrice", f.SortByPrice)
	}
	if len(q) == 0 {
		return "", nil
	}
	return "?" + q.Encode(), nil
}

// Listings calls the public search endpoint.
func (c *Client) Listings(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	q, err := filter.query()
	if err != nil {
		return nil, err
	}
	var listings []Listing
	if err := c.publicJSON(ctx, http.MethodGet, "/list"+q, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Listing fetches a single listing by ID.
func (c *Client) Listing(ctx context.Context, id string) (*Listing, error) {
	if id == "" {
		return nil, &ValidationError{Field: "listing", Reason: "id is required"}
	}
	var listing Listing
	if err := c.publicJSON(ctx, http.MethodGet, "/list/"+id, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// ImageFile is an image attached to a new listing.
type ImageFile struct {
	Name string
	Data []byte
}

// NewListing is the vendor-side creation form.
type NewListing struct {
	Name        string
	Address     string
	Description string
	Pricing     float64
	Type        ListingType
	Facilities  []string
	Images      []ImageFile
}

// Validate blocks submission locally before any network call.
func (l *NewListing) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(l.Address) == "" {
		return &ValidationError{Field: "address", Reason: "is required"}
	}
	if l.Pricing <= 0 {
		return &ValidationError{Field: "pricing", Reason: "must be greater than zero"}
	}
	if l.Type != TypeHotel && l.Type != TypeRestaurant {
		return &ValidationError{Field: "type", Reason: "must be Hotel or Restaurant"}
	}
	return nil
}

// multipartBody renders the creation form the way the API expects it:
// plain fields, facilities as a JSON array, images as file parts.
func (l *NewListing) multipartBody() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        l.Name,
		"address":     l.Address,
		"description": l.Description,
		"pricing":     strconv.FormatFloat(l.Pricing, 'f', -1, 64),
		"type":        string(l.Type),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	facilities, err := json.Marshal(l.Facilities)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("facilities", string(facilities)); err != nil {
		return nil, "", err
	}

	for _, img := range l.Images {
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// CreateListing creates a listing on behalf of the logged-in vendor.
func (c *Client) CreateListing(ctx context.Context, listing NewListing) (*Listing, error) {
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	body, contentType, err := listing.multipartBody()
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/list", contentType, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.doAuthed(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created Listing
	if err := c.decode(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteListing removes a listing.
func (c *Client) DeleteListing(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "listing", Reason: "id is required"}
	}
	return c.authedJSON(ctx, http.MethodDelete, "/list/"+id, nil, nil)
}

// ToggleListing flips a listing's active flag.
func (c *Client) ToggleListing(ctx context.Context, id string, active bool) error {
	if id == "" {
		return &ValidationError{Field: "listing", Reason: "id is required"}
	}
	payload := map[string]bool{"isActive": active}
	return c.authedJSON(ctx, http.MethodPatch, "/list/"+id+"/toggle", payload, nil)
}

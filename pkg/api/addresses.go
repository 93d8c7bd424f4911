package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cafeorder/cafe-client/pkg/validators"
)

// AddressSubmitRequest is the create/update payload for an address.
type AddressSubmitRequest struct {
	Content string `json:"content" validate:"required"`
}

// addressResponse is the create/update echo; the member sub-object is
// dropped at this boundary.
type addressResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// Addresses lists the current user's saved addresses.
func (c *Client) Addresses(ctx context.Context) ([]Address, error) {
	var list []Address
	if err := c.doJSON(ctx, "addresses.list", http.MethodGet, "/api/addresses", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Address{}
	}
	return list, nil
}

// SubmitAddress registers a new address and returns the created record.
// New addresses are never the default.
func (c *Client) SubmitAddress(ctx context.Context, content string) (Address, error) {
	req := AddressSubmitRequest{Content: content}
	if err := validators.Struct(req); err != nil {
		return Address{}, err
	}
	var resp addressResponse
	if err := c.doJSON(ctx, "addresses.create", http.MethodPost, "/api/addresses", req, &resp); err != nil {
		return Address{}, err
	}
	return Address{ID: resp.ID, Content: resp.Content, IsDefault: false}, nil
}

// UpdateAddress replaces an address's content and returns the updated
// record.
func (c *Client) UpdateAddress(ctx context.Context, addressID int64, content string) (Address, error) {
	req := AddressSubmitRequest{Content: content}
	if err := validators.Struct(req); err != nil {
		return Address{}, err
	}
	var resp addressResponse
	path := fmt.Sprintf("/api/addresses/%d", addressID)
	if err := c.doJSON(ctx, "addresses.update", http.MethodPut, path, req, &resp); err != nil {
		return Address{}, err
	}
	return Address{ID: resp.ID, Content: resp.Content}, nil
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	path := fmt.Sprintf("/api/addresses/%d", addressID)
	return c.doJSON(ctx, "addresses.delete", http.MethodDelete, path, nil, nil)
}

// SetDefaultAddress marks the address as the checkout default; the backend
// clears the flag on every other address.
func (c *Client) SetDefaultAddress(ctx context.Context, addressID int64) error {
	path := fmt.Sprintf("/api/addresses/%d/default", addressID)
	return c.doJSON(ctx, "addresses.set_default", http.MethodPut, path, nil, nil)
}

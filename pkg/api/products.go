package api

import (
	"context"
	"fmt"
	"net/http"
)

const (
	// DefaultPageSize matches the listing screen's single-page fetch.
	DefaultPageSize = 100
)

// Products fetches one page of the catalog. Page numbering starts at 1.
func (c *Client) Products(ctx context.Context, page, pageSize int) (ProductPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var result ProductPage
	path := fmt.Sprintf("/api/products?page=%d&pageSize=%d", page, pageSize)
	if err := c.doJSON(ctx, "products.list", http.MethodGet, path, nil, &result); err != nil {
		return ProductPage{}, err
	}
	if result.Items == nil {
		result.Items = []Product{}
	}
	return result, nil
}

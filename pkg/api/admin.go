package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/validators"
)

// ProductUpsertRequest is the JSON part of the multipart product
// create/update payload.
type ProductUpsertRequest struct {
	ProductName string `json:"productName" validate:"required,min=1,max=100"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Orderable   bool   `json:"orderable"`
}

// AdminOrders lists every order in the system. Admin session required.
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var list []Order
	if err := c.doJSON(ctx, "admin.orders", http.MethodGet, "/api/adm/orders", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Order{}
	}
	for i := range list {
		normalizeOrder(&list[i])
	}
	return list, nil
}

// AdminOrderDetail fetches one order with customer identity attached.
func (c *Client) AdminOrderDetail(ctx context.Context, orderID int64) (AdminOrderDetail, error) {
	var detail AdminOrderDetail
	path := fmt.Sprintf("/api/adm/orders/%d/detail", orderID)
	if err := c.doJSON(ctx, "admin.order_detail", http.MethodGet, path, nil, &detail); err != nil {
		return AdminOrderDetail{}, err
	}
	normalizeAdminOrderDetail(&detail)
	return detail, nil
}

// UpdateOrderStatus moves an order to the given status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) (OrderStatusResult, error) {
	if !status.IsValid() {
		return OrderStatusResult{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}
	var result OrderStatusResult
	path := fmt.Sprintf("/api/adm/orders/%d/status", orderID)
	if err := c.doJSON(ctx, "admin.update_status", http.MethodPut, path, orderStatusRequest{Status: status.String()}, &result); err != nil {
		return OrderStatusResult{}, err
	}
	return result, nil
}

// CreateProduct registers a product. A nil image skips the file part and
// the backend keeps the product imageless.
func (c *Client) CreateProduct(ctx context.Context, req ProductUpsertRequest, imageName string, image io.Reader) (Product, error) {
	if err := validators.Struct(req); err != nil {
		return Product{}, err
	}
	var product Product
	if err := c.doMultipart(ctx, "admin.create_product", http.MethodPost, "/api/adm/products", req, imageName, image, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces a product's fields. A nil image leaves the
// stored image untouched.
func (c *Client) UpdateProduct(ctx context.Context, productID int64, req ProductUpsertRequest, imageName string, image io.Reader) (Product, error) {
	if err := validators.Struct(req); err != nil {
		return Product{}, err
	}
	var product Product
	path := fmt.Sprintf("/api/adm/products/%d", productID)
	if err := c.doMultipart(ctx, "admin.update_product", http.MethodPut, path, req, imageName, image, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/adm/products/%d", productID)
	return c.doJSON(ctx, "admin.delete_product", http.MethodDelete, path, nil, nil)
}

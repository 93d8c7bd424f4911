package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cafeorder/cafe-client/pkg/validators"
)

// OrderItemCreate is one (product, count) pair of an order-create request.
// Prices are never client-supplied; the backend snapshots them at creation.
type OrderItemCreate struct {
	ProductID int64 `json:"productId" validate:"required"`
	Count     int   `json:"count" validate:"required,gt=0"`
}

// OrderCreateRequest is the order-create payload.
type OrderCreateRequest struct {
	CustomerAddress string            `json:"customerAddress" validate:"required"`
	OrderItems      []OrderItemCreate `json:"orderItems" validate:"required,min=1,dive"`
}

type orderUpdateAddressRequest struct {
	NewAddress string `json:"newAddress"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder submits the order and returns the backend's echo. The echo
// may omit order items; callers wanting the canonical record must refetch.
func (c *Client) CreateOrder(ctx context.Context, req OrderCreateRequest) (Order, error) {
	if err := validators.Struct(req); err != nil {
		return Order{}, err
	}
	var order Order
	if err := c.doJSON(ctx, "orders.create", http.MethodPost, "/api/orders", req, &order); err != nil {
		return Order{}, err
	}
	normalizeOrder(&order)
	return order, nil
}

// CancelOrder cancels an order. The backend rejects states other than
// ORDERED.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/api/orders/%d", orderID)
	return c.doJSON(ctx, "orders.cancel", http.MethodDelete, path, nil, nil)
}

// UpdateOrderAddress changes the shipping address of an ORDERED order.
func (c *Client) UpdateOrderAddress(ctx context.Context, orderID int64, newAddress string) error {
	path := fmt.Sprintf("/api/orders/%d/address", orderID)
	return c.doJSON(ctx, "orders.update_address", http.MethodPut, path, orderUpdateAddressRequest{NewAddress: newAddress}, nil)
}

// MemberOrders lists the current user's orders.
func (c *Client) MemberOrders(ctx context.Context) ([]UserOrder, error) {
	var list []UserOrder
	if err := c.doJSON(ctx, "members.orders", http.MethodGet, "/api/members/orders", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []UserOrder{}
	}
	for i := range list {
		normalizeUserOrder(&list[i])
	}
	return list, nil
}

// MemberOrderDetail fetches one of the current user's orders with
// display-ready item data.
func (c *Client) MemberOrderDetail(ctx context.Context, orderID int64) (UserOrderDetail, error) {
	var detail UserOrderDetail
	path := fmt.Sprintf("/api/members/orders/%d", orderID)
	if err := c.doJSON(ctx, "members.order_detail", http.MethodGet, path, nil, &detail); err != nil {
		return UserOrderDetail{}, err
	}
	normalizeUserOrderDetail(&detail)
	return detail, nil
}

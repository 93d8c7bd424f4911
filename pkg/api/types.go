package api

import "github.com/cafeorder/cafe-client/pkg/enums"

// User mirrors the backend's member payload.
type User struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// Product mirrors the backend's product payload. ImageURL is nil when no
// image was uploaded.
type Product struct {
	ID           int64   `json:"id"`
	CreatedDate  string  `json:"createdDate"`
	ModifiedDate string  `json:"modifiedDate"`
	ProductName  string  `json:"productName"`
	Price        int     `json:"price"`
	ImageURL     *string `json:"imageUrl"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Orderable    bool    `json:"orderable"`
}

// ProductPage carries one page of the catalog plus pagination metadata.
type ProductPage struct {
	Items         []Product `json:"items"`
	TotalPages    int       `json:"totalPages"`
	TotalItems    int       `json:"totalItems"`
	CurrentPageNo int       `json:"currentPageNo"`
	PageSize      int       `json:"pageSize"`
}

// Address is one saved shipping address of the current user.
type Address struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	IsDefault bool   `json:"isDefault"`
}

// Order mirrors the backend's order payload (admin list and order create).
type Order struct {
	ID              int64             `json:"id"`
	CustomerEmail   string            `json:"customerEmail"`
	CreatedDate     string            `json:"createdDate"`
	State           enums.OrderStatus `json:"state"`
	CustomerAddress string            `json:"customerAddress"`
	OrderItems      []OrderItem       `json:"orderItems"`
}

// OrderItem is one line of an order. ProductName may be empty when the
// product has since been deleted; normalization keeps it a plain string so
// callers never null-coalesce.
type OrderItem struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Count       int    `json:"count"`
	Price       int    `json:"price"`
}

// UserOrder is the customer-facing order summary.
type UserOrder struct {
	OrderID         int64           `json:"orderId"`
	OrderDate       string          `json:"orderDate"`
	Status          string          `json:"status"`
	CustomerAddress string          `json:"customerAddress"`
	OrderItems      []UserOrderItem `json:"orderItems"`
}

// UserOrderItem is one line of a customer order summary.
type UserOrderItem struct {
	ProductName string `json:"productName"`
	ProductID   int64  `json:"productId"`
	Count       int    `json:"count"`
	Price       int    `json:"price"`
}

// UserOrderDetail is the customer-facing order detail, whose items carry
// product image and category for display.
type UserOrderDetail struct {
	OrderID         int64                 `json:"orderId"`
	OrderDate       string                `json:"orderDate"`
	Status          string                `json:"status"`
	CustomerAddress string                `json:"customerAddress"`
	OrderItems      []UserOrderDetailItem `json:"orderItems"`
}

// UserOrderDetailItem is one line of a customer order detail.
type UserOrderDetailItem struct {
	ProductName     string `json:"productName"`
	ProductID       int64  `json:"productId"`
	ProductImageURL string `json:"productImageUrl"`
	ProductCategory string `json:"productCategory"`
	Count           int    `json:"count"`
	Price           int    `json:"price"`
}

// AdminOrderDetail is the admin-facing order detail including customer
// identity.
type AdminOrderDetail struct {
	ID              int64       `json:"id"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerName    string      `json:"customerName"`
	CustomerAddress string      `json:"customerAddress"`
	State           string      `json:"state"`
	CreatedDate     string      `json:"createdDate"`
	OrderItems      []OrderItem `json:"orderItems"`
}

// OrderStatusResult echoes the outcome of an admin status change.
type OrderStatusResult struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// normalizeOrder guarantees a non-nil item slice; the backend omits
// orderItems on some payloads.
func normalizeOrder(order *Order) {
	if order.OrderItems == nil {
		order.OrderItems = []OrderItem{}
	}
}

func normalizeUserOrder(order *UserOrder) {
	if order.OrderItems == nil {
		order.OrderItems = []UserOrderItem{}
	}
}

func normalizeUserOrderDetail(detail *UserOrderDetail) {
	if detail.OrderItems == nil {
		detail.OrderItems = []UserOrderDetailItem{}
	}
}

func normalizeAdminOrderDetail(detail *AdminOrderDetail) {
	if detail.OrderItems == nil {
		detail.OrderItems = []OrderItem{}
	}
}

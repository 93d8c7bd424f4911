package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

type orderAPI interface {
	CreateOrder(ctx context.Context, req api.OrderCreateRequest) (api.Order, error)
	CancelOrder(ctx context.Context, orderID int64) error
	UpdateOrderAddress(ctx context.Context, orderID int64, newAddress string) error
	MemberOrders(ctx context.Context) ([]api.UserOrder, error)
	MemberOrderDetail(ctx context.Context, orderID int64) (api.UserOrderDetail, error)
}

type authChecker interface {
	IsAuthenticated() bool
}

// Store mirrors the current user's orders. Mutations follow a refetch
// discipline: after the backend accepts a change the whole list is
// reloaded rather than patched, so local state never drifts from
// backend-side pricing or status transitions.
type Store struct {
	mu     sync.RWMutex
	api    orderAPI
	auth   authChecker
	logg   *logger.Logger
	orders []api.UserOrder
}

// NewStore builds an order store backed by the provided API client.
func NewStore(client orderAPI, auth authChecker, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth checker required")
	}
	return &Store{api: client, auth: auth, logg: logg, orders: []api.UserOrder{}}, nil
}

// Fetch reloads the user's orders. Unauthenticated callers resolve to an
// empty list without a network call; order history is per-account data.
func (s *Store) Fetch(ctx context.Context) ([]api.UserOrder, error) {
	if !s.auth.IsAuthenticated() {
		s.mu.Lock()
		s.orders = []api.UserOrder{}
		s.mu.Unlock()
		return []api.UserOrder{}, nil
	}

	orders, err := s.api.MemberOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		labelItems(orders[i].OrderItems)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return s.Orders(), nil
}

// FetchDetail loads one order with display-ready item data. The cached
// list is left untouched.
func (s *Store) FetchDetail(ctx context.Context, orderID int64) (api.UserOrderDetail, error) {
	if !s.auth.IsAuthenticated() {
		return api.UserOrderDetail{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	return s.api.MemberOrderDetail(ctx, orderID)
}

// Create submits a new order and reloads the list. The created order is
// resolved from the refreshed list so callers observe backend-priced
// items; if the refetch misses it the backend's echo is returned as-is.
func (s *Store) Create(ctx context.Context, customerAddress string, items []api.OrderItemCreate) (api.UserOrder, error) {
	if !s.auth.IsAuthenticated() {
		return api.UserOrder{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	created, err := s.api.CreateOrder(ctx, api.OrderCreateRequest{
		CustomerAddress: customerAddress,
		OrderItems:      items,
	})
	if err != nil {
		return api.UserOrder{}, err
	}

	if _, err := s.Fetch(ctx); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("refetch after order create: %v", err))
		}
	} else if resolved, ok := s.OrderByID(created.ID); ok {
		return resolved, nil
	}

	fallback := api.UserOrder{
		OrderID:         created.ID,
		OrderDate:       created.CreatedDate,
		Status:          created.State.String(),
		CustomerAddress: created.CustomerAddress,
		OrderItems:      []api.UserOrderItem{},
	}
	for _, item := range created.OrderItems {
		fallback.OrderItems = append(fallback.OrderItems, api.UserOrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Count:       item.Count,
			Price:       item.Price,
		})
	}
	labelItems(fallback.OrderItems)
	return fallback, nil
}

// Cancel cancels an order and reloads the list. Orders past ORDERED are
// refused locally before any network call.
func (s *Store) Cancel(ctx context.Context, orderID int64) error {
	if err := s.guardMutable(ctx, orderID); err != nil {
		return err
	}
	if err := s.api.CancelOrder(ctx, orderID); err != nil {
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// UpdateAddress rewrites an order's shipping address and reloads the list.
// Orders past ORDERED are refused locally before any network call.
func (s *Store) UpdateAddress(ctx context.Context, orderID int64, newAddress string) error {
	if err := s.guardMutable(ctx, orderID); err != nil {
		return err
	}
	if err := s.api.UpdateOrderAddress(ctx, orderID, newAddress); err != nil {
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// guardMutable refuses a cancel or address change when the known state is
// already past ORDERED. A cold cache is refreshed first; orders the list
// does not contain pass through, the backend stays the final authority.
func (s *Store) guardMutable(ctx context.Context, orderID int64) error {
	order, ok := s.OrderByID(orderID)
	if !ok {
		if _, err := s.Fetch(ctx); err != nil {
			return err
		}
		order, ok = s.OrderByID(orderID)
	}
	if ok && !enums.OrderStatus(order.Status).Mutable() {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order %d is %s and can no longer be changed", orderID, order.Status))
	}
	return nil
}

// Orders returns a copy of the cached list.
func (s *Store) Orders() []api.UserOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.UserOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID resolves one order from the cached list.
func (s *Store) OrderByID(orderID int64) (api.UserOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderByID(orderID)
}

// OrdersByStatus filters the cached list by status.
func (s *Store) OrdersByStatus(status string) []api.UserOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []api.UserOrder{}
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}

// Reset drops cached orders. Wired to session logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = []api.UserOrder{}
}

func (s *Store) orderByID(orderID int64) (api.UserOrder, bool) {
	for _, order := range s.orders {
		if order.OrderID == orderID {
			return order, true
		}
	}
	return api.UserOrder{}, false
}

// labelItems fills a placeholder name for items whose product has been
// deleted since the order was placed.
func labelItems(items []api.UserOrderItem) {
	for i := range items {
		if items[i].ProductName == "" {
			items[i].ProductName = fmt.Sprintf("product-%d", items[i].ProductID)
		}
	}
}

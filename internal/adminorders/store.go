package adminorders

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

type adminOrderAPI interface {
	AdminOrders(ctx context.Context) ([]api.Order, error)
	AdminOrderDetail(ctx context.Context, orderID int64) (api.AdminOrderDetail, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) (api.OrderStatusResult, error)
}

type adminChecker interface {
	IsAdmin() bool
}

// Store mirrors every order in the system for the admin dashboard. The
// last fetch error is kept alongside the list so a management screen can
// render stale data with a warning instead of going blank.
type Store struct {
	mu      sync.RWMutex
	api     adminOrderAPI
	auth    adminChecker
	logg    *logger.Logger
	orders  []api.Order
	lastErr error
}

// NewStore builds an admin order store backed by the provided API client.
func NewStore(client adminOrderAPI, auth adminChecker, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth checker required")
	}
	return &Store{api: client, auth: auth, logg: logg, orders: []api.Order{}}, nil
}

// Fetch reloads every order. Non-admin callers are rejected before the
// network call; the backend would refuse them anyway.
func (s *Store) Fetch(ctx context.Context) ([]api.Order, error) {
	if !s.auth.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	orders, err := s.api.AdminOrders(ctx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.orders = orders
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return s.Orders(), nil
}

// FetchDetail loads one order with customer identity attached.
func (s *Store) FetchDetail(ctx context.Context, orderID int64) (api.AdminOrderDetail, error) {
	if !s.auth.IsAdmin() {
		return api.AdminOrderDetail{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return s.api.AdminOrderDetail(ctx, orderID)
}

// UpdateStatus moves one order to the given status and reloads the list.
func (s *Store) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if !s.auth.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	if _, err := s.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// SaveStatuses applies a batch of status changes best-effort: one
// rejected order does not abort the rest. Failures are aggregated and
// the list is reloaded once at the end.
func (s *Store) SaveStatuses(ctx context.Context, changes map[int64]enums.OrderStatus) error {
	if !s.auth.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	var errs error
	for orderID, status := range changes {
		if _, err := s.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, fmt.Sprintf("update order %d status: %v", orderID, err))
			}
			errs = multierr.Append(errs, fmt.Errorf("order %d: %w", orderID, err))
		}
	}

	if _, err := s.Fetch(ctx); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Orders returns a copy of the cached list.
func (s *Store) Orders() []api.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// OrderByID resolves one order from the cached list.
func (s *Store) OrderByID(orderID int64) (api.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return api.Order{}, false
}

// Err reports the error from the most recent fetch, nil after a success.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset drops cached orders. Wired to session logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = []api.Order{}
	s.lastErr = nil
}

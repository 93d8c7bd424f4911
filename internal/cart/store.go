package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

// Item is one cart line. Name and price are snapshots taken when the
// product was added; the backend reprices at order time regardless.
type Item struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       int    `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Store holds the cart. Carts are local-only state; nothing here talks to
// the backend. Every mutation persists synchronously so a crash between
// runs never loses the cart.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	logg    *logger.Logger
	items   []Item
}

// NewStore builds a cart store and rehydrates any persisted snapshot.
func NewStore(ctx context.Context, storage Storage, logg *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}

	items, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("rehydrate cart: %w", err)
	}

	return &Store{storage: storage, logg: logg, items: items}, nil
}

// Add puts a product in the cart. Adding a product already present
// accumulates its quantity instead of creating a second line.
func (s *Store) Add(ctx context.Context, product api.Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		item := Item{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Price:       product.Price,
			Quantity:    quantity,
		}
		if product.ImageURL != nil {
			item.ImageURL = *product.ImageURL
		}
		s.items = append(s.items, item)
	}

	return s.persist(ctx)
}

// SetQuantity overwrites a line's quantity. Values below 1 clamp to 1;
// removal is explicit via Remove.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not in cart", productID))
}

// Remove drops a line from the cart. Removing an absent product is a
// no-op.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// Clear empties the cart and its persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []Item{}
	if err := s.storage.Clear(ctx); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("clear cart snapshot: %v", err))
		}
		return err
	}
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems sums line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price times quantity across lines, in the backend's
// smallest currency unit.
func (s *Store) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Price * item.Quantity
	}
	return total
}

// OrderItems converts the cart into the order-create payload shape.
func (s *Store) OrderItems() []api.OrderItemCreate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.OrderItemCreate, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, api.OrderItemCreate{ProductID: item.ProductID, Count: item.Quantity})
	}
	return out
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.items); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("persist cart: %v", err))
		}
		return err
	}
	return nil
}

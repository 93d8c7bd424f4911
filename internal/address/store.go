package address

import (
	"context"
	"fmt"
	"sync"

	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

type addressAPI interface {
	Addresses(ctx context.Context) ([]api.Address, error)
	SubmitAddress(ctx context.Context, content string) (api.Address, error)
	UpdateAddress(ctx context.Context, id int64, content string) (api.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetDefaultAddress(ctx context.Context, id int64) error
}

// Store mirrors the current user's saved addresses. The backend is the
// source of truth; the local list is only patched after a mutation
// succeeds remotely.
type Store struct {
	mu        sync.RWMutex
	api       addressAPI
	logg      *logger.Logger
	addresses []api.Address
}

// NewStore builds an address store backed by the provided API client.
func NewStore(client addressAPI, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Store{api: client, logg: logg, addresses: []api.Address{}}, nil
}

// Fetch replaces the local list with the backend's.
func (s *Store) Fetch(ctx context.Context) ([]api.Address, error) {
	addresses, err := s.api.Addresses(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.addresses = addresses
	s.mu.Unlock()
	return s.Addresses(), nil
}

// Add saves a new address remotely and appends it locally. New addresses
// are never the default.
func (s *Store) Add(ctx context.Context, content string) (api.Address, error) {
	created, err := s.api.SubmitAddress(ctx, content)
	if err != nil {
		return api.Address{}, err
	}

	s.mu.Lock()
	s.addresses = append(s.addresses, created)
	s.mu.Unlock()
	return created, nil
}

// Edit rewrites an address's content. Default status is untouched.
func (s *Store) Edit(ctx context.Context, id int64, content string) error {
	updated, err := s.api.UpdateAddress(ctx, id, content)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.addresses {
		if s.addresses[i].ID == id {
			s.addresses[i].Content = updated.Content
			break
		}
	}
	return nil
}

// Remove deletes an address remotely and drops it locally.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.api.DeleteAddress(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.addresses[:0]
	for _, addr := range s.addresses {
		if addr.ID != id {
			kept = append(kept, addr)
		}
	}
	s.addresses = kept
	return nil
}

// SetDefault marks one address as default and clears the flag on every
// other. The local mirror only moves after the backend accepts.
func (s *Store) SetDefault(ctx context.Context, id int64) error {
	if err := s.api.SetDefaultAddress(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.addresses {
		s.addresses[i].IsDefault = s.addresses[i].ID == id
	}
	return nil
}

// Addresses returns a copy of the local list.
func (s *Store) Addresses() []api.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Address, len(s.addresses))
	copy(out, s.addresses)
	return out
}

// Default returns the default address, or false when none is marked.
func (s *Store) Default() (api.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, addr := range s.addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return api.Address{}, false
}

// Reset drops the local list. Wired to session logout so one user's
// addresses never leak into the next session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses = []api.Address{}
}

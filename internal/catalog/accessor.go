package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

type productAPI interface {
	Products(ctx context.Context, page, pageSize int) (api.ProductPage, error)
}

// Accessor caches the product catalog. The catalog is public read-only
// data, so the cache survives login and logout untouched.
type Accessor struct {
	mu     sync.RWMutex
	api    productAPI
	logg   *logger.Logger
	page   api.ProductPage
	loaded bool
}

// NewAccessor builds a catalog accessor backed by the provided API client.
func NewAccessor(client productAPI, logg *logger.Logger) (*Accessor, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Accessor{api: client, logg: logg}, nil
}

// Fetch loads one catalog page and caches it. A failed fetch keeps the
// previous cache so stale data beats a blank screen.
func (a *Accessor) Fetch(ctx context.Context, page, pageSize int) (api.ProductPage, error) {
	fetched, err := a.api.Products(ctx, page, pageSize)
	if err != nil {
		return api.ProductPage{}, err
	}

	a.mu.Lock()
	a.page = fetched
	a.loaded = true
	a.mu.Unlock()

	if a.logg != nil {
		a.logg.Debug(a.logg.WithFields(ctx, map[string]any{
			"page":  fetched.CurrentPageNo,
			"items": len(fetched.Items),
		}), "catalog page cached")
	}
	return fetched, nil
}

// AllProducts walks every catalog page and returns the full product list.
// The last fetched page stays cached.
func (a *Accessor) AllProducts(ctx context.Context) ([]api.Product, error) {
	all := []api.Product{}
	page := 1
	for {
		fetched, err := a.Fetch(ctx, page, api.DefaultPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, fetched.Items...)
		if page >= fetched.TotalPages || len(fetched.Items) == 0 {
			return all, nil
		}
		page++
	}
}

// Products returns a copy of the cached page's items.
func (a *Accessor) Products() []api.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]api.Product, len(a.page.Items))
	copy(out, a.page.Items)
	return out
}

// Page returns the cached page with its pagination metadata.
func (a *Accessor) Page() (api.ProductPage, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.page, a.loaded
}

// ProductByID resolves a product from the cached page.
func (a *Accessor) ProductByID(id int64) (api.Product, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, product := range a.page.Items {
		if product.ID == id {
			return product, nil
		}
	}
	return api.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not in catalog", id))
}

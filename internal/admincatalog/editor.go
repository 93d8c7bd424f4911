package admincatalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

type adminProductAPI interface {
	CreateProduct(ctx context.Context, req api.ProductUpsertRequest, imageName string, image io.Reader) (api.Product, error)
	UpdateProduct(ctx context.Context, productID int64, req api.ProductUpsertRequest, imageName string, image io.Reader) (api.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

type adminChecker interface {
	IsAdmin() bool
}

// Editor performs admin catalog mutations. It holds no product state;
// the catalog accessor is refetched by callers after a change so every
// surface sees the same backend truth.
type Editor struct {
	api  adminProductAPI
	auth adminChecker
	logg *logger.Logger
}

// NewEditor builds a catalog editor backed by the provided API client.
func NewEditor(client adminProductAPI, auth adminChecker, logg *logger.Logger) (*Editor, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth checker required")
	}
	return &Editor{api: client, auth: auth, logg: logg}, nil
}

// CreateProduct registers a product, optionally attaching the image file
// at imagePath.
func (e *Editor) CreateProduct(ctx context.Context, req api.ProductUpsertRequest, imagePath string) (api.Product, error) {
	if !e.auth.IsAdmin() {
		return api.Product{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	image, name, cleanup, err := openImage(imagePath)
	if err != nil {
		return api.Product{}, err
	}
	defer cleanup()

	return e.api.CreateProduct(ctx, req, name, image)
}

// UpdateProduct replaces a product's fields, optionally replacing its
// image. An empty imagePath keeps the stored image.
func (e *Editor) UpdateProduct(ctx context.Context, productID int64, req api.ProductUpsertRequest, imagePath string) (api.Product, error) {
	if !e.auth.IsAdmin() {
		return api.Product{}, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	image, name, cleanup, err := openImage(imagePath)
	if err != nil {
		return api.Product{}, err
	}
	defer cleanup()

	return e.api.UpdateProduct(ctx, productID, req, name, image)
}

// DeleteProduct removes a product from the catalog.
func (e *Editor) DeleteProduct(ctx context.Context, productID int64) error {
	if !e.auth.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return e.api.DeleteProduct(ctx, productID)
}

// openImage opens the image file when a path is given. The returned
// reader is nil for an empty path; cleanup is always safe to defer.
func openImage(path string) (io.Reader, string, func(), error) {
	if path == "" {
		return nil, "", func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, "", func() {}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open product image")
	}
	return file, filepath.Base(path), func() { _ = file.Close() }, nil
}

package admincatalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

type stubAdmin struct{ admin bool }

func (s stubAdmin) IsAdmin() bool { return s.admin }

type stubProductAPI struct {
	createdName string
	createdData string
	updatedID   int64
	deletedID   int64
}

func (s *stubProductAPI) CreateProduct(_ context.Context, req api.ProductUpsertRequest, imageName string, image io.Reader) (api.Product, error) {
	s.createdName = imageName
	if image != nil {
		raw, _ := io.ReadAll(image)
		s.createdData = string(raw)
	}
	return api.Product{ID: 1, ProductName: req.ProductName, Price: int(req.Price)}, nil
}

func (s *stubProductAPI) UpdateProduct(_ context.Context, productID int64, req api.ProductUpsertRequest, _ string, _ io.Reader) (api.Product, error) {
	s.updatedID = productID
	return api.Product{ID: productID, ProductName: req.ProductName}, nil
}

func (s *stubProductAPI) DeleteProduct(_ context.Context, productID int64) error {
	s.deletedID = productID
	return nil
}

func TestEditorRequiresAdmin(t *testing.T) {
	t.Parallel()

	editor, err := NewEditor(&stubProductAPI{}, stubAdmin{admin: false}, nil)
	if err != nil {
		t.Fatalf("new editor: %v", err)
	}

	_, err = editor.CreateProduct(context.Background(), api.ProductUpsertRequest{}, "")
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := editor.DeleteProduct(context.Background(), 1); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestEditorCreateWithoutImage(t *testing.T) {
	t.Parallel()

	stub := &stubProductAPI{}
	editor, _ := NewEditor(stub, stubAdmin{admin: true}, nil)

	product, err := editor.CreateProduct(context.Background(), api.ProductUpsertRequest{
		ProductName: "Americano",
		Price:       4500,
		Category:    "coffee",
		Orderable:   true,
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ProductName != "Americano" {
		t.Fatalf("unexpected product %+v", product)
	}
	if stub.createdName != "" || stub.createdData != "" {
		t.Fatal("no image must be attached for an empty path")
	}
}

func TestEditorCreateAttachesImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "americano.png")
	if err := os.WriteFile(path, []byte("fake-png-bytes"), 0o644); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	stub := &stubProductAPI{}
	editor, _ := NewEditor(stub, stubAdmin{admin: true}, nil)

	if _, err := editor.CreateProduct(context.Background(), api.ProductUpsertRequest{
		ProductName: "Americano",
		Price:       4500,
		Category:    "coffee",
	}, path); err != nil {
		t.Fatalf("create: %v", err)
	}
	if stub.createdName != "americano.png" {
		t.Fatalf("unexpected image name %q", stub.createdName)
	}
	if stub.createdData != "fake-png-bytes" {
		t.Fatalf("image bytes not forwarded: %q", stub.createdData)
	}
}

func TestEditorCreateMissingImageFails(t *testing.T) {
	t.Parallel()

	editor, _ := NewEditor(&stubProductAPI{}, stubAdmin{admin: true}, nil)
	_, err := editor.CreateProduct(context.Background(), api.ProductUpsertRequest{}, filepath.Join(t.TempDir(), "missing.png"))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEditorUpdateAndDelete(t *testing.T) {
	t.Parallel()

	stub := &stubProductAPI{}
	editor, _ := NewEditor(stub, stubAdmin{admin: true}, nil)

	if _, err := editor.UpdateProduct(context.Background(), 7, api.ProductUpsertRequest{ProductName: "Latte"}, ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if stub.updatedID != 7 {
		t.Fatalf("update not forwarded: %d", stub.updatedID)
	}

	if err := editor.DeleteProduct(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if stub.deletedID != 7 {
		t.Fatalf("delete not forwarded: %d", stub.deletedID)
	}
}

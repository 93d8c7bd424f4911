package address

import (
	"context"
	"testing"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

type stubAddressAPI struct {
	remote     []api.Address
	nextID     int64
	fetchErr   error
	submitErr  error
	updateErr  error
	deleteErr  error
	defaultErr error
}

func (s *stubAddressAPI) Addresses(context.Context) ([]api.Address, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]api.Address, len(s.remote))
	copy(out, s.remote)
	return out, nil
}

func (s *stubAddressAPI) SubmitAddress(_ context.Context, content string) (api.Address, error) {
	if s.submitErr != nil {
		return api.Address{}, s.submitErr
	}
	s.nextID++
	created := api.Address{ID: s.nextID, Content: content}
	s.remote = append(s.remote, created)
	return created, nil
}

func (s *stubAddressAPI) UpdateAddress(_ context.Context, id int64, content string) (api.Address, error) {
	if s.updateErr != nil {
		return api.Address{}, s.updateErr
	}
	return api.Address{ID: id, Content: content}, nil
}

func (s *stubAddressAPI) DeleteAddress(context.Context, int64) error {
	return s.deleteErr
}

func (s *stubAddressAPI) SetDefaultAddress(context.Context, int64) error {
	return s.defaultErr
}

func TestStoreFetchReplacesList(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{remote: []api.Address{
		{ID: 1, Content: "1 Bean St", IsDefault: true},
		{ID: 2, Content: "2 Roast Ave"},
	}}
	store, err := NewStore(stub, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	addresses, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(addresses))
	}
	if def, ok := store.Default(); !ok || def.ID != 1 {
		t.Fatalf("unexpected default %+v ok=%v", def, ok)
	}
}

func TestStoreAddAppendsNonDefault(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{}
	store, _ := NewStore(stub, nil)

	created, err := store.Add(context.Background(), "3 Mokapot Way")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.IsDefault {
		t.Fatal("new address must not be default")
	}
	if addresses := store.Addresses(); len(addresses) != 1 || addresses[0].Content != "3 Mokapot Way" {
		t.Fatalf("unexpected list %+v", addresses)
	}
}

func TestStoreSetDefaultIsExclusive(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{remote: []api.Address{
		{ID: 1, Content: "1 Bean St", IsDefault: true},
		{ID: 2, Content: "2 Roast Ave"},
	}}
	store, _ := NewStore(stub, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.SetDefault(context.Background(), 2); err != nil {
		t.Fatalf("set default: %v", err)
	}
	for _, addr := range store.Addresses() {
		if addr.ID == 2 && !addr.IsDefault {
			t.Fatal("address 2 should be default")
		}
		if addr.ID == 1 && addr.IsDefault {
			t.Fatal("address 1 should have lost default")
		}
	}
}

func TestStoreSetDefaultKeepsLocalOnFailure(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{
		remote:     []api.Address{{ID: 1, Content: "1 Bean St", IsDefault: true}, {ID: 2, Content: "2 Roast Ave"}},
		defaultErr: pkgerrors.New(pkgerrors.CodeDependency, "backend down"),
	}
	store, _ := NewStore(stub, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.SetDefault(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}
	if def, ok := store.Default(); !ok || def.ID != 1 {
		t.Fatalf("failed mutation must not move the default, got %+v", def)
	}
}

func TestStoreRemoveFiltersLocally(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{remote: []api.Address{{ID: 1, Content: "1 Bean St"}, {ID: 2, Content: "2 Roast Ave"}}}
	store, _ := NewStore(stub, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	addresses := store.Addresses()
	if len(addresses) != 1 || addresses[0].ID != 2 {
		t.Fatalf("unexpected list %+v", addresses)
	}
}

func TestStoreEditPatchesContent(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{remote: []api.Address{{ID: 1, Content: "1 Bean St", IsDefault: true}}}
	store, _ := NewStore(stub, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.Edit(context.Background(), 1, "12 Bean St"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	addresses := store.Addresses()
	if addresses[0].Content != "12 Bean St" {
		t.Fatalf("content not patched: %+v", addresses[0])
	}
	if !addresses[0].IsDefault {
		t.Fatal("edit must not touch default status")
	}
}

func TestStoreResetClearsList(t *testing.T) {
	t.Parallel()

	stub := &stubAddressAPI{remote: []api.Address{{ID: 1, Content: "1 Bean St"}}}
	store, _ := NewStore(stub, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	store.Reset()
	if len(store.Addresses()) != 0 {
		t.Fatal("reset must clear the list")
	}
}

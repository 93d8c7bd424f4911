package adminorders

import (
	"context"
	"testing"

	"go.uber.org/multierr"

	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

type stubAdmin struct{ admin bool }

func (s stubAdmin) IsAdmin() bool { return s.admin }

type stubAdminAPI struct {
	orders    []api.Order
	detail    api.AdminOrderDetail
	listErr   error
	statusErr map[int64]error
	listCalls int
	updated   map[int64]enums.OrderStatus
}

func (s *stubAdminAPI) AdminOrders(context.Context) ([]api.Order, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]api.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *stubAdminAPI) AdminOrderDetail(context.Context, int64) (api.AdminOrderDetail, error) {
	return s.detail, nil
}

func (s *stubAdminAPI) UpdateOrderStatus(_ context.Context, orderID int64, status enums.OrderStatus) (api.OrderStatusResult, error) {
	if err := s.statusErr[orderID]; err != nil {
		return api.OrderStatusResult{}, err
	}
	if s.updated == nil {
		s.updated = map[int64]enums.OrderStatus{}
	}
	s.updated[orderID] = status
	return api.OrderStatusResult{ID: orderID, Status: status.String()}, nil
}

func TestStoreFetchRequiresAdmin(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{}
	store, err := NewStore(stub, stubAdmin{admin: false}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Fetch(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if stub.listCalls != 0 {
		t.Fatal("non-admin fetch must not hit the backend")
	}
}

func TestStoreFetchTracksLastError(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{orders: []api.Order{{ID: 1, State: enums.OrderStatusOrdered}}}
	store, _ := NewStore(stub, stubAdmin{admin: true}, nil)

	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if store.Err() != nil {
		t.Fatalf("expected nil err after success, got %v", store.Err())
	}

	stub.listErr = pkgerrors.New(pkgerrors.CodeDependency, "backend down")
	if _, err := store.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if store.Err() == nil {
		t.Fatal("store must keep the last fetch error")
	}
	if len(store.Orders()) != 1 {
		t.Fatal("failed fetch must keep stale data")
	}
}

func TestStoreUpdateStatusRefetches(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{orders: []api.Order{{ID: 1, State: enums.OrderStatusPaid}}}
	store, _ := NewStore(stub, stubAdmin{admin: true}, nil)

	if err := store.UpdateStatus(context.Background(), 1, enums.OrderStatusPaid); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if stub.updated[1] != enums.OrderStatusPaid {
		t.Fatalf("status not forwarded: %+v", stub.updated)
	}
	if stub.listCalls != 1 {
		t.Fatalf("expected refetch, got %d calls", stub.listCalls)
	}
	if order, ok := store.OrderByID(1); !ok || order.State != enums.OrderStatusPaid {
		t.Fatalf("cache not refreshed: %+v", order)
	}
}

func TestStoreSaveStatusesIsBestEffort(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{
		orders: []api.Order{{ID: 1}, {ID: 2}, {ID: 3}},
		statusErr: map[int64]error{
			2: pkgerrors.New(pkgerrors.CodeStateConflict, "already completed"),
		},
	}
	store, _ := NewStore(stub, stubAdmin{admin: true}, nil)

	err := store.SaveStatuses(context.Background(), map[int64]enums.OrderStatus{
		1: enums.OrderStatusShipping,
		2: enums.OrderStatusShipping,
		3: enums.OrderStatusCompleted,
	})
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if len(multierr.Errors(err)) != 1 {
		t.Fatalf("expected one failure, got %v", multierr.Errors(err))
	}
	if stub.updated[1] != enums.OrderStatusShipping || stub.updated[3] != enums.OrderStatusCompleted {
		t.Fatalf("surviving updates must still apply: %+v", stub.updated)
	}
	if stub.listCalls != 1 {
		t.Fatal("batch must end with a single refetch")
	}
}

func TestStoreSaveStatusesAllSucceed(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{orders: []api.Order{{ID: 1}}}
	store, _ := NewStore(stub, stubAdmin{admin: true}, nil)

	if err := store.SaveStatuses(context.Background(), map[int64]enums.OrderStatus{
		1: enums.OrderStatusPaid,
	}); err != nil {
		t.Fatalf("save statuses: %v", err)
	}
}

func TestStoreResetDropsCacheAndError(t *testing.T) {
	t.Parallel()

	stub := &stubAdminAPI{listErr: pkgerrors.New(pkgerrors.CodeDependency, "backend down")}
	store, _ := NewStore(stub, stubAdmin{admin: true}, nil)
	if _, err := store.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	store.Reset()
	if store.Err() != nil || len(store.Orders()) != 0 {
		t.Fatal("reset must drop cache and error")
	}
}

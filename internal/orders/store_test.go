package orders

import (
	"context"
	"testing"

	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/enums"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

type stubAuth struct{ authenticated bool }

func (s stubAuth) IsAuthenticated() bool { return s.authenticated }

type stubOrderAPI struct {
	orders      []api.UserOrder
	detail      api.UserOrderDetail
	created     api.Order
	listErr     error
	createErr   error
	cancelErr   error
	listCalls   int
	cancelled   []int64
	readdressed []int64
}

func (s *stubOrderAPI) CreateOrder(_ context.Context, req api.OrderCreateRequest) (api.Order, error) {
	if s.createErr != nil {
		return api.Order{}, s.createErr
	}
	return s.created, nil
}

func (s *stubOrderAPI) CancelOrder(_ context.Context, orderID int64) error {
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelled = append(s.cancelled, orderID)
	return nil
}

func (s *stubOrderAPI) UpdateOrderAddress(_ context.Context, orderID int64, _ string) error {
	s.readdressed = append(s.readdressed, orderID)
	return nil
}

func (s *stubOrderAPI) MemberOrders(context.Context) ([]api.UserOrder, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]api.UserOrder, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *stubOrderAPI) MemberOrderDetail(context.Context, int64) (api.UserOrderDetail, error) {
	return s.detail, nil
}

func TestStoreFetchUnauthenticatedResolvesEmpty(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{}
	store, err := NewStore(stub, stubAuth{authenticated: false}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	orders, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty list, got %+v", orders)
	}
	if stub.listCalls != 0 {
		t.Fatal("unauthenticated fetch must not hit the backend")
	}
}

func TestStoreFetchLabelsDeletedProducts(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{
		OrderID: 1,
		Status:  "ORDERED",
		OrderItems: []api.UserOrderItem{
			{ProductID: 4, ProductName: "", Count: 1, Price: 4500},
			{ProductID: 5, ProductName: "Latte", Count: 2, Price: 5000},
		},
	}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)

	orders, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if orders[0].OrderItems[0].ProductName != "product-4" {
		t.Fatalf("expected placeholder label, got %q", orders[0].OrderItems[0].ProductName)
	}
	if orders[0].OrderItems[1].ProductName != "Latte" {
		t.Fatal("existing names must be preserved")
	}
}

func TestStoreCreateResolvesFromRefetchedList(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{
		created: api.Order{ID: 11, State: enums.OrderStatusOrdered, CustomerAddress: "1 Bean St"},
		orders: []api.UserOrder{{
			OrderID:         11,
			Status:          "ORDERED",
			CustomerAddress: "1 Bean St",
			OrderItems:      []api.UserOrderItem{{ProductID: 4, ProductName: "Americano", Count: 2, Price: 4500}},
		}},
	}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)

	order, err := store.Create(context.Background(), "1 Bean St", []api.OrderItemCreate{{ProductID: 4, Count: 2}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.OrderID != 11 || len(order.OrderItems) != 1 || order.OrderItems[0].Price != 4500 {
		t.Fatalf("expected backend-priced order from list, got %+v", order)
	}
	if stub.listCalls != 1 {
		t.Fatalf("expected one refetch, got %d", stub.listCalls)
	}
}

func TestStoreCreateFallsBackToEchoWhenRefetchMisses(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{
		created: api.Order{ID: 12, State: enums.OrderStatusOrdered, CustomerAddress: "1 Bean St"},
		orders:  []api.UserOrder{},
	}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)

	order, err := store.Create(context.Background(), "1 Bean St", []api.OrderItemCreate{{ProductID: 4, Count: 1}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.OrderID != 12 || order.Status != "ORDERED" {
		t.Fatalf("unexpected fallback order %+v", order)
	}
	if order.OrderItems == nil {
		t.Fatal("fallback items must be non-nil")
	}
}

func TestStoreCreateRequiresAuthentication(t *testing.T) {
	t.Parallel()

	store, _ := NewStore(&stubOrderAPI{}, stubAuth{authenticated: false}, nil)
	_, err := store.Create(context.Background(), "1 Bean St", nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestStoreCancelRefetches(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1, Status: "ORDERED"}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	stub.orders[0].Status = "CANCELED"
	if err := store.Cancel(context.Background(), 1); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(stub.cancelled) != 1 || stub.cancelled[0] != 1 {
		t.Fatalf("cancel not forwarded: %+v", stub.cancelled)
	}
	if stub.listCalls != 2 {
		t.Fatalf("expected refetch after cancel, got %d calls", stub.listCalls)
	}
	if orders := store.OrdersByStatus("CANCELED"); len(orders) != 1 {
		t.Fatalf("expected cancelled order in cache, got %+v", orders)
	}
}

func TestStoreCancelFailureSkipsRefetch(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{
		orders:    []api.UserOrder{{OrderID: 1, Status: "ORDERED"}},
		cancelErr: pkgerrors.New(pkgerrors.CodeStateConflict, "order already paid"),
	}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	err := store.Cancel(context.Background(), 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if stub.listCalls != 1 {
		t.Fatal("failed cancel must not refetch")
	}
}

func TestStoreCancelRefusesImmutableOrder(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1, Status: "PAID"}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	err := store.Cancel(context.Background(), 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(stub.cancelled) != 0 {
		t.Fatal("a paid order must be refused before the backend call")
	}
}

func TestStoreCancelGuardFetchesColdCache(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1, Status: "SHIPPING"}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)

	err := store.Cancel(context.Background(), 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if stub.listCalls != 1 {
		t.Fatalf("expected one guard refresh, got %d calls", stub.listCalls)
	}
	if len(stub.cancelled) != 0 {
		t.Fatal("shipping order must never reach the backend cancel")
	}
}

func TestStoreUpdateAddressRefetches(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1, Status: "ORDERED", CustomerAddress: "2 Roast Ave"}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if err := store.UpdateAddress(context.Background(), 1, "2 Roast Ave"); err != nil {
		t.Fatalf("update address: %v", err)
	}
	if len(stub.readdressed) != 1 || stub.readdressed[0] != 1 {
		t.Fatalf("update not forwarded: %+v", stub.readdressed)
	}
	if stub.listCalls != 2 {
		t.Fatalf("expected refetch after address change, got %d calls", stub.listCalls)
	}
	if order, ok := store.OrderByID(1); !ok || order.CustomerAddress != "2 Roast Ave" {
		t.Fatalf("cache not refreshed: %+v", order)
	}
}

func TestStoreUpdateAddressRefusesImmutableOrder(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1, Status: "COMPLETED"}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	err := store.UpdateAddress(context.Background(), 1, "9 New St")
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(stub.readdressed) != 0 {
		t.Fatal("a completed order must be refused before the backend call")
	}
}

func TestStoreResetDropsCache(t *testing.T) {
	t.Parallel()

	stub := &stubOrderAPI{orders: []api.UserOrder{{OrderID: 1}}}
	store, _ := NewStore(stub, stubAuth{authenticated: true}, nil)
	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	store.Reset()
	if len(store.Orders()) != 0 {
		t.Fatal("reset must drop cached orders")
	}
	if _, ok := store.OrderByID(1); ok {
		t.Fatal("reset must drop lookups too")
	}
}

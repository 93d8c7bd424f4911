package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubKV struct {
	data map[string]string
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *stubKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, ok := value.(string)
	if !ok {
		return errors.New("expected string value")
	}
	s.data[key] = raw
	return nil
}

func (s *stubKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func TestRedisStorageRoundTrip(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	storage, err := NewRedisStorage(kv, "cafe:cart:kiosk-3", time.Hour)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	ctx := context.Background()

	items, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}

	saved := []Item{{ProductID: 1, ProductName: "Americano", Price: 4500, Quantity: 2}}
	if err := storage.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != saved[0] {
		t.Fatalf("unexpected loaded cart %+v", loaded)
	}

	if err := storage.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = storage.Load(ctx)
	if err != nil || len(loaded) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v err %v", loaded, err)
	}
}

func TestRedisStorageCorruptValueResetsEmpty(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.data["cafe:cart:kiosk-3"] = "{not json"

	storage, _ := NewRedisStorage(kv, "cafe:cart:kiosk-3", 0)
	items, err := storage.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt value must not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("corrupt value must reset to empty, got %+v", items)
	}
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cafeorder/cafe-client/pkg/redis"
)

// Storage persists cart snapshots between runs. Load returning an empty
// snapshot with a nil error means "no cart yet"; corruption is reported
// the same way so a damaged snapshot never bricks the cart.
type Storage interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}

type snapshot struct {
	Items []Item `json:"items"`
}

// FileStorage keeps the cart in a JSON file, the single-user desktop
// default.
type FileStorage struct {
	path string
}

// NewFileStorage builds file-backed cart storage at path.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path required")
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Load(context.Context) ([]Item, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt snapshot resets to empty rather than failing startup.
		return []Item{}, nil
	}
	if snap.Items == nil {
		snap.Items = []Item{}
	}
	return snap.Items, nil
}

func (s *FileStorage) Save(_ context.Context, items []Item) error {
	raw, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cart directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (s *FileStorage) Clear(context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cart snapshot: %w", err)
	}
	return nil
}

type cartKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisStorage keeps the cart in Redis, keyed per terminal, for shared
// kiosk deployments where local files do not survive a seat change.
type RedisStorage struct {
	kv  cartKV
	key string
	ttl time.Duration
}

// NewRedisStorage builds redis-backed cart storage for the given owner key.
func NewRedisStorage(kv cartKV, key string, ttl time.Duration) (*RedisStorage, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if key == "" {
		return nil, fmt.Errorf("cart key required")
	}
	return &RedisStorage{kv: kv, key: key, ttl: ttl}, nil
}

func (s *RedisStorage) Load(ctx context.Context) ([]Item, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return []Item{}, nil
	}
	if snap.Items == nil {
		snap.Items = []Item{}
	}
	return snap.Items, nil
}

func (s *RedisStorage) Save(ctx context.Context, items []Item) error {
	raw, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw), s.ttl); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (s *RedisStorage) Clear(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.key); err != nil {
		return fmt.Errorf("remove cart snapshot: %w", err)
	}
	return nil
}

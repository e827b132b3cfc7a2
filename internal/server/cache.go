package server

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "mortgage-calc:"

// Cache stores rendered responses keyed by endpoint and canonical request.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// NewCache returns a Redis-backed cache when cfg names a Redis address and
// the server answers, and an in-memory cache otherwise.
func NewCache(ctx context.Context, logger *zap.Logger, cfg CacheConfig) Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.RedisAddr == "" {
		return NewMemoryCache(cfg.TTLDuration(), cfg.MaxEntries)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache",
			zap.String("op", "server.NewCache"),
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = client.Close()
		return NewMemoryCache(cfg.TTLDuration(), cfg.MaxEntries)
	}

	logger.Info("using redis response cache",
		zap.String("op", "server.NewCache"),
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.TTLDuration()),
	)
	return NewRedisCache(client, cfg.TTLDuration())
}

// CacheKey derives a cache key from an endpoint name and the canonical
// encoding of its request.
func CacheKey(endpoint string, canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s%s:%s", cacheKeyPrefix, endpoint, hex.EncodeToString(sum[:]))
}

// RedisCache keeps responses in Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a Redis client. A zero ttl keeps entries until evicted.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Close releases the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// MemoryCache keeps responses in process memory. Entries are kept in
// insertion order, which with a single ttl is also expiry order, so expired
// entries are dropped from the front on every Set and the oldest entry is
// evicted once maxEntries is reached.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	order      *list.List
	entries    map[string]*list.Element
	now        func() time.Time
}

type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// NewMemoryCache creates an empty cache. A zero ttl keeps entries until they
// are evicted; a non-positive maxEntries uses the default limit.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if m.expired(entry) {
		m.remove(elem)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneExpired()

	entry := &memoryEntry{key: key, value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}

	if elem, ok := m.entries[key]; ok {
		elem.Value = entry
		m.order.MoveToBack(elem)
		return nil
	}

	m.entries[key] = m.order.PushBack(entry)
	for m.order.Len() > m.maxEntries {
		m.remove(m.order.Front())
	}
	return nil
}

// Len returns the number of stored entries. Expired entries count until the
// next Set or a Get for their key.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *MemoryCache) expired(entry *memoryEntry) bool {
	return !entry.expires.IsZero() && !m.now().Before(entry.expires)
}

func (m *MemoryCache) pruneExpired() {
	for elem := m.order.Front(); elem != nil; elem = m.order.Front() {
		if !m.expired(elem.Value.(*memoryEntry)) {
			return
		}
		m.remove(elem)
	}
}

func (m *MemoryCache) remove(elem *list.Element) {
	entry := m.order.Remove(elem).(*memoryEntry)
	delete(m.entries, entry.key)
}

// Package cache holds short-lived records that sit beside the ledger, such
// as replayable responses for idempotent requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StoredResponse is the captured outcome of a request, replayed verbatim
// when the same idempotency key is seen again.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type RedisIdempotencyStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisIdempotencyStore(client redis.UniversalClient, prefix string) *RedisIdempotencyStore {
	trimmed := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if trimmed == "" {
		trimmed = "ledger:idempotency"
	}
	return &RedisIdempotencyStore{client: client, prefix: trimmed}
}

func (s *RedisIdempotencyStore) responseKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisIdempotencyStore) lockKey(key string) string {
	return s.prefix + ":lock:" + key
}

// Reserve claims key for the caller. It returns false when another request
// holds the reservation.
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.lockKey(key), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (s *RedisIdempotencyStore) Load(ctx context.Context, key string) (StoredResponse, bool, error) {
	raw, err := s.client.Get(ctx, s.responseKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, fmt.Errorf("load idempotent response: %w", err)
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return StoredResponse{}, false, fmt.Errorf("decode idempotent response: %w", err)
	}
	return resp, true, nil
}

func (s *RedisIdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotent response: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.responseKey(key), raw, ttl)
		pipe.Del(ctx, s.lockKey(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save idempotent response: %w", err)
	}
	return nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.lockKey(key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

// MemoryIdempotencyStore keeps records in process memory. It backs local
// runs without Redis and the middleware tests.
type MemoryIdempotencyStore struct {
	mu        sync.Mutex
	now       func() time.Time
	responses map[string]memoryEntry
	locks     map[string]time.Time
}

type memoryEntry struct {
	resp      StoredResponse
	expiresAt time.Time
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		now:       time.Now,
		responses: map[string]memoryEntry{},
		locks:     map[string]time.Time{},
	}
}

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.locks[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	s.locks[key] = now.Add(ttl)
	return true, nil
}

func (s *MemoryIdempotencyStore) Load(_ context.Context, key string) (StoredResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.responses[key]
	if !ok {
		return StoredResponse{}, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.responses, key)
		return StoredResponse{}, false, nil
	}
	return entry.resp, true, nil
}

func (s *MemoryIdempotencyStore) Save(_ context.Context, key string, resp StoredResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[key] = memoryEntry{resp: resp, expiresAt: s.now().Add(ttl)}
	delete(s.locks, key)
	return nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)
	return nil
}

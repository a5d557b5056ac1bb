package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryIdempotencyStore_ReserveIsExclusiveUntilSaved(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "k1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first reservation to succeed, got ok=%v err=%v", ok, err)
	}
	ok, _ = store.Reserve(ctx, "k1", time.Minute)
	if ok {
		t.Fatalf("expected second reservation to fail while the first is pending")
	}

	if err := store.Save(ctx, "k1", StoredResponse{Status: 200, Body: []byte(`{"success":true}`)}, time.Minute); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	resp, found, err := store.Load(ctx, "k1")
	if err != nil || !found {
		t.Fatalf("expected saved response, got found=%v err=%v", found, err)
	}
	if resp.Status != 200 || string(resp.Body) != `{"success":true}` {
		t.Fatalf("unexpected stored response %+v", resp)
	}
}

func TestMemoryIdempotencyStore_ExpiresEntries(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Save(ctx, "k1", StoredResponse{Status: 201}, time.Minute)
	now = now.Add(2 * time.Minute)

	if _, found, _ := store.Load(ctx, "k1"); found {
		t.Fatalf("expected expired response to be dropped")
	}
}

func TestMemoryIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	_, _ = store.Reserve(ctx, "k1", time.Minute)
	_ = store.Release(ctx, "k1")

	ok, _ := store.Reserve(ctx, "k1", time.Minute)
	if !ok {
		t.Fatalf("expected reservation after release to succeed")
	}
}

func TestNewRedisIdempotencyStore_NormalizesPrefix(t *testing.T) {
	store := NewRedisIdempotencyStore(nil, " ledger:keys: ")
	if got := store.responseKey("abc"); got != "ledger:keys:abc" {
		t.Fatalf("expected ledger:keys:abc, got %s", got)
	}
	if got := NewRedisIdempotencyStore(nil, "").lockKey("abc"); got != "ledger:idempotency:lock:abc" {
		t.Fatalf("expected default prefix lock key, got %s", got)
	}
}

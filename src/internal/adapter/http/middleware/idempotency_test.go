package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/cache"
)

func countingHandler(calls *int32, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"call":%d}`, n)
	})
}

func postWithKey(path, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	return req
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	var calls int32
	handler := Idempotency(cache.NewMemoryIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusCreated))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, postWithKey("/payments", "abc"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, postWithKey("/payments", "abc"))

	if calls != 1 {
		t.Fatalf("expected handler to run once, got %d", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed status %d, got %d", http.StatusCreated, second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("expected replayed body %q, got %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get(ReplayedHeader) != "true" {
		t.Fatalf("expected replay header on second response")
	}
}

func TestIdempotency_ScopesKeysByPath(t *testing.T) {
	var calls int32
	handler := Idempotency(cache.NewMemoryIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusOK))

	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/payments", "abc"))
	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/deposits", "abc"))

	if calls != 2 {
		t.Fatalf("expected both paths to run, got %d calls", calls)
	}
}

func TestIdempotency_DoesNotStoreServerErrors(t *testing.T) {
	var calls int32
	handler := Idempotency(cache.NewMemoryIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusInternalServerError))

	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/payments", "abc"))
	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/payments", "abc"))

	if calls != 2 {
		t.Fatalf("expected retry after server error, got %d calls", calls)
	}
}

func TestIdempotency_RejectsConcurrentDuplicate(t *testing.T) {
	store := cache.NewMemoryIdempotencyStore()
	if ok, _ := store.Reserve(t.Context(), "POST:/payments:abc", time.Hour); !ok {
		t.Fatalf("expected manual reservation to succeed")
	}

	var calls int32
	rr := httptest.NewRecorder()
	Idempotency(store, time.Hour)(countingHandler(&calls, http.StatusOK)).ServeHTTP(rr, postWithKey("/payments", "abc"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
	if calls != 0 {
		t.Fatalf("expected handler not to run, got %d calls", calls)
	}
}

func TestIdempotency_IgnoresRequestsWithoutKey(t *testing.T) {
	var calls int32
	handler := Idempotency(cache.NewMemoryIdempotencyStore(), time.Hour)(countingHandler(&calls, http.StatusOK))

	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/payments", ""))
	handler.ServeHTTP(httptest.NewRecorder(), postWithKey("/payments", ""))

	if calls != 2 {
		t.Fatalf("expected every keyless request to run, got %d calls", calls)
	}
}

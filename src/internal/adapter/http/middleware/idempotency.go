package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/cache"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "X-Idempotency-Replayed"
)

type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Load(ctx context.Context, key string) (cache.StoredResponse, bool, error)
	Save(ctx context.Context, key string, resp cache.StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// Idempotency replays the stored response for a repeated Idempotency-Key on
// POST and PUT requests. Keys are scoped by method and path. Server errors
// are not stored, so the client may retry them. When the store is
// unavailable requests run without the guarantee.
func Idempotency(store IdempotencyStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
			if store == nil || key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPut) {
				next.ServeHTTP(w, r)
				return
			}

			scoped := r.Method + ":" + r.URL.Path + ":" + key
			ctx := r.Context()

			stored, found, err := store.Load(ctx, scoped)
			if err != nil {
				logger.Error("idempotency middleware load failed", err, logger.Fields{"path": r.URL.Path})
				next.ServeHTTP(w, r)
				return
			}
			if found {
				logger.Info("idempotency middleware replaying response", logger.Fields{
					"path":   r.URL.Path,
					"status": stored.Status,
				})
				replay(w, stored)
				return
			}

			reserved, err := store.Reserve(ctx, scoped, ttl)
			if err != nil {
				logger.Error("idempotency middleware reserve failed", err, logger.Fields{"path": r.URL.Path})
				next.ServeHTTP(w, r)
				return
			}
			if !reserved {
				http.Error(w, "a request with this idempotency key is already in progress", http.StatusConflict)
				return
			}

			rec := &capturingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			persistCtx := context.WithoutCancel(ctx)
			if rec.status >= http.StatusInternalServerError {
				if err := store.Release(persistCtx, scoped); err != nil {
					logger.Error("idempotency middleware release failed", err, logger.Fields{"path": r.URL.Path})
				}
				return
			}
			if err := store.Save(persistCtx, scoped, cache.StoredResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}, ttl); err != nil {
				logger.Error("idempotency middleware save failed", err, logger.Fields{"path": r.URL.Path})
			}
		})
	}
}

func replay(w http.ResponseWriter, stored cache.StoredResponse) {
	if stored.ContentType != "" {
		w.Header().Set("Content-Type", stored.ContentType)
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

type capturingWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (c *capturingWriter) WriteHeader(status int) {
	if !c.wroteHeader {
		c.status = status
		c.wroteHeader = true
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *capturingWriter) Write(p []byte) (int, error) {
	c.wroteHeader = true
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}

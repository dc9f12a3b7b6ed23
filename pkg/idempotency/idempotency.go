package idempotency

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Header carries the client-chosen idempotency key.
const Header = "Idempotency-Key"

// Store tracks seen idempotency keys in Redis. Keys expire after ttl, so
// a retry window is bounded rather than unlimited.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a new Store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Key namespaces a client key by HTTP method and path so the same key may
// be reused across different endpoints.
func (s *Store) Key(method, path, clientKey string) string {
	return fmt.Sprintf("idem:%s:%s:%s", method, path, clientKey)
}

// Seen atomically records the key and reports whether it was already
// present.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}

	return !ok, nil
}

// NewIdempotencyMiddleware rejects replays of mutating requests that carry
// an Idempotency-Key header. Requests without the header pass through
// untouched; a Redis outage fails open so writes are never blocked on the
// cache.
func NewIdempotencyMiddleware(store *Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)

				return
			}

			clientKey := strings.TrimSpace(r.Header.Get(Header))
			if clientKey == "" {
				next.ServeHTTP(w, r)

				return
			}

			seen, err := store.Seen(r.Context(), store.Key(r.Method, r.URL.Path, clientKey))
			if err != nil {
				next.ServeHTTP(w, r)

				return
			}
			if seen {
				http.Error(w, `{"detail":"duplicate request"}`, http.StatusConflict)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

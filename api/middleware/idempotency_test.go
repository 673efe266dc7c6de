package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]string
	getErr  error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]string{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.records[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[key]; exists {
		return false, nil
	}
	s.records[key] = fmt.Sprint(value)
	return true, nil
}

func (s *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "test:idempotency:" + scope + ":" + id
}

func (s *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.records, key)
	}
	return nil
}

// idempotencyRouter mounts the middleware the way the server does, so the
// guarded-route match sees chi's route pattern.
func idempotencyRouter(store *fakeIdempotencyStore, calls *int) http.Handler {
	r := chi.NewRouter()
	r.With(Idempotency(store, time.Hour, nil)).Post("/api/v1/checkout", func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"order":%d}}`, *calls)
	})
	r.With(Idempotency(store, time.Hour, nil)).Get("/api/v1/cart", func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestIdempotencyRequiresKeyOnCheckout(t *testing.T) {
	calls := 0
	router := idempotencyRouter(newFakeIdempotencyStore(), &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader("{}")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run without an idempotency key")
	}
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	calls := 0
	router := idempotencyRouter(newFakeIdempotencyStore(), &calls)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if calls != 1 {
		t.Fatal("unguarded routes pass straight through")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	calls := 0
	store := newFakeIdempotencyStore()
	router := idempotencyRouter(store, &calls)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "order-123")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	first := send()
	second := send()

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("expected 201/201 got %d/%d", first.Code, second.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want exactly once", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replay body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("replay lost content type: %q", second.Header().Get("Content-Type"))
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	calls := 0
	router := idempotencyRouter(newFakeIdempotencyStore(), &calls)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "order-123")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	send("{}")
	second := send(`{"other":true}`)

	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", second.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want exactly once", calls)
	}
}

func TestIdempotencyStoreOutageFailsClosed(t *testing.T) {
	calls := 0
	store := newFakeIdempotencyStore()
	store.getErr = fmt.Errorf("redis down")
	router := idempotencyRouter(store, &calls)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "order-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run when the store cannot be checked")
	}
}

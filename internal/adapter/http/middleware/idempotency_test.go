package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/gowallet/internal/usecase"
)

type stubIdempotencyStore struct {
	responses map[string][]byte
	updated   map[string][]byte
	checkErr  error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{
		responses: make(map[string][]byte),
		updated:   make(map[string][]byte),
	}
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkErr != nil {
		return false, nil, s.checkErr
	}
	if resp, ok := s.responses[key]; ok {
		return true, resp, nil
	}
	s.responses[key] = []byte(usecase.IdempotencyProcessing)
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updated[key] = response
	s.responses[key] = response
	return nil
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(body))
	})
}

func TestIdempotencyPassthroughWithoutKey(t *testing.T) {
	store := newStubIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	req := httptest.NewRequest(http.MethodPost, "/wallet/topup", nil)
	rec := httptest.NewRecorder()

	mw.Wrap(okHandler(`{"id":"rec-1"}`)).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(store.updated) != 0 {
		t.Fatalf("expected no stored response without a key")
	}
}

func TestIdempotencyStoresSuccessfulResponse(t *testing.T) {
	store := newStubIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	req := httptest.NewRequest(http.MethodPost, "/wallet/topup", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	mw.Wrap(okHandler(`{"id":"rec-1"}`)).ServeHTTP(rec, req)

	if string(store.updated["key-1"]) != `{"id":"rec-1"}` {
		t.Fatalf("expected stored response, got %q", store.updated["key-1"])
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newStubIdempotencyStore()
	store.responses["key-1"] = []byte(`{"id":"rec-1"}`)
	mw := NewIdempotencyMiddleware(store)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/wallet/topup", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	mw.Wrap(next).ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected handler to be skipped on replay")
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replay header")
	}
	if !strings.Contains(rec.Body.String(), "rec-1") {
		t.Fatalf("expected cached response body, got %s", rec.Body.String())
	}
}

func TestIdempotencyConcurrentDuplicateRejected(t *testing.T) {
	store := newStubIdempotencyStore()
	store.responses["key-1"] = []byte(usecase.IdempotencyProcessing)
	mw := NewIdempotencyMiddleware(store)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/wallet/transfer", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	mw.Wrap(next).ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected second execution to be blocked while the first is in flight")
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestIdempotencyGetRequestsBypass(t *testing.T) {
	store := newStubIdempotencyStore()
	store.responses["key-1"] = []byte(`{"cached":"yes"}`)
	mw := NewIdempotencyMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	mw.Wrap(okHandler(`{"live":"yes"}`)).ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "live") {
		t.Fatalf("expected live response for GET, got %s", rec.Body.String())
	}
}

func TestIdempotencyStoreFailure(t *testing.T) {
	store := newStubIdempotencyStore()
	store.checkErr = errors.New("redis down")
	mw := NewIdempotencyMiddleware(store)

	req := httptest.NewRequest(http.MethodPost, "/wallet/topup", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	mw.Wrap(okHandler("{}")).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when store fails, got %d", rec.Code)
	}
}

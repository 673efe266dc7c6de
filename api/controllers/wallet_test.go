package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/internal/wallet"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

type stubWalletService struct {
	balance *wallet.BalanceDTO
	err     error
}

func (s *stubWalletService) Balance(_ context.Context, _ uuid.UUID) (*wallet.BalanceDTO, error) {
	return s.balance, s.err
}

type stubSubscription struct {
	updates chan wallet.BalanceUpdate
	closed  bool
}

func (s *stubSubscription) Updates() <-chan wallet.BalanceUpdate { return s.updates }

func (s *stubSubscription) Close() error {
	s.closed = true
	return nil
}

type stubWatcher struct {
	sub *stubSubscription
	err error
}

func (s *stubWatcher) Watch(_ context.Context, _ uuid.UUID) (wallet.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func TestGetBalanceSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubWalletService{balance: &wallet.BalanceDTO{
		UserID:           userID,
		BalanceCents:     123456,
		BalanceFormatted: "R$ 1.234,56",
	}}
	handler := GetBalance(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/wallet/balance", "", userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data wallet.BalanceDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.BalanceCents != 123456 || envelope.Data.BalanceFormatted != "R$ 1.234,56" {
		t.Fatalf("unexpected balance %+v", envelope.Data)
	}
}

func TestGetBalanceProfileMissing(t *testing.T) {
	svc := &stubWalletService{err: apperrors.New(apperrors.CodeNotFound, "profile not found")}
	handler := GetBalance(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/wallet/balance", "", uuid.New()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

// sseRecorder is safe to read while the handler goroutine is still writing.
type sseRecorder struct {
	mu     sync.Mutex
	header http.Header
	status int
	body   bytes.Buffer
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{header: make(http.Header)}
}

func (r *sseRecorder) Header() http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.header
}

func (r *sseRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

func (r *sseRecorder) WriteHeader(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

func (r *sseRecorder) Flush() {}

func (r *sseRecorder) BodyString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func TestStreamBalanceSendsInitialAndPublishedEvents(t *testing.T) {
	svc := &stubWalletService{balance: &wallet.BalanceDTO{
		UserID:           uuid.New(),
		BalanceCents:     5000,
		BalanceFormatted: "R$ 50,00",
	}}
	sub := &stubSubscription{updates: make(chan wallet.BalanceUpdate, 1)}
	watcher := &stubWatcher{sub: sub}
	handler := StreamBalance(svc, watcher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	req := authedRequest(http.MethodGet, "/api/v1/wallet/balance/stream", "", uuid.New())
	req = req.WithContext(ctx)

	sub.updates <- wallet.BalanceUpdate{BalanceCents: 2500, BalanceFormatted: "R$ 25,00"}

	done := make(chan struct{})
	resp := newSSERecorder()
	go func() {
		handler.ServeHTTP(resp, req)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for strings.Count(resp.BodyString(), "event: balance") < 2 {
		select {
		case <-deadline:
			t.Fatalf("stream never produced both events: %q", resp.BodyString())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after client disconnect")
	}

	body := resp.BodyString()
	if !strings.Contains(body, `"balance":5000`) {
		t.Fatalf("initial balance missing from stream: %q", body)
	}
	if !strings.Contains(body, `"balance":2500`) {
		t.Fatalf("published update missing from stream: %q", body)
	}
	if resp.Header().Get("Content-Type") != "text/event-stream" {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
	if !sub.closed {
		t.Fatal("subscription must be released when the stream ends")
	}
}

func TestStreamBalanceExitsWhenSubscriptionCloses(t *testing.T) {
	svc := &stubWalletService{balance: &wallet.BalanceDTO{BalanceFormatted: "R$ 0,00"}}
	sub := &stubSubscription{updates: make(chan wallet.BalanceUpdate)}
	handler := StreamBalance(svc, &stubWatcher{sub: sub}, nil)

	done := make(chan struct{})
	resp := httptest.NewRecorder()
	go func() {
		handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/wallet/balance/stream", "", uuid.New()))
		close(done)
	}()

	close(sub.updates)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after the update channel closed")
	}
}

func TestStreamBalanceWatcherFailure(t *testing.T) {
	svc := &stubWalletService{balance: &wallet.BalanceDTO{BalanceFormatted: "R$ 0,00"}}
	handler := StreamBalance(svc, &stubWatcher{err: errors.New("redis down")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/wallet/balance/stream", "", uuid.New()))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

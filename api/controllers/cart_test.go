package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/api/middleware"
	cartsvc "github.com/bookverse/bookverse-backend/internal/cart"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

type stubCartService struct {
	current *cartsvc.Cart
	result  cartsvc.AddResult
	err     error

	added      []cartsvc.Item
	setBook    uuid.UUID
	setQty     int
	removed    uuid.UUID
	cleared    bool
	seenUserID uuid.UUID
}

func (s *stubCartService) Get(_ context.Context, userID uuid.UUID) (*cartsvc.Cart, error) {
	s.seenUserID = userID
	return s.current, s.err
}

func (s *stubCartService) Add(_ context.Context, userID uuid.UUID, item cartsvc.Item) (cartsvc.AddResult, *cartsvc.Cart, error) {
	s.seenUserID = userID
	if s.err != nil {
		return cartsvc.AddResult{}, nil, s.err
	}
	s.added = append(s.added, item)
	return s.result, s.current, nil
}

func (s *stubCartService) SetQuantity(_ context.Context, userID uuid.UUID, bookID uuid.UUID, quantity int) (*cartsvc.Cart, error) {
	s.seenUserID = userID
	s.setBook = bookID
	s.setQty = quantity
	return s.current, s.err
}

func (s *stubCartService) Remove(_ context.Context, userID uuid.UUID, bookID uuid.UUID) (*cartsvc.Cart, error) {
	s.seenUserID = userID
	s.removed = bookID
	return s.current, s.err
}

func (s *stubCartService) Clear(_ context.Context, userID uuid.UUID) error {
	s.seenUserID = userID
	s.cleared = true
	return s.err
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func cartWithOneBook(t *testing.T) (*cartsvc.Cart, cartsvc.Item) {
	t.Helper()
	current := cartsvc.NewCart()
	item := cartsvc.Item{ID: uuid.New(), Title: "Dom Casmurro", Author: "Machado de Assis", PriceCents: 2500}
	current.Add(item)
	return current, item
}

func TestGetCartSuccess(t *testing.T) {
	current, _ := cartWithOneBook(t)
	svc := &stubCartService{current: current}
	handler := GetCart(svc, nil)

	userID := uuid.New()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", "", userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.seenUserID != userID {
		t.Fatal("handler must pass the authenticated user through")
	}

	var envelope struct {
		Data cartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 1 || envelope.Data.TotalCents != 2500 {
		t.Fatalf("unexpected cart view %+v", envelope.Data)
	}
	if envelope.Data.TotalFormatted != "R$ 25,00" {
		t.Fatalf("unexpected formatted total %q", envelope.Data.TotalFormatted)
	}
}

func TestAddCartItemInsertMessage(t *testing.T) {
	current, _ := cartWithOneBook(t)
	svc := &stubCartService{current: current, result: cartsvc.AddResult{Updated: false, Title: "Dom Casmurro"}}
	handler := AddCartItem(svc, nil)

	body := `{"id":"` + uuid.NewString() + `","title":"Dom Casmurro","author":"Machado de Assis","price":2500,"cover_image_url":""}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body, uuid.New()))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data addCartItemResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message != "Dom Casmurro adicionado ao carrinho!" {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
	if envelope.Data.Updated {
		t.Fatal("insert branch must not report an update")
	}
}

func TestAddCartItemUpdateMessage(t *testing.T) {
	current, _ := cartWithOneBook(t)
	svc := &stubCartService{current: current, result: cartsvc.AddResult{Updated: true, Title: "Dom Casmurro"}}
	handler := AddCartItem(svc, nil)

	body := `{"id":"` + uuid.NewString() + `","title":"Dom Casmurro","author":"Machado de Assis","price":2500}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body, uuid.New()))

	var envelope struct {
		Data addCartItemResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Message != "Quantidade de Dom Casmurro atualizada!" {
		t.Fatalf("unexpected message %q", envelope.Data.Message)
	}
}

func TestAddCartItemRejectsMissingTitle(t *testing.T) {
	svc := &stubCartService{current: cartsvc.NewCart()}
	handler := AddCartItem(svc, nil)

	body := `{"id":"` + uuid.NewString() + `","author":"x","price":100}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.added) != 0 {
		t.Fatal("invalid payload must not reach the service")
	}
}

func TestUpdateCartItemQuantity(t *testing.T) {
	current, item := cartWithOneBook(t)
	svc := &stubCartService{current: current}
	handler := UpdateCartItem(svc, nil)

	req := authedRequest(http.MethodPut, "/api/v1/cart/items/"+item.ID.String(), `{"quantity":3}`, uuid.New())
	req = withURLParam(req, "bookId", item.ID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.setBook != item.ID || svc.setQty != 3 {
		t.Fatalf("unexpected service call: %s %d", svc.setBook, svc.setQty)
	}
}

func TestUpdateCartItemRejectsBadID(t *testing.T) {
	svc := &stubCartService{current: cartsvc.NewCart()}
	handler := UpdateCartItem(svc, nil)

	req := authedRequest(http.MethodPut, "/api/v1/cart/items/not-a-uuid", `{"quantity":3}`, uuid.New())
	req = withURLParam(req, "bookId", "not-a-uuid")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRemoveCartItem(t *testing.T) {
	current, item := cartWithOneBook(t)
	svc := &stubCartService{current: current}
	handler := RemoveCartItem(svc, nil)

	req := authedRequest(http.MethodDelete, "/api/v1/cart/items/"+item.ID.String(), "", uuid.New())
	req = withURLParam(req, "bookId", item.ID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.removed != item.ID {
		t.Fatal("remove must target the supplied book id")
	}
}

func TestClearCart(t *testing.T) {
	svc := &stubCartService{current: cartsvc.NewCart()}
	handler := ClearCart(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart", "", uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("clear must reach the service")
	}
}

func TestGetCartDependencyFailure(t *testing.T) {
	svc := &stubCartService{err: apperrors.New(apperrors.CodeDependency, "redis down")}
	handler := GetCart(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", "", uuid.New()))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/api/middleware"
	"github.com/bookverse/bookverse-backend/api/responses"
	"github.com/bookverse/bookverse-backend/api/validators"
	"github.com/bookverse/bookverse-backend/internal/cart"
	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

type cartItemView struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	PriceCents     int       `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	CoverImageURL  string    `json:"cover_image_url"`
	Quantity       int       `json:"quantity"`
}

type cartView struct {
	Items          []cartItemView `json:"items"`
	ItemCount      int            `json:"item_count"`
	TotalCents     int64          `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
}

func newCartView(c *cart.Cart) cartView {
	items := make([]cartItemView, 0, c.Len())
	for _, line := range c.Items() {
		items = append(items, cartItemView{
			ID:             line.ID,
			Title:          line.Title,
			Author:         line.Author,
			PriceCents:     line.PriceCents,
			PriceFormatted: currency.FormatBRL(int64(line.PriceCents)),
			CoverImageURL:  line.CoverImageURL,
			Quantity:       line.Quantity,
		})
	}
	return cartView{
		Items:          items,
		ItemCount:      c.TotalItemCount(),
		TotalCents:     c.TotalPriceCents(),
		TotalFormatted: currency.FormatBRL(c.TotalPriceCents()),
	}
}

// GetCart serves the authenticated user's cart.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		current, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

type addCartItemRequest struct {
	ID            uuid.UUID `json:"id" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Author        string    `json:"author" validate:"required"`
	PriceCents    int       `json:"price" validate:"min=0"`
	CoverImageURL string    `json:"cover_image_url"`
}

type addCartItemResponse struct {
	Message string   `json:"message"`
	Updated bool     `json:"updated"`
	Cart    cartView `json:"cart"`
}

// AddCartItem puts a book into the cart, or bumps its quantity when it is
// already there. The message mirrors which branch was taken so clients can
// surface it as-is.
func AddCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, current, err := svc.Add(r.Context(), userID, cart.Item{
			ID:            payload.ID,
			Title:         payload.Title,
			Author:        payload.Author,
			PriceCents:    payload.PriceCents,
			CoverImageURL: payload.CoverImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := fmt.Sprintf("%s adicionado ao carrinho!", result.Title)
		if result.Updated {
			message = fmt.Sprintf("Quantidade de %s atualizada!", result.Title)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, addCartItemResponse{
			Message: message,
			Updated: result.Updated,
			Cart:    newCartView(current),
		})
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// UpdateCartItem sets a line's quantity; zero removes the line.
func UpdateCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		bookID, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.SetQuantity(r.Context(), userID, bookID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

// RemoveCartItem deletes a line from the cart.
func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		bookID, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Remove(r.Context(), userID, bookID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

// ClearCart empties the cart.
func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(cart.NewCart()))
	}
}

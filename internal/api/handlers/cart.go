package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/voltkart/storefront/internal/cart"
	"github.com/voltkart/storefront/internal/utils/response"
)

// CartHandler exposes the cart engine's operations. Requests carry
// denormalized product snapshots, so the handler never touches the catalog.
type CartHandler struct {
	engine    *cart.Engine
	validator *validator.Validate
}

func NewCartHandler(engine *cart.Engine) *CartHandler {
	return &CartHandler{
		engine:    engine,
		validator: validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.engine.Summary())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req cart.AddItemRequest
		if !decodeAndValidate(w, r, &req, h.validator) {
			return
		}

		quantity := req.Quantity
		if quantity < 1 {
			quantity = 1
		}

		h.engine.AddToCart(r.Context(), req.Product, quantity)

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req cart.UpdateQuantityRequest
		if !decodeAndValidate(w, r, &req, h.validator) {
			return
		}

		h.engine.UpdateQuantity(r.Context(), req.ProductID, req.Quantity)

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) IncrementItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.IncrementQuantity(r.Context(), r.PathValue("id"))

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) DecrementItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.DecrementQuantity(r.Context(), r.PathValue("id"))

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.RemoveFromCart(r.Context(), r.PathValue("id"))

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.ClearCart(r.Context())

		response.Success(w, http.StatusOK, h.engine.Summary())

	}
}

func (h *CartHandler) ToggleCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		isOpen := h.engine.ToggleCart(r.Context())

		response.Success(w, http.StatusOK, map[string]bool{"isOpen": isOpen})

	}
}

func (h *CartHandler) OpenCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.OpenCart(r.Context())

		response.Success(w, http.StatusOK, map[string]bool{"isOpen": true})

	}
}

func (h *CartHandler) CloseCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.engine.CloseCart(r.Context())

		response.Success(w, http.StatusOK, map[string]bool{"isOpen": false})

	}
}

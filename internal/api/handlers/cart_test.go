package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltkart/storefront/internal/api/handlers"
	"github.com/voltkart/storefront/internal/cart"
	"github.com/voltkart/storefront/internal/models"
	"github.com/voltkart/storefront/internal/testutils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cartProduct(name string, price, discount float64, stock int) models.Product {
	return models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Discount:  discount,
		Category:  "kitchen-appliances",
		Stock:     stock,
		Images:    []string{"https://res.example.com/" + name + ".jpg"},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func newCartHandler(t *testing.T) (*handlers.CartHandler, *cart.Engine) {
	t.Helper()

	engine := cart.NewEngine(context.Background(), cart.NewMemoryStore())

	return handlers.NewCartHandler(engine), engine
}

func addBody(t *testing.T, product models.Product, quantity int) *bytes.Buffer {
	t.Helper()

	payload, err := json.Marshal(cart.AddItemRequest{Product: product, Quantity: quantity})
	require.NoError(t, err)

	return bytes.NewBuffer(payload)
}

func TestCartAddItem(t *testing.T) {

	t.Run("Success - returns the derived summary", func(t *testing.T) {
		// Arrange
		handler, _ := newCartHandler(t)
		product := cartProduct("kettle", 1000, 20, 5)

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", addBody(t, product, 2), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		assert.True(t, envelope.Success)

		summary, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(2), summary["totalItems"])
		assert.Equal(t, float64(1), summary["totalLines"])
		assert.Equal(t, float64(1600), summary["totalPrice"])
		assert.Equal(t, float64(2000), summary["originalPrice"])
		assert.Equal(t, float64(400), summary["totalDiscount"])
		assert.Equal(t, float64(20), summary["savings"])
	})

	t.Run("Success - omitted quantity defaults to one", func(t *testing.T) {
		handler, engine := newCartHandler(t)
		product := cartProduct("toaster", 50, 0, 5)

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items", addBody(t, product, 0), nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, engine.TotalItems())
	})

	t.Run("Failure - missing product is rejected", func(t *testing.T) {
		handler, engine := newCartHandler(t)

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items",
			bytes.NewBufferString(`{"quantity": 2}`), nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, engine.TotalItems())
	})

	t.Run("Failure - malformed body is rejected", func(t *testing.T) {
		handler, _ := newCartHandler(t)

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items",
			bytes.NewBufferString(`{not json`), nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	handler, engine := newCartHandler(t)
	product := cartProduct("blender", 80, 0, 10)
	engine.AddToCart(testutils.CreateTestRequest(http.MethodGet, "/", nil, nil).Context(), product, 2)

	payload, err := json.Marshal(cart.UpdateQuantityRequest{ProductID: product.ID.Hex(), Quantity: 7})
	require.NoError(t, err)

	req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/cart/items", bytes.NewBuffer(payload), nil)
	rr := httptest.NewRecorder()

	handler.UpdateQuantity().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 7, engine.TotalItems())
}

func TestCartItemPathOperations(t *testing.T) {
	handler, engine := newCartHandler(t)
	ctx := testutils.CreateTestRequest(http.MethodGet, "/", nil, nil).Context()

	product := cartProduct("fridge", 1200, 5, 3)
	engine.AddToCart(ctx, product, 1)
	id := product.ID.Hex()

	t.Run("Increment", func(t *testing.T) {
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items/"+id+"/increment", nil,
			map[string]string{"id": id})
		rr := httptest.NewRecorder()

		handler.IncrementItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2, engine.TotalItems())
	})

	t.Run("Decrement", func(t *testing.T) {
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/items/"+id+"/decrement", nil,
			map[string]string{"id": id})
		rr := httptest.NewRecorder()

		handler.DecrementItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, engine.TotalItems())
	})

	t.Run("Remove", func(t *testing.T) {
		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/items/"+id, nil,
			map[string]string{"id": id})
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Zero(t, engine.TotalItems())
	})

	t.Run("Remove again is a no-op", func(t *testing.T) {
		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/items/"+id, nil,
			map[string]string{"id": id})
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestCartClearAndGet(t *testing.T) {
	handler, engine := newCartHandler(t)
	ctx := testutils.CreateTestRequest(http.MethodGet, "/", nil, nil).Context()

	first := cartProduct("oven", 300, 0, 4)
	second := cartProduct("mixer", 60, 10, 9)
	engine.AddToCart(ctx, first, 2)
	engine.AddToCart(ctx, second, 1)

	getReq := testutils.CreateTestRequest(http.MethodGet, "/api/v1/cart", nil, nil)
	getRR := httptest.NewRecorder()
	handler.GetCart().ServeHTTP(getRR, getReq)

	assert.Equal(t, http.StatusOK, getRR.Code)
	envelope := decodeEnvelope(t, getRR)
	summary, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), summary["totalItems"])
	assert.Equal(t, float64(2), summary["totalLines"])

	clearReq := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart", nil, nil)
	clearRR := httptest.NewRecorder()
	handler.ClearCart().ServeHTTP(clearRR, clearReq)

	assert.Equal(t, http.StatusOK, clearRR.Code)
	assert.Zero(t, engine.TotalItems())
}

func TestCartVisibility(t *testing.T) {
	handler, engine := newCartHandler(t)

	toggle := func() map[string]any {
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/toggle", nil, nil)
		rr := httptest.NewRecorder()
		handler.ToggleCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)

		return data
	}

	assert.Equal(t, true, toggle()["isOpen"])
	assert.Equal(t, false, toggle()["isOpen"])

	openReq := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/open", nil, nil)
	openRR := httptest.NewRecorder()
	handler.OpenCart().ServeHTTP(openRR, openReq)
	assert.True(t, engine.IsOpen())

	closeReq := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/close", nil, nil)
	closeRR := httptest.NewRecorder()
	handler.CloseCart().ServeHTTP(closeRR, closeReq)
	assert.False(t, engine.IsOpen())
}

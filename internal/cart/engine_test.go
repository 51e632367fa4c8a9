package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltkart/storefront/internal/cart"
	"github.com/voltkart/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct(price, discount float64, stock int) models.Product {
	return models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Test Appliance",
		Description: "Test Description",
		Price:       price,
		Discount:    discount,
		Category:    "kitchen-appliances",
		Stock:       stock,
		Images:      []string{"https://res.example.com/image.jpg"},
	}
}

func newTestEngine(t *testing.T) (*cart.Engine, cart.Store) {
	t.Helper()

	store := cart.NewMemoryStore()

	return cart.NewEngine(context.Background(), store), store
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Re-adding the same product sums quantities into one line", func(t *testing.T) {
		// Arrange
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)

		// Act
		engine.AddToCart(ctx, product, 1)
		engine.AddToCart(ctx, product, 2)
		engine.AddToCart(ctx, product, 4)

		// Assert
		assert.Equal(t, 1, engine.TotalLines())
		item, ok := engine.ItemByID(product.ID.Hex())
		require.True(t, ok)
		// the sum is not clamped to stock
		assert.Equal(t, 7, item.Quantity)
		assert.False(t, item.AddedAt.IsZero())
	})

	t.Run("Distinct products get distinct lines", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		first := testProduct(100, 0, 5)
		second := testProduct(200, 10, 3)

		engine.AddToCart(ctx, first, 1)
		engine.AddToCart(ctx, second, 2)

		assert.Equal(t, 2, engine.TotalLines())
		assert.Equal(t, 3, engine.TotalItems())
		assert.True(t, engine.IsInCart(first.ID.Hex()))
		assert.True(t, engine.IsInCart(second.ID.Hex()))
	})

	t.Run("Quantity below one defaults to one", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)

		engine.AddToCart(ctx, product, 0)

		item, ok := engine.ItemByID(product.ID.Hex())
		require.True(t, ok)
		assert.Equal(t, 1, item.Quantity)
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes an existing line", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)
		engine.AddToCart(ctx, product, 2)

		engine.RemoveFromCart(ctx, product.ID.Hex())

		assert.Equal(t, 0, engine.TotalLines())
		assert.False(t, engine.IsInCart(product.ID.Hex()))
	})

	t.Run("Unknown product id is a no-op", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)
		engine.AddToCart(ctx, product, 2)

		engine.RemoveFromCart(ctx, primitive.NewObjectID().Hex())

		assert.Equal(t, 1, engine.TotalLines())
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets the quantity verbatim without clamping to stock", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 3)
		engine.AddToCart(ctx, product, 1)

		engine.UpdateQuantity(ctx, product.ID.Hex(), 10)

		item, ok := engine.ItemByID(product.ID.Hex())
		require.True(t, ok)
		assert.Equal(t, 10, item.Quantity)
	})

	t.Run("Zero or negative quantity removes the line", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 3)
		engine.AddToCart(ctx, product, 2)

		engine.UpdateQuantity(ctx, product.ID.Hex(), 0)

		assert.False(t, engine.IsInCart(product.ID.Hex()))
	})

	t.Run("Unknown product id is a no-op", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 3)
		engine.AddToCart(ctx, product, 2)

		engine.UpdateQuantity(ctx, primitive.NewObjectID().Hex(), 5)

		item, _ := engine.ItemByID(product.ID.Hex())
		assert.Equal(t, 2, item.Quantity)
	})
}

func TestIncrementQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds one below stock", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 3)
		engine.AddToCart(ctx, product, 1)

		engine.IncrementQuantity(ctx, product.ID.Hex())

		item, _ := engine.ItemByID(product.ID.Hex())
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("No-op once quantity equals stock", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 3)
		engine.AddToCart(ctx, product, 3)

		engine.IncrementQuantity(ctx, product.ID.Hex())

		item, _ := engine.ItemByID(product.ID.Hex())
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("Unknown product id is a no-op", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		engine.IncrementQuantity(ctx, primitive.NewObjectID().Hex())

		assert.Equal(t, 0, engine.TotalLines())
	})
}

func TestDecrementQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Above one only decreases by one", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)
		engine.AddToCart(ctx, product, 3)

		engine.DecrementQuantity(ctx, product.ID.Hex())

		item, ok := engine.ItemByID(product.ID.Hex())
		require.True(t, ok)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("At one the line is removed instead of dropping to zero", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		product := testProduct(100, 0, 5)
		engine.AddToCart(ctx, product, 1)

		engine.DecrementQuantity(ctx, product.ID.Hex())

		assert.False(t, engine.IsInCart(product.ID.Hex()))
	})
}

func TestClearCartAndVisibility(t *testing.T) {
	ctx := context.Background()

	engine, _ := newTestEngine(t)
	engine.AddToCart(ctx, testProduct(100, 0, 5), 2)
	engine.AddToCart(ctx, testProduct(50, 10, 3), 1)

	engine.ClearCart(ctx)
	assert.Equal(t, 0, engine.TotalLines())
	assert.Equal(t, 0, engine.TotalItems())

	assert.False(t, engine.IsOpen())
	assert.True(t, engine.ToggleCart(ctx))
	assert.True(t, engine.IsOpen())
	assert.False(t, engine.ToggleCart(ctx))

	engine.OpenCart(ctx)
	assert.True(t, engine.IsOpen())
	engine.CloseCart(ctx)
	assert.False(t, engine.IsOpen())
}

func TestPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("Discounted line math", func(t *testing.T) {
		// Arrange: price 1000, discount 20%, quantity 2
		engine, _ := newTestEngine(t)
		product := testProduct(1000, 20, 10)

		// Act
		engine.AddToCart(ctx, product, 2)
		summary := engine.Summary()

		// Assert: unit 800, line total 1600, original 2000, savings 400 (20%)
		assert.InDelta(t, 1600, summary.TotalPrice, 1e-9)
		assert.InDelta(t, 2000, summary.OriginalPrice, 1e-9)
		assert.InDelta(t, 400, summary.TotalDiscount, 1e-9)
		assert.Equal(t, 20, summary.Savings)
	})

	t.Run("Total price never exceeds original price", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		engine.AddToCart(ctx, testProduct(199.99, 15, 10), 3)
		engine.AddToCart(ctx, testProduct(49.5, 0, 10), 2)
		engine.AddToCart(ctx, testProduct(1234.56, 99, 10), 1)

		assert.LessOrEqual(t, engine.TotalPrice(), engine.OriginalPrice())
	})

	t.Run("Equality holds exactly when every discount is zero", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		engine.AddToCart(ctx, testProduct(199.99, 0, 10), 3)
		engine.AddToCart(ctx, testProduct(49.5, 0, 10), 2)

		assert.Equal(t, engine.OriginalPrice(), engine.TotalPrice())

		engine.AddToCart(ctx, testProduct(10, 1, 10), 1)
		assert.Less(t, engine.TotalPrice(), engine.OriginalPrice())
	})

	t.Run("Sums are rounded at the summary boundary only", func(t *testing.T) {
		engine, _ := newTestEngine(t)
		// 0.1 * 3 is not representable exactly
		engine.AddToCart(ctx, testProduct(0.1, 0, 10), 3)

		assert.Equal(t, 0.3, engine.Summary().OriginalPrice)
	})

	t.Run("Empty cart summary is all zeros, savings included", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		summary := engine.Summary()

		assert.Equal(t, 0, summary.TotalItems)
		assert.Equal(t, 0, summary.TotalLines)
		assert.Zero(t, summary.TotalPrice)
		assert.Zero(t, summary.OriginalPrice)
		assert.Zero(t, summary.TotalDiscount)
		assert.Equal(t, 0, summary.Savings)
	})
}

func TestStatePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()

	// Arrange
	store := cart.NewMemoryStore()
	engine := cart.NewEngine(ctx, store)

	first := testProduct(1000, 20, 10)
	second := testProduct(49.5, 0, 3)
	engine.AddToCart(ctx, first, 2)
	engine.AddToCart(ctx, second, 1)
	engine.OpenCart(ctx)

	// Act: a fresh engine over the same store sees the persisted state
	reloaded := cart.NewEngine(ctx, store)

	// Assert
	assert.Equal(t, engine.Items(), reloaded.Items())
	assert.True(t, reloaded.IsOpen())
	assert.Equal(t, engine.Summary(), reloaded.Summary())
}

package cart

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/voltkart/storefront/internal/models"
)

// Engine is the cart state container. Every mutation is a transition over
// State followed by a write through the Store boundary; getters derive from
// current state with no caching. Operations never fail: unknown product ids
// and out-of-range quantities degrade to no-ops or removals, and a failed
// persist is logged without surfacing.
type Engine struct {
	mu    sync.Mutex
	state State
	store Store
}

// NewEngine loads any previously persisted state from the store. A load
// failure starts the engine empty.
func NewEngine(ctx context.Context, store Store) *Engine {

	e := &Engine{store: store}

	state, found, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load cart state, starting empty", slog.String("error", err.Error()))
		return e
	}

	if found {
		e.state = state
	}

	return e
}

// persist is called under e.mu after every mutation.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.state); err != nil {
		slog.Error("Failed to persist cart state", slog.String("error", err.Error()))
	}
}

func (e *Engine) find(productID string) *Item {
	for i := range e.state.Items {
		if e.state.Items[i].ID.Hex() == productID {
			return &e.state.Items[i]
		}
	}

	return nil
}

// AddToCart appends a snapshot of the product, or increases the quantity of
// an existing line with the same product id. The summed quantity is not
// clamped to stock.
func (e *Engine) AddToCart(ctx context.Context, product models.Product, quantity int) {

	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if item := e.find(product.ID.Hex()); item != nil {
		item.Quantity += quantity
	} else {
		e.state.Items = append(e.state.Items, Item{
			Product:  product,
			Quantity: quantity,
			AddedAt:  time.Now().UTC(),
		})
	}

	e.persist(ctx)
}

func (e *Engine) RemoveFromCart(ctx context.Context, productID string) {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeLocked(productID)
	e.persist(ctx)
}

func (e *Engine) removeLocked(productID string) {

	items := e.state.Items[:0]

	for _, item := range e.state.Items {
		if item.ID.Hex() != productID {
			items = append(items, item)
		}
	}

	e.state.Items = items
}

// UpdateQuantity sets the quantity verbatim (no stock clamp). A quantity of
// zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		e.removeLocked(productID)
		e.persist(ctx)
		return
	}

	if item := e.find(productID); item != nil {
		item.Quantity = quantity
	}

	e.persist(ctx)
}

// IncrementQuantity adds one, but never past the stock captured in the
// snapshot.
func (e *Engine) IncrementQuantity(ctx context.Context, productID string) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if item := e.find(productID); item != nil && item.Quantity < item.Stock {
		item.Quantity++
		e.persist(ctx)
	}
}

// DecrementQuantity subtracts one; at quantity 1 the line is removed instead
// of dropping to zero.
func (e *Engine) DecrementQuantity(ctx context.Context, productID string) {

	e.mu.Lock()
	defer e.mu.Unlock()

	item := e.find(productID)
	if item == nil {
		return
	}

	if item.Quantity > 1 {
		item.Quantity--
	} else {
		e.removeLocked(productID)
	}

	e.persist(ctx)
}

func (e *Engine) ClearCart(ctx context.Context) {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Items = nil
	e.persist(ctx)
}

func (e *Engine) ToggleCart(ctx context.Context) bool {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsOpen = !e.state.IsOpen
	e.persist(ctx)

	return e.state.IsOpen
}

func (e *Engine) OpenCart(ctx context.Context) {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsOpen = true
	e.persist(ctx)
}

func (e *Engine) CloseCart(ctx context.Context) {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.IsOpen = false
	e.persist(ctx)
}

func (e *Engine) IsOpen() bool {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.IsOpen
}

// Items returns a copy of the current item list.
func (e *Engine) Items() []Item {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.itemsLocked()
}

func (e *Engine) itemsLocked() []Item {
	items := make([]Item, len(e.state.Items))
	copy(items, e.state.Items)

	return items
}

func (e *Engine) TotalItems() int {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalItemsLocked()
}

func (e *Engine) totalItemsLocked() int {

	total := 0
	for _, item := range e.state.Items {
		total += item.Quantity
	}

	return total
}

// TotalLines is the number of distinct products in the cart.
func (e *Engine) TotalLines() int {

	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.state.Items)
}

// TotalPrice sums discounted line totals. Running sums are not rounded; the
// summary boundary is the only rounding point.
func (e *Engine) TotalPrice() float64 {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalPriceLocked()
}

func (e *Engine) totalPriceLocked() float64 {

	total := 0.0
	for _, item := range e.state.Items {
		total += item.DiscountedUnitPrice() * float64(item.Quantity)
	}

	return total
}

func (e *Engine) OriginalPrice() float64 {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.originalPriceLocked()
}

func (e *Engine) originalPriceLocked() float64 {

	total := 0.0
	for _, item := range e.state.Items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

func (e *Engine) TotalDiscount() float64 {

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.originalPriceLocked() - e.totalPriceLocked()
}

func (e *Engine) ItemByID(productID string) (Item, bool) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if item := e.find(productID); item != nil {
		return *item, true
	}

	return Item{}, false
}

func (e *Engine) IsInCart(productID string) bool {

	_, ok := e.ItemByID(productID)

	return ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary recomputes the projection from current state. Savings is defined
// as 0 when the original price is 0.
func (e *Engine) Summary() Summary {

	e.mu.Lock()
	defer e.mu.Unlock()

	totalPrice := e.totalPriceLocked()
	originalPrice := e.originalPriceLocked()
	totalDiscount := originalPrice - totalPrice

	savings := 0
	if originalPrice > 0 {
		savings = int(math.Round(totalDiscount / originalPrice * 100))
	}

	return Summary{
		Items:         e.itemsLocked(),
		TotalItems:    e.totalItemsLocked(),
		TotalLines:    len(e.state.Items),
		TotalPrice:    round2(totalPrice),
		OriginalPrice: round2(originalPrice),
		TotalDiscount: round2(totalDiscount),
		Savings:       savings,
	}
}

package cart

import (
	"time"

	"github.com/voltkart/storefront/internal/models"
)

// Item is a product snapshot captured at add-time plus cart-specific fields.
// Later catalog changes do not propagate into it.
type Item struct {
	models.Product `bson:",inline"`

	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// State is everything the engine owns and everything that gets persisted.
type State struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// Summary is a derived, read-only projection of the item list. It is never
// stored; it is recomputed on every read.
type Summary struct {
	Items         []Item  `json:"items"`
	TotalItems    int     `json:"totalItems"`
	TotalLines    int     `json:"totalLines"`
	TotalPrice    float64 `json:"totalPrice"`
	OriginalPrice float64 `json:"originalPrice"`
	TotalDiscount float64 `json:"totalDiscount"`
	Savings       int     `json:"savings"`
}

// DiscountedUnitPrice is price × (1 − discount/100).
func (i Item) DiscountedUnitPrice() float64 {
	return i.Price * (1 - i.Discount/100)
}

type AddItemRequest struct {
	Product  models.Product `json:"product" validate:"required"`
	Quantity int            `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

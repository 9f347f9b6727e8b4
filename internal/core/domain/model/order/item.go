package order

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// maxItemQuantity bounds a single line item; larger purchases are split upstream.
const maxItemQuantity = 1000

// Item is one order line: a product reference with quantity, unit price, and
// the chosen variant. Items are owned by the catalog/checkout collaborators;
// the engine reads them for inventory reserve/release.
type Item struct {
	productID  kernel.UUID
	quantity   int
	priceCents int64
	size       string
	color      string
}

// NewItem creates a validated order line.
func NewItem(productID kernel.UUID, quantity int, priceCents int64, size, color string) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if priceCents < 0 {
		return Item{}, errs.NewValueIsInvalidError("price cannot be negative")
	}
	return Item{
		productID:  productID,
		quantity:   quantity,
		priceCents: priceCents,
		size:       size,
		color:      color,
	}, nil
}

// ProductID returns the referenced product.
func (i Item) ProductID() kernel.UUID { return i.productID }

// Quantity returns the ordered quantity.
func (i Item) Quantity() int { return i.quantity }

// PriceCents returns the unit price in cents.
func (i Item) PriceCents() int64 { return i.priceCents }

// Size returns the chosen size variant, empty when not applicable.
func (i Item) Size() string { return i.size }

// Color returns the chosen color variant, empty when not applicable.
func (i Item) Color() string { return i.color }

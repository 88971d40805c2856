package domain

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of line items owned by one browser.
// Item IDs are unique within Items and every Quantity is at least 1.
//
// The mutating methods never modify the receiver's backing array: they return
// a new Cart, so a snapshot handed to a caller stays stable.
type Cart struct {
	OwnerID string
	Items   []LineItem
}

type LineItem struct {
	Item
	Quantity int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func NewLineItem(item Item) LineItem {
	return LineItem{Item: item, Quantity: 1}
}

func (c Cart) indexOf(id int64) int {
	return slices.IndexFunc(c.Items, func(li LineItem) bool {
		return li.ID == id
	})
}

// Add increments the quantity of an existing line or appends a new line with quantity 1.
// A quantity already at math.MaxInt stays there.
func (c Cart) Add(item Item) Cart {
	items := slices.Clone(c.Items)

	if idx := c.indexOf(item.ID); idx >= 0 {
		items[idx].Quantity = addQuantity(items[idx].Quantity, 1)
	} else {
		items = append(items, NewLineItem(item))
	}

	return Cart{OwnerID: c.OwnerID, Items: items}
}

// UpdateQuantity sets quantity to max(1, quantity+delta), saturating at math.MaxInt.
// Unknown ids are ignored.
func (c Cart) UpdateQuantity(id int64, delta int) Cart {
	idx := c.indexOf(id)
	if idx < 0 {
		return c
	}

	items := slices.Clone(c.Items)
	items[idx].Quantity = addQuantity(items[idx].Quantity, delta)

	return Cart{OwnerID: c.OwnerID, Items: items}
}

// addQuantity returns q+delta clamped to [1, math.MaxInt]. q is at least 1.
func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}

	return max(1, q+delta)
}

// Remove deletes the line with id. Unknown ids are ignored.
func (c Cart) Remove(id int64) Cart {
	idx := c.indexOf(id)
	if idx < 0 {
		return c
	}

	items := slices.Delete(slices.Clone(c.Items), idx, idx+1)

	return Cart{OwnerID: c.OwnerID, Items: items}
}

// Count is the number of units in the cart, not the number of lines.
func (c Cart) Count() int {
	var n int
	for _, li := range c.Items {
		if li.Quantity > math.MaxInt-n {
			return math.MaxInt
		}
		n += li.Quantity
	}

	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.Subtotal())
	}

	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Validate reports the first broken invariant: a duplicate id or a quantity below 1.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Items))

	for _, li := range c.Items {
		if li.Quantity < 1 {
			return fmt.Errorf("item[%d] has quantity %d", li.ID, li.Quantity)
		}
		if _, ok := seen[li.ID]; ok {
			return fmt.Errorf("item[%d] is duplicated", li.ID)
		}
		seen[li.ID] = struct{}{}
	}

	return nil
}

package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrUnknownCategory = errors.New("unknown category")
)

type Category string

const (
	CategoryMonos    Category = "Moños"
	CategoryVinchas  Category = "Vinchas"
	CategoryHebillas Category = "Hebillas"
	CategoryColitas  Category = "Colitas"
)

// CategoryAll is the pseudo-category of the landing page; it matches every item.
const CategoryAll = "Home"

// Categories lists the closed set in display order.
func Categories() []Category {
	return []Category{CategoryMonos, CategoryVinchas, CategoryHebillas, CategoryColitas}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// LowStockThreshold is the stock level at which the "last units" badge is shown.
const LowStockThreshold = 3

// Item is a catalog entry. Items are immutable once loaded.
type Item struct {
	ID          int64
	Name        string
	Category    Category
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
}

func (i Item) LowStock() bool {
	return i.Stock <= LowStockThreshold
}

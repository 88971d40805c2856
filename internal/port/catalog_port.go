package port

import "github.com/nikolayk812/cvshop/internal/domain"

type Catalog interface {
	// Filter returns the items of category in catalog order; "" and domain.CategoryAll return every item.
	Filter(category string) ([]domain.Item, error)
	Get(id int64) (domain.Item, error)
}

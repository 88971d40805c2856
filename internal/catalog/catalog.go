// Package catalog serves the static, read-only list of purchasable items.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

type itemModel struct {
	ID          int64  `yaml:"id" validate:"gt=0"`
	Nombre      string `yaml:"nombre" validate:"required"`
	Categoria   string `yaml:"categoria" validate:"required"`
	Descripcion string `yaml:"descripcion"`
	Precio      string `yaml:"precio" validate:"required"`
	Stock       int    `yaml:"stock" validate:"gte=0"`
	Imagen      string `yaml:"imagen"`
}

type fileModel struct {
	Items []itemModel `yaml:"items" validate:"dive"`
}

// Catalog is safe for concurrent use: it is never mutated after Load.
type Catalog struct {
	items []domain.Item
	byID  map[int64]int
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(defaultData)
}

func Load(data []byte) (*Catalog, error) {
	var file fileModel
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("validate.Struct: %w", err)
	}

	c := &Catalog{
		items: make([]domain.Item, 0, len(file.Items)),
		byID:  make(map[int64]int, len(file.Items)),
	}

	for _, m := range file.Items {
		item, err := mapItemModelToDomain(m)
		if err != nil {
			return nil, fmt.Errorf("mapItemModelToDomain: %w", err)
		}

		if _, ok := c.byID[item.ID]; ok {
			return nil, fmt.Errorf("item[%d] is duplicated", item.ID)
		}

		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Filter never mutates the catalog; the returned slice belongs to the caller.
func (c *Catalog) Filter(category string) ([]domain.Item, error) {
	if category == "" || category == domain.CategoryAll {
		return slices.Clone(c.items), nil
	}

	parsed, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Item, 0)
	for _, item := range c.items {
		if item.Category == parsed {
			result = append(result, item)
		}
	}

	return result, nil
}

func (c *Catalog) Get(id int64) (domain.Item, error) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Item{}, fmt.Errorf("item[%d]: %w", id, domain.ErrItemNotFound)
	}

	return c.items[idx], nil
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func mapItemModelToDomain(m itemModel) (domain.Item, error) {
	category, err := domain.ParseCategory(m.Categoria)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item[%d]: %w", m.ID, err)
	}

	price, err := decimal.NewFromString(m.Precio)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item[%d] precio[%s] is not valid: %w", m.ID, m.Precio, err)
	}
	if price.IsNegative() {
		return domain.Item{}, fmt.Errorf("item[%d] precio is negative", m.ID)
	}

	return domain.Item{
		ID:          m.ID,
		Name:        m.Nombre,
		Category:    category,
		Description: m.Descripcion,
		Price:       price,
		Stock:       m.Stock,
		Image:       m.Imagen,
	}, nil
}

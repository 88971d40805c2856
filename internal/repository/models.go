package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/shopspring/decimal"
)

// lineItemModel is the stored layout of one cart row. Field order and names are part
// of the persisted format.
type lineItemModel struct {
	ID          int64       `json:"id"`
	Nombre      string      `json:"nombre"`
	Categoria   string      `json:"categoria"`
	Descripcion string      `json:"descripcion"`
	Precio      json.Number `json:"precio"`
	Stock       int         `json:"stock"`
	Imagen      string      `json:"imagen"`
	Quantity    int         `json:"quantity"`
}

// legacyCategories maps category names written by earlier storefront builds.
var legacyCategories = map[string]domain.Category{
	"Binchas": domain.CategoryVinchas,
}

func parseStoredCategory(s string) (domain.Category, error) {
	if c, ok := legacyCategories[s]; ok {
		return c, nil
	}

	return domain.ParseCategory(s)
}

func marshalLineItems(items []domain.LineItem) ([]byte, error) {
	models := make([]lineItemModel, 0, len(items))

	for _, li := range items {
		models = append(models, lineItemModel{
			ID:          li.ID,
			Nombre:      li.Name,
			Categoria:   string(li.Category),
			Descripcion: li.Description,
			Precio:      json.Number(li.Price.String()),
			Stock:       li.Stock,
			Imagen:      li.Image,
			Quantity:    li.Quantity,
		})
	}

	return json.Marshal(models)
}

func unmarshalLineItems(data []byte) ([]domain.LineItem, error) {
	var models []lineItemModel
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	items := make([]domain.LineItem, 0, len(models))

	for _, m := range models {
		li, err := mapModelToDomain(m)
		if err != nil {
			return nil, fmt.Errorf("mapModelToDomain: %w", err)
		}

		items = append(items, li)
	}

	return items, nil
}

func mapModelToDomain(m lineItemModel) (domain.LineItem, error) {
	category, err := parseStoredCategory(m.Categoria)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item[%d]: %w", m.ID, err)
	}

	price, err := decimal.NewFromString(m.Precio.String())
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item[%d] precio[%s] is not valid: %w", m.ID, m.Precio, err)
	}
	if price.IsNegative() || m.Stock < 0 {
		return domain.LineItem{}, fmt.Errorf("item[%d] has negative precio or stock", m.ID)
	}

	return domain.LineItem{
		Item: domain.Item{
			ID:          m.ID,
			Name:        m.Nombre,
			Category:    category,
			Description: m.Descripcion,
			Price:       price,
			Stock:       m.Stock,
			Image:       m.Imagen,
		},
		Quantity: m.Quantity,
	}, nil
}

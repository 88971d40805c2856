package http

import (
	"encoding/json"

	"github.com/nikolayk812/cvshop/internal/checkout"
	"github.com/nikolayk812/cvshop/internal/domain"
)

// The item fields keep the Spanish names of the storefront's stored cart layout.
type itemResponse struct {
	ID          int64       `json:"id"`
	Nombre      string      `json:"nombre"`
	Categoria   string      `json:"categoria"`
	Descripcion string      `json:"descripcion"`
	Precio      json.Number `json:"precio"`
	Stock       int         `json:"stock"`
	Imagen      string      `json:"imagen"`
	LowStock    bool        `json:"low_stock"`
}

type lineItemResponse struct {
	itemResponse
	Quantity int         `json:"quantity"`
	Subtotal json.Number `json:"subtotal"`
}

type cartResponse struct {
	Items []lineItemResponse `json:"items"`
	Count int                `json:"count"`
	Total json.Number        `json:"total"`
}

type checkoutResponse struct {
	Message             string      `json:"message"`
	URL                 string      `json:"url"`
	Total               json.Number `json:"total"`
	Currency            string      `json:"currency"`
	PaymentInstructions []string    `json:"payment_instructions"`
}

type contactLinksResponse struct {
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Nombre:      item.Name,
		Categoria:   string(item.Category),
		Descripcion: item.Description,
		Precio:      json.Number(item.Price.String()),
		Stock:       item.Stock,
		Imagen:      item.Image,
		LowStock:    item.LowStock(),
	}
}

func toItemsResponse(items []domain.Item) []itemResponse {
	result := make([]itemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toItemResponse(item))
	}
	return result
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := make([]lineItemResponse, 0, len(cart.Items))
	for _, li := range cart.Items {
		items = append(items, lineItemResponse{
			itemResponse: toItemResponse(li.Item),
			Quantity:     li.Quantity,
			Subtotal:     json.Number(li.Subtotal().String()),
		})
	}

	return cartResponse{
		Items: items,
		Count: cart.Count(),
		Total: json.Number(cart.Total().String()),
	}
}

func toCheckoutResponse(order checkout.Order) checkoutResponse {
	return checkoutResponse{
		Message:             order.Message,
		URL:                 order.URL,
		Total:               json.Number(order.Total.Amount.String()),
		Currency:            order.Total.Currency.String(),
		PaymentInstructions: order.PaymentInstructions,
	}
}

package http

import (
	"context"
	"net/http"

	"github.com/nikolayk812/cvshop/internal/checkout"
	"github.com/nikolayk812/cvshop/internal/contact"
	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/port"
	"go.uber.org/zap"
)

type CartService interface {
	Cart(ctx context.Context, ownerID string) (domain.Cart, error)
	Add(ctx context.Context, ownerID string, itemID int64) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, ownerID string, itemID int64, delta int) (domain.Cart, error)
	Remove(ctx context.Context, ownerID string, itemID int64) (domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (bool, error)
}

type CheckoutFormatter interface {
	Order(cart domain.Cart) (checkout.Order, error)
	ContactURL() string
}

type ContactService interface {
	Submit(ctx context.Context, form contact.Form) error
	MailtoURL() string
}

type Handler struct {
	catalog  port.Catalog
	carts    CartService
	checkout CheckoutFormatter
	contact  ContactService
	logger   *zap.Logger
}

func NewHandler(catalog port.Catalog, carts CartService, checkout CheckoutFormatter, contact ContactService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		catalog:  catalog,
		carts:    carts,
		checkout: checkout,
		contact:  contact,
		logger:   logger,
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, domain.Categories())
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Filter(r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toItemsResponse(items))
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.catalog.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Cart(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCartResponse(cart))
}

type addItemRequest struct {
	ID int64 `json:"id"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	cart, err := h.carts.Add(r.Context(), ownerFromContext(r.Context()), req.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCartResponse(cart))
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), ownerFromContext(r.Context()), id, req.Delta)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cart, err := h.carts.Remove(r.Context(), ownerFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if _, err := h.carts.Clear(r.Context(), ownerFromContext(r.Context())); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkoutOrder(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Cart(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	order, err := h.checkout.Order(cart)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCheckoutResponse(order))
}

func (h *Handler) contactLinks(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, contactLinksResponse{
		WhatsApp: h.checkout.ContactURL(),
		Email:    h.contact.MailtoURL(),
	})
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if err := decodeJSON(w, r, &form); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.contact.Submit(r.Context(), form); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", code), zap.Error(err))
	}

	WriteError(w, err)
}

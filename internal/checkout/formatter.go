// Package checkout turns a cart into the WhatsApp order hand-off.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nikolayk812/cvshop/internal/domain"
	"golang.org/x/text/currency"
)

const whatsAppBaseURL = "https://wa.me/"

var ErrEmptyCart = errors.New("cart is empty")

type Config struct {
	ShopName       string
	WhatsAppNumber string
	MPAlias        string
	CuentaDNIAlias string
	Currency       currency.Unit
}

type Formatter struct {
	cfg    Config
	number string
}

func NewFormatter(cfg Config) (*Formatter, error) {
	number := digitsOnly(cfg.WhatsAppNumber)
	if number == "" {
		return nil, fmt.Errorf("whatsapp number %q has no digits", cfg.WhatsAppNumber)
	}

	return &Formatter{cfg: cfg, number: number}, nil
}

// Order is what the checkout view shows before the customer is sent to WhatsApp.
type Order struct {
	Message             string
	URL                 string
	Total               domain.Money
	PaymentInstructions []string
}

func (f *Formatter) Order(cart domain.Cart) (Order, error) {
	msg, err := f.Message(cart)
	if err != nil {
		return Order{}, err
	}

	return Order{
		Message:             msg,
		URL:                 f.messageURL(msg),
		Total:               domain.NewMoney(cart.Total(), f.cfg.Currency),
		PaymentInstructions: f.PaymentInstructions(),
	}, nil
}

// Message lists each line as "- name xN ($subtotal)" followed by the cart total.
func (f *Formatter) Message(cart domain.Cart) (string, error) {
	if cart.IsEmpty() {
		return "", ErrEmptyCart
	}

	lines := make([]string, 0, len(cart.Items))
	for _, li := range cart.Items {
		subtotal := domain.NewMoney(li.Subtotal(), f.cfg.Currency)
		lines = append(lines, fmt.Sprintf("- %s x%d (%s)", li.Name, li.Quantity, subtotal))
	}

	total := domain.NewMoney(cart.Total(), f.cfg.Currency)

	var b strings.Builder
	fmt.Fprintf(&b, "¡Hola %s! 👋\n\n", f.cfg.ShopName)
	b.WriteString("Quiero realizar un pedido:\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n*Total: %s*\n\n", total)
	b.WriteString("¿Me podrías confirmar disponibilidad para realizar la transferencia?")

	return b.String(), nil
}

// ContactURL opens a chat with the shop without pre-filled text.
func (f *Formatter) ContactURL() string {
	return whatsAppBaseURL + f.number
}

func (f *Formatter) PaymentInstructions() []string {
	var result []string
	if f.cfg.MPAlias != "" {
		result = append(result, "Transferencia por Mercado Pago: Alias: "+f.cfg.MPAlias)
	}
	if f.cfg.CuentaDNIAlias != "" {
		result = append(result, "Transferencia Cuenta DNI: Alias: "+f.cfg.CuentaDNIAlias)
	}

	return result
}

func (f *Formatter) messageURL(msg string) string {
	return f.ContactURL() + "?text=" + EncodeComponent(msg)
}

// EncodeComponent percent-encodes s for use as a query value, spaces as %20.
// Unlike the browser's encodeURIComponent it also escapes ! ' ( ) and *; both
// decode to the same text.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

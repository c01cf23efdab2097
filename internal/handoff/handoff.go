// Package handoff turns cart contents into the plain-text message a customer
// sends to the store over WhatsApp, and builds the deep link that carries it.
package handoff

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"
)

const DefaultBaseURL = "https://wa.me"

type Settings struct {
	Brand        string
	Phone        string // international format, digits only
	PaymentAlias string
	BaseURL      string
}

// Customer holds the fields typed into the checkout form.
type Customer struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// FormatPrice renders whole currency units the es-AR way: $12.500
func FormatPrice(n int64) string {
	if n < 0 {
		return "-$" + humanize.FormatInteger("#.###,", int(-n))
	}
	return "$" + humanize.FormatInteger("#.###,", int(n))
}

// OrderMessage builds the order summary for items.
func OrderMessage(s Settings, items []domain.LineItem, total int64, c Customer) string {
	var b strings.Builder

	b.WriteString("*Hola " + strings.ToUpper(s.Brand) + "! Quiero realizar el siguiente pedido:*\n\n")

	for _, it := range items {
		b.WriteString("• " + strconv.Itoa(it.Quantity) + "x " + it.Product.Name)
		if it.Variant != nil {
			if attrs := it.Variant.String(); attrs != "" {
				b.WriteString(" (" + attrs + ")")
			}
		}
		b.WriteString(" - " + FormatPrice(it.Subtotal()) + "\n")
	}

	b.WriteString("\n*Total: " + FormatPrice(total) + "*\n\n")

	b.WriteString("*Mis Datos:*\n")
	b.WriteString("Nombre: " + c.Name + "\n")
	b.WriteString("Teléfono: " + c.Phone + "\n")
	b.WriteString("Dirección/Zona: " + c.Address + "\n")
	if c.Notes != "" {
		b.WriteString("Notas: " + c.Notes + "\n")
	}

	b.WriteString("\n*Forma de Pago:*\n")
	b.WriteString("Transferencia al Alias: " + s.PaymentAlias + "\n")
	b.WriteString("(Envío comprobante a la brevedad)\n\n")

	b.WriteString("*Importante:*\n")
	b.WriteString("⚠️ El costo de envío se confirmará al momento de procesar el pedido.\n")
	b.WriteString("⚠️ El pedido se procesará únicamente al recibir el comprobante de pago.")

	return b.String()
}

// InquiryMessage is sent when there is nothing in the cart.
func InquiryMessage(s Settings) string {
	return "Hola 👋, quiero hacer una consulta sobre los productos de " + strings.ToUpper(s.Brand) + "."
}

// Link returns the deep link that opens a chat with text pre-filled.
// The text is encoded like encodeURIComponent: %20 for spaces and
// !'()* left as they are.
func Link(s Settings, text string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u := strings.TrimRight(base, "/") + "/" + s.Phone
	if text == "" {
		return u
	}
	return u + "?text=" + Encode(text)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func Encode(text string) string {
	return componentUnescaper.Replace(url.QueryEscape(text))
}

package handoff

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"
)

var settings = Settings{
	Brand:        "Isaromas",
	Phone:        "5491125146197",
	PaymentAlias: "ISAROMAS.VENTAS",
}

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		0:       "$0",
		500:     "$500",
		1000:    "$1.000",
		12500:   "$12.500",
		1234567: "$1.234.567",
		-2000:   "-$2.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPrice(in), in)
	}
}

func TestOrderMessage(t *testing.T) {
	items := []domain.LineItem{
		{
			Product:  domain.Product{ID: "vela-1", Name: "Vela de Soja", Price: 8500},
			Quantity: 2,
			Variant:  &domain.Variant{Aroma: "Lavanda"},
		},
		{
			Product:  domain.Product{ID: "perfume", Name: "Perfume", Price: 18900},
			Quantity: 1,
			Variant:  &domain.Variant{Aroma: "Cítrico", Size: "100ml", Gender: "Femenino"},
		},
		{
			Product:  domain.Product{ID: "spray", Name: "Home Spray", Price: 6200},
			Quantity: 3,
		},
		{
			Product:  domain.Product{ID: "bare", Name: "Sahumerio", Price: 300},
			Quantity: 1,
			Variant:  &domain.Variant{},
		},
	}
	customer := Customer{Name: "Ana Pérez", Phone: "1155550000", Address: "Palermo, CABA", Notes: "Después de las 18hs"}

	got := OrderMessage(settings, items, 54800, customer)

	want := "*Hola ISAROMAS! Quiero realizar el siguiente pedido:*\n\n" +
		"• 2x Vela de Soja (Lavanda) - $17.000\n" +
		"• 1x Perfume (Cítrico, 100ml, Femenino) - $18.900\n" +
		"• 3x Home Spray - $18.600\n" +
		"• 1x Sahumerio - $300\n" +
		"\n*Total: $54.800*\n\n" +
		"*Mis Datos:*\n" +
		"Nombre: Ana Pérez\n" +
		"Teléfono: 1155550000\n" +
		"Dirección/Zona: Palermo, CABA\n" +
		"Notas: Después de las 18hs\n" +
		"\n*Forma de Pago:*\n" +
		"Transferencia al Alias: ISAROMAS.VENTAS\n" +
		"(Envío comprobante a la brevedad)\n\n" +
		"*Importante:*\n" +
		"⚠️ El costo de envío se confirmará al momento de procesar el pedido.\n" +
		"⚠️ El pedido se procesará únicamente al recibir el comprobante de pago."

	assert.Equal(t, want, got)
}

func TestOrderMessage_OmitsEmptyNotes(t *testing.T) {
	got := OrderMessage(settings, nil, 0, Customer{Name: "A", Phone: "1", Address: "B"})
	assert.NotContains(t, got, "Notas:")
	assert.Contains(t, got, "Dirección/Zona: B\n\n*Forma de Pago:*")
}

func TestInquiryMessage(t *testing.T) {
	assert.Equal(t, "Hola 👋, quiero hacer una consulta sobre los productos de ISAROMAS.", InquiryMessage(settings))
}

func TestLink(t *testing.T) {
	link := Link(settings, "Hola mundo\n*Total: $1.000*")
	assert.Equal(t, "https://wa.me/5491125146197?text=Hola%20mundo%0A*Total%3A%20%241.000*", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo\n*Total: $1.000*", u.Query().Get("text"))
}

func TestEncode_MatchesEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"Hola! (x2) *Total*": "Hola!%20(x2)%20*Total*",
		"it's":               "it's",
		"a+b=c & d/e?":       "a%2Bb%3Dc%20%26%20d%2Fe%3F",
		"100% soja":          "100%25%20soja",
		"-_.~":               "-_.~",
		"Dirección ⚠️":       "Direcci%C3%B3n%20%E2%9A%A0%EF%B8%8F",
	}
	for in, want := range cases {
		assert.Equal(t, want, Encode(in), in)
		got, err := url.QueryUnescape(Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestLink_CustomBaseAndEmptyText(t *testing.T) {
	s := settings
	s.BaseURL = "https://api.whatsapp.com/send/"
	assert.Equal(t, "https://api.whatsapp.com/send/5491125146197", Link(s, ""))
}

func TestLink_RoundTripsOrderMessage(t *testing.T) {
	msg := OrderMessage(settings, []domain.LineItem{{
		Product:  domain.Product{ID: "x", Name: "Vela & Co", Price: 1000},
		Quantity: 1,
	}}, 1000, Customer{Name: "Juan", Phone: "11", Address: "Av. 9 de Julio #100"})

	u, err := url.Parse(Link(settings, msg))
	require.NoError(t, err)
	assert.Equal(t, msg, u.Query().Get("text"))
}

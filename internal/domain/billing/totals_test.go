package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func item(qty int64, price, tax string) entity.LineItem {
	return entity.LineItem{
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
		TaxRate:   decimal.RequireFromString(tax),
	}
}

// TestTotales_VectorConocido valida el ejemplo de referencia:
// [{qty:2, price:100, gst:18}, {qty:1, price:50, gst:0}]
// → subtotal 250.00, impuestos 36.00, total 286.00.
func TestTotales_VectorConocido(t *testing.T) {
	items := []entity.LineItem{
		item(2, "100", "18"),
		item(1, "50", "0"),
	}

	assert.Equal(t, "250.00", billing.Subtotal(items).StringFixed(2))
	assert.Equal(t, "36.00", billing.TotalTax(items).StringFixed(2))
	assert.Equal(t, "286.00", billing.GrandTotal(items).StringFixed(2))
}

// TestGrandTotal_EsSumaDeComponentes verifica la identidad
// GrandTotal == Subtotal + TotalTax exactamente (sin tolerancia flotante:
// la aritmética es decimal de punta a punta).
func TestGrandTotal_EsSumaDeComponentes(t *testing.T) {
	cases := [][]entity.LineItem{
		{},
		{item(1, "0", "18")},
		{item(3, "19.99", "18"), item(7, "0.01", "5.5"), item(1, "12345.67", "0")},
		{item(100, "0.1", "19"), item(100, "0.1", "19"), item(100, "0.1", "19")},
	}
	for _, items := range cases {
		want := billing.Subtotal(items).Add(billing.TotalTax(items))
		assert.True(t, billing.GrandTotal(items).Equal(want),
			"GrandTotal debe ser exactamente Subtotal + TotalTax")
	}
}

// TestItemTotal_Identidad verifica que
// ItemTotal == qty*price + qty*price*tax/100 para cada línea.
func TestItemTotal_Identidad(t *testing.T) {
	it := item(3, "33.33", "18")

	base := decimal.NewFromInt(3).Mul(decimal.RequireFromString("33.33"))
	want := base.Add(base.Mul(decimal.RequireFromString("18")).Div(decimal.NewFromInt(100)))

	require.True(t, billing.ItemTotal(it).Equal(want),
		"ItemTotal debe coincidir con la fórmula expandida")
}

// TestTotales_SinErrorFlotante acumula muchas líneas con centavos que en
// float64 binario acumularían error (0.1 no es representable exacto).
func TestTotales_SinErrorFlotante(t *testing.T) {
	items := make([]entity.LineItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, item(1, "0.1", "0"))
	}

	assert.Equal(t, "100.00", billing.Subtotal(items).StringFixed(2),
		"1000 líneas de 0.10 deben sumar exactamente 100.00")
	assert.Equal(t, "100.00", billing.GrandTotal(items).StringFixed(2))
}

// TestTotales_ListaVacia todos los agregados sobre lista vacía son cero.
func TestTotales_ListaVacia(t *testing.T) {
	assert.True(t, billing.Subtotal(nil).IsZero())
	assert.True(t, billing.TotalTax(nil).IsZero())
	assert.True(t, billing.GrandTotal(nil).IsZero())
}

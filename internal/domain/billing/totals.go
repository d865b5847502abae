package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Motor de cálculo de la factura (servicio de dominio, funciones puras).
// Los totales se recalculan en cada lectura: no hay caché porque el número de
// líneas es pequeño y la correctitud importa más que la memoización.
// El redondeo a 2 decimales ocurre únicamente en la capa de presentación,
// nunca antes de agregar, para no acumular error de redondeo.

var cien = decimal.NewFromInt(100)

// net devuelve el importe neto de una línea: cantidad * precio unitario.
func net(item entity.LineItem) decimal.Decimal {
	return decimal.NewFromInt(item.Quantity).Mul(item.UnitPrice)
}

// ItemTotal = cantidad * precio * (1 + impuesto/100).
func ItemTotal(item entity.LineItem) decimal.Decimal {
	base := net(item)
	return base.Add(base.Mul(item.TaxRate).Div(cien))
}

// Subtotal = Σ cantidad * precio (sin impuestos).
func Subtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(net(it))
	}
	return sum
}

// TotalTax = Σ cantidad * precio * impuesto/100.
func TotalTax(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(net(it).Mul(it.TaxRate).Div(cien))
	}
	return sum
}

// GrandTotal = Subtotal + TotalTax.
func GrandTotal(items []entity.LineItem) decimal.Decimal {
	return Subtotal(items).Add(TotalTax(items))
}

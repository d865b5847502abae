package entity

import "github.com/shopspring/decimal"

// Valores por defecto de una línea nueva.
var (
	DefaultQuantity = int64(1)
	DefaultTaxRate  = decimal.NewFromInt(18) // GST estándar
)

// LineItem representa una línea facturable del documento.
// El ID es único dentro del documento durante toda la vida de la línea.
type LineItem struct {
	ID        int64
	Name      string
	Quantity  int64           // siempre >= 1
	UnitPrice decimal.Decimal // >= 0
	TaxRate   decimal.Decimal // porcentaje, >= 0 (sin tope superior, igual que el origen)
}

// NewLineItem construye una línea con los valores por defecto (cantidad 1, precio 0, impuesto 18%).
func NewLineItem(id int64) LineItem {
	return LineItem{
		ID:        id,
		Name:      "",
		Quantity:  DefaultQuantity,
		UnitPrice: decimal.Zero,
		TaxRate:   DefaultTaxRate,
	}
}

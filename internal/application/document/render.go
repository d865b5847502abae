package document

import (
	"fmt"

	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Placeholders para campos de texto vacíos en la vista renderizada.
const (
	placeholderCompany = "Tu empresa"
	placeholderClient  = "Cliente"
	placeholderItem    = "Ítem"
	placeholderField   = "—"
)

// RenderLine línea lista para renderizar: el total ya viene redondeado a
// 2 decimales (el redondeo ocurre aquí y solo aquí, nunca antes de agregar).
type RenderLine struct {
	Name      string
	Quantity  string
	UnitPrice string
	TaxRate   string
	Total     string
}

// RenderSnapshot vista completa y estable del documento en el momento de la
// exportación: texto con placeholders sustituidos, totales precalculados y
// el nombre de archivo sugerido (Invoice-<número>.pdf).
type RenderSnapshot struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	Logo           string // data-URL; vacío = sin logo

	ClientName    string
	ClientAddress string
	ClientPhone   string
	ClientEmail   string

	Number  string
	Date    string
	DueDate string
	Notes   string
	Terms   string

	Lines      []RenderLine
	Subtotal   string
	TotalTax   string
	GrandTotal string

	Filename string
}

// buildRenderSnapshot deriva la vista render-ready a partir del estado.
func buildRenderSnapshot(state *entity.DocumentState) *RenderSnapshot {
	lines := make([]RenderLine, 0, len(state.Items))
	for _, it := range state.Items {
		lines = append(lines, RenderLine{
			Name:      orElse(it.Name, placeholderItem),
			Quantity:  fmt.Sprintf("%d", it.Quantity),
			UnitPrice: it.UnitPrice.StringFixed(2),
			TaxRate:   it.TaxRate.String() + "%",
			Total:     billing.ItemTotal(it).StringFixed(2),
		})
	}

	return &RenderSnapshot{
		CompanyName:    orElse(state.CompanyInfo.Name, placeholderCompany),
		CompanyAddress: orElse(state.CompanyInfo.Address, placeholderField),
		CompanyPhone:   orElse(state.CompanyInfo.Phone, placeholderField),
		CompanyEmail:   orElse(state.CompanyInfo.Email, placeholderField),
		Logo:           state.CompanyInfo.Logo,

		ClientName:    orElse(state.ClientInfo.Name, placeholderClient),
		ClientAddress: orElse(state.ClientInfo.Address, placeholderField),
		ClientPhone:   orElse(state.ClientInfo.Phone, placeholderField),
		ClientEmail:   orElse(state.ClientInfo.Email, placeholderField),

		Number:  state.InvoiceData.Number,
		Date:    state.InvoiceData.Date,
		DueDate: state.InvoiceData.DueDate,
		Notes:   state.InvoiceData.Notes,
		Terms:   state.InvoiceData.Terms,

		Lines:      lines,
		Subtotal:   billing.Subtotal(state.Items).StringFixed(2),
		TotalTax:   billing.TotalTax(state.Items).StringFixed(2),
		GrandTotal: billing.GrandTotal(state.Items).StringFixed(2),

		Filename: fmt.Sprintf("Invoice-%s.pdf", state.InvoiceData.Number),
	}
}

func orElse(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

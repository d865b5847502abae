package dto

import "github.com/shopspring/decimal"

// ProfileRequest body para PUT /api/document/company y /api/document/client.
// Todos los campos son texto libre; vacío es válido.
type ProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// InvoiceMetaRequest body para PUT /api/document/invoice.
// Las fechas van como YYYY-MM-DD; no se valida que due_date >= date.
type InvoiceMetaRequest struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"due_date"`
	Notes   string `json:"notes"`
	Terms   string `json:"terms"`
}

// FieldUpdateRequest body para los PATCH de un solo campo
// (perfiles, metadatos y líneas). El valor siempre viaja como texto;
// la coerción numérica ocurre en el dominio.
type FieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// LineItemResponse línea con su total derivado.
type LineItemResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Total     string          `json:"total"` // redondeado a 2 decimales solo para mostrar
}

// TotalsResponse agregados del documento, redondeados a 2 decimales.
type TotalsResponse struct {
	Subtotal   string `json:"subtotal"`
	TotalTax   string `json:"total_tax"`
	GrandTotal string `json:"grand_total"`
}

// CompanyResponse perfil del emisor en respuestas.
type CompanyResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	HasLogo bool   `json:"has_logo"` // el data-URL no se devuelve en cada GET
}

// ClientResponse perfil del receptor en respuestas.
type ClientResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// InvoiceMetaResponse metadatos en respuestas.
type InvoiceMetaResponse struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"due_date"`
	Notes   string `json:"notes"`
	Terms   string `json:"terms"`
}

// DocumentResponse estado completo + totales para GET /api/document.
type DocumentResponse struct {
	Company CompanyResponse     `json:"company"`
	Client  ClientResponse      `json:"client"`
	Invoice InvoiceMetaResponse `json:"invoice"`
	Items   []LineItemResponse  `json:"items"`
	Totals  TotalsResponse      `json:"totals"`
}

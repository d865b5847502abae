package entity

// DateLayout formato de las fechas del documento (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// InvoiceMeta metadatos de la factura. Las fechas se guardan como texto en
// formato DateLayout y no se valida que DueDate >= Date: el comportamiento
// permisivo del origen se conserva deliberadamente.
type InvoiceMeta struct {
	Number  string
	Date    string // fecha de emisión
	DueDate string // fecha de vencimiento
	Notes   string
	Terms   string
}

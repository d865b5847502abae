package entity

import "time"

// DocumentState es el estado completo del documento en edición: perfiles,
// metadatos y la secuencia ordenada de líneas (el orden es significativo,
// tanto para mostrar como para persistir). Hay exactamente una instancia por
// sesión y toda mutación pasa por el coordinador de documento.
type DocumentState struct {
	CompanyInfo CompanyProfile
	ClientInfo  ClientProfile
	InvoiceData InvoiceMeta
	Items       []LineItem
}

// DefaultDocumentState construye el estado inicial: perfiles vacíos,
// número INV-001, emisión hoy, vencimiento a 30 días y una línea en blanco.
func DefaultDocumentState(now time.Time) *DocumentState {
	return &DocumentState{
		CompanyInfo: CompanyProfile{},
		ClientInfo:  ClientProfile{},
		InvoiceData: InvoiceMeta{
			Number:  "INV-001",
			Date:    now.Format(DateLayout),
			DueDate: now.AddDate(0, 0, 30).Format(DateLayout),
		},
		Items: []LineItem{NewLineItem(1)},
	}
}

// Clone devuelve una copia profunda del estado (las líneas se copian).
// Se usa para entregar snapshots sin exponer el slice interno.
func (d *DocumentState) Clone() *DocumentState {
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	copy(cp.Items, d.Items)
	return &cp
}

// Package storage implementa la persistencia local del documento: un único
// slot en un archivo SQLite cuyo payload es el snapshot JSON con la forma
// {companyInfo, clientInfo, invoiceData, items}. Ese esquema es superficie de
// compatibilidad: debe seguir siendo legible aunque evolucione, con fallback
// campo a campo a los valores por defecto (nunca descartando el registro entero).
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

type persistedCompany struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Logo    string `json:"logo,omitempty"`
}

type persistedClient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type persistedMeta struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`
	Notes   string `json:"notes"`
	Terms   string `json:"terms"`
}

type persistedItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Gst      decimal.Decimal `json:"gst"`
}

// persistedSnapshot espejo JSON del DocumentState. Las secciones son punteros
// para distinguir "ausente" de "presente pero vacío": una sección ausente cae
// a su valor por defecto sin invalidar el resto del registro.
type persistedSnapshot struct {
	CompanyInfo *persistedCompany `json:"companyInfo"`
	ClientInfo  *persistedClient  `json:"clientInfo"`
	InvoiceData *persistedMeta    `json:"invoiceData"`
	Items       []persistedItem   `json:"items"`
}

// encodeSnapshot serializa el estado al payload del slot.
func encodeSnapshot(state *entity.DocumentState) ([]byte, error) {
	items := make([]persistedItem, 0, len(state.Items))
	for _, it := range state.Items {
		items = append(items, persistedItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.UnitPrice,
			Gst:      it.TaxRate,
		})
	}
	snap := persistedSnapshot{
		CompanyInfo: &persistedCompany{
			Name:    state.CompanyInfo.Name,
			Address: state.CompanyInfo.Address,
			Phone:   state.CompanyInfo.Phone,
			Email:   state.CompanyInfo.Email,
			Logo:    state.CompanyInfo.Logo,
		},
		ClientInfo: &persistedClient{
			Name:    state.ClientInfo.Name,
			Address: state.ClientInfo.Address,
			Phone:   state.ClientInfo.Phone,
			Email:   state.ClientInfo.Email,
		},
		InvoiceData: &persistedMeta{
			Number:  state.InvoiceData.Number,
			Date:    state.InvoiceData.Date,
			DueDate: state.InvoiceData.DueDate,
			Notes:   state.InvoiceData.Notes,
			Terms:   state.InvoiceData.Terms,
		},
		Items: items,
	}
	return json.Marshal(snap)
}

// decodeSnapshot reconstruye el estado desde un payload guardado. Un payload
// que no parsea devuelve error (el caller cae a los defaults); campos o
// secciones ausentes se rellenan con defaults sin invalidar el resto.
func decodeSnapshot(payload []byte, now time.Time) (*entity.DocumentState, error) {
	var snap persistedSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("snapshot corrupto: %w", err)
	}

	state := entity.DefaultDocumentState(now)

	if c := snap.CompanyInfo; c != nil {
		state.CompanyInfo = entity.CompanyProfile{
			Name:    c.Name,
			Address: c.Address,
			Phone:   c.Phone,
			Email:   c.Email,
			Logo:    c.Logo,
		}
	}
	if c := snap.ClientInfo; c != nil {
		state.ClientInfo = entity.ClientProfile{
			Name:    c.Name,
			Address: c.Address,
			Phone:   c.Phone,
			Email:   c.Email,
		}
	}
	if m := snap.InvoiceData; m != nil {
		state.InvoiceData = entity.InvoiceMeta{
			Number:  m.Number,
			Date:    m.Date,
			DueDate: m.DueDate,
			Notes:   m.Notes,
			Terms:   m.Terms,
		}
	}
	if snap.Items != nil {
		items := make([]entity.LineItem, 0, len(snap.Items))
		var maxID int64
		for _, it := range snap.Items {
			li := entity.LineItem{
				ID:        it.ID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.Price,
				TaxRate:   it.Gst,
			}
			// Coerción de snapshots viejos o editados a mano
			if li.Quantity < 1 {
				li.Quantity = entity.DefaultQuantity
			}
			if li.UnitPrice.IsNegative() {
				li.UnitPrice = decimal.Zero
			}
			if li.TaxRate.IsNegative() {
				li.TaxRate = decimal.Zero
			}
			if li.ID <= maxID {
				li.ID = maxID + 1
			}
			maxID = li.ID
			items = append(items, li)
		}
		state.Items = items
	}

	return state, nil
}

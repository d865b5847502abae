package document

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// UseCase coordina el estado del documento: es el único escritor. Toda
// mutación entra por aquí, se aplica bajo el mutex y termina en un Save
// síncrono del snapshot (best-effort: un fallo de persistencia se registra
// y la sesión continúa en memoria).
type UseCase struct {
	mu    sync.Mutex
	state *entity.DocumentState
	items *billing.ItemList

	store     SnapshotStore
	generator InvoicePDFGenerator
	log       *logger.Logger

	exporting atomic.Bool
	now       func() time.Time
}

// New construye el coordinador. Intenta cargar el snapshot persistido; si no
// existe o no parsea, arranca con el estado por defecto.
func New(store SnapshotStore, generator InvoicePDFGenerator, log *logger.Logger) *UseCase {
	uc := &UseCase{
		store:     store,
		generator: generator,
		log:       log,
		now:       time.Now,
	}

	state, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo cargar el snapshot, usando estado por defecto")
		state = nil
	}
	if state == nil {
		state = entity.DefaultDocumentState(uc.now())
	}
	uc.state = state
	uc.items = billing.NewItemList(state.Items)
	uc.state.Items = nil // las líneas viven en ItemList; el snapshot las recompone
	return uc
}

// Document devuelve una copia del estado completo (perfiles, metadatos y líneas).
func (uc *UseCase) Document() *entity.DocumentState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot()
}

// snapshot compone el estado actual. Caller debe tener el mutex.
func (uc *UseCase) snapshot() *entity.DocumentState {
	snap := uc.state.Clone()
	snap.Items = uc.items.Items()
	return snap
}

// persist guarda el snapshot actual. Caller debe tener el mutex.
// La persistencia es best-effort: el error se registra, nunca se propaga.
func (uc *UseCase) persist() {
	if err := uc.store.Save(uc.snapshot()); err != nil {
		uc.log.Warn().Err(err).Msg("guardado del snapshot falló, la sesión sigue en memoria")
	}
}

// ── Perfiles y metadatos ──────────────────────────────────────────────────────

// SetCompanyInfo reemplaza el perfil del emisor. El logo no viaja en el
// perfil: se conserva el actual (SetLogo/ClearLogo lo gestionan aparte).
func (uc *UseCase) SetCompanyInfo(p entity.CompanyProfile) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p.Logo = uc.state.CompanyInfo.Logo
	uc.state.CompanyInfo = p
	uc.persist()
}

// SetClientInfo reemplaza el perfil del receptor.
func (uc *UseCase) SetClientInfo(p entity.ClientProfile) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.ClientInfo = p
	uc.persist()
}

// SetInvoiceData reemplaza los metadatos de la factura.
func (uc *UseCase) SetInvoiceData(m entity.InvoiceMeta) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.InvoiceData = m
	uc.persist()
}

// UpdateCompanyField actualiza un solo campo del emisor.
// Campo desconocido → domain.ErrInvalidInput (el logo no se edita por aquí).
func (uc *UseCase) UpdateCompanyField(field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p := &uc.state.CompanyInfo
	switch field {
	case "name":
		p.Name = value
	case "address":
		p.Address = value
	case "phone":
		p.Phone = value
	case "email":
		p.Email = value
	default:
		return fmt.Errorf("%w: campo de emisor desconocido %q", domain.ErrInvalidInput, field)
	}
	uc.persist()
	return nil
}

// UpdateClientField actualiza un solo campo del receptor.
func (uc *UseCase) UpdateClientField(field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	p := &uc.state.ClientInfo
	switch field {
	case "name":
		p.Name = value
	case "address":
		p.Address = value
	case "phone":
		p.Phone = value
	case "email":
		p.Email = value
	default:
		return fmt.Errorf("%w: campo de receptor desconocido %q", domain.ErrInvalidInput, field)
	}
	uc.persist()
	return nil
}

// UpdateInvoiceField actualiza un solo metadato de la factura. Las fechas se
// aceptan tal cual llegan: el origen no valida orden cronológico y eso se
// conserva a propósito.
func (uc *UseCase) UpdateInvoiceField(field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	m := &uc.state.InvoiceData
	switch field {
	case "number":
		m.Number = value
	case "date":
		m.Date = value
	case "due_date":
		m.DueDate = value
	case "notes":
		m.Notes = value
	case "terms":
		m.Terms = value
	default:
		return fmt.Errorf("%w: metadato desconocido %q", domain.ErrInvalidInput, field)
	}
	uc.persist()
	return nil
}

// ── Líneas ────────────────────────────────────────────────────────────────────

// AddItem agrega una línea con valores por defecto y la devuelve.
func (uc *UseCase) AddItem() entity.LineItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	item := uc.items.Add()
	uc.persist()
	return item
}

// RemoveItem elimina una línea. domain.ErrLastItem si es la única;
// domain.ErrNotFound deja el estado intacto (no-op).
func (uc *UseCase) RemoveItem(id int64) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.items.Remove(id); err != nil {
		return err
	}
	uc.persist()
	return nil
}

// UpdateItem actualiza un campo de una línea. La coerción numérica vive en el
// dominio; aquí solo se decide si hubo mutación que persistir.
func (uc *UseCase) UpdateItem(id int64, field, value string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.items.Update(id, field, value); err != nil {
		return err
	}
	uc.persist()
	return nil
}

// ── Logo ──────────────────────────────────────────────────────────────────────

// SetLogo aplica el logo ya ingerido (data-URL). La carga del archivo es la
// única operación asíncrona del sistema: se aplica cuando termina la lectura,
// con política de "última escritura completada gana".
func (uc *UseCase) SetLogo(dataURL string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.CompanyInfo.Logo = dataURL
	uc.persist()
}

// ClearLogo elimina el logo del emisor.
func (uc *UseCase) ClearLogo() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.CompanyInfo.Logo = ""
	uc.persist()
}

// ── Reset y exportación ───────────────────────────────────────────────────────

// Reset reemplaza todo el estado por los valores por defecto y borra el slot
// persistido. El fallo del Clear se registra y no interrumpe el reset.
func (uc *UseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = entity.DefaultDocumentState(uc.now())
	uc.items = billing.NewItemList(uc.state.Items)
	uc.state.Items = nil
	if err := uc.store.Clear(); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo limpiar el slot persistido")
	}
}

// RenderSnapshot devuelve la vista render-ready del estado actual:
// placeholders sustituidos, totales precalculados y nombre de archivo sugerido.
func (uc *UseCase) RenderSnapshot() *RenderSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return buildRenderSnapshot(uc.snapshot())
}

// ExportPDF genera el PDF del documento actual. La exportación es una lectura
// bloqueante del estado y no puede solaparse consigo misma: una segunda
// petición mientras hay una en vuelo recibe domain.ErrExportInProgress.
// El estado no se toca: un fallo del colaborador no lo afecta.
func (uc *UseCase) ExportPDF(ctx context.Context) (pdf []byte, filename string, err error) {
	if !uc.exporting.CompareAndSwap(false, true) {
		return nil, "", domain.ErrExportInProgress
	}
	defer uc.exporting.Store(false)

	snap := uc.RenderSnapshot()

	exportID := uuid.New().String()
	uc.log.Info().
		Str("export_id", exportID).
		Str("invoice", snap.Number).
		Int("lines", len(snap.Lines)).
		Msg("exportando documento")

	pdf, err = uc.generator.Generate(ctx, snap)
	if err != nil {
		uc.log.Error().Err(err).Str("export_id", exportID).Msg("exportación fallida")
		return nil, "", fmt.Errorf("exportar pdf: %w", err)
	}
	return pdf, snap.Filename, nil
}

// Totals agregados actuales del documento, recalculados en cada llamada.
func (uc *UseCase) Totals() (subtotal, totalTax, grandTotal string) {
	uc.mu.Lock()
	items := uc.items.Items()
	uc.mu.Unlock()
	return billing.Subtotal(items).StringFixed(2),
		billing.TotalTax(items).StringFixed(2),
		billing.GrandTotal(items).StringFixed(2)
}

package document

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// SnapshotStore puerto de persistencia del documento: un único slot local.
// Save se invoca de forma síncrona tras cada mutación aceptada. Load devuelve
// (nil, nil) si el slot no existe o si el payload guardado no parsea: el
// caller cae a los valores por defecto y nunca aborta por un snapshot roto.
type SnapshotStore interface {
	Save(state *entity.DocumentState) error
	Load() (*entity.DocumentState, error)
	Clear() error
}

// InvoicePDFGenerator puerto del colaborador de exportación. Recibe el
// snapshot listo para renderizar (totales precalculados, placeholders ya
// sustituidos) y produce los bytes del documento paginado.
type InvoicePDFGenerator interface {
	Generate(ctx context.Context, snap *RenderSnapshot) ([]byte, error)
}
